package analytics

import (
	"fmt"
	"math"
	"sort"
	"time"
)

// NoTeam is the bucket employees without a team fall into.
const NoTeam = "No Team"

const (
	typePlanned   = "Planned"
	typeUnplanned = "Unplanned"
	typeMaternity = "Maternity Leave"
	typePaternity = "Paternity Leave"
)

type employeeAccum struct {
	planned    int
	unplanned  int
	leaveCount int
	totalDays  int
}

// BuildDashboard derives the full dashboard from the roster and the year's
// Approved ledger. Pure: no I/O, and empty inputs yield all-zero structures
// rather than an error.
func BuildDashboard(year int, employees []EmployeeStats, leaves []LeaveStats, recent []RecentLeave) DashboardResponse {
	perEmployee := make(map[string]*employeeAccum, len(employees))
	for _, e := range employees {
		perEmployee[e.ID] = &employeeAccum{}
	}

	var (
		plannedDays, unplannedDays   int
		plannedCount, unplannedCount int
		maternityDays, paternityDays int
	)
	monthly := map[string]*TypeBreakdown{}

	for _, l := range leaves {
		acc, ok := perEmployee[l.EmployeeID]
		if !ok {
			// Record for an employee outside the roster snapshot; still
			// counted in the global totals.
			acc = &employeeAccum{}
			perEmployee[l.EmployeeID] = acc
		}
		acc.leaveCount++
		acc.totalDays += l.DaysCount

		switch l.LeaveType {
		case typePlanned:
			acc.planned += l.DaysCount
			plannedDays += l.DaysCount
			plannedCount++
		case typeUnplanned:
			acc.unplanned += l.DaysCount
			unplannedDays += l.DaysCount
			unplannedCount++
		case typeMaternity:
			maternityDays += l.DaysCount
		case typePaternity:
			paternityDays += l.DaysCount
		}

		if l.LeaveType == typePlanned || l.LeaveType == typeUnplanned {
			key := monthKey(l.StartDate.Month(), l.LeaveType)
			cell, ok := monthly[key]
			if !ok {
				cell = &TypeBreakdown{}
				monthly[key] = cell
			}
			cell.Count++
			cell.TotalDays += l.DaysCount
		}
	}

	// Maternity/paternity are job-protected leave, excluded from the
	// discretionary-PTO totals and ratio.
	chargeable := plannedDays + unplannedDays
	plannedPct := 0
	unplannedPct := 0
	if chargeable > 0 {
		plannedPct = roundInt(float64(plannedDays) * 100 / float64(chargeable))
		unplannedPct = 100 - plannedPct
	}

	return DashboardResponse{
		Summary: Summary{
			TotalEmployees:      len(employees),
			TotalPTOUsed:        chargeable,
			PlannedPercentage:   plannedPct,
			UnplannedPercentage: unplannedPct,
			MaternityDays:       maternityDays,
			PaternityDays:       paternityDays,
			Year:                year,
		},
		PTOBreakdown: map[string]TypeBreakdown{
			"planned":   {Count: plannedCount, TotalDays: plannedDays},
			"unplanned": {Count: unplannedCount, TotalDays: unplannedDays},
		},
		MonthlyTrend:       buildMonthlyTrend(monthly),
		TopUsers:           buildTopUsers(employees, perEmployee),
		TeamEfficiency:     buildEmployeeEfficiency(employees, perEmployee),
		TeamWiseEfficiency: buildTeamEfficiency(employees, perEmployee),
		RecentLeaves:       buildRecentLeaves(recent),
	}
}

// buildMonthlyTrend emits the full 12x2 grid so consumers never gap-fill.
func buildMonthlyTrend(monthly map[string]*TypeBreakdown) []MonthlyTrendRow {
	rows := make([]MonthlyTrendRow, 0, 24)
	for m := time.January; m <= time.December; m++ {
		for _, lt := range []string{typePlanned, typeUnplanned} {
			row := MonthlyTrendRow{
				Month:     fmt.Sprintf("%02d", int(m)),
				LeaveType: lt,
			}
			if cell, ok := monthly[monthKey(m, lt)]; ok {
				row.Count = cell.Count
				row.TotalDays = cell.TotalDays
			}
			rows = append(rows, row)
		}
	}
	return rows
}

func buildTopUsers(employees []EmployeeStats, perEmployee map[string]*employeeAccum) []TopUserRow {
	rows := make([]TopUserRow, 0, len(employees))
	for _, e := range employees {
		acc := perEmployee[e.ID]
		if acc == nil || acc.totalDays == 0 {
			continue
		}
		rows = append(rows, TopUserRow{
			EmployeeID:    e.ID,
			Name:          e.Name,
			LeaveCount:    acc.leaveCount,
			TotalDays:     acc.totalDays,
			PlannedDays:   acc.planned,
			UnplannedDays: acc.unplanned,
		})
	}

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].TotalDays != rows[j].TotalDays {
			return rows[i].TotalDays > rows[j].TotalDays
		}
		return rows[i].Name < rows[j].Name
	})

	if len(rows) > 10 {
		rows = rows[:10]
	}
	return rows
}

func buildEmployeeEfficiency(employees []EmployeeStats, perEmployee map[string]*employeeAccum) []EmployeeEfficiencyRow {
	rows := make([]EmployeeEfficiencyRow, 0, len(employees))
	for _, e := range employees {
		acc := perEmployee[e.ID]
		if acc == nil {
			acc = &employeeAccum{}
		}
		used := acc.planned + acc.unplanned
		rows = append(rows, EmployeeEfficiencyRow{
			Name:              e.Name,
			Team:              teamName(e.Team),
			TotalPtoDays:      e.TotalPtoDays,
			PtoUsed:           used,
			PtoRemaining:      e.TotalPtoDays - used,
			Planned:           acc.planned,
			Unplanned:         acc.unplanned,
			PlannedPercentage: plannedPercentage(acc.planned, used),
			WorkEfficiency:    workEfficiency(e.TotalPtoDays, acc.unplanned),
		})
	}

	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].Team != rows[j].Team {
			return rows[i].Team < rows[j].Team
		}
		return rows[i].Name < rows[j].Name
	})
	return rows
}

func buildTeamEfficiency(employees []EmployeeStats, perEmployee map[string]*employeeAccum) []TeamEfficiencyRow {
	byTeam := map[string]*TeamEfficiencyRow{}
	for _, e := range employees {
		team := teamName(e.Team)
		row, ok := byTeam[team]
		if !ok {
			row = &TeamEfficiencyRow{Team: team}
			byTeam[team] = row
		}
		acc := perEmployee[e.ID]
		if acc == nil {
			acc = &employeeAccum{}
		}
		row.EmployeeCount++
		row.TeamTotalPTO += e.TotalPtoDays
		row.TotalPTOUsed += acc.planned + acc.unplanned
		row.PlannedDays += acc.planned
		row.UnplannedDays += acc.unplanned
	}

	rows := make([]TeamEfficiencyRow, 0, len(byTeam))
	for _, row := range byTeam {
		row.PlannedPercentage = plannedPercentage(row.PlannedDays, row.TotalPTOUsed)
		row.WorkEfficiency = workEfficiency(row.TeamTotalPTO, row.UnplannedDays)
		rows = append(rows, *row)
	}

	sort.Slice(rows, func(i, j int) bool {
		return rows[i].Team < rows[j].Team
	})
	return rows
}

func buildRecentLeaves(recent []RecentLeave) []RecentLeaveRow {
	rows := make([]RecentLeaveRow, len(recent))
	for i, l := range recent {
		rows[i] = RecentLeaveRow{
			ID:           l.ID,
			EmployeeID:   l.EmployeeID,
			EmployeeName: l.EmployeeName,
			StartDate:    l.StartDate.Format("2006-01-02"),
			EndDate:      l.EndDate.Format("2006-01-02"),
			DaysCount:    l.DaysCount,
			LeaveType:    l.LeaveType,
			Status:       l.Status,
			CreatedAt:    l.CreatedAt.Format(time.RFC3339),
		}
	}
	return rows
}

func plannedPercentage(planned, used int) float64 {
	if used == 0 {
		return 0
	}
	return round1(float64(planned) * 100 / float64(used))
}

// workEfficiency is the share of the allotment not consumed by unplanned
// absence. With a zero allotment nothing could be consumed, so the policy
// is 100 rather than a division by zero.
func workEfficiency(totalPtoDays, unplanned int) float64 {
	if totalPtoDays == 0 {
		return 100
	}
	return round1(float64(totalPtoDays-unplanned) * 100 / float64(totalPtoDays))
}

func teamName(team string) string {
	if team == "" {
		return NoTeam
	}
	return team
}

func monthKey(m time.Month, leaveType string) string {
	return fmt.Sprintf("%02d|%s", int(m), leaveType)
}

// Both helpers round half away from zero.
func roundInt(x float64) int {
	return int(math.Round(x))
}

func round1(x float64) float64 {
	return math.Round(x*10) / 10
}
