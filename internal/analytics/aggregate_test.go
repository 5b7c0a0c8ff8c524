package analytics_test

import (
	"testing"
	"time"

	"pto-tracker/internal/analytics"

	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestBuildDashboard(t *testing.T) {
	t.Run("single employee with mixed usage", func(t *testing.T) {
		employees := []analytics.EmployeeStats{
			{ID: "e1", Name: "Dana", Team: "Platform", TotalPtoDays: 20},
		}
		leaves := []analytics.LeaveStats{
			{EmployeeID: "e1", LeaveType: "Planned", StartDate: date(2026, 3, 2), DaysCount: 3},
			{EmployeeID: "e1", LeaveType: "Unplanned", StartDate: date(2026, 4, 6), DaysCount: 2},
		}

		dash := analytics.BuildDashboard(2026, employees, leaves, nil)

		assert.Equal(t, 1, dash.Summary.TotalEmployees)
		assert.Equal(t, 5, dash.Summary.TotalPTOUsed)
		assert.Equal(t, 60, dash.Summary.PlannedPercentage)
		assert.Equal(t, 40, dash.Summary.UnplannedPercentage)
		assert.Equal(t, 2026, dash.Summary.Year)

		if assert.Len(t, dash.TeamEfficiency, 1) {
			row := dash.TeamEfficiency[0]
			assert.Equal(t, 5, row.PtoUsed)
			assert.Equal(t, 15, row.PtoRemaining)
			assert.Equal(t, 60.0, row.PlannedPercentage)
			// (20 - 2) / 20
			assert.Equal(t, 90.0, row.WorkEfficiency)
		}
	})

	t.Run("empty inputs yield zeroed structures", func(t *testing.T) {
		dash := analytics.BuildDashboard(2026, nil, nil, nil)

		assert.Equal(t, 0, dash.Summary.TotalEmployees)
		assert.Equal(t, 0, dash.Summary.TotalPTOUsed)
		assert.Equal(t, 0, dash.Summary.PlannedPercentage)
		assert.Equal(t, 0, dash.Summary.UnplannedPercentage)
		assert.Empty(t, dash.TopUsers)
		assert.Empty(t, dash.TeamEfficiency)
		assert.Empty(t, dash.RecentLeaves)

		// the breakdown keys are always present
		assert.Contains(t, dash.PTOBreakdown, "planned")
		assert.Contains(t, dash.PTOBreakdown, "unplanned")
		assert.Equal(t, analytics.TypeBreakdown{}, dash.PTOBreakdown["planned"])
	})

	t.Run("percentages always sum to one hundred when pto was used", func(t *testing.T) {
		for planned := 0; planned <= 7; planned++ {
			for unplanned := 0; unplanned <= 7; unplanned++ {
				if planned+unplanned == 0 {
					continue
				}
				leaves := []analytics.LeaveStats{
					{EmployeeID: "e1", LeaveType: "Planned", StartDate: date(2026, 1, 5), DaysCount: planned},
					{EmployeeID: "e1", LeaveType: "Unplanned", StartDate: date(2026, 1, 12), DaysCount: unplanned},
				}
				dash := analytics.BuildDashboard(2026, nil, leaves, nil)
				sum := dash.Summary.PlannedPercentage + dash.Summary.UnplannedPercentage
				assert.Equal(t, 100, sum, "planned=%d unplanned=%d", planned, unplanned)
			}
		}
	})

	t.Run("maternity and paternity excluded from pto totals", func(t *testing.T) {
		leaves := []analytics.LeaveStats{
			{EmployeeID: "e1", LeaveType: "Planned", StartDate: date(2026, 2, 2), DaysCount: 4},
			{EmployeeID: "e1", LeaveType: "Maternity Leave", StartDate: date(2026, 5, 4), DaysCount: 60},
			{EmployeeID: "e2", LeaveType: "Paternity Leave", StartDate: date(2026, 6, 1), DaysCount: 10},
		}

		dash := analytics.BuildDashboard(2026, nil, leaves, nil)

		assert.Equal(t, 4, dash.Summary.TotalPTOUsed)
		assert.Equal(t, 60, dash.Summary.MaternityDays)
		assert.Equal(t, 10, dash.Summary.PaternityDays)
		assert.Equal(t, 100, dash.Summary.PlannedPercentage)
		assert.Equal(t, 0, dash.Summary.UnplannedPercentage)
	})

	t.Run("monthly trend is a complete grid", func(t *testing.T) {
		leaves := []analytics.LeaveStats{
			{EmployeeID: "e1", LeaveType: "Planned", StartDate: date(2026, 3, 2), DaysCount: 3},
		}

		dash := analytics.BuildDashboard(2026, nil, leaves, nil)

		assert.Len(t, dash.MonthlyTrend, 24)
		assert.Equal(t, "01", dash.MonthlyTrend[0].Month)
		assert.Equal(t, "Planned", dash.MonthlyTrend[0].LeaveType)
		assert.Equal(t, "Unplanned", dash.MonthlyTrend[1].LeaveType)

		// March Planned cell carries the record, March Unplanned stays empty
		march := dash.MonthlyTrend[4]
		assert.Equal(t, "03", march.Month)
		assert.Equal(t, 1, march.Count)
		assert.Equal(t, 3, march.TotalDays)
		assert.Equal(t, 0, dash.MonthlyTrend[5].Count)
	})

	t.Run("top users ranked by total days with zero users omitted", func(t *testing.T) {
		employees := []analytics.EmployeeStats{
			{ID: "e1", Name: "Dana", TotalPtoDays: 20},
			{ID: "e2", Name: "Kim", TotalPtoDays: 20},
			{ID: "e3", Name: "Ash", TotalPtoDays: 20},
		}
		leaves := []analytics.LeaveStats{
			{EmployeeID: "e1", LeaveType: "Planned", StartDate: date(2026, 2, 2), DaysCount: 2},
			{EmployeeID: "e2", LeaveType: "Unplanned", StartDate: date(2026, 2, 9), DaysCount: 5},
		}

		dash := analytics.BuildDashboard(2026, employees, leaves, nil)

		if assert.Len(t, dash.TopUsers, 2) {
			assert.Equal(t, "Kim", dash.TopUsers[0].Name)
			assert.Equal(t, 5, dash.TopUsers[0].TotalDays)
			assert.Equal(t, "Dana", dash.TopUsers[1].Name)
		}
	})

	t.Run("zero allotment reports full efficiency", func(t *testing.T) {
		employees := []analytics.EmployeeStats{
			{ID: "e1", Name: "Dana", TotalPtoDays: 0},
		}

		dash := analytics.BuildDashboard(2026, employees, nil, nil)

		if assert.Len(t, dash.TeamEfficiency, 1) {
			assert.Equal(t, 100.0, dash.TeamEfficiency[0].WorkEfficiency)
		}
	})

	t.Run("employees without a team fall into the No Team bucket", func(t *testing.T) {
		employees := []analytics.EmployeeStats{
			{ID: "e1", Name: "Dana", Team: "", TotalPtoDays: 20},
			{ID: "e2", Name: "Kim", Team: "Platform", TotalPtoDays: 20},
		}

		dash := analytics.BuildDashboard(2026, employees, nil, nil)

		if assert.Len(t, dash.TeamWiseEfficiency, 2) {
			assert.Equal(t, analytics.NoTeam, dash.TeamWiseEfficiency[0].Team)
			assert.Equal(t, "Platform", dash.TeamWiseEfficiency[1].Team)
		}
		assert.Equal(t, analytics.NoTeam, dash.TeamEfficiency[0].Team)
	})

	t.Run("team rollup sums member usage", func(t *testing.T) {
		employees := []analytics.EmployeeStats{
			{ID: "e1", Name: "Dana", Team: "Platform", TotalPtoDays: 20},
			{ID: "e2", Name: "Kim", Team: "Platform", TotalPtoDays: 10},
		}
		leaves := []analytics.LeaveStats{
			{EmployeeID: "e1", LeaveType: "Planned", StartDate: date(2026, 2, 2), DaysCount: 4},
			{EmployeeID: "e2", LeaveType: "Unplanned", StartDate: date(2026, 2, 9), DaysCount: 3},
		}

		dash := analytics.BuildDashboard(2026, employees, leaves, nil)

		if assert.Len(t, dash.TeamWiseEfficiency, 1) {
			row := dash.TeamWiseEfficiency[0]
			assert.Equal(t, 2, row.EmployeeCount)
			assert.Equal(t, 30, row.TeamTotalPTO)
			assert.Equal(t, 7, row.TotalPTOUsed)
			// (30 - 3) / 30, one decimal
			assert.Equal(t, 90.0, row.WorkEfficiency)
			// 4 / 7, one decimal
			assert.Equal(t, 57.1, row.PlannedPercentage)
		}
	})

	t.Run("employee rows ordered by team then name", func(t *testing.T) {
		employees := []analytics.EmployeeStats{
			{ID: "e1", Name: "Zoe", Team: "Data", TotalPtoDays: 20},
			{ID: "e2", Name: "Ash", Team: "Platform", TotalPtoDays: 20},
			{ID: "e3", Name: "Kim", Team: "Data", TotalPtoDays: 20},
		}

		dash := analytics.BuildDashboard(2026, employees, nil, nil)

		names := make([]string, len(dash.TeamEfficiency))
		for i, row := range dash.TeamEfficiency {
			names[i] = row.Team + "/" + row.Name
		}
		assert.Equal(t, []string{"Data/Kim", "Data/Zoe", "Platform/Ash"}, names)
	})

	t.Run("recent leaves formatted for the feed", func(t *testing.T) {
		recent := []analytics.RecentLeave{
			{
				ID:           "l1",
				EmployeeID:   "e1",
				EmployeeName: "Dana",
				StartDate:    date(2026, 3, 2),
				EndDate:      date(2026, 3, 4),
				DaysCount:    3,
				LeaveType:    "Planned",
				Status:       "Approved",
				CreatedAt:    time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC),
			},
		}

		dash := analytics.BuildDashboard(2026, nil, nil, recent)

		if assert.Len(t, dash.RecentLeaves, 1) {
			row := dash.RecentLeaves[0]
			assert.Equal(t, "2026-03-02", row.StartDate)
			assert.Equal(t, "2026-03-04", row.EndDate)
			assert.Equal(t, "Dana", row.EmployeeName)
			assert.Equal(t, "2026-03-01T09:30:00Z", row.CreatedAt)
		}
	})
}
