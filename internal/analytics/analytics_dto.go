package analytics

type Summary struct {
	TotalEmployees      int `json:"totalEmployees"`
	TotalPTOUsed        int `json:"totalPTOUsed"`
	PlannedPercentage   int `json:"plannedPercentage"`
	UnplannedPercentage int `json:"unplannedPercentage"`
	MaternityDays       int `json:"maternityDays"`
	PaternityDays       int `json:"paternityDays"`
	Year                int `json:"year"`
}

type TypeBreakdown struct {
	Count     int `json:"count"`
	TotalDays int `json:"totalDays"`
}

type MonthlyTrendRow struct {
	Month     string `json:"month"` // "01".."12"
	LeaveType string `json:"leave_type"`
	Count     int    `json:"count"`
	TotalDays int    `json:"total_days"`
}

type TopUserRow struct {
	EmployeeID    string `json:"id"`
	Name          string `json:"name"`
	LeaveCount    int    `json:"leave_count"`
	TotalDays     int    `json:"total_days"`
	PlannedDays   int    `json:"planned_days"`
	UnplannedDays int    `json:"unplanned_days"`
}

type EmployeeEfficiencyRow struct {
	Name              string  `json:"name"`
	Team              string  `json:"team"`
	TotalPtoDays      int     `json:"total_pto_days"`
	PtoUsed           int     `json:"pto_used"`
	PtoRemaining      int     `json:"pto_remaining"`
	Planned           int     `json:"planned"`
	Unplanned         int     `json:"unplanned"`
	PlannedPercentage float64 `json:"planned_percentage"`
	WorkEfficiency    float64 `json:"work_efficiency"`
}

type TeamEfficiencyRow struct {
	Team              string  `json:"team"`
	EmployeeCount     int     `json:"employee_count"`
	TeamTotalPTO      int     `json:"team_total_pto"`
	TotalPTOUsed      int     `json:"total_pto_used"`
	PlannedDays       int     `json:"planned_days"`
	UnplannedDays     int     `json:"unplanned_days"`
	PlannedPercentage float64 `json:"planned_percentage"`
	WorkEfficiency    float64 `json:"work_efficiency"`
}

type RecentLeaveRow struct {
	ID           string `json:"id"`
	EmployeeID   string `json:"employee_id"`
	EmployeeName string `json:"employee_name"`
	StartDate    string `json:"start_date"`
	EndDate      string `json:"end_date"`
	DaysCount    int    `json:"days_count"`
	LeaveType    string `json:"leave_type"`
	Status       string `json:"status"`
	CreatedAt    string `json:"created_at"`
}

type DashboardResponse struct {
	Summary            Summary                  `json:"summary"`
	PTOBreakdown       map[string]TypeBreakdown `json:"ptoBreakdown"`
	MonthlyTrend       []MonthlyTrendRow        `json:"monthlyTrend"`
	TopUsers           []TopUserRow             `json:"topUsers"`
	TeamEfficiency     []EmployeeEfficiencyRow  `json:"teamEfficiency"`
	TeamWiseEfficiency []TeamEfficiencyRow      `json:"teamWiseEfficiency"`
	RecentLeaves       []RecentLeaveRow         `json:"recentLeaves"`
}
