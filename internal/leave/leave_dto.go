package leave

type CreateLeaveRequest struct {
	EmployeeID string `json:"employee_id" binding:"required,uuid"`
	LeaveType  string `json:"leave_type" binding:"required"`
	StartDate  string `json:"start_date" binding:"required"`
	EndDate    string `json:"end_date" binding:"required"`
	Status     string `json:"status"`
	Reason     string `json:"reason"`

	// Populated by email ingestion only, never bound from the API.
	SourceEmailID string `json:"-"`
}

type UpdateLeaveRequest struct {
	EmployeeID string `json:"employee_id" binding:"required,uuid"`
	LeaveType  string `json:"leave_type" binding:"required"`
	StartDate  string `json:"start_date" binding:"required"`
	EndDate    string `json:"end_date" binding:"required"`
	Status     string `json:"status"`
	Reason     string `json:"reason"`
}

type LeaveFilter struct {
	EmployeeID string `form:"employee_id" binding:"omitempty,uuid"`
	Year       int    `form:"year" binding:"omitempty,min=1970"`
}

type LeaveResponse struct {
	ID            string `json:"id"`
	EmployeeID    string `json:"employee_id"`
	EmployeeName  string `json:"employee_name,omitempty"`
	LeaveType     string `json:"leave_type"`
	StartDate     string `json:"start_date"`
	EndDate       string `json:"end_date"`
	DaysCount     int    `json:"days_count"`
	Status        string `json:"status"`
	Reason        string `json:"reason,omitempty"`
	SourceEmailID string `json:"source_email_id,omitempty"`
	CreatedAt     string `json:"created_at"`
}
