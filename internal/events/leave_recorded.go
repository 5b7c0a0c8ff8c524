package events

import "time"

const LeaveRecordedTopic = "pto.leave.lifecycle.v1"

// Source values for LeaveRecordedEvent
const (
	LeaveSourceAPI   = "api"
	LeaveSourceEmail = "email"
)

type LeaveRecordedEvent struct {
	EventType  string    `json:"event_type"`
	RequestID  string    `json:"request_id,omitempty"`
	LeaveID    string    `json:"leave_id"`
	EmployeeID string    `json:"employee_id"`
	LeaveType  string    `json:"leave_type"`
	StartDate  string    `json:"start_date"`
	EndDate    string    `json:"end_date"`
	DaysCount  int       `json:"days_count"`
	Source     string    `json:"source"`
	OccurredAt time.Time `json:"occurred_at"`
}
