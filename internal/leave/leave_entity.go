package leave

import (
	"time"

	"pto-tracker/internal/employee"

	"github.com/google/uuid"
)

type Leave struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	EmployeeID uuid.UUID `gorm:"type:uuid;not null;index:idx_leaves_employee_dates"`

	StartDate time.Time `gorm:"type:date;not null;index:idx_leaves_employee_dates"`
	EndDate   time.Time `gorm:"type:date;not null;index:idx_leaves_employee_dates"`
	DaysCount int       `gorm:"type:int;not null"`
	LeaveType string    `gorm:"type:varchar(30);not null"`
	Status    string    `gorm:"type:varchar(20);not null;default:'Approved'"`
	Reason    string    `gorm:"type:text"`

	// Set only for records created by email ingestion; unique so a message
	// can never produce two records.
	SourceEmailID *string `gorm:"type:text;uniqueIndex:uq_leaves_source_email_id"`

	Employee *employee.Employee `gorm:"foreignKey:EmployeeID"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
