package leave

import (
	"context"
	"time"
)

// LeaveRepository defines data access for leave records.
type LeaveRepository interface {
	// Create inserts a leave record. Auto-generated leaves hit a unique
	// constraint per (employee_id, start_date); violations map to
	// ErrDuplicateAutoDeduct.
	Create(ctx context.Context, l Leave) (Leave, error)

	GetByID(ctx context.Context, id string) (Leave, error)

	// List retrieves leave records, optionally scoped to one employee.
	List(ctx context.Context, filter LeaveFilter) ([]Leave, error)

	// HasApprovedLeaveOn reports whether the employee has an approved leave
	// whose inclusive range contains the date.
	HasApprovedLeaveOn(ctx context.Context, employeeID string, date time.Time) (bool, error)

	// HasAutoDeductionOn reports whether an auto-generated leave already
	// covers the employee on the date.
	HasAutoDeductionOn(ctx context.Context, employeeID string, date time.Time) (bool, error)

	UpdateStatus(ctx context.Context, id string, status LeaveStatus, remarks *string) error
}
