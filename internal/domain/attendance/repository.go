package attendance

import (
	"context"
	"time"
)

// AttendanceRepository defines data access for attendance records.
type AttendanceRepository interface {
	// Create creates a new attendance record. The table enforces uniqueness
	// per (employee_id, date).
	Create(ctx context.Context, att Attendance) (Attendance, error)

	GetByID(ctx context.Context, id string) (Attendance, error)

	// GetByEmployeeAndDate returns nil when no record exists for the day.
	// Used to prevent double check-in and to detect existing attendance
	// during reconciliation.
	GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*Attendance, error)

	// Update overwrites the mutable fields of an existing record.
	Update(ctx context.Context, att Attendance) error

	// UpdateTimes overwrites only the check-in/check-out fields of the
	// referenced record, leaving everything else intact. Used by the manual
	// request approval path.
	UpdateTimes(ctx context.Context, id string, checkIn, checkOut *time.Time) error

	// List retrieves attendance records with filters
	List(ctx context.Context, filter AttendanceFilter) ([]Attendance, error)

	// ListByDate retrieves every attendance record for one calendar day.
	ListByDate(ctx context.Context, date time.Time) ([]Attendance, error)

	// ListOpenByDate retrieves records for the date that have a check-in but
	// no check-out yet. Used by the auto-close job.
	ListOpenByDate(ctx context.Context, date time.Time) ([]Attendance, error)
}
