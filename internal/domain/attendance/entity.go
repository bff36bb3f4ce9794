package attendance

import "time"

type Source string

const (
	SourceDevice Source = "device"
	SourceManual Source = "manual"
)

// Attendance is the record of truth for one employee's work day. At most one
// record exists per (employee_id, date); CheckOut, when present, is on the
// same date and never before CheckIn.
type Attendance struct {
	ID         string
	EmployeeID string
	Date       time.Time
	CheckIn    *time.Time
	CheckOut   *time.Time

	// Location evidence captured at check-in
	Latitude       *float64
	Longitude      *float64
	AccuracyMeters *float64
	WithinFence    *bool
	FenceID        *string

	// Location evidence captured at check-out
	CheckOutLatitude       *float64
	CheckOutLongitude      *float64
	CheckOutAccuracyMeters *float64
	CheckOutWithinFence    *bool
	CheckOutFenceID        *string

	Source    Source
	CreatedAt time.Time
	UpdatedAt time.Time

	// DTO
	EmployeeName *string
}
