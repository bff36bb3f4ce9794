package attendance

import "context"

// AttendanceService defines business logic for attendance capture.
type AttendanceService interface {
	// CheckIn records the employee's arrival after geofence validation (or
	// WFH substitution).
	CheckIn(ctx context.Context, req CheckInRequest) (AttendanceResponse, error)

	// CheckOut closes the employee's open record for today.
	CheckOut(ctx context.Context, req CheckOutRequest) (AttendanceResponse, error)

	// GetMyAttendance retrieves records for the authenticated employee
	GetMyAttendance(ctx context.Context, filter AttendanceFilter) ([]AttendanceResponse, error)

	// ListAttendance retrieves records across employees (admin)
	ListAttendance(ctx context.Context, filter AttendanceFilter) ([]AttendanceResponse, error)
}
