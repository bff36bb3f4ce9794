package attendance

import "errors"

// Attendance domain errors
var (
	// Check-in/out errors
	ErrAlreadyCheckedIn  = errors.New("you have already checked in today")
	ErrNotCheckedIn      = errors.New("you have not checked in yet")
	ErrAlreadyCheckedOut = errors.New("you have already checked out")

	// General errors
	ErrAttendanceNotFound    = errors.New("attendance record not found")
	ErrCheckOutBeforeCheckIn = errors.New("check-out time must not be before check-in time")
)
