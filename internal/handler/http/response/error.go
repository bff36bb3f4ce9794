package response

import (
	"errors"
	"net/http"

	"github.com/hadirly/hadir-backend-go/internal/domain/attendance"
	"github.com/hadirly/hadir-backend-go/internal/domain/employee"
	"github.com/hadirly/hadir-backend-go/internal/domain/geofence"
	"github.com/hadirly/hadir-backend-go/internal/domain/holiday"
	"github.com/hadirly/hadir-backend-go/internal/domain/leave"
	"github.com/hadirly/hadir-backend-go/internal/domain/request"
	"github.com/hadirly/hadir-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Attendance domain errors
	case errors.Is(err, attendance.ErrAlreadyCheckedIn):
		Conflict(w, "Already checked in today")
	case errors.Is(err, attendance.ErrNotCheckedIn):
		Conflict(w, "No open check-in for today")
	case errors.Is(err, attendance.ErrAlreadyCheckedOut):
		Conflict(w, "Already checked out today")
	case errors.Is(err, attendance.ErrCheckOutBeforeCheckIn):
		Conflict(w, "Check-out cannot precede check-in")
	case errors.Is(err, attendance.ErrAttendanceNotFound):
		NotFound(w, "Attendance record not found")

	// Geofence domain errors
	case errors.Is(err, geofence.ErrGeoFenceNotFound):
		NotFound(w, "Geofence not found")
	case errors.Is(err, geofence.ErrNoActiveFence):
		Conflict(w, "No active geofence is configured")

	// Manual request domain errors
	case errors.Is(err, request.ErrRequestNotFound):
		NotFound(w, "Manual attendance request not found")
	case errors.Is(err, request.ErrInvalidStateTransition):
		Conflict(w, "Request has already been decided")
	case errors.Is(err, request.ErrNotRequestOwner):
		Forbidden(w, "Only the submitting employee may cancel this request")

	// Leave domain errors
	case errors.Is(err, leave.ErrLeaveNotFound):
		NotFound(w, "Leave record not found")
	case errors.Is(err, leave.ErrLeaveAlreadyProcessed):
		Conflict(w, "Leave record already processed")
	case errors.Is(err, leave.ErrDuplicateAutoDeduct):
		Conflict(w, "Leave deduction already recorded for that day")

	// Holiday domain errors
	case errors.Is(err, holiday.ErrHolidayNotFound):
		NotFound(w, "Holiday not found")
	case errors.Is(err, holiday.ErrHolidayExists):
		Conflict(w, "A holiday already exists on that date")

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")

	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
