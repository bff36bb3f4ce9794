package request

import (
	"strings"
	"time"

	"github.com/hadirly/hadir-backend-go/internal/pkg/validator"
)

type SubmitRequest struct {
	EmployeeID       string  `json:"-"`
	Date             string  `json:"date"`                     // YYYY-MM-DD
	CheckInTime      *string `json:"check_in_time,omitempty"`  // HH:MM or HH:MM:SS
	CheckOutTime     *string `json:"check_out_time,omitempty"` // HH:MM or HH:MM:SS
	Reason           string  `json:"reason"`
	Type             string  `json:"type"` // new | edit
	OriginalRecordID *string `json:"original_record_id,omitempty"`
}

func (r *SubmitRequest) Validate() error {
	var errs validator.ValidationErrors

	if _, valid := validator.IsValidDate(r.Date); !valid {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date must be in YYYY-MM-DD format",
		})
	}

	hasCheckIn := r.CheckInTime != nil && *r.CheckInTime != ""
	hasCheckOut := r.CheckOutTime != nil && *r.CheckOutTime != ""

	if !hasCheckIn && !hasCheckOut {
		errs = append(errs, validator.ValidationError{
			Field:   "check_in_time",
			Message: "at least one of check_in_time or check_out_time is required",
		})
	}

	checkInValid, checkOutValid := false, false
	var checkIn, checkOut time.Time

	if hasCheckIn {
		if checkIn, checkInValid = validator.IsValidClockTime(*r.CheckInTime); !checkInValid {
			errs = append(errs, validator.ValidationError{
				Field:   "check_in_time",
				Message: "check_in_time must be in HH:MM or HH:MM:SS format",
			})
		}
	}

	if hasCheckOut {
		if checkOut, checkOutValid = validator.IsValidClockTime(*r.CheckOutTime); !checkOutValid {
			errs = append(errs, validator.ValidationError{
				Field:   "check_out_time",
				Message: "check_out_time must be in HH:MM or HH:MM:SS format",
			})
		}
	}

	if checkInValid && checkOutValid && checkOut.Before(checkIn) {
		errs = append(errs, validator.ValidationError{
			Field:   "check_out_time",
			Message: "check_out_time must not be earlier than check_in_time",
		})
	}

	if validator.IsEmpty(r.Reason) {
		errs = append(errs, validator.ValidationError{
			Field:   "reason",
			Message: "reason is required",
		})
	}

	reqType := RequestType(strings.ToLower(r.Type))
	switch reqType {
	case TypeNew:
	case TypeEdit:
		if r.OriginalRecordID == nil || validator.IsEmpty(*r.OriginalRecordID) {
			errs = append(errs, validator.ValidationError{
				Field:   "original_record_id",
				Message: "original_record_id is required for edit requests",
			})
		}
	default:
		errs = append(errs, validator.ValidationError{
			Field:   "type",
			Message: "type must be one of: new, edit",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// ApproveRequest carries the administrator's approval. Remarks are optional.
type ApproveRequest struct {
	ID      string  `json:"-"`
	Remarks *string `json:"remarks,omitempty"`
}

// RejectRequest carries the administrator's rejection. Remarks are mandatory.
type RejectRequest struct {
	ID      string `json:"-"`
	Remarks string `json:"remarks"`
}

func (r *RejectRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Remarks) {
		errs = append(errs, validator.ValidationError{
			Field:   "remarks",
			Message: "decision remarks are required when rejecting",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type RequestFilter struct {
	EmployeeID *string `json:"employee_id,omitempty"`
	Status     *string `json:"status,omitempty"`
	Search     *string `json:"search,omitempty"` // matched against date, reason and status
}

func (f *RequestFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.Status != nil && *f.Status != "" {
		validStatuses := []string{"pending", "approved", "rejected", "cancelled"}
		if !validator.IsInSlice(strings.ToLower(*f.Status), validStatuses) {
			errs = append(errs, validator.ValidationError{
				Field:   "status",
				Message: "status must be one of: pending, approved, rejected, cancelled",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type ManualRequestResponse struct {
	ID               string  `json:"id"`
	EmployeeID       string  `json:"employee_id"`
	EmployeeName     *string `json:"employee_name,omitempty"`
	Date             string  `json:"date"`
	CheckInTime      *string `json:"check_in_time,omitempty"`
	CheckOutTime     *string `json:"check_out_time,omitempty"`
	Reason           string  `json:"reason"`
	Status           string  `json:"status"`
	Type             string  `json:"type"`
	OriginalRecordID *string `json:"original_record_id,omitempty"`
	DecisionRemarks  *string `json:"decision_remarks,omitempty"`
	CreatedAt        string  `json:"created_at"`
}
