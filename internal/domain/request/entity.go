package request

import "time"

type RequestStatus string

const (
	StatusPending   RequestStatus = "pending"
	StatusApproved  RequestStatus = "approved"
	StatusRejected  RequestStatus = "rejected"
	StatusCancelled RequestStatus = "cancelled"
)

// Terminal reports whether no further transition is legal from this status.
func (s RequestStatus) Terminal() bool {
	return s == StatusApproved || s == StatusRejected || s == StatusCancelled
}

type RequestType string

const (
	TypeNew  RequestType = "new"  // no prior attendance record for the date
	TypeEdit RequestType = "edit" // corrects an existing record
)

// ManualRequest is an employee-submitted correction to attendance history.
// Requests are never deleted; cancellation is a terminal status so the audit
// trail survives.
type ManualRequest struct {
	ID         string
	EmployeeID string
	Date       time.Time
	CheckIn    *time.Time
	CheckOut   *time.Time
	Reason     string
	Status     RequestStatus
	Type       RequestType

	// OriginalRecordID references the attendance record being corrected;
	// set only when Type is edit.
	OriginalRecordID *string

	DecisionRemarks *string
	DecidedBy       *string
	DecidedAt       *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time

	// DTO
	EmployeeName *string
}
