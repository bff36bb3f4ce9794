package leave

import "time"

type LeaveStatus string

const (
	LeaveStatusPending  LeaveStatus = "pending"
	LeaveStatusApproved LeaveStatus = "approved"
	LeaveStatusRejected LeaveStatus = "rejected"
)

func (s LeaveStatus) Valid() bool {
	switch s {
	case LeaveStatusPending, LeaveStatusApproved, LeaveStatusRejected:
		return true
	}
	return false
}

type LeaveType string

const (
	LeaveTypeCasual LeaveType = "casual"
	LeaveTypeSick   LeaveType = "sick"
	LeaveTypeUnpaid LeaveType = "unpaid"
)

func (t LeaveType) Valid() bool {
	switch t {
	case LeaveTypeCasual, LeaveTypeSick, LeaveTypeUnpaid:
		return true
	}
	return false
}

// AutoDeductReason is written on leaves created by the reconciliation job.
const AutoDeductReason = "Auto-deducted for absence"

// Leave is a leave record over an inclusive date range.
type Leave struct {
	ID            string
	EmployeeID    string
	StartDate     time.Time
	EndDate       time.Time
	Type          LeaveType
	Status        LeaveStatus
	Reason        string
	AutoGenerated bool
	CreatedAt     time.Time
	UpdatedAt     time.Time

	// DTO
	EmployeeName *string
}

// Covers reports whether the inclusive [StartDate, EndDate] range contains
// the given calendar day. Closed-interval check; no day stepping.
func (l Leave) Covers(date time.Time) bool {
	day := date.Truncate(24 * time.Hour)
	start := l.StartDate.Truncate(24 * time.Hour)
	end := l.EndDate.Truncate(24 * time.Hour)
	return !day.Before(start) && !day.After(end)
}
