package leave

import "context"

// LeaveService defines business logic for leave records.
type LeaveService interface {
	// SubmitLeave creates a pending leave request for the authenticated
	// employee.
	SubmitLeave(ctx context.Context, req CreateLeaveRequest) (LeaveResponse, error)

	// UpdateLeaveStatus approves or rejects a pending leave (admin).
	UpdateLeaveStatus(ctx context.Context, req UpdateLeaveStatusRequest) (LeaveResponse, error)

	// GetMyLeaves retrieves the authenticated employee's own leave records.
	GetMyLeaves(ctx context.Context, filter LeaveFilter) ([]LeaveResponse, error)

	// ListLeaves retrieves leave records across employees (admin).
	ListLeaves(ctx context.Context, filter LeaveFilter) ([]LeaveResponse, error)
}
