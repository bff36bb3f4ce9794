package request

import "context"

// RequestService defines the manual attendance correction workflow.
type RequestService interface {
	// Submit creates a pending request. No attendance record is touched.
	Submit(ctx context.Context, req SubmitRequest) (ManualRequestResponse, error)

	// Approve is administrator-only. The status transition and the
	// attendance write happen atomically.
	Approve(ctx context.Context, req ApproveRequest) (ManualRequestResponse, error)

	// Reject is administrator-only and requires decision remarks.
	Reject(ctx context.Context, req RejectRequest) (ManualRequestResponse, error)

	// Cancel is employee-only and legal only while the request is pending.
	Cancel(ctx context.Context, id string) error

	// ListMine retrieves the authenticated employee's own requests.
	ListMine(ctx context.Context, filter RequestFilter) ([]ManualRequestResponse, error)

	// List retrieves requests across all employees (admin).
	List(ctx context.Context, filter RequestFilter) ([]ManualRequestResponse, error)
}
