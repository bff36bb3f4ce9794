package request

import "context"

// ManualRequestRepository defines data access for correction requests.
type ManualRequestRepository interface {
	Create(ctx context.Context, req ManualRequest) (ManualRequest, error)

	GetByID(ctx context.Context, id string) (ManualRequest, error)

	// List retrieves requests; admins pass no employee scope, employees are
	// scoped to their own.
	List(ctx context.Context, filter RequestFilter) ([]ManualRequest, error)

	// Decide performs the terminal transition with an expected-status
	// precondition: the row is updated only while still pending, so a second
	// concurrent decision fails with ErrInvalidStateTransition.
	Decide(ctx context.Context, id string, status RequestStatus, remarks *string, decidedBy string) (ManualRequest, error)

	// Cancel moves a pending request to cancelled, same precondition as
	// Decide.
	Cancel(ctx context.Context, id string) error
}
