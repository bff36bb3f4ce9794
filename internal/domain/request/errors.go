package request

import "errors"

var (
	ErrRequestNotFound = errors.New("manual attendance request not found")

	// ErrInvalidStateTransition is returned when a transition is attempted on
	// a request that has already reached a terminal status. The losing side
	// of a concurrent decision gets this, never a silent overwrite.
	ErrInvalidStateTransition = errors.New("request has already been decided")

	ErrNotRequestOwner = errors.New("only the submitting employee may cancel this request")
)
