package leave

import "errors"

var (
	ErrLeaveNotFound         = errors.New("leave record not found")
	ErrLeaveAlreadyProcessed = errors.New("leave record has already been approved or rejected")

	// ErrDuplicateAutoDeduct surfaces the unique constraint on auto-generated
	// leaves; the reconciliation job treats it as "already done".
	ErrDuplicateAutoDeduct = errors.New("auto-deduction already exists for this employee and date")
)
