package holiday

import "time"

// Holiday is a company-wide non-working day.
type Holiday struct {
	ID          string
	Date        time.Time
	Name        string
	Description *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
