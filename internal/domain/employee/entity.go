package employee

import "time"

// Employee is the roster record. It is owned by the HR admin application and
// read-only to this service.
type Employee struct {
	ID           string
	FullName     string
	Department   string
	IsWfhEnabled bool
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
