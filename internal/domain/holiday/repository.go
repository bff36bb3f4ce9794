package holiday

import (
	"context"
	"time"
)

type HolidayRepository interface {
	Create(ctx context.Context, h Holiday) (Holiday, error)
	List(ctx context.Context) ([]Holiday, error)
	GetByDate(ctx context.Context, date time.Time) (*Holiday, error)
	Delete(ctx context.Context, id string) error
}
