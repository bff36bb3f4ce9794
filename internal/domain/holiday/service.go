package holiday

import "context"

// HolidayService defines administration of the holiday calendar.
type HolidayService interface {
	CreateHoliday(ctx context.Context, req CreateHolidayRequest) (HolidayResponse, error)
	ListHolidays(ctx context.Context) ([]HolidayResponse, error)
	DeleteHoliday(ctx context.Context, id string) error
}
