package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/hadirly/hadir-backend-go/internal/domain/holiday"
	"github.com/hadirly/hadir-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type holidayRepository struct {
	db *database.DB
}

// Create implements holiday.HolidayRepository.
func (h *holidayRepository) Create(ctx context.Context, hd holiday.Holiday) (holiday.Holiday, error) {
	q := GetQuerier(ctx, h.db)

	if hd.ID == "" {
		hd.ID = uuid.NewString()
	}

	query := `
		INSERT INTO holidays (id, date, name, description)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query, hd.ID, hd.Date, hd.Name, hd.Description).
		Scan(&hd.CreatedAt, &hd.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return holiday.Holiday{}, holiday.ErrHolidayExists
		}
		return holiday.Holiday{}, fmt.Errorf("failed to create holiday: %w", err)
	}

	return hd, nil
}

// List implements holiday.HolidayRepository.
func (h *holidayRepository) List(ctx context.Context) ([]holiday.Holiday, error) {
	q := GetQuerier(ctx, h.db)

	query := `
		SELECT id, date, name, description, created_at, updated_at
		FROM holidays
		ORDER BY date ASC
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query holidays: %w", err)
	}
	defer rows.Close()

	var holidays []holiday.Holiday
	for rows.Next() {
		var hd holiday.Holiday
		err := rows.Scan(&hd.ID, &hd.Date, &hd.Name, &hd.Description, &hd.CreatedAt, &hd.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan holiday: %w", err)
		}
		holidays = append(holidays, hd)
	}

	return holidays, nil
}

// GetByDate implements holiday.HolidayRepository. Returns (nil, nil) when no
// holiday falls on the date.
func (h *holidayRepository) GetByDate(ctx context.Context, date time.Time) (*holiday.Holiday, error) {
	q := GetQuerier(ctx, h.db)

	query := `
		SELECT id, date, name, description, created_at, updated_at
		FROM holidays
		WHERE date = $1
	`

	var hd holiday.Holiday
	err := q.QueryRow(ctx, query, date).
		Scan(&hd.ID, &hd.Date, &hd.Name, &hd.Description, &hd.CreatedAt, &hd.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get holiday by date: %w", err)
	}

	return &hd, nil
}

// Delete implements holiday.HolidayRepository.
func (h *holidayRepository) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, h.db)

	tag, err := q.Exec(ctx, `DELETE FROM holidays WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete holiday: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return holiday.ErrHolidayNotFound
	}

	return nil
}

func NewHolidayRepository(db *database.DB) holiday.HolidayRepository {
	return &holidayRepository{db: db}
}
