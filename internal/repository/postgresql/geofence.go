package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/hadirly/hadir-backend-go/internal/domain/geofence"
	"github.com/hadirly/hadir-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type geoFenceRepository struct {
	db *database.DB
}

// Create implements geofence.GeoFenceRepository.
func (g *geoFenceRepository) Create(ctx context.Context, fence geofence.GeoFence) (geofence.GeoFence, error) {
	q := GetQuerier(ctx, g.db)

	if fence.ID == "" {
		fence.ID = uuid.NewString()
	}

	query := `
		INSERT INTO geo_fences (id, name, center_latitude, center_longitude, radius_meters, active)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		fence.ID,
		fence.Name,
		fence.CenterLatitude,
		fence.CenterLongitude,
		fence.RadiusMeters,
		fence.Active,
	).Scan(&fence.CreatedAt, &fence.UpdatedAt)
	if err != nil {
		return geofence.GeoFence{}, fmt.Errorf("failed to create geo fence: %w", err)
	}

	return fence, nil
}

// GetByID implements geofence.GeoFenceRepository.
func (g *geoFenceRepository) GetByID(ctx context.Context, id string) (geofence.GeoFence, error) {
	q := GetQuerier(ctx, g.db)

	query := `
		SELECT id, name, center_latitude, center_longitude, radius_meters, active,
			   created_at, updated_at
		FROM geo_fences
		WHERE id = $1
	`

	var fence geofence.GeoFence
	err := q.QueryRow(ctx, query, id).Scan(
		&fence.ID, &fence.Name, &fence.CenterLatitude, &fence.CenterLongitude,
		&fence.RadiusMeters, &fence.Active, &fence.CreatedAt, &fence.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return geofence.GeoFence{}, geofence.ErrGeoFenceNotFound
		}
		return geofence.GeoFence{}, fmt.Errorf("failed to get geo fence by ID: %w", err)
	}

	return fence, nil
}

// List implements geofence.GeoFenceRepository. Ordered oldest first so
// overlapping fences match deterministically.
func (g *geoFenceRepository) List(ctx context.Context) ([]geofence.GeoFence, error) {
	q := GetQuerier(ctx, g.db)

	query := `
		SELECT id, name, center_latitude, center_longitude, radius_meters, active,
			   created_at, updated_at
		FROM geo_fences
		ORDER BY created_at ASC
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query geo fences: %w", err)
	}
	defer rows.Close()

	var fences []geofence.GeoFence
	for rows.Next() {
		var fence geofence.GeoFence
		err := rows.Scan(
			&fence.ID, &fence.Name, &fence.CenterLatitude, &fence.CenterLongitude,
			&fence.RadiusMeters, &fence.Active, &fence.CreatedAt, &fence.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan geo fence: %w", err)
		}
		fences = append(fences, fence)
	}

	return fences, nil
}

// Update implements geofence.GeoFenceRepository.
func (g *geoFenceRepository) Update(ctx context.Context, fence geofence.GeoFence) error {
	q := GetQuerier(ctx, g.db)

	query := `
		UPDATE geo_fences
		SET name = $1,
			center_latitude = $2,
			center_longitude = $3,
			radius_meters = $4,
			updated_at = $5
		WHERE id = $6
	`

	tag, err := q.Exec(ctx, query,
		fence.Name, fence.CenterLatitude, fence.CenterLongitude,
		fence.RadiusMeters, time.Now(), fence.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update geo fence: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return geofence.ErrGeoFenceNotFound
	}

	return nil
}

// SetActive implements geofence.GeoFenceRepository.
func (g *geoFenceRepository) SetActive(ctx context.Context, id string, active bool) error {
	q := GetQuerier(ctx, g.db)

	query := `
		UPDATE geo_fences
		SET active = $1, updated_at = $2
		WHERE id = $3
	`

	tag, err := q.Exec(ctx, query, active, time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to set geo fence active: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return geofence.ErrGeoFenceNotFound
	}

	return nil
}

func NewGeoFenceRepository(db *database.DB) geofence.GeoFenceRepository {
	return &geoFenceRepository{db: db}
}
