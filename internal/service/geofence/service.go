package geofence

import (
	"context"
	"fmt"

	"github.com/hadirly/hadir-backend-go/internal/domain/geofence"
)

type GeoFenceServiceImpl struct {
	geofence.GeoFenceRepository
}

func toResponse(fence geofence.GeoFence) geofence.GeoFenceResponse {
	return geofence.GeoFenceResponse{
		ID:              fence.ID,
		Name:            fence.Name,
		CenterLatitude:  fence.CenterLatitude,
		CenterLongitude: fence.CenterLongitude,
		RadiusMeters:    fence.RadiusMeters,
		Active:          fence.Active,
	}
}

// ValidatePoint implements geofence.GeoFenceService. An empty fence set is
// not an error: the result simply reports no containment and the caller
// decides whether to warn.
func (g *GeoFenceServiceImpl) ValidatePoint(ctx context.Context, p geofence.Point) (geofence.MatchResult, error) {
	fences, err := g.GeoFenceRepository.List(ctx)
	if err != nil {
		return geofence.MatchResult{}, fmt.Errorf("failed to list geo fences: %w", err)
	}

	return geofence.Match(p, fences), nil
}

// CaptureWFH implements geofence.GeoFenceService.
func (g *GeoFenceServiceImpl) CaptureWFH(ctx context.Context, accuracyMeters float64) (geofence.Capture, error) {
	fences, err := g.GeoFenceRepository.List(ctx)
	if err != nil {
		return geofence.Capture{}, fmt.Errorf("failed to list geo fences: %w", err)
	}

	fence := geofence.FirstActive(fences)
	if fence == nil {
		return geofence.Capture{}, geofence.ErrNoActiveFence
	}

	id := fence.ID
	return geofence.Capture{
		Latitude:       fence.CenterLatitude,
		Longitude:      fence.CenterLongitude,
		AccuracyMeters: accuracyMeters,
		WithinFence:    true,
		FenceID:        &id,
	}, nil
}

// CreateFence implements geofence.GeoFenceService.
func (g *GeoFenceServiceImpl) CreateFence(ctx context.Context, req geofence.CreateGeoFenceRequest) (geofence.GeoFenceResponse, error) {
	if err := req.Validate(); err != nil {
		return geofence.GeoFenceResponse{}, err
	}

	fence, err := g.GeoFenceRepository.Create(ctx, geofence.GeoFence{
		Name:            req.Name,
		CenterLatitude:  req.CenterLatitude,
		CenterLongitude: req.CenterLongitude,
		RadiusMeters:    req.RadiusMeters,
		Active:          true,
	})
	if err != nil {
		return geofence.GeoFenceResponse{}, err
	}

	return toResponse(fence), nil
}

// UpdateFence implements geofence.GeoFenceService.
func (g *GeoFenceServiceImpl) UpdateFence(ctx context.Context, req geofence.UpdateGeoFenceRequest) (geofence.GeoFenceResponse, error) {
	if err := req.Validate(); err != nil {
		return geofence.GeoFenceResponse{}, err
	}

	fence, err := g.GeoFenceRepository.GetByID(ctx, req.ID)
	if err != nil {
		return geofence.GeoFenceResponse{}, err
	}

	if req.Name != nil {
		fence.Name = *req.Name
	}
	if req.CenterLatitude != nil {
		fence.CenterLatitude = *req.CenterLatitude
	}
	if req.CenterLongitude != nil {
		fence.CenterLongitude = *req.CenterLongitude
	}
	if req.RadiusMeters != nil {
		fence.RadiusMeters = *req.RadiusMeters
	}

	if err := g.GeoFenceRepository.Update(ctx, fence); err != nil {
		return geofence.GeoFenceResponse{}, err
	}

	if req.Active != nil && *req.Active != fence.Active {
		if err := g.GeoFenceRepository.SetActive(ctx, fence.ID, *req.Active); err != nil {
			return geofence.GeoFenceResponse{}, err
		}
		fence.Active = *req.Active
	}

	return toResponse(fence), nil
}

// SetFenceActive implements geofence.GeoFenceService.
func (g *GeoFenceServiceImpl) SetFenceActive(ctx context.Context, id string, active bool) error {
	return g.GeoFenceRepository.SetActive(ctx, id, active)
}

// ListFences implements geofence.GeoFenceService.
func (g *GeoFenceServiceImpl) ListFences(ctx context.Context) ([]geofence.GeoFenceResponse, error) {
	fences, err := g.GeoFenceRepository.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list geo fences: %w", err)
	}

	responses := make([]geofence.GeoFenceResponse, 0, len(fences))
	for _, fence := range fences {
		responses = append(responses, toResponse(fence))
	}

	return responses, nil
}

// GetFence implements geofence.GeoFenceService.
func (g *GeoFenceServiceImpl) GetFence(ctx context.Context, id string) (geofence.GeoFenceResponse, error) {
	fence, err := g.GeoFenceRepository.GetByID(ctx, id)
	if err != nil {
		return geofence.GeoFenceResponse{}, err
	}

	return toResponse(fence), nil
}

func NewGeoFenceService(repo geofence.GeoFenceRepository) geofence.GeoFenceService {
	return &GeoFenceServiceImpl{GeoFenceRepository: repo}
}
