package geofence

import "context"

// GeoFenceService defines validation and administration of authorized zones.
type GeoFenceService interface {
	// ValidatePoint checks a device fix against the active fences.
	ValidatePoint(ctx context.Context, p Point) (MatchResult, error)

	// CaptureWFH substitutes the first active fence's center for an employee
	// who is allowed to work from home.
	CaptureWFH(ctx context.Context, accuracyMeters float64) (Capture, error)

	// CreateFence creates a new authorized zone (admin)
	CreateFence(ctx context.Context, req CreateGeoFenceRequest) (GeoFenceResponse, error)

	// UpdateFence modifies an existing zone (admin)
	UpdateFence(ctx context.Context, req UpdateGeoFenceRequest) (GeoFenceResponse, error)

	// SetFenceActive activates or deactivates a zone (admin)
	SetFenceActive(ctx context.Context, id string, active bool) error

	// ListFences retrieves all zones
	ListFences(ctx context.Context) ([]GeoFenceResponse, error)

	// GetFence retrieves a single zone
	GetFence(ctx context.Context, id string) (GeoFenceResponse, error)
}
