package geofence

import "context"

// GeoFenceRepository defines data access for authorized zones. List order is
// stable (oldest first) so overlapping-fence matching stays deterministic.
type GeoFenceRepository interface {
	Create(ctx context.Context, fence GeoFence) (GeoFence, error)
	GetByID(ctx context.Context, id string) (GeoFence, error)
	List(ctx context.Context) ([]GeoFence, error)
	Update(ctx context.Context, fence GeoFence) error
	SetActive(ctx context.Context, id string, active bool) error
}
