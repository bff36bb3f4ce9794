package geofence

import "time"

// GeoFence is a circular authorized check-in zone. Only active fences
// participate in validation.
type GeoFence struct {
	ID              string
	Name            string
	CenterLatitude  float64
	CenterLongitude float64
	RadiusMeters    float64
	Active          bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
