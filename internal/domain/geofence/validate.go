package geofence

import (
	"github.com/hadirly/hadir-backend-go/internal/pkg/geo"
)

// Point is a device GPS fix as supplied by the caller. No geolocation calls
// happen in this package.
type Point struct {
	Latitude       float64
	Longitude      float64
	AccuracyMeters float64
}

// MatchResult reports whether a point fell inside an authorized zone.
type MatchResult struct {
	WithinFence bool
	FenceID     *string
}

// Match checks the point against every active fence in the order given.
// The boundary is inclusive: a point exactly RadiusMeters from the center is
// within the fence. When several fences overlap, the first active match in
// iteration order wins; callers only rely on the boolean.
func Match(p Point, fences []GeoFence) MatchResult {
	for _, fence := range fences {
		if !fence.Active {
			continue
		}

		distance := geo.HaversineDistance(
			p.Latitude, p.Longitude,
			fence.CenterLatitude, fence.CenterLongitude,
		)

		if distance <= fence.RadiusMeters {
			id := fence.ID
			return MatchResult{WithinFence: true, FenceID: &id}
		}
	}

	return MatchResult{WithinFence: false}
}

// FirstActive returns the first active fence in iteration order, or nil when
// none exists. Used by the WFH substitution path.
func FirstActive(fences []GeoFence) *GeoFence {
	for i := range fences {
		if fences[i].Active {
			return &fences[i]
		}
	}
	return nil
}
