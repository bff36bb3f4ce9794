package geofence

import (
	"testing"

	"github.com/hadirly/hadir-backend-go/internal/pkg/geo"
)

func fence(id string, lat, lon, radius float64, active bool) GeoFence {
	return GeoFence{
		ID:              id,
		Name:            id,
		CenterLatitude:  lat,
		CenterLongitude: lon,
		RadiusMeters:    radius,
		Active:          active,
	}
}

func TestMatch(t *testing.T) {
	// 0.00072 degrees of latitude is roughly 80m, 0.00135 roughly 150m.
	office := fence("office", 12.9716, 77.5946, 100, true)
	near := Point{Latitude: 12.9716 + 0.00072, Longitude: 77.5946}
	far := Point{Latitude: 12.9716 + 0.00135, Longitude: 77.5946}

	cases := []struct {
		name   string
		point  Point
		fences []GeoFence
		within bool
		fence  string
	}{
		{"at center", Point{Latitude: 12.9716, Longitude: 77.5946}, []GeoFence{office}, true, "office"},
		{"80m inside 100m radius", near, []GeoFence{office}, true, "office"},
		{"150m outside 100m radius", far, []GeoFence{office}, false, ""},
		{"no fences configured", near, nil, false, ""},
		{"inactive fence skipped", near, []GeoFence{fence("office", 12.9716, 77.5946, 100, false)}, false, ""},
	}

	for _, c := range cases {
		got := Match(c.point, c.fences)
		if got.WithinFence != c.within {
			t.Errorf("%s: WithinFence = %v, want %v", c.name, got.WithinFence, c.within)
		}
		if c.fence == "" && got.FenceID != nil {
			t.Errorf("%s: FenceID = %q, want nil", c.name, *got.FenceID)
		}
		if c.fence != "" && (got.FenceID == nil || *got.FenceID != c.fence) {
			t.Errorf("%s: FenceID = %v, want %q", c.name, got.FenceID, c.fence)
		}
	}
}

func TestMatch_BoundaryIsInclusive(t *testing.T) {
	center := Point{Latitude: 12.9716, Longitude: 77.5946}
	edge := Point{Latitude: 12.9716 + 0.0009, Longitude: 77.5946}

	// Size the radius to the exact distance so the point sits on the boundary.
	exact := geo.HaversineDistance(center.Latitude, center.Longitude, edge.Latitude, edge.Longitude)
	f := fence("edge", center.Latitude, center.Longitude, exact, true)

	if got := Match(edge, []GeoFence{f}); !got.WithinFence {
		t.Error("point exactly on the fence boundary must be within")
	}
}

func TestMatch_FirstActiveFenceWins(t *testing.T) {
	a := fence("first", 12.9716, 77.5946, 500, true)
	b := fence("second", 12.9716, 77.5946, 500, true)
	p := Point{Latitude: 12.9716, Longitude: 77.5946}

	got := Match(p, []GeoFence{a, b})
	if got.FenceID == nil || *got.FenceID != "first" {
		t.Errorf("overlapping fences: matched %v, want first in order", got.FenceID)
	}

	inactive := fence("first", 12.9716, 77.5946, 500, false)
	got = Match(p, []GeoFence{inactive, b})
	if got.FenceID == nil || *got.FenceID != "second" {
		t.Errorf("inactive first fence: matched %v, want second", got.FenceID)
	}
}

func TestFirstActive(t *testing.T) {
	if f := FirstActive(nil); f != nil {
		t.Error("FirstActive(nil) should be nil")
	}

	fences := []GeoFence{
		fence("old", 0, 0, 50, false),
		fence("current", 0, 0, 50, true),
	}
	f := FirstActive(fences)
	if f == nil || f.ID != "current" {
		t.Errorf("FirstActive = %v, want the first active fence", f)
	}
}
