package geo

import (
	"math"
	"testing"
)

func TestHaversineDistance_SamePoint(t *testing.T) {
	d := HaversineDistance(12.9716, 77.5946, 12.9716, 77.5946)
	if d != 0 {
		t.Errorf("HaversineDistance(same point) = %f, want 0", d)
	}
}

func TestHaversineDistance_KnownDistances(t *testing.T) {
	cases := []struct {
		name                   string
		lat1, lon1, lat2, lon2 float64
		want                   float64 // meters
		tolerance              float64
	}{
		// One degree of latitude is ~111.19 km
		{"one degree latitude at equator", 0, 0, 1, 0, 111195, 100},
		// Bangalore MG Road to Cubbon Park, ~1.1 km
		{"short city distance", 12.9758, 77.6045, 12.9763, 77.5929, 1260, 60},
		// ~100 m north of a fence center at Bangalore latitude
		{"hundred meters", 12.9716, 77.5946, 12.97250, 77.5946, 100, 2},
	}

	for _, c := range cases {
		got := HaversineDistance(c.lat1, c.lon1, c.lat2, c.lon2)
		if math.Abs(got-c.want) > c.tolerance {
			t.Errorf("%s: HaversineDistance = %f, want %f ± %f", c.name, got, c.want, c.tolerance)
		}
	}
}

func TestHaversineDistance_Symmetric(t *testing.T) {
	a := HaversineDistance(12.9716, 77.5946, -6.2088, 106.8456)
	b := HaversineDistance(-6.2088, 106.8456, 12.9716, 77.5946)
	if math.Abs(a-b) > 1e-6 {
		t.Errorf("distance not symmetric: %f vs %f", a, b)
	}
}
