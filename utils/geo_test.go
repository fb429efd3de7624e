package utils

import (
	"math"
	"testing"
)

func TestHaversineZeroDistance(t *testing.T) {
	d := Haversine(28.6139, 77.2090, 28.6139, 77.2090)
	if d != 0 {
		t.Errorf("distance to self = %v, want 0", d)
	}
}

func TestHaversineKnownDistance(t *testing.T) {
	// Delhi to Mumbai, roughly 1150 km great-circle.
	d := Haversine(28.6139, 77.2090, 19.0760, 72.8777)
	if d < 1100 || d > 1200 {
		t.Errorf("Delhi-Mumbai distance = %v km, want ~1150", d)
	}
}

func TestHaversineSymmetry(t *testing.T) {
	a := Haversine(28.6139, 77.2090, 12.9716, 77.5946)
	b := Haversine(12.9716, 77.5946, 28.6139, 77.2090)
	if math.Abs(a-b) > 1e-9 {
		t.Errorf("distance is not symmetric: %v vs %v", a, b)
	}
}

func TestHaversineShortDistance(t *testing.T) {
	// Two points ~1.1 km apart (0.01 degrees of latitude).
	d := Haversine(28.6139, 77.2090, 28.6239, 77.2090)
	if d < 1.0 || d > 1.2 {
		t.Errorf("short distance = %v km, want ~1.11", d)
	}
}
