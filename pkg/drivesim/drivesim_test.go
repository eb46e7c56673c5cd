package drivesim

import (
	"math/rand"
	"testing"

	"drivedash/internal/domain"
)

func TestRoutePlayback_Wraps(t *testing.T) {
	points := []domain.Position{
		{Lat: 1, Lon: 1},
		{Lat: 2, Lon: 2},
		{Lat: 3, Lon: 3},
	}
	r := NewRoutePlayback(points)

	for lap := 0; lap < 2; lap++ {
		for _, want := range points {
			if got := r.Next(); got != want {
				t.Fatalf("lap %d: got %+v, want %+v", lap, got, want)
			}
		}
	}
}

func TestRoutePlayback_Empty(t *testing.T) {
	r := NewRoutePlayback(nil)
	if got := r.Next(); got != (domain.Position{}) {
		t.Errorf("expected zero position, got %+v", got)
	}
}

func TestDefaultRoute_AllWaypointsValid(t *testing.T) {
	r := DefaultRoute()
	for i := 0; i < r.Len(); i++ {
		if p := r.Next(); !p.Valid() {
			t.Errorf("waypoint %d out of range: %+v", i, p)
		}
	}
}

func TestSpeedProfile_Bounds(t *testing.T) {
	p := NewSpeedProfile(rand.New(rand.NewSource(42)))

	max := p.BaseKmh + p.SpreadKmh + p.BurstKmh
	sawBurst := false
	for i := 0; i < 1000; i++ {
		s := p.Next()
		if s < 0 || s > max {
			t.Fatalf("speed %f outside [0, %f]", s, max)
		}
		if s > p.BaseKmh+p.SpreadKmh {
			sawBurst = true
		}
	}
	if !sawBurst {
		t.Error("expected at least one burst over 1000 ticks")
	}
}

func TestSpeedProfile_DeterministicWithSeed(t *testing.T) {
	a := NewSpeedProfile(rand.New(rand.NewSource(7)))
	b := NewSpeedProfile(rand.New(rand.NewSource(7)))

	for i := 0; i < 50; i++ {
		if a.Next() != b.Next() {
			t.Fatal("same seed produced different sequences")
		}
	}
}
