package monitor

import (
	"math"
	"testing"
)

func TestHaversineKm_KnownDistances(t *testing.T) {
	tests := []struct {
		name      string
		lat1      float64
		lon1      float64
		lat2      float64
		lon2      float64
		wantKm    float64
		tolerance float64
	}{
		{
			name: "same point",
			lat1: 28.6180, lon1: 77.2110,
			lat2: 28.6180, lon2: 77.2110,
			wantKm:    0,
			tolerance: 0.001,
		},
		{
			name: "school zone center to construction zone center (~450m)",
			lat1: 28.6180, lon1: 77.2110,
			lat2: 28.6150, lon2: 77.2080,
			wantKm:    0.45,
			tolerance: 0.1,
		},
		{
			name: "Delhi to Mumbai (~1150km)",
			lat1: 28.6139, lon1: 77.2090,
			lat2: 19.0760, lon2: 72.8777,
			wantKm:    1150,
			tolerance: 30,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := haversineKm(tt.lat1, tt.lon1, tt.lat2, tt.lon2)
			if math.Abs(got-tt.wantKm) > tt.tolerance {
				t.Errorf("haversineKm() = %f, want %f (±%f)", got, tt.wantKm, tt.tolerance)
			}
		})
	}
}

func TestHaversineKm_Symmetry(t *testing.T) {
	d1 := haversineKm(28.0, 77.0, 29.0, 78.0)
	d2 := haversineKm(29.0, 78.0, 28.0, 77.0)
	if math.Abs(d1-d2) > 0.0001 {
		t.Errorf("haversine is not symmetric: %f vs %f", d1, d2)
	}
}
