package geo

import (
	"math"
	"testing"
)

func TestHaversineKm(t *testing.T) {
	tests := []struct {
		name    string
		a, b    Point
		want    float64
		epsilon float64
	}{
		{"same point", Point{18.5308, 73.8774}, Point{18.5308, 73.8774}, 0, 1e-9},
		{"one degree of latitude", Point{0, 0}, Point{1, 0}, 111.19, 0.01},
		{"Ruby Hall to KEM", Point{18.5308, 73.8774}, Point{18.5018, 73.8636}, 3.54, 0.05},
		{"Mumbai to Pune", Point{19.0760, 72.8777}, Point{18.5204, 73.8567}, 120.15, 0.1},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := HaversineKm(tc.a, tc.b)
			if math.Abs(got-tc.want) > tc.epsilon {
				t.Errorf("HaversineKm = %.4f, want %.4f ± %.2f", got, tc.want, tc.epsilon)
			}
			if back := HaversineKm(tc.b, tc.a); math.Abs(back-got) > 1e-9 {
				t.Errorf("distance not symmetric: %f vs %f", got, back)
			}
		})
	}
}

func TestLinks(t *testing.T) {
	p := Point{Lat: 19.076, Lng: 72.8777}

	if got := MapLink(p); got != "https://www.google.com/maps?q=19.076,72.8777" {
		t.Errorf("MapLink = %q", got)
	}
	if got := NavigationLink(Point{18.531, 73.876}); got != "https://www.google.com/maps/dir/?api=1&destination=18.531,73.876" {
		t.Errorf("NavigationLink = %q", got)
	}
}

func TestIsNaN(t *testing.T) {
	if (Point{1, 2}).IsNaN() {
		t.Error("finite point reported NaN")
	}
	if !(Point{math.NaN(), 2}).IsNaN() || !(Point{1, math.NaN()}).IsNaN() {
		t.Error("NaN coordinate not detected")
	}
}

func TestValid(t *testing.T) {
	tests := []struct {
		name string
		p    Point
		want bool
	}{
		{"pune", Point{18.5204, 73.8567}, true},
		{"poles and antimeridian", Point{-90, 180}, true},
		{"NaN", Point{math.NaN(), 73.8}, false},
		{"positive infinity", Point{math.Inf(1), 73.8}, false},
		{"negative infinity", Point{18.5, math.Inf(-1)}, false},
		{"latitude too large", Point{90.5, 0}, false},
		{"longitude too small", Point{0, -180.1}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.p.Valid(); got != tt.want {
				t.Errorf("Valid() = %v, want %v", got, tt.want)
			}
		})
	}
}
