// Package geo holds the coordinate type shared by hospitals, accident
// scenes and alerts, plus great-circle distance and map links.
package geo

import (
	"math"
	"strconv"
)

// EarthRadiusKm is the mean earth radius used for distances.
const EarthRadiusKm = 6371

// Point is a WGS84 coordinate in decimal degrees.
type Point struct {
	Lat float64 `json:"lat" validate:"latitude"`
	Lng float64 `json:"lng" validate:"longitude"`
}

// IsNaN reports whether either coordinate is NaN.
func (p Point) IsNaN() bool {
	return math.IsNaN(p.Lat) || math.IsNaN(p.Lng)
}

// Valid reports whether p is a finite coordinate inside the latitude and
// longitude ranges.
func (p Point) Valid() bool {
	return p.Lat >= -90 && p.Lat <= 90 && p.Lng >= -180 && p.Lng <= 180
}

// HaversineKm returns the great-circle distance between a and b in km.
func HaversineKm(a, b Point) float64 {
	phi1 := a.Lat * math.Pi / 180
	phi2 := b.Lat * math.Pi / 180
	dPhi := (b.Lat - a.Lat) * math.Pi / 180
	dLambda := (b.Lng - a.Lng) * math.Pi / 180

	x := math.Pow(math.Sin(dPhi/2), 2) + math.Cos(phi1)*math.Cos(phi2)*math.Pow(math.Sin(dLambda/2), 2)
	return 2 * EarthRadiusKm * math.Atan2(math.Sqrt(x), math.Sqrt(1-x))
}

// MapLink returns a Google Maps link that drops a pin on p.
func MapLink(p Point) string {
	return "https://www.google.com/maps?q=" + p.String()
}

// NavigationLink returns a Google Maps link with directions to p.
func NavigationLink(p Point) string {
	return "https://www.google.com/maps/dir/?api=1&destination=" + p.String()
}

// String formats p as "lat,lng" using the shortest exact decimal form.
func (p Point) String() string {
	return strconv.FormatFloat(p.Lat, 'f', -1, 64) + "," + strconv.FormatFloat(p.Lng, 'f', -1, 64)
}
