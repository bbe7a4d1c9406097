// Package hospital is the registry of receiving hospitals: their location,
// specialties and live bed availability, plus the nearest-hospital search
// used to route ambulances away from an accident scene.
package hospital

import (
	"slices"

	"github.com/rapidrescue/rescuedge/geo"
)

// Hospital is a registry entry.
type Hospital struct {
	HospitalID       string    `json:"hospitalId" validate:"required,max=64"`
	Name             string    `json:"name" validate:"required,max=200"`
	Location         geo.Point `json:"location"`
	Phone            string    `json:"phone" validate:"omitempty,e164"`
	Specialties      []string  `json:"specialties" validate:"min=1,dive,specialty"`
	BedsAvailable    int       `json:"bedsAvailable" validate:"gte=0"`
	EmergencyCapable bool      `json:"emergencyCapable"`
	// Active reports whether the hospital is accepting patients.
	Active bool `json:"active"`
}

// HasSpecialty reports whether h lists specialty.
func (h *Hospital) HasSpecialty(specialty string) bool {
	return slices.Contains(h.Specialties, specialty)
}

func (h *Hospital) clone() *Hospital {
	c := *h
	c.Specialties = slices.Clone(h.Specialties)
	return &c
}

// RankedHospital is a search result with its distance from the query point.
type RankedHospital struct {
	Hospital
	DistanceKm float64 `json:"distanceKm"`
}

// Query narrows a nearest-hospital search.
type Query struct {
	// Specialty, when set, keeps only hospitals listing it.
	Specialty string
	// MinBeds is the minimum free beds. Values below 1 mean 1.
	MinBeds int
	// Limit caps the result size. Values below 1 mean 1.
	Limit int
}

func (q Query) normalized() Query {
	if q.MinBeds < 1 {
		q.MinBeds = 1
	}
	if q.Limit < 1 {
		q.Limit = 1
	}
	return q
}
