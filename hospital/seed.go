package hospital

import (
	"context"
	"fmt"

	"github.com/rapidrescue/rescuedge/geo"
)

// DemoHospitals returns the hospitals seeded outside production, all
// around Pune.
func DemoHospitals() []*Hospital {
	return []*Hospital{
		{
			HospitalID: "HOSP-RUBY", Name: "Ruby Hall Clinic",
			Location: geo.Point{Lat: 18.5308, Lng: 73.8774}, Phone: "+912026163391",
			Specialties: []string{"TRAUMA", "CARDIAC", "GENERAL"}, BedsAvailable: 12,
			EmergencyCapable: true, Active: true,
		},
		{
			HospitalID: "HOSP-KEM", Name: "KEM Hospital Pune",
			Location: geo.Point{Lat: 18.5018, Lng: 73.8636}, Phone: "+912026126000",
			Specialties: []string{"TRAUMA", "BURN", "GENERAL"}, BedsAvailable: 8,
			EmergencyCapable: true, Active: true,
		},
		{
			HospitalID: "HOSP-SAHYADRI", Name: "Sahyadri Hospital Deccan",
			Location: geo.Point{Lat: 18.5128, Lng: 73.8412}, Phone: "+912067215000",
			Specialties: []string{"TRAUMA", "CARDIAC", "NEURO", "GENERAL"}, BedsAvailable: 15,
			EmergencyCapable: true, Active: true,
		},
		{
			HospitalID: "HOSP-JEHANGIR", Name: "Jehangir Hospital",
			Location: geo.Point{Lat: 18.5310, Lng: 73.8760}, Phone: "+912026053600",
			Specialties: []string{"TRAUMA", "CARDIAC", "GENERAL"}, BedsAvailable: 10,
			EmergencyCapable: true, Active: true,
		},
		{
			HospitalID: "HOSP-SASSOON", Name: "Sassoon General Hospital",
			Location: geo.Point{Lat: 18.5165, Lng: 73.8721}, Phone: "+912026128000",
			Specialties: []string{"TRAUMA", "BURN", "GENERAL"}, BedsAvailable: 20,
			EmergencyCapable: true, Active: true,
		},
		{
			HospitalID: "HOSP-ADITYA-BIRLA", Name: "Aditya Birla Memorial Hospital",
			Location: geo.Point{Lat: 18.6298, Lng: 73.7997}, Phone: "+912030717171",
			Specialties: []string{"TRAUMA", "CARDIAC", "NEURO", "GENERAL"}, BedsAvailable: 18,
			EmergencyCapable: true, Active: true,
		},
	}
}

// Seed registers the demo hospitals and returns how many were stored.
func (s *Service) Seed(ctx context.Context) (int, error) {
	demo := DemoHospitals()
	if batch, ok := s.store.(BatchSaver); ok {
		if err := batch.SaveAll(ctx, demo); err != nil {
			return 0, fmt.Errorf("seed hospitals: %w", err)
		}
	} else {
		for _, h := range demo {
			if err := s.store.Save(ctx, h); err != nil {
				return 0, fmt.Errorf("seed %s: %w", h.HospitalID, err)
			}
		}
	}
	s.refreshGauge(ctx)
	s.log.Info(fmt.Sprintf("Seeded %d demo hospitals", len(demo)))
	return len(demo), nil
}
