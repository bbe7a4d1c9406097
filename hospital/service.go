package hospital

import (
	"context"
	"fmt"
	"sort"

	"github.com/rapidrescue/rescuedge/geo"
	"github.com/rapidrescue/rescuedge/logger"
	"github.com/rapidrescue/rescuedge/metrics"
	"github.com/rapidrescue/rescuedge/observability"
	"github.com/rapidrescue/rescuedge/validation"
)

// Service implements the registry operations on top of a Store.
type Service struct {
	store Store
	log   *logger.Logger
}

// NewService creates a Service backed by store.
func NewService(store Store, log *logger.Logger) *Service {
	return &Service{store: store, log: log.WithComponent("hospital")}
}

// Get returns the hospital with id, or ErrNotFound.
func (s *Service) Get(ctx context.Context, id string) (*Hospital, error) {
	return s.store.Get(ctx, id)
}

// List returns every registered hospital.
func (s *Service) List(ctx context.Context) ([]*Hospital, error) {
	return s.store.List(ctx)
}

// Register validates h and inserts or replaces it.
func (s *Service) Register(ctx context.Context, h *Hospital) error {
	if err := validation.Validate(h); err != nil {
		return err
	}
	if err := s.store.Save(ctx, h); err != nil {
		return err
	}
	s.log.WithContext(ctx).Info("Hospital registered", map[string]interface{}{
		logger.FieldHospitalID: h.HospitalID,
		"beds":                 h.BedsAvailable,
	})
	s.refreshGauge(ctx)
	return nil
}

// UpdateBeds sets the free bed count of hospital id.
func (s *Service) UpdateBeds(ctx context.Context, id string, beds int) error {
	if beds < 0 {
		return fmt.Errorf("beds must be non-negative, got %d", beds)
	}
	if err := s.store.UpdateBeds(ctx, id, beds); err != nil {
		return err
	}
	metrics.BedUpdates.Inc()
	s.log.WithContext(ctx).Debug("Beds updated", map[string]interface{}{
		logger.FieldHospitalID: id,
		"beds":                 beds,
	})
	return nil
}

// SetActive marks hospital id as accepting or refusing patients.
func (s *Service) SetActive(ctx context.Context, id string, active bool) error {
	if err := s.store.SetActive(ctx, id, active); err != nil {
		return err
	}
	s.log.WithContext(ctx).Info("Hospital availability changed", map[string]interface{}{
		logger.FieldHospitalID: id,
		"active":               active,
	})
	return nil
}

// FindNearest returns the closest hospitals to point that are active,
// emergency capable, have at least q.MinBeds free beds and, when
// q.Specialty is set, list that specialty. Results are ordered by distance
// and capped at q.Limit. A non-finite or out-of-range point yields no
// results.
func (s *Service) FindNearest(ctx context.Context, point geo.Point, q Query) ([]RankedHospital, error) {
	ctx, span := observability.StartSpan(ctx, observability.SpanNearestHospitals)
	defer span.End()

	if !point.Valid() {
		return []RankedHospital{}, nil
	}
	q = q.normalized()

	all, err := s.store.List(ctx)
	if err != nil {
		observability.SetSpanError(ctx, err)
		return nil, err
	}

	ranked := make([]RankedHospital, 0, len(all))
	for _, h := range all {
		if !h.Active || !h.EmergencyCapable {
			continue
		}
		if h.BedsAvailable < q.MinBeds {
			continue
		}
		if q.Specialty != "" && !h.HasSpecialty(q.Specialty) {
			continue
		}
		ranked = append(ranked, RankedHospital{
			Hospital:   *h,
			DistanceKm: geo.HaversineKm(point, h.Location),
		})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].DistanceKm < ranked[j].DistanceKm
	})
	if len(ranked) > q.Limit {
		ranked = ranked[:q.Limit]
	}

	observability.SetSpanAttribute(ctx, observability.AttrResultSize, len(ranked))
	metrics.ObserveNearest(len(ranked))
	return ranked, nil
}

func (s *Service) refreshGauge(ctx context.Context) {
	if all, err := s.store.List(ctx); err == nil {
		metrics.HospitalsRegistered.Set(float64(len(all)))
	}
}
