package hospital

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/rapidrescue/rescuedge/database"
	"github.com/rapidrescue/rescuedge/geo"
)

// Record is the database row for a hospital.
type Record struct {
	HospitalID       string `gorm:"primaryKey;size:64"`
	Name             string `gorm:"size:200;not null"`
	Lat              float64
	Lng              float64
	Phone            string `gorm:"size:32"`
	Specialties      string `gorm:"size:255"` // comma-joined
	BedsAvailable    int    `gorm:"not null;default:0"`
	EmergencyCapable bool
	Active           bool `gorm:"index"`
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// TableName pins the table name.
func (Record) TableName() string { return "hospitals" }

func toRecord(h *Hospital) *Record {
	return &Record{
		HospitalID:       h.HospitalID,
		Name:             h.Name,
		Lat:              h.Location.Lat,
		Lng:              h.Location.Lng,
		Phone:            h.Phone,
		Specialties:      strings.Join(h.Specialties, ","),
		BedsAvailable:    h.BedsAvailable,
		EmergencyCapable: h.EmergencyCapable,
		Active:           h.Active,
	}
}

func (r *Record) toHospital() *Hospital {
	var specialties []string
	if r.Specialties != "" {
		specialties = strings.Split(r.Specialties, ",")
	}
	return &Hospital{
		HospitalID:       r.HospitalID,
		Name:             r.Name,
		Location:         geo.Point{Lat: r.Lat, Lng: r.Lng},
		Phone:            r.Phone,
		Specialties:      specialties,
		BedsAvailable:    r.BedsAvailable,
		EmergencyCapable: r.EmergencyCapable,
		Active:           r.Active,
	}
}

// GormStore keeps hospitals in the "hospitals" table.
type GormStore struct {
	db *database.DB
}

var (
	_ Store      = (*GormStore)(nil)
	_ BatchSaver = (*GormStore)(nil)
)

// NewGormStore creates a store on db. The table must exist; see Record.
func NewGormStore(db *database.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) Get(ctx context.Context, id string) (*Hospital, error) {
	var rec Record
	err := s.db.WithContext(ctx).First(&rec, "hospital_id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get hospital %s: %w", id, err)
	}
	return rec.toHospital(), nil
}

func (s *GormStore) List(ctx context.Context) ([]*Hospital, error) {
	var recs []Record
	if err := s.db.WithContext(ctx).Order("created_at, hospital_id").Find(&recs).Error; err != nil {
		return nil, fmt.Errorf("list hospitals: %w", err)
	}
	out := make([]*Hospital, 0, len(recs))
	for i := range recs {
		out = append(out, recs[i].toHospital())
	}
	return out, nil
}

func (s *GormStore) Save(ctx context.Context, h *Hospital) error {
	return upsert(s.db.WithContext(ctx), h)
}

// SaveAll upserts hs in one transaction; either all of them are stored or
// none are.
func (s *GormStore) SaveAll(ctx context.Context, hs []*Hospital) error {
	return s.db.WithTransaction(ctx, func(tx *gorm.DB) error {
		for _, h := range hs {
			if err := upsert(tx, h); err != nil {
				return err
			}
		}
		return nil
	})
}

func upsert(tx *gorm.DB, h *Hospital) error {
	err := tx.
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "hospital_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"name", "lat", "lng", "phone", "specialties",
				"beds_available", "emergency_capable", "active", "updated_at",
			}),
		}).
		Create(toRecord(h)).Error
	if err != nil {
		return fmt.Errorf("save hospital %s: %w", h.HospitalID, err)
	}
	return nil
}

func (s *GormStore) UpdateBeds(ctx context.Context, id string, beds int) error {
	return s.update(ctx, id, "beds_available", beds)
}

func (s *GormStore) SetActive(ctx context.Context, id string, active bool) error {
	return s.update(ctx, id, "active", active)
}

func (s *GormStore) update(ctx context.Context, id, column string, value any) error {
	res := s.db.WithContext(ctx).Model(&Record{}).Where("hospital_id = ?", id).Update(column, value)
	if res.Error != nil {
		return fmt.Errorf("update hospital %s %s: %w", id, column, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
