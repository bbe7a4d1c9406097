package hospital

import (
	"context"
	"errors"
	"sync"
)

// ErrNotFound is returned for unknown hospital IDs.
var ErrNotFound = errors.New("hospital not found")

// Store persists hospitals. Implementations are safe for concurrent use and
// never hand out references to their internal state.
type Store interface {
	Get(ctx context.Context, id string) (*Hospital, error)
	List(ctx context.Context) ([]*Hospital, error)
	// Save inserts h or replaces the entry with the same ID.
	Save(ctx context.Context, h *Hospital) error
	UpdateBeds(ctx context.Context, id string, beds int) error
	SetActive(ctx context.Context, id string, active bool) error
}

// BatchSaver is implemented by stores that can save several hospitals
// atomically.
type BatchSaver interface {
	SaveAll(ctx context.Context, hs []*Hospital) error
}

// MemoryStore keeps hospitals in registration order.
type MemoryStore struct {
	mu    sync.RWMutex
	byID  map[string]*Hospital
	order []string
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{byID: make(map[string]*Hospital)}
}

func (s *MemoryStore) Get(_ context.Context, id string) (*Hospital, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	h, ok := s.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	return h.clone(), nil
}

func (s *MemoryStore) List(_ context.Context) ([]*Hospital, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*Hospital, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.byID[id].clone())
	}
	return out, nil
}

func (s *MemoryStore) Save(_ context.Context, h *Hospital) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.byID[h.HospitalID]; !exists {
		s.order = append(s.order, h.HospitalID)
	}
	s.byID[h.HospitalID] = h.clone()
	return nil
}

func (s *MemoryStore) UpdateBeds(_ context.Context, id string, beds int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	h, ok := s.byID[id]
	if !ok {
		return ErrNotFound
	}
	h.BedsAvailable = beds
	return nil
}

func (s *MemoryStore) SetActive(_ context.Context, id string, active bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	h, ok := s.byID[id]
	if !ok {
		return ErrNotFound
	}
	h.Active = active
	return nil
}
