// Package scene records accident scene locations when an emergency
// corridor is initialized, so later stages can tell when an ambulance has
// reached the scene.
package scene

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rapidrescue/rescuedge/geo"
	"github.com/rapidrescue/rescuedge/redis"
)

// StatusCorridorInitialized is reported once a scene is stored.
const StatusCorridorInitialized = "CORRIDOR_INITIALIZED"

// ErrNotFound is returned for unknown accident IDs.
var ErrNotFound = errors.New("scene not found")

// Scene is the recorded location of an accident.
type Scene struct {
	AccidentID    string    `json:"accidentId"`
	Location      geo.Point `json:"location"`
	InitializedAt time.Time `json:"initializedAt"`
}

// Store persists scenes keyed by accident ID. Saving an existing ID
// replaces it.
type Store interface {
	Save(ctx context.Context, s *Scene) error
	Get(ctx context.Context, accidentID string) (*Scene, error)
}

// MemoryStore keeps scenes for the life of the process.
type MemoryStore struct {
	mu     sync.RWMutex
	scenes map[string]Scene
}

var _ Store = (*MemoryStore)(nil)

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{scenes: make(map[string]Scene)}
}

func (m *MemoryStore) Save(_ context.Context, s *Scene) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.scenes[s.AccidentID] = *s
	return nil
}

func (m *MemoryStore) Get(_ context.Context, accidentID string) (*Scene, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.scenes[accidentID]
	if !ok {
		return nil, ErrNotFound
	}
	return &s, nil
}

// RedisKeyPrefix namespaces scene keys in Redis.
const RedisKeyPrefix = "rescuedge:scene"

// RedisStore keeps scenes in Redis and lets them expire after ttl.
type RedisStore struct {
	store *redis.TypedStore[Scene]
	ttl   time.Duration
}

var _ Store = (*RedisStore)(nil)

// NewRedisStore creates a store on client. A zero ttl keeps scenes forever.
func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{
		store: redis.NewTypedStore[Scene](client, RedisKeyPrefix),
		ttl:   ttl,
	}
}

func (r *RedisStore) Save(ctx context.Context, s *Scene) error {
	return r.store.Save(ctx, s.AccidentID, s, r.ttl)
}

func (r *RedisStore) Get(ctx context.Context, accidentID string) (*Scene, error) {
	s, err := r.store.Load(ctx, accidentID)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, ErrNotFound
	}
	return s, nil
}
