package session

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrNotFound is returned when no persisted session exists for an id.
var ErrNotFound = errors.New("session not found")

// Store persists sessions across reloads, keyed by the opaque id carried in
// the browser cookie.
type Store interface {
	Load(ctx context.Context, id string) (Session, error)
	Save(ctx context.Context, id string, s Session) error
	Delete(ctx context.Context, id string) error
}

const keyPrefix = "session:"

type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

func (r *RedisStore) Load(ctx context.Context, id string) (Session, error) {
	raw, err := r.client.Get(ctx, keyPrefix+id).Bytes()
	if errors.Is(err, redis.Nil) {
		return Session{}, ErrNotFound
	}
	if err != nil {
		return Session{}, err
	}
	var s Session
	if err := json.Unmarshal(raw, &s); err != nil {
		// Unparsable state starts over unauthenticated.
		return Session{}, ErrNotFound
	}
	return s, nil
}

func (r *RedisStore) Save(ctx context.Context, id string, s Session) error {
	raw, err := json.Marshal(s)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, keyPrefix+id, raw, r.ttl).Err()
}

func (r *RedisStore) Delete(ctx context.Context, id string) error {
	return r.client.Del(ctx, keyPrefix+id).Err()
}

// MemoryStore backs tests and redis-less development.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]Session
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[string]Session)}
}

func (m *MemoryStore) Load(_ context.Context, id string) (Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[id]
	if !ok {
		return Session{}, ErrNotFound
	}
	return s, nil
}

func (m *MemoryStore) Save(_ context.Context, id string, s Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[id] = s
	return nil
}

func (m *MemoryStore) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
	return nil
}
