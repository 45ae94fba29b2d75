// README: Session stores: redis-backed cache plus an in-memory double.
package session

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// Store is the key-value session store the orchestrator is wired with.
// Implementations return ErrNotFound for ids that were never saved.
type Store interface {
	Get(ctx context.Context, userID string) (*Session, error)
	Save(ctx context.Context, sess *Session) error
}

const keyPrefix = "travelai:session:"

// RedisStore keeps sessions as JSON values in redis. Entries are volatile:
// they live until the TTL or redis eviction, never durably.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

type RedisOption func(*RedisStore)

// WithTTL sets the expiration for session entries. Zero means no expiry.
func WithTTL(ttl time.Duration) RedisOption {
	return func(s *RedisStore) {
		s.ttl = ttl
	}
}

func NewRedisStore(client *redis.Client, opts ...RedisOption) *RedisStore {
	s := &RedisStore{client: client}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *RedisStore) Get(ctx context.Context, userID string) (*Session, error) {
	raw, err := s.client.Get(ctx, keyPrefix+userID).Bytes()
	if err == redis.Nil {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("session: get %s: %w", userID, err)
	}
	var sess Session
	if err := json.Unmarshal(raw, &sess); err != nil {
		return nil, fmt.Errorf("session: decode %s: %w", userID, err)
	}
	return &sess, nil
}

func (s *RedisStore) Save(ctx context.Context, sess *Session) error {
	raw, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("session: encode %s: %w", sess.UserID, err)
	}
	if err := s.client.Set(ctx, keyPrefix+sess.UserID, raw, s.ttl).Err(); err != nil {
		return fmt.Errorf("session: save %s: %w", sess.UserID, err)
	}
	return nil
}

// MemoryStore is a process-local Store used in tests and when no redis is
// configured. It stores marshaled JSON so readers always get an isolated
// copy, matching the redis store's semantics.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[string][]byte)}
}

func (s *MemoryStore) Get(_ context.Context, userID string) (*Session, error) {
	s.mu.RLock()
	raw, ok := s.sessions[userID]
	s.mu.RUnlock()
	if !ok {
		return nil, ErrNotFound
	}
	var sess Session
	if err := json.Unmarshal(raw, &sess); err != nil {
		return nil, fmt.Errorf("session: decode %s: %w", userID, err)
	}
	return &sess, nil
}

func (s *MemoryStore) Save(_ context.Context, sess *Session) error {
	raw, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("session: encode %s: %w", sess.UserID, err)
	}
	s.mu.Lock()
	s.sessions[sess.UserID] = raw
	s.mu.Unlock()
	return nil
}
