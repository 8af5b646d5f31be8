package loader

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/spektr-org/cinelens/engine"
)

// ============================================================================
// STORES — Where parsed datasets are kept between loads
// ============================================================================

// Store caches parsed datasets by key.
type Store interface {
	Get(ctx context.Context, key string) ([]engine.Movie, bool, error)
	Set(ctx context.Context, key string, movies []engine.Movie) error
	Delete(ctx context.Context, key string) error
}

// MemoryStore keeps datasets in process memory.
type MemoryStore struct {
	mu   sync.RWMutex
	data map[string][]engine.Movie
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string][]engine.Movie)}
}

func (s *MemoryStore) Get(_ context.Context, key string) ([]engine.Movie, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	m, ok := s.data[key]
	return m, ok, nil
}

func (s *MemoryStore) Set(_ context.Context, key string, movies []engine.Movie) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = movies
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, key)
	return nil
}

// Len returns the number of cached datasets.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data)
}

// ============================================================================
// REDIS
// ============================================================================

// DefaultRedisPrefix namespaces dataset keys.
const DefaultRedisPrefix = "cinelens:dataset:"

// RedisStore keeps datasets in Redis as JSON.
type RedisStore struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewRedisStore wraps a client. A zero ttl keeps entries until evicted.
func NewRedisStore(client *redis.Client, prefix string, ttl time.Duration) *RedisStore {
	if prefix == "" {
		prefix = DefaultRedisPrefix
	}
	return &RedisStore{client: client, prefix: prefix, ttl: ttl}
}

// NewRedisClient connects to addr and logs the target.
func NewRedisClient(addr, password string, db int) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	log.Printf("📦 Loader: using Redis at %s (DB %d)", addr, db)
	return client
}

// Ping checks the connection.
func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func (s *RedisStore) Get(ctx context.Context, key string) ([]engine.Movie, bool, error) {
	b, err := s.client.Get(ctx, s.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get: %w", err)
	}

	var movies []engine.Movie
	if err := json.Unmarshal(b, &movies); err != nil {
		return nil, false, fmt.Errorf("decode cached dataset: %w", err)
	}
	return movies, true, nil
}

func (s *RedisStore) Set(ctx context.Context, key string, movies []engine.Movie) error {
	b, err := json.Marshal(movies)
	if err != nil {
		return fmt.Errorf("encode dataset: %w", err)
	}
	if err := s.client.Set(ctx, s.prefix+key, b, s.ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

func (s *RedisStore) Delete(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, s.prefix+key).Err(); err != nil {
		return fmt.Errorf("redis del: %w", err)
	}
	return nil
}
