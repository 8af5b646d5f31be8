// Package loader reads a movie dataset once per content version and keeps
// the parsed records in an injected cache store.
package loader

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/spektr-org/cinelens/engine"
	"github.com/spektr-org/cinelens/helpers"
)

// ============================================================================
// LOADER — Memoized dataset load keyed by source identity + content hash
// ============================================================================
// Load reads the source bytes, hashes them, and returns the cached records
// when the key is already stored. On a miss the bytes are parsed, stored,
// and the previous key for the same source is evicted.
// ============================================================================

// ErrSourceUnavailable marks a dataset source that could not be loaded.
// Every *Error matches it with errors.Is.
var ErrSourceUnavailable = errors.New("dataset source unavailable")

// Error describes a failed load step.
type Error struct {
	Op     string // "read" or "parse"
	Source string
	Err    error
}

func (e *Error) Error() string {
	return fmt.Sprintf("loader: %s %s: %v", e.Op, e.Source, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Is reports ErrSourceUnavailable for every load failure.
func (e *Error) Is(target error) bool { return target == ErrSourceUnavailable }

// Source provides the raw bytes of a dataset.
type Source interface {
	ID() string
	Open(ctx context.Context) ([]byte, error)
}

// ParseFunc turns raw bytes into normalized movies.
type ParseFunc func(data []byte) ([]engine.Movie, helpers.ParseStats, error)

// Dataset is a loaded, normalized movie list.
type Dataset struct {
	SourceID string             `json:"sourceId"`
	Key      string             `json:"key"`
	Records  []engine.Movie     `json:"-"`
	Stats    helpers.ParseStats `json:"stats"` // zero when the parse happened in another process
	Cached   bool               `json:"cached"`
	LoadedAt time.Time          `json:"loadedAt"`
}

// Genres returns the sorted distinct genres of the dataset.
func (d *Dataset) Genres() []string {
	return engine.Genres(d.Records)
}

// Len returns the number of records.
func (d *Dataset) Len() int {
	return len(d.Records)
}

// Loader memoizes dataset loads.
type Loader struct {
	store Store
	parse ParseFunc
	now   func() time.Time

	mu      sync.Mutex
	current map[string]string             // source id → cache key
	stats   map[string]helpers.ParseStats // cache key → parse counts
}

// Option configures a Loader.
type Option func(*Loader)

// WithParser replaces the CSV parser.
func WithParser(p ParseFunc) Option {
	return func(l *Loader) {
		if p != nil {
			l.parse = p
		}
	}
}

// WithClock sets the time source used for LoadedAt.
func WithClock(now func() time.Time) Option {
	return func(l *Loader) {
		if now != nil {
			l.now = now
		}
	}
}

// New creates a Loader backed by store. A nil store means an in-memory one.
func New(store Store, opts ...Option) *Loader {
	if store == nil {
		store = NewMemoryStore()
	}
	l := &Loader{
		store:   store,
		parse:   helpers.ParseMoviesCSVWithStats,
		now:     time.Now,
		current: make(map[string]string),
		stats:   make(map[string]helpers.ParseStats),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load returns the dataset for src, parsing only when its content changed.
func (l *Loader) Load(ctx context.Context, src Source) (*Dataset, error) {
	id := src.ID()

	data, err := src.Open(ctx)
	if err != nil {
		return nil, &Error{Op: "read", Source: id, Err: err}
	}

	key := CacheKey(id, data)

	// One load at a time keeps the source → key table consistent.
	l.mu.Lock()
	defer l.mu.Unlock()

	records, ok, err := l.store.Get(ctx, key)
	if err != nil {
		log.Printf("📦 Loader: cache get %s failed, re-parsing: %v", key, err)
	}
	if ok && err == nil {
		log.Printf("📦 Loader: cache hit %s (%d movies)", key, len(records))
		l.current[id] = key
		return &Dataset{
			SourceID: id,
			Key:      key,
			Records:  records,
			Stats:    l.stats[key],
			Cached:   true,
			LoadedAt: l.now(),
		}, nil
	}

	records, stats, err := l.parse(data)
	if err != nil {
		return nil, &Error{Op: "parse", Source: id, Err: err}
	}
	log.Printf("📦 Loader: parsed %s: %d rows, %d kept, %d dropped", id, stats.Rows, stats.Kept, stats.Dropped)

	if err := l.store.Set(ctx, key, records); err != nil {
		log.Printf("📦 Loader: cache set %s failed: %v", key, err)
	}

	if prev, exists := l.current[id]; exists && prev != key {
		delete(l.stats, prev)
		if err := l.store.Delete(ctx, prev); err != nil {
			log.Printf("📦 Loader: evict %s failed: %v", prev, err)
		} else {
			log.Printf("📦 Loader: source %s changed, evicted %s", id, prev)
		}
	}
	l.current[id] = key
	l.stats[key] = stats

	return &Dataset{
		SourceID: id,
		Key:      key,
		Records:  records,
		Stats:    stats,
		LoadedAt: l.now(),
	}, nil
}

// Invalidate drops the cached dataset of a source.
func (l *Loader) Invalidate(ctx context.Context, sourceID string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	key, ok := l.current[sourceID]
	if !ok {
		return nil
	}
	delete(l.current, sourceID)
	delete(l.stats, key)
	return l.store.Delete(ctx, key)
}

// CacheKey derives the cache key of a source's content.
func CacheKey(sourceID string, data []byte) string {
	return fmt.Sprintf("%s@%x", sourceID, sha256.Sum256(data))
}
