package loader

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spektr-org/cinelens/engine"
	"github.com/spektr-org/cinelens/helpers"
)

// ── Test Data ─────────────────────────────────────────────────────────────────

const datasetV1 = `Title,Genre,Duration,Votes,Rating
A,"Drama, Romance",100 min,500,7.0
B,Drama,150 min,"2,000",8.5
C,"Action, Sci-Fi",200 min,100,6.0
D,Comedy,,50,5.0
`

const datasetV2 = datasetV1 + "E,Horror,95 min,\"1,500\",6.4\n"

func writeDataset(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "movies.csv")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write dataset: %v", err)
	}
	return path
}

// countingParser counts how often the loader actually parses.
func countingParser(n *int) ParseFunc {
	return func(data []byte) ([]engine.Movie, helpers.ParseStats, error) {
		*n++
		return helpers.ParseMoviesCSVWithStats(data)
	}
}

// ============================================================================
// MEMOIZATION
// ============================================================================

func TestLoadParsesOncePerContent(t *testing.T) {
	ctx := context.Background()
	path := writeDataset(t, t.TempDir(), datasetV1)

	parses := 0
	store := NewMemoryStore()
	l := New(store, WithParser(countingParser(&parses)))
	src := FileSource{Path: path}

	first, err := l.Load(ctx, src)
	if err != nil {
		t.Fatalf("first load: %v", err)
	}
	if first.Len() != 3 || first.Cached {
		t.Errorf("first load: len=%d cached=%v, want 3 fresh records", first.Len(), first.Cached)
	}
	if first.Stats.Dropped != 1 {
		t.Errorf("first load dropped %d rows, want 1", first.Stats.Dropped)
	}

	second, err := l.Load(ctx, src)
	if err != nil {
		t.Fatalf("second load: %v", err)
	}
	if parses != 1 {
		t.Errorf("parsed %d times, want 1", parses)
	}
	if !second.Cached || second.Key != first.Key {
		t.Errorf("second load: cached=%v key=%q, want cache hit on %q", second.Cached, second.Key, first.Key)
	}
	if second.Stats != first.Stats {
		t.Errorf("cache hit stats = %+v, want %+v", second.Stats, first.Stats)
	}
	for i := range first.Records {
		if first.Records[i] != second.Records[i] {
			t.Errorf("record %d differs after cache hit", i)
		}
	}
}

func TestLoadCacheHitFromOtherProcessHasZeroStats(t *testing.T) {
	ctx := context.Background()
	path := writeDataset(t, t.TempDir(), datasetV1)
	store := NewMemoryStore()
	src := FileSource{Path: path}

	if _, err := New(store).Load(ctx, src); err != nil {
		t.Fatalf("warm load: %v", err)
	}

	ds, err := New(store).Load(ctx, src)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !ds.Cached {
		t.Fatal("expected a cache hit from the shared store")
	}
	if ds.Stats != (helpers.ParseStats{}) {
		t.Errorf("stats = %+v, want zero for an unknown parse", ds.Stats)
	}
}

func TestLoadInvalidatesOnSourceChange(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	path := writeDataset(t, dir, datasetV1)

	parses := 0
	store := NewMemoryStore()
	l := New(store, WithParser(countingParser(&parses)))
	src := FileSource{Path: path}

	first, err := l.Load(ctx, src)
	if err != nil {
		t.Fatal(err)
	}

	writeDataset(t, dir, datasetV2)
	second, err := l.Load(ctx, src)
	if err != nil {
		t.Fatal(err)
	}

	if parses != 2 {
		t.Errorf("parsed %d times, want 2", parses)
	}
	if second.Key == first.Key {
		t.Error("changed content must produce a new key")
	}
	if second.Len() != 4 {
		t.Errorf("second load len = %d, want 4", second.Len())
	}
	if store.Len() != 1 {
		t.Errorf("store holds %d datasets, want only the current one", store.Len())
	}
	if _, ok, _ := store.Get(ctx, first.Key); ok {
		t.Error("previous key should be evicted")
	}
}

func TestInvalidateForcesReparse(t *testing.T) {
	ctx := context.Background()
	src := BytesSource{Name: "upload", Data: []byte(datasetV1)}

	parses := 0
	l := New(nil, WithParser(countingParser(&parses)))

	if _, err := l.Load(ctx, src); err != nil {
		t.Fatal(err)
	}
	if err := l.Invalidate(ctx, src.ID()); err != nil {
		t.Fatal(err)
	}
	if _, err := l.Load(ctx, src); err != nil {
		t.Fatal(err)
	}
	if parses != 2 {
		t.Errorf("parsed %d times, want 2", parses)
	}
}

func TestDatasetGenres(t *testing.T) {
	l := New(NewMemoryStore(), WithClock(func() time.Time { return time.Unix(0, 0) }))
	ds, err := l.Load(context.Background(), BytesSource{Name: "g", Data: []byte(datasetV2)})
	if err != nil {
		t.Fatal(err)
	}

	want := []string{"Action", "Drama", "Horror"}
	got := ds.Genres()
	if len(got) != len(want) {
		t.Fatalf("Genres = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Genres[%d] = %q, want %q", i, got[i], want[i])
		}
	}
	if !ds.LoadedAt.Equal(time.Unix(0, 0)) {
		t.Errorf("LoadedAt = %v, want injected clock", ds.LoadedAt)
	}
}

func TestCacheKeyDependsOnContentAndSource(t *testing.T) {
	a := CacheKey("file:/a.csv", []byte("x"))
	if a != CacheKey("file:/a.csv", []byte("x")) {
		t.Error("identical input must produce identical keys")
	}
	if a == CacheKey("file:/a.csv", []byte("y")) {
		t.Error("content change must change the key")
	}
	if a == CacheKey("file:/b.csv", []byte("x")) {
		t.Error("source change must change the key")
	}
}

// ============================================================================
// FAILURES
// ============================================================================

func TestLoadMissingFileIsSourceUnavailable(t *testing.T) {
	l := New(NewMemoryStore())
	_, err := l.Load(context.Background(), FileSource{Path: filepath.Join(t.TempDir(), "nope.csv")})

	if !errors.Is(err, ErrSourceUnavailable) {
		t.Fatalf("err = %v, want ErrSourceUnavailable", err)
	}
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("err = %v, want wrapped fs.ErrNotExist", err)
	}
	var lerr *Error
	if !errors.As(err, &lerr) || lerr.Op != "read" {
		t.Errorf("err = %#v, want *Error with Op read", err)
	}
}

func TestLoadMissingColumnIsSourceUnavailable(t *testing.T) {
	l := New(NewMemoryStore())
	_, err := l.Load(context.Background(), BytesSource{Name: "bad", Data: []byte("Title,Genre\nA,Drama\n")})

	if !errors.Is(err, ErrSourceUnavailable) || !errors.Is(err, helpers.ErrMissingColumn) {
		t.Fatalf("err = %v, want ErrSourceUnavailable wrapping ErrMissingColumn", err)
	}
	var lerr *Error
	if !errors.As(err, &lerr) || lerr.Op != "parse" {
		t.Errorf("err = %#v, want *Error with Op parse", err)
	}
}

func TestLoadCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New(nil).Load(ctx, BytesSource{Name: "x", Data: []byte(datasetV1)})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}
