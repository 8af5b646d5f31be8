package loader

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/spektr-org/cinelens/engine"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	movies := []engine.Movie{{Title: "A", Genre: "Drama", Duration: 100, Votes: 500, Rating: 7}}

	if _, ok, _ := s.Get(ctx, "k"); ok {
		t.Fatal("empty store should miss")
	}
	if err := s.Set(ctx, "k", movies); err != nil {
		t.Fatal(err)
	}
	got, ok, err := s.Get(ctx, "k")
	if err != nil || !ok || len(got) != 1 || got[0] != movies[0] {
		t.Fatalf("Get = %+v, %v, %v", got, ok, err)
	}
	if err := s.Delete(ctx, "k"); err != nil {
		t.Fatal(err)
	}
	if s.Len() != 0 {
		t.Errorf("Len = %d after delete", s.Len())
	}
}

// Runs only against a live Redis (REDIS_ADDR=localhost:6379 go test ./loader).
func TestRedisStoreRoundTrip(t *testing.T) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("REDIS_ADDR not set")
	}

	ctx := context.Background()
	client := NewRedisClient(addr, os.Getenv("REDIS_PASSWORD"), 0)
	defer client.Close()

	s := NewRedisStore(client, "cinelens:test:", time.Minute)
	if err := s.Ping(ctx); err != nil {
		t.Skipf("redis unreachable: %v", err)
	}

	key := "roundtrip"
	movies := []engine.Movie{
		{Title: "A", Genre: "Drama", Duration: 100, Votes: 500, Rating: 7},
		{Title: "B", Genre: "Drama", Duration: 150, Votes: 2000, Rating: 8.5},
	}
	if err := s.Set(ctx, key, movies); err != nil {
		t.Fatal(err)
	}
	defer s.Delete(ctx, key)

	got, ok, err := s.Get(ctx, key)
	if err != nil || !ok {
		t.Fatalf("Get: ok=%v err=%v", ok, err)
	}
	for i := range movies {
		if got[i] != movies[i] {
			t.Errorf("record %d = %+v, want %+v", i, got[i], movies[i])
		}
	}

	if err := s.Delete(ctx, key); err != nil {
		t.Fatal(err)
	}
	if _, ok, _ := s.Get(ctx, key); ok {
		t.Error("deleted key should miss")
	}
}
