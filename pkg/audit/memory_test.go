package audit

import (
	"context"
	"testing"
	"time"

	"github.com/ardenhollis/structurize/pkg/structurize"
)

func TestMemoryStorePutGet(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	rec := &Record{
		ID:        "run-1",
		InputHash: "abc123",
		StartedAt: time.Now(),
		Success:   true,
		Stats:     structurize.Stats{LaddersCreated: 2},
	}
	if err := s.Put(ctx, rec); err != nil {
		t.Fatalf("Put() error: %v", err)
	}

	got, err := s.Get(ctx, "run-1")
	if err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if got.InputHash != rec.InputHash {
		t.Fatalf("InputHash = %q, want %q", got.InputHash, rec.InputHash)
	}

	got.InputHash = "mutated"
	reget, _ := s.Get(ctx, "run-1")
	if reget.InputHash == "mutated" {
		t.Fatal("Get() must return a copy, not a shared pointer")
	}
}

func TestMemoryStoreGetMissing(t *testing.T) {
	s := NewMemoryStore()
	_, err := s.Get(context.Background(), "does-not-exist")
	if err != ErrNotFound {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestMemoryStoreListSortsByStartedAtDescending(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	base := time.Now()

	for i, id := range []string{"older", "middle", "newer"} {
		_ = s.Put(ctx, &Record{ID: id, StartedAt: base.Add(time.Duration(i) * time.Minute)})
	}

	out, err := s.List(ctx, 0)
	if err != nil {
		t.Fatalf("List() error: %v", err)
	}
	if len(out) != 3 {
		t.Fatalf("len(out) = %d, want 3", len(out))
	}
	if out[0].ID != "newer" || out[len(out)-1].ID != "older" {
		t.Fatalf("unexpected order: %v, %v, %v", out[0].ID, out[1].ID, out[2].ID)
	}
}

func TestMemoryStoreListRespectsLimit(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	for i := 0; i < 5; i++ {
		_ = s.Put(ctx, &Record{ID: string(rune('a' + i)), StartedAt: time.Now()})
	}
	out, err := s.List(ctx, 2)
	if err != nil {
		t.Fatalf("List() error: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("len(out) = %d, want 2", len(out))
	}
}
