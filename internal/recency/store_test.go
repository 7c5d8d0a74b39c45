package recency

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/alicebob/miniredis/v2"

	"github.com/angelmondragon/packfinderz-storefront/pkg/config"
	pkgredis "github.com/angelmondragon/packfinderz-storefront/pkg/redis"
)

type failingSlot struct {
	readErr  error
	writeErr error
	payload  string
	found    bool
	writes   int
}

func (s *failingSlot) Read(ctx context.Context) (string, bool, error) {
	return s.payload, s.found, s.readErr
}

func (s *failingSlot) Write(ctx context.Context, payload string) error {
	s.writes++
	if s.writeErr != nil {
		return s.writeErr
	}
	s.payload = payload
	s.found = true
	return nil
}

func TestPushDeduplicatesAndCaps(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := NewStore(&MemorySlot{}, 5, nil)

	for _, term := range []string{"e", "d", "c", "b", "a"} {
		store.Push(ctx, term)
	}
	if got := store.Terms(); !reflect.DeepEqual(got, []string{"a", "b", "c", "d", "e"}) {
		t.Fatalf("unexpected list: %v", got)
	}

	// Re-submitting an existing term moves it to the front without growing.
	store.Push(ctx, "c")
	if got := store.Terms(); !reflect.DeepEqual(got, []string{"c", "a", "b", "d", "e"}) {
		t.Fatalf("expected move-to-front, got %v", got)
	}
	if store.Len() != 5 {
		t.Fatalf("dedup must not grow the list, len=%d", store.Len())
	}

	// A 6th distinct term evicts the least recent.
	store.Push(ctx, "f")
	if got := store.Terms(); !reflect.DeepEqual(got, []string{"f", "c", "a", "b", "d"}) {
		t.Fatalf("expected eviction of least-recent, got %v", got)
	}
}

func TestPushHonorsSmallCaps(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	// A cap of one keeps exactly the latest term.
	store := NewStore(&MemorySlot{}, 1, nil)
	for _, term := range []string{"a", "b", "c", "d"} {
		store.Push(ctx, term)
	}
	if got := store.Terms(); !reflect.DeepEqual(got, []string{"d"}) {
		t.Fatalf("cap=1 must hold only the latest term, got %v", got)
	}

	store = NewStore(&MemorySlot{}, 2, nil)
	for _, term := range []string{"a", "b", "c"} {
		store.Push(ctx, term)
	}
	if got := store.Terms(); !reflect.DeepEqual(got, []string{"c", "b"}) {
		t.Fatalf("cap=2 must evict past two terms, got %v", got)
	}
}

func TestPushIgnoresBlankTerms(t *testing.T) {
	t.Parallel()

	store := NewStore(&MemorySlot{}, 5, nil)
	store.Push(context.Background(), "   ")
	if store.Len() != 0 {
		t.Fatal("blank terms must not be recorded")
	}
}

func TestRemove(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := NewStore(&MemorySlot{}, 5, nil)
	store.Push(ctx, "b")
	store.Push(ctx, "a")

	store.Remove(ctx, "b")
	if got := store.Terms(); !reflect.DeepEqual(got, []string{"a"}) {
		t.Fatalf("expected [a], got %v", got)
	}

	// Removing an absent term is a no-op, not an error.
	store.Remove(ctx, "zzz")
	if got := store.Terms(); !reflect.DeepEqual(got, []string{"a"}) {
		t.Fatalf("expected [a] after no-op removal, got %v", got)
	}
}

func TestLoadRoundTrip(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	slot := &MemorySlot{}

	first := NewStore(slot, 5, nil)
	first.Push(ctx, "indica")
	first.Push(ctx, "sativa")

	// A second store over the same slot sees the persisted list: the reload
	// path a page refresh takes.
	second := NewStore(slot, 5, nil)
	second.Load(ctx)
	if got := second.Terms(); !reflect.DeepEqual(got, []string{"sativa", "indica"}) {
		t.Fatalf("unexpected reloaded list: %v", got)
	}
}

func TestLoadAbsentSlotMeansEmpty(t *testing.T) {
	t.Parallel()

	store := NewStore(&MemorySlot{}, 5, nil)
	store.Load(context.Background())
	if store.Len() != 0 {
		t.Fatal("absent slot must read as empty list")
	}
}

func TestLoadDegradesOnStorageFailure(t *testing.T) {
	t.Parallel()

	store := NewStore(&failingSlot{readErr: errors.New("storage gone")}, 5, nil)
	store.Load(context.Background())
	if store.Len() != 0 {
		t.Fatal("read failure must degrade to empty list")
	}
}

func TestLoadDegradesOnCorruptPayload(t *testing.T) {
	t.Parallel()

	store := NewStore(&failingSlot{payload: "{not json", found: true}, 5, nil)
	store.Load(context.Background())
	if store.Len() != 0 {
		t.Fatal("corrupt payload must degrade to empty list")
	}
}

func TestPushSurvivesWriteFailure(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	slot := &failingSlot{writeErr: errors.New("storage gone")}
	store := NewStore(slot, 5, nil)

	store.Push(ctx, "og kush")
	if got := store.Terms(); !reflect.DeepEqual(got, []string{"og kush"}) {
		t.Fatalf("in-memory state must survive persist failure, got %v", got)
	}
	if slot.writes != 1 {
		t.Fatalf("expected one attempted write, got %d", slot.writes)
	}
}

func TestLoadTruncatesOversizedPayload(t *testing.T) {
	t.Parallel()

	slot := &failingSlot{payload: `["a","b","c","d","e","f","g"]`, found: true}
	store := NewStore(slot, 5, nil)
	store.Load(context.Background())
	if store.Len() != 5 {
		t.Fatalf("expected truncation to cap, got %d", store.Len())
	}
}

func TestRedisSlotRoundTrip(t *testing.T) {
	ctx := context.Background()
	srv := miniredis.RunT(t)
	client, err := pkgredis.New(ctx, config.RedisConfig{Address: srv.Addr()}, nil)
	if err != nil {
		t.Fatalf("bootstrap redis: %v", err)
	}
	t.Cleanup(func() { _ = client.Close() })

	slot := NewRedisSlot(client, DefaultSlotName)
	store := NewStore(slot, 5, nil)
	store.Push(ctx, "preroll")
	store.Push(ctx, "edibles")

	reloaded := NewStore(slot, 5, nil)
	reloaded.Load(ctx)
	if got := reloaded.Terms(); !reflect.DeepEqual(got, []string{"edibles", "preroll"}) {
		t.Fatalf("unexpected redis round trip: %v", got)
	}
}
