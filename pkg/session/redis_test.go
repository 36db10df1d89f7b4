package session

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestRedisStore(t *testing.T) *RedisStore {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	return NewRedisStoreFromClient(client)
}

func TestRedisStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := newTestRedisStore(t)

	first := NewCrisisEvent("s1", 6, "self_harm_risk", nil, false)
	second := NewCrisisEvent("s1", 8, "suicide_risk", nil, true)
	if err := store.AppendEvent(ctx, first); err != nil {
		t.Fatalf("AppendEvent: %v", err)
	}
	if err := store.AppendEvent(ctx, second); err != nil {
		t.Fatalf("AppendEvent: %v", err)
	}

	events, err := store.RecentEvents(ctx, "s1", 0)
	if err != nil {
		t.Fatalf("RecentEvents: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(events))
	}
	if events[0].ID != first.ID || events[1].ID != second.ID {
		t.Error("events should come back oldest first")
	}
	if events[1].Level != 8 || events[1].Type != "suicide_risk" || !events[1].Intervened {
		t.Errorf("event fields lost in round trip: %+v", events[1])
	}

	count, err := store.EventCount(ctx, "s1")
	if err != nil {
		t.Fatalf("EventCount: %v", err)
	}
	if count != 2 {
		t.Errorf("count = %d, want 2", count)
	}
}

func TestRedisStoreCapsHistory(t *testing.T) {
	ctx := context.Background()
	store := newTestRedisStore(t)

	var lastID string
	for i := 0; i < MaxEvents+4; i++ {
		ev := NewCrisisEvent("s1", i%11, "x", nil, false)
		lastID = ev.ID
		if err := store.AppendEvent(ctx, ev); err != nil {
			t.Fatalf("AppendEvent: %v", err)
		}
	}

	count, err := store.EventCount(ctx, "s1")
	if err != nil {
		t.Fatal(err)
	}
	if count != MaxEvents {
		t.Errorf("count = %d, want %d", count, MaxEvents)
	}

	events, err := store.RecentEvents(ctx, "s1", 0)
	if err != nil {
		t.Fatal(err)
	}
	if events[len(events)-1].ID != lastID {
		t.Error("newest event should be the last appended")
	}
}

func TestRedisStoreEndSession(t *testing.T) {
	ctx := context.Background()
	store := newTestRedisStore(t)

	if err := store.AppendEvent(ctx, NewCrisisEvent("s1", 9, "suicide_risk", nil, true)); err != nil {
		t.Fatal(err)
	}
	if err := store.EndSession(ctx, "s1"); err != nil {
		t.Fatalf("EndSession: %v", err)
	}

	count, err := store.EventCount(ctx, "s1")
	if err != nil {
		t.Fatal(err)
	}
	if count != 0 {
		t.Errorf("count after end = %d, want 0", count)
	}
}

func TestRedisStoreRecentEventsWindow(t *testing.T) {
	ctx := context.Background()
	store := newTestRedisStore(t)

	for i := 1; i <= 7; i++ {
		if err := store.AppendEvent(ctx, NewCrisisEvent("s1", i, "x", nil, false)); err != nil {
			t.Fatal(err)
		}
	}

	events, err := store.RecentEvents(ctx, "s1", 3)
	if err != nil {
		t.Fatal(err)
	}
	if len(events) != 3 {
		t.Fatalf("expected 3 events, got %d", len(events))
	}
	if events[0].Level != 5 || events[2].Level != 7 {
		t.Errorf("window = [%d..%d], want [5..7]", events[0].Level, events[2].Level)
	}
}
