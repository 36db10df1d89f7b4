package session

import (
	"context"
	"fmt"
	"testing"
)

func TestMemoryStoreAppendAndRead(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	for i := 1; i <= 3; i++ {
		ev := NewCrisisEvent("s1", i, "emotional_distress", nil, false)
		if err := store.AppendEvent(ctx, ev); err != nil {
			t.Fatalf("AppendEvent: %v", err)
		}
	}

	events, err := store.RecentEvents(ctx, "s1", 0)
	if err != nil {
		t.Fatalf("RecentEvents: %v", err)
	}
	if len(events) != 3 {
		t.Fatalf("expected 3 events, got %d", len(events))
	}
	// Chronological order, oldest first.
	for i, ev := range events {
		if ev.Level != i+1 {
			t.Errorf("event %d: level = %d, want %d", i, ev.Level, i+1)
		}
		if ev.ID == "" {
			t.Error("event ID should be set")
		}
	}

	count, err := store.EventCount(ctx, "s1")
	if err != nil {
		t.Fatalf("EventCount: %v", err)
	}
	if count != 3 {
		t.Errorf("count = %d, want 3", count)
	}
}

func TestMemoryStoreCapsHistory(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	for i := 0; i < MaxEvents+5; i++ {
		ev := NewCrisisEvent("s1", i%11, "suicide_risk", nil, true)
		ev.Type = fmt.Sprintf("type-%d", i)
		if err := store.AppendEvent(ctx, ev); err != nil {
			t.Fatalf("AppendEvent: %v", err)
		}
	}

	events, err := store.RecentEvents(ctx, "s1", 0)
	if err != nil {
		t.Fatalf("RecentEvents: %v", err)
	}
	if len(events) != MaxEvents {
		t.Fatalf("expected %d events after cap, got %d", MaxEvents, len(events))
	}
	// The oldest events were evicted, newest retained.
	if events[len(events)-1].Type != fmt.Sprintf("type-%d", MaxEvents+4) {
		t.Errorf("newest event = %s, want type-%d", events[len(events)-1].Type, MaxEvents+4)
	}
	if events[0].Type != "type-5" {
		t.Errorf("oldest retained event = %s, want type-5", events[0].Type)
	}
}

func TestMemoryStoreRecentEventsWindow(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	for i := 1; i <= 8; i++ {
		if err := store.AppendEvent(ctx, NewCrisisEvent("s1", i, "x", nil, false)); err != nil {
			t.Fatal(err)
		}
	}

	events, err := store.RecentEvents(ctx, "s1", 5)
	if err != nil {
		t.Fatal(err)
	}
	if len(events) != 5 {
		t.Fatalf("expected 5 events, got %d", len(events))
	}
	if events[0].Level != 4 || events[4].Level != 8 {
		t.Errorf("window = [%d..%d], want [4..8]", events[0].Level, events[4].Level)
	}
}

func TestMemoryStoreSessionIsolation(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	if err := store.AppendEvent(ctx, NewCrisisEvent("a", 5, "x", nil, false)); err != nil {
		t.Fatal(err)
	}
	if err := store.AppendEvent(ctx, NewCrisisEvent("b", 7, "y", nil, false)); err != nil {
		t.Fatal(err)
	}

	count, _ := store.EventCount(ctx, "a")
	if count != 1 {
		t.Errorf("session a count = %d, want 1", count)
	}
	if store.SessionCount() != 2 {
		t.Errorf("SessionCount = %d, want 2", store.SessionCount())
	}
}

func TestMemoryStoreEndSession(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	if err := store.AppendEvent(ctx, NewCrisisEvent("s1", 9, "suicide_risk", nil, true)); err != nil {
		t.Fatal(err)
	}
	if err := store.EndSession(ctx, "s1"); err != nil {
		t.Fatalf("EndSession: %v", err)
	}

	count, _ := store.EventCount(ctx, "s1")
	if count != 0 {
		t.Errorf("count after end = %d, want 0", count)
	}

	// Ending an unknown session is a no-op.
	if err := store.EndSession(ctx, "never-seen"); err != nil {
		t.Errorf("EndSession on unknown session: %v", err)
	}
}

func TestMemoryStoreRejectsEmptySession(t *testing.T) {
	store := NewMemoryStore()
	if err := store.AppendEvent(context.Background(), CrisisEvent{}); err == nil {
		t.Error("expected error for empty session ID")
	}
}

func TestMemoryStoreUnknownSessionReads(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	events, err := store.RecentEvents(ctx, "ghost", 0)
	if err != nil {
		t.Fatalf("RecentEvents: %v", err)
	}
	if len(events) != 0 {
		t.Errorf("expected empty slice, got %d events", len(events))
	}
}
