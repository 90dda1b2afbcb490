package scheduler

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

type firings struct {
	mu   sync.Mutex
	keys []string
}

func (f *firings) record(key string) {
	f.mu.Lock()
	f.keys = append(f.keys, key)
	f.mu.Unlock()
}

func (f *firings) snapshot() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.keys...)
}

func TestScheduler_AddAndFire(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	f := &firings{}
	s := New(ctx, f.record)

	s.Add(Event{Key: "refresh", TriggerAt: time.Now().Add(100 * time.Millisecond)})
	time.Sleep(300 * time.Millisecond)

	if got := f.snapshot(); len(got) != 1 || got[0] != "refresh" {
		t.Fatalf("expected refresh to fire once, got %v", got)
	}
}

func TestScheduler_RemoveBeforeFire(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	f := &firings{}
	s := New(ctx, f.record)

	s.Add(Event{Key: "refresh", TriggerAt: time.Now().Add(500 * time.Millisecond)})
	time.Sleep(50 * time.Millisecond)
	s.Remove("refresh")
	time.Sleep(700 * time.Millisecond)

	if got := f.snapshot(); len(got) != 0 {
		t.Fatalf("expected nothing to fire after remove, got %v", got)
	}
}

func TestScheduler_ShutdownViaContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	f := &firings{}
	s := New(ctx, f.record)
	s.Add(Event{Key: "refresh", TriggerAt: time.Now().Add(300 * time.Millisecond)})
	cancel()

	select {
	case <-s.Done():
	case <-time.After(time.Second):
		t.Fatal("scheduler did not stop after cancel")
	}
	time.Sleep(400 * time.Millisecond)
	if got := f.snapshot(); len(got) != 0 {
		t.Fatalf("expected nothing to fire after cancel, got %v", got)
	}
	// Add after shutdown must not block.
	s.Add(Event{Key: "late", TriggerAt: time.Now()})
}

func TestScheduler_MultipleEventsInOrder(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	f := &firings{}
	s := New(ctx, f.record)

	s.Add(Event{Key: "second", TriggerAt: time.Now().Add(200 * time.Millisecond)})
	s.Add(Event{Key: "first", TriggerAt: time.Now().Add(100 * time.Millisecond)})
	time.Sleep(400 * time.Millisecond)

	got := f.snapshot()
	if len(got) != 2 {
		t.Fatalf("expected 2 firings, got %v", got)
	}
	if got[0] != "first" || got[1] != "second" {
		t.Errorf("unexpected order: %v", got)
	}
}

func TestScheduler_RecurringEventStaysArmed(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	f := &firings{}
	s := New(ctx, f.record)

	s.Add(Event{
		Key:       "refresh",
		TriggerAt: time.Now().Add(100 * time.Millisecond),
		CronExpr:  "* * * * *",
	})
	time.Sleep(300 * time.Millisecond)

	if got := f.snapshot(); len(got) != 1 {
		t.Fatalf("expected one firing before the next minute, got %v", got)
	}
}

func TestScheduler_AddCronInvalid(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	s := New(ctx, func(string) {})
	if _, err := s.AddCron("refresh", "not a cron"); !errors.Is(err, ErrInvalidCron) {
		t.Fatalf("expected ErrInvalidCron, got %v", err)
	}
}

func TestScheduler_AddCronReturnsNextFiring(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	s := New(ctx, func(string) {})
	before := time.Now()
	next, err := s.AddCron("refresh", "0 6 * * *")
	if err != nil {
		t.Fatalf("AddCron: %v", err)
	}
	if !next.After(before) {
		t.Errorf("expected next firing after %v, got %v", before, next)
	}
	if next.Hour() != 6 || next.Minute() != 0 {
		t.Errorf("expected 06:00, got %v", next)
	}
}

func TestNextOccurrence(t *testing.T) {
	start := time.Date(2026, 9, 1, 7, 30, 0, 0, time.UTC)
	tests := []struct {
		expr string
		want time.Time
	}{
		{"0 6 * * *", time.Date(2026, 9, 2, 6, 0, 0, 0, time.UTC)},
		{"*/15 * * * *", time.Date(2026, 9, 1, 7, 45, 0, 0, time.UTC)},
		{"0 8 * * 1-5", time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC)},
	}
	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			got, err := NextOccurrence(tt.expr, start)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !got.Equal(tt.want) {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestNextOccurrence_Invalid(t *testing.T) {
	if _, err := NextOccurrence("bad-expr", time.Now()); !errors.Is(err, ErrInvalidCron) {
		t.Fatalf("expected ErrInvalidCron, got %v", err)
	}
}
