package orchestrators

import (
	"context"
	"testing"
	"time"

	"treetroopers/internal/domain/content"
	"treetroopers/internal/domain/eventlist"
)

func TestCountdown_EmitsImmediatelyThenTicks(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	c := &Countdown{Interval: 5 * time.Millisecond, Now: func() time.Time { return now }}
	events := func() []content.Event {
		return []content.Event{{Date: "2026-03-12", Title: "Beach Cleanup", Icon: "🌊"}}
	}
	ticks := make(chan eventlist.Tick, 16)
	c.Start(context.Background(), events, time.UTC, func(tk eventlist.Tick) {
		select {
		case ticks <- tk:
		default:
		}
	})
	defer c.Stop()

	for i := 0; i < 2; i++ {
		select {
		case tk := <-ticks:
			if !tk.Upcoming || tk.Title != "Beach Cleanup 🌊" || tk.Remaining.Days != 1 || tk.Remaining.Hours != 12 {
				t.Errorf("tick %d = %+v", i, tk)
			}
		case <-time.After(time.Second):
			t.Fatalf("tick %d not received", i)
		}
	}
}

func TestCountdown_RestartReplacesTicker(t *testing.T) {
	c := &Countdown{Interval: 2 * time.Millisecond}
	first := make(chan struct{}, 1000)
	c.Start(context.Background(), func() []content.Event { return nil }, nil, func(eventlist.Tick) {
		select {
		case first <- struct{}{}:
		default:
		}
	})

	second := make(chan eventlist.Tick, 1)
	c.Start(context.Background(), func() []content.Event { return nil }, nil, func(tk eventlist.Tick) {
		select {
		case second <- tk:
		default:
		}
	})
	defer c.Stop()

	// Start waits for the previous ticker to exit, so the first emitter is silent from here on.
	drained := len(first)
	time.Sleep(20 * time.Millisecond)
	if len(first) != drained {
		t.Errorf("first ticker still emitting: %d -> %d", drained, len(first))
	}
	select {
	case tk := <-second:
		if tk.Upcoming || tk.Title != eventlist.NoUpcomingTitle {
			t.Errorf("placeholder tick = %+v", tk)
		}
	case <-time.After(time.Second):
		t.Fatal("second ticker did not emit")
	}
}

func TestCountdown_StopIsIdempotent(t *testing.T) {
	var c Countdown
	c.Stop()
	c.Start(context.Background(), func() []content.Event { return nil }, nil, func(eventlist.Tick) {})
	c.Stop()
	c.Stop()
}
