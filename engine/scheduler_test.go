package engine

import (
	"sync/atomic"
	"testing"
	"time"
)

// TestScheduler_TaskTicks tests that a scheduled task runs periodically
func TestScheduler_TaskTicks(t *testing.T) {
	s := NewScheduler(time.Millisecond, false)
	var n atomic.Int64
	task := s.Schedule(GroupNpc, "counter", func() { n.Add(1) })
	defer s.CancelAll()

	deadline := time.Now().Add(2 * time.Second)
	for n.Load() < 5 && time.Now().Before(deadline) {
		time.Sleep(2 * time.Millisecond)
	}
	if n.Load() < 5 {
		t.Fatalf("task ticked %d times in 2s", n.Load())
	}
	if task.Name() != "counter" || task.Group() != GroupNpc {
		t.Errorf("task identity %s/%s", task.Name(), task.Group())
	}
}

// TestScheduler_CancelIsSynchronous tests that no tick runs after Cancel returns
func TestScheduler_CancelIsSynchronous(t *testing.T) {
	s := NewScheduler(time.Millisecond, false)
	var (
		inTick atomic.Bool
		n      atomic.Int64
	)
	task := s.Schedule(GroupNpc, "slow", func() {
		inTick.Store(true)
		time.Sleep(3 * time.Millisecond)
		n.Add(1)
		inTick.Store(false)
	})

	for n.Load() == 0 {
		time.Sleep(time.Millisecond)
	}
	s.Cancel(task)

	if inTick.Load() {
		t.Fatal("tick still in flight after Cancel returned")
	}
	after := n.Load()
	time.Sleep(20 * time.Millisecond)
	if n.Load() != after {
		t.Errorf("ticks continued after cancel: %d -> %d", after, n.Load())
	}
	if task.Ticks() != after {
		t.Errorf("Ticks() = %d, want %d", task.Ticks(), after)
	}
	task.Cancel() // Second cancel returns immediately
}

// TestScheduler_TicksNeverOverlap tests that a slow tick delays the next one instead of running concurrently
func TestScheduler_TicksNeverOverlap(t *testing.T) {
	s := NewScheduler(time.Millisecond, false)
	var (
		active  atomic.Int32
		overlap atomic.Bool
		n       atomic.Int64
	)
	s.Schedule(GroupPlayer, "player", func() {
		if active.Add(1) > 1 {
			overlap.Store(true)
		}
		time.Sleep(2 * time.Millisecond)
		active.Add(-1)
		n.Add(1)
	})
	for n.Load() < 10 {
		time.Sleep(time.Millisecond)
	}
	s.CancelAll()
	if overlap.Load() {
		t.Error("ticks of one task overlapped")
	}
}

// TestScheduler_CancelGroup tests group cancellation leaves other groups running
func TestScheduler_CancelGroup(t *testing.T) {
	s := NewScheduler(time.Millisecond, false)
	var player, npc atomic.Int64
	s.Schedule(GroupPlayer, "player", func() { player.Add(1) })
	for i := 0; i < 5; i++ {
		s.Schedule(GroupNpc, "npc", func() { npc.Add(1) })
	}
	if s.Count(GroupNpc) != 5 || s.Count("") != 6 {
		t.Fatalf("counts npc=%d all=%d", s.Count(GroupNpc), s.Count(""))
	}

	if n := s.CancelGroup(GroupNpc); n != 5 {
		t.Errorf("CancelGroup = %d, want 5", n)
	}
	frozen := npc.Load()
	before := player.Load()
	time.Sleep(20 * time.Millisecond)
	if npc.Load() != frozen {
		t.Error("npc tasks ticked after CancelGroup")
	}
	if player.Load() == before {
		t.Error("player task stopped by npc group cancel")
	}
	s.CancelAll()
	if s.Count("") != 0 {
		t.Errorf("tasks left: %d", s.Count(""))
	}
}

// TestScheduler_Manual tests deterministic stepping in scheduling order
func TestScheduler_Manual(t *testing.T) {
	s := NewScheduler(time.Hour, true)
	var order []string
	a := s.Schedule(GroupPlayer, "a", func() { order = append(order, "a") })
	s.Schedule(GroupNpc, "b", func() { order = append(order, "b") })

	s.Advance(2)
	want := []string{"a", "b", "a", "b"}
	if len(order) != len(want) {
		t.Fatalf("order = %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("order = %v, want %v", order, want)
		}
	}

	s.Cancel(a)
	s.Advance(1)
	if order[len(order)-1] != "b" || len(order) != 5 {
		t.Errorf("cancelled task still ticking: %v", order)
	}
	if a.Ticks() != 2 {
		t.Errorf("a.Ticks() = %d, want 2", a.Ticks())
	}
}
