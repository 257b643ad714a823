package ant

import (
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/google/uuid"

	"github.com/lixenwraith/cants/events"
	"github.com/lixenwraith/cants/world"
)

func newTestResolver(t *testing.T, src string) (*Resolver, *events.EventQueue) {
	t.Helper()
	g, err := world.Load(strings.NewReader(src))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	q := events.NewEventQueue()
	return NewResolver(g, q), q
}

// TestResolver_TileEffects tests the outcome table for every tile kind
func TestResolver_TileEffects(t *testing.T) {
	tests := []struct {
		name     string
		col      int
		outcome  Outcome
		flag     AnthillFlag
		consumed bool
		after    world.Tile
	}{
		{"free commits and clears", 0, OutcomeCommit, FlagClear, false, world.TileFree},
		{"wall reverts", 1, OutcomeRevert, FlagKeep, false, world.TileWall},
		{"enclosed commits", 2, OutcomeCommit, FlagKeep, false, world.TileEnclosed},
		{"food is consumed", 3, OutcomeCommit, FlagKeep, true, world.TileFree},
		{"anthill reverts and sets", 4, OutcomeRevert, FlagSet, false, world.TileAnthill},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, q := newTestResolver(t, "0 1 2 3 4\n")
			c := world.Cell{Row: 0, Col: tt.col}

			got := r.Resolve(c, events.ActorPlayer, uuid.Nil)
			if got.Outcome != tt.outcome || got.Anthill != tt.flag || got.Consumed != tt.consumed {
				t.Errorf("Resolve = %+v, want outcome=%v flag=%v consumed=%v", got, tt.outcome, tt.flag, tt.consumed)
			}
			if tile, _ := r.Grid().Get(c); tile != tt.after {
				t.Errorf("tile after = %v, want %v", tile, tt.after)
			}

			evs := q.Consume()
			if tt.consumed {
				if len(evs) != 1 || evs[0].Type != events.EventFoodConsumed {
					t.Fatalf("events = %v, want one FoodConsumed", evs)
				}
				p := evs[0].Payload.(*events.FoodConsumedPayload)
				if p.Cell != c || p.Actor != events.ActorPlayer {
					t.Errorf("payload = %+v", p)
				}
			} else if len(evs) != 0 {
				t.Errorf("unexpected events: %v", evs)
			}
		})
	}
}

// TestResolver_OutOfBounds tests the explicit outcome instead of indexing past the grid
func TestResolver_OutOfBounds(t *testing.T) {
	r, q := newTestResolver(t, "0 0\n0 0\n")
	for _, c := range []world.Cell{{Row: -1, Col: 0}, {Row: 0, Col: 2}, {Row: 5, Col: 5}} {
		got := r.Resolve(c, events.ActorNpc, uuid.New())
		if got.Outcome != OutcomeOutOfBounds || !got.Outcome.Reverts() {
			t.Errorf("Resolve(%v) = %v, want out-of-bounds", c, got.Outcome)
		}
	}
	if q.Len() != 0 {
		t.Errorf("queue length = %d, want 0", q.Len())
	}
}

// TestResolver_ConcurrentConsume tests that racing actors consume one Food tile exactly once
func TestResolver_ConcurrentConsume(t *testing.T) {
	r, q := newTestResolver(t, "1 1 1\n1 3 1\n1 1 1\n")
	c := world.Cell{Row: 1, Col: 1}

	var (
		wg       sync.WaitGroup
		consumed atomic.Int32
	)
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if r.Resolve(c, events.ActorNpc, uuid.New()).Consumed {
				consumed.Add(1)
			}
		}()
	}
	wg.Wait()

	if consumed.Load() != 1 {
		t.Errorf("consumed %d times, want 1", consumed.Load())
	}
	if n := len(q.Consume()); n != 1 {
		t.Errorf("events = %d, want 1", n)
	}
	if r.Grid().Count(world.TileFood) != 0 {
		t.Error("food tile still present")
	}
}
