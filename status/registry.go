package status

import (
	"fmt"
	"strings"
	"sync/atomic"
)

// Well-known metric keys
const (
	KeyPlayerTicks  = "ticks.player"
	KeyNpcTicks     = "ticks.npc"
	KeyFoodConsumed = "food.consumed"
	KeyFoodPlaced   = "food.placed"
	KeyFoodActive   = "food.active"
	KeyEventsDrops  = "events.dropped"
	KeyNpcCount     = "npc.count"
	KeyLevel        = "anthill.level"
	KeyFrameMs      = "frame.ms"
	KeyMapName      = "map.name"
	KeyGameWon      = "game.won"
)

// Registry is the central metrics facade
// Components cache pointers at construction; ticks write directly to atomics
type Registry struct {
	Bools   *MetricMap[atomic.Bool]
	Ints    *MetricMap[atomic.Int64]
	Floats  *MetricMap[AtomicFloat]
	Strings *MetricMap[AtomicString]
}

// NewRegistry creates an initialized Registry
func NewRegistry() *Registry {
	return &Registry{
		Bools:   NewMetricMap[atomic.Bool](),
		Ints:    NewMetricMap[atomic.Int64](),
		Floats:  NewMetricMap[AtomicFloat](),
		Strings: NewMetricMap[AtomicString](),
	}
}

// TotalCount returns total metrics across all types
func (r *Registry) TotalCount() int {
	return r.Bools.Count() + r.Ints.Count() + r.Floats.Count() + r.Strings.Count()
}

// Summary renders the given int and float metrics as "key=value" pairs for the debug line
// Unknown keys are skipped
func (r *Registry) Summary(keys ...string) string {
	var b strings.Builder
	for _, k := range keys {
		var v string
		switch {
		case r.Ints.Has(k):
			v = fmt.Sprintf("%d", r.Ints.Get(k).Load())
		case r.Floats.Has(k):
			v = fmt.Sprintf("%.1f", r.Floats.Get(k).Load())
		default:
			continue
		}
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(k)
		b.WriteByte('=')
		b.WriteString(v)
	}
	return b.String()
}
