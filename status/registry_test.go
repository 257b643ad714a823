package status

import (
	"math"
	"sync"
	"testing"
)

// TestMetricMap_GetReturnsSamePointer tests that cached pointers are stable across calls
func TestMetricMap_GetReturnsSamePointer(t *testing.T) {
	r := NewRegistry()
	a := r.Ints.Get(KeyNpcTicks)
	b := r.Ints.Get(KeyNpcTicks)
	if a != b {
		t.Fatal("Get returned different pointers for the same key")
	}
	a.Add(5)
	if b.Load() != 5 {
		t.Errorf("value = %d, want 5", b.Load())
	}
}

// TestMetricMap_ConcurrentRegistration tests concurrent first use of the same key
func TestMetricMap_ConcurrentRegistration(t *testing.T) {
	r := NewRegistry()
	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r.Ints.Get(KeyFoodConsumed).Add(1)
		}()
	}
	wg.Wait()
	if got := r.Ints.Get(KeyFoodConsumed).Load(); got != 32 {
		t.Errorf("counter = %d, want 32", got)
	}
	if r.TotalCount() != 1 {
		t.Errorf("TotalCount = %d, want 1", r.TotalCount())
	}
}

// TestRegistry_Summary tests the debug line rendering
func TestRegistry_Summary(t *testing.T) {
	r := NewRegistry()
	r.Ints.Get(KeyLevel).Store(3)
	r.Ints.Get(KeyNpcCount).Store(12)
	r.Floats.Get(KeyFrameMs).Store(4.5)

	got := r.Summary(KeyLevel, "missing", KeyFrameMs, KeyNpcCount)
	want := "anthill.level=3 frame.ms=4.5 npc.count=12"
	if got != want {
		t.Errorf("Summary = %q, want %q", got, want)
	}
}

// TestAtomicFloat_Smooth tests the moving average over frame samples
func TestAtomicFloat_Smooth(t *testing.T) {
	tests := []struct {
		name    string
		samples []float64
		weight  float64
		want    float64
	}{
		{"first sample seeds", []float64{16}, 0.25, 16},
		{"steady input", []float64{8, 8, 8}, 0.25, 8},
		{"step moves by weight", []float64{16, 8}, 0.25, 14},
		{"full weight follows", []float64{16, 8, 2}, 1, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var f AtomicFloat
			for _, s := range tt.samples {
				f.Smooth(s, tt.weight)
			}
			if got := f.Load(); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Load = %v, want %v", got, tt.want)
			}
		})
	}
}

// TestAtomicFloat_ConcurrentSmooth tests that concurrent writers never tear the value
func TestAtomicFloat_ConcurrentSmooth(t *testing.T) {
	var f AtomicFloat
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			f.Smooth(10, 0.5)
		}()
	}
	wg.Wait()
	if f.Load() != 10 {
		t.Errorf("Load = %v, want 10", f.Load())
	}
}

// TestAtomicString_Truncates tests the fixed maximum length
func TestAtomicString_Truncates(t *testing.T) {
	var s AtomicString
	if s.Load() != "" {
		t.Error("zero value should be empty")
	}
	s.Store("maps/a-very-long-map-file-name-that-goes-on.txt")
	if len(s.Load()) != MaxStringLen {
		t.Errorf("len = %d, want %d", len(s.Load()), MaxStringLen)
	}
}
