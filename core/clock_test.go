package core

import (
	"testing"
	"time"
)

// TestMockClock_Advance tests deterministic time control
func TestMockClock_Advance(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	c := NewMockClock(start)
	c.Advance(250 * time.Millisecond)
	if got := c.Now().Sub(start); got != 250*time.Millisecond {
		t.Errorf("elapsed = %v, want 250ms", got)
	}
	c.Set(start)
	if !c.Now().Equal(start) {
		t.Errorf("Now = %v after Set, want %v", c.Now(), start)
	}
}

// TestSystemClock_Monotonic tests that the system clock never goes backwards
func TestSystemClock_Monotonic(t *testing.T) {
	var c Clock = SystemClock{}
	a := c.Now()
	b := c.Now()
	if b.Before(a) {
		t.Error("system clock went backwards")
	}
}
