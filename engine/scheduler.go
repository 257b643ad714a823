package engine

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/lixenwraith/cants/core"
)

// Task groups
const (
	GroupPlayer = "player"
	GroupNpc    = "npc"
)

// Task drives one periodic function on its own goroutine
// Ticks of one task never overlap; distinct tasks interleave freely
type Task struct {
	name     string
	group    string
	interval time.Duration
	fn       func()

	stopChan chan struct{}
	stopOnce sync.Once
	done     chan struct{}
	ticks    atomic.Int64
}

func newTask(name, group string, interval time.Duration, fn func()) *Task {
	return &Task{
		name:     name,
		group:    group,
		interval: interval,
		fn:       fn,
		stopChan: make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Name returns the task name
func (t *Task) Name() string { return t.name }

// Group returns the task group
func (t *Task) Group() string { return t.group }

// Ticks returns the number of completed ticks
func (t *Task) Ticks() int64 { return t.ticks.Load() }

func (t *Task) run() {
	defer close(t.done)

	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()

	for {
		select {
		case <-t.stopChan:
			return
		case <-ticker.C:
			// Stop wins over a tick that became ready at the same time
			select {
			case <-t.stopChan:
				return
			default:
			}
			t.tick()
		}
	}
}

func (t *Task) tick() {
	t.fn()
	t.ticks.Add(1)
}

// Cancel stops the task and returns after any in-flight tick finished and the goroutine exited
// Must not be called from the task's own function
func (t *Task) Cancel() {
	t.stopOnce.Do(func() {
		close(t.stopChan)
	})
	<-t.done
}

// Scheduler owns every actor task
//
// In manual mode no goroutine is started and Advance runs ticks on the caller's goroutine,
// in scheduling order; tests use it for deterministic stepping
type Scheduler struct {
	mu       sync.Mutex
	interval time.Duration
	manual   bool
	tasks    []*Task
}

// NewScheduler creates a scheduler ticking every interval
func NewScheduler(interval time.Duration, manual bool) *Scheduler {
	return &Scheduler{interval: interval, manual: manual}
}

// Schedule registers fn and, unless manual, starts driving it immediately
func (s *Scheduler) Schedule(group, name string, fn func()) *Task {
	t := newTask(name, group, s.interval, fn)

	s.mu.Lock()
	s.tasks = append(s.tasks, t)
	s.mu.Unlock()

	if s.manual {
		close(t.done)
	} else {
		core.Go(t.run)
	}
	return t
}

// Advance runs n rounds of ticks synchronously, manual mode only
func (s *Scheduler) Advance(n int) {
	if !s.manual {
		return
	}
	for i := 0; i < n; i++ {
		for _, t := range s.snapshot() {
			select {
			case <-t.stopChan:
				continue
			default:
			}
			t.tick()
		}
	}
}

// CancelGroup cancels every task of group and returns how many were cancelled
// All of them have stopped when it returns
func (s *Scheduler) CancelGroup(group string) int {
	return s.cancelMatching(func(t *Task) bool { return t.group == group })
}

// CancelAll cancels every task
func (s *Scheduler) CancelAll() int {
	return s.cancelMatching(func(*Task) bool { return true })
}

// Cancel cancels one task and forgets it
func (s *Scheduler) Cancel(t *Task) {
	s.cancelMatching(func(other *Task) bool { return other == t })
}

func (s *Scheduler) cancelMatching(match func(*Task) bool) int {
	s.mu.Lock()
	var victims []*Task
	kept := s.tasks[:0]
	for _, t := range s.tasks {
		if match(t) {
			victims = append(victims, t)
		} else {
			kept = append(kept, t)
		}
	}
	s.tasks = kept
	s.mu.Unlock()

	// Waits for in-flight ticks
	for _, t := range victims {
		t.Cancel()
	}
	return len(victims)
}

// Count returns the number of live tasks in group, or all tasks for an empty group
func (s *Scheduler) Count(group string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if group == "" {
		return len(s.tasks)
	}
	n := 0
	for _, t := range s.tasks {
		if t.group == group {
			n++
		}
	}
	return n
}

func (s *Scheduler) snapshot() []*Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]*Task(nil), s.tasks...)
}
