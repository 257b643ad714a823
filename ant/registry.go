package ant

import (
	"sync"

	"github.com/google/uuid"
)

// Registry holds the live NPCs in spawn order
type Registry struct {
	mu   sync.RWMutex
	npcs []*Npc
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{}
}

// Add appends n
func (r *Registry) Add(n *Npc) {
	r.mu.Lock()
	r.npcs = append(r.npcs, n)
	r.mu.Unlock()
}

// Remove drops the NPC with id and reports whether it was present
func (r *Registry) Remove(id uuid.UUID) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, n := range r.npcs {
		if n.id == id {
			r.npcs = append(r.npcs[:i], r.npcs[i+1:]...)
			return true
		}
	}
	return false
}

// Get returns the NPC with id
func (r *Registry) Get(id uuid.UUID) (*Npc, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, n := range r.npcs {
		if n.id == id {
			return n, true
		}
	}
	return nil, false
}

// Clear empties the registry and returns the removed NPCs
func (r *Registry) Clear() []*Npc {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := r.npcs
	r.npcs = nil
	return out
}

// Len returns the number of live NPCs
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.npcs)
}

// All returns a copy of the NPC list in spawn order
func (r *Registry) All() []*Npc {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]*Npc(nil), r.npcs...)
}

// Snapshots returns the state of every NPC in spawn order
func (r *Registry) Snapshots() []NpcSnapshot {
	npcs := r.All()
	out := make([]NpcSnapshot, len(npcs))
	for i, n := range npcs {
		out[i] = n.Snapshot()
	}
	return out
}
