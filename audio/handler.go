package audio

import (
	"github.com/lixenwraith/cants/colony"
	"github.com/lixenwraith/cants/events"
)

// Handler turns game events into cues
type Handler struct {
	play func(Cue)
}

// NewHandler routes cues to sm
func NewHandler(sm *SoundManager) *Handler {
	return &Handler{play: sm.Play}
}

// HandleEvent implements events.Handler
// Only the player's own bites chomp; NPC foraging stays silent
func (h *Handler) HandleEvent(_ colony.Context, ev events.GameEvent) {
	switch ev.Type {
	case events.EventFoodConsumed:
		if p, ok := ev.Payload.(*events.FoodConsumedPayload); ok && p.Actor == events.ActorPlayer {
			h.play(CueChomp)
		}
	case events.EventAnthillUpgraded:
		h.play(CueLevelUp)
		if p, ok := ev.Payload.(*events.AnthillUpgradedPayload); ok && p.Spawned > 0 {
			h.play(CueHatch)
		}
	case events.EventGameWon:
		h.play(CueWin)
	}
}

// EventTypes implements events.Handler
func (h *Handler) EventTypes() []events.EventType {
	return []events.EventType{events.EventFoodConsumed, events.EventAnthillUpgraded, events.EventGameWon}
}
