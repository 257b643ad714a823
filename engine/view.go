package engine

import (
	"github.com/lixenwraith/cants/ant"
	"github.com/lixenwraith/cants/colony"
)

// View is what a renderer needs for one frame, captured on the main loop
type View struct {
	MapName    string
	Width      int // Grid columns
	Height     int // Grid rows
	Player     ant.PlayerState
	Npcs       []ant.NpcSnapshot
	Anthill    colony.Anthill
	FoodCount  int
	Threshold  int
	Level      int
	MaxLevel   int
	FoodActive int
	FoodTarget int
	Won        bool
}

// CanUpgrade reports whether pressing upgrade would succeed
func (v View) CanUpgrade() bool {
	return !v.Won && v.Player.InAnthill && v.Level < v.MaxLevel && v.FoodCount >= v.Threshold
}

// View captures the current state; ok is false before the first map load
func (s *Simulation) View() (View, bool) {
	if s.grid == nil {
		return View{}, false
	}
	return View{
		MapName:    s.mapName,
		Width:      s.grid.Width(),
		Height:     s.grid.Height(),
		Player:     s.player.Snapshot(),
		Npcs:       s.npcs.Snapshots(),
		Anthill:    *s.anthill,
		FoodCount:  s.player.FoodCount(),
		Threshold:  s.progression.Threshold(s.anthill.Level),
		Level:      s.anthill.Level,
		MaxLevel:   s.progression.MaxLevel(),
		FoodActive: s.food.Active(),
		FoodTarget: s.food.Target(),
		Won:        s.won,
	}, true
}
