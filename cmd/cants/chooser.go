package main

import (
	"fmt"
	"path/filepath"
	"sort"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/cants/render"
)

type choice int

const (
	choiceNone choice = iota
	choiceLoad
	choiceBack // Return to the running map
	choiceQuit
)

// chooser lists the *.txt maps of a directory
type chooser struct {
	dir      string
	maps     []string
	selected int
	status   string // Last load error or hint
}

func newChooser(dir string) *chooser {
	return &chooser{dir: dir}
}

// refresh re-reads the directory, keeping the selection in range
func (c *chooser) refresh() error {
	maps, err := filepath.Glob(filepath.Join(c.dir, "*.txt"))
	if err != nil {
		return fmt.Errorf("list maps: %w", err)
	}
	sort.Strings(maps)
	c.maps = maps
	c.selected = min(c.selected, max(len(maps)-1, 0))
	if len(maps) == 0 {
		c.status = fmt.Sprintf("no *.txt maps in %s", c.dir)
	}
	return nil
}

// selection returns the highlighted map path
func (c *chooser) selection() (string, bool) {
	if len(c.maps) == 0 {
		return "", false
	}
	return c.maps[c.selected], true
}

// handleKey moves the highlight or returns the choice bound to the key
func (c *chooser) handleKey(ev *tcell.EventKey) choice {
	switch ev.Key() {
	case tcell.KeyUp:
		c.move(-1)
	case tcell.KeyDown, tcell.KeyTab:
		c.move(1)
	case tcell.KeyEnter:
		if _, ok := c.selection(); ok {
			return choiceLoad
		}
	case tcell.KeyEscape:
		return choiceBack
	case tcell.KeyCtrlC:
		return choiceQuit
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'k', 'w':
			c.move(-1)
		case 'j', 's':
			c.move(1)
		case 'q', 'Q':
			return choiceQuit
		case 'c', 'C':
			if ev.Modifiers()&tcell.ModCtrl != 0 {
				return choiceQuit
			}
		}
	}
	return choiceNone
}

func (c *chooser) move(delta int) {
	if len(c.maps) == 0 {
		return
	}
	c.selected = (c.selected + delta + len(c.maps)) % len(c.maps)
}

func (c *chooser) draw(screen tcell.Screen) {
	screen.Clear()
	title := tcell.StyleDefault.Foreground(render.RgbFood.Color()).Bold(true)
	plain := tcell.StyleDefault
	highlight := tcell.StyleDefault.Reverse(true)
	hint := tcell.StyleDefault.Foreground(render.RgbDebug.Color())

	putText(screen, 2, 1, "cants - choose a map", title)
	for i, m := range c.maps {
		style := plain
		if i == c.selected {
			style = highlight
		}
		putText(screen, 4, 3+i, filepath.Base(m), style)
	}
	y := 4 + len(c.maps)
	if c.status != "" {
		putText(screen, 2, y, c.status, tcell.StyleDefault.Foreground(render.RgbPlayer.Color()))
		y++
	}
	putText(screen, 2, y+1, "enter load  esc back  q quit", hint)
	screen.Show()
}

func putText(screen tcell.Screen, x, y int, s string, style tcell.Style) {
	for _, ch := range s {
		screen.SetContent(x, y, ch, nil, style)
		x++
	}
}
