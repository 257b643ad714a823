package main

import (
	"bytes"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/lixenwraith/cants/colony"
	"github.com/lixenwraith/cants/world"
)

func TestRun_Create(t *testing.T) {
	path := filepath.Join(t.TempDir(), "blank.txt")
	var out bytes.Buffer
	if err := run([]string{"create", path, "8", "3"}, &out); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	g, err := world.LoadFile(path)
	if err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if g.Width() != 8 || g.Height() != 3 || g.Count(world.TileFree) != 24 {
		t.Errorf("map = %dx%d with %d free", g.Width(), g.Height(), g.Count(world.TileFree))
	}
}

func TestRun_GenerateAndInfo(t *testing.T) {
	path := filepath.Join(t.TempDir(), "warren.txt")
	var out bytes.Buffer
	if err := run([]string{"generate", "-kind", "warren", "-seed", "11", path, "31", "17"}, &out); err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	g, err := world.LoadFile(path)
	if err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if _, err := colony.FindAnthill(g); err != nil {
		t.Errorf("generated map has no anthill: %v", err)
	}

	out.Reset()
	if err := run([]string{"info", path}, &out); err != nil {
		t.Fatalf("info failed: %v", err)
	}
	for _, want := range []string{"31x17", "Anthill", "9", "anthill entrance (7,15)"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("info output missing %q:\n%s", want, out.String())
		}
	}
}

func TestRun_InfoNotPlayable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "blank.txt")
	run([]string{"create", path, "4", "4"}, &bytes.Buffer{})

	var out bytes.Buffer
	if err := run([]string{"info", path}, &out); err != nil {
		t.Fatalf("info failed: %v", err)
	}
	if !strings.Contains(out.String(), "not playable") {
		t.Errorf("info output:\n%s", out.String())
	}
}

func TestRun_UsageErrors(t *testing.T) {
	tests := [][]string{
		nil,
		{"explode"},
		{"create", "x.txt", "3"},
		{"create", "x.txt", "-3", "3"},
		{"info"},
		{"generate", "-bogus", "x.txt", "9", "9"},
	}
	for _, args := range tests {
		if err := run(args, &bytes.Buffer{}); !errors.Is(err, errUsage) {
			t.Errorf("run(%v) err = %v, want usage error", args, err)
		}
	}
}
