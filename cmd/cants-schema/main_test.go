package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestWriteSchema(t *testing.T) {
	out := filepath.Join(t.TempDir(), "schema", "config.json")
	if err := writeSchema(out, buildSchema()); err != nil {
		t.Fatalf("writeSchema failed: %v", err)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read schema: %v", err)
	}

	s := string(data)
	for _, want := range []string{`"title": "cants config"`, `"level_table"`, `"tick_interval"`, `"max_npcs"`, `"additionalProperties": false`} {
		if !strings.Contains(s, want) {
			t.Errorf("schema missing %s", want)
		}
	}
	if _, err := os.Stat(out + ".tmp"); !os.IsNotExist(err) {
		t.Error("temp file left behind")
	}
}
