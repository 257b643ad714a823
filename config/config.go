package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/lixenwraith/cants/constants"
)

// Config is the optional YAML file layered over compiled defaults
type Config struct {
	MapsDir      string  `yaml:"maps_dir" json:"maps_dir,omitempty" jsonschema:"title=Maps directory,description=Directory listed by the map chooser"`
	TickInterval string  `yaml:"tick_interval" json:"tick_interval,omitempty" jsonschema:"title=Actor tick interval,description=Period of every ant task as a Go duration,default=10ms"`
	TilesPerFood int     `yaml:"tiles_per_food" json:"tiles_per_food,omitempty" jsonschema:"title=Tiles per food,description=Grid area sustaining one active food tile,minimum=1,default=90"`
	LevelTable   []int   `yaml:"level_table" json:"level_table,omitempty" jsonschema:"title=Level table,description=Food needed for each anthill upgrade; its length is the winning level"`
	MaxNpcs      int     `yaml:"max_npcs" json:"max_npcs,omitempty" jsonschema:"title=NPC limit,description=Upper bound on live NPC ants; 0 is unlimited,minimum=0"`
	Seed         int64   `yaml:"seed" json:"seed,omitempty" jsonschema:"title=Random seed,description=0 seeds from the clock"`
	Debug        bool    `yaml:"debug" json:"debug,omitempty" jsonschema:"title=Debug,description=Enables file logging and cheat keys"`
	Mute         bool    `yaml:"mute" json:"mute,omitempty" jsonschema:"title=Mute,description=Disables sound cues"`
	Volume       float64 `yaml:"volume" json:"volume,omitempty" jsonschema:"title=Volume,description=Sound cue gain,minimum=0,maximum=1,default=0.3"`
}

// Default returns the compiled defaults
func Default() Config {
	return Config{
		MapsDir:      "maps",
		TickInterval: constants.ActorTickInterval.String(),
		TilesPerFood: constants.TilesPerFood,
		LevelTable:   append([]int(nil), constants.DefaultLevelTable...),
		Volume:       0.3,
	}
}

// Load reads the file at path over the defaults; an empty path yields the defaults
func Load(path string) (Config, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes YAML over the defaults and validates the result
// Unknown keys are rejected
func Parse(data []byte) (Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports the first invalid setting
func (c Config) Validate() error {
	d, err := time.ParseDuration(c.TickInterval)
	if err != nil {
		return fmt.Errorf("tick_interval: %w", err)
	}
	if d <= 0 {
		return fmt.Errorf("tick_interval: must be positive, got %s", d)
	}
	if c.TilesPerFood <= 0 {
		return fmt.Errorf("tiles_per_food: must be positive, got %d", c.TilesPerFood)
	}
	if len(c.LevelTable) == 0 {
		return errors.New("level_table: must not be empty")
	}
	for i, v := range c.LevelTable {
		if v <= 0 {
			return fmt.Errorf("level_table[%d]: must be positive, got %d", i, v)
		}
		if i > 0 && v <= c.LevelTable[i-1] {
			return fmt.Errorf("level_table[%d]: must ascend, %d after %d", i, v, c.LevelTable[i-1])
		}
	}
	if c.MaxNpcs < 0 {
		return fmt.Errorf("max_npcs: must not be negative, got %d", c.MaxNpcs)
	}
	if c.Volume < 0 || c.Volume > 1 {
		return fmt.Errorf("volume: must be within [0,1], got %v", c.Volume)
	}
	return nil
}

// Tick returns the parsed actor tick interval, the default when unparsable
func (c Config) Tick() time.Duration {
	d, err := time.ParseDuration(c.TickInterval)
	if err != nil || d <= 0 {
		return constants.ActorTickInterval
	}
	return d
}

// Marshal encodes the config as YAML
func (c Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}
