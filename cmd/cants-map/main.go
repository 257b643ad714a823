// Command cants-map creates, inspects and generates map files
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/lixenwraith/cants/colony"
	"github.com/lixenwraith/cants/constants"
	"github.com/lixenwraith/cants/mapgen"
	"github.com/lixenwraith/cants/world"
)

const usage = `usage:
  cants-map create <file> <width> <height>
  cants-map info <file>
  cants-map generate [-kind meadow|warren] [-seed n] [-rocks p] [-braid p] [-food n] <file> <width> <height>
`

var errUsage = errors.New("invalid arguments")

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		if errors.Is(err, errUsage) {
			fmt.Fprint(os.Stderr, usage)
		}
		fmt.Fprintf(os.Stderr, "cants-map: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, out io.Writer) error {
	if len(args) == 0 {
		return errUsage
	}
	switch args[0] {
	case "create":
		return create(args[1:], out)
	case "info":
		return info(args[1:], out)
	case "generate":
		return generate(args[1:], out)
	default:
		return fmt.Errorf("%w: unknown command %q", errUsage, args[0])
	}
}

// sizeArgs parses "<file> <width> <height>"
func sizeArgs(args []string) (string, int, int, error) {
	if len(args) != 3 {
		return "", 0, 0, fmt.Errorf("%w: want <file> <width> <height>", errUsage)
	}
	w, err := strconv.Atoi(args[1])
	if err != nil || w <= 0 {
		return "", 0, 0, fmt.Errorf("%w: width %q", errUsage, args[1])
	}
	h, err := strconv.Atoi(args[2])
	if err != nil || h <= 0 {
		return "", 0, 0, fmt.Errorf("%w: height %q", errUsage, args[2])
	}
	return args[0], w, h, nil
}

// create writes an all-Free map; an anthill still has to be painted in before it is playable
func create(args []string, out io.Writer) error {
	path, w, h, err := sizeArgs(args)
	if err != nil {
		return err
	}
	if err := world.NewGrid(w, h).WriteFile(path); err != nil {
		return err
	}
	fmt.Fprintf(out, "created %s (%dx%d)\n", path, w, h)
	return nil
}

func info(args []string, out io.Writer) error {
	if len(args) != 1 {
		return fmt.Errorf("%w: want <file>", errUsage)
	}
	g, err := world.LoadFile(args[0])
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "%s: %dx%d\n", args[0], g.Width(), g.Height())
	counts := g.Counts()
	for t := world.Tile(0); t < world.TileCount; t++ {
		fmt.Fprintf(out, "  %-8s %d\n", t, counts[t])
	}
	fmt.Fprintf(out, "  food target %d\n", g.Area()/constants.TilesPerFood)

	hill, err := colony.FindAnthill(g)
	if err != nil {
		fmt.Fprintf(out, "  not playable: %v\n", err)
		return nil
	}
	fmt.Fprintf(out, "  anthill entrance (%d,%d)\n", hill.Entrance.Row, hill.Entrance.Col)
	return nil
}

func generate(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("generate", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	kind := fs.String("kind", string(mapgen.KindMeadow), "meadow or warren")
	seed := fs.Int64("seed", 0, "random seed, 0 seeds from the clock")
	rocks := fs.Float64("rocks", 0.06, "meadow rock density")
	braid := fs.Float64("braid", 0.5, "warren braiding")
	food := fs.Int("food", 0, "food tiles scattered at start")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %v", errUsage, err)
	}

	path, w, h, err := sizeArgs(fs.Args())
	if err != nil {
		return err
	}
	g, err := mapgen.Generate(mapgen.Config{
		Width:       w,
		Height:      h,
		Kind:        mapgen.Kind(*kind),
		Seed:        *seed,
		RockDensity: *rocks,
		Braiding:    *braid,
		Food:        *food,
	})
	if err != nil {
		return err
	}
	if err := g.WriteFile(path); err != nil {
		return err
	}
	fmt.Fprintf(out, "generated %s %s (%dx%d)\n", *kind, path, w, h)
	return nil
}
