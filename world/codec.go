package world

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// Load parses a map: one grid row per line, whitespace-separated tile codes
// Blank lines after the last row are ignored, any other blank line is an empty row
func Load(r io.Reader) (*Grid, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1<<20)

	var (
		rows       [][]Tile
		blankLines []int
		lineNo     int
	)
	for sc.Scan() {
		lineNo++
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 {
			blankLines = append(blankLines, lineNo)
			continue
		}
		if len(blankLines) > 0 {
			return nil, &FormatError{Line: blankLines[0], Msg: "empty row"}
		}

		row := make([]Tile, len(fields))
		for i, f := range fields {
			code, err := strconv.Atoi(f)
			if err != nil {
				return nil, &FormatError{Line: lineNo, Msg: fmt.Sprintf("token %q is not a tile code", f)}
			}
			if code < 0 || code >= int(TileCount) {
				return nil, &FormatError{Line: lineNo, Msg: fmt.Sprintf("unknown tile code %d", code)}
			}
			row[i] = Tile(code)
		}
		if len(rows) > 0 && len(row) != len(rows[0]) {
			return nil, &FormatError{
				Line: lineNo,
				Msg:  fmt.Sprintf("row has %d tiles, expected %d (rows must have the same length)", len(row), len(rows[0])),
			}
		}
		rows = append(rows, row)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read map: %w", err)
	}
	if len(rows) == 0 {
		return nil, &FormatError{Msg: "empty map"}
	}
	return newGridFromRows(rows), nil
}

// LoadFile reads and parses the map at path
func LoadFile(path string) (*Grid, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open map: %w", err)
	}
	defer f.Close()

	g, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return g, nil
}

// Encode writes the grid in the map file format
func (g *Grid) Encode(w io.Writer) error {
	bw := bufio.NewWriter(w)
	for _, row := range g.Rows() {
		for i, t := range row {
			if i > 0 {
				bw.WriteByte(' ')
			}
			bw.WriteString(strconv.Itoa(int(t)))
		}
		bw.WriteByte('\n')
	}
	return bw.Flush()
}

// WriteFile encodes the grid into path, replacing any existing file
func (g *Grid) WriteFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create map: %w", err)
	}
	if err := g.Encode(f); err != nil {
		f.Close()
		return fmt.Errorf("write map: %w", err)
	}
	return f.Close()
}
