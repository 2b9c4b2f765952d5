package geo

import (
	_ "embed"
	"errors"
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed hex_lattice.yaml
var hexLatticeYAML []byte

// Vertical overlap factor for pointy-top hexagon rows.
const hexRowOverlap = 0.75

// Half-cell horizontal shift applied to odd rows.
const hexOddRowShift = 0.5

// ErrUnknownHexCell is returned when a province key has no lattice cell.
var ErrUnknownHexCell = errors.New("no hex cell for key")

// HexCell is one lattice position. Key is the normalized province key
// (see package location), Region the administrative region grouping.
type HexCell struct {
	Key    string `yaml:"key"`
	Row    int    `yaml:"row"`
	Col    int    `yaml:"col"`
	Region string `yaml:"region"`
}

// HexLattice is the curated hexagon layout for the stylized map mode.
type HexLattice struct {
	Rows  int       `yaml:"rows"`
	Cols  int       `yaml:"cols"`
	Cells []HexCell `yaml:"cells"`

	byKey map[string]HexCell
}

var (
	latticeOnce sync.Once
	lattice     *HexLattice
	latticeErr  error
)

// DefaultLattice returns the embedded Thailand province lattice.
// The lattice is parsed once and shared; it is read-only after load.
func DefaultLattice() (*HexLattice, error) {
	latticeOnce.Do(func() {
		lattice, latticeErr = ParseLattice(hexLatticeYAML)
	})

	return lattice, latticeErr
}

// ParseLattice decodes a lattice definition from YAML.
func ParseLattice(raw []byte) (*HexLattice, error) {
	var l HexLattice

	err := yaml.Unmarshal(raw, &l)
	if err != nil {
		return nil, fmt.Errorf("parse hex lattice: %w", err)
	}

	if l.Rows <= 0 || l.Cols <= 0 {
		return nil, fmt.Errorf("parse hex lattice: invalid grid %dx%d", l.Rows, l.Cols)
	}

	l.byKey = make(map[string]HexCell, len(l.Cells))
	for _, cell := range l.Cells {
		l.byKey[cell.Key] = cell
	}

	return &l, nil
}

// Cell looks up the lattice cell for a normalized province key.
func (l *HexLattice) Cell(key string) (HexCell, error) {
	cell, ok := l.byKey[key]
	if !ok {
		return HexCell{}, fmt.Errorf("%w: %q", ErrUnknownHexCell, key)
	}

	return cell, nil
}

// ProjectCell maps a lattice cell onto the canvas using the same coordinate
// space as the continuous projection: origin at the canvas origin, Y growing
// downward. Odd rows shift half a cell right; rows overlap vertically as
// pointy-top hexagons do.
func (l *HexLattice) ProjectCell(cell HexCell, canvas Canvas) Point {
	cellWidth := canvas.Width / (float64(l.Cols) + hexOddRowShift)
	cellHeight := canvas.Height / (1 + hexRowOverlap*float64(l.Rows-1))

	shift := 0.0
	if cell.Row%2 == 1 {
		shift = hexOddRowShift
	}

	return Point{
		X: canvas.OriginX + cellWidth*(float64(cell.Col)+shift+hexOddRowShift),
		Y: canvas.OriginY + cellHeight*(hexRowOverlap*float64(cell.Row)+hexOddRowShift),
	}
}
