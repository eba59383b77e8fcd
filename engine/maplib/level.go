package maplib

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// levelFile is the on-disk YAML shape for hand-edited levels: a legend
// mapping runes to tile kind names and one string row per map row.
type levelFile struct {
	Name   string            `yaml:"name"`
	Spawn  []int             `yaml:"spawn,omitempty"`
	Legend map[string]string `yaml:"legend,omitempty"`
	Rows   []string          `yaml:"rows"`
}

var kindNames = map[string]TileKind{
	"floor":  TileFloor,
	"wall":   TileWall,
	"door":   TileDoor,
	"water":  TileWater,
	"chasm":  TileChasm,
	"rubble": TileRubble,
}

// defaultLegend matches the runes produced by TileKind.Rune
var defaultLegend = map[rune]TileKind{
	'.': TileFloor,
	'#': TileWall,
	'+': TileDoor,
	'~': TileWater,
	' ': TileChasm,
	',': TileRubble,
}

// ParseLevel decodes a YAML level document into a TileMap
func ParseLevel(data []byte) (*TileMap, error) {
	var lf levelFile
	if err := yaml.Unmarshal(data, &lf); err != nil {
		return nil, fmt.Errorf("parse level: %w", err)
	}
	if len(lf.Rows) == 0 {
		return nil, fmt.Errorf("level %q has no rows", lf.Name)
	}

	legend := make(map[rune]TileKind, len(defaultLegend))
	for r, k := range defaultLegend {
		legend[r] = k
	}
	for s, name := range lf.Legend {
		runes := []rune(s)
		if len(runes) != 1 {
			return nil, fmt.Errorf("level %q: legend key %q must be a single rune", lf.Name, s)
		}
		kind, ok := kindNames[name]
		if !ok {
			return nil, fmt.Errorf("level %q: unknown tile kind %q", lf.Name, name)
		}
		legend[runes[0]] = kind
	}

	width := 0
	for _, row := range lf.Rows {
		if n := len([]rune(row)); n > width {
			width = n
		}
	}

	tm := NewTileMap(lf.Name, width, len(lf.Rows))
	for y, row := range lf.Rows {
		x := 0
		for _, r := range row {
			kind, ok := legend[r]
			if !ok {
				return nil, fmt.Errorf("level %q: row %d has unmapped rune %q", lf.Name, y, r)
			}
			tm.Set(x, y, kind)
			x++
		}
		// Short rows pad out with walls
		for ; x < width; x++ {
			tm.Set(x, y, TileWall)
		}
	}

	if len(lf.Spawn) == 2 {
		tm.SpawnX, tm.SpawnY = lf.Spawn[0], lf.Spawn[1]
	} else {
		tm.SpawnX, tm.SpawnY = tm.SpawnPosition()
	}
	return tm, nil
}

// LoadLevel reads a YAML level file from disk
func LoadLevel(path string) (*TileMap, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseLevel(data)
}

// SaveLevel writes the map as a YAML level using the default legend
func (tm *TileMap) SaveLevel(path string) error {
	lf := levelFile{
		Name:  tm.Name,
		Spawn: []int{tm.SpawnX, tm.SpawnY},
		Rows:  make([]string, tm.Height),
	}
	for y := 0; y < tm.Height; y++ {
		row := make([]rune, tm.Width)
		for x := 0; x < tm.Width; x++ {
			row[x] = tm.At(x, y).Rune()
		}
		lf.Rows[y] = string(row)
	}
	data, err := yaml.Marshal(&lf)
	if err != nil {
		return fmt.Errorf("marshal level %q: %w", tm.Name, err)
	}
	return os.WriteFile(path, data, 0644)
}
