package maplib

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
)

// TileSize is the edge length of a tile in pixels. Pixel positions are
// converted to tile coordinates by floor division with this constant.
const TileSize = 32

// TileKind defines what occupies a tile
type TileKind uint8

const (
	TileFloor TileKind = iota
	TileWall
	TileDoor
	TileWater
	TileChasm
	TileRubble
)

// Walkable reports whether agents can stand on this kind of tile
func (k TileKind) Walkable() bool {
	switch k {
	case TileFloor, TileDoor, TileRubble:
		return true
	}
	return false
}

// Rune returns the legend character used in ASCII previews and YAML levels
func (k TileKind) Rune() rune {
	switch k {
	case TileFloor:
		return '.'
	case TileWall:
		return '#'
	case TileDoor:
		return '+'
	case TileWater:
		return '~'
	case TileChasm:
		return ' '
	case TileRubble:
		return ','
	}
	return '?'
}

// TileMap represents one game area as a dense grid of tile kinds
type TileMap struct {
	Name   string     `json:"name"`
	Width  int        `json:"width"`
	Height int        `json:"height"`
	Tiles  []TileKind `json:"tiles"`

	// Preferred player spawn tile
	SpawnX int `json:"spawn_x"`
	SpawnY int `json:"spawn_y"`
}

// NewTileMap creates a map filled with floor
func NewTileMap(name string, width, height int) *TileMap {
	return &TileMap{
		Name:   name,
		Width:  width,
		Height: height,
		Tiles:  make([]TileKind, width*height),
	}
}

// At returns the tile kind at (x, y). Out-of-range coordinates read as wall.
func (tm *TileMap) At(x, y int) TileKind {
	if x < 0 || y < 0 || x >= tm.Width || y >= tm.Height {
		return TileWall
	}
	return tm.Tiles[y*tm.Width+x]
}

// Set writes the tile kind at (x, y), ignoring out-of-range coordinates
func (tm *TileMap) Set(x, y int, k TileKind) {
	if x >= 0 && y >= 0 && x < tm.Width && y < tm.Height {
		tm.Tiles[y*tm.Width+x] = k
	}
}

// InBounds checks if coordinates are within map bounds
func (tm *TileMap) InBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < tm.Width && y < tm.Height
}

// IsWalkable reports whether an agent can occupy the tile at (x, y).
// Defined for any integer coordinates; out of bounds is never walkable.
func (tm *TileMap) IsWalkable(x, y int) bool {
	if !tm.InBounds(x, y) {
		return false
	}
	return tm.Tiles[y*tm.Width+x].Walkable()
}

// PixelToTile converts a pixel position to the tile containing it
func PixelToTile(px, py float64) (int, int) {
	return int(math.Floor(px / TileSize)), int(math.Floor(py / TileSize))
}

// TileCenter returns the pixel position at the center of a tile
func TileCenter(tx, ty int) (float64, float64) {
	return float64(tx*TileSize + TileSize/2), float64(ty*TileSize + TileSize/2)
}

// SpawnPosition returns a walkable tile near the map center, scanning
// outward in expanding squares. Falls back to the stored spawn tile.
func (tm *TileMap) SpawnPosition() (int, int) {
	cx, cy := tm.Width/2, tm.Height/2
	for radius := 0; radius <= tm.Width/2+tm.Height/2; radius++ {
		for dy := -radius; dy <= radius; dy++ {
			for dx := -radius; dx <= radius; dx++ {
				if tm.IsWalkable(cx+dx, cy+dy) {
					return cx + dx, cy + dy
				}
			}
		}
	}
	return tm.SpawnX, tm.SpawnY
}

// String renders the map with one legend rune per tile, one row per line
func (tm *TileMap) String() string {
	buf := make([]byte, 0, (tm.Width+1)*tm.Height)
	for y := 0; y < tm.Height; y++ {
		for x := 0; x < tm.Width; x++ {
			buf = append(buf, byte(tm.At(x, y).Rune()))
		}
		buf = append(buf, '\n')
	}
	return string(buf)
}

// SaveJSON saves the map to a JSON file
func (tm *TileMap) SaveJSON(path string) error {
	data, err := json.MarshalIndent(tm, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal map %q: %w", tm.Name, err)
	}
	return os.WriteFile(path, data, 0644)
}

// LoadJSON loads a map from a JSON file
func LoadJSON(path string) (*TileMap, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var tm TileMap
	if err := json.Unmarshal(data, &tm); err != nil {
		return nil, fmt.Errorf("parse map file %s: %w", path, err)
	}
	if tm.Width*tm.Height != len(tm.Tiles) {
		return nil, fmt.Errorf("map file %s: %dx%d does not match %d tiles", path, tm.Width, tm.Height, len(tm.Tiles))
	}
	return &tm, nil
}
