package maplib

import "testing"

func TestTileKindWalkable(t *testing.T) {
	cases := []struct {
		kind TileKind
		want bool
	}{
		{TileFloor, true},
		{TileDoor, true},
		{TileRubble, true},
		{TileWall, false},
		{TileWater, false},
		{TileChasm, false},
	}
	for _, c := range cases {
		if got := c.kind.Walkable(); got != c.want {
			t.Errorf("TileKind(%d).Walkable() = %v, want %v", c.kind, got, c.want)
		}
	}
}

func TestIsWalkableOutOfBounds(t *testing.T) {
	tm := NewTileMap("test", 4, 4)
	cases := [][2]int{{-1, 0}, {0, -1}, {4, 0}, {0, 4}, {-100, -100}, {1000, 1000}}
	for _, c := range cases {
		if tm.IsWalkable(c[0], c[1]) {
			t.Errorf("out-of-bounds (%d,%d) must not be walkable", c[0], c[1])
		}
	}
	if !tm.IsWalkable(0, 0) {
		t.Errorf("fresh map floor should be walkable")
	}
}

func TestAtSetOutOfBounds(t *testing.T) {
	tm := NewTileMap("test", 3, 3)
	if got := tm.At(-1, 0); got != TileWall {
		t.Errorf("out-of-range At should read wall, got %v", got)
	}
	tm.Set(-1, 0, TileFloor) // must not panic
	tm.Set(1, 1, TileWall)
	if got := tm.At(1, 1); got != TileWall {
		t.Errorf("Set(1,1) lost: got %v", got)
	}
}

func TestPixelToTile(t *testing.T) {
	cases := []struct {
		px, py   float64
		tx, ty   int
	}{
		{0, 0, 0, 0},
		{31.9, 31.9, 0, 0},
		{32, 32, 1, 1},
		{48, 80, 1, 2},
		{-1, -1, -1, -1},
		{-32.5, 0, -2, 0},
	}
	for _, c := range cases {
		tx, ty := PixelToTile(c.px, c.py)
		if tx != c.tx || ty != c.ty {
			t.Errorf("PixelToTile(%v,%v) = (%d,%d), want (%d,%d)", c.px, c.py, tx, ty, c.tx, c.ty)
		}
	}
}

func TestTileCenterRoundTrip(t *testing.T) {
	for _, tile := range [][2]int{{0, 0}, {3, 7}, {15, 2}} {
		cx, cy := TileCenter(tile[0], tile[1])
		tx, ty := PixelToTile(cx, cy)
		if tx != tile[0] || ty != tile[1] {
			t.Errorf("center of (%d,%d) maps back to (%d,%d)", tile[0], tile[1], tx, ty)
		}
	}
}

func TestSpawnPositionFindsFloor(t *testing.T) {
	tm := NewTileMap("test", 9, 9)
	for i := range tm.Tiles {
		tm.Tiles[i] = TileWall
	}
	tm.Set(1, 1, TileFloor)

	x, y := tm.SpawnPosition()
	if x != 1 || y != 1 {
		t.Errorf("SpawnPosition = (%d,%d), want the only floor tile (1,1)", x, y)
	}
}

func TestJSONRoundTrip(t *testing.T) {
	tm := GenerateDungeon(30, 24, 7)
	path := t.TempDir() + "/map.json"
	if err := tm.SaveJSON(path); err != nil {
		t.Fatalf("SaveJSON: %v", err)
	}
	loaded, err := LoadJSON(path)
	if err != nil {
		t.Fatalf("LoadJSON: %v", err)
	}
	if loaded.Width != tm.Width || loaded.Height != tm.Height {
		t.Fatalf("dimensions changed: %dx%d -> %dx%d", tm.Width, tm.Height, loaded.Width, loaded.Height)
	}
	for i := range tm.Tiles {
		if tm.Tiles[i] != loaded.Tiles[i] {
			t.Fatalf("tile %d changed: %v -> %v", i, tm.Tiles[i], loaded.Tiles[i])
		}
	}
}
