package maplib

import (
	"strings"
	"testing"
)

const sampleLevel = `
name: crypt
spawn: [1, 1]
rows:
  - "#####"
  - "#...#"
  - "##+##"
  - "#..~#"
  - "#####"
`

func TestParseLevel(t *testing.T) {
	tm, err := ParseLevel([]byte(sampleLevel))
	if err != nil {
		t.Fatalf("ParseLevel: %v", err)
	}
	if tm.Name != "crypt" {
		t.Errorf("name = %q, want crypt", tm.Name)
	}
	if tm.Width != 5 || tm.Height != 5 {
		t.Fatalf("size = %dx%d, want 5x5", tm.Width, tm.Height)
	}
	if tm.SpawnX != 1 || tm.SpawnY != 1 {
		t.Errorf("spawn = (%d,%d), want (1,1)", tm.SpawnX, tm.SpawnY)
	}

	cases := []struct {
		x, y int
		want TileKind
	}{
		{0, 0, TileWall},
		{1, 1, TileFloor},
		{2, 2, TileDoor},
		{3, 3, TileWater},
	}
	for _, c := range cases {
		if got := tm.At(c.x, c.y); got != c.want {
			t.Errorf("tile (%d,%d) = %v, want %v", c.x, c.y, got, c.want)
		}
	}
}

func TestParseLevelLegendOverride(t *testing.T) {
	level := `
name: lava
legend:
  "x": wall
  "_": floor
rows:
  - "xxx"
  - "x_x"
  - "xxx"
`
	tm, err := ParseLevel([]byte(level))
	if err != nil {
		t.Fatalf("ParseLevel: %v", err)
	}
	if got := tm.At(1, 1); got != TileFloor {
		t.Errorf("tile (1,1) = %v, want floor", got)
	}
	if got := tm.At(0, 0); got != TileWall {
		t.Errorf("tile (0,0) = %v, want wall", got)
	}
}

func TestParseLevelShortRowsPadWithWall(t *testing.T) {
	level := `
name: ragged
rows:
  - "....."
  - "..."
`
	tm, err := ParseLevel([]byte(level))
	if err != nil {
		t.Fatalf("ParseLevel: %v", err)
	}
	if got := tm.At(4, 1); got != TileWall {
		t.Errorf("padded tile = %v, want wall", got)
	}
}

func TestParseLevelErrors(t *testing.T) {
	cases := []struct {
		name  string
		level string
		want  string
	}{
		{"no rows", "name: empty\n", "no rows"},
		{"unknown kind", "legend: {\"x\": lava}\nrows: [\"x\"]", "unknown tile kind"},
		{"unmapped rune", "rows: [\"%\"]", "unmapped rune"},
		{"multi-rune key", "legend: {\"ab\": wall}\nrows: [\".\"]", "single rune"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := ParseLevel([]byte(c.level))
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !strings.Contains(err.Error(), c.want) {
				t.Errorf("error %q does not mention %q", err, c.want)
			}
		})
	}
}

func TestLevelRoundTrip(t *testing.T) {
	tm := GenerateDungeon(24, 18, 11)
	path := t.TempDir() + "/level.yaml"
	if err := tm.SaveLevel(path); err != nil {
		t.Fatalf("SaveLevel: %v", err)
	}
	loaded, err := LoadLevel(path)
	if err != nil {
		t.Fatalf("LoadLevel: %v", err)
	}
	if loaded.Width != tm.Width || loaded.Height != tm.Height {
		t.Fatalf("size changed: %dx%d -> %dx%d", tm.Width, tm.Height, loaded.Width, loaded.Height)
	}
	for i := range tm.Tiles {
		if tm.Tiles[i] != loaded.Tiles[i] {
			t.Fatalf("tile %d changed: %v -> %v", i, tm.Tiles[i], loaded.Tiles[i])
		}
	}
	if loaded.SpawnX != tm.SpawnX || loaded.SpawnY != tm.SpawnY {
		t.Errorf("spawn changed: (%d,%d) -> (%d,%d)", tm.SpawnX, tm.SpawnY, loaded.SpawnX, loaded.SpawnY)
	}
}
