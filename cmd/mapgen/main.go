// Command mapgen generates dungeon and overworld maps and writes them
// as JSON or YAML level files, with optional ASCII and PNG previews.
package main

import (
	"flag"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"log"
	"os"
	"path/filepath"
	"strings"

	xdraw "golang.org/x/image/draw"

	"github.com/hollowmere/dungeon-engine/engine/maplib"
)

var previewColors = map[maplib.TileKind]color.RGBA{
	maplib.TileFloor:  {90, 82, 70, 255},
	maplib.TileWall:   {40, 36, 34, 255},
	maplib.TileDoor:   {139, 90, 43, 255},
	maplib.TileWater:  {30, 80, 160, 255},
	maplib.TileChasm:  {12, 10, 14, 255},
	maplib.TileRubble: {110, 100, 88, 255},
}

func main() {
	var (
		kind    = flag.String("kind", "dungeon", "map kind: dungeon or overworld")
		width   = flag.Int("w", 48, "map width in tiles")
		height  = flag.Int("h", 36, "map height in tiles")
		seed    = flag.Int64("seed", 1, "generator seed")
		out     = flag.String("o", "", "output file (.json or .yaml); none to skip")
		pngOut  = flag.String("png", "", "write a PNG preview to this path")
		scale   = flag.Int("scale", 8, "PNG preview pixels per tile")
		preview = flag.Bool("preview", false, "print the map as ASCII")
	)
	flag.Parse()

	var tm *maplib.TileMap
	switch *kind {
	case "overworld":
		tm = maplib.GenerateOverworld(*width, *height, *seed)
	case "dungeon":
		tm = maplib.GenerateDungeon(*width, *height, *seed)
	default:
		log.Fatalf("unknown map kind %q", *kind)
	}

	if *preview || *out == "" && *pngOut == "" {
		fmt.Print(tm.String())
	}

	if *out != "" {
		if err := save(tm, *out); err != nil {
			log.Fatalf("save %s: %v", *out, err)
		}
		fmt.Printf("wrote %s (%dx%d, seed %d)\n", *out, tm.Width, tm.Height, *seed)
	}

	if *pngOut != "" {
		if err := writePNG(tm, *pngOut, *scale); err != nil {
			log.Fatalf("write %s: %v", *pngOut, err)
		}
		fmt.Printf("wrote %s\n", *pngOut)
	}
}

func save(tm *maplib.TileMap, path string) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return tm.SaveJSON(path)
	case ".yaml", ".yml":
		return tm.SaveLevel(path)
	default:
		return fmt.Errorf("unsupported extension %q", filepath.Ext(path))
	}
}

// writePNG renders one pixel per tile and upscales with nearest
// neighbor so tile edges stay crisp
func writePNG(tm *maplib.TileMap, path string, scale int) error {
	if scale < 1 {
		scale = 1
	}
	src := image.NewRGBA(image.Rect(0, 0, tm.Width, tm.Height))
	for y := 0; y < tm.Height; y++ {
		for x := 0; x < tm.Width; x++ {
			clr, ok := previewColors[tm.At(x, y)]
			if !ok {
				clr = color.RGBA{255, 0, 255, 255}
			}
			src.Set(x, y, clr)
		}
	}

	dst := image.NewRGBA(image.Rect(0, 0, tm.Width*scale, tm.Height*scale))
	xdraw.NearestNeighbor.Scale(dst, dst.Bounds(), src, src.Bounds(), xdraw.Src, nil)

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return png.Encode(f, dst)
}
