// Package render draws the tile map, entities, and debug overlays for
// the top-down view.
package render

import (
	"fmt"
	"image/color"
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/hollowmere/dungeon-engine/engine/core"
	"github.com/hollowmere/dungeon-engine/engine/maplib"
	"github.com/hollowmere/dungeon-engine/engine/pathfind"
)

// TileColors maps tile kinds to colors (placeholder until real sprites)
var TileColors = map[maplib.TileKind]color.RGBA{
	maplib.TileFloor:  {90, 82, 70, 255},    // worn stone
	maplib.TileWall:   {40, 36, 34, 255},    // dark rock
	maplib.TileDoor:   {139, 90, 43, 255},   // wood brown
	maplib.TileWater:  {30, 80, 160, 255},   // blue
	maplib.TileChasm:  {12, 10, 14, 255},    // near black
	maplib.TileRubble: {110, 100, 88, 255},  // gravel
}

// Renderer draws the world each frame
type Renderer struct {
	Camera    *Camera
	tileCache map[maplib.TileKind]*ebiten.Image
}

func NewRenderer(screenW, screenH int) *Renderer {
	return &Renderer{
		Camera:    NewCamera(screenW, screenH),
		tileCache: make(map[maplib.TileKind]*ebiten.Image),
	}
}

func (r *Renderer) tileImage(kind maplib.TileKind) *ebiten.Image {
	if img, ok := r.tileCache[kind]; ok {
		return img
	}
	clr, ok := TileColors[kind]
	if !ok {
		clr = color.RGBA{255, 0, 255, 255}
	}
	img := ebiten.NewImage(maplib.TileSize, maplib.TileSize)
	img.Fill(clr)
	r.tileCache[kind] = img
	return img
}

// DrawMap renders the visible portion of the tile map
func (r *Renderer) DrawMap(screen *ebiten.Image, tm *maplib.TileMap) {
	minX, minY, maxX, maxY := r.Camera.VisibleTileRange(tm.Width, tm.Height)
	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			sx, sy := r.Camera.WorldToScreen(float64(x*maplib.TileSize), float64(y*maplib.TileSize))
			op := &ebiten.DrawImageOptions{}
			op.GeoM.Scale(r.Camera.Zoom, r.Camera.Zoom)
			op.GeoM.Translate(sx, sy)
			screen.DrawImage(r.tileImage(tm.At(x, y)), op)
		}
	}
}

// DrawEntities renders every visible sprite, lowest ZOrder first
func (r *Renderer) DrawEntities(screen *ebiten.Image, w *core.World) {
	ids := w.Query(core.CompPosition, core.CompSprite)
	sort.Slice(ids, func(i, j int) bool {
		a := w.Get(ids[i], core.CompSprite).(*core.Sprite)
		b := w.Get(ids[j], core.CompSprite).(*core.Sprite)
		return a.ZOrder < b.ZOrder
	})

	for _, id := range ids {
		spr := w.Get(id, core.CompSprite).(*core.Sprite)
		if !spr.Visible {
			continue
		}
		pos := w.Get(id, core.CompPosition).(*core.Position)
		sx, sy := r.Camera.WorldToScreen(pos.X, pos.Y)

		hw := float32(spr.Width) / 2 * float32(r.Camera.Zoom)
		hh := float32(spr.Height) / 2 * float32(r.Camera.Zoom)
		clr := rgba(spr.Color)
		vector.DrawFilledRect(screen, float32(sx)-hw*0.7, float32(sy)-hh*0.7, hw*1.4, hh*1.4, clr, false)

		if hp := w.Get(id, core.CompHealth); hp != nil {
			h := hp.(*core.Health)
			if h.Current < h.Max {
				barW := hw * 1.4
				bx := float32(sx) - hw*0.7
				by := float32(sy) - hh
				vector.DrawFilledRect(screen, bx, by, barW, 3, color.RGBA{60, 0, 0, 200}, false)
				vector.DrawFilledRect(screen, bx, by, barW*float32(h.Ratio()), 3, color.RGBA{0, 200, 0, 220}, false)
			}
		}
	}
}

// DrawGrid draws tile boundaries over the visible region
func (r *Renderer) DrawGrid(screen *ebiten.Image, tm *maplib.TileMap) {
	minX, minY, maxX, maxY := r.Camera.VisibleTileRange(tm.Width, tm.Height)
	gridColor := color.RGBA{255, 255, 255, 30}
	step := float32(maplib.TileSize * r.Camera.Zoom)

	x0, y0 := r.Camera.WorldToScreen(float64(minX*maplib.TileSize), float64(minY*maplib.TileSize))
	x1, y1 := r.Camera.WorldToScreen(float64((maxX+1)*maplib.TileSize), float64((maxY+1)*maplib.TileSize))

	for x := minX; x <= maxX+1; x++ {
		fx := float32(x0) + float32(x-minX)*step
		vector.StrokeLine(screen, fx, float32(y0), fx, float32(y1), 1, gridColor, false)
	}
	for y := minY; y <= maxY+1; y++ {
		fy := float32(y0) + float32(y-minY)*step
		vector.StrokeLine(screen, float32(x0), fy, float32(x1), fy, 1, gridColor, false)
	}
}

// DrawPaths draws every entity's active waypoint path
func (r *Renderer) DrawPaths(screen *ebiten.Image, w *core.World) {
	pathColor := color.RGBA{80, 220, 120, 200}
	for _, id := range w.Query(core.CompPosition, core.CompMovable) {
		mov := w.Get(id, core.CompMovable).(*core.Movable)
		if len(mov.Path) == 0 || mov.PathIdx >= len(mov.Path) {
			continue
		}
		pos := w.Get(id, core.CompPosition).(*core.Position)
		px, py := r.Camera.WorldToScreen(pos.X, pos.Y)
		prevX, prevY := float32(px), float32(py)
		for i := mov.PathIdx; i < len(mov.Path); i++ {
			sx, sy := r.Camera.WorldToScreen(mov.Path[i].X, mov.Path[i].Y)
			vector.StrokeLine(screen, prevX, prevY, float32(sx), float32(sy), 2, pathColor, false)
			vector.DrawFilledCircle(screen, float32(sx), float32(sy), 3, pathColor, false)
			prevX, prevY = float32(sx), float32(sy)
		}
	}
}

// DrawPenaltyOverlay shades each visible tile by its wall penalty, red
// for expensive terrain near walls
func (r *Renderer) DrawPenaltyOverlay(screen *ebiten.Image, tm *maplib.TileMap) {
	minX, minY, maxX, maxY := r.Camera.VisibleTileRange(tm.Width, tm.Height)
	size := float32(maplib.TileSize * r.Camera.Zoom)
	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			if !tm.IsWalkable(x, y) {
				continue
			}
			p := pathfind.WallPenalty(tm, x, y)
			if p <= 0 {
				continue
			}
			alpha := p / 6.0
			if alpha > 1 {
				alpha = 1
			}
			sx, sy := r.Camera.WorldToScreen(float64(x*maplib.TileSize), float64(y*maplib.TileSize))
			vector.DrawFilledRect(screen, float32(sx), float32(sy), size, size,
				color.RGBA{uint8(200 * alpha), 0, 0, uint8(110 * alpha)}, false)
		}
	}
}

// DrawStuckOverlay marks visible tiles where an agent would be
// considered wedged
func (r *Renderer) DrawStuckOverlay(screen *ebiten.Image, tm *maplib.TileMap) {
	minX, minY, maxX, maxY := r.Camera.VisibleTileRange(tm.Width, tm.Height)
	markColor := color.RGBA{255, 200, 0, 200}
	size := float32(maplib.TileSize * r.Camera.Zoom)
	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			if !tm.IsWalkable(x, y) || !pathfind.IsStuck(tm, x, y, pathfind.DefaultStuckThreshold) {
				continue
			}
			sx, sy := r.Camera.WorldToScreen(float64(x*maplib.TileSize), float64(y*maplib.TileSize))
			cx, cy := float32(sx)+size/2, float32(sy)+size/2
			q := size / 4
			vector.StrokeLine(screen, cx-q, cy-q, cx+q, cy+q, 2, markColor, false)
			vector.StrokeLine(screen, cx-q, cy+q, cx+q, cy-q, 2, markColor, false)
		}
	}
}

// DrawHUD prints game status in the corner
func (r *Renderer) DrawHUD(screen *ebiten.Image, w *core.World, mapName string, debug bool) {
	monsters := 0
	var playerHP *core.Health
	for _, id := range w.Query(core.CompFaction, core.CompHealth) {
		if w.Get(id, core.CompFaction).(*core.Faction).ID == core.FactionMonster {
			monsters++
		} else if w.Has(id, core.CompPlayerTag) {
			playerHP = w.Get(id, core.CompHealth).(*core.Health)
		}
	}
	hp := "-"
	if playerHP != nil {
		hp = fmt.Sprintf("%d/%d", playerHP.Current, playerHP.Max)
	}
	info := fmt.Sprintf("%s | HP %s | monsters %d | tick %d", mapName, hp, monsters, w.TickCount)
	ebitenutil.DebugPrintAt(screen, info, 10, 8)
	if debug {
		ebitenutil.DebugPrintAt(screen, "[G]rid [P]aths [O]verlay penalty [K]stuck [R]egen", 10, 24)
	}
}

func rgba(c uint32) color.RGBA {
	return color.RGBA{
		R: uint8(c >> 24),
		G: uint8(c >> 16),
		B: uint8(c >> 8),
		A: uint8(c),
	}
}
