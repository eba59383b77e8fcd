package main

import (
	"flag"
	"fmt"
	"image/color"
	"log"
	"math"
	"math/rand"
	"path/filepath"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"

	"github.com/hollowmere/dungeon-engine/engine/ai"
	"github.com/hollowmere/dungeon-engine/engine/audio"
	"github.com/hollowmere/dungeon-engine/engine/core"
	"github.com/hollowmere/dungeon-engine/engine/input"
	"github.com/hollowmere/dungeon-engine/engine/maplib"
	"github.com/hollowmere/dungeon-engine/engine/pathfind"
	"github.com/hollowmere/dungeon-engine/engine/render"
	"github.com/hollowmere/dungeon-engine/engine/systems"
)

const (
	ScreenWidth  = 1280
	ScreenHeight = 720
	TickRate     = 30.0
)

// Game implements the ebiten.Game interface
type Game struct {
	renderer *render.Renderer
	tileMap  *maplib.TileMap
	gameLoop *core.GameLoop
	inp      *input.InputState
	eventBus *core.EventBus
	rng      *rand.Rand
	seed     int64

	playerID core.EntityID
	sounds   *audio.AudioManager
	pursuit  *ai.PursuitSystem
	movement *systems.MovementSystem
	spawner  *systems.SpawnSystem
	watcher  *maplib.Watcher

	// Debug overlay toggles
	showGrid    bool
	showPaths   bool
	showPenalty bool
	showStuck   bool
	gameOver    bool
}

func NewGame(tm *maplib.TileMap, watcher *maplib.Watcher, seed int64) *Game {
	g := &Game{
		renderer: render.NewRenderer(ScreenWidth, ScreenHeight),
		tileMap:  tm,
		gameLoop: core.NewGameLoop(TickRate),
		inp:      input.NewInputState(),
		eventBus: core.NewEventBus(),
		rng:      rand.New(rand.NewSource(seed)),
		seed:     seed,
		watcher:  watcher,
	}

	w := g.gameLoop.World
	g.pursuit = ai.NewPursuitSystem(tm, g.eventBus, g.rng)
	g.movement = systems.NewMovementSystem(tm, g.eventBus)
	g.spawner = systems.NewSpawnSystem(tm, g.eventBus, g.rng)
	w.AddSystem(g.spawner)
	w.AddSystem(&systems.CombatSystem{EventBus: g.eventBus})
	w.AddSystem(g.pursuit)
	w.AddSystem(g.movement)
	w.AddSystem(&systems.AnimationSystem{})

	sx, sy := tm.SpawnPosition()
	px, py := maplib.TileCenter(sx, sy)
	g.playerID = systems.SpawnPlayer(w, g.eventBus, px, py)

	g.sounds = audio.NewAudioManager()
	g.eventBus.On(core.EvtEntityAttack, func(e core.Event) {
		if id, ok := e.Payload.(core.EntityID); ok {
			if pos := w.Get(id, core.CompPosition); pos != nil {
				p := pos.(*core.Position)
				g.sounds.PlaySFX(audio.SndAttack, p.X, p.Y)
			}
		}
	})
	g.eventBus.On(core.EvtEntityDied, func(e core.Event) {
		if id, ok := e.Payload.(core.EntityID); ok && id == g.playerID {
			g.gameOver = true
			g.gameLoop.Pause()
		}
	})

	g.renderer.Camera.SetMapBounds(tm.Width, tm.Height)
	g.renderer.Camera.CenterOn(px, py)
	g.gameLoop.Play()
	return g
}

func (g *Game) Update() error {
	g.inp.Update()
	g.pollWatcher()

	if g.inp.IsKeyJustPressed(ebiten.KeyG) {
		g.showGrid = !g.showGrid
	}
	if g.inp.IsKeyJustPressed(ebiten.KeyP) {
		g.showPaths = !g.showPaths
	}
	if g.inp.IsKeyJustPressed(ebiten.KeyO) {
		g.showPenalty = !g.showPenalty
	}
	if g.inp.IsKeyJustPressed(ebiten.KeyK) {
		g.showStuck = !g.showStuck
	}
	if g.inp.IsKeyJustPressed(ebiten.KeyR) {
		g.regenerate()
	}
	if g.inp.IsKeyJustPressed(ebiten.KeySpace) && !g.gameOver {
		if g.gameLoop.State == core.StatePlaying {
			g.gameLoop.Pause()
		} else {
			g.gameLoop.Play()
		}
	}

	if g.inp.ScrollY != 0 {
		g.renderer.Camera.SetZoom(g.renderer.Camera.Zoom + g.inp.ScrollY*0.1)
	}

	g.controlPlayer()
	g.gameLoop.Update()
	g.eventBus.Dispatch()
	g.followPlayer()
	return nil
}

// controlPlayer handles direct WASD movement and click-to-move. Direct
// input always wins: touching the keys cancels any active path.
func (g *Game) controlPlayer() {
	w := g.gameLoop.World
	if !w.Alive(g.playerID) || g.gameLoop.State != core.StatePlaying {
		return
	}
	pos := w.Get(g.playerID, core.CompPosition).(*core.Position)
	mov := w.Get(g.playerID, core.CompMovable).(*core.Movable)

	if g.inp.MoveX != 0 || g.inp.MoveY != 0 {
		mov.Path = nil
		mov.PathIdx = 0
		dt := 1.0 / 60.0
		nx := pos.X + g.inp.MoveX*mov.Speed*dt
		ny := pos.Y + g.inp.MoveY*mov.Speed*dt
		if tx, ty := maplib.PixelToTile(nx, pos.Y); g.tileMap.IsWalkable(tx, ty) {
			pos.X = nx
		}
		if tx, ty := maplib.PixelToTile(pos.X, ny); g.tileMap.IsWalkable(tx, ty) {
			pos.Y = ny
		}
		pos.Facing = math.Atan2(g.inp.MoveY, g.inp.MoveX)
		return
	}

	if g.inp.LeftJustPressed {
		wx, wy := g.renderer.Camera.ScreenToWorld(g.inp.MouseX, g.inp.MouseY)
		path := pathfind.FindPath(g.tileMap,
			pathfind.Waypoint{X: pos.X, Y: pos.Y},
			pathfind.Waypoint{X: wx, Y: wy},
			pathfind.WithMaxDistance(60))
		if path != nil {
			mov.Path = make([]core.Vec2, len(path))
			for i, wp := range path {
				mov.Path[i] = core.Vec2{X: wp.X, Y: wp.Y}
			}
			mov.PathIdx = 0
		}
	}
}

func (g *Game) followPlayer() {
	if pos := g.gameLoop.World.Get(g.playerID, core.CompPosition); pos != nil {
		p := pos.(*core.Position)
		g.renderer.Camera.CenterOn(p.X, p.Y)
		g.sounds.SetListenerPos(p.X, p.Y)
	}
}

// pollWatcher applies hot-reloaded maps without blocking the frame
func (g *Game) pollWatcher() {
	if g.watcher == nil {
		return
	}
	select {
	case tm, ok := <-g.watcher.Maps:
		if ok {
			g.setMap(tm)
			log.Printf("map reloaded: %s", tm.Name)
		}
	case err, ok := <-g.watcher.Errors:
		if ok {
			log.Printf("map reload failed: %v", err)
		}
	default:
	}
}

func (g *Game) setMap(tm *maplib.TileMap) {
	g.tileMap = tm
	g.pursuit.SetMap(tm)
	g.movement.SetMap(tm)
	g.spawner.SetMap(tm)
	g.renderer.Camera.SetMapBounds(tm.Width, tm.Height)
	g.eventBus.Emit(core.Event{Type: core.EvtMapChanged, Tick: g.gameLoop.CurrentTick()})

	// Rescue the player if the new layout buries them in a wall
	w := g.gameLoop.World
	if pos := w.Get(g.playerID, core.CompPosition); pos != nil {
		p := pos.(*core.Position)
		if tx, ty := maplib.PixelToTile(p.X, p.Y); !tm.IsWalkable(tx, ty) {
			sx, sy := tm.SpawnPosition()
			p.X, p.Y = maplib.TileCenter(sx, sy)
		}
	}
}

// regenerate rebuilds the dungeon with a fresh seed and restarts
func (g *Game) regenerate() {
	g.seed++
	tm := maplib.GenerateDungeon(g.tileMap.Width, g.tileMap.Height, g.seed)
	g.setMap(tm)

	w := g.gameLoop.World
	for _, id := range w.Query(core.CompFaction) {
		if w.Get(id, core.CompFaction).(*core.Faction).ID == core.FactionMonster {
			w.Destroy(id)
		}
	}
	sx, sy := tm.SpawnPosition()
	px, py := maplib.TileCenter(sx, sy)
	if pos := w.Get(g.playerID, core.CompPosition); pos != nil {
		p := pos.(*core.Position)
		p.X, p.Y = px, py
	}
	if mov := w.Get(g.playerID, core.CompMovable); mov != nil {
		m := mov.(*core.Movable)
		m.Path = nil
		m.PathIdx = 0
	}

	if g.gameOver {
		// The dead player entity was destroyed; bring in a fresh one
		if !w.Alive(g.playerID) {
			g.playerID = systems.SpawnPlayer(w, g.eventBus, px, py)
		}
		g.gameOver = false
		g.gameLoop.Play()
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{16, 14, 18, 255})

	g.renderer.DrawMap(screen, g.tileMap)
	if g.showPenalty {
		g.renderer.DrawPenaltyOverlay(screen, g.tileMap)
	}
	if g.showStuck {
		g.renderer.DrawStuckOverlay(screen, g.tileMap)
	}
	if g.showGrid {
		g.renderer.DrawGrid(screen, g.tileMap)
	}
	g.renderer.DrawEntities(screen, g.gameLoop.World)
	if g.showPaths {
		g.renderer.DrawPaths(screen, g.gameLoop.World)
	}
	g.renderer.DrawHUD(screen, g.gameLoop.World, g.tileMap.Name, true)

	if g.gameOver {
		msg := "YOU DIED - press R to restart"
		ebitenutil.DebugPrintAt(screen, msg, ScreenWidth/2-len(msg)*3, ScreenHeight/2)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return ScreenWidth, ScreenHeight
}

func main() {
	var (
		mapPath = flag.String("map", "", "map file to load (.json or .yaml); generated if empty")
		kind    = flag.String("gen", "dungeon", "generator when no map file: dungeon or overworld")
		width   = flag.Int("w", 48, "generated map width in tiles")
		height  = flag.Int("h", 36, "generated map height in tiles")
		seed    = flag.Int64("seed", 1, "generator seed")
		watch   = flag.Bool("watch", false, "hot-reload the map file on change")
	)
	flag.Parse()

	var (
		tm      *maplib.TileMap
		watcher *maplib.Watcher
		err     error
	)
	switch {
	case *mapPath != "":
		tm, err = loadMap(*mapPath)
		if err != nil {
			log.Fatalf("load map: %v", err)
		}
		if *watch {
			watcher, err = maplib.WatchLevel(*mapPath)
			if err != nil {
				log.Fatalf("watch map: %v", err)
			}
			defer watcher.Close()
		}
	case *kind == "overworld":
		tm = maplib.GenerateOverworld(*width, *height, *seed)
	default:
		tm = maplib.GenerateDungeon(*width, *height, *seed)
	}

	ebiten.SetWindowSize(ScreenWidth, ScreenHeight)
	ebiten.SetWindowTitle(fmt.Sprintf("Dungeon Engine - %s", tm.Name))
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetVsyncEnabled(true)

	if err := ebiten.RunGame(NewGame(tm, watcher, *seed)); err != nil {
		log.Fatal(err)
	}
}

func loadMap(path string) (*maplib.TileMap, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return maplib.LoadJSON(path)
	default:
		return maplib.LoadLevel(path)
	}
}
