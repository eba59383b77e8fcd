package maplib

import "math/rand"

// GenerateOverworld creates an outdoor map: bordered floor with scattered
// rock formations grown by random walks plus loose single and 2x2 rocks.
func GenerateOverworld(width, height int, seed int64) *TileMap {
	rng := rand.New(rand.NewSource(seed))
	tm := NewTileMap("overworld", width, height)

	for x := 0; x < width; x++ {
		tm.Set(x, 0, TileWall)
		tm.Set(x, height-1, TileWall)
	}
	for y := 0; y < height; y++ {
		tm.Set(0, y, TileWall)
		tm.Set(width-1, y, TileWall)
	}

	formations := 10 + rng.Intn(6)
	for i := 0; i < formations; i++ {
		growFormation(tm, rng)
	}

	rocks := 20 + rng.Intn(11)
	for i := 0; i < rocks; i++ {
		x := 2 + rng.Intn(width-4)
		y := 2 + rng.Intn(height-4)
		if rng.Float64() < 0.3 {
			for dy := 0; dy < 2; dy++ {
				for dx := 0; dx < 2; dx++ {
					tm.Set(x+dx, y+dy, TileWall)
				}
			}
		} else {
			tm.Set(x, y, TileWall)
		}
	}

	tm.SpawnX, tm.SpawnY = tm.SpawnPosition()
	return tm
}

// growFormation walks outward from a random interior point, dropping wall
// tiles and occasionally thickening them orthogonally.
func growFormation(tm *TileMap, rng *rand.Rand) {
	x := 3 + rng.Intn(tm.Width-7)
	y := 3 + rng.Intn(tm.Height-7)
	size := 3 + rng.Intn(4)

	points := [][2]int{{x, y}}
	for i := 0; i < size; i++ {
		last := points[len(points)-1]
		for try := 0; try < 3; try++ {
			nx := last[0] + rng.Intn(3) - 1
			ny := last[1] + rng.Intn(3) - 1
			if nx >= 2 && nx < tm.Width-2 && ny >= 2 && ny < tm.Height-2 {
				points = append(points, [2]int{nx, ny})
				break
			}
		}
	}

	for _, p := range points {
		tm.Set(p[0], p[1], TileWall)
		if rng.Float64() < 0.4 {
			for _, d := range [4][2]int{{0, 1}, {1, 0}, {0, -1}, {-1, 0}} {
				nx, ny := p[0]+d[0], p[1]+d[1]
				if nx >= 2 && nx < tm.Width-2 && ny >= 2 && ny < tm.Height-2 {
					tm.Set(nx, ny, TileWall)
				}
			}
		}
	}
}

type room struct {
	x, y, w, h int
}

func (r room) centerX() int { return r.x + r.w/2 }
func (r room) centerY() int { return r.y + r.h/2 }

func (r room) overlaps(o room, pad int) bool {
	return r.x-pad < o.x+o.w && r.x+r.w+pad > o.x &&
		r.y-pad < o.y+o.h && r.y+r.h+pad > o.y
}

// GenerateDungeon creates an indoor map of rooms joined by L-shaped
// corridors, with doors where a corridor pierces a room border. The
// player spawn is the center of the first room.
func GenerateDungeon(width, height int, seed int64) *TileMap {
	rng := rand.New(rand.NewSource(seed))
	tm := NewTileMap("dungeon", width, height)
	for i := range tm.Tiles {
		tm.Tiles[i] = TileWall
	}

	var rooms []room
	attempts := 0
	want := 6 + rng.Intn(4)
	for len(rooms) < want && attempts < 120 {
		attempts++
		r := room{
			w: 4 + rng.Intn(6),
			h: 4 + rng.Intn(5),
		}
		r.x = 1 + rng.Intn(width-r.w-2)
		r.y = 1 + rng.Intn(height-r.h-2)

		blocked := false
		for _, o := range rooms {
			if r.overlaps(o, 1) {
				blocked = true
				break
			}
		}
		if blocked {
			continue
		}
		carveRoom(tm, r)
		rooms = append(rooms, r)
	}

	// Chain rooms in creation order so the dungeon is fully connected
	for i := 1; i < len(rooms); i++ {
		connectRooms(tm, rng, rooms[i-1], rooms[i])
	}

	placeDoors(tm, rooms)

	if len(rooms) > 0 {
		tm.SpawnX, tm.SpawnY = rooms[0].centerX(), rooms[0].centerY()
	} else {
		tm.SpawnX, tm.SpawnY = tm.SpawnPosition()
	}
	return tm
}

func carveRoom(tm *TileMap, r room) {
	for y := r.y; y < r.y+r.h; y++ {
		for x := r.x; x < r.x+r.w; x++ {
			tm.Set(x, y, TileFloor)
		}
	}
}

// connectRooms digs an L-shaped corridor between two room centers,
// randomly choosing horizontal-first or vertical-first.
func connectRooms(tm *TileMap, rng *rand.Rand, a, b room) {
	x1, y1 := a.centerX(), a.centerY()
	x2, y2 := b.centerX(), b.centerY()
	if rng.Intn(2) == 0 {
		digH(tm, x1, x2, y1)
		digV(tm, y1, y2, x2)
	} else {
		digV(tm, y1, y2, x1)
		digH(tm, x1, x2, y2)
	}
}

func digH(tm *TileMap, x1, x2, y int) {
	if x1 > x2 {
		x1, x2 = x2, x1
	}
	for x := x1; x <= x2; x++ {
		if tm.At(x, y) == TileWall {
			tm.Set(x, y, TileFloor)
		}
	}
}

func digV(tm *TileMap, y1, y2, x int) {
	if y1 > y2 {
		y1, y2 = y2, y1
	}
	for y := y1; y <= y2; y++ {
		if tm.At(x, y) == TileWall {
			tm.Set(x, y, TileFloor)
		}
	}
}

// placeDoors marks floor tiles on a room border as doors when they sit in
// a one-tile gap between walls, i.e. where a corridor enters the room.
func placeDoors(tm *TileMap, rooms []room) {
	for _, r := range rooms {
		for x := r.x - 1; x <= r.x+r.w; x++ {
			tryDoor(tm, x, r.y-1)
			tryDoor(tm, x, r.y+r.h)
		}
		for y := r.y - 1; y <= r.y+r.h; y++ {
			tryDoor(tm, r.x-1, y)
			tryDoor(tm, r.x+r.w, y)
		}
	}
}

func tryDoor(tm *TileMap, x, y int) {
	if tm.At(x, y) != TileFloor {
		return
	}
	ew := tm.At(x-1, y) == TileWall && tm.At(x+1, y) == TileWall
	ns := tm.At(x, y-1) == TileWall && tm.At(x, y+1) == TileWall
	if ew != ns {
		tm.Set(x, y, TileDoor)
	}
}
