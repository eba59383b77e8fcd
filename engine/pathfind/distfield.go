package pathfind

import "math"

// DistanceField stores, for every tile of a bounded region, the movement
// cost to a goal tile and a normalized descent direction toward it. One
// field can serve a whole crowd of agents, so the pursuit AI rebuilds it
// on its repath cadence and uses it as an obstacle-aware fallback when a
// per-agent search returns nil. Read-only after construction.
type DistanceField struct {
	Width, Height int
	DirX, DirY    []float64
	Cost          []float64
}

// NewDistanceField integrates movement costs outward from (gx, gy) over
// the w x h region with a BFS relaxation pass, then points each tile at
// its cheapest neighbor.
func NewDistanceField(m Walkable, w, h, gx, gy int) *DistanceField {
	df := &DistanceField{
		Width:  w,
		Height: h,
		DirX:   make([]float64, w*h),
		DirY:   make([]float64, w*h),
		Cost:   make([]float64, w*h),
	}

	inf := math.MaxFloat64
	for i := range df.Cost {
		df.Cost[i] = inf
	}
	if gx < 0 || gy < 0 || gx >= w || gy >= h || !m.IsWalkable(gx, gy) {
		return df
	}
	df.Cost[gy*w+gx] = 0

	type pt struct{ x, y int }
	queue := []pt{{gx, gy}}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		curCost := df.Cost[cur.y*w+cur.x]
		for _, d := range dirs {
			nx, ny := cur.x+d[0], cur.y+d[1]
			if nx < 0 || ny < 0 || nx >= w || ny >= h {
				continue
			}
			if !m.IsWalkable(nx, ny) {
				continue
			}
			moveCost := 1.0
			if d[0] != 0 && d[1] != 0 {
				if !m.IsWalkable(cur.x+d[0], cur.y) || !m.IsWalkable(cur.x, cur.y+d[1]) {
					continue
				}
				moveCost = math.Sqrt2
			}
			newCost := curCost + moveCost
			idx := ny*w + nx
			if newCost < df.Cost[idx] {
				df.Cost[idx] = newCost
				queue = append(queue, pt{nx, ny})
			}
		}
	}

	// Each reachable tile points downhill toward the goal
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			idx := y*w + x
			if df.Cost[idx] >= inf {
				continue
			}
			bestCost := df.Cost[idx]
			var bx, by float64
			for _, d := range dirs {
				nx, ny := x+d[0], y+d[1]
				if nx < 0 || ny < 0 || nx >= w || ny >= h {
					continue
				}
				if c := df.Cost[ny*w+nx]; c < bestCost {
					bestCost = c
					bx, by = float64(d[0]), float64(d[1])
				}
			}
			if length := math.Hypot(bx, by); length > 0 {
				df.DirX[idx] = bx / length
				df.DirY[idx] = by / length
			}
		}
	}
	return df
}

// Direction returns the unit descent vector at a tile, zero when the tile
// is out of range or unreachable
func (df *DistanceField) Direction(x, y int) (float64, float64) {
	if x < 0 || y < 0 || x >= df.Width || y >= df.Height {
		return 0, 0
	}
	idx := y*df.Width + x
	return df.DirX[idx], df.DirY[idx]
}

// Reachable reports whether the integration pass reached the tile
func (df *DistanceField) Reachable(x, y int) bool {
	if x < 0 || y < 0 || x >= df.Width || y >= df.Height {
		return false
	}
	return df.Cost[y*df.Width+x] < math.MaxFloat64
}
