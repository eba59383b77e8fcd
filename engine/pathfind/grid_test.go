package pathfind

// gridMap is a test map built from legend strings, one rune per tile.
// '#' blocks, anything else walks. Out of range never walks.
type gridMap struct {
	rows []string
}

func grid(rows ...string) gridMap {
	return gridMap{rows: rows}
}

func (g gridMap) IsWalkable(x, y int) bool {
	if y < 0 || y >= len(g.rows) {
		return false
	}
	if x < 0 || x >= len(g.rows[y]) {
		return false
	}
	return g.rows[y][x] != '#'
}

// openMap is an unobstructed w x h field for large-scale searches
type openMap struct {
	w, h int
}

func (o openMap) IsWalkable(x, y int) bool {
	return x >= 0 && y >= 0 && x < o.w && y < o.h
}
