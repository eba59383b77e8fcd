package render

import (
	"math"

	"github.com/hollowmere/dungeon-engine/engine/maplib"
)

// Camera represents the viewport into the top-down world
type Camera struct {
	X, Y    float64 // camera center position (world pixels)
	Zoom    float64 // zoom level (1.0 = default)
	MinZoom float64
	MaxZoom float64
	ScreenW int // viewport width in pixels
	ScreenH int // viewport height in pixels

	// Map bounds for clamping, in pixels
	MapW, MapH float64
}

// NewCamera creates a camera with default settings
func NewCamera(screenW, screenH int) *Camera {
	return &Camera{
		Zoom:    1.0,
		MinZoom: 0.5,
		MaxZoom: 3.0,
		ScreenW: screenW,
		ScreenH: screenH,
	}
}

// SetMapBounds sets the map size for camera clamping
func (c *Camera) SetMapBounds(tilesW, tilesH int) {
	c.MapW = float64(tilesW * maplib.TileSize)
	c.MapH = float64(tilesH * maplib.TileSize)
	c.clamp()
}

// SetZoom sets zoom level with clamping
func (c *Camera) SetZoom(z float64) {
	c.Zoom = math.Max(c.MinZoom, math.Min(c.MaxZoom, z))
	c.clamp()
}

// CenterOn centers the camera on a world pixel position
func (c *Camera) CenterOn(wx, wy float64) {
	c.X = wx
	c.Y = wy
	c.clamp()
}

// WorldToScreen converts a world pixel position to screen pixels
func (c *Camera) WorldToScreen(wx, wy float64) (float64, float64) {
	sx := (wx-c.X)*c.Zoom + float64(c.ScreenW)/2
	sy := (wy-c.Y)*c.Zoom + float64(c.ScreenH)/2
	return sx, sy
}

// ScreenToWorld converts a screen pixel position to world pixels
func (c *Camera) ScreenToWorld(sx, sy int) (float64, float64) {
	wx := (float64(sx)-float64(c.ScreenW)/2)/c.Zoom + c.X
	wy := (float64(sy)-float64(c.ScreenH)/2)/c.Zoom + c.Y
	return wx, wy
}

// VisibleTileRange returns the range of tiles overlapping the viewport
func (c *Camera) VisibleTileRange(mapW, mapH int) (minX, minY, maxX, maxY int) {
	wx0, wy0 := c.ScreenToWorld(0, 0)
	wx1, wy1 := c.ScreenToWorld(c.ScreenW, c.ScreenH)

	minX = int(math.Floor(wx0/maplib.TileSize)) - 1
	minY = int(math.Floor(wy0/maplib.TileSize)) - 1
	maxX = int(math.Ceil(wx1/maplib.TileSize)) + 1
	maxY = int(math.Ceil(wy1/maplib.TileSize)) + 1

	if minX < 0 {
		minX = 0
	}
	if minY < 0 {
		minY = 0
	}
	if maxX >= mapW {
		maxX = mapW - 1
	}
	if maxY >= mapH {
		maxY = mapH - 1
	}
	return
}

// clamp keeps the viewport inside the map when the map is larger than
// the screen; small maps stay centered.
func (c *Camera) clamp() {
	if c.MapW == 0 || c.MapH == 0 {
		return
	}
	halfW := float64(c.ScreenW) / 2 / c.Zoom
	halfH := float64(c.ScreenH) / 2 / c.Zoom

	if c.MapW <= halfW*2 {
		c.X = c.MapW / 2
	} else {
		c.X = math.Max(halfW, math.Min(c.MapW-halfW, c.X))
	}
	if c.MapH <= halfH*2 {
		c.Y = c.MapH / 2
	} else {
		c.Y = math.Max(halfH, math.Min(c.MapH-halfH, c.Y))
	}
}
