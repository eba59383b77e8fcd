// Package audio manages sound effect playback with positional volume
// falloff around the listener.
package audio

import (
	"math"

	"github.com/hollowmere/dungeon-engine/engine/maplib"
)

// SoundID identifies a sound effect
type SoundID string

const (
	SndAttack SoundID = "attack"
	SndHurt   SoundID = "hurt"
	SndDie    SoundID = "die"
	SndStep   SoundID = "step"
	SndDoor   SoundID = "door"
)

// AudioManager handles music and sound effects.
// Uses Ebitengine's audio package internally.
type AudioManager struct {
	MasterVolume float64
	MusicVolume  float64
	SFXVolume    float64
	MusicPlaying bool
	ListenerX    float64
	ListenerY    float64
}

func NewAudioManager() *AudioManager {
	return &AudioManager{
		MasterVolume: 1.0,
		MusicVolume:  0.5,
		SFXVolume:    0.8,
	}
}

// SetListenerPos updates the listener position for positional audio,
// normally the player's position
func (am *AudioManager) SetListenerPos(x, y float64) {
	am.ListenerX = x
	am.ListenerY = y
}

// PlaySFX plays a sound effect at a world pixel position
func (am *AudioManager) PlaySFX(id SoundID, worldX, worldY float64) {
	vol := am.calcVolume(worldX, worldY)
	_ = vol
	// Sample playback goes through ebiten/audio.Player once sound
	// assets land; volume math is already wired
}

// PlayMusic starts background music
func (am *AudioManager) PlayMusic(_ string) {
	am.MusicPlaying = true
}

// StopMusic stops background music
func (am *AudioManager) StopMusic() {
	am.MusicPlaying = false
}

// calcVolume computes volume based on distance from the listener
func (am *AudioManager) calcVolume(wx, wy float64) float64 {
	dist := math.Hypot(wx-am.ListenerX, wy-am.ListenerY)
	maxDist := float64(maplib.TileSize) * 14
	if dist >= maxDist {
		return 0
	}
	return (1.0 - dist/maxDist) * am.SFXVolume * am.MasterVolume
}

// SetVolume sets master volume (0-1)
func (am *AudioManager) SetVolume(v float64) {
	if v < 0 {
		v = 0
	}
	if v > 1 {
		v = 1
	}
	am.MasterVolume = v
}
