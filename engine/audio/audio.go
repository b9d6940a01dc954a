package audio

import "math"

// SoundID identifies a sound effect
type SoundID string

const (
	SndSelect    SoundID = "select"
	SndSwing     SoundID = "swing"
	SndBlocked   SoundID = "blocked"
	SndHit       SoundID = "hit"
	SndEnemyDie  SoundID = "enemy_die"
	SndHeroHurt  SoundID = "hero_hurt"
	SndStairs    SoundID = "stairs"
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

// SetListenerPos updates the listener position for positional audio.
// The demo keeps it on the hero.
func (am *AudioManager) SetListenerPos(x, y float64) {
	am.ListenerX = x
	am.ListenerY = y
}

// PlaySFX plays a sound effect at a world position
func (am *AudioManager) PlaySFX(id SoundID, worldX, worldY float64) {
	vol := am.calcVolume(worldX, worldY)
	_ = vol
	// In a real implementation, we'd load and play audio bytes via ebiten/audio
	// For now this is a stub that integrates into the architecture
}

// Cue plays a non-positional UI sound (selection clicks, blocked attacks)
func (am *AudioManager) Cue(id SoundID) {
	am.PlaySFX(id, am.ListenerX, am.ListenerY)
}

// PlayMusic starts background music
func (am *AudioManager) PlayMusic(_ string) {
	am.MusicPlaying = true
	// Stub: would use ebiten/audio.Player
}

// StopMusic stops background music
func (am *AudioManager) StopMusic() {
	am.MusicPlaying = false
}

// calcVolume computes volume based on distance from the listener
func (am *AudioManager) calcVolume(wx, wy float64) float64 {
	dx := wx - am.ListenerX
	dy := wy - am.ListenerY
	dist := math.Sqrt(dx*dx + dy*dy)
	maxDist := 20.0
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
