package maplib

import (
	"encoding/json"
	"os"
)

// TileType defines the content of a dungeon tile
type TileType uint8

const (
	TileFloor TileType = iota
	TileWall
	TileDoor
	TileWater
	TileRubble
	TileStairsDown
	TileStairsUp
)

// Tile represents a single room tile
type Tile struct {
	Kind    TileType `json:"kind"`
	Variant uint8    `json:"variant"` // visual variant index
}

// Walkable reports whether ground units can stand on the tile
func (t Tile) Walkable() bool {
	switch t.Kind {
	case TileWall, TileWater:
		return false
	}
	return true
}

// SpawnPoint places an enemy (or the hero, for Kind "hero") in a room
type SpawnPoint struct {
	Kind string `json:"kind"` // bestiary key, or "hero"
	X    int    `json:"x"`
	Y    int    `json:"y"`
}

// Room represents one dungeon room/encounter space
type Room struct {
	Name   string `json:"name"`
	Depth  int    `json:"depth"` // dungeon floor number
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Tiles  []Tile `json:"tiles"`

	Spawns      []SpawnPoint `json:"spawns"`
	Description string       `json:"description"`
}

// NewRoom creates a room filled with wall, ready for carving
func NewRoom(name string, width, height int) *Room {
	r := &Room{
		Name:   name,
		Width:  width,
		Height: height,
		Tiles:  make([]Tile, width*height),
	}
	for i := range r.Tiles {
		r.Tiles[i] = Tile{Kind: TileWall}
	}
	return r
}

// At returns a pointer to the tile at (x, y), or nil out of bounds
func (r *Room) At(x, y int) *Tile {
	if x < 0 || y < 0 || x >= r.Width || y >= r.Height {
		return nil
	}
	return &r.Tiles[y*r.Width+x]
}

// InBounds checks if coordinates are within room bounds
func (r *Room) InBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < r.Width && y < r.Height
}

// IsWalkable checks if a tile can be stood on. Out of bounds is solid.
func (r *Room) IsWalkable(x, y int) bool {
	t := r.At(x, y)
	return t != nil && t.Walkable()
}

// Carve opens a rectangular chamber of floor
func (r *Room) Carve(x1, y1, x2, y2 int) {
	for y := y1; y <= y2; y++ {
		for x := x1; x <= x2; x++ {
			if t := r.At(x, y); t != nil {
				t.Kind = TileFloor
			}
		}
	}
}

// CarveCorridor opens an L-shaped corridor between two points,
// horizontal leg first
func (r *Room) CarveCorridor(x1, y1, x2, y2 int) {
	step := func(v int) int {
		if v < 0 {
			return -1
		}
		return 1
	}
	x, y := x1, y1
	for x != x2 {
		if t := r.At(x, y); t != nil {
			t.Kind = TileFloor
		}
		x += step(x2 - x1)
	}
	for y != y2 {
		if t := r.At(x, y); t != nil {
			t.Kind = TileFloor
		}
		y += step(y2 - y1)
	}
	if t := r.At(x2, y2); t != nil {
		t.Kind = TileFloor
	}
}

// SetTile sets the tile kind at (x, y) if in bounds
func (r *Room) SetTile(x, y int, kind TileType) {
	if t := r.At(x, y); t != nil {
		t.Kind = kind
	}
}

// HeroSpawn returns the hero spawn point, or false if the room has none
func (r *Room) HeroSpawn() (SpawnPoint, bool) {
	for _, s := range r.Spawns {
		if s.Kind == "hero" {
			return s, true
		}
	}
	return SpawnPoint{}, false
}

// EnemySpawns returns all non-hero spawn points in declaration order
func (r *Room) EnemySpawns() []SpawnPoint {
	var out []SpawnPoint
	for _, s := range r.Spawns {
		if s.Kind != "hero" {
			out = append(out, s)
		}
	}
	return out
}

// SaveJSON saves the room to a JSON file
func (r *Room) SaveJSON(path string) error {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// LoadJSON loads a room from a JSON file
func LoadJSON(path string) (*Room, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var r Room
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, err
	}
	return &r, nil
}
