package editor

import (
	"github.com/hollowdeep/crawler-engine/engine/maplib"
)

// Action represents an undoable tile edit
type Action struct {
	X, Y    int
	OldTile maplib.Tile
	NewTile maplib.Tile
}

// EditorTool represents the current editor tool
type EditorTool int

const (
	ToolPaint EditorTool = iota
	ToolErase
	ToolSpawn
)

// Editor holds room editor state
type Editor struct {
	Room      *maplib.Room
	Brush     maplib.TileType
	BrushSize int
	Tool      EditorTool
	SpawnKind string // bestiary key placed by ToolSpawn, or "hero"
	UndoStack [][]Action
	RedoStack [][]Action
	FilePath  string
	Modified  bool
	ShowGrid  bool
}

// NewEditor creates a room editor over a fresh solid room
func NewEditor(width, height int) *Editor {
	return &Editor{
		Room:      maplib.NewRoom("Untitled", width, height),
		Brush:     maplib.TileFloor,
		BrushSize: 1,
		SpawnKind: "hero",
		ShowGrid:  true,
	}
}

// LoadRoom loads a room file
func (e *Editor) LoadRoom(path string) error {
	r, err := maplib.LoadJSON(path)
	if err != nil {
		return err
	}
	e.Room = r
	e.FilePath = path
	e.Modified = false
	e.UndoStack = nil
	e.RedoStack = nil
	return nil
}

// SaveRoom saves the current room
func (e *Editor) SaveRoom(path string) error {
	if path == "" {
		path = e.FilePath
	}
	if path == "" {
		path = "untitled.room.json"
	}
	e.FilePath = path
	e.Modified = false
	return e.Room.SaveJSON(path)
}

// Paint applies the current brush at (cx, cy) with brush size
func (e *Editor) Paint(cx, cy int) {
	var actions []Action
	r := e.BrushSize / 2
	for dy := -r; dy <= r; dy++ {
		for dx := -r; dx <= r; dx++ {
			x, y := cx+dx, cy+dy
			t := e.Room.At(x, y)
			if t == nil {
				continue
			}
			old := *t
			switch e.Tool {
			case ToolPaint:
				t.Kind = e.Brush
			case ToolErase:
				t.Kind = maplib.TileWall
			}
			if *t == old {
				continue
			}
			actions = append(actions, Action{X: x, Y: y, OldTile: old, NewTile: *t})
		}
	}
	if len(actions) > 0 {
		e.UndoStack = append(e.UndoStack, actions)
		e.RedoStack = nil
		e.Modified = true
	}
}

// PlaceSpawn puts a spawn point of the current kind at (x, y). The hero
// spawn is unique; placing it again moves it.
func (e *Editor) PlaceSpawn(x, y int) {
	if !e.Room.InBounds(x, y) {
		return
	}
	if e.SpawnKind == "hero" {
		for i := range e.Room.Spawns {
			if e.Room.Spawns[i].Kind == "hero" {
				e.Room.Spawns[i].X = x
				e.Room.Spawns[i].Y = y
				e.Modified = true
				return
			}
		}
	}
	e.Room.Spawns = append(e.Room.Spawns, maplib.SpawnPoint{Kind: e.SpawnKind, X: x, Y: y})
	e.Modified = true
}

// RemoveSpawnAt deletes any spawn points on the tile
func (e *Editor) RemoveSpawnAt(x, y int) {
	kept := e.Room.Spawns[:0]
	removed := false
	for _, s := range e.Room.Spawns {
		if s.X == x && s.Y == y {
			removed = true
			continue
		}
		kept = append(kept, s)
	}
	e.Room.Spawns = kept
	if removed {
		e.Modified = true
	}
}

// Undo reverts the last tile edit
func (e *Editor) Undo() {
	if len(e.UndoStack) == 0 {
		return
	}
	actions := e.UndoStack[len(e.UndoStack)-1]
	e.UndoStack = e.UndoStack[:len(e.UndoStack)-1]
	for _, a := range actions {
		if t := e.Room.At(a.X, a.Y); t != nil {
			*t = a.OldTile
		}
	}
	e.RedoStack = append(e.RedoStack, actions)
	e.Modified = true
}

// Redo re-applies the last undone edit
func (e *Editor) Redo() {
	if len(e.RedoStack) == 0 {
		return
	}
	actions := e.RedoStack[len(e.RedoStack)-1]
	e.RedoStack = e.RedoStack[:len(e.RedoStack)-1]
	for _, a := range actions {
		if t := e.Room.At(a.X, a.Y); t != nil {
			*t = a.NewTile
		}
	}
	e.UndoStack = append(e.UndoStack, actions)
	e.Modified = true
}

// NewRoom starts over with a fresh solid room
func (e *Editor) NewRoom(name string, w, h int) {
	e.Room = maplib.NewRoom(name, w, h)
	e.FilePath = ""
	e.Modified = false
	e.UndoStack = nil
	e.RedoStack = nil
}
