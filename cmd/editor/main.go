package main

import (
	"fmt"
	"image/color"
	"log"
	"math"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/hollowdeep/crawler-engine/editor"
	"github.com/hollowdeep/crawler-engine/engine/input"
	"github.com/hollowdeep/crawler-engine/engine/maplib"
	"github.com/hollowdeep/crawler-engine/engine/render"
)

const (
	ScreenWidth  = 1280
	ScreenHeight = 720
	SidebarWidth = 200
	PanSpeed     = 600.0 // pixels per second
)

var brushes = []maplib.TileType{
	maplib.TileFloor, maplib.TileWall, maplib.TileDoor, maplib.TileWater,
	maplib.TileRubble, maplib.TileStairsDown, maplib.TileStairsUp,
}

var brushNames = []string{
	"Floor", "Wall", "Door", "Water", "Rubble", "StairsDown", "StairsUp",
}

var spawnKinds = []string{"hero", "rat", "skeleton", "brute", "wraith"}

type EditorApp struct {
	editor   *editor.Editor
	renderer *render.Renderer
	input    *input.InputState
	hoverX   int
	hoverY   int

	brushIdx int
	spawnIdx int
}

func NewEditorApp() *EditorApp {
	a := &EditorApp{
		editor:   editor.NewEditor(36, 24),
		renderer: render.NewRenderer(ScreenWidth, ScreenHeight),
		input:    input.NewInputState(),
	}
	a.renderer.Camera.CenterOn(18, 12)

	if len(os.Args) > 1 {
		if err := a.editor.LoadRoom(os.Args[1]); err != nil {
			log.Printf("failed to load room: %v", err)
		}
	}
	return a
}

func (a *EditorApp) Update() error {
	a.input.Update()
	cam := a.renderer.Camera

	speed := PanSpeed / 60.0
	if ebiten.IsKeyPressed(ebiten.KeyW) || ebiten.IsKeyPressed(ebiten.KeyUp) {
		cam.Pan(0, -speed)
	}
	if ebiten.IsKeyPressed(ebiten.KeyS) && !ebiten.IsKeyPressed(ebiten.KeyControl) || ebiten.IsKeyPressed(ebiten.KeyDown) {
		cam.Pan(0, speed)
	}
	if ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyLeft) {
		cam.Pan(-speed, 0)
	}
	if ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyRight) {
		cam.Pan(speed, 0)
	}
	if a.input.ScrollY != 0 {
		cam.ZoomAt(a.input.ScrollY*0.1, float64(a.input.MouseX), float64(a.input.MouseY))
	}
	if ebiten.IsMouseButtonPressed(ebiten.MouseButtonMiddle) {
		cam.Pan(float64(-a.input.MouseDX), float64(-a.input.MouseDY))
	}

	if wx, wy, ok := cam.ScreenToWorld(float64(a.input.MouseX), float64(a.input.MouseY)); ok {
		a.hoverX = int(math.Floor(wx))
		a.hoverY = int(math.Floor(wy))
	}

	// Brush selection via number keys
	for i := 0; i < len(brushes); i++ {
		if a.input.IsKeyJustPressed(ebiten.Key1 + ebiten.Key(i)) {
			a.brushIdx = i
			a.editor.Brush = brushes[i]
			a.editor.Tool = editor.ToolPaint
		}
	}

	if a.input.IsKeyJustPressed(ebiten.KeyP) {
		a.editor.Tool = editor.ToolPaint
	}
	if a.input.IsKeyJustPressed(ebiten.KeyE) {
		a.editor.Tool = editor.ToolErase
	}
	if a.input.IsKeyJustPressed(ebiten.KeyN) {
		a.editor.Tool = editor.ToolSpawn
		a.spawnIdx = (a.spawnIdx + 1) % len(spawnKinds)
		a.editor.SpawnKind = spawnKinds[a.spawnIdx]
	}

	if a.input.IsKeyJustPressed(ebiten.KeyTab) {
		a.editor.BrushSize += 2 // odd sizes center on the cursor
		if a.editor.BrushSize > 5 {
			a.editor.BrushSize = 1
		}
	}
	if a.input.IsKeyJustPressed(ebiten.KeyG) {
		a.editor.ShowGrid = !a.editor.ShowGrid
	}

	inCanvas := a.input.MouseX < ScreenWidth-SidebarWidth
	if inCanvas {
		if a.editor.Tool == editor.ToolSpawn {
			if a.input.LeftJustPressed {
				a.editor.PlaceSpawn(a.hoverX, a.hoverY)
			}
			if a.input.RightJustPressed {
				a.editor.RemoveSpawnAt(a.hoverX, a.hoverY)
			}
		} else if a.input.LeftPressed {
			a.editor.Paint(a.hoverX, a.hoverY)
		}
	}

	ctrl := ebiten.IsKeyPressed(ebiten.KeyControl)
	shift := ebiten.IsKeyPressed(ebiten.KeyShift)
	if ctrl && a.input.IsKeyJustPressed(ebiten.KeyZ) {
		if shift {
			a.editor.Redo()
		} else {
			a.editor.Undo()
		}
	}
	if ctrl && a.input.IsKeyJustPressed(ebiten.KeyS) {
		path := a.editor.FilePath
		if path == "" {
			path = "room.json"
		}
		if err := a.editor.SaveRoom(path); err != nil {
			log.Printf("save failed: %v", err)
		} else {
			log.Printf("saved to %s", path)
		}
	}

	return nil
}

func (a *EditorApp) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{18, 16, 24, 255})

	room := a.editor.Room
	a.renderer.DrawRoom(screen, room, nil)
	if a.editor.ShowGrid {
		a.drawGrid(screen, room)
	}

	// Spawn markers
	for _, sp := range room.Spawns {
		sx, sy := a.renderer.Camera.WorldToScreen(float64(sp.X)+0.5, float64(sp.Y)+0.5)
		clr := color.RGBA{230, 90, 80, 255}
		if sp.Kind == "hero" {
			clr = color.RGBA{80, 140, 255, 255}
		}
		vector.DrawFilledCircle(screen, float32(sx), float32(sy), 6, clr, false)
		ebitenutil.DebugPrintAt(screen, sp.Kind, int(sx)+8, int(sy)-6)
	}

	// Hover highlight
	if room.InBounds(a.hoverX, a.hoverY) {
		sx, sy := a.renderer.Camera.WorldToScreen(float64(a.hoverX), float64(a.hoverY))
		s := float32(a.renderer.Camera.Zoom * a.renderer.Camera.TileSize)
		vector.StrokeRect(screen, float32(sx), float32(sy), s, s, 2, color.RGBA{255, 255, 0, 160}, false)
	}

	a.drawSidebar(screen)

	tn := "OOB"
	if t := room.At(a.hoverX, a.hoverY); t != nil {
		tn = brushNames[t.Kind]
	}
	info := fmt.Sprintf("Room Editor | Tile(%d,%d) %s | Size:%d | [WASD]Pan [Scroll]Zoom [G]Grid [Tab]Size [Ctrl+Z]Undo [Ctrl+S]Save",
		a.hoverX, a.hoverY, tn, a.editor.BrushSize)
	ebitenutil.DebugPrintAt(screen, info, 5, ScreenHeight-20)
}

func (a *EditorApp) drawGrid(screen *ebiten.Image, room *maplib.Room) {
	cam := a.renderer.Camera
	gridColor := color.RGBA{255, 255, 255, 24}
	for x := 0; x <= room.Width; x++ {
		sx0, sy0 := cam.WorldToScreen(float64(x), 0)
		_, sy1 := cam.WorldToScreen(float64(x), float64(room.Height))
		vector.StrokeLine(screen, float32(sx0), float32(sy0), float32(sx0), float32(sy1), 1, gridColor, false)
	}
	for y := 0; y <= room.Height; y++ {
		sx0, sy0 := cam.WorldToScreen(0, float64(y))
		sx1, _ := cam.WorldToScreen(float64(room.Width), float64(y))
		vector.StrokeLine(screen, float32(sx0), float32(sy0), float32(sx1), float32(sy0), 1, gridColor, false)
	}
}

func (a *EditorApp) drawSidebar(screen *ebiten.Image) {
	sx := float32(ScreenWidth - SidebarWidth)
	vector.DrawFilledRect(screen, sx, 0, SidebarWidth, float32(ScreenHeight), color.RGBA{20, 20, 36, 220}, false)

	y := 10
	ebitenutil.DebugPrintAt(screen, "=== TILES ===", int(sx)+10, y)
	y += 20
	for i, name := range brushNames {
		clr := color.RGBA{46, 46, 70, 255}
		if i == a.brushIdx && a.editor.Tool == editor.ToolPaint {
			clr = color.RGBA{90, 90, 180, 255}
		}
		vector.DrawFilledRect(screen, sx+10, float32(y), 180, 20, clr, false)
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("[%d] %s", i+1, name), int(sx)+15, y+3)
		y += 22
	}

	y += 10
	ebitenutil.DebugPrintAt(screen, "=== TOOLS ===", int(sx)+10, y)
	y += 20
	for _, t := range []string{"[P] Paint", "[E] Erase", "[N] Spawn (cycles kind)"} {
		ebitenutil.DebugPrintAt(screen, t, int(sx)+10, y)
		y += 18
	}
	if a.editor.Tool == editor.ToolSpawn {
		ebitenutil.DebugPrintAt(screen, "placing: "+a.editor.SpawnKind, int(sx)+10, y)
		y += 18
	}

	if a.editor.Modified {
		ebitenutil.DebugPrintAt(screen, "* MODIFIED *", int(sx)+10, y+20)
	}
}

func (a *EditorApp) Layout(_, _ int) (int, int) {
	return ScreenWidth, ScreenHeight
}

func main() {
	ebiten.SetWindowSize(ScreenWidth, ScreenHeight)
	ebiten.SetWindowTitle("Crawler Room Editor")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(NewEditorApp()); err != nil {
		log.Fatal(err)
	}
}
