package input

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// InputState tracks mouse and keyboard state per frame and translates it
// into logical actions and movement intent
type InputState struct {
	// Mouse
	MouseX, MouseY    int
	MouseDX, MouseDY  int // delta since last frame
	prevMouseX        int
	prevMouseY        int
	LeftPressed       bool
	LeftJustPressed   bool
	LeftJustReleased  bool
	RightJustPressed  bool
	ScrollY           float64

	// Drag (a click that moved past the threshold is a camera drag,
	// not a pick)
	DragStartX, DragStartY int
	Dragging               bool
	DragThreshold          int
}

func NewInputState() *InputState {
	return &InputState{
		DragThreshold: 5,
	}
}

// Update should be called every frame, before Collect
func (s *InputState) Update() {
	s.prevMouseX = s.MouseX
	s.prevMouseY = s.MouseY
	s.MouseX, s.MouseY = ebiten.CursorPosition()
	s.MouseDX = s.MouseX - s.prevMouseX
	s.MouseDY = s.MouseY - s.prevMouseY

	leftDown := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	s.LeftJustPressed = inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft)
	s.LeftJustReleased = inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft)
	s.RightJustPressed = inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonRight)
	s.LeftPressed = leftDown

	_, scrollY := ebiten.Wheel()
	s.ScrollY = scrollY

	if s.LeftJustPressed {
		s.DragStartX = s.MouseX
		s.DragStartY = s.MouseY
		s.Dragging = false
	}
	if leftDown && !s.Dragging {
		dx := s.MouseX - s.DragStartX
		dy := s.MouseY - s.DragStartY
		if dx*dx+dy*dy > s.DragThreshold*s.DragThreshold {
			s.Dragging = true
		}
	}
}

// Collect decodes the current frame's device state into logical actions.
// Key map: Tab cycles (Shift reverses), Q selects nearest, Escape clears,
// Space attacks, left click picks at the cursor.
func (s *InputState) Collect(q *Queue) {
	shift := ebiten.IsKeyPressed(ebiten.KeyShift)

	if inpututil.IsKeyJustPressed(ebiten.KeyTab) {
		if shift {
			q.Push(Action{Kind: ActCycleBackward})
		} else {
			q.Push(Action{Kind: ActCycleForward})
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		q.Push(Action{Kind: ActSelectNearest})
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		q.Push(Action{Kind: ActResetTarget})
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		q.Push(Action{Kind: ActAttack})
	}

	// A release that never turned into a drag is a pick
	if s.LeftJustReleased && !s.Dragging {
		q.Push(Action{
			Kind: ActPointerPick,
			X:    float64(s.MouseX),
			Y:    float64(s.MouseY),
		})
	}
	if !s.LeftPressed {
		s.Dragging = false
	}
}

// MoveAxis returns the hero movement intent as a raw axis pair (-1..1 each)
func (s *InputState) MoveAxis() (float64, float64) {
	var ax, ay float64
	if ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyLeft) {
		ax -= 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyRight) {
		ax += 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyW) || ebiten.IsKeyPressed(ebiten.KeyUp) {
		ay -= 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyS) || ebiten.IsKeyPressed(ebiten.KeyDown) {
		ay += 1
	}
	return ax, ay
}

// IsKeyJustPressed returns true if key was just pressed this frame
func (s *InputState) IsKeyJustPressed(key ebiten.Key) bool {
	return inpututil.IsKeyJustPressed(key)
}
