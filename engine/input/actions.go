package input

// ActionKind is the closed set of logical player actions the engine core
// understands. Decoding physical keys and gestures into these lives in the
// adapter; the core never sees a device.
type ActionKind uint8

const (
	ActSelectNearest ActionKind = iota
	ActCycleForward
	ActCycleBackward
	ActPointerPick
	ActResetTarget
	ActAttack
	ActMoveAxis
	ActSwapWeapon
)

// Action is one queued logical action. X and Y carry the payload: screen
// coordinates for ActPointerPick, movement axes for ActMoveAxis, the weapon
// slot in X for ActSwapWeapon.
type Action struct {
	Kind ActionKind
	X, Y float64
}

// Queue buffers logical actions between render frames and simulation ticks.
// Actions pushed during a frame are drained exactly once, at the start of
// the next tick, so a selection and an attack queued in the same frame see
// one consistent target state.
type Queue struct {
	pending []Action
}

func NewQueue() *Queue {
	return &Queue{}
}

// Push appends an action for the next tick
func (q *Queue) Push(a Action) {
	q.pending = append(q.pending, a)
}

// Drain returns all pending actions in push order and empties the queue
func (q *Queue) Drain() []Action {
	out := q.pending
	q.pending = nil
	return out
}

// Len returns the number of pending actions
func (q *Queue) Len() int {
	return len(q.pending)
}
