package engine

import "fmt"

// Snapshot is a full copy of the session state after a move.
type Snapshot struct {
	Board     Board
	ToMove    Color
	MoveCount int
}

// History is a stack of snapshots. The first entry is the starting position
// and is never popped.
type History struct {
	states []Snapshot
}

func NewHistory(initial Snapshot) *History {
	return &History{states: []Snapshot{initial}}
}

func (h *History) Save(s Snapshot) {
	h.states = append(h.states, s)
}

// Depth is the number of moves that can be undone.
func (h *History) Depth() int {
	return len(h.states) - 1
}

// Undo drops the last steps snapshots and returns a copy of the one that is
// now on top. Asking for more steps than were played changes nothing.
func (h *History) Undo(steps int) (Snapshot, error) {
	if steps < 1 {
		return Snapshot{}, fmt.Errorf("%w: %d", ErrInvalidSteps, steps)
	}
	if steps > h.Depth() {
		return Snapshot{}, fmt.Errorf("%w: %d moves requested, %d played", ErrCannotUndo, steps, h.Depth())
	}
	h.states = h.states[:len(h.states)-steps]
	return h.states[len(h.states)-1], nil
}
