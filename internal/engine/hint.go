package engine

const (
	HintCapture = 'x'
	HintMove    = '.'
)

type Hint struct {
	Square  Square `json:"square"`
	Capture bool   `json:"capture"`
}

// MoveHint maps the destinations of the selected piece to a display marker.
// Markers are fixed when Set is called and live until Clear.
type MoveHint struct {
	hints map[Square]rune
	order []Square
}

func NewMoveHint() *MoveHint {
	return &MoveHint{hints: make(map[Square]rune)}
}

func (h *MoveHint) Set(b *Board, moves []Square) {
	h.Clear()
	for _, sq := range moves {
		if _, seen := h.hints[sq]; seen {
			continue
		}
		marker := rune(HintMove)
		if _, occupied := b.Get(sq); occupied {
			marker = HintCapture
		}
		h.hints[sq] = marker
		h.order = append(h.order, sq)
	}
}

func (h *MoveHint) Clear() {
	h.hints = make(map[Square]rune)
	h.order = nil
}

func (h *MoveHint) Get(sq Square) (rune, bool) {
	r, ok := h.hints[sq]
	return r, ok
}

func (h *MoveHint) Len() int {
	return len(h.order)
}

// Hints lists the markers in generation order.
func (h *MoveHint) Hints() []Hint {
	hints := make([]Hint, 0, len(h.order))
	for _, sq := range h.order {
		hints = append(hints, Hint{Square: sq, Capture: h.hints[sq] == HintCapture})
	}
	return hints
}
