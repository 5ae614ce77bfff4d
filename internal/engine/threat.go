package engine

const ThreatMarker = '!'

// ThreatState is the JSON-friendly result of a threat scan.
type ThreatState struct {
	Threatened []Square `json:"threatened"`
	Check      bool     `json:"isCheck"`
}

// ThreatDetector tracks which pieces of the side to move are attacked.
// It holds no incremental state: every Recompute starts from scratch.
type ThreatDetector struct {
	threatened map[Square]struct{}
	check      bool
}

func NewThreatDetector() *ThreatDetector {
	return &ThreatDetector{threatened: make(map[Square]struct{})}
}

func (t *ThreatDetector) Recompute(b *Board, side Color) {
	t.threatened = make(map[Square]struct{})
	t.check = false

	// no king in checkers; the check flag then simply never gets set
	king, hasKing := Square{}, false
	if found := b.Find(Piece{Kind: King, Color: side}); len(found) > 0 {
		king, hasKing = found[len(found)-1], true
	}

	for row := 0; row < Size; row++ {
		for col := 0; col < Size; col++ {
			from := Square{Row: row, Col: col}
			attacker, ok := b.Get(from)
			if !ok || attacker.Color == side {
				continue
			}
			for _, sq := range attacker.Destinations(b, from) {
				if target, ok := b.Get(sq); ok && target.Color == side {
					t.threatened[sq] = struct{}{}
				}
				if hasKing && sq == king {
					t.check = true
				}
			}
		}
	}
}

func (t *ThreatDetector) IsCheck() bool {
	return t.check
}

func (t *ThreatDetector) IsThreatened(sq Square) bool {
	_, ok := t.threatened[sq]
	return ok
}

// Symbol returns ThreatMarker for a threatened square.
func (t *ThreatDetector) Symbol(sq Square) (rune, bool) {
	if t.IsThreatened(sq) {
		return ThreatMarker, true
	}
	return 0, false
}

func (t *ThreatDetector) State() ThreatState {
	state := ThreatState{Threatened: []Square{}, Check: t.check}
	for row := 0; row < Size; row++ {
		for col := 0; col < Size; col++ {
			sq := Square{Row: row, Col: col}
			if t.IsThreatened(sq) {
				state.Threatened = append(state.Threatened, sq)
			}
		}
	}
	return state
}

// Threats scans b for pieces of side that the opponent attacks.
func Threats(b *Board, side Color) ThreatState {
	t := NewThreatDetector()
	t.Recompute(b, side)
	return t.State()
}
