package render

import (
	"fmt"
	"strings"

	"github.com/benbeisheim/variantchess-backend/internal/engine"
)

const fileHeader = "  A B C D E F G H"

// Overlay supplies per-square markers drawn over the board. Hints win over
// threats.
type Overlay struct {
	Hints   *engine.MoveHint
	Threats *engine.ThreatDetector
}

func (o Overlay) marker(sq engine.Square) (rune, bool) {
	if o.Hints != nil {
		if r, ok := o.Hints.Get(sq); ok {
			return r, true
		}
	}
	if o.Threats != nil {
		return o.Threats.Symbol(sq)
	}
	return 0, false
}

// Text draws the board the way the console shows it, rank 8 on top.
func Text(b *engine.Board, o Overlay) string {
	var sb strings.Builder
	sb.WriteString(fileHeader + "\n")
	for row := 0; row < engine.Size; row++ {
		rank := engine.Size - row
		fmt.Fprintf(&sb, "%d ", rank)
		for col := 0; col < engine.Size; col++ {
			sq := engine.Sq(row, col)
			if r, ok := o.marker(sq); ok {
				sb.WriteRune(r)
			} else {
				p, _ := b.Get(sq)
				sb.WriteRune(p.Symbol())
			}
			sb.WriteByte(' ')
		}
		fmt.Fprintf(&sb, "%d\n", rank)
	}
	sb.WriteString(fileHeader + "\n")
	return sb.String()
}
