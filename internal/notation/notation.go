// Package notation converts between algebraic square names ("e2") and engine
// coordinates. Rank 8 maps to row 0.
package notation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/notnil/chess"

	"github.com/benbeisheim/variantchess-backend/internal/engine"
)

var ErrBadSquare = errors.New("invalid square, use a file a-h and a rank 1-8 like e2")

var squaresByName = func() map[string]chess.Square {
	m := make(map[string]chess.Square, 64)
	for i := 0; i < 64; i++ {
		sq := chess.Square(i)
		m[sq.String()] = sq
	}
	return m
}()

func ParseSquare(s string) (engine.Square, error) {
	sq, ok := squaresByName[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return engine.Square{}, fmt.Errorf("%w: %q", ErrBadSquare, s)
	}
	return FromChess(sq), nil
}

func FormatSquare(sq engine.Square) string {
	if !sq.InBounds() {
		return "-"
	}
	return ToChess(sq).String()
}

func FromChess(sq chess.Square) engine.Square {
	return engine.Square{Row: 7 - int(sq.Rank()), Col: int(sq.File())}
}

func ToChess(sq engine.Square) chess.Square {
	return chess.NewSquare(chess.File(sq.Col), chess.Rank(7-sq.Row))
}

// PieceLetter is the move-record prefix for a piece kind. Pawns have none.
func PieceLetter(k engine.Kind) string {
	switch k {
	case engine.Pawn, engine.NoKind:
		return ""
	}
	return string(engine.Piece{Kind: k, Color: engine.White}.Symbol())
}

// Move renders a move record like "Nxf3" or "c3xe5".
func Move(p engine.Piece, from, to engine.Square, capture bool) string {
	sep := ""
	if capture {
		sep = "x"
	}
	switch p.Kind {
	case engine.Pawn:
		if capture {
			return FormatSquare(from)[:1] + sep + FormatSquare(to)
		}
		return FormatSquare(to)
	case engine.CheckerMan:
		if sep == "" {
			sep = "-"
		}
		return FormatSquare(from) + sep + FormatSquare(to)
	}
	return PieceLetter(p.Kind) + sep + FormatSquare(to)
}
