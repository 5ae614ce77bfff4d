package engine

import (
	"fmt"
	"strings"
)

// GameMode selects the starting layout. Move generation is per piece kind and
// does not depend on it, except for the checkers jump capture in MovePiece.
type GameMode uint8

const (
	Classical GameMode = iota
	Variant
	Checkers
)

func (m GameMode) String() string {
	switch m {
	case Variant:
		return "variant"
	case Checkers:
		return "checkers"
	}
	return "classical"
}

// ParseGameMode also accepts the console menu numbers and the older names
// "classic" and "modified".
func ParseGameMode(s string) (GameMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "classical", "classic", "1", "":
		return Classical, nil
	case "variant", "modified", "2":
		return Variant, nil
	case "checkers", "draughts", "3":
		return Checkers, nil
	}
	return Classical, fmt.Errorf("%w: %q", ErrUnknownMode, s)
}

func (m GameMode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

func (m *GameMode) UnmarshalText(text []byte) error {
	parsed, err := ParseGameMode(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

var backRank = [Size]Kind{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}

func NewBoard(mode GameMode) *Board {
	b := EmptyBoard(mode)
	switch mode {
	case Checkers:
		setupCheckers(b)
	case Variant:
		setupChess(b)
		for _, c := range []struct {
			col  int
			kind Kind
		}{{0, Archer}, {3, Oracle}, {5, Striker}} {
			b.cells[0][c.col] = Piece{Kind: c.kind, Color: Black}
			b.cells[7][c.col] = Piece{Kind: c.kind, Color: White}
		}
	default:
		setupChess(b)
	}
	return b
}

func setupChess(b *Board) {
	for col := 0; col < Size; col++ {
		b.cells[0][col] = Piece{Kind: backRank[col], Color: Black}
		b.cells[1][col] = Piece{Kind: Pawn, Color: Black}
		b.cells[6][col] = Piece{Kind: Pawn, Color: White}
		b.cells[7][col] = Piece{Kind: backRank[col], Color: White}
	}
}

// setupCheckers fills the three rows nearest each side, starting each row on
// column row%2.
func setupCheckers(b *Board) {
	for row := 0; row < Size; row++ {
		for col := row % 2; col < Size; col += 2 {
			switch {
			case row < 3:
				b.cells[row][col] = Piece{Kind: CheckerMan, Color: Black}
			case row > 4:
				b.cells[row][col] = Piece{Kind: CheckerMan, Color: White}
			}
		}
	}
}
