package engine

import (
	"fmt"
	"strings"
	"unicode"
)

type Color uint8

const (
	White Color = iota
	Black
)

func (c Color) Opponent() Color {
	if c == White {
		return Black
	}
	return White
}

func (c Color) String() string {
	if c == White {
		return "white"
	}
	return "black"
}

func ParseColor(s string) (Color, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "white", "w":
		return White, nil
	case "black", "b":
		return Black, nil
	}
	return White, fmt.Errorf("unknown color %q", s)
}

func (c Color) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

func (c *Color) UnmarshalText(text []byte) error {
	parsed, err := ParseColor(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// Kind is the closed set of piece types across all three rule sets.
// NoKind is the zero value and marks an empty cell.
type Kind uint8

const (
	NoKind Kind = iota
	King
	Queen
	Rook
	Bishop
	Knight
	Pawn
	Archer
	Striker
	Oracle
	CheckerMan
)

var kindNames = [...]string{
	NoKind:     "",
	King:       "king",
	Queen:      "queen",
	Rook:       "rook",
	Bishop:     "bishop",
	Knight:     "knight",
	Pawn:       "pawn",
	Archer:     "archer",
	Striker:    "striker",
	Oracle:     "oracle",
	CheckerMan: "checker",
}

var kindSymbols = [...]rune{
	NoKind:     '.',
	King:       'K',
	Queen:      'Q',
	Rook:       'R',
	Bishop:     'B',
	Knight:     'N',
	Pawn:       'P',
	Archer:     'A',
	Striker:    'S',
	Oracle:     'O',
	CheckerMan: 'C',
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("kind(%d)", k)
}

func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *Kind) UnmarshalText(text []byte) error {
	for i, name := range kindNames {
		if name == string(text) {
			*k = Kind(i)
			return nil
		}
	}
	return fmt.Errorf("unknown piece kind %q", text)
}

// Piece is immutable once placed; moving a piece copies this value to the
// destination cell.
type Piece struct {
	Kind  Kind  `json:"type"`
	Color Color `json:"color"`
}

func NewPiece(kind Kind, color Color) Piece {
	return Piece{Kind: kind, Color: color}
}

func (p Piece) IsZero() bool {
	return p.Kind == NoKind
}

// Symbol is the one-letter console form: uppercase for white, lowercase for black.
func (p Piece) Symbol() rune {
	if p.IsZero() || int(p.Kind) >= len(kindSymbols) {
		return '.'
	}
	r := kindSymbols[p.Kind]
	if p.Color == Black {
		return unicode.ToLower(r)
	}
	return r
}

func (p Piece) String() string {
	if p.IsZero() {
		return "empty"
	}
	return p.Color.String() + " " + p.Kind.String()
}

// IsValidMove reports whether end is one of the destinations the piece
// generates from start. Hints, validation and mutation all go through it.
func (p Piece) IsValidMove(b *Board, start, end Square) bool {
	for _, sq := range p.Destinations(b, start) {
		if sq == end {
			return true
		}
	}
	return false
}

// Destinations returns every square the piece standing on from may move to.
// The board must hold p at from. Whether the move exposes the mover's own king
// is not considered.
func (p Piece) Destinations(b *Board, from Square) []Square {
	switch p.Kind {
	case King:
		return b.offsetMoves(from, p.Color, compassDirs)
	case Knight:
		return b.offsetMoves(from, p.Color, knightOffsets)
	case Oracle:
		return b.offsetMoves(from, p.Color, hopOffsets)
	case Rook:
		return b.RayScan(from, p.Color, orthogonalDirs, 0)
	case Bishop:
		return b.RayScan(from, p.Color, diagonalDirs, 0)
	case Queen:
		rook := Piece{Kind: Rook, Color: p.Color}.Destinations(b, from)
		bishop := Piece{Kind: Bishop, Color: p.Color}.Destinations(b, from)
		return append(rook, bishop...)
	case Striker:
		return b.RayScan(from, p.Color, compassDirs, 2)
	case Pawn:
		return b.pawnMoves(from, p.Color)
	case Archer:
		return b.archerMoves(from, p.Color)
	case CheckerMan:
		return b.checkerMoves(from, p.Color)
	}
	return nil
}
