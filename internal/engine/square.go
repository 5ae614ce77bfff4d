package engine

import "fmt"

const Size = 8

// Square is a board coordinate. Row 0 is Black's back rank (rank 8) and row 7
// is White's (rank 1); Col 0..7 are files a..h.
type Square struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func Sq(row, col int) Square {
	return Square{Row: row, Col: col}
}

func (s Square) InBounds() bool {
	return s.Row >= 0 && s.Row < Size && s.Col >= 0 && s.Col < Size
}

func (s Square) Add(d Direction) Square {
	return Square{Row: s.Row + d.DR, Col: s.Col + d.DC}
}

func (s Square) String() string {
	return fmt.Sprintf("(%d,%d)", s.Row, s.Col)
}

// Midpoint uses integer division, so it is only meaningful for moves of an
// even length along a line.
func Midpoint(a, b Square) Square {
	return Square{Row: (a.Row + b.Row) / 2, Col: (a.Col + b.Col) / 2}
}

type Direction struct {
	DR, DC int
}

func (d Direction) Scale(n int) Direction {
	return Direction{DR: d.DR * n, DC: d.DC * n}
}

var (
	orthogonalDirs = []Direction{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}
	diagonalDirs   = []Direction{{1, 1}, {-1, -1}, {1, -1}, {-1, 1}}
	compassDirs    = []Direction{{-1, -1}, {-1, 0}, {-1, 1}, {0, -1}, {0, 1}, {1, -1}, {1, 0}, {1, 1}}
	knightOffsets  = []Direction{{-2, -1}, {-2, 1}, {-1, -2}, {-1, 2}, {1, -2}, {1, 2}, {2, -1}, {2, 1}}
	hopOffsets     = []Direction{{-2, -2}, {-2, 0}, {-2, 2}, {0, -2}, {0, 2}, {2, -2}, {2, 0}, {2, 2}}
)

// forward is the row step a pawn or checker man of color c advances by.
func forward(c Color) int {
	if c == White {
		return -1
	}
	return 1
}

func pawnStartRow(c Color) int {
	if c == White {
		return 6
	}
	return 1
}
