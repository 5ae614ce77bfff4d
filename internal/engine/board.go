package engine

import "fmt"

// Board owns every piece in play. It is a plain value: assigning or copying a
// Board yields an independent snapshot.
type Board struct {
	Mode  GameMode
	cells [Size][Size]Piece
}

func EmptyBoard(mode GameMode) *Board {
	return &Board{Mode: mode}
}

func (b *Board) Clone() *Board {
	c := *b
	return &c
}

// Get panics on a square outside the board; callers are expected to pass
// squares that already went through InBounds or notation parsing.
func (b *Board) Get(sq Square) (Piece, bool) {
	if !sq.InBounds() {
		panic(fmt.Sprintf("engine: square %v out of bounds", sq))
	}
	p := b.cells[sq.Row][sq.Col]
	return p, !p.IsZero()
}

func (b *Board) Place(sq Square, p Piece) {
	if !sq.InBounds() {
		panic(fmt.Sprintf("engine: square %v out of bounds", sq))
	}
	b.cells[sq.Row][sq.Col] = p
}

func (b *Board) Remove(sq Square) {
	b.Place(sq, Piece{})
}

func (b *Board) Equal(other *Board) bool {
	return b.cells == other.cells
}

// Cells returns a copy of the grid, row-major.
func (b *Board) Cells() [Size][Size]Piece {
	return b.cells
}

// Find returns every square holding p in row-major order.
func (b *Board) Find(p Piece) []Square {
	var squares []Square
	for row := 0; row < Size; row++ {
		for col := 0; col < Size; col++ {
			if b.cells[row][col] == p {
				squares = append(squares, Square{Row: row, Col: col})
			}
		}
	}
	return squares
}

func (b *Board) LegalDestinations(sq Square) []Square {
	p, ok := b.Get(sq)
	if !ok {
		return nil
	}
	return p.Destinations(b, sq)
}

func (b *Board) IsValidMove(start, end Square) bool {
	if !start.InBounds() || !end.InBounds() {
		return false
	}
	p, ok := b.Get(start)
	if !ok {
		return false
	}
	return p.IsValidMove(b, start, end)
}

// MovePiece applies a move if it is legal for the piece on start and reports
// whether it did. A rejected move leaves the board untouched.
func (b *Board) MovePiece(start, end Square) bool {
	if !b.IsValidMove(start, end) {
		return false
	}
	mover, _ := b.Get(start)
	if captured, ok := b.JumpedSquare(start, end); ok {
		b.Remove(captured)
	}
	b.Place(end, mover)
	b.Remove(start)
	return true
}

// JumpedSquare reports the square a checkers jump from start to end passes
// over. It only applies in checkers mode and only to two-row diagonal moves.
func (b *Board) JumpedSquare(start, end Square) (Square, bool) {
	if b.Mode != Checkers {
		return Square{}, false
	}
	dr, dc := end.Row-start.Row, end.Col-start.Col
	if abs(dr) != 2 || abs(dc) != 2 {
		return Square{}, false
	}
	return Midpoint(start, end), true
}

// RayScan walks each direction one square at a time. Empty squares are
// destinations; the first occupied square ends the ray and is a destination
// only if it holds an enemy. limit caps the steps per direction, 0 is unbounded.
func (b *Board) RayScan(from Square, color Color, dirs []Direction, limit int) []Square {
	var moves []Square
	for _, d := range dirs {
		sq := from
		for step := 0; limit == 0 || step < limit; step++ {
			sq = sq.Add(d)
			if !sq.InBounds() {
				break
			}
			p, occupied := b.Get(sq)
			if occupied {
				if p.Color != color {
					moves = append(moves, sq)
				}
				break
			}
			moves = append(moves, sq)
		}
	}
	return moves
}

func (b *Board) offsetMoves(from Square, color Color, offsets []Direction) []Square {
	var moves []Square
	for _, d := range offsets {
		sq := from.Add(d)
		if b.emptyOrEnemy(sq, color) {
			moves = append(moves, sq)
		}
	}
	return moves
}

func (b *Board) emptyOrEnemy(sq Square, color Color) bool {
	if !sq.InBounds() {
		return false
	}
	p, occupied := b.Get(sq)
	return !occupied || p.Color != color
}

func (b *Board) empty(sq Square) bool {
	if !sq.InBounds() {
		return false
	}
	_, occupied := b.Get(sq)
	return !occupied
}

func (b *Board) enemy(sq Square, color Color) bool {
	if !sq.InBounds() {
		return false
	}
	p, occupied := b.Get(sq)
	return occupied && p.Color != color
}

func (b *Board) pawnMoves(from Square, color Color) []Square {
	var moves []Square
	dir := forward(color)
	one := Square{Row: from.Row + dir, Col: from.Col}
	if b.empty(one) {
		moves = append(moves, one)
		two := Square{Row: from.Row + 2*dir, Col: from.Col}
		if from.Row == pawnStartRow(color) && b.empty(two) {
			moves = append(moves, two)
		}
	}
	for _, dc := range []int{-1, 1} {
		capture := Square{Row: from.Row + dir, Col: from.Col + dc}
		if b.enemy(capture, color) {
			moves = append(moves, capture)
		}
	}
	return moves
}

func (b *Board) archerMoves(from Square, color Color) []Square {
	moves := b.offsetMoves(from, color, hopOffsets)
	for _, d := range diagonalDirs {
		sq := from
		for {
			sq = sq.Add(d)
			if !sq.InBounds() {
				break
			}
			p, occupied := b.Get(sq)
			if !occupied {
				continue
			}
			if p.Color != color && !contains(moves, sq) {
				moves = append(moves, sq)
			}
			break
		}
	}
	return moves
}

func (b *Board) checkerMoves(from Square, color Color) []Square {
	var moves []Square
	dirs := []Direction{{forward(color), -1}, {forward(color), 1}}
	for _, d := range dirs {
		if step := from.Add(d); b.empty(step) {
			moves = append(moves, step)
		}
	}
	for _, d := range dirs {
		landing := from.Add(d.Scale(2))
		if b.empty(landing) && b.enemy(from.Add(d), color) {
			moves = append(moves, landing)
		}
	}
	return moves
}

func contains(squares []Square, sq Square) bool {
	for _, s := range squares {
		if s == sq {
			return true
		}
	}
	return false
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
