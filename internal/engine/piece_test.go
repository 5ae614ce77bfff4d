package engine

import (
	"math/rand"
	"testing"
)

func squareSet(squares []Square) map[Square]bool {
	set := make(map[Square]bool, len(squares))
	for _, sq := range squares {
		set[sq] = true
	}
	return set
}

func assertNoDuplicates(t *testing.T, squares []Square) {
	t.Helper()
	if len(squareSet(squares)) != len(squares) {
		t.Fatalf("duplicate destinations in %v", squares)
	}
}

func TestKingDestinationCount(t *testing.T) {
	tests := []struct {
		name  string
		other *Piece
		want  int
	}{
		{name: "empty board", want: 8},
		{name: "friendly neighbour", other: &Piece{Kind: Pawn, Color: White}, want: 7},
		{name: "enemy neighbour", other: &Piece{Kind: Pawn, Color: Black}, want: 8},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := EmptyBoard(Classical)
			king := Sq(4, 4)
			b.Place(king, Piece{Kind: King, Color: White})
			if tt.other != nil {
				b.Place(Sq(3, 3), *tt.other)
			}
			got := b.LegalDestinations(king)
			if len(got) != tt.want {
				t.Fatalf("expected %d destinations but got %d: %v", tt.want, len(got), got)
			}
		})
	}
}

func TestKnightInCorner(t *testing.T) {
	b := EmptyBoard(Classical)
	b.Place(Sq(0, 0), Piece{Kind: Knight, Color: Black})
	got := squareSet(b.LegalDestinations(Sq(0, 0)))
	if len(got) != 2 || !got[Sq(1, 2)] || !got[Sq(2, 1)] {
		t.Fatalf("unexpected knight destinations %v", got)
	}
}

func TestRookStopsAtFirstPiece(t *testing.T) {
	b := EmptyBoard(Classical)
	rook := Sq(4, 4)
	b.Place(rook, Piece{Kind: Rook, Color: White})
	b.Place(Sq(4, 6), Piece{Kind: Knight, Color: White})
	b.Place(Sq(2, 4), Piece{Kind: Knight, Color: Black})

	got := b.LegalDestinations(rook)
	if len(got) != 10 {
		t.Fatalf("expected 10 destinations but got %d: %v", len(got), got)
	}
	set := squareSet(got)
	if !set[Sq(2, 4)] {
		t.Errorf("enemy blocker should be capturable")
	}
	if set[Sq(1, 4)] {
		t.Errorf("rook scanned past an enemy piece")
	}
	if set[Sq(4, 6)] || set[Sq(4, 7)] {
		t.Errorf("rook landed on or past a friendly piece")
	}
}

func TestQueenIsRookUnionBishop(t *testing.T) {
	b := EmptyBoard(Classical)
	from := Sq(3, 3)
	b.Place(from, Piece{Kind: Queen, Color: Black})
	b.Place(Sq(3, 6), Piece{Kind: Pawn, Color: White})
	b.Place(Sq(5, 5), Piece{Kind: Pawn, Color: Black})
	b.Place(Sq(0, 3), Piece{Kind: Rook, Color: White})

	queen := b.LegalDestinations(from)
	assertNoDuplicates(t, queen)

	union := squareSet(Piece{Kind: Rook, Color: Black}.Destinations(b, from))
	for sq := range squareSet(Piece{Kind: Bishop, Color: Black}.Destinations(b, from)) {
		union[sq] = true
	}
	got := squareSet(queen)
	if len(got) != len(union) {
		t.Fatalf("expected %d squares but got %d", len(union), len(got))
	}
	for sq := range union {
		if !got[sq] {
			t.Errorf("queen is missing %v", sq)
		}
	}
}

func TestPawnMoves(t *testing.T) {
	tests := []struct {
		name    string
		pawn    Piece
		from    Square
		pieces  map[Square]Piece
		want    []Square
		notWant []Square
	}{
		{
			name: "white double step from start",
			pawn: Piece{Kind: Pawn, Color: White},
			from: Sq(6, 4),
			want: []Square{Sq(5, 4), Sq(4, 4)},
		},
		{
			name: "black double step from start",
			pawn: Piece{Kind: Pawn, Color: Black},
			from: Sq(1, 2),
			want: []Square{Sq(2, 2), Sq(3, 2)},
		},
		{
			name:    "double step blocked on landing",
			pawn:    Piece{Kind: Pawn, Color: White},
			from:    Sq(6, 4),
			pieces:  map[Square]Piece{Sq(4, 4): {Kind: Knight, Color: Black}},
			want:    []Square{Sq(5, 4)},
			notWant: []Square{Sq(4, 4)},
		},
		{
			name:    "single step blocked",
			pawn:    Piece{Kind: Pawn, Color: White},
			from:    Sq(6, 4),
			pieces:  map[Square]Piece{Sq(5, 4): {Kind: Knight, Color: White}},
			notWant: []Square{Sq(5, 4), Sq(4, 4)},
		},
		{
			name:    "no double step off the start row",
			pawn:    Piece{Kind: Pawn, Color: White},
			from:    Sq(5, 4),
			want:    []Square{Sq(4, 4)},
			notWant: []Square{Sq(3, 4)},
		},
		{
			name: "diagonal capture only onto enemy",
			pawn: Piece{Kind: Pawn, Color: White},
			from: Sq(4, 4),
			pieces: map[Square]Piece{
				Sq(3, 3): {Kind: Bishop, Color: Black},
				Sq(3, 5): {Kind: Bishop, Color: White},
			},
			want:    []Square{Sq(3, 4), Sq(3, 3)},
			notWant: []Square{Sq(3, 5)},
		},
		{
			name: "last row has nowhere to go",
			pawn: Piece{Kind: Pawn, Color: White},
			from: Sq(0, 0),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := EmptyBoard(Classical)
			b.Place(tt.from, tt.pawn)
			for sq, p := range tt.pieces {
				b.Place(sq, p)
			}
			got := b.LegalDestinations(tt.from)
			if len(got) != len(tt.want) {
				t.Fatalf("expected %v but got %v", tt.want, got)
			}
			set := squareSet(got)
			for _, sq := range tt.want {
				if !set[sq] {
					t.Errorf("missing %v in %v", sq, got)
				}
			}
			for _, sq := range tt.notWant {
				if set[sq] {
					t.Errorf("unexpected %v in %v", sq, got)
				}
			}
		})
	}
}

func TestArcherMoves(t *testing.T) {
	from := Sq(4, 4)
	archer := Piece{Kind: Archer, Color: White}

	t.Run("hops on empty board", func(t *testing.T) {
		b := EmptyBoard(Variant)
		b.Place(from, archer)
		got := b.LegalDestinations(from)
		if len(got) != 8 {
			t.Fatalf("expected 8 hops but got %v", got)
		}
		if squareSet(got)[Sq(3, 3)] {
			t.Fatalf("diagonal ray must not add empty squares")
		}
	})

	t.Run("long diagonal capture", func(t *testing.T) {
		b := EmptyBoard(Variant)
		b.Place(from, archer)
		b.Place(Sq(1, 1), Piece{Kind: Rook, Color: Black})
		got := squareSet(b.LegalDestinations(from))
		if len(got) != 9 || !got[Sq(1, 1)] {
			t.Fatalf("expected 8 hops plus capture on (1,1), got %v", got)
		}
	})

	t.Run("hop and ray reaching the same square", func(t *testing.T) {
		b := EmptyBoard(Variant)
		b.Place(from, archer)
		b.Place(Sq(2, 2), Piece{Kind: Rook, Color: Black})
		got := b.LegalDestinations(from)
		assertNoDuplicates(t, got)
		if len(got) != 8 {
			t.Fatalf("expected 8 destinations but got %v", got)
		}
	})

	t.Run("hops jump over blockers", func(t *testing.T) {
		b := EmptyBoard(Variant)
		b.Place(from, archer)
		b.Place(Sq(3, 3), Piece{Kind: Pawn, Color: White})
		b.Place(Sq(1, 1), Piece{Kind: Rook, Color: Black})
		got := squareSet(b.LegalDestinations(from))
		if !got[Sq(2, 2)] {
			t.Errorf("hop over a friendly piece should be allowed")
		}
		if got[Sq(1, 1)] {
			t.Errorf("diagonal capture should be blocked by the friendly piece")
		}
	})

	t.Run("orthogonal hops do not capture beyond two", func(t *testing.T) {
		b := EmptyBoard(Variant)
		b.Place(from, archer)
		b.Place(Sq(1, 4), Piece{Kind: Rook, Color: Black})
		if squareSet(b.LegalDestinations(from))[Sq(1, 4)] {
			t.Fatalf("archer captured orthogonally at range 3")
		}
	})
}

func TestStrikerMoves(t *testing.T) {
	from := Sq(4, 4)
	tests := []struct {
		name  string
		other *Piece
		want  int
	}{
		{name: "empty board", want: 16},
		{name: "friendly blocker", other: &Piece{Kind: Pawn, Color: Black}, want: 14},
		{name: "enemy blocker", other: &Piece{Kind: Pawn, Color: White}, want: 15},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := EmptyBoard(Variant)
			b.Place(from, Piece{Kind: Striker, Color: Black})
			if tt.other != nil {
				b.Place(Sq(3, 4), *tt.other)
			}
			got := b.LegalDestinations(from)
			assertNoDuplicates(t, got)
			if len(got) != tt.want {
				t.Fatalf("expected %d destinations but got %d: %v", tt.want, len(got), got)
			}
			if squareSet(got)[Sq(1, 4)] {
				t.Fatalf("striker moved three squares")
			}
		})
	}
}

func TestOracleJumps(t *testing.T) {
	b := EmptyBoard(Variant)
	from := Sq(4, 4)
	b.Place(from, Piece{Kind: Oracle, Color: White})
	b.Place(Sq(3, 4), Piece{Kind: Pawn, Color: Black})
	b.Place(Sq(3, 3), Piece{Kind: Pawn, Color: White})
	if got := b.LegalDestinations(from); len(got) != 8 {
		t.Fatalf("oracle should jump over pieces, got %v", got)
	}

	b.Place(Sq(2, 4), Piece{Kind: Pawn, Color: White})
	b.Place(Sq(6, 6), Piece{Kind: Pawn, Color: Black})
	got := squareSet(b.LegalDestinations(from))
	if len(got) != 7 || got[Sq(2, 4)] || !got[Sq(6, 6)] {
		t.Fatalf("unexpected oracle destinations %v", got)
	}
}

func TestCheckerManMoves(t *testing.T) {
	b := NewBoard(Checkers)
	b.Place(Sq(2, 1), Piece{Kind: CheckerMan, Color: Black})
	b.Place(Sq(3, 2), Piece{Kind: CheckerMan, Color: White})

	got := b.LegalDestinations(Sq(2, 1))
	want := []Square{Sq(3, 0), Sq(4, 3)}
	if len(got) != len(want) {
		t.Fatalf("expected %v but got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v but got %v", want, got)
		}
	}

	white := squareSet(b.LegalDestinations(Sq(5, 1)))
	if len(white) != 2 || !white[Sq(4, 0)] || !white[Sq(4, 2)] {
		t.Fatalf("white man on (5,1) should step to (4,0) or (4,2), got %v", white)
	}
}

func TestCheckerJumpNeedsEnemyAndEmptyLanding(t *testing.T) {
	tests := []struct {
		name    string
		middle  Piece
		landing *Piece
		want    bool
	}{
		{name: "enemy in the middle", middle: Piece{Kind: CheckerMan, Color: White}, want: true},
		{name: "friend in the middle", middle: Piece{Kind: CheckerMan, Color: Black}, want: false},
		{name: "landing occupied", middle: Piece{Kind: CheckerMan, Color: White}, landing: &Piece{Kind: CheckerMan, Color: White}, want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := EmptyBoard(Checkers)
			b.Place(Sq(3, 3), Piece{Kind: CheckerMan, Color: Black})
			b.Place(Sq(4, 4), tt.middle)
			if tt.landing != nil {
				b.Place(Sq(5, 5), *tt.landing)
			}
			if got := b.IsValidMove(Sq(3, 3), Sq(5, 5)); got != tt.want {
				t.Fatalf("expected jump allowed=%v but got %v", tt.want, got)
			}
		})
	}
}

func TestCheckerManNeverMovesBackward(t *testing.T) {
	b := EmptyBoard(Checkers)
	b.Place(Sq(4, 4), Piece{Kind: CheckerMan, Color: White})
	b.Place(Sq(5, 5), Piece{Kind: CheckerMan, Color: Black})
	for _, sq := range b.LegalDestinations(Sq(4, 4)) {
		if sq.Row >= 4 {
			t.Fatalf("white man moved backward to %v", sq)
		}
	}
}

var randomKinds = []Kind{King, Queen, Rook, Bishop, Knight, Pawn, Archer, Striker, Oracle, CheckerMan}

func randomBoard(r *rand.Rand) *Board {
	b := EmptyBoard(GameMode(r.Intn(3)))
	for row := 0; row < Size; row++ {
		for col := 0; col < Size; col++ {
			if r.Intn(3) != 0 {
				continue
			}
			b.Place(Sq(row, col), Piece{Kind: randomKinds[r.Intn(len(randomKinds))], Color: Color(r.Intn(2))})
		}
	}
	return b
}

func TestIsValidMoveMatchesDestinations(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	for i := 0; i < 200; i++ {
		b := randomBoard(r)
		for row := 0; row < Size; row++ {
			for col := 0; col < Size; col++ {
				start := Sq(row, col)
				p, ok := b.Get(start)
				if !ok {
					continue
				}
				dests := b.LegalDestinations(start)
				assertNoDuplicates(t, dests)
				set := squareSet(dests)
				for er := 0; er < Size; er++ {
					for ec := 0; ec < Size; ec++ {
						end := Sq(er, ec)
						if got := p.IsValidMove(b, start, end); got != set[end] {
							t.Fatalf("%v at %v -> %v: IsValidMove=%v, in destinations=%v", p, start, end, got, set[end])
						}
					}
				}
			}
		}
	}
}

func TestSlidersNeverPassFirstPiece(t *testing.T) {
	r := rand.New(rand.NewSource(11))
	for i := 0; i < 200; i++ {
		b := randomBoard(r)
		from := Sq(r.Intn(Size), r.Intn(Size))
		slider := Piece{Kind: []Kind{Rook, Bishop, Queen}[r.Intn(3)], Color: Color(r.Intn(2))}
		b.Place(from, slider)
		set := squareSet(b.LegalDestinations(from))

		for _, d := range compassDirs {
			sq, blocked := from, false
			for {
				sq = sq.Add(d)
				if !sq.InBounds() {
					break
				}
				if blocked {
					if set[sq] {
						t.Fatalf("%v at %v reached %v past a blocker", slider, from, sq)
					}
					continue
				}
				if p, ok := b.Get(sq); ok {
					blocked = true
					reachable := (slider.Kind == Queen) ||
						(slider.Kind == Rook && (d.DR == 0 || d.DC == 0)) ||
						(slider.Kind == Bishop && d.DR != 0 && d.DC != 0)
					if want := reachable && p.Color != slider.Color; set[sq] != want {
						t.Fatalf("%v at %v: blocker %v at %v included=%v, want %v", slider, from, p, sq, set[sq], want)
					}
				}
			}
		}
	}
}
