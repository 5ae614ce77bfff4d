package notation

import (
	"errors"
	"testing"

	"github.com/benbeisheim/variantchess-backend/internal/engine"
)

func TestParseSquare(t *testing.T) {
	tests := []struct {
		in   string
		want engine.Square
	}{
		{"a8", engine.Sq(0, 0)},
		{"h1", engine.Sq(7, 7)},
		{"e2", engine.Sq(6, 4)},
		{"E4", engine.Sq(4, 4)},
		{" d5 ", engine.Sq(3, 3)},
	}
	for _, tt := range tests {
		got, err := ParseSquare(tt.in)
		if err != nil {
			t.Fatalf("ParseSquare(%q): %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("ParseSquare(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestParseSquareRejectsBadInput(t *testing.T) {
	for _, in := range []string{"", "e", "e9", "i1", "e22", "22"} {
		if _, err := ParseSquare(in); !errors.Is(err, ErrBadSquare) {
			t.Errorf("ParseSquare(%q): expected ErrBadSquare but got %v", in, err)
		}
	}
}

func TestFormatRoundTrip(t *testing.T) {
	for row := 0; row < engine.Size; row++ {
		for col := 0; col < engine.Size; col++ {
			sq := engine.Sq(row, col)
			back, err := ParseSquare(FormatSquare(sq))
			if err != nil || back != sq {
				t.Fatalf("round trip of %v gave %v, %v", sq, back, err)
			}
		}
	}
	if FormatSquare(engine.Sq(8, 0)) != "-" {
		t.Fatalf("out of range squares should format as -")
	}
}

func TestMoveRecord(t *testing.T) {
	tests := []struct {
		name    string
		piece   engine.Piece
		from    string
		to      string
		capture bool
		want    string
	}{
		{"pawn push", engine.NewPiece(engine.Pawn, engine.White), "e2", "e4", false, "e4"},
		{"pawn capture", engine.NewPiece(engine.Pawn, engine.White), "e4", "d5", true, "exd5"},
		{"knight", engine.NewPiece(engine.Knight, engine.Black), "g8", "f6", false, "Nf6"},
		{"archer capture", engine.NewPiece(engine.Archer, engine.White), "a1", "f6", true, "Axf6"},
		{"checker jump", engine.NewPiece(engine.CheckerMan, engine.Black), "b6", "d4", true, "b6xd4"},
		{"checker step", engine.NewPiece(engine.CheckerMan, engine.White), "b3", "a4", false, "b3-a4"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			from, _ := ParseSquare(tt.from)
			to, _ := ParseSquare(tt.to)
			if got := Move(tt.piece, from, to, tt.capture); got != tt.want {
				t.Fatalf("expected %q but got %q", tt.want, got)
			}
		})
	}
}
