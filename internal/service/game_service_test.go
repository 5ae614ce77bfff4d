package service

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/benbeisheim/variantchess-backend/internal/engine"
	"github.com/benbeisheim/variantchess-backend/internal/notation"
)

func TestServiceCreateGame(t *testing.T) {
	gs := NewGameService(NewGameManager(time.Minute))
	id, err := gs.CreateGame(engine.Checkers)
	if err != nil || id == "" {
		t.Fatalf("create failed: %q, %v", id, err)
	}
	state, err := gs.GetGameState(id)
	if err != nil || state.Mode != engine.Checkers {
		t.Fatalf("unexpected state %v, %v", state.Mode, err)
	}
}

func TestServiceLegalMoves(t *testing.T) {
	gs := NewGameService(NewGameManager(time.Minute))
	id, _ := gs.CreateGame(engine.Classical)

	moves, err := gs.LegalMoves(id, "e7")
	if err != nil {
		t.Fatal(err)
	}
	if len(moves) != 2 || moves[0].Capture {
		t.Fatalf("expected e6 and e5 but got %+v", moves)
	}
	if _, err := gs.LegalMoves(id, "e4"); !errors.Is(err, engine.ErrEmptySquare) {
		t.Fatalf("expected ErrEmptySquare but got %v", err)
	}
	if _, err := gs.LegalMoves(id, "z9"); !errors.Is(err, notation.ErrBadSquare) {
		t.Fatalf("expected ErrBadSquare but got %v", err)
	}

	if state, _ := gs.GetGameState(id); state.SelectedSquare != nil {
		t.Fatalf("querying moves must not change the selection")
	}
}

func TestServiceBoardSVG(t *testing.T) {
	gs := NewGameService(NewGameManager(time.Minute))
	id, _ := gs.CreateGame(engine.Variant)
	out, err := gs.BoardSVG(id)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(out), "</svg>") {
		t.Fatalf("expected an svg document")
	}
	if _, err := gs.BoardSVG("missing"); !errors.Is(err, ErrGameNotFound) {
		t.Fatalf("expected ErrGameNotFound but got %v", err)
	}
}
