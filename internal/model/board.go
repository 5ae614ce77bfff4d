package model

import (
	"github.com/benbeisheim/variantchess-backend/internal/engine"
)

// BoardState is the client view of the grid: row 0 is rank 8, nil is an empty
// square.
type BoardState struct {
	Board [][]*engine.Piece `json:"board"`
}

func newBoardState(b *engine.Board) *BoardState {
	state := &BoardState{}
	cells := b.Cells()
	for row := 0; row < engine.Size; row++ {
		line := make([]*engine.Piece, engine.Size)
		for col := 0; col < engine.Size; col++ {
			if p := cells[row][col]; !p.IsZero() {
				line[col] = &p
			}
		}
		state.Board = append(state.Board, line)
	}
	return state
}
