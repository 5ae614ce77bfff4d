package model

import "github.com/benbeisheim/variantchess-backend/internal/engine"

// WSMove is a move request with squares in algebraic form ("e2").
type WSMove struct {
	From string `json:"from"`
	To   string `json:"to"`
}

type Ply struct {
	Color         engine.Color  `json:"color"`
	Piece         engine.Piece  `json:"piece"`
	From          string        `json:"from"`
	To            string        `json:"to"`
	CapturedPiece *engine.Piece `json:"capturedPiece"`
	CapturedAt    string        `json:"capturedAt,omitempty"`
	Notation      string        `json:"notation"`
}

type SimpleMove struct {
	From string `json:"from"`
	To   string `json:"to"`
}

type LegalMove struct {
	To      string `json:"to"`
	Capture bool   `json:"capture"`
}

type UndoRequest struct {
	Steps int `json:"steps"`
}

type SelectRequest struct {
	Square string `json:"square"`
}
