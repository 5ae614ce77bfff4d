package model

import (
	"github.com/benbeisheim/variantchess-backend/internal/engine"
)

type Player struct {
	ID       string
	Color    string
	TimeLeft int
}

type ClientPlayer struct {
	ID       string `json:"name"`
	Color    string `json:"color"`
	TimeLeft int    `json:"timeLeft"`
}

type PlayerColor string

const (
	PlayerColorWhite PlayerColor = "white"
	PlayerColorBlack PlayerColor = "black"
)

// MatchFoundEvent is pushed to a queued player once an opponent is found.
type MatchFoundEvent struct {
	GameID string          `json:"gameId"`
	Color  PlayerColor     `json:"color"`
	Mode   engine.GameMode `json:"mode"`
}
