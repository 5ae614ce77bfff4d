package service

import (
	"bytes"
	"fmt"

	"github.com/google/uuid"

	"github.com/benbeisheim/variantchess-backend/internal/engine"
	"github.com/benbeisheim/variantchess-backend/internal/model"
	"github.com/benbeisheim/variantchess-backend/internal/notation"
	"github.com/benbeisheim/variantchess-backend/internal/render"
)

type GameService struct {
	gameManager *GameManager
}

func NewGameService(gameManager *GameManager) *GameService {
	return &GameService{
		gameManager: gameManager,
	}
}

func (gs *GameService) JoinGame(gameID string, playerID string) (model.PlayerColor, error) {
	return gs.gameManager.AddPlayerToGame(gameID, playerID)
}

func (gs *GameService) CreateGame(mode engine.GameMode) (string, error) {
	gameID := uuid.New().String()

	if err := gs.gameManager.CreateGame(gameID, mode); err != nil {
		return "", fmt.Errorf("failed to create game: %w", err)
	}

	return gameID, nil
}

func (gs *GameService) JoinMatchmaking(playerID string, mode engine.GameMode) error {
	return gs.gameManager.JoinMatchmaking(playerID, mode)
}

func (gs *GameService) LeaveMatchmaking(playerID string) {
	gs.gameManager.LeaveMatchmaking(playerID)
}

func (gs *GameService) GetGameState(gameID string) (model.GameState, error) {
	return gs.gameManager.GetGameState(gameID)
}

func (gs *GameService) HandleMove(gameID string, playerID string, move model.WSMove) error {
	return gs.gameManager.MakeMove(gameID, playerID, move)
}

func (gs *GameService) HandleSelect(gameID string, playerID string, square string) ([]model.LegalMove, error) {
	return gs.gameManager.Select(gameID, playerID, square)
}

func (gs *GameService) HandleUndo(gameID string, playerID string, steps int) error {
	return gs.gameManager.Undo(gameID, playerID, steps)
}

// LegalMoves lists destinations for the piece on square without touching the
// game's stored selection. Anyone may ask, for either side.
func (gs *GameService) LegalMoves(gameID string, square string) ([]model.LegalMove, error) {
	game, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return nil, err
	}
	sq, err := notation.ParseSquare(square)
	if err != nil {
		return nil, err
	}

	moves := make([]model.LegalMove, 0)
	game.Render(func(b *engine.Board, _ *engine.MoveHint, _ *engine.ThreatDetector) {
		if _, ok := b.Get(sq); !ok {
			err = engine.ErrEmptySquare
			return
		}
		hints := engine.NewMoveHint()
		hints.Set(b, b.LegalDestinations(sq))
		for _, h := range hints.Hints() {
			moves = append(moves, model.LegalMove{To: notation.FormatSquare(h.Square), Capture: h.Capture})
		}
	})
	if err != nil {
		return nil, err
	}
	return moves, nil
}

// BoardSVG draws the live board with its current hints and threats.
func (gs *GameService) BoardSVG(gameID string) ([]byte, error) {
	game, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	game.Render(func(b *engine.Board, hints *engine.MoveHint, threats *engine.ThreatDetector) {
		render.SVG(&buf, b, render.Overlay{Hints: hints, Threats: threats})
	})
	return buf.Bytes(), nil
}

func (gs *GameService) RegisterConnection(gameID string, playerID string, client *model.Client) error {
	return gs.gameManager.RegisterConnection(gameID, playerID, client)
}

func (gs *GameService) UnregisterConnection(gameID string, playerID string, client *model.Client) {
	gs.gameManager.UnregisterConnection(gameID, playerID, client)
}

func (gs *GameService) RegisterMatchmakingChannel(playerID string, ch chan string) error {
	return gs.gameManager.RegisterMatchmakingChannel(playerID, ch)
}

func (gs *GameService) UnregisterMatchmakingChannel(playerID string, ch chan string) {
	gs.gameManager.UnregisterMatchmakingChannel(playerID, ch)
}
