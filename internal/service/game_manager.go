package service

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"

	"github.com/benbeisheim/variantchess-backend/internal/engine"
	"github.com/benbeisheim/variantchess-backend/internal/model"
)

var modes = []engine.GameMode{engine.Classical, engine.Variant, engine.Checkers}

type GameManager struct {
	games            map[string]*model.Game
	queues           map[engine.GameMode]*model.Queue
	matchingChannels map[string]chan string
	timeControl      time.Duration
	mu               sync.RWMutex
}

func NewGameManager(timeControl time.Duration) *GameManager {
	gm := &GameManager{
		games:            make(map[string]*model.Game),
		queues:           make(map[engine.GameMode]*model.Queue, len(modes)),
		matchingChannels: make(map[string]chan string),
		timeControl:      timeControl,
	}
	for _, mode := range modes {
		gm.queues[mode] = model.NewQueue(mode)
	}
	return gm
}

func (gm *GameManager) RegisterMatchmakingChannel(playerID string, ch chan string) error {
	gm.mu.Lock()
	defer gm.mu.Unlock()
	log.Debugf("registering matchmaking channel for player %s", playerID)

	if existingCh, exists := gm.matchingChannels[playerID]; exists {
		// Remove from map first to prevent any new writes
		delete(gm.matchingChannels, playerID)
		close(existingCh)
	}

	gm.matchingChannels[playerID] = ch
	return nil
}

// UnregisterMatchmakingChannel forgets playerID's channel without closing it;
// the reader that created it closes it.
func (gm *GameManager) UnregisterMatchmakingChannel(playerID string, ch chan string) {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	if current, ok := gm.matchingChannels[playerID]; ok && current == ch {
		log.Debugf("unregistering matchmaking channel for player %s", playerID)
		delete(gm.matchingChannels, playerID)
	}
}

// Run pairs queued players every interval until ctx is done.
func (gm *GameManager) Run(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			gm.processMatchmaking()
		}
	}
}

// processMatchmaking pairs as many players as each mode's queue allows.
func (gm *GameManager) processMatchmaking() {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	for _, mode := range modes {
		queue := gm.queues[mode]
		for {
			player1, player2, ok := queue.GetNextPair()
			if !ok {
				break
			}
			gm.startMatch(mode, player1, player2)
		}
	}
}

// startMatch is called with gm.mu held.
func (gm *GameManager) startMatch(mode engine.GameMode, queued1, queued2 model.QueuedPlayer) {
	player1, player2 := queued1.Player, queued2.Player
	gameID := uuid.New().String()
	game := model.NewGame(gameID, mode, gm.timeControl)

	p1Color, err := game.AddPlayer(player1.ID)
	if err != nil {
		log.Errorf("adding player %s to game %s: %v", player1.ID, gameID, err)
		return
	}
	p2Color, err := game.AddPlayer(player2.ID)
	if err != nil {
		log.Errorf("adding player %s to game %s: %v", player2.ID, gameID, err)
		return
	}
	gm.games[gameID] = game
	now := time.Now()
	log.Infof("matched %s (waited %s) and %s (waited %s) in %s game %s",
		player1.ID, now.Sub(queued1.JoinedAt).Round(time.Millisecond),
		player2.ID, now.Sub(queued2.JoinedAt).Round(time.Millisecond),
		mode, gameID)

	sendEventAndCleanup := func(playerID string, event model.MatchFoundEvent) bool {
		ch, ok := gm.matchingChannels[playerID]
		if !ok {
			return false
		}
		payload, err := json.Marshal(event)
		if err != nil {
			log.Errorf("marshalling match event: %v", err)
			return false
		}
		select {
		case ch <- string(payload):
			delete(gm.matchingChannels, playerID)
			close(ch)
			return true
		default:
			return false
		}
	}

	sent1 := sendEventAndCleanup(player1.ID, model.MatchFoundEvent{GameID: gameID, Color: p1Color, Mode: mode})
	sent2 := sendEventAndCleanup(player2.ID, model.MatchFoundEvent{GameID: gameID, Color: p2Color, Mode: mode})
	if !sent1 || !sent2 {
		// The game stays reachable by id; a client that missed the event can
		// still fetch it once it learns the id.
		log.Warnf("could not notify both players of game %s", gameID)
	}
}

func (gm *GameManager) CreateGame(gameID string, mode engine.GameMode) error {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	if _, exists := gm.games[gameID]; exists {
		return ErrGameExists
	}

	gm.games[gameID] = model.NewGame(gameID, mode, gm.timeControl)
	log.Infof("created %s game %s", mode, gameID)
	return nil
}

func (gm *GameManager) GetGame(gameID string) (*model.Game, error) {
	gm.mu.RLock()
	defer gm.mu.RUnlock()

	game, exists := gm.games[gameID]
	if !exists {
		return nil, ErrGameNotFound
	}
	return game, nil
}

func (gm *GameManager) AddPlayerToGame(gameID string, playerID string) (model.PlayerColor, error) {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return "", err
	}
	return game.AddPlayer(playerID)
}

func (gm *GameManager) JoinMatchmaking(playerID string, mode engine.GameMode) error {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	queue, ok := gm.queues[mode]
	if !ok {
		return engine.ErrUnknownMode
	}
	for m, q := range gm.queues {
		if m != mode && q.Remove(playerID) {
			log.Debugf("player %s moved from the %s queue to %s", playerID, m, mode)
		}
	}
	return queue.AddPlayer(model.Player{ID: playerID})
}

func (gm *GameManager) LeaveMatchmaking(playerID string) {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	for _, q := range gm.queues {
		q.Remove(playerID)
	}
}

func (gm *GameManager) QueueSize(mode engine.GameMode) int {
	gm.mu.RLock()
	defer gm.mu.RUnlock()

	if q, ok := gm.queues[mode]; ok {
		return q.Size()
	}
	return 0
}

func (gm *GameManager) GetGameState(gameID string) (model.GameState, error) {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return model.GameState{}, err
	}
	return game.GetState(), nil
}

func (gm *GameManager) MakeMove(gameID string, playerID string, move model.WSMove) error {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return err
	}
	return game.MakeMove(playerID, move)
}

func (gm *GameManager) Select(gameID string, playerID string, square string) ([]model.LegalMove, error) {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return nil, err
	}
	return game.Select(playerID, square)
}

func (gm *GameManager) Undo(gameID string, playerID string, steps int) error {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return err
	}
	return game.Undo(playerID, steps)
}

func (gm *GameManager) RegisterConnection(gameID string, playerID string, client *model.Client) error {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return err
	}
	return game.RegisterConnection(playerID, client)
}

func (gm *GameManager) UnregisterConnection(gameID string, playerID string, client *model.Client) {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return
	}
	game.UnregisterConnection(playerID, client)
}
