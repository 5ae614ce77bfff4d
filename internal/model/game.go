package model

import (
	"sync"
	"time"

	"github.com/gofiber/fiber/v2/log"

	"github.com/benbeisheim/variantchess-backend/internal/engine"
	"github.com/benbeisheim/variantchess-backend/internal/notation"
	"github.com/benbeisheim/variantchess-backend/internal/ws"
)

// The connections for a specific game
type GameConnections struct {
	connections map[string]*Client // playerID -> client
	mu          sync.RWMutex
}

// Game wraps one engine session with seats, clocks and the observers that
// receive state updates.
type Game struct {
	ID          string
	Mode        engine.GameMode
	mu          sync.Mutex
	session     *engine.Session
	state       GameState
	connections *GameConnections
	whiteClock  *Clock
	blackClock  *Clock
}

type GameState struct {
	Sound          string          `json:"sound"`
	Mode           engine.GameMode `json:"mode"`
	Board          *BoardState     `json:"boardState"`
	ToMove         engine.Color    `json:"toMove"`
	MoveCount      int             `json:"moveCount"`
	MoveHistory    []Ply           `json:"moveHistory"`
	CapturedPieces CapturedPieces  `json:"capturedPieces"`
	IsCheck        bool            `json:"isCheck"`
	Threatened     []string        `json:"threatened"`
	SelectedSquare *string         `json:"selectedSquare"`
	LegalMoves     []LegalMove     `json:"legalMoves"`
	Players        Players         `json:"players"`
	LastMove       *SimpleMove     `json:"lastMove"`
}

type Players struct {
	White ClientPlayer `json:"white"`
	Black ClientPlayer `json:"black"`
}

// CapturedPieces lists what each side has taken.
type CapturedPieces struct {
	White []engine.Piece `json:"white"`
	Black []engine.Piece `json:"black"`
}

func NewGame(id string, mode engine.GameMode, timeControl time.Duration) *Game {
	g := &Game{
		ID:          id,
		Mode:        mode,
		session:     engine.NewSession(mode),
		connections: NewGameConnections(),
		whiteClock:  NewClock(timeControl),
		blackClock:  NewClock(timeControl),
	}
	g.state = newGameState(mode)
	g.refreshState()
	return g
}

func NewGameConnections() *GameConnections {
	return &GameConnections{
		connections: make(map[string]*Client),
	}
}

func newGameState(mode engine.GameMode) GameState {
	return GameState{
		Mode:           mode,
		MoveHistory:    make([]Ply, 0),
		CapturedPieces: newCapturedPieces(),
		Threatened:     make([]string, 0),
		LegalMoves:     make([]LegalMove, 0),
	}
}

func newCapturedPieces() CapturedPieces {
	return CapturedPieces{
		White: make([]engine.Piece, 0),
		Black: make([]engine.Piece, 0),
	}
}

// refreshState copies everything the session owns into the client view.
// Callers hold g.mu.
func (g *Game) refreshState() {
	g.state.Board = newBoardState(g.session.Board())
	g.state.ToMove = g.session.ToMove()
	g.state.MoveCount = g.session.MoveCount()

	threats := g.session.Threats()
	g.state.IsCheck = threats.Check
	g.state.Threatened = make([]string, 0, len(threats.Threatened))
	for _, sq := range threats.Threatened {
		g.state.Threatened = append(g.state.Threatened, notation.FormatSquare(sq))
	}

	g.state.CapturedPieces = newCapturedPieces()
	for _, ply := range g.state.MoveHistory {
		if ply.CapturedPiece == nil {
			continue
		}
		if ply.Color == engine.White {
			g.state.CapturedPieces.White = append(g.state.CapturedPieces.White, *ply.CapturedPiece)
		} else {
			g.state.CapturedPieces.Black = append(g.state.CapturedPieces.Black, *ply.CapturedPiece)
		}
	}

	g.state.Players.White.TimeLeft = g.whiteClock.Tenths()
	g.state.Players.Black.TimeLeft = g.blackClock.Tenths()
}

func (g *Game) clearSelection() {
	g.session.ClearSelection()
	g.state.SelectedSquare = nil
	g.state.LegalMoves = make([]LegalMove, 0)
}

// snapshot returns a copy of the state that later mutations cannot reach.
func (g *Game) snapshot() GameState {
	s := g.state
	s.MoveHistory = append([]Ply(nil), g.state.MoveHistory...)
	s.LegalMoves = append([]LegalMove(nil), g.state.LegalMoves...)
	s.Threatened = append([]string(nil), g.state.Threatened...)
	return s
}

func (g *Game) AddPlayer(playerID string) (PlayerColor, error) {
	log.Debugf("adding player %s to game %s", playerID, g.ID)
	g.mu.Lock()
	defer g.mu.Unlock()

	if color, ok := g.seatOf(playerID); ok {
		if color == engine.White {
			return PlayerColorWhite, nil
		}
		return PlayerColorBlack, nil
	}
	if g.state.Players.White.ID == "" {
		g.state.Players.White = ClientPlayer{
			ID:       playerID,
			Color:    string(PlayerColorWhite),
			TimeLeft: g.whiteClock.Tenths(),
		}
		return PlayerColorWhite, nil
	}
	if g.state.Players.Black.ID == "" {
		g.state.Players.Black = ClientPlayer{
			ID:       playerID,
			Color:    string(PlayerColorBlack),
			TimeLeft: g.blackClock.Tenths(),
		}
		return PlayerColorBlack, nil
	}
	return "", ErrGameFull
}

func (g *Game) GetState() GameState {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.state.Players.White.TimeLeft = g.whiteClock.Tenths()
	g.state.Players.Black.TimeLeft = g.blackClock.Tenths()
	return g.snapshot()
}

func (g *Game) IsPlayerInGame(playerID string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	_, ok := g.seatOf(playerID)
	return ok
}

func (g *Game) seatOf(playerID string) (engine.Color, bool) {
	if playerID == "" {
		return engine.White, false
	}
	if g.state.Players.White.ID == playerID {
		return engine.White, true
	}
	if g.state.Players.Black.ID == playerID {
		return engine.Black, true
	}
	return engine.White, false
}

func (g *Game) CanSpectate() bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.canSpectate()
}

func (g *Game) canSpectate() bool {
	return g.state.Players.White.ID == "" || g.state.Players.Black.ID == ""
}

// Render hands draw a copy of the live board together with the current
// hint and threat overlay.
func (g *Game) Render(draw func(b *engine.Board, hints *engine.MoveHint, threats *engine.ThreatDetector)) {
	g.mu.Lock()
	defer g.mu.Unlock()
	draw(g.session.Board(), g.session.Hints(), g.session.ThreatDetector())
}

// requireTurn checks that playerID holds the side to move.
func (g *Game) requireTurn(playerID string) error {
	color, ok := g.seatOf(playerID)
	if !ok {
		return ErrPlayerNotInGame
	}
	if color != g.session.ToMove() {
		return engine.ErrNotYourTurn
	}
	return nil
}

// Select stores and returns the move hints for the piece on square.
func (g *Game) Select(playerID string, square string) ([]LegalMove, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if err := g.requireTurn(playerID); err != nil {
		return nil, err
	}
	sq, err := notation.ParseSquare(square)
	if err != nil {
		return nil, err
	}
	if _, err := g.session.Select(sq); err != nil {
		g.clearSelection()
		return nil, err
	}

	selected := notation.FormatSquare(sq)
	g.state.SelectedSquare = &selected
	g.state.LegalMoves = make([]LegalMove, 0, g.session.Hints().Len())
	for _, h := range g.session.Hints().Hints() {
		g.state.LegalMoves = append(g.state.LegalMoves, LegalMove{
			To:      notation.FormatSquare(h.Square),
			Capture: h.Capture,
		})
	}
	return append([]LegalMove(nil), g.state.LegalMoves...), nil
}

func (g *Game) MakeMove(playerID string, move WSMove) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	log.Debugf("game %s: %s plays %s-%s", g.ID, playerID, move.From, move.To)

	if err := g.requireTurn(playerID); err != nil {
		return err
	}
	from, err := notation.ParseSquare(move.From)
	if err != nil {
		return err
	}
	to, err := notation.ParseSquare(move.To)
	if err != nil {
		return err
	}

	before := g.session.Board()
	mover := g.session.ToMove()
	if err := g.session.Move(from, to); err != nil {
		return err
	}

	g.stopClock(mover)
	g.startClock(mover.Opponent())

	ply := makePly(before, from, to)
	g.state.MoveHistory = append(g.state.MoveHistory, ply)
	g.state.LastMove = &SimpleMove{From: ply.From, To: ply.To}
	g.clearSelection()
	g.refreshState()

	switch {
	case g.state.IsCheck:
		g.state.Sound = "check"
	case ply.CapturedPiece != nil:
		g.state.Sound = "capture"
	default:
		g.state.Sound = "move"
	}

	g.broadcastState(g.snapshot())
	return nil
}

// makePly records a move that has already been validated against before.
func makePly(before *engine.Board, from, to engine.Square) Ply {
	piece, _ := before.Get(from)
	ply := Ply{
		Color: piece.Color,
		Piece: piece,
		From:  notation.FormatSquare(from),
		To:    notation.FormatSquare(to),
	}

	capturedAt := to
	if jumped, ok := before.JumpedSquare(from, to); ok {
		capturedAt = jumped
	}
	if victim, ok := before.Get(capturedAt); ok {
		ply.CapturedPiece = &victim
		ply.CapturedAt = notation.FormatSquare(capturedAt)
	}
	ply.Notation = notation.Move(piece, from, to, ply.CapturedPiece != nil)
	return ply
}

// Undo takes back steps moves. Either player may ask for it.
func (g *Game) Undo(playerID string, steps int) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if _, ok := g.seatOf(playerID); !ok {
		return ErrPlayerNotInGame
	}
	if err := g.session.Undo(steps); err != nil {
		return err
	}
	log.Infof("game %s: %s undid %d moves", g.ID, playerID, steps)

	g.state.MoveHistory = g.state.MoveHistory[:len(g.state.MoveHistory)-steps]
	g.state.LastMove = nil
	if n := len(g.state.MoveHistory); n > 0 {
		last := g.state.MoveHistory[n-1]
		g.state.LastMove = &SimpleMove{From: last.From, To: last.To}
	}
	g.stopClock(engine.White)
	g.stopClock(engine.Black)
	if g.session.MoveCount() > 0 {
		g.startClock(g.session.ToMove())
	}
	g.state.Sound = ""
	g.clearSelection()
	g.refreshState()

	g.broadcastState(g.snapshot())
	return nil
}

func (g *Game) clock(c engine.Color) *Clock {
	if c == engine.White {
		return g.whiteClock
	}
	return g.blackClock
}

func (g *Game) startClock(c engine.Color) { g.clock(c).Start() }

func (g *Game) stopClock(c engine.Color) { g.clock(c).Stop() }

// RegisterConnection attaches client to the game and queues the current state
// for it. A player has at most one client; a second one is refused.
func (g *Game) RegisterConnection(playerID string, client *Client) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if _, seated := g.seatOf(playerID); !seated && !g.canSpectate() {
		return ErrNotAuthorized
	}

	g.connections.mu.Lock()
	if _, exists := g.connections.connections[playerID]; exists {
		g.connections.mu.Unlock()
		return ErrConnectionExists
	}
	g.connections.connections[playerID] = client
	g.connections.mu.Unlock()
	log.Infof("registered connection for player %s in game %s", playerID, g.ID)

	g.broadcastState(g.snapshot())
	return nil
}

// UnregisterConnection drops playerID's client, but only if it is still
// client; a stale reader shutting down must not remove its replacement.
func (g *Game) UnregisterConnection(playerID string, client *Client) {
	g.connections.mu.Lock()
	defer g.connections.mu.Unlock()

	if current, exists := g.connections.connections[playerID]; exists && current == client {
		log.Debugf("unregistering connection for player %s", playerID)
		delete(g.connections.connections, playerID)
	}
}

func (g *Game) ConnectionCount() int {
	g.connections.mu.RLock()
	defer g.connections.mu.RUnlock()
	return len(g.connections.connections)
}

// broadcastState queues state on every client. Callers hold g.mu, so clients
// see states in the order the game produced them.
func (g *Game) broadcastState(state GameState) {
	msg, err := ws.NewMessage(ws.MessageTypeGameState, state)
	if err != nil {
		log.Errorf("failed to marshal state of game %s: %v", g.ID, err)
		return
	}

	g.connections.mu.Lock()
	defer g.connections.mu.Unlock()
	for playerID, client := range g.connections.connections {
		if !client.Send(msg) {
			log.Warnf("dropping connection of player %s in game %s", playerID, g.ID)
			delete(g.connections.connections, playerID)
		}
	}
}
