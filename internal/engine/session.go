package engine

import "fmt"

// Session carries all per-game turn state explicitly. It is not safe for
// concurrent use; model.Game serialises access for the network path.
type Session struct {
	board     *Board
	toMove    Color
	moveCount int
	history   *History
	hints     *MoveHint
	threats   *ThreatDetector
}

func NewSession(mode GameMode) *Session {
	return NewSessionFromBoard(NewBoard(mode), White)
}

// NewSessionFromBoard starts a session on an arbitrary position. The board is
// copied.
func NewSessionFromBoard(b *Board, toMove Color) *Session {
	s := &Session{
		board:   b.Clone(),
		toMove:  toMove,
		hints:   NewMoveHint(),
		threats: NewThreatDetector(),
	}
	s.history = NewHistory(s.snapshot())
	s.threats.Recompute(s.board, s.toMove)
	return s
}

func (s *Session) snapshot() Snapshot {
	return Snapshot{Board: *s.board, ToMove: s.toMove, MoveCount: s.moveCount}
}

func (s *Session) Mode() GameMode { return s.board.Mode }

func (s *Session) ToMove() Color { return s.toMove }

func (s *Session) MoveCount() int { return s.moveCount }

func (s *Session) HistoryDepth() int { return s.history.Depth() }

// Board returns a copy of the live board.
func (s *Session) Board() *Board { return s.board.Clone() }

func (s *Session) Hints() *MoveHint { return s.hints }

func (s *Session) Threats() ThreatState { return s.threats.State() }

func (s *Session) ThreatDetector() *ThreatDetector {
	return s.threats
}

func (s *Session) pieceToMove(sq Square) (Piece, error) {
	if !sq.InBounds() {
		return Piece{}, fmt.Errorf("%w: %v", ErrOutOfBounds, sq)
	}
	p, ok := s.board.Get(sq)
	if !ok {
		return Piece{}, ErrEmptySquare
	}
	if p.Color != s.toMove {
		return Piece{}, ErrNotYourTurn
	}
	return p, nil
}

// Select computes and stores hints for the piece on sq.
func (s *Session) Select(sq Square) ([]Square, error) {
	p, err := s.pieceToMove(sq)
	if err != nil {
		return nil, err
	}
	moves := p.Destinations(s.board, sq)
	s.hints.Set(s.board, moves)
	return moves, nil
}

func (s *Session) ClearSelection() {
	s.hints.Clear()
}

// Move validates and applies start->end for the side to move, then hands the
// turn over and rescans threats for the new side.
func (s *Session) Move(start, end Square) error {
	if _, err := s.pieceToMove(start); err != nil {
		return err
	}
	if !end.InBounds() {
		return fmt.Errorf("%w: %v", ErrOutOfBounds, end)
	}
	if !s.board.MovePiece(start, end) {
		return ErrIllegalMove
	}
	s.toMove = s.toMove.Opponent()
	s.moveCount++
	s.history.Save(s.snapshot())
	s.hints.Clear()
	s.threats.Recompute(s.board, s.toMove)
	return nil
}

// Undo rewinds steps moves, restoring the side to move and move counter that
// were current at the time.
func (s *Session) Undo(steps int) error {
	snap, err := s.history.Undo(steps)
	if err != nil {
		return err
	}
	board := snap.Board
	s.board = &board
	s.toMove = snap.ToMove
	s.moveCount = snap.MoveCount
	s.hints.Clear()
	s.threats.Recompute(s.board, s.toMove)
	return nil
}
