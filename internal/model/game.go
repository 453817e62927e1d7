package model

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"slices"
	"sync"
	"time"

	"go.uber.org/zap"
)

// DefaultOpponentDelay is how long the opponent waits before replying.
const DefaultOpponentDelay = 300 * time.Millisecond

// Scheduler runs task once after delay on another goroutine. The returned
// func cancels the task if it has not started yet.
type Scheduler func(delay time.Duration, task func()) (cancel func() bool)

func afterFunc(delay time.Duration, task func()) func() bool {
	t := time.AfterFunc(delay, task)
	return t.Stop
}

// errDiscarded suppresses notification for an opponent task that found
// nothing to do.
var errDiscarded = errors.New("opponent move discarded")

type Phase string

const (
	PhaseAwaitingSelection Phase = "awaitingSelection"
	PhasePieceSelected     Phase = "pieceSelected"
	PhasePromotionChoice   Phase = "promotionChoice"
	PhaseGameOver          Phase = "gameOver"
)

// phase is the interaction state; exactly one of the types below.
type phase interface {
	name() Phase
}

type awaitingSelection struct{}

type pieceSelected struct {
	from  Square
	moves []Square
}

type promotionChoice struct {
	from  Square
	to    Square
	color Color
}

type gameOver struct{}

func (awaitingSelection) name() Phase { return PhaseAwaitingSelection }
func (pieceSelected) name() Phase     { return PhasePieceSelected }
func (promotionChoice) name() Phase   { return PhasePromotionChoice }
func (gameOver) name() Phase          { return PhaseGameOver }

type PendingPromotion struct {
	Color Color  `json:"color"`
	From  Square `json:"from"`
	To    Square `json:"to"`
}

// View is a read-only snapshot of a game for rendering.
type View struct {
	ID               string            `json:"id"`
	Board            [][]*Piece        `json:"board"`
	Phase            Phase             `json:"phase"`
	Turn             Color             `json:"toMove"`
	SelectedSquare   *Square           `json:"selectedSquare"`
	LegalMoves       []Square          `json:"legalMoves"`
	IsCheck          bool              `json:"isCheck"`
	GameOver         bool              `json:"gameOver"`
	Outcome          Outcome           `json:"outcome"`
	Message          string            `json:"message"`
	MoveHistory      []MoveRecord      `json:"moveHistory"`
	PendingPromotion *PendingPromotion `json:"pendingPromotion"`
	OpponentEnabled  bool              `json:"opponentEnabled"`
	OpponentColor    Color             `json:"opponentColor"`
	LastMove         *Move             `json:"lastMove"`
	FEN              string            `json:"fen"`
}

type subscriber struct {
	id int
	fn func(View)
}

type notification struct {
	view View
	subs []subscriber
}

// Game is one interactive session: selection and promotion handling on
// top of an Engine, plus the optional automated opponent. It is safe for
// concurrent use.
type Game struct {
	ID string

	mu     sync.Mutex
	engine *Engine
	start  GameState
	phase  phase

	opponentEnabled bool
	opponentColor   Color
	opponentDelay   time.Duration
	schedule        Scheduler
	cancelPending   func() bool
	generation      uint64
	rng             RandSource

	subscribers []subscriber
	nextSubID   int
	outbox      []notification
	delivering  bool

	log *zap.Logger
}

type Option func(*Game)

func WithLogger(l *zap.Logger) Option {
	return func(g *Game) { g.log = l }
}

// WithStartState makes the game begin, and reset to, s.
func WithStartState(s GameState) Option {
	return func(g *Game) { g.start = s.Clone() }
}

func WithOpponent(enabled bool) Option {
	return func(g *Game) { g.opponentEnabled = enabled }
}

func WithOpponentColor(c Color) Option {
	return func(g *Game) { g.opponentColor = c }
}

func WithOpponentDelay(d time.Duration) Option {
	return func(g *Game) { g.opponentDelay = d }
}

func WithScheduler(s Scheduler) Option {
	return func(g *Game) { g.schedule = s }
}

func WithRand(r RandSource) Option {
	return func(g *Game) { g.rng = r }
}

func NewGame(id string, opts ...Option) *Game {
	g := &Game{
		ID:            id,
		start:         NewGameState(),
		opponentColor: Black,
		opponentDelay: DefaultOpponentDelay,
		schedule:      afterFunc,
		rng:           rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
		log:           zap.NewNop(),
	}
	for _, opt := range opts {
		opt(g)
	}
	if !g.opponentColor.Valid() {
		g.opponentColor = Black
	}
	g.log = g.log.With(zap.String("gameID", id))
	g.engine = NewEngineFromState(g.start)
	g.phase = g.restingPhase()
	g.scheduleOpponent()
	return g
}

// Subscribe registers fn to receive a View after every change, including
// moves made by the opponent. Callbacks run outside the game lock, one at a
// time and in the order the changes happened.
func (g *Game) Subscribe(fn func(View)) (unsubscribe func()) {
	g.mu.Lock()
	defer g.mu.Unlock()
	id := g.nextSubID
	g.nextSubID++
	g.subscribers = append(g.subscribers, subscriber{id: id, fn: fn})
	return func() {
		g.mu.Lock()
		defer g.mu.Unlock()
		g.subscribers = slices.DeleteFunc(g.subscribers, func(s subscriber) bool { return s.id == id })
	}
}

// mutate runs fn under the lock and notifies subscribers if it succeeded.
func (g *Game) mutate(fn func() error) error {
	g.mu.Lock()
	err := fn()
	if err == nil && len(g.subscribers) > 0 {
		g.outbox = append(g.outbox, notification{view: g.view(), subs: slices.Clone(g.subscribers)})
	}
	drain := !g.delivering && len(g.outbox) > 0
	if drain {
		g.delivering = true
	}
	g.mu.Unlock()
	if drain {
		g.deliver()
	}
	return err
}

// deliver runs queued callbacks in the order the changes were made. One
// goroutine delivers at a time; changes made meanwhile, including ones
// made from inside a callback, queue behind it.
func (g *Game) deliver() {
	for {
		g.mu.Lock()
		batch := g.outbox
		g.outbox = nil
		if len(batch) == 0 {
			g.delivering = false
			g.mu.Unlock()
			return
		}
		g.mu.Unlock()
		for _, n := range batch {
			for _, s := range n.subs {
				s.fn(n.view)
			}
		}
	}
}

// SelectSquare handles a click on sq.
func (g *Game) SelectSquare(sq Square) error {
	return g.mutate(func() error { return g.selectSquare(sq) })
}

func (g *Game) selectSquare(sq Square) error {
	if !sq.Valid() {
		return fmt.Errorf("%d,%d: %w", sq.File, sq.Rank, ErrInvalidSquare)
	}
	switch ph := g.phase.(type) {
	case gameOver:
		return ErrGameOver
	case promotionChoice:
		return ErrPromotionPending
	case pieceSelected:
		if g.opponentToMove() {
			return ErrOpponentTurn
		}
		if sq == ph.from {
			g.phase = awaitingSelection{}
			return nil
		}
		if slices.Contains(ph.moves, sq) {
			return g.moveSelected(ph.from, sq)
		}
		if g.ownsPiece(sq) {
			g.phase = pieceSelected{from: sq, moves: g.engine.LegalMoves(sq)}
			return nil
		}
		return fmt.Errorf("%s%s: %w", ph.from, sq, ErrIllegalMove)
	default:
		if g.opponentToMove() {
			return ErrOpponentTurn
		}
		if !g.ownsPiece(sq) {
			return ErrNoSelection
		}
		g.phase = pieceSelected{from: sq, moves: g.engine.LegalMoves(sq)}
		return nil
	}
}

func (g *Game) moveSelected(from, to Square) error {
	m := Move{From: from, To: to}
	if NeedsPromotion(&g.engine.state, m) {
		g.phase = promotionChoice{from: from, to: to, color: g.engine.Turn()}
		g.log.Debug("awaiting promotion choice", zap.Stringer("from", from), zap.Stringer("to", to))
		return nil
	}
	return g.commit(m)
}

// ChoosePromotion completes a pending pawn promotion.
func (g *Game) ChoosePromotion(pt PieceType) error {
	return g.mutate(func() error {
		ph, ok := g.phase.(promotionChoice)
		if !ok {
			return ErrNotPromoting
		}
		if !pt.CanPromoteTo() {
			return fmt.Errorf("%q: %w", pt, ErrInvalidPromotion)
		}
		return g.commit(Move{From: ph.from, To: ph.to, Promotion: pt})
	})
}

func (g *Game) commit(m Move) error {
	record, err := g.engine.Move(m)
	if err != nil {
		return err
	}
	g.cancelOpponent()
	g.phase = g.restingPhase()
	g.log.Debug("move played",
		zap.String("notation", record.Notation),
		zap.String("color", string(record.Piece.Color)),
	)
	if g.engine.GameOver() {
		g.log.Info("game over", zap.String("message", g.engine.state.Message()))
	}
	g.scheduleOpponent()
	return nil
}

// Undo takes back the last move. With the opponent enabled it keeps going
// until the human side is to move again. A pending promotion is cancelled
// instead, since that move has not been played yet.
func (g *Game) Undo() error {
	return g.mutate(func() error {
		if _, ok := g.phase.(promotionChoice); ok {
			g.phase = awaitingSelection{}
			return nil
		}
		if _, err := g.engine.Undo(); err != nil {
			return err
		}
		g.cancelOpponent()
		for g.opponentToMove() && g.engine.history.Len() > 0 {
			if _, err := g.engine.Undo(); err != nil {
				return err
			}
		}
		g.phase = g.restingPhase()
		g.scheduleOpponent()
		return nil
	})
}

// Reset starts over from the game's starting position.
func (g *Game) Reset() {
	_ = g.mutate(func() error {
		g.cancelOpponent()
		g.engine = NewEngineFromState(g.start)
		g.phase = g.restingPhase()
		g.log.Debug("game reset")
		g.scheduleOpponent()
		return nil
	})
}

// SetOpponentEnabled turns the automated opponent on or off. Turning it
// on while the opponent is to move schedules its reply.
func (g *Game) SetOpponentEnabled(enabled bool) {
	_ = g.mutate(func() error {
		g.opponentEnabled = enabled
		g.cancelOpponent()
		if _, ok := g.phase.(pieceSelected); ok && g.opponentToMove() {
			g.phase = awaitingSelection{}
		}
		g.scheduleOpponent()
		return nil
	})
}

// Close cancels any pending opponent move. The game stays readable.
func (g *Game) Close() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.opponentEnabled = false
	g.cancelOpponent()
}

func (g *Game) opponentToMove() bool {
	return g.opponentEnabled && g.engine.Turn() == g.opponentColor
}

func (g *Game) ownsPiece(sq Square) bool {
	p, ok := g.engine.state.Board.Get(sq)
	return ok && p.Color == g.engine.Turn()
}

func (g *Game) restingPhase() phase {
	if g.engine.GameOver() {
		return gameOver{}
	}
	return awaitingSelection{}
}

// cancelOpponent invalidates any scheduled opponent move. A task that
// already fired re-checks the generation and discards itself.
func (g *Game) cancelOpponent() {
	g.generation++
	if g.cancelPending != nil {
		g.cancelPending()
		g.cancelPending = nil
	}
}

func (g *Game) scheduleOpponent() {
	if !g.opponentToMove() || g.engine.GameOver() {
		return
	}
	if _, ok := g.phase.(promotionChoice); ok {
		return
	}
	generation := g.generation
	g.cancelPending = g.schedule(g.opponentDelay, func() { g.playOpponent(generation) })
}

func (g *Game) playOpponent(generation uint64) {
	_ = g.mutate(func() error {
		if generation != g.generation {
			g.log.Debug("discarding stale opponent move")
			return errDiscarded
		}
		g.cancelPending = nil
		if !g.opponentToMove() || g.engine.GameOver() {
			return errDiscarded
		}
		m, ok := ChooseMove(&g.engine.state, g.opponentColor, g.rng)
		if !ok {
			g.log.Warn("opponent has no move", zap.Error(ErrNoLegalMove))
			return ErrNoLegalMove
		}
		g.phase = awaitingSelection{}
		return g.commit(m)
	})
}

// View returns a snapshot of the game for rendering.
func (g *Game) View() View {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.view()
}

func (g *Game) view() View {
	s := &g.engine.state
	v := View{
		ID:              g.ID,
		Board:           s.Board.Rows(),
		Phase:           g.phase.name(),
		Turn:            s.Turn,
		LegalMoves:      make([]Square, 0),
		IsCheck:         s.Outcome == Check || s.Outcome == Checkmate,
		GameOver:        s.GameOver(),
		Outcome:         s.Outcome,
		Message:         s.Message(),
		MoveHistory:     g.engine.History(),
		OpponentEnabled: g.opponentEnabled,
		OpponentColor:   g.opponentColor,
		FEN:             s.FEN(),
	}
	switch ph := g.phase.(type) {
	case pieceSelected:
		from := ph.from
		v.SelectedSquare = &from
		v.LegalMoves = append(v.LegalMoves, ph.moves...)
	case promotionChoice:
		v.PendingPromotion = &PendingPromotion{Color: ph.color, From: ph.from, To: ph.to}
	}
	if last, ok := g.engine.LastMove(); ok {
		v.LastMove = &Move{From: last.From, To: last.To, Promotion: last.Promotion}
	}
	return v
}

// LegalMoves lists the legal destinations from sq in the current position.
func (g *Game) LegalMoves(sq Square) []Square {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.engine.LegalMoves(sq)
}

// State returns a copy of the current position.
func (g *Game) State() GameState {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.engine.State()
}
