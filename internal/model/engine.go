package model

// Engine owns a game's live state and its history. It is not safe for
// concurrent use; Game serializes access to it.
type Engine struct {
	state   GameState
	history History
}

func NewEngine() *Engine {
	return NewEngineFromState(NewGameState())
}

// NewEngineFromState starts from an arbitrary position, for example one
// parsed from FEN.
func NewEngineFromState(s GameState) *Engine {
	s = s.Clone()
	s.refreshOutcome()
	return &Engine{state: s}
}

// State returns a copy of the current state.
func (e *Engine) State() GameState {
	return e.state.Clone()
}

func (e *Engine) Turn() Color {
	return e.state.Turn
}

func (e *Engine) GameOver() bool {
	return e.state.GameOver()
}

func (e *Engine) LegalMoves(from Square) []Square {
	return LegalMoves(&e.state, from)
}

// Move executes m against the live state and records it.
func (e *Engine) Move(m Move) (MoveRecord, error) {
	next, record, err := ApplyMove(e.state, m)
	if err != nil {
		return MoveRecord{}, err
	}
	e.state = next
	e.history.Push(record)
	return record, nil
}

// Undo restores the state from before the most recent move.
func (e *Engine) Undo() (MoveRecord, error) {
	last, ok := e.history.Pop()
	if !ok {
		return MoveRecord{}, ErrEmptyHistory
	}
	e.state = last.Before.Clone()
	return last, nil
}

func (e *Engine) History() []MoveRecord {
	return e.history.Records()
}

func (e *Engine) LastMove() (MoveRecord, bool) {
	return e.history.Last()
}
