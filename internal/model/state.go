package model

// ColorFlags holds one boolean per side.
type ColorFlags struct {
	White bool `json:"white"`
	Black bool `json:"black"`
}

func (f ColorFlags) Get(c Color) bool {
	if c == White {
		return f.White
	}
	return f.Black
}

func (f *ColorFlags) Set(c Color, v bool) {
	if c == White {
		f.White = v
	} else {
		f.Black = v
	}
}

// RookFlags records, per rook starting corner, whether the rook there has
// moved or been captured. Either way castling on that side is gone.
type RookFlags struct {
	A1 bool `json:"a1"`
	H1 bool `json:"h1"`
	A8 bool `json:"a8"`
	H8 bool `json:"h8"`
}

func (f *RookFlags) flag(sq Square) *bool {
	switch sq {
	case Square{File: 0, Rank: 0}:
		return &f.A1
	case Square{File: 7, Rank: 0}:
		return &f.H1
	case Square{File: 0, Rank: 7}:
		return &f.A8
	case Square{File: 7, Rank: 7}:
		return &f.H8
	}
	return nil
}

// Get reports the flag for a corner square; other squares read as moved.
func (f RookFlags) Get(sq Square) bool {
	if p := f.flag(sq); p != nil {
		return *p
	}
	return true
}

// Mark sets the flag for sq if it is a rook corner.
func (f *RookFlags) Mark(sq Square) {
	if p := f.flag(sq); p != nil {
		*p = true
	}
}

// DoubleStep is the most recent two-square pawn advance.
type DoubleStep struct {
	To    Square `json:"to"`
	Color Color  `json:"color"`
}

// GameMeta is the state that cannot be recovered from piece placement.
type GameMeta struct {
	KingMoved  ColorFlags  `json:"kingMoved"`
	RookMoved  RookFlags   `json:"rookMoved"`
	LastDouble *DoubleStep `json:"lastDouble"`
	// Clocks are carried for FEN export only.
	HalfmoveClock int `json:"halfmoveClock"`
	FullMove      int `json:"fullMove"`
}

func (m GameMeta) Clone() GameMeta {
	if m.LastDouble != nil {
		ld := *m.LastDouble
		m.LastDouble = &ld
	}
	return m
}

type Outcome string

const (
	InPlay    Outcome = ""
	Check     Outcome = "check"
	Checkmate Outcome = "checkmate"
	Stalemate Outcome = "stalemate"
)

// GameState is everything needed to continue a game from this point. The
// outcome always describes the side to move.
type GameState struct {
	Board   Board    `json:"-"`
	Meta    GameMeta `json:"meta"`
	Turn    Color    `json:"turn"`
	Outcome Outcome  `json:"outcome"`
}

// NewGameState returns the standard starting position.
func NewGameState() GameState {
	return GameState{
		Board: newBoard(),
		Meta:  GameMeta{FullMove: 1},
		Turn:  White,
	}
}

// Clone returns a deep copy that shares nothing with s.
func (s GameState) Clone() GameState {
	s.Board = s.Board.Clone()
	s.Meta = s.Meta.Clone()
	return s
}

func (s GameState) GameOver() bool {
	return s.Outcome == Checkmate || s.Outcome == Stalemate
}

// Message is the status line shown to players.
func (s GameState) Message() string {
	switch s.Outcome {
	case Checkmate:
		return s.Turn.Title() + " is checkmated."
	case Check:
		return s.Turn.Title() + " is in check."
	case Stalemate:
		return s.Turn.Title() + " is stalemated. The game is drawn."
	}
	return ""
}

// refreshOutcome recomputes the outcome for the side to move.
func (s *GameState) refreshOutcome() {
	inCheck := InCheck(&s.Board, s.Turn)
	hasMoves := s.hasLegalMoves(s.Turn)
	switch {
	case inCheck && !hasMoves:
		s.Outcome = Checkmate
	case inCheck:
		s.Outcome = Check
	case !hasMoves:
		s.Outcome = Stalemate
	default:
		s.Outcome = InPlay
	}
}
