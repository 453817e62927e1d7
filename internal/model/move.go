package model

// Move is a request to move the piece on From to To. Promotion is only
// read when a pawn reaches its last rank.
type Move struct {
	From      Square    `json:"from"`
	To        Square    `json:"to"`
	Promotion PieceType `json:"promotion,omitempty"`
}

type Special string

const (
	SpecialNone       Special = ""
	SpecialCastle     Special = "castle"
	SpecialEnPassant  Special = "en-passant"
	SpecialDoubleStep Special = "double-pawn-step"
	SpecialPromotion  Special = "promotion"
)

type CastleRookMove struct {
	From Square `json:"from"`
	To   Square `json:"to"`
}

// MoveRecord is one executed move plus the state it was played from.
type MoveRecord struct {
	From           Square          `json:"from"`
	To             Square          `json:"to"`
	Piece          Piece           `json:"piece"`
	CapturedPiece  *Piece          `json:"capturedPiece"`
	Special        Special         `json:"special,omitempty"`
	Promotion      PieceType       `json:"promotion,omitempty"`
	CastleRookMove *CastleRookMove `json:"castleRookMove,omitempty"`
	Notation       string          `json:"notation"`
	Before         GameState       `json:"-"`
}

// IsCapture reports whether the move removed an opposing piece.
func (r MoveRecord) IsCapture() bool {
	return r.CapturedPiece != nil
}

// Clone returns a deep copy of r.
func (r MoveRecord) Clone() MoveRecord {
	if r.CapturedPiece != nil {
		captured := *r.CapturedPiece
		r.CapturedPiece = &captured
	}
	if r.CastleRookMove != nil {
		rook := *r.CastleRookMove
		r.CastleRookMove = &rook
	}
	r.Before = r.Before.Clone()
	return r
}
