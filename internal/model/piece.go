package model

import "fmt"

type Color string

const (
	White Color = "white"
	Black Color = "black"
)

// Opponent returns the other side.
func (c Color) Opponent() Color {
	if c == White {
		return Black
	}
	return White
}

// Title is the capitalized color name used in status messages.
func (c Color) Title() string {
	if c == White {
		return "White"
	}
	return "Black"
}

// Valid reports whether c is White or Black.
func (c Color) Valid() bool {
	return c == White || c == Black
}

// forward is the rank direction pawns of this color advance in.
func (c Color) forward() int {
	if c == White {
		return 1
	}
	return -1
}

// homeRank is the rank the king and rooks of this color start on.
func (c Color) homeRank() int {
	if c == White {
		return 0
	}
	return 7
}

// pawnRank is the rank pawns of this color start on.
func (c Color) pawnRank() int {
	if c == White {
		return 1
	}
	return 6
}

// lastRank is the rank on which pawns of this color promote.
func (c Color) lastRank() int {
	if c == White {
		return 7
	}
	return 0
}

type PieceType string

const (
	King   PieceType = "king"
	Queen  PieceType = "queen"
	Rook   PieceType = "rook"
	Bishop PieceType = "bishop"
	Knight PieceType = "knight"
	Pawn   PieceType = "pawn"
)

func (p PieceType) getPieceNotation() string {
	switch p {
	case King:
		return "K"
	case Queen:
		return "Q"
	case Rook:
		return "R"
	case Bishop:
		return "B"
	case Knight:
		return "N"
	}
	return ""
}

// ParsePieceType accepts full names ("knight") and letters ("n", "N").
func ParsePieceType(s string) (PieceType, error) {
	switch s {
	case "king", "k", "K":
		return King, nil
	case "queen", "q", "Q":
		return Queen, nil
	case "rook", "r", "R":
		return Rook, nil
	case "bishop", "b", "B":
		return Bishop, nil
	case "knight", "n", "N":
		return Knight, nil
	case "pawn", "p", "P":
		return Pawn, nil
	}
	return "", fmt.Errorf("unknown piece type %q: %w", s, ErrInvalidPiece)
}

// CanPromoteTo reports whether a pawn may become a piece of type p.
func (p PieceType) CanPromoteTo() bool {
	return p == Queen || p == Rook || p == Bishop || p == Knight
}

// Piece is an immutable value. The zero Piece marks an empty square.
type Piece struct {
	Type  PieceType `json:"type"`
	Color Color     `json:"color"`
}

func (p Piece) IsZero() bool {
	return p.Type == ""
}

// String renders the piece as its FEN letter: upper case for white.
func (p Piece) String() string {
	if p.IsZero() {
		return "."
	}
	letter := p.Type.getPieceNotation()
	if p.Type == Pawn {
		letter = "P"
	}
	if p.Color == Black {
		return string(letter[0] + ('a' - 'A'))
	}
	return letter
}

// Symbol renders the piece as a unicode chess glyph.
func (p Piece) Symbol() string {
	if p.IsZero() {
		return " "
	}
	white := map[PieceType]string{
		King: "♔", Queen: "♕", Rook: "♖", Bishop: "♗", Knight: "♘", Pawn: "♙",
	}
	black := map[PieceType]string{
		King: "♚", Queen: "♛", Rook: "♜", Bishop: "♝", Knight: "♞", Pawn: "♟",
	}
	if p.Color == White {
		return white[p.Type]
	}
	return black[p.Type]
}
