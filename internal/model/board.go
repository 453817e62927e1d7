package model

import "strings"

// Board is an 8x8 grid indexed [rank][file]. It is a plain value: copying
// a Board copies every square. No rule is enforced at this level.
type Board [8][8]Piece

var backRank = [8]PieceType{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}

func newBoard() Board {
	var board Board
	for file := 0; file < 8; file++ {
		board[White.homeRank()][file] = Piece{Type: backRank[file], Color: White}
		board[White.pawnRank()][file] = Piece{Type: Pawn, Color: White}
		board[Black.pawnRank()][file] = Piece{Type: Pawn, Color: Black}
		board[Black.homeRank()][file] = Piece{Type: backRank[file], Color: Black}
	}
	return board
}

// Get returns the piece on sq and whether the square is occupied.
func (b *Board) Get(sq Square) (Piece, bool) {
	if !sq.Valid() {
		return Piece{}, false
	}
	p := b[sq.Rank][sq.File]
	return p, !p.IsZero()
}

func (b *Board) Set(sq Square, p Piece) {
	b[sq.Rank][sq.File] = p
}

func (b *Board) Clear(sq Square) {
	b[sq.Rank][sq.File] = Piece{}
}

// Clone returns an independent copy of the board.
func (b *Board) Clone() Board {
	return *b
}

func (b *Board) Occupied(sq Square) bool {
	_, ok := b.Get(sq)
	return ok
}

// IsOpponent reports whether sq holds a piece of the side opposing c.
func (b *Board) IsOpponent(sq Square, c Color) bool {
	p, ok := b.Get(sq)
	return ok && p.Color != c
}

// KingSquare locates the king of color c.
func (b *Board) KingSquare(c Color) (Square, bool) {
	for rank := 0; rank < 8; rank++ {
		for file := 0; file < 8; file++ {
			if p := b[rank][file]; p.Type == King && p.Color == c {
				return Square{File: file, Rank: rank}, true
			}
		}
	}
	return Square{}, false
}

// Squares returns every occupied square holding a piece of color c, a1
// first, then along the rank.
func (b *Board) Squares(c Color) []Square {
	var squares []Square
	for rank := 0; rank < 8; rank++ {
		for file := 0; file < 8; file++ {
			if p := b[rank][file]; !p.IsZero() && p.Color == c {
				squares = append(squares, Square{File: file, Rank: rank})
			}
		}
	}
	return squares
}

// Rows returns the board top-down from White's perspective (rank 8
// first) with nil for empty squares, the layout clients render from.
func (b *Board) Rows() [][]*Piece {
	rows := make([][]*Piece, 0, 8)
	for rank := 7; rank >= 0; rank-- {
		row := make([]*Piece, 8)
		for file := 0; file < 8; file++ {
			if p := b[rank][file]; !p.IsZero() {
				row[file] = &p
			}
		}
		rows = append(rows, row)
	}
	return rows
}

// String draws the board as eight lines of FEN letters, rank 8 first.
func (b *Board) String() string {
	var sb strings.Builder
	for rank := 7; rank >= 0; rank-- {
		for file := 0; file < 8; file++ {
			sb.WriteString(b[rank][file].String())
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
