package model

type direction struct {
	df, dr int
}

var (
	rookDirs   = []direction{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}
	bishopDirs = []direction{{1, 1}, {1, -1}, {-1, 1}, {-1, -1}}
	queenDirs  = append(append([]direction{}, bishopDirs...), rookDirs...)
	knightDirs = []direction{{2, 1}, {2, -1}, {-2, 1}, {-2, -1}, {1, 2}, {1, -2}, {-1, 2}, {-1, -2}}
	kingDirs   = queenDirs
)

// PseudoMoves lists the destinations the piece on from can reach by its
// movement pattern, without regard to the safety of its own king. Castling
// is not included. It returns nil for an empty square.
func PseudoMoves(s *GameState, from Square) []Square {
	piece, ok := s.Board.Get(from)
	if !ok {
		return nil
	}
	switch piece.Type {
	case Pawn:
		return getPseudoPawnMoves(s, from, piece.Color)
	case Knight:
		return getSteppingMoves(&s.Board, from, piece.Color, knightDirs)
	case Bishop:
		return getSlidingMoves(&s.Board, from, piece.Color, bishopDirs)
	case Rook:
		return getSlidingMoves(&s.Board, from, piece.Color, rookDirs)
	case Queen:
		return getSlidingMoves(&s.Board, from, piece.Color, queenDirs)
	case King:
		return getSteppingMoves(&s.Board, from, piece.Color, kingDirs)
	}
	return nil
}

func getPseudoPawnMoves(s *GameState, from Square, color Color) []Square {
	var moves []Square
	dir := color.forward()

	one := from.offset(0, dir)
	if one.Valid() && !s.Board.Occupied(one) {
		moves = append(moves, one)
		two := from.offset(0, 2*dir)
		if from.Rank == color.pawnRank() && !s.Board.Occupied(two) {
			moves = append(moves, two)
		}
	}

	for _, df := range []int{-1, 1} {
		target := from.offset(df, dir)
		if target.Valid() && s.Board.IsOpponent(target, color) {
			moves = append(moves, target)
		}
	}

	if target, ok := enPassantTarget(s, from, color); ok {
		moves = append(moves, target)
	}
	return moves
}

// enPassantTarget returns the square a pawn of color on from may capture
// en passant into. Only the opponent's double step made on the previous
// move qualifies, and only when it landed beside from.
func enPassantTarget(s *GameState, from Square, color Color) (Square, bool) {
	last := s.Meta.LastDouble
	if last == nil || last.Color == color {
		return Square{}, false
	}
	if last.To.Rank != from.Rank || abs(last.To.File-from.File) != 1 {
		return Square{}, false
	}
	target := Square{File: last.To.File, Rank: from.Rank + color.forward()}
	if !target.Valid() || s.Board.Occupied(target) {
		return Square{}, false
	}
	return target, true
}

func getSteppingMoves(b *Board, from Square, color Color, dirs []direction) []Square {
	var moves []Square
	for _, d := range dirs {
		target := from.offset(d.df, d.dr)
		if !target.Valid() {
			continue
		}
		if p, ok := b.Get(target); !ok || p.Color != color {
			moves = append(moves, target)
		}
	}
	return moves
}

func getSlidingMoves(b *Board, from Square, color Color, dirs []direction) []Square {
	var moves []Square
	for _, d := range dirs {
		target := from.offset(d.df, d.dr)
		for target.Valid() {
			p, ok := b.Get(target)
			if !ok {
				moves = append(moves, target)
			} else {
				if p.Color != color {
					moves = append(moves, target)
				}
				break
			}
			target = target.offset(d.df, d.dr)
		}
	}
	return moves
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
