package model

// IsAttacked reports whether any piece of color by attacks target. It
// scans the board statically and does not depend on whose turn it is or
// on the move generator.
func IsAttacked(b *Board, by Color, target Square) bool {
	for _, from := range b.Squares(by) {
		p, _ := b.Get(from)
		if attacks(b, p, from, target) {
			return true
		}
	}
	return false
}

func attacks(b *Board, p Piece, from, target Square) bool {
	df, dr := target.File-from.File, target.Rank-from.Rank
	switch p.Type {
	case Pawn:
		return dr == p.Color.forward() && abs(df) == 1
	case Knight:
		return (abs(df) == 1 && abs(dr) == 2) || (abs(df) == 2 && abs(dr) == 1)
	case King:
		return (df != 0 || dr != 0) && abs(df) <= 1 && abs(dr) <= 1
	case Bishop:
		return rayReaches(b, from, target, bishopDirs)
	case Rook:
		return rayReaches(b, from, target, rookDirs)
	case Queen:
		return rayReaches(b, from, target, queenDirs)
	}
	return false
}

// rayReaches walks each direction from from and stops at the first
// occupied square.
func rayReaches(b *Board, from, target Square, dirs []direction) bool {
	for _, d := range dirs {
		sq := from.offset(d.df, d.dr)
		for sq.Valid() {
			if sq == target {
				return true
			}
			if b.Occupied(sq) {
				break
			}
			sq = sq.offset(d.df, d.dr)
		}
	}
	return false
}

// InCheck reports whether the king of color c is attacked. A side without
// a king is never in check.
func InCheck(b *Board, c Color) bool {
	king, ok := b.KingSquare(c)
	if !ok {
		return false
	}
	return IsAttacked(b, c.Opponent(), king)
}
