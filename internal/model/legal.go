package model

type castleSide struct {
	rookFile    int
	kingTo      int
	rookTo      int
	between     []int // files strictly between king and rook
	kingCrosses []int // transit and destination files
}

var castleSides = []castleSide{
	{rookFile: 7, kingTo: 6, rookTo: 5, between: []int{5, 6}, kingCrosses: []int{5, 6}},
	{rookFile: 0, kingTo: 2, rookTo: 3, between: []int{1, 2, 3}, kingCrosses: []int{3, 2}},
}

func castleSideFor(kingTo int) (castleSide, bool) {
	for _, cs := range castleSides {
		if cs.kingTo == kingTo {
			return cs, true
		}
	}
	return castleSide{}, false
}

// LegalMoves lists the destinations the piece on from may move to without
// leaving its own king in check, castling included.
func LegalMoves(s *GameState, from Square) []Square {
	piece, ok := s.Board.Get(from)
	if !ok {
		return nil
	}
	candidates := PseudoMoves(s, from)
	if piece.Type == King {
		candidates = append(candidates, castlingMoves(s, from, piece.Color)...)
	}
	return filterLegalMoves(s, from, piece, candidates)
}

// castlingMoves returns the king destinations for every side on which the
// king may castle right now.
func castlingMoves(s *GameState, from Square, color Color) []Square {
	home := color.homeRank()
	if from != (Square{File: 4, Rank: home}) || s.Meta.KingMoved.Get(color) {
		return nil
	}
	if InCheck(&s.Board, color) {
		return nil
	}
	var moves []Square
	for _, cs := range castleSides {
		rookSq := Square{File: cs.rookFile, Rank: home}
		if s.Meta.RookMoved.Get(rookSq) {
			continue
		}
		if rook, ok := s.Board.Get(rookSq); !ok || rook != (Piece{Type: Rook, Color: color}) {
			continue
		}
		if !squaresEmpty(&s.Board, home, cs.between) {
			continue
		}
		if squaresAttacked(&s.Board, color.Opponent(), home, cs.kingCrosses) {
			continue
		}
		moves = append(moves, Square{File: cs.kingTo, Rank: home})
	}
	return moves
}

func squaresEmpty(b *Board, rank int, files []int) bool {
	for _, f := range files {
		if b.Occupied(Square{File: f, Rank: rank}) {
			return false
		}
	}
	return true
}

func squaresAttacked(b *Board, by Color, rank int, files []int) bool {
	for _, f := range files {
		if IsAttacked(b, by, Square{File: f, Rank: rank}) {
			return true
		}
	}
	return false
}

func filterLegalMoves(s *GameState, from Square, piece Piece, candidates []Square) []Square {
	var legal []Square
	for _, to := range candidates {
		after := simulate(&s.Board, from, to, piece)
		if !InCheck(&after, piece.Color) {
			legal = append(legal, to)
		}
	}
	return legal
}

// simulate plays from-to on a copy of b. Promotions become queens; the
// choice of piece cannot affect the safety of the mover's own king.
func simulate(b *Board, from, to Square, piece Piece) Board {
	clone := b.Clone()
	if isEnPassant(&clone, from, to, piece) {
		clone.Clear(Square{File: to.File, Rank: from.Rank})
	}
	if cs, ok := castlingSide(from, to, piece); ok {
		relocateRook(&clone, from.Rank, cs)
	}
	clone.Clear(from)
	if piece.Type == Pawn && to.Rank == piece.Color.lastRank() {
		piece = Piece{Type: Queen, Color: piece.Color}
	}
	clone.Set(to, piece)
	return clone
}

// isEnPassant reports whether a pawn move is a diagonal step into an empty
// square, which can only be an en passant capture.
func isEnPassant(b *Board, from, to Square, piece Piece) bool {
	return piece.Type == Pawn && from.File != to.File && !b.Occupied(to)
}

func castlingSide(from, to Square, piece Piece) (castleSide, bool) {
	if piece.Type != King || abs(to.File-from.File) != 2 {
		return castleSide{}, false
	}
	return castleSideFor(to.File)
}

func relocateRook(b *Board, rank int, cs castleSide) {
	rookFrom := Square{File: cs.rookFile, Rank: rank}
	rook, _ := b.Get(rookFrom)
	b.Clear(rookFrom)
	b.Set(Square{File: cs.rookTo, Rank: rank}, rook)
}

// AllLegalMoves lists every legal move of color c in board order.
func AllLegalMoves(s *GameState, c Color) []Move {
	var moves []Move
	for _, from := range s.Board.Squares(c) {
		for _, to := range LegalMoves(s, from) {
			moves = append(moves, Move{From: from, To: to})
		}
	}
	return moves
}

func (s *GameState) hasLegalMoves(c Color) bool {
	for _, from := range s.Board.Squares(c) {
		if len(LegalMoves(s, from)) > 0 {
			return true
		}
	}
	return false
}
