package model

// RandSource is the subset of *math/rand/v2.Rand the opponent needs.
type RandSource interface {
	IntN(n int) int
}

// ChooseMove picks a move for color: uniformly among the captures if
// there are any, otherwise among all legal moves. Promotions are always to
// a queen. It returns false when color has no legal move.
func ChooseMove(s *GameState, color Color, rng RandSource) (Move, bool) {
	var all, captures []Move
	for _, m := range AllLegalMoves(s, color) {
		piece, _ := s.Board.Get(m.From)
		if NeedsPromotion(s, m) {
			m.Promotion = Queen
		}
		all = append(all, m)
		// En passant lands on an empty square but still takes a pawn.
		if s.Board.Occupied(m.To) || isEnPassant(&s.Board, m.From, m.To, piece) {
			captures = append(captures, m)
		}
	}
	pool := all
	if len(captures) > 0 {
		pool = captures
	}
	if len(pool) == 0 {
		return Move{}, false
	}
	return pool[rng.IntN(len(pool))], true
}
