package model

import (
	"fmt"
	"slices"
)

// NeedsPromotion reports whether m moves a pawn onto its last rank.
func NeedsPromotion(s *GameState, m Move) bool {
	piece, ok := s.Board.Get(m.From)
	return ok && piece.Type == Pawn && m.To.Rank == piece.Color.lastRank()
}

func validateMove(s *GameState, m Move) (Piece, error) {
	if s.GameOver() {
		return Piece{}, ErrGameOver
	}
	if !m.From.Valid() || !m.To.Valid() {
		return Piece{}, fmt.Errorf("%s-%s out of bounds: %w", m.From, m.To, ErrInvalidSquare)
	}
	piece, ok := s.Board.Get(m.From)
	if !ok {
		return Piece{}, fmt.Errorf("%s: %w", m.From, ErrNoPiece)
	}
	if piece.Color != s.Turn {
		return Piece{}, fmt.Errorf("%s moves %s: %w", s.Turn, piece.Color, ErrWrongTurn)
	}
	if !slices.Contains(LegalMoves(s, m.From), m.To) {
		return Piece{}, fmt.Errorf("%s%s: %w", m.From, m.To, ErrIllegalMove)
	}
	if NeedsPromotion(s, m) {
		if m.Promotion == "" {
			return Piece{}, ErrPromotionRequired
		}
		if !m.Promotion.CanPromoteTo() {
			return Piece{}, fmt.Errorf("%s: %w", m.Promotion, ErrInvalidPromotion)
		}
	}
	return piece, nil
}

// ApplyMove plays m from s and returns the resulting state and its record.
// s itself is never modified. A pawn reaching its last rank without a
// promotion type yields ErrPromotionRequired so the caller can ask for one.
func ApplyMove(s GameState, m Move) (GameState, MoveRecord, error) {
	piece, err := validateMove(&s, m)
	if err != nil {
		return s, MoveRecord{}, err
	}

	next := s.Clone()
	record := MoveRecord{
		From:   m.From,
		To:     m.To,
		Piece:  piece,
		Before: s.Clone(),
	}
	if captured, ok := next.Board.Get(m.To); ok {
		record.CapturedPiece = &captured
	}

	if isEnPassant(&next.Board, m.From, m.To, piece) {
		capSq := Square{File: m.To.File, Rank: m.From.Rank}
		captured, _ := next.Board.Get(capSq)
		record.CapturedPiece = &captured
		record.Special = SpecialEnPassant
		next.Board.Clear(capSq)
	}

	if cs, ok := castlingSide(m.From, m.To, piece); ok {
		relocateRook(&next.Board, m.From.Rank, cs)
		rookFrom := Square{File: cs.rookFile, Rank: m.From.Rank}
		next.Meta.RookMoved.Mark(rookFrom)
		record.Special = SpecialCastle
		record.CastleRookMove = &CastleRookMove{
			From: rookFrom,
			To:   Square{File: cs.rookTo, Rank: m.From.Rank},
		}
	}

	next.Board.Clear(m.From)
	placed := piece
	if NeedsPromotion(&s, m) {
		placed = Piece{Type: m.Promotion, Color: piece.Color}
		record.Special = SpecialPromotion
		record.Promotion = m.Promotion
	}
	next.Board.Set(m.To, placed)

	next.Meta.LastDouble = nil
	if piece.Type == Pawn && abs(m.To.Rank-m.From.Rank) == 2 {
		next.Meta.LastDouble = &DoubleStep{To: m.To, Color: piece.Color}
		record.Special = SpecialDoubleStep
	}
	if piece.Type == King {
		next.Meta.KingMoved.Set(piece.Color, true)
	}
	// Leaving a corner or landing on one both end castling on that side.
	next.Meta.RookMoved.Mark(m.From)
	next.Meta.RookMoved.Mark(m.To)

	if piece.Type == Pawn || record.CapturedPiece != nil {
		next.Meta.HalfmoveClock = 0
	} else {
		next.Meta.HalfmoveClock++
	}
	if piece.Color == Black {
		next.Meta.FullMove++
	}

	next.Turn = piece.Color.Opponent()
	next.refreshOutcome()
	record.Notation = getNotation(record, next.Outcome)
	return next, record, nil
}
