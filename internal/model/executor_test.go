package model

import (
	"errors"
	"testing"
)

func TestApplyMoveErrors(t *testing.T) {
	tests := []struct {
		name string
		fen  string
		move Move
		want error
	}{
		{"illegal destination", InitialFEN, Move{From: Sq("e2"), To: Sq("e5")}, ErrIllegalMove},
		{"empty origin", InitialFEN, Move{From: Sq("e4"), To: Sq("e5")}, ErrNoPiece},
		{"wrong side", InitialFEN, Move{From: Sq("e7"), To: Sq("e5")}, ErrWrongTurn},
		{"off board", InitialFEN, Move{From: Sq("e2"), To: Square{File: 4, Rank: 8}}, ErrInvalidSquare},
		{"promotion missing", "4k3/P7/8/8/8/8/8/4K3 w - - 0 1", Move{From: Sq("a7"), To: Sq("a8")}, ErrPromotionRequired},
		{"promotion to king", "4k3/P7/8/8/8/8/8/4K3 w - - 0 1", Move{From: Sq("a7"), To: Sq("a8"), Promotion: King}, ErrInvalidPromotion},
		{"game over", "R5k1/5ppp/8/8/8/8/8/6K1 b - - 0 1", Move{From: Sq("g8"), To: Sq("h8")}, ErrGameOver},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := mustFEN(t, tt.fen)
			before := s.Clone()
			_, _, err := ApplyMove(s, tt.move)
			if !errors.Is(err, tt.want) {
				t.Fatalf("error = %v, want %v", err, tt.want)
			}
			if s.FEN() != before.FEN() {
				t.Fatalf("failed move modified the state")
			}
		})
	}
}

func TestApplyMoveDoesNotAliasInput(t *testing.T) {
	s := NewGameState()
	next, record := mustApply(t, s, "e2", "e4", "")
	if _, ok := s.Board.Get(Sq("e2")); !ok {
		t.Fatalf("input board was modified")
	}
	if s.Meta.LastDouble != nil {
		t.Fatalf("input meta was modified")
	}
	next.Meta.LastDouble.To = Sq("a1")
	if record.Before.Meta.LastDouble != nil {
		t.Fatalf("snapshot shares meta with the live state")
	}
}

func TestEnPassantCapture(t *testing.T) {
	s := mustFEN(t, "4k3/8/8/8/3p4/8/4P3/4K3 w - - 0 1")
	s, _ = mustApply(t, s, "e2", "e4", "")
	s, record := mustApply(t, s, "d4", "e3", "")

	if record.Special != SpecialEnPassant {
		t.Fatalf("special = %q, want en-passant", record.Special)
	}
	if record.CapturedPiece == nil || *record.CapturedPiece != (Piece{Type: Pawn, Color: White}) {
		t.Fatalf("captured = %v, want white pawn", record.CapturedPiece)
	}
	if s.Board.Occupied(Sq("e4")) {
		t.Fatalf("captured pawn still on e4")
	}
	if p, _ := s.Board.Get(Sq("e3")); p != (Piece{Type: Pawn, Color: Black}) {
		t.Fatalf("e3 = %v, want black pawn", p)
	}
	if record.Notation != "dxe3" {
		t.Fatalf("notation = %q", record.Notation)
	}
}

func TestCastlingMovesRook(t *testing.T) {
	tests := []struct {
		name     string
		fen      string
		from, to string
		rookFrom string
		rookTo   string
		notation string
	}{
		{"white short", "r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1", "e1", "g1", "h1", "f1", "O-O"},
		{"white long", "r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1", "e1", "c1", "a1", "d1", "O-O-O"},
		{"black short", "r3k2r/8/8/8/8/8/8/R3K2R b KQkq - 0 1", "e8", "g8", "h8", "f8", "O-O"},
		{"black long", "r3k2r/8/8/8/8/8/8/R3K2R b KQkq - 0 1", "e8", "c8", "a8", "d8", "O-O-O"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := mustFEN(t, tt.fen)
			color := s.Turn
			next, record := mustApply(t, s, tt.from, tt.to, "")
			if record.Special != SpecialCastle {
				t.Fatalf("special = %q, want castle", record.Special)
			}
			if next.Board.Occupied(Sq(tt.rookFrom)) {
				t.Fatalf("rook still on %s", tt.rookFrom)
			}
			if p, _ := next.Board.Get(Sq(tt.rookTo)); p != (Piece{Type: Rook, Color: color}) {
				t.Fatalf("%s = %v, want rook", tt.rookTo, p)
			}
			if p, _ := next.Board.Get(Sq(tt.to)); p.Type != King {
				t.Fatalf("king not on %s", tt.to)
			}
			if !next.Meta.KingMoved.Get(color) || !next.Meta.RookMoved.Get(Sq(tt.rookFrom)) {
				t.Fatalf("moved flags not set: %+v", next.Meta)
			}
			if record.CastleRookMove == nil || record.CastleRookMove.From != Sq(tt.rookFrom) || record.CastleRookMove.To != Sq(tt.rookTo) {
				t.Fatalf("castle rook move = %+v", record.CastleRookMove)
			}
			if record.Notation != tt.notation {
				t.Fatalf("notation = %q, want %q", record.Notation, tt.notation)
			}
		})
	}
}

func TestRookMovesAndCapturesEndCastling(t *testing.T) {
	s := mustFEN(t, "r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1")
	next, _ := mustApply(t, s, "h1", "h2", "")
	if !next.Meta.RookMoved.H1 || next.Meta.RookMoved.A1 {
		t.Fatalf("rook flags = %+v", next.Meta.RookMoved)
	}

	next, record := mustApply(t, s, "a1", "a8", "")
	if !record.IsCapture() {
		t.Fatalf("expected a capture")
	}
	if !next.Meta.RookMoved.A1 || !next.Meta.RookMoved.A8 {
		t.Fatalf("rook flags = %+v", next.Meta.RookMoved)
	}
	if next.Outcome != Check {
		t.Fatalf("outcome = %q, want check", next.Outcome)
	}
	sameSquares(t, LegalMoves(&next, Sq("e8")), "d7", "e7", "f7")
	if record.Notation != "Rxa8+" {
		t.Fatalf("notation = %q", record.Notation)
	}
}

func TestKingMoveEndsCastling(t *testing.T) {
	s := mustFEN(t, "r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1")
	s, _ = mustApply(t, s, "e1", "f1", "")
	s, _ = mustApply(t, s, "a8", "b8", "")
	s, _ = mustApply(t, s, "f1", "e1", "")
	sameSquares(t, LegalMoves(&s, Sq("e8")), "d8", "d7", "e7", "f7", "f8", "g8")
	s, _ = mustApply(t, s, "b8", "a8", "")
	sameSquares(t, LegalMoves(&s, Sq("e1")), "d1", "d2", "e2", "f2", "f1")
	if fen := s.FEN(); fen != "r3k2r/8/8/8/8/8/8/R3K2R w k - 4 3" {
		t.Fatalf("FEN = %s", fen)
	}
}

func TestPromotion(t *testing.T) {
	s := mustFEN(t, "4k3/P7/8/8/8/8/8/4K3 w - - 0 1")
	for _, pt := range []PieceType{Queen, Rook, Bishop, Knight} {
		t.Run(string(pt), func(t *testing.T) {
			next, record := mustApply(t, s, "a7", "a8", pt)
			if p, _ := next.Board.Get(Sq("a8")); p != (Piece{Type: pt, Color: White}) {
				t.Fatalf("a8 = %v, want white %s", p, pt)
			}
			if next.Turn != Black {
				t.Fatalf("turn = %s, want black", next.Turn)
			}
			if record.Special != SpecialPromotion || record.Promotion != pt {
				t.Fatalf("record = %+v", record)
			}
		})
	}
	next, record := mustApply(t, s, "a7", "a8", Queen)
	if next.Outcome != Check || record.Notation != "a8=Q+" {
		t.Fatalf("outcome = %q notation = %q", next.Outcome, record.Notation)
	}
}

func TestBackRankMate(t *testing.T) {
	s := mustFEN(t, "6k1/5ppp/8/8/8/8/8/R5K1 w - - 0 1")
	next, record := mustApply(t, s, "a1", "a8", "")
	if next.Outcome != Checkmate || !next.GameOver() {
		t.Fatalf("outcome = %q, want checkmate", next.Outcome)
	}
	if msg := next.Message(); msg != "Black is checkmated." {
		t.Fatalf("message = %q", msg)
	}
	if moves := AllLegalMoves(&next, Black); len(moves) != 0 {
		t.Fatalf("mated side has moves: %v", moves)
	}
	if record.Notation != "Ra8#" {
		t.Fatalf("notation = %q", record.Notation)
	}
}

func TestFoolsMate(t *testing.T) {
	s := NewGameState()
	for _, m := range [][2]string{{"f2", "f3"}, {"e7", "e5"}, {"g2", "g4"}, {"d8", "h4"}} {
		s, _ = mustApply(t, s, m[0], m[1], "")
	}
	if s.Outcome != Checkmate || s.Turn != White {
		t.Fatalf("outcome = %q turn = %s", s.Outcome, s.Turn)
	}
	if msg := s.Message(); msg != "White is checkmated." {
		t.Fatalf("message = %q", msg)
	}
}

func TestCheckIsNotTerminal(t *testing.T) {
	s := mustFEN(t, "4k3/8/8/8/8/8/8/R3K3 w - - 0 1")
	next, _ := mustApply(t, s, "a1", "a8", "")
	if next.Outcome != Check || next.GameOver() {
		t.Fatalf("outcome = %q", next.Outcome)
	}
	if msg := next.Message(); msg != "Black is in check." {
		t.Fatalf("message = %q", msg)
	}
}

func TestStalemateEndsGame(t *testing.T) {
	s := mustFEN(t, "7k/4Q3/6K1/8/8/8/8/8 w - - 0 1")
	next, _ := mustApply(t, s, "e7", "f7", "")
	if next.Outcome != Stalemate || !next.GameOver() {
		t.Fatalf("outcome = %q, want stalemate", next.Outcome)
	}
	if msg := next.Message(); msg != "Black is stalemated. The game is drawn." {
		t.Fatalf("message = %q", msg)
	}
}

func TestClocks(t *testing.T) {
	s := NewGameState()
	s, _ = mustApply(t, s, "g1", "f3", "")
	if s.Meta.HalfmoveClock != 1 || s.Meta.FullMove != 1 {
		t.Fatalf("clocks = %d %d", s.Meta.HalfmoveClock, s.Meta.FullMove)
	}
	s, _ = mustApply(t, s, "e7", "e5", "")
	if s.Meta.HalfmoveClock != 0 || s.Meta.FullMove != 2 {
		t.Fatalf("clocks = %d %d", s.Meta.HalfmoveClock, s.Meta.FullMove)
	}
	s, _ = mustApply(t, s, "f3", "e5", "")
	if s.Meta.HalfmoveClock != 0 {
		t.Fatalf("capture should reset the half-move clock")
	}
}
