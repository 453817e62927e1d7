package model

import (
	"errors"
	"math/rand/v2"
	"reflect"
	"testing"
)

func TestEngineUndoRestoresState(t *testing.T) {
	e := NewEngine()
	for _, m := range [][2]string{{"e2", "e4"}, {"d7", "d5"}, {"e4", "d5"}} {
		if _, err := e.Move(Move{From: Sq(m[0]), To: Sq(m[1])}); err != nil {
			t.Fatalf("move %s%s: %v", m[0], m[1], err)
		}
	}
	if got := len(e.History()); got != 3 {
		t.Fatalf("history length = %d, want 3", got)
	}
	last, ok := e.LastMove()
	if !ok || last.Notation != "exd5" {
		t.Fatalf("last move = %+v", last)
	}

	for i := 0; i < 3; i++ {
		if _, err := e.Undo(); err != nil {
			t.Fatalf("undo %d: %v", i, err)
		}
	}
	if got, want := e.State(), NewGameState(); !reflect.DeepEqual(got, want) {
		t.Fatalf("state after undo differs from the start:\n%s", got.Board.String())
	}
	if _, err := e.Undo(); !errors.Is(err, ErrEmptyHistory) {
		t.Fatalf("undo on empty history = %v, want ErrEmptyHistory", err)
	}
}

func TestEngineRejectsIllegalMoveWithoutRecording(t *testing.T) {
	e := NewEngine()
	if _, err := e.Move(Move{From: Sq("e2"), To: Sq("e5")}); !errors.Is(err, ErrIllegalMove) {
		t.Fatalf("error = %v, want ErrIllegalMove", err)
	}
	if len(e.History()) != 0 || e.Turn() != White {
		t.Fatalf("illegal move changed the engine")
	}
}

func TestEngineHistoryIsACopy(t *testing.T) {
	e := NewEngine()
	for _, m := range [][2]string{{"e2", "e4"}, {"d7", "d5"}, {"e4", "d5"}} {
		if _, err := e.Move(Move{From: Sq(m[0]), To: Sq(m[1])}); err != nil {
			t.Fatalf("move %s%s: %v", m[0], m[1], err)
		}
	}

	records := e.History()
	records[1].Before.Meta.LastDouble.To = Sq("a1")
	records[2].CapturedPiece.Type = Queen
	records[2].Before.Board.Clear(Sq("e4"))

	fresh := e.History()
	if got := fresh[1].Before.Meta.LastDouble.To; got != Sq("e4") {
		t.Fatalf("last double step in history = %s, want e4", got)
	}
	if got := fresh[2].CapturedPiece.Type; got != Pawn {
		t.Fatalf("captured piece in history = %s, want pawn", got)
	}
	if !fresh[2].Before.Board.Occupied(Sq("e4")) {
		t.Fatalf("snapshot in history lost its e4 pawn")
	}
}

func TestEngineStateIsACopy(t *testing.T) {
	e := NewEngine()
	s := e.State()
	s.Board.Clear(Sq("e1"))
	fresh := e.State()
	if _, ok := fresh.Board.Get(Sq("e1")); !ok {
		t.Fatalf("mutating a returned state reached the engine")
	}
}

// TestRandomPlayouts plays seeded random games and checks that no move
// leaves the mover in check and that undoing every move returns the
// exact position it was played from.
func TestRandomPlayouts(t *testing.T) {
	for seed := uint64(1); seed <= 20; seed++ {
		rng := rand.New(rand.NewPCG(seed, seed*7))
		e := NewEngine()
		var positions []string
		for ply := 0; ply < 120 && !e.GameOver(); ply++ {
			s := e.State()
			moves := AllLegalMoves(&s, s.Turn)
			if len(moves) == 0 {
				t.Fatalf("seed %d: no moves but game not over", seed)
			}
			m := moves[rng.IntN(len(moves))]
			if NeedsPromotion(&s, m) {
				m.Promotion = []PieceType{Queen, Rook, Bishop, Knight}[rng.IntN(4)]
			}
			positions = append(positions, s.FEN())
			if _, err := e.Move(m); err != nil {
				t.Fatalf("seed %d: legal move %s%s rejected: %v", seed, m.From, m.To, err)
			}
			after := e.State()
			if InCheck(&after.Board, s.Turn) {
				t.Fatalf("seed %d: %s%s leaves %s in check", seed, m.From, m.To, s.Turn)
			}
		}
		for i := len(positions) - 1; i >= 0; i-- {
			if _, err := e.Undo(); err != nil {
				t.Fatalf("seed %d: undo: %v", seed, err)
			}
			if got := e.State().FEN(); got != positions[i] {
				t.Fatalf("seed %d: undo to ply %d gave %s, want %s", seed, i, got, positions[i])
			}
		}
	}
}
