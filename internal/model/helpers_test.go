package model

import (
	"slices"
	"sort"
	"testing"
	"time"
)

func mustFEN(t *testing.T, fen string) GameState {
	t.Helper()
	s, err := ParseFEN(fen)
	if err != nil {
		t.Fatalf("parse FEN %q: %v", fen, err)
	}
	return s
}

func mustApply(t *testing.T, s GameState, from, to string, promo PieceType) (GameState, MoveRecord) {
	t.Helper()
	next, record, err := ApplyMove(s, Move{From: Sq(from), To: Sq(to), Promotion: promo})
	if err != nil {
		t.Fatalf("apply %s%s: %v\n%s", from, to, err, s.Board.String())
	}
	return next, record
}

func squareNames(squares []Square) []string {
	names := make([]string, 0, len(squares))
	for _, sq := range squares {
		names = append(names, sq.String())
	}
	sort.Strings(names)
	return names
}

func sameSquares(t *testing.T, got []Square, want ...string) {
	t.Helper()
	sort.Strings(want)
	if names := squareNames(got); !slices.Equal(names, want) {
		t.Fatalf("squares = %v, want %v", names, want)
	}
}

// fixedRand always picks index n modulo the pool size.
type fixedRand int

func (r fixedRand) IntN(n int) int {
	return int(r) % n
}

// fakeScheduler records tasks instead of running them so tests decide
// when a deferred opponent move fires.
type fakeScheduler struct {
	tasks   []func()
	stopped []bool
}

func (f *fakeScheduler) schedule(_ time.Duration, task func()) func() bool {
	i := len(f.tasks)
	f.tasks = append(f.tasks, task)
	f.stopped = append(f.stopped, false)
	return func() bool {
		f.stopped[i] = true
		return true
	}
}

// fireLatest runs the newest task that has not been stopped.
func (f *fakeScheduler) fireLatest(t *testing.T) {
	t.Helper()
	for i := len(f.tasks) - 1; i >= 0; i-- {
		if !f.stopped[i] {
			f.stopped[i] = true
			f.tasks[i]()
			return
		}
	}
	t.Fatalf("no pending task")
}

func (f *fakeScheduler) pending() int {
	n := 0
	for _, s := range f.stopped {
		if !s {
			n++
		}
	}
	return n
}
