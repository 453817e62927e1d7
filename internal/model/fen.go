package model

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// InitialFEN is the standard starting position.
const InitialFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

var fenPieces = map[rune]PieceType{
	'k': King, 'q': Queen, 'r': Rook, 'b': Bishop, 'n': Knight, 'p': Pawn,
}

// ParseFEN builds a GameState from Forsyth-Edwards Notation. The clock
// fields are optional. Castling rights are translated into the king and
// rook moved flags; the en passant target becomes the last double step.
func ParseFEN(fen string) (GameState, error) {
	parts := strings.Fields(fen)
	if len(parts) < 4 {
		return GameState{}, fmt.Errorf("expected at least 4 fields, got %d: %w", len(parts), ErrInvalidFEN)
	}

	var s GameState
	if err := parsePiecePlacement(&s.Board, parts[0]); err != nil {
		return GameState{}, err
	}
	for _, c := range []Color{White, Black} {
		if n := countKings(&s.Board, c); n != 1 {
			return GameState{}, fmt.Errorf("%s has %d kings: %w", c, n, ErrInvalidFEN)
		}
	}

	switch parts[1] {
	case "w":
		s.Turn = White
	case "b":
		s.Turn = Black
	default:
		return GameState{}, fmt.Errorf("invalid side to move %q: %w", parts[1], ErrInvalidFEN)
	}

	if err := parseCastlingRights(&s.Meta, parts[2]); err != nil {
		return GameState{}, err
	}
	if err := parseEnPassant(&s, parts[3]); err != nil {
		return GameState{}, err
	}

	s.Meta.FullMove = 1
	if len(parts) >= 6 {
		half, err1 := strconv.Atoi(parts[4])
		full, err2 := strconv.Atoi(parts[5])
		if err1 != nil || err2 != nil || half < 0 || full < 1 {
			return GameState{}, fmt.Errorf("invalid clocks %q %q: %w", parts[4], parts[5], ErrInvalidFEN)
		}
		s.Meta.HalfmoveClock, s.Meta.FullMove = half, full
	}

	s.refreshOutcome()
	return s, nil
}

func parsePiecePlacement(b *Board, placement string) error {
	ranks := strings.Split(placement, "/")
	if len(ranks) != 8 {
		return fmt.Errorf("expected 8 ranks, got %d: %w", len(ranks), ErrInvalidFEN)
	}
	for i, row := range ranks {
		rank := 7 - i
		file := 0
		for _, c := range row {
			if c >= '1' && c <= '8' {
				file += int(c - '0')
				continue
			}
			pt, ok := fenPieces[unicode.ToLower(c)]
			if !ok {
				return fmt.Errorf("invalid piece character %q: %w", c, ErrInvalidFEN)
			}
			if file > 7 {
				return fmt.Errorf("rank %d overflows: %w", rank+1, ErrInvalidFEN)
			}
			color := White
			if unicode.IsLower(c) {
				color = Black
			}
			b.Set(Square{File: file, Rank: rank}, Piece{Type: pt, Color: color})
			file++
		}
		if file != 8 {
			return fmt.Errorf("rank %d has %d files: %w", rank+1, file, ErrInvalidFEN)
		}
	}
	return nil
}

func countKings(b *Board, c Color) int {
	n := 0
	for _, sq := range b.Squares(c) {
		if p, _ := b.Get(sq); p.Type == King {
			n++
		}
	}
	return n
}

func parseCastlingRights(m *GameMeta, field string) error {
	m.KingMoved = ColorFlags{White: true, Black: true}
	m.RookMoved = RookFlags{A1: true, H1: true, A8: true, H8: true}
	if field == "-" {
		return nil
	}
	for _, c := range field {
		switch c {
		case 'K':
			m.KingMoved.White, m.RookMoved.H1 = false, false
		case 'Q':
			m.KingMoved.White, m.RookMoved.A1 = false, false
		case 'k':
			m.KingMoved.Black, m.RookMoved.H8 = false, false
		case 'q':
			m.KingMoved.Black, m.RookMoved.A8 = false, false
		default:
			return fmt.Errorf("invalid castling rights %q: %w", field, ErrInvalidFEN)
		}
	}
	return nil
}

// parseEnPassant accepts a target only when it matches the board: the
// pawn that double-stepped stands in front of it, the square itself is
// empty, and the other side is to move.
func parseEnPassant(s *GameState, field string) error {
	if field == "-" {
		return nil
	}
	target, err := ParseSquare(field)
	if err != nil {
		return fmt.Errorf("en passant target: %w", ErrInvalidFEN)
	}
	var ld DoubleStep
	switch target.Rank {
	case 2:
		ld = DoubleStep{To: target.offset(0, 1), Color: White}
	case 5:
		ld = DoubleStep{To: target.offset(0, -1), Color: Black}
	default:
		return fmt.Errorf("en passant target %s on wrong rank: %w", target, ErrInvalidFEN)
	}
	if ld.Color == s.Turn {
		return fmt.Errorf("en passant target %s with %s to move: %w", target, s.Turn, ErrInvalidFEN)
	}
	if p, _ := s.Board.Get(ld.To); p != (Piece{Type: Pawn, Color: ld.Color}) {
		return fmt.Errorf("en passant target %s without a %s pawn on %s: %w", target, ld.Color, ld.To, ErrInvalidFEN)
	}
	if s.Board.Occupied(target) {
		return fmt.Errorf("en passant target %s is occupied: %w", target, ErrInvalidFEN)
	}
	s.Meta.LastDouble = &ld
	return nil
}

// FEN renders s in Forsyth-Edwards Notation.
func (s GameState) FEN() string {
	var sb strings.Builder
	for rank := 7; rank >= 0; rank-- {
		empty := 0
		for file := 0; file < 8; file++ {
			p := s.Board[rank][file]
			if p.IsZero() {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteString(strconv.Itoa(empty))
				empty = 0
			}
			sb.WriteString(p.String())
		}
		if empty > 0 {
			sb.WriteString(strconv.Itoa(empty))
		}
		if rank > 0 {
			sb.WriteByte('/')
		}
	}

	turn := "w"
	if s.Turn == Black {
		turn = "b"
	}

	castling := ""
	if !s.Meta.KingMoved.White && !s.Meta.RookMoved.H1 {
		castling += "K"
	}
	if !s.Meta.KingMoved.White && !s.Meta.RookMoved.A1 {
		castling += "Q"
	}
	if !s.Meta.KingMoved.Black && !s.Meta.RookMoved.H8 {
		castling += "k"
	}
	if !s.Meta.KingMoved.Black && !s.Meta.RookMoved.A8 {
		castling += "q"
	}
	if castling == "" {
		castling = "-"
	}

	enPassant := "-"
	if ld := s.Meta.LastDouble; ld != nil {
		enPassant = ld.To.offset(0, -ld.Color.forward()).String()
	}

	return fmt.Sprintf("%s %s %s %s %d %d", sb.String(), turn, castling, enPassant, s.Meta.HalfmoveClock, s.Meta.FullMove)
}
