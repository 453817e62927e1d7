package model

import "fmt"

// Square is a board coordinate. File 0 is the a-file, rank 0 is White's
// back rank.
type Square struct {
	File int
	Rank int
}

// Sq parses an algebraic square and panics on bad input. Intended for
// literals in tests and tables.
func Sq(s string) Square {
	sq, err := ParseSquare(s)
	if err != nil {
		panic(err)
	}
	return sq
}

// ParseSquare converts algebraic notation ("e4") into a Square.
func ParseSquare(s string) (Square, error) {
	if len(s) != 2 || s[0] < 'a' || s[0] > 'h' || s[1] < '1' || s[1] > '8' {
		return Square{}, fmt.Errorf("%q: %w", s, ErrInvalidSquare)
	}
	return Square{File: int(s[0] - 'a'), Rank: int(s[1] - '1')}, nil
}

func (s Square) Valid() bool {
	return s.File >= 0 && s.File < 8 && s.Rank >= 0 && s.Rank < 8
}

func (s Square) String() string {
	if !s.Valid() {
		return "invalid"
	}
	return fmt.Sprintf("%c%d", 'a'+s.File, s.Rank+1)
}

func (s Square) getFileNotation() string {
	return fmt.Sprintf("%c", 'a'+s.File)
}

func (s Square) offset(df, dr int) Square {
	return Square{File: s.File + df, Rank: s.Rank + dr}
}

func (s Square) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("%d,%d: %w", s.File, s.Rank, ErrInvalidSquare)
	}
	return []byte(s.String()), nil
}

func (s *Square) UnmarshalText(text []byte) error {
	sq, err := ParseSquare(string(text))
	if err != nil {
		return err
	}
	*s = sq
	return nil
}
