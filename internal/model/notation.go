package model

import "fmt"

// getNotation writes a move in short algebraic notation. Moves are not
// disambiguated between identical pieces.
func getNotation(record MoveRecord, after Outcome) string {
	var notation string
	if record.Special == SpecialCastle {
		notation = "O-O"
		if record.To.File == 2 {
			notation = "O-O-O"
		}
	} else {
		prefix := record.Piece.Type.getPieceNotation()
		capture := ""
		if record.CapturedPiece != nil {
			capture = "x"
		}
		pawnFileSpecifier := ""
		if record.Piece.Type == Pawn && record.From.File != record.To.File {
			pawnFileSpecifier = record.From.getFileNotation()
		}
		promotion := ""
		if record.Promotion != "" {
			promotion = "=" + record.Promotion.getPieceNotation()
		}
		notation = fmt.Sprintf("%s%s%s%s%s", prefix, pawnFileSpecifier, capture, record.To, promotion)
	}

	switch after {
	case Checkmate:
		notation += "#"
	case Check:
		notation += "+"
	}
	return notation
}
