package model

import "errors"

var (
	ErrIllegalMove       = errors.New("illegal move")
	ErrNoSelection       = errors.New("no piece selected")
	ErrEmptyHistory      = errors.New("no moves to undo")
	ErrNoLegalMove       = errors.New("no legal move available")
	ErrGameOver          = errors.New("game is over")
	ErrWrongTurn         = errors.New("not your turn")
	ErrNoPiece           = errors.New("no piece at from square")
	ErrPromotionRequired = errors.New("promotion piece required")
	ErrPromotionPending  = errors.New("promotion choice pending")
	ErrNotPromoting      = errors.New("no promotion pending")
	ErrInvalidPromotion  = errors.New("invalid promotion piece")
	ErrInvalidPiece      = errors.New("invalid piece")
	ErrInvalidColor      = errors.New("invalid color")
	ErrOpponentTurn      = errors.New("opponent is to move")
	ErrInvalidSquare     = errors.New("invalid square")
	ErrInvalidFEN        = errors.New("invalid FEN")
)
