package service

import (
	"fmt"

	"github.com/benbeisheim/casualchess/internal/model"
	"github.com/google/uuid"
)

// CreateGameRequest describes a new game. An empty FEN starts from the
// standard position; a nil Opponent uses the service default.
type CreateGameRequest struct {
	FEN           string      `json:"fen"`
	Opponent      *bool       `json:"opponent"`
	OpponentColor model.Color `json:"opponentColor"`
}

type GameService struct {
	gameManager     *GameManager
	opponentDefault bool
}

func NewGameService(gameManager *GameManager, opponentDefault bool) *GameService {
	return &GameService{
		gameManager:     gameManager,
		opponentDefault: opponentDefault,
	}
}

func (gs *GameService) CreateGame(req CreateGameRequest) (model.View, error) {
	opts := []model.Option{}
	if req.FEN != "" {
		start, err := model.ParseFEN(req.FEN)
		if err != nil {
			return model.View{}, err
		}
		opts = append(opts, model.WithStartState(start))
	}

	opponent := gs.opponentDefault
	if req.Opponent != nil {
		opponent = *req.Opponent
	}
	opts = append(opts, model.WithOpponent(opponent))
	if req.OpponentColor != "" {
		if !req.OpponentColor.Valid() {
			return model.View{}, fmt.Errorf("opponent color %q: %w", req.OpponentColor, model.ErrInvalidColor)
		}
		opts = append(opts, model.WithOpponentColor(req.OpponentColor))
	}

	gameID := uuid.New().String()
	game, err := gs.gameManager.CreateGame(gameID, opts...)
	if err != nil {
		return model.View{}, fmt.Errorf("failed to create game: %w", err)
	}
	return game.View(), nil
}

func (gs *GameService) GetView(gameID string) (model.View, error) {
	game, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return model.View{}, err
	}
	return game.View(), nil
}

// LegalMoves lists the legal destinations of the piece on square.
func (gs *GameService) LegalMoves(gameID, square string) ([]model.Square, error) {
	game, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return nil, err
	}
	sq, err := model.ParseSquare(square)
	if err != nil {
		return nil, err
	}
	moves := game.LegalMoves(sq)
	if moves == nil {
		moves = []model.Square{}
	}
	return moves, nil
}

// The mutating calls below return the game's view even when the action
// itself fails, so callers can always render the current state. The view
// is zero only when the game does not exist.

func (gs *GameService) SelectSquare(gameID, square string) (model.View, error) {
	return gs.apply(gameID, func(g *model.Game) error {
		sq, err := model.ParseSquare(square)
		if err != nil {
			return err
		}
		return g.SelectSquare(sq)
	})
}

func (gs *GameService) ChoosePromotion(gameID, piece string) (model.View, error) {
	return gs.apply(gameID, func(g *model.Game) error {
		pt, err := model.ParsePieceType(piece)
		if err != nil {
			return err
		}
		return g.ChoosePromotion(pt)
	})
}

func (gs *GameService) Undo(gameID string) (model.View, error) {
	return gs.apply(gameID, func(g *model.Game) error { return g.Undo() })
}

func (gs *GameService) Reset(gameID string) (model.View, error) {
	return gs.apply(gameID, func(g *model.Game) error {
		g.Reset()
		return nil
	})
}

func (gs *GameService) SetOpponentEnabled(gameID string, enabled bool) (model.View, error) {
	return gs.apply(gameID, func(g *model.Game) error {
		g.SetOpponentEnabled(enabled)
		return nil
	})
}

func (gs *GameService) DeleteGame(gameID string) error {
	return gs.gameManager.DeleteGame(gameID)
}

func (gs *GameService) RegisterConnection(gameID, connID string, conn Conn) (Conn, error) {
	return gs.gameManager.RegisterConnection(gameID, connID, conn)
}

func (gs *GameService) UnregisterConnection(gameID, connID string) {
	gs.gameManager.UnregisterConnection(gameID, connID)
}

func (gs *GameService) apply(gameID string, fn func(*model.Game) error) (model.View, error) {
	game, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return model.View{}, err
	}
	err = fn(game)
	return game.View(), err
}
