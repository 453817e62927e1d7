package controller

import (
	"errors"

	"github.com/benbeisheim/casualchess/internal/model"
	"github.com/benbeisheim/casualchess/internal/service"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type GameController struct {
	gameService *service.GameService
	log         *zap.Logger
}

func NewGameController(gameService *service.GameService, log *zap.Logger) *GameController {
	if log == nil {
		log = zap.NewNop()
	}
	return &GameController{gameService: gameService, log: log}
}

type selectRequest struct {
	Square string `json:"square"`
}

type promoteRequest struct {
	Piece string `json:"piece"`
}

type opponentRequest struct {
	Enabled *bool `json:"enabled"`
}

func (gc *GameController) CreateGame(c *fiber.Ctx) error {
	var req service.CreateGameRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c, "invalid request body")
		}
	}

	view, err := gc.gameService.CreateGame(req)
	if err != nil {
		return gc.respond(c, view, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"gameId": view.ID,
		"state":  view,
	})
}

func (gc *GameController) GetGame(c *fiber.Ctx) error {
	view, err := gc.gameService.GetView(c.Params("gameId"))
	if err != nil {
		return gc.respond(c, view, err)
	}
	return c.JSON(view)
}

func (gc *GameController) LegalMoves(c *fiber.Ctx) error {
	moves, err := gc.gameService.LegalMoves(c.Params("gameId"), c.Params("square"))
	if err != nil {
		return gc.respond(c, model.View{}, err)
	}
	return c.JSON(fiber.Map{
		"square": c.Params("square"),
		"moves":  moves,
	})
}

func (gc *GameController) SelectSquare(c *fiber.Ctx) error {
	var req selectRequest
	if err := c.BodyParser(&req); err != nil || req.Square == "" {
		return badRequest(c, "square is required")
	}
	view, err := gc.gameService.SelectSquare(c.Params("gameId"), req.Square)
	return gc.respond(c, view, err)
}

func (gc *GameController) ChoosePromotion(c *fiber.Ctx) error {
	var req promoteRequest
	if err := c.BodyParser(&req); err != nil || req.Piece == "" {
		return badRequest(c, "piece is required")
	}
	view, err := gc.gameService.ChoosePromotion(c.Params("gameId"), req.Piece)
	return gc.respond(c, view, err)
}

func (gc *GameController) Undo(c *fiber.Ctx) error {
	view, err := gc.gameService.Undo(c.Params("gameId"))
	return gc.respond(c, view, err)
}

func (gc *GameController) Reset(c *fiber.Ctx) error {
	view, err := gc.gameService.Reset(c.Params("gameId"))
	return gc.respond(c, view, err)
}

func (gc *GameController) SetOpponent(c *fiber.Ctx) error {
	var req opponentRequest
	if err := c.BodyParser(&req); err != nil || req.Enabled == nil {
		return badRequest(c, "enabled is required")
	}
	view, err := gc.gameService.SetOpponentEnabled(c.Params("gameId"), *req.Enabled)
	return gc.respond(c, view, err)
}

func (gc *GameController) DeleteGame(c *fiber.Ctx) error {
	if err := gc.gameService.DeleteGame(c.Params("gameId")); err != nil {
		return gc.respond(c, model.View{}, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// respond writes the outcome of a game action. Rejected actions still
// carry the current state so clients can re-render.
func (gc *GameController) respond(c *fiber.Ctx, view model.View, err error) error {
	if err == nil {
		return c.JSON(fiber.Map{"state": view})
	}

	status := StatusFor(err)
	switch status {
	case fiber.StatusOK, fiber.StatusUnprocessableEntity:
		return c.Status(status).JSON(fiber.Map{
			"error": err.Error(),
			"state": view,
		})
	case fiber.StatusInternalServerError:
		gc.log.Error("game action failed", zap.String("path", c.Path()), zap.Error(err))
	}
	return c.Status(status).JSON(fiber.Map{
		"error": err.Error(),
	})
}

// StatusFor maps a game error to an HTTP status. Errors that leave the
// game untouched and need no correction map to 200.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrGameNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, model.ErrNoSelection),
		errors.Is(err, model.ErrEmptyHistory):
		return fiber.StatusOK
	case errors.Is(err, model.ErrInvalidSquare),
		errors.Is(err, model.ErrInvalidPiece),
		errors.Is(err, model.ErrInvalidColor),
		errors.Is(err, model.ErrInvalidFEN):
		return fiber.StatusBadRequest
	case errors.Is(err, model.ErrIllegalMove),
		errors.Is(err, model.ErrGameOver),
		errors.Is(err, model.ErrWrongTurn),
		errors.Is(err, model.ErrNoPiece),
		errors.Is(err, model.ErrOpponentTurn),
		errors.Is(err, model.ErrPromotionRequired),
		errors.Is(err, model.ErrPromotionPending),
		errors.Is(err, model.ErrNotPromoting),
		errors.Is(err, model.ErrInvalidPromotion):
		return fiber.StatusUnprocessableEntity
	}
	return fiber.StatusInternalServerError
}

func badRequest(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"error": msg,
	})
}
