package controller

import (
	"github.com/benbeisheim/casualchess/internal/middleware"
	"github.com/benbeisheim/casualchess/internal/service"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"go.uber.org/zap"
)

// RegisterRoutes mounts the REST and websocket endpoints on app.
func RegisterRoutes(app *fiber.App, gameService *service.GameService, log *zap.Logger, origins []string) {
	gameController := NewGameController(gameService, log)
	wsController := NewWebSocketController(gameService, log)

	app.Get("/ws/games/:gameId",
		middleware.WebSocketUpgrade(),
		websocket.New(wsController.HandleConnection, websocket.Config{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			Origins:         origins,
		}),
	)

	api := app.Group("/api")
	games := api.Group("/games")
	game := middleware.ValidateGameID()

	games.Post("/", gameController.CreateGame)
	games.Get("/:gameId", game, gameController.GetGame)
	games.Delete("/:gameId", game, gameController.DeleteGame)
	games.Get("/:gameId/moves/:square", game, gameController.LegalMoves)
	games.Post("/:gameId/select", game, gameController.SelectSquare)
	games.Post("/:gameId/promote", game, gameController.ChoosePromotion)
	games.Post("/:gameId/undo", game, gameController.Undo)
	games.Post("/:gameId/reset", game, gameController.Reset)
	games.Put("/:gameId/opponent", game, gameController.SetOpponent)
}
