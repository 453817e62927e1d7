package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/benbeisheim/casualchess/internal/config"
	"github.com/benbeisheim/casualchess/internal/controller"
	"github.com/benbeisheim/casualchess/internal/middleware"
	"github.com/benbeisheim/casualchess/internal/model"
	"github.com/benbeisheim/casualchess/internal/service"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load(os.Args[0], os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	log, err := cfg.Logger()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer log.Sync()

	app := fiber.New(fiber.Config{
		DisableStartupMessage: !cfg.Dev,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			var fe *fiber.Error
			if errors.As(err, &fe) {
				code = fe.Code
			}
			return c.Status(code).JSON(fiber.Map{"error": err.Error()})
		},
	})

	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(cfg.Origins(), ", "),
		AllowHeaders: "Origin, Content-Type, Accept",
		AllowMethods: "GET, POST, PUT, DELETE, OPTIONS",
	}))
	app.Use(middleware.RequestLogger(log))

	// Initialize services
	gameManager := service.NewGameManager(log, model.WithOpponentDelay(cfg.OpponentDelay))
	gameService := service.NewGameService(gameManager, cfg.OpponentDefault)

	controller.RegisterRoutes(app, gameService, log, cfg.Origins())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()
		log.Info("shutting down", zap.Int("games", gameManager.GameCount()))
		if err := app.ShutdownWithTimeout(5 * time.Second); err != nil {
			log.Error("shutdown", zap.Error(err))
		}
	}()

	log.Info("listening", zap.String("addr", cfg.Addr), zap.Strings("origins", cfg.Origins()))
	if err := app.Listen(cfg.Addr); err != nil {
		log.Fatal("listen", zap.Error(err))
	}
}
