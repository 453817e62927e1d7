package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
)

// WebSocketUpgrade ensures that requests to WebSocket endpoints are valid
// WebSocket connection attempts for a well-formed game ID, and gives each
// connection its own ID.
func WebSocketUpgrade() fiber.Handler {
	validate := ValidateGameID()
	return func(c *fiber.Ctx) error {
		if !websocket.IsWebSocketUpgrade(c) {
			return fiber.ErrUpgradeRequired
		}

		// Locals survive the upgrade; the connection context is separate
		// from the request context.
		c.Locals("connID", uuid.New().String())
		return validate(c)
	}
}
