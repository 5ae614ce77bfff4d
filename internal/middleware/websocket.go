package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

// WebSocketUpgrade ensures that requests to WebSocket endpoints are valid WebSocket connection attempts.
// It also checks that a player id is present before allowing the upgrade. Mount it on the
// route itself so that :gameId is resolved.
func WebSocketUpgrade() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !websocket.IsWebSocketUpgrade(c) {
			return fiber.ErrUpgradeRequired
		}

		playerID := c.Locals("playerID")
		if playerID == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "player ID is required",
			})
		}

		// Locals survive the upgrade; route params are read from the upgrade context.
		c.Locals("wsGameID", c.Params("gameId"))
		c.Locals("wsPlayerID", playerID)
		return c.Next()
	}
}
