package routes

import (
	"timeclass-backend/internal/middleware"
	"timeclass-backend/internal/ws"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"go.uber.org/zap"
)

// SetupWSRoutes mounts the claim channel endpoint. Browsers cannot set
// an Authorization header on the upgrade request, so the token travels
// as a query parameter.
func SetupWSRoutes(app *fiber.App, hub *ws.Hub, log *zap.Logger, secret string) {
	hdl := ws.NewHandler(hub, log)

	app.Use("/ws", func(c *fiber.Ctx) error {
		if !websocket.IsWebSocketUpgrade(c) {
			return fiber.ErrUpgradeRequired
		}

		claims, err := middleware.ParseToken(secret, c.Query("token"))
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid or expired token"})
		}

		userID, _ := claims["user_id"].(float64)
		name, _ := claims["name"].(string)
		role, _ := claims["role"].(string)

		c.Locals("user_id", uint(userID))
		c.Locals("name", name)
		c.Locals("role", role)
		return c.Next()
	})

	app.Get("/ws/claims", websocket.New(hdl.Serve))
}
