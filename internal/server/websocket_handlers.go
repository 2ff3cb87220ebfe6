package server

import (
	"log/slog"

	"aurasocial/internal/featureflags"
	"aurasocial/internal/middleware"
	"aurasocial/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

// WebSocketUpgradeRequired rejects addresses outside the realtime_push
// rollout and plain HTTP requests to websocket routes.
func (s *Server) WebSocketUpgradeRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !s.featureFlags.Enabled(featureflags.RealtimePush, c.Params("address")) {
			return c.Status(fiber.StatusForbidden).JSON(models.ErrorResponse{
				Error:  "Realtime notifications are not enabled for this address",
				Status: fiber.StatusForbidden,
			})
		}
		if !websocket.IsWebSocketUpgrade(c) {
			return models.RespondWithError(c, fiber.StatusUpgradeRequired,
				models.NewValidationError("WebSocket upgrade required"))
		}
		c.Locals("address", c.Params("address"))
		return c.Next()
	}
}

// NotificationStreamHandler pushes new notifications for one address as
// they are created. The stream is advisory; clients re-fetch the inbox on
// reconnect.
func (s *Server) NotificationStreamHandler() fiber.Handler {
	return websocket.New(func(conn *websocket.Conn) {
		address, _ := conn.Locals("address").(string)
		if address == "" {
			_ = conn.WriteMessage(websocket.TextMessage, []byte(`{"error":"address required"}`))
			_ = conn.Close()
			return
		}

		client, err := s.hub.Register(address, conn)
		if err != nil {
			middleware.Logger.Warn("notification stream rejected",
				slog.String("address", address),
				slog.String("error", err.Error()),
			)
			_ = conn.WriteMessage(websocket.TextMessage, []byte(`{"error":"`+err.Error()+`"}`))
			_ = conn.Close()
			return
		}

		middleware.Logger.Info("notification stream opened", slog.String("address", address))
		go client.WritePump()
		client.ReadPump()
	})
}
