package routes

import (
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"

	"github.com/localkart/core-api/realtime"
)

// SetupRealtimeRoutes mounts the chat relay websocket endpoint.
func SetupRealtimeRoutes(app *fiber.App, hub *realtime.Hub, jwtSecret string) {
	app.Get("/ws/bookings/:id", hub.Authorize(jwtSecret), websocket.New(hub.HandleConn))
}
