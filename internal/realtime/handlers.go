package realtime

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

func RegisterRoutes(r fiber.Router, hub *Hub) {
	r.Get("/bookings", websocket.New(func(c *websocket.Conn) {
		client := hub.Register()
		// Unregister closes Send, which ends the writer goroutine.
		defer hub.Unregister(client)

		go func() {
			for msg := range client.Send {
				if err := c.WriteMessage(websocket.TextMessage, msg); err != nil {
					return
				}
			}
		}()

		for {
			if _, _, err := c.ReadMessage(); err != nil {
				return
			}
		}
	}))
}
