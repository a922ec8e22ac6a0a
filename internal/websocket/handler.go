package websocket

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

// Handler upgrades connections and attaches them to the hub.
type Handler struct {
	hub *Hub
}

func NewHandler(hub *Hub) *Handler {
	return &Handler{hub: hub}
}

func (h *Handler) RegisterRoutes(r fiber.Router) {
	ws := r.Group("/ws")
	ws.Use(func(ctx *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(ctx) {
			return ctx.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	ws.Get("/:session_id", websocket.New(h.serve))
}

func (h *Handler) serve(conn *websocket.Conn) {
	client := &Client{
		Hub:       h.hub,
		Conn:      conn,
		SessionID: conn.Params("session_id"),
		Send:      make(chan []byte, 16),
	}
	h.hub.register <- client

	go client.writePump()
	client.readPump()
}
