package handlers

import (
	"errors"
	"strings"

	applog "ammanroofing/internal/log"
	"ammanroofing/internal/services"

	"github.com/gofiber/fiber/v2"
)

// ChatHandler relays the support widget to the generative-text API. The
// upstream credential never leaves the server.
type ChatHandler struct {
	Chat *services.ChatService
}

// POST /api/chat
func (h *ChatHandler) Ask(c *fiber.Ctx) error {
	var body struct {
		Message string `json:"message"`
	}
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid data"})
	}
	msg := strings.TrimSpace(body.Message)
	if msg == "" || len(msg) > 500 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid data"})
	}

	reply, err := h.Chat.Reply(msg)
	if err != nil {
		if errors.Is(err, services.ErrChatDisabled) {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"message": "Chat is currently unavailable"})
		}
		applog.Error(c, "chat.relay.fail", err, nil)
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"message": "Sorry, I encountered an error. Please try again later."})
	}
	return c.JSON(fiber.Map{"reply": reply})
}
