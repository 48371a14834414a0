package handlers

import (
	"errors"
	"strings"

	applog "ammanroofing/internal/log"
	"ammanroofing/internal/services"
	"ammanroofing/internal/validate"

	"github.com/gofiber/fiber/v2"
)

// ContactHandler serves the contact page and relays submissions to the
// transactional-email API with server-held credentials.
type ContactHandler struct {
	Mail *services.MailService
}

// GET /contact
func (h *ContactHandler) Page(c *fiber.Ctx) error {
	return render(c, "contact", fiber.Map{})
}

func validContact(m services.ContactMessage) string {
	if strings.TrimSpace(m.Name) == "" {
		return "Please enter your name"
	}
	if _, ok := validate.Email(m.Email); !ok {
		return "Please enter a valid email address"
	}
	if m.Phone != "" {
		if _, ok := validate.Phone(m.Phone); !ok {
			return "Please enter a valid phone number"
		}
	}
	if strings.TrimSpace(m.Message) == "" {
		return "Please enter a message"
	}
	return ""
}

// POST /contact (form)
func (h *ContactHandler) Submit(c *fiber.Ctx) error {
	var m services.ContactMessage
	if err := c.BodyParser(&m); err != nil {
		return c.Status(fiber.StatusBadRequest).Render("contact", fiber.Map{"Err": "Invalid form submission", "CSRFToken": c.Cookies("csrf_")})
	}
	if msg := validContact(m); msg != "" {
		return c.Status(fiber.StatusBadRequest).Render("contact", fiber.Map{"Err": msg, "Form": m, "CSRFToken": c.Cookies("csrf_")})
	}
	if err := h.Mail.Send(m); err != nil {
		if !errors.Is(err, services.ErrMailDisabled) {
			applog.Error(c, "contact.relay.fail", err, nil)
		}
		return c.Status(fiber.StatusBadGateway).Render("contact", fiber.Map{
			"Err": "There was an error sending your message. Please try again later.", "Form": m, "CSRFToken": c.Cookies("csrf_"),
		})
	}
	applog.Audit(c, "contact.sent", map[string]any{"email": m.Email})
	return render(c, "contact", fiber.Map{"Success": "Your message has been sent. We will get back to you soon."})
}

// POST /api/contact (JSON)
func (h *ContactHandler) SubmitAPI(c *fiber.Ctx) error {
	var m services.ContactMessage
	if err := c.BodyParser(&m); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Invalid data"})
	}
	if msg := validContact(m); msg != "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": msg})
	}
	if err := h.Mail.Send(m); err != nil {
		if errors.Is(err, services.ErrMailDisabled) {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"success": false, "message": "Contact form is currently unavailable"})
		}
		applog.Error(c, "contact.relay.fail", err, nil)
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"success": false, "message": "Failed to send message"})
	}
	applog.Audit(c, "contact.sent", map[string]any{"email": m.Email})
	return c.JSON(fiber.Map{"success": true})
}
