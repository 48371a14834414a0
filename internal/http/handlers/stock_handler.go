package handlers

import (
	"strings"

	applog "ammanroofing/internal/log"
	"ammanroofing/internal/services"
	"ammanroofing/internal/validate"

	"github.com/gofiber/fiber/v2"
)

// StockHandler renders the read-only stock projection with its two
// independent filters (search text, tri-state availability).
type StockHandler struct {
	Stock *services.StockService
}

// GET /stocks?q=&availability=all|available|unavailable
func (h *StockHandler) Page(c *fiber.Ctx) error {
	rawQ := strings.TrimSpace(c.Query("q"))
	q := ""
	errMsg := ""
	if rawQ != "" {
		var ok bool
		if q, ok = validate.Q(rawQ); !ok {
			applog.Security(c, "validation.fail", map[string]any{"field": "q", "value": rawQ})
			q = ""
			errMsg = "Enter a valid keyword (letters/numbers only)"
		}
	}

	filter := c.Query("availability", "all")
	var available *bool
	switch filter {
	case "available":
		v := true
		available = &v
	case "unavailable":
		v := false
		available = &v
	default:
		filter = "all"
	}

	rows, err := h.Stock.Rows(q, available)
	if err != nil {
		applog.Error(c, "stocks.load.fail", err, nil)
		return c.Status(fiber.StatusInternalServerError).Render("notfound", fiber.Map{"Message": "Failed to load product stock information. Please try again later."})
	}
	return render(c, "stocks", fiber.Map{
		"Rows": rows, "Q": q, "Availability": filter, "Err": errMsg, "Count": len(rows),
	})
}
