package handlers

import (
	"strings"

	applog "ammanroofing/internal/log"
	"ammanroofing/internal/services"
	"ammanroofing/internal/validate"

	"github.com/gofiber/fiber/v2"
)

// PageHandler serves the public marketing pages.
type PageHandler struct {
	Catalog *services.CatalogService
}

// GET /
func (h *PageHandler) Home(c *fiber.Ctx) error {
	products, err := h.Catalog.List()
	if err != nil {
		applog.Error(c, "home.load.fail", err, nil)
		return c.Status(fiber.StatusInternalServerError).Render("notfound", fiber.Map{"Message": "Could not load the page. Please retry."})
	}
	// Distinct category tags for the tile strip, first-seen order.
	seen := map[string]bool{}
	var categories []string
	for _, p := range products {
		key := strings.ToLower(p.Category)
		if !seen[key] {
			seen[key] = true
			categories = append(categories, p.Category)
		}
	}
	featured := products
	if len(featured) > 6 {
		featured = featured[:6]
	}
	return render(c, "home", fiber.Map{"Categories": categories, "Featured": featured})
}

// GET /products — listing with an optional category tag filter.
func (h *PageHandler) Products(c *fiber.Ctx) error {
	category := strings.TrimSpace(c.Query("category"))
	if category != "" {
		if _, ok := validate.Q(category); !ok {
			applog.Security(c, "validation.fail", map[string]any{"field": "category"})
			category = ""
		}
	}
	products, err := h.Catalog.Search("", category, nil)
	if err != nil {
		applog.Error(c, "products.load.fail", err, nil)
		return c.Status(fiber.StatusInternalServerError).Render("notfound", fiber.Map{"Message": "Could not load products. Please retry."})
	}
	return render(c, "products", fiber.Map{"Products": products, "Category": category})
}

// GET /products/:id
func (h *PageHandler) Detail(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		applog.Security(c, "validation.fail", map[string]any{"field": "product"})
		return c.Status(fiber.StatusNotFound).Render("notfound", fiber.Map{"Message": "This item is no longer available"})
	}
	p, err := h.Catalog.Get(id)
	if err != nil {
		return c.Status(fiber.StatusNotFound).Render("notfound", fiber.Map{"Message": "This item is no longer available"})
	}
	return render(c, "product", fiber.Map{"P": p})
}
