package handlers

import (
	"errors"

	"ammanroofing/internal/domain"
	applog "ammanroofing/internal/log"
	"ammanroofing/internal/services"

	"github.com/gofiber/fiber/v2"
)

// ProductAPIHandler is the stateless JSON surface over the product store.
// Clients branch on HTTP status only; bodies carry a human-readable message.
type ProductAPIHandler struct {
	Catalog *services.CatalogService
}

func apiError(c *fiber.Ctx, action string, err error) error {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		applog.Info(c, action, map[string]any{"err": err.Error()})
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Product not found"})
	case errors.Is(err, domain.ErrInvalid):
		applog.Info(c, action, map[string]any{"err": err.Error()})
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid data"})
	default:
		applog.Error(c, action, err, nil)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Server Error"})
	}
}

// GET /api/products
func (h *ProductAPIHandler) List(c *fiber.Ctx) error {
	products, err := h.Catalog.List()
	if err != nil {
		return apiError(c, "api.products.list.fail", err)
	}
	if products == nil {
		products = []domain.Product{}
	}
	return c.JSON(products)
}

// GET /api/products/:id
func (h *ProductAPIHandler) Get(c *fiber.Ctx) error {
	p, err := h.Catalog.Get(c.Params("id"))
	if err != nil {
		return apiError(c, "api.products.get.fail", err)
	}
	return c.JSON(p)
}

// POST /api/products
func (h *ProductAPIHandler) Create(c *fiber.Ctx) error {
	var in domain.ProductInput
	if err := c.BodyParser(&in); err != nil {
		applog.Info(c, "api.products.create.badbody", map[string]any{"err": err.Error()})
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid data"})
	}
	p, err := h.Catalog.Create(in)
	if err != nil {
		return apiError(c, "api.products.create.fail", err)
	}
	applog.Audit(c, "api.products.create", map[string]any{"id": p.ID, "name": p.Name})
	return c.Status(fiber.StatusCreated).JSON(p)
}

// PUT /api/products/:id
func (h *ProductAPIHandler) Update(c *fiber.Ctx) error {
	var patch domain.ProductPatch
	if err := c.BodyParser(&patch); err != nil {
		applog.Info(c, "api.products.update.badbody", map[string]any{"err": err.Error()})
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid data"})
	}
	p, err := h.Catalog.Update(c.Params("id"), patch)
	if err != nil {
		return apiError(c, "api.products.update.fail", err)
	}
	applog.Audit(c, "api.products.update", map[string]any{"id": p.ID})
	return c.JSON(p)
}

// DELETE /api/products/:id
func (h *ProductAPIHandler) Delete(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := h.Catalog.Delete(id); err != nil {
		return apiError(c, "api.products.delete.fail", err)
	}
	applog.Audit(c, "api.products.delete", map[string]any{"id": id})
	return c.JSON(fiber.Map{"message": "Product removed"})
}
