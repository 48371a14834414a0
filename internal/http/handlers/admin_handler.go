package handlers

import (
	"errors"
	"strings"

	"ammanroofing/internal/domain"
	applog "ammanroofing/internal/log"
	"ammanroofing/internal/services"
	"ammanroofing/internal/validate"

	"github.com/gofiber/fiber/v2"
)

// AdminHandler is the catalog console: product table with search plus
// create/edit/delete round trips. Every mutation goes through the store,
// so the rendered table always reflects recomputed availability.
type AdminHandler struct {
	Catalog *services.CatalogService
}

// GET /admin
func (h *AdminHandler) Dashboard(c *fiber.Ctx) error {
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
	products, err := h.Catalog.Search(q, "", nil)
	if err != nil {
		applog.Error(c, "admin.products.list.fail", err, nil)
		return c.Status(fiber.StatusInternalServerError).Render("notfound", fiber.Map{"Message": "Could not load products"})
	}
	return render(c, "admin_dashboard", fiber.Map{"Products": products, "Q": q, "Err": errMsg})
}

// productForm reads the console's full field set from a form post.
func productForm(c *fiber.Ctx) (domain.ProductInput, string) {
	var in domain.ProductInput
	in.Name = strings.TrimSpace(c.FormValue("name"))
	in.Category = strings.TrimSpace(c.FormValue("category"))
	in.Description = strings.TrimSpace(c.FormValue("description"))
	in.EstimatedDelivery = strings.TrimSpace(c.FormValue("estimated_delivery"))

	price, ok := validate.Price(c.FormValue("price"))
	if !ok {
		return in, "Price must be a non-negative number"
	}
	in.Price = price

	qty, ok := validate.Qty(c.FormValue("quantity"))
	if !ok {
		return in, "Quantity must be a non-negative whole number"
	}
	in.Quantity = qty

	img, ok := validate.ImageURL(c.FormValue("image_url"))
	if !ok {
		return in, "Enter a valid image URL"
	}
	in.ImageURL = img

	if raw := strings.TrimSpace(c.FormValue("features")); raw != "" {
		for _, line := range strings.Split(raw, "\n") {
			if f := strings.TrimSpace(line); f != "" {
				in.Features = append(in.Features, f)
			}
		}
	}
	return in, ""
}

// GET /admin/products/new
func (h *AdminHandler) NewForm(c *fiber.Ctx) error {
	return render(c, "admin_product_form", fiber.Map{
		"Title": "Add Product", "Action": "/admin/products", "P": domain.Product{},
	})
}

// POST /admin/products
func (h *AdminHandler) Create(c *fiber.Ctx) error {
	in, msg := productForm(c)
	if msg == "" {
		p, err := h.Catalog.Create(in)
		if err == nil {
			applog.Audit(c, "admin.products.create", map[string]any{"id": p.ID, "name": p.Name})
			return c.Redirect("/admin")
		}
		if errors.Is(err, domain.ErrInvalid) {
			msg = "Name, category and image URL are required"
		} else {
			applog.Error(c, "admin.products.create.fail", err, nil)
			msg = "Could not save product. Please try again."
		}
	}
	return c.Status(fiber.StatusBadRequest).Render("admin_product_form", fiber.Map{
		"Title": "Add Product", "Action": "/admin/products", "Err": msg,
		"P": domain.Product{
			Name: in.Name, Category: in.Category, Description: in.Description,
			Price: in.Price, Quantity: in.Quantity, ImageURL: in.ImageURL,
			Features: in.Features, EstimatedDelivery: in.EstimatedDelivery,
		},
		"CSRFToken": c.Cookies("csrf_"),
	})
}

// GET /admin/products/:id/edit
func (h *AdminHandler) EditForm(c *fiber.Ctx) error {
	p, err := h.Catalog.Get(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).Render("notfound", fiber.Map{"Message": "Product not found"})
	}
	return render(c, "admin_product_form", fiber.Map{
		"Title": "Edit Product", "Action": "/admin/products/" + p.ID, "P": p,
		"FeaturesText": strings.Join(p.Features, "\n"),
	})
}

// POST /admin/products/:id — the edit dialog submits its full form state;
// the store still recomputes availability from the resulting quantity.
func (h *AdminHandler) Update(c *fiber.Ctx) error {
	id := c.Params("id")
	in, msg := productForm(c)
	if msg == "" {
		patch := domain.ProductPatch{
			Name: in.Name, Category: in.Category, Description: in.Description,
			Price: &in.Price, Quantity: &in.Quantity, ImageURL: in.ImageURL,
			Features: in.Features, EstimatedDelivery: in.EstimatedDelivery,
		}
		p, err := h.Catalog.Update(id, patch)
		if err == nil {
			applog.Audit(c, "admin.products.update", map[string]any{"id": p.ID})
			return c.Redirect("/admin")
		}
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).Render("notfound", fiber.Map{"Message": "Product not found"})
		}
		applog.Error(c, "admin.products.update.fail", err, map[string]any{"id": id})
		msg = "Could not save product. Please try again."
	}
	return c.Status(fiber.StatusBadRequest).Render("admin_product_form", fiber.Map{
		"Title": "Edit Product", "Action": "/admin/products/" + id, "Err": msg,
		"P": domain.Product{
			ID: id, Name: in.Name, Category: in.Category, Description: in.Description,
			Price: in.Price, Quantity: in.Quantity, ImageURL: in.ImageURL,
			Features: in.Features, EstimatedDelivery: in.EstimatedDelivery,
		},
		"FeaturesText": strings.Join(in.Features, "\n"),
		"CSRFToken":    c.Cookies("csrf_"),
	})
}

// GET /admin/products/:id/delete — explicit confirmation before the
// irreversible delete.
func (h *AdminHandler) DeleteConfirm(c *fiber.Ctx) error {
	p, err := h.Catalog.Get(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).Render("notfound", fiber.Map{"Message": "Product not found"})
	}
	return render(c, "admin_confirm_delete", fiber.Map{"P": p})
}

// POST /admin/products/:id/delete
func (h *AdminHandler) Delete(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := h.Catalog.Delete(id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).Render("notfound", fiber.Map{"Message": "Product not found"})
		}
		applog.Error(c, "admin.products.delete.fail", err, map[string]any{"id": id})
		return c.Status(fiber.StatusInternalServerError).Render("notfound", fiber.Map{"Message": "Could not delete product"})
	}
	applog.Audit(c, "admin.products.delete", map[string]any{"id": id})
	return c.Redirect("/admin")
}
