package handlers_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	html "github.com/gofiber/template/html/v2"

	"ammanroofing/internal/http/handlers"
	"ammanroofing/internal/repos"
	"ammanroofing/internal/services"
)

func newStocksApp(t *testing.T) *fiber.App {
	t.Helper()
	db, err := repos.OpenDB(":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	h := &handlers.StockHandler{Stock: services.NewStockService(repos.NewProductRepo(db))}

	engine := html.New("../../web/templates", ".html")
	app := fiber.New(fiber.Config{Views: engine})
	app.Get("/stocks", h.Page)
	return app
}

func pageBody(t *testing.T, app *fiber.App, target string) string {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest("GET", target, nil))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("GET %s: want 200, got %d", target, resp.StatusCode)
	}
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatal(err)
	}
	return string(b)
}

func TestStocksPageShowsDeliveryTiers(t *testing.T) {
	app := newStocksApp(t)
	body := pageBody(t, app, "/stocks")

	// Seeded catalog: 100 and 55 units land in the fast tier, 0 units is out.
	if !strings.Contains(body, "Roofing Sheets") || !strings.Contains(body, "2-3 business days") {
		t.Fatal("in-stock rows must show the computed delivery window")
	}
	if !strings.Contains(body, "Asphalt Shingles") || !strings.Contains(body, "Out of stock") {
		t.Fatal("zero-quantity rows must show as out of stock")
	}
}

func TestStocksPageAvailabilityFilter(t *testing.T) {
	app := newStocksApp(t)

	body := pageBody(t, app, "/stocks?availability=unavailable")
	if !strings.Contains(body, "Asphalt Shingles") {
		t.Fatal("unavailable filter must keep out-of-stock rows")
	}
	if strings.Contains(body, "Roofing Sheets") {
		t.Fatal("unavailable filter must drop in-stock rows")
	}

	body = pageBody(t, app, "/stocks?availability=available")
	if strings.Contains(body, "Asphalt Shingles") {
		t.Fatal("available filter must drop out-of-stock rows")
	}
}

func TestStocksPageSearchFilter(t *testing.T) {
	app := newStocksApp(t)

	body := pageBody(t, app, "/stocks?q=clay")
	if !strings.Contains(body, "Clay Tiles") {
		t.Fatal("search must match by name")
	}
	if strings.Contains(body, "Roofing Sheets") {
		t.Fatal("search must drop non-matching rows")
	}

	// Rejected keyword degrades to the unfiltered view with a notice.
	body = pageBody(t, app, "/stocks?q=%3Cscript%3E")
	if !strings.Contains(body, "Enter a valid keyword") {
		t.Fatal("invalid keyword must surface a validation notice")
	}
	if !strings.Contains(body, "Roofing Sheets") {
		t.Fatal("invalid keyword must fall back to the full listing")
	}
}
