package handlers_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	html "github.com/gofiber/template/html/v2"
	"github.com/jmoiron/sqlx"

	"ammanroofing/internal/config"
	"ammanroofing/internal/domain"
	"ammanroofing/internal/http/handlers"
	"ammanroofing/internal/repos"
	"ammanroofing/internal/services"
)

const testSID = "test-session"

// newAPIApp boots the JSON surface against an in-memory store with a bound
// admin session for mutation calls.
func newAPIApp(t *testing.T) (*fiber.App, *sqlx.DB) {
	t.Helper()
	db, err := repos.OpenDB(":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := repos.EnsureAdmin(db, "admin", "Passw0rd!"); err != nil {
		t.Fatalf("seed admin: %v", err)
	}
	userRepo := repos.NewUserRepo(db)
	if err := userRepo.BindSession(testSID, "u-admin"); err != nil {
		t.Fatalf("bind session: %v", err)
	}
	authSvc := &services.AuthService{Users: userRepo}
	authH := &handlers.AuthHandler{Auth: authSvc}

	engine := html.New("../../web/templates", ".html")
	app := fiber.New(fiber.Config{Views: engine})
	app.Use(requestid.New())

	deps := handlers.NewDeps(db, config.Config{}, authSvc)
	api := app.Group("/api")
	api.Get("/products", deps.ProductAPI.List)
	api.Get("/products/:id", deps.ProductAPI.Get)
	api.Post("/products", handlers.RequireAdminAPI(authSvc), deps.ProductAPI.Create)
	api.Put("/products/:id", handlers.RequireAdminAPI(authSvc), deps.ProductAPI.Update)
	api.Delete("/products/:id", handlers.RequireAdminAPI(authSvc), deps.ProductAPI.Delete)
	api.Post("/admin/login", authH.LoginAPI)

	return app, db
}

func jsonReq(method, target, body string, admin bool) *http.Request {
	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, rd)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if admin {
		req.AddCookie(&http.Cookie{Name: "sid", Value: testSID})
	}
	return req
}

func decodeProduct(t *testing.T, resp *http.Response) domain.Product {
	t.Helper()
	var p domain.Product
	if err := json.NewDecoder(resp.Body).Decode(&p); err != nil {
		t.Fatalf("decode product: %v", err)
	}
	return p
}

func decodeMessage(t *testing.T, resp *http.Response) string {
	t.Helper()
	var body struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode message: %v", err)
	}
	return body.Message
}

func TestMutationsRequireAdminSession(t *testing.T) {
	app, _ := newAPIApp(t)

	resp, err := app.Test(jsonReq("POST", "/api/products", `{"name":"x","category":"metal","imageUrl":"/x.jpg"}`, false))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("unauthenticated create: want 401, got %d", resp.StatusCode)
	}

	resp, err = app.Test(jsonReq("DELETE", "/api/products/anything", "", false))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("unauthenticated delete: want 401, got %d", resp.StatusCode)
	}

	// Reads stay public.
	resp, err = app.Test(jsonReq("GET", "/api/products", "", false))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("public list: want 200, got %d", resp.StatusCode)
	}
}

func TestCreateRecomputesAvailability(t *testing.T) {
	app, _ := newAPIApp(t)

	// availability:true with quantity 0 must come back false.
	resp, err := app.Test(jsonReq("POST", "/api/products",
		`{"name":"Slate Pack","category":"slate","price":500,"quantity":0,"availability":true,"imageUrl":"/static/img/slate.jpg"}`, true))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("want 201, got %d", resp.StatusCode)
	}
	p := decodeProduct(t, resp)
	if p.ID == "" {
		t.Fatal("server must assign an id")
	}
	if p.Availability {
		t.Fatal("availability must be recomputed from quantity, not trusted")
	}

	// read-by-id round trip
	resp, err = app.Test(jsonReq("GET", "/api/products/"+p.ID, "", false))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("get by id: want 200, got %d", resp.StatusCode)
	}
	got := decodeProduct(t, resp)
	if got.Name != "Slate Pack" || got.Price != 500 || got.Quantity != 0 || got.Availability {
		t.Fatalf("round trip mismatch: %+v", got)
	}
}

func TestCreateInvalidData(t *testing.T) {
	app, _ := newAPIApp(t)

	resp, err := app.Test(jsonReq("POST", "/api/products", `{"category":"metal","imageUrl":"/x.jpg"}`, true))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("missing name: want 400, got %d", resp.StatusCode)
	}
	if msg := decodeMessage(t, resp); msg != "Invalid data" {
		t.Fatalf("want generic message, got %q", msg)
	}

	resp, err = app.Test(jsonReq("POST", "/api/products", `{not json`, true))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("malformed body: want 400, got %d", resp.StatusCode)
	}
}

func TestPartialUpdateOverAPI(t *testing.T) {
	app, _ := newAPIApp(t)

	resp, err := app.Test(jsonReq("POST", "/api/products",
		`{"name":"Solar Kit","category":"solar","description":"Full kit","price":1500,"quantity":40,"imageUrl":"/static/img/solar.jpg"}`, true))
	if err != nil {
		t.Fatal(err)
	}
	created := decodeProduct(t, resp)

	resp, err = app.Test(jsonReq("PUT", "/api/products/"+created.ID, `{"quantity":0}`, true))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("want 200, got %d", resp.StatusCode)
	}
	updated := decodeProduct(t, resp)
	if updated.Name != "Solar Kit" || updated.Description != "Full kit" || updated.Price != 1500 {
		t.Fatalf("partial update clobbered fields: %+v", updated)
	}
	if updated.Quantity != 0 || updated.Availability {
		t.Fatalf("availability must flip with quantity 0: %+v", updated)
	}

	resp, err = app.Test(jsonReq("PUT", "/api/products/no-such-id", `{"quantity":1}`, true))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("unknown id: want 404, got %d", resp.StatusCode)
	}
	if msg := decodeMessage(t, resp); msg != "Product not found" {
		t.Fatalf("want not-found message, got %q", msg)
	}
}

func TestDeleteLifecycle(t *testing.T) {
	app, _ := newAPIApp(t)

	resp, err := app.Test(jsonReq("POST", "/api/products", `{"name":"Temp","category":"metal","imageUrl":"/x.jpg"}`, true))
	if err != nil {
		t.Fatal(err)
	}
	created := decodeProduct(t, resp)

	resp, err = app.Test(jsonReq("DELETE", "/api/products/"+created.ID, "", true))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("want 200, got %d", resp.StatusCode)
	}
	if msg := decodeMessage(t, resp); msg != "Product removed" {
		t.Fatalf("want removal confirmation, got %q", msg)
	}

	// Idempotent failure: second delete 404s and the collection is unchanged.
	resp, err = app.Test(jsonReq("GET", "/api/products", "", false))
	if err != nil {
		t.Fatal(err)
	}
	var before []domain.Product
	if err := json.NewDecoder(resp.Body).Decode(&before); err != nil {
		t.Fatal(err)
	}

	resp, err = app.Test(jsonReq("DELETE", "/api/products/"+created.ID, "", true))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("second delete: want 404, got %d", resp.StatusCode)
	}

	resp, err = app.Test(jsonReq("GET", "/api/products", "", false))
	if err != nil {
		t.Fatal(err)
	}
	var after []domain.Product
	if err := json.NewDecoder(resp.Body).Decode(&after); err != nil {
		t.Fatal(err)
	}
	if len(after) != len(before) {
		t.Fatalf("failed delete must leave the collection unchanged: %d -> %d", len(before), len(after))
	}
}

func TestAdminLoginAPI(t *testing.T) {
	app, _ := newAPIApp(t)

	resp, err := app.Test(jsonReq("POST", "/api/admin/login", `{"username":"admin","password":"wrong-pass"}`, false))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("bad creds: want 401, got %d", resp.StatusCode)
	}

	resp, err = app.Test(jsonReq("POST", "/api/admin/login", `{"username":"admin","password":"Passw0rd!"}`, false))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("good creds: want 200, got %d", resp.StatusCode)
	}
	var body struct {
		Success bool `json:"success"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if !body.Success {
		t.Fatal("login must report success")
	}

	var sid string
	for _, c := range resp.Cookies() {
		if c.Name == "sid" {
			sid = c.Value
		}
	}
	if sid == "" {
		t.Fatal("login must set the session cookie")
	}

	// The fresh session authorizes a mutation.
	req := jsonReq("POST", "/api/products", `{"name":"Post-login","category":"metal","imageUrl":"/x.jpg","quantity":2}`, false)
	req.AddCookie(&http.Cookie{Name: "sid", Value: sid})
	resp, err = app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("mutation with fresh session: want 201, got %d", resp.StatusCode)
	}
}
