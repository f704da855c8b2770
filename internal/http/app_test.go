package handlers_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/csrf"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	html "github.com/gofiber/template/html/v2"

	"adsstore/internal/catalog"
	"adsstore/internal/config"
	"adsstore/internal/http/handlers"
	applog "adsstore/internal/log"
	"adsstore/internal/repos"
)

const testCatalog = `[
  {"id":"cam-1","nombre":"Camiseta","descripcion":"Algodón","precio":1000,
   "imagenes":["img/cam.jpg"],"categorias":["Hombres"],"color":["Negro","Blanco"],"diseño":["Logo"]},
  {"id":"gor-2","nombre":"Gorra","descripcion":"Bordada","precio":500,"categorias":["Accesorios"]},
  {"id":"buz-3","nombre":"Buzo","descripcion":"Perchado","precio":12000,"descuento":10000,"categorias":["Hombres"]},
  {"id":"ago-4","nombre":"Medias","precio":9000,"categorias":["Accesorios"],"agotado":true},
  {"id":"xss-5","nombre":"<script>alert(1)</script>","descripcion":"<b>desc</b>","precio":100,"categorias":["Vacia"]}
]`

func writeCatalog(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "productos.json")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write catalog: %v", err)
	}
	return path
}

// newStoreApp wires the storefront the way main does, against an in-memory
// database. pre runs before the storefront routes are mounted.
func newStoreApp(t *testing.T, catalogSource string, pre ...func(*fiber.App)) (*fiber.App, *repos.SQLiteStorage) {
	t.Helper()
	cfg := config.Config{
		DBDSN:   ":memory:",
		Payment: config.PaymentConfig{BankAccount: "Ahorros 123", AccountName: "ADS Store", Llave: "@adsstore", Nequi: "3000000000"},
	}
	db, err := repos.OpenDB(cfg.DBDSN)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	storage := repos.NewSQLiteStorage(db)
	loader := catalog.NewLoader(catalogSource, time.Second)

	engine := html.New("../../web/templates", ".html")
	app := fiber.New(fiber.Config{
		Views: engine,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			applog.Error(c, "server.error", err, nil)
			return c.Status(fiber.StatusInternalServerError).Render("notfound", fiber.Map{
				"Message": "Algo salió mal. Intenta de nuevo.",
			})
		},
	})
	app.Server().MaxRequestBodySize = 1 << 20
	app.Use(requestid.New())
	app.Use(csrf.New(csrf.Config{
		KeyLookup:      "form:csrf",
		CookieName:     "csrf_",
		CookieSameSite: "Lax",
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			applog.Security(c, "csrf.fail", nil)
			return c.Status(fiber.StatusForbidden).Render("notfound", fiber.Map{"Message": "La verificación de seguridad falló."})
		},
	}))
	for _, fn := range pre {
		fn(app)
	}
	handlers.Mount(app, handlers.NewDeps(storage, loader, cfg, nil))
	return app, storage
}

// visitor is a cookie-carrying browser stand-in.
type visitor struct {
	t       *testing.T
	app     *fiber.App
	cookies map[string]string
}

func newVisitor(t *testing.T, app *fiber.App) *visitor {
	return &visitor{t: t, app: app, cookies: map[string]string{}}
}

func (v *visitor) do(req *http.Request) (*http.Response, string) {
	v.t.Helper()
	for name, value := range v.cookies {
		req.AddCookie(&http.Cookie{Name: name, Value: value})
	}
	resp, err := v.app.Test(req)
	if err != nil {
		v.t.Fatalf("%s %s: %v", req.Method, req.URL, err)
	}
	for _, c := range resp.Cookies() {
		if c.MaxAge < 0 || c.Value == "" || (!c.Expires.IsZero() && c.Expires.Before(time.Now())) {
			delete(v.cookies, c.Name)
			continue
		}
		v.cookies[c.Name] = c.Value
	}
	body, _ := io.ReadAll(resp.Body)
	return resp, string(body)
}

func (v *visitor) get(path string) (*http.Response, string) {
	v.t.Helper()
	return v.do(httptest.NewRequest("GET", path, nil))
}

// post submits a form, priming the CSRF cookie first if needed.
func (v *visitor) post(path string, form url.Values, headers ...string) (*http.Response, string) {
	v.t.Helper()
	if v.cookies["csrf_"] == "" {
		v.get("/cart")
	}
	if form == nil {
		form = url.Values{}
	}
	form.Set("csrf", v.cookies["csrf_"])
	req := httptest.NewRequest("POST", path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	return v.do(req)
}

func extractCookie(resp *http.Response, name string) string {
	for _, c := range resp.Cookies() {
		if c.Name == name {
			return c.Value
		}
	}
	return ""
}
