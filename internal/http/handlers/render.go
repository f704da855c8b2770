package handlers

import (
	"github.com/gofiber/fiber/v2"

	"adsstore/internal/services"
)

const flashCookie = "flash"

// flash codes map to fixed messages so cookie values stay plain ASCII.
var flashMessages = map[string]string{
	"added":   "Producto agregado al carrito",
	"cleared": "Carrito vaciado",
}

func setFlash(c *fiber.Ctx, code string) {
	c.Cookie(&fiber.Cookie{Name: flashCookie, Value: code, Path: "/", HTTPOnly: true, SameSite: fiber.CookieSameSiteLaxMode})
}

func takeFlash(c *fiber.Ctx) string {
	code := c.Cookies(flashCookie)
	if code == "" {
		return ""
	}
	c.ClearCookie(flashCookie)
	return flashMessages[code]
}

func render(c *fiber.Ctx, tmpl string, data fiber.Map) error {
	if data == nil {
		data = fiber.Map{}
	}
	if cart, ok := c.Locals(localCart).(*services.Cart); ok && cart != nil {
		data["CartCount"] = cart.Count()
	}
	if msg := takeFlash(c); msg != "" {
		data["Flash"] = msg
	}
	// Pick up the token the CSRF middleware put into Locals
	tok, _ := c.Locals("CSRFToken").(string)
	if tok == "" {
		// Fallback: read the CSRF cookie directly if Locals wasn't populated
		tok = c.Cookies("csrf_")
	}
	if tok != "" {
		data["CSRFToken"] = tok
	}
	return c.Render(tmpl, data)
}

// notFound renders the shared message page with status.
func notFound(c *fiber.Ctx, status int, msg string) error {
	return render(c.Status(status), "notfound", fiber.Map{"Message": msg})
}
