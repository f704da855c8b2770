package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	applog "adsstore/internal/log"
	"adsstore/internal/services"
)

const (
	sidCookie = "sid"
	localSID  = "sid"
	localCart = "cart"
)

// Session gives every visitor a `sid` cookie and loads their cart once per
// request. It stands in for the browser's per-origin local storage.
type Session struct {
	Carts  *services.CartService
	Secure bool
}

func (s *Session) ensureSID(c *fiber.Ctx) string {
	sid := c.Cookies(sidCookie)
	if _, err := uuid.Parse(sid); err == nil {
		return sid
	}
	if sid != "" {
		applog.Security(c, "session.sid.invalid", nil)
	}
	sid = uuid.NewString()
	c.Cookie(&fiber.Cookie{
		Name:     sidCookie,
		Value:    sid,
		Path:     "/",
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
		Secure:   s.Secure,
	})
	return sid
}

// Attach is middleware for every page and API route.
func (s *Session) Attach(c *fiber.Ctx) error {
	sid := s.ensureSID(c)
	cart := s.Carts.Load(c.UserContext(), sid)
	if err := cart.Discarded(); err != nil {
		applog.Error(c, "cart.load.discard", err, nil)
	}
	c.Locals(localSID, sid)
	c.Locals(localCart, cart)
	return c.Next()
}

func sidFrom(c *fiber.Ctx) string {
	sid, _ := c.Locals(localSID).(string)
	return sid
}

func cartFrom(c *fiber.Ctx) *services.Cart {
	cart, _ := c.Locals(localCart).(*services.Cart)
	return cart
}
