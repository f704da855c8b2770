package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	applog "adsstore/internal/log"
	"adsstore/internal/services"
	"adsstore/internal/view"
)

// CheckoutHandler hands the cart to the payment page.
type CheckoutHandler struct{}

func (h *CheckoutHandler) Create(c *fiber.Ctx) error {
	cart := cartFrom(c)
	snap, err := cart.Checkout(c.UserContext())
	if errors.Is(err, services.ErrEmptyCart) {
		applog.Info(c.Status(fiber.StatusBadRequest), "checkout.empty", nil)
		return render(c.Status(fiber.StatusBadRequest), "cart", fiber.Map{
			"Cart": view.NewCartPage(cart),
			"Err":  "Tu carrito está vacío",
		})
	}
	if err != nil {
		applog.Error(c.Status(fiber.StatusInternalServerError), "checkout.save", err, nil)
		return err
	}
	applog.Audit(c, "checkout.create", map[string]any{"lines": len(snap.Items), "subtotal": snap.Subtotal})
	return c.Redirect("/payment")
}
