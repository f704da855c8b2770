package handlers

import (
	"github.com/gofiber/fiber/v2"

	applog "adsstore/internal/log"
	"adsstore/internal/services"
	"adsstore/internal/validate"
	"adsstore/internal/view"
)

type PaymentHandler struct {
	Payment *services.PaymentService
}

// selections reads the shipping and method picks. Malformed keys select nothing.
func selections(c *fiber.Ctx) (shipping, method string) {
	shipping, ok := validate.Key(c.Query("shipping"))
	if !ok {
		applog.Security(c, "validation.fail", map[string]any{"field": "shipping"})
		shipping = ""
	}
	method, ok = validate.Key(c.Query("method"))
	if !ok {
		applog.Security(c, "validation.fail", map[string]any{"field": "method"})
		method = ""
	}
	return shipping, method
}

func (h *PaymentHandler) View(c *fiber.Ctx) error {
	shipping, method := selections(c)
	sum, err := h.Payment.Summary(c.UserContext(), sidFrom(c), shipping, method)
	if err != nil {
		applog.Error(c, "payment.load", err, nil)
	}
	page := view.NewPaymentPage(sum, h.Payment.ShippingOptions(), h.Payment.Methods())
	return render(c, "payment", fiber.Map{"Pay": page})
}
