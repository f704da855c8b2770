package handlers

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	applog "adsstore/internal/log"
	"adsstore/internal/services"
	"adsstore/internal/validate"
	"adsstore/internal/view"
)

// APIHandler serves JSON for pages that update without a reload.
type APIHandler struct {
	Catalog *services.CatalogService
	Payment *services.PaymentService
}

type cartJSON struct {
	Items    []cartLineJSON `json:"items"`
	Count    int            `json:"count"`
	Subtotal int64          `json:"subtotal"`
	Shipping int64          `json:"shipping"`
	Total    int64          `json:"total"`
}

type cartLineJSON struct {
	ID        string `json:"id"`
	Name      string `json:"nombre"`
	Price     int64  `json:"precio"`
	Quantity  int    `json:"cantidad"`
	Color     string `json:"color,omitempty"`
	Design    string `json:"diseno,omitempty"`
	LineTotal string `json:"lineTotal"`
}

func (h *APIHandler) Cart(c *fiber.Ctx) error {
	cart := cartFrom(c)
	out := cartJSON{
		Items:    []cartLineJSON{},
		Count:    cart.Count(),
		Subtotal: cart.Subtotal(),
		Shipping: cart.Shipping(),
		Total:    cart.Total(),
	}
	for _, it := range cart.Items() {
		out.Items = append(out.Items, cartLineJSON{
			ID: it.ID, Name: it.Name, Price: it.Price, Quantity: it.Quantity,
			Color: it.Color, Design: it.Design, LineTotal: view.FormatCOP(it.LineTotal()),
		})
	}
	return c.JSON(out)
}

func (h *APIHandler) Availability(c *fiber.Ctx) error {
	productID := strings.TrimSpace(c.Query("productId"))
	if productID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "missing productId"})
	}
	if _, ok := validate.ID(productID); !ok {
		applog.Security(c.Status(fiber.StatusBadRequest), "validation.fail", map[string]any{"field": "productId"})
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid productId"})
	}
	p, err := h.Catalog.GetProduct(c.UserContext(), productID)
	switch {
	case errors.Is(err, services.ErrProductNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "product not found"})
	case err != nil:
		applog.Error(c.Status(fiber.StatusServiceUnavailable), "catalog.load", err, nil)
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": "catalog unavailable"})
	}
	return c.JSON(fiber.Map{"productId": p.ID, "available": !p.SoldOut, "price": p.EffectivePrice()})
}

func (h *APIHandler) PaymentSummary(c *fiber.Ctx) error {
	shipping, method := selections(c)
	sum, err := h.Payment.Summary(c.UserContext(), sidFrom(c), shipping, method)
	if err != nil {
		applog.Error(c, "payment.load", err, nil)
	}
	page := view.NewPaymentPage(sum, nil, nil)
	return c.JSON(fiber.Map{
		"found":        sum.Found,
		"shipping":     sum.Shipping.Key,
		"method":       sum.Method.Key,
		"subtotal":     sum.Snapshot.Subtotal,
		"taxes":        sum.Snapshot.Taxes,
		"surcharge":    sum.Shipping.Surcharge,
		"total":        sum.Total,
		"shippingCost": page.ShippingCost,
		"totalLabel":   page.Total,
	})
}
