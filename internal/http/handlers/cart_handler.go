package handlers

import (
	"errors"
	"net/url"
	"strings"

	"github.com/gofiber/fiber/v2"

	applog "adsstore/internal/log"
	"adsstore/internal/services"
	"adsstore/internal/validate"
	"adsstore/internal/view"
)

type CartHandler struct {
	Cart *services.CartService
}

func (h *CartHandler) View(c *fiber.Ctx) error {
	return render(c, "cart", fiber.Map{"Cart": view.NewCartPage(cartFrom(c))})
}

func (h *CartHandler) Add(c *fiber.Ctx) error {
	productID, ok := validate.ID(c.FormValue("productId"))
	if !ok {
		applog.Security(c.Status(fiber.StatusNotFound), "validation.fail", map[string]any{"field": "productId"})
		return notFound(c, fiber.StatusNotFound, "Producto no encontrado.")
	}
	qty := validate.Qty(c.FormValue("qty"))
	color, okColor := validate.Variant(c.FormValue("color"))
	design, okDesign := validate.Variant(c.FormValue("diseno"))
	if !okColor || !okDesign {
		applog.Security(c.Status(fiber.StatusBadRequest), "validation.fail", map[string]any{"field": "variant"})
		return notFound(c, fiber.StatusBadRequest, "Selección de color o diseño no válida")
	}

	_, err := h.Cart.AddByID(c.UserContext(), cartFrom(c), productID, color, design, qty)
	switch {
	case errors.Is(err, services.ErrProductNotFound):
		return notFound(c, fiber.StatusNotFound, "Producto no encontrado.")
	case errors.Is(err, services.ErrOutOfStock):
		applog.Info(c.Status(fiber.StatusConflict), "cart.add.soldout", map[string]any{"product": productID})
		return notFound(c, fiber.StatusConflict, "Este producto está agotado")
	case errors.Is(err, services.ErrInvalidVariant):
		applog.Security(c.Status(fiber.StatusBadRequest), "validation.fail", map[string]any{"field": "variant", "product": productID})
		return notFound(c, fiber.StatusBadRequest, "Selección de color o diseño no válida")
	case errors.Is(err, services.ErrCatalogUnavailable):
		applog.Error(c.Status(fiber.StatusServiceUnavailable), "catalog.load", err, nil)
		return notFound(c, fiber.StatusServiceUnavailable, "Error cargando productos")
	case err != nil:
		applog.Error(c.Status(fiber.StatusInternalServerError), "cart.add", err, map[string]any{"product": productID})
		return err
	}

	applog.Audit(c, "cart.add", map[string]any{"product": productID, "qty": qty})
	setFlash(c, "added")
	return c.Redirect(backTo(c, "/cart"))
}

func (h *CartHandler) Update(c *fiber.Ctx) error {
	id, ok := validate.ID(c.FormValue("id"))
	if !ok {
		applog.Security(c.Status(fiber.StatusBadRequest), "validation.fail", map[string]any{"field": "id"})
		return notFound(c, fiber.StatusBadRequest, "Producto no válido")
	}
	qty, ok := validate.Quantity(c.FormValue("quantity"))
	if !ok {
		applog.Security(c.Status(fiber.StatusBadRequest), "validation.fail", map[string]any{"field": "quantity"})
		return notFound(c, fiber.StatusBadRequest, "Cantidad no válida")
	}
	if err := cartFrom(c).UpdateQuantity(c.UserContext(), id, qty); err != nil {
		applog.Error(c.Status(fiber.StatusInternalServerError), "cart.update", err, map[string]any{"product": id})
		return err
	}
	applog.Audit(c, "cart.update", map[string]any{"product": id, "qty": qty})
	return c.Redirect("/cart")
}

func (h *CartHandler) Remove(c *fiber.Ctx) error {
	id, ok := validate.ID(c.FormValue("id"))
	if !ok {
		applog.Security(c.Status(fiber.StatusBadRequest), "validation.fail", map[string]any{"field": "id"})
		return notFound(c, fiber.StatusBadRequest, "Producto no válido")
	}
	if err := cartFrom(c).RemoveItem(c.UserContext(), id); err != nil {
		applog.Error(c.Status(fiber.StatusInternalServerError), "cart.remove", err, map[string]any{"product": id})
		return err
	}
	applog.Audit(c, "cart.remove", map[string]any{"product": id})
	return c.Redirect("/cart")
}

func (h *CartHandler) Clear(c *fiber.Ctx) error {
	if err := cartFrom(c).Clear(c.UserContext()); err != nil {
		applog.Error(c.Status(fiber.StatusInternalServerError), "cart.clear", err, nil)
		return err
	}
	applog.Audit(c, "cart.clear", nil)
	setFlash(c, "cleared")
	return c.Redirect("/cart")
}

// backTo returns the same-site path from Referer, or fallback.
func backTo(c *fiber.Ctx, fallback string) string {
	ref := c.Get(fiber.HeaderReferer)
	if ref == "" {
		return fallback
	}
	u, err := url.Parse(ref)
	if err != nil || (u.Host != "" && u.Host != c.Hostname()) {
		return fallback
	}
	if !strings.HasPrefix(u.Path, "/") || strings.HasPrefix(u.Path, "//") {
		return fallback
	}
	return u.RequestURI()
}
