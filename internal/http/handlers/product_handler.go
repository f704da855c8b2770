package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	applog "adsstore/internal/log"
	"adsstore/internal/services"
	"adsstore/internal/validate"
	"adsstore/internal/view"
)

const msgProductMissing = "Producto no encontrado"

type ProductHandler struct {
	Catalog *services.CatalogService
}

func (h *ProductHandler) Detail(c *fiber.Ctx) error {
	raw := c.Query("id")
	if raw == "" {
		return notFound(c, fiber.StatusNotFound, msgProductMissing)
	}
	id, ok := validate.ID(raw)
	if !ok {
		applog.Security(c.Status(fiber.StatusNotFound), "validation.fail", map[string]any{"field": "product"})
		return notFound(c, fiber.StatusNotFound, msgProductMissing)
	}
	p, err := h.Catalog.GetProduct(c.UserContext(), id)
	switch {
	case errors.Is(err, services.ErrProductNotFound):
		return notFound(c, fiber.StatusNotFound, msgProductMissing)
	case err != nil:
		applog.Error(c.Status(fiber.StatusServiceUnavailable), "catalog.load", err, map[string]any{"product": id})
		return notFound(c, fiber.StatusServiceUnavailable, "Error cargando productos")
	}
	return render(c, "product", fiber.Map{"P": view.NewProductDetail(p)})
}
