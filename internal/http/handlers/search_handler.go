package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	applog "adsstore/internal/log"
	"adsstore/internal/services"
	"adsstore/internal/validate"
	"adsstore/internal/view"
)

type SearchHandler struct {
	Catalog *services.CatalogService
}

func (h *SearchHandler) Search(c *fiber.Ctx) error {
	rawQ := c.Query("q")
	q := ""
	if strings.TrimSpace(rawQ) != "" {
		var ok bool
		q, ok = validate.Q(rawQ)
		if !ok {
			applog.Security(c.Status(fiber.StatusBadRequest), "validation.fail", map[string]any{"field": "q", "value": rawQ})
			return render(c.Status(fiber.StatusBadRequest), "search", fiber.Map{
				"Q": "", "Products": []view.ProductCard{}, "Count": 0, "Err": "Escribe una búsqueda válida (solo letras y números)",
			})
		}
	}

	// An empty query lists the whole catalog.
	products, err := h.Catalog.Search(c.UserContext(), q)
	if err != nil {
		applog.Error(c.Status(fiber.StatusServiceUnavailable), "search.error", err, nil)
		return render(c.Status(fiber.StatusServiceUnavailable), "search", fiber.Map{"Q": q, "Err": msgCatalogDown})
	}

	return render(c, "search", fiber.Map{
		"Q": q, "Products": view.NewProductCards(products), "Count": len(products),
	})
}
