package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	applog "adsstore/internal/log"
	"adsstore/internal/services"
	"adsstore/internal/validate"
	"adsstore/internal/view"
)

const msgCatalogDown = "Error al cargar los productos."

type CategoryHandler struct {
	Catalog *services.CatalogService
}

func (h *CategoryHandler) Home(c *fiber.Ctx) error {
	products, err := h.Catalog.ListProducts(c.UserContext())
	if err != nil {
		applog.Error(c.Status(fiber.StatusServiceUnavailable), "catalog.load", err, nil)
		return render(c.Status(fiber.StatusServiceUnavailable), "home", fiber.Map{"Err": msgCatalogDown})
	}
	cats, _ := h.Catalog.ListCategories(c.UserContext())
	return render(c, "home", fiber.Map{
		"Categories": cats,
		"Products":   view.NewProductCards(products),
	})
}

func (h *CategoryHandler) List(c *fiber.Ctx) error {
	raw := c.Query("categoria")
	if strings.TrimSpace(raw) == "" {
		return render(c, "category", fiber.Map{"Message": "Categoría no especificada"})
	}
	name, ok := validate.Category(raw)
	if !ok {
		applog.Security(c.Status(fiber.StatusBadRequest), "validation.fail", map[string]any{"field": "categoria"})
		return render(c.Status(fiber.StatusBadRequest), "category", fiber.Map{"Message": "Categoría no válida"})
	}
	products, err := h.Catalog.ListProductsByCategory(c.UserContext(), name)
	if err != nil {
		applog.Error(c.Status(fiber.StatusServiceUnavailable), "catalog.load", err, map[string]any{"categoria": name})
		return render(c.Status(fiber.StatusServiceUnavailable), "category", fiber.Map{"Category": name, "Err": msgCatalogDown})
	}
	data := fiber.Map{"Category": name, "Products": view.NewProductCards(products)}
	if len(products) == 0 {
		data["Message"] = "No hay productos en esta categoría."
	}
	return render(c, "category", data)
}
