package handlers

import "github.com/gofiber/fiber/v2"

// Mount registers the storefront routes. Anything registered on app before
// Mount (static files, metrics, health) skips the visitor session.
func Mount(app *fiber.App, d *Deps) {
	app.Use(d.Session.Attach)

	app.Get("/", d.CategoryHandler.Home)
	app.Get("/search", d.SearchHandler.Search)
	app.Get("/category", d.CategoryHandler.List)
	app.Get("/product", d.ProductHandler.Detail)

	app.Get("/cart", d.CartHandler.View)
	app.Post("/cart/add", d.CartHandler.Add)
	app.Post("/cart/update", d.CartHandler.Update)
	app.Post("/cart/remove", d.CartHandler.Remove)
	app.Post("/cart/clear", d.CartHandler.Clear)
	app.Post("/checkout", d.CheckoutHandler.Create)
	app.Get("/payment", d.PaymentHandler.View)

	api := app.Group("/api/v1")
	api.Get("/cart", d.APIHandler.Cart)
	api.Get("/availability", d.APIHandler.Availability)
	api.Get("/payment/summary", d.APIHandler.PaymentSummary)

	app.Use(func(c *fiber.Ctx) error {
		return notFound(c, fiber.StatusNotFound, "Página no encontrada")
	})
}
