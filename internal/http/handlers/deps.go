package handlers

import (
	"adsstore/internal/catalog"
	"adsstore/internal/config"
	"adsstore/internal/repos"
	"adsstore/internal/services"
)

type Deps struct {
	Session         *Session
	CategoryHandler *CategoryHandler
	ProductHandler  *ProductHandler
	SearchHandler   *SearchHandler
	CartHandler     *CartHandler
	CheckoutHandler *CheckoutHandler
	PaymentHandler  *PaymentHandler
	APIHandler      *APIHandler
}

func NewDeps(storage repos.Storage, loader *catalog.Loader, cfg config.Config, rec services.Recorder) *Deps {
	catalogSvc := services.NewCatalogService(loader)
	cartSvc := services.NewCartService(storage, loader, rec)
	paySvc := services.NewPaymentService(storage, cfg.Payment)

	return &Deps{
		Session:         &Session{Carts: cartSvc, Secure: cfg.CookieSecure},
		CategoryHandler: &CategoryHandler{Catalog: catalogSvc},
		ProductHandler:  &ProductHandler{Catalog: catalogSvc},
		SearchHandler:   &SearchHandler{Catalog: catalogSvc},
		CartHandler:     &CartHandler{Cart: cartSvc},
		CheckoutHandler: &CheckoutHandler{},
		PaymentHandler:  &PaymentHandler{Payment: paySvc},
		APIHandler:      &APIHandler{Catalog: catalogSvc, Payment: paySvc},
	}
}
