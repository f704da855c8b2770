package view

import "adsstore/internal/domain"

// CartState is the read side of the cart store.
type CartState interface {
	Items() []domain.CartLineItem
	Count() int
	Subtotal() int64
	Shipping() int64
	Total() int64
}

type CartRow struct {
	ID        string
	Name      string
	Image     string
	Color     string
	Design    string
	Quantity  int
	Decrement int
	Increment int
	LineTotal string
}

type CartPage struct {
	Empty    bool
	Rows     []CartRow
	Count    int
	Subtotal string
	Shipping string
	Total    string
}

// NewCartPage projects the cart. Totals come from the store on every call.
func NewCartPage(cart CartState) CartPage {
	items := cart.Items()
	page := CartPage{
		Empty:    len(items) == 0,
		Rows:     make([]CartRow, 0, len(items)),
		Count:    cart.Count(),
		Subtotal: FormatCOP(cart.Subtotal()),
		Shipping: FormatCOP(cart.Shipping()),
		Total:    FormatCOP(cart.Total()),
	}
	for _, it := range items {
		page.Rows = append(page.Rows, CartRow{
			ID:        it.ID,
			Name:      it.Name,
			Image:     assetURL(it.Image),
			Color:     it.Color,
			Design:    it.Design,
			Quantity:  it.Quantity,
			Decrement: it.Quantity - 1,
			Increment: it.Quantity + 1,
			LineTotal: FormatCOP(it.LineTotal()),
		})
	}
	return page
}
