package domain

// Storage keys shared by the cart page and the payment page.
const (
	CartStorageKey     = "carrito"
	CheckoutStorageKey = "checkoutData"
)

// NoImage is shown when a product has no pictures.
const NoImage = "img/no-image.png"

// Product is a read-only catalog record. Prices are whole COP.
type Product struct {
	ID          string   `json:"id" validate:"required"`
	Name        string   `json:"nombre" validate:"required"`
	Description string   `json:"descripcion"`
	Price       int64    `json:"precio" validate:"gte=0"`
	Discount    int64    `json:"descuento,omitempty" validate:"gte=0"`
	Images      []string `json:"imagenes,omitempty"`
	Categories  []string `json:"categorias,omitempty"`
	Colors      []string `json:"color,omitempty"`
	Designs     []string `json:"diseño,omitempty"`
	SoldOut     bool     `json:"agotado,omitempty"`
	Features    []string `json:"caracteristicas,omitempty"`
	Video       string   `json:"video,omitempty"`
}

func (p Product) HasDiscount() bool {
	return p.Discount > 0 && p.Discount < p.Price
}

// EffectivePrice is the price a cart line snapshots at add time.
func (p Product) EffectivePrice() int64 {
	if p.HasDiscount() {
		return p.Discount
	}
	return p.Price
}

func (p Product) MainImage() string {
	if len(p.Images) > 0 && p.Images[0] != "" {
		return p.Images[0]
	}
	return NoImage
}

func (p Product) InCategory(name string) bool {
	for _, c := range p.Categories {
		if c == name {
			return true
		}
	}
	return false
}

func (p Product) DefaultColor() string  { return first(p.Colors) }
func (p Product) DefaultDesign() string { return first(p.Designs) }

func (p Product) OffersColor(c string) bool  { return contains(p.Colors, c) }
func (p Product) OffersDesign(d string) bool { return contains(p.Designs, d) }

func first(xs []string) string {
	if len(xs) == 0 {
		return ""
	}
	return xs[0]
}

func contains(xs []string, s string) bool {
	for _, x := range xs {
		if x == s {
			return true
		}
	}
	return false
}

// CartLineItem is one persisted entry of the `carrito` snapshot.
// Lines are identified by ID only; Color and Design ride along.
type CartLineItem struct {
	ID          string `json:"id"`
	Name        string `json:"nombre"`
	Description string `json:"descripcion,omitempty"`
	Price       int64  `json:"precio"`
	Image       string `json:"imagen"`
	Quantity    int    `json:"cantidad"`
	Color       string `json:"color,omitempty"`
	Design      string `json:"diseno,omitempty"`
}

func (it CartLineItem) LineTotal() int64 {
	return it.Price * int64(it.Quantity)
}

// CheckoutItem carries a display-formatted price; it cannot be recomputed.
type CheckoutItem struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Price    string `json:"price"`
	Quantity int    `json:"quantity"`
	Image    string `json:"image"`
}

// CheckoutSnapshot is the one-shot handoff stored under `checkoutData`.
// Total excludes shipping, which is chosen on the payment page.
type CheckoutSnapshot struct {
	Items    []CheckoutItem `json:"items"`
	Subtotal int64          `json:"subtotal"`
	Taxes    int64          `json:"taxes"`
	Total    int64          `json:"total"`
}

type ShippingOption struct {
	Key       string
	Label     string
	Detail    string
	Surcharge int64
	CostLabel string
}

type PaymentMethod struct {
	Key          string
	Label        string
	Instructions []string
	CopyValue    string
}

// PaymentSummary is the payment page state for one request: the stored
// checkout snapshot plus the visitor's current shipping and payment picks.
type PaymentSummary struct {
	Found    bool
	Snapshot CheckoutSnapshot
	Shipping ShippingOption // zero value when nothing is selected
	Method   PaymentMethod  // zero value when nothing is selected
	Total    int64
}
