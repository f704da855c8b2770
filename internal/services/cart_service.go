package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"adsstore/internal/catalog"
	"adsstore/internal/domain"
	"adsstore/internal/repos"
)

var (
	ErrEmptyCart       = errors.New("cart is empty")
	ErrProductNotFound = errors.New("product not found")
	ErrOutOfStock      = errors.New("product is out of stock")
	ErrInvalidVariant  = errors.New("variant not offered for this product")

	ErrCatalogUnavailable = errors.New("catalog unavailable")
)

// ShippingFlatFee is the cart page's placeholder shipping charge.
const ShippingFlatFee int64 = 5000

// MaxAddQty caps a single add request.
const MaxAddQty = 50

// MaxLineQuantity caps the units held on one cart line, whether reached by
// repeated adds or set by an update.
const MaxLineQuantity = 999

// Recorder observes cart activity. A nil Recorder is allowed.
type Recorder interface {
	ObserveCartMutation(op string)
	ObserveCheckout(ok bool)
}

type CartService struct {
	Storage repos.Storage
	Catalog *catalog.Loader
	Metrics Recorder
}

func NewCartService(storage repos.Storage, loader *catalog.Loader, m Recorder) *CartService {
	return &CartService{Storage: storage, Catalog: loader, Metrics: m}
}

// Load seeds a cart from the visitor's `carrito` record. It never fails:
// a missing, unreadable or malformed record yields an empty cart, and
// Discarded reports why.
func (s *CartService) Load(ctx context.Context, sid string) *Cart {
	c := &Cart{storage: s.Storage, sid: sid, metrics: s.Metrics, items: []domain.CartLineItem{}}
	raw, found, err := s.Storage.GetItem(ctx, sid, domain.CartStorageKey)
	if err != nil {
		c.discarded = fmt.Errorf("read cart: %w", err)
		return c
	}
	if !found {
		return c
	}
	var items []domain.CartLineItem
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		c.discarded = fmt.Errorf("decode cart: %w", err)
		return c
	}
	for _, it := range items {
		if it.Quantity < 1 {
			it.Quantity = 1
		}
		if it.Quantity > MaxLineQuantity {
			it.Quantity = MaxLineQuantity
		}
		c.items = append(c.items, it)
	}
	return c
}

// AddByID looks the product up in the cached catalog and adds qty units.
func (s *CartService) AddByID(ctx context.Context, cart *Cart, productID, color, design string, qty int) (domain.Product, error) {
	cat, err := s.Catalog.Load(ctx)
	if err != nil {
		return domain.Product{}, fmt.Errorf("%w: %w", ErrCatalogUnavailable, err)
	}
	p, ok := cat.ByID(productID)
	if !ok {
		return domain.Product{}, ErrProductNotFound
	}
	return p, s.AddProduct(ctx, cart, p, color, design, qty)
}

// AddProduct adds qty units one at a time, the same as repeated clicks.
func (s *CartService) AddProduct(ctx context.Context, cart *Cart, p domain.Product, color, design string, qty int) error {
	line, err := LineFromProduct(p, color, design)
	if err != nil {
		return err
	}
	if qty < 1 {
		qty = 1
	}
	if qty > MaxAddQty {
		qty = MaxAddQty
	}
	for i := 0; i < qty; i++ {
		if err := cart.AddItem(ctx, line); err != nil {
			return err
		}
	}
	return nil
}

// LineFromProduct snapshots a product into a new cart line. Empty variant
// selections fall back to the product's first option.
func LineFromProduct(p domain.Product, color, design string) (domain.CartLineItem, error) {
	if p.SoldOut {
		return domain.CartLineItem{}, ErrOutOfStock
	}
	if color == "" {
		color = p.DefaultColor()
	} else if !p.OffersColor(color) {
		return domain.CartLineItem{}, fmt.Errorf("color %q: %w", color, ErrInvalidVariant)
	}
	if design == "" {
		design = p.DefaultDesign()
	} else if !p.OffersDesign(design) {
		return domain.CartLineItem{}, fmt.Errorf("design %q: %w", design, ErrInvalidVariant)
	}
	return domain.CartLineItem{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.EffectivePrice(),
		Image:       p.MainImage(),
		Quantity:    1,
		Color:       color,
		Design:      design,
	}, nil
}

// Cart is one visitor's cart store. Every mutation writes the full line
// list to storage before the in-memory list changes, so a failed write
// leaves both untouched.
type Cart struct {
	storage   repos.Storage
	sid       string
	metrics   Recorder
	items     []domain.CartLineItem
	discarded error
}

func (c *Cart) Discarded() error { return c.discarded }

func (c *Cart) Items() []domain.CartLineItem {
	out := make([]domain.CartLineItem, len(c.items))
	copy(out, c.items)
	return out
}

func (c *Cart) IsEmpty() bool { return len(c.items) == 0 }

// Count is the header badge value: total units, not lines.
func (c *Cart) Count() int {
	n := 0
	for _, it := range c.items {
		n += it.Quantity
	}
	return n
}

// AddItem merges by ID only: a second add of the same product bumps the
// quantity and keeps the first line's color and design. A line already at
// MaxLineQuantity is left as is.
func (c *Cart) AddItem(ctx context.Context, item domain.CartLineItem) error {
	next := c.Items()
	for i := range next {
		if next[i].ID == item.ID {
			if next[i].Quantity >= MaxLineQuantity {
				return nil
			}
			next[i].Quantity++
			return c.commit(ctx, "add", next)
		}
	}
	item.Quantity = 1
	return c.commit(ctx, "add", append(next, item))
}

// RemoveItem drops every line with id. Unknown ids are a no-op.
func (c *Cart) RemoveItem(ctx context.Context, id string) error {
	next := make([]domain.CartLineItem, 0, len(c.items))
	for _, it := range c.items {
		if it.ID != id {
			next = append(next, it)
		}
	}
	if len(next) == len(c.items) {
		return nil
	}
	return c.commit(ctx, "remove", next)
}

// UpdateQuantity clamps qty to [1, MaxLineQuantity]. Unknown ids are a no-op.
func (c *Cart) UpdateQuantity(ctx context.Context, id string, qty int) error {
	if qty < 1 {
		qty = 1
	}
	if qty > MaxLineQuantity {
		qty = MaxLineQuantity
	}
	next := c.Items()
	for i := range next {
		if next[i].ID == id {
			next[i].Quantity = qty
			return c.commit(ctx, "update", next)
		}
	}
	return nil
}

func (c *Cart) Clear(ctx context.Context) error {
	return c.commit(ctx, "clear", []domain.CartLineItem{})
}

func (c *Cart) Subtotal() int64 {
	var total int64
	for _, it := range c.items {
		total += it.LineTotal()
	}
	return total
}

func (c *Cart) Shipping() int64 {
	if len(c.items) > 0 {
		return ShippingFlatFee
	}
	return 0
}

func (c *Cart) Total() int64 { return c.Subtotal() + c.Shipping() }

// Checkout writes the `checkoutData` handoff for the payment page. An
// empty cart is refused with ErrEmptyCart and nothing is written.
func (c *Cart) Checkout(ctx context.Context) (domain.CheckoutSnapshot, error) {
	snap, err := BuildCheckoutSnapshot(c.items)
	if err == nil {
		err = SaveCheckout(ctx, c.storage, c.sid, snap)
	}
	if c.metrics != nil {
		c.metrics.ObserveCheckout(err == nil)
	}
	if err != nil {
		return domain.CheckoutSnapshot{}, err
	}
	return snap, nil
}

func (c *Cart) commit(ctx context.Context, op string, next []domain.CartLineItem) error {
	b, err := json.Marshal(next)
	if err != nil {
		return fmt.Errorf("encode cart: %w", err)
	}
	if err := c.storage.SetItem(ctx, c.sid, domain.CartStorageKey, string(b)); err != nil {
		return fmt.Errorf("persist cart: %w", err)
	}
	c.items = next
	c.discarded = nil
	if c.metrics != nil {
		c.metrics.ObserveCartMutation(op)
	}
	return nil
}
