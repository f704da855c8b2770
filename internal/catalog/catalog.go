package catalog

import (
	"strings"

	"adsstore/internal/domain"
)

// Catalog is an immutable, loaded product collection.
type Catalog struct {
	products []domain.Product
	byID     map[string]int
}

func New(products []domain.Product) *Catalog {
	c := &Catalog{products: products, byID: make(map[string]int, len(products))}
	for i, p := range products {
		if _, dup := c.byID[p.ID]; !dup {
			c.byID[p.ID] = i
		}
	}
	return c
}

func (c *Catalog) All() []domain.Product {
	out := make([]domain.Product, len(c.products))
	copy(out, c.products)
	return out
}

func (c *Catalog) Len() int { return len(c.products) }

// ByID returns the first product carrying id.
func (c *Catalog) ByID(id string) (domain.Product, bool) {
	i, ok := c.byID[id]
	if !ok {
		return domain.Product{}, false
	}
	return c.products[i], true
}

// ByCategory keeps catalog order. Membership is an exact tag match.
func (c *Catalog) ByCategory(name string) []domain.Product {
	out := []domain.Product{}
	for _, p := range c.products {
		if p.InCategory(name) {
			out = append(out, p)
		}
	}
	return out
}

// Search matches q case-insensitively against name and description.
func (c *Catalog) Search(q string) []domain.Product {
	q = strings.ToLower(strings.TrimSpace(q))
	if q == "" {
		return c.All()
	}
	out := []domain.Product{}
	for _, p := range c.products {
		if strings.Contains(strings.ToLower(p.Name), q) || strings.Contains(strings.ToLower(p.Description), q) {
			out = append(out, p)
		}
	}
	return out
}

// Categories lists distinct tags in first-seen order.
func (c *Catalog) Categories() []string {
	seen := map[string]bool{}
	out := []string{}
	for _, p := range c.products {
		for _, cat := range p.Categories {
			if cat == "" || seen[cat] {
				continue
			}
			seen[cat] = true
			out = append(out, cat)
		}
	}
	return out
}
