package view

import (
	"adsstore/internal/domain"
)

const cardDescriptionRunes = 80

type ProductCard struct {
	ID          string
	Name        string
	Image       string
	Excerpt     string
	Price       string
	OfferPrice  string // set only when discounted
	HasDiscount bool
	SoldOut     bool
}

func NewProductCard(p domain.Product) ProductCard {
	card := ProductCard{
		ID:          p.ID,
		Name:        p.Name,
		Image:       assetURL(p.MainImage()),
		Excerpt:     excerpt(p.Description, cardDescriptionRunes),
		Price:       FormatCOP(p.Price),
		HasDiscount: p.HasDiscount(),
		SoldOut:     p.SoldOut,
	}
	if card.HasDiscount {
		card.OfferPrice = FormatCOP(p.Discount)
	}
	return card
}

func NewProductCards(ps []domain.Product) []ProductCard {
	out := make([]ProductCard, 0, len(ps))
	for _, p := range ps {
		out = append(out, NewProductCard(p))
	}
	return out
}

// VariantChoice is a select box when several options exist, a fixed
// badge when exactly one does, and hidden otherwise.
type VariantChoice struct {
	Options []string
	Fixed   string
}

func (v VariantChoice) Selectable() bool { return len(v.Options) > 1 }

func newVariantChoice(opts []string) VariantChoice {
	switch len(opts) {
	case 0:
		return VariantChoice{}
	case 1:
		return VariantChoice{Fixed: opts[0]}
	default:
		return VariantChoice{Options: opts}
	}
}

type ProductDetail struct {
	ID          string
	Name        string
	Description string
	Price       string
	OfferPrice  string
	HasDiscount bool
	SoldOut     bool
	Images      []string
	Features    []string
	Video       string
	Color       VariantChoice
	Design      VariantChoice
}

func NewProductDetail(p domain.Product) ProductDetail {
	d := ProductDetail{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       FormatCOP(p.Price),
		HasDiscount: p.HasDiscount(),
		SoldOut:     p.SoldOut,
		Images:      assetURLs(p.Images),
		Features:    p.Features,
		Video:       p.Video,
		Color:       newVariantChoice(p.Colors),
		Design:      newVariantChoice(p.Designs),
	}
	if len(d.Images) == 0 {
		d.Images = []string{assetURL(domain.NoImage)}
	}
	if d.HasDiscount {
		d.OfferPrice = FormatCOP(p.Discount)
	}
	return d
}

func excerpt(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}
