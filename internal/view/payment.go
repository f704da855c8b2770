package view

import "adsstore/internal/domain"

type PaymentItem struct {
	Title    string
	Image    string
	Price    string
	Quantity int
}

type ShippingChoice struct {
	Key      string
	Label    string
	Detail   string
	Selected bool
}

type MethodPanel struct {
	Key          string
	Label        string
	Instructions []string
	CopyValue    string
	Active       bool
}

type PaymentPage struct {
	Found        bool
	Items        []PaymentItem
	Subtotal     string
	Taxes        string
	ShippingCost string
	Total        string
	ShippingKey  string
	MethodKey    string
	Shipping     []ShippingChoice
	Methods      []MethodPanel
}

// NewPaymentPage renders the summary. Only the selected method's panel is
// marked active. An absent snapshot leaves every amount blank.
func NewPaymentPage(sum domain.PaymentSummary, options []domain.ShippingOption, methods []domain.PaymentMethod) PaymentPage {
	page := PaymentPage{
		Found:        sum.Found,
		ShippingKey:  sum.Shipping.Key,
		MethodKey:    sum.Method.Key,
		ShippingCost: sum.Shipping.CostLabel,
	}
	for _, o := range options {
		page.Shipping = append(page.Shipping, ShippingChoice{
			Key: o.Key, Label: o.Label, Detail: o.Detail, Selected: o.Key == sum.Shipping.Key,
		})
	}
	for _, m := range methods {
		page.Methods = append(page.Methods, MethodPanel{
			Key: m.Key, Label: m.Label, Instructions: m.Instructions, CopyValue: m.CopyValue,
			Active: m.Key == sum.Method.Key,
		})
	}
	if !sum.Found {
		return page
	}
	for _, it := range sum.Snapshot.Items {
		page.Items = append(page.Items, PaymentItem{
			Title: it.Title, Image: assetURL(it.Image), Price: it.Price, Quantity: it.Quantity,
		})
	}
	page.Subtotal = FormatCOPSuffix(sum.Snapshot.Subtotal)
	page.Taxes = FormatCOPSuffix(sum.Snapshot.Taxes)
	page.Total = FormatCOPSuffix(sum.Total)
	return page
}
