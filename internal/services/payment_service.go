package services

import (
	"context"

	"adsstore/internal/config"
	"adsstore/internal/domain"
	"adsstore/internal/repos"
)

var shippingOptions = []domain.ShippingOption{
	{Key: "metro-fixed-fee", Label: "Envío área metropolitana", Detail: "Entrega de 1 a 2 días hábiles", Surcharge: 10000, CostLabel: "$10.000 COP"},
	{Key: "national-fixed-fee", Label: "Envío nacional", Detail: "Entrega de 3 a 5 días hábiles", Surcharge: 18000, CostLabel: "$18.000 COP"},
	{Key: "in-store-pickup-free", Label: "Recoger en tienda", Detail: "Te avisamos cuando tu pedido esté listo", Surcharge: 0, CostLabel: "SIN COSTO"},
	{Key: "digital-product-free", Label: "Producto digital", Detail: "Enviamos el archivo a tu correo", Surcharge: 0, CostLabel: "SIN COSTO"},
	{Key: "carrier-dependent-variable", Label: "Contra entrega", Detail: "Pagas el envío al recibir", Surcharge: 0, CostLabel: "El costo depende de la transportadora"},
}

// ShippingOptions lists the fixed shipping choices in display order.
func ShippingOptions() []domain.ShippingOption {
	out := make([]domain.ShippingOption, len(shippingOptions))
	copy(out, shippingOptions)
	return out
}

func ShippingOptionByKey(key string) (domain.ShippingOption, bool) {
	for _, o := range shippingOptions {
		if o.Key == key {
			return o, true
		}
	}
	return domain.ShippingOption{}, false
}

// PaymentMethods builds the instruction panels from configured account data.
func PaymentMethods(pc config.PaymentConfig) []domain.PaymentMethod {
	return []domain.PaymentMethod{
		{
			Key:   "transferencia",
			Label: "Transferencia bancaria",
			Instructions: []string{
				"Cuenta: " + pc.BankAccount,
				"Titular: " + pc.AccountName,
				"Envía el comprobante por WhatsApp para confirmar tu pedido.",
			},
		},
		{
			Key:   "llave",
			Label: "Llave Bancolombia",
			Instructions: []string{
				"Transfiere desde tu banco usando nuestra llave.",
				"Titular: " + pc.AccountName,
			},
			CopyValue: pc.Llave,
		},
		{
			Key:   "nequi",
			Label: "Nequi",
			Instructions: []string{
				"Número Nequi: " + pc.Nequi,
				"Envía el comprobante por WhatsApp para confirmar tu pedido.",
			},
		},
	}
}

// Summarize totals subtotal, taxes and the selected shipping surcharge.
// The stored snapshot total is not trusted: it may carry the cart page's
// placeholder shipping fee. An unknown or empty key adds nothing.
func Summarize(snap domain.CheckoutSnapshot, shippingKey string) domain.PaymentSummary {
	opt, _ := ShippingOptionByKey(shippingKey)
	return domain.PaymentSummary{
		Found:    true,
		Snapshot: snap,
		Shipping: opt,
		Total:    snap.Subtotal + snap.Taxes + opt.Surcharge,
	}
}

type PaymentService struct {
	Storage repos.Storage
	methods []domain.PaymentMethod
}

func NewPaymentService(storage repos.Storage, pc config.PaymentConfig) *PaymentService {
	return &PaymentService{Storage: storage, methods: PaymentMethods(pc)}
}

func (s *PaymentService) ShippingOptions() []domain.ShippingOption { return ShippingOptions() }

func (s *PaymentService) Methods() []domain.PaymentMethod {
	out := make([]domain.PaymentMethod, len(s.methods))
	copy(out, s.methods)
	return out
}

func (s *PaymentService) MethodByKey(key string) (domain.PaymentMethod, bool) {
	for _, m := range s.methods {
		if m.Key == key {
			return m, true
		}
	}
	return domain.PaymentMethod{}, false
}

// Summary reads the visitor's checkout snapshot and applies the current
// selections. A missing snapshot gives Found=false with the selections
// still echoed; err is set only when a stored record could not be used.
func (s *PaymentService) Summary(ctx context.Context, sid, shippingKey, methodKey string) (domain.PaymentSummary, error) {
	method, _ := s.MethodByKey(methodKey)
	snap, found, err := LoadCheckout(ctx, s.Storage, sid)
	if !found {
		opt, _ := ShippingOptionByKey(shippingKey)
		return domain.PaymentSummary{Shipping: opt, Method: method}, err
	}
	sum := Summarize(snap, shippingKey)
	sum.Method = method
	return sum, nil
}
