package services

import (
	"context"
	"encoding/json"
	"fmt"

	"adsstore/internal/domain"
	"adsstore/internal/repos"
	"adsstore/internal/view"
)

// BuildCheckoutSnapshot turns cart lines into the payment page handoff.
// Prices become display strings here. There is no tax engine, so taxes
// are always zero, and shipping is left for the payment page.
func BuildCheckoutSnapshot(items []domain.CartLineItem) (domain.CheckoutSnapshot, error) {
	if len(items) == 0 {
		return domain.CheckoutSnapshot{}, ErrEmptyCart
	}
	snap := domain.CheckoutSnapshot{Items: make([]domain.CheckoutItem, 0, len(items))}
	for _, it := range items {
		snap.Items = append(snap.Items, domain.CheckoutItem{
			ID:       it.ID,
			Title:    it.Name,
			Price:    view.FormatCOP(it.Price),
			Quantity: it.Quantity,
			Image:    it.Image,
		})
		snap.Subtotal += it.LineTotal()
	}
	snap.Taxes = 0
	snap.Total = snap.Subtotal + snap.Taxes
	return snap, nil
}

func SaveCheckout(ctx context.Context, st repos.Storage, sid string, snap domain.CheckoutSnapshot) error {
	b, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("encode checkout: %w", err)
	}
	if err := st.SetItem(ctx, sid, domain.CheckoutStorageKey, string(b)); err != nil {
		return fmt.Errorf("persist checkout: %w", err)
	}
	return nil
}

// LoadCheckout reports found=false for a missing or unusable record; err
// explains an unusable one.
func LoadCheckout(ctx context.Context, st repos.Storage, sid string) (domain.CheckoutSnapshot, bool, error) {
	raw, found, err := st.GetItem(ctx, sid, domain.CheckoutStorageKey)
	if err != nil {
		return domain.CheckoutSnapshot{}, false, fmt.Errorf("read checkout: %w", err)
	}
	if !found {
		return domain.CheckoutSnapshot{}, false, nil
	}
	var snap domain.CheckoutSnapshot
	if err := json.Unmarshal([]byte(raw), &snap); err != nil {
		return domain.CheckoutSnapshot{}, false, fmt.Errorf("decode checkout: %w", err)
	}
	return snap, true, nil
}
