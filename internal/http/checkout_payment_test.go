package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"os"
	"strings"
	"testing"

	"adsstore/internal/domain"
)

func TestCheckoutEmptyCart(t *testing.T) {
	app, storage := newStoreApp(t, writeCatalog(t, testCatalog))
	v := newVisitor(t, app)

	resp, body := v.post("/checkout", nil)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
	if loc := resp.Header.Get("Location"); loc != "" {
		t.Fatalf("empty checkout must not redirect, got %q", loc)
	}
	if !strings.Contains(body, "Tu carrito está vacío") {
		t.Fatalf("empty cart message missing; body=%s", body)
	}
	_, found, err := storage.GetItem(context.Background(), v.cookies["sid"], domain.CheckoutStorageKey)
	if err != nil {
		t.Fatal(err)
	}
	if found {
		t.Fatal("checkoutData written for an empty cart")
	}
}

func TestCheckoutToPayment(t *testing.T) {
	app, storage := newStoreApp(t, writeCatalog(t, testCatalog))
	v := newVisitor(t, app)

	v.post("/cart/add", url.Values{"productId": {"cam-1"}, "qty": {"2"}})
	v.post("/cart/add", url.Values{"productId": {"gor-2"}})

	resp, _ := v.post("/checkout", nil)
	if resp.StatusCode != http.StatusFound || resp.Header.Get("Location") != "/payment" {
		t.Fatalf("expected redirect to /payment, got %d %q", resp.StatusCode, resp.Header.Get("Location"))
	}

	raw, found, err := storage.GetItem(context.Background(), v.cookies["sid"], domain.CheckoutStorageKey)
	if err != nil || !found {
		t.Fatalf("snapshot missing: found=%v err=%v", found, err)
	}
	var snap domain.CheckoutSnapshot
	if err := json.Unmarshal([]byte(raw), &snap); err != nil {
		t.Fatal(err)
	}
	if snap.Subtotal != 2500 || snap.Taxes != 0 || snap.Total != 2500 || len(snap.Items) != 2 {
		t.Fatalf("unexpected snapshot: %+v", snap)
	}
	if snap.Items[0].Price != "$1.000" || snap.Items[0].Quantity != 2 {
		t.Fatalf("unexpected first item: %+v", snap.Items[0])
	}

	// pickup is free: total stays at the subtotal
	_, body := v.get("/payment?shipping=in-store-pickup-free&method=llave")
	for _, want := range []string{"$2.500 COP", "SIN COSTO", "Camiseta", "@adsstore", `id="panel-llave" data-method="llave">`} {
		if !strings.Contains(body, want) {
			t.Fatalf("payment page missing %q; body=%s", want, body)
		}
	}
	if !strings.Contains(body, `id="panel-nequi" data-method="nequi" hidden>`) {
		t.Fatalf("unselected method panel should render hidden; body=%s", body)
	}

	_, body = v.get("/payment?shipping=metro-fixed-fee")
	if !strings.Contains(body, "$12.500 COP") || !strings.Contains(body, "$10.000 COP") {
		t.Fatalf("metro surcharge not applied; body=%s", body)
	}
}

func TestPaymentNationalShipping(t *testing.T) {
	app, _ := newStoreApp(t, writeCatalog(t, testCatalog))
	v := newVisitor(t, app)

	v.post("/cart/add", url.Values{"productId": {"buz-3"}})
	v.post("/checkout", nil)

	resp, body := v.get("/api/v1/payment/summary?shipping=national-fixed-fee")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("summary: status %d", resp.StatusCode)
	}
	var sum struct {
		Found        bool   `json:"found"`
		Total        int64  `json:"total"`
		ShippingCost string `json:"shippingCost"`
		TotalLabel   string `json:"totalLabel"`
	}
	if err := json.Unmarshal([]byte(body), &sum); err != nil {
		t.Fatal(err)
	}
	if !sum.Found || sum.Total != 28000 || sum.ShippingCost != "$18.000 COP" || sum.TotalLabel != "$28.000 COP" {
		t.Fatalf("unexpected summary: %+v", sum)
	}

	_, body = v.get("/payment?shipping=carrier-dependent-variable")
	if !strings.Contains(body, "El costo depende de la transportadora") || !strings.Contains(body, "$10.000 COP") {
		t.Fatalf("carrier option wrong; body=%s", body)
	}
}

// The payment page recomputes in place: pago.js swaps the totals from the
// summary API and reveals the chosen panel. The submit button stays for
// clients without scripts.
func TestPaymentRecomputesOnSelection(t *testing.T) {
	app, _ := newStoreApp(t, writeCatalog(t, testCatalog))
	v := newVisitor(t, app)
	v.post("/cart/add", url.Values{"productId": {"buz-3"}})
	v.post("/checkout", nil)

	_, body := v.get("/payment")
	for _, want := range []string{
		`<script src="/static/js/pago.js" defer></script>`,
		`id="form-pago"`,
		`data-summary="/api/v1/payment/summary"`,
		`id="total"`,
		`id="costo-envio"`,
		`<button type="submit" class="no-js">Actualizar</button>`,
		`id="panel-transferencia" data-method="transferencia" hidden>`,
		`id="panel-nequi" data-method="nequi" hidden>`,
	} {
		if !strings.Contains(body, want) {
			t.Fatalf("payment page missing %q; body=%s", want, body)
		}
	}

	script, err := os.ReadFile("../../web/static/js/pago.js")
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{`"change"`, "data-summary", `"costo-envio"`, `"total"`, "sum.totalLabel", "sum.shippingCost", ".hidden", "requestSubmit"} {
		if !strings.Contains(string(script), want) {
			t.Fatalf("pago.js missing %q", want)
		}
	}

	// what the script fetches after a radio change
	resp, body := v.get("/api/v1/payment/summary?shipping=metro-fixed-fee&method=nequi")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("summary: status %d", resp.StatusCode)
	}
	var sum struct {
		Method       string `json:"method"`
		ShippingCost string `json:"shippingCost"`
		TotalLabel   string `json:"totalLabel"`
	}
	if err := json.Unmarshal([]byte(body), &sum); err != nil {
		t.Fatal(err)
	}
	if sum.Method != "nequi" || sum.ShippingCost != "$10.000 COP" || sum.TotalLabel != "$20.000 COP" {
		t.Fatalf("unexpected summary: %+v", sum)
	}
}

func TestPaymentWithoutSnapshot(t *testing.T) {
	app, _ := newStoreApp(t, writeCatalog(t, testCatalog))
	v := newVisitor(t, app)

	resp, body := v.get("/payment?shipping=bogus-key&method=DROP")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if !strings.Contains(body, "No hay una compra en curso.") {
		t.Fatalf("blank summary expected; body=%s", body)
	}
	if strings.Contains(body, " checked") {
		t.Fatalf("nothing should be selected")
	}
}
