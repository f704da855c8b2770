package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Store records storefront activity. A nil *Store or one built with a
// nil registerer silently drops observations.
type Store struct {
	cartMutations *prometheus.CounterVec
	checkouts     *prometheus.CounterVec
	catalogLoads  *prometheus.CounterVec
	catalogSize   prometheus.Gauge
}

// New registers the storefront metrics on reg.
func New(reg prometheus.Registerer) *Store {
	if reg == nil {
		return &Store{}
	}
	s := &Store{
		cartMutations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "adsstore_cart_mutations_total",
			Help: "Persisted cart mutations by operation.",
		}, []string{"op"}),
		checkouts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "adsstore_checkouts_total",
			Help: "Checkout attempts by result.",
		}, []string{"result"}),
		catalogLoads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "adsstore_catalog_loads_total",
			Help: "Catalog fetches by result.",
		}, []string{"result"}),
		catalogSize: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "adsstore_catalog_products",
			Help: "Products in the last successfully loaded catalog.",
		}),
	}
	reg.MustRegister(s.cartMutations, s.checkouts, s.catalogLoads, s.catalogSize)
	return s
}

func (s *Store) ObserveCartMutation(op string) {
	if s == nil || s.cartMutations == nil {
		return
	}
	if op == "" {
		op = "unknown"
	}
	s.cartMutations.WithLabelValues(op).Inc()
}

func (s *Store) ObserveCheckout(ok bool) {
	if s == nil || s.checkouts == nil {
		return
	}
	s.checkouts.WithLabelValues(result(ok)).Inc()
}

func (s *Store) ObserveCatalogLoad(ok bool, products int) {
	if s == nil || s.catalogLoads == nil {
		return
	}
	s.catalogLoads.WithLabelValues(result(ok)).Inc()
	if ok {
		s.catalogSize.Set(float64(products))
	}
}

func result(ok bool) string {
	if ok {
		return "ok"
	}
	return "error"
}
