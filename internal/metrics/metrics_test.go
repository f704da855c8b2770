package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestStoreCounters(t *testing.T) {
	reg := prometheus.NewRegistry()
	s := New(reg)

	s.ObserveCartMutation("add")
	s.ObserveCartMutation("add")
	s.ObserveCartMutation("")
	s.ObserveCheckout(true)
	s.ObserveCheckout(false)
	s.ObserveCatalogLoad(true, 12)
	s.ObserveCatalogLoad(false, 0)

	assert.Equal(t, 2.0, testutil.ToFloat64(s.cartMutations.WithLabelValues("add")))
	assert.Equal(t, 1.0, testutil.ToFloat64(s.cartMutations.WithLabelValues("unknown")))
	assert.Equal(t, 1.0, testutil.ToFloat64(s.checkouts.WithLabelValues("ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(s.checkouts.WithLabelValues("error")))
	assert.Equal(t, 1.0, testutil.ToFloat64(s.catalogLoads.WithLabelValues("error")))
	assert.Equal(t, 12.0, testutil.ToFloat64(s.catalogSize))

	n, err := testutil.GatherAndCount(reg, "adsstore_cart_mutations_total")
	assert.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestNilStoreIsSafe(t *testing.T) {
	var s *Store
	assert.NotPanics(t, func() {
		s.ObserveCartMutation("add")
		s.ObserveCheckout(true)
		s.ObserveCatalogLoad(true, 1)
	})
	assert.NotPanics(t, func() {
		New(nil).ObserveCheckout(false)
	})
}
