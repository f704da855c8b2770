package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"adsstore/internal/catalog"
	"adsstore/internal/services"
)

func TestCatalogServiceQueries(t *testing.T) {
	ctx := context.Background()
	svc := services.NewCatalogService(testLoader(t))

	all, err := svc.ListProducts(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	cats, err := svc.ListCategories(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Hombres", "Accesorios"}, cats)

	men, err := svc.ListProductsByCategory(ctx, "Hombres")
	require.NoError(t, err)
	require.Len(t, men, 2)
	assert.Equal(t, "p1", men[0].ID)

	none, err := svc.ListProductsByCategory(ctx, "Mujeres")
	require.NoError(t, err)
	assert.Empty(t, none)

	p, err := svc.GetProduct(ctx, "p3")
	require.NoError(t, err)
	assert.Equal(t, "Buzo", p.Name)

	_, err = svc.GetProduct(ctx, "zzz")
	assert.ErrorIs(t, err, services.ErrProductNotFound)

	hits, err := svc.Search(ctx, "gorra")
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, "p2", hits[0].ID)
}

func TestCatalogServiceSourceFailure(t *testing.T) {
	svc := services.NewCatalogService(catalog.NewLoader("/does/not/exist.json", time.Second))
	_, err := svc.ListProducts(context.Background())
	assert.Error(t, err)
	_, err = svc.GetProduct(context.Background(), "p1")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, services.ErrProductNotFound)
}
