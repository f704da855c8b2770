package services

import (
	"context"

	"adsstore/internal/catalog"
	"adsstore/internal/domain"
)

// CatalogService answers page queries from the cached catalog.
type CatalogService struct {
	Loader *catalog.Loader
}

func NewCatalogService(loader *catalog.Loader) *CatalogService {
	return &CatalogService{Loader: loader}
}

func (s *CatalogService) ListProducts(ctx context.Context) ([]domain.Product, error) {
	c, err := s.Loader.Load(ctx)
	if err != nil {
		return nil, err
	}
	return c.All(), nil
}

func (s *CatalogService) ListCategories(ctx context.Context) ([]string, error) {
	c, err := s.Loader.Load(ctx)
	if err != nil {
		return nil, err
	}
	return c.Categories(), nil
}

func (s *CatalogService) ListProductsByCategory(ctx context.Context, category string) ([]domain.Product, error) {
	c, err := s.Loader.Load(ctx)
	if err != nil {
		return nil, err
	}
	return c.ByCategory(category), nil
}

func (s *CatalogService) GetProduct(ctx context.Context, id string) (domain.Product, error) {
	c, err := s.Loader.Load(ctx)
	if err != nil {
		return domain.Product{}, err
	}
	p, ok := c.ByID(id)
	if !ok {
		return domain.Product{}, ErrProductNotFound
	}
	return p, nil
}

func (s *CatalogService) Search(ctx context.Context, q string) ([]domain.Product, error) {
	c, err := s.Loader.Load(ctx)
	if err != nil {
		return nil, err
	}
	return c.Search(q), nil
}
