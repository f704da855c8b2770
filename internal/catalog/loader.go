package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"golang.org/x/sync/singleflight"

	"adsstore/internal/domain"
)

const maxCatalogBytes = 10 << 20

var ErrEmptySource = errors.New("catalog source not configured")

// LoadObserver is told about every fetch attempt.
type LoadObserver interface {
	ObserveCatalogLoad(ok bool, products int)
}

type Option func(*Loader)

func WithHTTPClient(c *http.Client) Option { return func(l *Loader) { l.client = c } }

func WithObserver(o LoadObserver) Option { return func(l *Loader) { l.observer = o } }

// Loader fetches the product collection once and caches it. A failed
// fetch is not cached, so a later request tries again.
type Loader struct {
	source   string
	client   *http.Client
	validate *validator.Validate
	observer LoadObserver
	group    singleflight.Group

	mu     sync.RWMutex
	cached *Catalog
}

func NewLoader(source string, timeout time.Duration, opts ...Option) *Loader {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	l := &Loader{
		source:   strings.TrimSpace(source),
		client:   &http.Client{Timeout: timeout},
		validate: validator.New(),
	}
	for _, o := range opts {
		o(l)
	}
	return l
}

// Load returns the cached catalog, fetching it on first use. Concurrent
// first calls share a single fetch.
func (l *Loader) Load(ctx context.Context) (*Catalog, error) {
	l.mu.RLock()
	c := l.cached
	l.mu.RUnlock()
	if c != nil {
		return c, nil
	}

	v, err, _ := l.group.Do("catalog", func() (any, error) {
		l.mu.RLock()
		c := l.cached
		l.mu.RUnlock()
		if c != nil {
			return c, nil
		}
		products, err := l.fetch(ctx)
		if l.observer != nil {
			l.observer.ObserveCatalogLoad(err == nil, len(products))
		}
		if err != nil {
			return nil, err
		}
		c = New(products)
		l.mu.Lock()
		l.cached = c
		l.mu.Unlock()
		return c, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*Catalog), nil
}

// Reset drops the cached catalog so the next Load fetches again.
func (l *Loader) Reset() {
	l.mu.Lock()
	l.cached = nil
	l.mu.Unlock()
}

func (l *Loader) fetch(ctx context.Context) ([]domain.Product, error) {
	if l.source == "" {
		return nil, ErrEmptySource
	}
	var (
		data []byte
		err  error
	)
	if strings.HasPrefix(l.source, "http://") || strings.HasPrefix(l.source, "https://") {
		data, err = l.get(ctx)
	} else {
		data, err = os.ReadFile(l.source)
	}
	if err != nil {
		return nil, fmt.Errorf("load catalog %s: %w", l.source, err)
	}
	return l.Parse(data)
}

func (l *Loader) get(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.source, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	resp, err := l.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return io.ReadAll(io.LimitReader(resp.Body, maxCatalogBytes))
}

// Parse decodes a JSON array of products and validates every record.
// One bad record rejects the whole collection.
func (l *Loader) Parse(data []byte) ([]domain.Product, error) {
	var products []domain.Product
	if err := json.Unmarshal(data, &products); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	for i, p := range products {
		if err := l.validate.Struct(p); err != nil {
			return nil, fmt.Errorf("catalog record %d (%q): %w", i, p.ID, err)
		}
	}
	return products, nil
}
