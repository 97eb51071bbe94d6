package service

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/99minutos/storefront/internal/core/domain"
	"github.com/99minutos/storefront/internal/core/ports"
	"github.com/99minutos/storefront/internal/core/state"
)

// CatalogService loads, filters and looks up the public product list.
type CatalogService struct {
	api      ports.StorefrontAPI
	products *state.Value[[]domain.Product]
	filters  *state.Value[domain.Filters]
	notifier ports.Notifier
	log      zerolog.Logger
}

func NewCatalogService(api ports.StorefrontAPI, notifier ports.Notifier, log zerolog.Logger) *CatalogService {
	return &CatalogService{
		api:      api,
		products: state.New[[]domain.Product](nil),
		filters:  state.New(domain.Filters{}),
		notifier: notifier,
		log:      log,
	}
}

// State is the allProducts snapshot.
func (c *CatalogService) State() *state.Value[[]domain.Product] { return c.products }

// Filters returns the filters of the last successful load.
func (c *CatalogService) Filters() domain.Filters { return c.filters.Get() }

// Products returns the current snapshot.
func (c *CatalogService) Products() []domain.Product { return c.products.Get() }

// Load fetches the product list and replaces the snapshot wholesale. On
// failure the previous snapshot stays.
func (c *CatalogService) Load(ctx context.Context, filters domain.Filters) error {
	products, err := c.api.ListProducts(ctx, filters)
	if err != nil {
		c.log.Error().Err(err).Msg("load products failed")
		return fmt.Errorf("load products: %w", err)
	}
	if products == nil {
		products = []domain.Product{}
	}

	c.filters.Set(filters)
	c.products.Set(products)
	c.log.Debug().Int("count", len(products)).Msg("products loaded")
	return nil
}

// Search loads products matching q. A blank query does nothing.
func (c *CatalogService) Search(ctx context.Context, q string) error {
	q = strings.TrimSpace(q)
	if q == "" {
		return nil
	}
	return c.Load(ctx, domain.Filters{Search: q})
}

// FilterByCategory loads one category.
func (c *CatalogService) FilterByCategory(ctx context.Context, category string) error {
	if err := c.Load(ctx, domain.Filters{Category: category}); err != nil {
		return err
	}
	c.notifier.Notify(ports.LevelInfo, "Filtered by "+category)
	return nil
}

// Sort reloads the list in the given order.
func (c *CatalogService) Sort(ctx context.Context, sortType string) error {
	return c.Load(ctx, domain.Filters{Sort: sortType})
}

// ViewDetails resolves id against the loaded snapshot; no request is made.
// A product missing from the snapshot returns ErrProductNotFound and changes
// nothing.
func (c *CatalogService) ViewDetails(id string) (*DetailView, error) {
	p, ok := domain.FindProduct(c.products.Get(), id)
	if !ok {
		return nil, domain.ErrProductNotFound
	}

	v := &DetailView{product: p}
	v.unsubscribe = c.products.Subscribe(func(list []domain.Product) {
		_, present := domain.FindProduct(list, id)
		v.mu.Lock()
		v.stale = !present
		v.mu.Unlock()
	})
	return v, nil
}

// DetailView is an open product detail. While open it watches the snapshot
// and reports when the product disappears from it.
type DetailView struct {
	product     domain.Product
	unsubscribe func()

	mu    sync.Mutex
	stale bool
}

func (v *DetailView) Product() domain.Product { return v.product }

// Stale reports whether the product left the snapshot after the view opened.
func (v *DetailView) Stale() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.stale
}

// Close releases the view's subscription.
func (v *DetailView) Close() {
	if v.unsubscribe != nil {
		v.unsubscribe()
	}
}
