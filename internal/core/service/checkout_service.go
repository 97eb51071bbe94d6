package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/99minutos/storefront/internal/core/domain"
	"github.com/99minutos/storefront/internal/core/ports"
	"github.com/99minutos/storefront/internal/core/state"
)

// CheckoutService turns the server-side cart into an order.
//
// There is no idempotency key and no in-flight guard here: two calls in quick
// succession submit two orders.
type CheckoutService struct {
	api      ports.StorefrontAPI
	session  *state.Value[domain.Session]
	cart     *CartService
	catalog  *CatalogService
	notifier ports.Notifier
	nav      ports.Navigator
	log      zerolog.Logger
}

func NewCheckoutService(
	api ports.StorefrontAPI,
	session *state.Value[domain.Session],
	cart *CartService,
	catalog *CatalogService,
	notifier ports.Notifier,
	nav ports.Navigator,
	log zerolog.Logger,
) *CheckoutService {
	return &CheckoutService{
		api:      api,
		session:  session,
		cart:     cart,
		catalog:  catalog,
		notifier: notifier,
		nav:      nav,
		log:      log,
	}
}

// Checkout places the order. The backend resolves the cart contents itself.
func (s *CheckoutService) Checkout(ctx context.Context) (*domain.OrderConfirmation, error) {
	if !s.session.Get().Active() {
		s.notifier.Notify(ports.LevelError, "Please login to checkout")
		s.nav.Redirect(domain.PageLogin)
		return nil, domain.ErrLoginRequired
	}
	if s.cart.Snapshot().Empty() {
		s.notifier.Notify(ports.LevelError, "Cart is empty")
		return nil, domain.ErrEmptyCart
	}

	order, err := s.api.PlaceOrder(ctx)
	if err != nil {
		s.log.Error().Err(err).Msg("checkout failed")
		return nil, fmt.Errorf("checkout: %w", err)
	}

	s.notifier.Notify(ports.LevelSuccess, "Order placed successfully!")
	s.log.Info().Str("order_id", order.OrderID).Str("total", order.Total.String()).Msg("order placed")

	s.cart.Reset()
	if err := s.cart.Load(ctx); err != nil {
		s.log.Warn().Err(err).Msg("cart reload after checkout failed")
	}
	s.cart.ClosePanel()
	// Stock changed; reload the unfiltered catalog.
	if err := s.catalog.Load(ctx, domain.Filters{}); err != nil {
		s.log.Warn().Err(err).Msg("catalog reload after checkout failed")
	}
	return order, nil
}
