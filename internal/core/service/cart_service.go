package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/99minutos/storefront/internal/core/domain"
	"github.com/99minutos/storefront/internal/core/ports"
	"github.com/99minutos/storefront/internal/core/state"
)

// CartService mirrors the server cart. Every mutation is a server round
// trip followed by a full reload; quantities are never edited locally.
type CartService struct {
	api      ports.StorefrontAPI
	session  *state.Value[domain.Session]
	cart     *state.Value[domain.Cart]
	panel    *state.Value[bool]
	notifier ports.Notifier
	nav      ports.Navigator
	log      zerolog.Logger
}

func NewCartService(
	api ports.StorefrontAPI,
	session *state.Value[domain.Session],
	notifier ports.Notifier,
	nav ports.Navigator,
	log zerolog.Logger,
) *CartService {
	return &CartService{
		api:      api,
		session:  session,
		cart:     state.New(domain.Cart{}),
		panel:    state.New(false),
		notifier: notifier,
		nav:      nav,
		log:      log,
	}
}

func (c *CartService) State() *state.Value[domain.Cart] { return c.cart }
func (c *CartService) Panel() *state.Value[bool]        { return c.panel }
func (c *CartService) Snapshot() domain.Cart            { return c.cart.Get() }

// Load fetches the server cart. Without a session the cart is forced empty.
// A failed fetch leaves the previous cart in place.
func (c *CartService) Load(ctx context.Context) error {
	if !c.session.Get().Active() {
		c.cart.Set(domain.Cart{})
		return nil
	}

	lines, err := c.api.GetCart(ctx)
	if err != nil {
		c.log.Error().Err(err).Msg("load cart failed")
		return fmt.Errorf("load cart: %w", err)
	}
	c.cart.Set(domain.Cart{Lines: lines})
	return nil
}

// Add puts one unit of productID in the cart. Without a session it
// redirects to login and makes no request.
func (c *CartService) Add(ctx context.Context, productID string) error {
	if !c.session.Get().Active() {
		c.notifier.Notify(ports.LevelError, "Please login to add items to cart")
		c.nav.Redirect(domain.PageLogin)
		return domain.ErrLoginRequired
	}

	if err := c.api.AddToCart(ctx, productID, 1); err != nil {
		c.log.Error().Err(err).Str("product_id", productID).Msg("add to cart failed")
		return fmt.Errorf("add to cart: %w", err)
	}
	c.notifier.Notify(ports.LevelSuccess, "Item added to cart")
	return c.Load(ctx)
}

// SetQuantity updates a line; a quantity below one removes it.
func (c *CartService) SetQuantity(ctx context.Context, lineID string, quantity int) error {
	if quantity < 1 {
		return c.Remove(ctx, lineID)
	}

	if err := c.api.UpdateCartLine(ctx, lineID, quantity); err != nil {
		c.log.Error().Err(err).Str("line_id", lineID).Msg("update cart failed")
		return fmt.Errorf("update cart: %w", err)
	}
	return c.Load(ctx)
}

// Remove deletes a line.
func (c *CartService) Remove(ctx context.Context, lineID string) error {
	if err := c.api.RemoveCartLine(ctx, lineID); err != nil {
		c.log.Error().Err(err).Str("line_id", lineID).Msg("remove from cart failed")
		return fmt.Errorf("remove from cart: %w", err)
	}
	c.notifier.Notify(ports.LevelInfo, "Item removed from cart")
	return c.Load(ctx)
}

// Reset empties the local cart without contacting the server.
func (c *CartService) Reset() {
	c.cart.Set(domain.Cart{})
}

func (c *CartService) TogglePanel() bool {
	return c.panel.Update(func(open bool) bool { return !open })
}

func (c *CartService) ClosePanel() {
	c.panel.Set(false)
}

func (c *CartService) PanelOpen() bool {
	return c.panel.Get()
}
