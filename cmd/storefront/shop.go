package main

import (
	"context"

	"github.com/99minutos/storefront/internal/core/domain"
	"github.com/99minutos/storefront/internal/core/view"
)

type productsCommand struct {
	Category string `short:"c" long:"category" description:"Only this category"`
	Search   string `short:"s" long:"search" description:"Match name or description"`
	Sort     string `long:"sort" choice:"newest" choice:"price_asc" choice:"price_desc" choice:"rating" description:"Order"`
}

func (c *productsCommand) Execute([]string) error {
	return withSession(func(ctx context.Context, s *session) error {
		filters := domain.Filters{Category: c.Category, Search: c.Search, Sort: c.Sort}
		if err := s.Catalog.Load(ctx, filters); err != nil {
			return reported(err)
		}
		s.out.Catalog(view.BuildCatalog(s.Catalog.Products(), s.Catalog.Filters(), s.ImageBase()))
		return nil
	})
}

type productCommand struct {
	Args struct {
		ID string `positional-arg-name:"product-id" required:"yes"`
	} `positional-args:"yes"`
}

func (c *productCommand) Execute([]string) error {
	return withSession(func(ctx context.Context, s *session) error {
		if err := s.Catalog.Load(ctx, domain.Filters{}); err != nil {
			return reported(err)
		}
		d, err := s.Catalog.ViewDetails(c.Args.ID)
		if err != nil {
			return err
		}
		defer d.Close()
		s.out.Detail(view.BuildDetail(d.Product(), d.Stale(), s.ImageBase()))
		return nil
	})
}

type cartCommand struct {
	Show   cartShowCommand   `command:"show" description:"Show the cart"`
	Add    cartAddCommand    `command:"add" description:"Add one unit of a product"`
	Set    cartSetCommand    `command:"set" description:"Set a line's quantity; 0 removes it"`
	Remove cartRemoveCommand `command:"remove" description:"Remove a line"`
}

func showCart(s *session) {
	s.out.Cart(view.BuildCart(s.Cart.Snapshot(), true, s.ImageBase()))
}

type cartShowCommand struct{}

func (c *cartShowCommand) Execute([]string) error {
	return withSession(func(ctx context.Context, s *session) error {
		if !s.Session.Current().Active() {
			// Anonymous carts are always empty; nothing to fetch.
			showCart(s)
			return nil
		}
		if err := s.Cart.Load(ctx); err != nil {
			return reported(err)
		}
		showCart(s)
		return nil
	})
}

type cartAddCommand struct {
	Args struct {
		ProductID string `positional-arg-name:"product-id" required:"yes"`
	} `positional-args:"yes"`
}

func (c *cartAddCommand) Execute([]string) error {
	return withSession(func(ctx context.Context, s *session) error {
		if err := s.Cart.Add(ctx, c.Args.ProductID); err != nil {
			return reported(err)
		}
		showCart(s)
		return nil
	})
}

type cartSetCommand struct {
	Args struct {
		LineID   string `positional-arg-name:"line-id" required:"yes"`
		Quantity int    `positional-arg-name:"quantity" required:"yes"`
	} `positional-args:"yes"`
}

func (c *cartSetCommand) Execute([]string) error {
	return withSession(func(ctx context.Context, s *session) error {
		if err := s.Cart.SetQuantity(ctx, c.Args.LineID, c.Args.Quantity); err != nil {
			return reported(err)
		}
		showCart(s)
		return nil
	})
}

type cartRemoveCommand struct {
	Args struct {
		LineID string `positional-arg-name:"line-id" required:"yes"`
	} `positional-args:"yes"`
}

func (c *cartRemoveCommand) Execute([]string) error {
	return withSession(func(ctx context.Context, s *session) error {
		if err := s.Cart.Remove(ctx, c.Args.LineID); err != nil {
			return reported(err)
		}
		showCart(s)
		return nil
	})
}

type checkoutCommand struct{}

func (c *checkoutCommand) Execute([]string) error {
	return withSession(func(ctx context.Context, s *session) error {
		order, err := s.Checkout.Checkout(ctx)
		if err != nil {
			return reported(err)
		}
		s.out.Order(order)
		return nil
	})
}
