package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/99minutos/storefront/internal/core/domain"
	"github.com/99minutos/storefront/internal/core/view"
)

type sellerCommand struct {
	List   sellerListCommand   `command:"list" description:"List your products and stats"`
	Create sellerCreateCommand `command:"create" description:"Add a product"`
	Edit   sellerEditCommand   `command:"edit" description:"Change a product; omitted fields keep their value"`
	Delete sellerDeleteCommand `command:"delete" description:"Delete a product"`
}

// withConsole enters the seller console for the duration of fn.
func withConsole(fn func(ctx context.Context, s *session) error) error {
	return withSession(func(ctx context.Context, s *session) error {
		if err := s.Seller.Enter(ctx); err != nil {
			return reported(err)
		}
		defer s.Seller.Leave()
		return fn(ctx, s)
	})
}

func showDashboard(s *session) {
	s.out.SellerDashboard(view.BuildSellerDashboard(s.Seller.Products(), s.ImageBase()))
}

type sellerListCommand struct{}

func (c *sellerListCommand) Execute([]string) error {
	return withConsole(func(_ context.Context, s *session) error {
		showDashboard(s)
		return nil
	})
}

type productFields struct {
	Name        string   `long:"name" description:"Product name"`
	Description string   `long:"description" description:"Product description"`
	Price       *float64 `long:"price" description:"Price"`
	Category    string   `long:"category" description:"Category"`
	Stock       *int     `long:"stock" description:"Units in stock"`
	Image       string   `long:"image" description:"Path to an image file"`
}

// apply overwrites the fields that were given.
func (f productFields) apply(form domain.ProductForm) domain.ProductForm {
	if f.Name != "" {
		form.Name = f.Name
	}
	if f.Description != "" {
		form.Description = f.Description
	}
	if f.Price != nil {
		form.Price = *f.Price
	}
	if f.Category != "" {
		form.Category = f.Category
	}
	if f.Stock != nil {
		form.Stock = *f.Stock
	}
	return form
}

// submit sends the form with the optional image file.
func (f productFields) submit(ctx context.Context, s *session, form domain.ProductForm) error {
	var image *domain.ImageUpload
	if f.Image != "" {
		file, err := os.Open(f.Image)
		if err != nil {
			return fmt.Errorf("open image: %w", err)
		}
		defer file.Close()
		image = &domain.ImageUpload{Filename: filepath.Base(f.Image), Content: file}
	}
	if err := s.Seller.Submit(ctx, form, image); err != nil {
		return reported(err)
	}
	showDashboard(s)
	return nil
}

type sellerCreateCommand struct {
	productFields
}

func (c *sellerCreateCommand) Execute([]string) error {
	return withConsole(func(ctx context.Context, s *session) error {
		fs := s.Seller.OpenCreate()
		return c.submit(ctx, s, c.apply(fs.Form))
	})
}

type sellerEditCommand struct {
	productFields
	Args struct {
		ID string `positional-arg-name:"product-id" required:"yes"`
	} `positional-args:"yes"`
}

func (c *sellerEditCommand) Execute([]string) error {
	return withConsole(func(ctx context.Context, s *session) error {
		fs, err := s.Seller.OpenEdit(c.Args.ID)
		if err != nil {
			return err
		}
		return c.submit(ctx, s, c.apply(fs.Form))
	})
}

type sellerDeleteCommand struct {
	Yes  bool `short:"y" long:"yes" description:"Do not ask for confirmation"`
	Args struct {
		ID string `positional-arg-name:"product-id" required:"yes"`
	} `positional-args:"yes"`
}

func (c *sellerDeleteCommand) Execute([]string) error {
	return withConsole(func(ctx context.Context, s *session) error {
		err := s.Seller.Delete(ctx, c.Args.ID, terminalConfirmer(c.Yes))
		if errors.Is(err, domain.ErrNotConfirmed) {
			return nil
		}
		if err != nil {
			return reported(err)
		}
		showDashboard(s)
		return nil
	})
}
