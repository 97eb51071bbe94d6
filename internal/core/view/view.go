// Package view builds typed, renderer-neutral view models from core state.
// Renderers (terminal, HTML) only format what these builders return; user
// supplied text is carried as plain strings and escaped by the renderer.
package view

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/99minutos/storefront/internal/core/domain"
)

const (
	EmptyCatalog      = "No products found."
	EmptyCart         = "Your cart is empty"
	EmptySellerList   = "You have not listed any products yet."
	currencySymbol    = "₹"
	outOfStockLabel   = "Out of Stock"
	sellerPrefix      = "by "
	fallbackUserLabel = "Login"
)

// Price formats an amount with the storefront currency.
func Price(d decimal.Decimal) string {
	return currencySymbol + d.StringFixed(2)
}

// StockLabel is "In Stock: N" or "Out of Stock".
func StockLabel(stock int) string {
	if stock > 0 {
		return fmt.Sprintf("In Stock: %d", stock)
	}
	return outOfStockLabel
}

// ProductCard is one catalog entry.
type ProductCard struct {
	ID          string
	Name        string
	Description string
	Seller      string
	Category    string
	Rating      string
	PriceLabel  string
	StockLabel  string
	InStock     bool
	CanAdd      bool
	ImageURL    string
}

// Catalog is the product grid.
type Catalog struct {
	Cards       []ProductCard
	Empty       bool
	Placeholder string
	Filters     domain.Filters
}

func card(p domain.Product, imageBase string) ProductCard {
	c := ProductCard{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Category:    p.Category,
		Rating:      fmt.Sprintf("%.1f", p.Rating),
		PriceLabel:  Price(p.Price),
		StockLabel:  StockLabel(p.Stock),
		InStock:     p.InStock(),
		CanAdd:      p.InStock(),
		ImageURL:    domain.ImageURL(imageBase, p.Image),
	}
	if p.SellerName != "" {
		c.Seller = sellerPrefix + p.SellerName
	}
	return c
}

// BuildCatalog maps the product snapshot to cards in snapshot order.
func BuildCatalog(products []domain.Product, filters domain.Filters, imageBase string) Catalog {
	v := Catalog{Filters: filters, Cards: make([]ProductCard, 0, len(products))}
	if len(products) == 0 {
		v.Empty = true
		v.Placeholder = EmptyCatalog
		return v
	}
	for _, p := range products {
		v.Cards = append(v.Cards, card(p, imageBase))
	}
	return v
}

// Detail is the product detail view.
type Detail struct {
	ProductCard
	Stale bool
}

// BuildDetail maps an open detail view. A stale detail keeps showing the
// product it was opened with.
func BuildDetail(p domain.Product, stale bool, imageBase string) Detail {
	return Detail{ProductCard: card(p, imageBase), Stale: stale}
}

// CartLine is one rendered cart line. Decrement and Increment are the
// quantities the -/+ controls submit.
type CartLine struct {
	LineID        string
	Name          string
	Quantity      int
	SubtotalLabel string
	ImageURL      string
	Decrement     int
	Increment     int
}

// Cart is the cart panel.
type Cart struct {
	Lines       []CartLine
	Empty       bool
	Placeholder string
	TotalLabel  string
	Count       int
	Open        bool
}

// BuildCart recomputes totals from the current lines only.
func BuildCart(c domain.Cart, open bool, imageBase string) Cart {
	v := Cart{
		Lines:      make([]CartLine, 0, len(c.Lines)),
		TotalLabel: Price(c.Total()),
		Count:      c.Count(),
		Open:       open,
	}
	if c.Empty() {
		v.Empty = true
		v.Placeholder = EmptyCart
		return v
	}
	for _, l := range c.Lines {
		v.Lines = append(v.Lines, CartLine{
			LineID:        l.LineID,
			Name:          l.Name,
			Quantity:      l.Quantity,
			SubtotalLabel: Price(l.Subtotal()),
			ImageURL:      domain.ImageURL(imageBase, l.Image),
			Decrement:     l.Quantity - 1,
			Increment:     l.Quantity + 1,
		})
	}
	return v
}

// AuthBadge is the header account control.
type AuthBadge struct {
	LoggedIn bool
	Label    string
	Email    string
	Role     string
	// CanSell shows the seller console link; otherwise "Become a Seller".
	CanSell bool
}

func BuildAuthBadge(s domain.Session) AuthBadge {
	if !s.Active() {
		return AuthBadge{Label: fallbackUserLabel}
	}
	return AuthBadge{
		LoggedIn: true,
		Label:    s.User.Name,
		Email:    s.User.Email,
		Role:     string(s.User.Role),
		CanSell:  s.User.CanSell(),
	}
}
