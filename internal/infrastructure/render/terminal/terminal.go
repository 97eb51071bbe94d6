// Package terminal renders view models as styled text for the CLI.
package terminal

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/99minutos/storefront/internal/core/domain"
	"github.com/99minutos/storefront/internal/core/view"
)

type theme struct {
	title       lipgloss.Style
	name        lipgloss.Style
	muted       lipgloss.Style
	price       lipgloss.Style
	inStock     lipgloss.Style
	outOfStock  lipgloss.Style
	badge       lipgloss.Style
	placeholder lipgloss.Style
	stale       lipgloss.Style
	card        lipgloss.Style
}

func defaultTheme() theme {
	return theme{
		title:       lipgloss.NewStyle().Bold(true).Underline(true),
		name:        lipgloss.NewStyle().Bold(true),
		muted:       lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		price:       lipgloss.NewStyle().Foreground(lipgloss.Color("3")).Bold(true),
		inStock:     lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
		outOfStock:  lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
		badge:       lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
		placeholder: lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("8")),
		stale:       lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true),
		card:        lipgloss.NewStyle().PaddingLeft(2),
	}
}

// Renderer writes views to out.
type Renderer struct {
	out   io.Writer
	theme theme
}

func New(out io.Writer) *Renderer {
	return &Renderer{out: out, theme: defaultTheme()}
}

func (r *Renderer) println(s string) {
	fmt.Fprintln(r.out, s)
}

func (r *Renderer) stock(c view.ProductCard) string {
	if c.InStock {
		return r.theme.inStock.Render(c.StockLabel)
	}
	return r.theme.outOfStock.Render(c.StockLabel)
}

// Catalog lists one card per product.
func (r *Renderer) Catalog(v view.Catalog) {
	r.println(r.theme.title.Render("Products"))
	if v.Empty {
		r.println(r.theme.placeholder.Render(v.Placeholder))
		return
	}
	for _, c := range v.Cards {
		lines := []string{
			r.theme.name.Render(c.Name) + " " + r.theme.muted.Render("["+c.ID+"]"),
		}
		if c.Seller != "" {
			lines = append(lines, r.theme.muted.Render(c.Seller))
		}
		lines = append(lines, fmt.Sprintf("%s  ⭐ %s  %s",
			r.theme.price.Render(c.PriceLabel), c.Rating, r.stock(c)))
		r.println(r.theme.card.Render(strings.Join(lines, "\n")))
	}
}

// Detail shows one product.
func (r *Renderer) Detail(v view.Detail) {
	if v.Stale {
		r.println(r.theme.stale.Render("This product is no longer listed."))
	}
	r.println(r.theme.title.Render(v.Name))
	if v.Description != "" {
		r.println(v.Description)
	}
	if v.Category != "" {
		r.println(r.theme.muted.Render("Category: " + v.Category))
	}
	if v.Seller != "" {
		r.println(r.theme.muted.Render(v.Seller))
	}
	r.println(fmt.Sprintf("%s  ⭐ %s  %s", r.theme.price.Render(v.PriceLabel), v.Rating, r.stock(v.ProductCard)))
	if v.ImageURL != "" {
		r.println(r.theme.muted.Render(v.ImageURL))
	}
}

// Cart shows the cart lines with their -/+ targets and the total.
func (r *Renderer) Cart(v view.Cart) {
	r.println(r.theme.title.Render(fmt.Sprintf("Cart (%d)", v.Count)))
	if v.Empty {
		r.println(r.theme.placeholder.Render(v.Placeholder))
	}
	for _, l := range v.Lines {
		r.println(r.theme.card.Render(fmt.Sprintf("%s × %d  %s  %s",
			r.theme.name.Render(l.Name), l.Quantity,
			r.theme.price.Render(l.SubtotalLabel),
			r.theme.muted.Render(fmt.Sprintf("[%s] -:%d +:%d", l.LineID, l.Decrement, l.Increment)))))
	}
	r.println("Total: " + r.theme.price.Render(v.TotalLabel))
}

// SellerDashboard shows the seller's stats and listing.
func (r *Renderer) SellerDashboard(v view.SellerDashboard) {
	r.println(r.theme.title.Render("Seller Dashboard"))
	r.println(fmt.Sprintf("Products: %d  Active: %d  Total stock: %d", v.Stats.Total, v.Stats.Active, v.Stats.Stock))
	if v.Empty {
		r.println(r.theme.placeholder.Render(v.Placeholder))
		return
	}
	for _, c := range v.Cards {
		status := r.theme.inStock.Render("active")
		if !c.Active {
			status = r.theme.outOfStock.Render("inactive")
		}
		r.println(r.theme.card.Render(strings.Join([]string{
			r.theme.name.Render(c.Name) + " " + r.theme.muted.Render("["+c.ID+"]") + " " + status,
			r.theme.price.Render(c.PriceLabel) + "  " + c.StockLabel,
			r.theme.muted.Render(c.CategoryLabel),
		}, "\n")))
	}
}

// AuthBadge shows who is logged in.
func (r *Renderer) AuthBadge(v view.AuthBadge) {
	if !v.LoggedIn {
		r.println(r.theme.muted.Render("Not logged in"))
		return
	}
	r.println(r.theme.name.Render(v.Label) + " " + r.theme.muted.Render(v.Email))
	r.println(r.theme.badge.Render("Role: " + v.Role))
}

// Order prints a checkout confirmation.
func (r *Renderer) Order(o *domain.OrderConfirmation) {
	if o == nil {
		return
	}
	r.println(fmt.Sprintf("Order %s  total %s", o.OrderID, r.theme.price.Render(view.Price(o.Total))))
}
