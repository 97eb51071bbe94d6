package view

import (
	"fmt"
	"strconv"

	"github.com/99minutos/storefront/internal/core/domain"
)

// SellerCard is one product on the seller console.
type SellerCard struct {
	ID            string
	Name          string
	PriceLabel    string
	StockLabel    string
	CategoryLabel string
	Active        bool
	ImageURL      string
}

// SellerDashboard is the console listing plus its derived stats.
type SellerDashboard struct {
	Cards       []SellerCard
	Empty       bool
	Placeholder string
	Stats       domain.SellerStats
}

func BuildSellerDashboard(products []domain.Product, imageBase string) SellerDashboard {
	v := SellerDashboard{
		Cards: make([]SellerCard, 0, len(products)),
		Stats: domain.Stats(products),
	}
	if len(products) == 0 {
		v.Empty = true
		v.Placeholder = EmptySellerList
		return v
	}
	for _, p := range products {
		v.Cards = append(v.Cards, SellerCard{
			ID:            p.ID,
			Name:          p.Name,
			PriceLabel:    Price(p.Price),
			StockLabel:    fmt.Sprintf("Stock: %d units", p.Stock),
			CategoryLabel: "Category: " + p.Category,
			Active:        p.IsActive,
			ImageURL:      domain.ImageURL(imageBase, p.Image),
		})
	}
	return v
}

// ProductForm is the create/edit form as text inputs.
type ProductForm struct {
	Open        bool
	Title       string
	SubmitLabel string
	Submitting  bool
	EditingID   string

	Name        string
	Description string
	Price       string
	Category    string
	Stock       string
}

// BuildProductForm renders a form state. The submit control reads
// "Saving..." and is disabled while a submission is in flight.
func BuildProductForm(open bool, editingID string, f domain.ProductForm, submitting bool) ProductForm {
	v := ProductForm{
		Open:        open,
		EditingID:   editingID,
		Submitting:  submitting,
		Title:       "Add New Product",
		SubmitLabel: "Save Product",
		Name:        f.Name,
		Description: f.Description,
		Category:    f.Category,
	}
	if editingID != "" {
		v.Title = "Edit Product"
		v.SubmitLabel = "Update Product"
		v.Price = strconv.FormatFloat(f.Price, 'f', -1, 64)
		v.Stock = strconv.Itoa(f.Stock)
	}
	if submitting {
		v.SubmitLabel = "Saving..."
	}
	return v
}
