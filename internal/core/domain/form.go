package domain

import "io"

// ProductForm holds the seller console form fields.
type ProductForm struct {
	Name        string  `json:"name"        validate:"required"`
	Description string  `json:"description" validate:"required"`
	Price       float64 `json:"price"       validate:"gte=0"`
	Category    string  `json:"category"    validate:"required"`
	Stock       int     `json:"stock"       validate:"gte=0"`
}

// FormFromProduct pre-fills the edit form from a snapshot entry.
func FormFromProduct(p Product) ProductForm {
	return ProductForm{
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price.InexactFloat64(),
		Category:    p.Category,
		Stock:       p.Stock,
	}
}

// ImageUpload is an optional product image attached to a submission.
type ImageUpload struct {
	Filename string
	Content  io.Reader
}
