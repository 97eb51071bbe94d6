package devserver

import "errors"

var (
	ErrProductNotFound   = errors.New("product not found")
	ErrCartItemNotFound  = errors.New("cart item not found")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrEmptyCart         = errors.New("cart is empty")
	ErrNotOwner          = errors.New("not the product owner")
	ErrInvalidImage      = errors.New("upload is not an image")
	ErrInvalidQuantity   = errors.New("quantity must be at least 1")
)
