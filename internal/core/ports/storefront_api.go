package ports

import (
	"context"

	"github.com/99minutos/storefront/internal/core/domain"
)

// AuthResult is returned by login, registration and role upgrade.
// Token is empty for role upgrade.
type AuthResult struct {
	Token   string
	User    *domain.User
	Message string
}

// RegisterInput carries the registration form.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Role     domain.Role
}

// ProductSubmission is a create or update payload sent as multipart form.
type ProductSubmission struct {
	Form  domain.ProductForm
	Image *domain.ImageUpload // optional
}

// StorefrontAPI is the backend REST surface the controllers consume. Every
// method is a single round trip; failures are *domain.RequestFailedError.
type StorefrontAPI interface {
	Login(ctx context.Context, email, password string) (*AuthResult, error)
	Register(ctx context.Context, in RegisterInput) (*AuthResult, error)
	BecomeSeller(ctx context.Context) (*AuthResult, error)

	ListProducts(ctx context.Context, filters domain.Filters) ([]domain.Product, error)
	MyProducts(ctx context.Context) ([]domain.Product, error)
	CreateProduct(ctx context.Context, p ProductSubmission) error
	UpdateProduct(ctx context.Context, id string, p ProductSubmission) error
	DeleteProduct(ctx context.Context, id string) error

	GetCart(ctx context.Context) ([]domain.CartLine, error)
	AddToCart(ctx context.Context, productID string, quantity int) error
	UpdateCartLine(ctx context.Context, lineID string, quantity int) error
	RemoveCartLine(ctx context.Context, lineID string) error

	PlaceOrder(ctx context.Context) (*domain.OrderConfirmation, error)
}
