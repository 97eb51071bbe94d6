// Package storefrontapi implements ports.StorefrontAPI over the backend's
// REST surface. Each method is a thin wrapper around httpclient.Client.Do
// plus the wire shapes of that endpoint.
package storefrontapi

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/99minutos/storefront/internal/core/domain"
	"github.com/99minutos/storefront/internal/core/ports"
	"github.com/99minutos/storefront/internal/infrastructure/httpclient"
	"github.com/99minutos/storefront/internal/infrastructure/metrics"
)

// Doer is the request primitive the adapter needs.
type Doer interface {
	Do(ctx context.Context, method, path string, opts httpclient.Options, out any) error
}

// API is the REST adapter.
type API struct {
	http Doer
}

var _ ports.StorefrontAPI = (*API)(nil)

func New(doer Doer) *API {
	return &API{http: doer}
}

type authResponse struct {
	Token   string       `json:"token"`
	User    *domain.User `json:"user"`
	Message string       `json:"message"`
}

func (r authResponse) result() *ports.AuthResult {
	return &ports.AuthResult{Token: r.Token, User: r.User, Message: r.Message}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registerRequest struct {
	Name     string      `json:"name"`
	Email    string      `json:"email"`
	Password string      `json:"password"`
	Role     domain.Role `json:"role"`
}

type productsResponse struct {
	Products []domain.Product `json:"products"`
}

type cartResponse struct {
	Cart struct {
		Items []domain.CartLine `json:"items"`
	} `json:"cart"`
}

type addToCartRequest struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

type quantityRequest struct {
	Quantity int `json:"quantity"`
}

type orderResponse struct {
	Message string `json:"message"`
	Order   struct {
		ID          string          `json:"_id"`
		TotalAmount decimal.Decimal `json:"totalAmount"`
	} `json:"order"`
}

func (a *API) Login(ctx context.Context, email, password string) (*ports.AuthResult, error) {
	var res authResponse
	err := a.http.Do(ctx, http.MethodPost, "/auth/login", httpclient.Options{
		Body:     loginRequest{Email: email, Password: password},
		SkipAuth: true,
	}, &res)
	if err != nil {
		return nil, err
	}
	return res.result(), nil
}

func (a *API) Register(ctx context.Context, in ports.RegisterInput) (*ports.AuthResult, error) {
	var res authResponse
	err := a.http.Do(ctx, http.MethodPost, "/auth/register", httpclient.Options{
		Body:     registerRequest{Name: in.Name, Email: in.Email, Password: in.Password, Role: in.Role},
		SkipAuth: true,
	}, &res)
	if err != nil {
		return nil, err
	}
	return res.result(), nil
}

func (a *API) BecomeSeller(ctx context.Context) (*ports.AuthResult, error) {
	var res authResponse
	if err := a.http.Do(ctx, http.MethodPut, "/auth/become-seller", httpclient.Options{}, &res); err != nil {
		return nil, err
	}
	return res.result(), nil
}

// ListProducts is public; only present filters are sent.
func (a *API) ListProducts(ctx context.Context, filters domain.Filters) ([]domain.Product, error) {
	path := "/products"
	if q := filters.Query(); len(q) > 0 {
		path += "?" + q.Encode()
	}
	var res productsResponse
	if err := a.http.Do(ctx, http.MethodGet, path, httpclient.Options{SkipAuth: true}, &res); err != nil {
		return nil, err
	}
	return res.Products, nil
}

func (a *API) MyProducts(ctx context.Context) ([]domain.Product, error) {
	var res productsResponse
	if err := a.http.Do(ctx, http.MethodGet, "/products/seller/my-products", httpclient.Options{}, &res); err != nil {
		return nil, err
	}
	return res.Products, nil
}

func (a *API) CreateProduct(ctx context.Context, sub ports.ProductSubmission) error {
	return a.http.Do(ctx, http.MethodPost, "/products", httpclient.Options{Body: productForm(sub)}, nil)
}

func (a *API) UpdateProduct(ctx context.Context, id string, sub ports.ProductSubmission) error {
	return a.http.Do(ctx, http.MethodPut, "/products/"+url.PathEscape(id), httpclient.Options{Body: productForm(sub)}, nil)
}

func (a *API) DeleteProduct(ctx context.Context, id string) error {
	return a.http.Do(ctx, http.MethodDelete, "/products/"+url.PathEscape(id), httpclient.Options{}, nil)
}

func productForm(sub ports.ProductSubmission) *httpclient.Multipart {
	f := sub.Form
	body := httpclient.NewMultipart().
		Field("name", f.Name).
		Field("description", f.Description).
		Field("price", strconv.FormatFloat(f.Price, 'f', -1, 64)).
		Field("category", f.Category).
		Field("stock", strconv.Itoa(f.Stock))
	if sub.Image != nil {
		body.File("image", sub.Image.Filename, sub.Image.Content)
	}
	return body
}

func (a *API) GetCart(ctx context.Context) ([]domain.CartLine, error) {
	var res cartResponse
	if err := a.http.Do(ctx, http.MethodGet, "/cart", httpclient.Options{}, &res); err != nil {
		return nil, err
	}
	return res.Cart.Items, nil
}

func (a *API) AddToCart(ctx context.Context, productID string, quantity int) error {
	err := a.http.Do(ctx, http.MethodPost, "/cart", httpclient.Options{
		Body: addToCartRequest{ProductID: productID, Quantity: quantity},
	}, nil)
	metrics.CartMutationsTotal.WithLabelValues("add", metrics.Outcome(err)).Inc()
	return err
}

func (a *API) UpdateCartLine(ctx context.Context, lineID string, quantity int) error {
	err := a.http.Do(ctx, http.MethodPut, "/cart/"+url.PathEscape(lineID), httpclient.Options{
		Body: quantityRequest{Quantity: quantity},
	}, nil)
	metrics.CartMutationsTotal.WithLabelValues("update", metrics.Outcome(err)).Inc()
	return err
}

func (a *API) RemoveCartLine(ctx context.Context, lineID string) error {
	err := a.http.Do(ctx, http.MethodDelete, "/cart/"+url.PathEscape(lineID), httpclient.Options{}, nil)
	metrics.CartMutationsTotal.WithLabelValues("remove", metrics.Outcome(err)).Inc()
	return err
}

// PlaceOrder sends an empty body; the backend resolves the cart itself.
func (a *API) PlaceOrder(ctx context.Context) (*domain.OrderConfirmation, error) {
	var res orderResponse
	err := a.http.Do(ctx, http.MethodPost, "/orders", httpclient.Options{Body: struct{}{}}, &res)
	metrics.CartMutationsTotal.WithLabelValues("checkout", metrics.Outcome(err)).Inc()
	if err != nil {
		return nil, err
	}
	return &domain.OrderConfirmation{
		Message: res.Message,
		OrderID: res.Order.ID,
		Total:   res.Order.TotalAmount,
	}, nil
}
