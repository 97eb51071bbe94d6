package devserver

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/99minutos/storefront/internal/core/domain"
	"github.com/99minutos/storefront/internal/devserver/middleware"
)

// CartHandler serves the cart and order endpoints.
type CartHandler struct {
	store *Store
}

func NewCartHandler(store *Store) *CartHandler {
	return &CartHandler{store: store}
}

type addToCartRequest struct {
	ProductID string `json:"productId" validate:"required"`
	Quantity  int    `json:"quantity"`
}

type quantityRequest struct {
	Quantity int `json:"quantity" validate:"gte=1"`
}

// cartItemJSON carries the product as a bare id.
type cartItemJSON struct {
	ID       string  `json:"_id"`
	Product  string  `json:"product"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Image    string  `json:"image"`
	Quantity int     `json:"quantity"`
}

type cartJSON struct {
	Items       []cartItemJSON `json:"items"`
	TotalAmount float64        `json:"totalAmount"`
}

type cartResponse struct {
	Message string   `json:"message,omitempty"`
	Cart    cartJSON `json:"cart"`
}

type orderJSON struct {
	ID          string         `json:"_id"`
	Items       []cartItemJSON `json:"items"`
	TotalAmount float64        `json:"totalAmount"`
	CreatedAt   time.Time      `json:"createdAt"`
}

type orderResponse struct {
	Message string    `json:"message"`
	Order   orderJSON `json:"order"`
}

type ordersResponse struct {
	Orders []orderJSON `json:"orders"`
}

func toItemsJSON(lines []domain.CartLine) []cartItemJSON {
	out := make([]cartItemJSON, 0, len(lines))
	for _, l := range lines {
		out = append(out, cartItemJSON{
			ID:       l.LineID,
			Product:  string(l.ProductID),
			Name:     l.Name,
			Price:    l.Price.InexactFloat64(),
			Image:    l.Image,
			Quantity: l.Quantity,
		})
	}
	return out
}

func toCartJSON(lines []domain.CartLine) cartJSON {
	return cartJSON{
		Items:       toItemsJSON(lines),
		TotalAmount: domain.Cart{Lines: lines}.Total().InexactFloat64(),
	}
}

func toOrderJSON(o Order) orderJSON {
	return orderJSON{
		ID:          o.ID,
		Items:       toItemsJSON(o.Items),
		TotalAmount: o.TotalAmount.InexactFloat64(),
		CreatedAt:   o.CreatedAt,
	}
}

func (h *CartHandler) respondCart(c echo.Context, code int, msg string) error {
	user := middleware.CurrentUser(c)
	lines := h.store.Cart(c.Request().Context(), user.ID)
	return c.JSON(code, cartResponse{Message: msg, Cart: toCartJSON(lines)})
}

// Get returns the caller's cart.
//
// @Summary      Get cart
// @Tags         cart
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  cartResponse
// @Failure      401  {object}  errorResponse
// @Router       /cart [get]
func (h *CartHandler) Get(c echo.Context) error {
	return h.respondCart(c, http.StatusOK, "")
}

// Add puts a product in the cart, merging with an existing line.
//
// @Summary      Add to cart
// @Tags         cart
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      addToCartRequest  true  "Product and quantity"
// @Success      200   {object}  cartResponse
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /cart [post]
func (h *CartHandler) Add(c echo.Context) error {
	var req addToCartRequest
	if err := bindValid(c, &req); err != nil {
		return err
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}

	user := middleware.CurrentUser(c)
	if err := h.store.AddToCart(c.Request().Context(), user.ID, req.ProductID, req.Quantity); err != nil {
		return err
	}
	return h.respondCart(c, http.StatusOK, "Item added to cart")
}

// Update sets the quantity of a cart line.
//
// @Summary      Update cart item
// @Tags         cart
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string           true  "Cart item ID"
// @Param        body  body      quantityRequest  true  "New quantity"
// @Success      200   {object}  cartResponse
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /cart/{id} [put]
func (h *CartHandler) Update(c echo.Context) error {
	var req quantityRequest
	if err := bindValid(c, &req); err != nil {
		return err
	}

	user := middleware.CurrentUser(c)
	if err := h.store.UpdateCartItem(c.Request().Context(), user.ID, c.Param("id"), req.Quantity); err != nil {
		return err
	}
	return h.respondCart(c, http.StatusOK, "Cart updated")
}

// Remove deletes a cart line.
//
// @Summary      Remove cart item
// @Tags         cart
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Cart item ID"
// @Success      200  {object}  cartResponse
// @Failure      404  {object}  errorResponse
// @Router       /cart/{id} [delete]
func (h *CartHandler) Remove(c echo.Context) error {
	user := middleware.CurrentUser(c)
	if err := h.store.RemoveCartItem(c.Request().Context(), user.ID, c.Param("id")); err != nil {
		return err
	}
	return h.respondCart(c, http.StatusOK, "Item removed from cart")
}

// PlaceOrder converts the cart into an order.
//
// @Summary      Place order
// @Tags         orders
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Success      201  {object}  orderResponse
// @Failure      400  {object}  errorResponse
// @Router       /orders [post]
func (h *CartHandler) PlaceOrder(c echo.Context) error {
	user := middleware.CurrentUser(c)
	order, err := h.store.PlaceOrder(c.Request().Context(), user.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, orderResponse{Message: "Order placed successfully", Order: toOrderJSON(order)})
}

// Orders lists the caller's orders.
//
// @Summary      List orders
// @Tags         orders
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  ordersResponse
// @Router       /orders [get]
func (h *CartHandler) Orders(c echo.Context) error {
	user := middleware.CurrentUser(c)
	orders := h.store.Orders(c.Request().Context(), user.ID)
	out := ordersResponse{Orders: make([]orderJSON, 0, len(orders))}
	for _, o := range orders {
		out.Orders = append(out.Orders, toOrderJSON(o))
	}
	return c.JSON(http.StatusOK, out)
}
