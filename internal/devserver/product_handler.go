package devserver

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/99minutos/storefront/internal/core/domain"
	"github.com/99minutos/storefront/internal/devserver/middleware"
)

type ProductHandler struct {
	store   *Store
	uploads *Uploads
}

func NewProductHandler(store *Store, uploads *Uploads) *ProductHandler {
	return &ProductHandler{store: store, uploads: uploads}
}

// productRequest is the multipart product form.
type productRequest struct {
	Name        string  `json:"name"        form:"name"        validate:"required"`
	Description string  `json:"description" form:"description" validate:"required"`
	Price       float64 `json:"price"       form:"price"       validate:"gte=0"`
	Category    string  `json:"category"    form:"category"    validate:"required"`
	Stock       int     `json:"stock"       form:"stock"       validate:"gte=0"`
}

type productJSON struct {
	ID          string  `json:"_id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Stock       int     `json:"stock"`
	Category    string  `json:"category"`
	Image       string  `json:"image"`
	SellerName  string  `json:"sellerName"`
	Rating      float64 `json:"rating"`
	IsActive    bool    `json:"isActive"`
}

type productsResponse struct {
	Count    int           `json:"count"`
	Products []productJSON `json:"products"`
}

type productResponse struct {
	Message string      `json:"message,omitempty"`
	Product productJSON `json:"product"`
}

type messageResponse struct {
	Message string `json:"message"`
}

func toProductJSON(p domain.Product) productJSON {
	return productJSON{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price.InexactFloat64(),
		Stock:       p.Stock,
		Category:    p.Category,
		Image:       p.Image,
		SellerName:  p.SellerName,
		Rating:      p.Rating,
		IsActive:    p.IsActive,
	}
}

func toProductsResponse(ps []domain.Product) productsResponse {
	out := productsResponse{Count: len(ps), Products: make([]productJSON, 0, len(ps))}
	for _, p := range ps {
		out.Products = append(out.Products, toProductJSON(p))
	}
	return out
}

// List returns active products.
//
// @Summary      List products
// @Tags         products
// @Produce      json
// @Param        category  query     string  false  "Category"
// @Param        search    query     string  false  "Case-insensitive match on name and description"
// @Param        sort      query     string  false  "price_asc, price_desc, rating or newest"
// @Success      200       {object}  productsResponse
// @Router       /products [get]
func (h *ProductHandler) List(c echo.Context) error {
	products := h.store.ListProducts(c.Request().Context(), domain.Filters{
		Category: c.QueryParam("category"),
		Search:   c.QueryParam("search"),
		Sort:     c.QueryParam("sort"),
	})
	return c.JSON(http.StatusOK, toProductsResponse(products))
}

// Get returns one active product.
//
// @Summary      Get product
// @Tags         products
// @Produce      json
// @Param        id   path      string  true  "Product ID"
// @Success      200  {object}  productResponse
// @Failure      404  {object}  errorResponse
// @Router       /products/{id} [get]
func (h *ProductHandler) Get(c echo.Context) error {
	p, ok := h.store.Product(c.Request().Context(), c.Param("id"))
	if !ok || !p.IsActive {
		return ErrProductNotFound
	}
	return c.JSON(http.StatusOK, productResponse{Product: toProductJSON(p)})
}

// Mine returns the caller's products, including inactive ones.
//
// @Summary      Seller products
// @Tags         products
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  productsResponse
// @Failure      403  {object}  errorResponse
// @Router       /products/seller/my-products [get]
func (h *ProductHandler) Mine(c echo.Context) error {
	user := middleware.CurrentUser(c)
	return c.JSON(http.StatusOK, toProductsResponse(h.store.SellerProducts(c.Request().Context(), user.ID)))
}

// Create adds a product owned by the caller.
//
// @Summary      Create product
// @Tags         products
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        name         formData  string   true   "Name"
// @Param        description  formData  string   true   "Description"
// @Param        price        formData  number   true   "Price"
// @Param        category     formData  string   true   "Category"
// @Param        stock        formData  integer  true   "Stock"
// @Param        image        formData  file     false  "Image"
// @Success      201          {object}  productResponse
// @Failure      400          {object}  errorResponse
// @Failure      403          {object}  errorResponse
// @Router       /products [post]
func (h *ProductHandler) Create(c echo.Context) error {
	in, err := h.bindProduct(c)
	if err != nil {
		return err
	}
	p := h.store.CreateProduct(c.Request().Context(), *middleware.CurrentUser(c), in)
	return c.JSON(http.StatusCreated, productResponse{Message: "Product created successfully", Product: toProductJSON(p)})
}

// Update replaces a product's fields; the image is kept unless a new one is sent.
//
// @Summary      Update product
// @Tags         products
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        id           path      string   true   "Product ID"
// @Param        name         formData  string   true   "Name"
// @Param        description  formData  string   true   "Description"
// @Param        price        formData  number   true   "Price"
// @Param        category     formData  string   true   "Category"
// @Param        stock        formData  integer  true   "Stock"
// @Param        image        formData  file     false  "Image"
// @Success      200          {object}  productResponse
// @Failure      400          {object}  errorResponse
// @Failure      403          {object}  errorResponse
// @Failure      404          {object}  errorResponse
// @Router       /products/{id} [put]
func (h *ProductHandler) Update(c echo.Context) error {
	in, err := h.bindProduct(c)
	if err != nil {
		return err
	}
	p, err := h.store.UpdateProduct(c.Request().Context(), *middleware.CurrentUser(c), c.Param("id"), in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, productResponse{Message: "Product updated successfully", Product: toProductJSON(p)})
}

// Delete removes a product.
//
// @Summary      Delete product
// @Tags         products
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Product ID"
// @Success      200  {object}  messageResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /products/{id} [delete]
func (h *ProductHandler) Delete(c echo.Context) error {
	if err := h.store.DeleteProduct(c.Request().Context(), *middleware.CurrentUser(c), c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "Product deleted successfully"})
}

func (h *ProductHandler) bindProduct(c echo.Context) (ProductInput, error) {
	var req productRequest
	if err := bindValid(c, &req); err != nil {
		return ProductInput{}, err
	}

	in := ProductInput{
		Name:        req.Name,
		Description: req.Description,
		Price:       decimal.NewFromFloat(req.Price),
		Category:    req.Category,
		Stock:       req.Stock,
	}

	fh, err := c.FormFile("image")
	if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
		return in, nil
	}
	if err != nil {
		return ProductInput{}, echo.NewHTTPError(http.StatusBadRequest, "Invalid image upload").SetInternal(err)
	}
	if in.Image, err = h.uploads.Save(fh); err != nil {
		return ProductInput{}, err
	}
	return in, nil
}
