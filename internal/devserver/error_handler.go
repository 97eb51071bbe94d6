package devserver

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/99minutos/storefront/internal/devserver/auth"
)

// errorResponse is the error envelope the storefront client reads.
type errorResponse struct {
	Message string `json:"message"`
}

// NewHTTPErrorHandler maps known errors to status codes, logs unexpected
// ones without leaking details, and renders {"message": "..."}.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg := resolveError(err, log, c)
		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(code)
			return
		}
		_ = c.JSON(code, errorResponse{Message: msg})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	var he *echo.HTTPError
	if errors.As(err, &he) {
		if he.Internal != nil {
			log.Debug().Err(he.Internal).Str("path", c.Path()).Msg("request rejected")
		}
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	switch {
	case errors.Is(err, auth.ErrInvalidCredentials):
		return http.StatusUnauthorized, "Invalid email or password"
	case errors.Is(err, auth.ErrUserExists):
		return http.StatusBadRequest, "User already exists"
	case errors.Is(err, auth.ErrInvalidRole):
		return http.StatusBadRequest, "Role must be user or seller"
	case errors.Is(err, auth.ErrUserNotFound):
		return http.StatusNotFound, "User not found"
	case errors.Is(err, ErrProductNotFound):
		return http.StatusNotFound, "Product not found"
	case errors.Is(err, ErrCartItemNotFound):
		return http.StatusNotFound, "Cart item not found"
	case errors.Is(err, ErrInsufficientStock):
		return http.StatusBadRequest, "Insufficient stock"
	case errors.Is(err, ErrEmptyCart):
		return http.StatusBadRequest, "Cart is empty"
	case errors.Is(err, ErrNotOwner):
		return http.StatusForbidden, "Not authorized to modify this product"
	case errors.Is(err, ErrInvalidImage):
		return http.StatusBadRequest, "Only image uploads are allowed"
	case errors.Is(err, ErrInvalidQuantity):
		return http.StatusBadRequest, "Quantity must be at least 1"
	}

	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "Server error"
}
