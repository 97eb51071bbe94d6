// Package devserver is an in-memory reference implementation of the
// storefront REST backend, used for local development and end-to-end tests.
package devserver

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/99minutos/storefront/docs"
	"github.com/99minutos/storefront/internal/core/domain"
	"github.com/99minutos/storefront/internal/devserver/auth"
	"github.com/99minutos/storefront/internal/devserver/middleware"
	"github.com/99minutos/storefront/internal/pkg/validation"
	"github.com/99minutos/storefront/pkg/logger"
)

// Options configures a Server.
type Options struct {
	JWTSecret string
	TokenTTL  time.Duration
	// UploadDir holds product images; a temp dir is created when empty.
	UploadDir string
	// Seed fills the store with demo accounts and products.
	Seed   bool
	Logger zerolog.Logger
}

// Server is the reference backend.
type Server struct {
	echo    *echo.Echo
	store   *Store
	auth    *auth.Service
	uploads *Uploads
	log     zerolog.Logger
}

func New(opts Options) (*Server, error) {
	dir := opts.UploadDir
	if dir == "" {
		tmp, err := os.MkdirTemp("", "storefront-uploads-*")
		if err != nil {
			return nil, fmt.Errorf("create upload dir: %w", err)
		}
		dir = tmp
	}
	uploads, err := NewUploads(filepath.Clean(dir))
	if err != nil {
		return nil, err
	}

	store := NewStore()
	s := &Server{
		store:   store,
		auth:    auth.NewService(store, opts.JWTSecret, opts.TokenTTL),
		uploads: uploads,
		log:     logger.Tag(opts.Logger, "devserver"),
	}
	s.echo = s.newRouter(opts.JWTSecret)

	if opts.Seed {
		if err := Seed(context.Background(), store, s.auth); err != nil {
			return nil, fmt.Errorf("seed store: %w", err)
		}
	}
	return s, nil
}

// newRouter builds the Echo instance with all routes registered.
func (s *Server) newRouter(jwtSecret string) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = validation.New()
	e.HTTPErrorHandler = NewHTTPErrorHandler(s.log)

	// --- Global middleware ---
	reg := prometheus.NewRegistry()
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(s.log))
	e.Use(echomiddleware.CORS())
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "devserver",
		Registerer: reg,
	}))

	// --- Operational routes ---
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: reg}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)
	e.Static(UploadsPrefix, s.uploads.Dir())

	// --- Dependencies ---
	authHandler := NewAuthHandler(s.auth)
	productHandler := NewProductHandler(s.store, s.uploads)
	cartHandler := NewCartHandler(s.store)

	requireAuth := middleware.Auth(jwtSecret)
	loadUser := middleware.LoadUser(s.auth)
	authed := []echo.MiddlewareFunc{requireAuth, loadUser}
	sellerOnly := []echo.MiddlewareFunc{
		requireAuth,
		loadUser,
		middleware.RBAC(string(domain.RoleSeller), string(domain.RoleAdmin)),
	}

	api := e.Group("/api")

	// --- Auth routes ---
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)
	api.PUT("/auth/become-seller", authHandler.BecomeSeller, authed...)
	api.GET("/auth/me", authHandler.Me, authed...)

	// --- Product routes ---
	api.GET("/products", productHandler.List)
	api.GET("/products/seller/my-products", productHandler.Mine, sellerOnly...)
	api.GET("/products/:id", productHandler.Get)
	api.POST("/products", productHandler.Create, sellerOnly...)
	api.PUT("/products/:id", productHandler.Update, sellerOnly...)
	api.DELETE("/products/:id", productHandler.Delete, sellerOnly...)

	// --- Cart and order routes ---
	cart := api.Group("/cart", authed...)
	cart.GET("", cartHandler.Get)
	cart.POST("", cartHandler.Add)
	cart.PUT("/:id", cartHandler.Update)
	cart.DELETE("/:id", cartHandler.Remove)

	orders := api.Group("/orders", authed...)
	orders.POST("", cartHandler.PlaceOrder)
	orders.GET("", cartHandler.Orders)

	return e
}

func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(_ echo.Context, v echomiddleware.RequestLoggerValues) error {
			ev := log.Debug()
			if v.Error != nil {
				ev = log.Warn().Err(v.Error)
			}
			ev.Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	})
}

// Handler returns the HTTP handler, for httptest and embedding.
func (s *Server) Handler() http.Handler { return s.echo }

// Store exposes the backing store.
func (s *Server) Store() *Store { return s.store }

// Auth exposes the account service.
func (s *Server) Auth() *auth.Service { return s.auth }

// Start serves on addr until Shutdown. It returns nil after a clean shutdown.
func (s *Server) Start(addr string) error {
	s.log.Info().Str("addr", addr).Str("uploads", s.uploads.Dir()).Msg("reference backend listening")
	if err := s.echo.Start(addr); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}
