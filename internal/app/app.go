// Package app wires the storefront client: configuration, session store
// backend, HTTP client, typed API and the controllers.
package app

import (
	"context"
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/99minutos/storefront/internal/core/domain"
	"github.com/99minutos/storefront/internal/core/ports"
	"github.com/99minutos/storefront/internal/core/service"
	"github.com/99minutos/storefront/internal/core/state"
	"github.com/99minutos/storefront/internal/infrastructure/config"
	"github.com/99minutos/storefront/internal/infrastructure/httpclient"
	"github.com/99minutos/storefront/internal/infrastructure/storefrontapi"
	"github.com/99minutos/storefront/internal/pkg/validation"
	"github.com/99minutos/storefront/pkg/logger"
)

// Options are the front-end specific collaborators.
type Options struct {
	Notifier  ports.Notifier
	Navigator ports.Navigator
	// Store overrides the configured session backend.
	Store      ports.SessionStore
	HTTPClient *http.Client
	Logger     zerolog.Logger
}

// App holds the wired controllers.
type App struct {
	Session  *service.SessionService
	Catalog  *service.CatalogService
	Cart     *service.CartService
	Checkout *service.CheckoutService
	Seller   *service.SellerService

	cfg     *config.Config
	client  *httpclient.Client
	store   ports.SessionStore
	closers []func() error
	unhook  func()
	log     zerolog.Logger
}

func New(ctx context.Context, cfg *config.Config, opts Options) (*App, error) {
	log := opts.Logger
	notifier := opts.Notifier
	if notifier == nil {
		notifier = ports.NotifierFunc(func(ports.Level, string) {})
	}
	nav := opts.Navigator
	if nav == nil {
		nav = ports.NavigatorFunc(func(domain.Page) {})
	}

	a := &App{cfg: cfg, log: log}

	a.store = opts.Store
	if a.store == nil {
		store, closer, err := OpenSessionStore(ctx, cfg)
		if err != nil {
			return nil, err
		}
		a.store = store
		if closer != nil {
			a.closers = append(a.closers, closer)
		}
	}

	sess := state.New(domain.Session{})

	var clientOpts []httpclient.Option
	if opts.HTTPClient != nil {
		clientOpts = append(clientOpts, httpclient.WithHTTPClient(opts.HTTPClient))
	}
	a.client = httpclient.New(cfg.APIURL, func() string { return sess.Get().Token }, notifier,
		logger.Tag(log, "httpclient"), clientOpts...)
	api := storefrontapi.New(a.client)

	a.Session = service.NewSessionService(api, a.store, sess, notifier, nav, logger.Tag(log, "session"))
	a.Cart = service.NewCartService(api, sess, notifier, nav, logger.Tag(log, "cart"))
	a.Catalog = service.NewCatalogService(api, notifier, logger.Tag(log, "catalog"))
	a.Checkout = service.NewCheckoutService(api, sess, a.Cart, a.Catalog, notifier, nav, logger.Tag(log, "checkout"))
	a.Seller = service.NewSellerService(api, a.Session, validation.New(), notifier, nav, logger.Tag(log, "seller"))

	a.unhook = a.Session.OnChange(func(ctx context.Context, s domain.Session) {
		if !s.Active() {
			a.Cart.Reset()
			return
		}
		_ = a.Cart.Load(ctx)
	})
	return a, nil
}

// Start restores the persisted session and, when logged in, the cart.
func (a *App) Start(ctx context.Context) domain.Session {
	sess := a.Session.Load(ctx)
	if sess.Active() {
		_ = a.Cart.Load(ctx)
	}
	return sess
}

// ImageBase is the base image references are resolved against.
func (a *App) ImageBase() string { return a.client.Base() }

// Config returns the configuration the app was built with.
func (a *App) Config() *config.Config { return a.cfg }

// Ping checks the session store when its backend supports it.
func (a *App) Ping(ctx context.Context) error {
	if p, ok := a.store.(ports.Pinger); ok {
		return p.Ping(ctx)
	}
	return nil
}

// Close releases the session hook and the store connection.
func (a *App) Close() error {
	if a.unhook != nil {
		a.unhook()
	}
	var errs []error
	for _, c := range a.closers {
		if err := c(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
