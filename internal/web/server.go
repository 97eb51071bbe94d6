// Package web serves the storefront client as a local server-rendered UI.
// Every page action is a form POST that runs one controller operation and
// redirects; events are applied one at a time, except product submission,
// which the seller controller guards on its own.
package web

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/99minutos/storefront/internal/app"
	"github.com/99minutos/storefront/internal/core/domain"
	"github.com/99minutos/storefront/internal/core/ports"
	"github.com/99minutos/storefront/internal/core/service"
	"github.com/99minutos/storefront/internal/core/view"
	"github.com/99minutos/storefront/internal/infrastructure/metrics"
	"github.com/99minutos/storefront/internal/infrastructure/notify"
)

// Categories offered by the category filter.
var Categories = []string{"books", "electronics", "home", "kitchen"}

type sortOption struct {
	Value string
	Label string
}

var sortOptions = []sortOption{
	{Value: "newest", Label: "Newest"},
	{Value: "price_asc", Label: "Price: Low to High"},
	{Value: "price_desc", Label: "Price: High to Low"},
	{Value: "rating", Label: "Top Rated"},
}

type Options struct {
	Logger zerolog.Logger
	// ProbeClient is used by the readiness check; defaults to a client
	// with a short timeout.
	ProbeClient *http.Client
}

type Server struct {
	app   *app.App
	flash *notify.Flash
	nav   *Redirects
	log   zerolog.Logger
	probe *http.Client
	echo  *echo.Echo

	// mu applies one UI event at a time.
	mu     sync.Mutex
	detail *service.DetailView
}

// New builds the UI over a wired app. flash and nav must be the notifier
// and navigator the app was built with.
func New(a *app.App, flash *notify.Flash, nav *Redirects, opts Options) (*Server, error) {
	r, err := newRenderer()
	if err != nil {
		return nil, err
	}
	probe := opts.ProbeClient
	if probe == nil {
		probe = &http.Client{Timeout: 3 * time.Second}
	}

	s := &Server{app: a, flash: flash, nav: nav, log: opts.Logger, probe: probe}
	s.echo = s.router(r)
	return s, nil
}

func (s *Server) router(r *renderer) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Renderer = r

	reg := prometheus.NewRegistry()

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "web",
		Registerer: reg,
	}))

	// --- Operational routes ---
	e.GET("/health", s.liveness)
	e.GET("/health/ready", s.readiness)
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{
		Gatherer: prometheus.Gatherers{prometheus.DefaultGatherer, reg},
	}))

	ui := e.Group("", s.serialize)

	// --- Catalog ---
	ui.GET("/", s.home)
	ui.POST("/search", s.search)
	ui.POST("/filter", s.filter)
	ui.POST("/sort", s.sort)
	ui.POST("/products/:id/view", s.viewDetails)
	ui.POST("/detail/close", s.closeDetails)

	// --- Cart ---
	ui.POST("/cart/add", s.addToCart)
	ui.POST("/cart/toggle", s.toggleCart)
	ui.POST("/cart/:line/quantity", s.setQuantity)
	ui.POST("/cart/:line/remove", s.removeLine)
	ui.POST("/checkout", s.checkout)

	// --- Session ---
	ui.GET("/login", s.loginPage)
	ui.POST("/login", s.login)
	ui.GET("/register", s.registerPage)
	ui.POST("/register", s.register)
	ui.POST("/logout", s.logout)
	ui.POST("/become-seller", s.becomeSeller)

	// --- Seller console ---
	ui.GET("/seller", s.sellerPage)
	ui.POST("/seller/new", s.openCreate)
	// Not serialized: a second submit while one is in flight must reach the
	// controller's in-flight guard instead of queueing behind it.
	e.POST("/seller/products", s.submitProduct)
	ui.POST("/seller/products/:id/edit", s.openEdit)
	ui.POST("/seller/form/close", s.closeForm)
	ui.GET("/seller/products/:id/delete", s.confirmDelete)
	ui.POST("/seller/products/:id/delete", s.deleteProduct)

	return e
}

func (s *Server) Handler() http.Handler { return s.echo }

func (s *Server) Start(addr string) error {
	s.log.Info().Str("addr", addr).Msg("web ui listening")
	return s.echo.Start(addr)
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	if s.detail != nil {
		s.detail.Close()
		s.detail = nil
	}
	s.mu.Unlock()
	return s.echo.Shutdown(ctx)
}

func (s *Server) serialize(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		metrics.UIEventsWaiting.Inc()
		s.mu.Lock()
		metrics.UIEventsWaiting.Dec()
		defer s.mu.Unlock()
		return next(c)
	}
}

// page is the data every template renders.
type page struct {
	Title      string
	Badge      view.AuthBadge
	Flash      []notify.Message
	ShowCart   bool
	Cart       view.Cart
	Catalog    view.Catalog
	Detail     *view.Detail
	Categories []string
	Sorts      []sortOption
	Dashboard  view.SellerDashboard
	Form       view.ProductForm
	Prompt     string
	Action     string
}

func (s *Server) newPage(title string) page {
	sess := s.app.Session.Current()
	return page{
		Title:    title,
		Badge:    view.BuildAuthBadge(sess),
		ShowCart: sess.Active(),
		Cart:     view.BuildCart(s.app.Cart.Snapshot(), s.app.Cart.PanelOpen(), s.app.ImageBase()),
	}
}

func (s *Server) render(c echo.Context, name string, p page) error {
	// A pending redirect from a GET handler wins over the page.
	if pg, ok := s.nav.Take(); ok {
		return c.Redirect(http.StatusSeeOther, PathFor(pg))
	}
	p.Flash = s.flash.Drain()
	return c.Render(http.StatusOK, name, p)
}

// done answers an action with a 303 to the page the controller asked for,
// or to fallback.
func (s *Server) done(c echo.Context, fallback string) error {
	if pg, ok := s.nav.Take(); ok {
		return c.Redirect(http.StatusSeeOther, PathFor(pg))
	}
	return c.Redirect(http.StatusSeeOther, fallback)
}

// logged records controller failures; the user already saw a notification.
func (s *Server) logged(op string, err error) {
	if err != nil {
		s.log.Debug().Err(err).Str("op", op).Msg("ui action failed")
	}
}

// --- Catalog ---

func (s *Server) home(c echo.Context) error {
	ctx := c.Request().Context()
	s.app.Seller.Leave()
	s.logged("load", s.app.Catalog.Load(ctx, s.app.Catalog.Filters()))

	p := s.newPage("Shop")
	p.Catalog = view.BuildCatalog(s.app.Catalog.Products(), s.app.Catalog.Filters(), s.app.ImageBase())
	p.Categories = Categories
	p.Sorts = sortOptions
	if s.detail != nil {
		d := view.BuildDetail(s.detail.Product(), s.detail.Stale(), s.app.ImageBase())
		p.Detail = &d
	}
	return s.render(c, "home", p)
}

func (s *Server) search(c echo.Context) error {
	s.logged("search", s.app.Catalog.Search(c.Request().Context(), c.FormValue("q")))
	return s.done(c, "/")
}

func (s *Server) filter(c echo.Context) error {
	ctx := c.Request().Context()
	category := strings.TrimSpace(c.FormValue("category"))
	if category == "" {
		s.logged("filter", s.app.Catalog.Load(ctx, domain.Filters{}))
		return s.done(c, "/")
	}
	s.logged("filter", s.app.Catalog.FilterByCategory(ctx, category))
	return s.done(c, "/")
}

func (s *Server) sort(c echo.Context) error {
	s.logged("sort", s.app.Catalog.Sort(c.Request().Context(), c.FormValue("sort")))
	return s.done(c, "/")
}

func (s *Server) viewDetails(c echo.Context) error {
	d, err := s.app.Catalog.ViewDetails(c.Param("id"))
	if err != nil {
		s.logged("view", err)
		return s.done(c, "/")
	}
	if s.detail != nil {
		s.detail.Close()
	}
	s.detail = d
	return s.done(c, "/")
}

func (s *Server) closeDetails(c echo.Context) error {
	if s.detail != nil {
		s.detail.Close()
		s.detail = nil
	}
	return s.done(c, "/")
}

// --- Cart ---

func (s *Server) addToCart(c echo.Context) error {
	s.logged("cart add", s.app.Cart.Add(c.Request().Context(), c.FormValue("product_id")))
	return s.done(c, "/")
}

func (s *Server) toggleCart(c echo.Context) error {
	s.app.Cart.TogglePanel()
	return s.done(c, "/")
}

func (s *Server) setQuantity(c echo.Context) error {
	qty, err := strconv.Atoi(c.FormValue("quantity"))
	if err != nil {
		s.flash.Notify(ports.LevelError, "Quantity must be a number")
		return s.done(c, "/")
	}
	s.logged("cart update", s.app.Cart.SetQuantity(c.Request().Context(), c.Param("line"), qty))
	return s.done(c, "/")
}

func (s *Server) removeLine(c echo.Context) error {
	s.logged("cart remove", s.app.Cart.Remove(c.Request().Context(), c.Param("line")))
	return s.done(c, "/")
}

func (s *Server) checkout(c echo.Context) error {
	_, err := s.app.Checkout.Checkout(c.Request().Context())
	s.logged("checkout", err)
	return s.done(c, "/")
}

// --- Session ---

func (s *Server) loginPage(c echo.Context) error {
	return s.render(c, "login", s.newPage("Login"))
}

func (s *Server) login(c echo.Context) error {
	if _, err := s.app.Session.Login(c.Request().Context(), c.FormValue("email"), c.FormValue("password")); err != nil {
		s.logged("login", err)
		return s.done(c, "/login")
	}
	return s.done(c, "/")
}

func (s *Server) registerPage(c echo.Context) error {
	return s.render(c, "register", s.newPage("Register"))
}

func (s *Server) register(c echo.Context) error {
	in := ports.RegisterInput{
		Name:     strings.TrimSpace(c.FormValue("name")),
		Email:    c.FormValue("email"),
		Password: c.FormValue("password"),
		Role:     domain.Role(c.FormValue("role")),
	}
	if _, err := s.app.Session.Register(c.Request().Context(), in); err != nil {
		s.logged("register", err)
		return s.done(c, "/register")
	}
	return s.done(c, "/")
}

func (s *Server) logout(c echo.Context) error {
	s.logged("logout", s.app.Session.Logout(c.Request().Context()))
	return s.done(c, "/")
}

func (s *Server) becomeSeller(c echo.Context) error {
	_, err := s.app.Session.BecomeSeller(c.Request().Context())
	s.logged("become seller", err)
	return s.done(c, "/")
}

// --- Seller console ---

func (s *Server) sellerPage(c echo.Context) error {
	if err := s.app.Seller.Enter(c.Request().Context()); err != nil {
		s.logged("seller enter", err)
		if errors.Is(err, domain.ErrLoginRequired) || errors.Is(err, domain.ErrAccessDenied) {
			return s.done(c, "/")
		}
	}

	p := s.newPage("Seller Dashboard")
	p.Dashboard = view.BuildSellerDashboard(s.app.Seller.Products(), s.app.ImageBase())
	fs := s.app.Seller.Form().Get()
	p.Form = view.BuildProductForm(fs.Open, fs.EditingID, fs.Form, fs.Submitting)
	return s.render(c, "seller", p)
}

func (s *Server) openCreate(c echo.Context) error {
	s.app.Seller.OpenCreate()
	return s.done(c, "/seller")
}

func (s *Server) openEdit(c echo.Context) error {
	_, err := s.app.Seller.OpenEdit(c.Param("id"))
	s.logged("open edit", err)
	return s.done(c, "/seller")
}

func (s *Server) closeForm(c echo.Context) error {
	s.app.Seller.CloseForm()
	return s.done(c, "/seller")
}

func (s *Server) submitProduct(c echo.Context) error {
	form, problem := productForm(c)
	if problem != "" {
		s.flash.Notify(ports.LevelError, problem)
		return s.done(c, "/seller")
	}

	var image *domain.ImageUpload
	if fh, err := c.FormFile("image"); err == nil && fh.Size > 0 {
		f, err := fh.Open()
		if err != nil {
			s.flash.Notify(ports.LevelError, "Could not read the image")
			return s.done(c, "/seller")
		}
		defer f.Close()
		image = &domain.ImageUpload{Filename: fh.Filename, Content: f}
	}

	err := s.app.Seller.Submit(c.Request().Context(), form, image)
	if errors.Is(err, domain.ErrSubmissionInFlight) {
		// The first submission decides where the page goes.
		return c.Redirect(http.StatusSeeOther, "/seller")
	}
	s.logged("submit product", err)
	return s.done(c, "/seller")
}

// productForm reads the console form. Number fields must parse; ranges and
// required fields are left to the controller's validation. A non-empty
// problem is the message to show instead of submitting.
func productForm(c echo.Context) (f domain.ProductForm, problem string) {
	f = domain.ProductForm{
		Name:        strings.TrimSpace(c.FormValue("name")),
		Description: strings.TrimSpace(c.FormValue("description")),
		Category:    strings.TrimSpace(c.FormValue("category")),
	}
	price, err := strconv.ParseFloat(strings.TrimSpace(c.FormValue("price")), 64)
	if err != nil {
		return f, "Price must be a number"
	}
	stock, err := strconv.Atoi(strings.TrimSpace(c.FormValue("stock")))
	if err != nil {
		return f, "Stock must be a whole number"
	}
	f.Price = price
	f.Stock = stock
	return f, ""
}

func (s *Server) confirmDelete(c echo.Context) error {
	p := s.newPage("Delete product")
	p.Prompt = service.DeletePrompt
	p.Action = "/seller/products/" + c.Param("id") + "/delete"
	return s.render(c, "confirm", p)
}

func (s *Server) deleteProduct(c echo.Context) error {
	confirmed := c.FormValue("confirm") == "yes"
	err := s.app.Seller.Delete(c.Request().Context(), c.Param("id"), ports.ConfirmFunc(func(string) (bool, error) {
		return confirmed, nil
	}))
	s.logged("delete product", err)
	return s.done(c, "/seller")
}
