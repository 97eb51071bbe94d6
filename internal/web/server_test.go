package web

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/sethvargo/go-envconfig"
	"github.com/shopspring/decimal"

	"github.com/99minutos/storefront/internal/app"
	"github.com/99minutos/storefront/internal/core/domain"
	"github.com/99minutos/storefront/internal/devserver"
	"github.com/99minutos/storefront/internal/infrastructure/config"
	"github.com/99minutos/storefront/internal/infrastructure/notify"
)

type fixture struct {
	backend *devserver.Server
	ui      *httptest.Server
	client  *http.Client
}

// newFixture wires the UI to a fresh backend; wrap, when given, sits in
// front of the backend handler.
func newFixture(t *testing.T, wrap ...func(http.Handler) http.Handler) *fixture {
	t.Helper()
	backend, err := devserver.New(devserver.Options{
		JWTSecret: "web-secret",
		TokenTTL:  time.Hour,
		UploadDir: t.TempDir(),
		Logger:    zerolog.Nop(),
	})
	if err != nil {
		t.Fatalf("devserver: %v", err)
	}
	var h http.Handler = backend.Handler()
	for _, w := range wrap {
		h = w(h)
	}
	api := httptest.NewServer(h)
	t.Cleanup(api.Close)

	cfg, err := config.LoadFrom(context.Background(), envconfig.MapLookuper(map[string]string{
		"STOREFRONT_API_URL": api.URL + "/api",
		"SESSION_FILE":       filepath.Join(t.TempDir(), "session.json"),
	}))
	if err != nil {
		t.Fatalf("config: %v", err)
	}

	flash := notify.NewFlash()
	nav := NewRedirects()
	a, err := app.New(context.Background(), cfg, app.Options{
		Notifier:   flash,
		Navigator:  nav,
		HTTPClient: api.Client(),
		Logger:     zerolog.Nop(),
	})
	if err != nil {
		t.Fatalf("app: %v", err)
	}
	t.Cleanup(func() { _ = a.Close() })
	a.Start(context.Background())

	srv, err := New(a, flash, nav, Options{Logger: zerolog.Nop(), ProbeClient: api.Client()})
	if err != nil {
		t.Fatalf("web: %v", err)
	}
	ui := httptest.NewServer(srv.Handler())
	t.Cleanup(ui.Close)

	client := &http.Client{CheckRedirect: func(*http.Request, []*http.Request) error {
		return http.ErrUseLastResponse
	}}
	return &fixture{backend: backend, ui: ui, client: client}
}

func (f *fixture) account(t *testing.T, name, email string, role domain.Role) *domain.User {
	t.Helper()
	_, u, err := f.backend.Auth().Register(context.Background(), name, email, "secret123", role)
	if err != nil {
		t.Fatalf("register %s: %v", email, err)
	}
	return u
}

func (f *fixture) get(t *testing.T, path string) (int, string) {
	t.Helper()
	resp, err := f.client.Get(f.ui.URL + path)
	if err != nil {
		t.Fatalf("GET %s: %v", path, err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, string(body)
}

// post submits a form and returns the redirect target.
func (f *fixture) post(t *testing.T, path string, form url.Values) string {
	t.Helper()
	resp, err := f.client.PostForm(f.ui.URL+path, form)
	if err != nil {
		t.Fatalf("POST %s: %v", path, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusSeeOther {
		t.Fatalf("POST %s: expected 303, got %d", path, resp.StatusCode)
	}
	return resp.Header.Get("Location")
}

// productRequest builds the console's multipart submit.
func (f *fixture) productRequest(t *testing.T, fields map[string]string) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			t.Fatal(err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	req, err := http.NewRequest(http.MethodPost, f.ui.URL+"/seller/products", &buf)
	if err != nil {
		t.Fatal(err)
	}
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

func (f *fixture) login(t *testing.T, email string) {
	t.Helper()
	if loc := f.post(t, "/login", url.Values{"email": {email}, "password": {"secret123"}}); loc != "/" {
		t.Fatalf("expected login to land home, got %q", loc)
	}
}

func TestHome_EscapesProductText(t *testing.T) {
	f := newFixture(t)
	seller := f.account(t, "Asha", "asha@example.com", domain.RoleSeller)
	f.backend.Store().CreateProduct(context.Background(), *seller, devserver.ProductInput{
		Name:        `<script>alert("x")</script>`,
		Description: "<b>bold</b>",
		Price:       decimal.RequireFromString("10"),
		Category:    "home",
		Stock:       1,
	})

	code, body := f.get(t, "/")
	if code != http.StatusOK {
		t.Fatalf("expected 200, got %d", code)
	}
	if strings.Contains(body, `<script>alert`) {
		t.Fatal("product name must be escaped")
	}
	if !strings.Contains(body, "&lt;script&gt;") {
		t.Fatalf("expected escaped name in page")
	}
	if !strings.Contains(body, "₹10.00") || !strings.Contains(body, "by Asha") {
		t.Fatalf("expected card labels in page")
	}
}

func TestAddToCart_AnonymousRedirectsToLogin(t *testing.T) {
	f := newFixture(t)
	seller := f.account(t, "Asha", "asha@example.com", domain.RoleSeller)
	p := f.backend.Store().CreateProduct(context.Background(), *seller, devserver.ProductInput{
		Name: "Lamp", Description: "Brass", Price: decimal.NewFromInt(5), Category: "home", Stock: 2,
	})

	if loc := f.post(t, "/cart/add", url.Values{"product_id": {p.ID}}); loc != "/login" {
		t.Fatalf("expected redirect to /login, got %q", loc)
	}
	_, body := f.get(t, "/login")
	if !strings.Contains(body, "Please login to add items to cart") {
		t.Fatal("expected the login prompt toast")
	}
	// drained once
	if _, body = f.get(t, "/login"); strings.Contains(body, "Please login to add items to cart") {
		t.Fatal("toast must not repeat")
	}
}

func TestShoppingFlow(t *testing.T) {
	f := newFixture(t)
	seller := f.account(t, "Asha", "asha@example.com", domain.RoleSeller)
	f.account(t, "Ravi", "ravi@example.com", domain.RoleUser)
	p := f.backend.Store().CreateProduct(context.Background(), *seller, devserver.ProductInput{
		Name: "Lamp", Description: "Brass", Price: decimal.RequireFromString("120.25"), Category: "home", Stock: 3,
	})

	f.login(t, "ravi@example.com")
	_, body := f.get(t, "/")
	if !strings.Contains(body, "Ravi (user)") || !strings.Contains(body, "Cart (0)") {
		t.Fatal("expected the account badge and an empty cart")
	}

	f.post(t, "/products/"+p.ID+"/view", nil)
	f.post(t, "/cart/add", url.Values{"product_id": {p.ID}})
	f.post(t, "/cart/add", url.Values{"product_id": {p.ID}})
	f.post(t, "/cart/toggle", nil)

	_, body = f.get(t, "/")
	if !strings.Contains(body, "Cart (2)") || !strings.Contains(body, "₹240.50") {
		t.Fatal("expected two units totalling 240.50")
	}
	if !strings.Contains(body, `class="card detail"`) {
		t.Fatal("expected the detail view to stay open")
	}

	if loc := f.post(t, "/checkout", nil); loc != "/" {
		t.Fatalf("unexpected checkout redirect %q", loc)
	}
	_, body = f.get(t, "/")
	if !strings.Contains(body, "Order placed successfully!") || !strings.Contains(body, "Cart (0)") {
		t.Fatal("expected the order toast and an emptied cart")
	}
	if got, _ := f.backend.Store().Product(context.Background(), p.ID); got.Stock != 1 {
		t.Fatalf("expected stock 1 after checkout, got %d", got.Stock)
	}

	f.post(t, "/logout", nil)
	if _, body = f.get(t, "/"); !strings.Contains(body, `href="/login">Login`) {
		t.Fatal("expected the anonymous badge after logout")
	}
}

func TestSellerConsole(t *testing.T) {
	f := newFixture(t)
	f.account(t, "Ravi", "ravi@example.com", domain.RoleUser)

	if code, _ := f.get(t, "/seller"); code != http.StatusSeeOther {
		t.Fatalf("anonymous console must redirect, got %d", code)
	}

	f.login(t, "ravi@example.com")
	resp, err := f.client.Get(f.ui.URL + "/seller")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusSeeOther || resp.Header.Get("Location") != "/" {
		t.Fatalf("buyers are sent home, got %d %q", resp.StatusCode, resp.Header.Get("Location"))
	}

	if loc := f.post(t, "/become-seller", nil); loc != "/seller" {
		t.Fatalf("expected the console after upgrade, got %q", loc)
	}
	code, body := f.get(t, "/seller")
	if code != http.StatusOK || !strings.Contains(body, "You have not listed any products yet.") {
		t.Fatalf("expected the empty console, got %d", code)
	}

	f.post(t, "/seller/new", nil)
	resp, err = f.client.Do(f.productRequest(t, map[string]string{
		"name": "Rug", "description": "Wool", "price": "75.5", "category": "home", "stock": "4",
	}))
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusSeeOther {
		t.Fatalf("expected 303 after submit, got %d", resp.StatusCode)
	}

	_, body = f.get(t, "/seller")
	if !strings.Contains(body, "Product added successfully!") || !strings.Contains(body, "Total products: <strong>1</strong>") {
		t.Fatal("expected the new product on the console")
	}

	mine := f.backend.Store().ListProducts(context.Background(), domain.Filters{})
	if len(mine) != 1 {
		t.Fatalf("expected one product, got %d", len(mine))
	}
	id := mine[0].ID

	_, body = f.get(t, "/seller/products/"+id+"/delete")
	if !strings.Contains(body, "Are you sure you want to delete this product?") {
		t.Fatal("expected the confirmation page")
	}
	f.post(t, "/seller/products/"+id+"/delete", nil)
	if _, ok := f.backend.Store().Product(context.Background(), id); !ok {
		t.Fatal("unconfirmed delete must keep the product")
	}
	f.post(t, "/seller/products/"+id+"/delete", url.Values{"confirm": {"yes"}})
	if _, ok := f.backend.Store().Product(context.Background(), id); ok {
		t.Fatal("confirmed delete must remove the product")
	}
}

func TestSubmit_RejectsNonNumericPrice(t *testing.T) {
	f := newFixture(t)
	f.account(t, "Asha", "asha@example.com", domain.RoleSeller)
	f.login(t, "asha@example.com")
	f.get(t, "/seller")
	f.post(t, "/seller/new", nil)

	loc := f.post(t, "/seller/products", url.Values{
		"name": {"Rug"}, "description": {"Wool"}, "price": {"cheap"}, "category": {"home"}, "stock": {"1"},
	})
	if loc != "/seller" {
		t.Fatalf("unexpected redirect %q", loc)
	}
	_, body := f.get(t, "/seller")
	if !strings.Contains(body, "Price must be a number") {
		t.Fatal("expected the price error toast")
	}
	if n := len(f.backend.Store().ListProducts(context.Background(), domain.Filters{})); n != 0 {
		t.Fatalf("nothing may be created, got %d", n)
	}
}

func TestSubmit_SecondSubmitWhileInFlightSendsNothing(t *testing.T) {
	var creates atomic.Int32
	arrived := make(chan struct{}, 2)
	release := make(chan struct{})
	var once sync.Once
	open := func() { once.Do(func() { close(release) }) }

	gate := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodPost && r.URL.Path == "/api/products" {
				creates.Add(1)
				arrived <- struct{}{}
				<-release
			}
			next.ServeHTTP(w, r)
		})
	}
	f := newFixture(t, gate)
	// Runs before the servers close so a held request can finish.
	t.Cleanup(open)
	f.account(t, "Asha", "asha@example.com", domain.RoleSeller)
	f.login(t, "asha@example.com")
	f.get(t, "/seller")
	f.post(t, "/seller/new", nil)

	fields := map[string]string{
		"name": "Rug", "description": "Wool", "price": "75.5", "category": "home", "stock": "4",
	}
	first, second := f.productRequest(t, fields), f.productRequest(t, fields)

	send := func(req *http.Request) <-chan int {
		out := make(chan int, 1)
		go func() {
			resp, err := f.client.Do(req)
			if err != nil {
				out <- 0
				return
			}
			resp.Body.Close()
			out <- resp.StatusCode
		}()
		return out
	}

	firstDone := send(first)
	select {
	case <-arrived:
	case <-time.After(5 * time.Second):
		t.Fatal("first submission never reached the backend")
	}

	select {
	case code := <-send(second):
		if code != http.StatusSeeOther {
			t.Fatalf("expected 303 for the second submit, got %d", code)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("second submit waited for the first one")
	}

	open()
	if code := <-firstDone; code != http.StatusSeeOther {
		t.Fatalf("expected 303 for the first submit, got %d", code)
	}

	if n := creates.Load(); n != 1 {
		t.Fatalf("expected one create request, got %d", n)
	}
	if n := len(f.backend.Store().ListProducts(context.Background(), domain.Filters{})); n != 1 {
		t.Fatalf("expected one product, got %d", n)
	}
	_, body := f.get(t, "/seller")
	if !strings.Contains(body, "Product added successfully!") {
		t.Fatal("expected the success toast from the first submit")
	}
}

func TestHealth(t *testing.T) {
	f := newFixture(t)

	if code, _ := f.get(t, "/health"); code != http.StatusOK {
		t.Fatalf("expected 200, got %d", code)
	}

	code, body := f.get(t, "/health/ready")
	if code != http.StatusOK {
		t.Fatalf("expected ready, got %d: %s", code, body)
	}
	var got readinessResponse
	if err := json.Unmarshal([]byte(body), &got); err != nil {
		t.Fatal(err)
	}
	if got.Dependencies["backend"].Status != "ok" || got.Dependencies["session_store"].Status != "ok" {
		t.Fatalf("unexpected dependencies %+v", got.Dependencies)
	}

	f.get(t, "/")
	_, body = f.get(t, "/metrics")
	if !strings.Contains(body, "web_requests_total") || !strings.Contains(body, "storefront_client_requests_total") {
		t.Fatal("expected ui and client metrics")
	}
}

func TestRedirects(t *testing.T) {
	r := NewRedirects()
	if _, ok := r.Take(); ok {
		t.Fatal("no redirect pending")
	}
	r.Redirect(domain.PageLogin)
	r.Redirect(domain.PageSellerConsole)
	p, ok := r.Take()
	if !ok || PathFor(p) != "/seller" {
		t.Fatalf("expected the last redirect, got %q", p)
	}
	if _, ok := r.Take(); ok {
		t.Fatal("take clears the redirect")
	}
	if PathFor("elsewhere") != "/" {
		t.Fatal("unknown pages go home")
	}
}
