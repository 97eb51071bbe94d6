package service

import (
	"context"
	"errors"
	"sync"

	"github.com/rs/zerolog"

	"github.com/99minutos/storefront/internal/core/domain"
	"github.com/99minutos/storefront/internal/core/ports"
	"github.com/99minutos/storefront/internal/core/state"
	"github.com/99minutos/storefront/internal/pkg/validation"
)

// ---------------------------------------------------------------------------
// Stubs
// ---------------------------------------------------------------------------

type stubAPI struct {
	mu    sync.Mutex
	calls []string

	loginRes    *ports.AuthResult
	registerRes *ports.AuthResult
	sellerRes   *ports.AuthResult
	products    []domain.Product
	mine        []domain.Product
	cart        []domain.CartLine
	order       *domain.OrderConfirmation

	err       error            // returned by every call when set
	errByCall map[string]error // per call override
	lastQty   int
	lastSub   ports.ProductSubmission
	block     chan struct{} // when set, create/update wait on it
	entered   chan struct{} // signalled when create/update starts
}

func (a *stubAPI) record(call string) error {
	a.mu.Lock()
	a.calls = append(a.calls, call)
	a.mu.Unlock()
	if err, ok := a.errByCall[call]; ok {
		return err
	}
	return a.err
}

func (a *stubAPI) Calls() []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]string, len(a.calls))
	copy(out, a.calls)
	return out
}

func (a *stubAPI) count(call string) int {
	n := 0
	for _, c := range a.Calls() {
		if c == call {
			n++
		}
	}
	return n
}

func (a *stubAPI) Login(_ context.Context, _, _ string) (*ports.AuthResult, error) {
	if err := a.record("login"); err != nil {
		return nil, err
	}
	return a.loginRes, nil
}

func (a *stubAPI) Register(_ context.Context, _ ports.RegisterInput) (*ports.AuthResult, error) {
	if err := a.record("register"); err != nil {
		return nil, err
	}
	return a.registerRes, nil
}

func (a *stubAPI) BecomeSeller(_ context.Context) (*ports.AuthResult, error) {
	if err := a.record("become-seller"); err != nil {
		return nil, err
	}
	return a.sellerRes, nil
}

func (a *stubAPI) ListProducts(_ context.Context, _ domain.Filters) ([]domain.Product, error) {
	if err := a.record("list-products"); err != nil {
		return nil, err
	}
	return a.products, nil
}

func (a *stubAPI) MyProducts(_ context.Context) ([]domain.Product, error) {
	if err := a.record("my-products"); err != nil {
		return nil, err
	}
	return a.mine, nil
}

func (a *stubAPI) save(call string, sub ports.ProductSubmission) error {
	if a.entered != nil {
		a.entered <- struct{}{}
	}
	if a.block != nil {
		<-a.block
	}
	a.mu.Lock()
	a.lastSub = sub
	a.mu.Unlock()
	return a.record(call)
}

func (a *stubAPI) CreateProduct(_ context.Context, sub ports.ProductSubmission) error {
	return a.save("create-product", sub)
}

func (a *stubAPI) UpdateProduct(_ context.Context, _ string, sub ports.ProductSubmission) error {
	return a.save("update-product", sub)
}

func (a *stubAPI) DeleteProduct(_ context.Context, _ string) error {
	return a.record("delete-product")
}

func (a *stubAPI) GetCart(_ context.Context) ([]domain.CartLine, error) {
	if err := a.record("get-cart"); err != nil {
		return nil, err
	}
	return a.cart, nil
}

func (a *stubAPI) AddToCart(_ context.Context, _ string, qty int) error {
	a.lastQty = qty
	return a.record("add-to-cart")
}

func (a *stubAPI) UpdateCartLine(_ context.Context, _ string, qty int) error {
	a.lastQty = qty
	return a.record("update-cart")
}

func (a *stubAPI) RemoveCartLine(_ context.Context, lineID string) error {
	return a.record("remove-cart:" + lineID)
}

func (a *stubAPI) PlaceOrder(_ context.Context) (*domain.OrderConfirmation, error) {
	if err := a.record("place-order"); err != nil {
		return nil, err
	}
	return a.order, nil
}

type stubStore struct {
	stored   ports.StoredSession
	readErr  error
	writeErr error
	eraseErr error
	writes   int
}

func (s *stubStore) Read(context.Context) (ports.StoredSession, error) {
	return s.stored, s.readErr
}

func (s *stubStore) Write(_ context.Context, in ports.StoredSession) error {
	if s.writeErr != nil {
		return s.writeErr
	}
	s.writes++
	s.stored = in
	return nil
}

func (s *stubStore) Erase(context.Context) error {
	if s.eraseErr != nil {
		return s.eraseErr
	}
	s.stored = ports.StoredSession{}
	return nil
}

type note struct {
	level ports.Level
	msg   string
}

type recNotifier struct {
	mu    sync.Mutex
	notes []note
}

func (n *recNotifier) Notify(level ports.Level, msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.notes = append(n.notes, note{level, msg})
}

func (n *recNotifier) last() note {
	n.mu.Lock()
	defer n.mu.Unlock()
	if len(n.notes) == 0 {
		return note{}
	}
	return n.notes[len(n.notes)-1]
}

type recNavigator struct {
	pages []domain.Page
}

func (n *recNavigator) Redirect(p domain.Page) { n.pages = append(n.pages, p) }

func (n *recNavigator) last() domain.Page {
	if len(n.pages) == 0 {
		return ""
	}
	return n.pages[len(n.pages)-1]
}

var errBoom = errors.New("boom")

// ---------------------------------------------------------------------------
// Fixture: services wired the way internal/app wires them.
// ---------------------------------------------------------------------------

type fixture struct {
	api      *stubAPI
	store    *stubStore
	notifier *recNotifier
	nav      *recNavigator

	session  *SessionService
	catalog  *CatalogService
	cart     *CartService
	checkout *CheckoutService
	seller   *SellerService
}

func newFixture(api *stubAPI) *fixture {
	f := &fixture{
		api:      api,
		store:    &stubStore{},
		notifier: &recNotifier{},
		nav:      &recNavigator{},
	}
	log := zerolog.Nop()
	sess := state.New(domain.Session{})

	f.session = NewSessionService(api, f.store, sess, f.notifier, f.nav, log)
	f.catalog = NewCatalogService(api, f.notifier, log)
	f.cart = NewCartService(api, sess, f.notifier, f.nav, log)
	f.checkout = NewCheckoutService(api, sess, f.cart, f.catalog, f.notifier, f.nav, log)
	f.seller = NewSellerService(api, f.session, validation.New(), f.notifier, f.nav, log)

	f.session.OnChange(func(ctx context.Context, s domain.Session) {
		if s.Active() {
			_ = f.cart.Load(ctx)
			return
		}
		f.cart.Reset()
	})
	return f
}

func (f *fixture) login(t interface{ Fatalf(string, ...any) }, role domain.Role) {
	if err := f.session.Establish(context.Background(), "tok-1", &domain.User{ID: "u1", Name: "Asha", Email: "asha@example.com", Role: role}); err != nil {
		t.Fatalf("establish: %v", err)
	}
}
