package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/99minutos/storefront/internal/core/domain"
	"github.com/99minutos/storefront/internal/core/ports"
)

func validForm() domain.ProductForm {
	return domain.ProductForm{Name: "Lamp", Description: "Brass desk lamp", Price: 499.5, Category: "home", Stock: 3}
}

func mineFixture() []domain.Product {
	return []domain.Product{
		{ID: "m1", Name: "Lamp", Description: "Brass", Price: decimal.NewFromInt(499), Category: "home", Stock: 3, IsActive: true},
		{ID: "m2", Name: "Rug", Price: decimal.NewFromInt(1200), Category: "home", Stock: 0, IsActive: false},
	}
}

func TestSellerService_Authorize(t *testing.T) {
	tests := []struct {
		name     string
		role     domain.Role
		loggedIn bool
		wantErr  error
		wantPage domain.Page
		wantMsg  string
	}{
		{name: "anonymous", wantErr: domain.ErrLoginRequired, wantPage: domain.PageLogin, wantMsg: "Please login first"},
		{name: "plain user", role: domain.RoleUser, loggedIn: true, wantErr: domain.ErrAccessDenied, wantPage: domain.PageHome, wantMsg: "Access denied. Seller account required."},
		{name: "seller", role: domain.RoleSeller, loggedIn: true},
		{name: "admin", role: domain.RoleAdmin, loggedIn: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := &stubAPI{mine: mineFixture()}
			f := newFixture(api)
			if tt.loggedIn {
				f.login(t, tt.role)
			}

			err := f.seller.Enter(context.Background())

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				if f.nav.last() != tt.wantPage || f.notifier.last().msg != tt.wantMsg {
					t.Fatalf("unexpected feedback %q / %+v", f.nav.last(), f.notifier.last())
				}
				if api.count("my-products") != 0 {
					t.Fatal("rejected entry must not fetch seller products")
				}
				return
			}
			if err != nil {
				t.Fatalf("enter: %v", err)
			}
			if api.count("my-products") != 1 || len(f.seller.Products()) != 2 {
				t.Fatalf("expected seller products loaded, calls=%v", api.Calls())
			}
		})
	}
}

func TestSellerService_Stats(t *testing.T) {
	f := newFixture(&stubAPI{mine: mineFixture()})
	f.login(t, domain.RoleSeller)
	if err := f.seller.Enter(context.Background()); err != nil {
		t.Fatalf("enter: %v", err)
	}

	st := f.seller.Stats()
	if st.Total != 2 || st.Active != 1 || st.Stock != 3 {
		t.Fatalf("unexpected stats %+v", st)
	}
}

func TestSellerService_LogoutLeavesConsole(t *testing.T) {
	f := newFixture(&stubAPI{mine: mineFixture()})
	f.login(t, domain.RoleSeller)
	if err := f.seller.Enter(context.Background()); err != nil {
		t.Fatalf("enter: %v", err)
	}

	if err := f.session.Logout(context.Background()); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if f.nav.last() != domain.PageHome {
		t.Fatalf("expected redirect home, got %q", f.nav.last())
	}
	if len(f.seller.Products()) != 0 {
		t.Fatal("expected seller state cleared")
	}

	f.seller.Leave()
	f.login(t, domain.RoleUser)
	_ = f.session.Logout(context.Background())
	if n := len(f.nav.pages); n != 1 {
		t.Fatalf("released hook must not redirect again, got %v", f.nav.pages)
	}
}

func TestSellerService_OpenEdit(t *testing.T) {
	f := newFixture(&stubAPI{mine: mineFixture()})
	f.login(t, domain.RoleSeller)
	_ = f.seller.Enter(context.Background())

	form, err := f.seller.OpenEdit("m1")
	if err != nil {
		t.Fatalf("open edit: %v", err)
	}
	if !form.Open || form.EditingID != "m1" || form.Form.Name != "Lamp" || form.Form.Price != 499 {
		t.Fatalf("unexpected form %+v", form)
	}

	f.seller.CloseForm()
	if _, err := f.seller.OpenEdit("missing"); !errors.Is(err, domain.ErrProductNotFound) {
		t.Fatalf("expected ErrProductNotFound, got %v", err)
	}
	if f.seller.Form().Get().Open {
		t.Fatal("a miss must leave the form closed")
	}
}

func TestSellerService_Submit_Create(t *testing.T) {
	api := &stubAPI{mine: mineFixture()}
	f := newFixture(api)
	f.login(t, domain.RoleSeller)
	_ = f.seller.Enter(context.Background())
	f.seller.OpenCreate()

	img := &domain.ImageUpload{Filename: "lamp.png", Content: strings.NewReader("png")}
	if err := f.seller.Submit(context.Background(), validForm(), img); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if api.count("create-product") != 1 || api.lastSub.Image != img {
		t.Fatalf("expected create with image, calls=%v", api.Calls())
	}
	if f.notifier.last().msg != "Product added successfully!" {
		t.Fatalf("unexpected toast %q", f.notifier.last().msg)
	}
	if fs := f.seller.Form().Get(); fs.Open || fs.Submitting {
		t.Fatalf("expected form closed, got %+v", fs)
	}
	if api.count("my-products") != 2 {
		t.Fatal("expected seller products reloaded")
	}
}

func TestSellerService_Submit_Update(t *testing.T) {
	api := &stubAPI{mine: mineFixture()}
	f := newFixture(api)
	f.login(t, domain.RoleSeller)
	_ = f.seller.Enter(context.Background())
	if _, err := f.seller.OpenEdit("m2"); err != nil {
		t.Fatalf("open edit: %v", err)
	}

	form := validForm()
	form.Stock = 10
	if err := f.seller.Submit(context.Background(), form, nil); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if api.count("update-product") != 1 || api.lastSub.Form.Stock != 10 || api.lastSub.Image != nil {
		t.Fatalf("expected update without image, calls=%v", api.Calls())
	}
	if f.notifier.last().msg != "Product updated successfully!" {
		t.Fatalf("unexpected toast %q", f.notifier.last().msg)
	}
}

func TestSellerService_Submit_InvalidForm(t *testing.T) {
	api := &stubAPI{}
	f := newFixture(api)
	f.login(t, domain.RoleSeller)

	form := validForm()
	form.Name = ""
	form.Price = -1
	err := f.seller.Submit(context.Background(), form, nil)

	if !errors.Is(err, domain.ErrInvalidForm) {
		t.Fatalf("expected ErrInvalidForm, got %v", err)
	}
	if api.count("create-product") != 0 {
		t.Fatal("invalid form must not be sent")
	}
	msg := f.notifier.last().msg
	if !strings.Contains(msg, "name is required") || !strings.Contains(msg, "price must be at least 0") {
		t.Fatalf("unexpected validation toast %q", msg)
	}
	if f.seller.Submitting() {
		t.Fatal("guard must be released")
	}
}

func TestSellerService_Submit_FailureKeepsFormOpen(t *testing.T) {
	api := &stubAPI{errByCall: map[string]error{"create-product": &domain.RequestFailedError{Status: 400, Message: "Bad image"}}}
	f := newFixture(api)
	f.login(t, domain.RoleSeller)
	f.seller.OpenCreate()

	if err := f.seller.Submit(context.Background(), validForm(), nil); !errors.Is(err, domain.ErrRequestFailed) {
		t.Fatalf("expected request failure, got %v", err)
	}
	fs := f.seller.Form().Get()
	if !fs.Open || fs.Submitting || fs.Form.Name != "Lamp" {
		t.Fatalf("expected form open with input kept, got %+v", fs)
	}
}

func TestSellerService_Submit_OneInFlight(t *testing.T) {
	api := &stubAPI{
		mine:    mineFixture(),
		block:   make(chan struct{}),
		entered: make(chan struct{}, 1),
	}
	f := newFixture(api)
	f.login(t, domain.RoleSeller)
	f.seller.OpenCreate()

	done := make(chan error, 1)
	go func() { done <- f.seller.Submit(context.Background(), validForm(), nil) }()
	<-api.entered

	if !f.seller.Submitting() || !f.seller.Form().Get().Submitting {
		t.Fatal("expected submission in flight")
	}
	if err := f.seller.Submit(context.Background(), validForm(), nil); !errors.Is(err, domain.ErrSubmissionInFlight) {
		t.Fatalf("expected ErrSubmissionInFlight, got %v", err)
	}

	close(api.block)
	if err := <-done; err != nil {
		t.Fatalf("first submit: %v", err)
	}
	if api.count("create-product") != 1 {
		t.Fatalf("expected exactly one create, calls=%v", api.Calls())
	}
	if f.seller.Submitting() {
		t.Fatal("guard must be released after completion")
	}
}

func TestSellerService_Delete(t *testing.T) {
	api := &stubAPI{mine: mineFixture()}
	f := newFixture(api)
	f.login(t, domain.RoleSeller)

	var asked string
	decline := ports.ConfirmFunc(func(p string) (bool, error) { asked = p; return false, nil })
	if err := f.seller.Delete(context.Background(), "m1", decline); !errors.Is(err, domain.ErrNotConfirmed) {
		t.Fatalf("expected ErrNotConfirmed, got %v", err)
	}
	if asked != "Are you sure you want to delete this product?" || api.count("delete-product") != 0 {
		t.Fatalf("declined delete must not call the API (prompt %q)", asked)
	}

	accept := ports.ConfirmFunc(func(string) (bool, error) { return true, nil })
	if err := f.seller.Delete(context.Background(), "m1", accept); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if api.count("delete-product") != 1 || api.count("my-products") != 1 {
		t.Fatalf("expected delete and reload, calls=%v", api.Calls())
	}
	if f.notifier.last().msg != "Product deleted successfully!" {
		t.Fatalf("unexpected toast %q", f.notifier.last().msg)
	}
}

func TestSellerService_Delete_PromptError(t *testing.T) {
	api := &stubAPI{}
	f := newFixture(api)
	f.login(t, domain.RoleSeller)

	failing := ports.ConfirmFunc(func(string) (bool, error) { return false, errBoom })
	if err := f.seller.Delete(context.Background(), "m1", failing); !errors.Is(err, errBoom) {
		t.Fatalf("expected prompt error, got %v", err)
	}
	if api.count("delete-product") != 0 {
		t.Fatal("expected no request")
	}
}
