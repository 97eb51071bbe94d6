package service

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog"

	"github.com/99minutos/storefront/internal/core/domain"
	"github.com/99minutos/storefront/internal/core/ports"
	"github.com/99minutos/storefront/internal/core/state"
)

// DeletePrompt is the question asked before a product is deleted.
const DeletePrompt = "Are you sure you want to delete this product?"

// FormValidator checks a product form before submission.
type FormValidator interface {
	Validate(i any) error
}

// FormState is the seller console's product form. Submitting is true while
// a submission is in flight; the submit control is disabled then.
type FormState struct {
	Open       bool
	EditingID  string // empty when creating
	Form       domain.ProductForm
	Submitting bool
}

// Editing reports whether the form targets an existing product.
func (f FormState) Editing() bool { return f.EditingID != "" }

// SellerService is the authorization-gated CRUD surface over the
// authenticated seller's own products.
type SellerService struct {
	api       ports.StorefrontAPI
	session   *SessionService
	products  *state.Value[[]domain.Product]
	form      *state.Value[FormState]
	validator FormValidator
	notifier  ports.Notifier
	nav       ports.Navigator
	log       zerolog.Logger

	inFlight atomic.Bool

	mu           sync.Mutex
	releaseGuard func()
}

func NewSellerService(
	api ports.StorefrontAPI,
	session *SessionService,
	validator FormValidator,
	notifier ports.Notifier,
	nav ports.Navigator,
	log zerolog.Logger,
) *SellerService {
	return &SellerService{
		api:       api,
		session:   session,
		products:  state.New[[]domain.Product](nil),
		form:      state.New(FormState{}),
		validator: validator,
		notifier:  notifier,
		nav:       nav,
		log:       log,
	}
}

// State is the myProducts snapshot.
func (s *SellerService) State() *state.Value[[]domain.Product] { return s.products }

// Form is the product form state.
func (s *SellerService) Form() *state.Value[FormState] { return s.form }

// Products returns the current snapshot.
func (s *SellerService) Products() []domain.Product { return s.products.Get() }

// Stats derives the dashboard summary from the snapshot.
func (s *SellerService) Stats() domain.SellerStats { return domain.Stats(s.products.Get()) }

// Authorize checks the console's entry condition and redirects away when it
// does not hold. No data is fetched on rejection.
func (s *SellerService) Authorize() error {
	sess := s.session.Current()
	if !sess.Active() {
		s.notifier.Notify(ports.LevelError, "Please login first")
		s.nav.Redirect(domain.PageLogin)
		return domain.ErrLoginRequired
	}
	if !sess.User.CanSell() {
		s.notifier.Notify(ports.LevelError, "Access denied. Seller account required.")
		s.nav.Redirect(domain.PageHome)
		return domain.ErrAccessDenied
	}
	return nil
}

// Enter opens the console: authorization, a session hook that leaves the
// console on logout, then the initial product load.
func (s *SellerService) Enter(ctx context.Context) error {
	if err := s.Authorize(); err != nil {
		return err
	}

	s.mu.Lock()
	if s.releaseGuard == nil {
		s.releaseGuard = s.session.OnChange(func(_ context.Context, sess domain.Session) {
			if !sess.CanSell() {
				s.products.Set(nil)
				s.form.Set(FormState{})
				s.nav.Redirect(domain.PageHome)
			}
		})
	}
	s.mu.Unlock()

	return s.LoadMine(ctx)
}

// Leave releases the console's session hook.
func (s *SellerService) Leave() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.releaseGuard != nil {
		s.releaseGuard()
		s.releaseGuard = nil
	}
}

// LoadMine fetches the seller's own products.
func (s *SellerService) LoadMine(ctx context.Context) error {
	products, err := s.api.MyProducts(ctx)
	if err != nil {
		s.log.Error().Err(err).Msg("load seller products failed")
		return fmt.Errorf("load seller products: %w", err)
	}
	if products == nil {
		products = []domain.Product{}
	}
	s.products.Set(products)
	return nil
}

// OpenCreate opens an empty form for a new product.
func (s *SellerService) OpenCreate() FormState {
	f := FormState{Open: true}
	s.form.Set(f)
	return f
}

// OpenEdit pre-fills the form from the snapshot. A product missing from the
// snapshot returns ErrProductNotFound and leaves the form untouched.
func (s *SellerService) OpenEdit(productID string) (FormState, error) {
	p, ok := domain.FindProduct(s.products.Get(), productID)
	if !ok {
		return s.form.Get(), domain.ErrProductNotFound
	}
	f := FormState{Open: true, EditingID: productID, Form: domain.FormFromProduct(p)}
	s.form.Set(f)
	return f, nil
}

// CloseForm resets the form.
func (s *SellerService) CloseForm() {
	s.form.Set(FormState{})
}

// Submit creates or updates a product from form. Only one submission may be
// in flight; a second call returns ErrSubmissionInFlight without a request.
func (s *SellerService) Submit(ctx context.Context, form domain.ProductForm, image *domain.ImageUpload) error {
	if !s.inFlight.CompareAndSwap(false, true) {
		return domain.ErrSubmissionInFlight
	}
	defer s.inFlight.Store(false)

	if err := s.validator.Validate(&form); err != nil {
		s.notifier.Notify(ports.LevelError, err.Error())
		return fmt.Errorf("%w: %s", domain.ErrInvalidForm, err.Error())
	}

	editingID := s.form.Get().EditingID
	s.setSubmitting(true, form)
	defer s.setSubmitting(false, form)

	sub := ports.ProductSubmission{Form: form, Image: image}
	var err error
	if editingID != "" {
		err = s.api.UpdateProduct(ctx, editingID, sub)
	} else {
		err = s.api.CreateProduct(ctx, sub)
	}
	if err != nil {
		s.log.Error().Err(err).Str("product_id", editingID).Msg("save product failed")
		return fmt.Errorf("save product: %w", err)
	}

	if editingID != "" {
		s.notifier.Notify(ports.LevelSuccess, "Product updated successfully!")
	} else {
		s.notifier.Notify(ports.LevelSuccess, "Product added successfully!")
	}

	s.form.Set(FormState{})
	return s.LoadMine(ctx)
}

func (s *SellerService) setSubmitting(on bool, form domain.ProductForm) {
	s.form.Update(func(f FormState) FormState {
		if on {
			f.Open = true
			f.Form = form
		} else if !f.Open {
			// Closed on success; keep it closed.
			return f
		}
		f.Submitting = on
		return f
	})
}

// Submitting reports whether a submission is in flight.
func (s *SellerService) Submitting() bool {
	return s.inFlight.Load()
}

// Delete removes a product after an explicit confirmation.
func (s *SellerService) Delete(ctx context.Context, productID string, confirm ports.Confirmer) error {
	ok, err := confirm.Confirm(DeletePrompt)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	if !ok {
		return domain.ErrNotConfirmed
	}

	if err := s.api.DeleteProduct(ctx, productID); err != nil {
		s.log.Error().Err(err).Str("product_id", productID).Msg("delete product failed")
		return fmt.Errorf("delete product: %w", err)
	}
	s.notifier.Notify(ports.LevelSuccess, "Product deleted successfully!")
	return s.LoadMine(ctx)
}
