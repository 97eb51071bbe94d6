package devserver

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/99minutos/storefront/internal/core/domain"
	"github.com/99minutos/storefront/internal/devserver/auth"
)

// Product is a catalog entry as the backend stores it.
type Product struct {
	domain.Product
	SellerID  string
	CreatedAt time.Time
}

// ProductInput is a create or update payload.
type ProductInput struct {
	Name        string
	Description string
	Price       decimal.Decimal
	Category    string
	Stock       int
	Image       string // empty keeps the current image on update
}

// CartItem is a stored cart line; name, price and image are resolved from the
// product at read time.
type CartItem struct {
	ID        string
	ProductID string
	Quantity  int
}

// Order is a placed order.
type Order struct {
	ID          string
	UserID      string
	Items       []domain.CartLine
	TotalAmount decimal.Decimal
	CreatedAt   time.Time
}

// Store is the in-memory database of the reference backend. All methods are
// safe for concurrent use.
type Store struct {
	mu       sync.RWMutex
	accounts map[string]*auth.Account
	products map[string]*Product
	carts    map[string][]CartItem // by user id
	orders   []Order
	now      func() time.Time
}

var _ auth.Repository = (*Store)(nil)

func NewStore() *Store {
	return &Store{
		accounts: make(map[string]*auth.Account),
		products: make(map[string]*Product),
		carts:    make(map[string][]CartItem),
		now:      func() time.Time { return time.Now().UTC() },
	}
}

func newID() string {
	return uuid.NewString()
}

// --- accounts ---

func (s *Store) CreateAccount(_ context.Context, a *auth.Account) (*auth.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.accounts {
		if existing.Email == a.Email {
			return nil, auth.ErrUserExists
		}
	}
	stored := *a
	stored.ID = newID()
	s.accounts[stored.ID] = &stored
	out := stored
	return &out, nil
}

func (s *Store) FindAccountByEmail(_ context.Context, email string) (*auth.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, a := range s.accounts {
		if a.Email == email {
			out := *a
			return &out, nil
		}
	}
	return nil, auth.ErrUserNotFound
}

func (s *Store) FindAccountByID(_ context.Context, id string) (*auth.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	a, ok := s.accounts[id]
	if !ok {
		return nil, auth.ErrUserNotFound
	}
	out := *a
	return &out, nil
}

func (s *Store) SetRole(_ context.Context, id string, role domain.Role) (*auth.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.accounts[id]
	if !ok {
		return nil, auth.ErrUserNotFound
	}
	a.Role = role
	out := *a
	return &out, nil
}

// --- products ---

// ListProducts returns active products matching the filters.
func (s *Store) ListProducts(_ context.Context, f domain.Filters) []domain.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()

	category := strings.ToLower(strings.TrimSpace(f.Category))
	search := strings.ToLower(strings.TrimSpace(f.Search))

	var matched []*Product
	for _, p := range s.products {
		if !p.IsActive {
			continue
		}
		if category != "" && strings.ToLower(p.Category) != category {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(p.Name), search) &&
			!strings.Contains(strings.ToLower(p.Description), search) {
			continue
		}
		matched = append(matched, p)
	}
	sortProducts(matched, f.Sort)
	return snapshot(matched)
}

// SellerProducts returns every product owned by sellerID, active or not,
// newest first.
func (s *Store) SellerProducts(_ context.Context, sellerID string) []domain.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var owned []*Product
	for _, p := range s.products {
		if p.SellerID == sellerID {
			owned = append(owned, p)
		}
	}
	sortProducts(owned, "newest")
	return snapshot(owned)
}

func sortProducts(ps []*Product, order string) {
	var less func(a, b *Product) bool
	switch order {
	case "price_asc":
		less = func(a, b *Product) bool { return a.Price.LessThan(b.Price) }
	case "price_desc":
		less = func(a, b *Product) bool { return a.Price.GreaterThan(b.Price) }
	case "rating":
		less = func(a, b *Product) bool { return a.Rating > b.Rating }
	default:
		less = func(a, b *Product) bool { return a.CreatedAt.After(b.CreatedAt) }
	}
	sort.SliceStable(ps, func(i, j int) bool {
		if less(ps[i], ps[j]) {
			return true
		}
		if less(ps[j], ps[i]) {
			return false
		}
		return ps[i].ID < ps[j].ID
	})
}

func snapshot(ps []*Product) []domain.Product {
	out := make([]domain.Product, 0, len(ps))
	for _, p := range ps {
		out = append(out, p.Product)
	}
	return out
}

// Product returns a product by id, active or not.
func (s *Store) Product(_ context.Context, id string) (domain.Product, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.products[id]
	if !ok {
		return domain.Product{}, false
	}
	return p.Product, true
}

func (s *Store) CreateProduct(_ context.Context, seller domain.User, in ProductInput) domain.Product {
	s.mu.Lock()
	defer s.mu.Unlock()

	p := &Product{
		Product: domain.Product{
			ID:          newID(),
			Name:        in.Name,
			Description: in.Description,
			Price:       in.Price,
			Stock:       in.Stock,
			Category:    in.Category,
			Image:       in.Image,
			SellerName:  seller.Name,
			IsActive:    true,
		},
		SellerID:  seller.ID,
		CreatedAt: s.now(),
	}
	s.products[p.ID] = p
	return p.Product
}

// UpdateProduct replaces the editable fields. Only the owner or an admin may
// update.
func (s *Store) UpdateProduct(_ context.Context, actor domain.User, id string, in ProductInput) (domain.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, err := s.ownedProduct(actor, id)
	if err != nil {
		return domain.Product{}, err
	}
	p.Name = in.Name
	p.Description = in.Description
	p.Price = in.Price
	p.Category = in.Category
	p.Stock = in.Stock
	if in.Image != "" {
		p.Image = in.Image
	}
	return p.Product, nil
}

func (s *Store) DeleteProduct(_ context.Context, actor domain.User, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.ownedProduct(actor, id); err != nil {
		return err
	}
	delete(s.products, id)
	return nil
}

func (s *Store) ownedProduct(actor domain.User, id string) (*Product, error) {
	p, ok := s.products[id]
	if !ok {
		return nil, ErrProductNotFound
	}
	if actor.Role != domain.RoleAdmin && p.SellerID != actor.ID {
		return nil, ErrNotOwner
	}
	return p, nil
}

// --- cart ---

// Cart resolves the user's items against the current products. Items whose
// product is gone are dropped.
func (s *Store) Cart(_ context.Context, userID string) []domain.CartLine {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cartLines(userID)
}

func (s *Store) cartLines(userID string) []domain.CartLine {
	items := s.carts[userID]
	lines := make([]domain.CartLine, 0, len(items))
	for _, it := range items {
		p, ok := s.products[it.ProductID]
		if !ok {
			continue
		}
		lines = append(lines, domain.CartLine{
			LineID:    it.ID,
			ProductID: domain.ProductRef(p.ID),
			Name:      p.Name,
			Price:     p.Price,
			Image:     p.Image,
			Quantity:  it.Quantity,
		})
	}
	return lines
}

// AddToCart merges quantity into an existing line for the same product.
func (s *Store) AddToCart(_ context.Context, userID, productID string, quantity int) error {
	if quantity < 1 {
		return ErrInvalidQuantity
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.products[productID]
	if !ok || !p.IsActive {
		return ErrProductNotFound
	}

	items := s.carts[userID]
	for i := range items {
		if items[i].ProductID == productID {
			if items[i].Quantity+quantity > p.Stock {
				return ErrInsufficientStock
			}
			items[i].Quantity += quantity
			return nil
		}
	}
	if quantity > p.Stock {
		return ErrInsufficientStock
	}
	s.carts[userID] = append(items, CartItem{ID: newID(), ProductID: productID, Quantity: quantity})
	return nil
}

func (s *Store) UpdateCartItem(_ context.Context, userID, itemID string, quantity int) error {
	if quantity < 1 {
		return ErrInvalidQuantity
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	items := s.carts[userID]
	for i := range items {
		if items[i].ID != itemID {
			continue
		}
		p, ok := s.products[items[i].ProductID]
		if !ok {
			return ErrProductNotFound
		}
		if quantity > p.Stock {
			return ErrInsufficientStock
		}
		items[i].Quantity = quantity
		return nil
	}
	return ErrCartItemNotFound
}

func (s *Store) RemoveCartItem(_ context.Context, userID, itemID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := s.carts[userID]
	for i := range items {
		if items[i].ID == itemID {
			s.carts[userID] = append(items[:i], items[i+1:]...)
			return nil
		}
	}
	return ErrCartItemNotFound
}

// --- orders ---

// PlaceOrder turns the cart into an order: stock is checked for every line
// before any is decremented, then the cart is cleared.
func (s *Store) PlaceOrder(_ context.Context, userID string) (Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	lines := s.cartLines(userID)
	if len(lines) == 0 {
		return Order{}, ErrEmptyCart
	}
	for _, l := range lines {
		if s.products[string(l.ProductID)].Stock < l.Quantity {
			return Order{}, ErrInsufficientStock
		}
	}

	total := decimal.Zero
	for _, l := range lines {
		s.products[string(l.ProductID)].Stock -= l.Quantity
		total = total.Add(l.Subtotal())
	}

	order := Order{
		ID:          newID(),
		UserID:      userID,
		Items:       lines,
		TotalAmount: total,
		CreatedAt:   s.now(),
	}
	s.orders = append(s.orders, order)
	delete(s.carts, userID)
	return order, nil
}

// Orders returns the orders placed by userID.
func (s *Store) Orders(_ context.Context, userID string) []Order {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []Order
	for _, o := range s.orders {
		if o.UserID == userID {
			out = append(out, o)
		}
	}
	return out
}
