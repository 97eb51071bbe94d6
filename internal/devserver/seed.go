package devserver

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/99minutos/storefront/internal/core/domain"
	"github.com/99minutos/storefront/internal/devserver/auth"
)

// Demo accounts created by Seed.
const (
	SeedSellerEmail = "seller@storefront.test"
	SeedBuyerEmail  = "buyer@storefront.test"
	SeedPassword    = "password123"
)

var seedProducts = []ProductInput{
	{Name: "Brass Desk Lamp", Description: "Warm light with an adjustable arm.", Price: decimal.RequireFromString("1499.00"), Category: "home", Stock: 12},
	{Name: "Ceramic Mug", Description: "Hand glazed, 350 ml.", Price: decimal.RequireFromString("349.50"), Category: "kitchen", Stock: 40},
	{Name: "Cast Iron Skillet", Description: "Pre-seasoned 10 inch skillet.", Price: decimal.RequireFromString("1899.99"), Category: "kitchen", Stock: 5},
	{Name: "Wireless Earbuds", Description: "Noise isolating, 24h battery with case.", Price: decimal.RequireFromString("2999.00"), Category: "electronics", Stock: 20},
	{Name: "Notebook Set", Description: "Three dotted A5 notebooks.", Price: decimal.RequireFromString("299.00"), Category: "books", Stock: 0},
}

var seedRatings = []float64{4.5, 4.2, 4.8, 3.9, 4.0}

// Seed registers a demo seller and buyer and lists the demo products under
// the seller.
func Seed(ctx context.Context, store *Store, svc *auth.Service) error {
	_, seller, err := svc.Register(ctx, "Demo Seller", SeedSellerEmail, SeedPassword, domain.RoleSeller)
	if err != nil {
		return err
	}
	if _, _, err := svc.Register(ctx, "Demo Buyer", SeedBuyerEmail, SeedPassword, domain.RoleUser); err != nil {
		return err
	}

	for i, in := range seedProducts {
		p := store.CreateProduct(ctx, *seller, in)
		store.setRating(p.ID, seedRatings[i])
	}
	return nil
}

func (s *Store) setRating(id string, rating float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p, ok := s.products[id]; ok {
		p.Rating = rating
	}
}
