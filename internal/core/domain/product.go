package domain

import (
	"net/url"
	"strings"

	"github.com/shopspring/decimal"
)

// Product is a read-only snapshot of a catalog item owned by the backend.
type Product struct {
	ID          string          `json:"_id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Stock       int             `json:"stock"`
	Category    string          `json:"category"`
	Image       string          `json:"image"`
	SellerName  string          `json:"sellerName"`
	Rating      float64         `json:"rating"`
	IsActive    bool            `json:"isActive"`
}

// InStock is false at zero stock; the add-to-cart control is disabled then.
func (p Product) InStock() bool {
	return p.Stock > 0
}

// FindProduct resolves id against a loaded snapshot.
func FindProduct(products []Product, id string) (Product, bool) {
	for _, p := range products {
		if p.ID == id {
			return p, true
		}
	}
	return Product{}, false
}

// Filters narrows a catalog fetch. Blank fields are not sent.
type Filters struct {
	Category string
	Search   string
	Sort     string
}

// Query returns exactly the present, non-blank filters.
func (f Filters) Query() url.Values {
	q := url.Values{}
	add := func(key, val string) {
		if v := strings.TrimSpace(val); v != "" {
			q.Set(key, v)
		}
	}
	add("category", f.Category)
	add("search", f.Search)
	add("sort", f.Sort)
	return q
}

// SellerStats is the derived summary on the seller console.
type SellerStats struct {
	Total  int
	Active int
	Stock  int
}

// Stats summarises a seller's product snapshot.
func Stats(products []Product) SellerStats {
	s := SellerStats{Total: len(products)}
	for _, p := range products {
		if p.IsActive {
			s.Active++
		}
		s.Stock += p.Stock
	}
	return s
}

// ImageURL resolves an image reference against the API base. Image paths are
// served from the host root, so a trailing /api segment is dropped.
func ImageURL(apiBase, ref string) string {
	if ref == "" {
		return ""
	}
	if strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://") {
		return ref
	}
	base := strings.TrimSuffix(strings.TrimSuffix(apiBase, "/"), "/api")
	if !strings.HasPrefix(ref, "/") {
		ref = "/" + ref
	}
	return base + ref
}
