package domain

import (
	"bytes"
	"encoding/json"

	"github.com/shopspring/decimal"
)

// ProductRef is the product a cart line points at. The backend sends either
// the bare id or the populated product document.
type ProductRef string

func (r *ProductRef) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*r = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*r = ProductRef(s)
		return nil
	}
	var doc struct {
		ID      string `json:"_id"`
		PlainID string `json:"id"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}
	if doc.ID == "" {
		doc.ID = doc.PlainID
	}
	*r = ProductRef(doc.ID)
	return nil
}

// CartLine mirrors one server-side cart item. It is a cache, never edited
// locally.
type CartLine struct {
	LineID    string          `json:"_id"`
	ProductID ProductRef      `json:"product"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Image     string          `json:"image"`
	Quantity  int             `json:"quantity"`
}

// Subtotal is price × quantity.
func (l CartLine) Subtotal() decimal.Decimal {
	return l.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Cart is the buyer's pending selection. Line order carries no meaning.
type Cart struct {
	Lines []CartLine
}

func (c Cart) Empty() bool {
	return len(c.Lines) == 0
}

// Total is Σ price·qty.
func (c Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, l := range c.Lines {
		total = total.Add(l.Subtotal())
	}
	return total
}

// Count is Σ qty.
func (c Cart) Count() int {
	n := 0
	for _, l := range c.Lines {
		n += l.Quantity
	}
	return n
}

// OrderConfirmation is what the backend returns for a placed order.
type OrderConfirmation struct {
	Message string
	OrderID string
	Total   decimal.Decimal
}
