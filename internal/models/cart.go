package models

import (
	"fmt"

	"github.com/shopspring/decimal"
)

type Mode string

const (
	ModeCheckout     Mode = "checkout"
	ModeSubscription Mode = "subscription"
	ModeTrial        Mode = "trial"
)

// Cart is fixed for the lifetime of a flow visit. Insertion order is
// display order.
type Cart struct {
	Items []Item
	Mode  Mode
}

// LoadCart seeds a cart from the catalog without filtering.
func LoadCart(catalog []Item, mode Mode) (Cart, error) {
	seen := make(map[string]bool, len(catalog))
	items := make([]Item, 0, len(catalog))
	for _, it := range catalog {
		if seen[it.ID] {
			return Cart{}, fmt.Errorf("%w: %s", ErrDuplicateItem, it.ID)
		}
		seen[it.ID] = true
		items = append(items, it)
	}
	return Cart{Items: items, Mode: mode}, nil
}

func (c Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, it := range c.Items {
		total = total.Add(it.Subtotal())
	}
	return total
}

// Cadence is the price suffix shown next to totals.
func (m Mode) Cadence() string {
	switch m {
	case ModeSubscription:
		return "/ month"
	case ModeTrial:
		return "/ month after 30 day trial"
	default:
		return ""
	}
}
