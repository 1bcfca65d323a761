package models

import (
	"errors"

	"github.com/shopspring/decimal"
)

var (
	ErrItemIDRequired  = errors.New("item id is required")
	ErrInvalidPrice    = errors.New("price must be greater than or equal to 0")
	ErrInvalidQuantity = errors.New("quantity must be at least 1")
	ErrDuplicateItem   = errors.New("duplicate item id in cart")
)

// Item is a catalog entry. Items are immutable once loaded.
type Item struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Image       string          `json:"image"`
	Price       decimal.Decimal `json:"price"`
	Quantity    int             `json:"quantity"`
}

func NewItem(id, name, description, image string, price decimal.Decimal, quantity int) (Item, error) {
	if id == "" {
		return Item{}, ErrItemIDRequired
	}
	if price.LessThan(decimal.Zero) {
		return Item{}, ErrInvalidPrice
	}
	if quantity < 1 {
		return Item{}, ErrInvalidQuantity
	}
	return Item{
		ID:          id,
		Name:        name,
		Description: description,
		Image:       image,
		Price:       price,
		Quantity:    quantity,
	}, nil
}

// Subtotal is price x quantity.
func (i Item) Subtotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}
