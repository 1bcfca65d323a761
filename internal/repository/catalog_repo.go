package repository

import (
	"github.com/shopspring/decimal"

	"github.com/Cheertaboi/checkout-flows/internal/models"
)

// CatalogRepo serves the static item catalog.
type CatalogRepo struct {
	items []models.Item
}

func NewCatalogRepo() *CatalogRepo {
	return &CatalogRepo{items: []models.Item{
		{
			ID:          "shoe",
			Name:        "Puma Shoes",
			Description: "Premium Shoes",
			Image:       "https://source.unsplash.com/NUoPWImmjCU",
			Price:       decimal.NewFromInt(20),
			Quantity:    1,
		},
		{
			ID:          "slippers",
			Name:        "Nike Sliders",
			Description: "Comfortable everyday slippers",
			Image:       "https://source.unsplash.com/K_gIPI791Jo",
			Price:       decimal.NewFromInt(10),
			Quantity:    1,
		},
	}}
}

// NewCatalogRepoFrom serves a caller-provided catalog, validating each item.
func NewCatalogRepoFrom(items []models.Item) (*CatalogRepo, error) {
	out := make([]models.Item, 0, len(items))
	for _, it := range items {
		v, err := models.NewItem(it.ID, it.Name, it.Description, it.Image, it.Price, it.Quantity)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return &CatalogRepo{items: out}, nil
}

// All returns the catalog in display order.
func (r *CatalogRepo) All() []models.Item {
	out := make([]models.Item, len(r.items))
	copy(out, r.items)
	return out
}

// Subscriptions is the plan catalog; it is the product list.
func (r *CatalogRepo) Subscriptions() []models.Item {
	return r.All()
}
