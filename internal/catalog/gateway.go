// Package catalog exposes the read-side product lookup the order flow needs.
// Prices are never written through here; stock changes only via the payment
// transition's decrement.
package catalog

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/mishaRomanov/online-store/internal/models"
)

var ErrNotFound = errors.New("product not found")

// Snapshot is what the order builder freezes onto a line item.
type Snapshot struct {
	Price decimal.Decimal
	Stock uint
}

type Gateway interface {
	Resolve(ctx context.Context, productID int) (Snapshot, error)
}

type GormGateway struct {
	DB *gorm.DB
}

func (g *GormGateway) Resolve(ctx context.Context, productID int) (Snapshot, error) {
	var product models.Product
	err := g.DB.WithContext(ctx).First(&product, productID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return Snapshot{}, ErrNotFound
	}
	if err != nil {
		return Snapshot{}, err
	}
	return Snapshot{Price: product.Price, Stock: product.Count}, nil
}
