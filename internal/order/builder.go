package order

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/mishaRomanov/online-store/internal/cart"
	"github.com/mishaRomanov/online-store/internal/catalog"
	"github.com/mishaRomanov/online-store/internal/config"
	"github.com/mishaRomanov/online-store/internal/models"
)

// Builder validates a checkout request and persists the resulting order. Unit
// prices are snapshotted from the catalog at build time and never re-read.
type Builder struct {
	DB      *gorm.DB
	Catalog catalog.Gateway
	Codes   CodeSource
	Cfg     config.Checkout
}

type BuildRequest struct {
	PaymentMethod   string
	DeliveryAddress string
	CartEncoding    string
}

// insertRetries bounds the recovery loop for the narrow race where two
// requests draw the same code between the uniqueness check and the insert.
const insertRetries = 3

// maxDeliveryAddressLen matches the column bound on Order.DeliveryAddress.
const maxDeliveryAddressLen = 350

func (b *Builder) Build(ctx context.Context, userID uint, req BuildRequest) (*models.Order, error) {
	if _, ok := b.Cfg.PaymentMethods[req.PaymentMethod]; !ok {
		return nil, fmt.Errorf("%w: %q", ErrInvalidPaymentMethod, req.PaymentMethod)
	}

	if strings.TrimSpace(req.DeliveryAddress) == "" {
		return nil, fmt.Errorf("%w: address is required", ErrInvalidDeliveryAddress)
	}
	if len(req.DeliveryAddress) > maxDeliveryAddressLen {
		return nil, fmt.Errorf("%w: address exceeds %d characters", ErrInvalidDeliveryAddress, maxDeliveryAddressLen)
	}

	var user models.User
	if err := b.DB.WithContext(ctx).First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	quantities, err := cart.Decode(req.CartEncoding)
	if err != nil {
		return nil, err
	}

	// Stable order keeps line items deterministic for tests and humans.
	ids := make([]int, 0, len(quantities))
	for id := range quantities {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	items := make([]models.OrderItem, 0, len(ids))
	for _, id := range ids {
		snapshot, err := b.Catalog.Resolve(ctx, id)
		if errors.Is(err, catalog.ErrNotFound) {
			return nil, fmt.Errorf("%w: product %d", ErrProductUnavailable, id)
		}
		if err != nil {
			return nil, err
		}
		items = append(items, models.OrderItem{
			ProductID: id,
			Quantity:  quantities[id],
			UnitPrice: snapshot.Price,
		})
	}

	if len(items) < 1 {
		return nil, ErrEmptyOrder
	}

	newOrder := &models.Order{
		UserID:          userID,
		DeliveryAddress: req.DeliveryAddress,
		PaymentMethod:   req.PaymentMethod,
		PaymentStatus:   string(PaymentPending),
		OrderStatus:     string(FulfillmentCreated),
		ShippingFee:     b.Cfg.ShippingFee,
		CreatedAt:       time.Now(),
		Items:           items,
	}

	for attempt := 0; attempt < insertRetries; attempt++ {
		newOrder.ID = 0
		for i := range newOrder.Items {
			newOrder.Items[i].ID = 0
			newOrder.Items[i].OrderID = 0
		}
		var oracleErr error
		newOrder.Code = b.Codes.Generate(func(code string) bool {
			var n int64
			if err := b.DB.WithContext(ctx).Model(&models.Order{}).Where("code = ?", code).Count(&n).Error; err != nil {
				// let the draw loop exit so the captured error surfaces
				// instead of spinning against a broken store
				oracleErr = err
				return false
			}
			return n > 0
		})
		if oracleErr != nil {
			return nil, oracleErr
		}

		err := b.DB.WithContext(ctx).Create(newOrder).Error
		if err == nil {
			return newOrder, nil
		}
		// A concurrent checkout can win the same code between the oracle
		// check and the insert; the unique index catches it and a fresh
		// code is drawn. Anything else is a real storage fault.
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, err
		}
	}

	return nil, fmt.Errorf("could not assign a unique order code after %d attempts", insertRetries)
}
