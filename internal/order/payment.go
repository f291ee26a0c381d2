package order

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/mishaRomanov/online-store/internal/models"
)

// Payments owns the Pending -> Accepted transition and the stock decrement
// that rides along with it. Everything happens inside one transaction so a
// failed item check can never leave a partial decrement behind.
type Payments struct {
	DB *gorm.DB
}

// ProcessPayment marks an order paid and decrements stock for every line item.
// The lookup is owner-scoped: admins use the generic status update instead.
// Not idempotent on purpose; paying twice is a client error, not a no-op.
func (p *Payments) ProcessPayment(ctx context.Context, userID uint, code string) error {
	return p.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var ord models.Order
		err := tx.Preload("Items").Preload("Items.Product").
			Where("upper(code) = ? AND user_id = ?", strings.ToUpper(code), userID).
			First(&ord).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrOrderNotFound
		}
		if err != nil {
			return err
		}

		if PaymentStatus(ord.PaymentStatus) == PaymentAccepted {
			return ErrAlreadyPaid
		}

		// Stock is re-checked now, at payment time; it can have moved since
		// checkout. All items are validated before anything mutates.
		for _, item := range ord.Items {
			if item.Product.Count < item.Quantity {
				return fmt.Errorf("%w %d", ErrInsufficientStock, item.ProductID)
			}
		}

		// The guard on payment_status serializes two concurrent payment
		// attempts: the loser updates zero rows and sees AlreadyPaid.
		res := tx.Model(&models.Order{}).
			Where("id = ? AND payment_status <> ?", ord.ID, string(PaymentAccepted)).
			Update("payment_status", string(PaymentAccepted))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrAlreadyPaid
		}

		// Conditional decrements instead of read-modify-write: a concurrent
		// order racing on the same product cannot lose updates, it just
		// fails the WHERE and rolls the whole transaction back.
		for _, item := range ord.Items {
			res := tx.Model(&models.Product{}).
				Where("id = ? AND count >= ?", item.ProductID, item.Quantity).
				Update("count", gorm.Expr("count - ?", item.Quantity))
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return fmt.Errorf("%w %d", ErrInsufficientStock, item.ProductID)
			}
		}

		return nil
	})
}

// UpdateStatuses is the admin path: set either status axis (or both) on any
// order by id. It validates values against the closed sets and transitions
// against the tables, and never touches stock.
func (p *Payments) UpdateStatuses(ctx context.Context, orderID uint, paymentStatus, orderStatus *string) (*models.Order, error) {
	if paymentStatus == nil && orderStatus == nil {
		return nil, ErrNoUpdateProvided
	}

	var ord models.Order
	err := p.DB.WithContext(ctx).First(&ord, orderID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}

	updates := map[string]any{}

	if paymentStatus != nil {
		next, err := ParsePaymentStatus(*paymentStatus)
		if err != nil {
			return nil, err
		}
		if !PaymentStatus(ord.PaymentStatus).CanTransitionTo(next) {
			return nil, fmt.Errorf("%w: payment %s -> %s", ErrInvalidStatusValue, ord.PaymentStatus, next)
		}
		updates["payment_status"] = string(next)
	}

	if orderStatus != nil {
		next, err := ParseFulfillmentStatus(*orderStatus)
		if err != nil {
			return nil, err
		}
		if !FulfillmentStatus(ord.OrderStatus).CanTransitionTo(next) {
			return nil, fmt.Errorf("%w: order %s -> %s", ErrInvalidStatusValue, ord.OrderStatus, next)
		}
		updates["order_status"] = string(next)
	}

	if err := p.DB.WithContext(ctx).Model(&ord).Updates(updates).Error; err != nil {
		return nil, err
	}
	return &ord, nil
}
