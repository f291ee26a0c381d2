package order

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/mishaRomanov/online-store/internal/models"
	"github.com/mishaRomanov/online-store/internal/transport"
	"github.com/mishaRomanov/online-store/internal/util"
)

// Caller identifies who is asking. Admins see every order, everyone else only
// their own.
type Caller struct {
	UserID uint
	Role   string
}

func (c Caller) IsAdmin() bool { return c.Role == "admin" }

type Query struct {
	DB       *gorm.DB
	PageSize int
}

func (q *Query) scoped(ctx context.Context, caller Caller) *gorm.DB {
	tx := q.DB.WithContext(ctx).Model(&models.Order{}).
		Preload("Items").Preload("Items.Product").Preload("User")
	if !caller.IsAdmin() {
		tx = tx.Where("user_id = ?", caller.UserID)
	}
	return tx
}

// List returns one page of order views, newest first.
func (q *Query) List(ctx context.Context, caller Caller, page int) (*transport.Pagination, error) {
	page = util.ClampPage(page)

	var total int64
	if err := q.scoped(ctx, caller).Count(&total).Error; err != nil {
		return nil, err
	}

	offset, limit := util.Calculate(page, q.PageSize)

	var orders []models.Order
	err := q.scoped(ctx, caller).
		Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&orders).Error
	if err != nil {
		return nil, err
	}

	views := make([]transport.OrderView, 0, len(orders))
	for i := range orders {
		views = append(views, transport.NewOrderView(&orders[i]))
	}

	return &transport.Pagination{
		Data:       views,
		Page:       page,
		PageSize:   q.PageSize,
		TotalPages: util.TotalPages(total, q.PageSize),
	}, nil
}

// GetByCode looks an order up by its public code, case-insensitively.
func (q *Query) GetByCode(ctx context.Context, caller Caller, code string) (*transport.OrderView, error) {
	var ord models.Order
	err := q.scoped(ctx, caller).
		Where("upper(code) = ?", strings.ToUpper(code)).
		First(&ord).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}
	view := transport.NewOrderView(&ord)
	return &view, nil
}
