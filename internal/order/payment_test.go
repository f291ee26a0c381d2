package order

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/mishaRomanov/online-store/internal/models"
)

func placeOrder(t *testing.T, db *gorm.DB, userID uint, encoding string) *models.Order {
	t.Helper()
	ord, err := newBuilder(db).Build(context.Background(), userID, BuildRequest{
		PaymentMethod:   "Cash",
		DeliveryAddress: "12 Main St",
		CartEncoding:    encoding,
	})
	require.NoError(t, err)
	return ord
}

func productCount(t *testing.T, db *gorm.DB, id int) uint {
	t.Helper()
	var product models.Product
	require.NoError(t, db.First(&product, id).Error)
	return product.Count
}

func TestProcessPaymentDecrementsStockOnce(t *testing.T) {
	db := newTestDB(t)
	p := &Payments{DB: db}
	user := seedUser(t, db, "buyer", "user")
	seedProduct(t, db, "lamp", 10, 8)
	seedProduct(t, db, "mug", 4, 3)

	ord := placeOrder(t, db, user.ID, "1-1-2")

	require.NoError(t, p.ProcessPayment(context.Background(), user.ID, ord.Code))
	require.Equal(t, uint(6), productCount(t, db, 1))
	require.Equal(t, uint(2), productCount(t, db, 2))

	var paid models.Order
	require.NoError(t, db.First(&paid, ord.ID).Error)
	require.Equal(t, string(PaymentAccepted), paid.PaymentStatus)

	// second attempt is rejected and changes nothing
	err := p.ProcessPayment(context.Background(), user.ID, ord.Code)
	require.ErrorIs(t, err, ErrAlreadyPaid)
	require.Equal(t, uint(6), productCount(t, db, 1))
	require.Equal(t, uint(2), productCount(t, db, 2))
}

func TestProcessPaymentCaseInsensitiveCode(t *testing.T) {
	db := newTestDB(t)
	p := &Payments{DB: db}
	user := seedUser(t, db, "buyer", "user")
	seedProduct(t, db, "lamp", 10, 8)

	ord := placeOrder(t, db, user.ID, "1")
	require.NoError(t, p.ProcessPayment(context.Background(), user.ID, strings.ToLower(ord.Code)))
}

func TestProcessPaymentOwnerScoped(t *testing.T) {
	db := newTestDB(t)
	p := &Payments{DB: db}
	buyer := seedUser(t, db, "buyer", "user")
	other := seedUser(t, db, "other", "user")
	seedProduct(t, db, "lamp", 10, 8)

	ord := placeOrder(t, db, buyer.ID, "1")

	err := p.ProcessPayment(context.Background(), other.ID, ord.Code)
	require.ErrorIs(t, err, ErrOrderNotFound)
	require.Equal(t, uint(8), productCount(t, db, 1))
}

func TestProcessPaymentUnknownCode(t *testing.T) {
	db := newTestDB(t)
	p := &Payments{DB: db}
	user := seedUser(t, db, "buyer", "user")

	err := p.ProcessPayment(context.Background(), user.ID, "NOPE12345")
	require.ErrorIs(t, err, ErrOrderNotFound)
}

func TestProcessPaymentInsufficientStockIsAllOrNothing(t *testing.T) {
	db := newTestDB(t)
	p := &Payments{DB: db}
	user := seedUser(t, db, "buyer", "user")
	seedProduct(t, db, "lamp", 10, 100)
	seedProduct(t, db, "mug", 4, 1)

	ord := placeOrder(t, db, user.ID, "1-2-2") // mug x2, only 1 in stock

	err := p.ProcessPayment(context.Background(), user.ID, ord.Code)
	require.ErrorIs(t, err, ErrInsufficientStock)

	// nothing moved, neither stock nor status
	require.Equal(t, uint(100), productCount(t, db, 1))
	require.Equal(t, uint(1), productCount(t, db, 2))
	var unpaid models.Order
	require.NoError(t, db.First(&unpaid, ord.ID).Error)
	require.Equal(t, string(PaymentPending), unpaid.PaymentStatus)
}

func TestProcessPaymentStockRecheckedAtPaymentTime(t *testing.T) {
	db := newTestDB(t)
	p := &Payments{DB: db}
	user := seedUser(t, db, "buyer", "user")
	seedProduct(t, db, "lamp", 10, 5)

	ord := placeOrder(t, db, user.ID, "1-1-1")

	// stock drains between checkout and payment
	require.NoError(t, db.Model(&models.Product{}).Where("id = ?", 1).
		Update("count", 2).Error)

	err := p.ProcessPayment(context.Background(), user.ID, ord.Code)
	require.ErrorIs(t, err, ErrInsufficientStock)
	require.Equal(t, uint(2), productCount(t, db, 1))
}
