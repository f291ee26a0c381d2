package order

import (
	"fmt"
	"strings"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/mishaRomanov/online-store/internal/catalog"
	"github.com/mishaRomanov/online-store/internal/config"
	"github.com/mishaRomanov/online-store/internal/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.Category{},
		&models.Product{},
		&models.User{},
		&models.RefreshToken{},
		&models.Order{},
		&models.OrderItem{},
		&models.Review{},
	))

	t.Cleanup(func() { _ = sqlDB.Close() })
	return db
}

func testCheckout() config.Checkout {
	return config.Checkout{
		ShippingFee: decimal.NewFromInt(5),
		PaymentMethods: map[string]string{
			"Cash":     "Cash On Delivery",
			"PayStack": "PayStack",
		},
		CodeLength:      9,
		OrdersPageSize:  5,
		CatalogPageSize: 8,
	}
}

func newBuilder(db *gorm.DB) *Builder {
	cfg := testCheckout()
	return &Builder{
		DB:      db,
		Catalog: &catalog.GormGateway{DB: db},
		Codes:   Generator{Length: cfg.CodeLength, Prefix: cfg.CodePrefix},
		Cfg:     cfg,
	}
}

func seedUser(t *testing.T, db *gorm.DB, username, role string) models.User {
	t.Helper()
	user := models.User{Username: username, PasswordHash: "x", Role: role}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func seedProduct(t *testing.T, db *gorm.DB, name string, price int64, count uint) models.Product {
	t.Helper()
	product := models.Product{
		Name:        name,
		Description: name,
		Price:       decimal.NewFromInt(price),
		Count:       count,
	}
	require.NoError(t, db.Create(&product).Error)
	return product
}
