package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/mishaRomanov/online-store/internal/catalog"
	"github.com/mishaRomanov/online-store/internal/config"
	"github.com/mishaRomanov/online-store/internal/models"
	"github.com/mishaRomanov/online-store/internal/order"
)

type testEnv struct {
	T  *testing.T
	E  *echo.Echo
	DB *gorm.DB

	Auth    *AuthHandler
	Cart    *CartHandler
	Orders  *OrderHandler
	Product *ProductHandler
	Reviews *ReviewHandler
	Summary *SummaryHandler
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

func newTestEnv(t *testing.T) *testEnv {
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

	cfg := testCheckout()
	builder := &order.Builder{
		DB:      db,
		Catalog: &catalog.GormGateway{DB: db},
		Codes:   order.Generator{Length: cfg.CodeLength},
		Cfg:     cfg,
	}

	return &testEnv{
		T:    t,
		E:    echo.New(),
		DB:   db,
		Auth: &AuthHandler{DB: db, JWTSecret: []byte("test"), RefreshSecret: []byte("test-refresh")},
		Cart: &CartHandler{DB: db, Cfg: cfg},
		Orders: &OrderHandler{
			DB:       db,
			Builder:  builder,
			Payments: &order.Payments{DB: db},
			Query:    &order.Query{DB: db, PageSize: cfg.OrdersPageSize},
		},
		Product: &ProductHandler{DB: db, PageSize: cfg.CatalogPageSize},
		Reviews: &ReviewHandler{DB: db},
		Summary: &SummaryHandler{DB: db},
	}
}

func (env *testEnv) doJSONRequest(method, path string, body interface{}) (*httptest.ResponseRecorder, echo.Context) {
	var buf bytes.Buffer
	if body != nil {
		require.NoError(env.T, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := env.E.NewContext(req, rec)
	return rec, c
}

// asUser plants a parsed token the way echo-jwt would.
func asUser(c echo.Context, id uint, role string) {
	c.Set("user", &jwt.Token{Claims: jwt.MapClaims{
		"sub":  float64(id),
		"role": role,
	}})
}

func (env *testEnv) seedUser(username, role string) models.User {
	env.T.Helper()
	user := models.User{Username: username, PasswordHash: "x", Role: role}
	require.NoError(env.T, env.DB.Create(&user).Error)
	return user
}

func (env *testEnv) seedProduct(name string, price int64, count uint) models.Product {
	env.T.Helper()
	product := models.Product{
		Name:        name,
		Description: name,
		Price:       decimal.NewFromInt(price),
		Count:       count,
	}
	require.NoError(env.T, env.DB.Create(&product).Error)
	return product
}
