package handlers

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/mishaRomanov/online-store/internal/models"
	"github.com/mishaRomanov/online-store/internal/order"
)

func TestGetSummaryCountsPaidSalesOnly(t *testing.T) {
	env := newTestEnv(t)
	user := env.seedUser("alice", "user")
	product := env.seedProduct("lamp", 10, 50)

	seedOrder := func(code, paymentStatus string, quantity uint) {
		o := models.Order{
			UserID:          user.ID,
			Code:            code,
			DeliveryAddress: "somewhere",
			PaymentMethod:   "Cash",
			PaymentStatus:   paymentStatus,
			OrderStatus:     string(order.FulfillmentCreated),
			ShippingFee:     decimal.NewFromInt(5),
			CreatedAt:       time.Now(),
			Items: []models.OrderItem{{
				ProductID: product.ID,
				Quantity:  quantity,
				UnitPrice: product.Price,
			}},
		}
		require.NoError(t, env.DB.Create(&o).Error)
	}

	// two paid orders, one unpaid; the unpaid one contributes nothing to sales
	seedOrder("AAAAAAAA1", string(order.PaymentAccepted), 2)
	seedOrder("AAAAAAAA2", string(order.PaymentAccepted), 1)
	seedOrder("AAAAAAAA3", string(order.PaymentPending), 4)

	rec, c := env.doJSONRequest(http.MethodGet, "/api/admin/summary", nil)
	asUser(c, user.ID, "admin")
	require.NoError(t, env.Summary.GetSummary(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		TotalSales    string `json:"total_sales"`
		TotalProducts int64  `json:"total_products"`
		TotalOrders   int64  `json:"total_orders"`
		LatestOrders  []struct {
			Code string `json:"code"`
		} `json:"latest_orders"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	sales, err := decimal.NewFromString(resp.TotalSales)
	require.NoError(t, err)
	require.True(t, sales.Equal(decimal.NewFromInt(30)), "got %s", sales)
	require.Equal(t, int64(1), resp.TotalProducts)
	require.Equal(t, int64(3), resp.TotalOrders)
	require.Len(t, resp.LatestOrders, 3)
}
