package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/mishaRomanov/online-store/internal/models"
	"github.com/mishaRomanov/online-store/internal/order"
	"github.com/mishaRomanov/online-store/internal/transport"
)

type SummaryHandler struct {
	DB *gorm.DB
}

// GetSummary is the admin dashboard: sales over paid orders, store counts,
// and the five most recent orders.
func (h *SummaryHandler) GetSummary(c echo.Context) error {
	var sales struct {
		Total decimal.Decimal
	}
	err := h.DB.Model(&models.OrderItem{}).
		Joins("JOIN orders ON orders.id = order_items.order_id").
		Where("orders.payment_status = ?", string(order.PaymentAccepted)).
		Select("COALESCE(SUM(order_items.quantity * order_items.unit_price), 0) AS total").
		Scan(&sales).Error
	if err != nil {
		return errorResponse(c, http.StatusInternalServerError, err)
	}

	var totalProducts, totalOrders int64
	if err := h.DB.Model(&models.Product{}).Count(&totalProducts).Error; err != nil {
		return errorResponse(c, http.StatusInternalServerError, err)
	}
	if err := h.DB.Model(&models.Order{}).Count(&totalOrders).Error; err != nil {
		return errorResponse(c, http.StatusInternalServerError, err)
	}

	var latest []models.Order
	err = h.DB.Preload("Items").Preload("Items.Product").Preload("User").
		Order("created_at DESC").Limit(5).
		Find(&latest).Error
	if err != nil {
		return errorResponse(c, http.StatusInternalServerError, err)
	}

	views := make([]transport.OrderView, 0, len(latest))
	for i := range latest {
		views = append(views, transport.NewOrderView(&latest[i]))
	}

	return c.JSON(http.StatusOK, transport.SummaryView{
		TotalSales:    sales.Total,
		TotalProducts: totalProducts,
		TotalOrders:   totalOrders,
		LatestOrders:  views,
	})
}
