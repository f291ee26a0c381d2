package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/mishaRomanov/online-store/internal/logging"
	"github.com/mishaRomanov/online-store/internal/models"
	"github.com/mishaRomanov/online-store/internal/order"
	"github.com/mishaRomanov/online-store/internal/transport"
)

type OrderHandler struct {
	DB       *gorm.DB
	Builder  *order.Builder
	Payments *order.Payments
	Query    *order.Query
	Producer EventPublisher
}

func (h *OrderHandler) publish(c echo.Context, key string, event map[string]any) {
	if h.Producer == nil {
		return
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := h.Producer.PublishEvent(ctx, "order_events", key, event); err != nil {
		logging.FromContext(ctx).Error("kafka publish failed", "topic", "order_events", "err", err)
	}
}

func (h *OrderHandler) CreateOrder(c echo.Context) error {
	who, err := caller(c)
	if err != nil {
		return err
	}

	var req struct {
		PaymentMethod      string `json:"payment_method"`
		DeliveryAddress    string `json:"delivery_address"`
		ProductIdentifiers string `json:"product_identifiers"`
	}
	if err := c.Bind(&req); err != nil {
		return errorResponse(c, http.StatusBadRequest, err)
	}

	newOrder, err := h.Builder.Build(c.Request().Context(), who.UserID, order.BuildRequest{
		PaymentMethod:   req.PaymentMethod,
		DeliveryAddress: req.DeliveryAddress,
		CartEncoding:    req.ProductIdentifiers,
	})
	if err != nil {
		return orderError(c, err)
	}

	h.publish(c, fmt.Sprint(newOrder.ID), map[string]any{
		"type":     "order_created",
		"order_id": newOrder.ID,
		"code":     newOrder.Code,
		"user_id":  who.UserID,
	})

	return c.JSON(http.StatusCreated, transport.NewOrderView(newOrder))
}

func (h *OrderHandler) ProcessPayment(c echo.Context) error {
	who, err := caller(c)
	if err != nil {
		return err
	}

	code := c.Param("code")
	if err := h.Payments.ProcessPayment(c.Request().Context(), who.UserID, code); err != nil {
		return orderError(c, err)
	}

	h.publish(c, strings.ToUpper(code), map[string]any{
		"type":    "order_paid",
		"code":    strings.ToUpper(code),
		"user_id": who.UserID,
	})

	return c.JSON(http.StatusOK, echo.Map{"result": "payment successful"})
}

func (h *OrderHandler) GetOrders(c echo.Context) error {
	who, err := caller(c)
	if err != nil {
		return err
	}

	page := parseIntDefault(c.QueryParam("page"), 1)
	result, err := h.Query.List(c.Request().Context(), who, page)
	if err != nil {
		return orderError(c, err)
	}
	return c.JSON(http.StatusOK, result)
}

func (h *OrderHandler) GetOrderByCode(c echo.Context) error {
	who, err := caller(c)
	if err != nil {
		return err
	}

	view, err := h.Query.GetByCode(c.Request().Context(), who, c.Param("code"))
	if err != nil {
		return orderError(c, err)
	}
	return c.JSON(http.StatusOK, view)
}

// UpdateOrder is the admin status update: either status axis, or both, as
// query parameters.
func (h *OrderHandler) UpdateOrder(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return errorResponse(c, http.StatusBadRequest, err)
	}

	var paymentStatus, orderStatus *string
	if v := c.QueryParam("paymentStatus"); v != "" {
		paymentStatus = &v
	}
	if v := c.QueryParam("orderStatus"); v != "" {
		orderStatus = &v
	}

	updated, err := h.Payments.UpdateStatuses(c.Request().Context(), uint(id), paymentStatus, orderStatus)
	if err != nil {
		return orderError(c, err)
	}
	return c.JSON(http.StatusOK, transport.NewOrderView(updated))
}

func (h *OrderHandler) DeleteOrder(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return errorResponse(c, http.StatusBadRequest, err)
	}

	err = h.DB.WithContext(c.Request().Context()).Transaction(func(tx *gorm.DB) error {
		var ord models.Order
		if err := tx.First(&ord, id).Error; err != nil {
			return err
		}
		if err := tx.Where("order_id = ?", ord.ID).Delete(&models.OrderItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(&ord).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errorResponse(c, http.StatusNotFound, order.ErrOrderNotFound)
		}
		return errorResponse(c, http.StatusInternalServerError, err)
	}

	return c.JSON(http.StatusOK, echo.Map{"result": "order deleted"})
}
