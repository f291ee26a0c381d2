package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/mishaRomanov/online-store/internal/cart"
	"github.com/mishaRomanov/online-store/internal/order"
)

// EventPublisher is what the handlers need from the kafka producer.
type EventPublisher interface {
	PublishEvent(ctx context.Context, topic, key string, event interface{}) error
}

type Response struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

func errorResponse(c echo.Context, code int, err error) error {
	return c.JSON(code, Response{
		Status:  "error",
		Message: err.Error(),
	})
}

func parseIntDefault(s string, def int) int {
	if s == "" {
		return def
	}
	if v, err := strconv.Atoi(s); err == nil {
		return v
	}
	return def
}

// caller pulls identity out of the validated token echo-jwt left in context.
func caller(c echo.Context) (order.Caller, error) {
	token, ok := c.Get("user").(*jwt.Token)
	if !ok {
		return order.Caller{}, echo.NewHTTPError(http.StatusUnauthorized, "missing token")
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return order.Caller{}, echo.NewHTTPError(http.StatusUnauthorized, "invalid token claims")
	}
	sub, ok := claims["sub"].(float64)
	if !ok {
		return order.Caller{}, echo.NewHTTPError(http.StatusUnauthorized, "invalid subject claim")
	}
	role, _ := claims["role"].(string)
	return order.Caller{UserID: uint(sub), Role: role}, nil
}

// orderError maps the order/cart failure kinds onto HTTP statuses. Anything
// unrecognized is a storage fault.
func orderError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, order.ErrUserNotFound),
		errors.Is(err, order.ErrOrderNotFound):
		return errorResponse(c, http.StatusNotFound, err)
	case errors.Is(err, cart.ErrInvalidCartEncoding),
		errors.Is(err, order.ErrInvalidPaymentMethod),
		errors.Is(err, order.ErrInvalidDeliveryAddress),
		errors.Is(err, order.ErrProductUnavailable),
		errors.Is(err, order.ErrEmptyOrder),
		errors.Is(err, order.ErrAlreadyPaid),
		errors.Is(err, order.ErrInsufficientStock),
		errors.Is(err, order.ErrInvalidStatusValue),
		errors.Is(err, order.ErrNoUpdateProvided):
		return errorResponse(c, http.StatusBadRequest, err)
	default:
		return errorResponse(c, http.StatusInternalServerError, err)
	}
}
