package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/mishaRomanov/online-store/internal/cart"
	"github.com/mishaRomanov/online-store/internal/config"
	"github.com/mishaRomanov/online-store/internal/models"
	"github.com/mishaRomanov/online-store/internal/transport"
)

type CartHandler struct {
	DB  *gorm.DB
	Cfg config.Checkout
}

// GetCart prices a cart encoding without creating anything. Unknown product
// ids are skipped here; checkout is where they become a hard failure.
func (h *CartHandler) GetCart(c echo.Context) error {
	quantities, err := cart.Decode(c.QueryParam("productIdentifiers"))
	if err != nil {
		return errorResponse(c, http.StatusBadRequest, err)
	}

	view := transport.CartView{
		Items:       []transport.CartLineView{},
		SubTotal:    decimal.Zero,
		ShippingFee: h.Cfg.ShippingFee,
	}

	for id, quantity := range quantities {
		var product models.Product
		if err := h.DB.First(&product, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				continue
			}
			return errorResponse(c, http.StatusInternalServerError, err)
		}
		view.Items = append(view.Items, transport.CartLineView{Product: product, Quantity: quantity})
		view.SubTotal = view.SubTotal.Add(product.Price.Mul(decimal.NewFromInt(int64(quantity))))
	}

	view.Total = view.SubTotal.Add(view.ShippingFee)
	return c.JSON(http.StatusOK, view)
}
