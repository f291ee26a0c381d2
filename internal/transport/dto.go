// Package transport holds the presentation types the API serializes. Orders
// are flattened here on purpose: no item->order back-reference, no user
// credential material.
package transport

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/mishaRomanov/online-store/internal/models"
)

type OrderItemView struct {
	ProductID   int             `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    uint            `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
}

type OrderView struct {
	ID              uint            `json:"id"`
	Code            string          `json:"code"`
	Username        string          `json:"username"`
	DeliveryAddress string          `json:"delivery_address"`
	PaymentMethod   string          `json:"payment_method"`
	PaymentStatus   string          `json:"payment_status"`
	OrderStatus     string          `json:"order_status"`
	ShippingFee     decimal.Decimal `json:"shipping_fee"`
	Total           decimal.Decimal `json:"total"`
	CreatedAt       time.Time       `json:"created_at"`
	Items           []OrderItemView `json:"items"`
}

type Pagination struct {
	Data       any `json:"data"`
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	TotalPages int `json:"total_pages"`
}

type CartLineView struct {
	Product  models.Product `json:"product"`
	Quantity uint           `json:"quantity"`
}

type CartView struct {
	Items       []CartLineView  `json:"items"`
	SubTotal    decimal.Decimal `json:"sub_total"`
	ShippingFee decimal.Decimal `json:"shipping_fee"`
	Total       decimal.Decimal `json:"total"`
}

type SummaryView struct {
	TotalSales    decimal.Decimal `json:"total_sales"`
	TotalProducts int64           `json:"total_products"`
	TotalOrders   int64           `json:"total_orders"`
	LatestOrders  []OrderView     `json:"latest_orders"`
}

// NewOrderView strips the cyclic and sensitive parts of a persisted order.
// Total is shipping fee plus the sum of snapshotted line prices.
func NewOrderView(o *models.Order) OrderView {
	items := make([]OrderItemView, 0, len(o.Items))
	total := o.ShippingFee
	for _, item := range o.Items {
		line := item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity)))
		total = total.Add(line)
		items = append(items, OrderItemView{
			ProductID:   item.ProductID,
			ProductName: item.Product.Name,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
		})
	}
	return OrderView{
		ID:              o.ID,
		Code:            o.Code,
		Username:        o.User.Username,
		DeliveryAddress: o.DeliveryAddress,
		PaymentMethod:   o.PaymentMethod,
		PaymentStatus:   o.PaymentStatus,
		OrderStatus:     o.OrderStatus,
		ShippingFee:     o.ShippingFee,
		Total:           total,
		CreatedAt:       o.CreatedAt,
		Items:           items,
	}
}
