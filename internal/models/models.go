package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Category struct {
	ID   int    `gorm:"primaryKey;autoIncrement" json:"id"`
	Name string `gorm:"size:100;unique;not null" json:"name"`
}

type Product struct {
	ID          int             `gorm:"primaryKey;autoIncrement"    json:"id"`
	Name        string          `gorm:"size:255;not null"           json:"name"`
	Description string          `gorm:"not null"                    json:"description"`
	Brand       string          `gorm:"size:100"                    json:"brand"`
	Price       decimal.Decimal `gorm:"type:decimal(16,2);not null" json:"price"`
	Count       uint            `json:"count"`
	Thumbnail   string          `gorm:"size:100" json:"thumbnail"`
	CategoryID  int             `gorm:"index"    json:"category_id"`
	Category    Category        `json:"category"`
	CreatedAt   time.Time       `json:"created_at"`
}

type User struct {
	ID           uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Username     string `gorm:"unique;not null"          json:"username"`
	PasswordHash string `gorm:"not null"                 json:"-"`
	Role         string `gorm:"not null;default:user"    json:"role"`
}

type RefreshToken struct {
	ID        uint   `gorm:"primaryKey"      json:"id"`
	Token     string `gorm:"unique;not null" json:"token"`
	UserID    uint   `gorm:"index;not null"  json:"user_id"`
	ExpiresAt int64  `gorm:"not null"        json:"expires_at"`
	Revoked   bool   `gorm:"default:false"   json:"revoked"`
}

type Order struct {
	ID              uint            `gorm:"primaryKey"                   json:"id"`
	UserID          uint            `gorm:"index;not null"               json:"user_id"`
	Code            string          `gorm:"size:30;uniqueIndex;not null" json:"code"`
	DeliveryAddress string          `gorm:"size:350;not null"            json:"delivery_address"`
	PaymentMethod   string          `gorm:"size:30;not null"             json:"payment_method"`
	PaymentStatus   string          `gorm:"size:30;not null"             json:"payment_status"`
	OrderStatus     string          `gorm:"size:30;not null"             json:"order_status"`
	ShippingFee     decimal.Decimal `gorm:"type:decimal(16,2)"           json:"shipping_fee"`
	CreatedAt       time.Time       `json:"created_at"`
	Items           []OrderItem     `gorm:"constraint:OnDelete:CASCADE"  json:"items"`
	User            User            `json:"-"`
}

type OrderItem struct {
	ID        uint            `gorm:"primaryKey"                  json:"id"`
	OrderID   uint            `gorm:"index;not null"              json:"order_id"`
	ProductID int             `gorm:"not null"                    json:"product_id"`
	Quantity  uint            `gorm:"not null;check:quantity>0"   json:"quantity"`
	UnitPrice decimal.Decimal `gorm:"type:decimal(16,2);not null" json:"unit_price"`
	Product   Product         `json:"product"`
}

type Review struct {
	ID        uint      `gorm:"primaryKey"     json:"id"`
	UserID    uint      `gorm:"index;not null" json:"user_id"`
	ProductID int       `gorm:"index;not null" json:"product_id"`
	Rating    int       `gorm:"not null"       json:"rating"`
	Comment   string    `gorm:"size:1000"      json:"comment"`
	CreatedAt time.Time `json:"created_at"`
}
