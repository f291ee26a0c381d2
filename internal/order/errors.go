package order

import "errors"

// One sentinel per failure kind; handlers map them to HTTP codes. Everything
// else that comes out of this package is a storage fault.
var (
	ErrInvalidPaymentMethod   = errors.New("invalid payment method")
	ErrInvalidDeliveryAddress = errors.New("invalid delivery address")
	ErrUserNotFound           = errors.New("user not found")
	ErrProductUnavailable     = errors.New("product unavailable")
	ErrEmptyOrder             = errors.New("order has no items")
	ErrOrderNotFound          = errors.New("order not found")
	ErrAlreadyPaid            = errors.New("order has already been paid")
	ErrInsufficientStock      = errors.New("not enough stock for product")
	ErrInvalidStatusValue     = errors.New("invalid status value")
	ErrNoUpdateProvided       = errors.New("no update provided")
)
