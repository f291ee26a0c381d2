package order

import "fmt"

// Two independent status axes. Both are closed sets with explicit transition
// tables; anything not listed is rejected before any write happens.

type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "Pending"
	PaymentAccepted PaymentStatus = "Accepted"
	PaymentCanceled PaymentStatus = "Canceled"
)

type FulfillmentStatus string

const (
	FulfillmentCreated   FulfillmentStatus = "Created"
	FulfillmentAccepted  FulfillmentStatus = "Accepted"
	FulfillmentShipped   FulfillmentStatus = "Shipped"
	FulfillmentDelivered FulfillmentStatus = "Delivered"
	FulfillmentCanceled  FulfillmentStatus = "Canceled"
	FulfillmentReturned  FulfillmentStatus = "Returned"
)

var paymentTransitions = map[PaymentStatus][]PaymentStatus{
	PaymentPending:  {PaymentAccepted, PaymentCanceled},
	PaymentAccepted: {},
	PaymentCanceled: {},
}

// Canceled and Returned are admin overrides reachable from every non-terminal
// state; the happy path is Created -> Accepted -> Shipped -> Delivered.
var fulfillmentTransitions = map[FulfillmentStatus][]FulfillmentStatus{
	FulfillmentCreated:   {FulfillmentAccepted, FulfillmentCanceled, FulfillmentReturned},
	FulfillmentAccepted:  {FulfillmentShipped, FulfillmentCanceled, FulfillmentReturned},
	FulfillmentShipped:   {FulfillmentDelivered, FulfillmentCanceled, FulfillmentReturned},
	FulfillmentDelivered: {},
	FulfillmentCanceled:  {},
	FulfillmentReturned:  {},
}

func ParsePaymentStatus(s string) (PaymentStatus, error) {
	status := PaymentStatus(s)
	if _, ok := paymentTransitions[status]; !ok {
		return "", fmt.Errorf("%w: payment status %q", ErrInvalidStatusValue, s)
	}
	return status, nil
}

func ParseFulfillmentStatus(s string) (FulfillmentStatus, error) {
	status := FulfillmentStatus(s)
	if _, ok := fulfillmentTransitions[status]; !ok {
		return "", fmt.Errorf("%w: order status %q", ErrInvalidStatusValue, s)
	}
	return status, nil
}

func (s PaymentStatus) CanTransitionTo(next PaymentStatus) bool {
	for _, allowed := range paymentTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

func (s FulfillmentStatus) CanTransitionTo(next FulfillmentStatus) bool {
	for _, allowed := range fulfillmentTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}
