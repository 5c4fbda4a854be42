package payment

import "context"

// OrderRequest is what the booking flow hands to the payment provider when the buyer
// opens the checkout.
type OrderRequest struct {
	Amount      float64
	Currency    string
	Description string
	ReferenceID string
}

// Capture describes a completed capture. ReferenceID and Amount echo the purchase
// unit the order was created with and are zero when the provider omits them.
type Capture struct {
	ID          string
	ReferenceID string
	Amount      float64
	Currency    string
}

// Provider is the hosted-checkout payment processor. CreateOrder backs the widget's
// createOrder callback and CaptureOrder its onApprove callback.
type Provider interface {
	CreateOrder(ctx context.Context, req OrderRequest) (string, error)
	CaptureOrder(ctx context.Context, orderID string) (*Capture, error)
}
