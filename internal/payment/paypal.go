package payment

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/Domenick1991/hotelbooking/config"
	"github.com/plutov/paypal/v4"
)

const defaultCurrency = "USD"

type PayPal struct {
	client   *paypal.Client
	currency string
}

func NewPayPal(cfg config.PayPalConfig) (*PayPal, error) {
	base := paypal.APIBaseSandBox
	if cfg.Live {
		base = paypal.APIBaseLive
	}
	client, err := paypal.NewClient(cfg.ClientID, cfg.Secret, base)
	if err != nil {
		return nil, fmt.Errorf("create paypal client: %w", err)
	}
	currency := cfg.Currency
	if currency == "" {
		currency = defaultCurrency
	}
	return &PayPal{client: client, currency: currency}, nil
}

func (p *PayPal) CreateOrder(ctx context.Context, req OrderRequest) (string, error) {
	if req.Amount <= 0 {
		return "", errors.New("order amount must be positive")
	}
	currency := req.Currency
	if currency == "" {
		currency = p.currency
	}

	order, err := p.client.CreateOrder(ctx, paypal.OrderIntentCapture, []paypal.PurchaseUnitRequest{{
		ReferenceID: req.ReferenceID,
		Description: req.Description,
		Amount: &paypal.PurchaseUnitAmount{
			Currency: currency,
			Value:    FormatAmount(req.Amount),
		},
	}}, nil, nil)
	if err != nil {
		return "", fmt.Errorf("create paypal order: %w", err)
	}
	return order.ID, nil
}

func (p *PayPal) CaptureOrder(ctx context.Context, orderID string) (*Capture, error) {
	resp, err := p.client.CaptureOrder(ctx, orderID, paypal.CaptureOrderRequest{})
	if err != nil {
		return nil, fmt.Errorf("capture paypal order %s: %w", orderID, err)
	}
	if resp.Status != "" && resp.Status != "COMPLETED" {
		return nil, fmt.Errorf("capture paypal order %s: status %s", orderID, resp.Status)
	}
	return captureFromResponse(resp)
}

func captureFromResponse(resp *paypal.CaptureOrderResponse) (*Capture, error) {
	capture := &Capture{ID: resp.ID}
	if len(resp.PurchaseUnits) == 0 {
		return capture, nil
	}
	unit := resp.PurchaseUnits[0]
	capture.ReferenceID = unit.ReferenceID
	if unit.Payments == nil {
		return capture, nil
	}
	for _, c := range unit.Payments.Captures {
		if c.Amount == nil || c.Amount.Value == "" {
			continue
		}
		amount, err := strconv.ParseFloat(c.Amount.Value, 64)
		if err != nil {
			return nil, fmt.Errorf("capture paypal order %s: amount %q: %w", resp.ID, c.Amount.Value, err)
		}
		capture.Amount += amount
		capture.Currency = c.Amount.Currency
	}
	return capture, nil
}

// FormatAmount renders an amount with two decimals as the PayPal API expects.
func FormatAmount(amount float64) string {
	return fmt.Sprintf("%.2f", amount)
}

var _ Provider = (*PayPal)(nil)
