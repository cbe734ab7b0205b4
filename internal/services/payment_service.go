package services

import (
	"context"
	"fmt"
	"time"

	stripe "github.com/stripe/stripe-go/v83"
	"github.com/stripe/stripe-go/v83/paymentintent"

	"github.com/wanderlust-travel/api/internal/apperr"
)

// Order is what the client needs to complete a payment.
type Order struct {
	ID           string `json:"id"`
	ClientSecret string `json:"client_secret"`
	Amount       int64  `json:"amount"`
	Currency     string `json:"currency"`
	Receipt      string `json:"receipt"`
}

type PaymentService struct{}

func NewPaymentService(apiKey string) *PaymentService {
	stripe.Key = apiKey
	return &PaymentService{}
}

// CreateOrder creates a payment intent for the given amount in major
// currency units (converted to minor units for the provider).
func (ps *PaymentService) CreateOrder(ctx context.Context, amount int64, currency string) (*Order, error) {
	if amount <= 0 {
		return nil, apperr.Validation("amount must be greater than zero")
	}
	if currency == "" {
		currency = "inr"
	}

	receipt := fmt.Sprintf("order_%d", time.Now().UnixMilli())

	params := &stripe.PaymentIntentParams{
		Params:   stripe.Params{Context: ctx},
		Amount:   stripe.Int64(amount * 100),
		Currency: stripe.String(currency),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
		Metadata: map[string]string{
			"receipt": receipt,
		},
	}

	intent, err := paymentintent.New(params)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	return &Order{
		ID:           intent.ID,
		ClientSecret: intent.ClientSecret,
		Amount:       intent.Amount,
		Currency:     string(intent.Currency),
		Receipt:      receipt,
	}, nil
}
