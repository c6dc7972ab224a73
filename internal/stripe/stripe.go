package stripe

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/paymentintent"
	"github.com/stripe/stripe-go/v76/refund"
)

// Client charges medical bills through Stripe payment intents.
type Client struct {
	logger *slog.Logger
	APIKey string
}

func NewClient(logger *slog.Logger, apiKey string) Client {
	return Client{
		logger: logger,
		APIKey: apiKey,
	}
}

// Charge creates and confirms a payment intent for the given amount and
// returns its id as the payment reference.
func (c *Client) Charge(ctx context.Context, amountCents int64, description string) (string, error) {
	stripe.Key = c.APIKey

	params := &stripe.PaymentIntentParams{
		Amount:      stripe.Int64(amountCents),
		Currency:    stripe.String(string(stripe.CurrencyUSD)),
		Description: stripe.String(description),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled:        stripe.Bool(true),
			AllowRedirects: stripe.String("never"),
		},
	}

	intent, err := paymentintent.New(params)
	if err != nil {
		return "", fmt.Errorf("failed to create payment intent: %w", err)
	}

	c.logger.InfoContext(ctx, "Payment intent created",
		"payment_intent_id", intent.ID,
		"amount_cents", amountCents)
	return intent.ID, nil
}

// Refund reverses a prior charge by payment reference.
func (c *Client) Refund(ctx context.Context, paymentRef string) error {
	stripe.Key = c.APIKey

	_, err := refund.New(&stripe.RefundParams{
		PaymentIntent: stripe.String(paymentRef),
	})
	if err != nil {
		return fmt.Errorf("failed to refund payment: %w", err)
	}

	c.logger.InfoContext(ctx, "Payment refunded", "payment_ref", paymentRef)
	return nil
}
