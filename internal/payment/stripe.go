package payment

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/metinatakli/cinema-tickets/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/paymentintent"
)

type createPaymentIntentFunc func(params *stripe.PaymentIntentParams) (*stripe.PaymentIntent, error)

type StripePaymentService struct {
	currency      string
	paymentMethod string
	create        createPaymentIntentFunc
}

// NewStripePaymentService charges accounts with a confirmed Stripe payment intent.
// paymentMethod is the stored payment method used for every charge.
func NewStripePaymentService(currency, paymentMethod string) *StripePaymentService {
	return &StripePaymentService{
		currency:      currency,
		paymentMethod: paymentMethod,
		create:        paymentintent.New,
	}
}

func (s *StripePaymentService) MakePayment(ctx context.Context, accountID int64, amount int) error {
	amountCents := decimal.NewFromInt(int64(amount)).Mul(decimal.NewFromInt(100)).IntPart()

	params := &stripe.PaymentIntentParams{
		Amount:             stripe.Int64(amountCents),
		Currency:           stripe.String(s.currency),
		PaymentMethod:      stripe.String(s.paymentMethod),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		Confirm:            stripe.Bool(true),
		Description:        stripe.String(fmt.Sprintf("Cinema tickets for account %d", accountID)),
	}
	params.Context = ctx
	params.AddMetadata("account_id", strconv.FormatInt(accountID, 10))

	intent, err := s.create(params)
	if err != nil {
		var stripeErr *stripe.Error
		if errors.As(err, &stripeErr) && stripeErr.Type == stripe.ErrorTypeCard {
			return fmt.Errorf("%w: %s", domain.ErrPaymentDeclined, stripeErr.Msg)
		}

		return fmt.Errorf("failed to create payment intent: %w", err)
	}

	if intent.Status != stripe.PaymentIntentStatusSucceeded {
		return fmt.Errorf("%w: payment intent %s is %s", domain.ErrPaymentDeclined, intent.ID, intent.Status)
	}

	return nil
}
