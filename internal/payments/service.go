package payments

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	stripelib "github.com/stripe/stripe-go/v84"

	pkgerrors "github.com/namas-shop/namas-backend/pkg/errors"
	"github.com/namas-shop/namas-backend/pkg/logger"
)

// IntentItem is one priced line of a payment-intent request.
type IntentItem struct {
	Price    decimal.Decimal `json:"price"`
	Quantity int             `json:"quantity"`
}

// Service creates payment intents with the external processor.
type Service interface {
	CreateIntent(ctx context.Context, items []IntentItem) (string, error)
}

// intentCreator is the processor surface the service needs, satisfied by
// pkg/stripe.Client.
type intentCreator interface {
	CreatePaymentIntent(ctx context.Context, amount int64, currency string) (*stripelib.PaymentIntent, error)
}

type service struct {
	processor intentCreator
	currency  string
	logg      *logger.Logger
}

// NewService constructs a payments service instance.
func NewService(processor intentCreator, currency string, logg *logger.Logger) (Service, error) {
	if processor == nil {
		return nil, fmt.Errorf("payment processor required")
	}
	if currency == "" {
		currency = "usd"
	}
	return &service{processor: processor, currency: currency, logg: logg}, nil
}

// CreateIntent computes the total in minor currency units and asks the
// processor for an intent. Processor failures are logged for operators and
// reported to the caller with a generic error, never the processor's own
// message.
func (s *service) CreateIntent(ctx context.Context, items []IntentItem) (string, error) {
	amount := Amount(items)

	intent, err := s.processor.CreatePaymentIntent(ctx, amount, s.currency)
	if err != nil {
		if s.logg != nil {
			s.logg.Error(ctx, "payments.create_intent", err)
		}
		return "", pkgerrors.Wrap(pkgerrors.CodePaymentIntent, err, "PaymentIntent creation failed")
	}
	return intent.ClientSecret, nil
}

// Amount sums the lines in minor currency units, rounding each unit price to
// a whole cent before multiplying by its quantity.
func Amount(items []IntentItem) int64 {
	var total int64
	for _, item := range items {
		cents := item.Price.Shift(2).Round(0).IntPart()
		total += cents * int64(item.Quantity)
	}
	return total
}
