package payment

import (
	"context"
	"log/slog"
)

// NoopPaymentService accepts every payment without charging anyone. It is used
// when no payment gateway is configured.
type NoopPaymentService struct {
	logger *slog.Logger
}

func NewNoopPaymentService(logger *slog.Logger) *NoopPaymentService {
	return &NoopPaymentService{
		logger: logger,
	}
}

func (n *NoopPaymentService) MakePayment(ctx context.Context, accountID int64, amount int) error {
	n.logger.Info("payment accepted without charge", "account_id", accountID, "amount", amount)
	return nil
}
