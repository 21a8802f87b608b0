package service

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/metinatakli/cinema-tickets/internal/domain"
)

type TicketService struct {
	logger             *slog.Logger
	paymentService     domain.PaymentService
	reservationService domain.SeatReservationService
	ticketRepo         domain.TicketRepository
}

func NewTicketService(
	logger *slog.Logger,
	paymentService domain.PaymentService,
	reservationService domain.SeatReservationService,
	ticketRepo domain.TicketRepository) *TicketService {

	return &TicketService{
		logger:             logger,
		paymentService:     paymentService,
		reservationService: reservationService,
		ticketRepo:         ticketRepo,
	}
}

// step is one side effect of a purchase. Steps run in order and the first
// failing step stops the purchase without undoing the steps before it.
type step struct {
	name string
	run  func(ctx context.Context) error
}

// PurchaseTickets validates the purchase, charges the account, reserves the seats and
// stores one ticket per line item, in that order. Errors from the payment, reservation
// and ticket store are returned unchanged.
func (s *TicketService) PurchaseTickets(
	ctx context.Context,
	accountID *int64,
	requests ...domain.TicketTypeRequest) ([]domain.Ticket, error) {

	logger := s.logger.With("account_id", accountIDAttr(accountID))
	logger.Info("starting ticket purchase")

	_, err := domain.ValidatePurchase(accountID, requests)
	if err != nil {
		logger.Warn("ticket purchase rejected", "error", err)
		return nil, err
	}

	id := *accountID
	totalCost := domain.TotalCost(requests)
	totalSeats := domain.TotalSeats(requests)

	logger.Info("ticket purchase validated", "total_cost", totalCost, "total_seats", totalSeats)

	tickets := make([]domain.Ticket, 0, len(requests))

	steps := []step{
		{
			name: "payment",
			run: func(ctx context.Context) error {
				return s.paymentService.MakePayment(ctx, id, totalCost)
			},
		},
		{
			name: "seat reservation",
			run: func(ctx context.Context) error {
				return s.reservationService.ReserveSeats(ctx, id, totalSeats)
			},
		},
	}

	for _, request := range requests {
		steps = append(steps, step{
			name: "save " + request.Type.String() + " ticket",
			run: func(ctx context.Context) error {
				ticket := domain.NewTicket(id, request)

				err := s.ticketRepo.Save(ctx, &ticket)
				if err != nil {
					return err
				}

				tickets = append(tickets, ticket)
				return nil
			},
		})
	}

	for i, st := range steps {
		err := st.run(ctx)
		if err != nil {
			logger.Error("ticket purchase failed",
				"step", st.name,
				"completed_steps", i,
				"error", err,
			)
			return nil, err
		}
	}

	logger.Info("ticket purchase completed", "tickets", len(tickets))

	return tickets, nil
}

func (s *TicketService) GetTicket(ctx context.Context, bookingID uuid.UUID) (*domain.Ticket, error) {
	return s.ticketRepo.GetByBookingID(ctx, bookingID)
}

func (s *TicketService) GetAccountTickets(ctx context.Context, accountID int64) ([]domain.Ticket, error) {
	if accountID <= 0 {
		return nil, domain.ErrInvalidAccount
	}

	return s.ticketRepo.GetByAccountID(ctx, accountID)
}

func accountIDAttr(accountID *int64) any {
	if accountID == nil {
		return nil
	}

	return *accountID
}
