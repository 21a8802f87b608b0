package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MaxTicketsPerPurchase is the upper bound for the aggregated ticket count of a single purchase.
const MaxTicketsPerPurchase = 25

type TicketType string

const (
	TicketTypeAdult  TicketType = "ADULT"
	TicketTypeChild  TicketType = "CHILD"
	TicketTypeInfant TicketType = "INFANT"
)

// TicketTypes lists every ticket type in a stable order.
func TicketTypes() []TicketType {
	return []TicketType{TicketTypeAdult, TicketTypeChild, TicketTypeInfant}
}

// ParseTicketType fails with an *InvalidPurchaseError for names outside the closed set.
func ParseTicketType(s string) (TicketType, error) {
	t := TicketType(s)
	if !t.Valid() {
		return "", unknownTicketTypeError(t)
	}

	return t, nil
}

func (t TicketType) Valid() bool {
	switch t {
	case TicketTypeAdult, TicketTypeChild, TicketTypeInfant:
		return true
	}

	return false
}

// Price returns the unit price of the ticket type in whole currency units.
func (t TicketType) Price() int {
	switch t {
	case TicketTypeAdult:
		return 25
	case TicketTypeChild:
		return 15
	default:
		return 0
	}
}

// ConsumesSeat reports whether the ticket type occupies a seat. Infants sit on an adult's lap.
func (t TicketType) ConsumesSeat() bool {
	return t == TicketTypeAdult || t == TicketTypeChild
}

func (t TicketType) String() string {
	return string(t)
}

// TicketTypeRequest is a single line item of a purchase.
type TicketTypeRequest struct {
	Type  TicketType
	Count int
}

func NewTicketTypeRequest(ticketType TicketType, count int) TicketTypeRequest {
	return TicketTypeRequest{
		Type:  ticketType,
		Count: count,
	}
}

// LinePrice returns count × unit price for the line item.
func (r TicketTypeRequest) LinePrice() int {
	return r.Count * r.Type.Price()
}

// Ticket is the persisted outcome of one line item of a successful purchase.
type Ticket struct {
	ID        int64
	BookingID uuid.UUID
	AccountID int64
	Type      TicketType
	Count     int
	Price     decimal.Decimal
	CreatedAt time.Time
}

func NewTicket(accountID int64, request TicketTypeRequest) Ticket {
	return Ticket{
		BookingID: uuid.New(),
		AccountID: accountID,
		Type:      request.Type,
		Count:     request.Count,
		Price:     decimal.NewFromInt(int64(request.LinePrice())),
	}
}

type TicketRepository interface {
	Save(ctx context.Context, ticket *Ticket) error
	GetByBookingID(ctx context.Context, bookingID uuid.UUID) (*Ticket, error)
	GetByAccountID(ctx context.Context, accountID int64) ([]Ticket, error)
}

type PaymentService interface {
	MakePayment(ctx context.Context, accountID int64, amount int) error
}

type SeatReservationService interface {
	ReserveSeats(ctx context.Context, accountID int64, seats int) error
}
