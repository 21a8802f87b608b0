package domain

import (
	"errors"
	"fmt"
)

var (
	ErrRecordNotFound    = errors.New("record not found")
	ErrDuplicateBooking  = errors.New("booking already exists")
	ErrPaymentDeclined   = errors.New("payment was declined")
	ErrInsufficientSeats = errors.New("not enough seats available")

	// Shown to clients verbatim, hence the capital letter.
	ErrInvalidAccount = errors.New("Account ID must be greater than zero")

	// ErrInvalidPurchase matches every *InvalidPurchaseError with errors.Is.
	ErrInvalidPurchase = errors.New("invalid purchase")
)

type PurchaseViolation int

const (
	ViolationNegativeCount PurchaseViolation = iota + 1
	ViolationZeroCount
	ViolationLimitExceeded
	ViolationAdultRequired
	ViolationUnknownTicketType
)

func (v PurchaseViolation) String() string {
	switch v {
	case ViolationNegativeCount:
		return "negative_count"
	case ViolationZeroCount:
		return "zero_count"
	case ViolationLimitExceeded:
		return "limit_exceeded"
	case ViolationAdultRequired:
		return "adult_required"
	case ViolationUnknownTicketType:
		return "unknown_ticket_type"
	default:
		return "unknown"
	}
}

// InvalidPurchaseError reports a purchase that breaks a ticket business rule.
// Message is meant to be shown to clients as is.
type InvalidPurchaseError struct {
	Reason  PurchaseViolation
	Message string
}

func (e *InvalidPurchaseError) Error() string {
	return e.Message
}

func (e *InvalidPurchaseError) Is(target error) bool {
	return target == ErrInvalidPurchase
}

func negativeCountError() error {
	return &InvalidPurchaseError{
		Reason:  ViolationNegativeCount,
		Message: "The number of tickets cannot be negative for ticket type",
	}
}

func zeroCountError() error {
	return &InvalidPurchaseError{
		Reason:  ViolationZeroCount,
		Message: "Ticket quantity must be greater than zero",
	}
}

func limitExceededError(limit int) error {
	return &InvalidPurchaseError{
		Reason:  ViolationLimitExceeded,
		Message: fmt.Sprintf("Total tickets exceed max limit %d.", limit),
	}
}

func adultRequiredError() error {
	return &InvalidPurchaseError{
		Reason:  ViolationAdultRequired,
		Message: "At least one adult ticket must be purchased if child or infant tickets are included.",
	}
}

func unknownTicketTypeError(t TicketType) error {
	return &InvalidPurchaseError{
		Reason:  ViolationUnknownTicketType,
		Message: fmt.Sprintf("unknown ticket type: %q", string(t)),
	}
}
