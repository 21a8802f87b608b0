package domain

// ValidatePurchase checks a purchase against the ticket business rules and returns
// the ticket counts aggregated by type. The first rule that fails is reported.
// Line item errors are reported before the limit, whatever their position.
func ValidatePurchase(accountID *int64, requests []TicketTypeRequest) (map[TicketType]int, error) {
	if accountID == nil || *accountID <= 0 {
		return nil, ErrInvalidAccount
	}

	if len(requests) == 0 {
		return nil, zeroCountError()
	}

	counts := make(map[TicketType]int, len(TicketTypes()))
	total := 0
	overLimit := false

	for _, r := range requests {
		switch {
		case !r.Type.Valid():
			return nil, unknownTicketTypeError(r.Type)
		case r.Count < 0:
			return nil, negativeCountError()
		case r.Count == 0:
			return nil, zeroCountError()
		}

		// stop summing once the limit is passed so huge counts cannot wrap around
		if overLimit || r.Count > MaxTicketsPerPurchase-total {
			overLimit = true
			continue
		}

		counts[r.Type] += r.Count
		total += r.Count
	}

	if overLimit {
		return nil, limitExceededError(MaxTicketsPerPurchase)
	}

	if (counts[TicketTypeChild] > 0 || counts[TicketTypeInfant] > 0) && counts[TicketTypeAdult] == 0 {
		return nil, adultRequiredError()
	}

	return counts, nil
}

// TotalCost sums count × unit price over the line items. The items must already be validated.
func TotalCost(requests []TicketTypeRequest) int {
	total := 0

	for _, r := range requests {
		total += r.LinePrice()
	}

	return total
}

// TotalSeats sums the counts of the line items whose type occupies a seat.
func TotalSeats(requests []TicketTypeRequest) int {
	seats := 0

	for _, r := range requests {
		if r.Type.ConsumesSeat() {
			seats += r.Count
		}
	}

	return seats
}
