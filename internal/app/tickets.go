package app

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/metinatakli/cinema-tickets/api"
	"github.com/metinatakli/cinema-tickets/internal/domain"
)

func (app *Application) PurchaseTickets(w http.ResponseWriter, r *http.Request) {
	logger := app.contextGetLogger(r)

	var input api.PurchaseTicketsRequest

	err := app.readJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	err = app.validator.Struct(input)
	if err != nil {
		app.failedValidationResponse(w, r, err)
		return
	}

	requests, err := toTicketTypeRequests(input.TicketTypeRequests)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	tickets, err := app.ticketService.PurchaseTickets(r.Context(), input.AccountId, requests...)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidAccount), errors.Is(err, domain.ErrInvalidPurchase):
			app.badRequestResponse(w, r, err)
		case errors.Is(err, domain.ErrPaymentDeclined):
			logger.Warn("ticket purchase payment declined", "error", err)
			app.paymentRequiredResponse(w, r, domain.ErrPaymentDeclined)
		case errors.Is(err, domain.ErrInsufficientSeats):
			logger.Warn("ticket purchase rejected, no seats left", "error", err)
			app.editConflictResponseWithErr(w, r, domain.ErrInsufficientSeats)
		default:
			app.serverErrorResponse(w, r, fmt.Errorf("tickets couldn't be purchased: %w", err))
		}

		return
	}

	app.metrics.record(r.Context(), tickets)

	resp := api.PurchaseTicketsResponse{
		Tickets: toApiTickets(tickets),
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) GetTicket(w http.ResponseWriter, r *http.Request) {
	bookingID, err := uuid.Parse(chi.URLParam(r, "bookingId"))
	if err != nil {
		app.badRequestResponse(w, r, fmt.Errorf("booking ID must be a valid UUID"))
		return
	}

	ticket, err := app.ticketService.GetTicket(r.Context(), bookingID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	resp := api.TicketResponse{
		Ticket: toApiTicket(*ticket),
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) GetAccountTickets(w http.ResponseWriter, r *http.Request) {
	accountID, err := strconv.ParseInt(chi.URLParam(r, "accountId"), 10, 64)
	if err != nil || accountID < 1 {
		app.badRequestResponse(w, r, domain.ErrInvalidAccount)
		return
	}

	tickets, err := app.ticketService.GetAccountTickets(r.Context(), accountID)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	resp := api.AccountTicketsResponse{
		AccountId: accountID,
		Tickets:   toApiTickets(tickets),
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func toTicketTypeRequests(requests []api.TicketTypeRequest) ([]domain.TicketTypeRequest, error) {
	result := make([]domain.TicketTypeRequest, len(requests))

	for i, req := range requests {
		ticketType, err := domain.ParseTicketType(string(req.TicketType))
		if err != nil {
			return nil, err
		}

		result[i] = domain.NewTicketTypeRequest(ticketType, req.NoOfTickets)
	}

	return result, nil
}

func toApiTickets(tickets []domain.Ticket) []api.Ticket {
	result := make([]api.Ticket, len(tickets))

	for i, t := range tickets {
		result[i] = toApiTicket(t)
	}

	return result
}

func toApiTicket(ticket domain.Ticket) api.Ticket {
	return api.Ticket{
		BookingId:   ticket.BookingID,
		AccountId:   ticket.AccountID,
		TicketType:  api.TicketType(ticket.Type),
		NoOfTickets: ticket.Count,
		Price:       ticket.Price,
		CreatedAt:   ticket.CreatedAt,
	}
}
