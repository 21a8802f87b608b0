package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/metinatakli/cinema-tickets/internal/domain"
)

type PostgresTicketRepository struct {
	db *pgxpool.Pool
}

func NewPostgresTicketRepository(db *pgxpool.Pool) *PostgresTicketRepository {
	return &PostgresTicketRepository{
		db: db,
	}
}

func (p *PostgresTicketRepository) Save(ctx context.Context, ticket *domain.Ticket) error {
	query := `
		INSERT INTO tickets (
			booking_id,
			account_id,
			ticket_type,
			number_of_tickets,
			price
		)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`

	err := p.db.QueryRow(
		ctx,
		query,
		ticket.BookingID,
		ticket.AccountID,
		string(ticket.Type),
		ticket.Count,
		ticket.Price,
	).Scan(&ticket.ID, &ticket.CreatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return domain.ErrDuplicateBooking
		}

		return err
	}

	return nil
}

func (p *PostgresTicketRepository) GetByBookingID(ctx context.Context, bookingID uuid.UUID) (*domain.Ticket, error) {
	query := `
		SELECT id, booking_id, account_id, ticket_type, number_of_tickets, price, created_at
		FROM tickets
		WHERE booking_id = $1
	`

	ticket, err := scanTicket(p.db.QueryRow(ctx, query, bookingID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRecordNotFound
		}

		return nil, err
	}

	return ticket, nil
}

func (p *PostgresTicketRepository) GetByAccountID(ctx context.Context, accountID int64) ([]domain.Ticket, error) {
	query := `
		SELECT id, booking_id, account_id, ticket_type, number_of_tickets, price, created_at
		FROM tickets
		WHERE account_id = $1
		ORDER BY id
	`

	rows, err := p.db.Query(ctx, query, accountID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tickets := make([]domain.Ticket, 0)

	for rows.Next() {
		ticket, err := scanTicket(rows)
		if err != nil {
			return nil, err
		}

		tickets = append(tickets, *ticket)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return tickets, nil
}

func scanTicket(row pgx.Row) (*domain.Ticket, error) {
	var (
		ticket     domain.Ticket
		ticketType string
	)

	err := row.Scan(
		&ticket.ID,
		&ticket.BookingID,
		&ticket.AccountID,
		&ticketType,
		&ticket.Count,
		&ticket.Price,
		&ticket.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	ticket.Type = domain.TicketType(ticketType)

	return &ticket, nil
}
