package integration_test

import (
	"log/slog"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/metinatakli/cinema-tickets/internal/app"
	"github.com/metinatakli/cinema-tickets/internal/payment"
	"github.com/metinatakli/cinema-tickets/internal/repository"
	"github.com/metinatakli/cinema-tickets/internal/seating"
	appvalidator "github.com/metinatakli/cinema-tickets/internal/validator"
	"github.com/redis/go-redis/v9"
)

type TestApp struct {
	App     *app.Application
	DB      *pgxpool.Pool
	Redis   *redis.Client
	Seating *seating.RedisSeatReservationService
}

func newTestApp(cfg app.Config) (*TestApp, error) {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	validator := appvalidator.NewValidator()

	db, err := app.NewDatabasePool(cfg)
	if err != nil {
		return nil, err
	}

	redisClient, err := app.NewRedisClient(cfg)
	if err != nil {
		db.Close()
		return nil, err
	}

	ticketRepo := repository.NewPostgresTicketRepository(db)
	reservationService := seating.NewRedisSeatReservationService(redisClient, logger, cfg.Seating.Capacity)
	paymentService := payment.NewNoopPaymentService(logger)

	application := app.NewApp(
		cfg,
		logger,
		db,
		redisClient,
		validator,
		ticketRepo,
		paymentService,
		reservationService,
	)

	return &TestApp{
		App:     application,
		DB:      db,
		Redis:   redisClient,
		Seating: reservationService,
	}, nil
}

func (a *TestApp) Close() {
	a.Redis.Close()
	a.DB.Close()
}
