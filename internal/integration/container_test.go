package integration_test

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/docker/go-connections/nat"
	"github.com/golang-migrate/migrate/v4"
	pgxmigrate "github.com/golang-migrate/migrate/v4/database/pgx"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/jackc/pgx/v5"
	pgxstd "github.com/jackc/pgx/v5/stdlib"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	tcredis "github.com/testcontainers/testcontainers-go/modules/redis"
	"github.com/testcontainers/testcontainers-go/wait"
)

const (
	ticketStorePort nat.Port = "5432/tcp"
	seatStorePort   nat.Port = "6379/tcp"

	migrationsSource = "file://../../migrations"
	startupTimeout   = time.Minute
)

// TicketStore is the PostgreSQL instance holding the tickets table, already migrated.
type TicketStore struct {
	Container *postgres.PostgresContainer
	DSN       string
}

// SeatStore is the Redis instance backing seat reservations.
type SeatStore struct {
	Container *tcredis.RedisContainer
	Addr      string
}

func startTicketStore(ctx context.Context) (*TicketStore, error) {
	container, err := postgres.Run(ctx, dbImageName,
		postgres.WithDatabase(dbName),
		postgres.WithUsername(dbUser),
		postgres.WithPassword(dbPassword),
		testcontainers.WithWaitStrategy(
			wait.ForSQL(ticketStorePort, "pgx", ticketStoreURL).
				WithStartupTimeout(startupTimeout),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("start ticket store: %w", err)
	}

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		return nil, errors.Join(fmt.Errorf("ticket store dsn: %w", err), testcontainers.TerminateContainer(container))
	}

	err = migrateTicketStore(dsn)
	if err != nil {
		return nil, errors.Join(err, testcontainers.TerminateContainer(container))
	}

	return &TicketStore{Container: container, DSN: dsn}, nil
}

func ticketStoreURL(host string, port nat.Port) string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		dbUser, dbPassword, host, port.Port(), dbName)
}

func migrateTicketStore(dsn string) error {
	connConfig, err := pgx.ParseConfig(dsn)
	if err != nil {
		return fmt.Errorf("parse ticket store dsn: %w", err)
	}

	db := pgxstd.OpenDB(*connConfig)
	defer db.Close()

	driver, err := pgxmigrate.WithInstance(db, &pgxmigrate.Config{})
	if err != nil {
		return fmt.Errorf("migration driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance(migrationsSource, dbName, driver)
	if err != nil {
		return fmt.Errorf("load migrations: %w", err)
	}

	err = m.Up()
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("apply migrations: %w", err)
	}

	return nil
}

func startSeatStore(ctx context.Context) (*SeatStore, error) {
	container, err := tcredis.Run(ctx, cacheImageName)
	if err != nil {
		return nil, fmt.Errorf("start seat store: %w", err)
	}

	// go-redis wants host:port, not the redis:// URL the module hands out
	addr, err := container.PortEndpoint(ctx, seatStorePort, "")
	if err != nil {
		return nil, errors.Join(fmt.Errorf("seat store address: %w", err), testcontainers.TerminateContainer(container))
	}

	return &SeatStore{Container: container, Addr: addr}, nil
}
