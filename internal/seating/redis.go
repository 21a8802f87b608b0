package seating

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/metinatakli/cinema-tickets/internal/domain"
	"github.com/redis/go-redis/v9"
)

const (
	reservedSeatsKey  = "seats:reserved"
	accountSeatsKey   = "seats:reserved:accounts"
	insufficientSeats = -1
)

// Redis Lua script that reserves seats against a fixed capacity.
// A capacity of zero or less means the auditorium is unbounded.
var reserveSeatsScript = redis.NewScript(`
	-- KEYS = [reserved seat counter, per-account reserved seats hash]
	-- ARGV = [accountID, seats, capacity]

	local seats = tonumber(ARGV[2])
	local capacity = tonumber(ARGV[3])
	local reserved = tonumber(redis.call("GET", KEYS[1]) or "0")

	if capacity > 0 and reserved + seats > capacity then
		return -1
	end

	redis.call("HINCRBY", KEYS[2], ARGV[1], seats)
	return redis.call("INCRBY", KEYS[1], seats)
`)

type RedisSeatReservationService struct {
	redis    redis.UniversalClient
	logger   *slog.Logger
	capacity int
}

func NewRedisSeatReservationService(client redis.UniversalClient, logger *slog.Logger, capacity int) *RedisSeatReservationService {
	return &RedisSeatReservationService{
		redis:    client,
		logger:   logger,
		capacity: capacity,
	}
}

func (s *RedisSeatReservationService) ReserveSeats(ctx context.Context, accountID int64, seats int) error {
	if seats <= 0 {
		return fmt.Errorf("cannot reserve %d seats", seats)
	}

	reserved, err := reserveSeatsScript.Run(
		ctx,
		s.redis,
		[]string{reservedSeatsKey, accountSeatsKey},
		accountID,
		seats,
		s.capacity,
	).Int64()
	if err != nil {
		return fmt.Errorf("failed to run reserveSeats script: %w", err)
	}

	if reserved == insufficientSeats {
		s.logger.Warn("seat reservation rejected", "account_id", accountID, "seats", seats, "capacity", s.capacity)
		return fmt.Errorf("cannot reserve %d seats: %w", seats, domain.ErrInsufficientSeats)
	}

	s.logger.Info("seats reserved", "account_id", accountID, "seats", seats, "reserved_total", reserved)

	return nil
}

// ReservedSeats returns the number of seats reserved so far for the account.
func (s *RedisSeatReservationService) ReservedSeats(ctx context.Context, accountID int64) (int, error) {
	seats, err := s.redis.HGet(ctx, accountSeatsKey, fmt.Sprint(accountID)).Int()
	if err == redis.Nil {
		return 0, nil
	}

	return seats, err
}
