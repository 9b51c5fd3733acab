package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/mei131412/gui-airline/config"
	"github.com/mei131412/gui-airline/internal/domain"
	"github.com/redis/go-redis/v9"
)

type RedisCache struct {
	client     *redis.Client
	flightsTTL time.Duration
}

func NewRedisCache(cfg config.RedisConfig, flightsTTL time.Duration) *RedisCache {
	return &RedisCache{
		client:     redis.NewClient(&redis.Options{Addr: cfg.Addr, Password: cfg.Password, DB: cfg.DB}),
		flightsTTL: flightsTTL,
	}
}

func (c *RedisCache) GetFlights(ctx context.Context) ([]domain.FlightSummary, error) {
	data, err := c.client.Get(ctx, flightsKey()).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}

	var summaries []domain.FlightSummary
	if err := json.Unmarshal(data, &summaries); err != nil {
		return nil, err
	}
	return summaries, nil
}

func (c *RedisCache) SetFlights(ctx context.Context, summaries []domain.FlightSummary) error {
	payload, err := json.Marshal(summaries)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, flightsKey(), payload, c.flightsTTL).Err()
}

// InvalidateFlights drops the cached listing after a mutation (new flight,
// seat occupied or freed).
func (c *RedisCache) InvalidateFlights(ctx context.Context) error {
	return c.client.Del(ctx, flightsKey()).Err()
}

// AcquireSeatHold takes a short-lived distributed hold on a seat while a
// reservation is being confirmed, so two processes do not race past the
// in-memory test-and-set.
func (c *RedisCache) AcquireSeatHold(ctx context.Context, flightNumber, seatNumber string, ttl time.Duration) (bool, error) {
	return c.client.SetNX(ctx, seatHoldKey(flightNumber, seatNumber), "held", ttl).Result()
}

func (c *RedisCache) ReleaseSeatHold(ctx context.Context, flightNumber, seatNumber string) error {
	return c.client.Del(ctx, seatHoldKey(flightNumber, seatNumber)).Err()
}

func flightsKey() string {
	return "cache:flights"
}

func seatHoldKey(flightNumber, seatNumber string) string {
	return fmt.Sprintf("hold:flight:%s:seat:%s", flightNumber, seatNumber)
}
