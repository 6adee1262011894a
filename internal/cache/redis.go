package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/voxair/flightdesk/config"
	"github.com/voxair/flightdesk/internal/domain"
)

// RedisCache keeps recently looked-up bookings keyed by record locator,
// so repeated voice-agent lookups skip the database.
type RedisCache struct {
	client     *redis.Client
	bookingTTL time.Duration
}

func NewRedisCache(cfg config.RedisConfig, bookingTTL time.Duration) *RedisCache {
	return &RedisCache{
		client:     redis.NewClient(&redis.Options{Addr: cfg.Addr, Password: cfg.Password, DB: cfg.DB}),
		bookingTTL: bookingTTL,
	}
}

func (c *RedisCache) GetBooking(ctx context.Context, locator string) (*domain.Flight, error) {
	data, err := c.client.Get(ctx, bookingKey(locator)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}

	var flight domain.Flight
	if err := json.Unmarshal(data, &flight); err != nil {
		return nil, err
	}
	return &flight, nil
}

func (c *RedisCache) SetBooking(ctx context.Context, flight *domain.Flight) error {
	payload, err := json.Marshal(flight)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, bookingKey(flight.RecordLocator), payload, c.bookingTTL).Err()
}

func (c *RedisCache) InvalidateBooking(ctx context.Context, locator string) error {
	return c.client.Del(ctx, bookingKey(locator)).Err()
}

func bookingKey(locator string) string {
	return fmt.Sprintf("cache:booking:%s", locator)
}
