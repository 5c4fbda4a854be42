package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Domenick1991/hotelbooking/config"
	"github.com/Domenick1991/hotelbooking/internal/domain"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// releaseLockScript deletes the lock only while it still holds the caller's token.
var releaseLockScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

type RedisCache struct {
	client    redis.UniversalClient
	hotelsTTL time.Duration
}

func NewRedisCache(cfg config.RedisConfig, hotelsTTL time.Duration) *RedisCache {
	return NewRedisCacheWithClient(redis.NewClient(&redis.Options{Addr: cfg.Addr, Password: cfg.Password, DB: cfg.DB}), hotelsTTL)
}

func NewRedisCacheWithClient(client redis.UniversalClient, hotelsTTL time.Duration) *RedisCache {
	return &RedisCache{client: client, hotelsTTL: hotelsTTL}
}

// GetHotels returns the cached hotel list, or nil on a miss.
func (c *RedisCache) GetHotels(ctx context.Context) ([]domain.Hotel, error) {
	data, err := c.client.Get(ctx, hotelsKey()).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	var hotels []domain.Hotel
	if err := json.Unmarshal(data, &hotels); err != nil {
		return nil, err
	}
	return hotels, nil
}

func (c *RedisCache) SetHotels(ctx context.Context, hotels []domain.Hotel) error {
	payload, err := json.Marshal(hotels)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, hotelsKey(), payload, c.hotelsTTL).Err()
}

func (c *RedisCache) InvalidateHotels(ctx context.Context) error {
	return c.client.Del(ctx, hotelsKey()).Err()
}

// AcquireSubmitLock stores a fresh token under the (user, hotel) key. The token
// must be passed back to ReleaseSubmitLock.
func (c *RedisCache) AcquireSubmitLock(ctx context.Context, userID, hotelID string, ttl time.Duration) (string, bool, error) {
	token := uuid.NewString()
	ok, err := c.client.SetNX(ctx, submitLockKey(userID, hotelID), token, ttl).Result()
	if err != nil || !ok {
		return "", false, err
	}
	return token, true, nil
}

// ReleaseSubmitLock is a no-op when the lock expired and another request took it.
func (c *RedisCache) ReleaseSubmitLock(ctx context.Context, userID, hotelID, token string) error {
	return releaseLockScript.Run(ctx, c.client, []string{submitLockKey(userID, hotelID)}, token).Err()
}

func (c *RedisCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func (c *RedisCache) Close() error {
	return c.client.Close()
}

func hotelsKey() string {
	return "cache:hotels"
}

func submitLockKey(userID, hotelID string) string {
	return fmt.Sprintf("lock:booking:user:%s:hotel:%s", userID, hotelID)
}
