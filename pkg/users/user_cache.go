package users

import (
	"context"
	"time"

	"github.com/go-redis/cache/v8"
	"github.com/go-redis/redis/v8"
)

// UserCacheInterface caches resolved user records keyed by user id
type UserCacheInterface interface {
	Add(ctx context.Context, key string, user *User) error
	Invalidate(ctx context.Context, key string) error
	Get(ctx context.Context, key string) (*User, error)
}

// UserCacheRedis caches often needed user data in redis
type UserCacheRedis struct {
	Cache *cache.Cache
}

// NewUserCacheRedis initializes a new UserCacheRedis
func NewUserCacheRedis(redisClient *redis.Client) (*UserCacheRedis, error) {
	redisCache := cache.New(&cache.Options{
		Redis: redisClient,
	})

	return &UserCacheRedis{
		Cache: redisCache,
	}, nil
}

// Add adds a user to the cache
func (c *UserCacheRedis) Add(ctx context.Context, key string, user *User) error {
	err := c.Cache.Set(&cache.Item{
		Ctx:   ctx,
		Key:   key,
		Value: user,
		TTL:   time.Minute * 10,
	})
	if err != nil {
		return err
	}

	return nil
}

// Invalidate invalidates an entry
func (c *UserCacheRedis) Invalidate(ctx context.Context, key string) error {
	err := c.Cache.Delete(ctx, key)
	if err != nil {
		return err
	}

	return nil
}

// Get retrieves a user from the cache
func (c *UserCacheRedis) Get(ctx context.Context, key string) (*User, error) {
	result := User{}
	err := c.Cache.Get(ctx, key, &result)
	if err != nil {
		return nil, err
	}

	return &result, nil
}
