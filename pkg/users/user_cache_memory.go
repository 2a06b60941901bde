package users

import (
	"context"
	"fmt"

	lru "github.com/hashicorp/golang-lru"
)

// UserCacheMemory caches often needed user data in process memory
type UserCacheMemory struct {
	Cache *lru.Cache
}

// NewUserCacheMemory initializes a new UserCacheMemory
func NewUserCacheMemory() (*UserCacheMemory, error) {
	cache, err := lru.New(100)
	if err != nil {
		return nil, err
	}

	return &UserCacheMemory{
		Cache: cache,
	}, nil
}

// Add adds a user to the cache
func (c *UserCacheMemory) Add(_ context.Context, key string, user *User) error {
	_ = c.Cache.Add(key, user)
	return nil
}

// Invalidate removes a user from the cache
func (c *UserCacheMemory) Invalidate(_ context.Context, key string) error {
	c.Cache.Remove(key)
	return nil
}

// Get retrieves a user from the cache
func (c *UserCacheMemory) Get(_ context.Context, key string) (*User, error) {
	result, ok := c.Cache.Get(key)
	if !ok {
		return nil, fmt.Errorf("could not find key %s in user cache", key)
	}

	user, ok := result.(*User)
	if !ok {
		return nil, fmt.Errorf("cache entry was not a user")
	}

	return user, nil
}
