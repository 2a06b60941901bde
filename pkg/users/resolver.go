package users

import (
	"context"

	"github.com/relife-app/relife-backend/pkg/logger"
)

// Resolver looks up the user record behind an authenticated user id.
// Handlers get it injected instead of querying the user collection themselves.
type Resolver struct {
	UserRepository UserRepositoryInterface
	Cache          UserCacheInterface
	Logger         logger.Interface
}

// Resolve returns the user for an id, served from the cache when possible
func (r *Resolver) Resolve(ctx context.Context, userID string) (*User, error) {
	user, err := r.Cache.Get(ctx, userID)
	if err == nil {
		return user, nil
	}

	user, err = r.UserRepository.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	err = r.Cache.Add(ctx, userID, user)
	if err != nil {
		r.Logger.Warning("could not cache user "+userID, err)
	}

	return user, nil
}

// Invalidate drops a user from the cache after a mutation
func (r *Resolver) Invalidate(ctx context.Context, userID string) {
	err := r.Cache.Invalidate(ctx, userID)
	if err != nil {
		r.Logger.Warning("could not invalidate user cache for "+userID, err)
	}
}
