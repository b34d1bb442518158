// Package cache provides caching implementations for repository interfaces.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"todo_backend/internal/feature/auth/domain/entity"
	"todo_backend/internal/feature/auth/usecase"
)

// DefaultUserTTL bounds how long a deleted account can still be served by FindByID.
const DefaultUserTTL = time.Minute

// cachedUser is the cached projection of a user. The password hash never leaves the database.
type cachedUser struct {
	ID            uuid.UUID `json:"id"`
	Email         string    `json:"email"`
	EmailVerified bool      `json:"email_verified"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// CachingUserRepository decorates a UserRepository with a Redis cache for
// lookups by ID, which back /me and /refresh. Users returned from the cache
// carry no PasswordHash; FindByEmail always reads the database.
type CachingUserRepository struct {
	inner     usecase.UserRepository
	rdb       *redis.Client
	ttl       time.Duration
	namespace string
}

var _ usecase.UserRepository = (*CachingUserRepository)(nil)

// NewCachingUserRepository decorates inner with Redis caching.
// If ttl is 0, it defaults to DefaultUserTTL. If namespace is empty, it uses "users".
// A nil rdb disables caching.
func NewCachingUserRepository(rdb *redis.Client, ttl time.Duration, inner usecase.UserRepository, namespace string) *CachingUserRepository {
	if ttl <= 0 {
		ttl = DefaultUserTTL
	}
	if namespace == "" {
		namespace = "users"
	}
	return &CachingUserRepository{
		inner:     inner,
		rdb:       rdb,
		ttl:       ttl,
		namespace: namespace,
	}
}

// Create persists the user and drops any stale entry for its ID.
func (c *CachingUserRepository) Create(ctx context.Context, user *entity.User) error {
	if err := c.inner.Create(ctx, user); err != nil {
		return err
	}
	if c.rdb != nil {
		_ = c.rdb.Del(ctx, c.cacheKey(user.ID)).Err() // best effort
	}
	return nil
}

// FindByEmail bypasses the cache; signin needs the current password hash.
func (c *CachingUserRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	return c.inner.FindByEmail(ctx, email)
}

// FindByID checks the cache first then falls back to the database.
// Misses are not cached.
func (c *CachingUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	if c.rdb == nil {
		return c.inner.FindByID(ctx, id)
	}

	key := c.cacheKey(id)

	// 1) Check cache
	if b, err := c.rdb.Get(ctx, key).Bytes(); err == nil && len(b) > 0 {
		var cu cachedUser
		if err := json.Unmarshal(b, &cu); err == nil && cu.ID == id {
			return &entity.User{
				ID:            cu.ID,
				Email:         cu.Email,
				EmailVerified: cu.EmailVerified,
				CreatedAt:     cu.CreatedAt,
				UpdatedAt:     cu.UpdatedAt,
			}, nil
		}
		// Delete corrupted cache entry
		_ = c.rdb.Del(ctx, key).Err()
	}

	// 2) Fallback to database
	user, err := c.inner.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// 3) Store in cache (best effort)
	if b, err := json.Marshal(cachedUser{
		ID:            user.ID,
		Email:         user.Email,
		EmailVerified: user.EmailVerified,
		CreatedAt:     user.CreatedAt,
		UpdatedAt:     user.UpdatedAt,
	}); err == nil {
		_ = c.rdb.Set(ctx, key, b, c.ttl).Err()
	}

	return user, nil
}

func (c *CachingUserRepository) cacheKey(id uuid.UUID) string {
	return fmt.Sprintf("%s:%s", c.namespace, id)
}
