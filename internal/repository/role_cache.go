package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/samandr77/microservices/helpdesk/internal/entity"
)

const roleKeyPrefix = "helpdesk:role:"

// RoleCache keeps resolved roles per email in redis.
type RoleCache struct {
	client redis.Cmdable
}

func NewRoleCache(client redis.Cmdable) *RoleCache {
	return &RoleCache{client: client}
}

func (c *RoleCache) Role(ctx context.Context, email string) (entity.Role, error) {
	val, err := c.client.Get(ctx, roleKeyPrefix+email).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", entity.ErrNotFound
		}

		return "", fmt.Errorf("get role: %w", err)
	}

	return entity.Role(val), nil
}

func (c *RoleCache) SetRole(ctx context.Context, email string, role entity.Role, ttl time.Duration) error {
	err := c.client.Set(ctx, roleKeyPrefix+email, string(role), ttl).Err()
	if err != nil {
		return fmt.Errorf("set role: %w", err)
	}

	return nil
}

func (c *RoleCache) DeleteRole(ctx context.Context, email string) error {
	err := c.client.Del(ctx, roleKeyPrefix+email).Err()
	if err != nil {
		return fmt.Errorf("delete role: %w", err)
	}

	return nil
}
