package cache

import (
	"context"
	"encoding/json"
	"time"

	dom "github.com/thienhiep1711/node-todo-api/internal/domain"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const keyListPrefix = "todo:list:"

// TodoCache caches per-owner todo lists in Redis. Keys are scoped by
// owner id so one user's cache can never serve another's request.
type TodoCache struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewTodoCache returns a new TodoCache.
func NewTodoCache(rdb *redis.Client, ttl time.Duration) *TodoCache {
	return &TodoCache{rdb: rdb, ttl: ttl}
}

// GetList returns the cached list for the owner, or nil on miss.
func (c *TodoCache) GetList(ctx context.Context, ownerID primitive.ObjectID) ([]dom.Todo, error) {
	b, err := c.rdb.Get(ctx, listKey(ownerID)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var list []dom.Todo
	if err := json.Unmarshal(b, &list); err != nil {
		return nil, err
	}
	return list, nil
}

// SetList stores the owner's list in cache.
func (c *TodoCache) SetList(ctx context.Context, ownerID primitive.ObjectID, list []dom.Todo) error {
	b, err := json.Marshal(list)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, listKey(ownerID), b, c.ttl).Err()
}

// Invalidate drops the owner's cached list (cache invalidation on write).
func (c *TodoCache) Invalidate(ctx context.Context, ownerID primitive.ObjectID) error {
	return c.rdb.Del(ctx, listKey(ownerID)).Err()
}

func listKey(ownerID primitive.ObjectID) string {
	return keyListPrefix + ownerID.Hex()
}
