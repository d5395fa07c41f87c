// Package cache provides caching implementations for repository interfaces.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"blog_backend/internal/feature/board/domain/entity"
	"blog_backend/internal/feature/board/usecase"
)

// versionTTL bounds how long the write counter of a cache key outlives its last write.
const versionTTL = 24 * time.Hour

// storeIfCurrent sets KEYS[2] only while the version at KEYS[1] still equals ARGV[1].
// A missing version counts as "0".
var storeIfCurrent = redis.NewScript(`
local v = redis.call('GET', KEYS[1])
if v == false then v = '0' end
if v ~= ARGV[1] then return 0 end
redis.call('SET', KEYS[2], ARGV[2], 'PX', ARGV[3])
return 1
`)

// CachingBoardRepository decorates a BoardRepository with Redis caching.
// Reads go through the cache; every write invalidates the entries it affects.
// Each cache key has a version that writes increment. A reader only refills an entry
// if no write happened since it read the version, so a slow read cannot restore a
// board that was updated or deleted meanwhile.
type CachingBoardRepository struct {
	inner     usecase.BoardRepository
	rdb       *redis.Client
	ttl       time.Duration
	namespace string
}

// Compile-time check to ensure CachingBoardRepository implements BoardRepository.
var _ usecase.BoardRepository = (*CachingBoardRepository)(nil)

// NewCachingBoardRepository decorates a BoardRepository with Redis caching.
// If ttl is 0, it defaults to 5 minutes. If namespace is empty, it uses "boards".
// A nil rdb disables caching.
func NewCachingBoardRepository(rdb *redis.Client, ttl time.Duration, inner usecase.BoardRepository, namespace string) *CachingBoardRepository {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	if namespace == "" {
		namespace = "boards"
	}
	return &CachingBoardRepository{
		inner:     inner,
		rdb:       rdb,
		ttl:       ttl,
		namespace: namespace,
	}
}

// FindAll returns the board list, checking the cache first.
func (c *CachingBoardRepository) FindAll(ctx context.Context) ([]entity.Board, error) {
	if c.rdb == nil {
		return c.inner.FindAll(ctx)
	}

	key := c.listKey()
	var out []entity.Board
	if c.load(ctx, key, &out) {
		return out, nil
	}

	ver, ok := c.version(ctx, key)
	out, err := c.inner.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	if ok {
		c.store(ctx, key, ver, out)
	}
	return out, nil
}

// FindByID returns a board, checking the cache first. Misses are not cached.
func (c *CachingBoardRepository) FindByID(ctx context.Context, id uint) (*entity.Board, error) {
	if c.rdb == nil {
		return c.inner.FindByID(ctx, id)
	}

	key := c.boardKey(id)
	var out entity.Board
	if c.load(ctx, key, &out) {
		return &out, nil
	}

	ver, ok := c.version(ctx, key)
	b, err := c.inner.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if ok {
		c.store(ctx, key, ver, b)
	}
	return b, nil
}

// Create inserts a board and invalidates the list.
func (c *CachingBoardRepository) Create(ctx context.Context, b *entity.Board) error {
	if err := c.inner.Create(ctx, b); err != nil {
		return err
	}
	c.invalidate(ctx, c.listKey())
	return nil
}

// UpdateContent updates a board and invalidates the list and the board entry.
func (c *CachingBoardRepository) UpdateContent(ctx context.Context, id uint, title, content string) error {
	err := c.inner.UpdateContent(ctx, id, title, content)
	c.invalidate(ctx, c.listKey(), c.boardKey(id))
	return err
}

// DeleteByID deletes a board and invalidates the list and the board entry.
func (c *CachingBoardRepository) DeleteByID(ctx context.Context, id uint) error {
	err := c.inner.DeleteByID(ctx, id)
	c.invalidate(ctx, c.listKey(), c.boardKey(id))
	return err
}

// load decodes the cached value at key into dst. A corrupted entry is deleted.
func (c *CachingBoardRepository) load(ctx context.Context, key string, dst any) bool {
	b, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil || len(b) == 0 {
		return false
	}
	if err := json.Unmarshal(b, dst); err != nil {
		_ = c.rdb.Del(ctx, key).Err()
		return false
	}
	return true
}

// version returns the current write counter of key. ok is false when Redis cannot
// answer, in which case the caller must not store.
func (c *CachingBoardRepository) version(ctx context.Context, key string) (ver string, ok bool) {
	v, err := c.rdb.Get(ctx, versionKey(key)).Result()
	switch {
	case errors.Is(err, redis.Nil):
		return "0", true
	case err != nil:
		return "", false
	}
	return v, true
}

// store caches v at key unless key was invalidated after ver was read (best effort).
func (c *CachingBoardRepository) store(ctx context.Context, key, ver string, v any) {
	b, err := json.Marshal(v)
	if err != nil {
		return
	}
	_ = storeIfCurrent.Run(ctx, c.rdb, []string{versionKey(key), key}, ver, b, c.ttl.Milliseconds()).Err()
}

// invalidate bumps the version of keys and deletes them (best effort).
func (c *CachingBoardRepository) invalidate(ctx context.Context, keys ...string) {
	if c.rdb == nil {
		return
	}
	_, _ = c.rdb.TxPipelined(ctx, func(p redis.Pipeliner) error {
		for _, k := range keys {
			p.Incr(ctx, versionKey(k))
			p.Expire(ctx, versionKey(k), versionTTL)
		}
		p.Del(ctx, keys...)
		return nil
	})
}

func (c *CachingBoardRepository) listKey() string {
	return c.namespace + ":list"
}

func (c *CachingBoardRepository) boardKey(id uint) string {
	return fmt.Sprintf("%s:board:%d", c.namespace, id)
}

func versionKey(key string) string {
	return key + ":ver"
}
