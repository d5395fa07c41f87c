package di

import (
	"time"

	boardadapters "blog_backend/internal/feature/board/adapters"
	"blog_backend/internal/feature/board/usecase"
	"blog_backend/internal/platform/cache"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// NewBoardRepository creates the board repository. Reads are cached in Redis when rdb is not nil.
func NewBoardRepository(rdb *redis.Client, db *gorm.DB, ttl time.Duration) usecase.BoardRepository {
	return cache.NewCachingBoardRepository(rdb, ttl, boardadapters.NewBoardRepository(db), "boards")
}
