package di

import (
	boardentity "blog_backend/internal/feature/board/domain/entity"
	useradapters "blog_backend/internal/feature/user/adapters"
	userentity "blog_backend/internal/feature/user/domain/entity"
	platformdb "blog_backend/internal/platform/db"

	"gorm.io/gorm"
)

// Models returns every persisted model in dependency order.
func Models() []any {
	return []any{
		&userentity.User{},
		&boardentity.Board{},
		&useradapters.SessionModel{},
	}
}

// Migrate creates or updates the schema of every model.
func Migrate(db *gorm.DB) error {
	return platformdb.Migrate(db, Models()...)
}
