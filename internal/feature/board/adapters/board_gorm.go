// Package adapters provides repository implementations for the board feature.
package adapters

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"blog_backend/internal/feature/board/domain/entity"
	"blog_backend/internal/feature/board/usecase"
	platformdb "blog_backend/internal/platform/db"
)

// boardGorm implements BoardRepository with GORM.
type boardGorm struct {
	db *gorm.DB
}

// Compile-time check to ensure boardGorm implements BoardRepository.
var _ usecase.BoardRepository = (*boardGorm)(nil)

// NewBoardRepository creates a new boardGorm for db.
func NewBoardRepository(db *gorm.DB) *boardGorm {
	return &boardGorm{db: db}
}

// FindAll returns every board with its owner, highest ID first.
func (r *boardGorm) FindAll(ctx context.Context) ([]entity.Board, error) {
	var boards []entity.Board
	err := r.db.WithContext(ctx).
		Preload("User").
		Order("id DESC").
		Find(&boards).Error
	if err != nil {
		return nil, err
	}
	return boards, nil
}

// FindByID returns usecase.ErrBoardNotFound when no row matches.
func (r *boardGorm) FindByID(ctx context.Context, id uint) (*entity.Board, error) {
	var b entity.Board
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("id = ?", id).
		First(&b).Error
	if err != nil {
		if platformdb.IsNotFound(err) {
			return nil, usecase.ErrBoardNotFound
		}
		return nil, err
	}
	return &b, nil
}

// Create inserts b without touching the owning user row.
func (r *boardGorm) Create(ctx context.Context, b *entity.Board) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(b).Error
}

// UpdateContent issues a single UPDATE of title and content.
func (r *boardGorm) UpdateContent(ctx context.Context, id uint, title, content string) error {
	result := r.db.WithContext(ctx).
		Model(&entity.Board{}).
		Where("id = ?", id).
		Updates(map[string]any{"title": title, "content": content})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return usecase.ErrBoardNotFound
	}
	return nil
}

// DeleteByID issues a single DELETE. Zero affected rows means the board was already gone.
func (r *boardGorm) DeleteByID(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&entity.Board{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return usecase.ErrBoardNotFound
	}
	return nil
}
