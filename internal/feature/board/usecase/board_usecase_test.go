package usecase

import (
	"context"
	"errors"
	"testing"

	"blog_backend/internal/feature/board/domain/entity"
	"blog_backend/internal/shared/apperr"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockBoardRepository is a mock implementation of BoardRepository.
type mockBoardRepository struct {
	FindAllFunc       func(ctx context.Context) ([]entity.Board, error)
	FindByIDFunc      func(ctx context.Context, id uint) (*entity.Board, error)
	CreateFunc        func(ctx context.Context, board *entity.Board) error
	UpdateContentFunc func(ctx context.Context, id uint, title, content string) error
	DeleteByIDFunc    func(ctx context.Context, id uint) error

	CreateCalls int
	UpdateCalls int
	DeleteCalls int
}

func (m *mockBoardRepository) FindAll(ctx context.Context) ([]entity.Board, error) {
	if m.FindAllFunc != nil {
		return m.FindAllFunc(ctx)
	}
	return nil, nil
}

func (m *mockBoardRepository) FindByID(ctx context.Context, id uint) (*entity.Board, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, ErrBoardNotFound
}

func (m *mockBoardRepository) Create(ctx context.Context, board *entity.Board) error {
	m.CreateCalls++
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, board)
	}
	board.ID = 1
	return nil
}

func (m *mockBoardRepository) UpdateContent(ctx context.Context, id uint, title, content string) error {
	m.UpdateCalls++
	if m.UpdateContentFunc != nil {
		return m.UpdateContentFunc(ctx, id, title, content)
	}
	return nil
}

func (m *mockBoardRepository) DeleteByID(ctx context.Context, id uint) error {
	m.DeleteCalls++
	if m.DeleteByIDFunc != nil {
		return m.DeleteByIDFunc(ctx, id)
	}
	return nil
}

// ownedBy returns a FindByID stub yielding board 5 owned by ownerID.
func ownedBy(ownerID uint) func(ctx context.Context, id uint) (*entity.Board, error) {
	return func(ctx context.Context, id uint) (*entity.Board, error) {
		if id != 5 {
			return nil, ErrBoardNotFound
		}
		return &entity.Board{ID: 5, Title: "t", Content: "c", UserID: ownerID}, nil
	}
}

func TestBoardUsecase_List(t *testing.T) {
	t.Parallel()

	t.Run("returns repository order", func(t *testing.T) {
		t.Parallel()
		repo := &mockBoardRepository{FindAllFunc: func(ctx context.Context) ([]entity.Board, error) {
			return []entity.Board{{ID: 3}, {ID: 2}, {ID: 1}}, nil
		}}

		boards, err := NewBoardUsecase(repo).List(context.Background())

		require.NoError(t, err)
		assert.Equal(t, []uint{3, 2, 1}, []uint{boards[0].ID, boards[1].ID, boards[2].ID})
	})

	t.Run("empty store", func(t *testing.T) {
		t.Parallel()

		boards, err := NewBoardUsecase(&mockBoardRepository{}).List(context.Background())

		require.NoError(t, err)
		assert.Empty(t, boards)
	})

	t.Run("repository error is wrapped", func(t *testing.T) {
		t.Parallel()
		dbErr := errors.New("db down")
		repo := &mockBoardRepository{FindAllFunc: func(ctx context.Context) ([]entity.Board, error) { return nil, dbErr }}

		_, err := NewBoardUsecase(repo).List(context.Background())

		assert.ErrorIs(t, err, dbErr)
	})
}

func TestBoardUsecase_Get(t *testing.T) {
	t.Parallel()

	uc := NewBoardUsecase(&mockBoardRepository{FindByIDFunc: ownedBy(1)})

	b, err := uc.Get(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, uint(5), b.ID)

	_, err = uc.Get(context.Background(), 999)
	assert.ErrorIs(t, err, ErrBoardNotFound)
}

func TestBoardUsecase_Create(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		title       string
		content     string
		wantErr     string
		wantCreated bool
	}{
		{name: "success", title: "T1", content: "C1", wantCreated: true},
		{name: "blank title", title: "  ", content: "C1", wantErr: "title is required"},
		{name: "empty content", title: "T1", content: "", wantErr: "content is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			repo := &mockBoardRepository{}

			board, err := NewBoardUsecase(repo).Create(context.Background(), 7, tt.title, tt.content)

			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Equal(t, apperr.KindBadRequest, apperr.KindOf(err))
				assert.EqualError(t, err, tt.wantErr)
				assert.Zero(t, repo.CreateCalls, "nothing is written")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, 1, repo.CreateCalls)
			assert.Equal(t, uint(7), board.UserID, "owner is the session user")
			assert.Equal(t, tt.title, board.Title)
			assert.NotZero(t, board.ID)
		})
	}
}

func TestBoardUsecase_GetForEdit(t *testing.T) {
	t.Parallel()

	uc := NewBoardUsecase(&mockBoardRepository{FindByIDFunc: ownedBy(1)})

	b, err := uc.GetForEdit(context.Background(), 1, 5)
	require.NoError(t, err)
	assert.Equal(t, uint(5), b.ID)

	_, err = uc.GetForEdit(context.Background(), 2, 5)
	assert.ErrorIs(t, err, ErrNotBoardOwner)

	_, err = uc.GetForEdit(context.Background(), 1, 999)
	assert.ErrorIs(t, err, ErrBoardNotFound)
}

func TestBoardUsecase_Update(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		userID      uint
		id          uint
		title       string
		content     string
		updateErr   error
		wantErr     error
		wantKind    apperr.Kind
		wantUpdates int
	}{
		{name: "owner updates", userID: 1, id: 5, title: "T2", content: "C2", wantUpdates: 1},
		{name: "missing board", userID: 1, id: 999, title: "T2", content: "C2", wantErr: ErrBoardNotFound},
		{name: "non-owner is forbidden", userID: 2, id: 5, title: "T2", content: "C2", wantErr: ErrNotBoardOwner},
		{name: "non-owner with blank fields is still forbidden", userID: 2, id: 5, title: "", content: " ", wantErr: ErrNotBoardOwner},
		{name: "owner with blank title", userID: 1, id: 5, title: " ", content: "C2", wantKind: apperr.KindBadRequest},
		{name: "deleted between read and write", userID: 1, id: 5, title: "T2", content: "C2", updateErr: ErrBoardNotFound, wantErr: ErrBoardNotFound, wantUpdates: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			repo := &mockBoardRepository{
				FindByIDFunc: ownedBy(1),
				UpdateContentFunc: func(ctx context.Context, id uint, title, content string) error {
					return tt.updateErr
				},
			}

			board, err := NewBoardUsecase(repo).Update(context.Background(), tt.userID, tt.id, tt.title, tt.content)

			assert.Equal(t, tt.wantUpdates, repo.UpdateCalls)
			switch {
			case tt.wantErr != nil:
				assert.ErrorIs(t, err, tt.wantErr)
			case tt.wantKind != apperr.KindInternal:
				assert.Equal(t, tt.wantKind, apperr.KindOf(err))
			default:
				require.NoError(t, err)
				assert.Equal(t, "T2", board.Title)
				assert.Equal(t, "C2", board.Content)
				assert.Equal(t, uint(1), board.UserID, "owner is unchanged")
			}
		})
	}
}

func TestBoardUsecase_Delete(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		userID      uint
		id          uint
		deleteErr   error
		wantErr     error
		wantDeletes int
	}{
		{name: "owner deletes", userID: 1, id: 5, wantDeletes: 1},
		{name: "already deleted", userID: 1, id: 999, wantErr: ErrBoardGone},
		{name: "non-owner is forbidden", userID: 2, id: 5, wantErr: ErrNotBoardOwner},
		{name: "concurrent delete", userID: 1, id: 5, deleteErr: ErrBoardNotFound, wantErr: ErrBoardGone, wantDeletes: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			repo := &mockBoardRepository{
				FindByIDFunc:   ownedBy(1),
				DeleteByIDFunc: func(ctx context.Context, id uint) error { return tt.deleteErr },
			}

			err := NewBoardUsecase(repo).Delete(context.Background(), tt.userID, tt.id)

			assert.Equal(t, tt.wantDeletes, repo.DeleteCalls)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}
