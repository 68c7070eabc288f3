package repository

import (
	"context"
	"errors"

	"filmes-api/internal/data/entity"
	"filmes-api/pkg/database"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ErrNotFound is returned by Update and Delete when no row matches the id.
var ErrNotFound = errors.New("movie not found")

type MovieRepository interface {
	// FindByID returns (nil, nil) when no movie has the id.
	FindByID(ctx context.Context, id int64) (*entity.Movie, error)
	// FindAll returns movies in ascending id order.
	FindAll(ctx context.Context, offset, limit int) ([]*entity.Movie, error)
	Begin(ctx context.Context) (MovieTx, error)
	Ping(ctx context.Context) error
}

// MovieTx is a unit of work. Nothing it writes is visible to other callers
// until Commit succeeds. Rollback after Commit is a no-op.
type MovieTx interface {
	Create(ctx context.Context, movie *entity.Movie) error
	FindByID(ctx context.Context, id int64) (*entity.Movie, error)
	Update(ctx context.Context, movie *entity.Movie) error
	Delete(ctx context.Context, id int64) error
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

type Repository struct {
	Movie MovieRepository
}

// NewRepository wires the pgx-backed repositories.
func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		Movie: NewMovieRepository(db, log),
	}
}

func NewGormRepository(db *gorm.DB, log *zap.Logger) *Repository {
	return &Repository{
		Movie: NewMovieGormRepository(db, log),
	}
}

func NewMemoryRepository(log *zap.Logger) *Repository {
	return &Repository{
		Movie: NewMovieMemoryRepository(log),
	}
}
