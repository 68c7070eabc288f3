package repository

import (
	"context"
	"errors"
	"fmt"

	"filmes-api/internal/data/entity"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type movieGormRepository struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewMovieGormRepository(db *gorm.DB, log *zap.Logger) MovieRepository {
	return &movieGormRepository{
		db:  db,
		log: log.With(zap.String("repository", "movie_gorm")),
	}
}

func (r *movieGormRepository) FindByID(ctx context.Context, id int64) (*entity.Movie, error) {
	return gormFindMovieByID(r.db.WithContext(ctx), r.log, id)
}

func (r *movieGormRepository) FindAll(ctx context.Context, offset, limit int) ([]*entity.Movie, error) {
	movies := make([]*entity.Movie, 0)
	err := r.db.WithContext(ctx).
		Order("id").
		Offset(offset).
		Limit(limit).
		Find(&movies).Error
	if err != nil {
		r.log.Error("Failed to find all movies",
			zap.Error(err),
			zap.Int("offset", offset),
			zap.Int("limit", limit),
		)
		return nil, fmt.Errorf("failed to find movies: %w", err)
	}

	return movies, nil
}

func (r *movieGormRepository) Begin(ctx context.Context) (MovieTx, error) {
	tx := r.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		r.log.Error("Failed to begin transaction", zap.Error(tx.Error))
		return nil, fmt.Errorf("failed to begin transaction: %w", tx.Error)
	}
	return &movieGormTx{tx: tx, log: r.log}, nil
}

func (r *movieGormRepository) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

type movieGormTx struct {
	tx   *gorm.DB
	log  *zap.Logger
	done bool
}

func (t *movieGormTx) Create(ctx context.Context, movie *entity.Movie) error {
	if err := t.tx.WithContext(ctx).Create(movie).Error; err != nil {
		t.log.Error("Failed to create movie",
			zap.Error(err),
			zap.String("title", movie.Title),
		)
		return fmt.Errorf("failed to create movie: %w", err)
	}
	return nil
}

func (t *movieGormTx) FindByID(ctx context.Context, id int64) (*entity.Movie, error) {
	return gormFindMovieByID(t.tx.WithContext(ctx), t.log, id)
}

func (t *movieGormTx) Update(ctx context.Context, movie *entity.Movie) error {
	result := t.tx.WithContext(ctx).
		Model(&entity.Movie{}).
		Where("id = ?", movie.ID).
		Updates(map[string]any{
			"title":    movie.Title,
			"genre":    movie.Genre,
			"duration": movie.Duration,
		})
	if result.Error != nil {
		t.log.Error("Failed to update movie",
			zap.Error(result.Error),
			zap.Int64("movie_id", movie.ID),
		)
		return fmt.Errorf("failed to update movie: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (t *movieGormTx) Delete(ctx context.Context, id int64) error {
	result := t.tx.WithContext(ctx).Delete(&entity.Movie{}, id)
	if result.Error != nil {
		t.log.Error("Failed to delete movie",
			zap.Error(result.Error),
			zap.Int64("movie_id", id),
		)
		return fmt.Errorf("failed to delete movie: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (t *movieGormTx) Commit(ctx context.Context) error {
	// a failed commit still ends the transaction, so Rollback must not touch it
	t.done = true
	if err := t.tx.Commit().Error; err != nil {
		t.log.Error("Failed to commit transaction", zap.Error(err))
		return fmt.Errorf("failed to commit: %w", err)
	}
	return nil
}

func (t *movieGormTx) Rollback(ctx context.Context) error {
	if t.done {
		return nil
	}
	t.done = true
	if err := t.tx.Rollback().Error; err != nil {
		t.log.Warn("Failed to rollback transaction", zap.Error(err))
		return fmt.Errorf("failed to rollback: %w", err)
	}
	return nil
}

func gormFindMovieByID(db *gorm.DB, log *zap.Logger, id int64) (*entity.Movie, error) {
	var movie entity.Movie
	err := db.First(&movie, id).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		log.Error("Failed to find movie by ID",
			zap.Error(err),
			zap.Int64("movie_id", id),
		)
		return nil, fmt.Errorf("failed to find movie: %w", err)
	}

	return &movie, nil
}
