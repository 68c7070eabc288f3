package repository

import (
	"context"
	"errors"
	"fmt"

	"filmes-api/internal/data/entity"
	"filmes-api/pkg/database"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type movieRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewMovieRepository(db database.PgxIface, log *zap.Logger) MovieRepository {
	return &movieRepository{
		db:  db,
		log: log.With(zap.String("repository", "movie")),
	}
}

func (r *movieRepository) FindByID(ctx context.Context, id int64) (*entity.Movie, error) {
	return findMovieByID(ctx, r.db, r.log, id)
}

func (r *movieRepository) FindAll(ctx context.Context, offset, limit int) ([]*entity.Movie, error) {
	query := `
		SELECT id, title, genre, duration
		FROM movies
		ORDER BY id
		LIMIT $1 OFFSET $2
	`

	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		r.log.Error("Failed to find all movies",
			zap.Error(err),
			zap.Int("offset", offset),
			zap.Int("limit", limit),
		)
		return nil, fmt.Errorf("failed to find movies: %w", err)
	}
	defer rows.Close()

	movies := make([]*entity.Movie, 0)
	for rows.Next() {
		var movie entity.Movie
		if err := rows.Scan(&movie.ID, &movie.Title, &movie.Genre, &movie.Duration); err != nil {
			r.log.Error("Failed to scan movie row", zap.Error(err))
			return nil, fmt.Errorf("failed to scan movie: %w", err)
		}
		movies = append(movies, &movie)
	}

	if err := rows.Err(); err != nil {
		r.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("failed to iterate rows: %w", err)
	}

	r.log.Debug("Movies found",
		zap.Int("count", len(movies)),
		zap.Int("offset", offset),
		zap.Int("limit", limit),
	)

	return movies, nil
}

func (r *movieRepository) Begin(ctx context.Context) (MovieTx, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		r.log.Error("Failed to begin transaction", zap.Error(err))
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	return &movieTx{tx: tx, log: r.log}, nil
}

func (r *movieRepository) Ping(ctx context.Context) error {
	return r.db.Ping(ctx)
}

type movieTx struct {
	tx  pgx.Tx
	log *zap.Logger
}

func (t *movieTx) Create(ctx context.Context, movie *entity.Movie) error {
	query := `
		INSERT INTO movies (title, genre, duration)
		VALUES ($1, $2, $3)
		RETURNING id
	`

	err := t.tx.QueryRow(ctx, query, movie.Title, movie.Genre, movie.Duration).Scan(&movie.ID)
	if err != nil {
		t.log.Error("Failed to create movie",
			zap.Error(err),
			zap.String("title", movie.Title),
		)
		return fmt.Errorf("failed to create movie: %w", err)
	}

	return nil
}

func (t *movieTx) FindByID(ctx context.Context, id int64) (*entity.Movie, error) {
	return findMovieByID(ctx, t.tx, t.log, id)
}

func (t *movieTx) Update(ctx context.Context, movie *entity.Movie) error {
	query := `
		UPDATE movies
		SET title = $2, genre = $3, duration = $4
		WHERE id = $1
	`

	result, err := t.tx.Exec(ctx, query, movie.ID, movie.Title, movie.Genre, movie.Duration)
	if err != nil {
		t.log.Error("Failed to update movie",
			zap.Error(err),
			zap.Int64("movie_id", movie.ID),
		)
		return fmt.Errorf("failed to update movie: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

func (t *movieTx) Delete(ctx context.Context, id int64) error {
	result, err := t.tx.Exec(ctx, `DELETE FROM movies WHERE id = $1`, id)
	if err != nil {
		t.log.Error("Failed to delete movie",
			zap.Error(err),
			zap.Int64("movie_id", id),
		)
		return fmt.Errorf("failed to delete movie: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

func (t *movieTx) Commit(ctx context.Context) error {
	if err := t.tx.Commit(ctx); err != nil {
		t.log.Error("Failed to commit transaction", zap.Error(err))
		return fmt.Errorf("failed to commit: %w", err)
	}
	return nil
}

func (t *movieTx) Rollback(ctx context.Context) error {
	err := t.tx.Rollback(ctx)
	if err == nil || errors.Is(err, pgx.ErrTxClosed) {
		return nil
	}
	t.log.Warn("Failed to rollback transaction", zap.Error(err))
	return fmt.Errorf("failed to rollback: %w", err)
}

func findMovieByID(ctx context.Context, q database.Querier, log *zap.Logger, id int64) (*entity.Movie, error) {
	query := `SELECT id, title, genre, duration FROM movies WHERE id = $1`

	var movie entity.Movie
	err := q.QueryRow(ctx, query, id).Scan(
		&movie.ID,
		&movie.Title,
		&movie.Genre,
		&movie.Duration,
	)

	if errors.Is(err, pgx.ErrNoRows) {
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
