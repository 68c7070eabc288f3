package repository_test

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"filmes-api/internal/data/entity"
	"filmes-api/internal/data/repository"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var movieColumns = []string{"id", "title", "genre", "duration"}

func newGormRepo(t *testing.T) (repository.MovieRepository, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger:                 logger.Default.LogMode(logger.Silent),
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	t.Cleanup(func() { assert.NoError(t, mock.ExpectationsWereMet()) })
	return repository.NewMovieGormRepository(db, zap.NewNop()), mock
}

func TestGorm_FindAllOrdersAndPaginates(t *testing.T) {
	t.Parallel()
	repo, mock := newGormRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "movies" ORDER BY id LIMIT $1 OFFSET $2`)).
		WithArgs(10, 10).
		WillReturnRows(sqlmock.NewRows(movieColumns).
			AddRow(int64(11), "Movie 11", "Drama", 90).
			AddRow(int64(12), "Movie 12", "Drama", 95))

	movies, err := repo.FindAll(context.Background(), 10, 10)
	require.NoError(t, err)
	require.Len(t, movies, 2)
	assert.Equal(t, &entity.Movie{ID: 11, Title: "Movie 11", Genre: "Drama", Duration: 90}, movies[0])
	assert.Equal(t, int64(12), movies[1].ID)
}

func TestGorm_FindAllEmptyIsNonNil(t *testing.T) {
	t.Parallel()
	repo, mock := newGormRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "movies" ORDER BY id LIMIT $1`)).
		WithArgs(10).
		WillReturnRows(sqlmock.NewRows(movieColumns))

	movies, err := repo.FindAll(context.Background(), 0, 10)
	require.NoError(t, err)
	assert.NotNil(t, movies)
	assert.Empty(t, movies)
}

func TestGorm_FindByID(t *testing.T) {
	t.Parallel()
	repo, mock := newGormRepo(t)

	query := regexp.QuoteMeta(`SELECT * FROM "movies" WHERE "movies"."id" = $1 ORDER BY "movies"."id" LIMIT $2`)
	mock.ExpectQuery(query).
		WithArgs(3, 1).
		WillReturnRows(sqlmock.NewRows(movieColumns).AddRow(int64(3), "Dune", "Sci-Fi", 155))
	mock.ExpectQuery(query).
		WithArgs(4, 1).
		WillReturnRows(sqlmock.NewRows(movieColumns))

	movie, err := repo.FindByID(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, &entity.Movie{ID: 3, Title: "Dune", Genre: "Sci-Fi", Duration: 155}, movie)

	missing, err := repo.FindByID(context.Background(), 4)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestGorm_CreateReturnsAssignedID(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	repo, mock := newGormRepo(t)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "movies" ("title","genre","duration") VALUES ($1,$2,$3) RETURNING "id"`)).
		WithArgs("Dune", "Sci-Fi", 155).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(42)))
	mock.ExpectCommit()

	tx, err := repo.Begin(ctx)
	require.NoError(t, err)

	movie := &entity.Movie{Title: "Dune", Genre: "Sci-Fi", Duration: 155}
	require.NoError(t, tx.Create(ctx, movie))
	assert.Equal(t, int64(42), movie.ID)

	require.NoError(t, tx.Commit(ctx))
	assert.NoError(t, tx.Rollback(ctx))
}

func TestGorm_UpdateAndDeleteReportMissingRows(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	repo, mock := newGormRepo(t)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "movies" SET "duration"=$1,"genre"=$2,"title"=$3 WHERE id = $4`)).
		WithArgs(100, "y", "x", 5).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "movies" WHERE "movies"."id" = $1`)).
		WithArgs(5).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "movies" WHERE "movies"."id" = $1`)).
		WithArgs(6).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectRollback()

	tx, err := repo.Begin(ctx)
	require.NoError(t, err)

	err = tx.Update(ctx, &entity.Movie{ID: 5, Title: "x", Genre: "y", Duration: 100})
	assert.ErrorIs(t, err, repository.ErrNotFound)
	assert.ErrorIs(t, tx.Delete(ctx, 5), repository.ErrNotFound)
	assert.NoError(t, tx.Delete(ctx, 6))

	require.NoError(t, tx.Rollback(ctx))
	assert.NoError(t, tx.Rollback(ctx))
}

func TestGorm_FailedCommitDoesNotRollBack(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	repo, mock := newGormRepo(t)

	fault := errors.New("could not serialize access")
	mock.ExpectBegin()
	mock.ExpectCommit().WillReturnError(fault)

	tx, err := repo.Begin(ctx)
	require.NoError(t, err)

	assert.ErrorIs(t, tx.Commit(ctx), fault)
	assert.NoError(t, tx.Rollback(ctx))
}
