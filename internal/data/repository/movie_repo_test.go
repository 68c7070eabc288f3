package repository_test

import (
	"context"
	"errors"
	"testing"

	"filmes-api/internal/data/entity"
	"filmes-api/internal/data/repository"
	"filmes-api/pkg/database"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeRow struct {
	values []any
	err    error
}

func (r fakeRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	for i, d := range dest {
		switch p := d.(type) {
		case *int64:
			*p = r.values[i].(int64)
		case *int:
			*p = r.values[i].(int)
		case *string:
			*p = r.values[i].(string)
		}
	}
	return nil
}

// fakeTx embeds pgx.Tx so only the methods the repository uses need bodies.
type fakeTx struct {
	pgx.Tx
	row         fakeRow
	tag         string
	execErr     error
	rollbackErr error
	committed   bool
	lastSQL     string
	lastArgs    []any
}

func (t *fakeTx) QueryRow(_ context.Context, sql string, args ...any) pgx.Row {
	t.lastSQL, t.lastArgs = sql, args
	return t.row
}

func (t *fakeTx) Exec(_ context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	t.lastSQL, t.lastArgs = sql, args
	return pgconn.NewCommandTag(t.tag), t.execErr
}

func (t *fakeTx) Commit(context.Context) error {
	t.committed = true
	return nil
}

func (t *fakeTx) Rollback(context.Context) error {
	return t.rollbackErr
}

// fakeRows embeds pgx.Rows so only the iteration methods need bodies.
type fakeRows struct {
	pgx.Rows
	rows   []fakeRow
	pos    int
	closed bool
}

func (r *fakeRows) Next() bool {
	if r.pos >= len(r.rows) {
		return false
	}
	r.pos++
	return true
}

func (r *fakeRows) Scan(dest ...any) error {
	return r.rows[r.pos-1].Scan(dest...)
}

func (r *fakeRows) Err() error { return nil }

func (r *fakeRows) Close() { r.closed = true }

type fakeDB struct {
	database.PgxIface
	row       fakeRow
	rows      *fakeRows
	tx        *fakeTx
	querySQL  string
	queryArgs []any
}

func (d *fakeDB) Query(_ context.Context, sql string, args ...any) (pgx.Rows, error) {
	d.querySQL, d.queryArgs = sql, args
	return d.rows, nil
}

func (d *fakeDB) QueryRow(context.Context, string, ...any) pgx.Row {
	return d.row
}

func (d *fakeDB) Begin(context.Context) (pgx.Tx, error) {
	return d.tx, nil
}

func TestPgx_FindByIDNoRows(t *testing.T) {
	t.Parallel()

	repo := repository.NewMovieRepository(&fakeDB{row: fakeRow{err: pgx.ErrNoRows}}, zap.NewNop())

	movie, err := repo.FindByID(context.Background(), 1)
	require.NoError(t, err)
	assert.Nil(t, movie)
}

func TestPgx_FindByIDScansRow(t *testing.T) {
	t.Parallel()

	db := &fakeDB{row: fakeRow{values: []any{int64(3), "Dune", "Sci-Fi", 155}}}
	repo := repository.NewMovieRepository(db, zap.NewNop())

	movie, err := repo.FindByID(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, &entity.Movie{ID: 3, Title: "Dune", Genre: "Sci-Fi", Duration: 155}, movie)
}

func TestPgx_FindByIDWrapsFault(t *testing.T) {
	t.Parallel()

	fault := errors.New("connection reset")
	repo := repository.NewMovieRepository(&fakeDB{row: fakeRow{err: fault}}, zap.NewNop())

	_, err := repo.FindByID(context.Background(), 3)
	assert.ErrorIs(t, err, fault)
}

func TestPgx_CreateReturnsAssignedID(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	tx := &fakeTx{row: fakeRow{values: []any{int64(42)}}}
	repo := repository.NewMovieRepository(&fakeDB{tx: tx}, zap.NewNop())

	mtx, err := repo.Begin(ctx)
	require.NoError(t, err)

	movie := &entity.Movie{Title: "Dune", Genre: "Sci-Fi", Duration: 155}
	require.NoError(t, mtx.Create(ctx, movie))
	assert.Equal(t, int64(42), movie.ID)
	assert.Equal(t, []any{"Dune", "Sci-Fi", 155}, tx.lastArgs)

	require.NoError(t, mtx.Commit(ctx))
	assert.True(t, tx.committed)
}

func TestPgx_UpdateAndDeleteReportMissingRows(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	tx := &fakeTx{tag: "UPDATE 0"}
	repo := repository.NewMovieRepository(&fakeDB{tx: tx}, zap.NewNop())

	mtx, err := repo.Begin(ctx)
	require.NoError(t, err)

	err = mtx.Update(ctx, &entity.Movie{ID: 5, Title: "x", Genre: "y", Duration: 100})
	assert.ErrorIs(t, err, repository.ErrNotFound)

	tx.tag = "DELETE 0"
	assert.ErrorIs(t, mtx.Delete(ctx, 5), repository.ErrNotFound)

	tx.tag = "DELETE 1"
	assert.NoError(t, mtx.Delete(ctx, 5))
	assert.Equal(t, []any{int64(5)}, tx.lastArgs)
}

func TestPgx_RollbackAfterCommitIsNoop(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	tx := &fakeTx{rollbackErr: pgx.ErrTxClosed}
	repo := repository.NewMovieRepository(&fakeDB{tx: tx}, zap.NewNop())

	mtx, err := repo.Begin(ctx)
	require.NoError(t, err)
	assert.NoError(t, mtx.Rollback(ctx))

	tx.rollbackErr = errors.New("broken pipe")
	assert.Error(t, mtx.Rollback(ctx))
}

func TestPgx_FindAllBindsLimitThenOffset(t *testing.T) {
	t.Parallel()

	db := &fakeDB{rows: &fakeRows{rows: []fakeRow{
		{values: []any{int64(11), "Movie 11", "Drama", 90}},
		{values: []any{int64(12), "Movie 12", "Drama", 95}},
	}}}
	repo := repository.NewMovieRepository(db, zap.NewNop())

	movies, err := repo.FindAll(context.Background(), 10, 5)
	require.NoError(t, err)

	assert.Contains(t, db.querySQL, "ORDER BY id")
	assert.Contains(t, db.querySQL, "LIMIT $1 OFFSET $2")
	assert.Equal(t, []any{5, 10}, db.queryArgs)
	assert.True(t, db.rows.closed)

	require.Len(t, movies, 2)
	assert.Equal(t, &entity.Movie{ID: 11, Title: "Movie 11", Genre: "Drama", Duration: 90}, movies[0])
	assert.Equal(t, int64(12), movies[1].ID)
}

func TestPgx_FindAllEmptyIsNonNil(t *testing.T) {
	t.Parallel()

	repo := repository.NewMovieRepository(&fakeDB{rows: &fakeRows{}}, zap.NewNop())

	movies, err := repo.FindAll(context.Background(), 0, 10)
	require.NoError(t, err)
	assert.NotNil(t, movies)
	assert.Empty(t, movies)
}
