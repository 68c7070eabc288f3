package repository

import (
	"context"
	"slices"
	"sync"

	"filmes-api/internal/data/entity"

	"go.uber.org/zap"
)

// movieMemoryRepository keeps movies in process memory. Ids come from a
// counter and are never reused, even when a transaction rolls back.
type movieMemoryRepository struct {
	mu     sync.RWMutex
	nextID int64
	items  map[int64]entity.Movie
	log    *zap.Logger
}

func NewMovieMemoryRepository(log *zap.Logger) MovieRepository {
	return &movieMemoryRepository{
		nextID: 1,
		items:  make(map[int64]entity.Movie),
		log:    log.With(zap.String("repository", "movie_memory")),
	}
}

func (r *movieMemoryRepository) FindByID(_ context.Context, id int64) (*entity.Movie, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	m, ok := r.items[id]
	if !ok {
		return nil, nil
	}
	return &m, nil
}

func (r *movieMemoryRepository) FindAll(_ context.Context, offset, limit int) ([]*entity.Movie, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]int64, 0, len(r.items))
	for id := range r.items {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	movies := make([]*entity.Movie, 0)
	if offset >= len(ids) || limit <= 0 {
		return movies, nil
	}

	end := min(offset+limit, len(ids))
	for _, id := range ids[offset:end] {
		m := r.items[id]
		movies = append(movies, &m)
	}
	return movies, nil
}

func (r *movieMemoryRepository) Begin(_ context.Context) (MovieTx, error) {
	return &movieMemoryTx{
		repo:    r,
		puts:    make(map[int64]entity.Movie),
		created: make(map[int64]struct{}),
		deletes: make(map[int64]struct{}),
	}, nil
}

func (r *movieMemoryRepository) Ping(_ context.Context) error {
	return nil
}

func (r *movieMemoryRepository) allocateID() int64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	id := r.nextID
	r.nextID++
	return id
}

// movieMemoryTx stages writes and applies them under the repository lock on Commit.
type movieMemoryTx struct {
	repo    *movieMemoryRepository
	puts    map[int64]entity.Movie
	created map[int64]struct{}
	deletes map[int64]struct{}
	done    bool
}

func (t *movieMemoryTx) Create(_ context.Context, movie *entity.Movie) error {
	movie.ID = t.repo.allocateID()
	t.puts[movie.ID] = *movie
	t.created[movie.ID] = struct{}{}
	return nil
}

func (t *movieMemoryTx) FindByID(ctx context.Context, id int64) (*entity.Movie, error) {
	if _, ok := t.deletes[id]; ok {
		return nil, nil
	}
	if m, ok := t.puts[id]; ok {
		return &m, nil
	}
	return t.repo.FindByID(ctx, id)
}

func (t *movieMemoryTx) Update(ctx context.Context, movie *entity.Movie) error {
	existing, err := t.FindByID(ctx, movie.ID)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrNotFound
	}
	t.puts[movie.ID] = *movie
	return nil
}

func (t *movieMemoryTx) Delete(ctx context.Context, id int64) error {
	existing, err := t.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrNotFound
	}
	delete(t.puts, id)
	t.deletes[id] = struct{}{}
	return nil
}

func (t *movieMemoryTx) Commit(_ context.Context) error {
	if t.done {
		return nil
	}
	t.done = true

	t.repo.mu.Lock()
	defer t.repo.mu.Unlock()

	for id := range t.deletes {
		delete(t.repo.items, id)
	}
	for id, m := range t.puts {
		_, isNew := t.created[id]
		if _, exists := t.repo.items[id]; !exists && !isNew {
			// deleted by a transaction that committed first
			continue
		}
		t.repo.items[id] = m
	}

	t.repo.log.Debug("Transaction committed",
		zap.Int("puts", len(t.puts)),
		zap.Int("deletes", len(t.deletes)),
	)
	return nil
}

func (t *movieMemoryTx) Rollback(_ context.Context) error {
	t.done = true
	t.puts = nil
	t.created = nil
	t.deletes = nil
	return nil
}
