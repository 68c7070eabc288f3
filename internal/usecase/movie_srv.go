package usecase

import (
	"context"
	"errors"
	"fmt"

	"filmes-api/internal/data/entity"
	"filmes-api/internal/data/repository"
	"filmes-api/internal/dto/request"
	"filmes-api/internal/dto/response"
	"filmes-api/pkg/utils"

	"go.uber.org/zap"
)

type MovieService interface {
	CreateMovie(ctx context.Context, req *request.CreateMovieRequest) (*response.MovieResponse, error)
	GetMovies(ctx context.Context, req request.ListRequest) ([]response.MovieResponse, error)
	GetMovieByID(ctx context.Context, id int64) (*response.MovieResponse, error)
	UpdateMovie(ctx context.Context, id int64, req *request.UpdateMovieRequest) error
	PatchMovie(ctx context.Context, id int64, patch request.PatchDocument) error
	DeleteMovie(ctx context.Context, id int64) error
}

type movieService struct {
	repo repository.MovieRepository
	log  *zap.Logger
}

func NewMovieService(repo repository.MovieRepository, log *zap.Logger) MovieService {
	return &movieService{
		repo: repo,
		log:  log.With(zap.String("service", "movie")),
	}
}

func (s *movieService) CreateMovie(ctx context.Context, req *request.CreateMovieRequest) (*response.MovieResponse, error) {
	if violations := utils.ValidateStruct(req); len(violations) > 0 {
		s.log.Warn("Create movie validation failed", zap.Any("errors", violations))
		return nil, newValidationError(violations)
	}

	movie := request.CreateToEntity(req)

	tx, err := s.repo.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin create movie: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := tx.Create(ctx, movie); err != nil {
		s.log.Error("Failed to create movie",
			zap.Error(err),
			zap.String("title", req.Title),
		)
		return nil, fmt.Errorf("create movie: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit create movie: %w", err)
	}

	s.log.Info("Movie created",
		zap.Int64("movie_id", movie.ID),
		zap.String("title", movie.Title),
	)

	movieResp := response.MovieToResponse(movie)
	return &movieResp, nil
}

func (s *movieService) GetMovies(ctx context.Context, req request.ListRequest) ([]response.MovieResponse, error) {
	offset := req.Offset()
	limit := req.Limit()

	if limit == 0 {
		return []response.MovieResponse{}, nil
	}

	movies, err := s.repo.FindAll(ctx, offset, limit)
	if err != nil {
		s.log.Error("Failed to get movies",
			zap.Error(err),
			zap.Int("skip", offset),
			zap.Int("take", limit),
		)
		return nil, fmt.Errorf("get movies: %w", err)
	}

	s.log.Debug("Movies retrieved",
		zap.Int("count", len(movies)),
		zap.Int("skip", offset),
		zap.Int("take", limit),
	)

	return response.MoviesToResponse(movies), nil
}

func (s *movieService) GetMovieByID(ctx context.Context, id int64) (*response.MovieResponse, error) {
	movie, err := s.repo.FindByID(ctx, id)
	if err != nil {
		s.log.Error("Failed to get movie by ID",
			zap.Error(err),
			zap.Int64("movie_id", id),
		)
		return nil, fmt.Errorf("get movie by id: %w", err)
	}

	if movie == nil {
		return nil, movieNotFound(id)
	}

	movieResp := response.MovieToResponse(movie)
	return &movieResp, nil
}

func (s *movieService) UpdateMovie(ctx context.Context, id int64, req *request.UpdateMovieRequest) error {
	return s.mutate(ctx, id, "update", func(movie *entity.Movie) error {
		if violations := utils.ValidateStruct(req); len(violations) > 0 {
			s.log.Warn("Update movie validation failed",
				zap.Int64("movie_id", id),
				zap.Any("errors", violations),
			)
			return newValidationError(violations)
		}

		request.ApplyUpdate(req, movie)
		return nil
	})
}

func (s *movieService) PatchMovie(ctx context.Context, id int64, patch request.PatchDocument) error {
	return s.mutate(ctx, id, "patch", func(movie *entity.Movie) error {
		working := request.UpdateFromEntity(movie)

		violations := patch.ApplyTo(&working)
		violations = append(violations, utils.ValidateStruct(&working)...)
		if len(violations) > 0 {
			s.log.Warn("Patch movie validation failed",
				zap.Int64("movie_id", id),
				zap.Int("operations", len(patch)),
				zap.Any("errors", violations),
			)
			return newValidationError(violations)
		}

		request.ApplyUpdate(&working, movie)
		return nil
	})
}

func (s *movieService) DeleteMovie(ctx context.Context, id int64) error {
	tx, err := s.repo.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin delete movie: %w", err)
	}
	defer tx.Rollback(ctx)

	movie, err := tx.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("find movie: %w", err)
	}
	if movie == nil {
		return movieNotFound(id)
	}

	if err := tx.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return movieNotFound(id)
		}
		s.log.Error("Failed to delete movie",
			zap.Error(err),
			zap.Int64("movie_id", id),
		)
		return fmt.Errorf("delete movie: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit delete movie: %w", err)
	}

	s.log.Info("Movie deleted",
		zap.Int64("movie_id", id),
		zap.String("title", movie.Title),
	)

	return nil
}

// mutate loads the movie inside a transaction, lets apply change it in place and
// commits the result. Nothing is written when apply fails.
func (s *movieService) mutate(ctx context.Context, id int64, operation string, apply func(*entity.Movie) error) error {
	tx, err := s.repo.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin %s movie: %w", operation, err)
	}
	defer tx.Rollback(ctx)

	movie, err := tx.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("find movie: %w", err)
	}
	if movie == nil {
		return movieNotFound(id)
	}

	if err := apply(movie); err != nil {
		return err
	}

	if err := tx.Update(ctx, movie); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return movieNotFound(id)
		}
		s.log.Error("Failed to "+operation+" movie",
			zap.Error(err),
			zap.Int64("movie_id", id),
		)
		return fmt.Errorf("%s movie: %w", operation, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit %s movie: %w", operation, err)
	}

	s.log.Info("Movie updated",
		zap.Int64("movie_id", id),
		zap.String("operation", operation),
		zap.String("title", movie.Title),
	)

	return nil
}
