package request

import "filmes-api/internal/data/entity"

type CreateMovieRequest struct {
	Title    string `json:"title" validate:"required,notblank"`
	Genre    string `json:"genre" validate:"required,notblank,max=50"`
	Duration int    `json:"duration" validate:"required,min=70,max=600"`
}

type UpdateMovieRequest struct {
	Title    string `json:"title" validate:"required,notblank"`
	Genre    string `json:"genre" validate:"required,notblank,max=50"`
	Duration int    `json:"duration" validate:"required,min=70,max=600"`
}

// Helper converters

// CreateToEntity builds a new movie. The id is left for the store to assign.
func CreateToEntity(req *CreateMovieRequest) *entity.Movie {
	return &entity.Movie{
		Title:    req.Title,
		Genre:    req.Genre,
		Duration: req.Duration,
	}
}

// UpdateFromEntity projects a stored movie into the working copy a patch is applied to.
func UpdateFromEntity(movie *entity.Movie) UpdateMovieRequest {
	return UpdateMovieRequest{
		Title:    movie.Title,
		Genre:    movie.Genre,
		Duration: movie.Duration,
	}
}

// ApplyUpdate overwrites every mutable field of movie. The id is untouched.
func ApplyUpdate(req *UpdateMovieRequest, movie *entity.Movie) {
	movie.Title = req.Title
	movie.Genre = req.Genre
	movie.Duration = req.Duration
}
