package response

import "filmes-api/internal/data/entity"

type MovieResponse struct {
	ID       int64  `json:"id"`
	Title    string `json:"title"`
	Genre    string `json:"genre"`
	Duration int    `json:"duration"`
}

// Helper converters
func MovieToResponse(movie *entity.Movie) MovieResponse {
	return MovieResponse{
		ID:       movie.ID,
		Title:    movie.Title,
		Genre:    movie.Genre,
		Duration: movie.Duration,
	}
}

func MoviesToResponse(movies []*entity.Movie) []MovieResponse {
	out := make([]MovieResponse, len(movies))
	for i, movie := range movies {
		out[i] = MovieToResponse(movie)
	}
	return out
}
