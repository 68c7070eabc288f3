package wire

import (
	"filmes-api/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

// movieRoutePrefixes lists both casings the collection answers on.
var movieRoutePrefixes = []string{"/filme", "/Filme"}

func wireMovie(r chi.Router, movieHandler *adaptor.MovieHandler) {
	for _, prefix := range movieRoutePrefixes {
		r.Route(prefix, func(r chi.Router) {
			r.Post("/", movieHandler.CreateMovie)       // POST /filme
			r.Get("/", movieHandler.GetMovies)          // GET /filme?skip=&take=
			r.Get("/{id}", movieHandler.GetMovieByID)   // GET /filme/{id}
			r.Put("/{id}", movieHandler.UpdateMovie)    // PUT /filme/{id}
			r.Patch("/{id}", movieHandler.PatchMovie)   // PATCH /filme/{id}
			r.Delete("/{id}", movieHandler.DeleteMovie) // DELETE /filme/{id}
		})
	}
}
