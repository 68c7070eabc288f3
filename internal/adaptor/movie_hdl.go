package adaptor

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"filmes-api/internal/dto/request"
	"filmes-api/internal/usecase"
	"filmes-api/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// maxBodyBytes caps JSON request bodies at 1 MB.
const maxBodyBytes = 1 << 20

type MovieHandler struct {
	service usecase.MovieService
	log     *zap.Logger
}

func NewMovieHandler(service usecase.MovieService, log *zap.Logger) *MovieHandler {
	return &MovieHandler{
		service: service,
		log:     log.With(zap.String("handler", "movie")),
	}
}

// CreateMovie handles POST /filme
func (h *MovieHandler) CreateMovie(w http.ResponseWriter, r *http.Request) {
	var req request.CreateMovieRequest
	if !h.decodeBody(w, r, &req) {
		return
	}

	movie, err := h.service.CreateMovie(r.Context(), &req)
	if err != nil {
		h.handleServiceError(w, r, err, "create movie")
		return
	}

	location := fmt.Sprintf("%s/%d", strings.TrimSuffix(r.URL.Path, "/"), movie.ID)
	utils.ResponseCreated(w, location, movie)
}

// GetMovies handles GET /filme?skip=&take=
func (h *MovieHandler) GetMovies(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	req := request.ListRequest{
		Skip: utils.ParseInt(query.Get("skip"), 0),
		Take: utils.ParseInt(query.Get("take"), request.DefaultTake),
	}

	movies, err := h.service.GetMovies(r.Context(), req)
	if err != nil {
		h.handleServiceError(w, r, err, "get movies")
		return
	}

	utils.ResponseSuccess(w, movies)
}

// GetMovieByID handles GET /filme/{id}
func (h *MovieHandler) GetMovieByID(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseID(w, r)
	if !ok {
		return
	}

	movie, err := h.service.GetMovieByID(r.Context(), id)
	if err != nil {
		h.handleServiceError(w, r, err, "get movie by ID")
		return
	}

	utils.ResponseSuccess(w, movie)
}

// UpdateMovie handles PUT /filme/{id}
func (h *MovieHandler) UpdateMovie(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseID(w, r)
	if !ok {
		return
	}

	var req request.UpdateMovieRequest
	if !h.decodeBody(w, r, &req) {
		return
	}

	if err := h.service.UpdateMovie(r.Context(), id, &req); err != nil {
		h.handleServiceError(w, r, err, "update movie")
		return
	}

	utils.ResponseNoContent(w)
}

// PatchMovie handles PATCH /filme/{id} with a JSON Patch document
func (h *MovieHandler) PatchMovie(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseID(w, r)
	if !ok {
		return
	}

	var patch request.PatchDocument
	if !h.decodeBody(w, r, &patch) {
		return
	}

	if err := h.service.PatchMovie(r.Context(), id, patch); err != nil {
		h.handleServiceError(w, r, err, "patch movie")
		return
	}

	utils.ResponseNoContent(w)
}

// DeleteMovie handles DELETE /filme/{id}
func (h *MovieHandler) DeleteMovie(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseID(w, r)
	if !ok {
		return
	}

	if err := h.service.DeleteMovie(r.Context(), id); err != nil {
		h.handleServiceError(w, r, err, "delete movie")
		return
	}

	utils.ResponseNoContent(w)
}

// handleServiceError maps service errors to problem responses
func (h *MovieHandler) handleServiceError(w http.ResponseWriter, r *http.Request, err error, operation string) {
	var validationErr *usecase.ValidationError

	switch {
	case errors.As(err, &validationErr):
		h.log.Warn(operation+" validation failed",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseValidationProblem(w, r, validationErr.Violations)

	case errors.Is(err, usecase.ErrNotFound):
		h.log.Warn(operation+" failed - not found",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseNotFound(w, r, err.Error())

	default:
		h.log.Error("Failed to "+operation,
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseInternalError(w, r)
	}
}

func (h *MovieHandler) parseID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		utils.ResponseValidationProblem(w, r, []utils.FieldViolation{
			{Field: "id", Message: fmt.Sprintf("the value %q is not a valid integer", raw)},
		})
		return 0, false
	}
	return id, true
}

func (h *MovieHandler) decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)

	err := dec.Decode(dst)
	if err == nil {
		// the body must hold exactly one JSON value
		if extra := dec.Decode(&struct{}{}); !errors.Is(extra, io.EOF) {
			err = errors.New("request body must contain a single JSON value")
		}
	}
	if err != nil {
		h.log.Debug("Invalid request body", zap.Error(err))
		utils.ResponseValidationProblem(w, r, []utils.FieldViolation{
			{Field: "body", Message: "invalid JSON body"},
		})
		return false
	}
	return true
}
