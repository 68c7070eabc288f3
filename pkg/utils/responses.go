package utils

import (
	"encoding/json"
	"net/http"
)

// Problem is an RFC 9457 problem details body. Errors groups messages by field.
type Problem struct {
	Type     string              `json:"type"`
	Title    string              `json:"title"`
	Status   int                 `json:"status"`
	Detail   string              `json:"detail,omitempty"`
	Instance string              `json:"instance,omitempty"`
	Errors   map[string][]string `json:"errors,omitempty"`
}

// ResponseJSON writes data as JSON with a custom status code
func ResponseJSON(w http.ResponseWriter, code int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(data)
}

// ------------- Success responses -------------

// returns 200 OK
func ResponseSuccess(w http.ResponseWriter, data any) {
	ResponseJSON(w, http.StatusOK, data)
}

// returns 201 Created with a Location header
func ResponseCreated(w http.ResponseWriter, location string, data any) {
	w.Header().Set("Location", location)
	ResponseJSON(w, http.StatusCreated, data)
}

// returns 204 No Content
func ResponseNoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

// ------------- Error responses -------------

// ResponseProblem writes an application/problem+json body.
func ResponseProblem(w http.ResponseWriter, r *http.Request, code int, detail string, violations []FieldViolation) {
	problem := Problem{
		Type:     "about:blank",
		Title:    http.StatusText(code),
		Status:   code,
		Detail:   detail,
		Instance: r.URL.Path,
	}

	if len(violations) > 0 {
		problem.Errors = make(map[string][]string, len(violations))
		for _, v := range violations {
			problem.Errors[v.Field] = append(problem.Errors[v.Field], v.Message)
		}
	}

	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(problem)
}

// returns 400 Bad Request listing every failing field
func ResponseValidationProblem(w http.ResponseWriter, r *http.Request, violations []FieldViolation) {
	ResponseProblem(w, r, http.StatusBadRequest, "One or more validation errors occurred.", violations)
}

// returns 404 Not Found
func ResponseNotFound(w http.ResponseWriter, r *http.Request, detail string) {
	ResponseProblem(w, r, http.StatusNotFound, detail, nil)
}

// returns 500 Internal Server Error
func ResponseInternalError(w http.ResponseWriter, r *http.Request) {
	ResponseProblem(w, r, http.StatusInternalServerError, "Internal server error", nil)
}

// returns 503 Service Unavailable
func ResponseUnavailable(w http.ResponseWriter, r *http.Request, detail string) {
	ResponseProblem(w, r, http.StatusServiceUnavailable, detail, nil)
}
