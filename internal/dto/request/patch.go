package request

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"filmes-api/pkg/utils"
)

const (
	PatchOpAdd     = "add"
	PatchOpReplace = "replace"
	PatchOpRemove  = "remove"
)

// PatchOperation is one RFC 6902 operation. Only add, replace and remove are
// supported, and paths address the top-level fields of UpdateMovieRequest.
type PatchOperation struct {
	Op    string          `json:"op"`
	Path  string          `json:"path"`
	Value json.RawMessage `json:"value,omitempty"`
}

type PatchDocument []PatchOperation

// ApplyTo runs the operations in order against target. Operations that cannot be
// applied are reported as violations keyed by their path and leave target as is;
// the remaining operations still run.
func (doc PatchDocument) ApplyTo(target *UpdateMovieRequest) []utils.FieldViolation {
	var violations []utils.FieldViolation
	for _, op := range doc {
		if v := op.applyTo(target); v != nil {
			violations = append(violations, *v)
		}
	}
	return violations
}

func (op PatchOperation) applyTo(target *UpdateMovieRequest) *utils.FieldViolation {
	field := strings.ToLower(strings.TrimPrefix(op.Path, "/"))

	violation := func(format string, args ...any) *utils.FieldViolation {
		key := field
		if key == "" {
			key = "path"
		}
		return &utils.FieldViolation{Field: key, Message: fmt.Sprintf(format, args...)}
	}

	switch field {
	case "title", "genre", "duration":
	default:
		return violation("the target location %q was not found", op.Path)
	}

	switch strings.ToLower(op.Op) {
	case PatchOpRemove:
		switch field {
		case "title":
			target.Title = ""
		case "genre":
			target.Genre = ""
		case "duration":
			target.Duration = 0
		}
		return nil

	case PatchOpAdd, PatchOpReplace:
		if len(op.Value) == 0 {
			return violation("the %q operation requires a value", op.Op)
		}

		switch field {
		case "title", "genre":
			s, err := decodeString(op.Value)
			if err != nil {
				return violation("the value for %s must be a string", field)
			}
			if field == "title" {
				target.Title = s
			} else {
				target.Genre = s
			}
		case "duration":
			n, err := decodeInt(op.Value)
			if err != nil {
				return violation("the value for duration must be an integer")
			}
			target.Duration = n
		}
		return nil

	default:
		return violation("the %q operation is not supported", op.Op)
	}
}

// null decodes to the zero value, matching a remove.
func decodeString(raw json.RawMessage) (string, error) {
	if bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return "", nil
	}
	var s string
	err := json.Unmarshal(raw, &s)
	return s, err
}

func decodeInt(raw json.RawMessage) (int, error) {
	if bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return 0, nil
	}
	var n int
	err := json.Unmarshal(raw, &n)
	return n, err
}
