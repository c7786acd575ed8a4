package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"

	"github.com/DungeonCodes/PI2026-1SEMESTRE/internal/adapter/logger"
	"github.com/DungeonCodes/PI2026-1SEMESTRE/internal/domain"
	"github.com/DungeonCodes/PI2026-1SEMESTRE/internal/interfaces"
)

const maxJSONBody = 1 << 20

var errUploadMissing = errors.New("file field is required")

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type ErrorResponse struct {
	Error    string            `json:"error"`
	Errors   []ValidationError `json:"errors,omitempty"`
	Redirect string            `json:"redirect,omitempty"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// report json names instead of Go field names
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

func respondJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func respondError(w http.ResponseWriter, message string, statusCode int, validationErrors []ValidationError) {
	respondJSON(w, statusCode, ErrorResponse{
		Error:  message,
		Errors: validationErrors,
	})
}

// decodeAndValidate reads a JSON body into dst and runs its validate tags.
// It writes the 400 response itself and reports whether the caller may go on.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxJSONBody))
	if err := dec.Decode(dst); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest, nil)
		return false
	}

	if err := validate.Struct(dst); err != nil {
		respondError(w, "Validation failed", http.StatusBadRequest, toValidationErrors(err))
		return false
	}
	return true
}

func toValidationErrors(err error) []ValidationError {
	var fieldErrors validator.ValidationErrors
	if !errors.As(err, &fieldErrors) {
		return []ValidationError{{Message: err.Error()}}
	}

	out := make([]ValidationError, 0, len(fieldErrors))
	for _, fe := range fieldErrors {
		out = append(out, ValidationError{Field: fieldPath(fe), Message: validationMessage(fe)})
	}
	return out
}

// fieldPath drops the struct name from the namespace: "items[0].quantity".
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		if fe.Kind() == reflect.Slice {
			return fmt.Sprintf("must contain at least %s item(s)", fe.Param())
		}
		return fmt.Sprintf("must be at least %s characters", fe.Param())
	case "max":
		return fmt.Sprintf("must not exceed %s characters", fe.Param())
	case "gt":
		return fmt.Sprintf("must be greater than %s", fe.Param())
	case "gte":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "oneof":
		return fmt.Sprintf("must be one of: %s", strings.ReplaceAll(fe.Param(), " ", ", "))
	case "hexcolor":
		return "must be a color like #rrggbb"
	case "url":
		return "must be a valid URL"
	}
	return fmt.Sprintf("failed %s validation", fe.Tag())
}

// respondServiceError maps domain errors onto status codes. Anything
// unrecognised is logged and hidden behind a generic 500.
func respondServiceError(w http.ResponseWriter, r *http.Request, log logger.Logger, action string, err error) {
	var shortage *domain.ShortageError
	switch {
	case errors.As(err, &shortage):
		details := make([]ValidationError, 0, len(shortage.Shortages))
		for _, s := range shortage.Shortages {
			details = append(details, ValidationError{
				Field:   s.Name,
				Message: fmt.Sprintf("need %g, have %g", s.Required, s.Available),
			})
		}
		respondError(w, "Insufficient stock", http.StatusConflict, details)
	case errors.Is(err, domain.ErrValidation):
		respondError(w, err.Error(), http.StatusBadRequest, nil)
	case errors.Is(err, domain.ErrUnauthorized):
		respondError(w, "Sign in required", http.StatusUnauthorized, nil)
	case errors.Is(err, domain.ErrForbidden):
		respondError(w, "You don't have permission to access this resource", http.StatusForbidden, nil)
	case errors.Is(err, domain.ErrNotFound):
		respondError(w, "Not found", http.StatusNotFound, nil)
	case errors.Is(err, domain.ErrInUse):
		respondError(w, "This record is in use and cannot be deleted", http.StatusConflict, nil)
	case errors.Is(err, domain.ErrInvalidStatusTransition):
		respondError(w, err.Error(), http.StatusConflict, nil)
	default:
		log.Error(action, "Request failed", middleware.GetReqID(r.Context()),
			map[string]interface{}{"path": r.URL.Path}, err)
		respondError(w, "Internal server error", http.StatusInternalServerError, nil)
	}
}

func idParam(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		respondError(w, "Invalid id", http.StatusBadRequest, []ValidationError{{Field: "id", Message: "must be a positive integer"}})
		return 0, false
	}
	return id, true
}

// readUpload pulls the "file" part out of a multipart form. Only images are
// accepted.
func readUpload(w http.ResponseWriter, r *http.Request, maxBytes int64) (*interfaces.Upload, func(), bool) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
	if err := r.ParseMultipartForm(maxBytes); err != nil {
		respondError(w, "Invalid upload", http.StatusBadRequest, []ValidationError{{Field: "file", Message: err.Error()}})
		return nil, nil, false
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		respondError(w, "Invalid upload", http.StatusBadRequest, []ValidationError{{Field: "file", Message: errUploadMissing.Error()}})
		return nil, nil, false
	}

	contentType := header.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		file.Close()
		respondError(w, "Invalid upload", http.StatusBadRequest, []ValidationError{{Field: "file", Message: "must be an image"}})
		return nil, nil, false
	}

	upload := &interfaces.Upload{Filename: header.Filename, ContentType: contentType, Body: file}
	return upload, func() { file.Close() }, true
}
