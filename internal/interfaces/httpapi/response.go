package httpapi

import (
	"context"
	"errors"
	"net/http"

	sonic "github.com/bytedance/sonic"
	"github.com/playrift/esports-ingest/internal/usecase"
)

const (
	googleAPIVersion = "2.0"
	errorDomain      = "esports-ingest"
)

// Responses follow the Google JSON style guide envelope: data on success,
// a single structured error otherwise, never both.
type googleResponseEnvelope struct {
	APIVersion string           `json:"apiVersion"`
	Data       any              `json:"data,omitempty"`
	Error      *googleErrorBody `json:"error,omitempty"`
}

type googleErrorBody struct {
	Code    int               `json:"code"`
	Message string            `json:"message"`
	Status  string            `json:"status"`
	Errors  []googleErrorItem `json:"errors,omitempty"`
}

type googleErrorItem struct {
	Domain  string `json:"domain"`
	Reason  string `json:"reason"`
	Message string `json:"message"`
}

type errorMapping struct {
	sentinel   error
	httpStatus int
	reason     string
	status     string
}

var errorMappings = []errorMapping{
	{usecase.ErrInvalidInput, http.StatusBadRequest, "invalidInput", "INVALID_ARGUMENT"},
	{usecase.ErrNotFound, http.StatusNotFound, "notFound", "NOT_FOUND"},
	{usecase.ErrUnauthorized, http.StatusUnauthorized, "unauthorized", "UNAUTHENTICATED"},
	{usecase.ErrDependencyUnavailable, http.StatusServiceUnavailable, "dependencyUnavailable", "UNAVAILABLE"},
}

var internalMapping = errorMapping{
	httpStatus: http.StatusInternalServerError,
	reason:     "internalError",
	status:     "INTERNAL",
}

func writeJSON(ctx context.Context, w http.ResponseWriter, status int, payload any) {
	_, span := startSpan(ctx, "httpapi.writeJSON")
	defer span.End()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = sonic.ConfigDefault.NewEncoder(w).Encode(payload)
}

func writeSuccess(ctx context.Context, w http.ResponseWriter, status int, data any) {
	writeJSON(ctx, w, status, googleResponseEnvelope{
		APIVersion: googleAPIVersion,
		Data:       data,
	})
}

func writeError(ctx context.Context, w http.ResponseWriter, err error) {
	writeErrorBody(ctx, w, mapError(err), err.Error())
}

// writeInternalError never echoes the underlying error; it is reserved
// for panics and other faults whose details must not leak.
func writeInternalError(ctx context.Context, w http.ResponseWriter) {
	writeErrorBody(ctx, w, internalMapping, "internal server error")
}

func writeErrorBody(ctx context.Context, w http.ResponseWriter, mapping errorMapping, message string) {
	writeJSON(ctx, w, mapping.httpStatus, googleResponseEnvelope{
		APIVersion: googleAPIVersion,
		Error: &googleErrorBody{
			Code:    mapping.httpStatus,
			Message: message,
			Status:  mapping.status,
			Errors: []googleErrorItem{
				{
					Domain:  errorDomain,
					Reason:  mapping.reason,
					Message: message,
				},
			},
		},
	})
}

func mapError(err error) errorMapping {
	for _, mapping := range errorMappings {
		if errors.Is(err, mapping.sentinel) {
			return mapping
		}
	}
	return internalMapping
}
