package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/playrift/esports-ingest/internal/usecase"
)

func TestWriteSuccess_Envelope(t *testing.T) {
	rec := httptest.NewRecorder()
	writeSuccess(context.Background(), rec, http.StatusOK, map[string]string{"status": "ok"})

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if got := rec.Header().Get("Content-Type"); got != "application/json" {
		t.Fatalf("unexpected content type: %q", got)
	}

	body := decodeEnvelope(t, rec)
	if got, _ := body["apiVersion"].(string); got != "2.0" {
		t.Fatalf("expected apiVersion=2.0, got %v", body["apiVersion"])
	}
	if _, ok := body["data"]; !ok {
		t.Fatalf("success envelope must carry data")
	}
	if _, ok := body["error"]; ok {
		t.Fatalf("success envelope must not carry error")
	}
}

func TestWriteError_SentinelMapping(t *testing.T) {
	tests := []struct {
		sentinel   error
		wantCode   int
		wantStatus string
	}{
		{usecase.ErrInvalidInput, http.StatusBadRequest, "INVALID_ARGUMENT"},
		{usecase.ErrNotFound, http.StatusNotFound, "NOT_FOUND"},
		{usecase.ErrUnauthorized, http.StatusUnauthorized, "UNAUTHENTICATED"},
		{usecase.ErrDependencyUnavailable, http.StatusServiceUnavailable, "UNAVAILABLE"},
		{fmt.Errorf("plain failure"), http.StatusInternalServerError, "INTERNAL"},
	}

	for _, tt := range tests {
		t.Run(tt.wantStatus, func(t *testing.T) {
			rec := httptest.NewRecorder()
			writeError(context.Background(), rec, fmt.Errorf("%w: detail", tt.sentinel))

			if rec.Code != tt.wantCode {
				t.Fatalf("expected status %d, got %d", tt.wantCode, rec.Code)
			}

			body := decodeEnvelope(t, rec)
			errorObj, ok := body["error"].(map[string]any)
			if !ok {
				t.Fatalf("expected error object, got %T", body["error"])
			}
			if got, _ := errorObj["status"].(string); got != tt.wantStatus {
				t.Fatalf("expected status %q, got %v", tt.wantStatus, errorObj["status"])
			}
			items, _ := errorObj["errors"].([]any)
			if len(items) != 1 {
				t.Fatalf("expected one error item, got %d", len(items))
			}
			item, _ := items[0].(map[string]any)
			if got, _ := item["domain"].(string); got != "esports-ingest" {
				t.Fatalf("unexpected error domain: %v", item["domain"])
			}
		})
	}
}

func TestWriteInternalError_HidesDetails(t *testing.T) {
	rec := httptest.NewRecorder()
	writeInternalError(context.Background(), rec)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected status 500, got %d", rec.Code)
	}

	body := decodeEnvelope(t, rec)
	errorObj, _ := body["error"].(map[string]any)
	if got, _ := errorObj["message"].(string); got != "internal server error" {
		t.Fatalf("internal errors must use the fixed message, got %q", got)
	}
}
