package httpapi

import (
	"fmt"
	"net/http"

	sonic "github.com/bytedance/sonic"
	"github.com/playrift/esports-ingest/internal/usecase"
)

type runImportRequest struct {
	ImportType string `json:"import_type" validate:"required,oneof=tournaments teams matches players"`
}

type importResultDTO struct {
	Success  bool   `json:"success"`
	Message  string `json:"message"`
	Total    int    `json:"total"`
	Imported int    `json:"imported"`
}

type aggregateImportDTO struct {
	Success bool                       `json:"success"`
	Message string                     `json:"message"`
	Results map[string]importResultDTO `json:"results"`
}

func (h *Handler) RunImport(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunImport")
	defer span.End()

	var req runImportRequest
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.importService.RunImport(ctx, req.ImportType)
	if err != nil {
		h.logger.WarnContext(ctx, "run import failed", "import_type", req.ImportType, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, importResultToDTO(result))
}

func (h *Handler) RunAllImports(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunAllImports")
	defer span.End()

	aggregate := h.importService.RunAll(ctx)

	results := make(map[string]importResultDTO, len(aggregate.Results))
	for kind, result := range aggregate.Results {
		results[kind] = importResultToDTO(result)
	}

	writeSuccess(ctx, w, http.StatusOK, aggregateImportDTO{
		Success: aggregate.Succeeded,
		Message: aggregate.Message,
		Results: results,
	})
}

func importResultToDTO(result usecase.ImportResult) importResultDTO {
	return importResultDTO{
		Success:  result.Succeeded,
		Message:  result.Message,
		Total:    result.TotalFound,
		Imported: result.TotalImported,
	}
}
