package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/xavierca1/ligue-leads/internal/usecase"
)

type ErrorResponse struct {
	Error   string                    `json:"error"`
	Message string                    `json:"message"`
	Fields  []usecase.ValidationError `json:"fields,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeErrorResponse(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, ErrorResponse{Error: code, Message: message})
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "INVALID_JSON", "Invalid JSON body")
		return false
	}
	return true
}

var domainStatus = map[string]int{
	usecase.CodeNotFound:       http.StatusNotFound,
	usecase.CodeUnknownLookup:  http.StatusNotFound,
	usecase.CodeInProgress:     http.StatusConflict,
	usecase.CodeMeetingNotDone: http.StatusUnprocessableEntity,
}

// writeUseCaseError logs the full cause and answers with the short message
// only.
func writeUseCaseError(w http.ResponseWriter, logger *zap.Logger, err error) {
	var (
		vf *usecase.ValidationFailure
		de *usecase.DomainError
		te *usecase.TechnicalError
	)
	switch {
	case errors.As(err, &vf):
		writeJSON(w, http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "VALIDATION_FAILED",
			Message: "Some fields are invalid",
			Fields:  vf.Errors,
		})
	case errors.As(err, &de):
		status, ok := domainStatus[de.Code]
		if !ok {
			status = http.StatusBadRequest
		}
		writeErrorResponse(w, status, de.Code, de.Message)
	case errors.As(err, &te):
		logger.Error("❌ data API call failed", zap.String("code", te.Code), zap.Error(te.Err))
		writeErrorResponse(w, http.StatusBadGateway, te.Code, te.Message)
	default:
		logger.Error("❌ unexpected error", zap.Error(err))
		writeErrorResponse(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Unexpected error")
	}
}
