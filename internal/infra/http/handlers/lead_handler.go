package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/xavierca1/ligue-leads/internal/infra/http/middleware"
	"github.com/xavierca1/ligue-leads/internal/usecase"
)

type LeadHandler struct {
	ListUC    *usecase.ListLeadsUseCase
	DetailUC  *usecase.LeadDetailUseCase
	UpdateUC  *usecase.UpdateLeadUseCase
	StatusUC  *usecase.ChangeLeadStatusUseCase
	ConvertUC *usecase.ConvertLeadUseCase
	Logger    *zap.Logger
}

func NewLeadHandler(
	list *usecase.ListLeadsUseCase,
	detail *usecase.LeadDetailUseCase,
	update *usecase.UpdateLeadUseCase,
	status *usecase.ChangeLeadStatusUseCase,
	convert *usecase.ConvertLeadUseCase,
	logger *zap.Logger,
) *LeadHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LeadHandler{
		ListUC:    list,
		DetailUC:  detail,
		UpdateUC:  update,
		StatusUC:  status,
		ConvertUC: convert,
		Logger:    logger,
	}
}

func (h *LeadHandler) List(w http.ResponseWriter, r *http.Request) {
	input := usecase.ListLeadsInput{Status: r.URL.Query().Get("status")}
	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil {
			writeErrorResponse(w, http.StatusBadRequest, "INVALID_QUERY", "limit must be a number")
			return
		}
		input.Limit = limit
	}

	leads, err := h.ListUC.Execute(r.Context(), input)
	if err != nil {
		writeUseCaseError(w, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusOK, leads)
}

func (h *LeadHandler) Detail(w http.ResponseWriter, r *http.Request) {
	detail, err := h.DetailUC.Execute(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeUseCaseError(w, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusOK, detail)
}

func (h *LeadHandler) Update(w http.ResponseWriter, r *http.Request) {
	var input usecase.UpdateLeadInput
	if !decodeJSON(w, r, &input) {
		return
	}
	input.LeadID = chi.URLParam(r, "id")

	lead, err := h.UpdateUC.Execute(r.Context(), input)
	if err != nil {
		writeUseCaseError(w, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusOK, lead)
}

type statusRequest struct {
	Status string `json:"status"`
}

func (h *LeadHandler) ChangeStatus(w http.ResponseWriter, r *http.Request) {
	var req statusRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	status, err := h.StatusUC.Execute(r.Context(), chi.URLParam(r, "id"), req.Status)
	if err != nil {
		writeUseCaseError(w, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusOK, statusRequest{Status: string(status)})
}

var outcomeStatus = map[usecase.ConversionOutcome]int{
	usecase.OutcomeValidationFailed: http.StatusUnprocessableEntity,
	usecase.OutcomeFailed:           http.StatusBadGateway,
	usecase.OutcomePartialSuccess:   http.StatusOK,
	usecase.OutcomeSuccess:          http.StatusOK,
}

// Convert always answers with the outcome document, whatever the outcome.
func (h *LeadHandler) Convert(w http.ResponseWriter, r *http.Request) {
	out, err := h.ConvertUC.Execute(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeUseCaseError(w, h.Logger, err)
		return
	}
	middleware.RecordConversion(string(out.Outcome))
	writeJSON(w, outcomeStatus[out.Outcome], out)
}
