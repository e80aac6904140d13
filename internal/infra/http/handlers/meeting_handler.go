package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/xavierca1/ligue-leads/internal/infra/http/middleware"
	"github.com/xavierca1/ligue-leads/internal/usecase"
)

type MeetingHandler struct {
	ListUC        *usecase.ListMeetingsUseCase
	ScheduleUC    *usecase.ScheduleMeetingUseCase
	EditUC        *usecase.EditMeetingUseCase
	StatusUC      *usecase.ChangeMeetingStatusUseCase
	ListRemarksUC *usecase.ListRemarksUseCase
	AddRemarkUC   *usecase.AddRemarkUseCase
	Logger        *zap.Logger
}

func (h *MeetingHandler) List(w http.ResponseWriter, r *http.Request) {
	meetings, err := h.ListUC.Execute(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeUseCaseError(w, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusOK, meetings)
}

func (h *MeetingHandler) Schedule(w http.ResponseWriter, r *http.Request) {
	var input usecase.ScheduleMeetingInput
	if !decodeJSON(w, r, &input) {
		return
	}
	input.RecordID = chi.URLParam(r, "id")
	if input.Module == "" {
		input.Module = "Leads"
	}

	meeting, err := h.ScheduleUC.Execute(r.Context(), input)
	if err != nil {
		writeUseCaseError(w, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, meeting)
}

func (h *MeetingHandler) Edit(w http.ResponseWriter, r *http.Request) {
	var input usecase.EditMeetingInput
	if !decodeJSON(w, r, &input) {
		return
	}
	input.MeetingID = chi.URLParam(r, "id")

	meeting, err := h.EditUC.Execute(r.Context(), input)
	if err != nil {
		writeUseCaseError(w, h.Logger, err)
		return
	}
	middleware.RecordMeetingUpdated()
	writeJSON(w, http.StatusOK, meeting)
}

func (h *MeetingHandler) ChangeStatus(w http.ResponseWriter, r *http.Request) {
	var req statusRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	status, err := h.StatusUC.Execute(r.Context(), chi.URLParam(r, "id"), req.Status)
	if err != nil {
		writeUseCaseError(w, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusOK, statusRequest{Status: status})
}

func (h *MeetingHandler) ListRemarks(w http.ResponseWriter, r *http.Request) {
	remarks, err := h.ListRemarksUC.Execute(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeUseCaseError(w, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusOK, remarks)
}

func (h *MeetingHandler) AddRemark(w http.ResponseWriter, r *http.Request) {
	var input usecase.AddRemarkInput
	if !decodeJSON(w, r, &input) {
		return
	}
	input.MeetingID = chi.URLParam(r, "id")

	remark, err := h.AddRemarkUC.Execute(r.Context(), input)
	if err != nil {
		writeUseCaseError(w, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, remark)
}
