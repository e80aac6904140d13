package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/xavierca1/ligue-leads/internal/usecase"
)

type LookupHandler struct {
	UC     *usecase.LookupsUseCase
	Logger *zap.Logger
}

func (h *LookupHandler) Kinds(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, usecase.LookupKinds())
}

func (h *LookupHandler) Get(w http.ResponseWriter, r *http.Request) {
	items, err := h.UC.Execute(r.Context(), chi.URLParam(r, "kind"))
	if err != nil {
		writeUseCaseError(w, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}
