package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/xavierca1/ligue-leads/internal/usecase"
)

const maxUploadBytes = 32 << 20

// RelatedHandler serves the attachment, note and reminder panels of a
// lead or contact.
type RelatedHandler struct {
	Attachments *usecase.AttachmentsUseCase
	Notes       *usecase.NotesUseCase
	Reminders   *usecase.RemindersUseCase
	Logger      *zap.Logger
}

func moduleOr(v string) string {
	if v == "" {
		return "Leads"
	}
	return v
}

func (h *RelatedHandler) ListAttachments(w http.ResponseWriter, r *http.Request) {
	items, err := h.Attachments.List(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeUseCaseError(w, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (h *RelatedHandler) UploadAttachment(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "INVALID_UPLOAD", "Expected a multipart form with a file field")
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "INVALID_UPLOAD", "Expected a multipart form with a file field")
		return
	}
	defer file.Close()

	attachment, err := h.Attachments.Upload(r.Context(), usecase.UploadAttachmentInput{
		RecordID: chi.URLParam(r, "id"),
		Module:   moduleOr(r.FormValue("module")),
		FileName: header.Filename,
		Content:  file,
	})
	if err != nil {
		writeUseCaseError(w, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, attachment)
}

func (h *RelatedHandler) ListNotes(w http.ResponseWriter, r *http.Request) {
	items, err := h.Notes.List(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeUseCaseError(w, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (h *RelatedHandler) AddNote(w http.ResponseWriter, r *http.Request) {
	var input usecase.AddNoteInput
	if !decodeJSON(w, r, &input) {
		return
	}
	input.RecordID = chi.URLParam(r, "id")
	input.Module = moduleOr(input.Module)

	note, err := h.Notes.Add(r.Context(), input)
	if err != nil {
		writeUseCaseError(w, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, note)
}

func (h *RelatedHandler) DeleteNote(w http.ResponseWriter, r *http.Request) {
	if err := h.Notes.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeUseCaseError(w, h.Logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *RelatedHandler) ListReminders(w http.ResponseWriter, r *http.Request) {
	items, err := h.Reminders.List(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeUseCaseError(w, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (h *RelatedHandler) AddReminder(w http.ResponseWriter, r *http.Request) {
	var input usecase.AddReminderInput
	if !decodeJSON(w, r, &input) {
		return
	}
	input.RecordID = chi.URLParam(r, "id")
	input.Module = moduleOr(input.Module)

	reminder, err := h.Reminders.Add(r.Context(), input)
	if err != nil {
		writeUseCaseError(w, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, reminder)
}

func (h *RelatedHandler) MarkReminderDone(w http.ResponseWriter, r *http.Request) {
	if err := h.Reminders.MarkDone(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeUseCaseError(w, h.Logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
