package usecase

import (
	"context"
	"io"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/xavierca1/ligue-leads/internal/entity"
	"github.com/xavierca1/ligue-leads/internal/infra/integration/creator"
)

func relatedRecords(ctx context.Context, data DataService, report, recordID string) ([]creator.Record, error) {
	if strings.TrimSpace(recordID) == "" {
		return nil, validationFailure([]ValidationError{{Field: "record_id", Message: "is required"}})
	}
	records, err := data.GetRecords(ctx, creator.Query{
		Report:   report,
		Criteria: creator.Eq(FieldRecordID, recordID),
	})
	if creator.IsNoRecords(err) {
		return nil, nil
	}
	return records, err
}

func listAttachments(ctx context.Context, data DataService, recordID string) ([]entity.Attachment, error) {
	records, err := relatedRecords(ctx, data, ReportAttachments, recordID)
	if err != nil {
		return nil, wrapListError("Failed to load attachments", err)
	}
	out := make([]entity.Attachment, 0, len(records))
	for _, r := range records {
		out = append(out, attachmentFromRecord(r))
	}
	return out, nil
}

func listNotes(ctx context.Context, data DataService, recordID string) ([]entity.Note, error) {
	records, err := relatedRecords(ctx, data, ReportNotes, recordID)
	if err != nil {
		return nil, wrapListError("Failed to load notes", err)
	}
	out := make([]entity.Note, 0, len(records))
	for _, r := range records {
		out = append(out, noteFromRecord(r))
	}
	return out, nil
}

func listReminders(ctx context.Context, data DataService, recordID string) ([]entity.Reminder, error) {
	records, err := relatedRecords(ctx, data, ReportReminders, recordID)
	if err != nil {
		return nil, wrapListError("Failed to load reminders", err)
	}
	out := make([]entity.Reminder, 0, len(records))
	for _, r := range records {
		out = append(out, reminderFromRecord(r))
	}
	return out, nil
}

func wrapListError(message string, err error) error {
	if IsValidationFailure(err) {
		return err
	}
	return apiFailure(message, err)
}

type AttachmentsUseCase struct {
	Data   DataService
	Logger *zap.Logger
}

func NewAttachmentsUseCase(data DataService, logger *zap.Logger) *AttachmentsUseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AttachmentsUseCase{Data: data, Logger: logger}
}

func (uc *AttachmentsUseCase) List(ctx context.Context, recordID string) ([]entity.Attachment, error) {
	return listAttachments(ctx, uc.Data, recordID)
}

type UploadAttachmentInput struct {
	RecordID string    `json:"record_id" validate:"required"`
	Module   string    `json:"module" validate:"required,oneof=Leads Contacts"`
	FileName string    `json:"file_name" validate:"notblank,max=255"`
	Content  io.Reader `json:"-"`
}

// Upload adds an Attachment record and then fills its file field. When the
// upload fails the empty record is deleted again.
func (uc *AttachmentsUseCase) Upload(ctx context.Context, input UploadAttachmentInput) (*entity.Attachment, error) {
	errs := validateInput(input)
	if input.Content == nil {
		errs = append(errs, ValidationError{Field: "file", Message: "is required"})
	}
	if err := validationFailure(errs); err != nil {
		return nil, err
	}

	id, err := uc.Data.AddRecords(ctx, FormAttachments, creator.Fields{
		FieldRecordID: input.RecordID,
		FieldModule:   input.Module,
		"File_Name":   input.FileName,
	})
	if err != nil {
		return nil, apiFailure("Failed to create attachment", err)
	}

	err = uc.Data.UploadFile(ctx, creator.FileUpload{
		Report:   ReportAttachments,
		ID:       id,
		Field:    "File",
		FileName: input.FileName,
		Content:  input.Content,
	})
	if err != nil {
		if delErr := uc.Data.DeleteRecordByID(ctx, ReportAttachments, id); delErr != nil {
			uc.Logger.Warn("⚠️ empty attachment record left behind", zap.String("attachment_id", id), zap.Error(delErr))
		}
		return nil, &TechnicalError{Code: CodeUploadFailed, Message: "Failed to upload file", Err: err}
	}

	uc.Logger.Info("📎 attachment uploaded", zap.String("record_id", input.RecordID), zap.String("file", input.FileName))
	return &entity.Attachment{ID: id, RecordID: input.RecordID, Module: input.Module, FileName: input.FileName}, nil
}

type NotesUseCase struct {
	Data   DataService
	Logger *zap.Logger
}

func NewNotesUseCase(data DataService, logger *zap.Logger) *NotesUseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &NotesUseCase{Data: data, Logger: logger}
}

func (uc *NotesUseCase) List(ctx context.Context, recordID string) ([]entity.Note, error) {
	return listNotes(ctx, uc.Data, recordID)
}

type AddNoteInput struct {
	RecordID string `json:"record_id" validate:"required"`
	Module   string `json:"module" validate:"required,oneof=Leads Contacts"`
	Title    string `json:"title" validate:"max=200"`
	Content  string `json:"content" validate:"notblank,max=10000"`
}

func (uc *NotesUseCase) Add(ctx context.Context, input AddNoteInput) (*entity.Note, error) {
	if err := validationFailure(validateInput(input)); err != nil {
		return nil, err
	}
	note := &entity.Note{
		RecordID: input.RecordID,
		Module:   input.Module,
		Title:    strings.TrimSpace(input.Title),
		Content:  strings.TrimSpace(input.Content),
	}
	id, err := uc.Data.AddRecords(ctx, FormNotes, creator.Fields{
		FieldRecordID: note.RecordID,
		FieldModule:   note.Module,
		"Title":       note.Title,
		"Content":     note.Content,
	})
	if err != nil {
		return nil, apiFailure("Failed to add note", err)
	}
	note.ID = id
	return note, nil
}

func (uc *NotesUseCase) Delete(ctx context.Context, noteID string) error {
	if strings.TrimSpace(noteID) == "" {
		return validationFailure([]ValidationError{{Field: "note_id", Message: "is required"}})
	}
	if err := uc.Data.DeleteRecordByID(ctx, ReportNotes, noteID); err != nil {
		return apiFailure("Failed to delete note", err)
	}
	uc.Logger.Info("note deleted", zap.String("note_id", noteID))
	return nil
}

type RemindersUseCase struct {
	Data     DataService
	Location *time.Location
	Logger   *zap.Logger
}

func NewRemindersUseCase(data DataService, loc *time.Location, logger *zap.Logger) *RemindersUseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RemindersUseCase{Data: data, Location: loc, Logger: logger}
}

func (uc *RemindersUseCase) List(ctx context.Context, recordID string) ([]entity.Reminder, error) {
	return listReminders(ctx, uc.Data, recordID)
}

type AddReminderInput struct {
	RecordID      string `json:"record_id" validate:"required"`
	Module        string `json:"module" validate:"required,oneof=Leads Contacts"`
	Title         string `json:"title" validate:"notblank,max=200"`
	DueDate       string `json:"due_date" validate:"required,datetime=2006-01-02"`
	DueTime       string `json:"due_time" validate:"required,datetime=15:04"`
	AssigneeEmail string `json:"assignee_email" validate:"omitempty,email"`
}

func (uc *RemindersUseCase) Add(ctx context.Context, input AddReminderInput) (*entity.Reminder, error) {
	errs := validateInput(input)
	var due time.Time
	if len(errs) == 0 {
		var err error
		if due, err = entity.CombineDateClock(input.DueDate, input.DueTime, uc.Location); err != nil {
			errs = append(errs, ValidationError{Field: "due_date", Message: err.Error()})
		}
	}
	if err := validationFailure(errs); err != nil {
		return nil, err
	}

	reminder := &entity.Reminder{
		RecordID:      input.RecordID,
		Module:        input.Module,
		Title:         strings.TrimSpace(input.Title),
		Due:           entity.FormatTimestamp(due),
		Status:        entity.ReminderStatusPending,
		AssigneeEmail: input.AssigneeEmail,
	}
	id, err := uc.Data.AddRecords(ctx, FormReminders, creator.Fields{
		FieldRecordID:    reminder.RecordID,
		FieldModule:      reminder.Module,
		"Title":          reminder.Title,
		"Due_Date":       reminder.Due,
		"Status":         reminder.Status,
		"Assignee_Email": reminder.AssigneeEmail,
	})
	if err != nil {
		return nil, apiFailure("Failed to add reminder", err)
	}
	reminder.ID = id
	uc.Logger.Info("⏰ reminder added", zap.String("record_id", reminder.RecordID), zap.String("due", reminder.Due))
	return reminder, nil
}

func (uc *RemindersUseCase) MarkDone(ctx context.Context, reminderID string) error {
	if strings.TrimSpace(reminderID) == "" {
		return validationFailure([]ValidationError{{Field: "reminder_id", Message: "is required"}})
	}
	if err := uc.Data.UpdateRecordByID(ctx, ReportReminders, reminderID, creator.Fields{"Status": entity.ReminderStatusDone}); err != nil {
		return apiFailure("Failed to update reminder", err)
	}
	return nil
}
