package usecase

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/xavierca1/ligue-leads/internal/entity"
	"github.com/xavierca1/ligue-leads/internal/infra/integration/creator"
)

func TestUploadAttachment(t *testing.T) {
	data := newFakeData()
	data.addIDs[FormAttachments] = "F1"
	uc := NewAttachmentsUseCase(data, zap.NewNop())

	att, err := uc.Upload(context.Background(), UploadAttachmentInput{
		RecordID: "1001",
		Module:   entity.ModuleLeads,
		FileName: "proposal.pdf",
		Content:  strings.NewReader("%PDF"),
	})
	require.NoError(t, err)
	assert.Equal(t, "F1", att.ID)
	assert.Equal(t, "%PDF", data.uploaded)
	assert.Equal(t, []string{"add " + FormAttachments, "upload " + ReportAttachments + "/F1"}, callStrings(data.Writes()))
}

func TestUploadAttachmentFailureRemovesEmptyRecord(t *testing.T) {
	data := newFakeData()
	data.addIDs[FormAttachments] = "F1"
	data.uploadErr = apiErr("uploadFile", 4000)
	uc := NewAttachmentsUseCase(data, zap.NewNop())

	_, err := uc.Upload(context.Background(), UploadAttachmentInput{
		RecordID: "1001", Module: entity.ModuleLeads, FileName: "a.txt", Content: strings.NewReader("x"),
	})
	var techErr *TechnicalError
	require.ErrorAs(t, err, &techErr)
	assert.Equal(t, CodeUploadFailed, techErr.Code)
	assert.Len(t, data.WritesTo("delete", ReportAttachments), 1)
}

func TestUploadAttachmentNeedsContent(t *testing.T) {
	data := newFakeData()
	_, err := NewAttachmentsUseCase(data, nil).Upload(context.Background(), UploadAttachmentInput{RecordID: "1001", Module: "Leads", FileName: "a.txt"})
	assert.True(t, IsValidationFailure(err))
	assert.Empty(t, data.Calls())
}

func TestNotesLifecycle(t *testing.T) {
	data := newFakeData()
	data.records[ReportNotes] = []creator.Record{{"ID": "N1", "Record_Id": "1001", "Module": "Leads", "Content": "call on monday"}}
	data.addIDs[FormNotes] = "N2"
	uc := NewNotesUseCase(data, zap.NewNop())

	notes, err := uc.List(context.Background(), "1001")
	require.NoError(t, err)
	require.Len(t, notes, 1)
	assert.Equal(t, "call on monday", notes[0].Content)

	note, err := uc.Add(context.Background(), AddNoteInput{RecordID: "1001", Module: "Leads", Content: "  budget approved "})
	require.NoError(t, err)
	assert.Equal(t, "N2", note.ID)
	assert.Equal(t, "budget approved", note.Content)

	require.NoError(t, uc.Delete(context.Background(), "N1"))
	assert.Len(t, data.WritesTo("delete", ReportNotes), 1)

	_, err = uc.Add(context.Background(), AddNoteInput{RecordID: "1001", Module: "Leads"})
	assert.True(t, IsValidationFailure(err))
}

func TestRemindersAddAndMarkDone(t *testing.T) {
	data := newFakeData()
	uc := NewRemindersUseCase(data, time.UTC, zap.NewNop())

	reminder, err := uc.Add(context.Background(), AddReminderInput{
		RecordID:      "1001",
		Module:        "Leads",
		Title:         "Send contract",
		DueDate:       "2025-01-09",
		DueTime:       "16:45",
		AssigneeEmail: "owner@ligue.dev",
	})
	require.NoError(t, err)
	assert.Equal(t, "09-Jan-2025 16:45:00", reminder.Due)
	assert.Equal(t, entity.ReminderStatusPending, reminder.Status)

	require.NoError(t, uc.MarkDone(context.Background(), reminder.ID))
	update := data.WritesTo("update", ReportReminders)[0]
	assert.Equal(t, creator.Fields{"Status": entity.ReminderStatusDone}, update.Fields)
}

func TestRemindersAddValidatesDateAndEmail(t *testing.T) {
	data := newFakeData()
	_, err := NewRemindersUseCase(data, time.UTC, nil).Add(context.Background(), AddReminderInput{
		RecordID: "1001", Module: "Leads", Title: "x", DueDate: "09/01/2025", DueTime: "4pm", AssigneeEmail: "nope",
	})
	var vf *ValidationFailure
	require.ErrorAs(t, err, &vf)
	assert.Len(t, vf.Errors, 3)
	assert.Empty(t, data.Calls())
}

func callStrings(calls []dataCall) []string {
	out := make([]string, len(calls))
	for i, c := range calls {
		out[i] = c.String()
	}
	return out
}
