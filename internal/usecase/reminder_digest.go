package usecase

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/xavierca1/ligue-leads/internal/entity"
	"github.com/xavierca1/ligue-leads/internal/infra/integration/creator"
	"github.com/xavierca1/ligue-leads/internal/infra/queue"
)

// ReminderDigestUseCase announces pending reminders as they fall due. Each
// announced reminder is flagged on the platform so it is not announced
// again, also across restarts.
type ReminderDigestUseCase struct {
	Data     DataService
	Events   ReminderPublisher
	Location *time.Location
	Logger   *zap.Logger
}

func NewReminderDigestUseCase(data DataService, events ReminderPublisher, loc *time.Location, logger *zap.Logger) *ReminderDigestUseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReminderDigestUseCase{Data: data, Events: events, Location: loc, Logger: logger}
}

// Scan publishes one event per unannounced reminder due in (from, until]
// and returns how many were published. Callers pass the previous until as
// the next from so consecutive windows leave no gap.
func (uc *ReminderDigestUseCase) Scan(ctx context.Context, from, until time.Time) (int, error) {
	records, err := uc.Data.GetRecords(ctx, creator.Query{
		Report:   ReportReminders,
		Criteria: creator.Eq("Status", entity.ReminderStatusPending),
	})
	if creator.IsNoRecords(err) {
		return 0, nil
	}
	if err != nil {
		return 0, apiFailure("Failed to load reminders", err)
	}

	published := 0
	for _, r := range records {
		reminder := reminderFromRecord(r)
		if reminder.Notified || reminder.AssigneeEmail == "" {
			continue
		}
		due, err := entity.ParseTimestamp(reminder.Due, uc.Location)
		if err != nil {
			uc.Logger.Debug("reminder without a readable due date", zap.String("reminder_id", reminder.ID))
			continue
		}
		if !due.After(from) || due.After(until) {
			continue
		}

		event := queue.ReminderDueEvent{
			ReminderID:    reminder.ID,
			RecordID:      reminder.RecordID,
			Module:        reminder.Module,
			Title:         reminder.Title,
			Due:           reminder.Due,
			AssigneeEmail: reminder.AssigneeEmail,
		}
		if err := uc.Events.PublishReminderDue(ctx, event); err != nil {
			uc.Logger.Warn("⚠️ reminder event not published", zap.String("reminder_id", reminder.ID), zap.Error(err))
			continue
		}
		published++

		if err := uc.Data.UpdateRecordByID(ctx, ReportReminders, reminder.ID, creator.Fields{FieldReminderSent: true}); err != nil {
			uc.Logger.Warn("⚠️ reminder announced but not flagged", zap.String("reminder_id", reminder.ID), zap.Error(err))
		}
	}
	return published, nil
}
