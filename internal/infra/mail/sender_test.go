package mail

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gopkg.in/gomail.v2"

	"github.com/xavierca1/ligue-leads/internal/infra/queue"
)

type fakeDialer struct {
	sent []*gomail.Message
	err  error
}

func (d *fakeDialer) DialAndSend(m ...*gomail.Message) error {
	if d.err != nil {
		return d.err
	}
	d.sent = append(d.sent, m...)
	return nil
}

func newTestSender(d *fakeDialer) *EmailSender {
	return &EmailSender{From: "no-reply@ligue.dev", Dialer: d, Logger: zap.NewNop()}
}

func messageBody(t *testing.T, m *gomail.Message) string {
	t.Helper()
	var buf bytes.Buffer
	_, err := m.WriteTo(&buf)
	require.NoError(t, err)
	return buf.String()
}

func TestNotifyConversionSendsToOwner(t *testing.T) {
	dialer := &fakeDialer{}
	sender := newTestSender(dialer)

	err := sender.NotifyConversion(context.Background(), queue.ConversionEvent{
		LeadID:     "L1",
		LeadName:   "Ada Lovelace",
		Company:    "Analytical Engines",
		OwnerEmail: "owner@ligue.dev",
		ContactID:  "C1",
		DealID:     "D1",
		Outcome:    "partial_success",
	})
	require.NoError(t, err)
	require.Len(t, dialer.sent, 1)

	m := dialer.sent[0]
	assert.Equal(t, []string{"owner@ligue.dev"}, m.GetHeader("To"))
	assert.Equal(t, []string{"Lead converted: Ada Lovelace"}, m.GetHeader("Subject"))
	assert.Contains(t, messageBody(t, m), "Analytical Engines")
}

func TestRenderConversionMentionsCleanupOnPartialSuccess(t *testing.T) {
	partial, err := render("conversion.html", ConversionEmailData{LeadName: "Ada", ContactID: "C1", DealID: "D1", Partial: true})
	require.NoError(t, err)
	assert.Contains(t, partial, "still needs cleanup")

	full, err := render("conversion.html", ConversionEmailData{LeadName: "Ada", ContactID: "C1", DealID: "D1"})
	require.NoError(t, err)
	assert.NotContains(t, full, "still needs cleanup")
	assert.NotContains(t, full, "Account:")
}

func TestNotifyConversionWithoutOwnerIsSkipped(t *testing.T) {
	dialer := &fakeDialer{}
	require.NoError(t, newTestSender(dialer).NotifyConversion(context.Background(), queue.ConversionEvent{LeadID: "L1"}))
	assert.Empty(t, dialer.sent)
}

func TestNotifyReminderDue(t *testing.T) {
	dialer := &fakeDialer{}
	err := newTestSender(dialer).NotifyReminderDue(context.Background(), queue.ReminderDueEvent{
		ReminderID:    "R1",
		Title:         "Send contract",
		Due:           "09-Jan-2025 16:45:00",
		AssigneeEmail: "rep@ligue.dev",
	})
	require.NoError(t, err)
	require.Len(t, dialer.sent, 1)
	assert.Contains(t, messageBody(t, dialer.sent[0]), "09-Jan-2025 16:45:00")
}

func TestSendErrorIsWrapped(t *testing.T) {
	boom := errors.New("smtp refused")
	err := newTestSender(&fakeDialer{err: boom}).NotifyReminderDue(context.Background(), queue.ReminderDueEvent{AssigneeEmail: "rep@ligue.dev"})
	assert.ErrorIs(t, err, boom)
}

func TestRenderEscapesUserInput(t *testing.T) {
	body, err := render("reminder.html", ReminderEmailData{Title: "<script>x</script>"})
	require.NoError(t, err)
	assert.NotContains(t, body, "<script>")
}
