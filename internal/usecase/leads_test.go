package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/xavierca1/ligue-leads/internal/entity"
	"github.com/xavierca1/ligue-leads/internal/infra/integration/creator"
)

func strPtr(s string) *string { return &s }

func TestListLeadsFiltersByStatus(t *testing.T) {
	data := newFakeData()
	data.records[ReportLeads] = []creator.Record{leadRecord(leadFixture{ID: "1001", Status: "Qualified"})}

	leads, err := NewListLeadsUseCase(data, time.UTC).Execute(context.Background(), ListLeadsInput{Status: "qualified"})
	require.NoError(t, err)
	require.Len(t, leads, 1)
	assert.Equal(t, entity.LeadStatusQualified, leads[0].Status)
	assert.Equal(t, "SaaS", leads[0].Industry.DisplayValue)

	_, err = NewListLeadsUseCase(data, time.UTC).Execute(context.Background(), ListLeadsInput{Status: "warm"})
	assert.True(t, IsValidationFailure(err))
}

func TestListLeadsEmpty(t *testing.T) {
	leads, err := NewListLeadsUseCase(newFakeData(), time.UTC).Execute(context.Background(), ListLeadsInput{})
	require.NoError(t, err)
	assert.Empty(t, leads)
}

func TestLeadDetailPanelsFailIndependently(t *testing.T) {
	data := newFakeData()
	data.records[ReportLeads] = []creator.Record{leadRecord(leadFixture{Status: "New", Company: "Acme"})}
	data.records[ReportNotes] = []creator.Record{{"ID": "N1", "Content": "hello"}}
	data.getErr[ReportAttachments] = apiErr("getRecords", 2945)

	detail, err := NewLeadDetailUseCase(data, time.UTC, zap.NewNop()).Execute(context.Background(), "1001")
	require.NoError(t, err)
	assert.Equal(t, "Acme", detail.Lead.Company)
	assert.Len(t, detail.Notes, 1)
	assert.Empty(t, detail.Meetings)
	assert.Empty(t, detail.Reminders)
	assert.Equal(t, map[string]string{"attachments": "Failed to load attachments"}, detail.PanelErrors)
}

func TestUpdateLeadSendsOnlyGivenFields(t *testing.T) {
	data := newFakeData()
	data.records[ReportLeads] = []creator.Record{leadRecord(leadFixture{Status: "New"})}
	uc := NewUpdateLeadUseCase(data, time.UTC, zap.NewNop(), "BR")

	_, err := uc.Execute(context.Background(), UpdateLeadInput{
		LeadID:     "1001",
		Phone:      strPtr("(11) 96123-4567"),
		Company:    strPtr(" Acme "),
		IndustryID: strPtr(""),
	})
	require.NoError(t, err)

	update := data.WritesTo("update", ReportLeads)[0]
	assert.Equal(t, creator.Fields{
		"Phone_Number": "+5511961234567",
		"Company":      "Acme",
		"Industry":     nil,
	}, update.Fields)
}

func TestUpdateLeadRejectsInvalidInput(t *testing.T) {
	data := newFakeData()
	uc := NewUpdateLeadUseCase(data, time.UTC, zap.NewNop(), "US")

	_, err := uc.Execute(context.Background(), UpdateLeadInput{
		LeadID: "1001",
		Email:  strPtr("not-an-email"),
		Phone:  strPtr("12"),
	})
	var vf *ValidationFailure
	require.ErrorAs(t, err, &vf)
	assert.ElementsMatch(t, []ValidationError{
		{Field: "email", Message: "is invalid"},
		{Field: "phone", Message: "must be a valid phone number"},
	}, vf.Errors)
	assert.Empty(t, data.Writes())
}

func TestUpdateLeadNameKeepsOtherHalf(t *testing.T) {
	data := newFakeData()
	rec := leadRecord(leadFixture{Status: "New"})
	rec["Name"] = map[string]any{"first_name": "Ada", "last_name": "Byron"}
	data.records[ReportLeads] = []creator.Record{rec}

	_, err := NewUpdateLeadUseCase(data, time.UTC, nil, "").Execute(context.Background(), UpdateLeadInput{LeadID: "1001", LastName: strPtr("Lovelace")})
	require.NoError(t, err)
	update := data.WritesTo("update", ReportLeads)[0]
	assert.Equal(t, map[string]any{"first_name": "Ada", "last_name": "Lovelace"}, update.Fields["Name"])
}

func TestChangeLeadStatus(t *testing.T) {
	data := newFakeData()
	uc := NewChangeLeadStatusUseCase(data, zap.NewNop())

	status, err := uc.Execute(context.Background(), "1001", "follow-up required")
	require.NoError(t, err)
	assert.Equal(t, entity.LeadStatusFollowUpRequired, status)
	assert.Equal(t, creator.Fields{"Lead_Status": "Follow-Up Required"}, data.WritesTo("update", ReportLeads)[0].Fields)

	_, err = uc.Execute(context.Background(), "1001", "Converted")
	assert.True(t, IsValidationFailure(err))
	assert.Len(t, data.Writes(), 1)
}
