package usecase

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/xavierca1/ligue-leads/internal/entity"
	"github.com/xavierca1/ligue-leads/internal/infra/integration/creator"
)

// fetchLead always reads the lead from the platform. Only a record carrying
// exactly the requested id is accepted.
func fetchLead(ctx context.Context, data DataService, id string, loc *time.Location) (*entity.Lead, error) {
	if strings.TrimSpace(id) == "" {
		return nil, validationFailure([]ValidationError{{Field: "lead_id", Message: "is required"}})
	}
	if !creator.IsRecordID(id) {
		return nil, notFound("Lead not found")
	}
	records, err := data.GetRecords(ctx, creator.Query{
		Report:     ReportLeads,
		Criteria:   creator.Eq("ID", id),
		MaxRecords: 1,
	})
	if creator.IsNoRecords(err) || (err == nil && (len(records) == 0 || records[0].ID() != id)) {
		return nil, notFound("Lead not found")
	}
	if err != nil {
		return nil, apiFailure("Failed to load lead", err)
	}
	return leadFromRecord(records[0], loc), nil
}

func nowFrom(clock func() time.Time) time.Time {
	if clock == nil {
		return time.Now()
	}
	return clock()
}

type ListLeadsInput struct {
	Status string `json:"status"`
	Limit  int    `json:"limit" validate:"gte=0,lte=1000"`
}

type ListLeadsUseCase struct {
	Data     DataService
	Location *time.Location
}

func NewListLeadsUseCase(data DataService, loc *time.Location) *ListLeadsUseCase {
	return &ListLeadsUseCase{Data: data, Location: loc}
}

// Execute returns leads newest first, optionally filtered by status.
func (uc *ListLeadsUseCase) Execute(ctx context.Context, input ListLeadsInput) ([]entity.Lead, error) {
	errs := validateInput(input)
	q := creator.Query{
		Report:     ReportLeads,
		SortField:  "Added_Time",
		Descending: true,
		MaxRecords: input.Limit,
	}
	if input.Status != "" {
		status, ok := entity.ParseLeadStatus(input.Status)
		if !ok {
			errs = append(errs, ValidationError{Field: "status", Message: "is not a known lead status"})
		}
		q.Criteria = creator.Eq("Lead_Status", string(status))
	}
	if err := validationFailure(errs); err != nil {
		return nil, err
	}

	records, err := uc.Data.GetRecords(ctx, q)
	if creator.IsNoRecords(err) {
		return []entity.Lead{}, nil
	}
	if err != nil {
		return nil, apiFailure("Failed to load leads", err)
	}
	leads := make([]entity.Lead, 0, len(records))
	for _, r := range records {
		leads = append(leads, *leadFromRecord(r, uc.Location))
	}
	return leads, nil
}

// LeadDetail is a lead with its four panels. A panel that failed to load is
// empty and named in PanelErrors; the others are still returned.
type LeadDetail struct {
	Lead        *entity.Lead        `json:"lead"`
	Meetings    []MeetingView       `json:"meetings"`
	Attachments []entity.Attachment `json:"attachments"`
	Notes       []entity.Note       `json:"notes"`
	Reminders   []entity.Reminder   `json:"reminders"`
	PanelErrors map[string]string   `json:"panel_errors,omitempty"`
}

type LeadDetailUseCase struct {
	Data     DataService
	Location *time.Location
	Logger   *zap.Logger
	Now      func() time.Time
}

func NewLeadDetailUseCase(data DataService, loc *time.Location, logger *zap.Logger) *LeadDetailUseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LeadDetailUseCase{Data: data, Location: loc, Logger: logger}
}

func (uc *LeadDetailUseCase) Execute(ctx context.Context, leadID string) (*LeadDetail, error) {
	lead, err := fetchLead(ctx, uc.Data, leadID, uc.Location)
	if err != nil {
		return nil, err
	}

	detail := &LeadDetail{Lead: lead}
	panels := map[string]func(context.Context) error{
		"meetings": func(ctx context.Context) (err error) {
			detail.Meetings, err = listMeetings(ctx, uc.Data, leadID, uc.Location, nowFrom(uc.Now))
			return err
		},
		"attachments": func(ctx context.Context) (err error) {
			detail.Attachments, err = listAttachments(ctx, uc.Data, leadID)
			return err
		},
		"notes": func(ctx context.Context) (err error) {
			detail.Notes, err = listNotes(ctx, uc.Data, leadID)
			return err
		},
		"reminders": func(ctx context.Context) (err error) {
			detail.Reminders, err = listReminders(ctx, uc.Data, leadID)
			return err
		},
	}

	failures := make(chan [2]string, len(panels))
	var g errgroup.Group
	for name, load := range panels {
		g.Go(func() error {
			if err := load(ctx); err != nil {
				uc.Logger.Warn("⚠️ panel failed to load", zap.String("lead_id", leadID), zap.String("panel", name), zap.Error(err))
				failures <- [2]string{name, "Failed to load " + name}
			}
			return nil
		})
	}
	_ = g.Wait()
	close(failures)

	for f := range failures {
		if detail.PanelErrors == nil {
			detail.PanelErrors = make(map[string]string)
		}
		detail.PanelErrors[f[0]] = f[1]
	}
	return detail, nil
}

// UpdateLeadInput carries a field-level edit. Nil fields are left untouched.
type UpdateLeadInput struct {
	LeadID     string  `json:"-" validate:"required"`
	FirstName  *string `json:"first_name" validate:"omitempty,notblank,max=100"`
	LastName   *string `json:"last_name" validate:"omitempty,notblank,max=100"`
	Email      *string `json:"email" validate:"omitempty,email"`
	Phone      *string `json:"phone"`
	Company    *string `json:"company" validate:"omitempty,max=200"`
	Website    *string `json:"website" validate:"omitempty,url"`
	JobTitle   *string `json:"job_title" validate:"omitempty,max=150"`
	Experience *string `json:"experience" validate:"omitempty,max=50"`
	Rating     *string `json:"rating" validate:"omitempty,max=20"`
	IndustryID *string `json:"industry_id"`
	ProfileID  *string `json:"profile_id"`
	StackID    *string `json:"stack_id"`
}

type UpdateLeadUseCase struct {
	Data        DataService
	Location    *time.Location
	Logger      *zap.Logger
	PhoneRegion string
}

func NewUpdateLeadUseCase(data DataService, loc *time.Location, logger *zap.Logger, phoneRegion string) *UpdateLeadUseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UpdateLeadUseCase{Data: data, Location: loc, Logger: logger, PhoneRegion: phoneRegion}
}

// Execute submits only the provided fields and returns the lead as stored
// afterwards.
func (uc *UpdateLeadUseCase) Execute(ctx context.Context, input UpdateLeadInput) (*entity.Lead, error) {
	errs := validateInput(input)

	fields := creator.Fields{}
	if input.FirstName != nil || input.LastName != nil {
		current, err := fetchLead(ctx, uc.Data, input.LeadID, uc.Location)
		if err != nil {
			return nil, err
		}
		first, last := current.FirstName, current.LastName
		if input.FirstName != nil {
			first = strings.TrimSpace(*input.FirstName)
		}
		if input.LastName != nil {
			last = strings.TrimSpace(*input.LastName)
		}
		fields["Name"] = nameFields(first, last)
	}
	if input.Phone != nil {
		if strings.TrimSpace(*input.Phone) == "" {
			fields["Phone_Number"] = ""
		} else if phone, err := normalizePhone(*input.Phone, uc.PhoneRegion); err != nil {
			errs = append(errs, ValidationError{Field: "phone", Message: "must be a valid phone number"})
		} else {
			fields["Phone_Number"] = phone
		}
	}
	if err := validationFailure(errs); err != nil {
		return nil, err
	}

	setString(fields, "Email", input.Email)
	setString(fields, "Company", input.Company)
	setString(fields, "Website", input.Website)
	setString(fields, "Job_Title", input.JobTitle)
	setString(fields, "Experience", input.Experience)
	setString(fields, "Rating", input.Rating)
	setLookup(fields, "Industry", input.IndustryID)
	setLookup(fields, "Profile", input.ProfileID)
	setLookup(fields, "Stack", input.StackID)

	if len(fields) == 0 {
		return nil, validationFailure([]ValidationError{{Field: "input", Message: "no fields to update"}})
	}

	if err := uc.Data.UpdateRecordByID(ctx, ReportLeads, input.LeadID, fields); err != nil {
		return nil, apiFailure("Failed to update lead", err)
	}
	uc.Logger.Info("✏️ lead updated", zap.String("lead_id", input.LeadID), zap.Int("fields", len(fields)))
	return fetchLead(ctx, uc.Data, input.LeadID, uc.Location)
}

func setString(fields creator.Fields, key string, v *string) {
	if v != nil {
		fields[key] = strings.TrimSpace(*v)
	}
}

func setLookup(fields creator.Fields, key string, v *string) {
	if v != nil {
		fields[key] = idOrNil(strings.TrimSpace(*v))
	}
}

type ChangeLeadStatusUseCase struct {
	Data   DataService
	Logger *zap.Logger
}

func NewChangeLeadStatusUseCase(data DataService, logger *zap.Logger) *ChangeLeadStatusUseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ChangeLeadStatusUseCase{Data: data, Logger: logger}
}

// Execute sets the lead status. Converted is reserved for the conversion
// workflow.
func (uc *ChangeLeadStatusUseCase) Execute(ctx context.Context, leadID, status string) (entity.LeadStatus, error) {
	var errs []ValidationError
	if strings.TrimSpace(leadID) == "" {
		errs = append(errs, ValidationError{Field: "lead_id", Message: "is required"})
	}
	parsed, ok := entity.ParseLeadStatus(status)
	switch {
	case !ok:
		errs = append(errs, ValidationError{Field: "status", Message: "is not a known lead status"})
	case parsed == entity.LeadStatusConverted:
		errs = append(errs, ValidationError{Field: "status", Message: "is set by converting the lead"})
	}
	if err := validationFailure(errs); err != nil {
		return "", err
	}

	if err := uc.Data.UpdateRecordByID(ctx, ReportLeads, leadID, creator.Fields{"Lead_Status": string(parsed)}); err != nil {
		return "", apiFailure("Failed to update lead status", err)
	}
	uc.Logger.Info("lead status changed", zap.String("lead_id", leadID), zap.String("status", string(parsed)))
	return parsed, nil
}
