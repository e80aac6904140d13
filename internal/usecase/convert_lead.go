package usecase

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/xavierca1/ligue-leads/internal/entity"
	"github.com/xavierca1/ligue-leads/internal/infra/integration/creator"
	"github.com/xavierca1/ligue-leads/internal/infra/queue"
)

type ConversionOutcome string

const (
	OutcomeValidationFailed ConversionOutcome = "validation_failed"
	OutcomeFailed           ConversionOutcome = "failed"
	OutcomePartialSuccess   ConversionOutcome = "partial_success"
	OutcomeSuccess          ConversionOutcome = "success"
)

type ConversionStep string

const (
	StepAccount ConversionStep = "account"
	StepContact ConversionStep = "contact"
	StepDeal    ConversionStep = "deal"
)

var stepFailureMessages = map[ConversionStep]string{
	StepAccount: "Failed to create account",
	StepContact: "Failed to create contact",
	StepDeal:    "Failed to create deal",
}

type ConvertLeadOutput struct {
	Outcome        ConversionOutcome `json:"outcome"`
	Message        string            `json:"message"`
	Violations     []string          `json:"violations,omitempty"`
	FailedStep     ConversionStep    `json:"failed_step,omitempty"`
	AccountID      string            `json:"account_id,omitempty"`
	Contact        *entity.Contact   `json:"contact,omitempty"`
	DealID         string            `json:"deal_id,omitempty"`
	Relinked       map[string]int    `json:"relinked,omitempty"`
	RelinkFailures map[string]int    `json:"relink_failures,omitempty"`
	Orphans        []string          `json:"orphans,omitempty"`
	Resumed        bool              `json:"resumed,omitempty"`
}

// relatedCategory is a kind of record hanging off a lead that moves to the
// new contact on conversion.
type relatedCategory struct {
	Name   string
	Report string
}

var relatedCategories = []relatedCategory{
	{Name: "Attachments", Report: ReportAttachments},
	{Name: "Notes", Report: ReportNotes},
	{Name: "Reminders", Report: ReportReminders},
	{Name: "Meetings", Report: ReportMeetings},
}

type ConvertLeadUseCase struct {
	Data     DataService
	Ledger   entity.ConversionLedger // optional
	Events   EventPublisher          // optional
	Logger   *zap.Logger
	Location *time.Location

	// Compensate deletes records created earlier in a run when a later
	// creation step fails.
	Compensate bool

	mu       sync.Mutex
	inflight map[string]struct{}
}

func NewConvertLeadUseCase(data DataService, ledger entity.ConversionLedger, events EventPublisher, logger *zap.Logger, loc *time.Location, compensate bool) *ConvertLeadUseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ConvertLeadUseCase{
		Data:       data,
		Ledger:     ledger,
		Events:     events,
		Logger:     logger,
		Location:   loc,
		Compensate: compensate,
		inflight:   make(map[string]struct{}),
	}
}

// Execute converts a lead into account, contact and deal records. Every
// terminal state is reported through the output; an error is only returned
// when the lead itself cannot be loaded or is already being converted.
func (uc *ConvertLeadUseCase) Execute(ctx context.Context, leadID string) (*ConvertLeadOutput, error) {
	if !uc.acquire(leadID) {
		return nil, &DomainError{Code: CodeInProgress, Message: "This lead is already being converted"}
	}
	defer uc.release(leadID)

	log := uc.Logger.With(zap.String("lead_id", leadID))

	// Always validate against the server copy, never a cached one.
	lead, err := fetchLead(ctx, uc.Data, leadID, uc.Location)
	if err != nil {
		return nil, err
	}

	if violations := lead.ConversionViolations(); len(violations) > 0 {
		log.Info("conversion rejected", zap.Strings("violations", violations))
		return &ConvertLeadOutput{
			Outcome:    OutcomeValidationFailed,
			Message:    "Lead is not ready for conversion",
			Violations: violations,
		}, nil
	}

	// Writes are not abortable once started.
	ctx = context.WithoutCancel(ctx)

	rec := uc.resumable(ctx, leadID, log)
	out := &ConvertLeadOutput{}
	var contact *entity.Contact

	if rec != nil {
		log.Info("🔁 resuming conversion", zap.String("run_id", rec.RunID), zap.String("contact_id", rec.ContactID))
		out.Resumed = true
		out.AccountID = rec.AccountID
		out.DealID = rec.DealID
		contact = entity.NewContactFromLead(lead, rec.AccountID)
		contact.ID = rec.ContactID
	} else {
		var failed *ConvertLeadOutput
		contact, failed = uc.create(ctx, lead, out, log)
		if failed != nil {
			return failed, nil
		}
		rec = &entity.ConversionRecord{
			LeadID:    leadID,
			RunID:     uuid.NewString(),
			AccountID: out.AccountID,
			ContactID: contact.ID,
			DealID:    out.DealID,
			Stage:     entity.ConversionStageCreated,
		}
		uc.record(ctx, rec, log)
	}
	out.Contact = contact

	out.Relinked, out.RelinkFailures = uc.relink(ctx, leadID, out.AccountID, contact.ID, out.DealID, log)
	rec.Stage = entity.ConversionStageRelinked
	uc.record(ctx, rec, log)

	if err := uc.Data.DeleteRecordByID(ctx, ReportLeads, leadID); err != nil {
		log.Warn("⚠️ lead converted but not deleted", zap.Error(err))
		out.Outcome = OutcomePartialSuccess
		out.Message = "Lead converted, but the original lead could not be deleted"
	} else {
		rec.Stage = entity.ConversionStageCompleted
		uc.record(ctx, rec, log)
		out.Outcome = OutcomeSuccess
		out.Message = "Lead converted successfully"
	}

	log.Info("✅ conversion finished",
		zap.String("outcome", string(out.Outcome)),
		zap.String("contact_id", contact.ID),
		zap.String("deal_id", out.DealID),
	)
	uc.publish(ctx, lead, out, log)
	return out, nil
}

// create runs account -> contact -> deal. On failure it returns the
// terminal output instead of the contact.
func (uc *ConvertLeadUseCase) create(ctx context.Context, lead *entity.Lead, out *ConvertLeadOutput, log *zap.Logger) (*entity.Contact, *ConvertLeadOutput) {
	txn := NewTransaction(log)
	var contact *entity.Contact
	ids := map[ConversionStep]string{}

	if lead.HasCompany() {
		txn.Add(string(StepAccount), func(ctx context.Context) error {
			id, err := uc.Data.AddRecords(ctx, FormAccounts, accountFields(entity.NewAccountFromLead(lead)))
			if err != nil {
				return err
			}
			ids[StepAccount] = id
			out.AccountID = id
			return nil
		}, uc.undo(ReportAccounts, ids, StepAccount))
	}

	txn.Add(string(StepContact), func(ctx context.Context) error {
		c := entity.NewContactFromLead(lead, out.AccountID)
		id, err := uc.Data.AddRecords(ctx, FormContacts, contactFields(c))
		if err != nil {
			return err
		}
		c.ID = id
		ids[StepContact] = id
		contact = c
		return nil
	}, uc.undo(ReportContacts, ids, StepContact))

	txn.Add(string(StepDeal), func(ctx context.Context) error {
		id, err := uc.Data.AddRecords(ctx, FormDeals, dealFields(entity.NewDealFromLead(lead, contact.ID, out.AccountID)))
		if err != nil {
			return err
		}
		out.DealID = id
		return nil
	}, nil)

	err := txn.Execute(ctx)
	if err == nil {
		return contact, nil
	}

	failure, _ := err.(*StepFailure)
	step := ConversionStep(failure.Step)
	log.Error("❌ conversion aborted", zap.String("step", failure.Step), zap.Error(failure.Err))

	var orphans []string
	for _, name := range failure.Unreverted {
		orphans = append(orphans, name+":"+ids[ConversionStep(name)])
	}
	return nil, &ConvertLeadOutput{
		Outcome:    OutcomeFailed,
		Message:    stepFailureMessages[step],
		FailedStep: step,
		Orphans:    orphans,
	}
}

func (uc *ConvertLeadUseCase) undo(report string, ids map[ConversionStep]string, step ConversionStep) func(context.Context) error {
	if !uc.Compensate {
		return nil
	}
	return func(ctx context.Context) error {
		return uc.Data.DeleteRecordByID(ctx, report, ids[step])
	}
}

// relink moves every related record from the lead to the new contact.
// Categories run one after another; records within a category are updated
// concurrently and each failure is logged and skipped.
func (uc *ConvertLeadUseCase) relink(ctx context.Context, leadID, accountID, contactID, dealID string, log *zap.Logger) (map[string]int, map[string]int) {
	updated := make(map[string]int)
	failed := make(map[string]int)

	fields := creator.Fields{
		FieldConverted: true,
		FieldDeal:      dealID,
		FieldRecordID:  contactID,
		FieldModule:    entity.ModuleContacts,
	}
	if accountID != "" {
		fields[FieldAccount] = accountID
	}

	for _, cat := range relatedCategories {
		records, err := uc.Data.GetRecords(ctx, creator.Query{
			Report:   cat.Report,
			Criteria: creator.Eq(FieldRecordID, leadID),
		})
		if err != nil {
			if !creator.IsNoRecords(err) {
				log.Warn("⚠️ could not load related records", zap.String("category", cat.Name), zap.Error(err))
				failed[cat.Name]++
			}
			continue
		}

		var (
			mu sync.Mutex
			g  errgroup.Group
		)
		for _, r := range records {
			id := r.ID()
			g.Go(func() error {
				err := uc.Data.UpdateRecordByID(ctx, cat.Report, id, fields)
				mu.Lock()
				defer mu.Unlock()
				if err != nil {
					log.Warn("⚠️ could not relink record", zap.String("category", cat.Name), zap.String("record_id", id), zap.Error(err))
					failed[cat.Name]++
					return nil
				}
				updated[cat.Name]++
				return nil
			})
		}
		_ = g.Wait()
	}
	return updated, failed
}

func (uc *ConvertLeadUseCase) resumable(ctx context.Context, leadID string, log *zap.Logger) *entity.ConversionRecord {
	if uc.Ledger == nil {
		return nil
	}
	rec, err := uc.Ledger.Find(ctx, leadID)
	if err != nil {
		log.Warn("⚠️ conversion ledger unavailable, starting fresh", zap.Error(err))
		return nil
	}
	if !rec.Resumable() {
		return nil
	}
	return rec
}

func (uc *ConvertLeadUseCase) record(ctx context.Context, rec *entity.ConversionRecord, log *zap.Logger) {
	if uc.Ledger == nil {
		return
	}
	rec.UpdatedAt = time.Now()
	if err := uc.Ledger.Save(ctx, rec); err != nil {
		log.Warn("⚠️ could not save conversion progress", zap.String("stage", string(rec.Stage)), zap.Error(err))
	}
}

func (uc *ConvertLeadUseCase) publish(ctx context.Context, lead *entity.Lead, out *ConvertLeadOutput, log *zap.Logger) {
	if uc.Events == nil {
		return
	}
	event := queue.ConversionEvent{
		LeadID:      lead.ID,
		LeadName:    lead.FullName(),
		Company:     lead.Company,
		OwnerEmail:  lead.Owner,
		AccountID:   out.AccountID,
		ContactID:   out.Contact.ID,
		DealID:      out.DealID,
		Outcome:     string(out.Outcome),
		ConvertedAt: time.Now(),
	}
	if err := uc.Events.PublishConversion(ctx, event); err != nil {
		log.Warn("⚠️ converted, but the conversion event was not published", zap.Error(err))
	}
}

func (uc *ConvertLeadUseCase) acquire(leadID string) bool {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	if uc.inflight == nil {
		uc.inflight = make(map[string]struct{})
	}
	if _, busy := uc.inflight[leadID]; busy {
		return false
	}
	uc.inflight[leadID] = struct{}{}
	return true
}

func (uc *ConvertLeadUseCase) release(leadID string) {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	delete(uc.inflight, leadID)
}
