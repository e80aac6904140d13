package entity

import (
	"context"
	"time"
)

type ConversionStage string

const (
	ConversionStageCreated   ConversionStage = "created"
	ConversionStageRelinked  ConversionStage = "relinked"
	ConversionStageCompleted ConversionStage = "completed"
)

// ConversionRecord tracks the records a conversion run produced, so a run
// that stopped after creation can be resumed without duplicating them.
type ConversionRecord struct {
	LeadID    string          `json:"lead_id"`
	RunID     string          `json:"run_id"`
	AccountID string          `json:"account_id,omitempty"`
	ContactID string          `json:"contact_id"`
	DealID    string          `json:"deal_id"`
	Stage     ConversionStage `json:"stage"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// Resumable reports whether creation finished but cleanup did not.
func (r *ConversionRecord) Resumable() bool {
	return r != nil && r.ContactID != "" && r.DealID != "" && r.Stage != ConversionStageCompleted
}

type ConversionLedger interface {
	// Find returns nil, nil when the lead has no recorded conversion.
	Find(ctx context.Context, leadID string) (*ConversionRecord, error)
	Save(ctx context.Context, rec *ConversionRecord) error
}
