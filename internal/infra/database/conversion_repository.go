package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/xavierca1/ligue-leads/internal/entity"
)

const conversionSchema = `
	CREATE TABLE IF NOT EXISTS lead_conversions (
		lead_id    TEXT PRIMARY KEY,
		run_id     TEXT NOT NULL,
		account_id TEXT,
		contact_id TEXT NOT NULL,
		deal_id    TEXT NOT NULL,
		stage      TEXT NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)
`

// ConversionRepository is the postgres ledger of conversion runs.
type ConversionRepository struct {
	DB *sql.DB
}

func NewConversionRepository(db *sql.DB) *ConversionRepository {
	return &ConversionRepository{DB: db}
}

func (r *ConversionRepository) EnsureSchema(ctx context.Context) error {
	if _, err := r.DB.ExecContext(ctx, conversionSchema); err != nil {
		return fmt.Errorf("create lead_conversions: %w", err)
	}
	return nil
}

func (r *ConversionRepository) Find(ctx context.Context, leadID string) (*entity.ConversionRecord, error) {
	query := `
		SELECT lead_id, run_id, account_id, contact_id, deal_id, stage, updated_at
		FROM lead_conversions
		WHERE lead_id = $1
	`

	var rec entity.ConversionRecord
	var accountID sql.NullString
	err := r.DB.QueryRowContext(ctx, query, leadID).Scan(
		&rec.LeadID,
		&rec.RunID,
		&accountID,
		&rec.ContactID,
		&rec.DealID,
		&rec.Stage,
		&rec.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find conversion of %s: %w", leadID, err)
	}
	rec.AccountID = accountID.String
	return &rec, nil
}

// Save upserts the run. A later run for the same lead replaces the earlier
// one.
func (r *ConversionRepository) Save(ctx context.Context, rec *entity.ConversionRecord) error {
	query := `
		INSERT INTO lead_conversions (lead_id, run_id, account_id, contact_id, deal_id, stage, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())
		ON CONFLICT (lead_id)
		DO UPDATE SET
			run_id = EXCLUDED.run_id,
			account_id = EXCLUDED.account_id,
			contact_id = EXCLUDED.contact_id,
			deal_id = EXCLUDED.deal_id,
			stage = EXCLUDED.stage,
			updated_at = NOW()
		RETURNING updated_at
	`

	err := r.DB.QueryRowContext(ctx, query,
		rec.LeadID,
		rec.RunID,
		nullString(rec.AccountID),
		rec.ContactID,
		rec.DealID,
		string(rec.Stage),
	).Scan(&rec.UpdatedAt)
	if err != nil {
		return fmt.Errorf("save conversion of %s: %w", rec.LeadID, err)
	}
	return nil
}

func nullString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
