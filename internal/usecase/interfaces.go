package usecase

import (
	"context"

	"github.com/xavierca1/ligue-leads/internal/entity"
	"github.com/xavierca1/ligue-leads/internal/infra/integration/creator"
	"github.com/xavierca1/ligue-leads/internal/infra/queue"
)

// DataService is the platform's record API. Every use case receives it
// explicitly.
type DataService interface {
	GetRecords(ctx context.Context, q creator.Query) ([]creator.Record, error)
	AddRecords(ctx context.Context, form string, fields creator.Fields) (string, error)
	UpdateRecordByID(ctx context.Context, report, id string, fields creator.Fields) error
	DeleteRecordByID(ctx context.Context, report, id string) error
	InvokeCustomAPI(ctx context.Context, req creator.CustomAPIRequest) (*creator.CustomAPIResponse, error)
	UploadFile(ctx context.Context, up creator.FileUpload) error
}

type EventPublisher interface {
	PublishConversion(ctx context.Context, event queue.ConversionEvent) error
}

type ReminderPublisher interface {
	PublishReminderDue(ctx context.Context, event queue.ReminderDueEvent) error
}

// LookupCache stores lookup lists by kind. A miss is (nil, false, nil).
type LookupCache interface {
	GetLookups(ctx context.Context, kind string) ([]entity.Lookup, bool, error)
	SetLookups(ctx context.Context, kind string, items []entity.Lookup) error
}
