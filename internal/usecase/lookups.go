package usecase

import (
	"context"
	"sort"

	"go.uber.org/zap"

	"github.com/xavierca1/ligue-leads/internal/entity"
	"github.com/xavierca1/ligue-leads/internal/infra/integration/creator"
)

// lookupReports maps a lookup kind to the report holding its records and
// the field used as display value.
var lookupReports = map[string]struct {
	Report string
	Field  string
}{
	"industries": {Report: "All_Industries", Field: "Industry_Name"},
	"profiles":   {Report: "All_Profiles", Field: "Profile_Name"},
	"stacks":     {Report: "All_Stacks", Field: "Stack_Name"},
	"sources":    {Report: "All_Lead_Sources", Field: "Source_Name"},
}

func LookupKinds() []string {
	kinds := make([]string, 0, len(lookupReports))
	for k := range lookupReports {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)
	return kinds
}

// LookupsUseCase serves the option lists of the edit forms. The cache is
// optional and any cache error falls through to the platform.
type LookupsUseCase struct {
	Data   DataService
	Cache  LookupCache
	Logger *zap.Logger
}

func NewLookupsUseCase(data DataService, cache LookupCache, logger *zap.Logger) *LookupsUseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LookupsUseCase{Data: data, Cache: cache, Logger: logger}
}

func (uc *LookupsUseCase) Execute(ctx context.Context, kind string) ([]entity.Lookup, error) {
	source, ok := lookupReports[kind]
	if !ok {
		return nil, &DomainError{Code: CodeUnknownLookup, Message: "Unknown lookup list: " + kind}
	}

	if uc.Cache != nil {
		items, hit, err := uc.Cache.GetLookups(ctx, kind)
		if err != nil {
			uc.Logger.Warn("lookup cache read failed", zap.String("kind", kind), zap.Error(err))
		} else if hit {
			return items, nil
		}
	}

	records, err := uc.Data.GetRecords(ctx, creator.Query{Report: source.Report, SortField: source.Field})
	if err != nil && !creator.IsNoRecords(err) {
		return nil, apiFailure("Failed to load "+kind, err)
	}
	items := make([]entity.Lookup, 0, len(records))
	for _, r := range records {
		items = append(items, entity.Lookup{ID: r.ID(), DisplayValue: r.String(source.Field)})
	}

	if uc.Cache != nil {
		if err := uc.Cache.SetLookups(ctx, kind, items); err != nil {
			uc.Logger.Warn("lookup cache write failed", zap.String("kind", kind), zap.Error(err))
		}
	}
	return items, nil
}
