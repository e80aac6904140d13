package main

import (
	"github.com/spf13/cobra"

	"github.com/xavierca1/ligue-leads/internal/ui/term"
	"github.com/xavierca1/ligue-leads/internal/usecase"
)

var termCmd = &cobra.Command{
	Use:   "term",
	Short: "Open the terminal front end",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		a, err := newApp(ctx, cfg, logger)
		if err != nil {
			return err
		}
		defer a.Close()

		loc := cfg.Location()
		data := a.client
		backend := &term.UseCases{
			Leads:         usecase.NewListLeadsUseCase(data, loc),
			Detail:        usecase.NewLeadDetailUseCase(data, loc, logger),
			Convert:       a.convertLead(),
			Meetings:      usecase.NewListMeetingsUseCase(data, loc),
			Schedule:      usecase.NewScheduleMeetingUseCase(data, loc, logger),
			MeetingStatus: usecase.NewChangeMeetingStatusUseCase(data, logger),
			Remarks:       usecase.NewListRemarksUseCase(data, loc),
			AddRemarks:    usecase.NewAddRemarkUseCase(data, loc, logger),
		}
		return term.NewProgram(ctx, backend, loc).Run()
	},
}
