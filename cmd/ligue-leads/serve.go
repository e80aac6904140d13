package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/xavierca1/ligue-leads/internal/infra/http/handlers"
	"github.com/xavierca1/ligue-leads/internal/infra/http/middleware"
	"github.com/xavierca1/ligue-leads/internal/usecase"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		return runServe(ctx)
	},
}

func runServe(ctx context.Context) error {
	a, err := newApp(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer a.Close()

	loc := cfg.Location()
	data := a.client

	health := handlers.NewHealthHandler(a.db, nil, nil, cfg.CreatorConfigured())
	if a.mq != nil {
		health.RabbitMQ = a.mq.Conn
	}
	if a.cache != nil {
		health.Redis = a.cache.Redis
	}

	router := handlers.NewRouter(handlers.RouterConfig{
		Leads: handlers.NewLeadHandler(
			usecase.NewListLeadsUseCase(data, loc),
			usecase.NewLeadDetailUseCase(data, loc, logger),
			usecase.NewUpdateLeadUseCase(data, loc, logger, cfg.PhoneRegion),
			usecase.NewChangeLeadStatusUseCase(data, logger),
			a.convertLead(),
			logger,
		),
		Meetings: &handlers.MeetingHandler{
			ListUC:        usecase.NewListMeetingsUseCase(data, loc),
			ScheduleUC:    usecase.NewScheduleMeetingUseCase(data, loc, logger),
			EditUC:        usecase.NewEditMeetingUseCase(data, loc, logger),
			StatusUC:      usecase.NewChangeMeetingStatusUseCase(data, logger),
			ListRemarksUC: usecase.NewListRemarksUseCase(data, loc),
			AddRemarkUC:   usecase.NewAddRemarkUseCase(data, loc, logger),
			Logger:        logger,
		},
		Related: &handlers.RelatedHandler{
			Attachments: usecase.NewAttachmentsUseCase(data, logger),
			Notes:       usecase.NewNotesUseCase(data, logger),
			Reminders:   usecase.NewRemindersUseCase(data, loc, logger),
			Logger:      logger,
		},
		Lookups: &handlers.LookupHandler{
			UC:     usecase.NewLookupsUseCase(data, a.lookupCache(), logger),
			Logger: logger,
		},
		Health:      health,
		CORSOrigins: cfg.CORSOrigins,
		Limiter:     middleware.NewRateLimiter(cfg.RateLimitPerMinute),
	})

	srv := &http.Server{
		Addr:              ":" + cfg.APIPort,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("🔥 ligue-leads API listening", zap.String("addr", srv.Addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logger.Info("⚠️ shutting down API")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
