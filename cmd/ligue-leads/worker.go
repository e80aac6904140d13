package main

import (
	"context"
	"errors"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/xavierca1/ligue-leads/internal/infra/mail"
	"github.com/xavierca1/ligue-leads/internal/infra/queue"
	"github.com/xavierca1/ligue-leads/internal/infra/worker"
	"github.com/xavierca1/ligue-leads/internal/usecase"
)

var workerCmd = &cobra.Command{
	Use:   "worker",
	Short: "Send conversion notices and reminder digests",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		return runWorker(ctx)
	},
}

func runWorker(ctx context.Context) error {
	a, err := newApp(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer a.Close()

	if a.mq == nil {
		return errors.New("RABBITMQ_URL is required for the worker")
	}

	sender := mail.NewEmailSender(cfg.MailHost, cfg.MailPort, cfg.MailUser, cfg.MailPass, cfg.MailFrom, logger.Named("mail"))
	digest := usecase.NewReminderDigestUseCase(a.client, a.producer, cfg.Location(), logger.Named("reminders"))

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return queue.NewWorker(a.mq.Ch, sender, logger.Named("queue")).Start(ctx, queue.QueueName)
	})
	g.Go(func() error {
		worker.NewReminderWorker(digest, cfg.ReminderTick, logger.Named("reminders")).Start(ctx)
		return nil
	})

	logger.Info("🐇 worker running", zap.String("queue", queue.QueueName))
	return g.Wait()
}
