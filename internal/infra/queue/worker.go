package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

// Notifier delivers the notices behind each event.
type Notifier interface {
	NotifyConversion(ctx context.Context, event ConversionEvent) error
	NotifyReminderDue(ctx context.Context, event ReminderDueEvent) error
}

var errMalformed = errors.New("malformed message")

type Worker struct {
	Channel  *amqp.Channel
	Notifier Notifier
	Logger   *zap.Logger
}

func NewWorker(ch *amqp.Channel, notifier Notifier, logger *zap.Logger) *Worker {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Worker{Channel: ch, Notifier: notifier, Logger: logger}
}

// Start consumes queueName until ctx is done or the channel closes.
func (w *Worker) Start(ctx context.Context, queueName string) error {
	msgs, err := w.Channel.ConsumeWithContext(ctx,
		queueName,
		"",    // consumer
		false, // manual ack
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,
	)
	if err != nil {
		return fmt.Errorf("register consumer: %w", err)
	}

	w.Logger.Info("👂 worker waiting for messages", zap.String("queue", queueName))
	for {
		select {
		case <-ctx.Done():
			w.Logger.Info("worker stopped")
			return nil
		case d, ok := <-msgs:
			if !ok {
				return errors.New("delivery channel closed")
			}
			w.handle(ctx, d)
		}
	}
}

func (w *Worker) handle(ctx context.Context, d amqp.Delivery) {
	log := w.Logger.With(zap.String("routing_key", d.RoutingKey), zap.String("message_id", d.MessageId))
	log.Debug("📥 message received")

	if err := w.processMessage(ctx, d.RoutingKey, d.Body); err != nil {
		// Notices are not retried; failed ones land in the dead letter queue.
		log.Error("❌ message rejected", zap.Error(err))
		_ = d.Nack(false, false)
		return
	}
	_ = d.Ack(false)
}

func (w *Worker) processMessage(ctx context.Context, routingKey string, body []byte) error {
	switch routingKey {
	case RoutingKeyConverted:
		var event ConversionEvent
		if err := json.Unmarshal(body, &event); err != nil {
			return fmt.Errorf("%w: %v", errMalformed, err)
		}
		w.Logger.Info("✉️ sending conversion notice", zap.String("lead_id", event.LeadID), zap.String("outcome", event.Outcome))
		return w.Notifier.NotifyConversion(ctx, event)

	case RoutingKeyReminderDue:
		var event ReminderDueEvent
		if err := json.Unmarshal(body, &event); err != nil {
			return fmt.Errorf("%w: %v", errMalformed, err)
		}
		w.Logger.Info("⏰ sending reminder notice", zap.String("reminder_id", event.ReminderID))
		return w.Notifier.NotifyReminderDue(ctx, event)

	default:
		// Unknown keys are acked so they do not clog the queue.
		w.Logger.Warn("⚠️ unknown routing key, dropping", zap.String("routing_key", routingKey))
		return nil
	}
}
