package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// ConversionEvent is published once a lead became a contact.
type ConversionEvent struct {
	LeadID      string    `json:"lead_id"`
	LeadName    string    `json:"lead_name"`
	Company     string    `json:"company,omitempty"`
	OwnerEmail  string    `json:"owner_email,omitempty"`
	AccountID   string    `json:"account_id,omitempty"`
	ContactID   string    `json:"contact_id"`
	DealID      string    `json:"deal_id"`
	Outcome     string    `json:"outcome"`
	ConvertedAt time.Time `json:"converted_at"`
}

// ReminderDueEvent is published when a pending reminder enters its window.
type ReminderDueEvent struct {
	ReminderID    string `json:"reminder_id"`
	RecordID      string `json:"record_id"`
	Module        string `json:"module"`
	Title         string `json:"title"`
	Due           string `json:"due"`
	AssigneeEmail string `json:"assignee_email"`
}

// Publisher is the part of *amqp.Channel the producer needs.
type Publisher interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

type RabbitMQProducer struct {
	Ch Publisher
}

func NewProducer(ch Publisher) *RabbitMQProducer {
	return &RabbitMQProducer{Ch: ch}
}

func (p *RabbitMQProducer) PublishConversion(ctx context.Context, event ConversionEvent) error {
	return p.publish(ctx, RoutingKeyConverted, event.LeadID, event)
}

func (p *RabbitMQProducer) PublishReminderDue(ctx context.Context, event ReminderDueEvent) error {
	return p.publish(ctx, RoutingKeyReminderDue, event.ReminderID, event)
}

func (p *RabbitMQProducer) publish(ctx context.Context, key, messageID string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", key, err)
	}

	err = p.Ch.PublishWithContext(ctx,
		ExchangeName,
		key,
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			MessageId:    messageID,
			Timestamp:    time.Now(),
			Body:         body,
			DeliveryMode: amqp.Persistent,
		},
	)
	if err != nil {
		return fmt.Errorf("publish %s: %w", key, err)
	}
	return nil
}
