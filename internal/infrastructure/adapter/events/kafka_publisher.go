package events

import (
	"context"
	"encoding/json"

	"github.com/segmentio/kafka-go"

	coreport "github.com/yorby-ai/entitlement-service/internal/domain/port/core"
	eventport "github.com/yorby-ai/entitlement-service/internal/domain/port/events"
)

// Config holds Kafka producer settings
type Config struct {
	Brokers       []string `mapstructure:"kafka_brokers"`
	UnlockTopic   string   `mapstructure:"kafka_unlock_topic"`
	IncidentTopic string   `mapstructure:"kafka_incident_topic"`
	CreditTopic   string   `mapstructure:"kafka_credit_topic"`
}

// DefaultConfig returns Kafka settings with default topic names
func DefaultConfig() *Config {
	return &Config{
		UnlockTopic:   "entitlement.unlocks",
		IncidentTopic: "entitlement.incidents",
		CreditTopic:   "entitlement.credits",
	}
}

// KafkaPublisher implements the Publisher port using an async kafka-go writer.
// Messages are keyed by user id so per-user event order is preserved.
type KafkaPublisher struct {
	writer *kafka.Writer
	config *Config
	logger coreport.Logger
}

// NewKafkaPublisher creates a publisher backed by the given brokers
func NewKafkaPublisher(cfg *Config, logger coreport.Logger) *KafkaPublisher {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Balancer:     &kafka.LeastBytes{},
		Async:        true,
		RequiredAcks: kafka.RequireOne,
	}
	return &KafkaPublisher{
		writer: writer,
		config: cfg,
		logger: logger,
	}
}

// PublishUnlockCompleted emits a successful unlock to the unlock topic
func (p *KafkaPublisher) PublishUnlockCompleted(ctx context.Context, event eventport.UnlockCompletedEvent) error {
	return p.send(ctx, p.config.UnlockTopic, event.UserID, event)
}

// PublishUnlockIncident emits an operator alert to the incident topic
func (p *KafkaPublisher) PublishUnlockIncident(ctx context.Context, event eventport.UnlockIncidentEvent) error {
	return p.send(ctx, p.config.IncidentTopic, event.UserID, event)
}

// PublishCreditsGranted emits a credit grant to the credit topic
func (p *KafkaPublisher) PublishCreditsGranted(ctx context.Context, event eventport.CreditsGrantedEvent) error {
	return p.send(ctx, p.config.CreditTopic, event.UserID, event)
}

func (p *KafkaPublisher) send(ctx context.Context, topic string, key string, event any) error {
	value, err := json.Marshal(event)
	if err != nil {
		p.logger.Error("Failed to marshal event", map[string]any{
			"topic": topic,
			"error": err.Error(),
		})
		return err
	}

	msg := kafka.Message{
		Topic: topic,
		Key:   []byte(key),
		Value: value,
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		p.logger.Error("Failed to send Kafka message", map[string]any{
			"topic": topic,
			"key":   key,
			"error": err.Error(),
		})
		return err
	}

	p.logger.Debug("Kafka message sent", map[string]any{
		"topic": topic,
		"key":   key,
	})
	return nil
}

// Close flushes pending messages and closes the writer
func (p *KafkaPublisher) Close() error {
	if err := p.writer.Close(); err != nil {
		p.logger.Error("Failed to close Kafka writer", map[string]any{"error": err.Error()})
		return err
	}
	p.logger.Info("Kafka writer closed", nil)
	return nil
}
