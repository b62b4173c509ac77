package events

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

type Producer interface {
	Publish(ctx context.Context, event AppointmentEvent) error
	Close() error
}

type KafkaProducer struct {
	writer *kafka.Writer
	logger *zap.Logger
}

func NewKafkaProducer(brokers, topic string, logger *zap.Logger) *KafkaProducer {
	writer := &kafka.Writer{
		Addr:     kafka.TCP(strings.Split(brokers, ",")...),
		Topic:    topic,
		Balancer: &kafka.LeastBytes{},
	}

	return &KafkaProducer{
		writer: writer,
		logger: logger,
	}
}

func (p *KafkaProducer) Publish(ctx context.Context, event AppointmentEvent) error {
	eventBytes, err := json.Marshal(event)
	if err != nil {
		p.logger.Error("Failed to marshal appointment event", zap.Error(err))
		return err
	}

	msg := kafka.Message{
		Key:   []byte(event.AppointmentID),
		Value: eventBytes,
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		p.logger.Error("Failed to publish appointment event",
			zap.String("event_id", event.EventID),
			zap.String("type", event.Type),
			zap.Error(err))
		return err
	}

	p.logger.Info("Appointment event published",
		zap.String("event_id", event.EventID),
		zap.String("type", event.Type),
		zap.String("appointment_id", event.AppointmentID))

	return nil
}

func (p *KafkaProducer) Close() error {
	if p.writer != nil {
		return p.writer.Close()
	}
	return nil
}

// NopProducer drops every event. Used when no broker is configured and in
// tests.
type NopProducer struct{}

func (NopProducer) Publish(ctx context.Context, event AppointmentEvent) error { return nil }

func (NopProducer) Close() error { return nil }
