// Package kafka provides the Kafka-backed event publisher.
package kafka

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"routex/internal/core/ports"

	"github.com/IBM/sarama"
)

// statusChangedPayload is the wire form of a status change event.
type statusChangedPayload struct {
	ShipmentID string    `json:"shipment_id"`
	DriverID   *string   `json:"driver_id,omitempty"`
	OldStatus  string    `json:"old_status"`
	NewStatus  string    `json:"new_status"`
	OccurredAt time.Time `json:"occurred_at"`
}

// Publisher implements ports.EventPublisher on a sarama async producer.
// Publishing is best effort: producer errors are logged, never returned to
// the command that already committed.
type Publisher struct {
	producer sarama.AsyncProducer
	topic    string
	logger   *slog.Logger
}

// NewPublisher connects an async producer to the given brokers.
func NewPublisher(brokers []string, topic string, logger *slog.Logger) (*Publisher, error) {
	config := sarama.NewConfig()
	config.Producer.RequiredAcks = sarama.WaitForLocal
	config.Producer.Compression = sarama.CompressionSnappy
	config.Producer.Flush.Frequency = 500 * time.Millisecond
	config.Producer.Retry.Max = 5

	producer, err := sarama.NewAsyncProducer(brokers, config)
	if err != nil {
		return nil, err
	}

	go func() {
		for producerErr := range producer.Errors() {
			logger.Error("failed to deliver event", "error", producerErr)
		}
	}()

	return &Publisher{
		producer: producer,
		topic:    topic,
		logger:   logger,
	}, nil
}

// PublishShipmentStatusChanged emits a status change notification, keyed by
// shipment so consumers see each shipment's changes in order.
func (p *Publisher) PublishShipmentStatusChanged(_ context.Context, event ports.ShipmentStatusChangedEvent) error {
	payload := statusChangedPayload{
		ShipmentID: event.ShipmentID.String(),
		OldStatus:  event.OldStatus.String(),
		NewStatus:  event.NewStatus.String(),
		OccurredAt: event.OccurredAt,
	}
	if event.DriverID != nil {
		driverID := event.DriverID.String()
		payload.DriverID = &driverID
	}

	bytes, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	p.producer.Input() <- &sarama.ProducerMessage{
		Topic: p.topic,
		Key:   sarama.StringEncoder(payload.ShipmentID),
		Value: sarama.ByteEncoder(bytes),
	}

	return nil
}

// Close flushes buffered events and releases the transport.
func (p *Publisher) Close() error {
	return p.producer.Close()
}
