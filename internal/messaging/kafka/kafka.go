package kafka

import (
	"context"
	"encoding/json"
	"fmt"

	kafkaGo "github.com/segmentio/kafka-go"

	"github.com/tiendaonline/backend/internal/messaging"
)

type publisher struct {
	writer *kafkaGo.Writer
}

// NewPublisher creates a Kafka-backed event publisher writing to a
// single topic.
func NewPublisher(brokers []string, topic string) messaging.Publisher {
	return &publisher{
		writer: &kafkaGo.Writer{
			Addr:     kafkaGo.TCP(brokers...),
			Topic:    topic,
			Balancer: &kafkaGo.LeastBytes{},
		},
	}
}

func (p *publisher) PublishEvent(ctx context.Context, key string, event any) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	return p.writer.WriteMessages(ctx, kafkaGo.Message{
		Key:   []byte(key),
		Value: payload,
	})
}

func (p *publisher) Close() error {
	return p.writer.Close()
}
