package kafka

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/segmentio/kafka-go"
	"github.com/vertexinsure/insurance-connector/internal/domain"
)

// Producer emits one message per accepted insurance manifest.
type Producer struct {
	w *kafka.Writer
}

func NewProducer(brokersSTR, topic string) *Producer {
	brokers := strings.Split(brokersSTR, ",")

	return &Producer{
		w: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.LeastBytes{},
			RequiredAcks: kafka.RequireAll,
			Async:        false,
		},
	}
}

func (p *Producer) Close() error {
	return p.w.Close()
}

// PublishManifest writes the manifest as JSON, keyed by the upstream order
// id so redeliveries of one order land on one partition. Manifests without
// an order id fall back to the row id.
func (p *Producer) PublishManifest(ctx context.Context, m domain.OrderManifest) error {
	b, err := json.Marshal(m)
	if err != nil {
		return err
	}

	key := m.ID.String()
	if m.OrderID != nil {
		key = *m.OrderID
	}
	return p.w.WriteMessages(ctx, kafka.Message{
		Key:   []byte(key),
		Value: b,
		Headers: []kafka.Header{
			{Key: "content-type", Value: []byte("application/json")},
		},
	})
}
