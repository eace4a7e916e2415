package main

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"strings"
	"time"

	kafkaGo "github.com/segmentio/kafka-go"
)

// eventPublisher emits order events to Kafka when brokers are configured.
// A nil publisher is a no-op so checkout works without Kafka.
type eventPublisher struct {
	writer *kafkaGo.Writer
}

func newEventPublisher() *eventPublisher {
	brokers := os.Getenv("KAFKA_BROKERS")
	if brokers == "" {
		return nil
	}
	return &eventPublisher{
		writer: &kafkaGo.Writer{
			Addr:         kafkaGo.TCP(strings.Split(brokers, ",")...),
			Topic:        "orders.placed",
			Balancer:     &kafkaGo.LeastBytes{},
			RequiredAcks: kafkaGo.RequireOne,
		},
	}
}

// orderPlacedEvent is the wire shape of an order announcement.
type orderPlacedEvent struct {
	OrderID    string    `json:"order_id"`
	TotalCents int       `json:"total_cents"`
	ItemCount  int       `json:"item_count"`
	PlacedAt   time.Time `json:"placed_at"`
}

// OrderPlaced publishes the event; failures are logged, never propagated,
// since the order row is already committed.
func (p *eventPublisher) OrderPlaced(ctx context.Context, order Order) {
	if p == nil {
		return
	}
	payload, err := json.Marshal(orderPlacedEvent{
		OrderID:    order.ID,
		TotalCents: order.TotalCents,
		ItemCount:  len(order.Items),
		PlacedAt:   order.CreatedAt,
	})
	if err != nil {
		log.Printf("marshal order event: %v", err)
		return
	}
	if err := p.writer.WriteMessages(ctx, kafkaGo.Message{
		Key:   []byte(order.ID),
		Value: payload,
	}); err != nil {
		log.Printf("publish order event: %v", err)
	}
}

// Close flushes the writer.
func (p *eventPublisher) Close() error {
	if p == nil {
		return nil
	}
	return p.writer.Close()
}
