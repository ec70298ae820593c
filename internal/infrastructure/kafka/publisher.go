package kafka

import (
	"context"
	"encoding/json"
	"time"

	"github.com/pagora/payment-service/internal/domain"
	"github.com/segmentio/kafka-go"
)

type DefaultKafkaPublisher struct {
	writer *kafka.Writer
}

func NewDefaultKafkaPublisher(brokers []string) *DefaultKafkaPublisher {
	return &DefaultKafkaPublisher{
		writer: &kafka.Writer{
			Addr:     kafka.TCP(brokers...),
			Balancer: &kafka.LeastBytes{},
		},
	}
}

func (k *DefaultKafkaPublisher) Publish(topic string, msgs ...domain.Message) error {
	km := make([]kafka.Message, 0, len(msgs))
	for _, m := range msgs {
		km = append(km, kafka.Message{
			Key:   m.Key,
			Value: m.Value,
			Time:  time.Now(),
			Topic: topic,
		})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return k.writer.WriteMessages(ctx, km...)
}

// MarshalPaymentEvent encodes a payment event as a keyed message; events
// for the same transaction land on the same partition.
func MarshalPaymentEvent(event PaymentEvent) (domain.Message, error) {
	v, err := json.Marshal(event)
	if err != nil {
		return domain.Message{}, err
	}
	return domain.Message{Key: []byte(event.TransactionNumber), Value: v}, nil
}
