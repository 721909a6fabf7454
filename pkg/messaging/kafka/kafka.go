// Package kafka implements messaging.Broker over Kafka topics.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/rs/zerolog"
	"github.com/segmentio/kafka-go"
)

type Broker struct {
	mu      sync.Mutex
	brokers []string
	writers map[string]*kafka.Writer
	logger  *zerolog.Logger
}

type Config struct {
	Brokers []string
}

func NewBroker(cfg Config, logger *zerolog.Logger) (*Broker, error) {
	if len(cfg.Brokers) == 0 {
		return nil, fmt.Errorf("at least one kafka broker address is required")
	}
	return &Broker{
		brokers: cfg.Brokers,
		writers: make(map[string]*kafka.Writer),
		logger:  logger,
	}, nil
}

func (b *Broker) writer(topic string) *kafka.Writer {
	b.mu.Lock()
	defer b.mu.Unlock()

	w, ok := b.writers[topic]
	if !ok {
		w = &kafka.Writer{
			Addr:     kafka.TCP(b.brokers...),
			Topic:    topic,
			Balancer: &kafka.LeastBytes{},
		}
		b.writers[topic] = w
	}
	return w
}

func (b *Broker) Publish(ctx context.Context, topic string, message interface{}) error {
	payload, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}

	if err := b.writer(topic).WriteMessages(ctx, kafka.Message{Value: payload}); err != nil {
		return fmt.Errorf("failed to publish to %s: %w", topic, err)
	}

	b.logger.Debug().Str("topic", topic).Msg("event published")
	return nil
}

func (b *Broker) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	var firstErr error
	for _, w := range b.writers {
		if err := w.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
