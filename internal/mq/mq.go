// AngelaMos | 2026
// mq.go

package mq

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/vipinpawar/jeopardy-app/internal/config"
)

type Message struct {
	ID         string
	Data       []byte
	Attributes map[string]string
}

// Handler processes one delivery. A non-nil error nacks it for redelivery.
type Handler func(ctx context.Context, msg Message) error

type Broker interface {
	Publish(ctx context.Context, channel string, data []byte, attrs map[string]string) (string, error)
	Subscribe(ctx context.Context, channel string, handler Handler) error
	Close() error
}

// New connects to the broker selected by cfg.Backend. A disabled queue
// yields nil, nil.
func New(ctx context.Context, cfg config.QueueConfig) (Broker, error) {
	switch cfg.Backend {
	case config.QueueNone, "":
		return nil, nil
	case config.QueueRabbitMQ:
		return NewRabbitMQBroker(cfg.RabbitMQ)
	case config.QueuePubSub:
		return NewPubSubBroker(ctx, cfg.PubSub)
	default:
		return nil, fmt.Errorf("unknown queue backend %q", cfg.Backend)
	}
}

// PublishJSON marshals v and publishes it with a JSON content-type attribute.
func PublishJSON(
	ctx context.Context,
	b Broker,
	channel string,
	v any,
	attrs map[string]string,
) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("marshal message: %w", err)
	}

	merged := map[string]string{"content-type": "application/json"}
	for k, val := range attrs {
		merged[k] = val
	}

	return b.Publish(ctx, channel, data, merged)
}
