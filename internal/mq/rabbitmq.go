// AngelaMos | 2026
// rabbitmq.go

package mq

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/vipinpawar/jeopardy-app/internal/config"
)

type RabbitMQBroker struct {
	conn            *amqp.Connection
	channel         *amqp.Channel
	queueDurable    bool
	queueAutoDelete bool

	mu       sync.Mutex
	declared map[string]struct{}
}

func NewRabbitMQBroker(cfg config.RabbitMQConfig) (*RabbitMQBroker, error) {
	if strings.TrimSpace(cfg.URL) == "" {
		return nil, errors.New("rabbitmq url is required")
	}

	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("dial rabbitmq: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	if cfg.PrefetchCount > 0 {
		if err := ch.Qos(cfg.PrefetchCount, 0, false); err != nil {
			_ = ch.Close()
			_ = conn.Close()
			return nil, fmt.Errorf("set qos: %w", err)
		}
	}

	return &RabbitMQBroker{
		conn:            conn,
		channel:         ch,
		queueDurable:    cfg.QueueDurable,
		queueAutoDelete: cfg.QueueAutoDelete,
		declared:        make(map[string]struct{}),
	}, nil
}

func (r *RabbitMQBroker) Publish(
	ctx context.Context,
	channel string,
	data []byte,
	attrs map[string]string,
) (string, error) {
	if strings.TrimSpace(channel) == "" {
		return "", errors.New("rabbitmq channel is required")
	}

	if err := r.declareQueue(channel); err != nil {
		return "", err
	}

	headers := amqp.Table{}
	for key, value := range attrs {
		headers[key] = value
	}

	contentType := attrs["content-type"]
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	messageID := uuid.NewString()
	deliveryMode := amqp.Transient
	if r.queueDurable {
		deliveryMode = amqp.Persistent
	}

	err := r.channel.PublishWithContext(ctx, "", channel, false, false, amqp.Publishing{
		ContentType:  contentType,
		DeliveryMode: deliveryMode,
		MessageId:    messageID,
		Headers:      headers,
		Body:         data,
	})
	if err != nil {
		return "", fmt.Errorf("publish to %s: %w", channel, err)
	}
	return messageID, nil
}

// Subscribe blocks consuming channel until ctx ends or the broker closes the
// delivery stream.
func (r *RabbitMQBroker) Subscribe(ctx context.Context, channel string, handler Handler) error {
	if strings.TrimSpace(channel) == "" {
		return errors.New("rabbitmq channel is required")
	}

	if err := r.declareQueue(channel); err != nil {
		return err
	}

	consumerTag := "consumer-" + uuid.NewString()
	deliveries, err := r.channel.ConsumeWithContext(
		ctx, channel, consumerTag, false, false, false, false, nil,
	)
	if err != nil {
		return fmt.Errorf("consume %s: %w", channel, err)
	}
	defer func() {
		_ = r.channel.Cancel(consumerTag, false)
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case delivery, ok := <-deliveries:
			if !ok {
				return errors.New("rabbitmq delivery channel closed")
			}
			message := Message{
				ID:         delivery.MessageId,
				Data:       delivery.Body,
				Attributes: headersToAttributes(delivery.Headers),
			}
			if err := handler(ctx, message); err != nil {
				_ = delivery.Nack(false, !delivery.Redelivered)
				continue
			}
			_ = delivery.Ack(false)
		}
	}
}

func (r *RabbitMQBroker) Close() error {
	if r.channel != nil {
		_ = r.channel.Close()
	}
	if r.conn != nil {
		return r.conn.Close()
	}
	return nil
}

func (r *RabbitMQBroker) declareQueue(name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.declared[name]; ok {
		return nil
	}

	_, err := r.channel.QueueDeclare(
		name,
		r.queueDurable,
		r.queueAutoDelete,
		false,
		false,
		nil,
	)
	if err != nil {
		return fmt.Errorf("declare queue %s: %w", name, err)
	}

	r.declared[name] = struct{}{}
	return nil
}

func headersToAttributes(headers amqp.Table) map[string]string {
	if len(headers) == 0 {
		return nil
	}
	attrs := make(map[string]string, len(headers))
	for key, value := range headers {
		switch typed := value.(type) {
		case string:
			attrs[key] = typed
		case []byte:
			attrs[key] = string(typed)
		default:
			attrs[key] = fmt.Sprint(value)
		}
	}
	return attrs
}
