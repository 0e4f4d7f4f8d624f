package publisher

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Shopify/sarama"

	"github.com/rupiksha/go-ppob-transaction/internal/common/log"
)

const logIdentifier = "[NOTIFICATION-PUBLISHER]"

type Publisher interface {
	Publish(ctx context.Context, message any, opts ...PublishOption) error
}

type publishOptions struct {
	key     string
	headers map[string]string
}

type PublishOption func(*publishOptions)

// WithKey sets the partition key. Terminal events are keyed by requestId so
// retries of the same transaction land on the same partition.
func WithKey(key string) PublishOption {
	return func(opts *publishOptions) {
		opts.key = key
	}
}

func WithHeaders(headers map[string]string) PublishOption {
	return func(opts *publishOptions) {
		opts.headers = headers
	}
}

type publisher struct {
	producer sarama.SyncProducer
	topic    string
}

func NewPublisher(p sarama.SyncProducer, topic string) Publisher {
	return publisher{
		producer: p,
		topic:    topic,
	}
}

func (d publisher) Publish(ctx context.Context, message any, opts ...PublishOption) error {
	options := &publishOptions{}
	for _, opt := range opts {
		opt(options)
	}

	msg, err := d.buildMessage(message, options)
	if err != nil {
		log.Error(ctx, logIdentifier,
			log.String("status", "failed prepare message"),
			log.Err(err))
		return err
	}

	partition, offset, err := d.producer.SendMessage(msg)
	if err != nil {
		log.Error(ctx, logIdentifier,
			log.String("status", "failed send message"),
			log.String("topic", d.topic),
			log.Err(err))
		return err
	}

	log.Info(ctx, logIdentifier,
		log.String("status", "success publish message"),
		log.String("topic", d.topic),
		log.Any("partition", partition),
		log.Int64("offset", offset),
	)

	return nil
}

func (d publisher) buildMessage(message any, opts *publishOptions) (*sarama.ProducerMessage, error) {
	payload, err := json.Marshal(message)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal payload: %w", err)
	}

	msg := &sarama.ProducerMessage{
		Topic: d.topic,
		Value: sarama.ByteEncoder(payload),
	}

	if opts.key != "" {
		msg.Key = sarama.StringEncoder(opts.key)
	}

	for key, value := range opts.headers {
		msg.Headers = append(msg.Headers, sarama.RecordHeader{
			Key:   []byte(key),
			Value: []byte(value),
		})
	}

	return msg, nil
}
