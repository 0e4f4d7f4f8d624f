package publisher

import (
	"time"

	"github.com/Shopify/sarama"
)

type Option func(*sarama.Config)

// NewKafkaSyncProducer builds the producer used for terminal transaction
// events. Acks from all in-sync replicas: a dropped settlement notification
// means a receipt that never prints.
func NewKafkaSyncProducer(brokers []string, opts ...Option) (sarama.SyncProducer, error) {
	saramaCfg := sarama.NewConfig()
	saramaCfg.Producer.Return.Successes = true
	saramaCfg.Producer.Return.Errors = true
	saramaCfg.Producer.RequiredAcks = sarama.WaitForAll
	saramaCfg.Producer.Timeout = 2 * time.Second
	saramaCfg.Producer.Partitioner = sarama.NewHashPartitioner
	saramaCfg.Net.DialTimeout = 2 * time.Second
	saramaCfg.Net.ReadTimeout = 2 * time.Second
	saramaCfg.Net.WriteTimeout = 2 * time.Second

	for _, opt := range opts {
		opt(saramaCfg)
	}

	return sarama.NewSyncProducer(brokers, saramaCfg)
}

// WithProducerTimeout overrides the default produce timeout.
func WithProducerTimeout(timeout time.Duration) Option {
	return func(cfg *sarama.Config) {
		cfg.Producer.Timeout = timeout
	}
}
