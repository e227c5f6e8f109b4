package kafka

import (
	"context"
	"fmt"
	"time"

	"github.com/Shopify/sarama"
	"github.com/docthru/backend/pkg/pubsub"
)

// publisher sends every event synchronously and waits for all in-sync
// replicas. Events with the same key land on the same partition, so the
// events of one challenge keep their order.
type publisher struct {
	producer sarama.SyncProducer
}

func NewPublisher(clientID string, brokerAddrs []string) (*publisher, error) {
	cfg := sarama.NewConfig()
	cfg.ClientID = clientID
	cfg.Producer.Return.Successes = true
	cfg.Producer.RequiredAcks = sarama.WaitForAll
	cfg.Producer.Partitioner = sarama.NewHashPartitioner
	cfg.Producer.Retry.Max = 3
	cfg.Producer.Retry.Backoff = 200 * time.Millisecond

	producer, err := sarama.NewSyncProducer(brokerAddrs, cfg)
	if err != nil {
		return nil, fmt.Errorf("cannot connect to kafka %v: %w", brokerAddrs, err)
	}

	return newPublisher(producer), nil
}

func newPublisher(producer sarama.SyncProducer) *publisher {
	return &publisher{producer: producer}
}

func (p *publisher) Stop(context.Context) error {
	return p.producer.Close()
}

func (p *publisher) Publish(ctx context.Context, topic string, pack *pubsub.Pack) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	msg := &sarama.ProducerMessage{
		Topic:     topic,
		Value:     sarama.ByteEncoder(pack.Msg),
		Timestamp: time.Now(),
	}
	if len(pack.Key) > 0 {
		msg.Key = sarama.ByteEncoder(pack.Key)
	}

	if _, _, err := p.producer.SendMessage(msg); err != nil {
		return fmt.Errorf("cannot publish to %s: %w", topic, err)
	}

	return nil
}
