package testutil

import (
	"context"
	"sync"

	"github.com/docthru/backend/pkg/pubsub"
)

type PublishedMessage struct {
	Topic string
	Pack  *pubsub.Pack
}

// MockPublisher records every message it receives. PublishFunc, when set,
// decides the returned error.
type MockPublisher struct {
	PublishFunc func(context.Context, string, *pubsub.Pack) error

	mu       sync.Mutex
	messages []PublishedMessage
}

func (m *MockPublisher) Publish(ctx context.Context, topic string, pack *pubsub.Pack) error {
	m.mu.Lock()
	m.messages = append(m.messages, PublishedMessage{Topic: topic, Pack: pack})
	m.mu.Unlock()

	if m.PublishFunc != nil {
		return m.PublishFunc(ctx, topic, pack)
	}

	return nil
}

func (m *MockPublisher) Messages() []PublishedMessage {
	m.mu.Lock()
	defer m.mu.Unlock()

	return append([]PublishedMessage{}, m.messages...)
}

func (m *MockPublisher) Topics() []string {
	topics := []string{}
	for _, msg := range m.Messages() {
		topics = append(topics, msg.Topic)
	}

	return topics
}
