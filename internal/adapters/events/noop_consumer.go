package events

import "context"

// NoopConsumer stands in when no kafka brokers are configured; the
// voter mirror then only grows through direct upserts.
type NoopConsumer struct{}

func NewNoopConsumer() *NoopConsumer {
	return &NoopConsumer{}
}

func (n *NoopConsumer) Poll(_ context.Context, _ int) ([]Message, error) {
	return nil, nil
}
