package ports

import "context"

// EventPublisher ships vote.cast events downstream. The partition key
// is the voter ref so one voter's ballot history stays ordered.
type EventPublisher interface {
	Publish(ctx context.Context, eventType string, payload []byte, partitionKey string) error
}
