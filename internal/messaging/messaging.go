package messaging

import "context"

// Publisher delivers post-commit domain events to downstream
// consumers.
type Publisher interface {
	PublishEvent(ctx context.Context, key string, event any) error
	Close() error
}

// NopPublisher discards events. Used when no broker is configured.
type NopPublisher struct{}

func (NopPublisher) PublishEvent(context.Context, string, any) error { return nil }
func (NopPublisher) Close() error                                    { return nil }
