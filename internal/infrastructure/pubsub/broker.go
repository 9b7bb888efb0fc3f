// Package pubsub carries change notifications between the process that
// writes a chat message and every process holding a live subscription.
package pubsub

import "context"

// Broker fans out empty change notifications per topic. Notifications are
// coalesced: a slow subscriber sees at least one signal after the latest
// publish, not one per publish.
type Broker interface {
	Publish(ctx context.Context, topic string) error
	// Subscribe returns a notification channel and a cancel func. The channel
	// is closed after cancel is called or ctx ends.
	Subscribe(ctx context.Context, topic string) (<-chan struct{}, func(), error)
}

func signal(ch chan struct{}) {
	select {
	case ch <- struct{}{}:
	default:
	}
}
