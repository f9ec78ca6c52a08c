package notifications

import (
	"context"

	"ticketly/pkg/logger"
)

// Dispatcher delivers outcome notifications. Callers treat it as
// fire-and-forget: a returned error is logged by the caller, never
// propagated into the admission result.
type Dispatcher interface {
	Dispatch(ctx context.Context, notification *Notification) error
}

type producerDispatcher struct {
	producer Producer
}

func NewDispatcher(producer Producer) Dispatcher {
	return &producerDispatcher{producer: producer}
}

func (d *producerDispatcher) Dispatch(ctx context.Context, notification *Notification) error {
	return d.producer.Publish(ctx, notification)
}

// noopDispatcher drops notifications. Used when the broker is not
// configured, e.g. local development without Kafka.
type noopDispatcher struct{}

func NewNoopDispatcher() Dispatcher {
	return noopDispatcher{}
}

func (noopDispatcher) Dispatch(_ context.Context, notification *Notification) error {
	logger.GetDefault().Debug("notification dropped, no broker configured",
		"kind", notification.Kind,
		"recipient", notification.RecipientEmail,
	)
	return nil
}
