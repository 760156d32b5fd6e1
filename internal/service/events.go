package service

import (
	"context"

	"github.com/Skotchmaster/storefront/internal/logging"
)

type EventPublisher interface {
	PublishEvent(ctx context.Context, topic, key string, event any) error
}

// publish is best effort: a broker outage must not undo a change that is
// already persisted.
func publish(ctx context.Context, p EventPublisher, topic, key string, event map[string]any) {
	if p == nil {
		return
	}
	if err := p.PublishEvent(ctx, topic, key, event); err != nil {
		logging.FromContext(ctx).Error("publish_event_failed", "topic", topic, "type", event["type"], "error", err)
	}
}
