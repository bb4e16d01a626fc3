package service

import (
	"context"
	"time"

	"agrisense-be/internal/pkg/logger"
	"agrisense-be/pkg/events"
)

const eventPublishTimeout = 5 * time.Second

// publishEvent sends a domain event in the background. Delivery is best-effort.
func publishEvent(ctx context.Context, publisher events.Publisher, log logger.ILogger, evt events.Event) {
	if publisher == nil {
		return
	}
	ctx = context.WithoutCancel(ctx)
	go func() {
		ctx, cancel := context.WithTimeout(ctx, eventPublishTimeout)
		defer cancel()
		if err := publisher.Publish(ctx, evt); err != nil {
			log.Warn("EVENTS", "Failed to publish domain event", map[string]interface{}{
				"type":  evt.EventType(),
				"error": err.Error(),
			})
		}
	}()
}
