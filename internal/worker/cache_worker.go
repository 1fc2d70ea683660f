package worker

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/nosql-mis/internal/events"
)

// CacheInvalidator is the subset of the list cache the worker needs.
type CacheInvalidator interface {
	Invalidate(ctx context.Context, collections ...string) error
}

// StartCacheInvalidator drops a collection's cached listing whenever its records change.
func StartCacheInvalidator(dispatcher events.Dispatcher, cache CacheInvalidator, logger *zap.Logger) {
	if dispatcher == nil || cache == nil {
		return
	}
	dispatcher.Subscribe(events.EventRecordsChanged, func(ctx context.Context, event events.Event) error {
		if err := cache.Invalidate(ctx, event.Collection); err != nil {
			logger.Warn("cache invalidation failed",
				zap.String("collection", event.Collection),
				zap.String("event_id", event.ID),
				zap.Error(err))
			return err
		}
		logger.Debug("cache invalidated",
			zap.String("collection", event.Collection),
			zap.String("actor", event.Actor))
		return nil
	})
}
