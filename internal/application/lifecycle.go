package application

import (
	"context"
	"fmt"

	"shopware-admin-mcp/internal/domain"

	"github.com/rs/zerolog"
)

// LifecycleHandler reacts to one app lifecycle event of a shop.
type LifecycleHandler func(ctx context.Context, event domain.LifecycleEvent) error

// Lifecycle dispatches app lifecycle events to registered handlers. Handlers
// run in registration order; the first failure aborts the dispatch.
type Lifecycle struct {
	handlers map[domain.LifecycleEventKind][]LifecycleHandler
	logger   zerolog.Logger
}

// NewLifecycle creates an empty dispatcher.
func NewLifecycle(logger zerolog.Logger) *Lifecycle {
	return &Lifecycle{
		handlers: make(map[domain.LifecycleEventKind][]LifecycleHandler),
		logger:   logger,
	}
}

// On registers a handler for an event kind.
func (l *Lifecycle) On(kind domain.LifecycleEventKind, handler LifecycleHandler) {
	l.handlers[kind] = append(l.handlers[kind], handler)
}

// Dispatch delivers an event to all handlers registered for its kind.
func (l *Lifecycle) Dispatch(ctx context.Context, event domain.LifecycleEvent) error {
	l.logger.Info().
		Str("kind", string(event.Kind)).
		Str("shop", event.Shop.ID).
		Msg("Dispatching lifecycle event")

	for _, handler := range l.handlers[event.Kind] {
		if err := handler(ctx, event); err != nil {
			return fmt.Errorf("lifecycle handler for %s failed: %w", event.Kind, err)
		}
	}
	return nil
}
