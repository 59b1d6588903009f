package container

import (
	"sync"

	"go.uber.org/zap"

	"github.com/weemeal/server/internal/domain/recipe"
	"github.com/weemeal/server/internal/domain/shared"
	"github.com/weemeal/server/internal/infrastructure/monitoring"
)

// EventDispatcher routes domain events to registered handlers
type EventDispatcher struct {
	mu       sync.RWMutex
	handlers map[string][]shared.EventHandler
	log      *zap.Logger
}

// NewEventDispatcher creates a new event dispatcher
func NewEventDispatcher(log *zap.Logger) *EventDispatcher {
	return &EventDispatcher{
		handlers: make(map[string][]shared.EventHandler),
		log:      log,
	}
}

// Dispatch dispatches an event to registered handlers. Handler errors
// are logged and do not stop remaining handlers.
func (d *EventDispatcher) Dispatch(event shared.DomainEvent) error {
	d.mu.RLock()
	handlers := d.handlers[event.EventName()]
	d.mu.RUnlock()

	if len(handlers) == 0 {
		d.log.Debug("No handlers registered for event", zap.String("event", event.EventName()))
		return nil
	}

	for _, handler := range handlers {
		if err := handler(event); err != nil {
			d.log.Error("Failed to handle event",
				zap.String("event", event.EventName()),
				zap.Error(err),
			)
		}
	}

	return nil
}

// Register registers an event handler
func (d *EventDispatcher) Register(eventName string, handler shared.EventHandler) {
	d.mu.Lock()
	d.handlers[eventName] = append(d.handlers[eventName], handler)
	d.mu.Unlock()
	d.log.Debug("Registered event handler", zap.String("event", eventName))
}

// RegisterEventHandlers wires the recipe event handlers
func RegisterEventHandlers(dispatcher *EventDispatcher, log *zap.Logger, metrics *monitoring.MetricsCollector) {
	dispatcher.Register("recipe.created", func(event shared.DomainEvent) error {
		if e, ok := event.(recipe.RecipeCreatedEvent); ok {
			log.Info("Recipe created",
				zap.String("recipe_id", e.RecipeID.String()),
				zap.String("name", e.Name),
			)
		}
		metrics.RecordRecipeCreated()
		return nil
	})

	dispatcher.Register("recipe.updated", func(event shared.DomainEvent) error {
		if e, ok := event.(recipe.RecipeUpdatedEvent); ok {
			log.Debug("Recipe updated",
				zap.String("recipe_id", e.RecipeID.String()),
				zap.String("field", e.Field),
			)
		}
		return nil
	})

	dispatcher.Register("recipe.deleted", func(event shared.DomainEvent) error {
		if e, ok := event.(recipe.RecipeDeletedEvent); ok {
			log.Info("Recipe deleted",
				zap.String("recipe_id", e.RecipeID.String()),
			)
		}
		metrics.RecordRecipeDeleted()
		return nil
	})
}
