package mocks

import (
	"context"
	"sync"

	"github.com/cradoe/banking-api/internal/models"
)

// EventRecorder keeps every published event in memory.
type EventRecorder struct {
	mu     sync.Mutex
	events []models.AccountEvent
}

func (e *EventRecorder) Publish(ctx context.Context, event *models.AccountEvent) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.events = append(e.events, *event)
	return nil
}

func (e *EventRecorder) Types() []string {
	e.mu.Lock()
	defer e.mu.Unlock()

	var types []string
	for _, event := range e.events {
		types = append(types, event.Type)
	}
	return types
}
