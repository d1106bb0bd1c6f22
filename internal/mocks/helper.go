package mocks

import "log"

// SyncRunner runs background tasks inline so tests can assert on their effects.
type SyncRunner struct{}

func (SyncRunner) BackgroundTask(fn func() error) {
	if err := fn(); err != nil {
		log.Printf("Background task error: %v", err)
	}
}
