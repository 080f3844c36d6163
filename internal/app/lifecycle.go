package app

import (
	"sync"

	"contractor-leads/internal/logger"
	"contractor-leads/internal/shutdown"
)

// Lifecycle funnels every exit path (window close, menu quit, signals)
// into a single shutdown sequence.
type Lifecycle struct {
	manager    *shutdown.Manager
	logger     logger.Logger
	mu         sync.Mutex
	isShutdown bool
}

func NewLifecycle(manager *shutdown.Manager, log logger.Logger) *Lifecycle {
	return &Lifecycle{manager: manager, logger: log}
}

// Listen hooks process signals; after runs once the sequence is complete.
func (l *Lifecycle) Listen(after func()) {
	l.manager.Listen(func() {
		l.markShutdown()
		if after != nil {
			after()
		}
	})
}

func (l *Lifecycle) Shutdown() {
	if !l.markShutdown() {
		return
	}
	l.logger.Info("Lifecycle", "shutdown sequence initiated", nil)
	l.manager.Shutdown()
}

func (l *Lifecycle) markShutdown() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.isShutdown {
		return false
	}
	l.isShutdown = true
	return true
}
