package app

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"contractor-leads/internal/logger"
	"contractor-leads/internal/shutdown"
)

func TestLifecycle_ShutdownRunsOnce(t *testing.T) {
	manager := shutdown.NewManager(nil)
	calls := 0
	manager.Register("counter", shutdown.Func(func() { calls++ }))
	l := NewLifecycle(manager, logger.NoOpLogger{})

	l.Shutdown()
	l.Shutdown()

	assert.Equal(t, 1, calls)
}
