// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard
// dependencies on specific observability backends. Consumers can register
// hooks at startup to receive events about run execution and command
// dispatch.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// This approach:
//   - Avoids import cycles (hooks are registered by main, not by libraries)
//   - Keeps the core library dependency-free from observability frameworks
//   - Allows different backends (OpenTelemetry, Prometheus, DataDog, etc.)
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetRunHooks(&myRunHooks{})
//	    // ... run application
//	}
//
// The run pipeline calls hooks to emit events:
//
//	observability.Run().OnRunStart(ctx, version, runID)
//	// ... dispatch commands ...
//	observability.Run().OnRunComplete(ctx, runID, commands, artifacts, duration)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Run Hooks
// =============================================================================

// RunHooks receives events from the run pipeline.
type RunHooks interface {
	// Run events
	OnRunStart(ctx context.Context, version, runID string)
	OnRunComplete(ctx context.Context, runID string, commands, artifacts int, duration time.Duration)

	// Dispatch events
	OnDispatch(ctx context.Context, runID, topic string, handlers int)
	OnHandlerError(ctx context.Context, runID, topic string, err error)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopRunHooks is a no-op implementation of RunHooks.
type NoopRunHooks struct{}

func (NoopRunHooks) OnRunStart(context.Context, string, string)                     {}
func (NoopRunHooks) OnRunComplete(context.Context, string, int, int, time.Duration) {}
func (NoopRunHooks) OnDispatch(context.Context, string, string, int)                {}
func (NoopRunHooks) OnHandlerError(context.Context, string, string, error)          {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	runHooks RunHooks = NoopRunHooks{}
	hooksMu  sync.RWMutex
)

// SetRunHooks registers custom run hooks.
// This should be called once at application startup before any runs.
func SetRunHooks(h RunHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		runHooks = h
	}
}

// Run returns the registered run hooks.
func Run() RunHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return runHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	runHooks = NoopRunHooks{}
}
