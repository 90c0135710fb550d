package resolve

import (
	"sync"

	"ensowner/internal/owner"
)

// Injector selects a classified error kind to raise in place of normal
// reconciliation, letting each error path be exercised deterministically
// without constructing real indexing-lag conditions. An empty kind means no
// injection. Consulted once per resolution, only on cross-checked calls.
type Injector interface {
	ForcedKind() owner.Kind
}

// NopInjector never injects. The default.
type NopInjector struct{}

func (NopInjector) ForcedKind() owner.Kind { return "" }

// Switch is a settable, clearable Injector safe for concurrent use. The
// server binary holds one process-wide so tests and debug tooling can flip it;
// last writer wins.
type Switch struct {
	mu   sync.RWMutex
	kind owner.Kind
}

// Set forces every subsequent cross-checked resolution to raise kind.
func (s *Switch) Set(kind owner.Kind) {
	s.mu.Lock()
	s.kind = kind
	s.mu.Unlock()
}

// Clear restores normal reconciliation.
func (s *Switch) Clear() {
	s.Set("")
}

func (s *Switch) ForcedKind() owner.Kind {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.kind
}
