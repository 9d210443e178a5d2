// Package analyzer contains the disk-space probes and the aggregator
// that runs them. Each analyzer inspects one subsystem (docker, WSL,
// package-manager caches, ...) and reports findings as types.Insight
// values; the aggregator merges them into a single result.
package analyzer

import (
	"context"

	"github.com/minsu-kang/reclaim/internal/types"
)

// Analyzer is a self-contained probe for one category of reclaimable
// disk space.
type Analyzer interface {
	// Name is a stable display identifier, unique across the registry.
	Name() string

	// IsAvailable is a cheap capability probe. It must not perform
	// expensive I/O; it is consulted before every scan.
	IsAvailable() bool

	// Analyze may block for a long time and must observe ctx at the top
	// of enumeration loops and around subprocess calls. Expected failure
	// modes (missing tool, unreadable subtree) degrade to fewer findings,
	// not errors; only unexpected failures return a non-nil error.
	Analyze(ctx context.Context) ([]types.Insight, error)
}

// Registry holds analyzers in registration order. Order matters: the
// aggregate insight sequence follows it.
type Registry struct {
	analyzers []Analyzer
	byName    map[string]Analyzer
}

func NewRegistry() *Registry {
	return &Registry{byName: make(map[string]Analyzer)}
}

// Register appends an analyzer. A duplicate name replaces the earlier
// registration in place, keeping its position.
func (r *Registry) Register(a Analyzer) {
	if _, exists := r.byName[a.Name()]; exists {
		for i, existing := range r.analyzers {
			if existing.Name() == a.Name() {
				r.analyzers[i] = a
				break
			}
		}
	} else {
		r.analyzers = append(r.analyzers, a)
	}
	r.byName[a.Name()] = a
}

func (r *Registry) Get(name string) (Analyzer, bool) {
	a, ok := r.byName[name]
	return a, ok
}

func (r *Registry) All() []Analyzer {
	return append([]Analyzer(nil), r.analyzers...)
}

// Available returns the registered analyzers that pass their
// availability probe, preserving registration order.
func (r *Registry) Available() []Analyzer {
	result := make([]Analyzer, 0, len(r.analyzers))
	for _, a := range r.analyzers {
		if a.IsAvailable() {
			result = append(result, a)
		}
	}
	return result
}
