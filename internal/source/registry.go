package source

import (
	"fmt"

	"github.com/futureatoms/summitwire/internal/ports"
)

// Registry keeps the configured candidate sources in registration order. The
// pipeline walks them in order so the video source always runs first.
type Registry struct {
	sources []ports.CandidateSource
	byName  map[string]ports.CandidateSource
}

// NewRegistry builds an empty registry.
func NewRegistry() *Registry {
	return &Registry{byName: map[string]ports.CandidateSource{}}
}

// Register adds or replaces a source implementation.
func (r *Registry) Register(src ports.CandidateSource) {
	if r.byName == nil {
		r.byName = map[string]ports.CandidateSource{}
	}
	if _, exists := r.byName[src.Name()]; !exists {
		r.sources = append(r.sources, src)
	} else {
		for i, s := range r.sources {
			if s.Name() == src.Name() {
				r.sources[i] = src
			}
		}
	}
	r.byName[src.Name()] = src
}

// Resolve returns a source by name or an error if it is absent.
func (r *Registry) Resolve(name string) (ports.CandidateSource, error) {
	if src, ok := r.byName[name]; ok {
		return src, nil
	}
	return nil, fmt.Errorf("source %s is not registered", name)
}

// All returns the registered sources in registration order.
func (r *Registry) All() []ports.CandidateSource {
	return r.sources
}
