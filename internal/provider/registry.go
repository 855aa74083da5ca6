package provider

import (
	"context"
	"fmt"
	"regexp"
	"sync"

	"github.com/tijoseymathew/langextract-docling/internal/core"
)

// Factory constructs a language model for a concrete model id. apiKey may be
// empty; implementations fall back to the environment at construction time.
type Factory func(ctx context.Context, modelID, apiKey string) (core.LanguageModel, error)

type registration struct {
	pattern  *regexp.Regexp
	priority int
	factory  Factory
}

var (
	mu            sync.RWMutex
	registrations []registration
)

// Register binds a model-id pattern to a factory. Higher priority wins when
// several patterns match. Called from init, so a bad pattern panics.
func Register(pattern string, priority int, f Factory) {
	re := regexp.MustCompile(pattern)

	mu.Lock()
	defer mu.Unlock()
	registrations = append(registrations, registration{pattern: re, priority: priority, factory: f})
}

// Lookup returns the factory of the highest-priority registration whose
// pattern matches modelID. Ties keep registration order.
func Lookup(modelID string) (Factory, error) {
	mu.RLock()
	defer mu.RUnlock()

	var best *registration
	for i := range registrations {
		r := &registrations[i]
		if !r.pattern.MatchString(modelID) {
			continue
		}
		if best == nil || r.priority > best.priority {
			best = r
		}
	}
	if best == nil {
		return nil, fmt.Errorf("no provider registered for model id %q", modelID)
	}
	return best.factory, nil
}
