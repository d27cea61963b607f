package provider

import (
	"fmt"
	"sort"
	"sync"

	"github.com/map-service/internal/domain"
	"github.com/map-service/internal/domain/repository"
	apperrors "github.com/map-service/internal/pkg/errors"
)

// Factory builds a fresh provider for a single request.
type Factory func(args Args, options Options) repository.MapProvider

type registration struct {
	identity domain.ProviderIdentity
	factory  Factory
}

// Registry maps provider slugs to factories. It is populated at start-up and
// safe for concurrent lookups afterwards.
type Registry struct {
	mu        sync.RWMutex
	providers map[string]registration
}

func NewRegistry() *Registry {
	return &Registry{providers: make(map[string]registration)}
}

// Register adds a provider; slugs must be unique and non-empty.
func (r *Registry) Register(identity domain.ProviderIdentity, factory Factory) error {
	if identity.Slug == "" {
		return fmt.Errorf("register provider: empty slug")
	}
	if factory == nil {
		return fmt.Errorf("register provider %q: nil factory", identity.Slug)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.providers[identity.Slug]; exists {
		return fmt.Errorf("register provider %q: already registered", identity.Slug)
	}
	r.providers[identity.Slug] = registration{identity: identity, factory: factory}
	return nil
}

// New builds the provider registered under slug.
func (r *Registry) New(slug string, args Args, options Options) (repository.MapProvider, error) {
	r.mu.RLock()
	reg, ok := r.providers[slug]
	r.mu.RUnlock()

	if !ok {
		return nil, apperrors.ErrProviderNotFound.WithDetails(map[string]interface{}{
			apperrors.DetailProvider: slug,
		})
	}
	return reg.factory(args, options), nil
}

// Has reports whether slug is registered.
func (r *Registry) Has(slug string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.providers[slug]
	return ok
}

// Identities lists registered providers ordered by slug.
func (r *Registry) Identities() []domain.ProviderIdentity {
	r.mu.RLock()
	out := make([]domain.ProviderIdentity, 0, len(r.providers))
	for _, reg := range r.providers {
		out = append(out, reg.identity)
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool { return out[i].Slug < out[j].Slug })
	return out
}
