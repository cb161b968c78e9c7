// Package resources lazily initializes and memoizes the heavyweight analysis
// resources (tagger, embedder, vectorizer) so each loads at most once per process.
package resources

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// Kind names a lazily-loaded resource.
type Kind string

const (
	KindTagger     Kind = "tagger"
	KindEmbedder   Kind = "embedder"
	KindVectorizer Kind = "vectorizer"
)

// Loader builds a resource. It is called at most once per Kind unless Reset is called.
type Loader func(ctx context.Context) (any, error)

type entry struct {
	value any
	err   error
}

// Registry memoizes resource loads. A failed load is memoized as well so the
// fallback path is taken on every later call without retrying the loader.
type Registry struct {
	mu      sync.RWMutex
	loaders map[Kind]Loader
	loaded  map[Kind]entry
	group   singleflight.Group
	logger  *zap.Logger
}

// NewRegistry creates an empty registry.
func NewRegistry(logger *zap.Logger) *Registry {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Registry{
		loaders: make(map[Kind]Loader),
		loaded:  make(map[Kind]entry),
		logger:  logger,
	}
}

// Register installs the loader for kind, replacing any memoized value.
func (r *Registry) Register(kind Kind, loader Loader) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.loaders[kind] = loader
	delete(r.loaded, kind)
}

// Set installs an already-built value for kind.
func (r *Registry) Set(kind Kind, value any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.loaded[kind] = entry{value: value}
}

// Reset forgets the memoized value for kind so the next Get reloads it.
func (r *Registry) Reset(kind Kind) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.loaded, kind)
}

// Get returns the resource for kind, loading it on first use. Concurrent first
// callers share one load.
func (r *Registry) Get(ctx context.Context, kind Kind) (any, error) {
	r.mu.RLock()
	e, ok := r.loaded[kind]
	loader := r.loaders[kind]
	r.mu.RUnlock()
	if ok {
		return e.value, e.err
	}
	if loader == nil {
		return nil, &UnavailableError{Kind: kind, Cause: fmt.Errorf("no loader registered")}
	}

	v, err, _ := r.group.Do(string(kind), func() (any, error) {
		r.mu.RLock()
		e, ok := r.loaded[kind]
		r.mu.RUnlock()
		if ok {
			return e.value, e.err
		}

		value, loadErr := loader(ctx)
		if loadErr != nil {
			loadErr = &UnavailableError{Kind: kind, Cause: loadErr}
			r.logger.Warn("resource unavailable",
				zap.String("kind", string(kind)),
				zap.Error(loadErr))
		} else {
			r.logger.Debug("resource loaded", zap.String("kind", string(kind)))
		}

		r.mu.Lock()
		r.loaded[kind] = entry{value: value, err: loadErr}
		r.mu.Unlock()
		return value, loadErr
	})
	return v, err
}

// Get returns the resource for kind asserted to T.
func Get[T any](ctx context.Context, r *Registry, kind Kind) (T, error) {
	var zero T
	v, err := r.Get(ctx, kind)
	if err != nil {
		return zero, err
	}
	t, ok := v.(T)
	if !ok {
		return zero, fmt.Errorf("resource %q has type %T", kind, v)
	}
	return t, nil
}
