// Package clientset provides a lazily populated, concurrency-safe keyed pool
// of client instances.
//
// A Set maps a partition key, typically a region, to one shared client built
// from an immutable base configuration. Each key's client is constructed at
// most once, on first request, regardless of how many goroutines ask for it
// concurrently.
package clientset

import (
	"sync"

	"github.com/sirupsen/logrus"
)

// Factory builds a client for one partition key from the shared base
// configuration. Construction is pure configuration assembly and must not
// fail or perform network calls; the Set holds its lock for the duration of
// a factory invocation.
type Factory[B, C any] func(base B, key string) C

// Set is a keyed pool of shared clients. The zero value is not usable; use
// New.
type Set[B, C any] struct {
	mu      sync.Mutex
	clients map[string]C
	factory Factory[B, C]
	base    B
}

// New creates a pool that builds clients with the given factory over the
// given base configuration.
func New[B, C any](base B, factory Factory[B, C]) *Set[B, C] {
	return &Set[B, C]{
		clients: make(map[string]C),
		factory: factory,
		base:    base,
	}
}

// Get returns the shared client for the given key, constructing it on first
// use. All calls are serialized through one lock, including construction, so
// concurrent callers for the same key observe the same instance and the
// factory runs exactly once per distinct key.
func (s *Set[B, C]) Get(key string) C {
	s.mu.Lock()
	defer s.mu.Unlock()

	if client, ok := s.clients[key]; ok {
		return client
	}

	logrus.WithField("key", key).Debug("clientset: creating client")
	client := s.factory(s.base, key)
	s.clients[key] = client
	return client
}

// Len returns the number of clients constructed so far.
func (s *Set[B, C]) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.clients)
}
