// Package partmap provides a partitioned multimap safe for concurrent use.
package partmap

import (
	"hash/maphash"

	"github.com/go-ricrob/almanac/internal/spinlock"
)

type part[K comparable, V any] struct {
	mu spinlock.Mutex
	m  map[K][]V
}

// Map is a multimap split into independently locked parts.
type Map[K comparable, V any] struct {
	numPart uint64
	seed    maphash.Seed
	parts   []*part[K, V]
}

// New returns a map with numPart parts, each sized for sizeHint keys.
func New[K comparable, V any](numPart uint64, sizeHint int) *Map[K, V] {
	if numPart == 0 {
		numPart = 1
	}
	pm := &Map[K, V]{
		numPart: numPart,
		seed:    maphash.MakeSeed(),
		parts:   make([]*part[K, V], numPart),
	}
	for i := range pm.parts {
		pm.parts[i] = &part[K, V]{m: make(map[K][]V, sizeHint)}
	}
	return pm
}

func (pm *Map[K, V]) part(k K) *part[K, V] {
	return pm.parts[maphash.Comparable(pm.seed, k)%pm.numPart]
}

// Load returns the values stored under k in insertion order.
func (pm *Map[K, V]) Load(k K) ([]V, bool) {
	part := pm.part(k)
	part.mu.Lock()
	v, ok := part.m[k]
	part.mu.Unlock()
	return v, ok
}

// Add appends v to the values of k. It reports whether k was new.
func (pm *Map[K, V]) Add(k K, v V) bool {
	part := pm.part(k)
	part.mu.Lock()
	vs, ok := part.m[k]
	part.m[k] = append(vs, v)
	part.mu.Unlock()
	return !ok
}

// Size returns the number of keys.
func (pm *Map[K, V]) Size() int {
	size := 0
	for _, part := range pm.parts {
		part.mu.Lock()
		size += len(part.m)
		part.mu.Unlock()
	}
	return size
}

// NumPart returns the number of parts.
func (pm *Map[K, V]) NumPart() int { return int(pm.numPart) }
