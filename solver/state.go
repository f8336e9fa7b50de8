package solver

import (
	"fmt"
	"time"

	"github.com/go-ricrob/almanac/internal/spinlock"
)

// Resulter gives access to the answers of a run.
type Resulter interface {
	Answer(p Part) (uint64, bool)
	Elapsed(p Part) time.Duration
}

var _ Resulter = (*result)(nil)

// PartError reports which part failed.
type PartError struct {
	Part Part
	Err  error
}

func (e *PartError) Error() string { return fmt.Sprintf("part %d: %v", e.Part, e.Err) }

func (e *PartError) Unwrap() error { return e.Err }

type answer struct {
	value   uint64
	elapsed time.Duration
}

type result struct {
	mu      spinlock.Mutex
	answers map[Part]answer
}

func newResult() *result { return &result{answers: make(map[Part]answer, 2)} }

func (r *result) set(p Part, v uint64, elapsed time.Duration) {
	r.mu.Lock()
	r.answers[p] = answer{value: v, elapsed: elapsed}
	r.mu.Unlock()
}

// Answer returns the answer of part p, if it was run.
func (r *result) Answer(p Part) (uint64, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.answers[p]
	return a.value, ok
}

// Elapsed returns how long part p took.
func (r *result) Elapsed(p Part) time.Duration {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.answers[p].elapsed
}
