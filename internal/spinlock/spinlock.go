// Package spinlock provides a mutex that busy waits instead of parking.
// It suits critical sections of a few instructions, like a map write.
package spinlock

import (
	"runtime"
	"sync/atomic"
)

// Mutex is a spinlock. The zero value is unlocked.
type Mutex struct {
	locked atomic.Bool
}

// Lock spins, yielding the processor, until the mutex is acquired.
func (m *Mutex) Lock() {
	for !m.locked.CompareAndSwap(false, true) {
		runtime.Gosched()
	}
}

// TryLock acquires the mutex if it is free and reports whether it did.
func (m *Mutex) TryLock() bool { return m.locked.CompareAndSwap(false, true) }

// Unlock releases the mutex.
func (m *Mutex) Unlock() { m.locked.Store(false) }
