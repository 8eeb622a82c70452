// Package spin has the busy waiting primitives: a spin lock that guards one
// value and the hint used inside every polling loop.
package spin

import "sync/atomic"

// Mutex guards exactly one value of type T.  There is no fairness, the first
// Lock to see the mutex unheld wins, and it is not reentrant: locking again
// while holding a guard spins forever.
type Mutex[T any] struct {
	held  atomic.Bool
	value T
}

// NewMutex wraps value.
func NewMutex[T any](value T) *Mutex[T] {
	m := &Mutex[T]{}
	m.value = value
	return m
}

// Guard is proof of holding a Mutex.  It gives access to the value until
// Unlock.  Guards are plain values; no allocation happens on Lock.
type Guard[T any] struct {
	m *Mutex[T]
}

// Lock spins until the mutex is free and returns the guard.
func (m *Mutex[T]) Lock() Guard[T] {
	for !m.held.CompareAndSwap(false, true) {
		Relax()
	}
	return Guard[T]{m: m}
}

// TryLock takes the mutex only if it is free right now.
func (m *Mutex[T]) TryLock() (Guard[T], bool) {
	if !m.held.CompareAndSwap(false, true) {
		return Guard[T]{}, false
	}
	return Guard[T]{m: m}, true
}

// Held reports whether some guard is outstanding.
func (m *Mutex[T]) Held() bool {
	return m.held.Load()
}

// Abandoned is the value without the lock, for reporting a failure that
// happened while the lock was held.  Nothing else may use it.
func (m *Mutex[T]) Abandoned() *T {
	return &m.value
}

// With runs f while holding the mutex.  The mutex is released however f
// exits, including a panic.
func (m *Mutex[T]) With(f func(*T)) {
	g := m.Lock()
	defer g.Unlock()
	f(g.Value())
}

// Value is the guarded value.  The pointer must not outlive the guard.
func (g Guard[T]) Value() *T {
	return &g.m.value
}

// Unlock releases the mutex.  Releasing a mutex that is not held is a bug in
// the caller and panics.
func (g Guard[T]) Unlock() {
	if g.m == nil || !g.m.held.CompareAndSwap(true, false) {
		panic("spin: unlock of unlocked mutex")
	}
}
