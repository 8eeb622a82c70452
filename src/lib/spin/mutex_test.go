package spin

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestLockUnlock(t *testing.T) {
	m := NewMutex(41)
	g := m.Lock()
	if !m.Held() {
		t.Fatalf("mutex should be held after Lock")
	}
	*g.Value()++
	g.Unlock()
	if m.Held() {
		t.Fatalf("mutex should be free after Unlock")
	}
	g = m.Lock()
	defer g.Unlock()
	if *g.Value() != 42 {
		t.Errorf("expected 42 but got %d", *g.Value())
	}
}

func TestTryLock(t *testing.T) {
	m := NewMutex("console")
	g, ok := m.TryLock()
	if !ok {
		t.Fatalf("TryLock failed on a free mutex")
	}
	if _, ok := m.TryLock(); ok {
		t.Fatalf("TryLock succeeded while a guard is outstanding")
	}
	g.Unlock()
	if _, ok := m.TryLock(); !ok {
		t.Fatalf("TryLock failed after release")
	}
}

func TestAbandoned(t *testing.T) {
	m := NewMutex(7)
	g := m.Lock()
	if *m.Abandoned() != 7 || m.Abandoned() != g.Value() {
		t.Fatalf("Abandoned does not reach the guarded value")
	}
	if !m.Held() {
		t.Errorf("Abandoned changed the lock state")
	}
	g.Unlock()
}

func TestDoubleUnlockPanics(t *testing.T) {
	m := NewMutex(0)
	g := m.Lock()
	g.Unlock()
	defer func() {
		if recover() == nil {
			t.Errorf("second Unlock should panic")
		}
	}()
	g.Unlock()
}

func TestContention(t *testing.T) {
	const workers = 8
	const rounds = 500
	m := NewMutex(0)
	var live int32
	var overlap atomic.Bool

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < rounds; i++ {
				g := m.Lock()
				if atomic.AddInt32(&live, 1) != 1 {
					overlap.Store(true)
				}
				*g.Value()++
				atomic.AddInt32(&live, -1)
				g.Unlock()
			}
		}()
	}

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(10 * time.Second):
		t.Fatal("timeout waiting for contending workers")
	}

	if overlap.Load() {
		t.Errorf("two guards were live at the same time")
	}
	g := m.Lock()
	defer g.Unlock()
	if *g.Value() != workers*rounds {
		t.Errorf("lost updates: expected %d but got %d", workers*rounds, *g.Value())
	}
}

var errEarly = errors.New("early")

func TestWithReleasesOnEveryPath(t *testing.T) {
	m := NewMutex(0)

	early := func() error {
		var err error
		m.With(func(v *int) {
			if *v == 0 {
				err = errEarly
				return
			}
			*v = 100
		})
		return err
	}
	if err := early(); !errors.Is(err, errEarly) {
		t.Fatalf("expected early return error, got %v", err)
	}
	if m.Held() {
		t.Fatalf("mutex still held after early return")
	}

	func() {
		defer func() { _ = recover() }()
		m.With(func(v *int) {
			panic("handler failed")
		})
	}()
	if m.Held() {
		t.Fatalf("mutex still held after panic")
	}
}

func TestDelayReturns(t *testing.T) {
	Delay(0)
	Delay(150)
}
