package gen

import "errors"

var (
	ErrOverflow  = errors.New("stackvec: capacity exceeded")
	ErrUnderflow = errors.New("stackvec: empty")
)

// StackVec is a fixed capacity sequence stored in memory the caller owns,
// usually an array on the caller's stack.  It never allocates and never
// grows: the capacity is the length of the storage it was given.
type StackVec[T any] struct {
	storage []T
	length  int
}

// NewStackVec wraps storage with a length of zero.  The contents of storage
// are ignored and overwritten by Push.
func NewStackVec[T any](storage []T) StackVec[T] {
	return StackVec[T]{storage: storage[:len(storage):len(storage)]}
}

// Push appends item.  When the vector is full nothing changes and
// ErrOverflow is returned.
func (s *StackVec[T]) Push(item T) error {
	if s.length == len(s.storage) {
		return ErrOverflow
	}
	s.storage[s.length] = item
	s.length++
	return nil
}

// Pop removes and returns the last item, or ErrUnderflow when empty.
func (s *StackVec[T]) Pop() (T, error) {
	var zero T
	if s.length == 0 {
		return zero, ErrUnderflow
	}
	s.length--
	item := s.storage[s.length]
	s.storage[s.length] = zero
	return item, nil
}

// AsSlice is a view of the items in insertion order.  It aliases the
// storage, so it is only valid until the next Push or Pop.
func (s *StackVec[T]) AsSlice() []T {
	return s.storage[:s.length]
}

func (s *StackVec[T]) Len() int      { return s.length }
func (s *StackVec[T]) Cap() int      { return len(s.storage) }
func (s *StackVec[T]) IsEmpty() bool { return s.length == 0 }
func (s *StackVec[T]) IsFull() bool  { return s.length == len(s.storage) }

// Truncate drops items past n.  It does nothing if n is not shorter.
func (s *StackVec[T]) Truncate(n int) {
	if n < 0 {
		n = 0
	}
	var zero T
	for s.length > n {
		s.length--
		s.storage[s.length] = zero
	}
}

func (s *StackVec[T]) Clear() {
	s.Truncate(0)
}
