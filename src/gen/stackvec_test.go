package gen

import (
	"errors"
	"math/rand"
	"testing"
)

func TestStackVecBasics(t *testing.T) {
	var storage [3]string
	v := NewStackVec(storage[:])

	if !v.IsEmpty() || v.Len() != 0 || v.Cap() != 3 {
		t.Fatalf("new stackvec not empty: len=%d cap=%d", v.Len(), v.Cap())
	}
	for _, s := range []string{"ian", "smith", "joy"} {
		if err := v.Push(s); err != nil {
			t.Fatalf("push %q: %v", s, err)
		}
	}
	if !v.IsFull() {
		t.Errorf("stackvec should be full")
	}
	if err := v.Push("division"); !errors.Is(err, ErrOverflow) {
		t.Errorf("expected ErrOverflow but got %v", err)
	}
	got := v.AsSlice()
	if len(got) != 3 || got[0] != "ian" || got[2] != "joy" {
		t.Errorf("unexpected contents after overflow: %v", got)
	}

	last, err := v.Pop()
	if err != nil || last != "joy" {
		t.Errorf("pop: expected joy but got %q (%v)", last, err)
	}
	if v.Len() != 2 {
		t.Errorf("expected len 2 after pop but got %d", v.Len())
	}
	if storage[2] != "" {
		t.Errorf("popped slot was not cleared: %q", storage[2])
	}
}

func TestStackVecUnderflow(t *testing.T) {
	v := NewStackVec(make([]byte, 0))
	if _, err := v.Pop(); !errors.Is(err, ErrUnderflow) {
		t.Errorf("expected ErrUnderflow but got %v", err)
	}
	if err := v.Push('a'); !errors.Is(err, ErrOverflow) {
		t.Errorf("zero capacity push: expected ErrOverflow but got %v", err)
	}
	if v.Len() != 0 {
		t.Errorf("failed operations changed the length to %d", v.Len())
	}
}

func TestStackVecTruncate(t *testing.T) {
	var storage [4]int
	v := NewStackVec(storage[:])
	for i := 1; i <= 4; i++ {
		_ = v.Push(i)
	}
	v.Truncate(6)
	if v.Len() != 4 {
		t.Errorf("truncate past the end changed len to %d", v.Len())
	}
	v.Truncate(1)
	if v.Len() != 1 || v.AsSlice()[0] != 1 {
		t.Errorf("truncate(1) left %v", v.AsSlice())
	}
	v.Clear()
	if !v.IsEmpty() {
		t.Errorf("clear left %d items", v.Len())
	}
}

// a random walk of pushes and pops checked against a model slice
func TestStackVecNeverExceedsCapacity(t *testing.T) {
	rand.Seed(2)
	const capacity = 16
	var storage [capacity]int
	v := NewStackVec(storage[:])
	model := []int{}

	for op := 0; op < 5000; op++ {
		if rand.Intn(3) > 0 {
			err := v.Push(op)
			if len(model) == capacity {
				if !errors.Is(err, ErrOverflow) {
					t.Fatalf("op %d: push on full vector returned %v", op, err)
				}
			} else {
				if err != nil {
					t.Fatalf("op %d: push failed: %v", op, err)
				}
				model = append(model, op)
			}
		} else {
			item, err := v.Pop()
			if len(model) == 0 {
				if !errors.Is(err, ErrUnderflow) {
					t.Fatalf("op %d: pop on empty vector returned %v", op, err)
				}
			} else {
				want := model[len(model)-1]
				model = model[:len(model)-1]
				if err != nil || item != want {
					t.Fatalf("op %d: pop returned %d (%v), want %d", op, item, err, want)
				}
			}
		}
		if v.Len() > v.Cap() {
			t.Fatalf("op %d: len %d exceeds cap %d", op, v.Len(), v.Cap())
		}
		if v.Len() != len(model) {
			t.Fatalf("op %d: len %d, model has %d", op, v.Len(), len(model))
		}
		for i, x := range v.AsSlice() {
			if model[i] != x {
				t.Fatalf("op %d: item %d is %d, model has %d", op, i, x, model[i])
			}
		}
	}
}
