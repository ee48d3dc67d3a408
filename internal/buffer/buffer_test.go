package buffer

import "testing"

func TestBoundedPushWithinCapacity(t *testing.T) {
	b := NewBounded[int](3)
	for i, v := range []int{1, 2, 3} {
		if !b.Push(v) {
			t.Fatalf("Push(%d) at index %d failed unexpectedly", v, i)
		}
	}
	if b.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", b.Len())
	}
}

func TestBoundedPushRejectsOverflow(t *testing.T) {
	b := NewBounded[int](2)
	if !b.Push(1) || !b.Push(2) {
		t.Fatal("unexpected Push failure within capacity")
	}
	if b.Push(3) {
		t.Fatal("Push beyond capacity should return false")
	}
	if b.Len() != 2 {
		t.Fatalf("Len() = %d after rejected push, want unchanged 2", b.Len())
	}
}

func TestBoundedReset(t *testing.T) {
	b := NewBounded[string](2)
	b.Push("a")
	b.Push("b")
	b.Reset()
	if b.Len() != 0 {
		t.Fatalf("Len() = %d after Reset, want 0", b.Len())
	}
	if !b.Push("c") {
		t.Fatal("Push after Reset should succeed")
	}
}

func TestBoundedCap(t *testing.T) {
	b := NewBounded[byte](42)
	if b.Cap() != 42 {
		t.Fatalf("Cap() = %d, want 42", b.Cap())
	}
}

func TestBoundedSliceReflectsContents(t *testing.T) {
	b := NewBounded[int](4)
	b.Push(10)
	b.Push(20)
	got := b.Slice()
	want := []int{10, 20}
	if len(got) != len(want) {
		t.Fatalf("Slice() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Slice()[%d] = %d, want %d", i, got[i], want[i])
		}
	}
}
