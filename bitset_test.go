package phasor

import "testing"

func TestBitsetSetAndTest(t *testing.T) {
	b := NewBitset(10)
	if !b.IsEmpty() {
		t.Fatal("fresh bitset should be empty")
	}
	b.Set(3)
	b.Set(9)
	if !b.Test(3) || !b.Test(9) {
		t.Error("Set bits did not read back as set")
	}
	if b.Test(4) {
		t.Error("unset bit 4 read back as set")
	}
	if b.IsEmpty() {
		t.Error("non-empty bitset reported empty")
	}
	if got := b.FirstSet(); got != 3 {
		t.Errorf("FirstSet() = %d, want 3", got)
	}
}

func TestBitsetFirstSetOnEmpty(t *testing.T) {
	if got := NewBitset(5).FirstSet(); got != -1 {
		t.Errorf("FirstSet() on empty = %d, want -1", got)
	}
}

func TestBitsetAndAndCount(t *testing.T) {
	a := NewBitset(10)
	a.Set(1)
	a.Set(2)
	b := NewBitset(10)
	b.Set(2)
	b.Set(3)

	if got := a.AndCount(b); got != 1 {
		t.Errorf("AndCount = %d, want 1", got)
	}
	and := a.And(b)
	if !and.Test(2) || and.Test(1) || and.Test(3) {
		t.Errorf("And result wrong: Test(1)=%v Test(2)=%v Test(3)=%v", and.Test(1), and.Test(2), and.Test(3))
	}
}

func TestBitsetSingletonAndClone(t *testing.T) {
	s := Singleton(70, 65) // exercises the second word
	if s.FirstSet() != 65 {
		t.Errorf("Singleton(70,65).FirstSet() = %d, want 65", s.FirstSet())
	}
	clone := s.Clone()
	clone.Set(0)
	if s.Test(0) {
		t.Error("mutating a clone affected the original bitset")
	}
}
