package phasor

import "testing"

func TestBuildWindowsRemainderAbsorbedByLastWindow(t *testing.T) {
	windows := BuildWindows(10, 4, 1)
	if len(windows) != 2 {
		t.Fatalf("got %d windows, want 2", len(windows))
	}
	total := 0
	for i, w := range windows {
		if w.Index != i {
			t.Errorf("window %d has Index %d", i, w.Index)
		}
		total += w.Width()
	}
	if total != 10 {
		t.Errorf("windows cover %d markers, want 10", total)
	}
	if windows[0].Start != 0 || windows[0].End != 4 {
		t.Errorf("window 0 = [%d,%d), want [0,4)", windows[0].Start, windows[0].End)
	}
	if windows[1].Start != 4 || windows[1].End != 10 {
		t.Errorf("window 1 = [%d,%d), want [4,10) (absorbing the remainder)", windows[1].Start, windows[1].End)
	}
	if windows[0].FlankStart != 0 || windows[0].FlankEnd != 5 {
		t.Errorf("window 0 flank = [%d,%d), want [0,5)", windows[0].FlankStart, windows[0].FlankEnd)
	}
	if windows[1].FlankStart != 3 || windows[1].FlankEnd != 10 {
		t.Errorf("window 1 flank = [%d,%d), want [3,10)", windows[1].FlankStart, windows[1].FlankEnd)
	}
}

func TestBuildWindowsRejectsWidthWiderThanMarkerAxis(t *testing.T) {
	if w := BuildWindows(3, 4, 0); w != nil {
		t.Errorf("got %v windows, want nil", w)
	}
	if w := BuildWindows(10, 0, 0); w != nil {
		t.Errorf("got %v windows, want nil", w)
	}
}

func TestBuildWindowsSingleWindow(t *testing.T) {
	windows := BuildWindows(8, 8, 2)
	if len(windows) != 1 {
		t.Fatalf("got %d windows, want 1", len(windows))
	}
	if windows[0].Start != 0 || windows[0].End != 8 {
		t.Errorf("single window = [%d,%d), want [0,8)", windows[0].Start, windows[0].End)
	}
}

func TestHapPairSwapped(t *testing.T) {
	p := HapPair{Left: 2, Right: 5}
	s := p.Swapped()
	if s.Left != 5 || s.Right != 2 {
		t.Errorf("Swapped() = %+v, want {5 2}", s)
	}
	if p.Left != 2 || p.Right != 5 {
		t.Errorf("Swapped() mutated the receiver: %+v", p)
	}
}

func TestTargetMatrixMissingSentinel(t *testing.T) {
	tm := NewTargetMatrix(3, []string{"a", "b"})
	for m := 0; m < 3; m++ {
		for k := 0; k < 2; k++ {
			if _, missing := tm.At(m, k); !missing {
				t.Errorf("At(%d,%d) not missing in a freshly allocated matrix", m, k)
			}
		}
	}
	tm.Set(1, 0, 2)
	if v, missing := tm.At(1, 0); missing || v != 2 {
		t.Errorf("At(1,0) = (%d,%v), want (2,false)", v, missing)
	}
	if _, missing := tm.At(1, 1); !missing {
		t.Errorf("At(1,1) should remain missing")
	}
}
