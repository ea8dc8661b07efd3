package phasor

import "testing"

func TestRescoreObservedKeepsOnlyTheObservedMinimum(t *testing.T) {
	panel := NewReferencePanel(2, 3)
	// hap0+hap1 matches the observed row exactly; hap0+hap2 does not.
	panel.Set(0, 0, 0)
	panel.Set(1, 0, 0)
	panel.Set(0, 1, 1)
	panel.Set(1, 1, 1)
	panel.Set(0, 2, 0)
	panel.Set(1, 2, 0)
	w := Window{Start: 0, End: 2}
	reps := []int{0, 1, 2}
	obs := []uint8{1, 1}
	missing := []bool{false, false}
	trail := []RepPair{{I: 0, J: 1, Score: -99}, {I: 0, J: 2, Score: -50}}

	survivors := RescoreObserved(panel, reps, w, obs, missing, trail)
	if len(survivors) != 1 {
		t.Fatalf("got %d survivors, want 1", len(survivors))
	}
	if survivors[0].I != 0 || survivors[0].J != 1 {
		t.Errorf("survivor = %+v, want (0,1)", survivors[0])
	}
	if survivors[0].Score != 0 {
		t.Errorf("survivor Score = %v, want 0 (exact observed match)", survivors[0].Score)
	}
}

func TestRescoreObservedIgnoresMissingPositions(t *testing.T) {
	panel := NewReferencePanel(2, 2)
	panel.Set(0, 0, 1)
	panel.Set(1, 0, 1)
	panel.Set(0, 1, 0)
	panel.Set(1, 1, 0)
	w := Window{Start: 0, End: 2}
	reps := []int{0, 1}
	// Position 0 is missing and would otherwise disagree with pair (0,1);
	// position 1 is observed and agrees, so the pair should still win.
	obs := []uint8{9, 1}
	missing := []bool{true, false}
	trail := []RepPair{{I: 0, J: 1}}

	survivors := RescoreObserved(panel, reps, w, obs, missing, trail)
	if len(survivors) != 1 || survivors[0].Score != 0 {
		t.Errorf("survivors = %v, want a single zero-error survivor", survivors)
	}
}

func TestRescoreObservedEmptyTrail(t *testing.T) {
	panel := NewReferencePanel(1, 1)
	w := Window{Start: 0, End: 1}
	if got := RescoreObserved(panel, nil, w, nil, nil, nil); got != nil {
		t.Errorf("got %v, want nil", got)
	}
}
