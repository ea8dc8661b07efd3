package phasor

import "testing"

func TestLocateBreakpointBothStrandsMatch(t *testing.T) {
	panel := NewReferencePanel(2, 2)
	x := []uint8{1, 1}
	missing := []bool{false, false}
	bp := LocateBreakpoint(panel, 0, x, missing, HapPair{0, 1}, HapPair{0, 1})
	if bp.Crossed {
		t.Error("identical pairs should not report Crossed")
	}
	if bp.Strand1Switch != 2 || bp.Strand2Switch != 2 {
		t.Errorf("got %+v, want both switches suppressed at span=2", bp)
	}
}

func TestLocateBreakpointBothStrandsMatchCrossed(t *testing.T) {
	panel := NewReferencePanel(2, 2)
	x := []uint8{1, 1}
	missing := []bool{false, false}
	bp := LocateBreakpoint(panel, 0, x, missing, HapPair{0, 1}, HapPair{1, 0})
	if !bp.Crossed {
		t.Error("swapped-order identical pairs should report Crossed")
	}
	if bp.Strand1Switch != 2 || bp.Strand2Switch != 2 {
		t.Errorf("got %+v, want both switches suppressed", bp)
	}
}

// TestLocateBreakpointSingleSwitch is the single-breakpoint worked
// example: strand1 switches from haplotype 0 to haplotype 1 exactly
// halfway through an 8-marker combined span, strand2 (haplotype 2)
// stays constant throughout.
func TestLocateBreakpointSingleSwitch(t *testing.T) {
	panel := NewReferencePanel(8, 3)
	hap0 := []uint8{0, 0, 0, 0, 1, 1, 1, 1}
	hap1 := []uint8{0, 1, 0, 1, 0, 1, 0, 1}
	hap2 := []uint8{0, 0, 1, 1, 0, 0, 1, 1}
	for m := 0; m < 8; m++ {
		panel.Set(m, 0, hap0[m])
		panel.Set(m, 1, hap1[m])
		panel.Set(m, 2, hap2[m])
	}
	x := make([]uint8, 8)
	for m := 0; m < 4; m++ {
		x[m] = hap0[m] + hap2[m]
	}
	for m := 4; m < 8; m++ {
		x[m] = hap1[m] + hap2[m]
	}
	missing := make([]bool, 8)

	bp := LocateBreakpoint(panel, 0, x, missing, HapPair{Left: 0, Right: 2}, HapPair{Left: 1, Right: 2})
	if bp.Crossed {
		t.Error("strand2 carries over directly; Crossed should be false")
	}
	if bp.Strand2Switch != 8 {
		t.Errorf("Strand2Switch = %d, want 8 (no switch)", bp.Strand2Switch)
	}
	if bp.Strand1Switch != 4 {
		t.Errorf("Strand1Switch = %d, want 4", bp.Strand1Switch)
	}
}

// TestLocateBreakpointDoubleSwitch exercises the default (neither
// strand matches) branch with a span-4 synthetic example where strand1
// switches at offset 2 and strand2 at offset 3. Because prev's two
// haplotypes are identical, as are next's, the swapped split (3,2) fits
// exactly as well; the nested scan tries b1 in ascending order and stops
// at the first zero-error split, so (2,3) is the one reported.
func TestLocateBreakpointDoubleSwitch(t *testing.T) {
	panel := NewReferencePanel(4, 4)
	old := []uint8{0, 0, 0, 0}
	new_ := []uint8{1, 1, 1, 1}
	for m := 0; m < 4; m++ {
		panel.Set(m, 0, old[m])  // prev.Left
		panel.Set(m, 1, new_[m]) // next.Left
		panel.Set(m, 2, old[m])  // prev.Right
		panel.Set(m, 3, new_[m]) // next.Right
	}
	strand1 := []uint8{0, 0, 1, 1} // old,old,new,new -> switch at offset 2
	strand2 := []uint8{0, 0, 0, 1} // old,old,old,new -> switch at offset 3
	x := make([]uint8, 4)
	for m := range x {
		x[m] = strand1[m] + strand2[m]
	}
	missing := make([]bool, 4)

	bp := LocateBreakpoint(panel, 0, x, missing, HapPair{Left: 0, Right: 2}, HapPair{Left: 1, Right: 3})
	if bp.Crossed {
		t.Error("direct orientation should be preferred on a cost tie")
	}
	if bp.Strand1Switch != 2 {
		t.Errorf("Strand1Switch = %d, want 2", bp.Strand1Switch)
	}
	if bp.Strand2Switch != 3 {
		t.Errorf("Strand2Switch = %d, want 3", bp.Strand2Switch)
	}
}

func TestBestSingleBreakpointShortCircuitsOnZero(t *testing.T) {
	fixed := []uint8{0, 0, 0, 0}
	old := []uint8{0, 0, 1, 1}
	new_ := []uint8{1, 1, 0, 0}
	x := []uint8{0, 0, 1, 1} // matches "old" throughout -> b should be span (no need to switch)
	missing := []bool{false, false, false, false}
	b, cost := bestSingleBreakpoint(4, x, missing, fixed, old, new_)
	if cost != 0 {
		t.Fatalf("cost = %v, want 0", cost)
	}
	if b != 4 {
		t.Errorf("b = %d, want 4 (old matches for the whole span)", b)
	}
}
