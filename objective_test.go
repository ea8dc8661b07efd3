package phasor

import "testing"

// buildSmallObjective constructs a 2-marker, 2-representative objective
// by hand: haplotype columns [0,0] and [1,1], one sample with working
// values [1,1]. The expected M and N entries below are worked out from
// §4.2's definitions directly, not read back from the implementation.
func buildSmallObjective() *Objective {
	panel := NewReferencePanel(2, 2)
	panel.Set(0, 0, 0)
	panel.Set(1, 0, 0)
	panel.Set(0, 1, 1)
	panel.Set(1, 1, 1)
	w := Window{Start: 0, End: 2, FlankStart: 0, FlankEnd: 2}
	uhm := &UniqueHaplotypeMap{Window: w, ClassOf: []int{0, 1}, Representatives: []int{0, 1}}
	xfloat := []float64{1, 1} // one sample, two markers, both observed as 1
	return BuildObjective(panel, 1, xfloat, w, uhm)
}

func TestBuildObjective(t *testing.T) {
	obj := buildSmallObjective()
	cases := []struct{ i, j int; want float64 }{
		{0, 0, 0},
		{1, 1, 8},
		{0, 1, 2},
		{1, 0, 2},
	}
	for _, c := range cases {
		if got := obj.M.At(c.i, c.j); got != c.want {
			t.Errorf("M[%d][%d] = %v, want %v", c.i, c.j, got, c.want)
		}
	}
	if got := obj.N.At(0, 0); got != 0 {
		t.Errorf("N[0][0] = %v, want 0", got)
	}
	if got := obj.N.At(0, 1); got != 4 {
		t.Errorf("N[0][1] = %v, want 4", got)
	}
}

func TestSearchPairsBestSoFarTrail(t *testing.T) {
	obj := buildSmallObjective()
	trails := SearchPairs(obj, PolicyBestSoFarTrail)
	if len(trails) != 1 {
		t.Fatalf("got %d sample trails, want 1", len(trails))
	}
	trail := trails[0]
	want := []RepPair{{I: 0, J: 0, Score: 0}, {I: 0, J: 1, Score: -2}}
	if len(trail) != len(want) {
		t.Fatalf("trail = %v, want %v", trail, want)
	}
	for i := range want {
		if trail[i] != want[i] {
			t.Errorf("trail[%d] = %+v, want %+v", i, trail[i], want[i])
		}
	}
}

func TestSearchPairsAllEqualBestKeepsOnlyTheMinimum(t *testing.T) {
	obj := buildSmallObjective()
	trails := SearchPairs(obj, PolicyAllEqualBest)
	trail := trails[0]
	if len(trail) != 1 || trail[0].I != 0 || trail[0].J != 1 {
		t.Errorf("trail = %v, want a single (0,1) entry", trail)
	}
}

func TestSearchPairsBestOnlyKeepsTheLastBest(t *testing.T) {
	obj := buildSmallObjective()
	trails := SearchPairs(obj, PolicyBestOnly)
	trail := trails[0]
	if len(trail) != 1 || trail[0].I != 0 || trail[0].J != 1 {
		t.Errorf("trail = %v, want a single (0,1) entry", trail)
	}
}
