package phasor

// RescoreObserved restricts trail to target k's observed (non-missing)
// entries and keeps only the pairs attaining the minimum observed-error
// (C5). window and panel give access to the raw per-marker alleles;
// obs/missing are target's observed values and missing mask for the
// window's markers, indexed 0..width-1.
func RescoreObserved(panel *ReferencePanel, reps []int, w Window, obs []uint8, missing []bool, trail []RepPair) []RepPair {
	if len(trail) == 0 {
		return nil
	}
	errs := make([]float64, len(trail))
	best := 0.0
	haveBest := false
	for t, pair := range trail {
		hi, hj := reps[pair.I], reps[pair.J]
		var sum float64
		for p := 0; p < w.Width(); p++ {
			if missing[p] {
				continue
			}
			pred := float64(panel.At(w.Start+p, hi)) + float64(panel.At(w.Start+p, hj))
			d := float64(obs[p]) - pred
			sum += d * d
		}
		errs[t] = sum
		if !haveBest || sum < best {
			best, haveBest = sum, true
		}
	}
	survivors := make([]RepPair, 0, len(trail))
	for t, pair := range trail {
		if errs[t] == best {
			// Score is repurposed here to carry the observed-only
			// error, which is what every caller downstream of C5
			// actually wants.
			survivors = append(survivors, RepPair{I: pair.I, J: pair.J, Score: errs[t]})
		}
	}
	return survivors
}
