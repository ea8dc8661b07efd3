package phasor

import "gonum.org/v1/gonum/mat"

// Objective is the C2 output for one window: the dense M (haplotype
// cross-term) and N (target-haplotype inner product) matrices, indexed
// by local representative index, not raw haplotype index. Reps maps a
// local index back to the haplotype column it names.
type Objective struct {
	Reps []int
	M    *mat.Dense // Dtilde x Dtilde
	N    *mat.Dense // NumSamples x Dtilde
}

// BuildObjective assembles M and N for window w, using xfloat as the
// current working copy of the target matrix (§4.2). xfloat is indexed
// the same way as the full TargetMatrix (row-major, marker*NumSamples).
func BuildObjective(panel *ReferencePanel, numSamples int, xfloat []float64, w Window, uhm *UniqueHaplotypeMap) *Objective {
	width := w.Width()
	dtilde := len(uhm.Representatives)

	htilde := mat.NewDense(width, dtilde, nil)
	for j, rep := range uhm.Representatives {
		for i := 0; i < width; i++ {
			htilde.Set(i, j, float64(panel.At(w.Start+i, rep)))
		}
	}

	cross := mat.NewDense(dtilde, dtilde, nil)
	cross.Mul(htilde.T(), htilde)

	m := mat.NewDense(dtilde, dtilde, nil)
	normSq := make([]float64, dtilde)
	for i := 0; i < dtilde; i++ {
		normSq[i] = cross.At(i, i)
	}
	for j := 0; j < dtilde; j++ {
		for i := 0; i < j; i++ {
			v := normSq[i] + normSq[j] + 2*cross.At(i, j)
			m.Set(i, j, v)
			m.Set(j, i, v)
		}
		m.Set(j, j, 4*normSq[j])
	}

	xf := mat.NewDense(width, numSamples, nil)
	for i := 0; i < width; i++ {
		row := (w.Start + i) * numSamples
		for k := 0; k < numSamples; k++ {
			xf.Set(i, k, xfloat[row+k])
		}
	}
	n := mat.NewDense(numSamples, dtilde, nil)
	n.Mul(xf.T(), htilde)
	n.Scale(2, n)

	return &Objective{Reps: append([]int(nil), uhm.Representatives...), M: m, N: n}
}
