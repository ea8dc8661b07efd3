package phasor

// RepPair is a candidate pair in local representative-index space, as
// produced by C3 and consumed by C5. I and J are indices into an
// Objective's Reps slice, with I<=J.
type RepPair struct {
	I, J  int
	Score float64
}

// SearchPairs scans the upper triangle of obj for every sample and
// returns, per sample, the candidate trail selected by policy (C3).
// Emission order is fixed at (j outer, i inner), per §4.3.
func SearchPairs(obj *Objective, policy ScorePolicy) [][]RepPair {
	dtilde := len(obj.Reps)
	numSamples, _ := obj.N.Dims()
	out := make([][]RepPair, numSamples)
	for k := 0; k < numSamples; k++ {
		out[k] = searchPairsForSample(obj, k, dtilde, policy)
	}
	return out
}

func searchPairsForSample(obj *Objective, k, dtilde int, policy ScorePolicy) []RepPair {
	best := float64(0)
	haveBest := false
	var trail []RepPair
	for j := 0; j < dtilde; j++ {
		nj := obj.N.At(k, j)
		for i := 0; i <= j; i++ {
			score := obj.M.At(i, j) - obj.N.At(k, i) - nj
			switch policy {
			case PolicyBestSoFarTrail:
				if !haveBest || score <= best {
					trail = append(trail, RepPair{I: i, J: j, Score: score})
					if !haveBest || score < best {
						best, haveBest = score, true
					}
				}
			case PolicyAllEqualBest:
				if !haveBest || score < best {
					best, haveBest = score, true
					trail = append(trail[:0], RepPair{I: i, J: j, Score: score})
				} else if score == best {
					trail = append(trail, RepPair{I: i, J: j, Score: score})
				}
			default: // PolicyBestOnly
				if !haveBest || score <= best {
					best, haveBest = score, true
					trail = append(trail[:0], RepPair{I: i, J: j, Score: score})
				}
			}
		}
	}
	return trail
}
