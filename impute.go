// Copyright (C) The Lightning Authors. All rights reserved.
//
// SPDX-License-Identifier: AGPL-3.0

package phasor

import (
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat"
)

// InitXfloat builds the working copy of the target matrix used by C2:
// observed entries pass through, missing entries are replaced by the
// per-marker mean dosage across observed targets (C4 init), the same
// alternate-allele-frequency quantity numpycomvar.go computes via
// stat.Mean.
func InitXfloat(target *TargetMatrix) []float64 {
	xfloat := make([]float64, target.NumMarkers*target.NumSamples)
	observed := make([]float64, 0, target.NumSamples)
	for m := 0; m < target.NumMarkers; m++ {
		observed = observed[:0]
		for k := 0; k < target.NumSamples; k++ {
			if v, missing := target.At(m, k); !missing {
				observed = append(observed, float64(v))
			}
		}
		mean := 0.0
		if len(observed) > 0 {
			mean = stat.Mean(observed, nil)
		}
		base := m * target.NumSamples
		for k := 0; k < target.NumSamples; k++ {
			if v, missing := target.At(m, k); missing {
				xfloat[base+k] = mean
			} else {
				xfloat[base+k] = float64(v)
			}
		}
	}
	return xfloat
}

// SampleWindowResult is one individual's C4-through-C6 output for a
// single window.
type SampleWindowResult struct {
	Persisted     HapPair
	ObservedError float64
	Fast          FastCandidate
	DP            []HapPair
	Iterations    int
	Converged     bool
}

// WindowResult is the full per-window output consumed by the stitcher.
type WindowResult struct {
	UHM       *UniqueHaplotypeMap
	PerSample []SampleWindowResult
}

// RunWindow executes C1(already done)->C4(C2+C3+C5 internally)->C6 for
// one window, mutating xfloat's rows within the window in place as the
// refinement loop persists imputations (§4.4).
func RunWindow(panel *ReferencePanel, target *TargetMatrix, xfloat []float64, uhm *UniqueHaplotypeMap, cfg Config, rng *rand.Rand) *WindowResult {
	w := uhm.Window
	width := w.Width()
	numSamples := target.NumSamples
	reps := uhm.Representatives

	obsRows := make([][]uint8, numSamples)
	missRows := make([][]bool, numSamples)
	for k := 0; k < numSamples; k++ {
		obsRows[k] = make([]uint8, width)
		missRows[k] = make([]bool, width)
		for p := 0; p < width; p++ {
			v, missing := target.At(w.Start+p, k)
			obsRows[k][p] = v
			missRows[k][p] = missing
		}
	}

	finalSurvivors := make([][]RepPair, numSamples)
	finalPersisted := make([]HapPair, numSamples)
	finalObservedErr := make([]float64, numSamples)
	iterationsRun := make([]int, numSamples)

	objPrev := 0.0
	haveObjPrev := false
	converged := false

	maxIters := cfg.MaxIters
	if maxIters < 1 {
		maxIters = 1
	}

	for iter := 0; iter < maxIters; iter++ {
		obj := BuildObjective(panel, numSamples, xfloat, w, uhm)
		trails := SearchPairs(obj, cfg.ScorePolicy)

		objSum, discSum := 0.0, 0.0
		for k := 0; k < numSamples; k++ {
			survivors := RescoreObserved(panel, reps, w, obsRows[k], missRows[k], trails[k])
			if len(survivors) == 0 {
				continue
			}
			bestIdx, bestDisc := 0, windowDiscrepancy(panel, w, xfloat, missRows[k], numSamples, k, reps[survivors[0].I], reps[survivors[0].J])
			for t := 1; t < len(survivors); t++ {
				hi, hj := reps[survivors[t].I], reps[survivors[t].J]
				d := windowDiscrepancy(panel, w, xfloat, missRows[k], numSamples, k, hi, hj)
				if d < bestDisc {
					bestIdx, bestDisc = t, d
				}
			}
			chosen := survivors[bestIdx]
			hi, hj := reps[chosen.I], reps[chosen.J]
			for p := 0; p < width; p++ {
				if missRows[k][p] {
					xfloat[(w.Start+p)*numSamples+k] = float64(panel.At(w.Start+p, hi)) + float64(panel.At(w.Start+p, hj))
				}
			}
			finalSurvivors[k] = survivors
			finalPersisted[k] = HapPair{Left: hi, Right: hj}
			finalObservedErr[k] = chosen.Score
			iterationsRun[k] = iter + 1
			objSum += chosen.Score
			discSum += bestDisc
		}

		windowObj := objSum - discSum
		if haveObjPrev {
			diff := windowObj - objPrev
			if diff < 0 {
				diff = -diff
			}
			if diff < cfg.TolFun*(absF(objPrev)+1) {
				converged = true
				objPrev = windowObj
				break
			}
		}
		objPrev, haveObjPrev = windowObj, true
	}

	result := &WindowResult{UHM: uhm, PerSample: make([]SampleWindowResult, numSamples)}
	for k := 0; k < numSamples; k++ {
		sr := SampleWindowResult{
			Persisted:     finalPersisted[k],
			ObservedError: finalObservedErr[k],
			Iterations:    iterationsRun[k],
			Converged:     converged,
		}
		if cfg.FastMethod {
			sr.Fast = ExpandFast(uhm, sr.Persisted, panel.NumHaplotypes, cfg.UniqueOnly)
		} else {
			sr.DP = ExpandDP(uhm, reps, finalSurvivors[k], cfg.MaxCandidates, cfg.UniqueOnly, rng)
		}
		result.PerSample[k] = sr
	}
	return result
}

func windowDiscrepancy(panel *ReferencePanel, w Window, xfloat []float64, missRow []bool, numSamples, k, hi, hj int) float64 {
	sum := 0.0
	for p := 0; p < w.Width(); p++ {
		if !missRow[p] {
			continue
		}
		pred := float64(panel.At(w.Start+p, hi)) + float64(panel.At(w.Start+p, hj))
		d := xfloat[(w.Start+p)*numSamples+k] - pred
		sum += d * d
	}
	return sum
}

func absF(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}

// ImputeMosaics walks every finalized mosaic (C9) and fills missing
// allele slots from the two selected reference columns at each marker.
// Non-missing entries are preserved or overwritten per cfg.ImputeMode.
func ImputeMosaics(panel *ReferencePanel, target *TargetMatrix, mosaics []HaplotypeMosaicPair, cfg Config) *TargetMatrix {
	out := NewTargetMatrix(target.NumMarkers, target.SampleIDs)
	copy(out.data, target.data)

	strand1 := make([]int, target.NumMarkers)
	strand2 := make([]int, target.NumMarkers)
	for k, pair := range mosaics {
		mosaicHaplotypes(pair.Strand1, target.NumMarkers, cfg.ChunkOffset, strand1)
		mosaicHaplotypes(pair.Strand2, target.NumMarkers, cfg.ChunkOffset, strand2)
		for m := 0; m < target.NumMarkers; m++ {
			_, missing := target.At(m, k)
			if !missing && cfg.ImputeMode == ImputePreserveObserved {
				continue
			}
			predicted := panel.At(m, strand1[m]) + panel.At(m, strand2[m])
			out.Set(m, k, predicted)
		}
	}
	return out
}

// mosaicHaplotypes fills dst[marker] with the haplotype index the
// mosaic assigns to that marker, translating chunk-relative 1-based
// start markers back to 0-based global marker indices.
func mosaicHaplotypes(mosaic HaplotypeMosaic, numMarkers, chunkOffset int, dst []int) {
	for i, seg := range mosaic {
		start := seg.StartMarker - 1 - chunkOffset
		end := numMarkers
		if i+1 < len(mosaic) {
			end = mosaic[i+1].StartMarker - 1 - chunkOffset
		}
		if start < 0 {
			start = 0
		}
		if end > numMarkers {
			end = numMarkers
		}
		for m := start; m < end; m++ {
			dst[m] = seg.Haplotype
		}
	}
}
