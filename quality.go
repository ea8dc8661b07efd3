// Copyright (C) The Lightning Authors. All rights reserved.
//
// SPDX-License-Identifier: AGPL-3.0

package phasor

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// ComputeQuality scores every marker in the imputed output (§4.10).
// Typed markers (at least one sample had an observed call) are scored
// by the mean squared residual between the observed calls and the
// values imputed holds at those same positions (Engine.Run passes the
// mosaics' predicted dosage for every entry, observed or not). Untyped markers
// have no ground truth to check against, so they take the average of
// the two nearest typed markers' scores by genomic index, one on each
// side; an edge marker with a neighbor on only one side uses that
// single neighbor. Every marker then gets a qualitative Band, the same
// way chisquare.go turns a raw statistic into a p-value via
// distuv.ChiSquared, except here it's distuv.Normal fitted to the
// batch's own score distribution.
func ComputeQuality(target, imputed *TargetMatrix) []SNPQuality {
	numMarkers := target.NumMarkers
	numSamples := target.NumSamples

	var typedMarkers []int
	typedScore := make(map[int]float64)
	for m := 0; m < numMarkers; m++ {
		if markerHasObserved(target, m) {
			typedMarkers = append(typedMarkers, m)
			typedScore[m] = typedResidual(target, imputed, m, numSamples)
		}
	}

	out := make([]SNPQuality, numMarkers)
	for m := 0; m < numMarkers; m++ {
		if s, ok := typedScore[m]; ok {
			out[m] = SNPQuality{Typed: true, Score: s}
			continue
		}
		left, right := nearestTyped(typedMarkers, m)
		out[m] = SNPQuality{Typed: false, Score: flankAverage(typedScore, left, right)}
	}
	bandQuality(out)
	return out
}

func markerHasObserved(target *TargetMatrix, m int) bool {
	for k := 0; k < target.NumSamples; k++ {
		if _, missing := target.At(m, k); !missing {
			return true
		}
	}
	return false
}

func typedResidual(target, imputed *TargetMatrix, m, numSamples int) float64 {
	sq := make([]float64, 0, numSamples)
	for k := 0; k < numSamples; k++ {
		obs, missing := target.At(m, k)
		if missing {
			continue
		}
		pred, _ := imputed.At(m, k)
		d := float64(obs) - float64(pred)
		sq = append(sq, d*d)
	}
	if len(sq) == 0 {
		return 0
	}
	return stat.Mean(sq, nil)
}

// nearestTyped returns the largest typed marker index below m and the
// smallest typed marker index above m, or -1 for either side with no
// such neighbor. typedMarkers must be sorted ascending.
func nearestTyped(typedMarkers []int, m int) (left, right int) {
	left, right = -1, -1
	i := sort.Search(len(typedMarkers), func(i int) bool { return typedMarkers[i] >= m })
	if i > 0 {
		left = typedMarkers[i-1]
	}
	if i < len(typedMarkers) {
		right = typedMarkers[i]
	}
	return left, right
}

// flankAverage averages the typed scores at left and right, falling
// back to whichever single side is present.
func flankAverage(score map[int]float64, left, right int) float64 {
	switch {
	case left >= 0 && right >= 0:
		return (score[left] + score[right]) / 2
	case left >= 0:
		return score[left]
	case right >= 0:
		return score[right]
	default:
		return 0
	}
}

// bandQuality fits a Normal to the batch's own Score distribution and
// assigns each marker a tier by where its Score falls in that
// distribution: the best (lowest-residual) third is "high", the middle
// third "medium", the rest "low". A zero-variance batch (e.g. a single
// marker, or every score identical) bands everything "high".
func bandQuality(out []SNPQuality) {
	if len(out) == 0 {
		return
	}
	scores := make([]float64, len(out))
	for i, q := range out {
		scores[i] = q.Score
	}
	mean, variance := stat.MeanVariance(scores, nil)
	if variance == 0 {
		for i := range out {
			out[i].Band = "high"
		}
		return
	}
	dist := distuv.Normal{Mu: mean, Sigma: math.Sqrt(variance)}
	for i := range out {
		switch p := dist.CDF(out[i].Score); {
		case p <= 1.0/3:
			out[i].Band = "high"
		case p <= 2.0/3:
			out[i].Band = "medium"
		default:
			out[i].Band = "low"
		}
	}
}
