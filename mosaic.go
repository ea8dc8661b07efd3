// Copyright (C) The Lightning Authors. All rights reserved.
//
// SPDX-License-Identifier: AGPL-3.0

package phasor

import "math"

// StitchFast runs the bitset intersection-chain variant of C7 across one
// sample's per-window candidates, returning one concrete HapPair per
// window plus the two strands' final survivor bitsets (the ambiguity
// class each strand was still carrying for its last run, before that
// run gets collapsed to a representative). Before intersecting, each
// window's pair is oriented against the running survivor set by
// comparing |A∧C|+|B∧D| to |A∧D|+|B∧C| and swapping strand labels when
// the crossed total is strictly greater. Whenever a strand's survivor
// set would go empty, the run since the last flush is collapsed to that
// survivor's lowest-index haplotype and a fresh run starts at the
// current window.
func StitchFast(cands []FastCandidate) ([]HapPair, *Bitset, *Bitset) {
	n := len(cands)
	if n == 0 {
		return nil, nil, nil
	}
	domain := cands[0].Strand1.n
	strandA := make([]*Bitset, n)
	strandB := make([]*Bitset, n)
	for w := 0; w < n; w++ {
		strandA[w] = cands[w].Strand1.Clone()
		strandB[w] = cands[w].Strand2.Clone()
	}

	surv1 := strandA[0].Clone()
	surv2 := strandB[0].Clone()
	runStart1, runStart2 := 0, 0

	flush := func(strands []*Bitset, from, to, hap int) {
		for w := from; w < to; w++ {
			strands[w] = Singleton(domain, hap)
		}
	}

	for w := 1; w < n; w++ {
		c, d := strandA[w], strandB[w]
		direct := surv1.AndCount(c) + surv2.AndCount(d)
		crossed := surv1.AndCount(d) + surv2.AndCount(c)
		if crossed > direct {
			strandA[w], strandB[w] = strandB[w], strandA[w]
			c, d = d, c
		}

		if next := surv1.And(c); next.IsEmpty() {
			flush(strandA, runStart1, w, surv1.FirstSet())
			surv1 = c.Clone()
			runStart1 = w
		} else {
			surv1 = next
		}

		if next := surv2.And(d); next.IsEmpty() {
			flush(strandB, runStart2, w, surv2.FirstSet())
			surv2 = d.Clone()
			runStart2 = w
		} else {
			surv2 = next
		}
	}
	finalSurv1, finalSurv2 := surv1.Clone(), surv2.Clone()

	flush(strandA, runStart1, n, surv1.FirstSet())
	flush(strandB, runStart2, n, surv2.FirstSet())

	selected := make([]HapPair, n)
	for w := 0; w < n; w++ {
		selected[w] = HapPair{Left: strandA[w].FirstSet(), Right: strandB[w].FirstSet()}
	}
	return selected, finalSurv1, finalSurv2
}

// StitchDP runs the DP variant of C7: it picks one candidate pair per
// window so that the total switch cost across the whole sequence,
// weighted by lambda, is minimal. A forward pass records, for every
// candidate, its accumulated cost and cheapest predecessor; the
// sequence is then traced back from the cheapest final candidate.
// Switch cost is 0 when both strands carry over (in either order), 1
// when exactly one does, 2 otherwise. Ties favor the lowest candidate
// index, both when choosing a predecessor (only a strictly better cost
// replaces the incumbent) and at the final window.
func StitchDP(candidateLists [][]HapPair, lambda float64) []HapPair {
	n := len(candidateLists)
	if n == 0 {
		return nil
	}
	dp := make([][]float64, n)
	back := make([][]int, n)
	dp[0] = make([]float64, len(candidateLists[0]))
	back[0] = make([]int, len(candidateLists[0]))
	for i := range back[0] {
		back[0][i] = -1
	}

	for w := 1; w < n; w++ {
		cur, prev := candidateLists[w], candidateLists[w-1]
		dp[w] = make([]float64, len(cur))
		back[w] = make([]int, len(cur))
		for ci, c := range cur {
			best, bestIdx := math.Inf(1), -1
			for pi, p := range prev {
				cost := dp[w-1][pi] + lambda*switchCost(p, c)
				if cost < best {
					best, bestIdx = cost, pi
				}
			}
			dp[w][ci], back[w][ci] = best, bestIdx
		}
	}

	last := n - 1
	bestIdx, bestVal := 0, dp[last][0]
	for i := 1; i < len(dp[last]); i++ {
		if dp[last][i] < bestVal {
			bestVal, bestIdx = dp[last][i], i
		}
	}

	chosen := make([]int, n)
	chosen[last] = bestIdx
	for w := last; w > 0; w-- {
		chosen[w-1] = back[w][chosen[w]]
	}

	out := make([]HapPair, n)
	for w := 0; w < n; w++ {
		out[w] = candidateLists[w][chosen[w]]
	}
	return out
}

func switchCost(prev, next HapPair) float64 {
	switch {
	case prev.Left == next.Left && prev.Right == next.Right:
		return 0
	case prev.Left == next.Right && prev.Right == next.Left:
		return 0
	case prev.Left == next.Left || prev.Left == next.Right || prev.Right == next.Left || prev.Right == next.Right:
		return 1
	default:
		return 2
	}
}

// MaterializeMosaic walks a sample's per-window selected pairs and, via
// C8, produces a strictly-increasing mosaic for each strand. It tracks
// a running notion of "current strand1/strand2" haplotype identity and
// flips it whenever LocateBreakpoint reports a crossed orientation, so
// the same logic serves both StitchFast (where crossing has usually
// already been resolved and most calls are cheap both-match checks) and
// StitchDP (where consecutive picks may alternate orientation freely).
func MaterializeMosaic(windows []Window, panel *ReferencePanel, target *TargetMatrix, sample int, selected []HapPair, chunkOffset int) HaplotypeMosaicPair {
	n := len(windows)
	if n == 0 {
		return HaplotypeMosaicPair{}
	}

	cur := selected[0]
	mosaic1 := HaplotypeMosaic{{StartMarker: windows[0].Start + 1 + chunkOffset, Haplotype: cur.Left}}
	mosaic2 := HaplotypeMosaic{{StartMarker: windows[0].Start + 1 + chunkOffset, Haplotype: cur.Right}}

	for w := 1; w < n; w++ {
		next := selected[w]
		x, missing := combinedObserved(target, sample, windows[w-1], windows[w])
		bp := LocateBreakpoint(panel, windows[w-1].Start, x, missing, cur, next)
		span := len(x)

		oriented := next
		if bp.Crossed {
			oriented = HapPair{Left: next.Right, Right: next.Left}
		}

		if bp.Strand1Switch < span {
			marker := windows[w-1].Start + bp.Strand1Switch
			mosaic1 = appendSegment(mosaic1, marker+1+chunkOffset, oriented.Left)
		}
		if bp.Strand2Switch < span {
			marker := windows[w-1].Start + bp.Strand2Switch
			mosaic2 = appendSegment(mosaic2, marker+1+chunkOffset, oriented.Right)
		}
		cur = oriented
	}
	return HaplotypeMosaicPair{Strand1: mosaic1, Strand2: mosaic2}
}

// appendSegment appends a new mosaic segment, unless marker would not
// strictly exceed the previous segment's start, in which case the
// previous segment's haplotype is updated in place to preserve the
// strictly-increasing start-marker invariant.
func appendSegment(mosaic HaplotypeMosaic, marker, hap int) HaplotypeMosaic {
	if len(mosaic) > 0 && marker <= mosaic[len(mosaic)-1].StartMarker {
		mosaic[len(mosaic)-1].Haplotype = hap
		return mosaic
	}
	return append(mosaic, MosaicSegment{StartMarker: marker, Haplotype: hap})
}

// combinedObserved flattens target's observed values and missingness
// for one sample across two adjacent windows into a single span.
func combinedObserved(target *TargetMatrix, sample int, a, b Window) ([]uint8, []bool) {
	span := a.Width() + b.Width()
	x := make([]uint8, span)
	missing := make([]bool, span)
	i := 0
	for m := a.Start; m < a.End; m++ {
		x[i], missing[i] = target.At(m, sample)
		i++
	}
	for m := b.Start; m < b.End; m++ {
		x[i], missing[i] = target.At(m, sample)
		i++
	}
	return x, missing
}
