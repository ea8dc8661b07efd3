// Copyright (C) The Lightning Authors. All rights reserved.
//
// SPDX-License-Identifier: AGPL-3.0

package phasor

// Breakpoint is the C8 output for one pair of adjacent windows: the
// marker offset (within the combined 2W span, measured from the start
// of the earlier window) at which each strand switches haplotype. A
// value equal to the span means "no switch" (suppressed), per the edge
// semantics in §4.8. Crossed reports whether next's two haplotypes
// continue prev's strand1/strand2 in swapped order.
type Breakpoint struct {
	Crossed        bool
	Strand1Switch  int
	Strand2Switch  int
}

// LocateBreakpoint finds the breakpoint(s) between prev (the previous
// window's selected pair) and next (the next window's selected pair),
// given the observed target genotype and missingness over the combined
// span [prevStart, prevStart+len(x)).
func LocateBreakpoint(panel *ReferencePanel, prevStart int, x []uint8, missing []bool, prev, next HapPair) Breakpoint {
	span := len(x)
	col := func(hap int) []uint8 {
		c := make([]uint8, span)
		for p := 0; p < span; p++ {
			c[p] = panel.At(prevStart+p, hap)
		}
		return c
	}

	switch {
	case prev.Left == next.Left && prev.Right == next.Right:
		return Breakpoint{Strand1Switch: span, Strand2Switch: span}
	case prev.Left == next.Right && prev.Right == next.Left:
		return Breakpoint{Crossed: true, Strand1Switch: span, Strand2Switch: span}
	case prev.Left == next.Left:
		fixed, old, new := col(prev.Left), col(prev.Right), col(next.Right)
		b, _ := bestSingleBreakpoint(span, x, missing, fixed, old, new)
		return Breakpoint{Strand1Switch: span, Strand2Switch: b}
	case prev.Right == next.Right:
		fixed, old, new := col(prev.Right), col(prev.Left), col(next.Left)
		b, _ := bestSingleBreakpoint(span, x, missing, fixed, old, new)
		return Breakpoint{Strand1Switch: b, Strand2Switch: span}
	case prev.Left == next.Right:
		fixed, old, new := col(prev.Left), col(prev.Right), col(next.Left)
		b, _ := bestSingleBreakpoint(span, x, missing, fixed, old, new)
		return Breakpoint{Crossed: true, Strand1Switch: span, Strand2Switch: b}
	case prev.Right == next.Left:
		fixed, old, new := col(prev.Right), col(prev.Left), col(next.Right)
		b, _ := bestSingleBreakpoint(span, x, missing, fixed, old, new)
		return Breakpoint{Crossed: true, Strand1Switch: b, Strand2Switch: span}
	default:
		oldL, newL := col(prev.Left), col(next.Left)
		oldR, newR := col(prev.Right), col(next.Right)
		b1d, b2d, costD := bestDoubleBreakpoint(span, x, missing, oldL, newL, oldR, newR)

		oldL2, newL2 := col(prev.Left), col(next.Right)
		oldR2, newR2 := col(prev.Right), col(next.Left)
		b1c, b2c, costC := bestDoubleBreakpoint(span, x, missing, oldL2, newL2, oldR2, newR2)

		if costC < costD {
			return Breakpoint{Crossed: true, Strand1Switch: b1c, Strand2Switch: b2c}
		}
		return Breakpoint{Strand1Switch: b1d, Strand2Switch: b2d}
	}
}

// bestSingleBreakpoint finds the offset b in [0,span] minimizing
//
//	sum_{p<b}(x[p]-fixed[p]-old[p])^2 + sum_{p>=b}(x[p]-fixed[p]-new[p])^2
//
// over observed positions only. Positions where old[p]==new[p]
// contribute the same amount to the sum regardless of which side of b
// they fall on, so the prefix/suffix split already absorbs the "skip
// positions where old and new alleles agree" shortcut from §4.8 without
// any special-casing.
func bestSingleBreakpoint(span int, x []uint8, missing []bool, fixed, old, new []uint8) (int, float64) {
	costOld := make([]float64, span)
	costNew := make([]float64, span)
	for p := 0; p < span; p++ {
		if missing[p] {
			continue
		}
		v := float64(x[p])
		f := float64(fixed[p])
		do := v - f - float64(old[p])
		dn := v - f - float64(new[p])
		costOld[p] = do * do
		costNew[p] = dn * dn
	}
	prefixOld := make([]float64, span+1)
	for b := 0; b < span; b++ {
		prefixOld[b+1] = prefixOld[b] + costOld[b]
	}
	suffixNew := make([]float64, span+1)
	for b := span - 1; b >= 0; b-- {
		suffixNew[b] = suffixNew[b+1] + costNew[b]
	}

	bestB, bestCost := 0, prefixOld[0]+suffixNew[0]
	for b := 0; b <= span; b++ {
		c := prefixOld[b] + suffixNew[b]
		if c < bestCost {
			bestB, bestCost = b, c
		}
		if c == 0 {
			return b, 0
		}
	}
	return bestB, bestCost
}

// bestDoubleBreakpoint finds independent breakpoints (b1,b2) minimizing
// the observed error when strand A switches old1->new1 at b1 and strand
// B switches old2->new2 at b2, by nested scan: for each b1, the best b2
// is found in one linear pass via bestSingleBreakpoint.
func bestDoubleBreakpoint(span int, x []uint8, missing []bool, old1, new1, old2, new2 []uint8) (b1, b2 int, cost float64) {
	strandA := make([]uint8, span)
	bestCost := -1.0
	bestB1, bestB2 := 0, 0
	for candidateB1 := 0; candidateB1 <= span; candidateB1++ {
		for p := 0; p < span; p++ {
			if p < candidateB1 {
				strandA[p] = old1[p]
			} else {
				strandA[p] = new1[p]
			}
		}
		b2Try, c := bestSingleBreakpoint(span, x, missing, strandA, old2, new2)
		if bestCost < 0 || c < bestCost {
			bestCost, bestB1, bestB2 = c, candidateB1, b2Try
		}
		if c == 0 {
			return candidateB1, b2Try, 0
		}
	}
	return bestB1, bestB2, bestCost
}
