// Copyright (C) The Lightning Authors. All rights reserved.
//
// SPDX-License-Identifier: AGPL-3.0

package phasor

import (
	"sort"

	"golang.org/x/crypto/blake2b"
)

// BuildUniqueHaplotypeMap groups panel's columns into equivalence
// classes under exact equality on w's flanked rows (C1). Representative
// of a class is the minimum column index in that class.
//
// Columns are first bucketed by a blake2b digest of their flanked rows,
// the same trick tileLibrary.getRef uses to avoid comparing every
// column against every other column byte-for-byte; only columns that
// land in the same bucket are then compared directly, and a digest
// collision falls back to the full comparison rather than being trusted
// on its own.
func BuildUniqueHaplotypeMap(panel *ReferencePanel, w Window) *UniqueHaplotypeMap {
	d := panel.NumHaplotypes
	classOf := make([]int, d)
	for i := range classOf {
		classOf[i] = -1
	}

	buckets := map[[blake2b.Size256]byte][]int{}
	digest := make([]byte, 0, (w.FlankEnd-w.FlankStart+7)/8)
	for h := 0; h < d; h++ {
		digest = digest[:0]
		var bitbuf, nbits byte
		for m := w.FlankStart; m < w.FlankEnd; m++ {
			bitbuf |= panel.At(m, h) << nbits
			nbits++
			if nbits == 8 {
				digest = append(digest, bitbuf)
				bitbuf, nbits = 0, 0
			}
		}
		if nbits > 0 {
			digest = append(digest, bitbuf)
		}
		sum := blake2b.Sum256(digest)
		buckets[sum] = append(buckets[sum], h)
	}

	reps := make([]int, 0, d)
	for _, cols := range buckets {
		for len(cols) > 0 {
			anchor := cols[0]
			group := []int{anchor}
			rest := cols[:0]
			for _, other := range cols[1:] {
				if columnsEqual(panel, w, anchor, other) {
					group = append(group, other)
				} else {
					rest = append(rest, other)
				}
			}
			rep := anchor
			for _, c := range group {
				if c < rep {
					rep = c
				}
			}
			for _, c := range group {
				classOf[c] = rep
			}
			reps = append(reps, rep)
			cols = rest
		}
	}

	// ascending order, independent of map iteration order.
	sort.Ints(reps)

	return &UniqueHaplotypeMap{Window: w, ClassOf: classOf, Representatives: reps}
}

func columnsEqual(panel *ReferencePanel, w Window, a, b int) bool {
	for m := w.FlankStart; m < w.FlankEnd; m++ {
		if panel.At(m, a) != panel.At(m, b) {
			return false
		}
	}
	return true
}
