// Copyright (C) The Lightning Authors. All rights reserved.
//
// SPDX-License-Identifier: AGPL-3.0

package phasor

import "golang.org/x/exp/rand"

// FastCandidate is the bitset variant of the C6 output: a pair of
// bitsets over the full haplotype-index domain, one per strand.
type FastCandidate struct {
	Strand1, Strand2 *Bitset
}

// ExpandFast expands the single representative pair persisted by C4 for
// one (sample, window) into full equivalence-class bitsets (C6, fast
// variant). If uniqueOnly, the expansion is skipped and each bitset
// contains only the representative itself.
func ExpandFast(uhm *UniqueHaplotypeMap, pair HapPair, numHaplotypes int, uniqueOnly bool) FastCandidate {
	s1 := NewBitset(numHaplotypes)
	s2 := NewBitset(numHaplotypes)
	if uniqueOnly {
		s1.Set(pair.Left)
		s2.Set(pair.Right)
		return FastCandidate{Strand1: s1, Strand2: s2}
	}
	for h, rep := range uhm.ClassOf {
		if rep == pair.Left {
			s1.Set(h)
		}
		if rep == pair.Right {
			s2.Set(h)
		}
	}
	return FastCandidate{Strand1: s1, Strand2: s2}
}

// ExpandDP expands C5's surviving representative-pair trail into the
// capped cartesian product of haplotype pairs (C6, DP variant). If the
// raw expansion exceeds maxCandidates, it is uniformly sampled without
// replacement using rng, resolving the non-determinism the distilled
// spec flags as an open question (see Config.RandSeed).
func ExpandDP(uhm *UniqueHaplotypeMap, reps []int, survivors []RepPair, maxCandidates int, uniqueOnly bool, rng *rand.Rand) []HapPair {
	if uniqueOnly {
		out := make([]HapPair, len(survivors))
		for i, s := range survivors {
			out[i] = HapPair{Left: reps[s.I], Right: reps[s.J]}
		}
		return dedupPairs(out)
	}

	classMembers := map[int][]int{}
	for h, rep := range uhm.ClassOf {
		classMembers[rep] = append(classMembers[rep], h)
	}

	var out []HapPair
	for _, s := range survivors {
		left, right := reps[s.I], reps[s.J]
		for _, l := range classMembers[left] {
			for _, r := range classMembers[right] {
				out = append(out, HapPair{Left: l, Right: r})
			}
		}
	}
	out = dedupPairs(out)
	if len(out) <= maxCandidates {
		return out
	}
	return sampleWithoutReplacement(out, maxCandidates, rng)
}

func dedupPairs(pairs []HapPair) []HapPair {
	seen := make(map[HapPair]bool, len(pairs))
	out := make([]HapPair, 0, len(pairs))
	for _, p := range pairs {
		if !seen[p] {
			seen[p] = true
			out = append(out, p)
		}
	}
	return out
}

// sampleWithoutReplacement implements a Fisher-Yates partial shuffle to
// pick k elements uniformly at random without replacement, deterministic
// given rng's seed.
func sampleWithoutReplacement(pairs []HapPair, k int, rng *rand.Rand) []HapPair {
	pool := append([]HapPair(nil), pairs...)
	for i := 0; i < k; i++ {
		j := i + rng.Intn(len(pool)-i)
		pool[i], pool[j] = pool[j], pool[i]
	}
	return pool[:k]
}
