// Copyright (C) The Lightning Authors. All rights reserved.
//
// SPDX-License-Identifier: AGPL-3.0

package phasor

// Missing is the sentinel dosage value marking an unobserved target
// genotype entry.
const Missing uint8 = 255

// ReferencePanel is the immutable marker-major matrix H of phased
// reference haplotypes. Entries are {0,1}.
type ReferencePanel struct {
	NumMarkers    int
	NumHaplotypes int
	data          []uint8 // row-major: data[marker*NumHaplotypes+hap]
}

// NewReferencePanel allocates a zeroed panel of the given shape.
func NewReferencePanel(numMarkers, numHaplotypes int) *ReferencePanel {
	return &ReferencePanel{
		NumMarkers:    numMarkers,
		NumHaplotypes: numHaplotypes,
		data:          make([]uint8, numMarkers*numHaplotypes),
	}
}

// At returns the allele at the given marker/haplotype.
func (p *ReferencePanel) At(marker, hap int) uint8 {
	return p.data[marker*p.NumHaplotypes+hap]
}

// Set assigns the allele at the given marker/haplotype.
func (p *ReferencePanel) Set(marker, hap int, allele uint8) {
	p.data[marker*p.NumHaplotypes+hap] = allele
}

// Column copies the panel's values at the given haplotype across
// [start,end) markers into dst, growing dst if necessary, and returns it.
func (p *ReferencePanel) Column(start, end, hap int, dst []uint8) []uint8 {
	n := end - start
	if cap(dst) < n {
		dst = make([]uint8, n)
	}
	dst = dst[:n]
	for m := start; m < end; m++ {
		dst[m-start] = p.At(m, hap)
	}
	return dst
}

// TargetMatrix is the working copy of the observed genotype matrix X.
// Entries are {0,1,2,Missing}.
type TargetMatrix struct {
	NumMarkers int
	NumSamples int
	SampleIDs  []string
	data       []uint8 // row-major: data[marker*NumSamples+sample]
}

// NewTargetMatrix allocates a target matrix of the given shape, all
// entries initialized to Missing.
func NewTargetMatrix(numMarkers int, sampleIDs []string) *TargetMatrix {
	t := &TargetMatrix{
		NumMarkers: numMarkers,
		NumSamples: len(sampleIDs),
		SampleIDs:  append([]string(nil), sampleIDs...),
		data:       make([]uint8, numMarkers*len(sampleIDs)),
	}
	for i := range t.data {
		t.data[i] = Missing
	}
	return t
}

// At returns the dosage and whether it is missing.
func (t *TargetMatrix) At(marker, sample int) (uint8, bool) {
	v := t.data[marker*t.NumSamples+sample]
	return v, v == Missing
}

// Set assigns the dosage at the given marker/sample.
func (t *TargetMatrix) Set(marker, sample int, dosage uint8) {
	t.data[marker*t.NumSamples+sample] = dosage
}

// Window is a contiguous marker interval over which C1-C6 operate.
// Start/End are the non-flanked marker bounds [Start,End). FlankStart/
// FlankEnd additionally include up to FlankWidth markers on either side,
// clipped at the matrix edges, and are used only by the equivalence test
// in C1.
type Window struct {
	Index      int
	Start, End int
	FlankStart, FlankEnd int
}

// Width returns the number of non-flanked markers in the window.
func (w Window) Width() int { return w.End - w.Start }

// BuildWindows partitions [0,numMarkers) into contiguous windows of
// width `width`, with the final window absorbing any remainder so every
// marker belongs to exactly one window; the window count is
// floor(numMarkers/width). flank markers are added symmetrically,
// clipped at the edges.
func BuildWindows(numMarkers, width, flank int) []Window {
	if width <= 0 || numMarkers < width {
		return nil
	}
	n := numMarkers / width
	windows := make([]Window, n)
	for i := 0; i < n; i++ {
		start := i * width
		end := start + width
		if i == n-1 {
			end = numMarkers
		}
		fstart := start - flank
		if fstart < 0 {
			fstart = 0
		}
		fend := end + flank
		if fend > numMarkers {
			fend = numMarkers
		}
		windows[i] = Window{Index: i, Start: start, End: end, FlankStart: fstart, FlankEnd: fend}
	}
	return windows
}

// UniqueHaplotypeMap is the C1 output for a single window: the
// equivalence classes of reference columns under exact equality on the
// window's (flanked) rows.
type UniqueHaplotypeMap struct {
	Window          Window
	ClassOf         []int // length NumHaplotypes; representative index per column
	Representatives []int // ascending distinct representative indices
}

// HapPair is an ordered pair of reference haplotype indices, used as a
// DP stitcher candidate and as the materialized per-window selection.
type HapPair struct {
	Left, Right int
}

// Swapped returns the pair with its two haplotypes exchanged.
func (p HapPair) Swapped() HapPair { return HapPair{p.Right, p.Left} }

// MosaicSegment is one record of a HaplotypeMosaic: the haplotype
// selected from start-marker (1-based, chunk-relative) onward, up to the
// next segment's start-marker minus one (or the final marker).
type MosaicSegment struct {
	StartMarker int
	Haplotype   int
}

// HaplotypeMosaic is one strand's ordered sequence of segments across
// the full marker axis. Invariant: StartMarker is strictly increasing
// and the first segment starts at 1 (plus any configured chunk offset).
type HaplotypeMosaic []MosaicSegment

// HaplotypeMosaicPair holds both strands for one individual. The
// strand1/strand2 labeling is fixed deterministically at window 1 (by
// "first set bit" convention, see mosaic.go) and carries no maternal or
// paternal meaning; callers must not attach such semantics to the
// labels.
type HaplotypeMosaicPair struct {
	Strand1, Strand2 HaplotypeMosaic
}

// SurvivingPair holds, per individual, the ambiguity class each strand
// was still carrying at the end of StitchFast's last run — every
// haplotype consistent with that strand's final selected window, not
// yet collapsed to its lowest-index representative. Exposed via
// Engine.SurvivingBitsets so a caller processing consecutive chunks of
// the same individuals could seed the next chunk's stitcher with the
// leftover ambiguity instead of starting it fresh; the default
// single-chunk path never reads this back. Only populated when
// Config.FastMethod is set and more than one window ran the stitcher;
// the DP stitcher, and the single-window boundary case that skips the
// stitcher entirely, have no comparable notion of a surviving ambiguity
// class to report.
type SurvivingPair struct {
	Strand1, Strand2 *Bitset
}

// Metrics reports per-individual refinement-loop behavior (§7:
// non-convergence is expected, never fatal, and surfaces here instead of
// as an error).
type Metrics struct {
	SampleIndex    int
	WindowsVisited int
	Iterations     int
	Converged      bool
	FinalObjective float64
}

// SNPQuality holds the per-marker quality scalars described in the
// external-interfaces section: the observed mean squared residual at
// typed markers, the two-flanking-neighbor-averaged score at untyped
// markers, and a qualitative tier assigned by comparing Score against
// the batch-wide score distribution.
type SNPQuality struct {
	Typed bool
	Score float64
	Band  string
}
