// Copyright (C) The Lightning Authors. All rights reserved.
//
// SPDX-License-Identifier: AGPL-3.0

// Package phasor imputes missing genotype calls against a phased
// reference panel by windowed least-squares haplotype-pair search,
// redundancy-aware candidate expansion, mosaic stitching across window
// boundaries, and breakpoint location within the boundary span.
package phasor

import (
	log "github.com/sirupsen/logrus"
	"golang.org/x/exp/rand"

	"github.com/lightning-genomics/phasor/internal/throttle"
)

// Engine runs the full C1-through-C9 pipeline over a reference panel and
// target matrix. Workers is read from Config at Run time; Engine is
// safe to reuse across calls, but each Run overwrites the surviving
// bitsets from the previous one (see SurvivingBitsets).
type Engine struct {
	Config Config
	Logger *log.Logger

	surviving []SurvivingPair
}

// NewEngine returns an Engine configured with cfg, logging to logrus's
// standard logger.
func NewEngine(cfg Config) *Engine {
	return &Engine{Config: cfg, Logger: log.StandardLogger()}
}

// Result bundles everything Run produces for one batch.
type Result struct {
	Imputed *TargetMatrix
	Mosaics []HaplotypeMosaicPair
	Metrics []Metrics
	Quality []SNPQuality
}

// Run executes the windowed pass (C1-C6) across Config.Workers workers,
// then the per-individual stitch-and-impute pass (C7-C9), and finally
// scores every marker (§4.10). It returns one of the three fatal
// *PhaseError cases from §7 up front, before any worker is started.
func (e *Engine) Run(panel *ReferencePanel, target *TargetMatrix) (*Result, error) {
	cfg := e.Config
	if panel.NumHaplotypes == 0 {
		return nil, newPhaseError(ErrEmptyPanel, "reference panel has zero haplotypes")
	}
	if panel.NumMarkers != target.NumMarkers {
		return nil, newPhaseError(ErrMismatchedMarkerCount, "panel has %d markers, target has %d", panel.NumMarkers, target.NumMarkers)
	}
	windows := BuildWindows(panel.NumMarkers, cfg.Width, cfg.FlankWidth)
	if len(windows) == 0 {
		return nil, newPhaseError(ErrZeroWindows, "width %d yields no windows over %d markers", cfg.Width, panel.NumMarkers)
	}

	workers := cfg.Workers
	if workers < 1 {
		workers = 1
	}

	e.Logger.WithFields(log.Fields{"windows": len(windows), "samples": target.NumSamples, "workers": workers}).Info("phasor: starting windowed pass")

	uhms := make([]*UniqueHaplotypeMap, len(windows))
	classifyThrottle := &throttle.Throttle{Max: workers}
	for i, w := range windows {
		classifyThrottle.Acquire()
		go func(i int, w Window) {
			defer classifyThrottle.Release()
			uhms[i] = BuildUniqueHaplotypeMap(panel, w)
		}(i, w)
	}
	if err := classifyThrottle.Wait(); err != nil {
		return nil, err
	}

	xfloat := InitXfloat(target)
	windowResults := make([]*WindowResult, len(windows))
	windowThrottle := &throttle.Throttle{Max: workers}
	for i, uhm := range uhms {
		i, uhm := i, uhm
		windowThrottle.Acquire()
		go func() {
			defer windowThrottle.Release()
			rng := rand.New(rand.NewSource(cfg.RandSeed + uint64(uhm.Window.Index)))
			windowResults[i] = RunWindow(panel, target, xfloat, uhm, cfg, rng)
		}()
	}
	if err := windowThrottle.Wait(); err != nil {
		return nil, err
	}

	e.Logger.Info("phasor: starting stitch-and-impute pass")

	mosaics := make([]HaplotypeMosaicPair, target.NumSamples)
	metrics := make([]Metrics, target.NumSamples)
	surviving := make([]SurvivingPair, target.NumSamples)
	sampleThrottle := &throttle.Throttle{Max: workers}
	for k := 0; k < target.NumSamples; k++ {
		k := k
		sampleThrottle.Acquire()
		go func() {
			defer sampleThrottle.Release()
			mosaics[k], metrics[k], surviving[k] = e.stitchSample(panel, target, windows, windowResults, k)
		}()
	}
	if err := sampleThrottle.Wait(); err != nil {
		return nil, err
	}
	e.surviving = surviving

	imputed := ImputeMosaics(panel, target, mosaics, cfg)
	predCfg := cfg
	predCfg.ImputeMode = ImputeOverwriteAll
	quality := ComputeQuality(target, ImputeMosaics(panel, target, mosaics, predCfg))

	e.Logger.Info("phasor: done")
	return &Result{Imputed: imputed, Mosaics: mosaics, Metrics: metrics, Quality: quality}, nil
}

// SurvivingBitsets returns the per-individual ambiguity classes left
// over from the most recent Run call's fast stitcher (see
// SurvivingPair). It is nil before the first Run, and its entries are
// zero-valued for any Run that used the DP stitcher.
func (e *Engine) SurvivingBitsets() []SurvivingPair {
	return e.surviving
}

// RunToSink is Run followed by delivering every mosaic to sink, in
// sample order.
func (e *Engine) RunToSink(panel *ReferencePanel, target *TargetMatrix, sink PhasedSink) (*Result, error) {
	result, err := e.Run(panel, target)
	if err != nil {
		return nil, err
	}
	for k, m := range result.Mosaics {
		if err := sink.PutMosaic(k, m); err != nil {
			return result, err
		}
	}
	return result, nil
}

// stitchSample runs C7 and C8 for one individual across every window,
// skipping the stitcher entirely when there is only one window (§8
// boundary condition: a single window has nothing to stitch). It also
// reports the fast stitcher's leftover ambiguity class, when used (see
// SurvivingPair).
func (e *Engine) stitchSample(panel *ReferencePanel, target *TargetMatrix, windows []Window, windowResults []*WindowResult, k int) (HaplotypeMosaicPair, Metrics, SurvivingPair) {
	n := len(windows)
	cfg := e.Config

	var selected []HapPair
	var surviving SurvivingPair
	if n == 1 {
		selected = []HapPair{windowResults[0].PerSample[k].Persisted}
	} else if cfg.FastMethod {
		cands := make([]FastCandidate, n)
		for w := 0; w < n; w++ {
			cands[w] = windowResults[w].PerSample[k].Fast
		}
		selected, surviving.Strand1, surviving.Strand2 = StitchFast(cands)
	} else {
		lists := make([][]HapPair, n)
		for w := 0; w < n; w++ {
			lists[w] = windowResults[w].PerSample[k].DP
		}
		selected = StitchDP(lists, cfg.DPLambda)
	}

	mosaic := MaterializeMosaic(windows, panel, target, k, selected, cfg.ChunkOffset)

	converged := true
	var lastIterations int
	var finalObjective float64
	for w := 0; w < n; w++ {
		sr := windowResults[w].PerSample[k]
		converged = converged && sr.Converged
		lastIterations = sr.Iterations
		finalObjective += sr.ObservedError
	}

	return mosaic, Metrics{
		SampleIndex:    k,
		WindowsVisited: n,
		Iterations:     lastIterations,
		Converged:      converged,
		FinalObjective: finalObjective,
	}, surviving
}
