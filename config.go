package phasor

import (
	"flag"
	"runtime"
)

// ScorePolicy selects which candidate pairs C3 retains during the
// upper-triangle scan (§4.3, §9).
type ScorePolicy int

const (
	// PolicyBestSoFarTrail retains every pair seen so far whose score
	// did not exceed the best score observed up to that point. This is
	// the default, and is what C5 expects as input.
	PolicyBestSoFarTrail ScorePolicy = iota
	// PolicyAllEqualBest retains only the pairs tied for the final
	// minimum score.
	PolicyAllEqualBest
	// PolicyBestOnly retains a single pair: the last one encountered
	// that was at least as good as everything seen before it.
	PolicyBestOnly
)

// ImputeMode selects C9's behavior on non-missing target entries.
type ImputeMode int

const (
	// ImputePreserveObserved leaves non-missing entries untouched and
	// only fills Missing slots. This is the default.
	ImputePreserveObserved ImputeMode = iota
	// ImputeOverwriteAll replaces every entry, observed or not, with
	// the mosaic's predicted dosage.
	ImputeOverwriteAll
)

// Config bundles every tunable named in the external-interfaces section.
type Config struct {
	Width         int
	FlankWidth    int
	FastMethod    bool
	UniqueOnly    bool
	MaxCandidates int
	MaxIters      int
	TolFun        float64
	ImputeMode    ImputeMode
	ScorePolicy   ScorePolicy
	DPLambda      float64
	RandSeed      uint64
	Workers       int
	ChunkOffset   int
}

// DefaultConfig returns a Config populated with the defaults named in
// the external-interfaces section.
func DefaultConfig() Config {
	width := 400
	return Config{
		Width:         width,
		FlankWidth:    width / 10,
		FastMethod:    true,
		UniqueOnly:    false,
		MaxCandidates: 1000,
		MaxIters:      1,
		TolFun:        1e-3,
		ImputeMode:    ImputePreserveObserved,
		ScorePolicy:   PolicyBestSoFarTrail,
		DPLambda:      1.0,
		RandSeed:      1,
		Workers:       runtime.NumCPU(),
		ChunkOffset:   0,
	}
}

// Flags registers c's tunables on flags, following the teacher's
// per-subcommand flag-struct convention (filter.Flags, chooseSamples).
func (c *Config) Flags(flags *flag.FlagSet) {
	flags.IntVar(&c.Width, "width", c.Width, "window size in markers")
	flags.IntVar(&c.FlankWidth, "flankwidth", c.FlankWidth, "symmetric flank overlap for equivalence classification")
	flags.BoolVar(&c.FastMethod, "fast-method", c.FastMethod, "use the intersection-chain stitcher instead of the DP stitcher")
	flags.BoolVar(&c.UniqueOnly, "unique-only", c.UniqueOnly, "skip redundancy expansion; choose mosaics among representatives directly")
	flags.IntVar(&c.MaxCandidates, "max-candidates", c.MaxCandidates, "upper bound on DP candidate list per window")
	flags.IntVar(&c.MaxIters, "max-iters", c.MaxIters, "refinement iteration bound for the missing-value iterator")
	flags.Float64Var(&c.TolFun, "tolfun", c.TolFun, "refinement convergence tolerance")
	flags.Float64Var(&c.DPLambda, "dp-lambda", c.DPLambda, "switch-cost weighting for the DP stitcher")
	flags.Uint64Var(&c.RandSeed, "rand-seed", c.RandSeed, "seed for the DP candidate-cap sampler")
	flags.IntVar(&c.Workers, "workers", c.Workers, "worker pool size")
	flags.IntVar(&c.ChunkOffset, "chunk-offset", c.ChunkOffset, "marker offset applied to mosaic start-markers for this chunk")
}
