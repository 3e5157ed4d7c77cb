package localsearch

import "time"

// Options configures a single Engine run.
//
// Seed            – PRNG seed for ruin-and-recreate choices and, when
//                    RunParallel fans out, for deriving each worker's
//                    independent stream. Default 1 (never 0; see
//                    DefaultOptions).
// MaxNbJobsRemoval – upper bound on both how many jobs a single
//                    ruin-and-recreate perturbation removes and how many
//                    consecutive unproductive perturbations the engine
//                    tolerates before stopping (§4.6).
// TimeLimit        – wall-clock budget for Run; zero means unbounded.
//                    Checked between moves and between rounds.
// Threads          – stored as given; neither Run nor RunParallel reads
//                    it. Run is single-threaded and RunParallel takes
//                    its worker count as an argument.
type Options struct {
	Seed             int64
	MaxNbJobsRemoval int
	TimeLimit        time.Duration
	Threads          int
}

// Option is a functional option for Options.
type Option func(*Options)

// DefaultOptions returns the baseline configuration: a fixed seed for
// reproducibility, a small perturbation size, no time limit, and a
// single thread.
func DefaultOptions() Options {
	return Options{
		Seed:             1,
		MaxNbJobsRemoval: 3,
		TimeLimit:        0,
		Threads:          1,
	}
}

// WithSeed sets the PRNG seed. Zero is remapped to the default seed by
// the engine at construction, so callers never silently get a
// time-varying stream.
func WithSeed(seed int64) Option {
	return func(o *Options) { o.Seed = seed }
}

// WithMaxNbJobsRemoval sets both the ruin-and-recreate batch size and
// the unproductive-perturbation stop count. Must be positive; values
// <= 0 are clamped to 1 by the engine.
func WithMaxNbJobsRemoval(n int) Option {
	return func(o *Options) { o.MaxNbJobsRemoval = n }
}

// WithTimeLimit sets the wall-clock budget for Run/RunParallel. Zero
// (the default) means no limit.
func WithTimeLimit(d time.Duration) Option {
	return func(o *Options) { o.TimeLimit = d }
}

// WithThreads sets Options.Threads. Neither Run nor RunParallel reads
// this field: Run is always single-threaded and RunParallel takes its
// worker count as an argument.
func WithThreads(n int) Option {
	return func(o *Options) { o.Threads = n }
}
