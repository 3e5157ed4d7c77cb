package localsearch

import "errors"

var (
	// ErrNilProblem indicates NewEngine was called with a nil Problem.
	ErrNilProblem = errors.New("localsearch: problem is nil")

	// ErrNilSolution indicates NewEngine was called with a nil Solution.
	ErrNilSolution = errors.New("localsearch: solution is nil")

	// ErrSolutionProblemMismatch indicates the Solution was not built
	// from the Problem passed alongside it.
	ErrSolutionProblemMismatch = errors.New("localsearch: solution does not belong to problem")

	// ErrNoVehicles indicates RunParallel was asked for zero or negative
	// worker threads.
	ErrNoVehicles = errors.New("localsearch: no threads requested")

	// ErrAllWorkersFailed indicates every RunParallel worker returned an
	// error before producing a solution.
	ErrAllWorkersFailed = errors.New("localsearch: all workers failed")
)
