package localsearch

import (
	"container/heap"
	"math/rand"
	"sort"
	"sync"
	"time"

	"github.com/routesmith/vrpls/operator"
	"github.com/routesmith/vrpls/problem"
	"github.com/routesmith/vrpls/solution"
)

// Engine drives the optimisation loop over a single Solution (§4.6,
// §5): it owns the Solution, its SolutionState and a seeded PRNG, and
// runs single-threaded by construction — RunParallel fans out by
// giving each worker its own Engine over its own cloned Solution rather
// than sharing one Engine across goroutines.
type Engine struct {
	prob  *problem.Problem
	sol   *solution.Solution
	state *solution.SolutionState
	rng   *rand.Rand
	opts  Options

	deadline time.Time
}

// NewEngine validates prob/sol and builds the engine's SolutionState and
// PRNG from opts.
func NewEngine(prob *problem.Problem, sol *solution.Solution, opts ...Option) (*Engine, error) {
	if prob == nil {
		return nil, ErrNilProblem
	}
	if sol == nil {
		return nil, ErrNilSolution
	}
	if sol.Problem != prob {
		return nil, ErrSolutionProblemMismatch
	}

	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.MaxNbJobsRemoval <= 0 {
		o.MaxNbJobsRemoval = 1
	}

	return &Engine{
		prob:  prob,
		sol:   sol,
		state: solution.NewSolutionState(sol),
		rng:   rngFromSeed(o.Seed),
		opts:  o,
	}, nil
}

// objective is the lexicographic (priority, assigned count, cost) triple
// the search ranks solutions by (§OVERVIEW).
type objective struct {
	priority int
	count    int
	cost     int64
}

func (e *Engine) objective() objective {
	var o objective
	for _, j := range e.prob.Jobs {
		if e.sol.IsAssigned(j.Index) {
			o.count++
			o.priority += j.Priority
		}
	}
	for _, ev := range e.state.RouteEvals {
		o.cost += ev.Cost
	}

	return o
}

// better reports whether a lexicographically dominates b: higher total
// priority, then higher assigned count, then lower cost.
func better(a, b objective) bool {
	if a.priority != b.priority {
		return a.priority > b.priority
	}
	if a.count != b.count {
		return a.count > b.count
	}

	return a.cost < b.cost
}

func (e *Engine) deadlineExceeded() bool {
	return !e.deadline.IsZero() && !time.Now().Before(e.deadline)
}

// Run executes rounds of operator search until a round applies no move,
// then falls back to ruin-and-recreate; it stops once MaxNbJobsRemoval
// consecutive perturbations fail to improve the solution, or the
// configured deadline passes (§4.6).
func (e *Engine) Run() (*solution.Solution, error) {
	if e.opts.TimeLimit > 0 {
		e.deadline = time.Now().Add(e.opts.TimeLimit)
	}

	if err := e.insertUnassigned(); err != nil {
		return nil, err
	}

	unproductive := 0
	for !e.deadlineExceeded() {
		applied, err := e.runRound()
		if err != nil {
			return nil, err
		}
		if applied > 0 {
			unproductive = 0
			continue
		}

		if e.deadlineExceeded() {
			break
		}

		improved, err := e.perturb()
		if err != nil {
			return nil, err
		}
		if improved {
			unproductive = 0
		} else {
			unproductive++
		}
		if unproductive >= e.opts.MaxNbJobsRemoval {
			break
		}
	}

	return e.sol, nil
}

// insertUnassigned places every currently-unassigned job via cheapest
// insertion, used both for an engine's starting unassigned set (§6.1)
// and after ruin-and-recreate removes jobs.
func (e *Engine) insertUnassigned() error {
	pending := make([]int, 0, len(e.sol.Unassigned))
	for j := range e.sol.Unassigned {
		pending = append(pending, j)
	}
	sort.Ints(pending)

	touched := map[int]bool{}
	for _, j := range pending {
		v, rank, _, ok := cheapestInsertion(e.prob, e.sol, e.state, j)
		if !ok {
			continue
		}
		if err := e.sol.InsertJobs(v, []int{j}, rank); err != nil {
			return err
		}
		touched[v] = true
	}
	for v := range touched {
		if err := e.state.Rebuild(e.sol, v); err != nil {
			return err
		}
	}

	return nil
}

// runRound materialises the round's candidate queue and applies moves
// in descending gain order until the queue empties or nothing left in
// it is positive (§4.6, step 2). It returns how many moves were applied.
func (e *Engine) runRound() (int, error) {
	q := buildRoundQueue(e.prob, e.sol, e.state)
	touched := map[int]bool{}
	applied := 0

	for q.Len() > 0 {
		if e.deadlineExceeded() {
			break
		}

		c := heap.Pop(q).(*candidate)
		if c.staleFor(e.sol, touched) {
			c.refresh()
			if c.ready() {
				heap.Push(q, c)
			}
			continue
		}
		if !c.ready() {
			continue
		}

		ok, err := c.move.IsValid()
		if err != nil {
			return applied, err
		}
		if !ok {
			continue
		}
		if err := c.move.Apply(); err != nil {
			continue
		}
		applied++

		dirty := map[int]bool{}
		for _, v := range c.move.AdditionCandidates() {
			dirty[v] = true
			touched[v] = true
		}
		for _, v := range c.move.UpdateCandidates() {
			dirty[v] = true
			touched[v] = true
		}
		for v := range dirty {
			if err := e.state.Rebuild(e.sol, v); err != nil {
				return applied, err
			}
		}
	}

	for v := range touched {
		repaired, err := e.repairRoute(v)
		if err != nil {
			return applied, err
		}
		if repaired {
			applied++
		}
	}

	return applied, nil
}

// repairRoute runs TSPFix over vehicle's whole route: unlike every
// other operator, TSPFix is not scanned per rank pair (it optimises a
// full route's job order, not one splice point), so the round loop
// invokes it directly on every vehicle a move touched this round.
func (e *Engine) repairRoute(vehicle int) (bool, error) {
	m := operator.NewTSPFix(e.prob, e.sol, e.state, vehicle)
	if !m.Gain().Positive() {
		return false, nil
	}
	ok, err := m.IsValid()
	if err != nil || !ok {
		return false, err
	}
	if err := m.Apply(); err != nil {
		return false, nil
	}

	return true, e.state.Rebuild(e.sol, vehicle)
}

// assignedJobs returns the index of every job currently on a route.
func (e *Engine) assignedJobs() []int {
	out := make([]int, 0, len(e.prob.Jobs))
	for _, j := range e.prob.Jobs {
		if e.sol.IsAssigned(j.Index) {
			out = append(out, j.Index)
		}
	}

	return out
}

// pickRemoval draws up to n distinct jobs from assigned without
// replacement, weighted toward jobs whose removal saves the most route
// cost (state.NodeGains), so ruin-and-recreate tends to disturb the
// routes' worst-fitting stops rather than a uniform random sample.
func (e *Engine) pickRemoval(assigned []int, n int) []int {
	type weighted struct {
		job    int
		weight float64
	}
	cands := make([]weighted, 0, len(assigned))
	for _, j := range assigned {
		w := 1.0
		if v, rank, ok := e.sol.RankOf(j); ok && rank < len(e.state.NodeGains[v]) {
			if g := e.state.NodeGains[v][rank].Cost; g > 0 {
				w = float64(g)
			}
		}
		cands = append(cands, weighted{job: j, weight: w})
	}

	picked := make([]int, 0, n)
	for i := 0; i < n && len(cands) > 0; i++ {
		total := 0.0
		for _, c := range cands {
			total += c.weight
		}
		r := e.rng.Float64() * total
		idx := len(cands) - 1
		cum := 0.0
		for k, c := range cands {
			cum += c.weight
			if r <= cum {
				idx = k
				break
			}
		}
		picked = append(picked, cands[idx].job)
		cands = append(cands[:idx], cands[idx+1:]...)
	}

	return picked
}

// perturb removes up to MaxNbJobsRemoval jobs, re-inserts them via
// cheapest insertion, re-runs local search to quiescence, and reports
// whether the resulting solution improves on the one before the
// perturbation (§4.6, step 4, "ruin-and-recreate").
func (e *Engine) perturb() (bool, error) {
	before := e.objective()

	assigned := e.assignedJobs()
	if len(assigned) == 0 {
		return false, nil
	}
	n := e.opts.MaxNbJobsRemoval
	if n > len(assigned) {
		n = len(assigned)
	}
	removed := e.pickRemoval(assigned, n)

	touched := map[int]bool{}
	for _, j := range removed {
		v, rank, ok := e.sol.RankOf(j)
		if !ok {
			continue
		}
		if _, err := e.sol.RemoveJobs(v, rank, 1); err != nil {
			return false, err
		}
		touched[v] = true
	}
	for v := range touched {
		if err := e.state.Rebuild(e.sol, v); err != nil {
			return false, err
		}
	}

	if err := e.insertUnassigned(); err != nil {
		return false, err
	}

	for {
		applied, err := e.runRound()
		if err != nil {
			return false, err
		}
		if applied == 0 || e.deadlineExceeded() {
			break
		}
	}

	return better(e.objective(), before), nil
}

// cloneSolution rebuilds an independent Solution with the same route
// contents as sol, since solution.Solution exposes no Clone: each
// vehicle's job sequence is replayed onto a freshly constructed
// Solution for prob.
func cloneSolution(prob *problem.Problem, sol *solution.Solution) (*solution.Solution, error) {
	clone := solution.New(prob)
	for v, r := range sol.Routes {
		jobs := r.Jobs()
		if len(jobs) == 0 {
			continue
		}
		if err := clone.InsertJobs(v, jobs, 0); err != nil {
			return nil, err
		}
	}

	return clone, nil
}

// RunParallel runs n independent single-threaded searches, each over
// its own cloned Solution and its own RNG stream derived from the
// engine's seed, and returns the best-scoring result (§5, "one
// route-vector per thread").
func (e *Engine) RunParallel(n int) (*solution.Solution, error) {
	if n <= 0 {
		return nil, ErrNoVehicles
	}

	type result struct {
		sol *solution.Solution
		obj objective
		ok  bool
	}
	results := make([]result, n)

	var wg sync.WaitGroup
	for w := 0; w < n; w++ {
		wg.Add(1)
		go func(worker int) {
			defer wg.Done()

			sol, err := cloneSolution(e.prob, e.sol)
			if err != nil {
				return
			}
			opts := e.opts
			opts.Seed = deriveSeed(e.opts.Seed, uint64(worker))

			workerEngine := &Engine{
				prob:  e.prob,
				sol:   sol,
				state: solution.NewSolutionState(sol),
				rng:   rngFromSeed(opts.Seed),
				opts:  opts,
			}
			finalSol, err := workerEngine.Run()
			if err != nil {
				return
			}
			results[worker] = result{sol: finalSol, obj: workerEngine.objective(), ok: true}
		}(w)
	}
	wg.Wait()

	best := -1
	for i, r := range results {
		if !r.ok {
			continue
		}
		if best == -1 || better(r.obj, results[best].obj) {
			best = i
		}
	}
	if best == -1 {
		return nil, ErrAllWorkersFailed
	}

	return results[best].sol, nil
}
