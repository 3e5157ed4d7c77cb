package localsearch

import (
	"sort"

	"github.com/routesmith/vrpls/model"
	"github.com/routesmith/vrpls/operator"
	"github.com/routesmith/vrpls/problem"
	"github.com/routesmith/vrpls/solution"
)

// interRouteCtor matches the (prob, sol, state, sVehicle, sRank,
// tVehicle, tRank) constructor shape shared by Relocate, Exchange,
// OrOpt, TwoOpt, ReverseTwoOpt, CrossExchange, MixedExchange and
// SwapStar.
type interRouteCtor func(prob *problem.Problem, sol *solution.Solution, state *solution.SolutionState, sVehicle, sRank, tVehicle, tRank int) operator.Move

// intraRouteCtor matches the (prob, sol, state, vehicle, sRank, tRank)
// shape shared by the Intra* variants of the same operators.
type intraRouteCtor func(prob *problem.Problem, sol *solution.Solution, state *solution.SolutionState, vehicle, sRank, tRank int) operator.Move

// scanInterRoute materialises one candidate per (sRank, tRank) pair
// across every ordered vehicle pair, with sRank in [0, len+sRankSpan) of
// sVehicle's route and tRank in [0, len+tRankSpan) of tVehicle's: a span
// of 0 covers every existing job, -1 every job that has a successor, and
// +1 every insertion point.
func scanInterRoute(prob *problem.Problem, sol *solution.Solution, state *solution.SolutionState, name operator.OperatorName, sRankSpan, tRankSpan int, ctor interRouteCtor) []*candidate {
	var out []*candidate
	nv := len(sol.Routes)
	for v := 0; v < nv; v++ {
		sLen := sol.Routes[v].Len()
		for w := 0; w < nv; w++ {
			if v == w {
				continue
			}
			tLen := sol.Routes[w].Len()
			sHi := sLen + sRankSpan
			tHi := tLen + tRankSpan
			for sRank := 0; sRank < sHi; sRank++ {
				for tRank := 0; tRank < tHi; tRank++ {
					sV, sR, tV, tR := v, sRank, w, tRank
					rebuild := func() (operator.Move, model.Eval, int, bool) {
						if sol.Routes[sV].Len()+sRankSpan <= sR || sol.Routes[tV].Len()+tRankSpan <= tR {
							return nil, model.NoGain, 0, false
						}
						m := ctor(prob, sol, state, sV, sR, tV, tR)

						return m, m.Gain(), 0, false
					}
					c := newCandidate(name, sV, sR, tV, tR, rebuild)
					if c.ready() {
						out = append(out, c)
					}
				}
			}
		}
	}

	return out
}

// scanIntraRoute mirrors scanInterRoute for same-route operators, where
// sRank and tRank both index a single vehicle's own route and sRank <
// tRank (the catalog's convention for every Intra* operator).
func scanIntraRoute(prob *problem.Problem, sol *solution.Solution, state *solution.SolutionState, name operator.OperatorName, rankSpan int, ctor intraRouteCtor) []*candidate {
	var out []*candidate
	for v := range sol.Routes {
		n := sol.Routes[v].Len() + rankSpan
		for sRank := 0; sRank < n; sRank++ {
			for tRank := sRank + 1; tRank < n; tRank++ {
				vv, sR, tR := v, sRank, tRank
				rebuild := func() (operator.Move, model.Eval, int, bool) {
					if sol.Routes[vv].Len()+rankSpan <= tR {
						return nil, model.NoGain, 0, false
					}
					m := ctor(prob, sol, state, vv, sR, tR)

					return m, m.Gain(), 0, false
				}
				c := newCandidate(name, vv, sR, vv, tR, rebuild)
				if c.ready() {
					out = append(out, c)
				}
			}
		}
	}

	return out
}

// routePairCandidates covers RouteExchange/RouteShift, which operate on
// whole routes and take no ranks.
func routePairCandidates(prob *problem.Problem, sol *solution.Solution, state *solution.SolutionState, name operator.OperatorName, ctor func(*problem.Problem, *solution.Solution, *solution.SolutionState, int, int) operator.Move) []*candidate {
	var out []*candidate
	nv := len(sol.Routes)
	for v := 0; v < nv; v++ {
		for w := 0; w < nv; w++ {
			if v == w {
				continue
			}
			sV, tV := v, w
			rebuild := func() (operator.Move, model.Eval, int, bool) {
				m := ctor(prob, sol, state, sV, tV)

				return m, m.Gain(), 0, false
			}
			c := newCandidate(name, sV, 0, tV, 0, rebuild)
			if c.ready() {
				out = append(out, c)
			}
		}
	}

	return out
}

// pdShiftCandidates pairs every pickup with its own delivery rank (when
// both halves currently sit on the same route) and proposes relocating
// the pair to every other vehicle.
func pdShiftCandidates(prob *problem.Problem, sol *solution.Solution, state *solution.SolutionState) []*candidate {
	var out []*candidate
	nv := len(sol.Routes)
	for v := 0; v < nv; v++ {
		jobs := sol.Routes[v].Jobs()
		for sRank, j := range jobs {
			job := prob.Jobs[j]
			if job.Kind != model.Pickup {
				continue
			}
			sibling, ok := prob.Sibling(job)
			if !ok {
				continue
			}
			dRank := -1
			for r, jj := range jobs {
				if jj == sibling {
					dRank = r
					break
				}
			}
			if dRank < 0 {
				continue
			}
			for w := 0; w < nv; w++ {
				if w == v {
					continue
				}
				sV, sPR, sDR, tV := v, sRank, dRank, w
				rebuild := func() (operator.Move, model.Eval, int, bool) {
					if sPR >= sol.Routes[sV].Len() || sDR >= sol.Routes[sV].Len() {
						return nil, model.NoGain, 0, false
					}
					m := operator.NewPDShift(prob, sol, state, sV, sPR, sDR, tV)

					return m, m.Gain(), 0, false
				}
				c := newCandidate(operator.OpPDShift, sV, sPR, tV, sDR, rebuild)
				if c.ready() {
					out = append(out, c)
				}
			}
		}
	}

	return out
}

// unassignedCandidates proposes inserting every unassigned job u at
// every rank of every vehicle's route via UnassignedExchange (which
// evicts the job at sRank first) and via PriorityReplace (which evicts
// the prefix/suffix up to sRank/tRank); both are the only operators
// that touch the unassigned set (§5, "Shared resources").
func unassignedCandidates(prob *problem.Problem, sol *solution.Solution, state *solution.SolutionState) []*candidate {
	var out []*candidate
	pending := make([]int, 0, len(sol.Unassigned))
	for u := range sol.Unassigned {
		pending = append(pending, u)
	}
	sort.Ints(pending)
	for _, u := range pending {
		uu := u
		for v := range sol.Routes {
			n := sol.Routes[v].Len()
			for sRank := 0; sRank < n; sRank++ {
				for tRank := 0; tRank <= n; tRank++ {
					vv, sR, tR := v, sRank, tRank
					rebuild := func() (operator.Move, model.Eval, int, bool) {
						if sR >= sol.Routes[vv].Len() {
							return nil, model.NoGain, 0, false
						}
						if _, stillUnassigned := sol.Unassigned[uu]; !stillUnassigned {
							return nil, model.NoGain, 0, false
						}
						m := operator.NewUnassignedExchange(prob, sol, state, vv, sR, tR, uu)

						return m, m.Gain(), 0, false
					}
					c := newCandidate(operator.OpUnassignedExchange, vv, sR, vv, tR, rebuild)
					if c.ready() {
						out = append(out, c)
					}
				}
			}

			if prob.Jobs[uu].Priority == 0 {
				continue
			}
			for sRank := 0; sRank < n; sRank++ {
				for tRank := 0; tRank <= sRank; tRank++ {
					vv, sR, tR := v, sRank, tRank
					rebuild := func() (operator.Move, model.Eval, int, bool) {
						if sR >= sol.Routes[vv].Len() {
							return nil, model.NoGain, 0, false
						}
						if _, stillUnassigned := sol.Unassigned[uu]; !stillUnassigned {
							return nil, model.NoGain, 0, false
						}
						m := operator.NewPriorityReplace(prob, sol, state, vv, sR, tR, uu)
						gain := m.Gain()

						return m, gain, m.PriorityGain(), true
					}
					c := newCandidate(operator.OpPriorityReplace, vv, sR, vv, tR, rebuild)
					if c.ready() {
						out = append(out, c)
					}
				}
			}
		}
	}

	return out
}

// routeSplitCandidates proposes splitting each non-empty route across
// every pair drawn from the currently-empty vehicle set (§4.5); a
// no-op when fewer than two vehicles are empty.
func routeSplitCandidates(prob *problem.Problem, sol *solution.Solution, state *solution.SolutionState) []*candidate {
	var empty []int
	for v := range sol.Routes {
		if sol.Routes[v].Len() == 0 {
			empty = append(empty, v)
		}
	}
	if len(empty) < 2 {
		return nil
	}

	var out []*candidate
	for v := range sol.Routes {
		if sol.Routes[v].Len() == 0 {
			continue
		}
		vv := v
		rebuild := func() (operator.Move, model.Eval, int, bool) {
			var curEmpty []int
			for w := range sol.Routes {
				if w != vv && sol.Routes[w].Len() == 0 {
					curEmpty = append(curEmpty, w)
				}
			}
			if len(curEmpty) < 2 {
				return nil, model.NoGain, 0, false
			}
			m, err := operator.NewRouteSplit(prob, sol, state, vv, curEmpty)
			if err != nil {
				return nil, model.NoGain, 0, false
			}

			return m, m.Gain(), 0, false
		}
		c := newCandidate(operator.OpRouteSplit, vv, 0, vv, 0, rebuild)
		if c.ready() {
			out = append(out, c)
		}
	}

	return out
}

// buildRoundQueue materialises every candidate move of every operator
// class for the current solution/state and returns them as a ready
// priority queue (§4.6, step 2, "Inner round").
func buildRoundQueue(prob *problem.Problem, sol *solution.Solution, state *solution.SolutionState) *candidateQueue {
	var all []*candidate
	push := func(cands []*candidate) {
		all = append(all, cands...)
	}

	push(scanInterRoute(prob, sol, state, operator.OpRelocate, 0, 1, func(p *problem.Problem, s *solution.Solution, st *solution.SolutionState, sV, sR, tV, tR int) operator.Move {
		return operator.NewRelocate(p, s, st, sV, sR, tV, tR)
	}))
	push(scanInterRoute(prob, sol, state, operator.OpExchange, 0, 0, func(p *problem.Problem, s *solution.Solution, st *solution.SolutionState, sV, sR, tV, tR int) operator.Move {
		return operator.NewExchange(p, s, st, sV, sR, tV, tR)
	}))
	push(scanInterRoute(prob, sol, state, operator.OpOrOpt, -1, 1, func(p *problem.Problem, s *solution.Solution, st *solution.SolutionState, sV, sR, tV, tR int) operator.Move {
		return operator.NewOrOpt(p, s, st, sV, sR, tV, tR)
	}))
	push(scanInterRoute(prob, sol, state, operator.OpTwoOpt, 0, 0, func(p *problem.Problem, s *solution.Solution, st *solution.SolutionState, sV, sR, tV, tR int) operator.Move {
		return operator.NewTwoOpt(p, s, st, sV, sR, tV, tR)
	}))
	push(scanInterRoute(prob, sol, state, operator.OpReverseTwoOpt, 0, 0, func(p *problem.Problem, s *solution.Solution, st *solution.SolutionState, sV, sR, tV, tR int) operator.Move {
		return operator.NewReverseTwoOpt(p, s, st, sV, sR, tV, tR)
	}))
	push(scanInterRoute(prob, sol, state, operator.OpCrossExchange, -1, -1, func(p *problem.Problem, s *solution.Solution, st *solution.SolutionState, sV, sR, tV, tR int) operator.Move {
		return operator.NewCrossExchange(p, s, st, sV, sR, tV, tR)
	}))
	push(scanInterRoute(prob, sol, state, operator.OpMixedExchange, 0, -1, func(p *problem.Problem, s *solution.Solution, st *solution.SolutionState, sV, sR, tV, tR int) operator.Move {
		return operator.NewMixedExchange(p, s, st, sV, sR, tV, tR)
	}))
	push(scanInterRoute(prob, sol, state, operator.OpSwapStar, 0, 0, func(p *problem.Problem, s *solution.Solution, st *solution.SolutionState, sV, sR, tV, tR int) operator.Move {
		return operator.NewSwapStar(p, s, st, sV, sR, tV, tR)
	}))

	push(scanIntraRoute(prob, sol, state, operator.OpIntraRelocate, 0, func(p *problem.Problem, s *solution.Solution, st *solution.SolutionState, v, sR, tR int) operator.Move {
		return operator.NewIntraRelocate(p, s, st, v, sR, tR)
	}))
	push(scanIntraRoute(prob, sol, state, operator.OpIntraExchange, 0, func(p *problem.Problem, s *solution.Solution, st *solution.SolutionState, v, sR, tR int) operator.Move {
		return operator.NewIntraExchange(p, s, st, v, sR, tR)
	}))
	push(scanIntraRoute(prob, sol, state, operator.OpIntraOrOpt, 0, func(p *problem.Problem, s *solution.Solution, st *solution.SolutionState, v, sR, tR int) operator.Move {
		return operator.NewIntraOrOpt(p, s, st, v, sR, tR)
	}))
	push(scanIntraRoute(prob, sol, state, operator.OpIntraTwoOpt, 0, func(p *problem.Problem, s *solution.Solution, st *solution.SolutionState, v, sR, tR int) operator.Move {
		return operator.NewIntraTwoOpt(p, s, st, v, sR, tR)
	}))
	push(scanIntraRoute(prob, sol, state, operator.OpIntraCrossExchange, 0, func(p *problem.Problem, s *solution.Solution, st *solution.SolutionState, v, sR, tR int) operator.Move {
		return operator.NewIntraCrossExchange(p, s, st, v, sR, tR)
	}))
	push(scanIntraRoute(prob, sol, state, operator.OpIntraMixedExchange, 0, func(p *problem.Problem, s *solution.Solution, st *solution.SolutionState, v, sR, tR int) operator.Move {
		return operator.NewIntraMixedExchange(p, s, st, v, sR, tR)
	}))

	push(routePairCandidates(prob, sol, state, operator.OpRouteExchange, func(p *problem.Problem, s *solution.Solution, st *solution.SolutionState, sV, tV int) operator.Move {
		return operator.NewRouteExchange(p, s, st, sV, tV)
	}))
	push(routePairCandidates(prob, sol, state, operator.OpRouteShift, func(p *problem.Problem, s *solution.Solution, st *solution.SolutionState, sV, tV int) operator.Move {
		return operator.NewRouteShift(p, s, st, sV, tV)
	}))

	push(pdShiftCandidates(prob, sol, state))
	push(unassignedCandidates(prob, sol, state))
	push(routeSplitCandidates(prob, sol, state))

	return newCandidateQueue(all)
}
