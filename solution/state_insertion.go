package solution

// rebuildInsertionCaches recomputes, for vehicle v and every job not
// currently on v's route, the nearest existing stop (by travel cost in
// each direction) and the plausible insertion-rank window around it.
// Jobs already assigned to v are skipped: the cache only describes
// candidates for jobs v does not yet serve (§6.2).
func (s *SolutionState) rebuildInsertionCaches(sol *Solution, v int) {
	vehicle := s.prob.Vehicles[v]
	r := sol.Routes[v]
	jobs := r.Jobs()
	n := len(jobs)

	onRoute := make(map[int]struct{}, n)
	for _, j := range jobs {
		onRoute[j] = struct{}{}
	}

	nearestFrom := make(map[int]int, len(s.prob.Jobs)-n)
	nearestTo := make(map[int]int, len(s.prob.Jobs)-n)
	begin := make(map[int]int, len(s.prob.Jobs)-n)
	end := make(map[int]int, len(s.prob.Jobs)-n)

	if n > 0 {
		fromCosts := make([]int64, n)
		toCosts := make([]int64, n)

		for _, job := range s.prob.Jobs {
			if _, assigned := onRoute[job.Index]; assigned {
				continue
			}
			for i, stopJob := range jobs {
				stop := s.prob.Jobs[stopJob]
				if e, err := s.prob.Eval(vehicle.Profile, stop.Location, job.Location); err == nil {
					fromCosts[i] = e.Cost
				}
				if e, err := s.prob.Eval(vehicle.Profile, job.Location, stop.Location); err == nil {
					toCosts[i] = e.Cost
				}
			}

			fromRanks := nearestKRanks(fromCosts, 1)
			toRanks := nearestKRanks(toCosts, 1)
			if len(fromRanks) == 0 || len(toRanks) == 0 {
				continue
			}
			nearestFrom[job.Index] = fromRanks[0]
			nearestTo[job.Index] = toRanks[0]

			anchor := fromRanks[0]
			lo := anchor - insertionWindowRadius
			if lo < 0 {
				lo = 0
			}
			hi := anchor + insertionWindowRadius + 1
			if hi > n {
				hi = n
			}
			begin[job.Index] = lo
			end[job.Index] = hi
		}
	}

	s.NearestJobRankInRoutesFrom[v] = nearestFrom
	s.NearestJobRankInRoutesTo[v] = nearestTo
	s.InsertionRanksBegin[v] = begin
	s.InsertionRanksEnd[v] = end
}
