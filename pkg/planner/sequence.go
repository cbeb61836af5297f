package planner

import "sort"

// sequenceMoves orders drafts into the final move list: a Kahn topological
// sort over the dependency graph, with the ready set drained in priority
// order (phase rank, then ascending cost, then descending information gain,
// then draft index for stability). Dependencies only ever point from later
// phases to earlier ones, so this yields a phase-monotonic order that never
// places an expert spend before the moves it declares as prerequisites —
// the "never pay an expert before the cheaper gaps are tested" rule.
//
// Orders are assigned 1..n and dependency indices are rewritten to orders.
// A dependency cycle cannot arise from generation; if one ever does, the
// affected drafts are left out and validation fails the whole plan.
func sequenceMoves(drafts []draftMove) []Move {
	n := len(drafts)
	if n == 0 {
		return nil
	}

	indegree := make([]int, n)
	dependents := make([][]int, n)
	for i, d := range drafts {
		indegree[i] = len(d.deps)
		for _, dep := range d.deps {
			dependents[dep] = append(dependents[dep], i)
		}
	}

	ready := make([]int, 0, n)
	for i := range drafts {
		if indegree[i] == 0 {
			ready = append(ready, i)
		}
	}

	less := func(a, b int) bool {
		ma, mb := drafts[a].move, drafts[b].move
		if ma.Phase.Rank() != mb.Phase.Rank() {
			return ma.Phase.Rank() < mb.Phase.Rank()
		}
		if ma.Cost != mb.Cost {
			return ma.Cost < mb.Cost
		}
		if ma.InformationGain.Rank() != mb.InformationGain.Rank() {
			return ma.InformationGain.Rank() > mb.InformationGain.Rank()
		}
		return a < b
	}

	var picked []int
	for len(ready) > 0 {
		sort.Slice(ready, func(i, j int) bool { return less(ready[i], ready[j]) })
		next := ready[0]
		ready = ready[1:]
		picked = append(picked, next)
		for _, dep := range dependents[next] {
			indegree[dep]--
			if indegree[dep] == 0 {
				ready = append(ready, dep)
			}
		}
	}

	orderOf := make([]int, n) // draft index -> final order
	moves := make([]Move, 0, len(picked))
	for pos, idx := range picked {
		orderOf[idx] = pos + 1
		m := drafts[idx].move
		m.Order = pos + 1
		moves = append(moves, m)
	}
	for i, idx := range picked {
		deps := drafts[idx].deps
		if len(deps) == 0 {
			continue
		}
		orders := make([]int, 0, len(deps))
		for _, dep := range deps {
			orders = append(orders, orderOf[dep])
		}
		sort.Ints(orders)
		moves[i].Dependencies = orders
	}
	return moves
}

// attachForks adds the admit/deny/silence branch map to every move expected
// to draw a reply. Expert moves are terminal work product, and the final
// move of the plan has nowhere to branch to; both stay fork-free. Every
// target is an existing order strictly after the forking move, so the
// well-formedness property holds by construction.
func attachForks(moves []Move) {
	for i := range moves {
		if moves[i].Phase == PhaseExpertSpend || i == len(moves)-1 {
			continue
		}

		next := moves[i+1].Order

		// Admission: continue this angle's own thread if it has one.
		admit := next
		for j := i + 1; j < len(moves); j++ {
			if moves[j].AngleID == moves[i].AngleID {
				admit = moves[j].Order
				break
			}
		}

		// Denial: the next commitment-or-later move, where the denial
		// gets locked in or formally challenged.
		deny := next
		for j := i + 1; j < len(moves); j++ {
			if moves[j].Phase.Rank() >= PhaseCommitmentForcing.Rank() {
				deny = moves[j].Order
				break
			}
		}

		// Silence: the next escalation-or-later move; silence is answered
		// with pressure, not more questions.
		silence := next
		for j := i + 1; j < len(moves); j++ {
			if moves[j].Phase.Rank() >= PhaseEscalation.Rank() {
				silence = moves[j].Order
				break
			}
		}

		moves[i].Fork = &ForkPoint{IfAdmit: admit, IfDeny: deny, IfSilence: silence}
	}
}
