package assign

import (
	"slices"

	"github.com/samber/lo"
)

// courtFitFunc is the extra cost of placing a player on the court being
// filled, zero for players whose tier belongs there.
type courtFitFunc func(id string) float64

func noCourtFit(string) float64 { return 0 }

// selectBestFour picks the cheapest constraint-satisfying foursome from
// candidates. When no subset passes the checks it falls back to the four
// most deserving candidates and reports ok == false. Pools of four or fewer
// are returned unchanged.
func (r *round) selectBestFour(candidates []string, courtFit courtFitFunc) (four []string, ok bool) {
	if len(candidates) <= 4 {
		four = slices.Clone(candidates)
		return four, len(four) == 4 && r.valid(four)
	}

	var best []string
	var bestCost float64
	subset := make([]string, 4)
	for idx := range Combinations(len(candidates)) {
		for i, j := range idx {
			subset[i] = candidates[j]
		}
		if !r.valid(subset) {
			continue
		}
		cost := r.cost(subset, courtFit)
		if best == nil || cost < bestCost {
			best = slices.Clone(subset)
			bestCost = cost
		}
	}
	if best != nil {
		return best, true
	}
	return r.byPriority(candidates)[:4], false
}

// cost sums priority scores and soft penalties; lower is better.
func (r *round) cost(ids []string, courtFit courtFitFunc) float64 {
	cost := lo.SumBy(ids, func(id string) float64 { return r.score(id) + courtFit(id) })
	cost += GenderPenalty(r.lookup(ids), r.delta)
	cost += ComboRepeatPenalty(ids, r.history, r.delta)
	return cost
}
