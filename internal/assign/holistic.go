package assign

import (
	"cmp"
	"slices"

	"github.com/derekprior/courts/internal/model"
)

// DefaultJitterScale spreads the court-1 affinity draw in the two-court
// split. Larger values allow more tier crossover.
const DefaultJitterScale = 1.8

// assignHolistic splits the eight most deserving players across both courts
// of a two-court session in one pass.
func (r *round) assignHolistic(courtIDs [2]int, candidates []string, random func() float64, jitter float64) ([]model.CourtAssignment, error) {
	needed := 2 * 4
	if len(candidates) < needed {
		return nil, &AssignmentImpossibleError{CourtID: courtIDs[0], Available: len(candidates)}
	}

	selected := r.byRank(r.byPriority(candidates)[:needed])

	type affinity struct {
		id    string
		score float64
	}
	affinities := make([]affinity, len(selected))
	for i, id := range selected {
		affinities[i] = affinity{
			id:    id,
			score: RouteProbability(r.tier(id), courtIDs[0], r.totalCourts) + random()*jitter,
		}
	}
	slices.SortStableFunc(affinities, func(a, b affinity) int {
		return cmp.Compare(b.score, a.score)
	})

	first := make([]string, 0, 4)
	second := make([]string, 0, 4)
	for i, a := range affinities {
		if i < 4 {
			first = append(first, a.id)
		} else {
			second = append(second, a.id)
		}
	}
	first, second = r.repairSplit(r.byRank(first), r.byRank(second))

	out := make([]model.CourtAssignment, 0, 2)
	for i, four := range [][]string{first, second} {
		teamA, teamB := FormTeams(r.lookup(four), r.order)
		out = append(out, model.CourtAssignment{CourtID: courtIDs[i], TeamA: teamA, TeamB: teamB})
	}
	return out, nil
}

// repairSplit swaps one player between the courts when either side repeats
// a recent match. Candidates nearest the skill boundary are tried first:
// first's weakest against second's strongest, then outward. Both slices are
// in rank order. The split is returned unchanged when no swap fixes both.
func (r *round) repairSplit(first, second []string) ([]string, []string) {
	if !HasSimilarRecentMatch(first, r.history) && !HasSimilarRecentMatch(second, r.history) {
		return first, second
	}

	for dist := 0; dist <= len(first)+len(second)-2; dist++ {
		for i := 0; i <= dist; i++ {
			j := dist - i
			if i >= len(first) || j >= len(second) {
				continue
			}
			a := slices.Clone(first)
			b := slices.Clone(second)
			ai := len(a) - 1 - i
			a[ai], b[j] = b[j], a[ai]
			if HasSimilarRecentMatch(a, r.history) || HasSimilarRecentMatch(b, r.history) {
				continue
			}
			r.log.Debug().
				Str("out", first[ai]).
				Str("in", second[j]).
				Msg("swapped players to avoid a recent rematch")
			return r.byRank(a), r.byRank(b)
		}
	}
	r.log.Debug().Msg("no swap avoids a recent rematch, keeping split")
	return first, second
}
