package assign

import (
	"github.com/samber/lo"

	"github.com/derekprior/courts/internal/model"
	"github.com/derekprior/courts/internal/ranking"
)

// assignEachCourt fills courts one at a time in ascending id order. Each
// court draws from its home tiers first and borrows neighbours only when the
// home group cannot produce a clean foursome.
func (r *round) assignEachCourt(courtIDs []int, candidates []string) ([]model.CourtAssignment, error) {
	used := make(map[string]bool)
	var out []model.CourtAssignment

	for _, courtID := range courtIDs {
		available := lo.Filter(candidates, func(id string, _ int) bool { return !used[id] })

		four, err := r.routeCourt(courtID, available)
		if err != nil {
			return nil, err
		}
		for _, id := range four {
			used[id] = true
		}

		teamA, teamB := FormTeams(r.lookup(four), r.order)
		out = append(out, model.CourtAssignment{CourtID: courtID, TeamA: teamA, TeamB: teamB})
	}
	return out, nil
}

// routeCourt chooses four players for one court from available, which is
// already in priority order.
func (r *round) routeCourt(courtID int, available []string) ([]string, error) {
	courtFit := func(id string) float64 {
		return (1 - RouteProbability(r.tier(id), courtID, r.totalCourts)) * r.delta
	}
	home := lo.Filter(available, func(id string, _ int) bool {
		return RouteProbability(r.tier(id), courtID, r.totalCourts) > 0
	})

	pool := home
	four, ok := r.selectBestFour(pool, courtFit)

	adjacent := r.adjacent(courtID, available)
	for i := 0; !ok && i < len(adjacent); i++ {
		pool = append(pool, adjacent[i])
		r.log.Debug().
			Int("court", courtID).
			Str("borrowed", adjacent[i]).
			Int("pool", len(pool)).
			Msg("widening candidate pool")
		four, ok = r.selectBestFour(pool, courtFit)
	}

	if len(four) < 4 {
		r.log.Debug().
			Int("court", courtID).
			Int("available", len(available)).
			Msg("relaxing to every available player")
		four, ok = r.selectBestFour(available, courtFit)
	}
	if len(four) < 4 {
		return nil, &AssignmentImpossibleError{CourtID: courtID, Available: len(available)}
	}
	if !ok {
		r.log.Debug().
			Int("court", courtID).
			Strs("players", four).
			Msg("no constraint-satisfying foursome, using fallback")
	}
	return four, nil
}

// adjacent lists borrowable players for courtID, nearest in rank to the
// court's own tier first. Sessions with fewer than three courts have no
// borrowing: every tier already routes to every court.
func (r *round) adjacent(courtID int, available []string) []string {
	if r.totalCourts < 3 {
		return nil
	}
	ranked := r.byRank(available)
	inTier := func(t ranking.Tier) []string {
		return r.tiers.Members(ranked, t)
	}

	switch courtBand(courtID, r.totalCourts) {
	case ranking.TierUpper:
		return inTier(ranking.TierMiddle)
	case ranking.TierLower:
		return lo.Reverse(inTier(ranking.TierMiddle))
	case ranking.TierMiddle:
		return interleave(lo.Reverse(inTier(ranking.TierUpper)), inTier(ranking.TierLower))
	}
	return nil
}

// interleave alternates a and b, starting with a, appending whatever is left.
func interleave(a, b []string) []string {
	out := make([]string, 0, len(a)+len(b))
	for i := 0; i < len(a) || i < len(b); i++ {
		if i < len(a) {
			out = append(out, a[i])
		}
		if i < len(b) {
			out = append(out, b[i])
		}
	}
	return out
}
