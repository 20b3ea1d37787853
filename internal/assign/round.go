package assign

import (
	"cmp"
	"slices"
	"time"

	"github.com/rs/zerolog"
	"github.com/samber/lo"

	"github.com/derekprior/courts/internal/model"
	"github.com/derekprior/courts/internal/priority"
	"github.com/derekprior/courts/internal/ranking"
)

// round is the read-only snapshot shared by every step of one call.
type round struct {
	players     map[string]model.Player
	history     []model.Match
	order       []string
	positions   map[string]int
	tiers       ranking.Tiers
	totalCourts int
	scores      map[string]float64
	delta       float64
	log         zerolog.Logger
}

func newRound(candidates, allPlayers []model.Player, history []model.Match, totalCourts int,
	strategy priority.Strategy, now time.Time, log zerolog.Logger) *round {
	population := groupingPopulation(candidates, allPlayers)
	groupCount := ranking.GroupCount(totalCourts)
	order := ranking.DynamicOrder(population, history, groupCount)

	r := &round{
		players:     model.Index(population),
		history:     history,
		order:       order,
		positions:   ranking.NewOrder(order).Positions(),
		tiers:       ranking.GroupTiers(order, groupCount),
		totalCourts: totalCourts,
		scores:      make(map[string]float64, len(population)),
		delta:       strategy.OneGameDelta(now),
		log:         log,
	}
	for _, p := range population {
		r.scores[p.ID] = strategy.Score(p, now)
	}
	return r
}

// groupingPopulation is every active player in allPlayers plus any
// candidate missing from it, so tiers are global but always cover the pool.
func groupingPopulation(candidates, allPlayers []model.Player) []model.Player {
	population := lo.Filter(allPlayers, func(p model.Player, _ int) bool { return p.Active() })
	known := model.Index(population)
	for _, p := range candidates {
		if _, ok := known[p.ID]; !ok {
			population = append(population, p)
			known[p.ID] = p
		}
	}
	return population
}

func (r *round) score(id string) float64 {
	return r.scores[id]
}

// rank returns the player's position in the dynamic order; unranked players
// sort after everyone.
func (r *round) rank(id string) int {
	if pos, ok := r.positions[id]; ok {
		return pos
	}
	return len(r.order)
}

func (r *round) tier(id string) ranking.Tier {
	t, _ := r.tiers.Lookup(id)
	return t
}

func (r *round) lookup(ids []string) []model.Player {
	return lo.Map(ids, func(id string, _ int) model.Player { return r.players[id] })
}

// byPriority returns ids ordered by ascending priority score, stable.
func (r *round) byPriority(ids []string) []string {
	out := slices.Clone(ids)
	slices.SortStableFunc(out, func(a, b string) int {
		return cmp.Compare(r.score(a), r.score(b))
	})
	return out
}

// byRank returns ids ordered strongest first, stable.
func (r *round) byRank(ids []string) []string {
	out := slices.Clone(ids)
	slices.SortStableFunc(out, func(a, b string) int {
		return r.rank(a) - r.rank(b)
	})
	return out
}

// valid applies the hard-preference checks: no recent rematch and, with
// three tiers, no isolated extreme.
func (r *round) valid(ids []string) bool {
	if HasSimilarRecentMatch(ids, r.history) {
		return false
	}
	if r.totalCourts >= 3 && HasIsolatedExtreme(ids, r.tiers) {
		return false
	}
	return true
}
