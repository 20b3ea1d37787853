package assign

import (
	"cmp"
	"slices"
	"time"

	"github.com/rs/zerolog"
	"github.com/samber/lo"

	"github.com/derekprior/courts/internal/model"
	"github.com/derekprior/courts/internal/priority"
)

// eligibleProbability is the routing probability at which a waiting player
// counts as a fit for an empty court.
const eligibleProbability = 0.5

// WaitingOptions configures SortWaitingPlayers.
type WaitingOptions struct {
	TotalCourtCount         int
	EmptyCourtIDs           []int
	AllPlayers              []model.Player
	History                 []model.Match
	PracticeStart           time.Time
	UseStayDurationPriority bool
	Now                     time.Time
}

// SortWaitingPlayers orders the waiting list for display, most deserving
// first. With three or more courts and at least one empty court, players
// who fit an empty court's tier come before those who do not.
func SortWaitingPlayers(waiting []model.Player, opts WaitingOptions) []model.Player {
	if opts.Now.IsZero() {
		opts.Now = time.Now()
	}
	strategy := priority.For(opts.UseStayDurationPriority, opts.PracticeStart)
	r := newRound(waiting, opts.AllPlayers, opts.History, opts.TotalCourtCount, strategy, opts.Now, zerolog.Nop())

	out := slices.Clone(waiting)
	score := func(p model.Player) float64 { return strategy.Score(p, opts.Now) }

	if opts.TotalCourtCount < 3 || len(opts.EmptyCourtIDs) == 0 {
		slices.SortStableFunc(out, func(a, b model.Player) int {
			return cmp.Compare(score(a), score(b))
		})
		return out
	}

	eligible := func(p model.Player) bool {
		tier, ok := r.tiers.Lookup(p.ID)
		if !ok {
			return false
		}
		return lo.SomeBy(opts.EmptyCourtIDs, func(courtID int) bool {
			return RouteProbability(tier, courtID, opts.TotalCourtCount) >= eligibleProbability
		})
	}
	slices.SortStableFunc(out, func(a, b model.Player) int {
		ea, eb := eligible(a), eligible(b)
		if ea != eb {
			if ea {
				return -1
			}
			return 1
		}
		return cmp.Compare(score(a), score(b))
	})
	return out
}
