// Package assign picks who plays next on each empty court of a practice
// session. Every entry point reads plain snapshots of players and match
// history and returns fresh results; time and randomness are injected
// through the options so two calls with the same inputs agree.
package assign

import (
	"fmt"
	"math/rand/v2"
	"slices"
	"time"

	"github.com/rs/zerolog"
	"github.com/samber/lo"

	"github.com/derekprior/courts/internal/model"
	"github.com/derekprior/courts/internal/priority"
)

// Options configures AssignCourts.
type Options struct {
	// TotalCourtCount is the number of courts in the session. It decides
	// between two and three tiers. Defaults to the court count.
	TotalCourtCount int
	// TargetCourtIDs are the courts to fill, numbered from 1. Defaults to
	// 1..courtCount.
	TargetCourtIDs []int
	// PracticeStart anchors stay-duration priority.
	PracticeStart time.Time
	// AllPlayers is the population tiers are computed over. It may include
	// players already on other courts.
	AllPlayers []model.Player
	// UseStayDurationPriority ranks by games per minute present instead of
	// games played.
	UseStayDurationPriority bool

	// Now is the evaluation time. Defaults to time.Now().
	Now time.Time
	// Rand returns values in [0, 1). Defaults to math/rand/v2.Float64.
	Rand func() float64
	// JitterScale scales the two-court affinity draw. Defaults to
	// DefaultJitterScale.
	JitterScale float64
	// Logger receives debug output about widening and swaps. Defaults to a
	// disabled logger.
	Logger *zerolog.Logger
}

func (o Options) withDefaults(courtCount int) Options {
	if o.TotalCourtCount <= 0 {
		o.TotalCourtCount = courtCount
	}
	if len(o.TargetCourtIDs) == 0 {
		o.TargetCourtIDs = lo.RangeFrom(1, courtCount)
	}
	if o.Now.IsZero() {
		o.Now = time.Now()
	}
	if o.Rand == nil {
		o.Rand = rand.Float64
	}
	if o.JitterScale <= 0 {
		o.JitterScale = DefaultJitterScale
	}
	if o.Logger == nil {
		nop := zerolog.Nop()
		o.Logger = &nop
	}
	return o
}

func (o Options) validate(courtCount int) error {
	if courtCount <= 0 {
		return fmt.Errorf("court count must be positive, got %d", courtCount)
	}
	if len(o.TargetCourtIDs) != courtCount {
		return fmt.Errorf("%d target courts given for %d courts to fill", len(o.TargetCourtIDs), courtCount)
	}
	if courtCount > o.TotalCourtCount {
		return fmt.Errorf("cannot fill %d courts in a %d-court session", courtCount, o.TotalCourtCount)
	}
	seen := make(map[int]bool)
	for _, id := range o.TargetCourtIDs {
		if id < 1 || id > o.TotalCourtCount {
			return fmt.Errorf("court %d is outside 1..%d", id, o.TotalCourtCount)
		}
		if seen[id] {
			return fmt.Errorf("court %d listed twice", id)
		}
		seen[id] = true
	}
	return nil
}

// InsufficientPlayersError is returned when there are not enough active
// players to fill every requested court.
type InsufficientPlayersError struct {
	Required  int
	Available int
}

func (e *InsufficientPlayersError) Error() string {
	return fmt.Sprintf("not enough players: %d required, %d available", e.Required, e.Available)
}

// AssignmentImpossibleError is returned when fewer than four players remain
// for a court after every fallback.
type AssignmentImpossibleError struct {
	CourtID   int
	Available int
}

func (e *AssignmentImpossibleError) Error() string {
	return fmt.Sprintf("cannot fill court %d: only %d players left", e.CourtID, e.Available)
}

// AssignCourts fills courtCount courts from the non-resting players.
// History is newest first. A session of exactly two courts filling both at
// once uses a single holistic split; every other case fills courts one at a
// time in ascending id order.
func AssignCourts(players []model.Player, courtCount int, history []model.Match, opts Options) ([]model.CourtAssignment, error) {
	opts = opts.withDefaults(courtCount)
	if err := opts.validate(courtCount); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	active := lo.Filter(players, func(p model.Player, _ int) bool { return p.Active() })
	required := courtCount * 4
	if len(active) < required {
		return nil, &InsufficientPlayersError{Required: required, Available: len(active)}
	}

	strategy := priority.For(opts.UseStayDurationPriority, opts.PracticeStart)
	r := newRound(active, opts.AllPlayers, history, opts.TotalCourtCount, strategy, opts.Now, *opts.Logger)

	candidates := r.byPriority(lo.Map(active, func(p model.Player, _ int) string { return p.ID }))
	courtIDs := slices.Sorted(slices.Values(opts.TargetCourtIDs))

	var (
		out []model.CourtAssignment
		err error
	)
	if opts.TotalCourtCount == 2 && len(courtIDs) == 2 {
		out, err = r.assignHolistic([2]int{courtIDs[0], courtIDs[1]}, candidates, opts.Rand, opts.JitterScale)
	} else {
		out, err = r.assignEachCourt(courtIDs, candidates)
	}
	if err != nil {
		return nil, err
	}

	opts.Logger.Debug().
		Int("courts", len(out)).
		Int("active", len(active)).
		Msg("courts assigned")
	return out, nil
}
