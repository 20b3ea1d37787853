// Package ranking builds the skill order used to tier players: an initial
// order from ratings, adjusted by replaying recent wins and losses.
package ranking

import (
	"slices"

	"github.com/samber/lo"

	"github.com/derekprior/courts/internal/model"
)

// BuildInitialOrder ranks rated players by rating (descending, stable) and
// inserts the unrated players as one block after the top third of the
// rated players.
func BuildInitialOrder(players []model.Player) []string {
	rated := lo.Filter(players, func(p model.Player, _ int) bool { return p.Rating > 0 })
	unrated := lo.Filter(players, func(p model.Player, _ int) bool { return p.Rating <= 0 })

	slices.SortStableFunc(rated, func(a, b model.Player) int {
		return b.Rating - a.Rating
	})

	at := len(rated) / 3
	order := make([]string, 0, len(players))
	for _, p := range rated[:at] {
		order = append(order, p.ID)
	}
	for _, p := range unrated {
		order = append(order, p.ID)
	}
	for _, p := range rated[at:] {
		order = append(order, p.ID)
	}
	return order
}

// ApplyStreakSwaps replays history (supplied newest first) from the oldest
// match forward and moves winners up and losers down the order. Every second
// consecutive win jumps a full group step; other wins move up one place.
// Losses drop half a group step. Ids in history that are not in the order
// are tracked for streaks but never inserted.
func ApplyStreakSwaps(initial []string, history []model.Match, groupCount int) []string {
	order := NewOrder(initial)
	if order.Len() == 0 || len(history) == 0 {
		return order.IDs()
	}
	if groupCount < 1 {
		groupCount = 1
	}

	step := max(1, order.Len()/groupCount)
	drop := max(1, (step+1)/2)

	streaks := make(map[string]int)
	for _, m := range chronological(history) {
		if !m.Scored() {
			continue
		}
		for _, id := range m.Winners() {
			s := recordWin(streaks, id)
			if s >= 2 && s%2 == 0 {
				order.Shift(id, -step)
			} else {
				order.Shift(id, -1)
			}
		}
		for _, id := range m.Losers() {
			streaks[id] = 0
			order.Shift(id, drop)
		}
	}
	return order.IDs()
}

// DynamicOrder is BuildInitialOrder followed by ApplyStreakSwaps.
func DynamicOrder(players []model.Player, history []model.Match, groupCount int) []string {
	return ApplyStreakSwaps(BuildInitialOrder(players), history, groupCount)
}

// chronological returns history oldest first without touching the input.
func chronological(history []model.Match) []model.Match {
	out := slices.Clone(history)
	slices.Reverse(out)
	return out
}
