package assign

import (
	"github.com/samber/lo"

	"github.com/derekprior/courts/internal/model"
	"github.com/derekprior/courts/internal/ranking"
)

// recentHorizon is how many of each player's own latest matches are checked.
const recentHorizon = 2

// HasSimilarRecentMatch reports whether three or more of ids met in one of
// the last two matches of any single one of them. History is newest first.
func HasSimilarRecentMatch(ids []string, history []model.Match) bool {
	_, ok := SimilarRecentMatch(ids, history)
	return ok
}

// SimilarRecentMatch returns the first match that makes
// HasSimilarRecentMatch true.
func SimilarRecentMatch(ids []string, history []model.Match) (model.Match, bool) {
	for _, id := range ids {
		seen := 0
		for _, m := range history {
			if !m.Includes(id) {
				continue
			}
			participants := m.Participants()
			if len(lo.Intersect(ids, participants[:])) >= 3 {
				return m, true
			}
			seen++
			if seen == recentHorizon {
				break
			}
		}
	}
	return model.Match{}, false
}

// HasIsolatedExtreme reports whether a lone upper-tier player faces three
// lower-tier players, or the reverse. Only meaningful with three tiers.
func HasIsolatedExtreme(ids []string, tiers ranking.Tiers) bool {
	upper, lower := 0, 0
	for _, id := range ids {
		tier, ok := tiers.Lookup(id)
		if !ok {
			continue
		}
		switch tier {
		case ranking.TierUpper:
			upper++
		case ranking.TierLower:
			lower++
		}
	}
	if upper == 0 || lower == 0 {
		return false
	}
	return (upper == 1 && lower >= 3) || (lower == 1 && upper >= 3)
}

// GenderPenalty charges a 1/3 gender split when all four players are tagged.
func GenderPenalty(players []model.Player, oneGameDelta float64) float64 {
	males, tagged := 0, 0
	for _, p := range players {
		switch p.Gender {
		case model.GenderMale:
			males++
			tagged++
		case model.GenderFemale:
			tagged++
		}
	}
	if tagged != 4 {
		return 0
	}
	if males == 1 || males == 3 {
		return 0.5 * oneGameDelta
	}
	return 0
}

// comboRepeatAllowance is how many times the same foursome may already have
// played without extra cost.
const comboRepeatAllowance = 2

// ComboRepeatPenalty charges a foursome that already played together more
// than twice anywhere in history, so its next meeting would be a fourth.
func ComboRepeatPenalty(ids []string, history []model.Match, oneGameDelta float64) float64 {
	if RepeatsCombo(ids, history) {
		return 3 * oneGameDelta
	}
	return 0
}

// RepeatsCombo reports whether the foursome has used up its allowance of
// earlier meetings.
func RepeatsCombo(ids []string, history []model.Match) bool {
	return len(ComboMatches(ids, history)) > comboRepeatAllowance
}

// ComboMatches returns the matches in history played by exactly these four
// players, in either arrangement.
func ComboMatches(ids []string, history []model.Match) []model.Match {
	if len(lo.Uniq(ids)) != 4 {
		return nil
	}
	return lo.Filter(history, func(m model.Match, _ int) bool {
		participants := m.Participants()
		return lo.Every(participants[:], ids)
	})
}
