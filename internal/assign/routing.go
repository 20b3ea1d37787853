package assign

import (
	"fmt"

	"github.com/derekprior/courts/internal/ranking"
)

// Two-court sessions lean tiers toward a court instead of pinning them.
const (
	twoCourtHome = 0.70
	twoCourtAway = 0.30
)

// RouteProbability is how strongly tier belongs on courtID in a session with
// totalCourts courts. Court ids start at 1; lower ids host stronger play.
func RouteProbability(tier ranking.Tier, courtID, totalCourts int) float64 {
	switch {
	case totalCourts <= 1:
		return 1.0
	case totalCourts == 2:
		home := ranking.TierUpper
		if courtID != 1 {
			home = ranking.TierLower
		}
		switch tier {
		case home:
			return twoCourtHome
		case ranking.TierUpper, ranking.TierMiddle, ranking.TierLower:
			return twoCourtAway
		}
	default:
		if courtBand(courtID, totalCourts) == tier {
			return 1.0
		}
		return 0
	}
	panic(fmt.Sprintf("unhandled tier %s", tier))
}

// courtBand maps a court to the tier it hosts when there are three or more
// courts: the courts are split into upper, middle and lower thirds by id.
func courtBand(courtID, totalCourts int) ranking.Tier {
	band := (courtID - 1) * 3 / totalCourts
	switch {
	case band <= 0:
		return ranking.TierUpper
	case band == 1:
		return ranking.TierMiddle
	default:
		return ranking.TierLower
	}
}
