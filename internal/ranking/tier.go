package ranking

import "fmt"

// Tier is a skill band of the rank order.
type Tier int

const (
	TierUpper Tier = iota
	TierMiddle
	TierLower
)

func (t Tier) String() string {
	switch t {
	case TierUpper:
		return "upper"
	case TierMiddle:
		return "middle"
	case TierLower:
		return "lower"
	}
	return fmt.Sprintf("Tier(%d)", int(t))
}

// Tiers maps player id to tier.
type Tiers map[string]Tier

// Lookup returns the player's tier and whether the player was grouped.
func (t Tiers) Lookup(id string) (Tier, bool) {
	tier, ok := t[id]
	return tier, ok
}

// Members returns the ids in tier, in rank order.
func (t Tiers) Members(order []string, tier Tier) []string {
	var out []string
	for _, id := range order {
		if got, ok := t[id]; ok && got == tier {
			out = append(out, id)
		}
	}
	return out
}

// GroupCount returns how many tiers a session with totalCourts courts uses.
func GroupCount(totalCourts int) int {
	if totalCourts >= 3 {
		return 3
	}
	return 2
}

// GroupTiers splits order positionally. With three groups the remainder
// goes to the middle tier; with two the upper half is floor(n/2).
func GroupTiers(order []string, groupCount int) Tiers {
	n := len(order)
	tiers := make(Tiers, n)
	if groupCount >= 3 {
		size := n / 3
		middleEnd := 2*size + n%3
		for i, id := range order {
			switch {
			case i < size:
				tiers[id] = TierUpper
			case i < middleEnd:
				tiers[id] = TierMiddle
			default:
				tiers[id] = TierLower
			}
		}
		return tiers
	}

	upper := n / 2
	for i, id := range order {
		if i < upper {
			tiers[id] = TierUpper
		} else {
			tiers[id] = TierLower
		}
	}
	return tiers
}
