package assign

import (
	"slices"

	"github.com/derekprior/courts/internal/model"
)

// FormTeams pairs four players by rank: strongest with weakest against the
// middle two. When all four are tagged two and two by gender and that split
// is not mixed on both sides, 1+3 vs 2+4 is used instead if it is. 1+2 vs
// 3+4 is never considered. Players missing from order rank last.
func FormTeams(four []model.Player, order []string) (teamA, teamB [2]string) {
	pos := make(map[string]int, len(order))
	for i, id := range order {
		pos[id] = i
	}
	rankOf := func(p model.Player) int {
		if i, ok := pos[p.ID]; ok {
			return i
		}
		return len(order)
	}

	ranked := slices.Clone(four)
	slices.SortStableFunc(ranked, func(a, b model.Player) int {
		return rankOf(a) - rankOf(b)
	})
	if len(ranked) < 4 {
		for i, p := range ranked {
			if i%2 == 0 {
				teamA[i/2] = p.ID
			} else {
				teamB[i/2] = p.ID
			}
		}
		return teamA, teamB
	}

	teamA = [2]string{ranked[0].ID, ranked[3].ID}
	teamB = [2]string{ranked[1].ID, ranked[2].ID}

	if !evenGenderSplit(ranked) {
		return teamA, teamB
	}
	if mixed(ranked[0], ranked[3]) && mixed(ranked[1], ranked[2]) {
		return teamA, teamB
	}
	if mixed(ranked[0], ranked[2]) && mixed(ranked[1], ranked[3]) {
		return [2]string{ranked[0].ID, ranked[2].ID}, [2]string{ranked[1].ID, ranked[3].ID}
	}
	return teamA, teamB
}

func evenGenderSplit(players []model.Player) bool {
	males, females := 0, 0
	for _, p := range players {
		switch p.Gender {
		case model.GenderMale:
			males++
		case model.GenderFemale:
			females++
		}
	}
	return males == 2 && females == 2
}

func mixed(a, b model.Player) bool {
	return a.Gender != model.GenderUnknown && b.Gender != model.GenderUnknown && a.Gender != b.Gender
}
