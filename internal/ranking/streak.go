package ranking

import "github.com/derekprior/courts/internal/model"

// GetStreaks replays history oldest first and returns each player's current
// streak: positive for consecutive wins, negative for consecutive losses.
// Unscored matches are ignored.
func GetStreaks(history []model.Match) map[string]int {
	streaks := make(map[string]int)
	for _, m := range chronological(history) {
		if !m.Scored() {
			continue
		}
		for _, id := range m.Winners() {
			recordWin(streaks, id)
		}
		for _, id := range m.Losers() {
			recordLoss(streaks, id)
		}
	}
	return streaks
}

func recordWin(streaks map[string]int, id string) int {
	if streaks[id] > 0 {
		streaks[id]++
	} else {
		streaks[id] = 1
	}
	return streaks[id]
}

func recordLoss(streaks map[string]int, id string) int {
	if streaks[id] < 0 {
		streaks[id]--
	} else {
		streaks[id] = -1
	}
	return streaks[id]
}
