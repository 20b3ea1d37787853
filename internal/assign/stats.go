package assign

import (
	"github.com/derekprior/courts/internal/model"
	"github.com/derekprior/courts/internal/ranking"
)

// CalculatePlayerStats totals games, wins, losses and points for each player
// over the scored matches in history. Results follow the order of players.
func CalculatePlayerStats(players []model.Player, history []model.Match) []model.PlayerStats {
	byID := make(map[string]*model.PlayerStats, len(players))
	out := make([]model.PlayerStats, len(players))
	for i, p := range players {
		out[i] = model.PlayerStats{PlayerID: p.ID, Name: p.DisplayName()}
		byID[p.ID] = &out[i]
	}

	tally := func(team [2]string, own, other int, won bool) {
		for _, id := range team {
			s, ok := byID[id]
			if !ok {
				continue
			}
			s.Games++
			s.PointsFor += own
			s.PointsAgainst += other
			if won {
				s.Wins++
			} else {
				s.Losses++
			}
		}
	}
	for _, m := range history {
		if !m.Scored() {
			continue
		}
		tally(m.TeamA, m.ScoreA, m.ScoreB, m.Winner == model.WinnerA)
		tally(m.TeamB, m.ScoreB, m.ScoreA, m.Winner == model.WinnerB)
	}

	streaks := ranking.GetStreaks(history)
	for i := range out {
		out[i].Streak = streaks[out[i].PlayerID]
	}
	return out
}
