package model

import (
	"fmt"
	"time"
)

// Gender is an optional tag used for mixed-play balancing.
type Gender string

const (
	GenderUnknown Gender = ""
	GenderMale    Gender = "M"
	GenderFemale  Gender = "F"
)

// Player is a session participant. The scheduler only reads players; the
// surrounding application owns every mutation.
type Player struct {
	ID          string    `yaml:"id"`
	Name        string    `yaml:"name"`
	Rating      int       `yaml:"rating"` // 0 = unrated
	GamesPlayed int       `yaml:"games_played"`
	Resting     bool      `yaml:"resting"`
	ActivatedAt time.Time `yaml:"activated_at"`
	Gender      Gender    `yaml:"gender"`
}

// Active reports whether the player can be placed on a court.
func (p Player) Active() bool {
	return !p.Resting
}

// DisplayName returns the name, falling back to the id.
func (p Player) DisplayName() string {
	if p.Name == "" {
		return p.ID
	}
	return p.Name
}

// Winner tags the side that won a match. Empty means not scored yet.
type Winner string

const (
	WinnerNone Winner = ""
	WinnerA    Winner = "A"
	WinnerB    Winner = "B"
)

// Match is a finished (or in-progress) game on one court.
type Match struct {
	ID         string    `yaml:"id"`
	CourtID    int       `yaml:"court"`
	TeamA      [2]string `yaml:"team_a"`
	TeamB      [2]string `yaml:"team_b"`
	ScoreA     int       `yaml:"score_a"`
	ScoreB     int       `yaml:"score_b"`
	Winner     Winner    `yaml:"winner"`
	StartedAt  time.Time `yaml:"started_at"`
	FinishedAt time.Time `yaml:"finished_at"`
}

// Participants returns the four player ids, team A first.
func (m Match) Participants() [4]string {
	return [4]string{m.TeamA[0], m.TeamA[1], m.TeamB[0], m.TeamB[1]}
}

// Includes reports whether id played in the match.
func (m Match) Includes(id string) bool {
	for _, p := range m.Participants() {
		if p == id {
			return true
		}
	}
	return false
}

// Scored reports whether the match has a winner.
func (m Match) Scored() bool {
	return m.Winner == WinnerA || m.Winner == WinnerB
}

// Winners returns the winning team, or nil for an unscored match.
func (m Match) Winners() []string {
	switch m.Winner {
	case WinnerA:
		return m.TeamA[:]
	case WinnerB:
		return m.TeamB[:]
	}
	return nil
}

// Losers returns the losing team, or nil for an unscored match.
func (m Match) Losers() []string {
	switch m.Winner {
	case WinnerA:
		return m.TeamB[:]
	case WinnerB:
		return m.TeamA[:]
	}
	return nil
}

// CourtAssignment is one filled court: two teams of two.
type CourtAssignment struct {
	CourtID int
	TeamA   [2]string
	TeamB   [2]string
}

// Players returns the four assigned ids, team A first.
func (c CourtAssignment) Players() [4]string {
	return [4]string{c.TeamA[0], c.TeamA[1], c.TeamB[0], c.TeamB[1]}
}

func (c CourtAssignment) String() string {
	return fmt.Sprintf("Court %d: %s & %s vs %s & %s",
		c.CourtID, c.TeamA[0], c.TeamA[1], c.TeamB[0], c.TeamB[1])
}

// PlayerStats aggregates a player's results over the supplied history.
type PlayerStats struct {
	PlayerID      string
	Name          string
	Games         int
	Wins          int
	Losses        int
	PointsFor     int
	PointsAgainst int
	Streak        int
}

// Index maps player ids to players.
func Index(players []Player) map[string]Player {
	m := make(map[string]Player, len(players))
	for _, p := range players {
		m[p.ID] = p
	}
	return m
}
