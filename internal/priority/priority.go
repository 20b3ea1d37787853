package priority

import (
	"fmt"
	"math"
	"time"

	"github.com/derekprior/courts/internal/model"
)

// Unplayed is the score of a player with no games yet. It is finite so that
// several unplayed players can still be summed and compared.
const Unplayed = -1e9

// minMinutes keeps a freshly activated player from dividing by ~0.
const minMinutes = 5.0

// Strategy scores players for play eligibility. Lower scores play first.
type Strategy interface {
	Score(p model.Player, now time.Time) float64
	// OneGameDelta is roughly how much one extra game adds to a score. It
	// scales the soft penalties used when choosing a foursome.
	OneGameDelta(now time.Time) float64
}

// Get returns a Strategy by name.
func Get(name string, practiceStart time.Time) (Strategy, error) {
	switch name {
	case "", "games_played":
		return &GamesPlayed{}, nil
	case "stay_duration":
		return &StayDuration{PracticeStart: practiceStart}, nil
	default:
		return nil, fmt.Errorf("unknown priority: %q", name)
	}
}

// For picks the stay-duration strategy when useStayDuration is set.
func For(useStayDuration bool, practiceStart time.Time) Strategy {
	if useStayDuration {
		return &StayDuration{PracticeStart: practiceStart}
	}
	return &GamesPlayed{}
}

// GamesPlayed ranks by games played alone.
type GamesPlayed struct{}

const gameWeight = 0.4

// Score is 0.4 per game played, or Unplayed for a player with none.
func (s *GamesPlayed) Score(p model.Player, _ time.Time) float64 {
	if p.GamesPlayed == 0 {
		return Unplayed
	}
	return float64(p.GamesPlayed) * gameWeight
}

// OneGameDelta is the score of a single game, whatever the time.
func (s *GamesPlayed) OneGameDelta(_ time.Time) float64 {
	return gameWeight
}

// StayDuration ranks by games played per minute present, so late arrivals
// are not pushed to the back of the queue.
type StayDuration struct {
	PracticeStart time.Time
}

// Score is games per minute since the player arrived or practice began,
// whichever is later. A player with no games scores Unplayed.
func (s *StayDuration) Score(p model.Player, now time.Time) float64 {
	if p.GamesPlayed == 0 {
		return Unplayed
	}
	return float64(p.GamesPlayed) / s.minutesSince(p.ActivatedAt, now)
}

// OneGameDelta is one game spread over the minutes since practice began.
func (s *StayDuration) OneGameDelta(now time.Time) float64 {
	return 1 / s.minutesSince(s.PracticeStart, now)
}

// minutesSince measures from the later of since and the practice start.
func (s *StayDuration) minutesSince(since, now time.Time) float64 {
	anchor := since
	if anchor.IsZero() || anchor.Before(s.PracticeStart) {
		anchor = s.PracticeStart
	}
	if anchor.IsZero() {
		return minMinutes
	}
	return math.Max(now.Sub(anchor).Minutes(), minMinutes)
}
