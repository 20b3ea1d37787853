package priority

import (
	"math"
	"testing"
	"time"

	"github.com/derekprior/courts/internal/model"
)

var start = time.Date(2026, 10, 17, 18, 0, 0, 0, time.UTC)

func TestGet(t *testing.T) {
	t.Run("known names", func(t *testing.T) {
		for _, name := range []string{"", "games_played", "stay_duration"} {
			if _, err := Get(name, start); err != nil {
				t.Errorf("Get(%q) error: %v", name, err)
			}
		}
	})

	t.Run("unknown name", func(t *testing.T) {
		if _, err := Get("round_robin", start); err == nil {
			t.Error("expected error for unknown priority")
		}
	})
}

func TestGamesPlayed(t *testing.T) {
	s := &GamesPlayed{}

	t.Run("unplayed sorts first", func(t *testing.T) {
		if got := s.Score(model.Player{}, start); got != Unplayed {
			t.Errorf("score = %v, want %v", got, Unplayed)
		}
	})

	t.Run("scales games played", func(t *testing.T) {
		if got := s.Score(model.Player{GamesPlayed: 5}, start); math.Abs(got-2.0) > 1e-9 {
			t.Errorf("score = %v, want 2.0", got)
		}
	})

	t.Run("two unplayed players still compare", func(t *testing.T) {
		sum := s.Score(model.Player{}, start) + s.Score(model.Player{}, start)
		if math.IsInf(sum, 0) || sum >= Unplayed {
			t.Errorf("sum = %v, want finite and below a single sentinel", sum)
		}
	})
}

func TestStayDuration(t *testing.T) {
	s := &StayDuration{PracticeStart: start}
	now := start.Add(60 * time.Minute)

	t.Run("games per minute since practice start", func(t *testing.T) {
		got := s.Score(model.Player{GamesPlayed: 3}, now)
		if math.Abs(got-0.05) > 1e-9 {
			t.Errorf("score = %v, want 0.05", got)
		}
	})

	t.Run("late arrival measured from activation", func(t *testing.T) {
		p := model.Player{GamesPlayed: 3, ActivatedAt: start.Add(30 * time.Minute)}
		got := s.Score(p, now)
		if math.Abs(got-0.1) > 1e-9 {
			t.Errorf("score = %v, want 0.1", got)
		}
	})

	t.Run("minimum of five minutes", func(t *testing.T) {
		p := model.Player{GamesPlayed: 1, ActivatedAt: now.Add(-time.Minute)}
		got := s.Score(p, now)
		if math.Abs(got-0.2) > 1e-9 {
			t.Errorf("score = %v, want 0.2", got)
		}
	})

	t.Run("one game delta", func(t *testing.T) {
		got := s.OneGameDelta(now)
		if math.Abs(got-1.0/60) > 1e-9 {
			t.Errorf("delta = %v, want 1/60", got)
		}
	})
}
