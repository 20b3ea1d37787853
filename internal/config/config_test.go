package config

import (
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/derekprior/courts/internal/model"
)

const testConfigYAML = `
session:
  total_courts: 3
  fill_courts: [2]
  practice_start: "2026-10-17 18:00"
  priority: stay_duration
  jitter: 1.5
  seed: 42

players:
  - {id: ann, name: Ann, rating: 1800, games_played: 3, gender: F}
  - {id: bo, name: Bo, rating: 1500, games_played: 2, gender: M}
  - {id: cy, name: Cy, games_played: 1}
  - {id: di, name: Di, rating: 1200, resting: true}
  - {id: ed, name: Ed, rating: 1100, activated_at: "2026-10-17 18:30"}

history:
  - court: 1
    team_a: [ann, bo]
    team_b: [cy, ed]
  - id: m-1
    court: 2
    team_a: [ann, cy]
    team_b: [bo, di]
    score_a: 21
    score_b: 18
    winner: A
`

func TestLoadConfig(t *testing.T) {
	cfg, err := LoadFromBytes([]byte(testConfigYAML))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	t.Run("session", func(t *testing.T) {
		s := cfg.Session
		if s.TotalCourts != 3 {
			t.Errorf("total courts = %d, want 3", s.TotalCourts)
		}
		if diff := cmp.Diff([]int{2}, s.FillCourts); diff != "" {
			t.Errorf("fill courts mismatch (-want +got):\n%s", diff)
		}
		want := time.Date(2026, 10, 17, 18, 0, 0, 0, time.Local)
		if !s.PracticeStart.Time.Equal(want) {
			t.Errorf("practice start = %v, want %v", s.PracticeStart.Time, want)
		}
		if !s.UseStayDuration() {
			t.Error("priority stay_duration should enable stay duration")
		}
		if s.Jitter != 1.5 || s.Seed != 42 {
			t.Errorf("jitter/seed = %v/%d, want 1.5/42", s.Jitter, s.Seed)
		}
	})

	t.Run("players", func(t *testing.T) {
		if len(cfg.Players) != 5 {
			t.Fatalf("players = %d, want 5", len(cfg.Players))
		}
		ann := cfg.Players[0]
		if ann.Rating != 1800 || ann.GamesPlayed != 3 || ann.Gender != model.GenderFemale {
			t.Errorf("ann = %+v", ann)
		}
		if cfg.Players[2].Rating != 0 {
			t.Errorf("cy rating = %d, want unrated", cfg.Players[2].Rating)
		}
		if !cfg.Players[3].Resting {
			t.Error("di should be resting")
		}
		want := time.Date(2026, 10, 17, 18, 30, 0, 0, time.Local)
		if got := cfg.Players[4].ActivatedAt; !got.Equal(want) {
			t.Errorf("ed activated_at = %v, want %v", got, want)
		}
	})

	t.Run("history", func(t *testing.T) {
		if len(cfg.History) != 2 {
			t.Fatalf("history = %d, want 2", len(cfg.History))
		}
		if cfg.History[0].ID == "" {
			t.Error("match without id should get a generated one")
		}
		if cfg.History[1].ID != "m-1" {
			t.Errorf("id = %q, want m-1", cfg.History[1].ID)
		}
		m := cfg.History[1]
		if m.Winner != model.WinnerA || m.ScoreA != 21 || m.ScoreB != 18 {
			t.Errorf("scored match = %+v", m)
		}
	})

	t.Run("courts in use", func(t *testing.T) {
		if diff := cmp.Diff([]int{2, 3}, cfg.EmptyCourts()); diff != "" {
			t.Errorf("empty courts mismatch (-want +got):\n%s", diff)
		}
		// di rests and everyone else is on court 1
		if got := cfg.Available(); len(got) != 0 {
			t.Errorf("available = %v, want none", got)
		}
	})

	t.Run("rand is reproducible with a seed", func(t *testing.T) {
		a, b := cfg.Session.Rand(), cfg.Session.Rand()
		for range 5 {
			if x, y := a(), b(); x != y {
				t.Fatalf("seeded draws differ: %v vs %v", x, y)
			}
		}
	})
}

func TestLoadConfigValidation(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{
			name: "no courts",
			yaml: "session: {total_courts: 0}",
			want: "total_courts",
		},
		{
			name: "fill court out of range",
			yaml: "session: {total_courts: 2, fill_courts: [3]}",
			want: "outside 1..2",
		},
		{
			name: "unknown priority",
			yaml: "session: {total_courts: 2, priority: fastest}",
			want: "unknown priority",
		},
		{
			name: "duplicate player",
			yaml: `
session: {total_courts: 1}
players:
  - {id: a}
  - {id: a}
`,
			want: "more than once",
		},
		{
			name: "bad gender",
			yaml: `
session: {total_courts: 1}
players:
  - {id: a, gender: X}
`,
			want: "gender",
		},
		{
			name: "incomplete team",
			yaml: `
session: {total_courts: 1}
history:
  - {team_a: [a, b], team_b: [c, ""]}
`,
			want: "two players",
		},
		{
			name: "player twice in one match",
			yaml: `
session: {total_courts: 1}
history:
  - {team_a: [a, b], team_b: [c, a]}
`,
			want: "listed twice",
		},
		{
			name: "bad winner",
			yaml: `
session: {total_courts: 1}
history:
  - {team_a: [a, b], team_b: [c, d], winner: C}
`,
			want: "winner",
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := LoadFromBytes([]byte(tc.yaml))
			if err == nil {
				t.Fatalf("expected error containing %q", tc.want)
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Errorf("error = %q, want it to contain %q", err, tc.want)
			}
		})
	}
}

func TestApplyEnv(t *testing.T) {
	env := func(vars map[string]string) func(string) (string, bool) {
		return func(k string) (string, bool) {
			v, ok := vars[k]
			return v, ok
		}
	}

	t.Run("overrides", func(t *testing.T) {
		cfg, err := LoadFromBytes([]byte("session: {total_courts: 2}"))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		err = cfg.ApplyEnv(env(map[string]string{"COURTS_SEED": "7", "COURTS_PRIORITY": "stay_duration"}))
		if err != nil {
			t.Fatalf("ApplyEnv() error: %v", err)
		}
		if cfg.Session.Seed != 7 || cfg.Session.Priority != "stay_duration" {
			t.Errorf("session = %+v", cfg.Session)
		}
	})

	t.Run("rejects bad values", func(t *testing.T) {
		cfg, _ := LoadFromBytes([]byte("session: {total_courts: 2}"))
		if err := cfg.ApplyEnv(env(map[string]string{"COURTS_SEED": "abc"})); err == nil {
			t.Error("expected error for non-numeric seed")
		}
		if err := cfg.ApplyEnv(env(map[string]string{"COURTS_PRIORITY": "nope"})); err == nil {
			t.Error("expected error for unknown priority")
		}
	})
}
