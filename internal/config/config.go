// Package config loads a practice session snapshot: court layout, roster
// and match history.
package config

import (
	"fmt"
	"math/rand/v2"
	"os"
	"strconv"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/derekprior/courts/internal/model"
	"github.com/derekprior/courts/internal/priority"
)

// Timestamp is a time.Time that also accepts the short forms people type
// into a session file by hand.
type Timestamp struct {
	Time time.Time
}

func (t *Timestamp) UnmarshalYAML(value *yaml.Node) error {
	if value.Value == "" {
		t.Time = time.Time{}
		return nil
	}
	parsed, err := model.ParseTimestamp(value.Value)
	if err != nil {
		return err
	}
	t.Time = parsed
	return nil
}

type Session struct {
	TotalCourts   int       `yaml:"total_courts"`
	FillCourts    []int     `yaml:"fill_courts"`
	PracticeStart Timestamp `yaml:"practice_start"`
	Priority      string    `yaml:"priority"`
	Jitter        float64   `yaml:"jitter"`
	Seed          uint64    `yaml:"seed"`
}

// UseStayDuration reports whether the session ranks by games per minute.
func (s Session) UseStayDuration() bool {
	return s.Priority == "stay_duration"
}

// Rand returns a seeded source when a seed is set, otherwise the global one.
func (s Session) Rand() func() float64 {
	if s.Seed == 0 {
		return rand.Float64
	}
	return rand.New(rand.NewPCG(s.Seed, s.Seed)).Float64
}

type Config struct {
	Session Session        `yaml:"session"`
	Players []model.Player `yaml:"players"`
	// History is newest first.
	History []model.Match `yaml:"history"`
}

// InProgress returns the unscored matches that hold a court, newest first,
// one per court.
func (c *Config) InProgress() []model.Match {
	seen := make(map[int]bool)
	var out []model.Match
	for _, m := range c.History {
		if m.Scored() || m.CourtID == 0 || seen[m.CourtID] {
			continue
		}
		seen[m.CourtID] = true
		out = append(out, m)
	}
	return out
}

// EmptyCourts returns the courts with no match in progress, ascending.
func (c *Config) EmptyCourts() []int {
	busy := make(map[int]bool)
	for _, m := range c.InProgress() {
		busy[m.CourtID] = true
	}
	var out []int
	for id := 1; id <= c.Session.TotalCourts; id++ {
		if !busy[id] {
			out = append(out, id)
		}
	}
	return out
}

// OnCourt returns the ids of players currently in a match.
func (c *Config) OnCourt() map[string]bool {
	out := make(map[string]bool)
	for _, m := range c.InProgress() {
		for _, id := range m.Participants() {
			out[id] = true
		}
	}
	return out
}

// Available returns the players who are neither resting nor on a court.
func (c *Config) Available() []model.Player {
	onCourt := c.OnCourt()
	var out []model.Player
	for _, p := range c.Players {
		if p.Active() && !onCourt[p.ID] {
			out = append(out, p)
		}
	}
	return out
}

// LoadFromBytes parses YAML bytes into a Config and validates it.
func LoadFromBytes(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	cfg.assignMatchIDs()
	return &cfg, nil
}

// LoadFromFile reads and parses a YAML session file.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	return LoadFromBytes(data)
}

// ApplyEnv overrides session settings from the environment:
// COURTS_SEED and COURTS_PRIORITY.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup("COURTS_SEED"); ok && v != "" {
		seed, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return fmt.Errorf("COURTS_SEED: %w", err)
		}
		c.Session.Seed = seed
	}
	if v, ok := lookup("COURTS_PRIORITY"); ok && v != "" {
		if _, err := priority.Get(v, c.Session.PracticeStart.Time); err != nil {
			return fmt.Errorf("COURTS_PRIORITY: %w", err)
		}
		c.Session.Priority = v
	}
	return nil
}

func (c *Config) assignMatchIDs() {
	for i := range c.History {
		if c.History[i].ID == "" {
			c.History[i].ID = uuid.NewString()
		}
	}
}

func (c *Config) validate() error {
	s := c.Session
	if s.TotalCourts < 1 {
		return fmt.Errorf("total_courts must be at least 1, got %d", s.TotalCourts)
	}
	seenCourt := make(map[int]bool)
	for _, id := range s.FillCourts {
		if id < 1 || id > s.TotalCourts {
			return fmt.Errorf("fill_courts: court %d is outside 1..%d", id, s.TotalCourts)
		}
		if seenCourt[id] {
			return fmt.Errorf("fill_courts: court %d listed twice", id)
		}
		seenCourt[id] = true
	}
	if _, err := priority.Get(s.Priority, s.PracticeStart.Time); err != nil {
		return err
	}
	if s.Jitter < 0 {
		return fmt.Errorf("jitter must not be negative, got %v", s.Jitter)
	}

	seen := make(map[string]bool)
	for i, p := range c.Players {
		if p.ID == "" {
			return fmt.Errorf("player %d has no id", i+1)
		}
		if seen[p.ID] {
			return fmt.Errorf("player %q appears more than once", p.ID)
		}
		seen[p.ID] = true
		switch p.Gender {
		case model.GenderUnknown, model.GenderMale, model.GenderFemale:
		default:
			return fmt.Errorf("player %q: gender must be M, F or empty, got %q", p.ID, p.Gender)
		}
		if p.Rating < 0 || p.GamesPlayed < 0 {
			return fmt.Errorf("player %q: rating and games_played must not be negative", p.ID)
		}
	}

	for i, m := range c.History {
		slots := make(map[string]bool)
		for _, id := range m.Participants() {
			if id == "" {
				return fmt.Errorf("history entry %d: every team needs two players", i+1)
			}
			if slots[id] {
				return fmt.Errorf("history entry %d: %q is listed twice", i+1, id)
			}
			slots[id] = true
		}
		switch m.Winner {
		case model.WinnerNone, model.WinnerA, model.WinnerB:
		default:
			return fmt.Errorf("history entry %d: winner must be A, B or empty, got %q", i+1, m.Winner)
		}
		if m.CourtID < 0 || m.CourtID > s.TotalCourts {
			return fmt.Errorf("history entry %d: court %d is outside 1..%d", i+1, m.CourtID, s.TotalCourts)
		}
	}

	return nil
}
