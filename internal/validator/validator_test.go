package validator

import (
	"strings"
	"testing"
	"time"

	"github.com/derekprior/courts/internal/config"
	"github.com/derekprior/courts/internal/excel"
	"github.com/derekprior/courts/internal/model"
)

var testNow = time.Date(2026, 10, 17, 20, 0, 0, 0, time.UTC)

func testConfig() *config.Config {
	return &config.Config{
		Session: config.Session{TotalCourts: 2},
		Players: []model.Player{
			{ID: "a", Name: "Ann", Rating: 2000, GamesPlayed: 1, Gender: model.GenderFemale},
			{ID: "b", Name: "Bo", Rating: 1900, GamesPlayed: 1, Gender: model.GenderMale},
			{ID: "c", Name: "Cy", Rating: 1800, GamesPlayed: 1, Gender: model.GenderMale},
			{ID: "d", Name: "Di", Rating: 1700, GamesPlayed: 1, Gender: model.GenderFemale},
			{ID: "e", Name: "Ed", Rating: 1600, GamesPlayed: 1, Gender: model.GenderMale},
			{ID: "f", Name: "Fay", Rating: 1500, GamesPlayed: 1, Resting: true},
			{ID: "g", Name: "Gus", Rating: 1400, GamesPlayed: 1},
			{ID: "h", Name: "Hal", Rating: 1300, GamesPlayed: 1},
			{ID: "i", Name: "Ida", Rating: 1200, GamesPlayed: 1},
			{ID: "j", Name: "Jo", Rating: 1100, GamesPlayed: 1},
		},
		History: []model.Match{
			{ID: "m-live", CourtID: 2, TeamA: [2]string{"g", "h"}, TeamB: [2]string{"i", "j"}},
		},
	}
}

func court(row, id int, ids ...string) Court {
	c := Court{Row: row, CourtID: id}
	copy(c.IDs[:], ids)
	return c
}

func find(violations []Violation, typ, substr string) bool {
	for _, v := range violations {
		if v.Type == typ && strings.Contains(v.Message, substr) {
			return true
		}
	}
	return false
}

func TestCheckCleanRound(t *testing.T) {
	violations := Check(testConfig(), []Court{court(2, 1, "a", "d", "b", "c")}, testNow)
	for _, v := range violations {
		t.Errorf("unexpected %s: %s", v.Type, v.Message)
	}
}

func TestCheckErrors(t *testing.T) {
	tests := []struct {
		name   string
		courts []Court
		want   string
	}{
		{"unknown player", []Court{court(2, 1, "a", "b", "c", "zz")}, `unknown player "zz"`},
		{"resting player", []Court{court(2, 1, "a", "b", "c", "f")}, "Fay is resting"},
		{"player still on court", []Court{court(2, 1, "a", "b", "c", "g")}, "Gus is still playing"},
		{"incomplete court", []Court{court(2, 1, "a", "b", "c")}, "fewer than four"},
		{"court in use", []Court{court(2, 2, "a", "b", "c", "d")}, "match in progress"},
		{"court out of range", []Court{court(2, 3, "a", "b", "c", "d")}, "outside 1..2"},
		{
			"match already recorded",
			[]Court{{Row: 2, CourtID: 1, MatchID: "m-live", IDs: [4]string{"a", "b", "c", "d"}}},
			"match m-live is already recorded",
		},
		{
			"player placed twice",
			[]Court{court(2, 1, "a", "b", "c", "d"), court(3, 1, "a", "e", "g", "h")},
			"Ann is placed twice (rows 2 and 3)",
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			violations := Check(testConfig(), tc.courts, testNow)
			if !find(violations, "error", tc.want) {
				t.Errorf("no error containing %q in %+v", tc.want, violations)
			}
		})
	}
}

func TestCheckWarnings(t *testing.T) {
	t.Run("recent match", func(t *testing.T) {
		cfg := testConfig()
		cfg.History = append(cfg.History, model.Match{
			ID: "m-7", CourtID: 1, TeamA: [2]string{"a", "b"}, TeamB: [2]string{"c", "e"},
			ScoreA: 21, ScoreB: 10, Winner: model.WinnerA,
		})
		violations := Check(cfg, []Court{court(2, 1, "a", "b", "c", "d")}, testNow)
		if !find(violations, "warning", "recent match m-7") {
			t.Errorf("missing recent match warning: %+v", violations)
		}
	})

	t.Run("gender split", func(t *testing.T) {
		violations := Check(testConfig(), []Court{court(2, 1, "a", "b", "c", "e")}, testNow)
		if !find(violations, "warning", "3-1 gender split") {
			t.Errorf("missing gender warning: %+v", violations)
		}
	})

	t.Run("combo repeat", func(t *testing.T) {
		cfg := testConfig()
		scored := func(id, a1, a2, b1, b2 string) model.Match {
			return model.Match{ID: id, CourtID: 1, TeamA: [2]string{a1, a2}, TeamB: [2]string{b1, b2}, Winner: model.WinnerA}
		}
		// the earlier meetings are older than every player's recent horizon
		recent := []model.Match{
			scored("m-9", "a", "b", "e", "g"),
			scored("m-8", "c", "d", "h", "i"),
			scored("m-7", "a", "e", "b", "g"),
			scored("m-6", "c", "h", "d", "i"),
		}

		cfg.History = append(cfg.History, recent...)
		cfg.History = append(cfg.History, scored("m-2", "a", "c", "b", "d"), scored("m-1", "a", "d", "b", "c"))
		violations := Check(cfg, []Court{court(2, 1, "a", "b", "c", "d")}, testNow)
		if find(violations, "warning", "already played together") {
			t.Errorf("two earlier meetings should be tolerated: %+v", violations)
		}

		cfg = testConfig()
		cfg.History = append(cfg.History, recent...)
		cfg.History = append(cfg.History,
			scored("m-3", "a", "c", "b", "d"),
			scored("m-2", "a", "d", "b", "c"),
			scored("m-1", "a", "b", "c", "d"),
		)
		violations = Check(cfg, []Court{court(2, 1, "a", "b", "c", "d")}, testNow)
		if !find(violations, "warning", "already played together 3 times (m-3, m-2, m-1)") {
			t.Errorf("missing combo warning: %+v", violations)
		}
		if find(violations, "warning", "recent match") {
			t.Errorf("unexpected recent match warning: %+v", violations)
		}
	})

	t.Run("isolated extreme", func(t *testing.T) {
		cfg := testConfig()
		cfg.Session.TotalCourts = 3
		cfg.History = nil
		// 9 active players: a b c | d e g | h i j
		violations := Check(cfg, []Court{court(2, 1, "a", "h", "i", "j")}, testNow)
		if !find(violations, "warning", "opposite tier") {
			t.Errorf("missing isolated extreme warning: %+v", violations)
		}
	})

	t.Run("skipped player", func(t *testing.T) {
		cfg := testConfig()
		cfg.Players[4].GamesPlayed = 0
		violations := Check(cfg, []Court{court(2, 1, "a", "b", "c", "d")}, testNow)
		if !find(violations, "warning", "Ed (0 games) is waiting") {
			t.Errorf("missing skipped player warning: %+v", violations)
		}
	})
}

func TestValidateWorkbook(t *testing.T) {
	cfg := testConfig()
	f, err := excel.Generate(cfg, excel.Round{
		Assignments: []model.CourtAssignment{
			{CourtID: 1, TeamA: [2]string{"a", "f"}, TeamB: [2]string{"b", "c"}},
		},
	})
	if err != nil {
		t.Fatalf("Generate() error: %v", err)
	}
	path := t.TempDir() + "/round.xlsx"
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("SaveAs error: %v", err)
	}

	violations, err := Validate(cfg, path)
	if err != nil {
		t.Fatalf("Validate() error: %v", err)
	}
	if !find(violations, "error", "Fay is resting") {
		t.Errorf("missing resting error: %+v", violations)
	}
	if find(violations, "error", "already recorded") {
		t.Errorf("a fresh match id should not be recorded yet: %+v", violations)
	}
	for _, v := range violations {
		if v.Type == "error" && v.Row != 2 {
			t.Errorf("error row = %d, want 2", v.Row)
		}
	}
}
