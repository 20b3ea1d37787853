// Package validator checks a saved round workbook against the session it
// was generated from. Hand edits are allowed; errors mark rounds that cannot
// be played and warnings mark ones the scheduler would have avoided.
package validator

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/samber/lo"
	"github.com/xuri/excelize/v2"

	"github.com/derekprior/courts/internal/assign"
	"github.com/derekprior/courts/internal/config"
	"github.com/derekprior/courts/internal/excel"
	"github.com/derekprior/courts/internal/model"
	"github.com/derekprior/courts/internal/priority"
	"github.com/derekprior/courts/internal/ranking"
)

// Violation represents a problem found in a round.
type Violation struct {
	Row     int
	Type    string // "error" or "warning"
	Message string
}

// Court is one row of the Courts sheet.
type Court struct {
	Row     int
	CourtID int
	MatchID string
	IDs     [4]string
}

// Validate reads a round workbook and checks it against the session.
func Validate(cfg *config.Config, path string) ([]Violation, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}
	defer f.Close()

	courts, err := ReadCourts(f)
	if err != nil {
		return nil, fmt.Errorf("reading courts: %w", err)
	}
	return Check(cfg, courts, time.Now()), nil
}

// ReadCourts parses the Courts sheet using its id columns.
func ReadCourts(f *excelize.File) ([]Court, error) {
	rows, err := f.GetRows(excel.SheetCourts)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", excel.SheetCourts, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%s is empty", excel.SheetCourts)
	}

	idCol := len(excel.CourtsHeaders) - 4
	var courts []Court
	for i, row := range rows {
		if i == 0 {
			continue
		}
		if len(row) == 0 || strings.TrimSpace(row[0]) == "" {
			continue
		}
		courtID, err := strconv.Atoi(strings.TrimSpace(row[0]))
		if err != nil {
			return nil, fmt.Errorf("row %d: court %q is not a number", i+1, row[0])
		}
		c := Court{Row: i + 1, CourtID: courtID}
		if excel.MatchColumn < len(row) {
			c.MatchID = strings.TrimSpace(row[excel.MatchColumn])
		}
		for j := range c.IDs {
			if idCol+j < len(row) {
				c.IDs[j] = strings.TrimSpace(row[idCol+j])
			}
		}
		courts = append(courts, c)
	}
	return courts, nil
}

// Check validates parsed courts against the session as of now.
func Check(cfg *config.Config, courts []Court, now time.Time) []Violation {
	var violations []Violation

	// Hard problems
	violations = append(violations, checkCourtIDs(cfg, courts)...)
	violations = append(violations, checkPlayers(cfg, courts)...)
	violations = append(violations, checkMatchIDs(cfg, courts)...)

	// Preferences
	violations = append(violations, checkRecentMatches(cfg, courts)...)
	violations = append(violations, checkIsolatedExtremes(cfg, courts)...)
	violations = append(violations, checkGenderSplit(cfg, courts)...)
	violations = append(violations, checkComboRepeats(cfg, courts)...)
	violations = append(violations, checkSkippedPlayers(cfg, courts, now)...)

	return violations
}

func checkCourtIDs(cfg *config.Config, courts []Court) []Violation {
	var violations []Violation
	busy := make(map[int]bool)
	for _, m := range cfg.InProgress() {
		busy[m.CourtID] = true
	}
	seen := make(map[int]int)
	for _, c := range courts {
		switch {
		case c.CourtID < 1 || c.CourtID > cfg.Session.TotalCourts:
			violations = append(violations, Violation{
				Row: c.Row, Type: "error",
				Message: fmt.Sprintf("court %d is outside 1..%d", c.CourtID, cfg.Session.TotalCourts),
			})
		case seen[c.CourtID] > 0:
			violations = append(violations, Violation{
				Row: c.Row, Type: "error",
				Message: fmt.Sprintf("court %d is also assigned in row %d", c.CourtID, seen[c.CourtID]),
			})
		case busy[c.CourtID]:
			violations = append(violations, Violation{
				Row: c.Row, Type: "error",
				Message: fmt.Sprintf("court %d still has a match in progress", c.CourtID),
			})
		}
		if seen[c.CourtID] == 0 {
			seen[c.CourtID] = c.Row
		}
	}
	return violations
}

func checkPlayers(cfg *config.Config, courts []Court) []Violation {
	players := model.Index(cfg.Players)
	onCourt := cfg.OnCourt()
	firstRow := make(map[string]int)

	var violations []Violation
	for _, c := range courts {
		for _, id := range c.IDs {
			if id == "" {
				violations = append(violations, Violation{
					Row: c.Row, Type: "error",
					Message: fmt.Sprintf("court %d has fewer than four players", c.CourtID),
				})
				break
			}
		}
		for _, id := range c.IDs {
			if id == "" {
				continue
			}
			p, ok := players[id]
			switch {
			case !ok:
				violations = append(violations, Violation{
					Row: c.Row, Type: "error",
					Message: fmt.Sprintf("court %d: unknown player %q", c.CourtID, id),
				})
			case firstRow[id] > 0:
				violations = append(violations, Violation{
					Row: c.Row, Type: "error",
					Message: fmt.Sprintf("%s is placed twice (rows %d and %d)", p.DisplayName(), firstRow[id], c.Row),
				})
			case p.Resting:
				violations = append(violations, Violation{
					Row: c.Row, Type: "error",
					Message: fmt.Sprintf("court %d: %s is resting", c.CourtID, p.DisplayName()),
				})
			case onCourt[id]:
				violations = append(violations, Violation{
					Row: c.Row, Type: "error",
					Message: fmt.Sprintf("court %d: %s is still playing", c.CourtID, p.DisplayName()),
				})
			}
			if firstRow[id] == 0 {
				firstRow[id] = c.Row
			}
		}
	}
	return violations
}

func checkMatchIDs(cfg *config.Config, courts []Court) []Violation {
	recorded := make(map[string]bool, len(cfg.History))
	for _, m := range cfg.History {
		recorded[m.ID] = true
	}
	var violations []Violation
	for _, c := range courts {
		if c.MatchID != "" && recorded[c.MatchID] {
			violations = append(violations, Violation{
				Row: c.Row, Type: "error",
				Message: fmt.Sprintf("court %d: match %s is already recorded in the history", c.CourtID, c.MatchID),
			})
		}
	}
	return violations
}

// complete returns the courts with four distinct, filled slots.
func complete(courts []Court) []Court {
	return lo.Filter(courts, func(c Court, _ int) bool {
		ids := c.IDs[:]
		return !lo.Contains(ids, "") && len(lo.Uniq(ids)) == 4
	})
}

func checkRecentMatches(cfg *config.Config, courts []Court) []Violation {
	var violations []Violation
	for _, c := range complete(courts) {
		if m, ok := assign.SimilarRecentMatch(c.IDs[:], cfg.History); ok {
			violations = append(violations, Violation{
				Row: c.Row, Type: "warning",
				Message: fmt.Sprintf("court %d repeats three players from recent match %s", c.CourtID, m.ID),
			})
		}
	}
	return violations
}

func checkIsolatedExtremes(cfg *config.Config, courts []Court) []Violation {
	if cfg.Session.TotalCourts < 3 {
		return nil
	}
	tiers := sessionTiers(cfg)
	var violations []Violation
	for _, c := range complete(courts) {
		if assign.HasIsolatedExtreme(c.IDs[:], tiers) {
			violations = append(violations, Violation{
				Row: c.Row, Type: "warning",
				Message: fmt.Sprintf("court %d puts one player with three from the opposite tier", c.CourtID),
			})
		}
	}
	return violations
}

func checkGenderSplit(cfg *config.Config, courts []Court) []Violation {
	players := model.Index(cfg.Players)
	var violations []Violation
	for _, c := range complete(courts) {
		four := lo.Map(c.IDs[:], func(id string, _ int) model.Player { return players[id] })
		if assign.GenderPenalty(four, 1) > 0 {
			violations = append(violations, Violation{
				Row: c.Row, Type: "warning",
				Message: fmt.Sprintf("court %d has a 3-1 gender split", c.CourtID),
			})
		}
	}
	return violations
}

func checkComboRepeats(cfg *config.Config, courts []Court) []Violation {
	var violations []Violation
	for _, c := range complete(courts) {
		if !assign.RepeatsCombo(c.IDs[:], cfg.History) {
			continue
		}
		prior := assign.ComboMatches(c.IDs[:], cfg.History)
		ids := lo.Map(prior, func(m model.Match, _ int) string { return m.ID })
		violations = append(violations, Violation{
			Row: c.Row, Type: "warning",
			Message: fmt.Sprintf("court %d: these four have already played together %d times (%s)",
				c.CourtID, len(prior), strings.Join(ids, ", ")),
		})
	}
	return violations
}

// sessionTiers groups the session's active players the way the scheduler
// does.
func sessionTiers(cfg *config.Config) ranking.Tiers {
	active := lo.Filter(cfg.Players, func(p model.Player, _ int) bool { return p.Active() })
	groups := ranking.GroupCount(cfg.Session.TotalCourts)
	return ranking.GroupTiers(ranking.DynamicOrder(active, cfg.History, groups), groups)
}

// checkSkippedPlayers warns about available players left waiting while
// someone who has played more takes a court.
func checkSkippedPlayers(cfg *config.Config, courts []Court, now time.Time) []Violation {
	strategy, err := priority.Get(cfg.Session.Priority, cfg.Session.PracticeStart.Time)
	if err != nil {
		return nil
	}
	players := model.Index(cfg.Players)

	placed := make(map[string]bool)
	var most model.Player
	mostScore := priority.Unplayed
	for _, c := range courts {
		for _, id := range c.IDs {
			p, ok := players[id]
			if !ok {
				continue
			}
			placed[id] = true
			if score := strategy.Score(p, now); score > mostScore || most.ID == "" {
				most, mostScore = p, score
			}
		}
	}
	if most.ID == "" {
		return nil
	}

	var violations []Violation
	for _, p := range cfg.Available() {
		if placed[p.ID] {
			continue
		}
		if strategy.Score(p, now) < mostScore {
			violations = append(violations, Violation{
				Type: "warning",
				Message: fmt.Sprintf("%s (%d games) is waiting while %s (%d games) plays",
					p.DisplayName(), p.GamesPlayed, most.DisplayName(), most.GamesPlayed),
			})
		}
	}
	return violations
}
