// Package excel writes a round of court assignments to a workbook that can
// be printed courtside, edited by hand, and checked again later.
package excel

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"github.com/derekprior/courts/internal/config"
	"github.com/derekprior/courts/internal/model"
	"github.com/derekprior/courts/internal/ranking"
)

// Sheet names. The validator reads SheetCourts back.
const (
	SheetCourts    = "Courts"
	SheetWaiting   = "Waiting"
	SheetStandings = "Standings"
	SheetRank      = "Rank"
)

// CourtsHeaders is the header row of the Courts sheet. Match holds the id
// to record the result under; the last four columns hold player ids so the
// sheet can be validated after names change.
var CourtsHeaders = []string{"Court", "Team A", "Team B", "Match", "A1", "A2", "B1", "B2"}

// MatchColumn is the zero-based index of the Match column.
const MatchColumn = 3

// Round is everything written for one assignment run.
type Round struct {
	Assignments []model.CourtAssignment
	Waiting     []model.Player
	Stats       []model.PlayerStats
	Order       []string
	Tiers       ranking.Tiers
}

// Generate creates a workbook with the courts, the waiting list, the
// standings and the current rank order.
func Generate(cfg *config.Config, round Round) (*excelize.File, error) {
	f := excelize.NewFile()
	f.SetDefaultFont("Arial")

	s := newStyles(f)
	names := model.Index(cfg.Players)

	if err := writeCourtsSheet(f, s, names, round.Assignments); err != nil {
		return nil, fmt.Errorf("writing courts sheet: %w", err)
	}
	if err := writeWaitingSheet(f, s, round.Waiting); err != nil {
		return nil, fmt.Errorf("writing waiting sheet: %w", err)
	}
	if err := writeStandingsSheet(f, s, round.Stats); err != nil {
		return nil, fmt.Errorf("writing standings sheet: %w", err)
	}
	if err := writeRankSheet(f, s, names, round.Order, round.Tiers); err != nil {
		return nil, fmt.Errorf("writing rank sheet: %w", err)
	}

	f.DeleteSheet("Sheet1")
	return f, nil
}

type styles struct {
	header int
	cell   int
	center int
}

func newStyles(f *excelize.File) styles {
	header, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "#FFFFFF", Size: 16, Family: "Arial"},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#4472C4"}},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	cell, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Size: 16, Family: "Arial"},
	})
	center, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Size: 16, Family: "Arial"},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	return styles{header: header, cell: cell, center: center}
}

// table writes a header row and data rows, styling the first column
// centered and the rest plain.
func table(f *excelize.File, s styles, sheet string, headers []string, rows [][]any) error {
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}
	for i, h := range headers {
		if err := f.SetCellValue(sheet, cellRef(i+1, 1), h); err != nil {
			return err
		}
	}
	if s.header != 0 {
		f.SetCellStyle(sheet, cellRef(1, 1), cellRef(len(headers), 1), s.header)
	}

	for i, row := range rows {
		r := i + 2
		for col, v := range row {
			if err := f.SetCellValue(sheet, cellRef(col+1, r), v); err != nil {
				return err
			}
		}
		if s.cell != 0 {
			f.SetCellStyle(sheet, cellRef(1, r), cellRef(1, r), s.center)
			f.SetCellStyle(sheet, cellRef(2, r), cellRef(len(headers), r), s.cell)
		}
	}
	return nil
}

func writeCourtsSheet(f *excelize.File, s styles, players map[string]model.Player, assignments []model.CourtAssignment) error {
	name := func(id string) string {
		if p, ok := players[id]; ok {
			return p.DisplayName()
		}
		return id
	}
	pair := func(team [2]string) string {
		return fmt.Sprintf("%s & %s", name(team[0]), name(team[1]))
	}

	rows := make([][]any, 0, len(assignments))
	for _, a := range assignments {
		rows = append(rows, []any{
			a.CourtID, pair(a.TeamA), pair(a.TeamB), uuid.NewString(),
			a.TeamA[0], a.TeamA[1], a.TeamB[0], a.TeamB[1],
		})
	}
	if err := table(f, s, SheetCourts, CourtsHeaders, rows); err != nil {
		return err
	}

	// Sized for Arial 16
	f.SetColWidth(SheetCourts, "A", "A", 10)
	f.SetColWidth(SheetCourts, "B", "C", 34)
	f.SetColWidth(SheetCourts, "D", "D", 38)
	f.SetColWidth(SheetCourts, "E", "H", 12)
	return nil
}

func writeWaitingSheet(f *excelize.File, s styles, waiting []model.Player) error {
	rows := make([][]any, 0, len(waiting))
	for i, p := range waiting {
		rows = append(rows, []any{i + 1, p.DisplayName(), p.GamesPlayed, p.ID})
	}
	if err := table(f, s, SheetWaiting, []string{"Next", "Player", "Games", "ID"}, rows); err != nil {
		return err
	}
	f.SetColWidth(SheetWaiting, "A", "A", 8)
	f.SetColWidth(SheetWaiting, "B", "B", 24)
	f.SetColWidth(SheetWaiting, "C", "D", 12)
	return nil
}

func writeStandingsSheet(f *excelize.File, s styles, stats []model.PlayerStats) error {
	headers := []string{"Player", "Games", "Wins", "Losses", "For", "Against", "Streak", "ID"}
	rows := make([][]any, 0, len(stats))
	for _, st := range stats {
		rows = append(rows, []any{
			st.Name, st.Games, st.Wins, st.Losses,
			st.PointsFor, st.PointsAgainst, st.Streak, st.PlayerID,
		})
	}
	if err := table(f, s, SheetStandings, headers, rows); err != nil {
		return err
	}
	f.SetColWidth(SheetStandings, "A", "A", 24)
	f.SetColWidth(SheetStandings, "B", "H", 12)

	if len(rows) == 0 {
		return nil
	}
	// Losing streaks get light red, winning streaks of two or more light green
	lastRow := len(rows) + 1
	redFill, _ := f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#FFC7CE"}},
		Font: &excelize.Font{Size: 16, Family: "Arial"},
	})
	greenFill, _ := f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#C6EFCE"}},
		Font: &excelize.Font{Size: 16, Family: "Arial"},
	})
	return f.SetConditionalFormat(SheetStandings, fmt.Sprintf("G2:G%d", lastRow), []excelize.ConditionalFormatOptions{
		{Type: "formula", Criteria: "G2<0", Format: &redFill},
		{Type: "formula", Criteria: "G2>=2", Format: &greenFill},
	})
}

func writeRankSheet(f *excelize.File, s styles, players map[string]model.Player, order []string, tiers ranking.Tiers) error {
	rows := make([][]any, 0, len(order))
	for i, id := range order {
		name := id
		if p, ok := players[id]; ok {
			name = p.DisplayName()
		}
		tier := ""
		if t, ok := tiers.Lookup(id); ok {
			tier = strings.ToUpper(t.String()[:1]) + t.String()[1:]
		}
		rows = append(rows, []any{i + 1, name, tier, id})
	}
	if err := table(f, s, SheetRank, []string{"Rank", "Player", "Tier", "ID"}, rows); err != nil {
		return err
	}
	f.SetColWidth(SheetRank, "A", "A", 8)
	f.SetColWidth(SheetRank, "B", "B", 24)
	f.SetColWidth(SheetRank, "C", "D", 12)
	return nil
}

func cellRef(col, row int) string {
	return fmt.Sprintf("%s%d", colLetter(col), row)
}

func colLetter(col int) string {
	result := ""
	for col > 0 {
		col--
		result = string(rune('A'+col%26)) + result
		col /= 26
	}
	return result
}
