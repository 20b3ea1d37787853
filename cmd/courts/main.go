package main

import (
	"errors"
	"fmt"
	"os"
	"slices"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/derekprior/courts/internal/assign"
	"github.com/derekprior/courts/internal/config"
	"github.com/derekprior/courts/internal/excel"
	"github.com/derekprior/courts/internal/logger"
	"github.com/derekprior/courts/internal/model"
	"github.com/derekprior/courts/internal/ranking"
	"github.com/derekprior/courts/internal/validator"
)

const defaultSessionFile = "session.yaml"

func resolveSessionPath(sessionFlag string) (string, error) {
	if sessionFlag != "" {
		return sessionFlag, nil
	}
	if _, err := os.Stat(defaultSessionFile); err == nil {
		return defaultSessionFile, nil
	}
	return "", fmt.Errorf("no session file found. Either create %s in the current directory or pass --session", defaultSessionFile)
}

func main() {
	var (
		sessionFile string
		logLevel    string
		log         zerolog.Logger
	)

	rootCmd := &cobra.Command{
		Use:   "courts",
		Short: "Court rotation for club practice sessions",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			envErr := godotenv.Load()
			if logLevel == "" {
				logLevel = os.Getenv("COURTS_LOG_LEVEL")
			}
			zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
			var err error
			log, err = logger.New(logLevel)
			if err != nil {
				return err
			}
			if envErr != nil {
				log.Debug().Msg(".env file not found, using environment variables or defaults")
			}
			return nil
		},
	}
	rootCmd.PersistentFlags().StringVar(&sessionFile, "session", "", "Path to session file (default: session.yaml in current directory)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error (default: $COURTS_LOG_LEVEL or warn)")

	loadSession := func() (*config.Config, error) {
		path, err := resolveSessionPath(sessionFile)
		if err != nil {
			return nil, err
		}
		cfg, err := config.LoadFromFile(path)
		if err != nil {
			return nil, fmt.Errorf("loading session: %w", err)
		}
		if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
			return nil, fmt.Errorf("applying environment: %w", err)
		}
		log.Debug().
			Str("path", path).
			Int("players", len(cfg.Players)).
			Int("history", len(cfg.History)).
			Int("total_courts", cfg.Session.TotalCourts).
			Msg("session loaded")
		return cfg, nil
	}

	var initOutputPath string
	initCmd := &cobra.Command{
		Use:          "init",
		Short:        "Create a starter session.yaml in the current directory",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(initOutputPath)
		},
	}
	initCmd.Flags().StringVarP(&initOutputPath, "output", "o", defaultSessionFile, "Output path for the session file")

	var (
		outputFile string
		courts     []int
		seed       uint64
	)
	assignCmd := &cobra.Command{
		Use:          "assign",
		Short:        "Pick the next players for the empty courts",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadSession()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("seed") {
				cfg.Session.Seed = seed
			}
			return runAssign(cfg, courts, outputFile, log)
		},
	}
	assignCmd.Flags().StringVarP(&outputFile, "output", "o", "round.xlsx", "Output Excel file path")
	assignCmd.Flags().IntSliceVar(&courts, "courts", nil, "Courts to fill (default: fill_courts, or every court without a match in progress)")
	assignCmd.Flags().Uint64Var(&seed, "seed", 0, "Seed for the court split draw (0 = random)")

	waitingCmd := &cobra.Command{
		Use:          "waiting",
		Short:        "Show the waiting list in the order players should go on",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadSession()
			if err != nil {
				return err
			}
			return runWaiting(cfg)
		},
	}

	statsCmd := &cobra.Command{
		Use:          "stats",
		Short:        "Show per-player results for the session",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadSession()
			if err != nil {
				return err
			}
			return runStats(cfg)
		},
	}

	checkCmd := &cobra.Command{
		Use:          "check <round.xlsx>",
		Short:        "Check a saved round against the session",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadSession()
			if err != nil {
				return err
			}
			return runCheck(cfg, args[0])
		},
	}

	rootCmd.AddCommand(initCmd, assignCmd, waitingCmd, statsCmd, checkCmd)
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runInit(outputPath string) error {
	if _, err := os.Stat(outputPath); err == nil {
		return fmt.Errorf("%s already exists; remove it first or use -o to write elsewhere", outputPath)
	}

	if err := os.WriteFile(outputPath, []byte(sessionTemplate), 0644); err != nil {
		return fmt.Errorf("writing session: %w", err)
	}

	fmt.Printf("✓ Created %s\n", outputPath)
	return nil
}

const sessionTemplate = `# Practice Session
# ================
# A snapshot of one practice: the courts, who is here, and what has been
# played so far. "courts assign" reads it and never writes it back.

session:
  # Number of courts in the hall. Two courts use a single split of the
  # eight most deserving players; three or more fill courts by skill tier.
  total_courts: 3

  # Courts to fill. Leave empty to fill every court without a match in
  # progress (an unscored history entry with a court number).
  fill_courts: []

  # When practice started. Used by the stay_duration priority.
  practice_start: "2026-10-17 18:00"

  # Who plays next:
  #   games_played   fewest games first
  #   stay_duration  fewest games per minute present first, fairer to
  #                  late arrivals
  priority: games_played

  # Randomness in the two-court split. Larger values mix tiers more.
  # 0 uses the default of 1.8.
  jitter: 0

  # Seed for the split draw. 0 draws a new one every run.
  seed: 0

# Players. rating 0 (or omitted) means unrated; unrated players start just
# below the top third. gender is optional (M or F) and only used to avoid
# 3-1 splits and to mix teams.
players:
  - {id: p01, name: Alex,   rating: 1850, games_played: 0, gender: M}
  - {id: p02, name: Blair,  rating: 1800, games_played: 0, gender: F}
  - {id: p03, name: Casey,  rating: 1720, games_played: 0, gender: F}
  - {id: p04, name: Devon,  rating: 1650, games_played: 0, gender: M}
  - {id: p05, name: Emery,  rating: 1600, games_played: 0}
  - {id: p06, name: Finley, rating: 1540, games_played: 0, gender: F}
  - {id: p07, name: Gray,   rating: 1480, games_played: 0, gender: M}
  - {id: p08, name: Harper, rating: 1400, games_played: 0, gender: F}
  - {id: p09, name: Indy,   rating: 1320, games_played: 0}
  - {id: p10, name: Jules,  rating: 1250, games_played: 0, gender: M}
  - {id: p11, name: Kai,    rating: 1180, games_played: 0, gender: M}
  - {id: p12, name: Lane,   games_played: 0, gender: F}
  - {id: p13, name: Morgan, rating: 1100, games_played: 0, resting: true}

# Matches, newest first. Leave winner empty while a match is still being
# played; that court then counts as busy. Ids are generated when omitted.
#
#   - court: 1
#     team_a: [p01, p04]
#     team_b: [p02, p03]
#     score_a: 21
#     score_b: 18
#     winner: A
history: []
`

func runAssign(cfg *config.Config, courts []int, outputPath string, log zerolog.Logger) error {
	targets := courts
	if len(targets) == 0 {
		targets = cfg.Session.FillCourts
	}
	if len(targets) == 0 {
		targets = cfg.EmptyCourts()
	}
	if len(targets) == 0 {
		return fmt.Errorf("every court has a match in progress; score one first")
	}

	available := cfg.Available()
	fmt.Printf("Assigning %d courts from %d available players...\n", len(targets), len(available))

	result, err := assign.AssignCourts(available, len(targets), cfg.History, assign.Options{
		TotalCourtCount:         cfg.Session.TotalCourts,
		TargetCourtIDs:          targets,
		PracticeStart:           cfg.Session.PracticeStart.Time,
		AllPlayers:              cfg.Players,
		UseStayDurationPriority: cfg.Session.UseStayDuration(),
		Rand:                    cfg.Session.Rand(),
		JitterScale:             cfg.Session.Jitter,
		Logger:                  &log,
	})
	var insufficient *assign.InsufficientPlayersError
	if errors.As(err, &insufficient) {
		return fmt.Errorf("%d courts need %d players but only %d are available; rest fewer players or fill fewer courts",
			len(targets), insufficient.Required, insufficient.Available)
	}
	if err != nil {
		return fmt.Errorf("assigning courts: %w", err)
	}

	names := nameLookup(cfg.Players)
	fmt.Println()
	for _, a := range result {
		fmt.Printf("  Court %d: %s & %s  vs  %s & %s\n", a.CourtID,
			names(a.TeamA[0]), names(a.TeamA[1]), names(a.TeamB[0]), names(a.TeamB[1]))
	}

	placed := make(map[string]bool)
	for _, a := range result {
		for _, id := range a.Players() {
			placed[id] = true
		}
	}
	stillEmpty := lo.Filter(cfg.EmptyCourts(), func(id int, _ int) bool { return !slices.Contains(targets, id) })
	waiting := assign.SortWaitingPlayers(
		lo.Filter(available, func(p model.Player, _ int) bool { return !placed[p.ID] }),
		waitingOptions(cfg, stillEmpty),
	)
	printWaiting(waiting)

	groups := ranking.GroupCount(cfg.Session.TotalCourts)
	active := lo.Filter(cfg.Players, func(p model.Player, _ int) bool { return p.Active() })
	order := ranking.DynamicOrder(active, cfg.History, groups)

	f, err := excel.Generate(cfg, excel.Round{
		Assignments: result,
		Waiting:     waiting,
		Stats:       assign.CalculatePlayerStats(cfg.Players, cfg.History),
		Order:       order,
		Tiers:       ranking.GroupTiers(order, groups),
	})
	if err != nil {
		return fmt.Errorf("generating Excel: %w", err)
	}
	if err := f.SaveAs(outputPath); err != nil {
		return fmt.Errorf("saving file: %w", err)
	}

	fmt.Printf("\n✓ Round saved to %s\n", outputPath)
	return nil
}

func runWaiting(cfg *config.Config) error {
	waiting := assign.SortWaitingPlayers(cfg.Available(), waitingOptions(cfg, cfg.EmptyCourts()))
	printWaiting(waiting)
	return nil
}

func runStats(cfg *config.Config) error {
	stats := assign.CalculatePlayerStats(cfg.Players, cfg.History)

	fmt.Printf("  %-18s %5s %4s %4s %5s %5s %6s\n", "Player", "Games", "W", "L", "For", "Agst", "Streak")
	for _, s := range stats {
		fmt.Printf("  %-18s %5d %4d %4d %5d %5d %6s\n",
			s.Name, s.Games, s.Wins, s.Losses, s.PointsFor, s.PointsAgainst, streakLabel(s.Streak))
	}
	return nil
}

func runCheck(cfg *config.Config, roundPath string) error {
	violations, err := validator.Validate(cfg, roundPath)
	if err != nil {
		return fmt.Errorf("validating: %w", err)
	}

	errs := 0
	warnings := 0
	for _, v := range violations {
		switch v.Type {
		case "error":
			errs++
			fmt.Printf("✗ %s\n", v.Message)
		case "warning":
			warnings++
			fmt.Printf("⚠ %s\n", v.Message)
		}
	}

	fmt.Printf("\nCheck complete: %d errors, %d warnings\n", errs, warnings)
	if errs > 0 {
		return fmt.Errorf("%d problems found in %s", errs, roundPath)
	}
	return nil
}

func waitingOptions(cfg *config.Config, emptyCourts []int) assign.WaitingOptions {
	return assign.WaitingOptions{
		TotalCourtCount:         cfg.Session.TotalCourts,
		EmptyCourtIDs:           emptyCourts,
		AllPlayers:              cfg.Players,
		History:                 cfg.History,
		PracticeStart:           cfg.Session.PracticeStart.Time,
		UseStayDurationPriority: cfg.Session.UseStayDuration(),
	}
}

func printWaiting(waiting []model.Player) {
	if len(waiting) == 0 {
		fmt.Println("\n✓ Nobody waiting")
		return
	}
	fmt.Printf("\nWaiting (%d):\n", len(waiting))
	for i, p := range waiting {
		fmt.Printf("  %2d. %-18s %d games\n", i+1, p.DisplayName(), p.GamesPlayed)
	}
}

func nameLookup(players []model.Player) func(string) string {
	byID := model.Index(players)
	return func(id string) string {
		if p, ok := byID[id]; ok {
			return p.DisplayName()
		}
		return id
	}
}

func streakLabel(streak int) string {
	switch {
	case streak > 0:
		return fmt.Sprintf("W%d", streak)
	case streak < 0:
		return fmt.Sprintf("L%d", -streak)
	}
	return "-"
}
