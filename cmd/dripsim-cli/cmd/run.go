package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"dripsim/internal/adapters/sqlite"
	"dripsim/internal/adapters/systemclock"
	"dripsim/internal/application"
	"dripsim/internal/application/journey"
	"dripsim/internal/bootstrap"
)

var (
	runDays     int
	runMode     string
	runSeed     uint64
	runExport   bool
	runDB       string
	runTimeline int
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a journey for a number of days",
	Long: `Run the active program for a number of simulated days with auto-play
behavior applied to every send, then print the inbox, the branch counters
and the journey log.

Examples:
  dripsim-cli run --days 60
  dripsim-cli run --days 90 --mode never_open
  dripsim-cli run -p ds --mode random_mix --seed 42 --export`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		if runDays < 1 {
			return &application.ValidationError{Field: "days", Message: fmt.Sprintf("days must be positive, got: %d", runDays)}
		}
		if cmd.Flags().Changed("mode") {
			cfg.Mode = runMode
		}
		if cmd.Flags().Changed("seed") {
			cfg.Seed = runSeed
		}

		// auto-play ticks are driven by a virtual clock, one interval per day
		clock := systemclock.NewStepped(time.Now())
		rt, err := openRuntime(ctx, bootstrap.WithClock(clock))
		if err != nil {
			return err
		}
		e := rt.Engine
		simulate(e, clock, runDays)

		snap := e.Snapshot()
		printSummary(snap)
		printInbox(snap.Inbox)
		printTimeline(snap.Timeline, runTimeline)

		if !runExport {
			return nil
		}
		store, err := sqlite.Open(exportDBPath(cfg, runDB))
		if err != nil {
			return err
		}
		defer store.Close()
		id, err := store.ExportRun(ctx, snap)
		if err != nil {
			return err
		}
		fmt.Printf("\nExported run %d to %s\n", id, store.Path())
		return nil
	},
}

func simulate(e *journey.Engine, clock *systemclock.Stepped, days int) {
	e.StartAutoplay()
	for range days {
		clock.Advance(e.Interval())
	}
	e.StopAutoplay()
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().IntVarP(&runDays, "days", "d", 30, "number of days to simulate")
	runCmd.Flags().StringVarP(&runMode, "mode", "m", "", "recipient behavior: never_open, always_open or random_mix")
	runCmd.Flags().Uint64Var(&runSeed, "seed", 0, "seed for random_mix (0 = time based)")
	runCmd.Flags().BoolVar(&runExport, "export", false, "store the run in the SQLite database")
	runCmd.Flags().StringVar(&runDB, "db", "", "SQLite database path (default: export_db, or one database per --catalog)")
	runCmd.Flags().IntVar(&runTimeline, "timeline", 20, "journey log entries to print (0 = all)")
}
