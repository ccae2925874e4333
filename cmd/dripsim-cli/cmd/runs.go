package cmd

import (
	"context"
	"fmt"
	"strconv"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/spf13/cobra"

	"dripsim/internal/adapters/sqlite"
)

var (
	runsDB    string
	runsLimit int
)

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List exported runs",
	Long: `List runs stored with "run --export", newest first. The --program
flag filters by program when set explicitly.

Examples:
  dripsim-cli runs
  dripsim-cli runs -p pm --limit 5
  dripsim-cli runs stats 3`,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := sqlite.Open(exportDBPath(cfg, runsDB))
		if err != nil {
			return err
		}
		defer store.Close()

		program := ""
		if cmd.Flags().Changed("program") {
			program = programKey
		}
		runs, err := store.ListRuns(context.Background(), program, runsLimit)
		if err != nil {
			return err
		}
		if len(runs) == 0 {
			fmt.Println("No runs exported yet.")
			return nil
		}

		bold := color.New(color.Bold)
		tbl := uitable.New()
		tbl.Separator = "  "
		tbl.AddRow(bold.Sprint("ID"), bold.Sprint("Program"), bold.Sprint("Mode"), bold.Sprint("Days"),
			bold.Sprint("Sent"), bold.Sprint("Opened"), bold.Sprint("Clicked"), bold.Sprint("Created"))
		for _, r := range runs {
			tbl.AddRow(r.ID, r.Program, r.Mode, r.Day, r.InboxStats.Total, r.InboxStats.Opened,
				r.InboxStats.Clicked, r.CreatedAt.Local().Format("2006-01-02 15:04"))
		}
		tbl.RightAlign(0)
		_, _ = fmt.Fprintln(color.Output, tbl)
		return nil
	},
}

var runsStatsCmd = &cobra.Command{
	Use:   "stats <run-id>",
	Short: "Show per-day statistics of an exported run",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid run id %q", args[0])
		}
		store, err := sqlite.Open(exportDBPath(cfg, runsDB))
		if err != nil {
			return err
		}
		defer store.Close()

		days, err := store.DailyStats(context.Background(), id)
		if err != nil {
			return err
		}
		printDays(days)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(runsCmd)
	runsCmd.AddCommand(runsStatsCmd)
	runsCmd.PersistentFlags().StringVar(&runsDB, "db", "", "SQLite database path (default: export_db, or one database per --catalog)")
	runsCmd.Flags().IntVarP(&runsLimit, "limit", "n", 20, "maximum number of runs")
}
