package cmd

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/spf13/cobra"

	"dripsim/internal/application/commands"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "List the programs in the catalog",
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := openRuntime(context.Background())
		if err != nil {
			return err
		}

		bold := color.New(color.Bold)
		tbl := uitable.New()
		tbl.Separator = "  "
		tbl.MaxColWidth = 60
		tbl.AddRow(bold.Sprint("Key"), bold.Sprint("Name"), bold.Sprint("Emails"), bold.Sprint("Description"))
		for _, key := range rt.Catalog.Keys() {
			p, _ := rt.Catalog.Program(key)
			tbl.AddRow(p.Key, p.Name, len(p.Emails()), p.Description)
		}
		_, _ = fmt.Fprintln(color.Output, tbl)
		return nil
	},
}

var flowCmd = &cobra.Command{
	Use:   "flow [program]",
	Short: "Show the journey flow of a program",
	Long: `Show each main email of a program with its first reminder.

Examples:
  dripsim-cli flow
  dripsim-cli flow ds`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		rt, err := openRuntime(ctx)
		if err != nil {
			return err
		}
		if len(args) == 1 {
			if _, err := commands.NewSwitchProgramCommand(rt.Engine, args[0]).Execute(ctx); err != nil {
				return err
			}
		}

		faint := color.New(color.Faint)
		yellow := color.New(color.FgYellow)
		p := rt.Engine.Program()
		fmt.Fprintf(color.Output, "%s\n\n", color.New(color.Bold, color.Underline).Sprint(p.Name))
		for _, n := range rt.Engine.Flow() {
			fmt.Fprintf(color.Output, "● %-4s %s\n", n.Main.EmailID, n.Main.Subject)
			if n.Reminder != nil {
				fmt.Fprintf(color.Output, "%s %-4s %s\n", faint.Sprint("  └─"), n.Reminder.EmailID, yellow.Sprint(n.Reminder.Subject))
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(catalogCmd)
	rootCmd.AddCommand(flowCmd)
}
