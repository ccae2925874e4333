package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"dripsim/internal/adapters/browser"
	"dripsim/internal/application"
	"dripsim/internal/domain"
)

var previewOpen bool

var previewCmd = &cobra.Command{
	Use:   "preview <email-id>",
	Short: "Print the HTML body of an email",
	Long: `Print the HTML body of an email of the active program, as the
simulator would deliver it. Reminders without their own template are
derived from their main email.

Examples:
  dripsim-cli preview 1
  dripsim-cli preview 2a --open`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		id, err := application.ValidateEmailID("emailID", args[0])
		if err != nil {
			return err
		}
		rt, err := openRuntime(ctx)
		if err != nil {
			return err
		}
		p := rt.Engine.Program()
		node, ok := p.Node(id)
		if !ok {
			return &application.UnknownEmailError{Program: p.Key, EmailID: id.String()}
		}
		html := rt.Library.HTML(ctx, p.Key, node)

		if !previewOpen {
			fmt.Println(html)
			return nil
		}
		path, err := browser.NewOpener("").OpenPreview(domain.EmailPreview{
			InstanceID: p.Key,
			EmailID:    node.ID,
			Kind:       node.Kind,
			Subject:    node.Subject,
			Badge:      domain.VariationFor(node).Badge(),
			HTML:       html,
		})
		if err != nil {
			return fmt.Errorf("failed to open browser: %w", err)
		}
		fmt.Printf("Opened %s\n", path)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(previewCmd)
	previewCmd.Flags().BoolVarP(&previewOpen, "open", "o", false, "open the email in the browser instead of printing it")
}
