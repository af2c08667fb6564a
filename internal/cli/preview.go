package cli

import (
	"fmt"

	"github.com/andy/invoicegen/internal/domain"
	"github.com/andy/invoicegen/internal/render"
	"github.com/spf13/cobra"
)

var previewCmd = &cobra.Command{
	Use:   "preview <invoice.yaml>",
	Short: "Render an invoice file as text",
	Long: `Render an invoice YAML file as a plain-text document on stdout.

The output matches the live preview shown in the TUI.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		inv, err := domain.LoadFile(args[0])
		if err != nil {
			return fmt.Errorf("failed to load invoice: %w", err)
		}

		totals := domain.ComputeTotals(*inv)
		fmt.Print(render.Text(*inv, totals))
		return nil
	},
}
