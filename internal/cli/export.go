package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/andy/invoicegen/internal/domain"
	"github.com/andy/invoicegen/internal/render"
	"github.com/spf13/cobra"
)

var (
	exportFormat string
	exportOutput string
)

var exportCmd = &cobra.Command{
	Use:   "export <invoice.yaml>",
	Short: "Export an invoice as a standalone document",
	Long: `Export an invoice YAML file as a self-contained HTML or PDF document.

The HTML output embeds all styling inline and references no external
resources, so it renders identically when opened from disk, attached to
an email, or printed to PDF from a browser.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		inv, err := domain.LoadFile(args[0])
		if err != nil {
			return fmt.Errorf("failed to load invoice: %w", err)
		}

		totals := domain.ComputeTotals(*inv)

		var data []byte
		var ext string
		switch strings.ToLower(exportFormat) {
		case "html":
			doc, err := render.HTML(*inv, totals)
			if err != nil {
				return fmt.Errorf("failed to render HTML: %w", err)
			}
			data = []byte(doc)
			ext = "html"
		case "pdf":
			doc, err := render.PDF(*inv, totals)
			if err != nil {
				return fmt.Errorf("failed to render PDF: %w", err)
			}
			data = doc
			ext = "pdf"
		default:
			return fmt.Errorf("unknown format %q (want html or pdf)", exportFormat)
		}

		outPath := exportOutput
		if outPath == "" {
			name := fmt.Sprintf("Invoice-%s.%s", inv.InvoiceNumber, ext)
			outPath = filepath.Join(appInstance.Config.Invoice.OutputDir, name)
		}

		if err := os.MkdirAll(filepath.Dir(outPath), 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
		if err := os.WriteFile(outPath, data, 0644); err != nil {
			return fmt.Errorf("failed to write %s: %w", outPath, err)
		}

		fmt.Printf("✓ Exported invoice %s to %s\n", inv.InvoiceNumber, outPath)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "html", "Output format (html or pdf)")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Output file path (default: output dir from config)")
}
