package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/andy/invoicegen/internal/domain"
	"github.com/andy/invoicegen/internal/email"
	"github.com/andy/invoicegen/internal/render"
	"github.com/spf13/cobra"
)

var (
	sendTo      string
	sendSubject string
	sendMessage string
)

var sendCmd = &cobra.Command{
	Use:   "send <invoice.yaml>",
	Short: "Email an invoice",
	Long: `Email an invoice YAML file to a recipient.

When email delivery is configured (service ID, template ID, and API key),
the invoice is sent through the transactional email API with the HTML
document attached to the template. Otherwise the platform mail client is
opened with a pre-filled draft.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		inv, err := domain.LoadFile(args[0])
		if err != nil {
			return fmt.Errorf("failed to load invoice: %w", err)
		}

		totals := domain.ComputeTotals(*inv)
		doc, err := render.HTML(*inv, totals)
		if err != nil {
			return fmt.Errorf("failed to render HTML: %w", err)
		}

		to := sendTo
		if to == "" {
			to = inv.ClientEmail
		}
		subject := sendSubject
		if subject == "" {
			subject = fmt.Sprintf("Invoice %s", inv.InvoiceNumber)
		}

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		outcome, err := appInstance.Sender.Send(ctx, email.Request{
			To:            to,
			Subject:       subject,
			InvoiceNumber: inv.InvoiceNumber,
			CompanyName:   inv.CompanyName,
			ClientName:    inv.ClientName,
			Total:         strings.TrimPrefix(render.Money(totals.Total), render.CurrencySymbol),
			DueDate:       render.FormatDate(inv.DueDate, inv.DateFormat),
			HTML:          doc,
			Message:       sendMessage,
		})
		if err != nil {
			return fmt.Errorf("failed to send invoice: %w", err)
		}

		switch outcome.Delivery {
		case email.SentViaAPI:
			fmt.Printf("✓ Invoice %s sent to %s\n", inv.InvoiceNumber, to)
		case email.OpenedMailClient:
			fmt.Printf("✓ Opened mail client with a draft for %s\n", to)
		}
		return nil
	},
}

func init() {
	sendCmd.Flags().StringVarP(&sendTo, "to", "t", "", "Recipient email (default: client email from invoice)")
	sendCmd.Flags().StringVarP(&sendSubject, "subject", "s", "", "Email subject (default: \"Invoice <number>\")")
	sendCmd.Flags().StringVarP(&sendMessage, "message", "m", "", "Custom message for the email body")
}
