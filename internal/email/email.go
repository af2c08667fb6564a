// Package email delivers an invoice by transactional-email API, falling
// back to handing the platform's mail client a pre-filled compose draft
// when the API is unconfigured or unreachable. Either way the send
// succeeds from the caller's point of view; the outcome records which
// path was taken.
package email

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os/exec"
	"runtime"
	"strings"
	"time"
)

// DefaultEndpoint is the EmailJS send API.
const DefaultEndpoint = "https://api.emailjs.com/api/v1.0/email/send"

// Placeholder values that mean "never configured"; a config still
// carrying these routes straight to the compose fallback without a
// network attempt.
const (
	placeholderServiceID  = "service_your_service_id"
	placeholderTemplateID = "template_your_template_id"
	placeholderPublicKey  = "your_public_key"
)

// Config identifies the transactional-email service, template and
// credential. All three are static process-wide configuration.
type Config struct {
	ServiceID  string
	TemplateID string
	PublicKey  string
	Endpoint   string // defaults to DefaultEndpoint when empty
}

// Configured reports whether the config carries real credentials.
func (c Config) Configured() bool {
	switch {
	case c.ServiceID == "" || c.TemplateID == "" || c.PublicKey == "":
		return false
	case c.ServiceID == placeholderServiceID,
		c.TemplateID == placeholderTemplateID,
		c.PublicKey == placeholderPublicKey:
		return false
	}
	return true
}

// Request is everything one send needs. Total and DueDate arrive
// pre-formatted so the email shows exactly the figures the preview
// showed.
type Request struct {
	To            string
	Subject       string
	InvoiceNumber string
	CompanyName   string
	ClientName    string
	Total         string // formatted, no currency glyph
	DueDate       string // formatted for display
	HTML          string // full export markup
	Message       string // optional custom message
}

// Delivery says which path carried the invoice to the recipient.
type Delivery int

const (
	// SentViaAPI means the transactional-email POST returned 2xx.
	SentViaAPI Delivery = iota
	// OpenedMailClient means the platform mail client was opened with a
	// pre-filled draft; the user still has to press send.
	OpenedMailClient
)

// Outcome reports a completed send. Both delivery variants are success.
type Outcome struct {
	Delivery Delivery
}

var (
	ErrMissingRecipient = errors.New("recipient email address is required")
	ErrMissingSubject   = errors.New("email subject is required")
)

// Sender sends invoices. The zero value is not usable; use NewSender.
type Sender struct {
	cfg    Config
	client *http.Client
	open   func(uri string) error
	log    *slog.Logger
}

// NewSender creates a sender with the default HTTP client and platform
// opener.
func NewSender(cfg Config) *Sender {
	return &Sender{
		cfg:    cfg,
		client: &http.Client{Timeout: 30 * time.Second},
		open:   openURI,
		log:    slog.Default(),
	}
}

// Configured reports whether the sender has real API credentials. An
// unconfigured sender still works; it composes in the mail client.
func (s *Sender) Configured() bool {
	return s.cfg.Configured()
}

// WithClient replaces the HTTP client (tests).
func (s *Sender) WithClient(c *http.Client) *Sender {
	s.client = c
	return s
}

// WithOpener replaces the mail-client opener (tests).
func (s *Sender) WithOpener(open func(uri string) error) *Sender {
	s.open = open
	return s
}

// Send delivers the invoice. Missing recipient or subject abort before
// any network activity. An unconfigured service skips the network and
// goes straight to the compose fallback; so does any transport failure
// or non-2xx response. One request, no retries.
func (s *Sender) Send(ctx context.Context, req Request) (Outcome, error) {
	if strings.TrimSpace(req.To) == "" {
		return Outcome{}, ErrMissingRecipient
	}
	if strings.TrimSpace(req.Subject) == "" {
		return Outcome{}, ErrMissingSubject
	}

	if !s.cfg.Configured() {
		s.log.Debug("email service not configured, using mail client fallback")
		return s.fallback(req)
	}

	if err := s.post(ctx, req); err != nil {
		s.log.Warn("email send failed, falling back to mail client", "error", err)
		return s.fallback(req)
	}

	s.log.Debug("invoice emailed", "to", req.To, "invoice", req.InvoiceNumber)
	return Outcome{Delivery: SentViaAPI}, nil
}

func (s *Sender) post(ctx context.Context, req Request) error {
	endpoint := s.cfg.Endpoint
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}

	message := req.Message
	if message == "" {
		message = fmt.Sprintf("Please find your invoice %s attached.", req.InvoiceNumber)
	}

	payload := map[string]any{
		"service_id":  s.cfg.ServiceID,
		"template_id": s.cfg.TemplateID,
		"user_id":     s.cfg.PublicKey,
		"template_params": map[string]string{
			"to_email":       req.To,
			"subject":        req.Subject,
			"invoice_number": req.InvoiceNumber,
			"company_name":   req.CompanyName,
			"client_name":    req.ClientName,
			"total_amount":   req.Total,
			"due_date":       req.DueDate,
			"invoice_html":   req.HTML,
			"message":        message,
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode email payload: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build email request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(httpReq)
	if err != nil {
		return fmt.Errorf("email request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("email API returned %d: %s", resp.StatusCode, strings.TrimSpace(string(detail)))
	}
	return nil
}

func (s *Sender) fallback(req Request) (Outcome, error) {
	uri := MailtoLink(req)
	if err := s.open(uri); err != nil {
		return Outcome{}, fmt.Errorf("failed to open mail client: %w", err)
	}
	return Outcome{Delivery: OpenedMailClient}, nil
}

// MailtoLink builds the compose-draft URI with percent-encoded subject
// and body.
func MailtoLink(req Request) string {
	return fmt.Sprintf("mailto:%s?subject=%s&body=%s",
		req.To,
		percentEncode(req.Subject),
		percentEncode(ComposeBody(req)),
	)
}

// percentEncode escapes a mailto query value. Spaces become %20, not +;
// mail clients do not reliably decode the form encoding.
func percentEncode(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

// ComposeBody assembles the plain-text email body used for the compose
// draft: invoice number, sender, recipient, the custom message or a
// generated default, and the summary figures.
func ComposeBody(req Request) string {
	client := req.ClientName
	if client == "" {
		client = "Valued Customer"
	}
	company := req.CompanyName
	if company == "" {
		company = "Your Company"
	}
	message := req.Message
	if message == "" {
		message = fmt.Sprintf("Please find your invoice %s for the services provided.", req.InvoiceNumber)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "INVOICE %s\n\n", req.InvoiceNumber)
	fmt.Fprintf(&b, "From: %s\n", req.CompanyName)
	fmt.Fprintf(&b, "To: %s\n\n", req.ClientName)
	fmt.Fprintf(&b, "Dear %s,\n\n", client)
	fmt.Fprintf(&b, "%s\n\n", message)
	b.WriteString("INVOICE SUMMARY:\n")
	fmt.Fprintf(&b, "- Invoice Number: %s\n", req.InvoiceNumber)
	fmt.Fprintf(&b, "- Due Date: %s\n", req.DueDate)
	fmt.Fprintf(&b, "- Total Amount: ₱%s\n\n", req.Total)
	b.WriteString("Please remit payment by the due date. If you have any questions about this invoice, please don't hesitate to contact us.\n\n")
	b.WriteString("Thank you for your business!\n\n")
	fmt.Fprintf(&b, "Best regards,\n%s\n", company)
	return b.String()
}

// openURI hands a URI to the platform's default handler. Fire and
// forget: no response is awaited beyond process start.
func openURI(uri string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", uri)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", uri)
	default:
		cmd = exec.Command("xdg-open", uri)
	}
	return cmd.Start()
}
