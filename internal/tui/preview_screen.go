package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/andy/invoicegen/internal/app"
	"github.com/andy/invoicegen/internal/domain"
	"github.com/andy/invoicegen/internal/email"
	"github.com/andy/invoicegen/internal/render"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// previewMode represents the current screen mode
type previewMode int

const (
	previewModeView previewMode = iota
	previewModeEmail
	previewModeSending
)

// email dialog field indices
const (
	emailFieldTo = iota
	emailFieldSubject
	emailFieldMessage
	emailFieldCount
)

type emailSentMsg struct {
	outcome email.Outcome
	to      string
	err     error
}

// PreviewModel shows the rendered invoice document and hosts the email
// dialog. The document re-renders on every view, so edits made on the
// other screens show up immediately.
type PreviewModel struct {
	app       *app.App
	invoice   *domain.Invoice
	scroll    int
	height    int
	statusMsg string
	err       error

	// Email dialog state
	mode       previewMode
	fields     []textinput.Model
	fieldFocus int
}

// NewPreviewModel creates a new preview screen model
func NewPreviewModel(a *app.App, inv *domain.Invoice) tea.Model {
	return &PreviewModel{
		app:     a,
		invoice: inv,
		mode:    previewModeView,
	}
}

// IsCapturingInput returns true when the email dialog is active
func (m *PreviewModel) IsCapturingInput() bool {
	return m.mode == previewModeEmail
}

func (m *PreviewModel) Init() tea.Cmd {
	return nil
}

func (m *PreviewModel) initEmailForm() {
	m.fields = make([]textinput.Model, emailFieldCount)

	m.fields[emailFieldTo] = textinput.New()
	m.fields[emailFieldTo].Placeholder = "client@example.com"
	m.fields[emailFieldTo].CharLimit = 100
	m.fields[emailFieldTo].Width = 40
	m.fields[emailFieldTo].SetValue(m.invoice.ClientEmail)

	m.fields[emailFieldSubject] = textinput.New()
	m.fields[emailFieldSubject].CharLimit = 150
	m.fields[emailFieldSubject].Width = 50
	m.fields[emailFieldSubject].SetValue(fmt.Sprintf("Invoice %s", m.invoice.InvoiceNumber))

	m.fields[emailFieldMessage] = textinput.New()
	m.fields[emailFieldMessage].Placeholder = "Optional message"
	m.fields[emailFieldMessage].CharLimit = 500
	m.fields[emailFieldMessage].Width = 60

	m.fieldFocus = emailFieldTo
	m.fields[emailFieldTo].Focus()
}

func (m *PreviewModel) sendEmail() tea.Cmd {
	inv := *m.invoice
	to := m.fields[emailFieldTo].Value()
	subject := m.fields[emailFieldSubject].Value()
	message := m.fields[emailFieldMessage].Value()

	return func() tea.Msg {
		totals := domain.ComputeTotals(inv)
		doc, err := render.HTML(inv, totals)
		if err != nil {
			return emailSentMsg{err: err}
		}

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		outcome, err := m.app.Sender.Send(ctx, email.Request{
			To:            to,
			Subject:       subject,
			InvoiceNumber: inv.InvoiceNumber,
			CompanyName:   inv.CompanyName,
			ClientName:    inv.ClientName,
			Total:         strings.TrimPrefix(render.Money(totals.Total), render.CurrencySymbol),
			DueDate:       render.FormatDate(inv.DueDate, inv.DateFormat),
			HTML:          doc,
			Message:       message,
		})
		return emailSentMsg{outcome: outcome, to: to, err: err}
	}
}

func (m *PreviewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.mode == previewModeEmail {
		return m.updateEmailForm(msg)
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.height = msg.Height
		return m, nil

	case RefreshDataMsg:
		m.scroll = 0
		return m, nil

	case emailSentMsg:
		m.mode = previewModeView
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		switch msg.outcome.Delivery {
		case email.SentViaAPI:
			m.statusMsg = fmt.Sprintf("Invoice sent to %s", msg.to)
		case email.OpenedMailClient:
			m.statusMsg = "Opened mail client with a pre-filled draft"
		}
		return m, nil

	case tea.KeyMsg:
		if m.mode == previewModeSending {
			return m, nil
		}

		m.statusMsg = ""
		m.err = nil

		switch {
		case key.Matches(msg, DefaultKeyMap.Up):
			if m.scroll > 0 {
				m.scroll--
			}
		case key.Matches(msg, DefaultKeyMap.Down):
			m.scroll++
		case key.Matches(msg, DefaultKeyMap.Email):
			m.mode = previewModeEmail
			m.initEmailForm()
			return m, m.fields[emailFieldTo].Focus()
		}
	}

	return m, nil
}

func (m *PreviewModel) updateEmailForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			m.mode = previewModeView
			m.err = nil
			return m, nil

		case "tab", "down":
			m.fields[m.fieldFocus].Blur()
			m.fieldFocus = (m.fieldFocus + 1) % emailFieldCount
			return m, m.fields[m.fieldFocus].Focus()

		case "shift+tab", "up":
			m.fields[m.fieldFocus].Blur()
			m.fieldFocus = (m.fieldFocus - 1 + emailFieldCount) % emailFieldCount
			return m, m.fields[m.fieldFocus].Focus()

		case "enter":
			if m.fieldFocus == emailFieldCount-1 {
				return m.submitEmail()
			}
			m.fields[m.fieldFocus].Blur()
			m.fieldFocus++
			return m, m.fields[m.fieldFocus].Focus()

		case "ctrl+s":
			return m.submitEmail()
		}
	}

	// Update the focused text input
	var cmd tea.Cmd
	m.fields[m.fieldFocus], cmd = m.fields[m.fieldFocus].Update(msg)
	return m, cmd
}

func (m *PreviewModel) submitEmail() (tea.Model, tea.Cmd) {
	if m.fields[emailFieldTo].Value() == "" {
		m.err = fmt.Errorf("recipient email is required")
		return m, nil
	}
	if m.fields[emailFieldSubject].Value() == "" {
		m.err = fmt.Errorf("subject is required")
		return m, nil
	}
	m.mode = previewModeSending
	return m, m.sendEmail()
}

func (m *PreviewModel) View() string {
	if m.mode == previewModeEmail {
		return m.viewEmailForm()
	}
	return m.viewDocument()
}

func (m *PreviewModel) viewEmailForm() string {
	var s string
	s += titleStyle.Render("Send Invoice "+m.invoice.InvoiceNumber) + "\n\n"

	labels := []string{"To:", "Subject:", "Message:"}
	for i, label := range labels {
		indicator := "  "
		if i == m.fieldFocus {
			indicator = "> "
		}
		labelStyle := subtitleStyle
		if i == m.fieldFocus {
			labelStyle = lipgloss.NewStyle().Bold(true).Foreground(primaryColor)
		}
		s += fmt.Sprintf("%s%s\n  %s\n\n", indicator, labelStyle.Render(label), m.fields[i].View())
	}

	if !m.app.Sender.Configured() {
		s += lipgloss.NewStyle().Foreground(warningColor).
			Render("  Email delivery is not configured; your mail client will open instead.") + "\n\n"
	}

	if m.err != nil {
		s += lipgloss.NewStyle().Foreground(errorColor).
			Render(fmt.Sprintf("  Error: %v", m.err)) + "\n\n"
	}

	s += helpStyle.Render("  tab/shift+tab: navigate fields  ctrl+s: send  enter: next/send  esc: cancel")

	return s
}

func (m *PreviewModel) viewDocument() string {
	var s string
	s += titleStyle.Render("Preview") + "\n\n"

	if m.mode == previewModeSending {
		s += lipgloss.NewStyle().Foreground(warningColor).Render("  Sending...") + "\n\n"
	}
	if m.statusMsg != "" {
		s += lipgloss.NewStyle().Foreground(successColor).
			Render("  ✓ "+m.statusMsg) + "\n\n"
	}
	if m.err != nil {
		s += lipgloss.NewStyle().Foreground(errorColor).
			Render(fmt.Sprintf("  Error: %v", m.err)) + "\n\n"
	}

	totals := domain.ComputeTotals(*m.invoice)
	doc := render.Text(*m.invoice, totals)

	// Window the document at the scroll offset
	lines := strings.Split(doc, "\n")
	visible := m.height - 14 // frame, header, status and help rows
	if visible < 10 {
		visible = 10
	}
	if m.scroll > len(lines)-1 {
		m.scroll = len(lines) - 1
	}
	end := m.scroll + visible
	if end > len(lines) {
		end = len(lines)
	}
	s += strings.Join(lines[m.scroll:end], "\n") + "\n"

	if end < len(lines) {
		s += subtitleStyle.Render(fmt.Sprintf("  ... %d more lines", len(lines)-end)) + "\n"
	}

	s += "\n" + helpStyle.Render("  j/k: scroll  e: email invoice")

	return s
}
