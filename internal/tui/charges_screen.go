package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/andy/invoicegen/internal/app"
	"github.com/andy/invoicegen/internal/domain"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// chargeMode represents the current screen mode
type chargeMode int

const (
	chargeModeList chargeMode = iota
	chargeModeForm
)

// charge form field indices
const (
	chargeFieldLabel = iota
	chargeFieldKind
	chargeFieldAmount
	chargeFieldCount
)

type chargeSavedMsg struct {
	label string
	err   error
}

// ChargesModel manages the additional charges screen. Charges keep
// their insertion order; the preview lists them in the same order.
type ChargesModel struct {
	app       *app.App
	invoice   *domain.Invoice
	cursor    int
	err       error
	statusMsg string

	// Form state
	mode       chargeMode
	fields     []textinput.Model
	fieldFocus int
	editingID  string // charge ID being edited, "" for new
}

// NewChargesModel creates a new charges screen model
func NewChargesModel(a *app.App, inv *domain.Invoice) tea.Model {
	return &ChargesModel{
		app:     a,
		invoice: inv,
		mode:    chargeModeList,
	}
}

// IsCapturingInput returns true when the form is active
func (m *ChargesModel) IsCapturingInput() bool {
	return m.mode == chargeModeForm
}

func (m *ChargesModel) Init() tea.Cmd {
	return nil
}

func (m *ChargesModel) initForm(editing *domain.AdditionalCharge) {
	m.fields = make([]textinput.Model, chargeFieldCount)

	m.fields[chargeFieldLabel] = textinput.New()
	m.fields[chargeFieldLabel].Placeholder = "Shipping"
	m.fields[chargeFieldLabel].CharLimit = 100
	m.fields[chargeFieldLabel].Width = 40

	m.fields[chargeFieldKind] = textinput.New()
	m.fields[chargeFieldKind].Placeholder = "fixed or percentage"
	m.fields[chargeFieldKind].CharLimit = 10
	m.fields[chargeFieldKind].Width = 20

	m.fields[chargeFieldAmount] = textinput.New()
	m.fields[chargeFieldAmount].Placeholder = "50.00"
	m.fields[chargeFieldAmount].CharLimit = 15
	m.fields[chargeFieldAmount].Width = 15

	if editing != nil {
		m.fields[chargeFieldLabel].SetValue(editing.Label)
		m.fields[chargeFieldKind].SetValue(string(editing.Kind))
		m.fields[chargeFieldAmount].SetValue(strconv.FormatFloat(editing.Amount, 'f', -1, 64))
		m.editingID = editing.ID
	} else {
		m.fields[chargeFieldKind].SetValue(string(domain.ChargeFixed))
		m.editingID = ""
	}

	m.fieldFocus = chargeFieldLabel
	m.fields[chargeFieldLabel].Focus()
}

func (m *ChargesModel) saveCharge() tea.Cmd {
	return func() tea.Msg {
		label := m.fields[chargeFieldLabel].Value()
		kindStr := strings.ToLower(strings.TrimSpace(m.fields[chargeFieldKind].Value()))
		amountStr := m.fields[chargeFieldAmount].Value()

		if label == "" {
			return chargeSavedMsg{err: fmt.Errorf("label is required")}
		}

		var kind domain.ChargeKind
		switch kindStr {
		case "", string(domain.ChargeFixed):
			kind = domain.ChargeFixed
		case string(domain.ChargePercentage):
			kind = domain.ChargePercentage
		default:
			return chargeSavedMsg{err: fmt.Errorf("kind must be fixed or percentage, got %q", kindStr)}
		}

		amount := 0.0
		if amountStr != "" {
			a, err := strconv.ParseFloat(amountStr, 64)
			if err != nil {
				return chargeSavedMsg{err: fmt.Errorf("invalid amount: %s", amountStr)}
			}
			amount = a
		}

		if m.editingID != "" {
			m.invoice.UpdateCharge(domain.AdditionalCharge{
				ID:     m.editingID,
				Label:  label,
				Kind:   kind,
				Amount: amount,
			})
			return chargeSavedMsg{label: label}
		}

		charge := m.invoice.AddCharge()
		charge.Label = label
		charge.Kind = kind
		charge.Amount = amount
		m.invoice.UpdateCharge(charge)
		return chargeSavedMsg{label: label}
	}
}

func (m *ChargesModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.mode == chargeModeForm {
		return m.updateForm(msg)
	}

	switch msg := msg.(type) {
	case RefreshDataMsg:
		if m.cursor >= len(m.invoice.AdditionalCharges) {
			m.cursor = max(0, len(m.invoice.AdditionalCharges)-1)
		}
		return m, nil

	case chargeSavedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.statusMsg = fmt.Sprintf("Saved: %s", msg.label)
		return m, nil

	case tea.KeyMsg:
		m.statusMsg = ""
		m.err = nil
		charges := m.invoice.AdditionalCharges

		switch {
		case key.Matches(msg, DefaultKeyMap.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, DefaultKeyMap.Down):
			if m.cursor < len(charges)-1 {
				m.cursor++
			}
		case key.Matches(msg, DefaultKeyMap.New):
			m.mode = chargeModeForm
			m.initForm(nil)
			return m, m.fields[chargeFieldLabel].Focus()
		case key.Matches(msg, DefaultKeyMap.Delete):
			if len(charges) > 0 && m.cursor < len(charges) {
				m.invoice.RemoveCharge(charges[m.cursor].ID)
				if m.cursor >= len(m.invoice.AdditionalCharges) {
					m.cursor = max(0, len(m.invoice.AdditionalCharges)-1)
				}
				m.statusMsg = "Charge removed"
			}
		case key.Matches(msg, DefaultKeyMap.Select):
			if len(charges) > 0 && m.cursor < len(charges) {
				m.mode = chargeModeForm
				m.initForm(&charges[m.cursor])
				return m, m.fields[chargeFieldLabel].Focus()
			}
		}
	}

	return m, nil
}

func (m *ChargesModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case chargeSavedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.mode = chargeModeList
		m.statusMsg = fmt.Sprintf("Saved: %s", msg.label)
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			m.mode = chargeModeList
			m.err = nil
			return m, nil

		case "tab", "down":
			m.fields[m.fieldFocus].Blur()
			m.fieldFocus = (m.fieldFocus + 1) % chargeFieldCount
			return m, m.fields[m.fieldFocus].Focus()

		case "shift+tab", "up":
			m.fields[m.fieldFocus].Blur()
			m.fieldFocus = (m.fieldFocus - 1 + chargeFieldCount) % chargeFieldCount
			return m, m.fields[m.fieldFocus].Focus()

		case "enter":
			if m.fieldFocus == chargeFieldCount-1 {
				return m, m.saveCharge()
			}
			m.fields[m.fieldFocus].Blur()
			m.fieldFocus++
			return m, m.fields[m.fieldFocus].Focus()

		case "ctrl+s":
			return m, m.saveCharge()
		}
	}

	// Update the focused text input
	var cmd tea.Cmd
	m.fields[m.fieldFocus], cmd = m.fields[m.fieldFocus].Update(msg)
	return m, cmd
}

func (m *ChargesModel) View() string {
	if m.mode == chargeModeForm {
		return m.viewForm()
	}
	return m.viewList()
}

func (m *ChargesModel) viewForm() string {
	var s string

	if m.editingID == "" {
		s += titleStyle.Render("New Charge") + "\n\n"
	} else {
		s += titleStyle.Render("Edit Charge") + "\n\n"
	}

	labels := []string{"Label:", "Kind:", "Amount:"}
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

	if m.err != nil {
		s += lipgloss.NewStyle().Foreground(errorColor).
			Render(fmt.Sprintf("  Error: %v", m.err)) + "\n\n"
	}

	s += helpStyle.Render("  tab/shift+tab: navigate fields  ctrl+s: save  enter: next/save  esc: cancel")

	return s
}

func (m *ChargesModel) viewList() string {
	var s string
	s += titleStyle.Render("Additional Charges") + "\n\n"

	if m.statusMsg != "" {
		s += lipgloss.NewStyle().Foreground(successColor).
			Render("  "+m.statusMsg) + "\n\n"
	}

	charges := m.invoice.AdditionalCharges
	if len(charges) == 0 {
		s += subtitleStyle.Render("  No additional charges. Press 'n' to add one.") + "\n"
		s += "\n" + helpStyle.Render("  n: new charge")
		return s
	}

	totals := domain.ComputeTotals(*m.invoice)
	for i, charge := range charges {
		indicator := "  "
		if i == m.cursor {
			indicator = "> "
		}

		var detail string
		if charge.Kind == domain.ChargePercentage {
			detail = fmt.Sprintf("%s%% of subtotal = %s",
				strconv.FormatFloat(charge.Amount, 'f', -1, 64),
				formatMoney(totals.ChargeAmounts[i]))
		} else {
			detail = formatMoney(charge.Amount)
		}

		line := fmt.Sprintf("%s%-30s %s", indicator, truncateStr(charge.Label, 30), amountStyle.Render(detail))
		if i == m.cursor {
			line = lipgloss.NewStyle().Bold(true).Foreground(primaryColor).Render(line)
		}
		s += line + "\n"
	}

	s += "\n" + totalStyle.Render(fmt.Sprintf("  Charges total: %s", formatMoney(totals.ChargesTotal))) + "\n"

	s += "\n" + helpStyle.Render("  j/k: navigate  n: new  enter: edit  d: delete")

	return s
}
