package tui

import (
	"fmt"
	"strconv"

	"github.com/andy/invoicegen/internal/app"
	"github.com/andy/invoicegen/internal/domain"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// editorMode represents the current screen mode
type editorMode int

const (
	editorModeList editorMode = iota
	editorModeDetails
	editorModeCompany
	editorModeBillTo
	editorModeItem
)

// invoice details form field indices
const (
	detailFieldNumber = iota
	detailFieldDate
	detailFieldDueDate
	detailFieldTaxRate
	detailFieldNotes
	detailFieldCount
)

// company form field indices
const (
	companyFieldName = iota
	companyFieldAddress
	companyFieldEmail
	companyFieldPhone
	companyFieldCount
)

// bill-to form field indices
const (
	billToFieldName = iota
	billToFieldAddress
	billToFieldEmail
	billToFieldCount
)

// line item form field indices
const (
	itemFieldDescription = iota
	itemFieldQuantity
	itemFieldRate
	itemFieldCount
)

// editorRow is one selectable row in the list view: a section header or
// a line item.
type editorRow struct {
	section editorMode // editorModeDetails, editorModeCompany or editorModeBillTo
	item    int        // line item index when section == editorModeItem
}

type editorSavedMsg struct {
	what string
	err  error
}

// EditorModel manages the invoice editing screen: header sections plus
// the line item table.
type EditorModel struct {
	app       *app.App
	invoice   *domain.Invoice
	cursor    int
	err       error
	statusMsg string

	// Form state
	mode        editorMode
	fields      []textinput.Model
	fieldFocus  int
	editingItem string // line item ID being edited
}

// NewEditorModel creates a new editor screen model
func NewEditorModel(a *app.App, inv *domain.Invoice) tea.Model {
	return &EditorModel{
		app:     a,
		invoice: inv,
		mode:    editorModeList,
	}
}

// IsCapturingInput returns true when a form is active
func (m *EditorModel) IsCapturingInput() bool {
	return m.mode != editorModeList
}

func (m *EditorModel) Init() tea.Cmd {
	return nil
}

// rows builds the selectable row list: three header sections followed by
// one row per line item.
func (m *EditorModel) rows() []editorRow {
	rows := []editorRow{
		{section: editorModeDetails},
		{section: editorModeCompany},
		{section: editorModeBillTo},
	}
	for i := range m.invoice.LineItems {
		rows = append(rows, editorRow{section: editorModeItem, item: i})
	}
	return rows
}

func (m *EditorModel) initDetailsForm() {
	inv := m.invoice
	m.fields = make([]textinput.Model, detailFieldCount)

	m.fields[detailFieldNumber] = textinput.New()
	m.fields[detailFieldNumber].Placeholder = "INV-001"
	m.fields[detailFieldNumber].CharLimit = 50
	m.fields[detailFieldNumber].Width = 30
	m.fields[detailFieldNumber].SetValue(inv.InvoiceNumber)

	m.fields[detailFieldDate] = textinput.New()
	m.fields[detailFieldDate].Placeholder = "2026-01-15"
	m.fields[detailFieldDate].CharLimit = 10
	m.fields[detailFieldDate].Width = 15
	m.fields[detailFieldDate].SetValue(inv.InvoiceDate)

	m.fields[detailFieldDueDate] = textinput.New()
	m.fields[detailFieldDueDate].Placeholder = "2026-02-14"
	m.fields[detailFieldDueDate].CharLimit = 10
	m.fields[detailFieldDueDate].Width = 15
	m.fields[detailFieldDueDate].SetValue(inv.DueDate)

	m.fields[detailFieldTaxRate] = textinput.New()
	m.fields[detailFieldTaxRate].Placeholder = "12"
	m.fields[detailFieldTaxRate].CharLimit = 10
	m.fields[detailFieldTaxRate].Width = 10
	m.fields[detailFieldTaxRate].SetValue(strconv.FormatFloat(inv.TaxRate, 'f', -1, 64))

	m.fields[detailFieldNotes] = textinput.New()
	m.fields[detailFieldNotes].Placeholder = "Payment terms, bank details..."
	m.fields[detailFieldNotes].CharLimit = 500
	m.fields[detailFieldNotes].Width = 60
	m.fields[detailFieldNotes].SetValue(inv.Notes)

	m.fieldFocus = detailFieldNumber
	m.fields[detailFieldNumber].Focus()
}

func (m *EditorModel) initCompanyForm() {
	inv := m.invoice
	m.fields = make([]textinput.Model, companyFieldCount)

	m.fields[companyFieldName] = textinput.New()
	m.fields[companyFieldName].Placeholder = "Your company"
	m.fields[companyFieldName].CharLimit = 100
	m.fields[companyFieldName].Width = 40
	m.fields[companyFieldName].SetValue(inv.CompanyName)

	m.fields[companyFieldAddress] = textinput.New()
	m.fields[companyFieldAddress].Placeholder = "Street, city"
	m.fields[companyFieldAddress].CharLimit = 200
	m.fields[companyFieldAddress].Width = 60
	m.fields[companyFieldAddress].SetValue(inv.CompanyAddress)

	m.fields[companyFieldEmail] = textinput.New()
	m.fields[companyFieldEmail].Placeholder = "you@example.com"
	m.fields[companyFieldEmail].CharLimit = 100
	m.fields[companyFieldEmail].Width = 40
	m.fields[companyFieldEmail].SetValue(inv.CompanyEmail)

	m.fields[companyFieldPhone] = textinput.New()
	m.fields[companyFieldPhone].Placeholder = "+63 2 1234 5678"
	m.fields[companyFieldPhone].CharLimit = 30
	m.fields[companyFieldPhone].Width = 25
	m.fields[companyFieldPhone].SetValue(inv.CompanyPhone)

	m.fieldFocus = companyFieldName
	m.fields[companyFieldName].Focus()
}

func (m *EditorModel) initBillToForm() {
	inv := m.invoice
	m.fields = make([]textinput.Model, billToFieldCount)

	m.fields[billToFieldName] = textinput.New()
	m.fields[billToFieldName].Placeholder = "Client name"
	m.fields[billToFieldName].CharLimit = 100
	m.fields[billToFieldName].Width = 40
	m.fields[billToFieldName].SetValue(inv.ClientName)

	m.fields[billToFieldAddress] = textinput.New()
	m.fields[billToFieldAddress].Placeholder = "Street, city"
	m.fields[billToFieldAddress].CharLimit = 200
	m.fields[billToFieldAddress].Width = 60
	m.fields[billToFieldAddress].SetValue(inv.ClientAddress)

	m.fields[billToFieldEmail] = textinput.New()
	m.fields[billToFieldEmail].Placeholder = "client@example.com"
	m.fields[billToFieldEmail].CharLimit = 100
	m.fields[billToFieldEmail].Width = 40
	m.fields[billToFieldEmail].SetValue(inv.ClientEmail)

	m.fieldFocus = billToFieldName
	m.fields[billToFieldName].Focus()
}

func (m *EditorModel) initItemForm(item domain.LineItem) {
	m.fields = make([]textinput.Model, itemFieldCount)

	m.fields[itemFieldDescription] = textinput.New()
	m.fields[itemFieldDescription].Placeholder = "Service or product"
	m.fields[itemFieldDescription].CharLimit = 200
	m.fields[itemFieldDescription].Width = 50
	m.fields[itemFieldDescription].SetValue(item.Description)

	m.fields[itemFieldQuantity] = textinput.New()
	m.fields[itemFieldQuantity].Placeholder = "1"
	m.fields[itemFieldQuantity].CharLimit = 10
	m.fields[itemFieldQuantity].Width = 10
	m.fields[itemFieldQuantity].SetValue(strconv.FormatFloat(item.Quantity, 'f', -1, 64))

	m.fields[itemFieldRate] = textinput.New()
	m.fields[itemFieldRate].Placeholder = "150.00"
	m.fields[itemFieldRate].CharLimit = 15
	m.fields[itemFieldRate].Width = 15
	m.fields[itemFieldRate].SetValue(strconv.FormatFloat(item.Rate, 'f', -1, 64))

	m.editingItem = item.ID
	m.fieldFocus = itemFieldDescription
	m.fields[itemFieldDescription].Focus()
}

func (m *EditorModel) saveDetails() tea.Cmd {
	return func() tea.Msg {
		number := m.fields[detailFieldNumber].Value()
		if number == "" {
			return editorSavedMsg{err: fmt.Errorf("invoice number is required")}
		}

		taxStr := m.fields[detailFieldTaxRate].Value()
		taxRate := 0.0
		if taxStr != "" {
			rate, err := strconv.ParseFloat(taxStr, 64)
			if err != nil {
				return editorSavedMsg{err: fmt.Errorf("invalid tax rate: %s", taxStr)}
			}
			taxRate = rate
		}

		m.invoice.InvoiceNumber = number
		m.invoice.InvoiceDate = m.fields[detailFieldDate].Value()
		m.invoice.DueDate = m.fields[detailFieldDueDate].Value()
		m.invoice.TaxRate = taxRate
		m.invoice.Notes = m.fields[detailFieldNotes].Value()

		return editorSavedMsg{what: "Invoice details"}
	}
}

func (m *EditorModel) saveCompany() tea.Cmd {
	return func() tea.Msg {
		m.invoice.CompanyName = m.fields[companyFieldName].Value()
		m.invoice.CompanyAddress = m.fields[companyFieldAddress].Value()
		m.invoice.CompanyEmail = m.fields[companyFieldEmail].Value()
		m.invoice.CompanyPhone = m.fields[companyFieldPhone].Value()
		return editorSavedMsg{what: "Company details"}
	}
}

func (m *EditorModel) saveBillTo() tea.Cmd {
	return func() tea.Msg {
		m.invoice.ClientName = m.fields[billToFieldName].Value()
		m.invoice.ClientAddress = m.fields[billToFieldAddress].Value()
		m.invoice.ClientEmail = m.fields[billToFieldEmail].Value()
		return editorSavedMsg{what: "Bill-to details"}
	}
}

func (m *EditorModel) saveItem() tea.Cmd {
	return func() tea.Msg {
		qtyStr := m.fields[itemFieldQuantity].Value()
		qty := 0.0
		if qtyStr != "" {
			q, err := strconv.ParseFloat(qtyStr, 64)
			if err != nil {
				return editorSavedMsg{err: fmt.Errorf("invalid quantity: %s", qtyStr)}
			}
			qty = q
		}

		rateStr := m.fields[itemFieldRate].Value()
		rate := 0.0
		if rateStr != "" {
			r, err := strconv.ParseFloat(rateStr, 64)
			if err != nil {
				return editorSavedMsg{err: fmt.Errorf("invalid rate: %s", rateStr)}
			}
			rate = r
		}

		m.invoice.UpdateLineItem(domain.LineItem{
			ID:          m.editingItem,
			Description: m.fields[itemFieldDescription].Value(),
			Quantity:    qty,
			Rate:        rate,
		})
		return editorSavedMsg{what: "Line item"}
	}
}

func (m *EditorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.mode != editorModeList {
		return m.updateForm(msg)
	}

	switch msg := msg.(type) {
	case RefreshDataMsg:
		rows := m.rows()
		if m.cursor >= len(rows) {
			m.cursor = len(rows) - 1
		}
		return m, nil

	case editorSavedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.statusMsg = fmt.Sprintf("Saved: %s", msg.what)
		return m, nil

	case tea.KeyMsg:
		m.statusMsg = ""
		m.err = nil
		rows := m.rows()

		switch {
		case key.Matches(msg, DefaultKeyMap.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, DefaultKeyMap.Down):
			if m.cursor < len(rows)-1 {
				m.cursor++
			}
		case key.Matches(msg, DefaultKeyMap.New):
			item := m.invoice.AddLineItem()
			m.cursor = len(m.rows()) - 1
			m.mode = editorModeItem
			m.initItemForm(item)
			return m, m.fields[itemFieldDescription].Focus()
		case key.Matches(msg, DefaultKeyMap.Delete):
			row := rows[m.cursor]
			if row.section == editorModeItem {
				item := m.invoice.LineItems[row.item]
				if err := m.invoice.RemoveLineItem(item.ID); err != nil {
					m.err = err
					return m, nil
				}
				if m.cursor >= len(m.rows()) {
					m.cursor = len(m.rows()) - 1
				}
				m.statusMsg = "Line item removed"
			}
		case key.Matches(msg, DefaultKeyMap.Select):
			row := rows[m.cursor]
			switch row.section {
			case editorModeDetails:
				m.mode = editorModeDetails
				m.initDetailsForm()
			case editorModeCompany:
				m.mode = editorModeCompany
				m.initCompanyForm()
			case editorModeBillTo:
				m.mode = editorModeBillTo
				m.initBillToForm()
			case editorModeItem:
				m.mode = editorModeItem
				m.initItemForm(m.invoice.LineItems[row.item])
			}
			return m, m.fields[m.fieldFocus].Focus()
		}
	}

	return m, nil
}

func (m *EditorModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case editorSavedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.mode = editorModeList
		m.statusMsg = fmt.Sprintf("Saved: %s", msg.what)
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			m.mode = editorModeList
			m.err = nil
			return m, nil

		case "tab", "down":
			m.fields[m.fieldFocus].Blur()
			m.fieldFocus = (m.fieldFocus + 1) % len(m.fields)
			return m, m.fields[m.fieldFocus].Focus()

		case "shift+tab", "up":
			m.fields[m.fieldFocus].Blur()
			m.fieldFocus = (m.fieldFocus - 1 + len(m.fields)) % len(m.fields)
			return m, m.fields[m.fieldFocus].Focus()

		case "enter":
			if m.fieldFocus == len(m.fields)-1 {
				return m, m.saveForm()
			}
			m.fields[m.fieldFocus].Blur()
			m.fieldFocus++
			return m, m.fields[m.fieldFocus].Focus()

		case "ctrl+s":
			return m, m.saveForm()
		}
	}

	// Update the focused text input
	var cmd tea.Cmd
	m.fields[m.fieldFocus], cmd = m.fields[m.fieldFocus].Update(msg)
	return m, cmd
}

func (m *EditorModel) saveForm() tea.Cmd {
	switch m.mode {
	case editorModeDetails:
		return m.saveDetails()
	case editorModeCompany:
		return m.saveCompany()
	case editorModeBillTo:
		return m.saveBillTo()
	case editorModeItem:
		return m.saveItem()
	}
	return nil
}

func (m *EditorModel) View() string {
	switch m.mode {
	case editorModeDetails:
		return m.viewForm("Invoice Details", []string{"Number:", "Date (YYYY-MM-DD):", "Due Date (YYYY-MM-DD):", "Tax Rate (%):", "Notes:"})
	case editorModeCompany:
		return m.viewForm("Your Company", []string{"Name:", "Address:", "Email:", "Phone:"})
	case editorModeBillTo:
		return m.viewForm("Bill To", []string{"Name:", "Address:", "Email:"})
	case editorModeItem:
		return m.viewForm("Line Item", []string{"Description:", "Quantity:", "Rate:"})
	}
	return m.viewList()
}

func (m *EditorModel) viewForm(title string, labels []string) string {
	var s string
	s += titleStyle.Render(title) + "\n\n"

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

func (m *EditorModel) viewList() string {
	inv := m.invoice
	var s string

	s += titleStyle.Render("Invoice "+inv.InvoiceNumber) + "\n\n"

	if m.statusMsg != "" {
		s += lipgloss.NewStyle().Foreground(successColor).
			Render("  "+m.statusMsg) + "\n\n"
	}

	rows := m.rows()
	for i, row := range rows {
		indicator := "  "
		if i == m.cursor {
			indicator = "> "
		}

		var line string
		switch row.section {
		case editorModeDetails:
			line = fmt.Sprintf("%sInvoice Details   %s", indicator,
				subtitleStyle.Render(fmt.Sprintf("%s · due %s · tax %s%%", inv.InvoiceDate, inv.DueDate, strconv.FormatFloat(inv.TaxRate, 'f', -1, 64))))
		case editorModeCompany:
			name := inv.CompanyName
			if name == "" {
				name = "(not set)"
			}
			line = fmt.Sprintf("%sYour Company      %s", indicator, subtitleStyle.Render(name))
		case editorModeBillTo:
			name := inv.ClientName
			if name == "" {
				name = "(not set)"
			}
			line = fmt.Sprintf("%sBill To           %s", indicator, subtitleStyle.Render(name))
		case editorModeItem:
			item := inv.LineItems[row.item]
			desc := item.Description
			if desc == "" {
				desc = "(blank item)"
			}
			line = fmt.Sprintf("%sItem %d: %-30s %s", indicator, row.item+1, truncateStr(desc, 30),
				amountStyle.Render(fmt.Sprintf("%s × %s = %s",
					strconv.FormatFloat(item.Quantity, 'f', -1, 64),
					formatMoney(item.Rate),
					formatMoney(item.Amount()))))
		}

		if i == m.cursor {
			line = lipgloss.NewStyle().Bold(true).Foreground(primaryColor).Render(line)
		}
		s += line + "\n"
	}

	totals := domain.ComputeTotals(*inv)
	s += "\n" + totalStyle.Render(fmt.Sprintf("  Total: %s", formatMoney(totals.Total))) + "\n"

	s += "\n" + helpStyle.Render("  j/k: navigate  enter: edit  n: new item  d: delete item")

	return s
}
