package tui

import (
	"fmt"
	"strconv"

	"github.com/andy/invoicegen/internal/app"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type settingsMode int

const (
	settingsModeView settingsMode = iota
	settingsModeEdit
)

// settings form field indices
const (
	settingsFieldCompanyName = iota
	settingsFieldCompanyAddress
	settingsFieldCompanyEmail
	settingsFieldCompanyPhone
	settingsFieldDateFormat
	settingsFieldDueDays
	settingsFieldPrefix
	settingsFieldTaxRate
	settingsFieldOutputDir
	settingsFieldCount
)

type settingsSavedMsg struct {
	err error
}

// SettingsModel manages the settings screen
type SettingsModel struct {
	app        *app.App
	mode       settingsMode
	fields     []textinput.Model
	fieldFocus int
	err        error
	statusMsg  string
	firstRun   bool
}

// NewSettingsModel creates a new settings screen
func NewSettingsModel(a *app.App) tea.Model {
	return &SettingsModel{
		app:  a,
		mode: settingsModeView,
	}
}

// IsCapturingInput returns true when the edit form is active
func (m *SettingsModel) IsCapturingInput() bool {
	return m.mode == settingsModeEdit
}

func (m *SettingsModel) Init() tea.Cmd {
	return nil
}

func (m *SettingsModel) initForm() {
	m.fields = make([]textinput.Model, settingsFieldCount)
	cfg := m.app.Config

	// Company details (prefilled into every new invoice)
	m.fields[settingsFieldCompanyName] = textinput.New()
	m.fields[settingsFieldCompanyName].Placeholder = "Your company"
	m.fields[settingsFieldCompanyName].CharLimit = 100
	m.fields[settingsFieldCompanyName].Width = 40
	m.fields[settingsFieldCompanyName].SetValue(cfg.Company.Name)

	m.fields[settingsFieldCompanyAddress] = textinput.New()
	m.fields[settingsFieldCompanyAddress].Placeholder = "Street, city"
	m.fields[settingsFieldCompanyAddress].CharLimit = 200
	m.fields[settingsFieldCompanyAddress].Width = 60
	m.fields[settingsFieldCompanyAddress].SetValue(cfg.Company.Address)

	m.fields[settingsFieldCompanyEmail] = textinput.New()
	m.fields[settingsFieldCompanyEmail].Placeholder = "you@example.com"
	m.fields[settingsFieldCompanyEmail].CharLimit = 100
	m.fields[settingsFieldCompanyEmail].Width = 40
	m.fields[settingsFieldCompanyEmail].SetValue(cfg.Company.Email)

	m.fields[settingsFieldCompanyPhone] = textinput.New()
	m.fields[settingsFieldCompanyPhone].Placeholder = "+63 2 1234 5678"
	m.fields[settingsFieldCompanyPhone].CharLimit = 30
	m.fields[settingsFieldCompanyPhone].Width = 25
	m.fields[settingsFieldCompanyPhone].SetValue(cfg.Company.Phone)

	// Date format locale tag ("long" for spelled-out dates)
	m.fields[settingsFieldDateFormat] = textinput.New()
	m.fields[settingsFieldDateFormat].Placeholder = "en-US"
	m.fields[settingsFieldDateFormat].CharLimit = 10
	m.fields[settingsFieldDateFormat].Width = 10
	m.fields[settingsFieldDateFormat].SetValue(cfg.Invoice.DateFormat)

	// Default due days
	m.fields[settingsFieldDueDays] = textinput.New()
	m.fields[settingsFieldDueDays].Placeholder = "30"
	m.fields[settingsFieldDueDays].CharLimit = 5
	m.fields[settingsFieldDueDays].Width = 10
	m.fields[settingsFieldDueDays].SetValue(strconv.Itoa(cfg.Invoice.DefaultDueDays))

	// Number prefix
	m.fields[settingsFieldPrefix] = textinput.New()
	m.fields[settingsFieldPrefix].Placeholder = "INV"
	m.fields[settingsFieldPrefix].CharLimit = 20
	m.fields[settingsFieldPrefix].Width = 20
	m.fields[settingsFieldPrefix].SetValue(cfg.Invoice.NumberPrefix)

	// Default tax rate (percentage)
	m.fields[settingsFieldTaxRate] = textinput.New()
	m.fields[settingsFieldTaxRate].Placeholder = "12"
	m.fields[settingsFieldTaxRate].CharLimit = 10
	m.fields[settingsFieldTaxRate].Width = 10
	m.fields[settingsFieldTaxRate].SetValue(strconv.FormatFloat(cfg.Invoice.DefaultTaxRate, 'f', -1, 64))

	// Output directory for exports
	m.fields[settingsFieldOutputDir] = textinput.New()
	m.fields[settingsFieldOutputDir].Placeholder = "/path/to/invoices"
	m.fields[settingsFieldOutputDir].CharLimit = 256
	m.fields[settingsFieldOutputDir].Width = 60
	m.fields[settingsFieldOutputDir].SetValue(cfg.Invoice.OutputDir)

	m.fieldFocus = settingsFieldCompanyName
	m.fields[settingsFieldCompanyName].Focus()
}

func (m *SettingsModel) saveSettings() tea.Cmd {
	return func() tea.Msg {
		companyName := m.fields[settingsFieldCompanyName].Value()
		dueDaysStr := m.fields[settingsFieldDueDays].Value()
		prefix := m.fields[settingsFieldPrefix].Value()
		taxRateStr := m.fields[settingsFieldTaxRate].Value()
		outputDir := m.fields[settingsFieldOutputDir].Value()

		if companyName == "" {
			return settingsSavedMsg{err: fmt.Errorf("company name is required")}
		}
		if prefix == "" {
			return settingsSavedMsg{err: fmt.Errorf("invoice prefix is required")}
		}
		if outputDir == "" {
			return settingsSavedMsg{err: fmt.Errorf("output directory is required")}
		}

		dueDays, err := strconv.Atoi(dueDaysStr)
		if err != nil || dueDays <= 0 {
			return settingsSavedMsg{err: fmt.Errorf("due days must be a positive number")}
		}

		taxRate, err := strconv.ParseFloat(taxRateStr, 64)
		if err != nil || taxRate < 0 {
			return settingsSavedMsg{err: fmt.Errorf("tax rate must be a non-negative number")}
		}

		cfg := m.app.Config
		cfg.Company.Name = companyName
		cfg.Company.Address = m.fields[settingsFieldCompanyAddress].Value()
		cfg.Company.Email = m.fields[settingsFieldCompanyEmail].Value()
		cfg.Company.Phone = m.fields[settingsFieldCompanyPhone].Value()
		cfg.Invoice.DateFormat = m.fields[settingsFieldDateFormat].Value()
		cfg.Invoice.DefaultDueDays = dueDays
		cfg.Invoice.NumberPrefix = prefix
		cfg.Invoice.DefaultTaxRate = taxRate
		cfg.Invoice.OutputDir = outputDir

		if err := m.app.SaveConfig(); err != nil {
			return settingsSavedMsg{err: fmt.Errorf("failed to save config: %w", err)}
		}

		return settingsSavedMsg{}
	}
}

func (m *SettingsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Handle OpenSettingsFormMsg at the top so first-run setup works
	if _, ok := msg.(OpenSettingsFormMsg); ok {
		m.mode = settingsModeEdit
		m.firstRun = true
		m.initForm()
		return m, m.fields[m.fieldFocus].Focus()
	}

	if m.mode == settingsModeEdit {
		return m.updateForm(msg)
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		m.err = nil
		switch {
		case msg.String() == "enter":
			m.mode = settingsModeEdit
			m.statusMsg = ""
			m.initForm()
			return m, m.fields[m.fieldFocus].Focus()
		}
	}

	return m, nil
}

func (m *SettingsModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case settingsSavedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.mode = settingsModeView
		m.firstRun = false
		m.statusMsg = "Settings saved"
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			m.mode = settingsModeView
			m.firstRun = false
			m.err = nil
			return m, nil

		case "tab", "down":
			m.fields[m.fieldFocus].Blur()
			m.fieldFocus = (m.fieldFocus + 1) % settingsFieldCount
			return m, m.fields[m.fieldFocus].Focus()

		case "shift+tab", "up":
			m.fields[m.fieldFocus].Blur()
			m.fieldFocus = (m.fieldFocus - 1 + settingsFieldCount) % settingsFieldCount
			return m, m.fields[m.fieldFocus].Focus()

		case "enter":
			if m.fieldFocus == settingsFieldCount-1 {
				return m, m.saveSettings()
			}
			m.fields[m.fieldFocus].Blur()
			m.fieldFocus++
			return m, m.fields[m.fieldFocus].Focus()

		case "ctrl+s":
			return m, m.saveSettings()
		}
	}

	// Update the focused text input
	var cmd tea.Cmd
	m.fields[m.fieldFocus], cmd = m.fields[m.fieldFocus].Update(msg)
	return m, cmd
}

func (m *SettingsModel) View() string {
	if m.mode == settingsModeEdit {
		return m.viewForm()
	}
	return m.viewSettings()
}

func (m *SettingsModel) viewSettings() string {
	var s string
	s += titleStyle.Render("Settings") + "\n\n"

	if m.statusMsg != "" {
		s += lipgloss.NewStyle().Foreground(successColor).
			Render("  "+m.statusMsg) + "\n\n"
	}

	cfg := m.app.Config

	labelStyle := lipgloss.NewStyle().Bold(true).Width(22)
	valueStyle := lipgloss.NewStyle().Foreground(primaryColor)

	s += subtitleStyle.Render("  Company") + "\n\n"
	s += fmt.Sprintf("  %s %s\n", labelStyle.Render("Name:"), valueStyle.Render(cfg.Company.Name))
	s += fmt.Sprintf("  %s %s\n", labelStyle.Render("Address:"), valueStyle.Render(cfg.Company.Address))
	s += fmt.Sprintf("  %s %s\n", labelStyle.Render("Email:"), valueStyle.Render(cfg.Company.Email))
	s += fmt.Sprintf("  %s %s\n", labelStyle.Render("Phone:"), valueStyle.Render(cfg.Company.Phone))

	s += "\n" + subtitleStyle.Render("  Invoice Defaults") + "\n\n"
	s += fmt.Sprintf("  %s %s\n", labelStyle.Render("Date Format:"), valueStyle.Render(cfg.Invoice.DateFormat))
	s += fmt.Sprintf("  %s %s\n", labelStyle.Render("Default Due Days:"), valueStyle.Render(strconv.Itoa(cfg.Invoice.DefaultDueDays)))
	s += fmt.Sprintf("  %s %s\n", labelStyle.Render("Number Prefix:"), valueStyle.Render(cfg.Invoice.NumberPrefix))

	taxDisplay := fmt.Sprintf("%s%%", strconv.FormatFloat(cfg.Invoice.DefaultTaxRate, 'f', -1, 64))
	s += fmt.Sprintf("  %s %s\n", labelStyle.Render("Default Tax Rate:"), valueStyle.Render(taxDisplay))
	s += fmt.Sprintf("  %s %s\n", labelStyle.Render("Output Directory:"), valueStyle.Render(cfg.Invoice.OutputDir))

	s += "\n" + helpStyle.Render("  enter: edit settings")

	return s
}

func (m *SettingsModel) viewForm() string {
	var s string
	if m.firstRun {
		s += titleStyle.Render("Welcome to invoicegen!") + "\n"
		s += subtitleStyle.Render("  Let's set up your company details to get started.") + "\n\n"
	} else {
		s += titleStyle.Render("Edit Settings") + "\n\n"
	}

	labels := []string{
		"Company Name:", "Company Address:", "Company Email:", "Company Phone:",
		"Date Format:", "Default Due Days:", "Number Prefix:", "Tax Rate (%):", "Output Directory:",
	}
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
