package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/andy/invoicegen/internal/app"
	"github.com/andy/invoicegen/internal/config"
	"github.com/andy/invoicegen/internal/domain"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Screen represents the current active screen
type Screen int

const (
	ScreenEditor Screen = iota
	ScreenCharges
	ScreenPreview
	ScreenSettings
)

// String returns the screen name
func (s Screen) String() string {
	switch s {
	case ScreenEditor:
		return "Editor"
	case ScreenCharges:
		return "Charges"
	case ScreenPreview:
		return "Preview"
	case ScreenSettings:
		return "Settings"
	default:
		return "Unknown"
	}
}

// Model is the root Bubble Tea model. All screens edit the same invoice.
type Model struct {
	app           *app.App
	invoice       *domain.Invoice
	currentScreen Screen
	width         int
	height        int

	// Screen models (lazy initialized)
	editor   tea.Model
	charges  tea.Model
	preview  tea.Model
	settings tea.Model

	// First-run state
	checkedFirstRun bool

	// Error state
	err error
}

// NewModel creates a new root model with a fresh invoice seeded from
// the configured defaults.
func NewModel(a *app.App) Model {
	invoice := newInvoice(a.Config)
	editor := NewEditorModel(a, invoice)
	return Model{
		app:           a,
		invoice:       invoice,
		currentScreen: ScreenEditor,
		editor:        editor,
	}
}

// newInvoice seeds a fresh invoice and applies config defaults: company
// details, tax rate, date format and the due-date offset.
func newInvoice(cfg *config.Config) *domain.Invoice {
	inv := domain.New(cfg.Invoice.NumberPrefix)
	inv.TaxRate = cfg.Invoice.DefaultTaxRate
	inv.DateFormat = cfg.Invoice.DateFormat
	inv.CompanyName = cfg.Company.Name
	inv.CompanyAddress = cfg.Company.Address
	inv.CompanyEmail = cfg.Company.Email
	inv.CompanyPhone = cfg.Company.Phone

	if cfg.Invoice.DefaultDueDays > 0 {
		if date, err := time.Parse("2006-01-02", inv.InvoiceDate); err == nil {
			inv.DueDate = date.AddDate(0, 0, cfg.Invoice.DefaultDueDays).Format("2006-01-02")
		}
	}
	return inv
}

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		m.checkFirstRun(),
	}
	if m.editor != nil {
		cmds = append(cmds, m.editor.Init())
	}
	return tea.Batch(cmds...)
}

// checkFirstRun checks if company details have been configured yet
func (m *Model) checkFirstRun() tea.Cmd {
	return func() tea.Msg {
		return firstRunCheckMsg{hasCompany: m.app.Config.Company.Name != ""}
	}
}

// initScreen lazy-initializes a screen on first visit,
// and sends a RefreshDataMsg on subsequent visits so screens re-read the invoice.
func (m *Model) initScreen(screen Screen) tea.Cmd {
	switch screen {
	case ScreenEditor:
		if m.editor == nil {
			m.editor = NewEditorModel(m.app, m.invoice)
			return m.editor.Init()
		}
		return func() tea.Msg { return RefreshDataMsg{} }
	case ScreenCharges:
		if m.charges == nil {
			m.charges = NewChargesModel(m.app, m.invoice)
			return m.charges.Init()
		}
		return func() tea.Msg { return RefreshDataMsg{} }
	case ScreenPreview:
		if m.preview == nil {
			m.preview = NewPreviewModel(m.app, m.invoice)
			return m.preview.Init()
		}
		return func() tea.Msg { return RefreshDataMsg{} }
	case ScreenSettings:
		if m.settings == nil {
			m.settings = NewSettingsModel(m.app)
			return m.settings.Init()
		}
		return func() tea.Msg { return RefreshDataMsg{} }
	}
	return nil
}

// InputCapturer is implemented by screens that capture keyboard input (e.g. text forms).
// When active, global navigation keys (1, 2, 3, ,, Q) are suppressed.
type InputCapturer interface {
	IsCapturingInput() bool
}

// activeScreenCapturingInput returns true if the current screen is capturing text input
func (m *Model) activeScreenCapturingInput() bool {
	var screen tea.Model
	switch m.currentScreen {
	case ScreenEditor:
		screen = m.editor
	case ScreenCharges:
		screen = m.charges
	case ScreenPreview:
		screen = m.preview
	case ScreenSettings:
		screen = m.settings
	}
	if ic, ok := screen.(InputCapturer); ok {
		return ic.IsCapturingInput()
	}
	return false
}

// Update implements tea.Model - routes keys to screens
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		// Skip global navigation when a screen is capturing text input
		if !m.activeScreenCapturingInput() {
			// Global key handlers (screen navigation)
			switch {
			case key.Matches(msg, DefaultKeyMap.Quit):
				return m, tea.Quit

			case key.Matches(msg, DefaultKeyMap.Editor):
				m.currentScreen = ScreenEditor
				cmd := m.initScreen(ScreenEditor)
				return m, cmd

			case key.Matches(msg, DefaultKeyMap.Charges):
				m.currentScreen = ScreenCharges
				cmd := m.initScreen(ScreenCharges)
				return m, cmd

			case key.Matches(msg, DefaultKeyMap.Preview):
				m.currentScreen = ScreenPreview
				cmd := m.initScreen(ScreenPreview)
				return m, cmd

			case key.Matches(msg, DefaultKeyMap.Settings):
				m.currentScreen = ScreenSettings
				cmd := m.initScreen(ScreenSettings)
				return m, cmd
			}
		}

	case firstRunCheckMsg:
		if !m.checkedFirstRun && !msg.hasCompany {
			m.checkedFirstRun = true
			m.currentScreen = ScreenSettings
			initCmd := m.initScreen(ScreenSettings)
			openFormCmd := func() tea.Msg { return OpenSettingsFormMsg{} }
			return m, tea.Batch(initCmd, openFormCmd)
		}
		m.checkedFirstRun = true
		return m, nil

	case SwitchScreenMsg:
		m.currentScreen = msg.Screen
		cmd := m.initScreen(msg.Screen)
		return m, cmd

	case ErrorMsg:
		m.err = msg.Err
		return m, nil
	}

	// Route message to current screen
	var cmd tea.Cmd
	switch m.currentScreen {
	case ScreenEditor:
		if m.editor != nil {
			m.editor, cmd = m.editor.Update(msg)
		}
	case ScreenCharges:
		if m.charges != nil {
			m.charges, cmd = m.charges.Update(msg)
		}
	case ScreenPreview:
		if m.preview != nil {
			m.preview, cmd = m.preview.Update(msg)
		}
	case ScreenSettings:
		if m.settings != nil {
			m.settings, cmd = m.settings.Update(msg)
		}
	}

	return m, cmd
}

// View implements tea.Model - renders header + current screen + footer
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	// Header
	header := headerStyle.Render(fmt.Sprintf("invoicegen - %s", m.currentScreen.String()))

	// Footer with navigation keys
	footer := footerStyle.Render("[1] Editor  [2] Charges  [3] Preview  [,] Settings  [Q]uit")

	// Current screen content
	var content string
	switch m.currentScreen {
	case ScreenEditor:
		if m.editor != nil {
			content = m.editor.View()
		} else {
			content = "Loading..."
		}
	case ScreenCharges:
		if m.charges != nil {
			content = m.charges.View()
		} else {
			content = "Loading..."
		}
	case ScreenPreview:
		if m.preview != nil {
			content = m.preview.View()
		} else {
			content = "Loading..."
		}
	case ScreenSettings:
		if m.settings != nil {
			content = m.settings.View()
		} else {
			content = "Loading..."
		}
	}

	// Error display
	errorDisplay := ""
	if m.err != nil {
		errorDisplay = lipgloss.NewStyle().
			Foreground(errorColor).
			Render(fmt.Sprintf("\nError: %s", m.err.Error()))
	}

	// Divider line between header and content
	innerWidth := m.width - 6 // account for border (2) + padding (4)
	if innerWidth < 20 {
		innerWidth = 20
	}
	dividerWidth := innerWidth - 12
	if dividerWidth < 10 {
		dividerWidth = 10
	}
	divider := lipgloss.NewStyle().Foreground(borderColor).Render(
		strings.Repeat("─", dividerWidth),
	)

	body := fmt.Sprintf("%s\n%s\n\n%s%s\n\n%s\n%s", header, divider, content, errorDisplay, divider, footer)

	// Wrap in border, sized to terminal
	frame := appBorderStyle.
		Width(innerWidth).
		Height(m.height - 4) // leave room for border top/bottom
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, frame.Render(body))
}

// Run starts the TUI
func Run(a *app.App) error {
	p := tea.NewProgram(NewModel(a), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
