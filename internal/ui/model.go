// Package ui is the interactive account table. Columns can be hidden one at
// a time through the column registry; the only way back is resetting the
// whole layout.
package ui

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/go-logr/logr"

	"github.com/oakwood-commons/colorder/internal/accounts"
	"github.com/oakwood-commons/colorder/internal/formatter"
	"github.com/oakwood-commons/colorder/internal/ui/table"
	"github.com/oakwood-commons/colorder/pkg/columns"
)

const (
	defaultWidth  = 80
	defaultHeight = 24
	// title, layout bar, status and footer lines around the table
	chromeHeight = 4
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true)
	focusStyle  = lipgloss.NewStyle().Reverse(true)
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	footerStyle = lipgloss.NewStyle().Faint(true)
)

// Options configures NewModel.
type Options struct {
	AppName string
	Hints   map[columns.Column]formatter.ColumnHint
	NoColor bool
	Width   int
	Height  int
	Logger  logr.Logger
}

// Model is the bubbletea model of the account table.
type Model struct {
	reg     columns.Layout
	initial []columns.Column
	table   *table.Model[accounts.Account]
	hints   map[columns.Column]formatter.ColumnHint
	log     logr.Logger

	appName string
	focus   int
	status  string
	errMsg  string
	width   int
	height  int
	noColor bool
	quit    bool
}

// NewModel builds the view over a configured registry. The layout visible at
// this point is what reset restores.
func NewModel(reg columns.Layout, rows []accounts.Account, opts Options) (*Model, error) {
	initial, err := reg.VisibleColumnsInOrder()
	if err != nil {
		return nil, fmt.Errorf("initial layout: %w", err)
	}
	t := table.NewModel(
		func(a accounts.Account, c columns.Column) string { return a.Cell(c) },
		func(a accounts.Account) string { return a.Customer },
	)
	t.SetNoColor(opts.NoColor)
	t.SetRows(rows)

	log := opts.Logger
	if log.GetSink() == nil {
		log = logr.Discard()
	}
	m := &Model{
		reg:     reg,
		initial: initial,
		table:   t,
		hints:   opts.Hints,
		log:     log,
		appName: opts.AppName,
		width:   opts.Width,
		height:  opts.Height,
		noColor: opts.NoColor,
	}
	if m.appName == "" {
		m.appName = "colorder"
	}
	if m.width <= 0 {
		m.width = defaultWidth
	}
	if m.height <= 0 {
		m.height = defaultHeight
	}
	m.resize()
	if err := m.relayout(); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *Model) Init() tea.Cmd {
	return nil
}

// Update handles window size and key messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.resize()
		return m, nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.quit = true
			return m, tea.Quit
		case "left", "h":
			m.moveFocus(-1)
		case "right", "l", "tab":
			m.moveFocus(1)
		case "x", "delete", "backspace":
			m.hideFocused()
		case "r":
			m.reset()
		default:
			var cmd tea.Cmd
			m.table, cmd = m.table.Update(msg)
			return m, cmd
		}
	}
	return m, nil
}

func (m *Model) visible() []columns.Column {
	return m.table.Layout()
}

// Focused returns the focused column. ok is false when nothing is visible.
func (m *Model) Focused() (c columns.Column, ok bool) {
	vis := m.visible()
	if len(vis) == 0 {
		return 0, false
	}
	return vis[m.focus], true
}

// Status returns the last status or error message.
func (m *Model) Status() string {
	if m.errMsg != "" {
		return m.errMsg
	}
	return m.status
}

// Quitting reports whether the user asked to leave.
func (m *Model) Quitting() bool {
	return m.quit
}

// Table exposes the embedded table for callers that need row access.
func (m *Model) Table() *table.Model[accounts.Account] {
	return m.table
}

func (m *Model) moveFocus(delta int) {
	n := len(m.visible())
	if n == 0 {
		return
	}
	m.focus = (m.focus + delta + n) % n
	m.errMsg = ""
}

func (m *Model) hideFocused() {
	c, ok := m.Focused()
	if !ok {
		m.status = "no visible columns; press r to reset"
		return
	}
	if err := m.reg.Hide(c); err != nil {
		m.setErr(fmt.Errorf("hide %s: %w", c.Label(), err))
		return
	}
	m.log.V(1).Info("hid column from table view", "column", c.Key())
	m.status = fmt.Sprintf("hid %s", c.Label())
	if err := m.relayout(); err != nil {
		m.setErr(err)
	}
}

func (m *Model) reset() {
	if err := m.reg.Configure(m.initial...); err != nil {
		m.setErr(fmt.Errorf("reset layout: %w", err))
		return
	}
	m.status = "layout reset"
	m.focus = 0
	if err := m.relayout(); err != nil {
		m.setErr(err)
	}
}

func (m *Model) setErr(err error) {
	m.log.Error(err, "table view")
	m.errMsg = err.Error()
}

// relayout pulls the visible order from the registry into the table.
func (m *Model) relayout() error {
	vis, err := m.reg.VisibleColumnsInOrder()
	if err != nil {
		return fmt.Errorf("read layout: %w", err)
	}
	m.table.SetLayout(vis, m.hints)
	if m.focus >= len(vis) {
		m.focus = len(vis) - 1
	}
	if m.focus < 0 {
		m.focus = 0
	}
	m.errMsg = ""
	return nil
}

func (m *Model) resize() {
	h := m.height - chromeHeight
	if h < 1 {
		h = 1
	}
	m.table.SetSize(m.width, h)
}

func (m *Model) style(s lipgloss.Style, text string) string {
	if m.noColor {
		return text
	}
	return s.Render(text)
}

// Render returns the screen contents without terminal setup.
func (m *Model) Render() string {
	var b strings.Builder
	b.WriteString(m.style(titleStyle, m.appName))
	b.WriteString("\n")
	b.WriteString(m.layoutBar())
	b.WriteString("\n")
	if len(m.visible()) == 0 {
		b.WriteString("(all columns hidden)")
	} else {
		b.WriteString(m.table.View())
	}
	b.WriteString("\n")
	if m.errMsg != "" {
		b.WriteString(m.style(errorStyle, m.errMsg))
	} else {
		b.WriteString(m.status)
	}
	b.WriteString("\n")
	b.WriteString(m.style(footerStyle, "←/→ column  x hide  r reset  ↑/↓ row  q quit"))
	return b.String()
}

func (m *Model) layoutBar() string {
	vis := m.visible()
	parts := make([]string, len(vis))
	for i, c := range vis {
		label := formatter.Header(c, m.hints)
		if i == m.focus {
			if m.noColor {
				label = "[" + label + "]"
			} else {
				label = focusStyle.Render(label)
			}
		}
		parts[i] = label
	}
	return "columns: " + strings.Join(parts, " | ")
}

func (m *Model) View() tea.View {
	v := tea.NewView(m.Render())
	v.AltScreen = true
	return v
}
