// ============================================================================
// minilang - Front end for a small imperative language
// ============================================================================
//
// Package:     explorer
// Description: Bubbletea model for browsing the analysis of one program
// Author:      Mike Stoffels
// Created:     2025-12-07
// License:     MIT
// ============================================================================

package explorer

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/msto63/minilang/foundation/lang"
	"github.com/msto63/minilang/foundation/lang/ast"
	"github.com/msto63/minilang/foundation/lang/diag"
	"github.com/msto63/minilang/pkg/core/version"
)

// Tab identifies one view of the analysis
type Tab int

const (
	TabSource Tab = iota
	TabAST
	TabTrace
	TabSymbols
	TabDiagnostics
)

var tabNames = []string{"Quelltext", "AST", "Trace", "Symbole", "Diagnosen"}

// String returns the tab title
func (t Tab) String() string {
	if t < 0 || int(t) >= len(tabNames) {
		return "?"
	}
	return tabNames[t]
}

// Config holds Explorer configuration
type Config struct {
	Name   string
	Source string
	Engine *lang.Engine

	// Reload re-reads the source; nil disables the "r" key
	Reload func() (string, error)
}

// Model is the main Bubbletea model for the Explorer
type Model struct {
	width   int
	height  int
	ready   bool
	loading bool
	err     error

	viewport viewport.Model
	spinner  spinner.Model
	tab      Tab

	name   string
	source string
	result *lang.Result
	engine *lang.Engine
	reload func() (string, error)
}

// New creates a new Explorer model
func New(cfg Config) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(ColorPrimary)

	engine := cfg.Engine
	if engine == nil {
		engine = lang.New(lang.Options{})
	}

	return Model{
		spinner: sp,
		loading: true,
		name:    cfg.Name,
		source:  cfg.Source,
		engine:  engine,
		reload:  cfg.Reload,
	}
}

// Init starts the first check
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.check(m.source))
}

func (m Model) check(source string) tea.Cmd {
	return func() tea.Msg {
		result, err := m.engine.Check(m.name, source)
		return checkedMsg{source: source, result: result, err: err}
	}
}

func (m Model) reloadSource() tea.Msg {
	source, err := m.reload()
	if err != nil {
		return checkedMsg{source: m.source, err: err}
	}
	result, err := m.engine.Check(m.name, source)
	return checkedMsg{source: source, result: result, err: err}
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		headerHeight := 3 // Title + tabs
		footerHeight := 2 // Status bar + help
		viewportHeight := msg.Height - headerHeight - footerHeight - 2
		if viewportHeight < 1 {
			viewportHeight = 1
		}

		if !m.ready {
			m.viewport = viewport.New(msg.Width-4, viewportHeight)
			m.viewport.YPosition = headerHeight
			m.ready = true
		} else {
			m.viewport.Width = msg.Width - 4
			m.viewport.Height = viewportHeight
		}
		m.updateViewportContent()
		return m, nil

	case checkedMsg:
		m.loading = false
		m.source = msg.source
		m.err = msg.err
		if msg.err == nil {
			m.result = msg.result
		}
		m.updateViewportContent()
		return m, nil

	case ReloadMsg:
		if m.reload == nil {
			return m, nil
		}
		m.loading = true
		return m, tea.Batch(m.spinner.Tick, m.reloadSource)

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// handleKeyPress handles keyboard input
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		return m, tea.Quit

	case tea.KeyTab:
		m.setTab((m.tab + 1) % Tab(len(tabNames)))
		return m, nil

	case tea.KeyShiftTab:
		m.setTab((m.tab + Tab(len(tabNames)) - 1) % Tab(len(tabNames)))
		return m, nil

	case tea.KeyRunes:
		switch key := string(msg.Runes); key {
		case "q":
			return m, tea.Quit
		case "1", "2", "3", "4", "5":
			m.setTab(Tab(key[0] - '1'))
			return m, nil
		case "r":
			return m.Update(ReloadMsg{})
		case "g":
			m.viewport.GotoTop()
			return m, nil
		case "G":
			m.viewport.GotoBottom()
			return m, nil
		}

	case tea.KeyPgUp:
		m.viewport.ViewUp()
		return m, nil

	case tea.KeyPgDown:
		m.viewport.ViewDown()
		return m, nil

	case tea.KeyUp:
		m.viewport.LineUp(1)
		return m, nil

	case tea.KeyDown:
		m.viewport.LineDown(1)
		return m, nil
	}

	return m, nil
}

func (m *Model) setTab(t Tab) {
	m.tab = t
	m.updateViewportContent()
	m.viewport.GotoTop()
}

// ActiveTab returns the selected tab
func (m Model) ActiveTab() Tab {
	return m.tab
}

// Result returns the latest analysis, nil before the first check finishes
func (m Model) Result() *lang.Result {
	return m.result
}

// View renders the UI
func (m Model) View() string {
	if !m.ready {
		return "Lade Explorer..."
	}

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderTabs())
	b.WriteString("\n")
	b.WriteString(PanelStyle.Width(m.width - 2).Render(m.viewport.View()))
	b.WriteString("\n")
	b.WriteString(m.renderStatusBar())
	b.WriteString("\n")
	b.WriteString(HelpStyle.Render("tab/1-5 Ansicht  ↑/↓ scrollen  g/G Anfang/Ende  r neu laden  q beenden"))
	return b.String()
}

func (m Model) renderHeader() string {
	return LogoStyle.Render("minilang explorer") + " " +
		SubHeaderStyle.Render(fmt.Sprintf("v%s  %s", version.Explorer, m.name))
}

func (m Model) renderTabs() string {
	tabs := make([]string, len(tabNames))
	for i, name := range tabNames {
		label := fmt.Sprintf("%d %s", i+1, name)
		if Tab(i) == m.tab {
			tabs[i] = ActiveTabStyle.Render(label)
		} else {
			tabs[i] = TabStyle.Render(label)
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) renderStatusBar() string {
	var status string
	switch {
	case m.loading:
		status = m.spinner.View() + " Analysiere..."
	case m.err != nil:
		status = SyntaxErrorStyle.Render("Fehler: " + m.err.Error())
	case m.result == nil:
		status = "Keine Analyse"
	case m.result.OK():
		status = OKStyle.Render("OK") + fmt.Sprintf("  %d Anweisungen, %v", m.result.Tally.Statements, m.result.Duration)
	case m.result.SyntaxError != nil:
		status = SyntaxErrorStyle.Render("Syntaxfehler") + fmt.Sprintf(" in Zeile %d", m.result.SyntaxError.Line)
	default:
		status = SemanticErrorStyle.Render(fmt.Sprintf("%d semantische Fehler", m.result.SemanticErrors))
	}
	return StatusBarStyle.Width(m.width).Render(status)
}

// updateViewportContent renders the active tab into the viewport
func (m *Model) updateViewportContent() {
	if !m.ready {
		return
	}
	m.viewport.SetContent(m.content())
}

func (m Model) content() string {
	switch m.tab {
	case TabSource:
		return renderSource(m.source, m.diagnostics())
	case TabAST:
		return renderAST(m.result)
	case TabTrace:
		return renderTrace(m.result, m.viewport.Width)
	case TabSymbols:
		return renderSymbols(m.result)
	case TabDiagnostics:
		return renderDiagnostics(m.diagnostics())
	default:
		return ""
	}
}

func (m Model) diagnostics() []diag.Diagnostic {
	if m.result == nil {
		return nil
	}
	return m.result.Diagnostics
}

// renderSource numbers the lines and marks lines with diagnostics
func renderSource(source string, diags []diag.Diagnostic) string {
	marked := make(map[int]bool, len(diags))
	for _, d := range diags {
		marked[d.Line] = true
	}

	lines := strings.Split(strings.TrimRight(source, "\n"), "\n")
	width := len(fmt.Sprint(len(lines)))

	var b strings.Builder
	for i, line := range lines {
		num := LineNumberStyle.Render(fmt.Sprintf("%*d │ ", width, i+1))
		if marked[i+1] {
			line = ErrorLineStyle.Render(line)
		}
		b.WriteString(num + line + "\n")
	}
	return b.String()
}

func renderAST(result *lang.Result) string {
	switch {
	case result == nil:
		return "Keine Analyse"
	case result.Tree == nil:
		return SyntaxErrorStyle.Render("Kein Syntaxbaum: " + result.SyntaxError.Error())
	default:
		return ast.Format(result.Tree)
	}
}

// renderTrace wraps the trace string and lists the tally
func renderTrace(result *lang.Result, width int) string {
	if result == nil || result.Tree == nil {
		return "Kein Trace verfügbar"
	}
	if width < 8 {
		width = 8
	}

	var b strings.Builder
	trace := result.Trace
	for len(trace) > width {
		b.WriteString(TraceStyle.Render(trace[:width]) + "\n")
		trace = trace[width:]
	}
	b.WriteString(TraceStyle.Render(trace) + "\n\n")

	t := result.Tally
	rows := []struct {
		label string
		value int
	}{
		{"Anweisungen", t.Statements},
		{"Deklarationen", t.Declarations},
		{"Zuweisungen", t.Sets},
		{"Ausgaben", t.Prints},
		{"+", t.Plus},
		{"-", t.Minus},
		{"*", t.Star},
		{"/", t.Slash},
		{"Knoten", t.Nodes},
	}
	for _, row := range rows {
		b.WriteString(fmt.Sprintf("%s %d\n", KeyStyle.Render(fmt.Sprintf("%-14s", row.label)), row.value))
	}
	return b.String()
}

func renderSymbols(result *lang.Result) string {
	if result == nil || result.Symbols == nil || result.Symbols.Len() == 0 {
		return "Keine Variablen deklariert"
	}

	var b strings.Builder
	for _, e := range result.Symbols.Entries() {
		b.WriteString(fmt.Sprintf("%s %-7s Zeile %d\n", KeyStyle.Render(fmt.Sprintf("%-16s", e.Name)), e.TypeName(), e.Line))
	}
	return b.String()
}

func renderDiagnostics(diags []diag.Diagnostic) string {
	if len(diags) == 0 {
		return OKStyle.Render("Keine Diagnosen")
	}

	var b strings.Builder
	for _, d := range diags {
		style := SemanticErrorStyle
		if d.Kind == diag.KindSyntax {
			style = SyntaxErrorStyle
		}
		b.WriteString(fmt.Sprintf("%s %s\n", style.Render(fmt.Sprintf("Zeile %d [%s]", d.Line, d.Code)), d.Message))
	}
	return b.String()
}
