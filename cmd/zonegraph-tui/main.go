package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/otsec/zonegraph/pkg/compliance"
	"github.com/otsec/zonegraph/pkg/model"
	"github.com/otsec/zonegraph/pkg/risk"
)

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#00FFFF")).
			MarginLeft(2).
			MarginTop(1)

	activeTabStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color("#0087D7")).
			Padding(0, 2)

	inactiveTabStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#666666")).
				Padding(0, 2)

	contentStyle = lipgloss.NewStyle().
			MarginLeft(2).
			MarginTop(1)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF0000")).
			Bold(true)

	warnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFAF00"))

	okStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#00FF00")).
			Bold(true)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888")).
			MarginTop(1).
			MarginLeft(2)
)

type view int

const (
	overviewView view = iota
	diagnosticsView
	riskView
	controlsView
	viewCount
)

var viewNames = []string{"Overview", "Diagnostics", "Risk", "Controls"}

type keyMap struct {
	Tab      key.Binding
	ShiftTab key.Binding
	Quit     key.Binding
	Up       key.Binding
	Down     key.Binding
}

var keys = keyMap{
	Tab: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "next view"),
	),
	ShiftTab: key.NewBinding(
		key.WithKeys("shift+tab"),
		key.WithHelp("shift+tab", "prev view"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("up/k", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("down/j", "down"),
	),
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Tab, k.Up, k.Down, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Tab, k.ShiftTab},
		{k.Up, k.Down},
		{k.Quit},
	}
}

type uiModel struct {
	project     *model.Project
	report      *compliance.Report
	currentView view
	diagTable   table.Model
	riskTable   table.Model
	help        help.Model
	keys        keyMap
	width       int
}

func newDiagTable(report *compliance.Report) table.Model {
	columns := []table.Column{
		{Title: "Severity", Width: 10},
		{Title: "Code", Width: 30},
		{Title: "Location", Width: 20},
		{Title: "Message", Width: 60},
	}
	rows := make([]table.Row, 0, len(report.Validation.Results))
	for _, res := range report.Validation.Results {
		rows = append(rows, table.Row{string(res.Severity), res.Code, res.Location, res.Message})
	}
	return styledTable(columns, rows)
}

func newRiskTable(assessment *risk.Assessment) table.Model {
	columns := []table.Column{
		{Title: "Zone", Width: 20},
		{Title: "Score", Width: 8},
		{Title: "Level", Width: 10},
		{Title: "Criticality", Width: 12},
		{Title: "SL", Width: 8},
		{Title: "Exposure", Width: 10},
	}
	rows := make([]table.Row, 0, len(assessment.Zones))
	for _, zr := range assessment.Zones {
		rows = append(rows, table.Row{
			zr.ZoneID,
			fmt.Sprintf("%.1f", zr.Score),
			string(zr.Level),
			fmt.Sprintf("%.1f", zr.Factors.AssetCriticality),
			fmt.Sprintf("%.1f", zr.Factors.SecurityLevel),
			fmt.Sprintf("%.1f", zr.Factors.Exposure),
		})
	}
	return styledTable(columns, rows)
}

func styledTable(columns []table.Column, rows []table.Row) table.Model {
	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(12),
	)
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("#00FFFF")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("#FFFFFF")).
		Background(lipgloss.Color("#0087D7")).
		Bold(false)
	t.SetStyles(s)
	return t
}

func initialModel(project *model.Project, report *compliance.Report) uiModel {
	return uiModel{
		project:   project,
		report:    report,
		diagTable: newDiagTable(report),
		riskTable: newRiskTable(report.Risk),
		help:      help.New(),
		keys:      keys,
	}
}

func (m uiModel) Init() tea.Cmd {
	return nil
}

func (m uiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Tab):
			m.currentView = (m.currentView + 1) % viewCount
			return m, nil
		case key.Matches(msg, m.keys.ShiftTab):
			m.currentView = (m.currentView + viewCount - 1) % viewCount
			return m, nil
		}
	}

	var cmd tea.Cmd
	switch m.currentView {
	case diagnosticsView:
		m.diagTable, cmd = m.diagTable.Update(msg)
	case riskView:
		m.riskTable, cmd = m.riskTable.Update(msg)
	}
	return m, cmd
}

func (m uiModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("zonegraph: " + m.project.Metadata.Name))
	b.WriteString("\n")

	tabs := make([]string, 0, int(viewCount))
	for i, name := range viewNames {
		if view(i) == m.currentView {
			tabs = append(tabs, activeTabStyle.Render(name))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(name))
		}
	}
	b.WriteString(contentStyle.Render(lipgloss.JoinHorizontal(lipgloss.Top, tabs...)))
	b.WriteString("\n")

	switch m.currentView {
	case overviewView:
		b.WriteString(contentStyle.Render(m.overview()))
	case diagnosticsView:
		b.WriteString(contentStyle.Render(m.diagTable.View()))
	case riskView:
		b.WriteString(contentStyle.Render(m.riskTable.View()))
	case controlsView:
		b.WriteString(contentStyle.Render(m.controls()))
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))
	b.WriteString("\n")
	return b.String()
}

func (m uiModel) overview() string {
	v := m.report.Validation
	var b strings.Builder

	status := okStyle.Render("VALID")
	if !v.Valid {
		status = errorStyle.Render("INVALID")
	}
	fmt.Fprintf(&b, "Validation: %s  (%d errors, %d warnings)\n", status, v.ErrorCount, v.WarningCount)

	violations := len(m.report.Violations)
	if violations == 0 {
		fmt.Fprintf(&b, "Policy:     %s\n", okStyle.Render("no violations"))
	} else {
		fmt.Fprintf(&b, "Policy:     %s\n", warnStyle.Render(fmt.Sprintf("%d violations", violations)))
	}

	fmt.Fprintf(&b, "Risk:       %.1f (%s)\n", m.report.Risk.Score, m.report.Risk.Level)
	fmt.Fprintf(&b, "Max SL-T:   %d\n\n", m.report.Controls.MaxSecurityLevel)
	fmt.Fprintf(&b, "Zones: %d   Conduits: %d   Assets: %d\n",
		len(m.project.Zones), len(m.project.Conduits), m.project.AssetCount())
	return b.String()
}

func (m uiModel) controls() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Global controls (SL %d baseline):\n", m.report.Controls.MaxSecurityLevel)
	for _, c := range m.report.Controls.GlobalControls {
		fmt.Fprintf(&b, "  - %s\n", c)
	}
	b.WriteString("\nConduit controls:\n")
	for _, cp := range m.report.Controls.ConduitProfiles {
		fmt.Fprintf(&b, "  %s (SL %d):\n", cp.ConduitID, cp.RequiredSecurityLevel)
		for _, c := range cp.RecommendedControls {
			fmt.Fprintf(&b, "    - %s\n", c)
		}
	}
	return b.String()
}

func main() {
	projectFile := flag.String("project", "project.yaml", "Project definition file (YAML)")
	flag.Parse()

	project, err := model.Load(*projectFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load project: %v\n", err)
		os.Exit(1)
	}

	report := compliance.BuildReport(project, false)

	p := tea.NewProgram(initialModel(project, report), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		log.Fatal(err)
	}
}
