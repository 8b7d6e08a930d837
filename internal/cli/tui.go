package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/refgraph/refgraph/pkg/report"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// reportTab identifies one pane of the report browser.
type reportTab int

const (
	tabReferenced reportTab = iota
	tabDependent
	tabIsolated
	tabCycles
	tabCount
)

func (t reportTab) title() string {
	switch t {
	case tabReferenced:
		return "Referenced"
	case tabDependent:
		return "Dependent"
	case tabIsolated:
		return "Isolated"
	case tabCycles:
		return "Cycles"
	}
	return ""
}

// ReportModel is the bubbletea model for browsing a scan report in the
// terminal. Left/right switches panes, up/down moves within a pane.
type ReportModel struct {
	Report report.Report
	Tab    reportTab
	Cursor int
	Height int
	Offset int
}

// NewReportModel creates a report browser positioned on the
// most-referenced pane.
func NewReportModel(rep report.Report) ReportModel {
	return ReportModel{Report: rep, Height: 15}
}

func (m ReportModel) Init() tea.Cmd {
	return nil
}

// rowCount returns how many rows the active pane has.
func (m ReportModel) rowCount() int {
	switch m.Tab {
	case tabReferenced:
		return len(m.Report.MostReferenced)
	case tabDependent:
		return len(m.Report.MostDependent)
	case tabIsolated:
		return len(m.Report.Orphans)
	case tabCycles:
		return len(m.Report.Cycles)
	}
	return 0
}

func (m ReportModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "left", "h":
			if m.Tab > 0 {
				m.Tab--
				m.Cursor, m.Offset = 0, 0
			}
		case "right", "l", "tab":
			if m.Tab < tabCount-1 {
				m.Tab++
				m.Cursor, m.Offset = 0, 0
			}
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < m.rowCount()-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 8
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

func (m ReportModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Reference graph: " + m.Report.Root))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("%d files · %d references · ←/→ switch pane  ↑/↓ scroll  q quit",
		m.Report.NodeCount, m.Report.EdgeCount)))
	b.WriteString("\n\n")

	var tabs []string
	for t := reportTab(0); t < tabCount; t++ {
		title := t.title()
		if t == m.Tab {
			tabs = append(tabs, listSelectedStyle.Render("["+title+"]"))
		} else {
			tabs = append(tabs, listDimStyle.Render(" "+title+" "))
		}
	}
	b.WriteString(strings.Join(tabs, " "))
	b.WriteString("\n\n")

	switch m.Tab {
	case tabReferenced:
		b.WriteString(m.rankingView(m.Report.MostReferenced, "Inbound"))
	case tabDependent:
		b.WriteString(m.rankingView(m.Report.MostDependent, "Outbound"))
	case tabIsolated:
		b.WriteString(m.listView(m.Report.Orphans))
	case tabCycles:
		cycles := make([]string, len(m.Report.Cycles))
		for i, cycle := range m.Report.Cycles {
			cycles[i] = strings.Join(cycle, " "+iconArrow+" ")
		}
		b.WriteString(m.listView(cycles))
	}

	if count := m.rowCount(); count > 0 {
		b.WriteString("\n")
		b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, count)))
	}

	return b.String()
}

// rankingView renders a ranking pane as a bordered table.
func (m ReportModel) rankingView(rows []report.Ranking, countHeader string) string {
	if len(rows) == 0 {
		return listDimStyle.Render("  Nothing here.")
	}

	end := m.Offset + m.Height
	if end > len(rows) {
		end = len(rows)
	}

	var tableRows [][]string
	for i := m.Offset; i < end; i++ {
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		tableRows = append(tableRows, []string{cursor, rows[i].Path, fmt.Sprintf("%d", rows[i].Count)})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "File", countHeader).
		Rows(tableRows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if m.Offset+row == m.Cursor {
				return listSelectedStyle
			}
			return listNormalStyle
		})
	return t.Render()
}

// listView renders a plain scrolling list pane.
func (m ReportModel) listView(items []string) string {
	if len(items) == 0 {
		return listDimStyle.Render("  Nothing here.")
	}

	end := m.Offset + m.Height
	if end > len(items) {
		end = len(items)
	}

	var b strings.Builder
	for i := m.Offset; i < end; i++ {
		line := "  " + items[i]
		if i == m.Cursor {
			line = "▸ " + items[i]
			b.WriteString(listSelectedStyle.Render(line))
		} else {
			b.WriteString(listNormalStyle.Render(line))
		}
		b.WriteString("\n")
	}
	return b.String()
}

// browseReport runs the interactive report browser until the user quits.
func browseReport(rep report.Report) error {
	_, err := tea.NewProgram(NewReportModel(rep)).Run()
	return err
}
