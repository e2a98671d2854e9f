// Package tui provides terminal user interface components for chartlit
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/firefly-engineering/chartlit/internal/corpus"
)

// Action represents the action to take after picker selection
type Action int

const (
	ActionNone Action = iota
	ActionDiff
	ActionQuit
)

// PickerResult holds the result of the picker
type PickerResult struct {
	Action Action
	Result *corpus.Result
}

// RerunFunc runs the corpus again.
type RerunFunc func() (*corpus.Report, error)

// resultItem implements list.Item for fixture display
type resultItem struct {
	result corpus.Result
}

func (i resultItem) Title() string {
	return i.result.Fixture.Name
}

func (i resultItem) Description() string {
	msg := i.result.Message
	if msg == "" {
		msg = "ok"
	}
	return fmt.Sprintf("%s %s | %s", statusIcon(i.result), i.result.Fixture.Kind, truncate(firstLine(msg), 60))
}

func (i resultItem) FilterValue() string {
	return i.result.Fixture.Name
}

func statusIcon(r corpus.Result) string {
	if r.Passed {
		return "✓"
	}
	return "✗"
}

func firstLine(s string) string {
	line, _, _ := strings.Cut(s, "\n")
	return line
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39")).
			MarginBottom(1)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			MarginTop(1)

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")).
			Bold(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	addedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("34"))
	removedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

// reportMsg carries the outcome of a re-run.
type reportMsg struct {
	report *corpus.Report
	err    error
}

// Model is the bubbletea model for the fixture browser
type Model struct {
	list     list.Model
	detail   viewport.Model
	showing  bool
	result   PickerResult
	quitting bool
	rerun    RerunFunc
	running  bool
	err      error
	width    int
	height   int
}

// NewPicker creates a new fixture browser over a corpus report. rerun may
// be nil, which disables the re-run key.
func NewPicker(report *corpus.Report, rerun RerunFunc) Model {
	l := list.New(buildGroupedItems(report.Results), newGroupedDelegate(), 80, 20)
	l.Title = titleFor(report)
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.Styles.Title = titleStyle
	skipHeaders(&l, 1)

	return Model{
		list:   l,
		detail: viewport.New(80, 20),
		rerun:  rerun,
	}
}

func titleFor(report *corpus.Report) string {
	return fmt.Sprintf("chartlit - %d passed, %d failed", report.Passed, report.Failed)
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.list.SetSize(msg.Width, msg.Height-4)
		m.detail.Width = msg.Width
		m.detail.Height = msg.Height - 4
		return m, nil

	case reportMsg:
		m.running = false
		m.err = msg.err
		if msg.err == nil {
			m.list.SetItems(buildGroupedItems(msg.report.Results))
			m.list.Title = titleFor(msg.report)
			skipHeaders(&m.list, 1)
		}
		return m, nil

	case tea.KeyMsg:
		if m.showing {
			return m.updateDetail(msg)
		}

		// Don't handle keys if filtering
		if m.list.FilterState() == list.Filtering {
			break
		}

		switch msg.String() {
		case "enter":
			if item, ok := m.list.SelectedItem().(resultItem); ok {
				m.detail.SetContent(renderDetail(item.result))
				m.detail.GotoTop()
				m.showing = true
				return m, nil
			}

		case "d":
			if item, ok := m.list.SelectedItem().(resultItem); ok && item.result.Fixture.Kind == corpus.KindPair {
				res := item.result
				m.result = PickerResult{Action: ActionDiff, Result: &res}
				m.quitting = true
				return m, tea.Quit
			}

		case "r":
			if m.rerun != nil && !m.running {
				m.running = true
				rerun := m.rerun
				return m, func() tea.Msg {
					report, err := rerun()
					return reportMsg{report: report, err: err}
				}
			}

		case "q", "esc":
			m.result = PickerResult{Action: ActionQuit}
			m.quitting = true
			return m, tea.Quit

		case "up", "k", "down", "j":
			var cmd tea.Cmd
			m.list, cmd = m.list.Update(msg)
			skipHeaders(&m.list, navigationDirection(msg))
			return m, cmd
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) updateDetail(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter", "esc", "backspace":
		m.showing = false
		return m, nil
	case "q":
		m.result = PickerResult{Action: ActionQuit}
		m.quitting = true
		return m, tea.Quit
	}
	var cmd tea.Cmd
	m.detail, cmd = m.detail.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	if m.showing {
		help := helpStyle.Render("[↑/↓] Scroll  [enter/esc] Back  [q] Quit")
		return m.detail.View() + "\n" + help
	}

	status := ""
	if m.running {
		status = "running...  "
	} else if m.err != nil {
		status = errorStyle.Render("re-run failed: "+m.err.Error()) + "  "
	}
	help := helpStyle.Render(status + "[enter] Details  [d] Diff  [r] Re-run  [/] Filter  [q] Quit")

	return m.list.View() + "\n" + help
}

// Result returns the picker result
func (m Model) Result() PickerResult {
	return m.result
}

// renderDetail formats a result for the detail pane.
func renderDetail(r corpus.Result) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "%s %s (%s)\n", statusIcon(r), r.Fixture.Name, r.Fixture.Kind)
	if r.Fixture.Expected != "" {
		fmt.Fprintf(&sb, "expected output: %s\n", r.Fixture.Expected)
	}
	if r.Message != "" {
		fmt.Fprintf(&sb, "\n%s\n", r.Message)
	}

	if len(r.Issues) > 0 {
		sb.WriteString("\nIssues:\n")
		for _, issue := range r.Issues {
			fmt.Fprintf(&sb, "  %s\n", issue)
		}
	}

	if r.Diff != "" {
		sb.WriteString("\nDiff:\n")
		for _, line := range strings.Split(strings.TrimRight(r.Diff, "\n"), "\n") {
			switch {
			case strings.HasPrefix(line, "+"):
				sb.WriteString(addedStyle.Render(line))
			case strings.HasPrefix(line, "-"):
				sb.WriteString(removedStyle.Render(line))
			default:
				sb.WriteString(line)
			}
			sb.WriteByte('\n')
		}
	}

	return sb.String()
}

// RunPicker runs the interactive fixture browser
func RunPicker(report *corpus.Report, rerun RerunFunc) (PickerResult, error) {
	if len(report.Results) == 0 {
		return PickerResult{Action: ActionNone}, nil
	}

	m := NewPicker(report, rerun)
	p := tea.NewProgram(m, tea.WithAltScreen())

	finalModel, err := p.Run()
	if err != nil {
		return PickerResult{}, err
	}

	return finalModel.(Model).Result(), nil
}

// SimpleList is a non-interactive rendering of a corpus report
func SimpleList(report *corpus.Report) string {
	var sb strings.Builder

	sb.WriteString("chartlit - Fixtures\n")
	sb.WriteString(strings.Repeat("─", 60) + "\n\n")

	if len(report.Results) == 0 {
		sb.WriteString("No fixtures found.\n")
		sb.WriteString("Add NN.js, error-NN.js or X.js with X_output.js files to the corpus.\n")
		return sb.String()
	}

	for i, r := range report.Results {
		sb.WriteString(fmt.Sprintf("%d. %s %s (%s)\n", i+1, statusIcon(r), r.Fixture.Name, r.Fixture.Kind))
		if r.Message != "" {
			sb.WriteString(fmt.Sprintf("   %s\n", truncate(firstLine(r.Message), 70)))
		}
		sb.WriteByte('\n')
	}
	sb.WriteString(fmt.Sprintf("%d passed, %d failed\n", report.Passed, report.Failed))

	return sb.String()
}
