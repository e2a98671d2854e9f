package tui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/firefly-engineering/chartlit/internal/corpus"
)

// headerItem is a non-selectable group separator in the picker list.
type headerItem struct {
	label string
}

func (h headerItem) FilterValue() string { return "" }
func (h headerItem) Title() string       { return h.label }
func (h headerItem) Description() string { return "" }

// kindOrder is the order groups appear in.
var kindOrder = []corpus.Kind{corpus.KindPair, corpus.KindValid, corpus.KindError}

// groupLabel returns the header text for a group of fixtures.
func groupLabel(kind corpus.Kind, results []corpus.Result) string {
	failed := 0
	for _, r := range results {
		if !r.Passed {
			failed++
		}
	}
	label := fmt.Sprintf("%s fixtures (%d)", kind, len(results))
	if failed > 0 {
		label += fmt.Sprintf(", %d failing", failed)
	}
	return label
}

// buildGroupedItems groups results by fixture kind and returns list items
// with headerItem separators. Within a group, failures come first.
func buildGroupedItems(results []corpus.Result) []list.Item {
	if len(results) == 0 {
		return nil
	}

	groups := make(map[corpus.Kind][]corpus.Result)
	for _, r := range results {
		groups[r.Fixture.Kind] = append(groups[r.Fixture.Kind], r)
	}

	var items []list.Item
	for _, kind := range kindOrder {
		group := groups[kind]
		if len(group) == 0 {
			continue
		}
		items = append(items, headerItem{label: groupLabel(kind, group)})
		for _, passed := range []bool{false, true} {
			for _, r := range group {
				if r.Passed == passed {
					items = append(items, resultItem{result: r})
				}
			}
		}
	}

	return items
}

// headerStyle is the style for group header items.
var headerStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(lipgloss.Color("241")).
	PaddingLeft(2)

// groupedDelegate renders both headerItem and resultItem in the picker list.
type groupedDelegate struct {
	inner list.DefaultDelegate
}

// newGroupedDelegate creates a groupedDelegate wrapping a configured DefaultDelegate.
func newGroupedDelegate() groupedDelegate {
	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = selectedStyle
	delegate.Styles.SelectedDesc = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	return groupedDelegate{inner: delegate}
}

func (d groupedDelegate) Height() int                             { return d.inner.Height() }
func (d groupedDelegate) Spacing() int                            { return d.inner.Spacing() }
func (d groupedDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }

func (d groupedDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	if h, ok := item.(headerItem); ok {
		fmt.Fprint(w, headerStyle.Render(h.label))
		return
	}

	d.inner.Render(w, m, index, item)
}

// skipHeaders adjusts the cursor position to skip headerItem entries.
// direction should be 1 (down) or -1 (up).
func skipHeaders(l *list.Model, direction int) {
	items := l.Items()
	if len(items) == 0 {
		return
	}

	idx := l.Index()
	if _, ok := items[idx].(headerItem); !ok {
		return
	}

	// Try to move in the given direction first
	next := idx + direction
	if next >= 0 && next < len(items) {
		if _, ok := items[next].(headerItem); !ok {
			l.Select(next)
			return
		}
	}

	// Fall back to the opposite direction
	opposite := idx - direction
	if opposite >= 0 && opposite < len(items) {
		if _, ok := items[opposite].(headerItem); !ok {
			l.Select(opposite)
			return
		}
	}
}

// navigationDirection returns 1 for down/j keys, -1 for up/k keys.
func navigationDirection(msg tea.KeyMsg) int {
	switch msg.String() {
	case "up", "k":
		return -1
	default:
		return 1
	}
}
