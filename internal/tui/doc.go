// Package tui provides terminal user interface components for chartlit.
//
// The fixture browser lists the results of a corpus run grouped by fixture
// kind and lets the user inspect them:
//
//	result, err := tui.RunPicker(report, rerun)
//	switch result.Action {
//	case tui.ActionDiff:
//	    // Open result.Result in the configured diff tool
//	case tui.ActionQuit:
//	    // Exit
//	}
//
// Keys: enter shows issues and diffs, d opens a pair fixture in the diff
// tool, r re-runs the corpus, / filters and q quits. Group headers are
// skipped during navigation.
//
// Uses the Charm libraries (bubbletea, bubbles and lipgloss).
package tui
