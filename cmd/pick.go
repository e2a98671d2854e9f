package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/firefly-engineering/chartlit/internal/corpus"
	"github.com/firefly-engineering/chartlit/internal/logging"
	"github.com/firefly-engineering/chartlit/internal/tui"
)

var pickCmd = &cobra.Command{
	Use:   "pick [dir]",
	Short: "Interactive fixture browser",
	Long: `Checks the corpus and opens an interactive browser over the results.

Use arrow keys or j/k to navigate, / to filter. When stdout is not a
terminal, or with --json, the results are printed instead.

Actions:
  Enter  - Show issues and diff for the selected fixture
  d      - Open the selected pair fixture in the diff tool
  r      - Re-run the corpus
  q/Esc  - Quit`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPick,
}

func init() {
	rootCmd.AddCommand(pickCmd)
}

func runPick(cmd *cobra.Command, args []string) error {
	a := currentApp()
	root := corpusRoot(a, args)
	ctx := cmd.Context()

	logging.Debug("picker mode started", "root", root)

	report, err := runCorpus(ctx, a, root)
	if err != nil {
		return err
	}

	if len(report.Results) == 0 {
		logInfo("No fixtures found in %s", root)
		return nil
	}

	out := cmd.OutOrStdout()
	if jsonOutput {
		return writeJSON(out, report)
	}
	if !isTerminal(out) {
		_, err := fmt.Fprint(out, tui.SimpleList(report))
		return err
	}

	result, err := tui.RunPicker(report, func() (*corpus.Report, error) {
		return runCorpus(ctx, a, root)
	})
	if err != nil {
		return fmt.Errorf("picker error: %w", err)
	}

	logging.Debug("picker result", "action", result.Action)

	switch result.Action {
	case tui.ActionDiff:
		if result.Result != nil {
			return showDiff(cmd, a, result.Result.Fixture)
		}

	case tui.ActionQuit:
		// Just exit cleanly
	}

	return nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()))
}
