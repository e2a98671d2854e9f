package cmd

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/firefly-engineering/chartlit/internal/app"
	"github.com/firefly-engineering/chartlit/internal/corpus"
	"github.com/firefly-engineering/chartlit/internal/errors"
	"github.com/firefly-engineering/chartlit/internal/logging"
	"github.com/firefly-engineering/chartlit/internal/system"
)

var diffCmd = &cobra.Command{
	Use:   "diff <dir> <fixture>",
	Short: "Diff a pair fixture against its expected output",
	Long: `Normalizes a pair fixture and compares the result with its expected
output file.

The configured diff command ([diff] command in .chartlit.toml or
CHARTLIT_DIFF_COMMAND) is run with the expected and actual files as its
last two arguments. Without one, a unified diff is printed.`,
	Args: cobra.ExactArgs(2),
	RunE: runDiff,
}

func init() {
	rootCmd.AddCommand(diffCmd)
}

func runDiff(cmd *cobra.Command, args []string) error {
	a := currentApp()
	root, name := args[0], args[1]

	// Rejects names that escape the corpus root.
	if _, err := corpus.Resolve(a.FS, root, name); err != nil {
		return err
	}

	fixtures, err := corpus.Discover(a.FS, root)
	if err != nil {
		return err
	}
	f, ok := corpus.Find(fixtures, filepath.ToSlash(name))
	if !ok {
		return errors.FixtureNotFound(name)
	}

	return showDiff(cmd, a, f)
}

// showDiff compares a pair fixture with its expected output, through the
// configured diff tool when there is one.
func showDiff(cmd *cobra.Command, a *app.App, f corpus.Fixture) error {
	actual, expected, err := corpus.NewRunner(a).PairOutputs(f)
	if err != nil {
		return err
	}

	toolArgs, err := a.Config.Diff.Args()
	if err != nil {
		return errors.ConfigError("invalid diff command", err)
	}

	if len(toolArgs) == 0 {
		d := corpus.UnifiedDiff(f.Expected, f.Name+" (normalized)", corpus.NormalizeText(expected), corpus.NormalizeText(actual))
		if d == "" {
			logSuccess("%s matches %s", f.Name, f.Expected)
			return nil
		}
		fmt.Fprint(cmd.OutOrStdout(), d)
		return nil
	}

	dir, err := a.FS.MkdirTemp("", "chartlit-diff-*")
	if err != nil {
		return errors.DiffToolError("failed to create temp dir", err)
	}
	defer func() {
		if err := a.FS.RemoveAll(dir); err != nil {
			logging.Warn("failed to remove temp dir", "dir", dir, "error", err)
		}
	}()

	base := filepath.Base(f.Expected)
	expectedPath := filepath.Join(dir, "expected-"+base)
	actualPath := filepath.Join(dir, "actual-"+base)
	if err := a.FS.WriteFile(expectedPath, []byte(expected), 0644); err != nil {
		return errors.DiffToolError("failed to write expected output", err)
	}
	if err := a.FS.WriteFile(actualPath, []byte(actual), 0644); err != nil {
		return errors.DiffToolError("failed to write actual output", err)
	}

	toolArgs = append(toolArgs, expectedPath, actualPath)
	logging.Debug("running diff tool", "command", strings.Join(toolArgs, " "))

	err = a.Executor.ExecuteInteractive(cmd.Context(), toolArgs[0], toolArgs[1:]...)
	// diff-style tools exit 1 when the inputs differ.
	if err != nil && system.ExitCode(err) != 1 {
		return errors.DiffToolError(fmt.Sprintf("%s failed", toolArgs[0]), err)
	}
	return nil
}
