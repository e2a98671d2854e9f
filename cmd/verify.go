package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/firefly-engineering/chartlit/internal/app"
	"github.com/firefly-engineering/chartlit/internal/config"
	"github.com/firefly-engineering/chartlit/internal/corpus"
	"github.com/firefly-engineering/chartlit/internal/errors"
	"github.com/firefly-engineering/chartlit/internal/logging"
	"github.com/firefly-engineering/chartlit/internal/watch"
)

var verifyCmd = &cobra.Command{
	Use:   "verify [dir]",
	Short: "Check a fixture corpus",
	Long: `Discovers the fixtures under dir (default: the configured corpus root)
and checks each against the expectation its name encodes.

Pair outputs are compared semantically by default; --compare text compares
the rendered text instead. With --watch the corpus is re-checked whenever
a fixture changes, until interrupted.

Exit status is 4 when any fixture fails.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runVerify,
}

var (
	verifyWatch   bool
	verifyCompare string
)

func init() {
	verifyCmd.Flags().BoolVarP(&verifyWatch, "watch", "w", false, "Re-run when fixtures change")
	verifyCmd.Flags().StringVar(&verifyCompare, "compare", "", "Pair comparison mode (semantic or text)")
	rootCmd.AddCommand(verifyCmd)
}

func runVerify(cmd *cobra.Command, args []string) error {
	a := currentApp()
	if verifyCompare != "" {
		if verifyCompare != config.CompareSemantic && verifyCompare != config.CompareText {
			return errors.UsageError(fmt.Sprintf("unknown compare mode %q (want semantic or text)", verifyCompare))
		}
		a = appWith(func(cfg *config.Config) { cfg.Corpus.Compare = verifyCompare })
	}
	root := corpusRoot(a, args)

	if !verifyWatch {
		report, err := runCorpus(cmd.Context(), a, root)
		if err != nil {
			return err
		}
		if err := printReport(cmd.OutOrStdout(), report); err != nil {
			return err
		}
		return report.Err()
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return watchCorpus(ctx, a, root, cmd.OutOrStdout())
}

// runCorpus discovers and checks the fixtures under root.
func runCorpus(ctx context.Context, a *app.App, root string) (*corpus.Report, error) {
	fixtures, err := corpus.Discover(a.FS, root)
	if err != nil {
		return nil, err
	}
	logging.Debug("discovered fixtures", "root", root, "count", len(fixtures))
	return corpus.NewRunner(a).Run(ctx, fixtures)
}

// watchCorpus checks the corpus once, then again after every change, until
// ctx is cancelled. Failures are reported but do not stop the watch.
func watchCorpus(ctx context.Context, a *app.App, root string, w io.Writer) error {
	debounce, err := a.Config.Corpus.DebounceDuration()
	if err != nil {
		return errors.ConfigError("invalid debounce", err)
	}

	check := func(ctx context.Context) {
		report, err := runCorpus(ctx, a, root)
		if err != nil {
			if ctx.Err() == nil {
				logError("%v", err)
			}
			return
		}
		if err := printReport(w, report); err != nil {
			logError("%v", err)
		}
	}

	check(ctx)

	watcher, err := watch.New(root, debounce, func(ctx context.Context, changed []string) {
		logInfo("Changed: %s", strings.Join(changed, ", "))
		check(ctx)
	})
	if err != nil {
		return errors.Wrap(errors.ExitGeneralError, "failed to watch corpus", err)
	}
	if err := watcher.Start(ctx); err != nil {
		return errors.Wrap(errors.ExitGeneralError, "failed to watch corpus", err)
	}
	logInfo("Watching %s (Ctrl-C to stop)", root)

	<-watcher.Done()
	return nil
}
