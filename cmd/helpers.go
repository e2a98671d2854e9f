package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"

	"github.com/firefly-engineering/chartlit/internal/app"
	"github.com/firefly-engineering/chartlit/internal/config"
	"github.com/firefly-engineering/chartlit/internal/corpus"
	"github.com/firefly-engineering/chartlit/internal/schema"
)

// currentApp returns the application context set up by the root command.
func currentApp() *app.App {
	return app.Default
}

// appWith returns a copy of the default App whose configuration has been
// adjusted by override. The schema, file system and executor are shared.
func appWith(override func(*config.Config)) *app.App {
	base := currentApp()
	cfg := *base.Config
	override(&cfg)
	return app.New(
		app.WithConfig(&cfg),
		app.WithSchema(base.Schema),
		app.WithFileSystem(base.FS),
		app.WithExecutor(base.Executor),
	)
}

// corpusRoot returns the directory argument, or the configured root.
func corpusRoot(a *app.App, args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return a.Config.Corpus.Root
}

// printIssues reports validation findings for file to the user.
func printIssues(file string, issues []schema.Issue) {
	for _, issue := range issues {
		if issue.Severity == schema.SeverityError {
			logError("%s: %s", filepath.Base(file), issue)
		} else {
			logWarning("%s: %s", filepath.Base(file), issue)
		}
	}
}

// printReport writes a corpus report, as JSON when --json is set.
func printReport(w io.Writer, report *corpus.Report) error {
	if jsonOutput {
		return writeJSON(w, report)
	}

	for _, res := range report.Results {
		icon := "✓"
		if !res.Passed {
			icon = "✗"
		}
		fmt.Fprintf(w, "%s %s (%s)", icon, res.Fixture.Name, res.Fixture.Kind)
		if res.Message != "" {
			fmt.Fprintf(w, ": %s", res.Message)
		}
		fmt.Fprintln(w)
		for _, issue := range res.Issues {
			if issue.Severity == schema.SeverityError {
				fmt.Fprintf(w, "    %s\n", issue)
			}
		}
		if res.Diff != "" {
			fmt.Fprint(w, res.Diff)
		}
	}
	fmt.Fprintf(w, "\n%d passed, %d failed\n", report.Passed, report.Failed)
	return nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
