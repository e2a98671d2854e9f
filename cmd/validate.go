package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/firefly-engineering/chartlit/internal/config"
	"github.com/firefly-engineering/chartlit/internal/errors"
	"github.com/firefly-engineering/chartlit/internal/schema"
)

var validateCmd = &cobra.Command{
	Use:   "validate <file>...",
	Short: "Validate chart options files",
	Long: `Parses each file and checks it against the option schema.

Unknown options are warnings unless --strict is given. With --json-schema
the normalized value is also checked against a JSON Schema document.

Exit status is 2 when a file does not parse and 3 when it does not validate.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runValidate,
}

var (
	validateStrict     bool
	validateJSONSchema string
)

func init() {
	validateCmd.Flags().BoolVar(&validateStrict, "strict", false, "Treat unknown options as errors")
	validateCmd.Flags().StringVar(&validateJSONSchema, "json-schema", "", "Additional JSON Schema to validate against")
	rootCmd.AddCommand(validateCmd)
}

// fileReport is the JSON form of a validate result.
type fileReport struct {
	Path   string         `json:"path"`
	Valid  bool           `json:"valid"`
	Error  string         `json:"error,omitempty"`
	Issues []schema.Issue `json:"issues,omitempty"`
}

func runValidate(cmd *cobra.Command, args []string) error {
	a := currentApp()
	if validateStrict || validateJSONSchema != "" {
		a = appWith(func(cfg *config.Config) {
			if validateStrict {
				cfg.Validation.Strict = true
			}
			if validateJSONSchema != "" {
				cfg.Validation.JSONSchema = validateJSONSchema
			}
		})
	}

	var (
		reports  []fileReport
		firstErr error
		failed   int
	)
	for _, file := range args {
		out, err := a.Process(file)
		rep := fileReport{Path: file, Valid: err == nil, Issues: out.Issues}

		if err != nil {
			failed++
			rep.Error = err.Error()
			if firstErr == nil {
				firstErr = err
			}
		}
		reports = append(reports, rep)

		if jsonOutput {
			continue
		}
		printIssues(file, out.Issues)
		if err != nil {
			logError("%v", err)
		} else {
			logSuccess("%s is valid", file)
		}
	}

	if jsonOutput {
		if err := writeJSON(cmd.OutOrStdout(), reports); err != nil {
			return err
		}
	}

	switch {
	case failed == 0:
		return nil
	case len(args) == 1:
		return firstErr
	default:
		return errors.Wrap(errors.GetExitCode(firstErr), fmt.Sprintf("%d of %d files failed", failed, len(args)), firstErr)
	}
}
