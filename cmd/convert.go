package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/firefly-engineering/chartlit/internal/errors"
	"github.com/firefly-engineering/chartlit/internal/logging"
	"github.com/firefly-engineering/chartlit/internal/render"
)

var convertCmd = &cobra.Command{
	Use:   "convert <file>",
	Short: "Normalize a chart options file",
	Long: `Parses, validates and normalizes a chart options file and writes its
canonical form: keys sorted, float options written with a decimal point,
functions re-indented, and the object passed to the configured wrapper.

Accepted inputs: .js, .mjs, .ts, .json, .jsonc and .json5.`,
	Args: cobra.ExactArgs(1),
	RunE: runConvert,
}

var (
	convertOutput string
	convertFormat string
	convertNoWrap bool
)

func init() {
	convertCmd.Flags().StringVarP(&convertOutput, "output", "o", "", "Write to file instead of stdout")
	convertCmd.Flags().StringVarP(&convertFormat, "format", "f", "js", "Output format (js or json)")
	convertCmd.Flags().BoolVar(&convertNoWrap, "no-wrap", false, "Write the bare object without the wrapper call")
	rootCmd.AddCommand(convertCmd)
}

func runConvert(cmd *cobra.Command, args []string) error {
	a := currentApp()
	file := args[0]

	out, err := a.Process(file)
	printIssues(file, out.Issues)
	if err != nil {
		return err
	}

	var data []byte
	switch convertFormat {
	case "js":
		st := a.Style()
		if convertNoWrap {
			st.Wrapper = ""
		}
		data = []byte(render.Render(out.Value, st))
	case "json":
		data, err = render.RenderJSON(out.Value, a.Config.Render.Indent)
		if err != nil {
			return errors.Wrap(errors.ExitGeneralError, "failed to encode JSON", err)
		}
	default:
		return errors.UsageError(fmt.Sprintf("unknown format %q (want js or json)", convertFormat))
	}

	if convertOutput == "" || convertOutput == "-" {
		_, err := cmd.OutOrStdout().Write(data)
		return err
	}

	if err := a.FS.WriteFile(convertOutput, data, 0644); err != nil {
		return errors.Wrap(errors.ExitGeneralError, fmt.Sprintf("failed to write %s", convertOutput), err)
	}
	logging.Debug("wrote output", "path", convertOutput, "bytes", len(data))
	logSuccess("Wrote %s", convertOutput)
	return nil
}
