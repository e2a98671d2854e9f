package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/firefly-engineering/chartlit/internal/errors"
	"github.com/firefly-engineering/chartlit/internal/literal"
)

var schemaCmd = &cobra.Command{
	Use:   "schema [path]",
	Short: "Describe an option in the schema",
	Long: `Prints the type accepted at an option path, e.g. "xAxis.min",
"series[].data" or "colors[0].stops". Without a path the top-level
options are listed.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSchema,
}

func init() {
	rootCmd.AddCommand(schemaCmd)
}

func runSchema(cmd *cobra.Command, args []string) error {
	a := currentApp()
	if a.Schema == nil {
		return errors.New(errors.ExitGeneralError, "no option schema loaded")
	}

	var (
		path literal.Path
		err  error
	)
	if len(args) > 0 {
		path, err = literal.ParsePath(args[0])
		if err != nil {
			return errors.UsageError(fmt.Sprintf("invalid option path %q: %v", args[0], err))
		}
	}

	node, err := a.Schema.TypeAt(path)
	if err != nil {
		return errors.UsageError(err.Error())
	}

	out := cmd.OutOrStdout()
	name := "(root)"
	if len(args) > 0 {
		name = args[0]
	}
	fmt.Fprintf(out, "%s: %s\n", name, a.Schema.Describe(node))
	if node != nil && node.Description != "" {
		fmt.Fprintf(out, "  %s\n", node.Description)
	}
	if names := a.Schema.PropertyNames(node); len(names) > 0 {
		fmt.Fprintf(out, "\nOptions:\n  %s\n", strings.Join(names, "\n  "))
	}
	return nil
}
