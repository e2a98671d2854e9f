package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/firefly-engineering/chartlit/internal/corpus"
)

var listCmd = &cobra.Command{
	Use:   "list [dir]",
	Short: "List corpus fixtures",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	a := currentApp()
	root := corpusRoot(a, args)

	fixtures, err := corpus.Discover(a.FS, root)
	if err != nil {
		return err
	}

	if jsonOutput {
		return writeJSON(cmd.OutOrStdout(), fixtures)
	}

	if len(fixtures) == 0 {
		logInfo("No fixtures found in %s", root)
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tKIND\tEXPECTED")
	fmt.Fprintln(w, "----\t----\t--------")

	for _, f := range fixtures {
		expected := f.Expected
		if expected == "" {
			expected = "-"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\n", f.Name, f.Kind, expected)
	}

	return w.Flush()
}
