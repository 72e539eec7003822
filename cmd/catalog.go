package cmd

import (
	"errors"
	"fmt"

	"github.com/abhisek/parley/internal/catalog"
	"github.com/spf13/cobra"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Inspect practice content",
}

var catalogValidateCmd = &cobra.Command{
	Use:   "validate [dir]",
	Short: "Validate catalog YAML files",
	Long:  "Validate every YAML file in dir against the catalog schema. Without dir the built-in catalog is checked.",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var (
			c   *catalog.Catalog
			err error
		)
		if len(args) == 1 {
			c, err = catalog.LoadDir(args[0])
		} else {
			c, err = catalog.Default()
		}
		if err != nil {
			for _, e := range validationErrors(err) {
				fmt.Fprintln(cmd.ErrOrStderr(), "✗", e)
			}
			return errors.New("catalog is invalid")
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "✓ catalog is valid")
		fmt.Fprintf(out, "  grammar lessons:      %d\n", len(c.Grammar()))
		fmt.Fprintf(out, "  speaking activities:  %d\n", len(c.Speaking()))
		fmt.Fprintf(out, "  typing lessons:       %d\n", len(c.Typing()))
		fmt.Fprintf(out, "  vocabulary categories: %d\n", len(c.Vocabulary()))
		return nil
	},
}

func init() {
	catalogCmd.AddCommand(catalogValidateCmd)
}

// validationErrors flattens a joined load error into its parts.
func validationErrors(err error) []error {
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		return joined.Unwrap()
	}
	return []error{err}
}
