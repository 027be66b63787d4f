package main

import (
	"errors"
	"fmt"

	"github.com/2beens/setsbymuscle/internal/gymstats/catalog"

	"github.com/spf13/cobra"
	"go.uber.org/multierr"
)

var errInvalidCatalog = errors.New("catalog is invalid")

func newValidateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check the catalog document against every catalog rule",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			doc, err := catalog.ReadDocument(a.catalogPath)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if err := catalog.ValidateWithDefaults(doc); err != nil {
				violations := multierr.Errors(err)
				for _, v := range violations {
					fmt.Fprintf(out, "  - %s\n", v)
				}
				return fmt.Errorf("%w: %d violation(s)", errInvalidCatalog, len(violations))
			}

			for _, m := range catalog.UnusedMuscleGroups(doc) {
				fmt.Fprintf(out, "warning: no exercise targets muscle group %q\n", m)
			}
			fmt.Fprintf(out, "catalog v%s is valid: %d exercises\n", doc.Version, len(doc.Exercises))
			return nil
		},
	}
}
