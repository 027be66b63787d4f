// Package main is catalogctl, the exercise catalog data-management CLI.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
)

const defaultCatalogPath = "./data/exercises.json"

type app struct {
	catalogPath string
	now         func() time.Time
}

func (a *app) today() string {
	return a.now().UTC().Format("2006-01-02")
}

func newRootCmd() *cobra.Command {
	a := &app{now: time.Now}

	rootCmd := &cobra.Command{
		Use:   "catalogctl",
		Short: "Manage the exercise catalog",
		Long: `catalogctl validates, extends, exports and imports the exercise catalog
the setsbymuscle service loads on startup.

Examples:
  catalogctl validate
  catalogctl add --id cable_fly --name "cable fly" --display-name "Cable Fly" \
    --category push --muscles Chest=1,"Front Delts=0.5" --description "Fly on a cable station"
  catalogctl export --format markdown > catalog.md
  catalogctl import new-exercises.yaml --replace`,
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringVarP(&a.catalogPath, "catalog", "c", defaultCatalogPath, "path of the catalog document (.json, .yaml)")

	rootCmd.AddCommand(
		newValidateCmd(a),
		newAddCmd(a),
		newExportCmd(a),
		newImportCmd(a),
	)
	return rootCmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
