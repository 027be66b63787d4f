package main

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/2beens/setsbymuscle/internal/gymstats/catalog"

	"github.com/spf13/cobra"
)

func newExportCmd(a *app) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the catalog to stdout as json, csv or markdown",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			doc, err := catalog.ReadDocument(a.catalogPath)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			switch strings.ToLower(format) {
			case "json":
				return exportJSON(out, doc)
			case "csv":
				return exportCSV(out, doc)
			case "markdown", "md":
				return exportMarkdown(out, doc)
			default:
				return fmt.Errorf("unknown export format %q: use json, csv or markdown", format)
			}
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "json", "json | csv | markdown")
	return cmd
}

func exportJSON(w io.Writer, doc *catalog.Document) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}

var csvHeader = []string{"id", "name", "displayName", "category", "muscleGroups", "aliases", "defaultSets", "defaultReps", "description"}

func exportCSV(w io.Writer, doc *catalog.Document) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, ex := range doc.Exercises {
		record := []string{
			ex.ID,
			ex.Name,
			ex.DisplayName,
			string(ex.Category),
			formatMuscles(ex.MuscleGroups, ";"),
			strings.Join(ex.Aliases, ";"),
			optionalInt(ex.DefaultSets),
			optionalInt(ex.DefaultReps),
			ex.Description,
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func exportMarkdown(w io.Writer, doc *catalog.Document) error {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# Exercise Catalog v%s\n\n", doc.Version)
	fmt.Fprintf(&sb, "Last updated: %s. %d exercises.\n\n", doc.LastUpdated, len(doc.Exercises))
	sb.WriteString("| Exercise | Category | Muscle groups | Aliases |\n")
	sb.WriteString("| --- | --- | --- | --- |\n")
	for _, ex := range doc.Exercises {
		fmt.Fprintf(&sb, "| %s | %s | %s | %s |\n",
			ex.DisplayName,
			ex.Category,
			formatMuscles(ex.MuscleGroups, ","),
			strings.Join(ex.Aliases, ", "),
		)
	}
	_, err := io.WriteString(w, sb.String())
	return err
}

// formatMuscles lists primary movers first, then by name.
func formatMuscles(muscles map[string]float64, sep string) string {
	names := make([]string, 0, len(muscles))
	for m := range muscles {
		names = append(names, m)
	}
	sort.Slice(names, func(i, j int) bool {
		if muscles[names[i]] != muscles[names[j]] {
			return muscles[names[i]] > muscles[names[j]]
		}
		return names[i] < names[j]
	})
	parts := make([]string, len(names))
	for i, m := range names {
		parts[i] = m + "=" + strconv.FormatFloat(muscles[m], 'f', -1, 64)
	}
	return strings.Join(parts, sep)
}

func optionalInt(v int) string {
	if v == 0 {
		return ""
	}
	return strconv.Itoa(v)
}
