package main

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/2beens/setsbymuscle/internal/gymstats/catalog"

	"github.com/spf13/cobra"
)

type addFlags struct {
	id          string
	name        string
	displayName string
	category    string
	muscles     string
	aliases     []string
	description string
	sets        int
	reps        int
}

func newAddCmd(a *app) *cobra.Command {
	f := &addFlags{}
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add an exercise to the catalog",
		Long: `Add an exercise to the catalog. Fields not given as flags are asked for
interactively. --muscles takes Muscle=factor pairs, e.g. Chest=1,Triceps=0.5.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			doc, err := catalog.ReadDocument(a.catalogPath)
			if err != nil {
				return err
			}

			if err := f.prompt(cmd.InOrStdin(), cmd.OutOrStdout()); err != nil {
				return err
			}
			ex, err := f.exercise()
			if err != nil {
				return err
			}

			if err := catalog.AddExercise(doc, ex, a.today()); err != nil {
				return fmt.Errorf("add exercise %q: %w", ex.ID, err)
			}
			if err := catalog.WriteDocument(a.catalogPath, doc); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "added %s (%s), catalog now has %d exercises\n", ex.ID, ex.DisplayName, len(doc.Exercises))
			return nil
		},
	}

	cmd.Flags().StringVar(&f.id, "id", "", "exercise id, e.g. cable_fly")
	cmd.Flags().StringVar(&f.name, "name", "", "lowercase search name")
	cmd.Flags().StringVar(&f.displayName, "display-name", "", "name shown to users")
	cmd.Flags().StringVar(&f.category, "category", "", "push | pull | legs | core")
	cmd.Flags().StringVar(&f.muscles, "muscles", "", "muscle allocation, e.g. Chest=1,Triceps=0.5")
	cmd.Flags().StringSliceVar(&f.aliases, "aliases", nil, "alternative names")
	cmd.Flags().StringVar(&f.description, "description", "", "short description")
	cmd.Flags().IntVar(&f.sets, "sets", 0, "default sets")
	cmd.Flags().IntVar(&f.reps, "reps", 0, "default reps")
	return cmd
}

// prompt asks for every required field that was not set by a flag.
func (f *addFlags) prompt(in io.Reader, out io.Writer) error {
	var aliases string
	if len(f.aliases) > 0 {
		aliases = strings.Join(f.aliases, ",")
	}

	fields := []struct {
		label string
		value *string
	}{
		{"id", &f.id},
		{"name", &f.name},
		{"display name", &f.displayName},
		{"category (push, pull, legs, core)", &f.category},
		{"muscles (Muscle=factor,...)", &f.muscles},
		{"aliases (comma separated)", &aliases},
		{"description", &f.description},
	}

	var reader *bufio.Reader
	for _, field := range fields {
		if *field.value != "" {
			continue
		}
		if reader == nil {
			reader = bufio.NewReader(in)
		}
		fmt.Fprintf(out, "%s: ", field.label)
		line, err := reader.ReadString('\n')
		if err != nil && (err != io.EOF || line == "") {
			return fmt.Errorf("read %s: %w", field.label, err)
		}
		*field.value = strings.TrimSpace(line)
	}

	f.aliases = f.aliases[:0]
	for _, alias := range strings.Split(aliases, ",") {
		if alias = strings.TrimSpace(alias); alias != "" {
			f.aliases = append(f.aliases, alias)
		}
	}
	return nil
}

func (f *addFlags) exercise() (catalog.Exercise, error) {
	muscles, err := parseMuscles(f.muscles)
	if err != nil {
		return catalog.Exercise{}, err
	}
	return catalog.Exercise{
		ID:           f.id,
		Name:         f.name,
		DisplayName:  f.displayName,
		Aliases:      f.aliases,
		MuscleGroups: muscles,
		Category:     catalog.Category(strings.ToLower(f.category)),
		Description:  f.description,
		DefaultSets:  f.sets,
		DefaultReps:  f.reps,
	}, nil
}

// parseMuscles reads "Chest=1,Front Delts=0.5". A muscle without a factor is a primary mover.
func parseMuscles(raw string) (map[string]float64, error) {
	muscles := make(map[string]float64)
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		name, factorRaw, hasFactor := strings.Cut(part, "=")
		name = strings.TrimSpace(name)
		factor := 1.0
		if hasFactor {
			var err error
			factor, err = strconv.ParseFloat(strings.TrimSpace(factorRaw), 64)
			if err != nil {
				return nil, fmt.Errorf("muscle %q: invalid factor %q", name, factorRaw)
			}
		}
		muscles[name] = factor
	}
	if len(muscles) == 0 {
		return nil, fmt.Errorf("at least one muscle group is required")
	}
	return muscles, nil
}
