package catalog

import (
	"errors"
	"fmt"
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

var ErrConflicts = errors.New("imported exercises conflict with existing ones")

// AddExercise appends a new exercise to the document, keeping exercises sorted by
// display name. The document is left untouched if the result would be invalid.
func AddExercise(doc *Document, ex Exercise, today string) error {
	known := make(map[string]bool, len(doc.MuscleGroups))
	for _, m := range doc.MuscleGroups {
		known[m] = true
	}
	if err := ValidateExercise(ex, known); err != nil {
		return err
	}
	for _, existing := range doc.Exercises {
		if existing.ID == ex.ID {
			return fmt.Errorf("exercise with id %q: %w", ex.ID, ErrDuplicateID)
		}
		if existing.Name == ex.Name {
			return fmt.Errorf("exercise with name %q: %w", ex.Name, ErrDuplicateName)
		}
	}

	updated := *doc
	updated.Exercises = append(append([]Exercise(nil), doc.Exercises...), ex)
	SortExercises(updated.Exercises)
	updated.LastUpdated = today
	if err := ValidateWithDefaults(&updated); err != nil {
		return err
	}

	*doc = updated
	return nil
}

type Conflict struct {
	ID       string `json:"id"`
	Existing string `json:"existing"`
	Imported string `json:"imported"`
}

type MergeReport struct {
	Conflicts []Conflict `json:"conflicts"`
	Added     []string   `json:"added"`
}

// Merge folds the incoming exercises into existing, matching by id. Conflicting
// exercises replace the existing ones only when replace is set, otherwise
// ErrConflicts is returned along with the report. The merged document is validated.
func Merge(existing, incoming *Document, replace bool, today string) (*Document, MergeReport, error) {
	report := MergeReport{}
	if incoming == nil || incoming.Exercises == nil {
		return nil, report, ErrMissingExercises
	}

	index := make(map[string]int, len(existing.Exercises))
	for i, ex := range existing.Exercises {
		index[ex.ID] = i
	}

	merged := *existing
	merged.Exercises = append([]Exercise(nil), existing.Exercises...)
	for _, ex := range incoming.Exercises {
		if i, ok := index[ex.ID]; ok {
			report.Conflicts = append(report.Conflicts, Conflict{
				ID:       ex.ID,
				Existing: existing.Exercises[i].DisplayName,
				Imported: ex.DisplayName,
			})
			merged.Exercises[i] = ex
			continue
		}
		report.Added = append(report.Added, ex.ID)
		merged.Exercises = append(merged.Exercises, ex)
	}

	if len(report.Conflicts) > 0 && !replace {
		return nil, report, ErrConflicts
	}

	SortExercises(merged.Exercises)
	merged.LastUpdated = today
	if err := ValidateWithDefaults(&merged); err != nil {
		return nil, report, fmt.Errorf("merged catalog invalid: %w", err)
	}

	return &merged, report, nil
}

// SortExercises orders exercises by display name using English collation.
func SortExercises(exercises []Exercise) {
	col := collate.New(language.English, collate.IgnoreCase)
	sort.SliceStable(exercises, func(i, j int) bool {
		return col.CompareString(exercises[i].DisplayName, exercises[j].DisplayName) < 0
	})
}
