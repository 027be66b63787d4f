package catalog

import (
	"errors"
	"fmt"
	"regexp"
	"sort"

	"go.uber.org/multierr"
)

const (
	minDescriptionLen = 10
	minTarget         = 1
	maxTarget         = 50

	// MinWindowDays and MaxWindowDays bound every rolling window length.
	MinWindowDays = 1
	MaxWindowDays = 365
)

var versionRegex = regexp.MustCompile(`^\d+\.\d+\.\d+$`)

var (
	ErrDuplicateID   = errors.New("duplicate exercise id")
	ErrDuplicateName = errors.New("duplicate exercise name")
	ErrUnknownMuscle = errors.New("unknown muscle group")
)

// ValidateWithDefaults validates doc the way it is loaded: missing optional
// sections are filled with their defaults first.
func ValidateWithDefaults(doc *Document) error {
	if doc == nil {
		return errors.New("nil catalog document")
	}
	return Validate(doc.withDefaults())
}

// Validate checks every catalog invariant and returns all violations combined.
func Validate(doc *Document) error {
	if doc == nil {
		return errors.New("nil catalog document")
	}

	var errs error
	if !versionRegex.MatchString(doc.Version) {
		errs = multierr.Append(errs, fmt.Errorf("version [%s]: must be in x.y.z format", doc.Version))
	}
	if doc.LastUpdated == "" {
		errs = multierr.Append(errs, errors.New("lastUpdated: required"))
	}

	errs = multierr.Append(errs, validateMuscleGroups(doc.MuscleGroups))
	errs = multierr.Append(errs, validateCategories(doc.Categories))
	errs = multierr.Append(errs, validateTargets(doc.DefaultTargets))
	errs = multierr.Append(errs, validateWindowOptions(doc.WindowOptions))

	known := make(map[string]bool, len(doc.MuscleGroups))
	for _, m := range doc.MuscleGroups {
		known[m] = true
	}

	ids := make(map[string]bool, len(doc.Exercises))
	names := make(map[string]bool, len(doc.Exercises))
	for i, ex := range doc.Exercises {
		errs = multierr.Append(errs, ValidateExercise(ex, known))
		if ids[ex.ID] {
			errs = multierr.Append(errs, fmt.Errorf("exercises[%d] %q: %w", i, ex.ID, ErrDuplicateID))
		}
		ids[ex.ID] = true
		if names[ex.Name] {
			errs = multierr.Append(errs, fmt.Errorf("exercises[%d] %q: %w", i, ex.Name, ErrDuplicateName))
		}
		names[ex.Name] = true
	}

	return errs
}

// ValidateExercise checks a single exercise. If known is empty, the canonical
// muscle group set is used.
func ValidateExercise(ex Exercise, known map[string]bool) error {
	var errs error
	prefix := fmt.Sprintf("exercise [%s]", ex.ID)

	if ex.ID == "" {
		errs = multierr.Append(errs, fmt.Errorf("%s: id required", prefix))
	}
	if ex.Name == "" {
		errs = multierr.Append(errs, fmt.Errorf("%s: name required", prefix))
	}
	if ex.DisplayName == "" {
		errs = multierr.Append(errs, fmt.Errorf("%s: displayName required", prefix))
	}
	if len(ex.Aliases) == 0 {
		errs = multierr.Append(errs, fmt.Errorf("%s: at least one alias required", prefix))
	}
	if !ex.Category.IsValid() {
		errs = multierr.Append(errs, fmt.Errorf("%s: invalid category [%s]", prefix, ex.Category))
	}
	if len(ex.Description) < minDescriptionLen {
		errs = multierr.Append(errs, fmt.Errorf("%s: description must have at least %d characters", prefix, minDescriptionLen))
	}
	if len(ex.MuscleGroups) == 0 {
		errs = multierr.Append(errs, fmt.Errorf("%s: at least one muscle group must be targeted", prefix))
	}

	for _, muscle := range sortedKeys(ex.MuscleGroups) {
		factor := ex.MuscleGroups[muscle]
		if factor < MinAllocationFactor || factor > MaxAllocationFactor {
			errs = multierr.Append(errs, fmt.Errorf("%s: allocation for %s must be between %.0f and %.0f, got %v",
				prefix, muscle, MinAllocationFactor, MaxAllocationFactor, factor))
		}
		isKnown := IsMuscleGroup(muscle)
		if len(known) > 0 {
			isKnown = known[muscle]
		}
		if !isKnown {
			errs = multierr.Append(errs, fmt.Errorf("%s: %w: %s", prefix, ErrUnknownMuscle, muscle))
		}
	}

	return errs
}

func validateMuscleGroups(groups []string) error {
	var errs error
	if len(groups) != len(MuscleGroups) {
		errs = multierr.Append(errs, fmt.Errorf("muscleGroups: expected exactly %d entries, got %d", len(MuscleGroups), len(groups)))
	}
	seen := make(map[string]bool, len(groups))
	for _, m := range groups {
		if !IsMuscleGroup(m) {
			errs = multierr.Append(errs, fmt.Errorf("muscleGroups: %w: %s", ErrUnknownMuscle, m))
		}
		if seen[m] {
			errs = multierr.Append(errs, fmt.Errorf("muscleGroups: duplicate entry %s", m))
		}
		seen[m] = true
	}
	return errs
}

func validateCategories(categories map[Category]string) error {
	var errs error
	for _, c := range Categories {
		if _, ok := categories[c]; !ok {
			errs = multierr.Append(errs, fmt.Errorf("categories: missing %s", c))
		}
	}
	return errs
}

func validateTargets(t *Targets) error {
	if t == nil {
		return errors.New("defaultTargets: required")
	}
	var errs error
	for name, v := range map[string]float64{"min": t.Min, "max": t.Max} {
		if v < minTarget || v > maxTarget {
			errs = multierr.Append(errs, fmt.Errorf("defaultTargets.%s: must be between %d and %d", name, minTarget, maxTarget))
		}
	}
	if t.Min >= t.Max {
		errs = multierr.Append(errs, errors.New("defaultTargets: min must be less than max"))
	}
	return errs
}

func validateWindowOptions(options []int) error {
	if len(options) == 0 {
		return errors.New("windowOptions: at least one option required")
	}
	for _, w := range options {
		if w < MinWindowDays || w > MaxWindowDays {
			return fmt.Errorf("windowOptions: must be between %d and %d days, got %d", MinWindowDays, MaxWindowDays, w)
		}
	}
	return nil
}

// UnusedMuscleGroups lists the document's muscle groups no exercise targets.
// Unused groups are not an error.
func UnusedMuscleGroups(doc *Document) []string {
	used := make(map[string]bool)
	for _, ex := range doc.Exercises {
		for m := range ex.MuscleGroups {
			used[m] = true
		}
	}
	var unused []string
	for _, m := range doc.MuscleGroups {
		if !used[m] {
			unused = append(unused, m)
		}
	}
	return unused
}

func sortedKeys(m map[string]float64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
