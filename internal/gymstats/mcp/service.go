package mcp

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/2beens/setsbymuscle/internal/gymstats/catalog"
	"github.com/2beens/setsbymuscle/internal/gymstats/ledger"
	"github.com/2beens/setsbymuscle/internal/gymstats/settings"
	"github.com/2beens/setsbymuscle/internal/gymstats/stats"
)

// ExerciseCatalog provides catalog lookups (for dependency injection and testing).
type ExerciseCatalog interface {
	Search(query string) []catalog.SearchResult
	Exercises() []catalog.Exercise
	MuscleGroups() []string
}

// volumeAnalyzer provides windowed totals and intensity (for dependency injection and testing).
type volumeAnalyzer interface {
	MuscleTotals(ctx context.Context, end time.Time, windowDays int) stats.MuscleTotals
	Intensity(ctx context.Context, end time.Time, windowDays int) stats.MuscleIntensity
}

type dayReader interface {
	GetDay(date time.Time) ledger.TrainingDay
}

type settingsReader interface {
	Get(ctx context.Context) settings.Settings
}

// contextService provides training context data (catalog, totals, intensity, days).
// Used by Handler for testability.
type contextService interface {
	CatalogOverview(ctx context.Context) string
	SearchExercises(ctx context.Context, query string) []catalog.SearchResult
	MuscleTotals(ctx context.Context, end time.Time, windowDays int) TotalsReport
	MuscleIntensity(ctx context.Context, end time.Time, windowDays int) IntensityReport
	TrainingDay(ctx context.Context, date time.Time) ledger.TrainingDay
}

// TotalsReport is the get_muscle_totals result.
type TotalsReport struct {
	End        string                  `json:"end"`
	WindowDays int                     `json:"window_days"`
	Targets    stats.Targets           `json:"targets"`
	Totals     stats.MuscleTotals      `json:"totals"`
	Statuses   map[string]stats.Status `json:"statuses"`
	Total      float64                 `json:"total"`
}

// IntensityReport is the get_muscle_intensity result.
type IntensityReport struct {
	End        string                          `json:"end"`
	WindowDays int                             `json:"window_days"`
	Intensity  stats.MuscleIntensity           `json:"intensity"`
	Levels     map[string]stats.IntensityLevel `json:"levels"`
}

// ContextService holds dependencies and implements the training context business logic.
type ContextService struct {
	catalog  ExerciseCatalog
	analyzer volumeAnalyzer
	days     dayReader
	settings settingsReader
}

// NewContextService builds a ContextService with the given dependencies.
func NewContextService(c ExerciseCatalog, analyzer volumeAnalyzer, days dayReader, settings settingsReader) *ContextService {
	return &ContextService{
		catalog:  c,
		analyzer: analyzer,
		days:     days,
		settings: settings,
	}
}

// CatalogOverview renders the catalog as markdown: every exercise with its
// per muscle allocation factors.
func (s *ContextService) CatalogOverview(_ context.Context) string {
	return formatCatalogOverview(s.catalog.MuscleGroups(), s.catalog.Exercises())
}

func formatCatalogOverview(muscles []string, exercises []catalog.Exercise) string {
	if len(exercises) == 0 {
		return "# Exercise Catalog\n\nThe catalog has no exercises.\n"
	}

	byCategory := make(map[catalog.Category][]catalog.Exercise)
	for _, ex := range exercises {
		byCategory[ex.Category] = append(byCategory[ex.Category], ex)
	}

	categoryOrder := make([]string, 0, len(byCategory))
	for c := range byCategory {
		categoryOrder = append(categoryOrder, string(c))
	}
	sort.Strings(categoryOrder)

	var b strings.Builder
	b.WriteString("# Exercise Catalog\n\n")
	b.WriteString("Muscle groups: ")
	b.WriteString(strings.Join(muscles, ", "))
	b.WriteString(".\n")
	b.WriteString("One set of an exercise credits each listed muscle with its factor (1.0 primary, 0.5 secondary).\n\n")

	for _, category := range categoryOrder {
		b.WriteString("## ")
		b.WriteString(category)
		b.WriteString("\n\n| ID | Name | Muscles |\n|----|------|---------|\n")
		for _, ex := range byCategory[catalog.Category(category)] {
			b.WriteString(fmt.Sprintf("| %s | %s | %s |\n", ex.ID, ex.DisplayName, formatFactors(ex.MuscleGroups)))
		}
		b.WriteString("\n")
	}

	return strings.TrimSuffix(b.String(), "\n\n") + "\n"
}

func formatFactors(factors map[string]float64) string {
	names := make([]string, 0, len(factors))
	for m := range factors {
		names = append(names, m)
	}
	// primary movers first
	sort.Slice(names, func(i, j int) bool {
		if factors[names[i]] != factors[names[j]] {
			return factors[names[i]] > factors[names[j]]
		}
		return names[i] < names[j]
	})

	parts := make([]string, len(names))
	for i, m := range names {
		parts[i] = fmt.Sprintf("%s %g", m, factors[m])
	}
	return strings.Join(parts, ", ")
}

// SearchExercises returns ranked catalog matches for the query.
func (s *ContextService) SearchExercises(_ context.Context, query string) []catalog.SearchResult {
	return s.catalog.Search(query)
}

// MuscleTotals returns set totals and statuses for the window ending at end.
// A non-positive windowDays means the stored window setting.
func (s *ContextService) MuscleTotals(ctx context.Context, end time.Time, windowDays int) TotalsReport {
	current := s.settings.Get(ctx)
	if windowDays <= 0 {
		windowDays = current.WindowDays
	}
	totals := s.analyzer.MuscleTotals(ctx, end, windowDays)
	return TotalsReport{
		End:        ledger.DateKey(end),
		WindowDays: windowDays,
		Targets:    current.Targets,
		Totals:     totals,
		Statuses:   totals.Statuses(current.Targets),
		Total:      totals.Total(),
	}
}

// MuscleIntensity returns normalized intensity scores for the window ending at end.
// A non-positive windowDays means the stored window setting.
func (s *ContextService) MuscleIntensity(ctx context.Context, end time.Time, windowDays int) IntensityReport {
	if windowDays <= 0 {
		windowDays = s.settings.Get(ctx).WindowDays
	}
	intensity := s.analyzer.Intensity(ctx, end, windowDays)
	return IntensityReport{
		End:        ledger.DateKey(end),
		WindowDays: windowDays,
		Intensity:  intensity,
		Levels:     intensity.Levels(),
	}
}

// TrainingDay returns the logged day, empty when nothing was logged.
func (s *ContextService) TrainingDay(_ context.Context, date time.Time) ledger.TrainingDay {
	return s.days.GetDay(date)
}
