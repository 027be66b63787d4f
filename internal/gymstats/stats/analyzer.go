package stats

import (
	"context"
	"time"

	"github.com/2beens/setsbymuscle/internal/gymstats/ledger"
	"github.com/2beens/setsbymuscle/internal/telemetry/tracing"

	"go.opentelemetry.io/otel/attribute"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=stats_test

type daysSource interface {
	Days(from, to time.Time) []ledger.TrainingDay
}

type Analyzer struct {
	days    daysSource
	muscles []string
}

// NewAnalyzer reads training days from the source; muscles is the full set
// of muscle groups every totals result carries.
func NewAnalyzer(days daysSource, muscles []string) *Analyzer {
	return &Analyzer{
		days:    days,
		muscles: append([]string(nil), muscles...),
	}
}

// MuscleTotals sums credit over [end-windowDays+1, end]. A windowDays of zero
// or less is an empty window, so every muscle comes back as 0.
func (a *Analyzer) MuscleTotals(ctx context.Context, end time.Time, windowDays int) MuscleTotals {
	_, span := tracing.GlobalTracer.Start(ctx, "analyzer.stats.muscleTotals")
	defer span.End()
	span.SetAttributes(
		attribute.String("end", ledger.DateKey(end)),
		attribute.Int("window", windowDays),
	)

	return Totals(a.windowDays(end, windowDays), a.muscles, end, windowDays)
}

func (a *Analyzer) DailyTotals(ctx context.Context, end time.Time, windowDays int) []DayTotals {
	_, span := tracing.GlobalTracer.Start(ctx, "analyzer.stats.dailyTotals")
	defer span.End()

	return Daily(a.windowDays(end, windowDays), a.muscles, end, windowDays)
}

func (a *Analyzer) Intensity(ctx context.Context, end time.Time, windowDays int) MuscleIntensity {
	_, span := tracing.GlobalTracer.Start(ctx, "analyzer.stats.intensity")
	defer span.End()

	return Intensity(a.windowDays(end, windowDays), end, windowDays)
}

func (a *Analyzer) windowDays(end time.Time, windowDays int) []ledger.TrainingDay {
	if windowDays <= 0 {
		return nil
	}
	from, to := Window(end, windowDays)
	return a.days.Days(from, to)
}
