// Package stats aggregates ledger credit into per-muscle volume figures.
package stats

import (
	"time"

	"github.com/2beens/setsbymuscle/internal/gymstats/ledger"
)

// MuscleTotals maps every known muscle group to its credited sets in a window.
type MuscleTotals map[string]float64

func (t MuscleTotals) Total() float64 {
	sum := 0.0
	for _, v := range t {
		sum += v
	}
	return sum
}

// Statuses classifies every muscle of the totals against the targets.
func (t MuscleTotals) Statuses(targets Targets) map[string]Status {
	statuses := make(map[string]Status, len(t))
	for m, v := range t {
		statuses[m] = targets.Classify(v)
	}
	return statuses
}

// Window returns the first and last calendar day of a window of windowDays
// days ending on end, both inclusive. For windowDays <= 0 from is after to.
func Window(end time.Time, windowDays int) (from, to time.Time) {
	return end.AddDate(0, 0, -windowDays+1), end
}

// Totals sums the credit of all entries on days inside the window. Credit for
// muscles not in muscles is ignored, and every muscle in muscles is present.
func Totals(days []ledger.TrainingDay, muscles []string, end time.Time, windowDays int) MuscleTotals {
	totals := make(MuscleTotals, len(muscles))
	known := make(map[string]bool, len(muscles))
	for _, m := range muscles {
		totals[m] = 0
		known[m] = true
	}

	from, to := Window(end, windowDays)
	fromKey, toKey := ledger.DateKey(from), ledger.DateKey(to)
	for _, day := range days {
		if day.ID < fromKey || day.ID > toKey {
			continue
		}
		for _, e := range day.Entries {
			e.Credit().AddTo(totals, known)
		}
	}
	return totals
}

type DayTotals struct {
	Date   string       `json:"date"`
	Totals MuscleTotals `json:"totals"`
}

// Daily breaks the window down per calendar day, oldest first. Days without
// a training record are included with zero totals.
func Daily(days []ledger.TrainingDay, muscles []string, end time.Time, windowDays int) []DayTotals {
	if windowDays <= 0 {
		return []DayTotals{}
	}

	byKey := make(map[string]ledger.TrainingDay, len(days))
	for _, d := range days {
		byKey[d.ID] = d
	}

	from, _ := Window(end, windowDays)
	daily := make([]DayTotals, 0, windowDays)
	for i := 0; i < windowDays; i++ {
		date := from.AddDate(0, 0, i)
		key := ledger.DateKey(date)

		var dayData []ledger.TrainingDay
		if d, ok := byKey[key]; ok {
			dayData = []ledger.TrainingDay{d}
		}
		daily = append(daily, DayTotals{
			Date:   key,
			Totals: Totals(dayData, muscles, date, 1),
		})
	}
	return daily
}
