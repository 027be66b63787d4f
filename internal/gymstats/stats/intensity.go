package stats

import (
	"time"

	"github.com/2beens/setsbymuscle/internal/gymstats/ledger"
)

const (
	setsWeight   = 0.7
	weightWeight = 0.3
)

// MuscleIntensity holds a score in [0,1] for each muscle trained in the window.
type MuscleIntensity map[string]float64

func (mi MuscleIntensity) Levels() map[string]IntensityLevel {
	levels := make(map[string]IntensityLevel, len(mi))
	for m, score := range mi {
		levels[m] = LevelOf(score)
	}
	return levels
}

type muscleLoad struct {
	sets      float64
	maxWeight float64
}

// Intensity scores each muscle relative to the hottest one in the window:
// 0.7 × sets/maxSets + 0.3 × maxWeight/maxWeightOverall, with both maxima
// floored at 1. Only exercise entries count. The window uses the same
// calendar date keys as Totals. No data gives an empty map.
func Intensity(days []ledger.TrainingDay, end time.Time, windowDays int) MuscleIntensity {
	from, to := Window(end, windowDays)
	fromKey, toKey := ledger.DateKey(from), ledger.DateKey(to)

	loads := make(map[string]*muscleLoad)
	for _, day := range days {
		if day.ID < fromKey || day.ID > toKey {
			continue
		}
		for _, e := range day.Entries {
			ex, ok := e.(*ledger.ExerciseEntry)
			if !ok {
				continue
			}
			for m, sets := range ex.MuscleSets {
				load, ok := loads[m]
				if !ok {
					load = &muscleLoad{}
					loads[m] = load
				}
				load.sets += sets
				load.maxWeight = max(load.maxWeight, ex.Weight)
			}
		}
	}

	intensity := make(MuscleIntensity, len(loads))
	if len(loads) == 0 {
		return intensity
	}

	maxSets, maxWeight := 1.0, 1.0
	for _, load := range loads {
		maxSets = max(maxSets, load.sets)
		maxWeight = max(maxWeight, load.maxWeight)
	}
	for m, load := range loads {
		intensity[m] = setsWeight*(load.sets/maxSets) + weightWeight*(load.maxWeight/maxWeight)
	}
	return intensity
}
