package stats

type Status string

const (
	StatusUnder Status = "under"
	StatusGood  Status = "good"
	StatusHigh  Status = "high"
)

// Targets is the weekly set band considered productive for a muscle.
type Targets struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

var DefaultTargets = Targets{Min: 10, Max: 15}

// Classify is under below Min, high above Max and good in between, bounds included.
func (t Targets) Classify(total float64) Status {
	switch {
	case total < t.Min:
		return StatusUnder
	case total > t.Max:
		return StatusHigh
	default:
		return StatusGood
	}
}

type IntensityLevel string

const (
	IntensityLow      IntensityLevel = "low"
	IntensityMedium   IntensityLevel = "medium"
	IntensityHigh     IntensityLevel = "high"
	IntensityVeryHigh IntensityLevel = "very_high"
	IntensityMax      IntensityLevel = "max"
)

// LevelOf buckets an intensity score for display; upper bounds are inclusive.
func LevelOf(score float64) IntensityLevel {
	switch {
	case score <= 0.2:
		return IntensityLow
	case score <= 0.4:
		return IntensityMedium
	case score <= 0.6:
		return IntensityHigh
	case score <= 0.8:
		return IntensityVeryHigh
	default:
		return IntensityMax
	}
}
