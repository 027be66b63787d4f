package catalog

import "strings"

type Category string

const (
	CategoryPush Category = "push"
	CategoryPull Category = "pull"
	CategoryLegs Category = "legs"
	CategoryCore Category = "core"
)

var Categories = []Category{
	CategoryPush,
	CategoryPull,
	CategoryLegs,
	CategoryCore,
}

func (c Category) String() string {
	return string(c)
}

func (c Category) IsValid() bool {
	switch c {
	case CategoryPush, CategoryPull, CategoryLegs, CategoryCore:
		return true
	default:
		return false
	}
}

const (
	MuscleChest      = "Chest"
	MuscleBack       = "Back"
	MuscleLats       = "Lats"
	MuscleTraps      = "Traps"
	MuscleRearDelts  = "Rear Delts"
	MuscleFrontDelts = "Front Delts"
	MuscleBiceps     = "Biceps"
	MuscleTriceps    = "Triceps"
	MuscleQuads      = "Quads"
	MuscleHamstrings = "Hamstrings"
	MuscleGlutes     = "Glutes"
	MuscleCalves     = "Calves"
	MuscleCore       = "Core"
)

// MuscleGroups is the canonical, ordered set of muscle groups credit can be attributed to.
var MuscleGroups = []string{
	MuscleChest,
	MuscleBack,
	MuscleLats,
	MuscleTraps,
	MuscleRearDelts,
	MuscleFrontDelts,
	MuscleBiceps,
	MuscleTriceps,
	MuscleQuads,
	MuscleHamstrings,
	MuscleGlutes,
	MuscleCalves,
	MuscleCore,
}

func IsMuscleGroup(name string) bool {
	for _, m := range MuscleGroups {
		if m == name {
			return true
		}
	}
	return false
}

const (
	MinAllocationFactor = 0.0
	MaxAllocationFactor = 2.0
)

// Exercise is a catalog entry. MuscleGroups maps a muscle group name to its
// allocation factor: 1.0 is a primary mover, 0.5 a secondary one.
type Exercise struct {
	ID           string             `json:"id" yaml:"id"`
	Name         string             `json:"name" yaml:"name"`
	DisplayName  string             `json:"displayName" yaml:"displayName"`
	Aliases      []string           `json:"aliases" yaml:"aliases"`
	MuscleGroups map[string]float64 `json:"muscleGroups" yaml:"muscleGroups"`
	Category     Category           `json:"category" yaml:"category"`
	Description  string             `json:"description" yaml:"description"`
	DefaultSets  int                `json:"defaultSets,omitempty" yaml:"defaultSets,omitempty"`
	DefaultReps  int                `json:"defaultReps,omitempty" yaml:"defaultReps,omitempty"`
}

// MaxAllocation returns the largest allocation factor of the exercise.
func (e Exercise) MaxAllocation() float64 {
	maxFactor := 0.0
	for _, f := range e.MuscleGroups {
		if f > maxFactor {
			maxFactor = f
		}
	}
	return maxFactor
}

func (e Exercise) hasAlias(lowerName string) bool {
	for _, a := range e.Aliases {
		if strings.ToLower(a) == lowerName {
			return true
		}
	}
	return false
}

type Targets struct {
	Min float64 `json:"min" yaml:"min"`
	Max float64 `json:"max" yaml:"max"`
}

var DefaultTargets = Targets{Min: 10, Max: 15}

var DefaultWindowOptions = []int{3, 7, 14, 28}

var DefaultCategoryDescriptions = map[Category]string{
	CategoryPush: "Pushing movements",
	CategoryPull: "Pulling movements",
	CategoryLegs: "Lower body movements",
	CategoryCore: "Core and trunk movements",
}
