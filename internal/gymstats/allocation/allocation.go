// Package allocation converts logged sets into per-muscle credit.
package allocation

import "sort"

// Credit maps a muscle group name to the number of sets attributed to it.
type Credit map[string]float64

// Allocate credits sets×factor to every muscle in the allocation map, and to no
// other muscle. No rounding is applied.
func Allocate(muscleGroups map[string]float64, sets float64) Credit {
	credit := make(Credit, len(muscleGroups))
	for muscle, factor := range muscleGroups {
		credit[muscle] = sets * factor
	}
	return credit
}

// Uniform credits the same number of sets to each of the given muscles.
func Uniform(muscles []string, sets float64) Credit {
	credit := make(Credit, len(muscles))
	for _, m := range muscles {
		credit[m] = sets
	}
	return credit
}

// Total is the sum of all credited sets.
func (c Credit) Total() float64 {
	total := 0.0
	for _, v := range c {
		total += v
	}
	return total
}

// Max is the highest single-muscle credit, 0 for an empty credit.
func (c Credit) Max() float64 {
	maxCredit := 0.0
	for _, v := range c {
		if v > maxCredit {
			maxCredit = v
		}
	}
	return maxCredit
}

// AddTo accumulates the credit into totals. If known is not nil, muscles
// missing from it are skipped.
func (c Credit) AddTo(totals map[string]float64, known map[string]bool) {
	for muscle, v := range c {
		if known != nil && !known[muscle] {
			continue
		}
		totals[muscle] += v
	}
}

// Muscles returns the credited muscles in lexical order.
func (c Credit) Muscles() []string {
	muscles := make([]string, 0, len(c))
	for m := range c {
		muscles = append(muscles, m)
	}
	sort.Strings(muscles)
	return muscles
}

func (c Credit) Clone() Credit {
	out := make(Credit, len(c))
	for k, v := range c {
		out[k] = v
	}
	return out
}
