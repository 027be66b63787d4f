package ledger

import (
	"encoding/json"
	"fmt"
	"math"
	"time"

	"github.com/2beens/setsbymuscle/internal/gymstats/allocation"
)

type EntryType string

const (
	EntryTypeExercise EntryType = "exercise"
	EntryTypeManual   EntryType = "manual"
	EntryTypeQuick    EntryType = "quick"
)

// Entry is one logged item of a training day. The set of implementations is
// closed: *ExerciseEntry, *ManualEntry and *QuickEntry.
type Entry interface {
	EntryID() string
	Type() EntryType
	Credit() allocation.Credit
	CreatedAt() time.Time

	clone() Entry
	validate() error
}

var (
	_ Entry = (*ExerciseEntry)(nil)
	_ Entry = (*ManualEntry)(nil)
	_ Entry = (*QuickEntry)(nil)
)

type ExerciseEntry struct {
	ID           string
	ExerciseID   string
	ExerciseName string
	Sets         int
	Reps         int
	Weight       float64
	MuscleSets   allocation.Credit
	Timestamp    time.Time
}

func (e *ExerciseEntry) EntryID() string           { return e.ID }
func (e *ExerciseEntry) Type() EntryType           { return EntryTypeExercise }
func (e *ExerciseEntry) Credit() allocation.Credit { return e.MuscleSets }
func (e *ExerciseEntry) CreatedAt() time.Time      { return e.Timestamp }

func (e *ExerciseEntry) clone() Entry {
	c := *e
	c.MuscleSets = e.MuscleSets.Clone()
	return &c
}

// ManualEntry credits the same number of sets to each selected muscle.
type ManualEntry struct {
	ID         string
	Muscles    []string
	Sets       float64
	MuscleSets allocation.Credit
	Timestamp  time.Time
}

func (e *ManualEntry) EntryID() string           { return e.ID }
func (e *ManualEntry) Type() EntryType           { return EntryTypeManual }
func (e *ManualEntry) Credit() allocation.Credit { return e.MuscleSets }
func (e *ManualEntry) CreatedAt() time.Time      { return e.Timestamp }

func (e *ExerciseEntry) validate() error {
	return validateStoredEntry(float64(e.Sets), e.Reps, e.Weight, e.MuscleSets)
}

func (e *ManualEntry) clone() Entry {
	c := *e
	c.Muscles = append([]string(nil), e.Muscles...)
	c.MuscleSets = e.MuscleSets.Clone()
	return &c
}

func (e *ManualEntry) validate() error {
	return validateStoredEntry(e.Sets, 0, 0, e.MuscleSets)
}

// QuickEntry keeps the raw free text next to the exercise it was matched to.
type QuickEntry struct {
	ID           string
	Text         string
	ExerciseID   string
	ExerciseName string
	Sets         int
	Reps         int
	Weight       float64
	MuscleSets   allocation.Credit
	Timestamp    time.Time
}

func (e *QuickEntry) EntryID() string           { return e.ID }
func (e *QuickEntry) Type() EntryType           { return EntryTypeQuick }
func (e *QuickEntry) Credit() allocation.Credit { return e.MuscleSets }
func (e *QuickEntry) CreatedAt() time.Time      { return e.Timestamp }

func (e *QuickEntry) clone() Entry {
	c := *e
	c.MuscleSets = e.MuscleSets.Clone()
	return &c
}

func (e *QuickEntry) validate() error {
	return validateStoredEntry(float64(e.Sets), e.Reps, e.Weight, e.MuscleSets)
}

func validateStoredEntry(sets float64, reps int, weight float64, credit allocation.Credit) error {
	if !(sets > 0) || math.IsInf(sets, 0) {
		return &ValidationError{Field: "sets", Msg: fmt.Sprintf("must be a positive number, got %v", sets)}
	}
	if reps < 0 {
		return &ValidationError{Field: "reps", Msg: fmt.Sprintf("must not be negative, got %d", reps)}
	}
	if !(weight >= 0) || math.IsInf(weight, 0) {
		return &ValidationError{Field: "weight", Msg: fmt.Sprintf("must be a non-negative number, got %v", weight)}
	}
	for m, v := range credit {
		if !(v >= 0) || math.IsInf(v, 0) {
			return &ValidationError{Field: "muscleSets", Msg: fmt.Sprintf("%s must be a non-negative number, got %v", m, v)}
		}
	}
	return nil
}

// entryJSON is the persisted shape shared by all entry types.
type entryJSON struct {
	ID           string            `json:"id"`
	Type         EntryType         `json:"type"`
	ExerciseID   string            `json:"exerciseId,omitempty"`
	ExerciseName string            `json:"exerciseName,omitempty"`
	Text         string            `json:"text,omitempty"`
	Muscles      []string          `json:"muscles,omitempty"`
	Sets         float64           `json:"sets"`
	Reps         int               `json:"reps,omitempty"`
	Weight       float64           `json:"weight"`
	MuscleSets   allocation.Credit `json:"muscleSets"`
	Timestamp    int64             `json:"timestamp"`
}

func (e *ExerciseEntry) MarshalJSON() ([]byte, error) {
	return json.Marshal(entryJSON{
		ID:           e.ID,
		Type:         EntryTypeExercise,
		ExerciseID:   e.ExerciseID,
		ExerciseName: e.ExerciseName,
		Sets:         float64(e.Sets),
		Reps:         e.Reps,
		Weight:       e.Weight,
		MuscleSets:   nonNilCredit(e.MuscleSets),
		Timestamp:    e.Timestamp.UnixMilli(),
	})
}

func (e *ManualEntry) MarshalJSON() ([]byte, error) {
	return json.Marshal(entryJSON{
		ID:         e.ID,
		Type:       EntryTypeManual,
		Muscles:    e.Muscles,
		Sets:       e.Sets,
		MuscleSets: nonNilCredit(e.MuscleSets),
		Timestamp:  e.Timestamp.UnixMilli(),
	})
}

func (e *QuickEntry) MarshalJSON() ([]byte, error) {
	return json.Marshal(entryJSON{
		ID:           e.ID,
		Type:         EntryTypeQuick,
		ExerciseID:   e.ExerciseID,
		ExerciseName: e.ExerciseName,
		Text:         e.Text,
		Sets:         float64(e.Sets),
		Reps:         e.Reps,
		Weight:       e.Weight,
		MuscleSets:   nonNilCredit(e.MuscleSets),
		Timestamp:    e.Timestamp.UnixMilli(),
	})
}

// UnmarshalEntry decodes a single persisted entry, dispatching on its "type".
func UnmarshalEntry(data []byte) (Entry, error) {
	var raw entryJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}

	ts := time.UnixMilli(raw.Timestamp).UTC()
	credit := raw.MuscleSets
	if credit == nil {
		credit = allocation.Credit{}
	}

	switch raw.Type {
	case EntryTypeExercise:
		return &ExerciseEntry{
			ID:           raw.ID,
			ExerciseID:   raw.ExerciseID,
			ExerciseName: raw.ExerciseName,
			Sets:         int(raw.Sets),
			Reps:         raw.Reps,
			Weight:       raw.Weight,
			MuscleSets:   credit,
			Timestamp:    ts,
		}, nil
	case EntryTypeManual:
		muscles := raw.Muscles
		if len(muscles) == 0 {
			muscles = credit.Muscles()
		}
		return &ManualEntry{
			ID:         raw.ID,
			Muscles:    muscles,
			Sets:       raw.Sets,
			MuscleSets: credit,
			Timestamp:  ts,
		}, nil
	case EntryTypeQuick:
		return &QuickEntry{
			ID:           raw.ID,
			Text:         raw.Text,
			ExerciseID:   raw.ExerciseID,
			ExerciseName: raw.ExerciseName,
			Sets:         int(raw.Sets),
			Reps:         raw.Reps,
			Weight:       raw.Weight,
			MuscleSets:   credit,
			Timestamp:    ts,
		}, nil
	default:
		return nil, fmt.Errorf("unknown entry type: %q", raw.Type)
	}
}

func nonNilCredit(c allocation.Credit) allocation.Credit {
	if c == nil {
		return allocation.Credit{}
	}
	return c
}
