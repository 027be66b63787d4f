package ledger

import (
	"encoding/json"
	"fmt"
	"time"
)

const DateKeyLayout = "2006-01-02"

// DateKey formats t as a calendar date in t's own location.
func DateKey(t time.Time) string {
	return t.Format(DateKeyLayout)
}

func ParseDateKey(s string) (time.Time, error) {
	t, err := time.Parse(DateKeyLayout, s)
	if err != nil {
		return time.Time{}, &ValidationError{Field: "date", Msg: fmt.Sprintf("%q is not a YYYY-MM-DD date", s)}
	}
	return t, nil
}

// TrainingDay holds the entries logged on one calendar date, in insertion order.
type TrainingDay struct {
	ID      string  `json:"id"`
	Note    string  `json:"note"`
	Entries []Entry `json:"entries"`
}

func newTrainingDay(dateKey string) *TrainingDay {
	return &TrainingDay{
		ID:      dateKey,
		Entries: []Entry{},
	}
}

func (d *TrainingDay) UnmarshalJSON(data []byte) error {
	var raw struct {
		ID      string            `json:"id"`
		Note    string            `json:"note"`
		Entries []json.RawMessage `json:"entries"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	entries := make([]Entry, 0, len(raw.Entries))
	for i, re := range raw.Entries {
		e, err := UnmarshalEntry(re)
		if err != nil {
			return fmt.Errorf("day %s, entry %d: %w", raw.ID, i, err)
		}
		entries = append(entries, e)
	}

	d.ID = raw.ID
	d.Note = raw.Note
	d.Entries = entries
	return nil
}

func (d *TrainingDay) clone() TrainingDay {
	c := TrainingDay{
		ID:      d.ID,
		Note:    d.Note,
		Entries: make([]Entry, len(d.Entries)),
	}
	for i, e := range d.Entries {
		c.Entries[i] = e.clone()
	}
	return c
}

// Document is the persisted form of the ledger: date key -> training day.
type Document map[string]*TrainingDay

// DecodeDocument parses a persisted ledger and fixes up days missing their id.
// A day whose id disagrees with its date key is rejected.
func DecodeDocument(data []byte) (Document, error) {
	doc := Document{}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	for key, day := range doc {
		if day == nil {
			doc[key] = newTrainingDay(key)
			continue
		}
		if day.ID == "" {
			day.ID = key
		}
		if day.ID != key {
			return nil, fmt.Errorf("day %s is stored under key %s", day.ID, key)
		}
		if day.Entries == nil {
			day.Entries = []Entry{}
		}
	}
	return doc, nil
}

// Validate checks that every key is a calendar date and every entry holds
// numbers the aggregations can use: positive sets, non-negative weight and
// non-negative credit.
func (doc Document) Validate() error {
	for key, day := range doc {
		if _, err := ParseDateKey(key); err != nil {
			return err
		}
		if day == nil {
			continue
		}
		if day.ID != key {
			return &ValidationError{Field: "date", Msg: fmt.Sprintf("day %s is stored under key %s", day.ID, key)}
		}
		for i, e := range day.Entries {
			if err := e.validate(); err != nil {
				return fmt.Errorf("day %s, entry %d: %w", key, i, err)
			}
		}
	}
	return nil
}
