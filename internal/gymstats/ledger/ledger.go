// Package ledger is the date-keyed training log. Every mutation rewrites the
// whole ledger document in the backing store.
package ledger

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/2beens/setsbymuscle/internal/gymstats/allocation"
	"github.com/2beens/setsbymuscle/internal/gymstats/catalog"
	"github.com/2beens/setsbymuscle/internal/gymstats/quickentry"
	"github.com/2beens/setsbymuscle/internal/storage"
	"github.com/2beens/setsbymuscle/internal/telemetry/metrics"
	"github.com/2beens/setsbymuscle/internal/telemetry/tracing"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

const StorageKey = "sbm_training_days"

type QuickParser interface {
	Parse(text string) (quickentry.Result, error)
}

type Option func(*Ledger)

func WithClock(now func() time.Time) Option {
	return func(l *Ledger) {
		l.now = now
	}
}

func WithIDGenerator(newID func() string) Option {
	return func(l *Ledger) {
		l.newID = newID
	}
}

func WithQuickParser(p QuickParser) Option {
	return func(l *Ledger) {
		l.quickParser = p
	}
}

// WithMuscleGroups sets the muscles a manual entry may name.
func WithMuscleGroups(muscles []string) Option {
	return func(l *Ledger) {
		l.muscles = make(map[string]bool, len(muscles))
		for _, m := range muscles {
			l.muscles[m] = true
		}
	}
}

func WithMetrics(m *metrics.Manager) Option {
	return func(l *Ledger) {
		l.metrics = m
	}
}

type Ledger struct {
	mu    sync.RWMutex
	store storage.Store
	days  map[string]*TrainingDay

	now         func() time.Time
	newID       func() string
	quickParser QuickParser
	muscles     map[string]bool
	metrics     *metrics.Manager
}

// New loads the ledger from the store. It never fails: a missing document
// gives an empty ledger, and so does an unreadable one (after a warning).
func New(ctx context.Context, store storage.Store, opts ...Option) *Ledger {
	l := &Ledger{
		store: store,
		days:  make(map[string]*TrainingDay),
		now:   time.Now,
		newID: func() string {
			return "e_" + uuid.NewString()
		},
	}
	WithMuscleGroups(catalog.MuscleGroups)(l)
	for _, opt := range opts {
		opt(l)
	}

	l.days = l.load(ctx)
	l.updateDaysGauge()
	return l
}

func (l *Ledger) load(ctx context.Context) map[string]*TrainingDay {
	raw, err := l.store.Get(ctx, StorageKey)
	if errors.Is(err, storage.ErrNotFound) {
		log.Debugln("ledger: no stored training days, starting empty")
		return make(map[string]*TrainingDay)
	}
	if err != nil {
		log.Warnf("ledger: failed to read training days, starting empty: %s", err)
		return make(map[string]*TrainingDay)
	}

	doc, err := DecodeDocument(raw)
	if err != nil {
		log.Warnf("ledger: stored training days are corrupt, starting empty: %s", err)
		return make(map[string]*TrainingDay)
	}
	log.Debugf("ledger: loaded %d training days", len(doc))
	return doc
}

// Reload replaces the in-memory ledger with what the store currently holds.
func (l *Ledger) Reload(ctx context.Context) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.days = l.load(ctx)
	l.updateDaysGauge()
}

func (l *Ledger) AppendExerciseEntry(
	ctx context.Context,
	ex catalog.Exercise,
	sets, reps int,
	weight float64,
	date time.Time,
) (_ *ExerciseEntry, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "ledger.appendExerciseEntry")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("exercise", ex.ID))

	if err := validateExerciseInput(ex, sets, reps, weight); err != nil {
		l.countRejected()
		return nil, err
	}

	entry := &ExerciseEntry{
		ID:           l.newID(),
		ExerciseID:   ex.ID,
		ExerciseName: ex.DisplayName,
		Sets:         sets,
		Reps:         reps,
		Weight:       weight,
		MuscleSets:   allocation.Allocate(ex.MuscleGroups, float64(sets)),
		Timestamp:    l.now(),
	}
	if err := l.append(ctx, date, entry); err != nil {
		return entry, err
	}
	return entry, nil
}

func (l *Ledger) AppendManualEntry(
	ctx context.Context,
	muscles []string,
	sets float64,
	date time.Time,
) (_ *ManualEntry, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "ledger.appendManualEntry")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	selected, err := l.validateManualInput(muscles, sets)
	if err != nil {
		l.countRejected()
		return nil, err
	}

	entry := &ManualEntry{
		ID:         l.newID(),
		Muscles:    selected,
		Sets:       sets,
		MuscleSets: allocation.Uniform(selected, sets),
		Timestamp:  l.now(),
	}
	if err := l.append(ctx, date, entry); err != nil {
		return entry, err
	}
	return entry, nil
}

// AppendQuickEntry parses free text like "3x10 squat @100" against the
// catalog and logs the matched exercise.
func (l *Ledger) AppendQuickEntry(ctx context.Context, text string, date time.Time) (_ *QuickEntry, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "ledger.appendQuickEntry")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if strings.TrimSpace(text) == "" {
		l.countRejected()
		return nil, &ValidationError{Field: "text", Msg: "must not be empty", Err: quickentry.ErrEmptyText}
	}
	if l.quickParser == nil {
		return nil, errors.New("quick entries are not enabled")
	}

	res, err := l.quickParser.Parse(text)
	if err != nil {
		l.countRejected()
		return nil, &ValidationError{Field: "text", Msg: err.Error(), Err: err}
	}

	entry := &QuickEntry{
		ID:           l.newID(),
		Text:         strings.TrimSpace(text),
		ExerciseID:   res.Exercise.ID,
		ExerciseName: res.Exercise.DisplayName,
		Sets:         res.Sets,
		Reps:         res.Reps,
		Weight:       res.Weight,
		MuscleSets:   res.Credit.Clone(),
		Timestamp:    l.now(),
	}
	if err := l.append(ctx, date, entry); err != nil {
		return entry, err
	}
	return entry, nil
}

// SetDayNote overwrites the note of the day, creating the day if needed.
func (l *Ledger) SetDayNote(ctx context.Context, date time.Time, note string) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "ledger.setDayNote")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	l.mu.Lock()
	defer l.mu.Unlock()

	day := l.dayForWrite(DateKey(date))
	day.Note = note
	return l.persist(ctx, "set day note")
}

// GetDay never fails; a date without a record gives an empty day.
func (l *Ledger) GetDay(date time.Time) TrainingDay {
	key := DateKey(date)

	l.mu.RLock()
	defer l.mu.RUnlock()

	if day, ok := l.days[key]; ok {
		return day.clone()
	}
	return *newTrainingDay(key)
}

// History returns every training day, most recent first.
func (l *Ledger) History() []TrainingDay {
	l.mu.RLock()
	defer l.mu.RUnlock()

	days := make([]TrainingDay, 0, len(l.days))
	for _, d := range l.days {
		days = append(days, d.clone())
	}
	sort.Slice(days, func(i, j int) bool {
		return days[i].ID > days[j].ID
	})
	return days
}

// Days returns the training days with a date key in [from, to], oldest first.
func (l *Ledger) Days(from, to time.Time) []TrainingDay {
	fromKey, toKey := DateKey(from), DateKey(to)

	l.mu.RLock()
	defer l.mu.RUnlock()

	var days []TrainingDay
	for key, d := range l.days {
		if key >= fromKey && key <= toKey {
			days = append(days, d.clone())
		}
	}
	sort.Slice(days, func(i, j int) bool {
		return days[i].ID < days[j].ID
	})
	return days
}

func (l *Ledger) DaysCount() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.days)
}

// Reset deletes the stored ledger, then empties the in-memory one.
func (l *Ledger) Reset(ctx context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := l.store.Delete(ctx, StorageKey); err != nil {
		return &PersistenceError{Op: "reset ledger", Err: err}
	}
	l.days = make(map[string]*TrainingDay)
	l.updateDaysGauge()
	return nil
}

func (l *Ledger) append(ctx context.Context, date time.Time, entry Entry) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	day := l.dayForWrite(DateKey(date))
	day.Entries = append(day.Entries, entry)

	if l.metrics != nil {
		l.metrics.CounterEntries.WithLabelValues(string(entry.Type())).Inc()
	}
	return l.persist(ctx, fmt.Sprintf("append %s entry", entry.Type()))
}

// dayForWrite must be called with the write lock held.
func (l *Ledger) dayForWrite(key string) *TrainingDay {
	day, ok := l.days[key]
	if !ok {
		day = newTrainingDay(key)
		l.days[key] = day
		l.updateDaysGauge()
	}
	return day
}

// persist must be called with the write lock held. The in-memory state is
// already mutated; on failure it stays ahead of the store.
func (l *Ledger) persist(ctx context.Context, op string) error {
	start := time.Now()
	defer func() {
		if l.metrics != nil {
			l.metrics.HistPersistDuration.Observe(time.Since(start).Seconds())
		}
	}()

	raw, err := json.Marshal(l.days)
	if err != nil {
		return l.persistFailed(op, fmt.Errorf("marshal training days: %w", err))
	}
	if err := l.store.Set(ctx, StorageKey, raw); err != nil {
		return l.persistFailed(op, err)
	}
	return nil
}

func (l *Ledger) persistFailed(op string, err error) error {
	log.Errorf("ledger: %s: failed to persist training days: %s", op, err)
	if l.metrics != nil {
		l.metrics.CounterPersistenceFailures.Inc()
	}
	return &PersistenceError{Op: op, Err: err}
}

func (l *Ledger) countRejected() {
	if l.metrics != nil {
		l.metrics.CounterRejectedEntries.Inc()
	}
}

func (l *Ledger) updateDaysGauge() {
	if l.metrics != nil {
		l.metrics.GaugeTrainingDays.Set(float64(len(l.days)))
	}
}

func validateExerciseInput(ex catalog.Exercise, sets, reps int, weight float64) error {
	if ex.ID == "" {
		return &ValidationError{Field: "exercise", Msg: "must be a catalog exercise"}
	}
	if sets < 1 {
		return &ValidationError{Field: "sets", Msg: fmt.Sprintf("must be a positive integer, got %d", sets)}
	}
	if reps < 1 {
		return &ValidationError{Field: "reps", Msg: fmt.Sprintf("must be a positive integer, got %d", reps)}
	}
	if weight < 0 || math.IsNaN(weight) || math.IsInf(weight, 0) {
		return &ValidationError{Field: "weight", Msg: fmt.Sprintf("must be a non-negative number, got %v", weight)}
	}
	return nil
}

// validateManualInput returns the selected muscles, deduplicated, in input order.
func (l *Ledger) validateManualInput(muscles []string, sets float64) ([]string, error) {
	if sets <= 0 || math.IsNaN(sets) || math.IsInf(sets, 0) {
		return nil, &ValidationError{Field: "sets", Msg: fmt.Sprintf("must be a positive number, got %v", sets)}
	}

	seen := make(map[string]bool, len(muscles))
	selected := make([]string, 0, len(muscles))
	for _, m := range muscles {
		m = strings.TrimSpace(m)
		if m == "" || seen[m] {
			continue
		}
		if !l.muscles[m] {
			return nil, &ValidationError{Field: "muscles", Msg: fmt.Sprintf("unknown muscle group: %s", m)}
		}
		seen[m] = true
		selected = append(selected, m)
	}
	if len(selected) == 0 {
		return nil, &ValidationError{Field: "muscles", Msg: "select at least one muscle group"}
	}
	return selected, nil
}
