// Package handler serves the training log, volume stats and data management over HTTP.
package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/2beens/setsbymuscle/internal/gymstats/backup"
	"github.com/2beens/setsbymuscle/internal/gymstats/catalog"
	"github.com/2beens/setsbymuscle/internal/gymstats/ledger"
	"github.com/2beens/setsbymuscle/internal/gymstats/settings"
	"github.com/2beens/setsbymuscle/internal/gymstats/stats"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=handler_test

const maxBodyBytes = 10 << 20

type exerciseCatalog interface {
	Search(query string) []catalog.SearchResult
	ByID(id string) (catalog.Exercise, bool)
	SearchByMuscleGroup(muscle string) []catalog.Exercise
	Exercises() []catalog.Exercise
	MuscleGroups() []string
	Categories() map[catalog.Category]string
}

type trainingLedger interface {
	AppendExerciseEntry(ctx context.Context, ex catalog.Exercise, sets, reps int, weight float64, date time.Time) (*ledger.ExerciseEntry, error)
	AppendManualEntry(ctx context.Context, muscles []string, sets float64, date time.Time) (*ledger.ManualEntry, error)
	AppendQuickEntry(ctx context.Context, text string, date time.Time) (*ledger.QuickEntry, error)
	SetDayNote(ctx context.Context, date time.Time, note string) error
	GetDay(date time.Time) ledger.TrainingDay
	History() []ledger.TrainingDay
}

type volumeAnalyzer interface {
	MuscleTotals(ctx context.Context, end time.Time, windowDays int) stats.MuscleTotals
	DailyTotals(ctx context.Context, end time.Time, windowDays int) []stats.DayTotals
	Intensity(ctx context.Context, end time.Time, windowDays int) stats.MuscleIntensity
}

type settingsService interface {
	Get(ctx context.Context) settings.Settings
	Update(ctx context.Context, s settings.Settings) error
	WindowOptions() []int
}

type backupService interface {
	Export(ctx context.Context) (*backup.Document, error)
	Import(ctx context.Context, doc *backup.Document) error
	Reset(ctx context.Context) error
}

type Params struct {
	Catalog  exerciseCatalog
	Ledger   trainingLedger
	Analyzer volumeAnalyzer
	Settings settingsService
	Backup   backupService
	// Now defaults to time.Now; used when a request does not name a date.
	Now func() time.Time
}

type Handler struct {
	catalog  exerciseCatalog
	ledger   trainingLedger
	analyzer volumeAnalyzer
	settings settingsService
	backup   backupService
	now      func() time.Time
}

func New(params Params) *Handler {
	now := params.Now
	if now == nil {
		now = time.Now
	}
	return &Handler{
		catalog:  params.Catalog,
		ledger:   params.Ledger,
		analyzer: params.Analyzer,
		settings: params.Settings,
		backup:   params.Backup,
		now:      now,
	}
}

// RegisterRoutes adds all routes to r. Mutating routes additionally go
// through the write middlewares (rate limiting).
func (h *Handler) RegisterRoutes(r *mux.Router, writeMiddlewares ...mux.MiddlewareFunc) {
	r.HandleFunc("/catalog", h.HandleCatalogInfo).Methods("GET", "OPTIONS").Name("catalog-info")
	r.HandleFunc("/exercises/search", h.HandleSearchExercises).Methods("GET", "OPTIONS").Name("search-exercises")
	r.HandleFunc("/exercises/{id}", h.HandleGetExercise).Methods("GET", "OPTIONS").Name("get-exercise")
	r.HandleFunc("/exercises", h.HandleListExercises).Methods("GET", "OPTIONS").Name("list-exercises")

	r.HandleFunc("/days/{date}", h.HandleGetDay).Methods("GET", "OPTIONS").Name("get-day")
	r.HandleFunc("/history", h.HandleHistory).Methods("GET", "OPTIONS").Name("history")
	r.HandleFunc("/stats/totals", h.HandleTotals).Methods("GET", "OPTIONS").Name("stats-totals")
	r.HandleFunc("/stats/intensity", h.HandleIntensity).Methods("GET", "OPTIONS").Name("stats-intensity")
	r.HandleFunc("/settings", h.HandleGetSettings).Methods("GET", "OPTIONS").Name("get-settings")
	r.HandleFunc("/backup/export", h.HandleExport).Methods("GET", "OPTIONS").Name("backup-export")

	w := r.NewRoute().Subrouter()
	for _, mw := range writeMiddlewares {
		w.Use(mw)
	}
	w.HandleFunc("/days/{date}/entries/exercise", h.HandleAddExerciseEntry).Methods("POST", "OPTIONS").Name("add-exercise-entry")
	w.HandleFunc("/days/{date}/entries/manual", h.HandleAddManualEntry).Methods("POST", "OPTIONS").Name("add-manual-entry")
	w.HandleFunc("/days/{date}/entries/quick", h.HandleAddQuickEntry).Methods("POST", "OPTIONS").Name("add-quick-entry")
	w.HandleFunc("/days/{date}/note", h.HandleSetNote).Methods("PUT", "OPTIONS").Name("set-day-note")
	w.HandleFunc("/settings", h.HandleUpdateSettings).Methods("PUT", "OPTIONS").Name("update-settings")
	w.HandleFunc("/backup/import", h.HandleImport).Methods("POST", "OPTIONS").Name("backup-import")
	w.HandleFunc("/backup/reset", h.HandleReset).Methods("POST", "OPTIONS").Name("backup-reset")
}

// writeError maps engine errors to status codes.
func writeError(w http.ResponseWriter, op string, err error) {
	var validationErr *ledger.ValidationError
	var persistenceErr *ledger.PersistenceError
	switch {
	case errors.As(err, &validationErr):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.As(err, &persistenceErr):
		log.Errorf("%s: %s", op, err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
	case errors.Is(err, settings.ErrInvalidSettings), errors.Is(err, backup.ErrInvalidFormat):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		log.Errorf("%s: %s", op, err)
		http.Error(w, fmt.Sprintf("%s failed", op), http.StatusInternalServerError)
	}
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	body := http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(body).Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return errors.New("empty request body")
		}
		return fmt.Errorf("invalid json body: %w", err)
	}
	return nil
}

// dateParam reads the {date} path variable; "today" resolves to the current date.
func (h *Handler) dateParam(r *http.Request) (time.Time, error) {
	raw := mux.Vars(r)["date"]
	if raw == "" || raw == "today" {
		return h.today(), nil
	}
	return ledger.ParseDateKey(raw)
}

func (h *Handler) today() time.Time {
	now := h.now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

// windowQuery reads the end and window query params, defaulting to today and
// the stored window setting.
func (h *Handler) windowQuery(r *http.Request) (end time.Time, windowDays int, err error) {
	end = h.today()
	if raw := r.URL.Query().Get("end"); raw != "" {
		end, err = ledger.ParseDateKey(raw)
		if err != nil {
			return time.Time{}, 0, err
		}
	}

	windowDays = h.settings.Get(r.Context()).WindowDays
	if raw := r.URL.Query().Get("window"); raw != "" {
		windowDays, err = strconv.Atoi(raw)
		if err != nil {
			return time.Time{}, 0, &ledger.ValidationError{Field: "window", Msg: fmt.Sprintf("%q is not a number", raw)}
		}
		if windowDays < catalog.MinWindowDays || windowDays > catalog.MaxWindowDays {
			return time.Time{}, 0, &ledger.ValidationError{
				Field: "window",
				Msg:   fmt.Sprintf("must be between %d and %d days, got %d", catalog.MinWindowDays, catalog.MaxWindowDays, windowDays),
			}
		}
	}
	return end, windowDays, nil
}
