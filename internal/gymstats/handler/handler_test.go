package handler_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/2beens/setsbymuscle/internal/gymstats/backup"
	"github.com/2beens/setsbymuscle/internal/gymstats/catalog"
	"github.com/2beens/setsbymuscle/internal/gymstats/handler"
	"github.com/2beens/setsbymuscle/internal/gymstats/ledger"
	"github.com/2beens/setsbymuscle/internal/gymstats/quickentry"
	"github.com/2beens/setsbymuscle/internal/gymstats/settings"
	"github.com/2beens/setsbymuscle/internal/gymstats/stats"
	"github.com/2beens/setsbymuscle/internal/storage"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/goleak"
	"go.uber.org/mock/gomock"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

var testNow = time.Date(2024, 6, 10, 18, 0, 0, 0, time.UTC)

type HandlerSuite struct {
	suite.Suite

	store    *storage.MemoryStore
	catalog  *catalog.Catalog
	ledger   *ledger.Ledger
	settings *settings.Service
	router   *mux.Router
}

func TestHandlerSuite(t *testing.T) {
	suite.Run(t, new(HandlerSuite))
}

func (s *HandlerSuite) SetupTest() {
	ctx := context.Background()

	c, err := catalog.Load(ctx, "../../../data/exercises.json")
	s.Require().NoError(err)
	s.catalog = c

	s.store = storage.NewMemoryStore()
	s.ledger = ledger.New(ctx, s.store,
		ledger.WithClock(func() time.Time { return testNow }),
		ledger.WithQuickParser(quickentry.NewParser(c)),
		ledger.WithMuscleGroups(c.MuscleGroups()),
	)
	s.settings = settings.NewService(s.store, settings.Settings{
		WindowDays: settings.DefaultWindowDays,
		Targets:    stats.Targets(c.DefaultTargets()),
	}, c.WindowOptions())

	h := handler.New(handler.Params{
		Catalog:  c,
		Ledger:   s.ledger,
		Analyzer: stats.NewAnalyzer(s.ledger, c.MuscleGroups()),
		Settings: s.settings,
		Backup:   backup.NewService(s.store, s.ledger),
		Now:      func() time.Time { return testNow },
	})
	s.router = mux.NewRouter()
	h.RegisterRoutes(s.router)
}

func (s *HandlerSuite) do(method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func (s *HandlerSuite) decode(rec *httptest.ResponseRecorder, v any) {
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), v), rec.Body.String())
}

func (s *HandlerSuite) TestExercises() {
	rec := s.do("GET", "/exercises/search?q=bench", "")
	s.Require().Equal(http.StatusOK, rec.Code)
	var search handler.SearchResponse
	s.decode(rec, &search)
	s.Require().NotEmpty(search.Results)
	s.Equal("bench_press", search.Results[0].Exercise.ID)

	rec = s.do("GET", "/exercises/search?q=b", "")
	s.Require().Equal(http.StatusOK, rec.Code)
	s.decode(rec, &search)
	s.Empty(search.Results)

	rec = s.do("GET", "/exercises/squat", "")
	s.Require().Equal(http.StatusOK, rec.Code)
	var ex catalog.Exercise
	s.decode(rec, &ex)
	s.Equal("Squat", ex.DisplayName)

	rec = s.do("GET", "/exercises/cable_fly", "")
	s.Equal(http.StatusNotFound, rec.Code)

	rec = s.do("GET", "/exercises", "")
	s.Require().Equal(http.StatusOK, rec.Code)
	var list handler.ExercisesResponse
	s.decode(rec, &list)
	s.Equal(15, list.Total)

	rec = s.do("GET", "/exercises?muscle=Calves", "")
	s.Require().Equal(http.StatusOK, rec.Code)
	s.decode(rec, &list)
	s.Require().Equal(1, list.Total)
	s.Equal("calf_raise", list.Exercises[0].ID)

	rec = s.do("GET", "/catalog", "")
	s.Require().Equal(http.StatusOK, rec.Code)
	var info handler.CatalogInfoResponse
	s.decode(rec, &info)
	s.Len(info.MuscleGroups, 13)
	s.Equal([]int{3, 7, 14, 28}, info.WindowOptions)
}

func (s *HandlerSuite) TestAddExerciseEntry() {
	rec := s.do("POST", "/days/2024-06-10/entries/exercise", `{"exerciseId":"bench_press","sets":3,"reps":10,"weight":80}`)
	s.Require().Equal(http.StatusCreated, rec.Code, rec.Body.String())

	var entry map[string]any
	s.decode(rec, &entry)
	s.Equal("exercise", entry["type"])
	s.Equal(map[string]any{"Chest": 3.0, "Triceps": 1.5, "Front Delts": 1.5}, entry["muscleSets"])
	s.Equal(float64(testNow.UnixMilli()), entry["timestamp"])

	day := s.ledger.GetDay(time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC))
	s.Len(day.Entries, 1)

	for name, tc := range map[string]struct {
		path, body string
		code       int
	}{
		"unknown exercise": {"/days/2024-06-10/entries/exercise", `{"exerciseId":"cable_fly","sets":3,"reps":10}`, http.StatusNotFound},
		"zero sets":        {"/days/2024-06-10/entries/exercise", `{"exerciseId":"squat","sets":0,"reps":10}`, http.StatusBadRequest},
		"negative weight":  {"/days/2024-06-10/entries/exercise", `{"exerciseId":"squat","sets":3,"reps":5,"weight":-5}`, http.StatusBadRequest},
		"missing id":       {"/days/2024-06-10/entries/exercise", `{"sets":3,"reps":5}`, http.StatusBadRequest},
		"bad json":         {"/days/2024-06-10/entries/exercise", `{"exerciseId":`, http.StatusBadRequest},
		"bad date":         {"/days/10-06-2024/entries/exercise", `{"exerciseId":"squat","sets":3,"reps":5}`, http.StatusBadRequest},
	} {
		rec := s.do("POST", tc.path, tc.body)
		s.Equal(tc.code, rec.Code, name)
	}

	// rejected requests did not touch the log
	s.Len(s.ledger.GetDay(time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)).Entries, 1)
}

func (s *HandlerSuite) TestManualAndQuickEntries() {
	rec := s.do("POST", "/days/today/entries/manual", `{"muscles":["Chest","Back","Chest"],"sets":2}`)
	s.Require().Equal(http.StatusCreated, rec.Code, rec.Body.String())
	var manual map[string]any
	s.decode(rec, &manual)
	s.Equal([]any{"Chest", "Back"}, manual["muscles"])

	rec = s.do("POST", "/days/today/entries/manual", `{"muscles":["Forearms"],"sets":2}`)
	s.Equal(http.StatusBadRequest, rec.Code)
	rec = s.do("POST", "/days/today/entries/manual", `{"muscles":[],"sets":2}`)
	s.Equal(http.StatusBadRequest, rec.Code)

	rec = s.do("POST", "/days/today/entries/quick", `{"text":"3x10 squat @100"}`)
	s.Require().Equal(http.StatusCreated, rec.Code, rec.Body.String())
	var quick map[string]any
	s.decode(rec, &quick)
	s.Equal("quick", quick["type"])
	s.Equal("squat", quick["exerciseId"])
	s.Equal(3.0, quick["sets"])
	s.Equal(10.0, quick["reps"])
	s.Equal(100.0, quick["weight"])

	rec = s.do("POST", "/days/today/entries/quick", `{"text":"   "}`)
	s.Equal(http.StatusBadRequest, rec.Code)
	rec = s.do("POST", "/days/today/entries/quick", `{"text":"3x10 underwater basket weaving"}`)
	s.Equal(http.StatusBadRequest, rec.Code)

	rec = s.do("GET", "/stats/totals", "")
	s.Require().Equal(http.StatusOK, rec.Code)
	var totals handler.TotalsResponse
	s.decode(rec, &totals)
	s.Equal("2024-06-10", totals.End)
	s.Equal(7, totals.WindowDays)
	s.Equal(2.0, totals.Totals["Chest"])
	s.Equal(3.0, totals.Totals["Quads"])
	s.Equal(2.0+2.0+3.0+1.5+0.75+0.75, totals.Total)
	s.Equal(stats.StatusUnder, totals.Statuses["Chest"])
	s.Nil(totals.Daily)
}

func (s *HandlerSuite) TestStats() {
	ctx := context.Background()
	squat, _ := s.catalog.ByID("squat")
	bench, _ := s.catalog.ByID("bench_press")

	_, err := s.ledger.AppendExerciseEntry(ctx, squat, 12, 5, 100, time.Date(2024, 6, 9, 0, 0, 0, 0, time.UTC))
	s.Require().NoError(err)
	_, err = s.ledger.AppendExerciseEntry(ctx, bench, 4, 8, 50, time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC))
	s.Require().NoError(err)

	rec := s.do("GET", "/stats/totals?end=2024-06-10&window=3&daily=true", "")
	s.Require().Equal(http.StatusOK, rec.Code)
	var totals handler.TotalsResponse
	s.decode(rec, &totals)
	s.Equal(12.0, totals.Totals["Quads"])
	s.Equal(0.0, totals.Totals["Chest"])
	s.Equal(stats.StatusGood, totals.Statuses["Quads"])
	s.Require().Len(totals.Daily, 3)
	s.Equal("2024-06-09", totals.Daily[1].Date)

	rec = s.do("GET", "/stats/totals?end=2024-06-10&window=14", "")
	s.Require().Equal(http.StatusOK, rec.Code)
	s.decode(rec, &totals)
	s.Equal(4.0, totals.Totals["Chest"])

	rec = s.do("GET", "/stats/intensity?end=2024-06-10&window=7", "")
	s.Require().Equal(http.StatusOK, rec.Code)
	var intensity handler.IntensityResponse
	s.decode(rec, &intensity)
	s.InDelta(1.0, intensity.Intensity["Quads"], 1e-9)
	s.Equal(stats.IntensityMax, intensity.Levels["Quads"])
	_, ok := intensity.Intensity["Chest"]
	s.False(ok)

	s.Equal(http.StatusBadRequest, s.do("GET", "/stats/totals?window=seven", "").Code)
	s.Equal(http.StatusBadRequest, s.do("GET", "/stats/intensity?end=yesterday", "").Code)
}

func (s *HandlerSuite) TestStats_WindowBounds() {
	for _, path := range []string{
		"/stats/totals?daily=true&window=100000000",
		"/stats/totals?window=366",
		"/stats/totals?window=0",
		"/stats/intensity?window=-3",
	} {
		rec := s.do("GET", path, "")
		s.Equal(http.StatusBadRequest, rec.Code, path)
		s.Contains(rec.Body.String(), "between 1 and 365", path)
	}

	rec := s.do("GET", "/stats/totals?end=2024-06-10&window=365&daily=true", "")
	s.Require().Equal(http.StatusOK, rec.Code)
	var totals handler.TotalsResponse
	s.decode(rec, &totals)
	s.Len(totals.Daily, 365)
}

func (s *HandlerSuite) TestDaysAndHistory() {
	rec := s.do("GET", "/days/2024-06-08", "")
	s.Require().Equal(http.StatusOK, rec.Code)
	var day map[string]any
	s.decode(rec, &day)
	s.Equal("2024-06-08", day["id"])
	s.Equal([]any{}, day["entries"])

	rec = s.do("PUT", "/days/2024-06-08/note", `{"note":"legs felt heavy"}`)
	s.Require().Equal(http.StatusOK, rec.Code)
	s.decode(rec, &day)
	s.Equal("legs felt heavy", day["note"])

	rec = s.do("POST", "/days/2024-06-09/entries/manual", `{"muscles":["Core"],"sets":1}`)
	s.Require().Equal(http.StatusCreated, rec.Code)

	rec = s.do("GET", "/history", "")
	s.Require().Equal(http.StatusOK, rec.Code)
	var history struct {
		Days []struct {
			ID   string `json:"id"`
			Note string `json:"note"`
		} `json:"days"`
		Total int `json:"total"`
	}
	s.decode(rec, &history)
	s.Require().Equal(2, history.Total)
	s.Equal("2024-06-09", history.Days[0].ID)
	s.Equal("2024-06-08", history.Days[1].ID)
	s.Equal("legs felt heavy", history.Days[1].Note)
}

func (s *HandlerSuite) TestSettings() {
	rec := s.do("GET", "/settings", "")
	s.Require().Equal(http.StatusOK, rec.Code)
	var got settings.Settings
	s.decode(rec, &got)
	s.Equal(7, got.WindowDays)
	s.Equal(stats.Targets{Min: 10, Max: 15}, got.Targets)

	rec = s.do("PUT", "/settings", `{"windowDays":14}`)
	s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())
	s.decode(rec, &got)
	s.Equal(14, got.WindowDays)
	s.Equal(stats.Targets{Min: 10, Max: 15}, got.Targets)

	s.Equal(http.StatusBadRequest, s.do("PUT", "/settings", `{"windowDays":5}`).Code)
	s.Equal(http.StatusBadRequest, s.do("PUT", "/settings", `{"targets":{"min":20,"max":15}}`).Code)

	// stats use the stored window
	rec = s.do("GET", "/stats/totals", "")
	var totals handler.TotalsResponse
	s.decode(rec, &totals)
	s.Equal(14, totals.WindowDays)
}

func (s *HandlerSuite) TestBackup() {
	rec := s.do("POST", "/days/2024-06-10/entries/exercise", `{"exerciseId":"deadlift","sets":2,"reps":5,"weight":140}`)
	s.Require().Equal(http.StatusCreated, rec.Code)
	s.Require().Equal(http.StatusOK, s.do("PUT", "/settings", `{"windowDays":28}`).Code)

	rec = s.do("GET", "/backup/export", "")
	s.Require().Equal(http.StatusOK, rec.Code)
	s.Contains(rec.Header().Get("Content-Disposition"), "setsbymuscle-backup-")
	exported := rec.Body.String()

	rec = s.do("POST", "/backup/reset", "")
	s.Require().Equal(http.StatusOK, rec.Code)
	s.Zero(s.ledger.DaysCount())
	s.Equal(7, s.settings.Get(context.Background()).WindowDays)

	rec = s.do("POST", "/backup/import", `{"version":"1.0.0"}`)
	s.Equal(http.StatusBadRequest, rec.Code)
	rec = s.do("POST", "/backup/import", `garbage`)
	s.Equal(http.StatusBadRequest, rec.Code)

	rec = s.do("POST", "/backup/import", exported)
	s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())
	s.Equal(1, s.ledger.DaysCount())
	s.Equal(28, s.settings.Get(context.Background()).WindowDays)
	s.Equal(2.0, s.ledger.GetDay(testNow).Entries[0].Credit()["Back"])
}

func (s *HandlerSuite) TestUnknownMethod() {
	rec := s.do("DELETE", "/history", "")
	s.Equal(http.StatusMethodNotAllowed, rec.Code)
}

func TestHandler_PersistenceErrorIs500(t *testing.T) {
	ctrl := gomock.NewController(t)
	ledgerMock := NewMocktrainingLedger(ctrl)
	catalogMock := NewMockexerciseCatalog(ctrl)

	h := handler.New(handler.Params{
		Catalog: catalogMock,
		Ledger:  ledgerMock,
		Now:     func() time.Time { return testNow },
	})
	r := mux.NewRouter()
	h.RegisterRoutes(r)

	date := time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)
	ledgerMock.EXPECT().
		AppendManualEntry(gomock.Any(), []string{"Chest"}, 3.0, date).
		Return(&ledger.ManualEntry{ID: "e_1"}, &ledger.PersistenceError{Op: "append manual entry", Err: errors.New("disk full")})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/days/2024-06-10/entries/manual", strings.NewReader(`{"muscles":["Chest"],"sets":3}`))
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "data may not be saved")

	bench := catalog.Exercise{ID: "bench_press", MuscleGroups: map[string]float64{"Chest": 1}}
	catalogMock.EXPECT().ByID("bench_press").Return(bench, true)
	ledgerMock.EXPECT().
		AppendExerciseEntry(gomock.Any(), bench, 3, 8, 60.0, date).
		Return(nil, errors.New("boom"))

	rec = httptest.NewRecorder()
	req = httptest.NewRequest("POST", "/days/2024-06-10/entries/exercise", strings.NewReader(`{"exerciseId":"bench_press","sets":3,"reps":8,"weight":60}`))
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "boom")
}

func TestHandler_ExportFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	backupMock := NewMockbackupService(ctrl)
	backupMock.EXPECT().Export(gomock.Any()).Return(nil, errors.New("store unreachable"))

	h := handler.New(handler.Params{Backup: backupMock})
	rec := httptest.NewRecorder()
	h.HandleExport(rec, httptest.NewRequest("GET", "/backup/export", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestHandler_WriteMiddlewares(t *testing.T) {
	ctrl := gomock.NewController(t)
	ledgerMock := NewMocktrainingLedger(ctrl)
	settingsMock := NewMocksettingsService(ctrl)

	h := handler.New(handler.Params{
		Ledger:   ledgerMock,
		Settings: settingsMock,
		Now:      func() time.Time { return testNow },
	})

	blockWrites := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "slow down", http.StatusTooManyRequests)
		})
	}
	r := mux.NewRouter()
	h.RegisterRoutes(r, blockWrites)

	settingsMock.EXPECT().Get(gomock.Any()).Return(settings.Settings{WindowDays: 7})
	ledgerMock.EXPECT().History().Return(nil).Times(2)

	for _, tc := range []struct {
		method, path string
		code         int
	}{
		{"GET", "/settings", http.StatusOK},
		{"GET", "/history", http.StatusOK},
		{"PUT", "/settings", http.StatusTooManyRequests},
		{"POST", "/days/today/entries/quick", http.StatusTooManyRequests},
		{"POST", "/backup/reset", http.StatusTooManyRequests},
	} {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(tc.method, tc.path, strings.NewReader(`{}`)))
		assert.Equal(t, tc.code, rec.Code, tc.method+" "+tc.path)
	}

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest("GET", "/history", nil))
	require.Equal(t, http.StatusOK, rec.Code)
}
