package test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/2beens/setsbymuscle/internal/gymstats/backup"
	"github.com/2beens/setsbymuscle/internal/gymstats/handler"
	"github.com/2beens/setsbymuscle/internal/gymstats/ledger"
	"github.com/2beens/setsbymuscle/internal/gymstats/settings"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type entryResponse struct {
	ID         string             `json:"id"`
	Type       string             `json:"type"`
	MuscleSets map[string]float64 `json:"muscleSets"`
}

func (s *IntegrationTestSuite) doRequest(
	ctx context.Context,
	method, path string,
	body any,
) (int, []byte) {
	var reqBody io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(s.T(), err)
		reqBody = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, serverEndpoint+path, reqBody)
	require.NoError(s.T(), err)
	req.Header.Set("User-Agent", "test-agent")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := s.httpClient.Do(req)
	require.NoError(s.T(), err)
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	require.NoError(s.T(), err)
	return resp.StatusCode, respBytes
}

func (s *IntegrationTestSuite) resetAll(ctx context.Context) {
	status, body := s.doRequest(ctx, http.MethodPost, "/backup/reset", nil)
	require.Equal(s.T(), http.StatusOK, status, string(body))
}

func (s *IntegrationTestSuite) addExerciseEntry(ctx context.Context, date string, req handler.AddExerciseEntryRequest) entryResponse {
	status, body := s.doRequest(ctx, http.MethodPost, fmt.Sprintf("/days/%s/entries/exercise", date), req)
	require.Equal(s.T(), http.StatusCreated, status, string(body))

	var entry entryResponse
	require.NoError(s.T(), json.Unmarshal(body, &entry))
	return entry
}

func (s *IntegrationTestSuite) addManualEntry(ctx context.Context, date string, req handler.AddManualEntryRequest) entryResponse {
	status, body := s.doRequest(ctx, http.MethodPost, fmt.Sprintf("/days/%s/entries/manual", date), req)
	require.Equal(s.T(), http.StatusCreated, status, string(body))

	var entry entryResponse
	require.NoError(s.T(), json.Unmarshal(body, &entry))
	return entry
}

func (s *IntegrationTestSuite) getTotals(ctx context.Context, end string, window int) handler.TotalsResponse {
	status, body := s.doRequest(ctx, http.MethodGet, fmt.Sprintf("/stats/totals?end=%s&window=%d", end, window), nil)
	require.Equal(s.T(), http.StatusOK, status, string(body))

	var totals handler.TotalsResponse
	require.NoError(s.T(), json.Unmarshal(body, &totals))
	return totals
}

func (s *IntegrationTestSuite) getSettings(ctx context.Context) settings.Settings {
	status, body := s.doRequest(ctx, http.MethodGet, "/settings", nil)
	require.Equal(s.T(), http.StatusOK, status, string(body))

	var got settings.Settings
	require.NoError(s.T(), json.Unmarshal(body, &got))
	return got
}

// storedDays reads the training days document straight from postgres.
func (s *IntegrationTestSuite) storedDays(ctx context.Context) map[string]json.RawMessage {
	var raw []byte
	err := s.DB.QueryRowContext(
		ctx,
		"SELECT value FROM sbm_document WHERE key = $1",
		ledger.StorageKey,
	).Scan(&raw)
	require.NoError(s.T(), err)

	days := map[string]json.RawMessage{}
	require.NoError(s.T(), json.Unmarshal(raw, &days))
	return days
}

func (s *IntegrationTestSuite) TestTrainingDays() {
	ctx := context.Background()
	s.resetAll(ctx)

	bench := s.addExerciseEntry(ctx, "2024-06-10", handler.AddExerciseEntryRequest{
		ExerciseID: "bench_press",
		Sets:       3,
		Reps:       8,
		Weight:     60,
	})
	assert.NotEmpty(s.T(), bench.ID)
	assert.Equal(s.T(), "exercise", bench.Type)
	assert.Equal(s.T(), map[string]float64{"Chest": 3, "Triceps": 1.5, "Front Delts": 1.5}, bench.MuscleSets)

	manual := s.addManualEntry(ctx, "2024-06-09", handler.AddManualEntryRequest{
		Muscles: []string{"Core"},
		Sets:    2,
	})
	assert.Equal(s.T(), "manual", manual.Type)
	assert.Equal(s.T(), map[string]float64{"Core": 2}, manual.MuscleSets)

	totals := s.getTotals(ctx, "2024-06-10", 7)
	assert.Equal(s.T(), "2024-06-10", totals.End)
	assert.Equal(s.T(), 7, totals.WindowDays)
	assert.Equal(s.T(), 3.0, totals.Totals["Chest"])
	assert.Equal(s.T(), 1.5, totals.Totals["Triceps"])
	assert.Equal(s.T(), 2.0, totals.Totals["Core"])
	assert.Equal(s.T(), 0.0, totals.Totals["Quads"])
	assert.Equal(s.T(), 8.0, totals.Total)

	// the window ending the day before leaves the bench press out
	earlier := s.getTotals(ctx, "2024-06-09", 1)
	assert.Equal(s.T(), 0.0, earlier.Totals["Chest"])
	assert.Equal(s.T(), 2.0, earlier.Total)

	status, body := s.doRequest(ctx, http.MethodGet, "/days/2024-06-10", nil)
	require.Equal(s.T(), http.StatusOK, status)
	var day struct {
		ID      string          `json:"id"`
		Entries []entryResponse `json:"entries"`
	}
	require.NoError(s.T(), json.Unmarshal(body, &day))
	assert.Equal(s.T(), "2024-06-10", day.ID)
	require.Len(s.T(), day.Entries, 1)
	assert.Equal(s.T(), bench.ID, day.Entries[0].ID)

	days := s.storedDays(ctx)
	assert.Len(s.T(), days, 2)
	assert.Contains(s.T(), days, "2024-06-10")
	assert.Contains(s.T(), days, "2024-06-09")
}

func (s *IntegrationTestSuite) TestEntryValidation() {
	ctx := context.Background()
	s.resetAll(ctx)

	status, _ := s.doRequest(ctx, http.MethodPost, "/days/2024-06-10/entries/exercise", handler.AddExerciseEntryRequest{
		ExerciseID: "not_an_exercise",
		Sets:       3,
		Reps:       8,
	})
	assert.Equal(s.T(), http.StatusNotFound, status)

	status, _ = s.doRequest(ctx, http.MethodPost, "/days/2024-06-10/entries/exercise", handler.AddExerciseEntryRequest{
		ExerciseID: "bench_press",
		Sets:       0,
		Reps:       8,
	})
	assert.Equal(s.T(), http.StatusBadRequest, status)

	status, _ = s.doRequest(ctx, http.MethodPost, "/days/2024-06-10/entries/manual", handler.AddManualEntryRequest{
		Muscles: []string{},
		Sets:    2,
	})
	assert.Equal(s.T(), http.StatusBadRequest, status)

	// nothing rejected was persisted
	totals := s.getTotals(ctx, "2024-06-10", 28)
	assert.Equal(s.T(), 0.0, totals.Total)
}

func (s *IntegrationTestSuite) TestSettingsAndBackup() {
	ctx := context.Background()
	s.resetAll(ctx)

	assert.Equal(s.T(), settings.DefaultWindowDays, s.getSettings(ctx).WindowDays)

	status, body := s.doRequest(ctx, http.MethodPut, "/settings", map[string]any{
		"windowDays": 14,
		"targets":    map[string]float64{"min": 8, "max": 12},
	})
	require.Equal(s.T(), http.StatusOK, status, string(body))

	status, _ = s.doRequest(ctx, http.MethodPut, "/settings", map[string]any{"windowDays": 5})
	assert.Equal(s.T(), http.StatusBadRequest, status)
	assert.Equal(s.T(), 14, s.getSettings(ctx).WindowDays)

	s.addManualEntry(ctx, "2024-06-01", handler.AddManualEntryRequest{
		Muscles: []string{"Quads", "Glutes"},
		Sets:    4,
	})

	status, body = s.doRequest(ctx, http.MethodGet, "/backup/export", nil)
	require.Equal(s.T(), http.StatusOK, status, string(body))
	var doc backup.Document
	require.NoError(s.T(), json.Unmarshal(body, &doc))
	assert.Equal(s.T(), backup.FormatVersion, doc.Version)
	assert.Contains(s.T(), doc.Data, ledger.StorageKey)
	assert.Contains(s.T(), doc.Data, settings.StorageKey)

	s.resetAll(ctx)
	assert.Equal(s.T(), settings.DefaultWindowDays, s.getSettings(ctx).WindowDays)
	assert.Equal(s.T(), 0.0, s.getTotals(ctx, "2024-06-01", 7).Total)

	var count int
	require.NoError(s.T(), s.DB.QueryRowContext(ctx, "SELECT count(*) FROM sbm_document").Scan(&count))
	assert.Equal(s.T(), 0, count)

	status, body = s.doRequest(ctx, http.MethodPost, "/backup/import", doc)
	require.Equal(s.T(), http.StatusOK, status, string(body))

	restored := s.getSettings(ctx)
	assert.Equal(s.T(), 14, restored.WindowDays)
	assert.Equal(s.T(), 8.0, restored.Targets.Min)
	assert.Equal(s.T(), 12.0, restored.Targets.Max)

	totals := s.getTotals(ctx, "2024-06-01", 7)
	assert.Equal(s.T(), 4.0, totals.Totals["Quads"])
	assert.Equal(s.T(), 4.0, totals.Totals["Glutes"])

	// a broken document is rejected and leaves the data alone
	status, _ = s.doRequest(ctx, http.MethodPost, "/backup/import", map[string]any{"version": "1"})
	assert.Equal(s.T(), http.StatusBadRequest, status)
	assert.Equal(s.T(), 14, s.getSettings(ctx).WindowDays)
}

func (s *IntegrationTestSuite) TestCatalogRoutes() {
	ctx := context.Background()

	status, body := s.doRequest(ctx, http.MethodGet, "/exercises/search?q=bench", nil)
	require.Equal(s.T(), http.StatusOK, status, string(body))
	var search handler.SearchResponse
	require.NoError(s.T(), json.Unmarshal(body, &search))
	ids := make([]string, 0, len(search.Results))
	for _, res := range search.Results {
		ids = append(ids, res.Exercise.ID)
	}
	assert.Contains(s.T(), ids, "bench_press")

	status, _ = s.doRequest(ctx, http.MethodGet, "/exercises/bench_press", nil)
	assert.Equal(s.T(), http.StatusOK, status)

	status, body = s.doRequest(ctx, http.MethodGet, "/version", nil)
	assert.Equal(s.T(), http.StatusOK, status)
	assert.Equal(s.T(), "test-version-info", string(body))
}
