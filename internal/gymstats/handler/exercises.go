package handler

import (
	"net/http"

	"github.com/2beens/setsbymuscle/internal/gymstats/catalog"
	"github.com/2beens/setsbymuscle/internal/telemetry/tracing"
	"github.com/2beens/setsbymuscle/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

type CatalogInfoResponse struct {
	MuscleGroups  []string                    `json:"muscleGroups"`
	Categories    map[catalog.Category]string `json:"categories"`
	WindowOptions []int                       `json:"windowOptions"`
	Exercises     int                         `json:"exercises"`
}

type ExercisesResponse struct {
	Exercises []catalog.Exercise `json:"exercises"`
	Total     int                `json:"total"`
}

type SearchResponse struct {
	Query   string                 `json:"query"`
	Results []catalog.SearchResult `json:"results"`
}

func (h *Handler) HandleCatalogInfo(w http.ResponseWriter, r *http.Request) {
	_, span := tracing.GlobalTracer.Start(r.Context(), "handler.catalog.info")
	defer span.End()

	pkg.WriteJSON(w, CatalogInfoResponse{
		MuscleGroups:  h.catalog.MuscleGroups(),
		Categories:    h.catalog.Categories(),
		WindowOptions: h.settings.WindowOptions(),
		Exercises:     len(h.catalog.Exercises()),
	}, http.StatusOK)
}

func (h *Handler) HandleSearchExercises(w http.ResponseWriter, r *http.Request) {
	_, span := tracing.GlobalTracer.Start(r.Context(), "handler.exercises.search")
	defer span.End()

	query := r.URL.Query().Get("q")
	results := h.catalog.Search(query)
	log.Tracef("exercise search [%s]: %d results", query, len(results))

	pkg.WriteJSON(w, SearchResponse{
		Query:   query,
		Results: results,
	}, http.StatusOK)
}

func (h *Handler) HandleGetExercise(w http.ResponseWriter, r *http.Request) {
	_, span := tracing.GlobalTracer.Start(r.Context(), "handler.exercises.get")
	defer span.End()

	id := mux.Vars(r)["id"]
	ex, ok := h.catalog.ByID(id)
	if !ok {
		http.Error(w, "exercise not found", http.StatusNotFound)
		return
	}
	pkg.WriteJSON(w, ex, http.StatusOK)
}

// HandleListExercises lists the whole catalog, or only the exercises working
// the muscle group given in the muscle query param.
func (h *Handler) HandleListExercises(w http.ResponseWriter, r *http.Request) {
	_, span := tracing.GlobalTracer.Start(r.Context(), "handler.exercises.list")
	defer span.End()

	var exercises []catalog.Exercise
	if muscle := r.URL.Query().Get("muscle"); muscle != "" {
		exercises = h.catalog.SearchByMuscleGroup(muscle)
	} else {
		exercises = h.catalog.Exercises()
	}
	if exercises == nil {
		exercises = []catalog.Exercise{}
	}

	pkg.WriteJSON(w, ExercisesResponse{
		Exercises: exercises,
		Total:     len(exercises),
	}, http.StatusOK)
}
