package handler

import (
	"net/http"

	"github.com/2beens/setsbymuscle/internal/gymstats/ledger"
	"github.com/2beens/setsbymuscle/internal/telemetry/tracing"
	"github.com/2beens/setsbymuscle/pkg"

	log "github.com/sirupsen/logrus"
)

type AddExerciseEntryRequest struct {
	ExerciseID string  `json:"exerciseId"`
	Sets       int     `json:"sets"`
	Reps       int     `json:"reps"`
	Weight     float64 `json:"weight"`
}

type AddManualEntryRequest struct {
	Muscles []string `json:"muscles"`
	Sets    float64  `json:"sets"`
}

type AddQuickEntryRequest struct {
	Text string `json:"text"`
}

type SetNoteRequest struct {
	Note string `json:"note"`
}

type HistoryResponse struct {
	Days  []ledger.TrainingDay `json:"days"`
	Total int                  `json:"total"`
}

func (h *Handler) HandleAddExerciseEntry(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.days.addExerciseEntry")
	defer span.End()

	date, err := h.dateParam(r)
	if err != nil {
		writeError(w, "add exercise entry", err)
		return
	}

	var req AddExerciseEntryRequest
	if err := decodeJSON(w, r, &req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if req.ExerciseID == "" {
		http.Error(w, "exerciseId is required", http.StatusBadRequest)
		return
	}

	ex, ok := h.catalog.ByID(req.ExerciseID)
	if !ok {
		http.Error(w, "exercise not found", http.StatusNotFound)
		return
	}

	entry, err := h.ledger.AppendExerciseEntry(ctx, ex, req.Sets, req.Reps, req.Weight, date)
	if err != nil {
		writeError(w, "add exercise entry", err)
		return
	}

	log.Debugf("exercise entry added: %s [%s] %dx%d", entry.ID, entry.ExerciseID, entry.Sets, entry.Reps)
	pkg.WriteJSON(w, entry, http.StatusCreated)
}

func (h *Handler) HandleAddManualEntry(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.days.addManualEntry")
	defer span.End()

	date, err := h.dateParam(r)
	if err != nil {
		writeError(w, "add manual entry", err)
		return
	}

	var req AddManualEntryRequest
	if err := decodeJSON(w, r, &req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	entry, err := h.ledger.AppendManualEntry(ctx, req.Muscles, req.Sets, date)
	if err != nil {
		writeError(w, "add manual entry", err)
		return
	}

	log.Debugf("manual entry added: %s %v", entry.ID, entry.Muscles)
	pkg.WriteJSON(w, entry, http.StatusCreated)
}

func (h *Handler) HandleAddQuickEntry(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.days.addQuickEntry")
	defer span.End()

	date, err := h.dateParam(r)
	if err != nil {
		writeError(w, "add quick entry", err)
		return
	}

	var req AddQuickEntryRequest
	if err := decodeJSON(w, r, &req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	entry, err := h.ledger.AppendQuickEntry(ctx, req.Text, date)
	if err != nil {
		writeError(w, "add quick entry", err)
		return
	}

	log.Debugf("quick entry added: %s [%s] -> %s", entry.ID, entry.Text, entry.ExerciseID)
	pkg.WriteJSON(w, entry, http.StatusCreated)
}

func (h *Handler) HandleSetNote(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.days.setNote")
	defer span.End()

	date, err := h.dateParam(r)
	if err != nil {
		writeError(w, "set day note", err)
		return
	}

	var req SetNoteRequest
	if err := decodeJSON(w, r, &req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.ledger.SetDayNote(ctx, date, req.Note); err != nil {
		writeError(w, "set day note", err)
		return
	}

	pkg.WriteJSON(w, h.ledger.GetDay(date), http.StatusOK)
}

func (h *Handler) HandleGetDay(w http.ResponseWriter, r *http.Request) {
	_, span := tracing.GlobalTracer.Start(r.Context(), "handler.days.get")
	defer span.End()

	date, err := h.dateParam(r)
	if err != nil {
		writeError(w, "get day", err)
		return
	}
	pkg.WriteJSON(w, h.ledger.GetDay(date), http.StatusOK)
}

func (h *Handler) HandleHistory(w http.ResponseWriter, r *http.Request) {
	_, span := tracing.GlobalTracer.Start(r.Context(), "handler.days.history")
	defer span.End()

	days := h.ledger.History()
	if days == nil {
		days = []ledger.TrainingDay{}
	}
	pkg.WriteJSON(w, HistoryResponse{
		Days:  days,
		Total: len(days),
	}, http.StatusOK)
}
