package handler

import (
	"net/http"
	"strconv"

	"github.com/2beens/setsbymuscle/internal/gymstats/ledger"
	"github.com/2beens/setsbymuscle/internal/gymstats/stats"
	"github.com/2beens/setsbymuscle/internal/telemetry/tracing"
	"github.com/2beens/setsbymuscle/pkg"
)

type TotalsResponse struct {
	End        string                  `json:"end"`
	WindowDays int                     `json:"windowDays"`
	Targets    stats.Targets           `json:"targets"`
	Totals     stats.MuscleTotals      `json:"totals"`
	Statuses   map[string]stats.Status `json:"statuses"`
	Total      float64                 `json:"total"`
	Daily      []stats.DayTotals       `json:"daily,omitempty"`
}

type IntensityResponse struct {
	End        string                          `json:"end"`
	WindowDays int                             `json:"windowDays"`
	Intensity  stats.MuscleIntensity           `json:"intensity"`
	Levels     map[string]stats.IntensityLevel `json:"levels"`
}

// HandleTotals reports per muscle set totals over the window ending at ?end=,
// classified against the stored targets. With ?daily=true the per day
// breakdown is included.
func (h *Handler) HandleTotals(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.stats.totals")
	defer span.End()

	end, windowDays, err := h.windowQuery(r)
	if err != nil {
		writeError(w, "muscle totals", err)
		return
	}

	targets := h.settings.Get(ctx).Targets
	totals := h.analyzer.MuscleTotals(ctx, end, windowDays)
	resp := TotalsResponse{
		End:        ledger.DateKey(end),
		WindowDays: windowDays,
		Targets:    targets,
		Totals:     totals,
		Statuses:   totals.Statuses(targets),
		Total:      totals.Total(),
	}
	if daily, _ := strconv.ParseBool(r.URL.Query().Get("daily")); daily {
		resp.Daily = h.analyzer.DailyTotals(ctx, end, windowDays)
	}

	pkg.WriteJSON(w, resp, http.StatusOK)
}

func (h *Handler) HandleIntensity(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.stats.intensity")
	defer span.End()

	end, windowDays, err := h.windowQuery(r)
	if err != nil {
		writeError(w, "muscle intensity", err)
		return
	}

	intensity := h.analyzer.Intensity(ctx, end, windowDays)
	pkg.WriteJSON(w, IntensityResponse{
		End:        ledger.DateKey(end),
		WindowDays: windowDays,
		Intensity:  intensity,
		Levels:     intensity.Levels(),
	}, http.StatusOK)
}
