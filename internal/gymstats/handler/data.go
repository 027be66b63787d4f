package handler

import (
	"fmt"
	"net/http"

	"github.com/2beens/setsbymuscle/internal/gymstats/backup"
	"github.com/2beens/setsbymuscle/internal/telemetry/tracing"
	"github.com/2beens/setsbymuscle/pkg"

	log "github.com/sirupsen/logrus"
)

func (h *Handler) HandleGetSettings(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.settings.get")
	defer span.End()

	pkg.WriteJSON(w, h.settings.Get(ctx), http.StatusOK)
}

func (h *Handler) HandleUpdateSettings(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.settings.update")
	defer span.End()

	// fields left out of the body keep their current value
	s := h.settings.Get(ctx)
	if err := decodeJSON(w, r, &s); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.settings.Update(ctx, s); err != nil {
		writeError(w, "update settings", err)
		return
	}

	log.Infof("settings updated: window %d days, targets %v-%v", s.WindowDays, s.Targets.Min, s.Targets.Max)
	pkg.WriteJSON(w, s, http.StatusOK)
}

func (h *Handler) HandleExport(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.backup.export")
	defer span.End()

	doc, err := h.backup.Export(ctx)
	if err != nil {
		writeError(w, "export", err)
		return
	}

	filename := fmt.Sprintf("setsbymuscle-backup-%s.json", doc.ExportedAt.Format("2006-01-02"))
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	pkg.WriteJSON(w, doc, http.StatusOK)
}

// HandleImport replaces all stored data with the uploaded export document.
func (h *Handler) HandleImport(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.backup.import")
	defer span.End()

	doc, err := backup.ParseDocument(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		writeError(w, "import", err)
		return
	}
	if err := h.backup.Import(ctx, doc); err != nil {
		writeError(w, "import", err)
		return
	}

	pkg.WriteJSON(w, map[string]any{
		"imported": len(doc.Data),
		"settings": h.settings.Get(ctx),
	}, http.StatusOK)
}

func (h *Handler) HandleReset(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.backup.reset")
	defer span.End()

	if err := h.backup.Reset(ctx); err != nil {
		writeError(w, "reset", err)
		return
	}
	log.Warnln("all training data and settings were reset")
	pkg.WriteJSON(w, map[string]bool{"reset": true}, http.StatusOK)
}
