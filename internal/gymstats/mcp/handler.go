package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/2beens/setsbymuscle/internal/gymstats/catalog"
	"github.com/2beens/setsbymuscle/internal/gymstats/ledger"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Handler handles MCP tool requests and responses: parses input, calls the service, formats MCP result.
type Handler struct {
	service contextService
	now     func() time.Time
}

// NewHandler builds a handler with the given service.
func NewHandler(service contextService) *Handler {
	return &Handler{
		service: service,
		now:     time.Now,
	}
}

func errorResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
		IsError: true,
	}
}

func jsonResult(v any) *mcp.CallToolResult {
	raw, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return errorResult("Error encoding response: " + err.Error())
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: string(raw)}},
	}
}

// parseDate reads a YYYY-MM-DD date; empty means today.
func (h *Handler) parseDate(raw string) (time.Time, bool) {
	if raw == "" {
		now := h.now()
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC), true
	}
	t, err := ledger.ParseDateKey(raw)
	return t, err == nil
}

// GetCatalogOverviewTool returns the MCP tool handler for get_catalog_overview.
func (h *Handler) GetCatalogOverviewTool() func(context.Context, *mcp.CallToolRequest, any) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, _ *mcp.CallToolRequest, _ any) (*mcp.CallToolResult, any, error) {
		return &mcp.CallToolResult{
			Content: []mcp.Content{&mcp.TextContent{Text: h.service.CatalogOverview(ctx)}},
		}, nil, nil
	}
}

// SearchExercisesInput is the input for search_exercises.
type SearchExercisesInput struct {
	Query string `json:"query" jsonschema:"Search text, at least 2 characters (e.g. bench, rdl, quads)"`
}

// SearchExercisesTool returns the MCP tool handler for search_exercises.
func (h *Handler) SearchExercisesTool() func(context.Context, *mcp.CallToolRequest, SearchExercisesInput) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, _ *mcp.CallToolRequest, in SearchExercisesInput) (*mcp.CallToolResult, any, error) {
		if len([]rune(in.Query)) < 2 {
			return errorResult("Query too short: use at least 2 characters"), nil, nil
		}
		return jsonResult(h.service.SearchExercises(ctx, in.Query)), nil, nil
	}
}

// WindowInput is the input for get_muscle_totals and get_muscle_intensity.
type WindowInput struct {
	EndDate    string `json:"end_date,omitempty" jsonschema:"Last day of the window (YYYY-MM-DD), defaults to today"`
	WindowDays int    `json:"window_days,omitempty" jsonschema:"Window length in days, defaults to the stored setting"`
}

// GetMuscleTotalsTool returns the MCP tool handler for get_muscle_totals.
func (h *Handler) GetMuscleTotalsTool() func(context.Context, *mcp.CallToolRequest, WindowInput) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, _ *mcp.CallToolRequest, in WindowInput) (*mcp.CallToolResult, any, error) {
		end, ok := h.parseDate(in.EndDate)
		if !ok {
			return errorResult("Invalid end_date: use YYYY-MM-DD"), nil, nil
		}
		if in.WindowDays < 0 || in.WindowDays > catalog.MaxWindowDays {
			return errorResult(fmt.Sprintf("Invalid window_days: must be between 0 and %d", catalog.MaxWindowDays)), nil, nil
		}
		return jsonResult(h.service.MuscleTotals(ctx, end, in.WindowDays)), nil, nil
	}
}

// GetMuscleIntensityTool returns the MCP tool handler for get_muscle_intensity.
func (h *Handler) GetMuscleIntensityTool() func(context.Context, *mcp.CallToolRequest, WindowInput) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, _ *mcp.CallToolRequest, in WindowInput) (*mcp.CallToolResult, any, error) {
		end, ok := h.parseDate(in.EndDate)
		if !ok {
			return errorResult("Invalid end_date: use YYYY-MM-DD"), nil, nil
		}
		if in.WindowDays < 0 || in.WindowDays > catalog.MaxWindowDays {
			return errorResult(fmt.Sprintf("Invalid window_days: must be between 0 and %d", catalog.MaxWindowDays)), nil, nil
		}
		return jsonResult(h.service.MuscleIntensity(ctx, end, in.WindowDays)), nil, nil
	}
}

// TrainingDayInput is the input for get_training_day.
type TrainingDayInput struct {
	Date string `json:"date,omitempty" jsonschema:"Day to read (YYYY-MM-DD), defaults to today"`
}

// GetTrainingDayTool returns the MCP tool handler for get_training_day.
func (h *Handler) GetTrainingDayTool() func(context.Context, *mcp.CallToolRequest, TrainingDayInput) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, _ *mcp.CallToolRequest, in TrainingDayInput) (*mcp.CallToolResult, any, error) {
		date, ok := h.parseDate(in.Date)
		if !ok {
			return errorResult("Invalid date: use YYYY-MM-DD"), nil, nil
		}
		return jsonResult(h.service.TrainingDay(ctx, date)), nil, nil
	}
}
