package mcp

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// NewServer builds an MCP server with the training tools: catalog overview, exercise search,
// muscle totals, muscle intensity, training day.
// Used by cmd/gymstats_mcp (stdio) and mounted by the service at /mcp over HTTP.
func NewServer(svc contextService) *mcp.Server {
	h := NewHandler(svc)
	s := mcp.NewServer(&mcp.Implementation{
		Name:    "setsbymuscle",
		Version: "1.0.0",
	}, nil)

	mcp.AddTool(s, &mcp.Tool{
		Name:        "get_catalog_overview",
		Description: "Returns the exercise catalog as markdown: every exercise by category with the muscle groups it trains and their allocation factors. Use when you need to know which exercises exist or how sets are credited.",
	}, h.GetCatalogOverviewTool())

	mcp.AddTool(s, &mcp.Tool{
		Name:        "search_exercises",
		Description: "Searches the exercise catalog by name, alias, muscle group, category or description and returns up to 10 ranked matches. Arg: query (min 2 characters). Use to resolve free text like 'rdl' or 'chest' to exercise ids.",
	}, h.SearchExercisesTool())

	mcp.AddTool(s, &mcp.Tool{
		Name:        "get_muscle_totals",
		Description: "Returns the number of sets credited to each muscle group over a window of days ending at end_date, with under/good/high status against the weekly targets. Optional: end_date (YYYY-MM-DD), window_days. Use when asked which muscles are under or over trained.",
	}, h.GetMuscleTotalsTool())

	mcp.AddTool(s, &mcp.Tool{
		Name:        "get_muscle_intensity",
		Description: "Returns a 0..1 intensity score per muscle group (70% set volume, 30% weight, relative to the most trained muscle) over a window ending at end_date, with a low..max level. Optional: end_date (YYYY-MM-DD), window_days.",
	}, h.GetMuscleIntensityTool())

	mcp.AddTool(s, &mcp.Tool{
		Name:        "get_training_day",
		Description: "Returns the note and all logged entries (exercise, manual and quick) of one day, with the sets credited per muscle. Optional: date (YYYY-MM-DD, defaults to today).",
	}, h.GetTrainingDayTool())

	return s
}
