package catalog

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/2beens/setsbymuscle/internal/telemetry/metrics"

	log "github.com/sirupsen/logrus"
)

const (
	minSearchQueryLen = 2
	maxSearchResults  = 10
)

// search signal weights
const (
	scoreExactName       = 100
	scoreDisplayName     = 50
	scoreAlias           = 30
	scoreMuscleGroup     = 25
	scorePartialName     = 20
	scoreCategory        = 15
	scoreDescriptionPart = 10
)

var muscleAbbreviations = map[string]string{
	"bi":    "bicep",
	"tri":   "tricep",
	"delts": "delt",
	"quads": "quad",
	"hams":  "hamstring",
}

// SearchCache stores encoded search results per normalized query.
type SearchCache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte) bool
}

type Option func(c *Catalog)

func WithSearchCache(cache SearchCache) Option {
	return func(c *Catalog) {
		c.searchCache = cache
	}
}

func WithMetrics(m *metrics.Manager) Option {
	return func(c *Catalog) {
		c.metrics = m
	}
}

// Catalog is the immutable, validated exercise registry.
type Catalog struct {
	doc       *Document
	exercises []Exercise
	byID      map[string]int

	searchCache SearchCache
	metrics     *metrics.Manager
}

type SearchResult struct {
	Exercise Exercise `json:"exercise"`
	Score    int      `json:"score"`
}

// New validates the document and builds a catalog from it.
func New(doc *Document, opts ...Option) (*Catalog, error) {
	if doc == nil {
		return nil, fmt.Errorf("nil catalog document")
	}

	full := doc.withDefaults()
	if err := Validate(full); err != nil {
		return nil, fmt.Errorf("invalid catalog: %w", err)
	}
	if unused := UnusedMuscleGroups(full); len(unused) > 0 {
		log.Warnf("catalog: unused muscle groups: %s", strings.Join(unused, ", "))
	}

	c := &Catalog{
		doc:       full,
		exercises: make([]Exercise, len(full.Exercises)),
		byID:      make(map[string]int, len(full.Exercises)),
	}
	for i, ex := range full.Exercises {
		c.exercises[i] = cloneExercise(ex)
		c.byID[ex.ID] = i
	}

	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// FindByName does a case-insensitive, trimmed exact match against the
// canonical name or any alias.
func (c *Catalog) FindByName(name string) (Exercise, bool) {
	normalized := strings.ToLower(strings.TrimSpace(name))
	if normalized == "" {
		return Exercise{}, false
	}
	for _, ex := range c.exercises {
		if strings.ToLower(ex.Name) == normalized || ex.hasAlias(normalized) {
			return cloneExercise(ex), true
		}
	}
	return Exercise{}, false
}

func (c *Catalog) ByID(id string) (Exercise, bool) {
	i, ok := c.byID[id]
	if !ok {
		return Exercise{}, false
	}
	return cloneExercise(c.exercises[i]), true
}

// Search ranks exercises against the query by summing the weights of every
// matching signal. Ties keep catalog order. At most 10 results are returned.
func (c *Catalog) Search(query string) []SearchResult {
	q := strings.ToLower(strings.TrimSpace(query))
	if len([]rune(q)) < minSearchQueryLen {
		return []SearchResult{}
	}

	if c.metrics != nil {
		c.metrics.CounterSearches.Inc()
	}
	if cached, ok := c.cachedSearch(q); ok {
		if c.metrics != nil {
			c.metrics.CounterSearchCacheHits.Inc()
		}
		return cached
	}

	results := make([]SearchResult, 0)
	for _, ex := range c.exercises {
		if score := scoreExercise(ex, q); score > 0 {
			results = append(results, SearchResult{Exercise: ex, Score: score})
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	if len(results) > maxSearchResults {
		results = results[:maxSearchResults]
	}

	c.cacheSearch(q, results)

	out := make([]SearchResult, len(results))
	for i, r := range results {
		out[i] = SearchResult{Exercise: cloneExercise(r.Exercise), Score: r.Score}
	}
	return out
}

func scoreExercise(ex Exercise, q string) int {
	score := 0
	name := strings.ToLower(ex.Name)

	if name == q {
		score += scoreExactName
	}
	if strings.Contains(strings.ToLower(ex.DisplayName), q) {
		score += scoreDisplayName
	}
	for _, alias := range ex.Aliases {
		if strings.Contains(strings.ToLower(alias), q) {
			score += scoreAlias
			break
		}
	}
	if strings.Contains(name, q) {
		score += scorePartialName
	}
	if strings.Contains(strings.ToLower(ex.Description), q) {
		score += scoreDescriptionPart
	}
	for muscle := range ex.MuscleGroups {
		if muscleMatches(muscle, q) {
			score += scoreMuscleGroup
			break
		}
	}
	if strings.Contains(strings.ToLower(ex.Category.String()), q) {
		score += scoreCategory
	}

	return score
}

func muscleMatches(muscle, q string) bool {
	m := strings.ToLower(muscle)
	if m == q || strings.Contains(m, q) {
		return true
	}
	if stem, ok := muscleAbbreviations[q]; ok && strings.Contains(m, stem) {
		return true
	}
	return false
}

// SearchByMuscleGroup returns the exercises targeting a muscle group matching
// the given name, abbreviations included (e.g. "bi", "quads").
func (c *Catalog) SearchByMuscleGroup(muscle string) []Exercise {
	q := strings.ToLower(strings.TrimSpace(muscle))
	if q == "" {
		return []Exercise{}
	}
	out := make([]Exercise, 0)
	for _, ex := range c.exercises {
		for m := range ex.MuscleGroups {
			if muscleMatches(m, q) {
				out = append(out, cloneExercise(ex))
				break
			}
		}
	}
	return out
}

func (c *Catalog) Exercises() []Exercise {
	out := make([]Exercise, len(c.exercises))
	for i, ex := range c.exercises {
		out[i] = cloneExercise(ex)
	}
	return out
}

func (c *Catalog) MuscleGroups() []string {
	return append([]string(nil), c.doc.MuscleGroups...)
}

func (c *Catalog) Categories() map[Category]string {
	out := make(map[Category]string, len(c.doc.Categories))
	for k, v := range c.doc.Categories {
		out[k] = v
	}
	return out
}

func (c *Catalog) DefaultTargets() Targets {
	return *c.doc.DefaultTargets
}

func (c *Catalog) WindowOptions() []int {
	return append([]int(nil), c.doc.WindowOptions...)
}

func (c *Catalog) Version() string {
	return c.doc.Version
}

type cachedResult struct {
	ID    string `json:"id"`
	Score int    `json:"score"`
}

func (c *Catalog) cachedSearch(q string) ([]SearchResult, bool) {
	if c.searchCache == nil {
		return nil, false
	}
	raw, ok := c.searchCache.Get(q)
	if !ok {
		return nil, false
	}
	var cached []cachedResult
	if err := json.Unmarshal(raw, &cached); err != nil {
		log.Warnf("catalog search cache: decode [%s]: %s", q, err)
		return nil, false
	}
	results := make([]SearchResult, 0, len(cached))
	for _, cr := range cached {
		ex, ok := c.ByID(cr.ID)
		if !ok {
			return nil, false
		}
		results = append(results, SearchResult{Exercise: ex, Score: cr.Score})
	}
	return results, true
}

func (c *Catalog) cacheSearch(q string, results []SearchResult) {
	if c.searchCache == nil {
		return
	}
	cached := make([]cachedResult, len(results))
	for i, r := range results {
		cached[i] = cachedResult{ID: r.Exercise.ID, Score: r.Score}
	}
	raw, err := json.Marshal(cached)
	if err != nil {
		log.Warnf("catalog search cache: encode [%s]: %s", q, err)
		return
	}
	if !c.searchCache.Set(q, raw) {
		log.Tracef("catalog search cache: entry for [%s] not stored", q)
	}
}

func cloneExercise(ex Exercise) Exercise {
	out := ex
	out.Aliases = append([]string(nil), ex.Aliases...)
	out.MuscleGroups = make(map[string]float64, len(ex.MuscleGroups))
	for k, v := range ex.MuscleGroups {
		out.MuscleGroups[k] = v
	}
	return out
}
