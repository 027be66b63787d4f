// Package quickentry turns free text like "3x10 squat @100kg" into an exercise log entry.
package quickentry

import (
	"errors"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/2beens/setsbymuscle/internal/gymstats/allocation"
	"github.com/2beens/setsbymuscle/internal/gymstats/catalog"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	ErrEmptyText = errors.New("quick entry text is empty")
	ErrNoMatch   = errors.New("no catalog exercise matches the text")
)

const (
	// FuzzyThreshold is the minimum similarity for a Levenshtein match.
	FuzzyThreshold = 0.85

	confidenceExact    = 1.0
	confidenceExpanded = 0.95
)

var abbreviations = map[string]string{
	"db":   "dumbbell",
	"bb":   "barbell",
	"kb":   "kettlebell",
	"ez":   "ez bar",
	"ohp":  "overhead press",
	"rdl":  "romanian deadlift",
	"sldl": "stiff leg deadlift",
	"incl": "incline",
	"decl": "decline",
	"ext":  "extension",
	"bp":   "bench press",
	"dl":   "deadlift",
}

var (
	schemeRe = regexp.MustCompile(`(\d+)\s*[x×]\s*(\d+)`)
	weightRe = regexp.MustCompile(`@\s*(\d+(?:[.,]\d+)?)\s*(?:kg)?|(\d+(?:[.,]\d+)?)\s*kg\b`)
)

type ExerciseSource interface {
	Exercises() []catalog.Exercise
}

type Result struct {
	Exercise   catalog.Exercise
	Sets       int
	Reps       int
	Weight     float64
	Credit     allocation.Credit
	Confidence float64
	// Matched is the normalized text the exercise was matched on.
	Matched string
}

type Parser struct {
	exercises []catalog.Exercise
	// normalized name/alias -> index into exercises
	names   map[string]int
	aliases map[string]int
}

func NewParser(source ExerciseSource) *Parser {
	p := &Parser{
		exercises: source.Exercises(),
		names:     make(map[string]int),
		aliases:   make(map[string]int),
	}
	for i, ex := range p.exercises {
		for _, n := range []string{ex.Name, ex.DisplayName, strings.ReplaceAll(ex.ID, "_", " ")} {
			if key := normalize(n); key != "" {
				if _, taken := p.names[key]; !taken {
					p.names[key] = i
				}
			}
		}
		for _, a := range ex.Aliases {
			if key := normalize(a); key != "" {
				if _, taken := p.aliases[key]; !taken {
					p.aliases[key] = i
				}
			}
		}
	}
	return p
}

func (p *Parser) Parse(text string) (Result, error) {
	text = strings.ToLower(stripAccents(strings.TrimSpace(text)))
	if text == "" {
		return Result{}, ErrEmptyText
	}

	sets, reps := 0, 0
	if m := schemeRe.FindStringSubmatch(text); m != nil {
		sets, _ = strconv.Atoi(m[1])
		reps, _ = strconv.Atoi(m[2])
		text = strings.Replace(text, m[0], " ", 1)
	}

	weight := 0.0
	if m := weightRe.FindStringSubmatch(text); m != nil {
		raw := m[1]
		if raw == "" {
			raw = m[2]
		}
		weight, _ = strconv.ParseFloat(strings.ReplaceAll(raw, ",", "."), 64)
		text = strings.Replace(text, m[0], " ", 1)
	}

	name := dropNumbers(normalize(text))
	if name == "" {
		return Result{}, ErrNoMatch
	}

	idx, confidence, ok := p.match(name)
	if !ok {
		return Result{}, ErrNoMatch
	}
	ex := p.exercises[idx]

	if sets <= 0 {
		sets = max(ex.DefaultSets, 1)
	}
	if reps <= 0 {
		reps = max(ex.DefaultReps, 1)
	}

	return Result{
		Exercise:   ex,
		Sets:       sets,
		Reps:       reps,
		Weight:     weight,
		Credit:     allocation.Allocate(ex.MuscleGroups, float64(sets)),
		Confidence: confidence,
		Matched:    name,
	}, nil
}

func (p *Parser) match(name string) (int, float64, bool) {
	if i, ok := p.names[name]; ok {
		return i, confidenceExact, true
	}
	if i, ok := p.aliases[name]; ok {
		return i, confidenceExact, true
	}

	if expanded := expandAbbreviations(name); expanded != name {
		if i, ok := p.names[expanded]; ok {
			return i, confidenceExpanded, true
		}
		if i, ok := p.aliases[expanded]; ok {
			return i, confidenceExpanded, true
		}
	}

	best, bestScore := -1, 0.0
	consider := func(candidate string, i int) {
		if score := similarity(name, candidate); score > bestScore {
			best, bestScore = i, score
		}
	}
	// exercises order decides ties
	for i, ex := range p.exercises {
		consider(normalize(ex.Name), i)
		consider(normalize(ex.DisplayName), i)
		for _, a := range ex.Aliases {
			consider(normalize(a), i)
		}
	}
	if best >= 0 && bestScore >= FuzzyThreshold {
		return best, bestScore, true
	}
	return -1, 0, false
}

func stripAccents(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

// normalize lowercases s, drops everything but letters, digits and spaces,
// and collapses runs of whitespace.
func normalize(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(stripAccents(s)) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
		case unicode.IsSpace(r) || r == '-' || r == '_':
			b.WriteRune(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

func dropNumbers(s string) string {
	words := strings.Fields(s)
	kept := words[:0]
	for _, w := range words {
		if _, err := strconv.Atoi(w); err != nil {
			kept = append(kept, w)
		}
	}
	return strings.Join(kept, " ")
}

func expandAbbreviations(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		if expanded, ok := abbreviations[w]; ok {
			words[i] = expanded
		}
	}
	return strings.Join(words, " ")
}

// similarity is 1 - levenshtein(a, b)/max(len(a), len(b)), measured in runes.
func similarity(a, b string) float64 {
	if a == b {
		return 1
	}
	ra, rb := []rune(a), []rune(b)
	maxLen := max(len(ra), len(rb))
	if maxLen == 0 {
		return 1
	}
	return 1 - float64(levenshtein(ra, rb))/float64(maxLen)
}

func levenshtein(a, b []rune) int {
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}

	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(a); i++ {
		curr[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(b)]
}
