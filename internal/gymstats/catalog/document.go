package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/2beens/setsbymuscle/internal/telemetry/tracing"

	"go.opentelemetry.io/otel/attribute"
	"gopkg.in/yaml.v3"
)

type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatFromPath picks the document format from the file extension, defaulting to JSON.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

var ErrMissingExercises = errors.New("missing or invalid exercises array")

// LoadError is returned when a catalog source cannot be read, parsed or does not
// have the required shape. It is fatal for the caller.
type LoadError struct {
	Source string
	Err    error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load exercise catalog [%s]: %s", e.Source, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// Document is the catalog source document, as stored on disk.
type Document struct {
	Version        string              `json:"version" yaml:"version"`
	LastUpdated    string              `json:"lastUpdated" yaml:"lastUpdated"`
	Exercises      []Exercise          `json:"exercises" yaml:"exercises"`
	Categories     map[Category]string `json:"categories" yaml:"categories"`
	MuscleGroups   []string            `json:"muscleGroups" yaml:"muscleGroups"`
	DefaultTargets *Targets            `json:"defaultTargets" yaml:"defaultTargets"`
	WindowOptions  []int               `json:"windowOptions" yaml:"windowOptions"`
}

// Parse decodes a catalog document. The only shape requirement checked here is
// the presence of the exercises list; see Validate for the rest.
func Parse(data []byte, format Format) (*Document, error) {
	doc := &Document{}
	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(data, doc); err != nil {
			return nil, fmt.Errorf("invalid yaml format: %w", err)
		}
	default:
		dec := json.NewDecoder(bytes.NewReader(data))
		if err := dec.Decode(doc); err != nil {
			return nil, fmt.Errorf("invalid json format: %w", err)
		}
	}

	if doc.Exercises == nil {
		return nil, ErrMissingExercises
	}

	return doc, nil
}

// ReadDocument reads and parses the catalog document at path, without validating it.
func ReadDocument(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{Source: path, Err: err}
	}
	doc, err := Parse(data, FormatFromPath(path))
	if err != nil {
		return nil, &LoadError{Source: path, Err: err}
	}
	return doc, nil
}

// Load reads, parses and validates the catalog at path. Any failure is a *LoadError.
func Load(ctx context.Context, path string, opts ...Option) (_ *Catalog, err error) {
	_, span := tracing.GlobalTracer.Start(ctx, "catalog.load")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("path", path))

	doc, err := ReadDocument(path)
	if err != nil {
		return nil, err
	}

	c, err := New(doc, opts...)
	if err != nil {
		return nil, &LoadError{Source: path, Err: err}
	}

	return c, nil
}

// WriteDocument writes the document as indented JSON or YAML, depending on the path extension.
func WriteDocument(path string, doc *Document) error {
	var (
		data []byte
		err  error
	)
	switch FormatFromPath(path) {
	case FormatYAML:
		data, err = yaml.Marshal(doc)
	default:
		data, err = json.MarshalIndent(doc, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("marshal catalog: %w", err)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write catalog: %w", err)
	}
	return os.Rename(tmp, path)
}

// withDefaults fills the optional sections the way a missing value is interpreted at runtime.
func (d *Document) withDefaults() *Document {
	out := *d
	if len(out.MuscleGroups) == 0 {
		out.MuscleGroups = append([]string(nil), MuscleGroups...)
	}
	if len(out.Categories) == 0 {
		out.Categories = make(map[Category]string, len(DefaultCategoryDescriptions))
		for k, v := range DefaultCategoryDescriptions {
			out.Categories[k] = v
		}
	}
	if out.DefaultTargets == nil {
		t := DefaultTargets
		out.DefaultTargets = &t
	}
	if len(out.WindowOptions) == 0 {
		out.WindowOptions = append([]int(nil), DefaultWindowOptions...)
	}
	return &out
}
