// Package backup exports, imports and resets every persisted document at once.
package backup

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"slices"
	"time"

	"github.com/2beens/setsbymuscle/internal/gymstats/ledger"
	"github.com/2beens/setsbymuscle/internal/gymstats/settings"
	"github.com/2beens/setsbymuscle/internal/storage"
	"github.com/2beens/setsbymuscle/internal/telemetry/tracing"

	log "github.com/sirupsen/logrus"
)

const FormatVersion = "1.0.0"

// Keys lists every storage key a backup covers.
var Keys = []string{ledger.StorageKey, settings.StorageKey}

var ErrInvalidFormat = errors.New("invalid import data format")

type Document struct {
	Version    string                     `json:"version"`
	ExportedAt time.Time                  `json:"exportedAt"`
	Data       map[string]json.RawMessage `json:"data"`
}

// ParseDocument decodes an export document. Any decoding problem is reported
// as ErrInvalidFormat.
func ParseDocument(r io.Reader) (*Document, error) {
	var doc Document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidFormat, err)
	}
	return &doc, nil
}

type ledgerReloader interface {
	Reload(ctx context.Context)
}

type Service struct {
	store  storage.Store
	ledger ledgerReloader
	now    func() time.Time
}

func NewService(store storage.Store, ledger ledgerReloader) *Service {
	return &Service{
		store:  store,
		ledger: ledger,
		now:    time.Now,
	}
}

// Export snapshots all stored documents. Stored values that are not valid
// JSON are left out with a warning.
func (s *Service) Export(ctx context.Context) (_ *Document, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "backup.export")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	doc := &Document{
		Version:    FormatVersion,
		ExportedAt: s.now().UTC(),
		Data:       make(map[string]json.RawMessage, len(Keys)),
	}
	for _, key := range Keys {
		raw, err := s.store.Get(ctx, key)
		if errors.Is(err, storage.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", key, err)
		}
		if !json.Valid(raw) {
			log.Warnf("backup: stored value of %s is not valid json, skipping", key)
			continue
		}
		doc.Data[key] = raw
	}
	return doc, nil
}

// Import replaces all stored documents with the ones in doc. The document is
// fully checked before anything is deleted, so a rejected import leaves the
// existing data untouched.
func (s *Service) Import(ctx context.Context, doc *Document) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "backup.import")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if doc == nil || doc.Data == nil {
		return fmt.Errorf("%w: missing data", ErrInvalidFormat)
	}

	values := make(map[string][]byte, len(Keys))
	for key, raw := range doc.Data {
		if !slices.Contains(Keys, key) {
			log.Warnf("backup: ignoring unknown key %s in import", key)
			continue
		}
		if !json.Valid(raw) {
			return fmt.Errorf("%w: %s is not valid json", ErrInvalidFormat, key)
		}
		values[key] = raw
	}
	if raw, ok := values[ledger.StorageKey]; ok {
		days, err := ledger.DecodeDocument(raw)
		if err != nil {
			return fmt.Errorf("%w: training days: %s", ErrInvalidFormat, err)
		}
		if err := days.Validate(); err != nil {
			return fmt.Errorf("%w: training days: %s", ErrInvalidFormat, err)
		}
	}

	if err := s.deleteAll(ctx); err != nil {
		return err
	}
	for _, key := range Keys {
		raw, ok := values[key]
		if !ok {
			continue
		}
		if err := s.store.Set(ctx, key, raw); err != nil {
			return fmt.Errorf("write %s: %w", key, err)
		}
	}

	s.ledger.Reload(ctx)
	log.Infof("backup: imported %d documents (exported at %s)", len(values), doc.ExportedAt.Format(time.RFC3339))
	return nil
}

// Reset deletes every stored document.
func (s *Service) Reset(ctx context.Context) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "backup.reset")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if err := s.deleteAll(ctx); err != nil {
		return err
	}
	s.ledger.Reload(ctx)
	log.Warnln("backup: all data reset")
	return nil
}

func (s *Service) deleteAll(ctx context.Context) error {
	for _, key := range Keys {
		if err := s.store.Delete(ctx, key); err != nil {
			return fmt.Errorf("delete %s: %w", key, err)
		}
	}
	return nil
}
