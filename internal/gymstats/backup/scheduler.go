package backup

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/2beens/setsbymuscle/internal/telemetry/metrics"

	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"
)

const snapshotPrefix = "setsbymuscle-backup-"

type exporter interface {
	Export(ctx context.Context) (*Document, error)
}

// Scheduler writes export snapshots into a directory on a cron schedule and
// keeps only the newest ones.
type Scheduler struct {
	cron     *cron.Cron
	exporter exporter
	dir      string
	keep     int
	metrics  *metrics.Manager
	now      func() time.Time
}

type SchedulerParams struct {
	Exporter exporter
	Dir      string
	// Schedule is a standard 5 field cron expression.
	Schedule string
	// Keep is how many snapshots stay on disk; 0 keeps all of them.
	Keep    int
	Metrics *metrics.Manager
}

func NewScheduler(params SchedulerParams) (*Scheduler, error) {
	if params.Dir == "" {
		return nil, errors.New("backup dir not set")
	}
	schedule, err := cron.ParseStandard(params.Schedule)
	if err != nil {
		return nil, fmt.Errorf("parse backup schedule [%s]: %w", params.Schedule, err)
	}
	if err := os.MkdirAll(params.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("create backup dir: %w", err)
	}

	s := &Scheduler{
		cron:     cron.New(cron.WithLocation(time.UTC)),
		exporter: params.Exporter,
		dir:      params.Dir,
		keep:     params.Keep,
		metrics:  params.Metrics,
		now:      time.Now,
	}
	s.cron.Schedule(schedule, cron.FuncJob(func() {
		if _, err := s.Snapshot(context.Background()); err != nil {
			log.Errorf("scheduled backup failed: %s", err)
		}
	}))
	return s, nil
}

func (s *Scheduler) Start() {
	log.Infof("backup scheduler started, writing to %s", s.dir)
	s.cron.Start()
}

// Stop stops scheduling and waits for a running snapshot, at most until ctx is done.
func (s *Scheduler) Stop(ctx context.Context) {
	select {
	case <-s.cron.Stop().Done():
	case <-ctx.Done():
		log.Warnln("backup scheduler: gave up waiting for running snapshot")
	}
}

// Snapshot exports all data into a new file in the backup dir and returns its path.
func (s *Scheduler) Snapshot(ctx context.Context) (_ string, err error) {
	defer func() {
		if s.metrics == nil {
			return
		}
		status := "ok"
		if err != nil {
			status = "error"
		}
		s.metrics.CounterBackups.WithLabelValues(status).Inc()
	}()

	doc, err := s.exporter.Export(ctx)
	if err != nil {
		return "", fmt.Errorf("export: %w", err)
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal export: %w", err)
	}

	name := snapshotPrefix + s.now().UTC().Format("20060102T150405.000") + ".json"
	path := filepath.Join(s.dir, name)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return "", fmt.Errorf("write snapshot: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return "", fmt.Errorf("rename snapshot: %w", err)
	}
	log.Debugf("backup snapshot written: %s", path)

	s.prune()
	return path, nil
}

func (s *Scheduler) prune() {
	if s.keep <= 0 {
		return
	}
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		log.Warnf("backup prune: read dir: %s", err)
		return
	}

	var snapshots []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasPrefix(e.Name(), snapshotPrefix) && strings.HasSuffix(e.Name(), ".json") {
			snapshots = append(snapshots, e.Name())
		}
	}
	if len(snapshots) <= s.keep {
		return
	}
	// names sort chronologically
	sort.Strings(snapshots)
	for _, name := range snapshots[:len(snapshots)-s.keep] {
		if err := os.Remove(filepath.Join(s.dir, name)); err != nil {
			log.Warnf("backup prune: remove %s: %s", name, err)
		}
	}
}
