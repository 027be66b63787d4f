// Package storage persists whole JSON documents under string keys.
// Every write replaces the stored document; there are no partial updates.
package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/2beens/setsbymuscle/internal/telemetry/tracing"

	"github.com/go-redis/redis/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/trace"
)

var (
	ErrNotFound   = errors.New("key not found")
	ErrInvalidKey = errors.New("invalid storage key")
)

//go:generate mockgen -source=$GOFILE -destination=../gymstats/ledger/store_mocks_test.go -package=ledger_test

// Store is the durable backing of the ledger and settings documents.
type Store interface {
	// Get returns ErrNotFound if nothing is stored under the key.
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

type Backend string

const (
	BackendMemory   Backend = "memory"
	BackendFile     Backend = "file"
	BackendSqlite   Backend = "sqlite"
	BackendRedis    Backend = "redis"
	BackendPostgres Backend = "postgres"
)

func (b Backend) IsValid() bool {
	switch b {
	case BackendMemory, BackendFile, BackendSqlite, BackendRedis, BackendPostgres:
		return true
	default:
		return false
	}
}

type Params struct {
	Backend     Backend
	FileDir     string
	SqlitePath  string
	RedisClient *redis.Client
	RedisPrefix string
	PgPool      *pgxpool.Pool
}

// New opens the store for the configured backend.
func New(ctx context.Context, params Params) (Store, error) {
	switch Backend(strings.ToLower(string(params.Backend))) {
	case BackendMemory:
		return NewMemoryStore(), nil
	case BackendFile:
		return NewFileStore(params.FileDir)
	case BackendSqlite:
		return NewSqliteStore(ctx, params.SqlitePath)
	case BackendRedis:
		if params.RedisClient == nil {
			return nil, errors.New("redis store: nil redis client")
		}
		return NewRedisStore(params.RedisClient, params.RedisPrefix), nil
	case BackendPostgres:
		if params.PgPool == nil {
			return nil, errors.New("postgres store: nil db pool")
		}
		s := NewPostgresStore(params.PgPool)
		if err := s.Migrate(ctx); err != nil {
			return nil, err
		}
		return s, nil
	default:
		return nil, fmt.Errorf("unknown storage backend: %s", params.Backend)
	}
}

func validateKey(key string) error {
	if key == "" || strings.ContainsAny(key, `/\`) || strings.Contains(key, "..") {
		return fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	return nil
}

// endSpan ends the span, not treating a missing key as a failure.
func endSpan(span trace.Span, err error) {
	if errors.Is(err, ErrNotFound) {
		err = nil
	}
	tracing.EndSpanWithErrCheck(span, err)
}
