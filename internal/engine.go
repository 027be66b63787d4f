package internal

import (
	"context"
	"fmt"
	"net"

	"github.com/2beens/setsbymuscle/internal/cache"
	"github.com/2beens/setsbymuscle/internal/config"
	"github.com/2beens/setsbymuscle/internal/db"
	"github.com/2beens/setsbymuscle/internal/gymstats/backup"
	"github.com/2beens/setsbymuscle/internal/gymstats/catalog"
	"github.com/2beens/setsbymuscle/internal/gymstats/ledger"
	gymstatsmcp "github.com/2beens/setsbymuscle/internal/gymstats/mcp"
	"github.com/2beens/setsbymuscle/internal/gymstats/quickentry"
	"github.com/2beens/setsbymuscle/internal/gymstats/settings"
	"github.com/2beens/setsbymuscle/internal/gymstats/stats"
	"github.com/2beens/setsbymuscle/internal/storage"
	"github.com/2beens/setsbymuscle/internal/telemetry/metrics"

	"github.com/go-redis/redis/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	log "github.com/sirupsen/logrus"
	"go.uber.org/multierr"
)

// Engine is the assembled training engine: catalog, ledger and the services
// reading from it, on top of the configured store.
type Engine struct {
	Catalog  *catalog.Catalog
	Ledger   *ledger.Ledger
	Analyzer *stats.Analyzer
	Settings *settings.Service
	Backup   *backup.Service
	Store    storage.Store

	RedisClient *redis.Client
	DBPool      *pgxpool.Pool
}

type EngineParams struct {
	Config           *config.Config
	RedisPassword    string
	PostgresPassword string
	TracingEnabled   bool
	// Metrics may be nil, e.g. for the stdio MCP server.
	Metrics *metrics.Manager
}

// NewEngine opens the store and builds every engine component from the config.
// A catalog that fails to load is fatal unless the config allows the built-in fallback.
func NewEngine(ctx context.Context, params EngineParams) (_ *Engine, err error) {
	cfg := params.Config
	e := &Engine{}
	defer func() {
		if err != nil {
			if closeErr := e.Close(); closeErr != nil {
				log.Errorf("engine cleanup: %s", closeErr)
			}
		}
	}()

	if cfg.RedisEnabled() {
		e.RedisClient = redis.NewClient(&redis.Options{
			Addr:     net.JoinHostPort(cfg.RedisHost, cfg.RedisPort),
			Password: params.RedisPassword,
			DB:       0, // use default DB
		})
		rdbStatus := e.RedisClient.Ping(ctx)
		if err := rdbStatus.Err(); err != nil {
			log.Errorf("--> failed to ping redis: %s", err)
		} else {
			log.Debugf("redis ping: %s", rdbStatus.Val())
		}
	}

	if storage.Backend(cfg.StorageBackend) == storage.BackendPostgres {
		e.DBPool, err = db.NewDBPool(ctx, db.NewDBPoolParams{
			DBHost:         cfg.PostgresHost,
			DBPort:         cfg.PostgresPort,
			DBName:         cfg.PostgresDBName,
			DBUser:         cfg.PostgresUser,
			DBPassword:     params.PostgresPassword,
			TracingEnabled: params.TracingEnabled,
		})
		if err != nil {
			return nil, fmt.Errorf("new db pool: %w", err)
		}
	}

	e.Store, err = storage.New(ctx, storage.Params{
		Backend:     storage.Backend(cfg.StorageBackend),
		FileDir:     cfg.FileStoreDir,
		SqlitePath:  cfg.SqlitePath,
		RedisClient: e.RedisClient,
		RedisPrefix: cfg.RedisPrefix,
		PgPool:      e.DBPool,
	})
	if err != nil {
		return nil, fmt.Errorf("open %s store: %w", cfg.StorageBackend, err)
	}
	log.Infof("using [%s] storage backend", cfg.StorageBackend)

	e.Catalog, err = loadCatalog(ctx, cfg, params.Metrics)
	if err != nil {
		return nil, err
	}

	ledgerOpts := []ledger.Option{
		ledger.WithQuickParser(quickentry.NewParser(e.Catalog)),
		ledger.WithMuscleGroups(e.Catalog.MuscleGroups()),
	}
	if params.Metrics != nil {
		ledgerOpts = append(ledgerOpts, ledger.WithMetrics(params.Metrics))
	}
	e.Ledger = ledger.New(ctx, e.Store, ledgerOpts...)
	e.Analyzer = stats.NewAnalyzer(e.Ledger, e.Catalog.MuscleGroups())
	e.Settings = settings.NewService(
		e.Store,
		settings.Settings{
			WindowDays: settings.DefaultWindowDays,
			Targets:    stats.Targets(e.Catalog.DefaultTargets()),
		},
		e.Catalog.WindowOptions(),
	)
	e.Backup = backup.NewService(e.Store, e.Ledger)

	return e, nil
}

func loadCatalog(ctx context.Context, cfg *config.Config, m *metrics.Manager) (*catalog.Catalog, error) {
	opts := []catalog.Option{
		catalog.WithSearchCache(cache.NewSearchCache(cfg.SearchCacheMB*1024*1024, cfg.SearchCacheTTL)),
	}
	if m != nil {
		opts = append(opts, catalog.WithMetrics(m))
	}

	c, err := catalog.Load(ctx, cfg.CatalogPath, opts...)
	if err == nil {
		log.Infof("catalog v%s loaded: %d exercises", c.Version(), len(c.Exercises()))
		return c, nil
	}
	if !cfg.CatalogFallback {
		return nil, fmt.Errorf("load catalog: %w", err)
	}

	log.Warnf("failed to load catalog, continuing with the built-in fallback: %s", err)
	return catalog.Fallback(opts...), nil
}

// MCPServer exposes the engine to MCP clients.
func (e *Engine) MCPServer() *mcp.Server {
	return gymstatsmcp.NewServer(
		gymstatsmcp.NewContextService(e.Catalog, e.Analyzer, e.Ledger, e.Settings),
	)
}

// Close releases the store and the connections the engine opened.
func (e *Engine) Close() error {
	var err error
	if closer, ok := e.Store.(interface{ Close() error }); ok {
		err = multierr.Append(err, closer.Close())
	}
	if e.RedisClient != nil {
		if closeErr := e.RedisClient.Close(); closeErr != nil {
			err = multierr.Append(err, fmt.Errorf("close redis client: %w", closeErr))
		}
	}
	if e.DBPool != nil {
		e.DBPool.Close() // blocking operation
	}
	return err
}
