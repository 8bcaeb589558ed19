package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/sandevgo/tuskshop/internal/config"
	"github.com/sandevgo/tuskshop/internal/core"
	"github.com/sandevgo/tuskshop/internal/observability"
	"github.com/sandevgo/tuskshop/internal/providers/llm"
	"github.com/sandevgo/tuskshop/internal/providers/tools"
	"github.com/sandevgo/tuskshop/internal/service/agent"
	"github.com/sandevgo/tuskshop/internal/service/dialogue"
	"github.com/sandevgo/tuskshop/internal/service/responder"
	"github.com/sandevgo/tuskshop/internal/storage/memory"
	"github.com/sandevgo/tuskshop/internal/storage/postgres"
	"github.com/sandevgo/tuskshop/internal/storage/sqlite"
	"github.com/sandevgo/tuskshop/internal/transport/httpapi"
	"github.com/sandevgo/tuskshop/internal/transport/telegram"
	"github.com/sandevgo/tuskshop/pkg/log"
	"github.com/sandevgo/tuskshop/pkg/srv"
)

const metricsNamespace = "tuskshop"

// application is the wired shop. close releases storage in reverse order.
type application struct {
	cfg      *config.AppConfig
	db       *sql.DB
	lookups  *responder.Lookups
	registry *tools.Registry
	metrics  *observability.Metrics

	orchestrator *dialogue.Orchestrator
	closers      []func() error
}

func (s *application) close() error {
	var errs []error
	for i := len(s.closers) - 1; i >= 0; i-- {
		errs = append(errs, s.closers[i]())
	}
	return errors.Join(errs...)
}

// openStore loads the environment and opens the catalog database. It is
// enough for commands that only need lookups.
func openStore(ctx context.Context, seed bool) (*application, error) {
	if err := initEnv(ctx, config.GetRuntimePath()); err != nil {
		return nil, fmt.Errorf("failed to init env: %w", err)
	}

	cfg := config.NewAppConfig(ctx)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := os.MkdirAll(cfg.GetRuntimePath(), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create runtime directory: %w", err)
	}

	db, err := sqlite.NewDB(ctx, cfg.GetDatabasePath())
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	s := &application{cfg: cfg, db: db, closers: []func() error{db.Close}}

	if seed && cfg.SeedOnStart {
		if _, err := sqlite.Seed(ctx, db); err != nil {
			_ = s.close()
			return nil, fmt.Errorf("failed to seed database: %w", err)
		}
	}

	s.lookups = responder.NewLookups(sqlite.NewCatalogRepo(db), sqlite.NewOrdersRepo(db))
	s.registry = tools.NewRegistry(tools.NewStore(s.lookups))
	return s, nil
}

// newShop wires the full reply pipeline on top of the store.
func newShop(ctx context.Context) (*application, error) {
	s, err := openStore(ctx, true)
	if err != nil {
		return nil, err
	}

	turns, err := initTurns(ctx, s)
	if err != nil {
		_ = s.close()
		return nil, fmt.Errorf("failed to initialize memory store: %w", err)
	}

	ai, err := llm.NewProvider(ctx, config.NewLLMConfig(ctx))
	if err != nil {
		_ = s.close()
		return nil, fmt.Errorf("failed to initialize LLM provider: %w", err)
	}

	s.metrics = observability.NewMetrics(metricsNamespace)
	s.orchestrator = dialogue.NewOrchestrator(
		turns,
		responder.New(s.lookups),
		agent.NewAgent(ai, s.registry),
		dialogue.Options{
			Window:  s.cfg.GetHistoryWindow(),
			Timeout: s.cfg.ReplyTimeout,
			Metrics: s.metrics,
		},
	)
	return s, nil
}

func initTurns(ctx context.Context, s *application) (core.TurnRepository, error) {
	log.FromCtx(ctx).Info().Str("backend", s.cfg.StoreBackend).Msg("opening memory store")

	switch s.cfg.StoreBackend {
	case config.StorePostgres:
		pg, err := postgres.NewTurnStore(ctx, s.cfg.PostgresURL)
		if err != nil {
			return nil, err
		}
		s.closers = append(s.closers, pg.Close)
		return pg, nil
	case config.StoreMemory:
		return memory.NewTurnStore(), nil
	default:
		return sqlite.NewTurnsRepo(s.db), nil
	}
}

func initTransports(ctx context.Context, s *application) ([]srv.Service, error) {
	var services []srv.Service

	if s.cfg.EnableHTTP {
		services = append(services, httpapi.New(ctx, s.cfg.HTTPAddr, s.orchestrator, s.metrics))
	}

	if s.cfg.IsTelegramSelected() {
		tgCfg := config.NewTelegramConfig(ctx)
		bot, err := telegram.NewBot(ctx, tgCfg, s.orchestrator)
		if err != nil {
			return nil, err
		}
		services = append(services, bot)
	}

	return services, nil
}

func initEnv(ctx context.Context, runtimePath string) error {
	logger := log.FromCtx(ctx)
	envFile := filepath.Join(runtimePath, ".env")

	if _, err := os.Stat(envFile); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	if err := godotenv.Load(envFile); err != nil {
		logger.Warn().Err(err).Str("path", envFile).Msg("failed to load .env file")
		return err
	}

	logger.Debug().Str("path", envFile).Msg("loaded .env file")
	return nil
}
