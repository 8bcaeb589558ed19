package config

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/sandevgo/tuskshop/pkg/log"
)

const (
	StoreSQLite   = "sqlite"
	StorePostgres = "postgres"
	StoreMemory   = "memory"
)

type AppConfig struct {
	RuntimePath string `env:"TUSK_RUNTIME_PATH" envDefault:".tuskshop"`

	// Memory Store backend: sqlite, postgres or memory.
	// Catalog and orders always live in sqlite.
	StoreBackend string `env:"TUSK_STORE_BACKEND" envDefault:"sqlite"`
	PostgresURL  string `env:"TUSK_POSTGRES_URL"`
	SeedOnStart  bool   `env:"TUSK_SEED_ON_START" envDefault:"true"`

	// Transport Flags
	EnableHTTP     bool   `env:"TUSK_ENABLE_HTTP" envDefault:"true"`
	EnableTelegram bool   `env:"TUSK_ENABLE_TELEGRAM" envDefault:"false"`
	HTTPAddr       string `env:"TUSK_HTTP_ADDR" envDefault:":8000"`

	// Number of user+assistant exchanges loaded as short-term memory.
	HistoryWindow int           `env:"TUSK_HISTORY_WINDOW" envDefault:"3"`
	ReplyTimeout  time.Duration `env:"TUSK_REPLY_TIMEOUT" envDefault:"60s"`
}

func NewAppConfig(ctx context.Context) *AppConfig {
	c := &AppConfig{}
	if err := env.Parse(c); err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse App config")
	}
	c.RuntimePath = resolveRuntimePath(c.RuntimePath)
	return c
}

func (c AppConfig) GetRuntimePath() string {
	return c.RuntimePath
}

func (c AppConfig) GetDatabasePath() string {
	return filepath.Join(c.RuntimePath, "tuskshop.db")
}

func (c AppConfig) GetHistoryWindow() int {
	if c.HistoryWindow <= 0 {
		return 3
	}
	return c.HistoryWindow
}

func (c AppConfig) IsTelegramSelected() bool {
	return c.EnableTelegram
}

func (c AppConfig) Validate() error {
	switch c.StoreBackend {
	case StoreSQLite, StoreMemory:
	case StorePostgres:
		if c.PostgresURL == "" {
			return fmt.Errorf("TUSK_POSTGRES_URL is required for the postgres store")
		}
	default:
		return fmt.Errorf("unknown store backend: %s", c.StoreBackend)
	}
	return nil
}

// ValidateTransports is only needed by commands that serve customers.
func (c AppConfig) ValidateTransports() error {
	if !c.EnableHTTP && !c.EnableTelegram {
		return fmt.Errorf("no transport enabled: set TUSK_ENABLE_HTTP or TUSK_ENABLE_TELEGRAM")
	}
	return nil
}
