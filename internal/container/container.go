package container

import (
	"context"
	"fmt"

	"numkit/adapters/memory"
	"numkit/adapters/postgres"
	"numkit/app"
	"numkit/internal"
	"numkit/internal/config"
	"numkit/internal/errors"
	"numkit/internal/migration"
	"numkit/ports"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

// Container holds all application dependencies and manages their lifecycle
type Container struct {
	Config *config.Config
	Logger *internal.Logger

	// Infrastructure; nil when DATABASE_URL is unset
	DB *sqlx.DB

	History    ports.HistoryRepository
	Calculator *app.CalculatorService
}

// New creates a container. Call Init before using History or Calculator.
func New(cfg *config.Config) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}

	level, ok := internal.ParseLogLevel(cfg.Log.Level)
	if !ok {
		level = internal.LogLevelInfo
	}

	return &Container{
		Config: cfg,
		Logger: internal.NewLogger(level),
	}, nil
}

// Init selects the history store and builds the calculator. With a database
// URL the schema is migrated and PostgreSQL is used; otherwise history lives
// in memory for the life of the process.
func (c *Container) Init(ctx context.Context) error {
	if c.Config.Database.Enabled() {
		db, err := openDatabase(ctx, c.Config.Database)
		if err != nil {
			return err
		}
		c.DB = db
		c.History = postgres.NewHistoryRepository(db)
		c.Logger.Info("[Container] history stored in PostgreSQL")
	} else {
		c.History = memory.NewHistoryRepository()
		c.Logger.Info("[Container] DATABASE_URL not set, history kept in memory")
	}

	c.Calculator = app.NewCalculatorService(c.History, c.Logger, c.Config.Engine.MaxConcurrentColumns).
		WithHistoryLimit(c.Config.Engine.HistoryLimit)
	return nil
}

func openDatabase(ctx context.Context, cfg config.DatabaseConfig) (*sqlx.DB, error) {
	db, err := sqlx.ConnectContext(ctx, "postgres", cfg.URL)
	if err != nil {
		return nil, errors.DatabaseError("failed to connect to database", err)
	}
	db.SetMaxOpenConns(cfg.MaxOpenConns)

	if err := migration.NewRunner().Run(ctx, db); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "database migration failed")
	}
	return db, nil
}

// Shutdown releases the database connection, if any
func (c *Container) Shutdown(ctx context.Context) error {
	if c.DB != nil {
		return c.DB.Close()
	}
	return nil
}
