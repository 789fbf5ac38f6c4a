package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"numkit/adapters/postgres"
	"numkit/domain/core"
	"numkit/internal"
	"numkit/internal/migration"
	"numkit/models"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
)

var logger = internal.DefaultLogger

// historyDump is the document written by `numkit history`
type historyDump struct {
	Computations []*models.Computation `json:"computations"`
}

func main() {
	_ = godotenv.Load()

	databaseURL := os.Getenv("DATABASE_URL")
	var importDir string
	switch len(os.Args) {
	case 1:
	case 2:
		databaseURL = os.Args[1]
	case 3:
		databaseURL, importDir = os.Args[1], os.Args[2]
	default:
		fmt.Fprintln(os.Stderr, "Usage: migrate [database_url] [history_dump_dir]")
		os.Exit(2)
	}
	if databaseURL == "" {
		fmt.Fprintln(os.Stderr, "DATABASE_URL is not set and no database_url argument was given")
		os.Exit(2)
	}

	ctx := context.Background()
	db, err := sqlx.Connect("postgres", databaseURL)
	if err != nil {
		logger.Error("Failed to connect to database: %v", err)
		os.Exit(1)
	}
	defer db.Close()

	var migrator migration.Migrator = migration.NewRunner()
	if err := migrator.Run(ctx, db); err != nil {
		logger.Error("Migration failed: %v", err)
		os.Exit(1)
	}
	logger.Info("Schema at version %s", migrator.Version())

	if importDir == "" {
		return
	}

	files, err := findDumpFiles(importDir)
	if err != nil {
		logger.Error("Failed to find history dumps: %v", err)
		os.Exit(1)
	}
	logger.Info("Found %d history dumps to import", len(files))

	repo := postgres.NewHistoryRepository(db)
	imported, skipped := 0, 0
	for _, file := range files {
		computations, err := loadComputations(file)
		if err != nil {
			logger.Warn("Failed to load %s: %v", file, err)
			skipped++
			continue
		}
		for _, c := range computations {
			if err := repo.Save(ctx, c); err != nil {
				logger.Warn("Failed to import computation %s: %v", c.ID, err)
				skipped++
				continue
			}
			imported++
		}
		logger.Debug("Imported %s", filepath.Base(file))
	}

	logger.Info("Import complete: %d imported, %d skipped", imported, skipped)
}

func findDumpFiles(dir string) ([]string, error) {
	var files []string

	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() && strings.HasSuffix(path, ".json") {
			files = append(files, path)
		}
		return nil
	})

	return files, err
}

// loadComputations reads a history dump, normalizing ids and rejecting
// records that could not have come from numkit
func loadComputations(path string) ([]*models.Computation, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var dump historyDump
	if err := json.Unmarshal(data, &dump); err != nil {
		return nil, fmt.Errorf("not a history dump: %w", err)
	}

	for i, c := range dump.Computations {
		if c == nil {
			return nil, core.NewInvalidArgumentError("computation %d is null", i)
		}
		id, err := core.ParseID(c.ID.String())
		if err != nil {
			return nil, fmt.Errorf("computation %d: %w", i, err)
		}
		c.ID = id
		switch c.Kind {
		case models.KindStatistics, models.KindArithmetic, models.KindGeometry, models.KindComplex:
		default:
			return nil, core.NewInvalidArgumentError("computation %s has unknown kind %q", id, c.Kind)
		}
		if c.CreatedAt.IsZero() {
			return nil, core.NewInvalidArgumentError("computation %s has no created_at", id)
		}
	}
	return dump.Computations, nil
}
