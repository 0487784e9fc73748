package main

import (
	"database/sql"
	"flag"
	"fmt"
	"os"

	"github.com/crm/backend/internal/infrastructure/config"
	"github.com/crm/backend/internal/infrastructure/logger"
	"github.com/crm/backend/internal/infrastructure/migration"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
)

func main() {
	var (
		path  = flag.String("path", "migrations", "path to migration files")
		steps = flag.Int("steps", 0, "number of steps for the steps command")
		force = flag.Int("force", -1, "version to force for the force command")
	)
	flag.Parse()

	command := flag.Arg(0)
	if command == "" {
		command = "up"
	}

	if err := run(command, *path, *steps, *force); err != nil {
		fmt.Fprintf(os.Stderr, "migrate failed: %v\n", err)
		os.Exit(1)
	}
}

func run(command, path string, steps, forceVersion int) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log, err := logger.NewForEnvironment(cfg.App.Env)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer func() { _ = db.Close() }()

	migrator, err := migration.New(db, path, log)
	if err != nil {
		return fmt.Errorf("init migrator: %w", err)
	}
	defer func() { _ = migrator.Close() }()

	switch command {
	case "up":
		return migrator.Up()
	case "down":
		return migrator.Down()
	case "steps":
		if steps == 0 {
			return fmt.Errorf("steps command requires a non-zero -steps value")
		}
		return migrator.Steps(steps)
	case "force":
		if forceVersion < 0 {
			return fmt.Errorf("force command requires a -force version")
		}
		return migrator.Force(forceVersion)
	case "version":
		version, dirty, err := migrator.Version()
		if err != nil {
			return err
		}
		log.Info("current migration version",
			zap.Uint("version", version),
			zap.Bool("dirty", dirty),
		)
		return nil
	default:
		return fmt.Errorf("unknown command %q (expected up, down, steps, force, or version)", command)
	}
}
