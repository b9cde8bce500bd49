package main

import (
	"errors"
	"flag"
	"log/slog"
	"os"

	"github.com/IlianBuh/Wall-service/internal/config"
	"github.com/IlianBuh/Wall-service/internal/lib/logger/sl"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

func main() {
	var (
		migrationsPath string
		down           bool
	)

	flag.StringVar(&migrationsPath, "migrations-path", "./migrations", "path to directory with migration files")
	flag.BoolVar(&down, "down", false, "roll back all migrations")
	cfg := config.New().Remote

	conn, err := cfg.DSN()
	if err != nil {
		slog.Error("remote backend is not configured", sl.Err(err))
		os.Exit(1)
	}

	m, err := migrate.New(
		"file://"+migrationsPath,
		conn,
	)
	if err != nil {
		slog.Error("failed to create new migrator instance", sl.Err(err))
		os.Exit(1)
	}
	defer m.Close()

	if down {
		err = m.Down()
	} else {
		err = m.Up()
	}
	if err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			slog.Info("no changes")
			return
		}
		slog.Error("failed to migrate", sl.Err(err))
		os.Exit(1)
	}

	slog.Info("migrations applied", slog.Bool("down", down))
}
