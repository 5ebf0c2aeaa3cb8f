// Command responsable runs a demo web server answering a small widget API
// with JSON envelopes and redirecting form submissions with flashed state.
package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/glebarez/sqlite"
	"github.com/joho/godotenv"
	"github.com/xy-planning-network/responsable"
	"github.com/xy-planning-network/responsable/logger"
	"github.com/xy-planning-network/responsable/postgres"
	"github.com/xy-planning-network/responsable/ranger"
)

// inMemoryDSN keeps one SQLite database alive across connections when DATABASE_URL is unset.
const inMemoryDSN = "file:responsable?mode=memory&cache=shared"

func main() {
	l := logger.New()
	if err := run(); err != nil {
		l.Error(err.Error(), nil)
		os.Exit(1)
	}
}

func run() error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("could not load .env: %w", err)
	}

	cfg, err := responsable.NewConfig()
	if err != nil {
		return err
	}

	opts := []ranger.RangerOption{ranger.WithMigrations(widgetMigrations...)}
	if cfg.DatabaseURL == "" {
		db, err := postgres.Open(sqlite.Open(inMemoryDSN), cfg.Env)
		if err != nil {
			return err
		}

		opts = append(opts, ranger.WithDB(db))
	}

	rng, err := ranger.New(cfg, opts...)
	if err != nil {
		return err
	}

	h := newHandler(rng)
	rng.HandleRoutes(h.routes())

	return rng.Guide()
}
