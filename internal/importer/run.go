// Package importer loads sightings from CSV into the PostGIS table.
package importer

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/ubigu/hedgehog-map/internal/geo"
)

type Config struct {
	CSVPath     string
	DatabaseURL string
	DryRun      bool
	Wipe        bool
}

// Run parses the CSV and inserts every row in one transaction. With DryRun
// the file is only validated.
func Run(ctx context.Context, cfg Config, logger *slog.Logger) (int, error) {
	rows, err := ParseFile(cfg.CSVPath)
	if err != nil {
		return 0, err
	}
	if cfg.DryRun {
		logger.Info("dry run, nothing written", "rows", len(rows))
		return len(rows), nil
	}
	if cfg.DatabaseURL == "" {
		return 0, errors.New("DATABASE_URL is required unless --dry-run is set")
	}

	db, err := sql.Open("pgx", cfg.DatabaseURL)
	if err != nil {
		return 0, err
	}
	defer db.Close()

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback() }()

	if cfg.Wipe {
		if _, err := tx.ExecContext(ctx, `TRUNCATE TABLE hedgehog RESTART IDENTITY`); err != nil {
			return 0, fmt.Errorf("wipe hedgehog table: %w", err)
		}
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO hedgehog (name, age, gender, location)
		VALUES ($1, $2, $3, ST_SetSRID(ST_MakePoint($4, $5), $6))
	`)
	if err != nil {
		return 0, err
	}
	defer stmt.Close()

	for i, h := range rows {
		p, err := geo.Decode(h.Location)
		if err != nil {
			return 0, fmt.Errorf("row %d: %w", i+2, err)
		}
		if _, err := stmt.ExecContext(ctx, h.Name, h.Age, string(h.Gender), p.X(), p.Y(), geo.SRID); err != nil {
			return 0, fmt.Errorf("insert row %d (%s): %w", i+2, h.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	logger.Info("seeded hedgehogs", "rows", len(rows), "wiped", cfg.Wipe)
	return len(rows), nil
}
