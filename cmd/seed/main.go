package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/ubigu/hedgehog-map/internal/importer"
	"github.com/ubigu/hedgehog-map/internal/observability"
)

func main() {
	_ = godotenv.Load(".env.local")

	var (
		csvPath = flag.String("csv", "", "path to sightings CSV (name,age,gender,easting,northing)")
		dbURL   = flag.String("db", os.Getenv("DATABASE_URL"), "DATABASE_URL")
		dryRun  = flag.Bool("dry-run", false, "validate the CSV without touching the database")
		wipe    = flag.Bool("wipe", false, "DANGER: truncates the hedgehog table before importing")
	)
	flag.Parse()

	if *csvPath == "" {
		flag.Usage()
		os.Exit(2)
	}

	logger := observability.NewLogger(os.Stderr, os.Getenv("LOG_LEVEL"), "text")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := importer.Config{
		CSVPath:     *csvPath,
		DatabaseURL: *dbURL,
		DryRun:      *dryRun,
		Wipe:        *wipe,
	}
	if _, err := importer.Run(ctx, cfg, logger); err != nil {
		logger.Error("seeding failed", "error", err)
		os.Exit(1)
	}
}
