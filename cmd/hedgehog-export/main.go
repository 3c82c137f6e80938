package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/ubigu/hedgehog-map/internal/config"
	"github.com/ubigu/hedgehog-map/internal/db"
	"github.com/ubigu/hedgehog-map/internal/export"
	"github.com/ubigu/hedgehog-map/internal/observability"
	"github.com/ubigu/hedgehog-map/internal/store"
)

func main() {
	_ = godotenv.Load(".env.local")

	var (
		out    = flag.String("out", "hedgehogs.shp", "output shapefile")
		idList = flag.String("ids", "", "comma separated ids to export (default: all)")
	)
	flag.Parse()

	ids, err := parseIDs(*idList)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	logger := observability.NewLogger(os.Stderr, cfg.LogLevel, "text")
	ctx := context.Background()

	var src interface {
		export.Source
		Close() error
	}
	if cfg.DBDriver == config.DriverSQLite {
		s, err := store.OpenSQLite(cfg.SQLitePath, logger)
		if err != nil {
			logger.Error("failed to open sqlite", "error", err)
			os.Exit(1)
		}
		src = s
	} else {
		gdb, err := db.Connect(cfg.DatabaseURL, db.PoolConfig{MaxOpenConns: 2, MaxIdleConns: 1}, logger)
		if err != nil {
			logger.Error("failed to connect", "error", err)
			os.Exit(1)
		}
		src = store.NewPostgis(gdb, logger)
	}
	defer src.Close()

	n, err := export.Export(ctx, src, ids, *out)
	if err != nil {
		logger.Error("export failed", "error", err)
		os.Exit(1)
	}
	logger.Info("exported hedgehogs", "rows", n, "out", *out)
}

func parseIDs(s string) ([]int64, error) {
	var ids []int64
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid id %q", part)
		}
		ids = append(ids, id)
	}
	return ids, nil
}
