// Package store implements hedgehog.Repository on PostGIS and on SQLite.
package store

import (
	"context"
	"errors"
	"log/slog"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"github.com/ubigu/hedgehog-map/internal/db"
	"github.com/ubigu/hedgehog-map/internal/geo"
	"github.com/ubigu/hedgehog-map/internal/hedgehog"
	"gorm.io/gorm"
)

// Postgis stores sightings in a geometry(Point,3067) column.
type Postgis struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewPostgis(gdb *gorm.DB, logger *slog.Logger) *Postgis {
	return &Postgis{db: gdb, logger: logger}
}

// Init installs PostGIS and migrates the hedgehog table.
func (p *Postgis) Init(ctx context.Context) error {
	tx := p.db.WithContext(ctx)
	if err := db.EnsureExtension(tx, "postgis"); err != nil {
		return p.fail(ctx, "enable postgis", err)
	}
	if err := tx.AutoMigrate(&hedgehogRow{}); err != nil {
		return p.fail(ctx, "migrate hedgehog table", err)
	}
	return nil
}

func (p *Postgis) List(ctx context.Context) ([]hedgehog.ListItem, error) {
	var items []hedgehog.ListItem
	err := p.db.WithContext(ctx).
		Raw(`SELECT id, name FROM hedgehog`).
		Scan(&items).Error
	if err != nil {
		return nil, p.fail(ctx, "list hedgehogs", err)
	}
	return items, nil
}

func (p *Postgis) Get(ctx context.Context, id int64) (hedgehog.Hedgehog, bool, error) {
	var row geoJSONRow
	res := p.db.WithContext(ctx).Raw(`
		SELECT id, name, age, gender, ST_AsGeoJSON(location) AS location
		FROM hedgehog
		WHERE id = ?
	`, id).Scan(&row)
	if res.Error != nil {
		return hedgehog.Hedgehog{}, false, p.fail(ctx, "get hedgehog", res.Error)
	}
	if res.RowsAffected == 0 {
		return hedgehog.Hedgehog{}, false, nil
	}

	h, err := row.hedgehog()
	if err != nil {
		return hedgehog.Hedgehog{}, false, p.fail(ctx, "decode hedgehog location", err)
	}
	return h, true, nil
}

func (p *Postgis) Create(ctx context.Context, n hedgehog.NewHedgehog) (hedgehog.Hedgehog, error) {
	location, err := geo.MarshalGeoJSON(n.Location)
	if err != nil {
		return hedgehog.Hedgehog{}, p.fail(ctx, "encode hedgehog location", err)
	}

	var row geoJSONRow
	res := p.db.WithContext(ctx).Raw(`
		INSERT INTO hedgehog (name, age, gender, location)
		VALUES (?, ?, ?, ST_SetSRID(ST_GeomFromGeoJSON(?), ?))
		RETURNING id, name, age, gender, ST_AsGeoJSON(location) AS location
	`, n.Name, n.Age, string(n.Gender), string(location), geo.SRID).Scan(&row)
	if res.Error != nil {
		return hedgehog.Hedgehog{}, p.fail(ctx, "insert hedgehog", res.Error)
	}

	h, err := row.hedgehog()
	if err != nil {
		return hedgehog.Hedgehog{}, p.fail(ctx, "decode hedgehog location", err)
	}
	return h, nil
}

// All returns full records ordered by id. An empty ids slice selects every row.
func (p *Postgis) All(ctx context.Context, ids []int64) ([]hedgehog.Hedgehog, error) {
	q := `SELECT id, name, age, gender, ST_AsGeoJSON(location) AS location FROM hedgehog`
	var args []any
	if len(ids) > 0 {
		q += ` WHERE id = ANY(?)`
		args = append(args, pq.Array(ids))
	}
	q += ` ORDER BY id`

	var rows []geoJSONRow
	if err := p.db.WithContext(ctx).Raw(q, args...).Scan(&rows).Error; err != nil {
		return nil, p.fail(ctx, "export hedgehogs", err)
	}

	out := make([]hedgehog.Hedgehog, 0, len(rows))
	for _, r := range rows {
		h, err := r.hedgehog()
		if err != nil {
			return nil, p.fail(ctx, "decode hedgehog location", err)
		}
		out = append(out, h)
	}
	return out, nil
}

func (p *Postgis) Ping(ctx context.Context) error {
	sqlDB, err := p.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (p *Postgis) Close() error {
	sqlDB, err := p.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// fail logs the storage diagnostic, with the SQLSTATE when PostgreSQL
// reported one, and returns it as a DatabaseError.
func (p *Postgis) fail(ctx context.Context, op string, err error) error {
	attrs := []any{"op", op, "error", err}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		attrs = append(attrs, "sqlstate", pgErr.Code)
	}
	p.logger.ErrorContext(ctx, "database operation failed", attrs...)
	return hedgehog.NewDatabaseError(err)
}
