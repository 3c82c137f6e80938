package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/paulmach/orb"
	"github.com/ubigu/hedgehog-map/internal/geo"
	"github.com/ubigu/hedgehog-map/internal/hedgehog"
	_ "modernc.org/sqlite"
)

// SQLite keeps sightings in a local file with plain easting/northing
// columns. It serves development machines without PostGIS.
type SQLite struct {
	db         *sql.DB
	logger     *slog.Logger
	listStmt   *sql.Stmt
	getStmt    *sql.Stmt
	insertStmt *sql.Stmt
}

func OpenSQLite(path string, logger *slog.Logger) (*SQLite, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create db path: %w", err)
	}

	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_pragma=synchronous(NORMAL)", filepath.Clean(path))
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxIdleTime(5 * time.Minute)

	if err := initSQLiteSchema(db); err != nil {
		_ = db.Close()
		return nil, err
	}

	s := &SQLite{db: db, logger: logger}
	stmts := []struct {
		dst   **sql.Stmt
		query string
	}{
		{&s.listStmt, `SELECT id, name FROM hedgehog`},
		{&s.getStmt, `SELECT id, name, age, gender, easting, northing FROM hedgehog WHERE id = ?`},
		{&s.insertStmt, `
			INSERT INTO hedgehog (name, age, gender, easting, northing)
			VALUES (?, ?, ?, ?, ?)
			RETURNING id, name, age, gender, easting, northing
		`},
	}
	for _, st := range stmts {
		prepared, err := db.Prepare(st.query)
		if err != nil {
			_ = s.Close()
			return nil, err
		}
		*st.dst = prepared
	}
	return s, nil
}

func initSQLiteSchema(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS hedgehog (
			id       INTEGER PRIMARY KEY AUTOINCREMENT,
			name     TEXT    NOT NULL,
			age      INTEGER NOT NULL,
			gender   TEXT    NOT NULL,
			easting  REAL    NOT NULL,
			northing REAL    NOT NULL
		);
	`)
	return err
}

func (s *SQLite) Close() error {
	for _, st := range []*sql.Stmt{s.listStmt, s.getStmt, s.insertStmt} {
		if st != nil {
			_ = st.Close()
		}
	}
	return s.db.Close()
}

func (s *SQLite) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *SQLite) List(ctx context.Context) ([]hedgehog.ListItem, error) {
	rows, err := s.listStmt.QueryContext(ctx)
	if err != nil {
		return nil, s.fail(ctx, "list hedgehogs", err)
	}
	defer rows.Close()

	var items []hedgehog.ListItem
	for rows.Next() {
		var it hedgehog.ListItem
		if err := rows.Scan(&it.ID, &it.Name); err != nil {
			return nil, s.fail(ctx, "scan hedgehog", err)
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, s.fail(ctx, "list hedgehogs", err)
	}
	return items, nil
}

func (s *SQLite) Get(ctx context.Context, id int64) (hedgehog.Hedgehog, bool, error) {
	h, err := scanHedgehog(s.getStmt.QueryRowContext(ctx, id))
	if errors.Is(err, sql.ErrNoRows) {
		return hedgehog.Hedgehog{}, false, nil
	}
	if err != nil {
		return hedgehog.Hedgehog{}, false, s.fail(ctx, "get hedgehog", err)
	}
	return h, true, nil
}

func (s *SQLite) Create(ctx context.Context, n hedgehog.NewHedgehog) (hedgehog.Hedgehog, error) {
	p, err := geo.Decode(n.Location)
	if err != nil {
		return hedgehog.Hedgehog{}, s.fail(ctx, "decode hedgehog location", err)
	}
	h, err := scanHedgehog(s.insertStmt.QueryRowContext(ctx, n.Name, n.Age, string(n.Gender), p.X(), p.Y()))
	if err != nil {
		return hedgehog.Hedgehog{}, s.fail(ctx, "insert hedgehog", err)
	}
	return h, nil
}

// All returns full records ordered by id. An empty ids slice selects every row.
func (s *SQLite) All(ctx context.Context, ids []int64) ([]hedgehog.Hedgehog, error) {
	q := `SELECT id, name, age, gender, easting, northing FROM hedgehog`
	args := make([]any, 0, len(ids))
	if len(ids) > 0 {
		q += ` WHERE id IN (?` + strings.Repeat(`, ?`, len(ids)-1) + `)`
		for _, id := range ids {
			args = append(args, id)
		}
	}
	q += ` ORDER BY id`

	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, s.fail(ctx, "export hedgehogs", err)
	}
	defer rows.Close()

	out := []hedgehog.Hedgehog{}
	for rows.Next() {
		h, err := scanHedgehog(rows)
		if err != nil {
			return nil, s.fail(ctx, "scan hedgehog", err)
		}
		out = append(out, h)
	}
	if err := rows.Err(); err != nil {
		return nil, s.fail(ctx, "export hedgehogs", err)
	}
	return out, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanHedgehog(sc scanner) (hedgehog.Hedgehog, error) {
	var (
		h        hedgehog.Hedgehog
		gender   string
		easting  float64
		northing float64
	)
	if err := sc.Scan(&h.ID, &h.Name, &h.Age, &gender, &easting, &northing); err != nil {
		return hedgehog.Hedgehog{}, err
	}
	h.Gender = hedgehog.Gender(gender)
	h.Location = geo.Encode(orb.Point{easting, northing})
	return h, nil
}

func (s *SQLite) fail(ctx context.Context, op string, err error) error {
	s.logger.ErrorContext(ctx, "database operation failed", "op", op, "error", err)
	return hedgehog.NewDatabaseError(err)
}
