// Package store persists named filter selections in a local SQLite
// database, so a useful slice of the dataset can be reopened later or
// shared between the web UI and the CLI.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"mpgdash/domain/car"
	apperrors "mpgdash/internal/errors"
	"mpgdash/ports"
)

const schema = `
CREATE TABLE IF NOT EXISTS saved_views (
	id         TEXT PRIMARY KEY,
	name       TEXT NOT NULL UNIQUE,
	origins    TEXT NOT NULL,
	cylinders  TEXT NOT NULL,
	year_min   INTEGER NOT NULL,
	year_max   INTEGER NOT NULL,
	created_at INTEGER NOT NULL
)`

// Store implements ports.ViewStorePort on a SQLite database file.
type Store struct {
	db *sqlx.DB
}

// DefaultPath returns the per-user database location under the XDG data
// directory, creating parent directories as needed.
func DefaultPath() (string, error) {
	path, err := xdg.DataFile("mpgdash/views.db")
	if err != nil {
		return "", apperrors.StoreError("resolve data directory", err)
	}
	return path, nil
}

// Open opens (or creates) the database at path and ensures the schema
// exists.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, apperrors.StoreError(fmt.Sprintf("create store directory %s", dir), err)
		}
	}

	db, err := sqlx.Connect("sqlite", path)
	if err != nil {
		return nil, apperrors.StoreError(fmt.Sprintf("open store %s", path), err)
	}
	// sqlite allows a single writer.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, apperrors.StoreError("create saved_views table", err)
	}
	return &Store{db: db}, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// Save stores the selection under name, replacing any previous view with
// the same name, and returns the stored row.
func (s *Store) Save(ctx context.Context, name string, state car.FilterState) (ports.SavedView, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return ports.SavedView{}, apperrors.StoreError("view name is required", nil)
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO saved_views (id, name, origins, cylinders, year_min, year_max, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET
			origins = excluded.origins,
			cylinders = excluded.cylinders,
			year_min = excluded.year_min,
			year_max = excluded.year_max
	`, uuid.NewString(), name,
		strings.Join(state.SelectedOrigins(), ","),
		joinInts(state.SelectedCylinders()),
		state.YearMin, state.YearMax, time.Now().Unix())
	if err != nil {
		return ports.SavedView{}, apperrors.StoreError(fmt.Sprintf("save view %q", name), err)
	}

	return s.Get(ctx, name)
}

// List returns all saved views, newest first.
func (s *Store) List(ctx context.Context) ([]ports.SavedView, error) {
	var rows []viewRow
	err := s.db.SelectContext(ctx, &rows, `
		SELECT id, name, origins, cylinders, year_min, year_max, created_at
		FROM saved_views
		ORDER BY created_at DESC, name ASC
	`)
	if err != nil {
		return nil, apperrors.StoreError("list views", err)
	}

	views := make([]ports.SavedView, len(rows))
	for i, row := range rows {
		views[i] = row.savedView()
	}
	return views, nil
}

// Get returns the view whose id or name matches ref.
func (s *Store) Get(ctx context.Context, ref string) (ports.SavedView, error) {
	var row viewRow
	err := s.db.GetContext(ctx, &row, `
		SELECT id, name, origins, cylinders, year_min, year_max, created_at
		FROM saved_views
		WHERE id = ? OR name = ?
	`, ref, ref)
	if errors.Is(err, sql.ErrNoRows) {
		return ports.SavedView{}, apperrors.NotFound(fmt.Sprintf("saved view %q", ref))
	}
	if err != nil {
		return ports.SavedView{}, apperrors.StoreError(fmt.Sprintf("get view %q", ref), err)
	}
	return row.savedView(), nil
}

// Delete removes the view whose id or name matches ref.
func (s *Store) Delete(ctx context.Context, ref string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM saved_views WHERE id = ? OR name = ?`, ref, ref)
	if err != nil {
		return apperrors.StoreError(fmt.Sprintf("delete view %q", ref), err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return apperrors.NotFound(fmt.Sprintf("saved view %q", ref))
	}
	return nil
}

// viewRow is the database shape of a saved view. Origins and cylinders
// are stored comma-joined, created_at as unix seconds.
type viewRow struct {
	ID        string `db:"id"`
	Name      string `db:"name"`
	Origins   string `db:"origins"`
	Cylinders string `db:"cylinders"`
	YearMin   int    `db:"year_min"`
	YearMax   int    `db:"year_max"`
	CreatedAt int64  `db:"created_at"`
}

func (r viewRow) savedView() ports.SavedView {
	return ports.SavedView{
		ID:        r.ID,
		Name:      r.Name,
		Origins:   splitList(r.Origins),
		Cylinders: splitInts(r.Cylinders),
		YearMin:   r.YearMin,
		YearMax:   r.YearMax,
		CreatedAt: time.Unix(r.CreatedAt, 0),
	}
}

func joinInts(values []int) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, ",")
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, ",")
}

func splitInts(s string) []int {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	values := make([]int, 0, len(parts))
	for _, p := range parts {
		if v, err := strconv.Atoi(p); err == nil {
			values = append(values, v)
		}
	}
	return values
}
