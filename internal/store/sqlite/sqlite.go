// Package sqlite implements the expense store on an embedded SQLite
// database, for single-node deployments and local development.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"expensed/internal/core"
	"expensed/internal/store"
)

type Store struct {
	db *sql.DB
}

var _ store.Store = (*Store)(nil)

// New opens (and creates if needed) the database at dbPath and applies
// pending migrations.
func New(dbPath string) (*Store, error) {
	if dir := filepath.Dir(dbPath); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := runMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &Store{db: db}, nil
}

func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) Insert(ctx context.Context, e core.NewExpense) (int64, error) {
	note := sql.NullString{}
	if e.Note != nil {
		note = sql.NullString{String: *e.Note, Valid: true}
	}

	res, err := s.db.ExecContext(ctx,
		`INSERT INTO expenses (amount, category, expense_date, note) VALUES (?, ?, ?, ?)`,
		e.Amount, e.Category, e.ExpenseDate, note,
	)
	if err != nil {
		return 0, &core.StorageError{Op: "insert expense", Err: err}
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, &core.StorageError{Op: "insert expense", Err: err}
	}
	return id, nil
}

func (s *Store) DeleteByID(ctx context.Context, id int64) (bool, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM expenses WHERE id = ?`, id)
	if err != nil {
		return false, &core.StorageError{Op: "delete expense", Err: err}
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, &core.StorageError{Op: "delete expense", Err: err}
	}
	return affected > 0, nil
}

func (s *Store) ListRecent(ctx context.Context, limit int) ([]core.Expense, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, amount, category, expense_date, note, created_at
		 FROM expenses
		 ORDER BY created_at DESC, id DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, &core.StorageError{Op: "list expenses", Err: err}
	}
	defer rows.Close()

	var out []core.Expense
	for rows.Next() {
		var (
			e         core.Expense
			note      sql.NullString
			createdAt string
		)
		if err := rows.Scan(&e.ID, &e.Amount, &e.Category, &e.ExpenseDate, &note, &createdAt); err != nil {
			return nil, &core.StorageError{Op: "scan expense", Err: err}
		}
		if note.Valid {
			e.Note = &note.String
		}
		e.CreatedAt = parseTimestamp(createdAt)
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, &core.StorageError{Op: "list expenses", Err: err}
	}
	return out, nil
}

func (s *Store) ListAllForAnalytics(ctx context.Context) ([]core.AnalyticsRow, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT amount, category, expense_date FROM expenses`,
	)
	if err != nil {
		return nil, &core.StorageError{Op: "list analytics rows", Err: err}
	}
	defer rows.Close()

	var out []core.AnalyticsRow
	for rows.Next() {
		var r core.AnalyticsRow
		if err := rows.Scan(&r.Amount, &r.Category, &r.Date); err != nil {
			return nil, &core.StorageError{Op: "scan analytics row", Err: err}
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, &core.StorageError{Op: "list analytics rows", Err: err}
	}
	return out, nil
}

// parseTimestamp decodes the created_at column. SQLite's
// CURRENT_TIMESTAMP stores "YYYY-MM-DD HH:MM:SS" in UTC; RFC 3339 is
// accepted for rows written by other tools.
func parseTimestamp(s string) time.Time {
	if t, err := time.Parse("2006-01-02 15:04:05", s); err == nil {
		return t.UTC()
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t
	}
	return time.Time{}
}
