// Package postgres implements the expense store on PostgreSQL through
// a pgx connection pool. Statements acquire a pooled connection and
// release it on every exit path.
package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"expensed/internal/core"
	"expensed/internal/store"
)

type Store struct {
	pool *pgxpool.Pool
}

var _ store.Store = (*Store)(nil)

// New connects to databaseURL, verifies the connection and applies
// pending migrations.
func New(ctx context.Context, databaseURL string) (*Store, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("create connection pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	s := &Store{pool: pool}
	if err := s.migrate(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return s, nil
}

func (s *Store) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

func (s *Store) Close() error {
	s.pool.Close()
	return nil
}

func (s *Store) Insert(ctx context.Context, e core.NewExpense) (int64, error) {
	var id int64
	err := s.pool.QueryRow(ctx,
		`INSERT INTO expenses (amount, category, expense_date, note)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id`,
		e.Amount, e.Category, e.ExpenseDate, e.Note,
	).Scan(&id)
	if err != nil {
		return 0, &core.StorageError{Op: "insert expense", Err: err}
	}
	return id, nil
}

func (s *Store) DeleteByID(ctx context.Context, id int64) (bool, error) {
	tag, err := s.pool.Exec(ctx, `DELETE FROM expenses WHERE id = $1`, id)
	if err != nil {
		return false, &core.StorageError{Op: "delete expense", Err: err}
	}
	return tag.RowsAffected() > 0, nil
}

func (s *Store) ListRecent(ctx context.Context, limit int) ([]core.Expense, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, amount, category, expense_date::text, note, created_at
		 FROM expenses
		 ORDER BY created_at DESC, id DESC
		 LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, &core.StorageError{Op: "list expenses", Err: err}
	}
	defer rows.Close()

	var out []core.Expense
	for rows.Next() {
		var e core.Expense
		if err := rows.Scan(&e.ID, &e.Amount, &e.Category, &e.ExpenseDate, &e.Note, &e.CreatedAt); err != nil {
			return nil, &core.StorageError{Op: "scan expense", Err: err}
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, &core.StorageError{Op: "list expenses", Err: err}
	}
	return out, nil
}

func (s *Store) ListAllForAnalytics(ctx context.Context) ([]core.AnalyticsRow, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT amount, category, expense_date::text FROM expenses`,
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
