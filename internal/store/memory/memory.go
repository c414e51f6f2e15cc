// Package memory implements the expense store in process memory. It
// backs handler tests and the zero-dependency dev backend.
package memory

import (
	"context"
	"sync"
	"time"

	"expensed/internal/core"
	"expensed/internal/store"
)

type Store struct {
	mu     sync.Mutex
	nextID int64
	rows   []core.Expense
}

var _ store.Store = (*Store)(nil)

func New() *Store {
	return &Store{nextID: 1}
}

func (s *Store) Insert(_ context.Context, e core.NewExpense) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextID
	s.nextID++
	s.rows = append(s.rows, core.Expense{
		ID:          id,
		Amount:      e.Amount,
		Category:    e.Category,
		ExpenseDate: e.ExpenseDate,
		Note:        e.Note,
		CreatedAt:   time.Now().UTC(),
	})
	return id, nil
}

func (s *Store) DeleteByID(_ context.Context, id int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, e := range s.rows {
		if e.ID == id {
			s.rows = append(s.rows[:i], s.rows[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (s *Store) ListRecent(_ context.Context, limit int) ([]core.Expense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Rows are kept in insertion order; newest last.
	out := make([]core.Expense, 0, limit)
	for i := len(s.rows) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, s.rows[i])
	}
	return out, nil
}

func (s *Store) ListAllForAnalytics(_ context.Context) ([]core.AnalyticsRow, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]core.AnalyticsRow, len(s.rows))
	for i, e := range s.rows {
		out[i] = core.AnalyticsRow{Amount: e.Amount, Category: e.Category, Date: e.ExpenseDate}
	}
	return out, nil
}

func (s *Store) Ping(context.Context) error { return nil }

func (s *Store) Close() error { return nil }
