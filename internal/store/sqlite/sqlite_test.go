package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"expensed/internal/core"
)

// StoreTestSuite exercises the SQLite store against a fresh database
// file per test.
type StoreTestSuite struct {
	suite.Suite
	store *Store
	ctx   context.Context
}

func (s *StoreTestSuite) SetupTest() {
	st, err := New(filepath.Join(s.T().TempDir(), "expenses.db"))
	require.NoError(s.T(), err, "failed to open test database")
	s.store = st
	s.ctx = context.Background()
}

func (s *StoreTestSuite) TearDownTest() {
	if s.store != nil {
		s.store.Close()
	}
}

func (s *StoreTestSuite) TestInsertAndListRecent() {
	note := "weekly groceries"
	id, err := s.store.Insert(s.ctx, core.NewExpense{
		Amount:      42.50,
		Category:    "food",
		ExpenseDate: "2024-01-05",
		Note:        &note,
	})
	require.NoError(s.T(), err)
	assert.Positive(s.T(), id)

	got, err := s.store.ListRecent(s.ctx, 10)
	require.NoError(s.T(), err)
	require.Len(s.T(), got, 1)

	e := got[0]
	assert.Equal(s.T(), id, e.ID)
	assert.Equal(s.T(), 42.50, e.Amount)
	assert.Equal(s.T(), "food", e.Category)
	assert.Equal(s.T(), "2024-01-05", e.ExpenseDate)
	require.NotNil(s.T(), e.Note)
	assert.Equal(s.T(), note, *e.Note)
	assert.False(s.T(), e.CreatedAt.IsZero(), "created_at must be assigned on insert")
}

func (s *StoreTestSuite) TestInsertWithoutNote() {
	id, err := s.store.Insert(s.ctx, core.NewExpense{
		Amount:      10,
		Category:    "transport",
		ExpenseDate: "2024-02-01",
	})
	require.NoError(s.T(), err)

	got, err := s.store.ListRecent(s.ctx, 1)
	require.NoError(s.T(), err)
	require.Len(s.T(), got, 1)
	assert.Equal(s.T(), id, got[0].ID)
	assert.Nil(s.T(), got[0].Note)
}

func (s *StoreTestSuite) TestPositiveAmountConstraint() {
	// The table carries CHECK (amount > 0); a non-positive amount that
	// slipped past validation is still rejected by the store.
	_, err := s.store.Insert(s.ctx, core.NewExpense{
		Amount:      -5,
		Category:    "x",
		ExpenseDate: "2024-01-01",
	})
	require.Error(s.T(), err)

	var se *core.StorageError
	assert.ErrorAs(s.T(), err, &se)
}

func (s *StoreTestSuite) TestListRecentOrderAndLimit() {
	for _, e := range []core.NewExpense{
		{Amount: 10, Category: "a", ExpenseDate: "2024-01-01"},
		{Amount: 20, Category: "b", ExpenseDate: "2024-01-02"},
		{Amount: 30, Category: "c", ExpenseDate: "2024-01-03"},
	} {
		_, err := s.store.Insert(s.ctx, e)
		require.NoError(s.T(), err)
	}

	got, err := s.store.ListRecent(s.ctx, 2)
	require.NoError(s.T(), err)
	require.Len(s.T(), got, 2)

	// Most recent insert first; id breaks created_at ties.
	assert.Equal(s.T(), 30.0, got[0].Amount)
	assert.Equal(s.T(), 20.0, got[1].Amount)
}

func (s *StoreTestSuite) TestDeleteByID() {
	id, err := s.store.Insert(s.ctx, core.NewExpense{
		Amount: 10, Category: "food", ExpenseDate: "2024-01-05",
	})
	require.NoError(s.T(), err)

	existed, err := s.store.DeleteByID(s.ctx, id)
	require.NoError(s.T(), err)
	assert.True(s.T(), existed)

	existed, err = s.store.DeleteByID(s.ctx, id)
	require.NoError(s.T(), err)
	assert.False(s.T(), existed, "second delete of the same id must report absence")

	got, err := s.store.ListRecent(s.ctx, 10)
	require.NoError(s.T(), err)
	assert.Empty(s.T(), got)
}

func (s *StoreTestSuite) TestListAllForAnalytics() {
	for _, e := range []core.NewExpense{
		{Amount: 100, Category: "food", ExpenseDate: "2024-01-05"},
		{Amount: 50, Category: "food", ExpenseDate: "2024-02-01"},
		{Amount: 30, Category: "transport", ExpenseDate: "2024-01-20"},
	} {
		_, err := s.store.Insert(s.ctx, e)
		require.NoError(s.T(), err)
	}

	rows, err := s.store.ListAllForAnalytics(s.ctx)
	require.NoError(s.T(), err)
	require.Len(s.T(), rows, 3)

	sum := core.Summarize(rows)
	assert.Equal(s.T(), 3, sum.TotalExpenses)
	assert.Equal(s.T(), 60.0, sum.AverageSpend)
	assert.Equal(s.T(), 100.0, sum.MaxSpend)
}

func (s *StoreTestSuite) TestMigrationsAreIdempotent() {
	// Reopening the same database applies no further changes.
	path := filepath.Join(s.T().TempDir(), "reopen.db")
	first, err := New(path)
	require.NoError(s.T(), err)
	_, err = first.Insert(s.ctx, core.NewExpense{Amount: 1, Category: "a", ExpenseDate: "2024-01-01"})
	require.NoError(s.T(), err)
	require.NoError(s.T(), first.Close())

	second, err := New(path)
	require.NoError(s.T(), err)
	defer second.Close()

	got, err := second.ListRecent(s.ctx, 10)
	require.NoError(s.T(), err)
	assert.Len(s.T(), got, 1)
}

func TestStoreTestSuite(t *testing.T) {
	suite.Run(t, new(StoreTestSuite))
}
