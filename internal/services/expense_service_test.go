package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"expensed/internal/core"
	"expensed/internal/store/memory"
)

func newService() (*ExpenseService, *memory.Store) {
	st := memory.New()
	return NewExpenseService(st, nil, nil), st
}

func TestCreateRejectsInvalidBeforeStore(t *testing.T) {
	svc, st := newService()
	ctx := context.Background()

	_, err := svc.Create(ctx, core.NewExpense{Amount: -5, Category: "x", ExpenseDate: "2024-01-01"})
	require.Error(t, err)

	var ve *core.ValidationError
	assert.ErrorAs(t, err, &ve)

	// Nothing reached the persistence layer.
	rows, err := st.ListAllForAnalytics(ctx)
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestCreateAndList(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()

	id, err := svc.Create(ctx, core.NewExpense{Amount: 12.5, Category: "food", ExpenseDate: "2024-01-05"})
	require.NoError(t, err)
	assert.Positive(t, id)

	got, err := svc.ListRecent(ctx, 1)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, id, got[0].ID)
	assert.False(t, got[0].CreatedAt.IsZero())
}

func TestDeleteMissingIsNotFound(t *testing.T) {
	svc, _ := newService()
	err := svc.Delete(context.Background(), 99)
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestDeleteIsPermanent(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()

	id, err := svc.Create(ctx, core.NewExpense{Amount: 10, Category: "food", ExpenseDate: "2024-01-05"})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, id))
	assert.ErrorIs(t, svc.Delete(ctx, id), core.ErrNotFound)

	got, err := svc.ListRecent(ctx, 10)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestListRecentClampsLimit(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := svc.Create(ctx, core.NewExpense{Amount: float64(i + 1), Category: "a", ExpenseDate: "2024-01-01"})
		require.NoError(t, err)
	}

	// limit=0 behaves as limit=1.
	got, err := svc.ListRecent(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, got, 1)

	// Oversized limits are capped, not rejected.
	got, err = svc.ListRecent(ctx, 10000)
	require.NoError(t, err)
	assert.Len(t, got, 3)
}

func TestSummaryEmptySentinel(t *testing.T) {
	svc, _ := newService()
	sum, err := svc.Summary(context.Background())
	require.NoError(t, err)
	assert.True(t, sum.Empty())
}

func TestSummaryOverStore(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()

	for _, e := range []core.NewExpense{
		{Amount: 100, Category: "food", ExpenseDate: "2024-01-05"},
		{Amount: 50, Category: "food", ExpenseDate: "2024-02-01"},
		{Amount: 30, Category: "transport", ExpenseDate: "2024-01-20"},
	} {
		_, err := svc.Create(ctx, e)
		require.NoError(t, err)
	}

	sum, err := svc.Summary(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, sum.TotalExpenses)
	assert.Equal(t, 60.0, sum.AverageSpend)
	assert.Equal(t, 100.0, sum.MaxSpend)
	require.Len(t, sum.CategoryTotals, 2)
	assert.Equal(t, "food", sum.CategoryTotals[0].Key)
	assert.Equal(t, 150.0, sum.CategoryTotals[0].Total)
}
