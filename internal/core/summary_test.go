package core

import (
	"encoding/json"
	"reflect"
	"testing"
)

func sampleRows() []AnalyticsRow {
	return []AnalyticsRow{
		{Amount: 100, Category: "food", Date: "2024-01-05"},
		{Amount: 50, Category: "food", Date: "2024-02-01"},
		{Amount: 30, Category: "transport", Date: "2024-01-20"},
	}
}

func TestSummarizeExample(t *testing.T) {
	s := Summarize(sampleRows())

	if s.TotalExpenses != 3 {
		t.Fatalf("total_expenses = %d, want 3", s.TotalExpenses)
	}
	if s.AverageSpend != 60.0 {
		t.Fatalf("average_spend = %v, want 60.0", s.AverageSpend)
	}
	if s.MaxSpend != 100.0 {
		t.Fatalf("max_spend = %v, want 100.0", s.MaxSpend)
	}

	wantCats := GroupTotals{{Key: "food", Total: 150}, {Key: "transport", Total: 30}}
	if !reflect.DeepEqual(s.CategoryTotals, wantCats) {
		t.Fatalf("category_totals = %v, want %v", s.CategoryTotals, wantCats)
	}

	// Monthly totals ascending: 2024-02 (50) before 2024-01 (130).
	wantMonths := GroupTotals{{Key: "2024-02", Total: 50}, {Key: "2024-01", Total: 130}}
	if !reflect.DeepEqual(s.MonthlyTotals, wantMonths) {
		t.Fatalf("monthly_totals = %v, want %v", s.MonthlyTotals, wantMonths)
	}
}

func TestSummarizeEmptyIsSentinel(t *testing.T) {
	s := Summarize(nil)
	if !s.Empty() {
		t.Fatal("expected empty sentinel for no rows")
	}
	// Rows that all fail date parsing also yield the sentinel.
	s = Summarize([]AnalyticsRow{{Amount: 10, Category: "x", Date: "garbage"}})
	if !s.Empty() {
		t.Fatal("expected empty sentinel when every row is dropped")
	}
}

func TestSummarizeDropsUnparseableDates(t *testing.T) {
	rows := append(sampleRows(), AnalyticsRow{Amount: 999, Category: "broken", Date: "not-a-date"})
	s := Summarize(rows)

	if s.TotalExpenses != 3 {
		t.Fatalf("total_expenses = %d, want 3 (bad row excluded)", s.TotalExpenses)
	}
	for _, g := range s.CategoryTotals {
		if g.Key == "broken" {
			t.Fatal("dropped row leaked into category totals")
		}
	}
	if s.MaxSpend != 100.0 {
		t.Fatalf("max_spend = %v, want 100.0", s.MaxSpend)
	}
}

func TestSummarizeIdempotent(t *testing.T) {
	rows := sampleRows()
	first := Summarize(rows)
	second := Summarize(rows)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("summaries differ across runs: %v vs %v", first, second)
	}
}

func TestSummarizeStableTies(t *testing.T) {
	rows := []AnalyticsRow{
		{Amount: 25, Category: "books", Date: "2024-03-01"},
		{Amount: 25, Category: "games", Date: "2024-04-01"},
		{Amount: 25, Category: "music", Date: "2024-05-01"},
	}
	s := Summarize(rows)

	// Equal totals keep first-appearance order.
	want := GroupTotals{{Key: "books", Total: 25}, {Key: "games", Total: 25}, {Key: "music", Total: 25}}
	if !reflect.DeepEqual(s.CategoryTotals, want) {
		t.Fatalf("tied category order = %v, want %v", s.CategoryTotals, want)
	}
	wantMonths := GroupTotals{{Key: "2024-03", Total: 25}, {Key: "2024-04", Total: 25}, {Key: "2024-05", Total: 25}}
	if !reflect.DeepEqual(s.MonthlyTotals, wantMonths) {
		t.Fatalf("tied month order = %v, want %v", s.MonthlyTotals, wantMonths)
	}
}

func TestSummarizeRounding(t *testing.T) {
	rows := []AnalyticsRow{
		{Amount: 10, Category: "a", Date: "2024-01-01"},
		{Amount: 10, Category: "a", Date: "2024-01-02"},
		{Amount: 10.01, Category: "a", Date: "2024-01-03"},
	}
	s := Summarize(rows)
	// Mean is 10.003..., rounded half-up to two decimals.
	if s.AverageSpend != 10.0 {
		t.Fatalf("average_spend = %v, want 10.0", s.AverageSpend)
	}
	if s.MaxSpend != 10.01 {
		t.Fatalf("max_spend = %v, want 10.01", s.MaxSpend)
	}
}

func TestGroupTotalsMarshalPreservesOrder(t *testing.T) {
	g := GroupTotals{{Key: "food", Total: 150}, {Key: "transport", Total: 30.5}}
	b, err := json.Marshal(g)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `{"food":150,"transport":30.5}`
	if string(b) != want {
		t.Fatalf("marshal = %s, want %s", b, want)
	}
}
