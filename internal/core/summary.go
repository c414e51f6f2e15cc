package core

import (
	"bytes"
	"encoding/json"
	"math"
	"sort"
	"strconv"
	"time"
)

// AnalyticsRow is the minimal projection of a stored expense fetched
// for aggregation: amount, category and the raw date string.
type AnalyticsRow struct {
	Amount   float64
	Category string
	Date     string
}

// GroupTotal pairs a group key (category name or YYYY-MM month key)
// with its summed amount.
type GroupTotal struct {
	Key   string
	Total float64
}

// GroupTotals is an ordered set of group sums. It marshals as a JSON
// object whose keys keep the slice order; a plain map would lose the
// ordering the aggregation establishes.
type GroupTotals []GroupTotal

func (g GroupTotals) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, t := range g {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(t.Key)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.WriteString(strconv.FormatFloat(t.Total, 'f', -1, 64))
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Summary holds aggregate statistics computed over the full expense
// table snapshot.
type Summary struct {
	TotalExpenses  int         `json:"total_expenses"`
	AverageSpend   float64     `json:"average_spend"`
	MaxSpend       float64     `json:"max_spend"`
	CategoryTotals GroupTotals `json:"category_totals"`
	MonthlyTotals  GroupTotals `json:"monthly_totals"`
}

// Empty reports the no-data sentinel: zero surviving rows.
func (s Summary) Empty() bool { return s.TotalExpenses == 0 }

// Summarize computes the analytics summary over a snapshot of rows.
//
// Rows whose date does not parse as YYYY-MM-DD are silently dropped:
// that is a data-cleaning policy, not an error. Surviving rows are
// grouped by category (totals descending) and by calendar month
// (totals ascending); equal totals keep first-appearance order via a
// stable sort. Average and max spend are rounded half-up to two
// decimals. The function is pure and deterministic for a given input.
func Summarize(rows []AnalyticsRow) Summary {
	var (
		count    int
		sum      float64
		maxSpend float64

		catIndex   = make(map[string]int)
		cats       GroupTotals
		monthIndex = make(map[string]int)
		months     GroupTotals
	)

	for _, r := range rows {
		d, err := time.Parse(DateLayout, r.Date)
		if err != nil {
			continue
		}

		count++
		sum += r.Amount
		if r.Amount > maxSpend {
			maxSpend = r.Amount
		}

		if i, ok := catIndex[r.Category]; ok {
			cats[i].Total += r.Amount
		} else {
			catIndex[r.Category] = len(cats)
			cats = append(cats, GroupTotal{Key: r.Category, Total: r.Amount})
		}

		month := d.Format("2006-01")
		if i, ok := monthIndex[month]; ok {
			months[i].Total += r.Amount
		} else {
			monthIndex[month] = len(months)
			months = append(months, GroupTotal{Key: month, Total: r.Amount})
		}
	}

	if count == 0 {
		return Summary{}
	}

	sort.SliceStable(cats, func(i, j int) bool { return cats[i].Total > cats[j].Total })
	sort.SliceStable(months, func(i, j int) bool { return months[i].Total < months[j].Total })

	return Summary{
		TotalExpenses:  count,
		AverageSpend:   Round2(sum / float64(count)),
		MaxSpend:       Round2(maxSpend),
		CategoryTotals: cats,
		MonthlyTotals:  months,
	}
}

// Round2 rounds half away from zero to two decimal places. Amounts are
// always positive, so this behaves as ordinary half-up display rounding.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
