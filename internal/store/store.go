// Package store defines the persistence accessor contract the service
// consumes. Implementations live in the postgres, sqlite and memory
// subpackages.
package store

import (
	"context"

	"expensed/internal/core"
)

const (
	// Bounds applied to the recent-list row cap regardless of the
	// requested value.
	MinListLimit = 1
	MaxListLimit = 200

	// DefaultListLimit is used when a request carries no usable limit.
	DefaultListLimit = 20
)

// ClampLimit forces a requested row cap into [MinListLimit, MaxListLimit].
func ClampLimit(limit int) int {
	if limit < MinListLimit {
		return MinListLimit
	}
	if limit > MaxListLimit {
		return MaxListLimit
	}
	return limit
}

// Store is the boundary to the relational store. Implementations must
// release any acquired connection on every exit path and surface
// connectivity or query failures as *core.StorageError.
type Store interface {
	// Insert persists a record and returns the newly assigned id.
	Insert(ctx context.Context, e core.NewExpense) (int64, error)

	// DeleteByID removes the record if present and reports whether it
	// existed. Deletion is permanent and unconditional.
	DeleteByID(ctx context.Context, id int64) (bool, error)

	// ListRecent returns up to limit records ordered by creation time,
	// most recent first. The caller clamps limit before the call.
	ListRecent(ctx context.Context, limit int) ([]core.Expense, error)

	// ListAllForAnalytics returns every record's amount/category/date
	// triple for aggregation; no limit.
	ListAllForAnalytics(ctx context.Context) ([]core.AnalyticsRow, error)

	Ping(ctx context.Context) error
	Close() error
}
