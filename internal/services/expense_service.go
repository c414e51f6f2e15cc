// Package services orchestrates expense operations across the store
// and the optional event stream.
package services

import (
	"context"

	"expensed/internal/core"
	"expensed/internal/events"
	"expensed/internal/log"
	"expensed/internal/store"
)

// ExpenseService coordinates validation, persistence and event
// publishing. The store write happens first; publishing is best-effort
// and never fails the request.
type ExpenseService struct {
	store  store.Store
	events *events.Client
	logger *log.Logger
}

func NewExpenseService(st store.Store, ev *events.Client, logger *log.Logger) *ExpenseService {
	if logger == nil {
		logger = log.New(log.DefaultConfig()).WithComponent(log.ComponentExpense)
	}
	return &ExpenseService{
		store:  st,
		events: ev,
		logger: logger,
	}
}

// Create validates and persists a new expense, returning the assigned id.
func (s *ExpenseService) Create(ctx context.Context, e core.NewExpense) (int64, error) {
	if err := e.Validate(); err != nil {
		return 0, err
	}

	id, err := s.store.Insert(ctx, e)
	if err != nil {
		return 0, err
	}

	s.logger.InfoContext(ctx, "Expense created",
		log.FieldExpenseID, id,
		log.FieldAmount, e.Amount,
		log.FieldCategory, e.Category)

	if s.events != nil {
		if err := s.events.Publish(ctx, events.NewExpenseCreated(id, e.Amount, e.Category)); err != nil {
			s.logger.ErrorContext(ctx, "Failed to publish created event",
				log.FieldExpenseID, id, log.FieldError, err)
		}
	}

	return id, nil
}

// Delete removes an expense permanently. A missing id is reported as
// core.ErrNotFound.
func (s *ExpenseService) Delete(ctx context.Context, id int64) error {
	existed, err := s.store.DeleteByID(ctx, id)
	if err != nil {
		return err
	}
	if !existed {
		return core.ErrNotFound
	}

	s.logger.InfoContext(ctx, "Expense deleted", log.FieldExpenseID, id)

	if s.events != nil {
		if err := s.events.Publish(ctx, events.NewExpenseDeleted(id)); err != nil {
			s.logger.ErrorContext(ctx, "Failed to publish deleted event",
				log.FieldExpenseID, id, log.FieldError, err)
		}
	}

	return nil
}

// ListRecent returns the newest records, with the limit clamped to the
// permitted range.
func (s *ExpenseService) ListRecent(ctx context.Context, limit int) ([]core.Expense, error) {
	return s.store.ListRecent(ctx, store.ClampLimit(limit))
}

// Summary fetches the full table snapshot and runs the aggregation
// engine over it.
func (s *ExpenseService) Summary(ctx context.Context) (core.Summary, error) {
	rows, err := s.store.ListAllForAnalytics(ctx)
	if err != nil {
		return core.Summary{}, err
	}
	return core.Summarize(rows), nil
}

// Ping reports whether the store is reachable.
func (s *ExpenseService) Ping(ctx context.Context) error {
	return s.store.Ping(ctx)
}
