// Package services orchestrates expense operations across storage and the
// message bus.
package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"spendlens/internal/amqp"
	"spendlens/internal/core"
)

// ExpenseStore is the storage surface the service needs.
type ExpenseStore interface {
	Create(ctx context.Context, e core.Expense) error
	Get(ctx context.Context, id string) (core.Expense, error)
	List(ctx context.Context) ([]core.Expense, error)
	Update(ctx context.Context, e core.Expense) error
	Delete(ctx context.Context, id string) error
	Close() error
}

// EventPublisher publishes change notifications for the backup worker.
type EventPublisher interface {
	PublishExpenseEvent(ctx context.Context, id, action string) error
	Close() error
}

// ExpenseService validates and persists expenses, then notifies the bus.
// A nil publisher disables notifications; the periodic sweep still picks the
// records up.
type ExpenseService struct {
	store     ExpenseStore
	publisher EventPublisher
}

func NewExpenseService(store ExpenseStore, publisher EventPublisher) *ExpenseService {
	return &ExpenseService{
		store:     store,
		publisher: publisher,
	}
}

// Create validates and saves a new expense, assigning it an ID.
func (s *ExpenseService) Create(ctx context.Context, e core.Expense) (core.Expense, error) {
	now := time.Now()
	e.ID = uuid.New().String()
	e.CreatedAt = now
	e.UpdatedAt = now

	if err := e.Validate(); err != nil {
		return core.Expense{}, fmt.Errorf("validate expense: %w", err)
	}

	// Save locally first; the bus notification is best-effort.
	if err := s.store.Create(ctx, e); err != nil {
		return core.Expense{}, fmt.Errorf("save expense: %w", err)
	}

	s.publishEvent(ctx, e.ID, amqp.ActionCreated)
	return e, nil
}

// Get returns a single expense by id.
func (s *ExpenseService) Get(ctx context.Context, id string) (core.Expense, error) {
	return s.store.Get(ctx, id)
}

// List returns every expense, newest first.
func (s *ExpenseService) List(ctx context.Context) ([]core.Expense, error) {
	return s.store.List(ctx)
}

// Update replaces the mutable fields of an existing expense.
func (s *ExpenseService) Update(ctx context.Context, e core.Expense) (core.Expense, error) {
	existing, err := s.store.Get(ctx, e.ID)
	if err != nil {
		return core.Expense{}, fmt.Errorf("load expense: %w", err)
	}

	e.CreatedAt = existing.CreatedAt
	e.UpdatedAt = time.Now()

	if err := e.Validate(); err != nil {
		return core.Expense{}, fmt.Errorf("validate expense: %w", err)
	}

	if err := s.store.Update(ctx, e); err != nil {
		return core.Expense{}, fmt.Errorf("update expense: %w", err)
	}

	s.publishEvent(ctx, e.ID, amqp.ActionUpdated)
	return e, nil
}

// Delete removes the expense.
func (s *ExpenseService) Delete(ctx context.Context, id string) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete expense: %w", err)
	}

	s.publishEvent(ctx, id, amqp.ActionDeleted)
	return nil
}

func (s *ExpenseService) publishEvent(ctx context.Context, id, action string) {
	if s.publisher == nil {
		slog.WarnContext(ctx, "AMQP client not available, skipping event", "id", id, "action", action)
		return
	}
	if err := s.publisher.PublishExpenseEvent(ctx, id, action); err != nil {
		// The expense is already persisted; the request still succeeds.
		slog.ErrorContext(ctx, "Failed to publish expense event",
			"id", id, "action", action, "error", err)
	}
}

// Close closes both the store and the bus connection.
func (s *ExpenseService) Close() error {
	var errs []error

	if s.store != nil {
		if err := s.store.Close(); err != nil {
			errs = append(errs, fmt.Errorf("storage: %w", err))
		}
	}

	if s.publisher != nil {
		if err := s.publisher.Close(); err != nil {
			errs = append(errs, fmt.Errorf("amqp: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("close expense service: %v", errs)
	}

	return nil
}
