package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"spendlens/internal/amqp"
	"spendlens/internal/core"
	"spendlens/internal/storage"
)

type fakeStore struct {
	expenses map[string]core.Expense
	order    []string
}

func newFakeStore() *fakeStore {
	return &fakeStore{expenses: make(map[string]core.Expense)}
}

func (f *fakeStore) Create(ctx context.Context, e core.Expense) error {
	f.expenses[e.ID] = e
	f.order = append(f.order, e.ID)
	return nil
}

func (f *fakeStore) Get(ctx context.Context, id string) (core.Expense, error) {
	e, ok := f.expenses[id]
	if !ok {
		return core.Expense{}, storage.ErrNotFound
	}
	return e, nil
}

func (f *fakeStore) List(ctx context.Context) ([]core.Expense, error) {
	out := make([]core.Expense, 0, len(f.order))
	for _, id := range f.order {
		out = append(out, f.expenses[id])
	}
	return out, nil
}

func (f *fakeStore) Update(ctx context.Context, e core.Expense) error {
	if _, ok := f.expenses[e.ID]; !ok {
		return storage.ErrNotFound
	}
	f.expenses[e.ID] = e
	return nil
}

func (f *fakeStore) Delete(ctx context.Context, id string) error {
	if _, ok := f.expenses[id]; !ok {
		return storage.ErrNotFound
	}
	delete(f.expenses, id)
	return nil
}

func (f *fakeStore) Close() error { return nil }

type fakePublisher struct {
	events []string
	err    error
}

func (f *fakePublisher) PublishExpenseEvent(ctx context.Context, id, action string) error {
	if f.err != nil {
		return f.err
	}
	f.events = append(f.events, action)
	return nil
}

func (f *fakePublisher) Close() error { return nil }

func validExpense() core.Expense {
	return core.Expense{
		Date:        time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC),
		Amount:      12.5,
		Category:    core.Food,
		Description: "lunch",
	}
}

func TestCreateAssignsIDAndPublishes(t *testing.T) {
	store := newFakeStore()
	pub := &fakePublisher{}
	svc := NewExpenseService(store, pub)

	created, err := svc.Create(context.Background(), validExpense())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.ID == "" {
		t.Fatal("Create should assign an ID")
	}
	if created.CreatedAt.IsZero() || created.UpdatedAt.IsZero() {
		t.Fatal("Create should stamp timestamps")
	}
	if len(pub.events) != 1 || pub.events[0] != amqp.ActionCreated {
		t.Fatalf("expected a created event, got %v", pub.events)
	}
	if _, err := store.Get(context.Background(), created.ID); err != nil {
		t.Fatalf("expense not persisted: %v", err)
	}
}

func TestCreateRejectsInvalid(t *testing.T) {
	store := newFakeStore()
	svc := NewExpenseService(store, nil)

	bad := validExpense()
	bad.Amount = -5
	if _, err := svc.Create(context.Background(), bad); !errors.Is(err, core.ErrInvalidAmount) {
		t.Fatalf("expected ErrInvalidAmount, got %v", err)
	}
	if len(store.expenses) != 0 {
		t.Fatal("invalid expense must not be persisted")
	}
}

func TestCreateSurvivesPublishFailure(t *testing.T) {
	store := newFakeStore()
	pub := &fakePublisher{err: errors.New("broker down")}
	svc := NewExpenseService(store, pub)

	created, err := svc.Create(context.Background(), validExpense())
	if err != nil {
		t.Fatalf("Create should succeed despite publish failure: %v", err)
	}
	if _, err := store.Get(context.Background(), created.ID); err != nil {
		t.Fatalf("expense not persisted: %v", err)
	}
}

func TestUpdatePreservesCreatedAt(t *testing.T) {
	store := newFakeStore()
	pub := &fakePublisher{}
	svc := NewExpenseService(store, pub)

	created, err := svc.Create(context.Background(), validExpense())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	changed := created
	changed.Amount = 99
	changed.CreatedAt = time.Time{}

	updated, err := svc.Update(context.Background(), changed)
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if !updated.CreatedAt.Equal(created.CreatedAt) {
		t.Fatalf("CreatedAt changed on update: %v vs %v", updated.CreatedAt, created.CreatedAt)
	}
	if updated.Amount != 99 {
		t.Fatalf("amount not updated: %v", updated.Amount)
	}
	if len(pub.events) != 2 || pub.events[1] != amqp.ActionUpdated {
		t.Fatalf("expected an updated event, got %v", pub.events)
	}
}

func TestDeleteUnknown(t *testing.T) {
	svc := NewExpenseService(newFakeStore(), nil)
	if err := svc.Delete(context.Background(), "missing"); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
