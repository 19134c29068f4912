package worker

import (
	"context"
	"errors"
	"testing"
	"time"

	"spendlens/internal/amqp"
	"spendlens/internal/core"
	"spendlens/internal/sheets/memory"
	"spendlens/internal/storage"
)

type fakeSyncStore struct {
	expenses map[string]core.Expense
	pending  []string
	synced   []string
	errored  []string
}

func newFakeSyncStore() *fakeSyncStore {
	return &fakeSyncStore{expenses: make(map[string]core.Expense)}
}

func (f *fakeSyncStore) add(e core.Expense) {
	f.expenses[e.ID] = e
	f.pending = append(f.pending, e.ID)
}

func (f *fakeSyncStore) Get(ctx context.Context, id string) (core.Expense, error) {
	e, ok := f.expenses[id]
	if !ok {
		return core.Expense{}, storage.ErrNotFound
	}
	return e, nil
}

func (f *fakeSyncStore) GetPendingSync(ctx context.Context, limit int) ([]core.Expense, error) {
	var out []core.Expense
	for _, id := range f.pending {
		if len(out) == limit {
			break
		}
		out = append(out, f.expenses[id])
	}
	return out, nil
}

func (f *fakeSyncStore) MarkSynced(ctx context.Context, id string) error {
	f.synced = append(f.synced, id)
	return nil
}

func (f *fakeSyncStore) MarkSyncError(ctx context.Context, id string) error {
	f.errored = append(f.errored, id)
	return nil
}

func (f *fakeSyncStore) RetryErrored(ctx context.Context) (int64, error) {
	n := int64(len(f.errored))
	f.errored = nil
	return n, nil
}

type failingWriter struct{}

func (failingWriter) AppendExpense(ctx context.Context, e core.Expense) (string, error) {
	return "", errors.New("sheet unavailable")
}

func testExpense(id string) core.Expense {
	return core.Expense{
		ID:          id,
		Date:        time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC),
		Amount:      10,
		Category:    core.Food,
		Description: "lunch",
	}
}

func TestHandleEventBacksUpExpense(t *testing.T) {
	store := newFakeSyncStore()
	store.add(testExpense("a1"))
	sink := memory.New()
	w := NewSyncWorker(store, sink, 10)

	msg := amqp.NewExpenseEventMessage("a1", amqp.ActionCreated)
	if err := w.HandleEvent(context.Background(), msg); err != nil {
		t.Fatalf("HandleEvent: %v", err)
	}
	if items := sink.Items(); len(items) != 1 || items[0].ID != "a1" {
		t.Fatalf("expected backed up expense, got %+v", items)
	}
	if len(store.synced) != 1 || store.synced[0] != "a1" {
		t.Fatalf("expected a1 marked synced, got %v", store.synced)
	}
}

func TestHandleEventSkipsDeletions(t *testing.T) {
	store := newFakeSyncStore()
	sink := memory.New()
	w := NewSyncWorker(store, sink, 10)

	msg := amqp.NewExpenseEventMessage("gone", amqp.ActionDeleted)
	if err := w.HandleEvent(context.Background(), msg); err != nil {
		t.Fatalf("HandleEvent: %v", err)
	}
	if len(sink.Items()) != 0 {
		t.Fatal("deletion must not touch the sheet")
	}
}

func TestHandleEventVanishedExpense(t *testing.T) {
	w := NewSyncWorker(newFakeSyncStore(), memory.New(), 10)

	msg := amqp.NewExpenseEventMessage("missing", amqp.ActionCreated)
	if err := w.HandleEvent(context.Background(), msg); err != nil {
		t.Fatalf("a vanished expense should not error: %v", err)
	}
}

func TestProcessPendingMarksErrors(t *testing.T) {
	store := newFakeSyncStore()
	store.add(testExpense("a1"))
	store.add(testExpense("a2"))
	w := NewSyncWorker(store, failingWriter{}, 10)

	if err := w.ProcessPending(context.Background()); err != nil {
		t.Fatalf("ProcessPending: %v", err)
	}
	if len(store.errored) != 2 {
		t.Fatalf("expected both expenses marked errored, got %v", store.errored)
	}
	if len(store.synced) != 0 {
		t.Fatalf("nothing should be marked synced, got %v", store.synced)
	}
}

func TestStartupSyncCheckRetriesErrored(t *testing.T) {
	store := newFakeSyncStore()
	store.add(testExpense("a1"))
	store.errored = []string{"a1"}
	sink := memory.New()
	w := NewSyncWorker(store, sink, 2)

	if err := w.StartupSyncCheck(context.Background()); err != nil {
		t.Fatalf("StartupSyncCheck: %v", err)
	}
	if len(store.errored) != 0 {
		t.Fatalf("errored backlog should be re-queued, got %v", store.errored)
	}
	if len(sink.Items()) != 1 {
		t.Fatalf("expected pending expense backed up, got %+v", sink.Items())
	}
}
