// Package worker backs locally stored expenses up to the remote sheet. It
// reacts to bus events and periodically sweeps for records the events missed.
package worker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"spendlens/internal/amqp"
	"spendlens/internal/core"
	"spendlens/internal/sheets"
	"spendlens/internal/storage"
)

// SyncStore is the storage surface the worker needs.
type SyncStore interface {
	Get(ctx context.Context, id string) (core.Expense, error)
	GetPendingSync(ctx context.Context, limit int) ([]core.Expense, error)
	MarkSynced(ctx context.Context, id string) error
	MarkSyncError(ctx context.Context, id string) error
	RetryErrored(ctx context.Context) (int64, error)
}

// SyncWorker copies expenses from local storage to the backup sheet.
type SyncWorker struct {
	store     SyncStore
	sheets    sheets.BackupWriter
	batchSize int
}

func NewSyncWorker(store SyncStore, writer sheets.BackupWriter, batchSize int) *SyncWorker {
	return &SyncWorker{
		store:     store,
		sheets:    writer,
		batchSize: batchSize,
	}
}

// HandleEvent processes a single expense event from the bus. Deletions are
// acknowledged without touching the sheet; the backup is append-only.
func (w *SyncWorker) HandleEvent(ctx context.Context, msg *amqp.ExpenseEventMessage) error {
	slog.InfoContext(ctx, "Processing expense event",
		"id", msg.ID,
		"action", msg.Action)

	if msg.Action == amqp.ActionDeleted {
		slog.InfoContext(ctx, "Backup is append-only, skipping deletion", "id", msg.ID)
		return nil
	}

	expense, err := w.store.Get(ctx, msg.ID)
	if errors.Is(err, storage.ErrNotFound) {
		// Deleted between the event and now; nothing left to back up.
		slog.WarnContext(ctx, "Expense vanished before backup", "id", msg.ID)
		return nil
	}
	if err != nil {
		return fmt.Errorf("get expense from storage: %w", err)
	}

	if err := w.backupExpense(ctx, expense); err != nil {
		return fmt.Errorf("backup expense: %w", err)
	}
	return nil
}

// ProcessPending backs up expenses the bus events missed. This is the safety
// net for lost messages and worker downtime.
func (w *SyncWorker) ProcessPending(ctx context.Context) error {
	pending, err := w.store.GetPendingSync(ctx, w.batchSize)
	if err != nil {
		return fmt.Errorf("get pending expenses: %w", err)
	}

	if len(pending) == 0 {
		return nil
	}

	slog.InfoContext(ctx, "Processing pending expenses", "count", len(pending))

	for _, expense := range pending {
		if err := w.backupExpense(ctx, expense); err != nil {
			slog.ErrorContext(ctx, "Failed to back up expense", "id", expense.ID, "error", err)
			continue
		}
	}

	return nil
}

// StartupSyncCheck drains the pending backlog once at worker startup, using a
// larger batch, and re-queues previously errored records.
func (w *SyncWorker) StartupSyncCheck(ctx context.Context) error {
	retried, err := w.store.RetryErrored(ctx)
	if err != nil {
		return fmt.Errorf("retry errored expenses: %w", err)
	}
	if retried > 0 {
		slog.InfoContext(ctx, "Re-queued errored expenses for backup", "count", retried)
	}

	pending, err := w.store.GetPendingSync(ctx, w.batchSize*5)
	if err != nil {
		return fmt.Errorf("get pending expenses for startup check: %w", err)
	}

	if len(pending) == 0 {
		slog.InfoContext(ctx, "No pending expenses found on startup")
		return nil
	}

	slog.InfoContext(ctx, "Found pending expenses on startup, processing...",
		"count", len(pending))

	successCount := 0
	errorCount := 0
	for _, expense := range pending {
		if err := w.backupExpense(ctx, expense); err != nil {
			slog.ErrorContext(ctx, "Failed to back up expense during startup",
				"id", expense.ID, "error", err)
			errorCount++
			continue
		}
		successCount++
	}

	slog.InfoContext(ctx, "Startup sync completed",
		"total", len(pending),
		"synced", successCount,
		"errors", errorCount)

	return nil
}

func (w *SyncWorker) backupExpense(ctx context.Context, expense core.Expense) error {
	ref, err := w.sheets.AppendExpense(ctx, expense)
	if err != nil {
		if markErr := w.store.MarkSyncError(ctx, expense.ID); markErr != nil {
			slog.ErrorContext(ctx, "Failed to mark sync error", "id", expense.ID, "error", markErr)
		}
		return fmt.Errorf("append to sheets: %w", err)
	}

	if err := w.store.MarkSynced(ctx, expense.ID); err != nil {
		// The row is already on the sheet; the sweep may duplicate it, which
		// the append-only backup tolerates.
		slog.ErrorContext(ctx, "Failed to mark as synced", "id", expense.ID, "error", err)
	}

	slog.InfoContext(ctx, "Expense backed up",
		"id", expense.ID,
		"sheets_ref", ref,
		"amount", expense.Amount)

	return nil
}
