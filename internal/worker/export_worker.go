// Package worker moves recorded shifts out to the ledger in the background.
package worker

import (
	"context"
	"fmt"
	"log/slog"

	"paytrack/internal/amqp"
	"paytrack/internal/core"
	"paytrack/internal/export"
	"paytrack/internal/storage"
)

// ExportWorker pushes shifts from SQLite to the spreadsheet ledger. It is
// driven by AMQP sync messages, with a periodic scan of the pending queue as
// the safety net for messages lost while the broker was down.
type ExportWorker struct {
	shifts    storage.ShiftStore
	ledger    export.ShiftWriter
	batchSize int
}

func NewExportWorker(shifts storage.ShiftStore, ledger export.ShiftWriter, batchSize int) *ExportWorker {
	if batchSize <= 0 {
		batchSize = 10
	}
	return &ExportWorker{
		shifts:    shifts,
		ledger:    ledger,
		batchSize: batchSize,
	}
}

// HandleSyncMessage exports the shift named by one AMQP message. The message
// only carries the ID; the current database row is what gets exported.
func (w *ExportWorker) HandleSyncMessage(ctx context.Context, msg *amqp.ShiftSyncMessage) error {
	shift, err := w.shifts.GetShift(ctx, msg.ID)
	if core.IsNotFound(err) {
		// Deleted before the message was consumed. Nothing to export.
		slog.WarnContext(ctx, "Shift gone before export, skipping",
			"id", msg.ID, "version", msg.Version)
		return nil
	}
	if err != nil {
		return fmt.Errorf("get shift %d: %w", msg.ID, err)
	}

	return w.export(ctx, shift)
}

// ProcessPending scans the pending queue and exports up to one batch.
// Returns the number of shifts exported.
func (w *ExportWorker) ProcessPending(ctx context.Context) (int, error) {
	pending, err := w.shifts.ListPendingShifts(ctx, w.batchSize)
	if err != nil {
		return 0, fmt.Errorf("list pending shifts: %w", err)
	}

	exported := 0
	for _, shift := range pending {
		if err := ctx.Err(); err != nil {
			return exported, err
		}
		if err := w.export(ctx, shift); err != nil {
			slog.ErrorContext(ctx, "Failed to export pending shift",
				"id", shift.ID, "error", err)
			continue
		}
		exported++
	}
	return exported, nil
}

func (w *ExportWorker) export(ctx context.Context, shift core.Shift) error {
	ref, err := w.ledger.Append(ctx, shift)
	if err != nil {
		if markErr := w.shifts.MarkShiftSyncError(ctx, shift.ID); markErr != nil {
			slog.ErrorContext(ctx, "Failed to mark shift sync error",
				"id", shift.ID, "error", markErr)
		}
		return fmt.Errorf("append shift %d to ledger: %w", shift.ID, err)
	}

	if err := w.shifts.MarkShiftSynced(ctx, shift.ID); err != nil {
		// The export itself succeeded; the pending scan will retry the flag.
		slog.WarnContext(ctx, "Failed to mark shift synced",
			"id", shift.ID, "error", err)
	}

	slog.InfoContext(ctx, "Exported shift to ledger",
		"id", shift.ID, "ref", ref)
	return nil
}
