package sheets

import (
	"context"

	"spendlens/internal/core"
)

// Ports for outbound backup adapters.
type (
	// BackupWriter appends expense rows to the remote backup sheet.
	BackupWriter interface {
		AppendExpense(ctx context.Context, e core.Expense) (rowRef string, err error)
	}
)
