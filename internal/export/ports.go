// Package export writes shift records to external ledgers.
package export

import (
	"context"

	"paytrack/internal/core"
)

// ShiftWriter is the outbound port for ledger adapters.
type ShiftWriter interface {
	Append(ctx context.Context, s core.Shift) (rowRef string, err error)
}
