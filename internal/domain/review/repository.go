package review

import "context"

// Repository defines the operations the bot needs from the tabular store.
// It is deliberately an eligible-row source rather than a sheet API, so a
// change feed could replace polling without touching callers.
type Repository interface {
	// ScanEligible returns the rows currently in StatusReadyToQC with a
	// non-empty solution, fully hydrated, in sheet order.
	ScanEligible(ctx context.Context) ([]*Question, error)

	// ReadField reads a single named cell of a row.
	ReadField(ctx context.Context, rowNumber int, column string) (string, error)

	// WriteField writes a single named cell of a row. Writes are immediate
	// and individually visible; there is no multi-cell transaction.
	WriteField(ctx context.Context, rowNumber int, column string, value string) error
}
