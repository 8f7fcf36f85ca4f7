package repository

import "context"

// BillSequenceRepository issues bill numbers from a durable counter.
type BillSequenceRepository interface {
	// Next returns a value strictly greater than every previously issued one,
	// atomically with respect to concurrent callers
	Next(ctx context.Context, name string) (int64, error)
}
