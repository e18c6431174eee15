package ports

import (
	"context"
	"iter"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/tracking"
)

// TrackingRepository appends lifecycle audit records.
type TrackingRepository interface {
	// Append inserts one entry. (order id, sequence) is unique; appending an existing
	// pair fails with errs.ErrValueIsInvalid and never overwrites.
	Append(ctx context.Context, entry *tracking.Entry) error
}

// TrackingReader replays the audit log of an order.
type TrackingReader interface {
	// History yields the entries of orderID ordered by (recorded at, sequence) in the given
	// direction. The sequence is lazy (rows are fetched while ranging), finite, and
	// restartable: every range re-reads the committed log, so replaying twice yields the same
	// entries. An unknown order yields an empty sequence.
	History(ctx context.Context, orderID kernel.UUID, direction tracking.Direction) iter.Seq2[*tracking.Entry, error]
}
