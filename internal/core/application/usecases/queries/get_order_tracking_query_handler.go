package queries

import (
	"context"
	"iter"

	"fulfillment/internal/core/domain/model/tracking"
)

// GetOrderTrackingQueryHandler checks that the order exists and hands back its lazy history.
// Rows are read while the caller ranges over the sequence; ranging again re-reads the log.
type GetOrderTrackingQueryHandler struct {
	orders  OrderReader
	entries TrackingReader
}

func NewGetOrderTrackingQueryHandler(orders OrderReader, entries TrackingReader) GetOrderTrackingQueryHandler {
	return GetOrderTrackingQueryHandler{orders: orders, entries: entries}
}

// Handle returns errs.ErrObjectNotFound for an unknown order; the sequence itself is never empty
// for an existing order because placement writes the first entry.
func (h GetOrderTrackingQueryHandler) Handle(
	ctx context.Context,
	query GetOrderTrackingQuery,
) (iter.Seq2[*tracking.Entry, error], error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	if _, err := h.orders.Get(ctx, query.OrderID()); err != nil {
		return nil, err
	}

	return h.entries.History(ctx, query.OrderID(), query.Direction()), nil
}
