package trackingrepo

import (
	"context"
	"iter"

	"fulfillment/internal/adapters/out/postgres/pgerr"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/tracking"

	"gorm.io/gorm"
)

// GormTrackingRepository implements ports.TrackingRepository and ports.TrackingReader.
// Entries are never updated or deleted.
type GormTrackingRepository struct {
	db *gorm.DB
}

func NewGormTrackingRepository(db *gorm.DB) *GormTrackingRepository {
	return &GormTrackingRepository{db: db}
}

// Append inserts one entry. Re-appending an existing (order, sequence) pair fails with
// errs.ValueIsInvalidError.
func (r *GormTrackingRepository) Append(ctx context.Context, entry *tracking.Entry) error {
	if err := entry.Validate(); err != nil {
		return err
	}

	dto := fromDomain(entry)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return pgerr.Translate(err, "sequence")
	}
	return nil
}

// History streams the entries of orderID. Each range opens a fresh cursor, so the
// sequence can be replayed; rows are decoded one at a time while the caller iterates.
func (r *GormTrackingRepository) History(
	ctx context.Context,
	orderID kernel.UUID,
	direction tracking.Direction,
) iter.Seq2[*tracking.Entry, error] {
	orderBy := "recorded_at ASC, sequence ASC"
	if direction == tracking.Descending {
		orderBy = "recorded_at DESC, sequence DESC"
	}

	return func(yield func(*tracking.Entry, error) bool) {
		if err := orderID.Validate(); err != nil {
			yield(nil, err)
			return
		}

		rows, err := r.db.WithContext(ctx).
			Model(&EntryDTO{}).
			Where("order_id = ?", orderID.Google()).
			Order(orderBy).
			Rows()
		if err != nil {
			yield(nil, err)
			return
		}
		defer rows.Close()

		for rows.Next() {
			var dto EntryDTO
			if err := r.db.ScanRows(rows, &dto); err != nil {
				yield(nil, err)
				return
			}

			entry, err := toDomain(dto)
			if !yield(entry, err) || err != nil {
				return
			}
		}

		if err := rows.Err(); err != nil {
			yield(nil, err)
		}
	}
}
