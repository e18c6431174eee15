package storerepo

import (
	"context"
	"errors"

	"fulfillment/internal/adapters/out/postgres/pgerr"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/store"
	"fulfillment/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormStoreRepository implements ports.StoreRepository using GORM.
type GormStoreRepository struct {
	db *gorm.DB
}

func NewGormStoreRepository(db *gorm.DB) *GormStoreRepository {
	return &GormStoreRepository{db: db}
}

// Add saves a new store to the database.
func (r *GormStoreRepository) Add(ctx context.Context, aggregate *store.Store) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return pgerr.Translate(err, "storeId")
	}
	return nil
}

// Get retrieves a store by ID.
func (r *GormStoreRepository) Get(ctx context.Context, id kernel.UUID) (*store.Store, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto StoreDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Google()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("store", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetEligible retrieves active stores with coordinates ordered by name, then id.
func (r *GormStoreRepository) GetEligible(ctx context.Context) ([]*store.Store, error) {
	var dtos []StoreDTO
	if err := r.db.WithContext(ctx).
		Where("active = ? AND latitude IS NOT NULL AND longitude IS NOT NULL", true).
		Order("name ASC, id ASC").
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	stores := make([]*store.Store, 0, len(dtos))
	for _, dto := range dtos {
		s, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		stores = append(stores, s)
	}

	return stores, nil
}
