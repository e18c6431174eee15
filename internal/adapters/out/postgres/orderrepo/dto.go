// Package orderrepo persists the order aggregate.
package orderrepo

import (
	"fmt"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// OrderDTO is the row of the orders table. Items are stored column-wise as two parallel
// arrays so an order stays a single row.
type OrderDTO struct {
	ID                   uuid.UUID      `gorm:"type:uuid;primaryKey"`
	CustomerID           uuid.UUID      `gorm:"type:uuid;not null;index"`
	ItemProductIDs       pq.StringArray `gorm:"type:text[];not null"`
	ItemQuantities       pq.Int64Array  `gorm:"type:bigint[];not null"`
	Address              string         `gorm:"not null"`
	DestinationLatitude  *float64
	DestinationLongitude *float64
	ContactEmail         string
	Status               int        `gorm:"not null;index:idx_orders_status_agent,priority:1"`
	StoreID              *uuid.UUID `gorm:"type:uuid;index"`
	AgentID              *uuid.UUID `gorm:"type:uuid;index:idx_orders_status_agent,priority:2"`
	AgentName            string
	EstimatedDelivery    *time.Time
	OrderDate            time.Time `gorm:"not null;index"`
	Version              int64     `gorm:"not null"`
}

func (OrderDTO) TableName() string {
	return "orders"
}

func fromDomain(o *order.Order) OrderDTO {
	items := o.Items()
	productIDs := make(pq.StringArray, 0, len(items))
	quantities := make(pq.Int64Array, 0, len(items))
	for _, item := range items {
		productIDs = append(productIDs, item.ProductID())
		quantities = append(quantities, int64(item.Quantity()))
	}

	dto := OrderDTO{
		ID:                o.ID().Google(),
		CustomerID:        o.CustomerID().Google(),
		ItemProductIDs:    productIDs,
		ItemQuantities:    quantities,
		Address:           o.Address(),
		ContactEmail:      o.ContactEmail(),
		Status:            int(o.Status()),
		StoreID:           googleID(o.StoreID()),
		AgentID:           googleID(o.AgentID()),
		AgentName:         o.AgentName(),
		EstimatedDelivery: o.EstimatedDelivery(),
		OrderDate:         o.OrderDate(),
		Version:           o.Version(),
	}
	if dest := o.Destination(); dest != nil {
		lat, lon := dest.Latitude(), dest.Longitude()
		dto.DestinationLatitude = &lat
		dto.DestinationLongitude = &lon
	}
	return dto
}

func toDomain(dto OrderDTO) (*order.Order, error) {
	if len(dto.ItemProductIDs) != len(dto.ItemQuantities) {
		return nil, fmt.Errorf("order %s: %d product ids for %d quantities",
			dto.ID, len(dto.ItemProductIDs), len(dto.ItemQuantities))
	}

	items := make([]order.Item, 0, len(dto.ItemProductIDs))
	for i, productID := range dto.ItemProductIDs {
		item, err := order.NewItem(productID, int(dto.ItemQuantities[i]))
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	var destination *kernel.Location
	if dto.DestinationLatitude != nil && dto.DestinationLongitude != nil {
		loc, err := kernel.NewLocation(*dto.DestinationLatitude, *dto.DestinationLongitude)
		if err != nil {
			return nil, err
		}
		destination = &loc
	}

	return order.RestoreOrder(order.Snapshot{
		ID:                kernel.UUIDFromGoogle(dto.ID),
		CustomerID:        kernel.UUIDFromGoogle(dto.CustomerID),
		Items:             items,
		Address:           dto.Address,
		Destination:       destination,
		ContactEmail:      dto.ContactEmail,
		Status:            order.Status(dto.Status),
		StoreID:           kernelID(dto.StoreID),
		AgentID:           kernelID(dto.AgentID),
		AgentName:         dto.AgentName,
		EstimatedDelivery: dto.EstimatedDelivery,
		OrderDate:         dto.OrderDate,
		Version:           dto.Version,
	})
}

func googleID(id *kernel.UUID) *uuid.UUID {
	if id == nil {
		return nil
	}
	raw := id.Google()
	return &raw
}

func kernelID(id *uuid.UUID) *kernel.UUID {
	if id == nil {
		return nil
	}
	k := kernel.UUIDFromGoogle(*id)
	return &k
}
