package http

import (
	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/tracking"
	"fulfillment/internal/generated/servers"

	openapi_types "github.com/oapi-codegen/runtime/types"
)

func toLocation(l *kernel.Location) *servers.Location {
	if l == nil {
		return nil
	}
	return &servers.Location{Latitude: l.Latitude(), Longitude: l.Longitude()}
}

func toOptionalID(id *kernel.UUID) *openapi_types.UUID {
	if id == nil {
		return nil
	}
	g := id.Google()
	return &g
}

func toOrder(o queries.GetOrderQueryResponse) servers.Order {
	items := make([]servers.OrderItem, 0, len(o.Items))
	for _, item := range o.Items {
		items = append(items, servers.OrderItem{ProductId: item.ProductID, Quantity: item.Quantity})
	}

	response := servers.Order{
		Id:                o.ID.Google(),
		CustomerId:        o.CustomerID.Google(),
		Status:            o.Status.String(),
		Items:             items,
		Address:           o.Address,
		Destination:       toLocation(o.Destination),
		StoreId:           toOptionalID(o.StoreID),
		AgentId:           toOptionalID(o.AgentID),
		EstimatedDelivery: o.EstimatedDelivery,
		OrderDate:         o.OrderDate,
		Version:           o.Version,
	}
	if o.AgentName != "" {
		name := o.AgentName
		response.AgentName = &name
	}
	return response
}

func toAssignment(a commands.Assignment) servers.Assignment {
	return servers.Assignment{
		OrderId:    a.OrderID.Google(),
		AgentId:    a.AgentID.Google(),
		AgentName:  a.AgentName,
		DistanceKm: a.DistanceKm,
	}
}

func toTrackingEntry(e *tracking.Entry) servers.TrackingEntry {
	entry := servers.TrackingEntry{
		Id:         e.ID().Google(),
		Sequence:   e.Sequence(),
		Status:     e.Status().String(),
		Message:    e.Message(),
		RecordedAt: e.RecordedAt(),
	}
	if actor := e.Actor(); actor != "" {
		entry.Actor = &actor
	}
	if snapshot := e.Agent(); snapshot != nil {
		entry.Agent = &servers.TrackingAgent{
			AgentId:   snapshot.AgentID.Google(),
			AgentName: snapshot.AgentName,
			Location:  toLocation(snapshot.Location),
		}
	}
	return entry
}
