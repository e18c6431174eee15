package queries

import (
	"context"
)

type GetAwaitingAgentOrdersQueryHandler struct {
	orders AwaitingOrderReader
}

func NewGetAwaitingAgentOrdersQueryHandler(orders AwaitingOrderReader) GetAwaitingAgentOrdersQueryHandler {
	return GetAwaitingAgentOrdersQueryHandler{orders: orders}
}

func (h GetAwaitingAgentOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetAwaitingAgentOrdersQuery,
) ([]GetOrderQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	orders, err := h.orders.GetAwaitingAgent(ctx, query.Limit())
	if err != nil {
		return nil, err
	}

	responses := make([]GetOrderQueryResponse, 0, len(orders))
	for _, o := range orders {
		responses = append(responses, newOrderResponse(o))
	}
	return responses, nil
}
