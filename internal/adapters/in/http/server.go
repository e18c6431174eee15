package http

import (
	"net/http"
	"time"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/agent"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/store"
	"fulfillment/internal/core/domain/model/tracking"
	"fulfillment/internal/generated/servers"

	"github.com/labstack/echo/v4"
)

const operatorActor = "operator"

// Server implements servers.ServerInterface on top of the application use cases.
type Server struct {
	// Command handlers
	placeOrderHandler          commands.PlaceOrderCommandHandler
	processFulfillmentHandler  commands.ProcessFulfillmentCommandHandler
	assignAgentHandler         commands.AssignAgentCommandHandler
	changeOrderStatusHandler   commands.ChangeOrderStatusCommandHandler
	registerStoreHandler       commands.RegisterStoreCommandHandler
	registerAgentHandler       commands.RegisterAgentCommandHandler
	changeAgentShiftHandler    commands.ChangeAgentShiftCommandHandler
	reportAgentLocationHandler commands.ReportAgentLocationCommandHandler

	// Query handlers
	getOrderHandler          queries.GetOrderQueryHandler
	getAwaitingOrdersHandler queries.GetAwaitingAgentOrdersQueryHandler
	getOrderTrackingHandler  queries.GetOrderTrackingQueryHandler
	getEstimateHandler       queries.GetDeliveryEstimateQueryHandler
	getAgentsHandler         queries.GetAgentsQueryHandler
}

// Handlers groups the use cases the server exposes.
type Handlers struct {
	PlaceOrder          commands.PlaceOrderCommandHandler
	ProcessFulfillment  commands.ProcessFulfillmentCommandHandler
	AssignAgent         commands.AssignAgentCommandHandler
	ChangeOrderStatus   commands.ChangeOrderStatusCommandHandler
	RegisterStore       commands.RegisterStoreCommandHandler
	RegisterAgent       commands.RegisterAgentCommandHandler
	ChangeAgentShift    commands.ChangeAgentShiftCommandHandler
	ReportAgentLocation commands.ReportAgentLocationCommandHandler

	GetOrder          queries.GetOrderQueryHandler
	GetAwaitingOrders queries.GetAwaitingAgentOrdersQueryHandler
	GetOrderTracking  queries.GetOrderTrackingQueryHandler
	GetEstimate       queries.GetDeliveryEstimateQueryHandler
	GetAgents         queries.GetAgentsQueryHandler
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(h Handlers) *Server {
	return &Server{
		placeOrderHandler:          h.PlaceOrder,
		processFulfillmentHandler:  h.ProcessFulfillment,
		assignAgentHandler:         h.AssignAgent,
		changeOrderStatusHandler:   h.ChangeOrderStatus,
		registerStoreHandler:       h.RegisterStore,
		registerAgentHandler:       h.RegisterAgent,
		changeAgentShiftHandler:    h.ChangeAgentShift,
		reportAgentLocationHandler: h.ReportAgentLocation,
		getOrderHandler:            h.GetOrder,
		getAwaitingOrdersHandler:   h.GetAwaitingOrders,
		getOrderTrackingHandler:    h.GetOrderTracking,
		getEstimateHandler:         h.GetEstimate,
		getAgentsHandler:           h.GetAgents,
	}
}

// PlaceOrder handles POST /api/v1/orders - accepts an order from checkout.
func (s *Server) PlaceOrder(ctx echo.Context) error {
	var body servers.PlaceOrderJSONRequestBody
	if err := bindAndValidate(ctx, &body); err != nil {
		return err
	}

	items := make([]order.Item, 0, len(body.Items))
	for _, it := range body.Items {
		item, err := order.NewItem(it.ProductId, it.Quantity)
		if err != nil {
			return errorResponse(ctx, err)
		}
		items = append(items, item)
	}

	destination, err := optionalLocation(body.Destination)
	if err != nil {
		return errorResponse(ctx, err)
	}

	orderID := kernel.NewUUID()
	if body.Id != nil {
		orderID = kernel.UUIDFromGoogle(*body.Id)
	}

	cmd, err := commands.NewPlaceOrderCommand(
		orderID,
		kernel.UUIDFromGoogle(body.CustomerId),
		items,
		body.Address,
		destination,
		deref(body.ContactEmail),
	)
	if err != nil {
		return errorResponse(ctx, err)
	}

	if err = s.placeOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, servers.Created{Id: orderID.Google()})
}

// GetOrder handles GET /api/v1/orders/{orderId}.
func (s *Server) GetOrder(ctx echo.Context, orderID servers.OrderId) error {
	query, err := queries.NewGetOrderQuery(kernel.UUIDFromGoogle(orderID))
	if err != nil {
		return errorResponse(ctx, err)
	}

	o, err := s.getOrderHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toOrder(o))
}

// ListAwaitingOrders handles GET /api/v1/orders/awaiting-agent.
func (s *Server) ListAwaitingOrders(ctx echo.Context, params servers.ListAwaitingOrdersParams) error {
	query, err := queries.NewGetAwaitingAgentOrdersQuery(deref(params.Limit))
	if err != nil {
		return errorResponse(ctx, err)
	}

	orders, err := s.getAwaitingOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return errorResponse(ctx, err)
	}

	response := make([]servers.Order, 0, len(orders))
	for _, o := range orders {
		response = append(response, toOrder(o))
	}
	return ctx.JSON(http.StatusOK, response)
}

// ProcessFulfillment handles POST /api/v1/orders/{orderId}/fulfillment - the dispatch coordinator.
// 200 when an agent was assigned, 202 when the order waits for one.
func (s *Server) ProcessFulfillment(ctx echo.Context, orderID servers.OrderId) error {
	cmd, err := commands.NewProcessFulfillmentCommand(kernel.UUIDFromGoogle(orderID))
	if err != nil {
		return errorResponse(ctx, err)
	}

	result, err := s.processFulfillmentHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return errorResponse(ctx, err)
	}

	response := servers.FulfillmentResult{
		OrderId:           result.OrderID.Google(),
		StoreId:           result.StoreID.Google(),
		StoreDistanceKm:   result.StoreDistanceKm,
		EstimatedDelivery: result.EstimatedDelivery,
		Outcome:           servers.FulfillmentResultOutcomeDEFERRED,
	}
	if result.Outcome != commands.OutcomeAssigned || result.Assignment == nil {
		return ctx.JSON(http.StatusAccepted, response)
	}

	assignment := toAssignment(*result.Assignment)
	response.Outcome = servers.FulfillmentResultOutcomeASSIGNED
	response.Assignment = &assignment
	return ctx.JSON(http.StatusOK, response)
}

// AssignAgent handles POST /api/v1/orders/{orderId}/agent. With an agentId the named agent is
// reserved; without one the nearest available agent is searched.
func (s *Server) AssignAgent(ctx echo.Context, orderID servers.OrderId) error {
	var body servers.AssignAgentJSONRequestBody
	if ctx.Request().ContentLength != 0 {
		if err := bindAndValidate(ctx, &body); err != nil {
			return err
		}
	}

	actor := deref(body.Actor)
	if actor == "" {
		actor = operatorActor
	}

	var (
		cmd commands.AssignAgentCommand
		err error
	)
	if body.AgentId != nil {
		cmd, err = commands.NewAssignAgentCommand(kernel.UUIDFromGoogle(orderID), kernel.UUIDFromGoogle(*body.AgentId), actor)
	} else {
		cmd, err = commands.NewAutoAssignAgentCommand(kernel.UUIDFromGoogle(orderID), actor)
	}
	if err != nil {
		return errorResponse(ctx, err)
	}

	assignment, err := s.assignAgentHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toAssignment(assignment))
}

// ChangeOrderStatus handles PUT /api/v1/orders/{orderId}/status.
func (s *Server) ChangeOrderStatus(ctx echo.Context, orderID servers.OrderId) error {
	var body servers.ChangeOrderStatusJSONRequestBody
	if err := bindAndValidate(ctx, &body); err != nil {
		return err
	}

	status, err := order.ParseStatus(string(body.Status))
	if err != nil {
		return errorResponse(ctx, err)
	}

	actor := deref(body.Actor)
	if actor == "" {
		actor = operatorActor
	}

	cmd, err := commands.NewChangeOrderStatusCommand(kernel.UUIDFromGoogle(orderID), status, actor)
	if err != nil {
		return errorResponse(ctx, err)
	}

	if err = s.changeOrderStatusHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// GetOrderTracking handles GET /api/v1/orders/{orderId}/tracking.
func (s *Server) GetOrderTracking(ctx echo.Context, orderID servers.OrderId, params servers.GetOrderTrackingParams) error {
	direction, err := tracking.ParseDirection(string(deref(params.Direction)))
	if err != nil {
		return errorResponse(ctx, err)
	}

	query, err := queries.NewGetOrderTrackingQuery(kernel.UUIDFromGoogle(orderID), direction)
	if err != nil {
		return errorResponse(ctx, err)
	}

	history, err := s.getOrderTrackingHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return errorResponse(ctx, err)
	}

	response := make([]servers.TrackingEntry, 0)
	for entry, iterErr := range history {
		if iterErr != nil {
			return errorResponse(ctx, iterErr)
		}
		response = append(response, toTrackingEntry(entry))
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetEstimate handles GET /api/v1/estimates.
func (s *Server) GetEstimate(ctx echo.Context, params servers.GetEstimateParams) error {
	destination, err := kernel.NewLocation(params.Latitude, params.Longitude)
	if err != nil {
		return errorResponse(ctx, err)
	}

	var storeID *kernel.UUID
	if params.StoreId != nil {
		id := kernel.UUIDFromGoogle(*params.StoreId)
		storeID = &id
	}

	query, err := queries.NewGetDeliveryEstimateQuery(destination, storeID)
	if err != nil {
		return errorResponse(ctx, err)
	}

	estimate, err := s.getEstimateHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.JSON(http.StatusOK, servers.Estimate{
		StoreId:    estimate.StoreID.Google(),
		StoreName:  estimate.StoreName,
		DistanceKm: estimate.DistanceKm,
		EtaMinutes: estimate.ETAMinutes,
		Fee:        estimate.Fee,
	})
}

// RegisterStore handles POST /api/v1/stores.
func (s *Server) RegisterStore(ctx echo.Context) error {
	var body servers.RegisterStoreJSONRequestBody
	if err := bindAndValidate(ctx, &body); err != nil {
		return err
	}

	storeType, err := store.ParseType(string(body.Type))
	if err != nil {
		return errorResponse(ctx, err)
	}

	location, err := kernel.NewLocation(body.Location.Latitude, body.Location.Longitude)
	if err != nil {
		return errorResponse(ctx, err)
	}

	storeID := kernel.NewUUID()
	if body.Id != nil {
		storeID = kernel.UUIDFromGoogle(*body.Id)
	}

	cmd, err := commands.NewRegisterStoreCommand(storeID, body.Name, &location, storeType)
	if err != nil {
		return errorResponse(ctx, err)
	}

	if err = s.registerStoreHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, servers.Created{Id: storeID.Google()})
}

// RegisterAgent handles POST /api/v1/agents.
func (s *Server) RegisterAgent(ctx echo.Context) error {
	var body servers.RegisterAgentJSONRequestBody
	if err := bindAndValidate(ctx, &body); err != nil {
		return err
	}

	location, err := optionalLocation(body.Location)
	if err != nil {
		return errorResponse(ctx, err)
	}

	agentID := kernel.NewUUID()
	if body.Id != nil {
		agentID = kernel.UUIDFromGoogle(*body.Id)
	}

	cmd, err := commands.NewRegisterAgentCommand(agentID, body.Name, deref(body.OnShift), location)
	if err != nil {
		return errorResponse(ctx, err)
	}

	if err = s.registerAgentHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, servers.Created{Id: agentID.Google()})
}

// ListAgents handles GET /api/v1/agents.
func (s *Server) ListAgents(ctx echo.Context, params servers.ListAgentsParams) error {
	var status *agent.Status
	if params.Status != nil {
		parsed, err := agent.ParseStatus(string(*params.Status))
		if err != nil {
			return errorResponse(ctx, err)
		}
		status = &parsed
	}

	query, err := queries.NewGetAgentsQuery(status)
	if err != nil {
		return errorResponse(ctx, err)
	}

	agents, err := s.getAgentsHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return errorResponse(ctx, err)
	}

	response := make([]servers.Agent, 0, len(agents))
	for _, a := range agents {
		response = append(response, servers.Agent{
			Id:                 a.ID.Google(),
			Name:               a.Name,
			Status:             a.Status.String(),
			Active:             a.Active,
			Location:           toLocation(a.Location),
			LocationRecordedAt: a.LocationRecordedAt,
		})
	}
	return ctx.JSON(http.StatusOK, response)
}

// ChangeAgentShift handles PUT /api/v1/agents/{agentId}/shift.
func (s *Server) ChangeAgentShift(ctx echo.Context, agentID servers.AgentId) error {
	var body servers.ChangeAgentShiftJSONRequestBody
	if err := bindAndValidate(ctx, &body); err != nil {
		return err
	}

	cmd, err := commands.NewChangeAgentShiftCommand(kernel.UUIDFromGoogle(agentID), body.OnShift)
	if err != nil {
		return errorResponse(ctx, err)
	}

	if err = s.changeAgentShiftHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// ReportAgentLocation handles POST /api/v1/agents/{agentId}/locations.
func (s *Server) ReportAgentLocation(ctx echo.Context, agentID servers.AgentId) error {
	var body servers.ReportAgentLocationJSONRequestBody
	if err := bindAndValidate(ctx, &body); err != nil {
		return err
	}

	location, err := kernel.NewLocation(body.Latitude, body.Longitude)
	if err != nil {
		return errorResponse(ctx, err)
	}

	var recordedAt time.Time
	if body.RecordedAt != nil {
		recordedAt = *body.RecordedAt
	}

	cmd, err := commands.NewReportAgentLocationCommand(kernel.UUIDFromGoogle(agentID), location, recordedAt)
	if err != nil {
		return errorResponse(ctx, err)
	}

	if err = s.reportAgentLocationHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

func optionalLocation(l *servers.Location) (*kernel.Location, error) {
	if l == nil {
		return nil, nil
	}
	loc, err := kernel.NewLocation(l.Latitude, l.Longitude)
	if err != nil {
		return nil, err
	}
	return &loc, nil
}

func deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}

var _ servers.ServerInterface = (*Server)(nil)
