package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	httpadapter "fulfillment/internal/adapters/in/http"
	"fulfillment/internal/adapters/out/inmemory"
	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/generated/servers"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"
)

type (
	uowFactory      struct{ storage *inmemory.Storage }
	orderUoWFactory struct{ storage *inmemory.Storage }
	storeUoWFactory struct{ storage *inmemory.Storage }
	agentUoWFactory struct{ storage *inmemory.Storage }
)

func (f uowFactory) Create() commands.UoW           { return f.storage.Create() }
func (f orderUoWFactory) Create() commands.OrderUoW { return f.storage.Create() }
func (f storeUoWFactory) Create() commands.StoreUoW { return f.storage.Create() }
func (f agentUoWFactory) Create() commands.AgentUoW { return f.storage.Create() }

type discardPublisher struct{}

func (discardPublisher) Publish(context.Context, ...order.Event) {}

type failingGeocoder struct{}

func (failingGeocoder) Resolve(context.Context, string) (kernel.Location, error) {
	return kernel.Location{}, errors.New("geocoder is not configured")
}

type ServerSuite struct {
	suite.Suite
	e *echo.Echo
}

func TestServerSuite(t *testing.T) {
	suite.Run(t, new(ServerSuite))
}

func (s *ServerSuite) SetupTest() {
	storage := inmemory.NewStorage()
	logger := zap.NewNop()
	distance := services.NewHaversineCalculator()
	storeLocator := services.NewStoreLocator(distance)
	estimator := services.NewDeliveryEstimator(distance, services.DefaultEstimatorConfig())
	agentLocator := services.NewAgentLocator(distance, services.AgentLocatorConfig{})
	publisher := discardPublisher{}
	reads := storage.Create()

	assign := commands.NewAssignAgentCommandHandler(uowFactory{storage}, agentLocator, publisher, logger, 0)
	server := httpadapter.NewServer(httpadapter.Handlers{
		PlaceOrder: commands.NewPlaceOrderCommandHandler(orderUoWFactory{storage}, publisher),
		ProcessFulfillment: commands.NewProcessFulfillmentCommandHandler(
			uowFactory{storage}, failingGeocoder{}, storeLocator, estimator, assign, publisher, logger, true,
		),
		AssignAgent:         assign,
		ChangeOrderStatus:   commands.NewChangeOrderStatusCommandHandler(uowFactory{storage}, publisher),
		RegisterStore:       commands.NewRegisterStoreCommandHandler(storeUoWFactory{storage}),
		RegisterAgent:       commands.NewRegisterAgentCommandHandler(agentUoWFactory{storage}),
		ChangeAgentShift:    commands.NewChangeAgentShiftCommandHandler(agentUoWFactory{storage}),
		ReportAgentLocation: commands.NewReportAgentLocationCommandHandler(agentUoWFactory{storage}),
		GetOrder:            queries.NewGetOrderQueryHandler(reads.OrderRepository()),
		GetAwaitingOrders:   queries.NewGetAwaitingAgentOrdersQueryHandler(reads.OrderRepository()),
		GetOrderTracking:    queries.NewGetOrderTrackingQueryHandler(reads.OrderRepository(), storage.TrackingReader()),
		GetEstimate:         queries.NewGetDeliveryEstimateQueryHandler(reads.StoreRepository(), storeLocator, estimator),
		GetAgents:           queries.NewGetAgentsQueryHandler(storage),
	})

	e, err := httpadapter.NewRouter(server, logger)
	s.Require().NoError(err)
	s.e = e
}

func (s *ServerSuite) do(method, path string, body any) *httptest.ResponseRecorder {
	var payload bytes.Buffer
	if body != nil {
		s.Require().NoError(json.NewEncoder(&payload).Encode(body))
	}
	req := httptest.NewRequest(method, path, &payload)
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)
	return rec
}

func decode[T any](s *ServerSuite, rec *httptest.ResponseRecorder) T {
	var v T
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func (s *ServerSuite) registerStore(lat, lon float64) servers.Created {
	rec := s.do(http.MethodPost, "/api/v1/stores", servers.NewStore{
		Name:     "Ikeja Mall",
		Location: servers.Location{Latitude: lat, Longitude: lon},
		Type:     servers.NewStoreTypeOWN,
	})
	s.Require().Equal(http.StatusCreated, rec.Code, rec.Body.String())
	return decode[servers.Created](s, rec)
}

func (s *ServerSuite) registerAgent(name string, lat, lon float64) servers.Created {
	onShift := true
	rec := s.do(http.MethodPost, "/api/v1/agents", servers.NewAgent{
		Name:     name,
		OnShift:  &onShift,
		Location: &servers.Location{Latitude: lat, Longitude: lon},
	})
	s.Require().Equal(http.StatusCreated, rec.Code, rec.Body.String())
	return decode[servers.Created](s, rec)
}

func (s *ServerSuite) placeOrder() servers.Created {
	email := "ada@example.com"
	rec := s.do(http.MethodPost, "/api/v1/orders", servers.NewOrder{
		CustomerId:   kernel.NewUUID().Google(),
		Items:        []servers.OrderItem{{ProductId: "sku-42", Quantity: 2}},
		Address:      "12 Adeniran Ogunsanya St, Surulere",
		Destination:  &servers.Location{Latitude: 6.4969, Longitude: 3.3612},
		ContactEmail: &email,
	})
	s.Require().Equal(http.StatusCreated, rec.Code, rec.Body.String())
	return decode[servers.Created](s, rec)
}

func (s *ServerSuite) orderPath(id servers.Created, suffix string) string {
	return "/api/v1/orders/" + id.Id.String() + suffix
}

func (s *ServerSuite) changeStatus(id servers.Created, status servers.StatusChangeStatus) *httptest.ResponseRecorder {
	return s.do(http.MethodPut, s.orderPath(id, "/status"), servers.StatusChange{Status: status})
}

func (s *ServerSuite) TestHappyPathLifecycle() {
	s.registerStore(6.5964, 3.3486)
	agentID := s.registerAgent("Tunde", 6.6000, 3.3500)
	orderID := s.placeOrder()

	rec := s.do(http.MethodPost, s.orderPath(orderID, "/fulfillment"), nil)
	s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())
	result := decode[servers.FulfillmentResult](s, rec)
	s.Equal(servers.FulfillmentResultOutcomeASSIGNED, result.Outcome)
	s.Require().NotNil(result.Assignment)
	s.Equal(agentID.Id, result.Assignment.AgentId)
	s.InDelta(11.2, result.StoreDistanceKm, 0.2)

	for _, status := range []servers.StatusChangeStatus{
		servers.StatusChangeStatusPACKED,
		servers.StatusChangeStatusOUTFORDELIVERY,
		servers.StatusChangeStatusDELIVERED,
	} {
		rec = s.changeStatus(orderID, status)
		s.Require().Equal(http.StatusNoContent, rec.Code, rec.Body.String())
	}

	rec = s.do(http.MethodGet, s.orderPath(orderID, ""), nil)
	s.Require().Equal(http.StatusOK, rec.Code)
	s.Equal("DELIVERED", decode[servers.Order](s, rec).Status)

	rec = s.do(http.MethodGet, s.orderPath(orderID, "/tracking"), nil)
	s.Require().Equal(http.StatusOK, rec.Code)
	entries := decode[[]servers.TrackingEntry](s, rec)
	statuses := make([]string, 0, len(entries))
	for _, e := range entries {
		statuses = append(statuses, e.Status)
	}
	s.Equal([]string{"PENDING", "CONFIRMED", "PROCESSING", "PACKED", "OUT_FOR_DELIVERY", "DELIVERED"}, statuses)

	rec = s.do(http.MethodGet, s.orderPath(orderID, "/tracking?direction=desc"), nil)
	s.Require().Equal(http.StatusOK, rec.Code)
	s.Equal("DELIVERED", decode[[]servers.TrackingEntry](s, rec)[0].Status)

	rec = s.do(http.MethodGet, "/api/v1/agents?status=AVAILABLE", nil)
	s.Require().Equal(http.StatusOK, rec.Code)
	agents := decode[[]servers.Agent](s, rec)
	s.Require().Len(agents, 1)
	s.Equal(agentID.Id, agents[0].Id)

	rec = s.changeStatus(orderID, servers.StatusChangeStatusCANCELLED)
	s.Equal(http.StatusConflict, rec.Code)
}

func (s *ServerSuite) TestFulfillmentDeferredWithoutAgent() {
	s.registerStore(6.5964, 3.3486)
	orderID := s.placeOrder()

	rec := s.do(http.MethodPost, s.orderPath(orderID, "/fulfillment"), nil)
	s.Require().Equal(http.StatusAccepted, rec.Code, rec.Body.String())
	s.Equal(servers.FulfillmentResultOutcomeDEFERRED, decode[servers.FulfillmentResult](s, rec).Outcome)

	rec = s.do(http.MethodGet, "/api/v1/orders/awaiting-agent", nil)
	s.Require().Equal(http.StatusOK, rec.Code)
	awaiting := decode[[]servers.Order](s, rec)
	s.Require().Len(awaiting, 1)
	s.Equal("CONFIRMED", awaiting[0].Status)

	rec = s.do(http.MethodPost, s.orderPath(orderID, "/agent"), nil)
	s.Equal(http.StatusAccepted, rec.Code)

	agentID := s.registerAgent("Kemi", 6.5900, 3.3400)
	rec = s.do(http.MethodPost, s.orderPath(orderID, "/agent"), servers.AgentAssignmentRequest{AgentId: &agentID.Id})
	s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())
	s.Equal(agentID.Id, decode[servers.Assignment](s, rec).AgentId)

	rec = s.do(http.MethodPut, "/api/v1/agents/"+agentID.Id.String()+"/shift", servers.ShiftChange{OnShift: false})
	s.Equal(http.StatusConflict, rec.Code)
}

func (s *ServerSuite) TestFulfillmentWithoutStore() {
	orderID := s.placeOrder()

	rec := s.do(http.MethodPost, s.orderPath(orderID, "/fulfillment"), nil)

	s.Equal(http.StatusUnprocessableEntity, rec.Code)
	s.Equal(http.StatusUnprocessableEntity, decode[servers.Error](s, rec).Code)
}

func (s *ServerSuite) TestEstimate() {
	s.registerStore(6.5964, 3.3486)

	rec := s.do(http.MethodGet, "/api/v1/estimates?latitude=6.4969&longitude=3.3612", nil)

	s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())
	estimate := decode[servers.Estimate](s, rec)
	s.Equal(17, estimate.EtaMinutes)
	s.InDelta(1060, estimate.Fee, 10)
}

func (s *ServerSuite) TestReportAgentLocation() {
	agentID := s.registerAgent("Tunde", 6.6000, 3.3500)

	rec := s.do(http.MethodPost, "/api/v1/agents/"+agentID.Id.String()+"/locations",
		servers.LocationReport{Latitude: 6.61, Longitude: 3.36})
	s.Require().Equal(http.StatusNoContent, rec.Code, rec.Body.String())

	rec = s.do(http.MethodGet, "/api/v1/agents", nil)
	agents := decode[[]servers.Agent](s, rec)
	s.Require().Len(agents, 1)
	s.Require().NotNil(agents[0].Location)
	s.InDelta(6.61, agents[0].Location.Latitude, 1e-9)

	rec = s.do(http.MethodPost, "/api/v1/agents/"+kernel.NewUUID().String()+"/locations",
		servers.LocationReport{Latitude: 6.61, Longitude: 3.36})
	s.Equal(http.StatusNotFound, rec.Code)
}

func (s *ServerSuite) TestErrors() {
	s.Run("unknown order", func() {
		rec := s.do(http.MethodGet, "/api/v1/orders/"+kernel.NewUUID().String(), nil)
		s.Equal(http.StatusNotFound, rec.Code)
	})

	s.Run("malformed id", func() {
		rec := s.do(http.MethodGet, "/api/v1/orders/not-a-uuid", nil)
		s.Equal(http.StatusBadRequest, rec.Code)
		s.Equal(http.StatusBadRequest, decode[servers.Error](s, rec).Code)
	})

	s.Run("order without items", func() {
		rec := s.do(http.MethodPost, "/api/v1/orders", servers.NewOrder{
			CustomerId: kernel.NewUUID().Google(),
			Address:    "Surulere",
		})
		s.Equal(http.StatusBadRequest, rec.Code)
	})

	s.Run("status that cannot be requested", func() {
		orderID := s.placeOrder()
		rec := s.do(http.MethodPut, s.orderPath(orderID, "/status"), map[string]string{"status": "CONFIRMED"})
		s.Equal(http.StatusBadRequest, rec.Code)
	})

	s.Run("latitude out of range", func() {
		rec := s.do(http.MethodGet, "/api/v1/estimates?latitude=95&longitude=3.3", nil)
		s.Equal(http.StatusBadRequest, rec.Code)
	})
}

func TestRouter_ServiceEndpoints(t *testing.T) {
	e, err := httpadapter.NewRouter(httpadapter.NewServer(httpadapter.Handlers{}), zap.NewNop())
	require.NoError(t, err)

	for _, path := range []string{"/health", "/openapi.json", "/metrics"} {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusOK, rec.Code, path)
	}
}
