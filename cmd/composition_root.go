package cmd

import (
	"context"
	"errors"
	"fmt"

	httpadapter "fulfillment/internal/adapters/in/http"
	"fulfillment/internal/adapters/out/geocoding"
	"fulfillment/internal/adapters/out/inmemory"
	"fulfillment/internal/adapters/out/notification"
	"fulfillment/internal/adapters/out/postgres"
	"fulfillment/internal/adapters/out/postgres/orderrepo"
	"fulfillment/internal/adapters/out/postgres/storerepo"
	"fulfillment/internal/adapters/out/postgres/trackingrepo"
	"fulfillment/internal/core/application/events"
	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/jobs"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// unitOfWorkFactory is satisfied by both storage drivers.
type unitOfWorkFactory interface {
	Create() ports.UnitOfWork
}

type CompositionRoot struct {
	cfg    Config
	logger *zap.Logger

	uowFactory unitOfWorkFactory
	orders     queries.OrderReader
	awaiting   queries.AwaitingOrderReader
	stores     queries.StoreReader
	tracking   queries.TrackingReader
	agents     queries.AgentReader

	geocoder   ports.Geocoder
	dispatcher *events.Dispatcher

	storeLocator services.StoreLocator
	agentLocator services.AgentLocator
	estimator    services.DeliveryEstimator

	closers []func() error
}

// NewCompositionRoot wires the storage driver selected by cfg.StorageDriver. gormDB is
// required for the postgres driver and ignored for memory.
func NewCompositionRoot(ctx context.Context, cfg Config, gormDB *gorm.DB, logger *zap.Logger) (*CompositionRoot, error) {
	distance := services.NewHaversineCalculator()
	c := &CompositionRoot{
		cfg:          cfg,
		logger:       logger,
		storeLocator: services.NewStoreLocator(distance),
		agentLocator: services.NewAgentLocator(distance, services.AgentLocatorConfig{
			MaxRadiusKm:  cfg.DispatchMaxRadiusKm,
			MaxSampleAge: cfg.AgentMaxSampleAge,
		}),
		estimator: services.NewDeliveryEstimator(distance, services.EstimatorConfig{
			AvgSpeedKmh: cfg.EstimateAvgSpeedKmh,
			BaseFee:     cfg.EstimateBaseFee,
			PerKmFee:    cfg.EstimatePerKmFee,
		}),
	}

	switch cfg.StorageDriver {
	case StorageDriverMemory:
		storage := inmemory.NewStorage()
		reads := storage.Create()
		c.uowFactory = storage
		c.orders = reads.OrderRepository()
		c.awaiting = reads.OrderRepository()
		c.stores = reads.StoreRepository()
		c.tracking = storage.TrackingReader()
		c.agents = storage
	case StorageDriverPostgres:
		if gormDB == nil {
			return nil, errors.New("postgres driver requires a database connection")
		}
		orders := orderrepo.NewGormOrderRepository(gormDB)
		c.uowFactory = postgres.NewGormUnitOfWorkFactory(gormDB)
		c.orders = orders
		c.awaiting = orders
		c.stores = storerepo.NewGormStoreRepository(gormDB)
		c.tracking = trackingrepo.NewGormTrackingRepository(gormDB)
		c.agents = postgres.NewGormAgentReader(gormDB)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
	}

	geocoder, err := c.newGeocoder()
	if err != nil {
		return nil, err
	}
	c.geocoder = geocoder

	notifier, inventory, err := c.newGateways(ctx)
	if err != nil {
		return nil, err
	}
	c.dispatcher = events.NewDispatcher(notifier, inventory, logger, events.Config{
		Workers:   cfg.EventWorkers,
		QueueSize: cfg.EventQueueSize,
	})

	return c, nil
}

func (c *CompositionRoot) newGeocoder() (ports.Geocoder, error) {
	fallback, err := kernel.NewLocation(c.cfg.GeocoderFallbackLatitude, c.cfg.GeocoderFallbackLongitude)
	if err != nil {
		return nil, fmt.Errorf("geocoder fallback: %w", err)
	}

	var resolver ports.Geocoder = unresolvedGeocoder{}
	if c.cfg.GeocoderURL != "" {
		resolver = geocoding.NewHTTPGeocoder(c.cfg.GeocoderURL, c.cfg.GeocoderTimeout)
	}
	return geocoding.NewFallbackGeocoder(resolver, fallback, c.logger), nil
}

// newGateways fans notifications out to Kafka and SES when configured. Without either the
// log gateway stands in; restock requests go to Kafka or the log.
func (c *CompositionRoot) newGateways(ctx context.Context) (ports.NotificationGateway, ports.InventoryGateway, error) {
	var (
		fanout    notification.Fanout
		inventory ports.InventoryGateway = notification.NewLogGateway(c.logger)
	)

	if len(c.cfg.KafkaBrokers) > 0 {
		writer := notification.NewKafkaWriter(c.cfg.KafkaBrokers)
		kafkaGateway := notification.NewKafkaGateway(writer, notification.KafkaTopics{
			OrderStatus: c.cfg.KafkaOrderStatusTopic,
			AgentTask:   c.cfg.KafkaAgentTaskTopic,
			Restock:     c.cfg.KafkaRestockTopic,
		})
		c.closers = append(c.closers, kafkaGateway.Close)
		fanout = append(fanout, kafkaGateway)
		inventory = kafkaGateway
	}

	if c.cfg.SESRegion != "" {
		client, err := notification.NewSESClient(ctx, c.cfg.SESRegion)
		if err != nil {
			return nil, nil, fmt.Errorf("ses client: %w", err)
		}
		fanout = append(fanout, notification.NewSESGateway(client, c.cfg.SESFromEmail))
	}

	if len(fanout) == 0 {
		fanout = append(fanout, notification.NewLogGateway(c.logger))
	}
	return fanout, inventory, nil
}

// Dispatcher returns the event dispatcher; main starts and stops it.
func (c *CompositionRoot) Dispatcher() *events.Dispatcher {
	return c.dispatcher
}

// Close releases the outbound connections.
func (c *CompositionRoot) Close() error {
	var errs []error
	for _, closeFn := range c.closers {
		errs = append(errs, closeFn())
	}
	return errors.Join(errs...)
}

func (c *CompositionRoot) CreatePlaceOrderCommandHandler() commands.PlaceOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewPlaceOrderCommandHandler(f, c.dispatcher)
}

func (c *CompositionRoot) CreateAssignAgentCommandHandler() commands.AssignAgentCommandHandler {
	return commands.NewAssignAgentCommandHandler(
		c.newUoWFactory(),
		c.agentLocator,
		c.dispatcher,
		c.logger,
		c.cfg.DispatchMaxAssignmentAttempts,
	)
}

func (c *CompositionRoot) CreateProcessFulfillmentCommandHandler() commands.ProcessFulfillmentCommandHandler {
	return commands.NewProcessFulfillmentCommandHandler(
		c.newUoWFactory(),
		c.geocoder,
		c.storeLocator,
		c.estimator,
		c.CreateAssignAgentCommandHandler(),
		c.dispatcher,
		c.logger,
		c.cfg.DispatchAutoAssign,
	)
}

func (c *CompositionRoot) CreateChangeOrderStatusCommandHandler() commands.ChangeOrderStatusCommandHandler {
	return commands.NewChangeOrderStatusCommandHandler(c.newUoWFactory(), c.dispatcher)
}

func (c *CompositionRoot) CreateRegisterStoreCommandHandler() commands.RegisterStoreCommandHandler {
	var f commands.StoreUoWFactory = FuncStoreUoWFactory(func() commands.StoreUoW {
		return c.uowFactory.Create()
	})
	return commands.NewRegisterStoreCommandHandler(f)
}

func (c *CompositionRoot) CreateRegisterAgentCommandHandler() commands.RegisterAgentCommandHandler {
	return commands.NewRegisterAgentCommandHandler(c.newAgentUoWFactory())
}

func (c *CompositionRoot) CreateChangeAgentShiftCommandHandler() commands.ChangeAgentShiftCommandHandler {
	return commands.NewChangeAgentShiftCommandHandler(c.newAgentUoWFactory())
}

func (c *CompositionRoot) CreateReportAgentLocationCommandHandler() commands.ReportAgentLocationCommandHandler {
	return commands.NewReportAgentLocationCommandHandler(c.newAgentUoWFactory())
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.orders)
}

func (c *CompositionRoot) CreateGetAwaitingAgentOrdersQueryHandler() queries.GetAwaitingAgentOrdersQueryHandler {
	return queries.NewGetAwaitingAgentOrdersQueryHandler(c.awaiting)
}

func (c *CompositionRoot) CreateGetOrderTrackingQueryHandler() queries.GetOrderTrackingQueryHandler {
	return queries.NewGetOrderTrackingQueryHandler(c.orders, c.tracking)
}

func (c *CompositionRoot) CreateGetDeliveryEstimateQueryHandler() queries.GetDeliveryEstimateQueryHandler {
	return queries.NewGetDeliveryEstimateQueryHandler(c.stores, c.storeLocator, c.estimator)
}

func (c *CompositionRoot) CreateGetAgentsQueryHandler() queries.GetAgentsQueryHandler {
	return queries.NewGetAgentsQueryHandler(c.agents)
}

// CreateHTTPServer wires every use case into the HTTP adapter.
func (c *CompositionRoot) CreateHTTPServer() *httpadapter.Server {
	return httpadapter.NewServer(httpadapter.Handlers{
		PlaceOrder:          c.CreatePlaceOrderCommandHandler(),
		ProcessFulfillment:  c.CreateProcessFulfillmentCommandHandler(),
		AssignAgent:         c.CreateAssignAgentCommandHandler(),
		ChangeOrderStatus:   c.CreateChangeOrderStatusCommandHandler(),
		RegisterStore:       c.CreateRegisterStoreCommandHandler(),
		RegisterAgent:       c.CreateRegisterAgentCommandHandler(),
		ChangeAgentShift:    c.CreateChangeAgentShiftCommandHandler(),
		ReportAgentLocation: c.CreateReportAgentLocationCommandHandler(),
		GetOrder:            c.CreateGetOrderQueryHandler(),
		GetAwaitingOrders:   c.CreateGetAwaitingAgentOrdersQueryHandler(),
		GetOrderTracking:    c.CreateGetOrderTrackingQueryHandler(),
		GetEstimate:         c.CreateGetDeliveryEstimateQueryHandler(),
		GetAgents:           c.CreateGetAgentsQueryHandler(),
	})
}

// CreateJobManager wires the scheduled jobs.
func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	retry := jobs.NewPendingAssignmentJob(
		c.CreateGetAwaitingAgentOrdersQueryHandler(),
		c.CreateAssignAgentCommandHandler(),
		c.cfg.RetrySchedule,
		c.cfg.RetryBatchSize,
		c.logger,
	)
	return jobs.NewJobManager(retry)
}

func (c *CompositionRoot) newUoWFactory() commands.UoWFactory {
	return FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) newAgentUoWFactory() commands.AgentUoWFactory {
	return FuncAgentUoWFactory(func() commands.AgentUoW {
		return c.uowFactory.Create()
	})
}

// unresolvedGeocoder is used when no geocoding service is configured; every address falls
// back to the default coordinate.
type unresolvedGeocoder struct{}

func (unresolvedGeocoder) Resolve(context.Context, string) (kernel.Location, error) {
	return kernel.Location{}, errors.New("no geocoding service configured")
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncStoreUoWFactory func() commands.StoreUoW

func (f FuncStoreUoWFactory) Create() commands.StoreUoW {
	return f()
}

type FuncAgentUoWFactory func() commands.AgentUoW

func (f FuncAgentUoWFactory) Create() commands.AgentUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
