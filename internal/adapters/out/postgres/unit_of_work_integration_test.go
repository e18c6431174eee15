package postgres_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	storage "fulfillment/internal/adapters/out/postgres"
	"fulfillment/internal/adapters/out/postgres/pgtest"
	"fulfillment/internal/adapters/out/postgres/trackingrepo"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/agent"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/tracking"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"gorm.io/gorm"
)

// UnitOfWorkIntegrationTestSuite exercises transactions spanning several repositories.
type UnitOfWorkIntegrationTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	factory   ports.UnitOfWorkFactory
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupSuite() {
	container, db, err := pgtest.Start(context.Background())
	suite.container = container
	suite.Require().NoError(err)
	suite.db = db
	suite.factory = storage.NewGormUnitOfWorkFactory(db)
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(pgtest.Truncate(suite.db))
}

func (suite *UnitOfWorkIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *UnitOfWorkIntegrationTestSuite) TestTransactionLifecycle() {
	ctx := context.Background()
	uow := suite.factory.Create()

	suite.Require().ErrorIs(uow.Commit(ctx), gorm.ErrInvalidTransaction)
	suite.Require().NoError(uow.Rollback(ctx))

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.Commit(ctx))
	suite.Require().NoError(uow.Rollback(ctx))
}

func (suite *UnitOfWorkIntegrationTestSuite) TestCommit_OrderAndTrackingTogether() {
	ctx := context.Background()
	o := newOrder(suite.T())
	events := o.PopEvents()

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.OrderRepository().Add(ctx, o))
	suite.Require().NoError(uow.TrackingRepository().Append(ctx, entryFor(suite.T(), events[0])))
	suite.Require().NoError(uow.Commit(ctx))

	got, err := suite.factory.Create().OrderRepository().Get(ctx, o.ID())
	suite.Require().NoError(err)
	suite.Equal(order.Pending, got.Status())

	reader := trackingrepo.NewGormTrackingRepository(suite.db)
	count := 0
	for e, err := range reader.History(ctx, o.ID(), tracking.Ascending) {
		suite.Require().NoError(err)
		suite.Equal(int64(1), e.Sequence())
		count++
	}
	suite.Equal(1, count)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestRollback_DiscardsEveryRepository() {
	ctx := context.Background()
	o := newOrder(suite.T())
	a := newAgent(suite.T(), "Tunde")

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.OrderRepository().Add(ctx, o))
	suite.Require().NoError(uow.AgentRepository().Add(ctx, a))
	suite.Require().NoError(uow.Rollback(ctx))

	fresh := suite.factory.Create()
	_, err := fresh.OrderRepository().Get(ctx, o.ID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
	_, err = fresh.AgentRepository().Get(ctx, a.ID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestConcurrentReservations_ExactlyOneWins() {
	ctx := context.Background()
	a := newAgent(suite.T(), "Tunde")
	seed := suite.factory.Create()
	suite.Require().NoError(seed.AgentRepository().Add(ctx, a))

	const contenders = 2
	var (
		wg      sync.WaitGroup
		start   = make(chan struct{})
		results = make([]error, contenders)
		loaded  = make([]*agent.Agent, contenders)
		uows    = make([]ports.UnitOfWork, contenders)
	)
	for i := range contenders {
		uows[i] = suite.factory.Create()
		suite.Require().NoError(uows[i].Begin(ctx))
		got, err := uows[i].AgentRepository().Get(ctx, a.ID())
		suite.Require().NoError(err)
		suite.Require().NoError(got.Reserve())
		loaded[i] = got
	}

	for i := range contenders {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			<-start
			err := uows[i].AgentRepository().Update(ctx, loaded[i])
			if err == nil {
				err = uows[i].Commit(ctx)
			} else {
				_ = uows[i].Rollback(ctx)
			}
			results[i] = err
		}(i)
	}
	close(start)
	wg.Wait()

	wins, conflicts := 0, 0
	for _, err := range results {
		switch {
		case err == nil:
			wins++
		case errors.Is(err, errs.ErrConcurrencyConflict):
			conflicts++
		default:
			suite.Failf("unexpected error", "%v", err)
		}
	}
	suite.Equal(1, wins)
	suite.Equal(1, conflicts)

	got, err := suite.factory.Create().AgentRepository().Get(ctx, a.ID())
	suite.Require().NoError(err)
	suite.Equal(agent.Busy, got.Status())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestAgentReader_JoinsLatestLocation() {
	ctx := context.Background()
	tunde := newAgent(suite.T(), "Tunde")
	bola, err := agent.NewAgent(kernel.NewUUID(), "Bola")
	suite.Require().NoError(err)

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.AgentRepository().Add(ctx, tunde))
	suite.Require().NoError(uow.AgentRepository().Add(ctx, bola))
	base := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	for i, lat := range []float64{6.60, 6.62} {
		loc, locErr := kernel.NewLocation(lat, 3.35)
		suite.Require().NoError(locErr)
		sample, sampleErr := agent.NewLocationSample(kernel.NewUUID(), tunde.ID(), loc, base.Add(time.Duration(i)*time.Minute))
		suite.Require().NoError(sampleErr)
		suite.Require().NoError(uow.LocationRepository().Append(ctx, sample))
	}
	suite.Require().NoError(uow.Commit(ctx))

	reader := storage.NewGormAgentReader(suite.db)

	all, err := reader.ListAgents(ctx, queries.AgentFilter{})
	suite.Require().NoError(err)
	suite.Require().Len(all, 2)
	suite.Equal("Bola", all[0].Name)
	suite.Nil(all[0].Location)
	suite.Nil(all[0].LocationRecordedAt)
	suite.Equal("Tunde", all[1].Name)
	suite.Require().NotNil(all[1].Location)
	suite.InDelta(6.62, all[1].Location.Latitude(), 1e-9)
	suite.True(base.Add(time.Minute).Equal(*all[1].LocationRecordedAt))

	available := agent.Available
	filtered, err := reader.ListAgents(ctx, queries.AgentFilter{Status: &available})
	suite.Require().NoError(err)
	suite.Require().Len(filtered, 1)
	suite.Equal(tunde.ID(), filtered[0].ID)
}

func newOrder(t *testing.T) *order.Order {
	t.Helper()
	item, err := order.NewItem("sku-42", 1)
	if err != nil {
		t.Fatal(err)
	}
	loc, err := kernel.NewLocation(6.4969, 3.3481)
	if err != nil {
		t.Fatal(err)
	}
	o, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), []order.Item{item}, "Surulere", &loc, "", time.Now())
	if err != nil {
		t.Fatal(err)
	}
	return o
}

func newAgent(t *testing.T, name string) *agent.Agent {
	t.Helper()
	a, err := agent.NewAgent(kernel.NewUUID(), name)
	if err != nil {
		t.Fatal(err)
	}
	if err := a.GoOnline(); err != nil {
		t.Fatal(err)
	}
	return a
}

func entryFor(t *testing.T, e order.Event) *tracking.Entry {
	t.Helper()
	changed, ok := e.(order.StatusChanged)
	if !ok {
		t.Fatalf("unexpected event %T", e)
	}
	entry, err := tracking.FromStatusChanged(kernel.NewUUID(), changed, nil)
	if err != nil {
		t.Fatal(err)
	}
	return entry
}

func TestUnitOfWorkIntegrationTestSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration tests in short mode")
	}
	suite.Run(t, new(UnitOfWorkIntegrationTestSuite))
}
