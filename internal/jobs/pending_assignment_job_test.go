package jobs_test

import (
	"context"
	"errors"
	"testing"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/jobs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type MockLister struct {
	mock.Mock
}

func (m *MockLister) Handle(ctx context.Context, query queries.GetAwaitingAgentOrdersQuery) ([]queries.GetOrderQueryResponse, error) {
	args := m.Called(ctx, query)
	orders, _ := args.Get(0).([]queries.GetOrderQueryResponse)
	return orders, args.Error(1)
}

type MockAssigner struct {
	mock.Mock
}

func (m *MockAssigner) Handle(ctx context.Context, command commands.AssignAgentCommand) (commands.Assignment, error) {
	args := m.Called(ctx, command)
	return args.Get(0).(commands.Assignment), args.Error(1)
}

func forOrder(id kernel.UUID) any {
	return mock.MatchedBy(func(cmd commands.AssignAgentCommand) bool {
		return cmd.IsAuto() && cmd.OrderID() == id
	})
}

func TestPendingAssignmentJob_RunOnce(t *testing.T) {
	first, second, third := kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID()
	agentID := kernel.NewUUID()

	lister := new(MockLister)
	lister.On("Handle", mock.Anything, mock.MatchedBy(func(q queries.GetAwaitingAgentOrdersQuery) bool {
		return q.Limit() == 25
	})).Return([]queries.GetOrderQueryResponse{{ID: first}, {ID: second}, {ID: third}}, nil).Once()

	assigner := new(MockAssigner)
	assigner.On("Handle", mock.Anything, forOrder(first)).
		Return(commands.Assignment{}, services.ErrNoAgentAvailable).Once()
	assigner.On("Handle", mock.Anything, forOrder(second)).
		Return(commands.Assignment{}, errors.New("connection reset")).Once()
	assigner.On("Handle", mock.Anything, forOrder(third)).
		Return(commands.Assignment{OrderID: third, AgentID: agentID}, nil).Once()

	job := jobs.NewPendingAssignmentJob(lister, assigner, "", 25, zap.NewNop())

	assigned := job.RunOnce(t.Context())

	assert.Equal(t, 1, assigned)
	lister.AssertExpectations(t)
	assigner.AssertExpectations(t)
}

func TestPendingAssignmentJob_ListFailureSkipsRound(t *testing.T) {
	lister := new(MockLister)
	lister.On("Handle", mock.Anything, mock.Anything).Return(nil, errors.New("db down")).Once()
	assigner := new(MockAssigner)

	job := jobs.NewPendingAssignmentJob(lister, assigner, "", 0, zap.NewNop())

	assert.Equal(t, 0, job.RunOnce(t.Context()))
	assigner.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
}

func TestPendingAssignmentJob_InvalidSchedule(t *testing.T) {
	job := jobs.NewPendingAssignmentJob(new(MockLister), new(MockAssigner), "not a schedule", 0, zap.NewNop())

	require.Error(t, job.Start())
}

type recordingJob struct {
	name  string
	fail  bool
	trail *[]string
}

func (j recordingJob) Start() error {
	if j.fail {
		return errors.New("cannot start")
	}
	*j.trail = append(*j.trail, "start "+j.name)
	return nil
}

func (j recordingJob) Stop() {
	*j.trail = append(*j.trail, "stop "+j.name)
}

func TestJobManager(t *testing.T) {
	t.Run("stops in reverse order", func(t *testing.T) {
		var trail []string
		manager := jobs.NewJobManager(recordingJob{name: "a", trail: &trail}, recordingJob{name: "b", trail: &trail})

		require.NoError(t, manager.StartAll())
		manager.StopAll()

		assert.Equal(t, []string{"start a", "start b", "stop b", "stop a"}, trail)
	})

	t.Run("failed start stops the started jobs", func(t *testing.T) {
		var trail []string
		manager := jobs.NewJobManager(recordingJob{name: "a", trail: &trail}, recordingJob{name: "b", fail: true, trail: &trail})

		require.Error(t, manager.StartAll())
		assert.Equal(t, []string{"start a", "stop a"}, trail)
	})
}
