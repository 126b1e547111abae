package usecase

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/partpeople/lead-portal/internal/entity"
	"github.com/partpeople/lead-portal/internal/infra/queue"
)

// MockLeadRepository - mock for entity.LeadRepository
type MockLeadRepository struct {
	mock.Mock
}

func (m *MockLeadRepository) Create(ctx context.Context, lead *entity.Lead) error {
	args := m.Called(ctx, lead)
	return args.Error(0)
}

func (m *MockLeadRepository) FindByID(ctx context.Context, id string) (*entity.Lead, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Lead), args.Error(1)
}

func (m *MockLeadRepository) List(ctx context.Context, opts entity.ListLeadsOptions) ([]*entity.Lead, error) {
	args := m.Called(ctx, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Lead), args.Error(1)
}

func (m *MockLeadRepository) Update(ctx context.Context, lead *entity.Lead) error {
	args := m.Called(ctx, lead)
	return args.Error(0)
}

func (m *MockLeadRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockLeadRepository) CountByStatus(ctx context.Context) ([]entity.StatusCount, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.StatusCount), args.Error(1)
}

func (m *MockLeadRepository) AdvanceToDemoReady(ctx context.Context, id, demoURL string) (bool, error) {
	args := m.Called(ctx, id, demoURL)
	return args.Bool(0), args.Error(1)
}

func (m *MockLeadRepository) AdvanceToEmailDraft(ctx context.Context, id, subject, body string) (bool, error) {
	args := m.Called(ctx, id, subject, body)
	return args.Bool(0), args.Error(1)
}

func (m *MockLeadRepository) UpdateDraft(ctx context.Context, id, email, subject, body string) (bool, error) {
	args := m.Called(ctx, id, email, subject, body)
	return args.Bool(0), args.Error(1)
}

func (m *MockLeadRepository) Approve(ctx context.Context, id string) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

// MockEmailLogRepository - mock for entity.EmailLogRepository
type MockEmailLogRepository struct {
	mock.Mock
}

func (m *MockEmailLogRepository) Create(ctx context.Context, entry *entity.EmailLog) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockEmailLogRepository) ListByLead(ctx context.Context, leadID string) ([]*entity.EmailLog, error) {
	args := m.Called(ctx, leadID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.EmailLog), args.Error(1)
}

// MockMessageRepository - mock for entity.MessageRepository
type MockMessageRepository struct {
	mock.Mock
}

func (m *MockMessageRepository) Create(ctx context.Context, msg *entity.LeadMessage) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}

func (m *MockMessageRepository) FindByID(ctx context.Context, leadID, msgID string) (*entity.LeadMessage, error) {
	args := m.Called(ctx, leadID, msgID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.LeadMessage), args.Error(1)
}

func (m *MockMessageRepository) ListByLead(ctx context.Context, leadID string) ([]*entity.LeadMessage, error) {
	args := m.Called(ctx, leadID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.LeadMessage), args.Error(1)
}

func (m *MockMessageRepository) UpdateDraft(ctx context.Context, msgID, subject, body string) (bool, error) {
	args := m.Called(ctx, msgID, subject, body)
	return args.Bool(0), args.Error(1)
}

func (m *MockMessageRepository) Approve(ctx context.Context, msgID string) (bool, error) {
	args := m.Called(ctx, msgID)
	return args.Bool(0), args.Error(1)
}

func (m *MockMessageRepository) MarkThreadRead(ctx context.Context, leadID string) (int64, error) {
	args := m.Called(ctx, leadID)
	return args.Get(0).(int64), args.Error(1)
}

// MockAgentRepository - mock for entity.AgentRepository
type MockAgentRepository struct {
	mock.Mock
}

func (m *MockAgentRepository) List(ctx context.Context) ([]*entity.Agent, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Agent), args.Error(1)
}

func (m *MockAgentRepository) FindByID(ctx context.Context, id string) (*entity.Agent, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Agent), args.Error(1)
}

func (m *MockAgentRepository) FindByAgentID(ctx context.Context, agentID string) (*entity.Agent, error) {
	args := m.Called(ctx, agentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Agent), args.Error(1)
}

func (m *MockAgentRepository) Create(ctx context.Context, agent *entity.Agent) error {
	args := m.Called(ctx, agent)
	return args.Error(0)
}

func (m *MockAgentRepository) Update(ctx context.Context, agent *entity.Agent) error {
	args := m.Called(ctx, agent)
	return args.Error(0)
}

func (m *MockAgentRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockAgentRepository) TouchLastActive(ctx context.Context, agentID string) error {
	args := m.Called(ctx, agentID)
	return args.Error(0)
}

// MockActivityRepository - mock for entity.ActivityRepository
type MockActivityRepository struct {
	mock.Mock
}

func (m *MockActivityRepository) Create(ctx context.Context, act *entity.Activity) error {
	args := m.Called(ctx, act)
	return args.Error(0)
}

func (m *MockActivityRepository) List(ctx context.Context, opts entity.ListActivitiesOptions) ([]*entity.Activity, error) {
	args := m.Called(ctx, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Activity), args.Error(1)
}

func (m *MockActivityRepository) Purge(ctx context.Context, agentID string) (int64, error) {
	args := m.Called(ctx, agentID)
	return args.Get(0).(int64), args.Error(1)
}

// MockOutboxProducer - mock for queue.OutboxProducerInterface
type MockOutboxProducer struct {
	mock.Mock
}

func (m *MockOutboxProducer) PublishOutbound(ctx context.Context, payload queue.OutboundEmailPayload) error {
	args := m.Called(ctx, payload)
	return args.Error(0)
}
