package handlers

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/partpeople/lead-portal/internal/entity"
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
