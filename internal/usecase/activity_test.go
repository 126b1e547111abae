package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/partpeople/lead-portal/internal/entity"
)

func TestEnsureAgent(t *testing.T) {
	t.Run("Existing Agent Is Left Alone", func(t *testing.T) {
		agent, _ := entity.NewAgent("boss", "Boss", "gpt-4", entity.AgentStatusActive)

		agentRepo := new(MockAgentRepository)
		agentRepo.On("FindByAgentID", mock.Anything, "boss").Return(agent, nil)

		recorder := NewActivityRecorder(new(MockActivityRepository), agentRepo)

		assert.NoError(t, recorder.EnsureAgent(context.Background(), "boss"))
		agentRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Missing Agent Gets Provisioned", func(t *testing.T) {
		agentRepo := new(MockAgentRepository)
		agentRepo.On("FindByAgentID", mock.Anything, "builder").Return(nil, entity.ErrAgentNotFound)
		agentRepo.On("Create", mock.Anything, mock.MatchedBy(func(a *entity.Agent) bool {
			return a.AgentID == "builder" && a.Name == "Builder" && a.Model == "gpt-4"
		})).Return(nil)

		recorder := NewActivityRecorder(new(MockActivityRepository), agentRepo)

		assert.NoError(t, recorder.EnsureAgent(context.Background(), "builder"))
		agentRepo.AssertExpectations(t)
	})

	t.Run("Unknown Ids Reuse The Id As Name", func(t *testing.T) {
		agentRepo := new(MockAgentRepository)
		agentRepo.On("FindByAgentID", mock.Anything, "custom-agent").Return(nil, entity.ErrAgentNotFound)
		agentRepo.On("Create", mock.Anything, mock.MatchedBy(func(a *entity.Agent) bool {
			return a.AgentID == "custom-agent" && a.Name == "custom-agent"
		})).Return(nil)

		recorder := NewActivityRecorder(new(MockActivityRepository), agentRepo)

		assert.NoError(t, recorder.EnsureAgent(context.Background(), "custom-agent"))
	})

	t.Run("Lost Creation Race Is Fine", func(t *testing.T) {
		agentRepo := new(MockAgentRepository)
		agentRepo.On("FindByAgentID", mock.Anything, "comms").Return(nil, entity.ErrAgentNotFound)
		agentRepo.On("Create", mock.Anything, mock.Anything).Return(entity.ErrAgentExists)

		recorder := NewActivityRecorder(new(MockActivityRepository), agentRepo)

		assert.NoError(t, recorder.EnsureAgent(context.Background(), "comms"))
	})
}

func TestRecord(t *testing.T) {
	t.Run("Writes Entry And Touches Agent", func(t *testing.T) {
		agent, _ := entity.NewAgent("boss", "Boss", "gpt-4", entity.AgentStatusActive)

		agentRepo := new(MockAgentRepository)
		agentRepo.On("FindByAgentID", mock.Anything, "boss").Return(agent, nil)
		agentRepo.On("TouchLastActive", mock.Anything, "boss").Return(nil)

		activityRepo := new(MockActivityRepository)
		activityRepo.On("Create", mock.Anything, mock.MatchedBy(func(a *entity.Activity) bool {
			return a.AgentID == "boss" && a.Action == "email_drafted" && a.LeadID == "lead-1"
		})).Return(nil)

		recorder := NewActivityRecorder(activityRepo, agentRepo)

		act, err := recorder.Record(context.Background(), RecordActivityInput{
			AgentID:     "boss",
			LeadID:      "lead-1",
			Action:      "email_drafted",
			Description: "Email draft created",
		})

		assert.NoError(t, err)
		assert.NotEmpty(t, act.ID)
		agentRepo.AssertExpectations(t)
		activityRepo.AssertExpectations(t)
	})

	t.Run("Requires Agent Action And Description", func(t *testing.T) {
		recorder := NewActivityRecorder(new(MockActivityRepository), new(MockAgentRepository))

		_, err := recorder.Record(context.Background(), RecordActivityInput{AgentID: "boss"})

		var domainErr *DomainError
		assert.ErrorAs(t, err, &domainErr)
		assert.Equal(t, CodeValidation, domainErr.Code)
	})

	t.Run("Stale Last Active Does Not Fail The Write", func(t *testing.T) {
		agent, _ := entity.NewAgent("boss", "Boss", "gpt-4", entity.AgentStatusActive)

		agentRepo := new(MockAgentRepository)
		agentRepo.On("FindByAgentID", mock.Anything, "boss").Return(agent, nil)
		agentRepo.On("TouchLastActive", mock.Anything, "boss").Return(assert.AnError)

		activityRepo := new(MockActivityRepository)
		activityRepo.On("Create", mock.Anything, mock.Anything).Return(nil)

		recorder := NewActivityRecorder(activityRepo, agentRepo)

		_, err := recorder.Record(context.Background(), RecordActivityInput{
			AgentID:     "boss",
			Action:      "noop",
			Description: "noop",
		})

		assert.NoError(t, err)
	})
}
