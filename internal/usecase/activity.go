package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/partpeople/lead-portal/internal/entity"
)

// Well-known agent display names for auto-provisioned actors.
var defaultAgentNames = map[string]string{
	"boss":    "Boss",
	"builder": "Builder",
	"scout":   "Scout",
	"comms":   "Comms",
}

const defaultAgentModel = "gpt-4"

// ActivityRecorder owns the append-only audit log and the agents it is
// attributed to.
type ActivityRecorder struct {
	Activities entity.ActivityRepository
	Agents     entity.AgentRepository
}

func NewActivityRecorder(activities entity.ActivityRepository, agents entity.AgentRepository) *ActivityRecorder {
	return &ActivityRecorder{
		Activities: activities,
		Agents:     agents,
	}
}

// EnsureAgent makes sure the actor exists before anything is attributed
// to it. Idempotent; a lost creation race against another writer is fine.
func (r *ActivityRecorder) EnsureAgent(ctx context.Context, agentID string) error {
	_, err := r.Agents.FindByAgentID(ctx, agentID)
	if err == nil {
		return nil
	}
	if !errors.Is(err, entity.ErrAgentNotFound) {
		return err
	}

	name, ok := defaultAgentNames[agentID]
	if !ok {
		name = agentID
	}

	agent, err := entity.NewAgent(agentID, name, defaultAgentModel, entity.AgentStatusActive)
	if err != nil {
		return err
	}

	if err := r.Agents.Create(ctx, agent); err != nil {
		if errors.Is(err, entity.ErrAgentExists) {
			return nil
		}
		return err
	}

	return nil
}

// Record writes one audit entry and bumps the agent's last_active.
func (r *ActivityRecorder) Record(ctx context.Context, input RecordActivityInput) (*entity.Activity, error) {
	if input.AgentID == "" || input.Action == "" || input.Description == "" {
		return nil, NewValidation("agent_id, action and description are required")
	}

	if err := r.EnsureAgent(ctx, input.AgentID); err != nil {
		return nil, fmt.Errorf("failed to ensure agent: %w", err)
	}

	act, err := entity.NewActivity(input.AgentID, input.Action, input.Description)
	if err != nil {
		return nil, NewValidation(err.Error())
	}
	act.LeadID = input.LeadID
	act.Metadata = input.Metadata

	if err := r.Activities.Create(ctx, act); err != nil {
		return nil, err
	}

	if err := r.Agents.TouchLastActive(ctx, input.AgentID); err != nil {
		// The audit entry is already committed; a stale last_active is
		// not worth failing the request over.
		log.Printf("failed to touch last_active for %s: %v", input.AgentID, err)
	}

	return act, nil
}

func (r *ActivityRecorder) List(ctx context.Context, opts entity.ListActivitiesOptions) ([]*entity.Activity, error) {
	return r.Activities.List(ctx, opts)
}

func (r *ActivityRecorder) Purge(ctx context.Context, agentID string) (int64, error) {
	return r.Activities.Purge(ctx, agentID)
}
