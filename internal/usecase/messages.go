package usecase

import (
	"context"
	"errors"
	"log"

	"github.com/partpeople/lead-portal/internal/entity"
	"github.com/partpeople/lead-portal/internal/infra/queue"
)

// MessageUseCase owns the per-lead correspondence thread. Outbound
// messages run draft -> approved -> sent; inbound ones are immutable and
// only flip received -> read.
type MessageUseCase struct {
	Leads    entity.LeadRepository
	Messages entity.MessageRepository
	Recorder *ActivityRecorder
}

func NewMessageUseCase(leads entity.LeadRepository, messages entity.MessageRepository, recorder *ActivityRecorder) *MessageUseCase {
	return &MessageUseCase{
		Leads:    leads,
		Messages: messages,
		Recorder: recorder,
	}
}

// ListThread returns the thread oldest-first.
func (uc *MessageUseCase) ListThread(ctx context.Context, leadID string) ([]*entity.LeadMessage, error) {
	if err := uc.requireLead(ctx, leadID); err != nil {
		return nil, err
	}
	return uc.Messages.ListByLead(ctx, leadID)
}

func (uc *MessageUseCase) CreateMessage(ctx context.Context, leadID string, input CreateMessageInput) (*entity.LeadMessage, error) {
	if err := joinValidation(ValidateCreateMessageInput(input)); err != nil {
		return nil, err
	}

	if err := uc.requireLead(ctx, leadID); err != nil {
		return nil, err
	}

	msg, err := entity.NewLeadMessage(leadID, entity.Direction(input.Direction), input.From, input.To, input.Subject, input.Body)
	if err != nil {
		return nil, NewValidation(err.Error())
	}

	if err := uc.Messages.Create(ctx, msg); err != nil {
		return nil, err
	}

	return msg, nil
}

// EditMessage overwrites subject/body of an outbound draft. Anything past
// draft is immutable.
func (uc *MessageUseCase) EditMessage(ctx context.Context, leadID, msgID string, input EditMessageInput) (*entity.LeadMessage, error) {
	msg, err := uc.findMessage(ctx, leadID, msgID)
	if err != nil {
		return nil, err
	}

	if msg.Status != entity.MessageStatusDraft {
		return nil, NewImmutableMessage("only draft messages can be edited")
	}

	subject := msg.Subject
	body := msg.Body
	if input.Subject != nil {
		subject = *input.Subject
	}
	if input.Body != nil {
		body = *input.Body
	}

	ok, err := uc.Messages.UpdateDraft(ctx, msgID, subject, body)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, NewImmutableMessage("only draft messages can be edited")
	}

	return uc.findMessage(ctx, leadID, msgID)
}

// ApproveMessage moves a draft to approved. Transport stays with the
// external send channel.
func (uc *MessageUseCase) ApproveMessage(ctx context.Context, leadID, msgID string) (*entity.LeadMessage, error) {
	msg, err := uc.findMessage(ctx, leadID, msgID)
	if err != nil {
		return nil, err
	}

	if msg.Status != entity.MessageStatusDraft {
		return nil, NewImmutableMessage("only draft messages can be approved")
	}

	ok, err := uc.Messages.Approve(ctx, msgID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, NewImmutableMessage("only draft messages can be approved")
	}

	return uc.findMessage(ctx, leadID, msgID)
}

// MarkThreadRead flips every received inbound message of the lead to read
// and reports how many changed. Safe to re-invoke; the second call
// affects zero rows.
func (uc *MessageUseCase) MarkThreadRead(ctx context.Context, leadID string) (int64, error) {
	if err := uc.requireLead(ctx, leadID); err != nil {
		return 0, err
	}
	return uc.Messages.MarkThreadRead(ctx, leadID)
}

// IngestReply implements queue.ReplyIngestor for the reply worker.
func (uc *MessageUseCase) IngestReply(ctx context.Context, payload queue.ReplyPayload) error {
	msg, err := uc.CreateMessage(ctx, payload.LeadID, CreateMessageInput{
		Direction: string(entity.DirectionInbound),
		From:      payload.From,
		To:        payload.To,
		Subject:   payload.Subject,
		Body:      payload.Body,
	})
	if err != nil {
		return err
	}

	if uc.Recorder != nil {
		_, err := uc.Recorder.Record(ctx, RecordActivityInput{
			AgentID:     "comms",
			LeadID:      payload.LeadID,
			Action:      "reply_received",
			Description: "Inbound reply received from " + payload.From,
		})
		if err != nil {
			log.Printf("activity logging skipped: %v", err)
		}
	}

	log.Printf("stored inbound reply %s for lead %s", msg.ID, payload.LeadID)
	return nil
}

func (uc *MessageUseCase) requireLead(ctx context.Context, leadID string) error {
	_, err := uc.Leads.FindByID(ctx, leadID)
	if err != nil {
		if errors.Is(err, entity.ErrLeadNotFound) {
			return NewNotFound("Lead not found")
		}
		return err
	}
	return nil
}

func (uc *MessageUseCase) findMessage(ctx context.Context, leadID, msgID string) (*entity.LeadMessage, error) {
	msg, err := uc.Messages.FindByID(ctx, leadID, msgID)
	if err != nil {
		if errors.Is(err, entity.ErrMessageNotFound) {
			return nil, NewNotFound("Message not found")
		}
		return nil, err
	}
	return msg, nil
}
