package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"github.com/partpeople/lead-portal/internal/entity"
	"github.com/partpeople/lead-portal/internal/infra/queue"
)

// OutreachUseCase sequences the lead state machine:
// NEW -> DEMO_READY -> EMAIL_DRAFT -> APPROVED -> SENT.
type OutreachUseCase struct {
	Leads       entity.LeadRepository
	EmailLogs   entity.EmailLogRepository
	Drafter     EmailDrafter
	Recorder    *ActivityRecorder
	Producer    queue.OutboxProducerInterface
	DemoBaseURL string
}

func NewOutreachUseCase(
	leads entity.LeadRepository,
	emailLogs entity.EmailLogRepository,
	drafter EmailDrafter,
	recorder *ActivityRecorder,
	producer queue.OutboxProducerInterface,
	demoBaseURL string,
) *OutreachUseCase {
	if demoBaseURL == "" {
		demoBaseURL = "https://demos.partpeople.dev"
	}

	return &OutreachUseCase{
		Leads:       leads,
		EmailLogs:   emailLogs,
		Drafter:     drafter,
		Recorder:    recorder,
		Producer:    producer,
		DemoBaseURL: demoBaseURL,
	}
}

func (uc *OutreachUseCase) CreateLead(ctx context.Context, input CreateLeadInput) (*entity.Lead, error) {
	if err := joinValidation(ValidateCreateLeadInput(input)); err != nil {
		return nil, err
	}

	lead, err := entity.NewLead(input.Company)
	if err != nil {
		return nil, NewValidation(err.Error())
	}

	lead.ContactName = input.ContactName
	lead.Address = input.Address
	lead.Email = input.Email
	lead.Phone = input.Phone
	lead.WebsiteURL = input.WebsiteURL
	lead.Description = input.Description
	lead.Industry = input.Industry
	lead.Source = input.Source
	lead.SourceURL = input.SourceURL
	lead.Priority = input.Priority
	if lead.Priority == "" {
		lead.Priority = "normal"
	}

	if err := uc.Leads.Create(ctx, lead); err != nil {
		return nil, err
	}

	return lead, nil
}

func (uc *OutreachUseCase) GetLead(ctx context.Context, id string) (*entity.Lead, error) {
	return uc.findLead(ctx, id)
}

func (uc *OutreachUseCase) ListLeads(ctx context.Context, opts entity.ListLeadsOptions) ([]*entity.Lead, error) {
	return uc.Leads.List(ctx, opts)
}

func (uc *OutreachUseCase) Pipeline(ctx context.Context, opts entity.ListLeadsOptions) (*PipelineOutput, error) {
	leads, err := uc.Leads.List(ctx, opts)
	if err != nil {
		return nil, err
	}

	stats, err := uc.Leads.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}

	return &PipelineOutput{Leads: leads, Stats: stats}, nil
}

// UpdateLead is the manual escape hatch for data fields. It never touches
// status; that only moves through the guarded transitions below.
func (uc *OutreachUseCase) UpdateLead(ctx context.Context, id string, input UpdateLeadInput) (*entity.Lead, error) {
	if err := joinValidation(ValidateUpdateLeadInput(input)); err != nil {
		return nil, err
	}

	lead, err := uc.findLead(ctx, id)
	if err != nil {
		return nil, err
	}

	apply := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	apply(&lead.Company, input.Company)
	apply(&lead.ContactName, input.ContactName)
	apply(&lead.Address, input.Address)
	apply(&lead.Email, input.Email)
	apply(&lead.Phone, input.Phone)
	apply(&lead.WebsiteURL, input.WebsiteURL)
	apply(&lead.Description, input.Description)
	apply(&lead.Industry, input.Industry)
	apply(&lead.Source, input.Source)
	apply(&lead.SourceURL, input.SourceURL)
	apply(&lead.Priority, input.Priority)
	apply(&lead.DemoURL, input.DemoURL)
	apply(&lead.EmailSubject, input.EmailSubject)
	apply(&lead.EmailBody, input.EmailBody)

	if err := uc.Leads.Update(ctx, lead); err != nil {
		if errors.Is(err, entity.ErrLeadNotFound) {
			return nil, NewNotFound("Lead not found")
		}
		return nil, err
	}

	return lead, nil
}

func (uc *OutreachUseCase) DeleteLead(ctx context.Context, id string) error {
	if err := uc.Leads.Delete(ctx, id); err != nil {
		if errors.Is(err, entity.ErrLeadNotFound) {
			return NewNotFound("Lead not found")
		}
		return err
	}
	return nil
}

// CreateDemo derives the demo URL from the company name and advances
// NEW -> DEMO_READY.
func (uc *OutreachUseCase) CreateDemo(ctx context.Context, id string) (*entity.Lead, error) {
	lead, err := uc.findLead(ctx, id)
	if err != nil {
		return nil, err
	}

	if lead.Status != entity.LeadStatusNew {
		return nil, NewInvalidTransition("lead must have status NEW to create a demo")
	}

	demoURL := fmt.Sprintf("%s/%s.html", uc.DemoBaseURL, Slugify(lead.Company))

	ok, err := uc.Leads.AdvanceToDemoReady(ctx, id, demoURL)
	if err != nil {
		return nil, err
	}
	if !ok {
		// Someone else moved the lead between our read and the write.
		return nil, NewInvalidTransition("lead must have status NEW to create a demo")
	}

	uc.recordLeadActivity(ctx, "builder", "demo_created",
		fmt.Sprintf("Demo website created for %s", lead.Company),
		lead, map[string]string{"lead_id": lead.LeadID, "demo_url": demoURL})

	return uc.findLead(ctx, id)
}

// GenerateEmailDraft composes the outreach draft and advances
// DEMO_READY -> EMAIL_DRAFT.
func (uc *OutreachUseCase) GenerateEmailDraft(ctx context.Context, id string) (*entity.Lead, error) {
	lead, err := uc.findLead(ctx, id)
	if err != nil {
		return nil, err
	}

	if lead.Status != entity.LeadStatusDemoReady {
		return nil, NewInvalidTransition("lead must have status DEMO_READY to generate an email draft")
	}
	if lead.DemoURL == "" {
		// Should not happen past the status check; guard anyway.
		return nil, NewMissingDemoURL("demo URL is missing")
	}

	subject, body, err := uc.Drafter.Draft(ctx, lead)
	if err != nil {
		return nil, err
	}

	ok, err := uc.Leads.AdvanceToEmailDraft(ctx, id, subject, body)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, NewInvalidTransition("lead must have status DEMO_READY to generate an email draft")
	}

	uc.recordLeadActivity(ctx, "boss", "email_drafted",
		fmt.Sprintf("Email draft created for %s", lead.Company),
		lead, map[string]string{"lead_id": lead.LeadID})

	return uc.findLead(ctx, id)
}

// EditDraft overwrites the recipient/subject/body of the current draft.
// Allowed while the lead is EMAIL_DRAFT or APPROVED.
func (uc *OutreachUseCase) EditDraft(ctx context.Context, id string, input EditDraftInput) (*entity.Lead, error) {
	lead, err := uc.findLead(ctx, id)
	if err != nil {
		return nil, err
	}

	if lead.Status != entity.LeadStatusEmailDraft && lead.Status != entity.LeadStatusApproved {
		return nil, NewInvalidTransition("lead must have status EMAIL_DRAFT or APPROVED to edit the draft")
	}

	email := lead.Email
	subject := lead.EmailSubject
	body := lead.EmailBody
	if input.Email != nil {
		email = *input.Email
	}
	if input.EmailSubject != nil {
		subject = *input.EmailSubject
	}
	if input.EmailBody != nil {
		body = *input.EmailBody
	}

	ok, err := uc.Leads.UpdateDraft(ctx, id, email, subject, body)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, NewInvalidTransition("lead must have status EMAIL_DRAFT or APPROVED to edit the draft")
	}

	return uc.findLead(ctx, id)
}

// ApproveAndSend advances EMAIL_DRAFT -> APPROVED, records the send
// intent in the email log and hands the message to the outbox queue.
// No SMTP happens here; transport belongs to the external send channel.
func (uc *OutreachUseCase) ApproveAndSend(ctx context.Context, id string) (*entity.Lead, error) {
	lead, err := uc.findLead(ctx, id)
	if err != nil {
		return nil, err
	}

	if lead.Email == "" || lead.EmailSubject == "" || lead.EmailBody == "" {
		return nil, NewValidation("email, email_subject and email_body must all be set before approval")
	}
	if lead.Status != entity.LeadStatusEmailDraft {
		return nil, NewInvalidTransition("lead must have status EMAIL_DRAFT to approve")
	}

	ok, err := uc.Leads.Approve(ctx, id)
	if err != nil {
		return nil, err
	}
	if !ok {
		// A concurrent approval won the conditional update.
		return nil, NewInvalidTransition("lead must have status EMAIL_DRAFT to approve")
	}

	entry := entity.NewEmailLog(lead.LeadID, "out", lead.Email, lead.EmailSubject, "sent")
	if err := uc.EmailLogs.Create(ctx, entry); err != nil {
		return nil, err
	}

	if uc.Producer != nil {
		payload := queue.OutboundEmailPayload{
			LeadID:    lead.LeadID,
			Recipient: lead.Email,
			Subject:   lead.EmailSubject,
			Body:      lead.EmailBody,
		}
		if err := uc.Producer.PublishOutbound(ctx, payload); err != nil {
			// Approved in the database but not handed off; an operator can
			// replay from the email log.
			log.Printf("CRITICAL: approved lead %s but outbox publish failed: %v", lead.LeadID, err)
		}
	}

	return uc.findLead(ctx, id)
}

func (uc *OutreachUseCase) EmailLogsForLead(ctx context.Context, id string) ([]*entity.EmailLog, error) {
	lead, err := uc.findLead(ctx, id)
	if err != nil {
		return nil, err
	}
	return uc.EmailLogs.ListByLead(ctx, lead.LeadID)
}

func (uc *OutreachUseCase) findLead(ctx context.Context, id string) (*entity.Lead, error) {
	lead, err := uc.Leads.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, entity.ErrLeadNotFound) {
			return nil, NewNotFound("Lead not found")
		}
		return nil, err
	}
	return lead, nil
}

// recordLeadActivity is best-effort: the transition already committed and
// stays valid even when the audit write fails.
func (uc *OutreachUseCase) recordLeadActivity(ctx context.Context, agentID, action, description string, lead *entity.Lead, metadata map[string]string) {
	if uc.Recorder == nil {
		return
	}

	var meta string
	if len(metadata) > 0 {
		if raw, err := json.Marshal(metadata); err == nil {
			meta = string(raw)
		}
	}

	_, err := uc.Recorder.Record(ctx, RecordActivityInput{
		AgentID:     agentID,
		LeadID:      lead.ID,
		Action:      action,
		Description: description,
		Metadata:    meta,
	})
	if err != nil {
		log.Printf("activity logging skipped: %v", err)
	}
}
