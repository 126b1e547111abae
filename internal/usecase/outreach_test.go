package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/partpeople/lead-portal/internal/entity"
	"github.com/partpeople/lead-portal/internal/infra/queue"
)

func newLead(status entity.LeadStatus) *entity.Lead {
	lead, _ := entity.NewLead("Müller & Söhne GmbH")
	lead.LeadID = "L-2026-001"
	lead.ContactName = "Hans Müller"
	lead.Email = "info@mueller-soehne.example"
	lead.Status = status
	if status != entity.LeadStatusNew {
		lead.DemoURL = "https://demos.partpeople.dev/mueller-soehne-gmbh.html"
	}
	if status == entity.LeadStatusEmailDraft || status == entity.LeadStatusApproved {
		lead.EmailSubject = "A demo website for Müller & Söhne GmbH"
		lead.EmailBody = "Hello, Mr./Ms. Müller, ..."
	}
	return lead
}

func TestCreateLead(t *testing.T) {
	t.Run("Rejects Direct Status", func(t *testing.T) {
		uc := NewOutreachUseCase(new(MockLeadRepository), new(MockEmailLogRepository), nil, nil, nil, "")

		_, err := uc.CreateLead(context.Background(), CreateLeadInput{
			Company: "ACME",
			Status:  "SENT",
		})

		var domainErr *DomainError
		assert.ErrorAs(t, err, &domainErr)
		assert.Equal(t, CodeValidation, domainErr.Code)
		assert.Contains(t, domainErr.Message, "status")
	})

	t.Run("Requires Company", func(t *testing.T) {
		uc := NewOutreachUseCase(new(MockLeadRepository), new(MockEmailLogRepository), nil, nil, nil, "")

		_, err := uc.CreateLead(context.Background(), CreateLeadInput{})

		var domainErr *DomainError
		assert.ErrorAs(t, err, &domainErr)
		assert.Equal(t, CodeValidation, domainErr.Code)
	})

	t.Run("New Leads Start As NEW", func(t *testing.T) {
		leadRepo := new(MockLeadRepository)
		leadRepo.On("Create", mock.Anything, mock.MatchedBy(func(l *entity.Lead) bool {
			return l.Status == entity.LeadStatusNew && l.Company == "ACME"
		})).Return(nil)

		uc := NewOutreachUseCase(leadRepo, new(MockEmailLogRepository), nil, nil, nil, "")

		lead, err := uc.CreateLead(context.Background(), CreateLeadInput{Company: "ACME"})

		assert.NoError(t, err)
		assert.Equal(t, entity.LeadStatusNew, lead.Status)
		leadRepo.AssertExpectations(t)
	})
}

func TestCreateDemo(t *testing.T) {
	t.Run("Advances NEW To DEMO_READY", func(t *testing.T) {
		lead := newLead(entity.LeadStatusNew)
		advanced := newLead(entity.LeadStatusDemoReady)

		leadRepo := new(MockLeadRepository)
		leadRepo.On("FindByID", mock.Anything, lead.ID).Return(lead, nil).Once()
		leadRepo.On("AdvanceToDemoReady", mock.Anything, lead.ID,
			"https://demos.partpeople.dev/mueller-soehne-gmbh.html").Return(true, nil)
		leadRepo.On("FindByID", mock.Anything, lead.ID).Return(advanced, nil)

		uc := NewOutreachUseCase(leadRepo, new(MockEmailLogRepository), nil, nil, nil, "")

		got, err := uc.CreateDemo(context.Background(), lead.ID)

		assert.NoError(t, err)
		assert.Equal(t, entity.LeadStatusDemoReady, got.Status)
		leadRepo.AssertExpectations(t)
	})

	t.Run("Rejects Wrong Source Status", func(t *testing.T) {
		lead := newLead(entity.LeadStatusEmailDraft)

		leadRepo := new(MockLeadRepository)
		leadRepo.On("FindByID", mock.Anything, lead.ID).Return(lead, nil)

		uc := NewOutreachUseCase(leadRepo, new(MockEmailLogRepository), nil, nil, nil, "")

		_, err := uc.CreateDemo(context.Background(), lead.ID)

		var domainErr *DomainError
		assert.ErrorAs(t, err, &domainErr)
		assert.Equal(t, CodeInvalidTransition, domainErr.Code)
		leadRepo.AssertNotCalled(t, "AdvanceToDemoReady", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Lost Race Is An Invalid Transition", func(t *testing.T) {
		lead := newLead(entity.LeadStatusNew)

		leadRepo := new(MockLeadRepository)
		leadRepo.On("FindByID", mock.Anything, lead.ID).Return(lead, nil)
		leadRepo.On("AdvanceToDemoReady", mock.Anything, lead.ID, mock.Anything).Return(false, nil)

		uc := NewOutreachUseCase(leadRepo, new(MockEmailLogRepository), nil, nil, nil, "")

		_, err := uc.CreateDemo(context.Background(), lead.ID)

		var domainErr *DomainError
		assert.ErrorAs(t, err, &domainErr)
		assert.Equal(t, CodeInvalidTransition, domainErr.Code)
	})

	t.Run("Unknown Lead", func(t *testing.T) {
		leadRepo := new(MockLeadRepository)
		leadRepo.On("FindByID", mock.Anything, "missing").Return(nil, entity.ErrLeadNotFound)

		uc := NewOutreachUseCase(leadRepo, new(MockEmailLogRepository), nil, nil, nil, "")

		_, err := uc.CreateDemo(context.Background(), "missing")

		var domainErr *DomainError
		assert.ErrorAs(t, err, &domainErr)
		assert.Equal(t, CodeNotFound, domainErr.Code)
	})
}

func TestGenerateEmailDraft(t *testing.T) {
	t.Run("Composes Draft And Advances", func(t *testing.T) {
		lead := newLead(entity.LeadStatusDemoReady)
		drafted := newLead(entity.LeadStatusEmailDraft)

		leadRepo := new(MockLeadRepository)
		leadRepo.On("FindByID", mock.Anything, lead.ID).Return(lead, nil).Once()
		leadRepo.On("AdvanceToEmailDraft", mock.Anything, lead.ID,
			"A demo website for Müller & Söhne GmbH", mock.Anything).Return(true, nil)
		leadRepo.On("FindByID", mock.Anything, lead.ID).Return(drafted, nil)

		uc := NewOutreachUseCase(leadRepo, new(MockEmailLogRepository),
			NewTemplateDrafter("", ""), nil, nil, "")

		got, err := uc.GenerateEmailDraft(context.Background(), lead.ID)

		assert.NoError(t, err)
		assert.Equal(t, entity.LeadStatusEmailDraft, got.Status)
		leadRepo.AssertExpectations(t)
	})

	t.Run("Rejects NEW Leads Without Touching Them", func(t *testing.T) {
		lead := newLead(entity.LeadStatusNew)

		leadRepo := new(MockLeadRepository)
		leadRepo.On("FindByID", mock.Anything, lead.ID).Return(lead, nil)

		uc := NewOutreachUseCase(leadRepo, new(MockEmailLogRepository),
			NewTemplateDrafter("", ""), nil, nil, "")

		_, err := uc.GenerateEmailDraft(context.Background(), lead.ID)

		var domainErr *DomainError
		assert.ErrorAs(t, err, &domainErr)
		assert.Equal(t, CodeInvalidTransition, domainErr.Code)
		leadRepo.AssertNotCalled(t, "AdvanceToEmailDraft",
			mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestEditDraft(t *testing.T) {
	newEmail := "other@example.com"
	newSubject := "Changed subject"

	t.Run("Merges Only Provided Fields", func(t *testing.T) {
		lead := newLead(entity.LeadStatusEmailDraft)

		leadRepo := new(MockLeadRepository)
		leadRepo.On("FindByID", mock.Anything, lead.ID).Return(lead, nil)
		// Body not in the input, so the stored body must be passed through.
		leadRepo.On("UpdateDraft", mock.Anything, lead.ID, newEmail, newSubject, lead.EmailBody).
			Return(true, nil)

		uc := NewOutreachUseCase(leadRepo, new(MockEmailLogRepository), nil, nil, nil, "")

		_, err := uc.EditDraft(context.Background(), lead.ID, EditDraftInput{
			Email:        &newEmail,
			EmailSubject: &newSubject,
		})

		assert.NoError(t, err)
		leadRepo.AssertExpectations(t)
	})

	t.Run("Allowed While APPROVED", func(t *testing.T) {
		lead := newLead(entity.LeadStatusApproved)

		leadRepo := new(MockLeadRepository)
		leadRepo.On("FindByID", mock.Anything, lead.ID).Return(lead, nil)
		leadRepo.On("UpdateDraft", mock.Anything, lead.ID, lead.Email, newSubject, lead.EmailBody).
			Return(true, nil)

		uc := NewOutreachUseCase(leadRepo, new(MockEmailLogRepository), nil, nil, nil, "")

		_, err := uc.EditDraft(context.Background(), lead.ID, EditDraftInput{EmailSubject: &newSubject})

		assert.NoError(t, err)
	})

	t.Run("Rejected After SENT", func(t *testing.T) {
		lead := newLead(entity.LeadStatusSent)

		leadRepo := new(MockLeadRepository)
		leadRepo.On("FindByID", mock.Anything, lead.ID).Return(lead, nil)

		uc := NewOutreachUseCase(leadRepo, new(MockEmailLogRepository), nil, nil, nil, "")

		_, err := uc.EditDraft(context.Background(), lead.ID, EditDraftInput{EmailSubject: &newSubject})

		var domainErr *DomainError
		assert.ErrorAs(t, err, &domainErr)
		assert.Equal(t, CodeInvalidTransition, domainErr.Code)
	})
}

func TestApproveAndSend(t *testing.T) {
	t.Run("Approves Logs And Publishes", func(t *testing.T) {
		lead := newLead(entity.LeadStatusEmailDraft)
		approved := newLead(entity.LeadStatusApproved)

		leadRepo := new(MockLeadRepository)
		leadRepo.On("FindByID", mock.Anything, lead.ID).Return(lead, nil).Once()
		leadRepo.On("Approve", mock.Anything, lead.ID).Return(true, nil)
		leadRepo.On("FindByID", mock.Anything, lead.ID).Return(approved, nil)

		logRepo := new(MockEmailLogRepository)
		logRepo.On("Create", mock.Anything, mock.MatchedBy(func(e *entity.EmailLog) bool {
			return e.LeadID == "L-2026-001" && e.Direction == "out" && e.Status == "sent"
		})).Return(nil)

		producer := new(MockOutboxProducer)
		producer.On("PublishOutbound", mock.Anything, queue.OutboundEmailPayload{
			LeadID:    lead.LeadID,
			Recipient: lead.Email,
			Subject:   lead.EmailSubject,
			Body:      lead.EmailBody,
		}).Return(nil)

		uc := NewOutreachUseCase(leadRepo, logRepo, nil, nil, producer, "")

		got, err := uc.ApproveAndSend(context.Background(), lead.ID)

		assert.NoError(t, err)
		assert.Equal(t, entity.LeadStatusApproved, got.Status)
		logRepo.AssertExpectations(t)
		producer.AssertExpectations(t)
	})

	t.Run("Requires Complete Draft", func(t *testing.T) {
		lead := newLead(entity.LeadStatusEmailDraft)
		lead.Email = ""

		leadRepo := new(MockLeadRepository)
		leadRepo.On("FindByID", mock.Anything, lead.ID).Return(lead, nil)

		uc := NewOutreachUseCase(leadRepo, new(MockEmailLogRepository), nil, nil, nil, "")

		_, err := uc.ApproveAndSend(context.Background(), lead.ID)

		var domainErr *DomainError
		assert.ErrorAs(t, err, &domainErr)
		assert.Equal(t, CodeValidation, domainErr.Code)
	})

	t.Run("Second Approval Loses The Conditional Update", func(t *testing.T) {
		lead := newLead(entity.LeadStatusEmailDraft)

		leadRepo := new(MockLeadRepository)
		leadRepo.On("FindByID", mock.Anything, lead.ID).Return(lead, nil)
		leadRepo.On("Approve", mock.Anything, lead.ID).Return(false, nil)

		logRepo := new(MockEmailLogRepository)

		uc := NewOutreachUseCase(leadRepo, logRepo, nil, nil, nil, "")

		_, err := uc.ApproveAndSend(context.Background(), lead.ID)

		var domainErr *DomainError
		assert.ErrorAs(t, err, &domainErr)
		assert.Equal(t, CodeInvalidTransition, domainErr.Code)
		logRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Publish Failure Does Not Fail The Approval", func(t *testing.T) {
		lead := newLead(entity.LeadStatusEmailDraft)
		approved := newLead(entity.LeadStatusApproved)

		leadRepo := new(MockLeadRepository)
		leadRepo.On("FindByID", mock.Anything, lead.ID).Return(lead, nil).Once()
		leadRepo.On("Approve", mock.Anything, lead.ID).Return(true, nil)
		leadRepo.On("FindByID", mock.Anything, lead.ID).Return(approved, nil)

		logRepo := new(MockEmailLogRepository)
		logRepo.On("Create", mock.Anything, mock.Anything).Return(nil)

		producer := new(MockOutboxProducer)
		producer.On("PublishOutbound", mock.Anything, mock.Anything).
			Return(assert.AnError)

		uc := NewOutreachUseCase(leadRepo, logRepo, nil, nil, producer, "")

		got, err := uc.ApproveAndSend(context.Background(), lead.ID)

		assert.NoError(t, err)
		assert.Equal(t, entity.LeadStatusApproved, got.Status)
	})
}

func TestUpdateLeadNeverTouchesStatus(t *testing.T) {
	status := "SENT"

	uc := NewOutreachUseCase(new(MockLeadRepository), new(MockEmailLogRepository), nil, nil, nil, "")

	_, err := uc.UpdateLead(context.Background(), "some-id", UpdateLeadInput{Status: &status})

	var domainErr *DomainError
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, CodeValidation, domainErr.Code)
}

func TestTemplateDrafterSalutation(t *testing.T) {
	drafter := NewTemplateDrafter("Jeanette", "partpeople")

	t.Run("Addresses The Surname", func(t *testing.T) {
		lead := newLead(entity.LeadStatusDemoReady)
		lead.ContactName = "Hans Peter Müller"

		_, body, err := drafter.Draft(context.Background(), lead)

		assert.NoError(t, err)
		assert.Contains(t, body, "Hello, Mr./Ms. Müller")
		assert.Contains(t, body, lead.DemoURL)
	})

	t.Run("Generic Greeting Without Contact", func(t *testing.T) {
		lead := newLead(entity.LeadStatusDemoReady)
		lead.ContactName = ""

		subject, body, err := drafter.Draft(context.Background(), lead)

		assert.NoError(t, err)
		assert.Equal(t, "A demo website for Müller & Söhne GmbH", subject)
		assert.Contains(t, body, "Good day")
	})
}
