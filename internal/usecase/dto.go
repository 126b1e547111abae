package usecase

import "github.com/partpeople/lead-portal/internal/entity"

type CreateLeadInput struct {
	Company     string `json:"company"`
	ContactName string `json:"contact_name"`
	Address     string `json:"address"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	WebsiteURL  string `json:"website_url"`
	Description string `json:"description"`
	Industry    string `json:"industry"`
	Source      string `json:"source"`
	SourceURL   string `json:"source_url"`
	Priority    string `json:"priority"`
	// Rejected when set; status only moves through guarded transitions.
	Status string `json:"status"`
}

// UpdateLeadInput uses pointers so absent fields stay untouched.
type UpdateLeadInput struct {
	Company      *string `json:"company"`
	ContactName  *string `json:"contact_name"`
	Address      *string `json:"address"`
	Email        *string `json:"email"`
	Phone        *string `json:"phone"`
	WebsiteURL   *string `json:"website_url"`
	Description  *string `json:"description"`
	Industry     *string `json:"industry"`
	Source       *string `json:"source"`
	SourceURL    *string `json:"source_url"`
	Priority     *string `json:"priority"`
	DemoURL      *string `json:"demo_url"`
	EmailSubject *string `json:"email_subject"`
	EmailBody    *string `json:"email_body"`
	Status       *string `json:"status"`
}

type EditDraftInput struct {
	Email        *string `json:"email"`
	EmailSubject *string `json:"email_subject"`
	EmailBody    *string `json:"email_body"`
}

type CreateMessageInput struct {
	Direction string `json:"direction"`
	From      string `json:"from"`
	To        string `json:"to"`
	Subject   string `json:"subject"`
	Body      string `json:"body"`
}

type EditMessageInput struct {
	Subject *string `json:"subject"`
	Body    *string `json:"body"`
}

type PipelineOutput struct {
	Leads []*entity.Lead       `json:"leads"`
	Stats []entity.StatusCount `json:"stats"`
}

type CreateAgentInput struct {
	AgentID string `json:"agent_id"`
	Name    string `json:"name"`
	Model   string `json:"model"`
	Status  string `json:"status"`
}

type UpdateAgentInput struct {
	Name        *string `json:"name"`
	Model       *string `json:"model"`
	Status      *string `json:"status"`
	CurrentTask *string `json:"current_task"`
}

type CreateTaskInput struct {
	AgentID     string `json:"agent_id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Priority    string `json:"priority"`
}

type UpdateTaskInput struct {
	Status string  `json:"status"`
	Result *string `json:"result"`
}

type RecordActivityInput struct {
	AgentID     string `json:"agent_id"`
	LeadID      string `json:"lead_id"`
	Action      string `json:"action"`
	Description string `json:"description"`
	Metadata    string `json:"metadata"`
}

type CreateApiKeyInput struct {
	Name    string `json:"name"`
	Service string `json:"service"`
	Key     string `json:"key"`
}

type UpdateApiKeyInput struct {
	Name    string `json:"name"`
	Service string `json:"service"`
	Key     string `json:"key"` // optional; empty keeps the stored envelope
}
