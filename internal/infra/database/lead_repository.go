package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/partpeople/lead-portal/internal/entity"
)

type LeadRepository struct {
	DB *sql.DB
}

func NewLeadRepository(db *sql.DB) *LeadRepository {
	return &LeadRepository{DB: db}
}

const leadColumns = `
	id, lead_id, company, contact_name, address, email, phone, website_url,
	description, industry, source, source_url, priority, status, demo_url,
	email_subject, email_body, sent_at, created_at, updated_at
`

func (r *LeadRepository) Create(ctx context.Context, lead *entity.Lead) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	year := lead.CreatedAt.Year()
	seq, err := nextSequence(ctx, tx, "lead", year)
	if err != nil {
		return err
	}
	lead.LeadID = fmt.Sprintf("L-%d-%03d", year, seq)

	query := `
		INSERT INTO leads (
			id, lead_id, company, contact_name, address, email, phone,
			website_url, description, industry, source, source_url, priority,
			status, demo_url, email_subject, email_body, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)
	`

	_, err = tx.ExecContext(ctx, query,
		lead.ID,
		lead.LeadID,
		lead.Company,
		nullString(lead.ContactName),
		nullString(lead.Address),
		nullString(lead.Email),
		nullString(lead.Phone),
		nullString(lead.WebsiteURL),
		nullString(lead.Description),
		nullString(lead.Industry),
		nullString(lead.Source),
		nullString(lead.SourceURL),
		lead.Priority,
		lead.Status,
		nullString(lead.DemoURL),
		nullString(lead.EmailSubject),
		nullString(lead.EmailBody),
		lead.CreatedAt,
		lead.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create lead: %w", err)
	}

	return tx.Commit()
}

func (r *LeadRepository) FindByID(ctx context.Context, id string) (*entity.Lead, error) {
	query := `SELECT ` + leadColumns + ` FROM leads WHERE id = $1`

	lead, err := scanLead(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, entity.ErrLeadNotFound
		}
		return nil, err
	}

	return lead, nil
}

func (r *LeadRepository) List(ctx context.Context, opts entity.ListLeadsOptions) ([]*entity.Lead, error) {
	limit := opts.Limit
	if limit <= 0 {
		limit = 100
	}

	// Leads with an unread inbound reply sort before everyone else,
	// newest reply first; the rest fall back to updated_at.
	query := `
		SELECT ` + leadColumns + `,
			COALESCE(u.unread_count, 0) AS unread_count,
			u.last_reply_at
		FROM leads
		LEFT JOIN LATERAL (
			SELECT COUNT(*) AS unread_count, MAX(m.created_at) AS last_reply_at
			FROM lead_messages m
			WHERE m.lead_id = leads.id
			  AND m.direction = 'inbound'
			  AND m.status = 'received'
		) u ON TRUE
		WHERE ($1 = '' OR status = $1)
		ORDER BY (COALESCE(u.unread_count, 0) = 0),
			u.last_reply_at DESC NULLS LAST,
			updated_at DESC
		LIMIT $2
	`

	rows, err := r.DB.QueryContext(ctx, query, string(opts.Status), limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list leads: %w", err)
	}
	defer rows.Close()

	var leads []*entity.Lead
	for rows.Next() {
		lead, err := scanLeadWithUnread(rows)
		if err != nil {
			return nil, err
		}
		leads = append(leads, lead)
	}

	return leads, rows.Err()
}

// Update writes the data fields. Status is deliberately not part of this
// statement; status only moves through the conditional transitions below.
func (r *LeadRepository) Update(ctx context.Context, lead *entity.Lead) error {
	query := `
		UPDATE leads SET
			company = $2, contact_name = $3, address = $4, email = $5,
			phone = $6, website_url = $7, description = $8, industry = $9,
			source = $10, source_url = $11, priority = $12, demo_url = $13,
			email_subject = $14, email_body = $15, updated_at = NOW()
		WHERE id = $1
	`

	res, err := r.DB.ExecContext(ctx, query,
		lead.ID,
		lead.Company,
		nullString(lead.ContactName),
		nullString(lead.Address),
		nullString(lead.Email),
		nullString(lead.Phone),
		nullString(lead.WebsiteURL),
		nullString(lead.Description),
		nullString(lead.Industry),
		nullString(lead.Source),
		nullString(lead.SourceURL),
		lead.Priority,
		nullString(lead.DemoURL),
		nullString(lead.EmailSubject),
		nullString(lead.EmailBody),
	)
	if err != nil {
		return fmt.Errorf("failed to update lead: %w", err)
	}

	if n, _ := res.RowsAffected(); n == 0 {
		return entity.ErrLeadNotFound
	}

	return nil
}

func (r *LeadRepository) Delete(ctx context.Context, id string) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM lead_messages WHERE lead_id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete lead messages: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM activities WHERE lead_id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete lead activities: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM email_logs WHERE lead_id = (SELECT lead_id FROM leads WHERE id = $1)`, id); err != nil {
		return fmt.Errorf("failed to delete email logs: %w", err)
	}

	res, err := tx.ExecContext(ctx, `DELETE FROM leads WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete lead: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return entity.ErrLeadNotFound
	}

	return tx.Commit()
}

func (r *LeadRepository) CountByStatus(ctx context.Context) ([]entity.StatusCount, error) {
	rows, err := r.DB.QueryContext(ctx, `SELECT status, COUNT(*) FROM leads GROUP BY status`)
	if err != nil {
		return nil, fmt.Errorf("failed to count leads: %w", err)
	}
	defer rows.Close()

	var stats []entity.StatusCount
	for rows.Next() {
		var s entity.StatusCount
		if err := rows.Scan(&s.Status, &s.Count); err != nil {
			return nil, err
		}
		stats = append(stats, s)
	}

	return stats, rows.Err()
}

// The transition statements bundle the precondition check and the write
// into one conditional UPDATE, so two concurrent calls cannot both succeed.

func (r *LeadRepository) AdvanceToDemoReady(ctx context.Context, id, demoURL string) (bool, error) {
	query := `
		UPDATE leads SET demo_url = $2, status = $3, updated_at = NOW()
		WHERE id = $1 AND status = $4
	`
	return r.conditionalUpdate(ctx, query, id, demoURL, entity.LeadStatusDemoReady, entity.LeadStatusNew)
}

func (r *LeadRepository) AdvanceToEmailDraft(ctx context.Context, id, subject, body string) (bool, error) {
	query := `
		UPDATE leads SET email_subject = $2, email_body = $3, status = $4, updated_at = NOW()
		WHERE id = $1 AND status = $5
	`
	return r.conditionalUpdate(ctx, query, id, subject, body, entity.LeadStatusEmailDraft, entity.LeadStatusDemoReady)
}

func (r *LeadRepository) UpdateDraft(ctx context.Context, id, email, subject, body string) (bool, error) {
	query := `
		UPDATE leads SET email = $2, email_subject = $3, email_body = $4, updated_at = NOW()
		WHERE id = $1 AND status IN ($5, $6)
	`
	return r.conditionalUpdate(ctx, query, id, email, subject, body, entity.LeadStatusEmailDraft, entity.LeadStatusApproved)
}

func (r *LeadRepository) Approve(ctx context.Context, id string) (bool, error) {
	query := `
		UPDATE leads SET status = $2, sent_at = NOW(), updated_at = NOW()
		WHERE id = $1 AND status = $3
	`
	return r.conditionalUpdate(ctx, query, id, entity.LeadStatusApproved, entity.LeadStatusEmailDraft)
}

func (r *LeadRepository) conditionalUpdate(ctx context.Context, query string, args ...any) (bool, error) {
	res, err := r.DB.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("failed to update lead status: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanLeadFields(s rowScanner, lead *entity.Lead, extra ...any) error {
	var (
		contactName, address, email, phone, websiteURL   sql.NullString
		description, industry, source, sourceURL         sql.NullString
		demoURL, emailSubject, emailBody                 sql.NullString
		sentAt                                           sql.NullTime
	)

	dest := []any{
		&lead.ID, &lead.LeadID, &lead.Company, &contactName, &address,
		&email, &phone, &websiteURL, &description, &industry, &source,
		&sourceURL, &lead.Priority, &lead.Status, &demoURL, &emailSubject,
		&emailBody, &sentAt, &lead.CreatedAt, &lead.UpdatedAt,
	}
	dest = append(dest, extra...)

	if err := s.Scan(dest...); err != nil {
		return err
	}

	lead.ContactName = contactName.String
	lead.Address = address.String
	lead.Email = email.String
	lead.Phone = phone.String
	lead.WebsiteURL = websiteURL.String
	lead.Description = description.String
	lead.Industry = industry.String
	lead.Source = source.String
	lead.SourceURL = sourceURL.String
	lead.DemoURL = demoURL.String
	lead.EmailSubject = emailSubject.String
	lead.EmailBody = emailBody.String
	if sentAt.Valid {
		t := sentAt.Time
		lead.SentAt = &t
	}

	return nil
}

func scanLead(s rowScanner) (*entity.Lead, error) {
	var lead entity.Lead
	if err := scanLeadFields(s, &lead); err != nil {
		return nil, err
	}
	return &lead, nil
}

func scanLeadWithUnread(s rowScanner) (*entity.Lead, error) {
	var lead entity.Lead
	var lastReply sql.NullTime

	if err := scanLeadFields(s, &lead, &lead.UnreadCount, &lastReply); err != nil {
		return nil, err
	}
	if lastReply.Valid {
		t := lastReply.Time
		lead.LastReplyAt = &t
	}

	return &lead, nil
}

func nullString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
