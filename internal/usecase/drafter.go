package usecase

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"text/template"

	"github.com/partpeople/lead-portal/internal/entity"
)

// EmailDrafter composes the outreach draft for a lead. The default is a
// local template; swapping in an external drafting service does not touch
// the state machine.
type EmailDrafter interface {
	Draft(ctx context.Context, lead *entity.Lead) (subject, body string, err error)
}

const draftTemplate = `{{.Salutation}},

we had a look at your business and built a free demo website just for {{.Company}}.

<strong>Take a look at your demo:</strong>
<a href="{{.DemoURL}}">{{.DemoURL}}</a>

The page shows how your business could look online – modern, mobile-friendly and inviting for new customers.

If you like what you see, just get back to us. We look forward to hearing from you!

Best regards
{{.Sender}}

{{.Signature}}`

type TemplateDrafter struct {
	Sender    string
	Signature string
	tmpl      *template.Template
}

func NewTemplateDrafter(sender, signature string) *TemplateDrafter {
	if sender == "" {
		sender = "Jeanette"
	}
	if signature == "" {
		signature = "partpeople – websites for small businesses"
	}

	return &TemplateDrafter{
		Sender:    sender,
		Signature: signature,
		tmpl:      template.Must(template.New("draft").Parse(draftTemplate)),
	}
}

func (d *TemplateDrafter) Draft(ctx context.Context, lead *entity.Lead) (string, string, error) {
	subject := fmt.Sprintf("A demo website for %s", lead.Company)

	var body bytes.Buffer
	err := d.tmpl.Execute(&body, struct {
		Salutation string
		Company    string
		DemoURL    string
		Sender     string
		Signature  string
	}{
		Salutation: salutation(lead.ContactName),
		Company:    lead.Company,
		DemoURL:    lead.DemoURL,
		Sender:     d.Sender,
		Signature:  d.Signature,
	})
	if err != nil {
		return "", "", fmt.Errorf("failed to render draft template: %w", err)
	}

	return subject, body.String(), nil
}

// salutation addresses the contact by surname (last whitespace-delimited
// token) and falls back to a generic greeting.
func salutation(contactName string) string {
	fields := strings.Fields(contactName)
	if len(fields) == 0 {
		return "Good day"
	}
	return fmt.Sprintf("Hello, Mr./Ms. %s", fields[len(fields)-1])
}
