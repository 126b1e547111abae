package queue

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

// The external send channel and reply collector match on these JSON keys;
// renaming a field breaks the contract silently.
func TestOutboundEmailPayloadKeys(t *testing.T) {
	body, err := json.Marshal(OutboundEmailPayload{
		LeadID:    "L-2026-001",
		Recipient: "info@acme.example",
		Subject:   "A demo website for ACME",
		Body:      "Hello",
	})
	assert.NoError(t, err)

	var data map[string]interface{}
	assert.NoError(t, json.Unmarshal(body, &data))

	for _, field := range []string{"lead_id", "recipient", "subject", "body"} {
		assert.Contains(t, data, field)
	}
	assert.Equal(t, "L-2026-001", data["lead_id"])
}

func TestReplyPayloadKeys(t *testing.T) {
	raw := []byte(`{"lead_id":"abc","from":"a@b.c","to":"d@e.f","subject":"Re: hi","body":"answer"}`)

	var payload ReplyPayload
	assert.NoError(t, json.Unmarshal(raw, &payload))
	assert.Equal(t, "abc", payload.LeadID)
	assert.Equal(t, "a@b.c", payload.From)
	assert.Equal(t, "answer", payload.Body)
}
