package mail

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildRawHTML(t *testing.T) {
	m := To("user@example.com").
		Subject("Password Reset Request").
		Body("<h1>Hello</h1>")

	raw := string(m.buildRaw("FreshMart <no-reply@freshmart-supermarket.com>"))

	assert.Contains(t, raw, "To: user@example.com\r\n")
	assert.Contains(t, raw, "Subject: Password Reset Request\r\n")
	assert.Contains(t, raw, `Content-Type: text/html; charset="UTF-8"`)
	assert.True(t, strings.HasSuffix(raw, "\r\n<h1>Hello</h1>"))
}

func TestBuildRawText(t *testing.T) {
	m := To("a@example.com", "b@example.com").
		Subject("Hi").
		Text("plain body")

	raw := string(m.buildRaw("FreshMart <no-reply@freshmart-supermarket.com>"))

	assert.Contains(t, raw, "To: a@example.com, b@example.com\r\n")
	assert.Contains(t, raw, `Content-Type: text/plain; charset="UTF-8"`)
}

func TestSendRequiresCredentials(t *testing.T) {
	err := To("user@example.com").
		Subject("Hi").
		Body("x").
		UseConfig(SMTP{}).
		Send()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "MAIL_USERNAME")
}
