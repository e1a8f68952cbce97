package notifications

import (
	"bytes"
	"fmt"

	"github.com/silinternational/terra/domain"
)

type Message struct {
	Template  string
	Data      map[string]any
	FromName  string
	FromEmail string
	ToName    string
	ToEmail   string
	Subject   string

	// Body is the rendered HTML. If empty, Template is rendered with Data.
	Body string
}

// NewEmailMessage returns a message with the FromEmail, the Data.appName and Data.uiURL already set
func NewEmailMessage() Message {
	return Message{
		FromEmail: domain.EmailFromAddress(nil),
		Data: map[string]any{
			"appName":      domain.Env.AppName,
			"uiURL":        domain.Env.UIURL,
			"supportEmail": domain.Env.SupportEmail,
		},
	}
}

// body returns the message body, rendering the template if needed
func (m Message) body() (string, error) {
	if m.Body != "" {
		return m.Body, nil
	}

	data := map[string]any{
		"appName":      domain.Env.AppName,
		"uiURL":        domain.Env.UIURL,
		"supportEmail": domain.Env.SupportEmail,
	}
	for k, v := range m.Data {
		data[k] = v
	}

	buf := &bytes.Buffer{}
	if err := EmailRenderer.HTML(TemplatePath(m.Template)).Render(buf, data); err != nil {
		return "", fmt.Errorf("error rendering message body: %w", err)
	}
	return buf.String(), nil
}
