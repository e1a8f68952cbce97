package notifications

import (
	"github.com/gobuffalo/buffalo/render"

	"github.com/silinternational/terra/templates"
)

// Mail templates, under templates/mail
const (
	TemplateApprovalCreated = "approval_created"
	TemplateRequestClosed   = "request_closed"
)

// Templates lists every mail template a travel request can send
var Templates = []string{TemplateApprovalCreated, TemplateRequestClosed}

var EmailRenderer = render.New(render.Options{
	HTMLLayout:  "mail/layout.plush.html",
	TemplatesFS: templates.FS(),
	Helpers:     render.Helpers{},
})

type EmailService interface {
	Send(msg Message) error
}

// TemplatePath returns the file name of a mail template
func TemplatePath(name string) string {
	return "mail/" + name + ".plush.html"
}
