package notifications

import (
	"github.com/silinternational/terra/domain"
)

const (
	EmailServiceSES   = "ses"
	EmailServiceDummy = "dummy"
)

// Notifier is an abstraction layer for multiple types of notifications
type Notifier interface {
	Send(msg Message) error
}

// EmailNotifier is an email notifier that conforms to the Notifier interface.
type EmailNotifier struct{}

// Send a notification using the email service named by domain.Env.EmailService
func (e *EmailNotifier) Send(msg Message) error {
	var emailService EmailService

	switch domain.Env.EmailService {
	case EmailServiceSES:
		emailService = &SES{}
	default:
		emailService = &TestEmailService
	}

	return emailService.Send(msg)
}
