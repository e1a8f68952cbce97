package notifications

import (
	"fmt"

	"github.com/silinternational/terra/log"
)

// notifiers receive every message. The email notifier picks its service from domain.Env.EmailService.
var notifiers = []Notifier{&EmailNotifier{}}

// Send passes the message to each notifier and stops at the first failure
func Send(msg Message) error {
	for _, n := range notifiers {
		if err := n.Send(msg); err != nil {
			return fmt.Errorf("%T failed to send '%s' to %s: %w", n, msg.Subject, msg.ToEmail, err)
		}
		log.WithFields(map[string]any{
			"notifier": fmt.Sprintf("%T", n),
			"subject":  msg.Subject,
			"to":       msg.ToEmail,
		}).Info("message sent")
	}

	return nil
}
