package messages

import (
	"bytes"
	"fmt"

	"github.com/gobuffalo/buffalo/render"
	"github.com/gobuffalo/pop/v6"
	"github.com/gofrs/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/silinternational/terra/domain"
	"github.com/silinternational/terra/log"
	"github.com/silinternational/terra/models"
	"github.com/silinternational/terra/notifications"
)

// Notification events
const (
	EventApprovalCreated = "Approval Created Notification"
	EventRequestClosed   = "Travel Request Closed Notification"
)

// MaxSendAttempts limits how many times ResendUnsent retries a notification
const MaxSendAttempts = 3

// maximum number of messages sent at the same time
const sendConcurrency = 4

type MessageData map[string]any

func newEmailMessageData() MessageData {
	return MessageData{
		"appName":      domain.Env.AppName,
		"uiURL":        domain.Env.UIURL,
		"supportEmail": domain.Env.SupportEmail,
	}
}

func (m MessageData) renderHTML(template string) (string, error) {
	buf := &bytes.Buffer{}
	if err := notifications.EmailRenderer.HTML(notifications.TemplatePath(template)).Render(buf, render.Data(m)); err != nil {
		return "", fmt.Errorf("error rendering %s message: %w", template, err)
	}
	return buf.String(), nil
}

// copy returns a shallow copy so that per-recipient values don't leak between messages
func (m MessageData) copy() MessageData {
	c := make(MessageData, len(m))
	for k, v := range m {
		c[k] = v
	}
	return c
}

func (m MessageData) addTravelRequestData(tx *pop.Connection, t *models.TravelRequest) {
	t.LoadTraveler(tx, false)
	t.LoadActivity(tx, false)

	m["travelerName"] = t.Traveler.Name()
	m["travelerFirstName"] = t.Traveler.User.FirstName
	m["activityName"] = t.Activity.Name
	m["departureDate"] = t.DepartureDate.Format(domain.LocalizedDate)
	m["returnDate"] = t.ReturnDate.Format(domain.LocalizedDate)
	m["requestURL"] = fmt.Sprintf("%s/%s/%s", domain.Env.UIURL, domain.TypeTravelRequest, t.ID)
}

// deliver stores the notifications, sends them concurrently, and records each attempt. A failed send is
// logged and leaves the notification unsent for ResendUnsent. Only storage errors are returned.
func deliver(tx *pop.Connection, notns models.Notifications) error {
	for i := range notns {
		if notns[i].ID == uuid.Nil {
			if err := notns[i].Create(tx); err != nil {
				return err
			}
		}
	}

	sent := make([]bool, len(notns))

	var g errgroup.Group
	g.SetLimit(sendConcurrency)
	for i := range notns {
		i := i
		n := notns[i]
		g.Go(func() error {
			msg := notifications.NewEmailMessage()
			msg.ToName = n.ToName
			msg.ToEmail = n.ToEmail
			msg.Subject = n.Subject
			msg.Body = n.Body
			if err := notifications.Send(msg); err != nil {
				log.WithFields(map[string]any{
					"notification_id": n.ID,
					"event":           n.Event,
					"attempt":         n.SendAttempts + 1,
				}).Errorf("notification not sent: %s", err)
				return nil
			}
			sent[i] = true
			return nil
		})
	}
	_ = g.Wait()

	for i := range notns {
		if err := notns[i].RecordAttempt(tx, sent[i]); err != nil {
			return err
		}
	}
	return nil
}

// ResendUnsent retries notifications that failed to send, up to MaxSendAttempts each. It returns the number
// sent on this pass.
func ResendUnsent(tx *pop.Connection) (int, error) {
	var notns models.Notifications
	if err := notns.FindUnsent(tx, MaxSendAttempts); err != nil {
		return 0, err
	}
	if len(notns) == 0 {
		return 0, nil
	}

	if err := deliver(tx, notns); err != nil {
		return 0, err
	}

	sent := 0
	for _, n := range notns {
		if n.SentAtUTC.Valid {
			sent++
		}
	}
	if sent < len(notns) {
		log.Warningf("resent %d of %d notifications", sent, len(notns))
	}
	return sent, nil
}
