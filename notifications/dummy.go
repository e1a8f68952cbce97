package notifications

import (
	"sync"

	"github.com/silinternational/terra/log"
)

// DummyEmailService keeps sent messages in memory
type DummyEmailService struct {
	mutex   sync.Mutex
	sent    []dummyMessage
	sendErr error
}

var TestEmailService DummyEmailService

type dummyMessage struct {
	subject, body, fromName, fromEmail, toName, toEmail string
}

type DummyMessageInfo struct {
	Subject, ToName, ToEmail string
}

// SetSendError makes every following Send fail with err, until it is called again with nil
func (t *DummyEmailService) SetSendError(err error) {
	t.mutex.Lock()
	defer t.mutex.Unlock()
	t.sendErr = err
}

func (t *DummyEmailService) Send(msg Message) error {
	t.mutex.Lock()
	sendErr := t.sendErr
	t.mutex.Unlock()
	if sendErr != nil {
		return sendErr
	}

	body, err := msg.body()
	if err != nil {
		log.Error(err)
		return err
	}

	log.Debugf("dummy message subject: %s, recipient: %s", msg.Subject, msg.ToName)

	t.mutex.Lock()
	defer t.mutex.Unlock()
	t.sent = append(t.sent, dummyMessage{
		subject:   msg.Subject,
		body:      body,
		fromName:  msg.FromName,
		fromEmail: msg.FromEmail,
		toName:    msg.ToName,
		toEmail:   msg.ToEmail,
	})
	return nil
}

// GetNumberOfMessagesSent returns the number of messages sent since initialization or the last call to
// DeleteSentMessages
func (t *DummyEmailService) GetNumberOfMessagesSent() int {
	t.mutex.Lock()
	defer t.mutex.Unlock()
	return len(t.sent)
}

// DeleteSentMessages erases the store of sent messages
func (t *DummyEmailService) DeleteSentMessages() {
	t.mutex.Lock()
	defer t.mutex.Unlock()
	t.sent = nil
}

func (t *DummyEmailService) GetLastToEmail() string {
	t.mutex.Lock()
	defer t.mutex.Unlock()
	if len(t.sent) == 0 {
		return ""
	}
	return t.sent[len(t.sent)-1].toEmail
}

func (t *DummyEmailService) GetAllToAddresses() []string {
	t.mutex.Lock()
	defer t.mutex.Unlock()
	addresses := make([]string, len(t.sent))
	for i := range t.sent {
		addresses[i] = t.sent[i].toEmail
	}
	return addresses
}

func (t *DummyEmailService) GetLastBody() string {
	t.mutex.Lock()
	defer t.mutex.Unlock()
	if len(t.sent) == 0 {
		return ""
	}
	return t.sent[len(t.sent)-1].body
}

func (t *DummyEmailService) GetSentMessages() []DummyMessageInfo {
	t.mutex.Lock()
	defer t.mutex.Unlock()
	messages := make([]DummyMessageInfo, len(t.sent))
	for i, m := range t.sent {
		messages[i] = DummyMessageInfo{
			Subject: m.subject,
			ToName:  m.toName,
			ToEmail: m.toEmail,
		}
	}
	return messages
}
