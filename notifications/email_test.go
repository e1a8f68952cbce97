package notifications

import (
	"github.com/silinternational/terra/domain"
)

func (ts *TestSuite) TestSend() {
	nickname := "nickname"
	const body = "This is the message body."
	msg := Message{
		FromName:  "from name",
		FromEmail: domain.EmailFromAddress(&nickname),
		ToName:    "to name",
		ToEmail:   "to@example.com",
		Subject:   "subject",
		Body:      body,
	}
	var testService DummyEmailService
	var emailService EmailService = &testService

	ts.NoError(emailService.Send(msg), "error sending message")

	ts.Equal(1, testService.GetNumberOfMessagesSent(), "incorrect number of messages sent")
	ts.Equal(body, testService.GetLastBody())
	ts.Equal("to@example.com", testService.GetLastToEmail())

	testService.DeleteSentMessages()
	ts.Equal(0, testService.GetNumberOfMessagesSent())
}

func (ts *TestSuite) TestSend_RendersTemplate() {
	msg := NewEmailMessage()
	msg.ToEmail = "traveler@example.com"
	msg.Subject = "Trip approved"
	msg.Template = "approval_created"
	msg.Data["travelerFirstName"] = "Joshua"
	msg.Data["approverName"] = "Linus Lead"
	msg.Data["approvalType"] = "Supervisor"
	msg.Data["activityName"] = "Code4lib 2023"
	msg.Data["departureDate"] = "12 March 2023"
	msg.Data["amount"] = "$250.00"
	msg.Data["fundName"] = "1000-200-30"
	msg.Data["approved"] = true
	msg.Data["requestURL"] = domain.Env.UIURL + "/travel-requests/1"

	var testService DummyEmailService
	ts.NoError(testService.Send(msg))

	body := testService.GetLastBody()
	ts.Contains(body, "Hi Joshua")
	ts.Contains(body, "Code4lib 2023")
	ts.Contains(body, "$250.00 was allocated from fund 1000-200-30")
	ts.Contains(body, "every approval it needs")
	ts.Contains(body, domain.Env.AppName)
}

func (ts *TestSuite) TestSend_MissingTemplate() {
	msg := NewEmailMessage()
	msg.Template = "no_such_template"

	var testService DummyEmailService
	ts.Error(testService.Send(msg))
	ts.Equal(0, testService.GetNumberOfMessagesSent())
}

func (ts *TestSuite) TestRawEmail() {
	raw := string(rawEmail(
		"to@example.com",
		domain.Env.EmailFromAddress,
		"test subject",
		`<h4>body</h4><p>End of <a href="https://example.com">body</a></p>`))

	ts.Contains(raw, "To: to@example.com\n")
	ts.Contains(raw, "Subject: test subject\n")
	ts.Contains(raw, "Content-Type: text/plain; charset=utf-8")
	ts.Contains(raw, "Content-Type: text/html; charset=utf-8")
	ts.Contains(raw, "<h4>body</h4>")
	ts.Contains(raw, "https://example.com")
}

func (ts *TestSuite) TestAddressWithName() {
	ts.Equal("a@example.com", addressWithName("", "a@example.com"))
	ts.Equal("Ann <a@example.com>", addressWithName("Ann", "a@example.com"))
}
