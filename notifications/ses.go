package notifications

import (
	"fmt"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/ses"

	"github.com/silinternational/terra/domain"
	"github.com/silinternational/terra/log"
)

// SES sends email using Amazon Simple Email Service (SES)
type SES struct{}

// Send a message
func (s *SES) Send(msg Message) error {
	body, err := msg.body()
	if err != nil {
		return err
	}

	to := addressWithName(msg.ToName, msg.ToEmail)
	from := addressWithName(msg.FromName, msg.FromEmail)

	return SendRaw(from, rawEmail(to, from, msg.Subject, body))
}

func addressWithName(name, address string) string {
	if name == "" {
		return address
	}
	return fmt.Sprintf("%s <%s>", name, address)
}

// SendRaw sends a message using SES, given a pre-built raw byte stream
func SendRaw(from string, data []byte) error {
	svc, err := createSESService()
	if err != nil {
		return fmt.Errorf("SendRaw failed creating SES service, %w", err)
	}

	result, err := svc.SendRawEmail(&ses.SendRawEmailInput{
		RawMessage: &ses.RawMessage{Data: data},
		Source:     aws.String(from),
	})
	if err != nil {
		return fmt.Errorf("SendRaw failed using SES, %w", err)
	}

	log.Infof("message sent using SES, message ID: %s", aws.StringValue(result.MessageId))
	return nil
}

func createSESService() (*ses.SES, error) {
	sess, err := session.NewSession(&aws.Config{
		Credentials: credentials.NewStaticCredentials(domain.Env.AwsAccessKeyID, domain.Env.AwsSecretAccessKey, ""),
		Region:      aws.String(domain.Env.AwsRegion),
	})
	if err != nil {
		return nil, err
	}
	return ses.New(sess), nil
}
