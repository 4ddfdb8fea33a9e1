package notify

import (
	"context"
	"fmt"

	"entrepreneurawards/pkg/types"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	sestypes "github.com/aws/aws-sdk-go-v2/service/sesv2/types"
)

type sesAPI interface {
	SendEmail(ctx context.Context, params *sesv2.SendEmailInput, optFns ...func(*sesv2.Options)) (*sesv2.SendEmailOutput, error)
}

// SESSender emails the administrator through Amazon SES.
type SESSender struct {
	client        sesAPI
	from          string
	adminEmail    string
	publicBaseURL string
}

func NewSESSender(client sesAPI, from, adminEmail, publicBaseURL string) *SESSender {
	return &SESSender{
		client:        client,
		from:          from,
		adminEmail:    adminEmail,
		publicBaseURL: publicBaseURL,
	}
}

func (s *SESSender) NotifyNomination(ctx context.Context, nomination types.NominationForm) error {
	if s.adminEmail == "" {
		return fmt.Errorf("admin email not configured")
	}

	email, err := RenderNominationEmail(nomination, s.publicBaseURL)
	if err != nil {
		return err
	}

	_, err = s.client.SendEmail(ctx, &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(s.from),
		Destination: &sestypes.Destination{
			ToAddresses: []string{s.adminEmail},
		},
		Content: &sestypes.EmailContent{
			Simple: &sestypes.Message{
				Subject: &sestypes.Content{Data: aws.String(email.Subject), Charset: aws.String("UTF-8")},
				Body: &sestypes.Body{
					Html: &sestypes.Content{Data: aws.String(email.HTML), Charset: aws.String("UTF-8")},
					Text: &sestypes.Content{Data: aws.String(email.Text), Charset: aws.String("UTF-8")},
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to send nomination email: %w", err)
	}

	return nil
}
