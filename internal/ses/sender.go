// Package ses delivers composed onboarding emails through Amazon SESv2.
package ses

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	sesv2Types "github.com/aws/aws-sdk-go-v2/service/sesv2/types"

	awsinternal "msp-onboarding-mailer/internal/aws"
	"msp-onboarding-mailer/internal/types"
)

// Sender sends rendered emails via SESv2
type Sender struct {
	client *sesv2.Client
	retry  awsinternal.RetryConfig
}

// NewSender creates a sender in the given region. When static
// credentials are configured they pin the sending identity; otherwise
// the default credential chain applies.
func NewSender(ctx context.Context, region string, creds *types.StaticCredentials) (*Sender, error) {
	options := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(region),
	}
	if creds != nil {
		options = append(options, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(creds.AccessKeyID, creds.SecretAccessKey, ""),
		))
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx, options...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS configuration: %w", err)
	}

	return &Sender{
		client: sesv2.NewFromConfig(cfg),
		retry:  awsinternal.DefaultRetryConfig(),
	}, nil
}

// Send delivers the rendered email from the sender address to the given
// recipients and returns the SES message ID
func (s *Sender) Send(ctx context.Context, email types.RenderedEmail, from string, to []string, cc []string) (string, error) {
	recipients := DedupRecipients(to)
	if len(recipients) == 0 {
		return "", fmt.Errorf("no recipients provided")
	}

	input := &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(from),
		Destination: &sesv2Types.Destination{
			ToAddresses: recipients,
			CcAddresses: DedupRecipients(cc),
		},
		Content: &sesv2Types.EmailContent{
			Simple: &sesv2Types.Message{
				Subject: &sesv2Types.Content{
					Data: aws.String(email.Subject),
				},
				Body: &sesv2Types.Body{
					Html: &sesv2Types.Content{
						Data: aws.String(email.HTML),
					},
					Text: &sesv2Types.Content{
						Data: aws.String(email.PlainText),
					},
				},
			},
		},
	}

	var messageID string
	err := awsinternal.RetryWithBackoff(ctx, func() error {
		result, err := s.client.SendEmail(ctx, input)
		if err != nil {
			return err
		}
		messageID = aws.ToString(result.MessageId)
		return nil
	}, s.retry)
	if err != nil {
		return "", fmt.Errorf("failed to send email: %w", err)
	}

	log.Printf("Email sent to %s (MessageId: %s)", strings.Join(recipients, ", "), messageID)
	return messageID, nil
}

// DedupRecipients removes duplicate and empty addresses while keeping order
func DedupRecipients(addresses []string) []string {
	seen := make(map[string]bool)
	var result []string
	for _, address := range addresses {
		address = strings.TrimSpace(address)
		key := strings.ToLower(address)
		if address != "" && !seen[key] {
			seen[key] = true
			result = append(result, address)
		}
	}
	return result
}
