// Package lambda runs the mailer in Lambda mode: an onboarding request
// uploaded to S3 triggers compose and delivery.
package lambda

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/url"
	"os"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"msp-onboarding-mailer/internal/compose"
	"msp-onboarding-mailer/internal/config"
	"msp-onboarding-mailer/internal/i18n"
	"msp-onboarding-mailer/internal/ses"
	"msp-onboarding-mailer/internal/tiers"
	"msp-onboarding-mailer/internal/types"
)

// StartLambdaMode begins processing Lambda events
func StartLambdaMode() {
	lambda.Start(Handler)
}

// Handler processes S3 object-created events carrying generation
// request JSON documents
func Handler(ctx context.Context, s3Event events.S3Event) error {
	log.Printf("Received %d S3 records", len(s3Event.Records))

	configFile := os.Getenv("CONFIG_FILE")
	if configFile == "" {
		configFile = "config.json"
	}

	cfg, err := config.LoadConfig(configFile)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if err := config.ValidateConfig(cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.AWSRegion))
	if err != nil {
		return fmt.Errorf("failed to load AWS configuration: %w", err)
	}
	s3Client := s3.NewFromConfig(awsCfg)

	sender, err := ses.NewSender(ctx, cfg.AWSRegion, cfg.Credentials)
	if err != nil {
		return fmt.Errorf("failed to create SES sender: %w", err)
	}

	composer := compose.NewComposer(tiers.DefaultCatalog(), i18n.MustNewBundle())

	var failed []error
	for i, record := range s3Event.Records {
		log.Printf("Processing record %d/%d: s3://%s/%s",
			i+1, len(s3Event.Records), record.S3.Bucket.Name, record.S3.Object.Key)

		if err := processRecord(ctx, record, cfg, s3Client, composer, sender); err != nil {
			log.Printf("Failed to process s3://%s/%s: %v", record.S3.Bucket.Name, record.S3.Object.Key, err)
			failed = append(failed, err)
		}
	}

	if len(failed) > 0 {
		return fmt.Errorf("failed to process %d of %d records: %v", len(failed), len(s3Event.Records), failed[0])
	}
	return nil
}

// processRecord downloads one request document, composes the email and
// sends it to the recipient
func processRecord(ctx context.Context, record events.S3EventRecord, cfg *types.Config, s3Client *s3.Client, composer *compose.Composer, sender *ses.Sender) error {
	req, err := fetchRequest(ctx, s3Client, record.S3.Bucket.Name, record.S3.Object.Key)
	if err != nil {
		return err
	}

	config.ApplyRequestDefaults(req, cfg)
	if req.RequestID == "" {
		req.RequestID = uuid.NewString()
	}
	if req.RecipientEmail == "" {
		return fmt.Errorf("request %s has no recipient email", req.RequestID)
	}

	result := composer.Compose(*req)
	for _, warning := range result.Warnings {
		log.Printf("Request %s warning [%s]: %s", req.RequestID, warning.Code, warning.Detail)
	}

	messageID, err := sender.Send(ctx, result.Email, req.SenderEmail, []string{req.RecipientEmail}, nil)
	if err != nil {
		return fmt.Errorf("failed to deliver request %s: %w", req.RequestID, err)
	}

	log.Printf("Request %s delivered (MessageId: %s)", req.RequestID, messageID)
	return nil
}

// fetchRequest downloads and decodes a generation request from S3
func fetchRequest(ctx context.Context, s3Client *s3.Client, bucket string, key string) (*types.GenerationRequest, error) {
	// Object keys arrive URL-encoded in S3 event notifications
	decodedKey, err := url.QueryUnescape(key)
	if err != nil {
		decodedKey = key
	}

	output, err := s3Client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(decodedKey),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get object s3://%s/%s: %w", bucket, decodedKey, err)
	}
	defer output.Body.Close()

	data, err := io.ReadAll(output.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read object body: %w", err)
	}

	return ParseRequest(data)
}

// ParseRequest decodes a generation request JSON document
func ParseRequest(data []byte) (*types.GenerationRequest, error) {
	var req types.GenerationRequest
	if err := json.Unmarshal(data, &req); err != nil {
		return nil, fmt.Errorf("failed to parse generation request: %w", err)
	}
	return &req, nil
}
