// Package mailer sends templated recognition emails through AWS SES.
package mailer

import (
	"context"
	"encoding/json"
	"fmt"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"

	"github.com/ixcomercio/recognitions/internal/config"
)

// sesAPI is the slice of the SES v2 client the mailer uses.
type sesAPI interface {
	SendEmail(ctx context.Context, params *sesv2.SendEmailInput, optFns ...func(*sesv2.Options)) (*sesv2.SendEmailOutput, error)
}

// SES sends recognition emails using an SES template.
type SES struct {
	client   sesAPI
	sender   string
	template string
}

// New creates an SES mailer from application config.
func New(ctx context.Context, cfg *config.Config) (*SES, error) {
	creds := credentials.NewStaticCredentialsProvider(
		cfg.AWSAccessKeyID,
		cfg.AWSSecretAccessKey,
		"", // session token (empty for static creds)
	)

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.AWSRegion),
		awsconfig.WithCredentialsProvider(creds),
	)
	if err != nil {
		return nil, fmt.Errorf("loading AWS config: %w", err)
	}

	return &SES{
		client:   sesv2.NewFromConfig(awsCfg),
		sender:   cfg.MailSender,
		template: cfg.MailTemplate,
	}, nil
}

// RecognitionEmail is the data rendered into the recognition template.
type RecognitionEmail struct {
	To          string
	UserName    string
	CertType    string
	UserRole    string
	IssueDate   string
	ExpiryDate  string
	CTAURL      string
	CurrentYear int
}

// templateData matches the placeholder names of the SES template.
type templateData struct {
	UserName    string `json:"user_name"`
	CertType    string `json:"cert_type"`
	UserRole    string `json:"user_role"`
	IssueDate   string `json:"issue_date"`
	ExpiryDate  string `json:"expiry_date"`
	CTAURL      string `json:"cta_url"`
	CurrentYear int    `json:"current_year"`
}

// BuildTemplateData serializes the email fields into the template payload.
// Empty expiry and CTA fall back to "Sin definir", matching the template.
func BuildTemplateData(email RecognitionEmail) (string, error) {
	data := templateData{
		UserName:    email.UserName,
		CertType:    email.CertType,
		UserRole:    email.UserRole,
		IssueDate:   email.IssueDate,
		ExpiryDate:  email.ExpiryDate,
		CTAURL:      email.CTAURL,
		CurrentYear: email.CurrentYear,
	}
	if data.ExpiryDate == "" {
		data.ExpiryDate = "Sin definir"
	}
	if data.CTAURL == "" {
		data.CTAURL = "Sin definir"
	}

	raw, err := json.Marshal(data)
	if err != nil {
		return "", fmt.Errorf("marshaling template data: %w", err)
	}
	return string(raw), nil
}

// SendRecognition sends the templated recognition email.
func (s *SES) SendRecognition(ctx context.Context, email RecognitionEmail) error {
	data, err := BuildTemplateData(email)
	if err != nil {
		return err
	}

	input := &sesv2.SendEmailInput{
		FromEmailAddress: &s.sender,
		Destination: &types.Destination{
			ToAddresses: []string{email.To},
		},
		Content: &types.EmailContent{
			Template: &types.Template{
				TemplateName: &s.template,
				TemplateData: &data,
			},
		},
	}

	if _, err := s.client.SendEmail(ctx, input); err != nil {
		return fmt.Errorf("sending recognition email to %s: %w", email.To, err)
	}

	return nil
}
