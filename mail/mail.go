// Package mail sends transactional email through AWS SES or, when no
// provider is configured, only logs what would have been sent.
package mail

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
	"go.uber.org/zap"
)

// Config selects and configures the mail provider.
type Config struct {
	Provider        string `env:"MAIL_PROVIDER" envDefault:"noop"`
	FromAddress     string `env:"MAIL_FROM_ADDRESS"`
	FromName        string `env:"MAIL_FROM_NAME"`
	Region          string `env:"AWS_REGION"`
	AccessKeyID     string `env:"AWS_ACCESS_KEY_ID"`
	SecretAccessKey string `env:"AWS_SECRET_ACCESS_KEY"`
}

// Message is one outbound email. HTML and Text may both be set.
type Message struct {
	To      string
	Subject string
	HTML    string
	Text    string
}

// Mailer sends messages.
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

// New returns the mailer selected by cfg.Provider: "ses" for AWS SES, anything
// else for a mailer that only logs.
func New(cfg Config, logger *zap.Logger) (Mailer, error) {
	switch cfg.Provider {
	case "ses":
		if cfg.FromAddress == "" {
			return nil, fmt.Errorf("mail: MAIL_FROM_ADDRESS is required for ses")
		}
		awsCfg := aws.Config{Region: cfg.Region}
		if cfg.AccessKeyID != "" {
			awsCfg.Credentials = aws.NewCredentialsCache(
				credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
			)
		}
		return &sesMailer{
			client:      ses.NewFromConfig(awsCfg),
			fromAddress: cfg.FromAddress,
			fromName:    cfg.FromName,
			log:         logger,
		}, nil
	case "", "noop":
		return NewLogMailer(logger), nil
	default:
		logger.Warn("unknown mail provider, using log mailer", zap.String("provider", cfg.Provider))
		return NewLogMailer(logger), nil
	}
}

// sendEmailAPI is the part of the SES client used here.
type sendEmailAPI interface {
	SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error)
}

type sesMailer struct {
	client      sendEmailAPI
	fromAddress string
	fromName    string
	log         *zap.Logger
}

func (s *sesMailer) Send(ctx context.Context, msg Message) error {
	source := s.fromAddress
	if s.fromName != "" {
		source = fmt.Sprintf("%s <%s>", s.fromName, s.fromAddress)
	}
	input := &ses.SendEmailInput{
		Source:      aws.String(source),
		Destination: &types.Destination{ToAddresses: []string{msg.To}},
		Message: &types.Message{
			Subject: utf8(msg.Subject),
			Body:    &types.Body{},
		},
	}
	if msg.HTML != "" {
		input.Message.Body.Html = utf8(msg.HTML)
	}
	if msg.Text != "" {
		input.Message.Body.Text = utf8(msg.Text)
	}
	out, err := s.client.SendEmail(ctx, input)
	if err != nil {
		return fmt.Errorf("mail: send via ses: %w", err)
	}
	s.log.Info("email sent", zap.String("to", msg.To), zap.String("message_id", aws.ToString(out.MessageId)))
	return nil
}

func utf8(s string) *types.Content {
	return &types.Content{Data: aws.String(s), Charset: aws.String("UTF-8")}
}

// LogMailer records messages in the log instead of sending them.
type LogMailer struct {
	log *zap.Logger
}

func NewLogMailer(logger *zap.Logger) *LogMailer {
	return &LogMailer{log: logger}
}

func (m *LogMailer) Send(ctx context.Context, msg Message) error {
	m.log.Info("email not sent (log mailer)", zap.String("to", msg.To), zap.String("subject", msg.Subject))
	return nil
}
