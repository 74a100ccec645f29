// internal/common/notify/alerts.go
package notify

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	sestypes "github.com/aws/aws-sdk-go-v2/service/ses/types"
	"github.com/aws/aws-sdk-go-v2/service/sns"

	"finance-assistant/internal/common/config"
	stderrors "finance-assistant/internal/common/errors"
	"finance-assistant/internal/common/logger"
)

// AlertPublisher fans budget-overrun alerts out to an SNS topic and,
// when configured, a direct SES email.
type AlertPublisher struct {
	cfg    config.NotificationsConfig
	sns    *sns.Client
	ses    *ses.Client
	logger logger.Logger
}

// NewAlertPublisher builds the AWS clients from the default credential
// chain. Returns nil (a no-op publisher) when notifications are
// disabled in config.
func NewAlertPublisher(ctx context.Context, cfg config.NotificationsConfig, log logger.Logger) (*AlertPublisher, error) {
	if !cfg.Enabled {
		return nil, nil
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.AWSRegion))
	if err != nil {
		return nil, stderrors.NewNotificationError("loading AWS config", err)
	}

	return &AlertPublisher{
		cfg:    cfg,
		sns:    sns.NewFromConfig(awsCfg),
		ses:    ses.NewFromConfig(awsCfg),
		logger: log,
	}, nil
}

// BudgetOverrun publishes an alert that spending in a category has
// crossed its budget limit. Nil receivers are safe and do nothing, so
// callers don't have to gate on the notifications toggle.
func (p *AlertPublisher) BudgetOverrun(ctx context.Context, userID, category string, spent, limit float64) error {
	if p == nil {
		return nil
	}

	subject := fmt.Sprintf("Budget exceeded: %s", category)
	body := fmt.Sprintf("Spending in %s reached %.2f against a limit of %.2f.", category, spent, limit)

	if p.cfg.SNSTopicARN != "" {
		_, err := p.sns.Publish(ctx, &sns.PublishInput{
			TopicArn: aws.String(p.cfg.SNSTopicARN),
			Subject:  aws.String(subject),
			Message:  aws.String(body),
		})
		if err != nil {
			return stderrors.NewNotificationError("publishing SNS alert", err)
		}
	}

	if p.cfg.EmailFrom != "" && p.cfg.EmailTo != "" {
		_, err := p.ses.SendEmail(ctx, &ses.SendEmailInput{
			Source:      aws.String(p.cfg.EmailFrom),
			Destination: &sestypes.Destination{ToAddresses: []string{p.cfg.EmailTo}},
			Message: &sestypes.Message{
				Subject: &sestypes.Content{Data: aws.String(subject)},
				Body: &sestypes.Body{
					Text: &sestypes.Content{Data: aws.String(body)},
				},
			},
		})
		if err != nil {
			return stderrors.NewNotificationError("sending SES alert", err)
		}
	}

	p.logger.Info("budget overrun alert sent", map[string]interface{}{
		"user_id":  userID,
		"category": category,
		"spent":    spent,
		"limit":    limit,
	})
	return nil
}
