package notifications

import (
	"bytes"
	"context"
	"text/template"

	"tracker/internal/logging"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/aws/aws-sdk-go-v2/service/sts"
)

// SNSNotification represents an abstraction for a notification to be published via AWS SNS.
type SNSNotification interface {
	Message() (string, error)
	Subject() string
	TopicArn() string
}

// Publisher is the SNS operation used to send notifications
type Publisher interface {
	Publish(ctx context.Context, input *sns.PublishInput, opts ...func(*sns.Options)) (*sns.PublishOutput, error)
}

// CallerIdentityAPI is the STS operation used to find the running account
type CallerIdentityAPI interface {
	GetCallerIdentity(ctx context.Context, input *sts.GetCallerIdentityInput, opts ...func(*sts.Options)) (*sts.GetCallerIdentityOutput, error)
}

// ReportReadyNotification announces a newly published order report
type ReportReadyNotification struct {
	Account     string
	Stack       string
	Date        string
	ReportID    string
	ReportURI   string
	TotalOrders int
	OpenOrders  int
	Title       string
	Template    *template.Template
	Topic       string
}

func (n ReportReadyNotification) Message() (string, error) {
	var buf bytes.Buffer
	if err := n.Template.Execute(&buf, n); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func (n ReportReadyNotification) Subject() string {
	return n.Title
}

func (n ReportReadyNotification) TopicArn() string {
	return n.Topic
}

func SendNotification(ctx context.Context, client Publisher, notification SNSNotification) error {
	message, err := notification.Message()
	if err != nil {
		return err
	}

	result, err := client.Publish(ctx, &sns.PublishInput{
		TopicArn: aws.String(notification.TopicArn()),
		Subject:  aws.String(notification.Subject()),
		Message:  aws.String(message),
	})
	if err != nil {
		return err
	}

	logger := logging.GetLogger("notifications")
	logger.Info().
		Str("message_id", aws.ToString(result.MessageId)).
		Msg("Notification sent successfully")
	return nil
}

// AccountID returns the AWS account the caller runs in
func AccountID(ctx context.Context, client CallerIdentityAPI) (string, error) {
	result, err := client.GetCallerIdentity(ctx, &sts.GetCallerIdentityInput{})
	if err != nil {
		return "", err
	}

	return aws.ToString(result.Account), nil
}
