package notifications

import (
	"context"
	"errors"
	"testing"
	"text/template"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/aws/aws-sdk-go-v2/service/sts"
	"github.com/aws/smithy-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockPublisher struct {
	inputs []*sns.PublishInput
	err    error
}

func (m *mockPublisher) Publish(ctx context.Context, input *sns.PublishInput, opts ...func(*sns.Options)) (*sns.PublishOutput, error) {
	m.inputs = append(m.inputs, input)
	if m.err != nil {
		return nil, m.err
	}
	return &sns.PublishOutput{MessageId: aws.String("msg-1")}, nil
}

type mockIdentity struct {
	account string
	err     error
}

func (m mockIdentity) GetCallerIdentity(ctx context.Context, input *sts.GetCallerIdentityInput, opts ...func(*sts.Options)) (*sts.GetCallerIdentityOutput, error) {
	if m.err != nil {
		return nil, m.err
	}
	return &sts.GetCallerIdentityOutput{Account: aws.String(m.account)}, nil
}

const templateContent = `Order report ready:

Account: {{.Account}}
Stack: {{.Stack}}
Time: {{.Date}}

Report: {{.ReportID}}
Location: {{.ReportURI}}
Orders: {{.TotalOrders}} ({{.OpenOrders}} open)
`

func testNotification(t *testing.T) ReportReadyNotification {
	t.Helper()
	tmpl, err := template.New("test").Parse(templateContent)
	require.NoError(t, err)

	return ReportReadyNotification{
		Account:     "123456789012",
		Stack:       "tracker-prod",
		Date:        "2025-01-15 15:30:00 +0000 UTC",
		ReportID:    "5f0c6b0e-8a41-4f7e-9b53-0d4c2f1f6a11",
		ReportURI:   "s3://tracker-prod-reports/reports/order-report-2025-01-15.html",
		TotalOrders: 12,
		OpenOrders:  5,
		Title:       "Tracker Order Report: tracker-prod",
		Template:    tmpl,
		Topic:       "arn:aws:sns:us-east-1:123456789012:test-topic",
	}
}

func TestReportReadyNotificationMessage(t *testing.T) {
	notification := testNotification(t)

	message, err := notification.Message()
	require.NoError(t, err)

	expected := `Order report ready:

Account: 123456789012
Stack: tracker-prod
Time: 2025-01-15 15:30:00 +0000 UTC

Report: 5f0c6b0e-8a41-4f7e-9b53-0d4c2f1f6a11
Location: s3://tracker-prod-reports/reports/order-report-2025-01-15.html
Orders: 12 (5 open)
`
	assert.Equal(t, expected, message)
	assert.Equal(t, "Tracker Order Report: tracker-prod", notification.Subject())
	assert.Equal(t, "arn:aws:sns:us-east-1:123456789012:test-topic", notification.TopicArn())
}

func TestSendNotification(t *testing.T) {
	client := &mockPublisher{}
	notification := testNotification(t)

	require.NoError(t, SendNotification(context.Background(), client, notification))
	require.Len(t, client.inputs, 1)
	assert.Equal(t, notification.Topic, aws.ToString(client.inputs[0].TopicArn))
	assert.Equal(t, notification.Title, aws.ToString(client.inputs[0].Subject))
	assert.Contains(t, aws.ToString(client.inputs[0].Message), "Orders: 12 (5 open)")
}

func TestSendNotificationErrors(t *testing.T) {
	t.Run("publish failure", func(t *testing.T) {
		client := &mockPublisher{err: &smithy.GenericAPIError{Code: "NotFound", Message: "topic missing"}}
		err := SendNotification(context.Background(), client, testNotification(t))

		var apiErr smithy.APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, "NotFound", apiErr.ErrorCode())
	})

	t.Run("template failure", func(t *testing.T) {
		notification := testNotification(t)
		notification.Template = template.Must(template.New("bad").Parse("{{.Missing}}"))
		client := &mockPublisher{}

		assert.Error(t, SendNotification(context.Background(), client, notification))
		assert.Empty(t, client.inputs)
	})
}

func TestAccountID(t *testing.T) {
	account, err := AccountID(context.Background(), mockIdentity{account: "123456789012"})
	require.NoError(t, err)
	assert.Equal(t, "123456789012", account)

	boom := errors.New("expired token")
	_, err = AccountID(context.Background(), mockIdentity{err: boom})
	assert.ErrorIs(t, err, boom)
}
