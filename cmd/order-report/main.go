package main

import (
	"context"
	"fmt"
	"os"
	texttemplate "text/template"

	"tracker/internal/clock"
	"tracker/internal/config"
	"tracker/internal/exports"
	"tracker/internal/filters"
	"tracker/internal/logging"
	"tracker/internal/orders"
	"tracker/internal/reports"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/aws/retry"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/aws/aws-sdk-go-v2/service/sts"
)

// newReportJob loads the configuration and builds the AWS clients the
// lambda runs against
func newReportJob(ctx context.Context) (*reportJob, error) {
	cfg, err := config.Load(os.Getenv("TRACKER_CONFIG_FILE"))
	if err != nil {
		return nil, fmt.Errorf("unable to load configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	logging.Setup(cfg.LogLevel, os.Stdout, false)

	loc, err := cfg.Location()
	if err != nil {
		return nil, fmt.Errorf("unable to load time zone: %w", err)
	}
	displayClock := clock.NewSystem(loc)
	lib := filters.New(displayClock)

	awsConfig, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRetryer(func() aws.Retryer {
			return retry.AddWithMaxAttempts(retry.NewStandard(), 5)
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("unable to load AWS config: %w", err)
	}

	reportTmpl, err := reports.ParseTemplate(lib.FuncMap())
	if err != nil {
		return nil, fmt.Errorf("failed to parse order report template: %w", err)
	}
	notifyTmpl, err := texttemplate.New("report-ready").Parse(notificationTemplate)
	if err != nil {
		return nil, fmt.Errorf("failed to parse notification template: %w", err)
	}

	return &reportJob{
		cfg:        cfg,
		clock:      displayClock,
		orders:     orders.NewStore(dynamodb.NewFromConfig(awsConfig), cfg.OrdersTable),
		s3Client:   s3.NewFromConfig(awsConfig),
		cwClient:   cloudwatch.NewFromConfig(awsConfig),
		snsClient:  sns.NewFromConfig(awsConfig),
		stsClient:  sts.NewFromConfig(awsConfig),
		reportTmpl: reportTmpl,
		notifyTmpl: notifyTmpl,
		exporter:   exports.NewOrderExporter(lib),
	}, nil
}

func main() {
	job, err := newReportJob(context.Background())
	if err != nil {
		panic(err)
	}
	lambda.Start(job.run)
}
