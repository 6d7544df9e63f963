package main

import (
	"context"
	"fmt"
	"html/template"
	texttemplate "text/template"
	"time"

	"tracker/internal/clock"
	"tracker/internal/config"
	"tracker/internal/exports"
	"tracker/internal/files"
	"tracker/internal/logging"
	"tracker/internal/notifications"
	"tracker/internal/orders"
	"tracker/internal/reports"
)

const notificationTemplate = `A new order report is available.

Account: {{.Account}}
Stack: {{.Stack}}
Time: {{.Date}}

Report: {{.ReportID}}
Location: {{.ReportURI}}
Orders: {{.TotalOrders}} ({{.OpenOrders}} open)
`

// reportJob holds everything one report run needs
type reportJob struct {
	cfg        *config.Config
	clock      clock.Clock
	orders     reports.OrderLister
	s3Client   reports.S3ClientInterface
	cwClient   reports.MetricsClientInterface
	snsClient  notifications.Publisher
	stsClient  notifications.CallerIdentityAPI
	reportTmpl *template.Template
	notifyTmpl *texttemplate.Template
	exporter   *exports.OrderExporter
}

func (j *reportJob) run(ctx context.Context) error {
	cfg := j.cfg
	logger := logging.GetLogger("order-report")
	done := logging.LogOperationStart(logger, "order report")
	defer done()

	logger.Info().Str("stack", cfg.StackName).Msg("Starting order report generation")

	generator := reports.NewOrderReportGenerator(
		j.orders,
		j.s3Client,
		j.cwClient,
		j.clock,
		cfg.StackName,
		reports.WithStatuses(cfg.StatusFilter...),
		reports.WithNamespace(cfg.MetricsNamespace),
		reports.WithAttachmentBucket(cfg.AttachmentBucket),
	)

	reportHTML, data, err := generator.GenerateReport(ctx, j.reportTmpl)
	if err != nil {
		return fmt.Errorf("failed to generate report: %w", err)
	}

	if reportHTML == "" {
		logger.Info().Msg("No orders found for report generation")
		return nil
	}

	// One report per day, keyed by the display date
	reportKey := reports.ReportKey(data.GeneratedAt)
	if err := generator.UploadReport(ctx, cfg.ReportBucket, reportKey, reportHTML); err != nil {
		return fmt.Errorf("failed to upload report: %w", err)
	}
	reportURI := files.NewS3Object(cfg.ReportBucket, reportKey).URI()
	logger.Info().Str("uri", reportURI).Msg("Order report uploaded")

	if cfg.ExportCSV && j.exporter != nil {
		list := make([]*orders.Order, 0, len(data.Orders))
		for _, row := range data.Orders {
			list = append(list, row.Order)
		}
		obj := files.NewS3Object(cfg.ReportBucket, exports.ExportKey(cfg.StackName, data.GeneratedAt))
		if err := j.exporter.Upload(ctx, j.s3Client, obj, list); err != nil {
			return fmt.Errorf("failed to export orders: %w", err)
		}
	}

	if cfg.PublishMetrics {
		if err := generator.PublishMetrics(ctx, data); err != nil {
			// metrics are best effort
			logger.Warn().Err(err).Msg("Failed to publish report metrics")
		}
	}

	if cfg.ReportTopicArn == "" {
		return nil
	}

	account, err := notifications.AccountID(ctx, j.stsClient)
	if err != nil {
		logger.Warn().Err(err).Msg("Unable to determine account id")
	}

	notification := notifications.ReportReadyNotification{
		Account:     account,
		Stack:       cfg.StackName,
		Date:        data.GeneratedAt.Format(time.RFC1123),
		ReportID:    data.ReportID,
		ReportURI:   reportURI,
		TotalOrders: data.TotalOrders,
		OpenOrders:  data.OpenOrders,
		Title:       fmt.Sprintf("Tracker Order Report: %s", cfg.StackName),
		Template:    j.notifyTmpl,
		Topic:       cfg.ReportTopicArn,
	}
	if err := notifications.SendNotification(ctx, j.snsClient, notification); err != nil {
		return fmt.Errorf("failed to send report notification: %w", err)
	}

	return nil
}
