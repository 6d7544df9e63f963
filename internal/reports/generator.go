package reports

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"sort"
	"strings"
	"time"

	"tracker/internal/clock"
	"tracker/internal/files"
	"tracker/internal/logging"
	"tracker/internal/orders"

	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const DefaultNamespace = "Tracker/Orders"

// OrderLister loads the orders a report covers
type OrderLister interface {
	ListOrders(ctx context.Context, statuses ...string) ([]*orders.Order, error)
}

// S3ClientInterface defines the S3 operations required to publish a report
// and size order attachments
type S3ClientInterface interface {
	files.HeadObjectAPI
	files.PutObjectAPI
}

// MetricsClientInterface defines the CloudWatch operation used for report metrics
type MetricsClientInterface interface {
	PutMetricData(ctx context.Context, input *cloudwatch.PutMetricDataInput, opts ...func(*cloudwatch.Options)) (*cloudwatch.PutMetricDataOutput, error)
}

type OrderReportGenerator struct {
	orders           OrderLister
	s3Client         S3ClientInterface
	cwClient         MetricsClientInterface
	clock            clock.Clock
	stackName        string
	attachmentBucket string
	namespace        string
	statuses         []string
	log              zerolog.Logger
}

// Option configures an OrderReportGenerator
type Option func(*OrderReportGenerator)

// WithStatuses limits the report to orders in the given statuses
func WithStatuses(statuses ...string) Option {
	return func(g *OrderReportGenerator) {
		g.statuses = statuses
	}
}

// WithNamespace overrides the CloudWatch namespace for published metrics
func WithNamespace(namespace string) Option {
	return func(g *OrderReportGenerator) {
		if namespace != "" {
			g.namespace = namespace
		}
	}
}

// WithAttachmentBucket sets the bucket holding order attachments
func WithAttachmentBucket(bucket string) Option {
	return func(g *OrderReportGenerator) {
		g.attachmentBucket = bucket
	}
}

type StatusCount struct {
	Status string
	Count  int
}

// OrderRow is one order in the report with its attachment, if any
type OrderRow struct {
	*orders.Order
	Attachment *files.Attachment
}

type ReportData struct {
	ReportID     string
	GeneratedAt  time.Time
	StackName    string
	TotalOrders  int
	OpenOrders   int
	ClosedOrders int
	StatusCounts []StatusCount
	Orders       []OrderRow
}

func NewOrderReportGenerator(lister OrderLister, s3Client S3ClientInterface, cwClient MetricsClientInterface, c clock.Clock, stackName string, opts ...Option) *OrderReportGenerator {
	if c == nil {
		c = clock.NewSystem(nil)
	}

	g := &OrderReportGenerator{
		orders:    lister,
		s3Client:  s3Client,
		cwClient:  cwClient,
		clock:     c,
		stackName: stackName,
		namespace: DefaultNamespace,
		log:       logging.GetLogger("reports"),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// GenerateReport loads orders and renders them with tmpl. It returns an
// empty report and nil data when there are no orders to report on.
func (g *OrderReportGenerator) GenerateReport(ctx context.Context, tmpl *template.Template) (string, *ReportData, error) {
	g.log.Info().Strs("statuses", g.statuses).Msg("Loading orders")
	list, err := g.orders.ListOrders(ctx, g.statuses...)
	if err != nil {
		return "", nil, fmt.Errorf("failed to load orders: %w", err)
	}

	if len(list) == 0 {
		g.log.Info().Msg("No orders found")
		return "", nil, nil
	}

	data := g.CollectReportData(ctx, list)
	g.log.Debug().
		Str("report_id", data.ReportID).
		Int("total", data.TotalOrders).
		Int("open", data.OpenOrders).
		Msg("Report data collected")

	htmlReport, err := g.generateHTML(data, tmpl)
	if err != nil {
		return "", nil, fmt.Errorf("failed to generate HTML: %w", err)
	}

	return htmlReport, &data, nil
}

// CollectReportData computes the report totals for list
func (g *OrderReportGenerator) CollectReportData(ctx context.Context, list []*orders.Order) ReportData {
	data := ReportData{
		ReportID:    uuid.NewString(),
		GeneratedAt: g.clock.Now(),
		StackName:   g.stackName,
		TotalOrders: len(list),
	}

	counts := make(map[string]int)
	for _, order := range list {
		counts[strings.ToLower(order.Status)]++
		if order.IsOpen() {
			data.OpenOrders++
		} else {
			data.ClosedOrders++
		}

		row := OrderRow{Order: order}
		if order.AttachmentKey != "" && g.attachmentBucket != "" {
			row.Attachment = files.NewAttachment(ctx, g.s3Client, files.NewS3Object(g.attachmentBucket, order.AttachmentKey))
		}
		data.Orders = append(data.Orders, row)
	}

	for status, count := range counts {
		data.StatusCounts = append(data.StatusCounts, StatusCount{Status: status, Count: count})
	}
	sort.Slice(data.StatusCounts, func(i, j int) bool {
		return data.StatusCounts[i].Status < data.StatusCounts[j].Status
	})

	return data
}

func (g *OrderReportGenerator) generateHTML(data ReportData, tmpl *template.Template) (string, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}

	return buf.String(), nil
}

// UploadReport stores the rendered report as an HTML object
func (g *OrderReportGenerator) UploadReport(ctx context.Context, bucketName, key, content string) error {
	obj := files.NewS3Object(bucketName, key)
	g.log.Info().Str("uri", obj.URI()).Msg("Uploading report")

	return files.UploadObject(ctx, g.s3Client, obj, strings.NewReader(content), "text/html")
}

// ReportKey is the object key for the report generated on t's date
func ReportKey(t time.Time) string {
	return fmt.Sprintf("reports/order-report-%s.html", t.Format("2006-01-02"))
}
