package reports

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	cwTypes "github.com/aws/aws-sdk-go-v2/service/cloudwatch/types"
)

// PublishMetrics records the report totals in CloudWatch: one OrderCount
// datum per status plus TotalOrders and OpenOrders, all dimensioned by stack.
func (g *OrderReportGenerator) PublishMetrics(ctx context.Context, data *ReportData) error {
	if data == nil {
		return nil
	}

	stack := cwTypes.Dimension{
		Name:  aws.String("StackName"),
		Value: aws.String(g.stackName),
	}
	timestamp := aws.Time(data.GeneratedAt)

	datum := func(name string, value int, dims ...cwTypes.Dimension) cwTypes.MetricDatum {
		return cwTypes.MetricDatum{
			MetricName: aws.String(name),
			Dimensions: append([]cwTypes.Dimension{stack}, dims...),
			Timestamp:  timestamp,
			Unit:       cwTypes.StandardUnitCount,
			Value:      aws.Float64(float64(value)),
		}
	}

	metrics := []cwTypes.MetricDatum{
		datum("TotalOrders", data.TotalOrders),
		datum("OpenOrders", data.OpenOrders),
	}
	for _, sc := range data.StatusCounts {
		metrics = append(metrics, datum("OrderCount", sc.Count, cwTypes.Dimension{
			Name:  aws.String("Status"),
			Value: aws.String(sc.Status),
		}))
	}

	_, err := g.cwClient.PutMetricData(ctx, &cloudwatch.PutMetricDataInput{
		Namespace:  aws.String(g.namespace),
		MetricData: metrics,
	})
	if err != nil {
		return fmt.Errorf("failed to publish metrics: %w", err)
	}

	g.log.Info().Int("metrics", len(metrics)).Str("namespace", g.namespace).Msg("Report metrics published")
	return nil
}
