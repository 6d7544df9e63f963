package exports

import (
	"bytes"
	"context"
	"encoding/csv"
	"io"
	"path"
	"strconv"
	"strings"
	"time"

	"tracker/internal/clock"
	"tracker/internal/files"
	"tracker/internal/filters"
	"tracker/internal/logging"
	"tracker/internal/orders"
)

var ExportHeaders = []string{
	"OrderId",
	"Status",
	"Priority",
	"Customer",
	"CustomerStatus",
	"Services",
	"Created",
	"LastUpdate",
	"ElapsedMinutes",
	"ActualMinutes",
	"ComponentsTotal",
}

// OrderExporter writes orders as CSV rows using the same derived values the
// report templates show
type OrderExporter struct {
	lib *filters.Library
}

func NewOrderExporter(lib *filters.Library) *OrderExporter {
	return &OrderExporter{lib: lib}
}

// ToCSVRow converts an order to a CSV row in ExportHeaders order
func (e *OrderExporter) ToCSVRow(o *orders.Order) []string {
	loc := e.lib.Clock().Location()

	customer := ""
	if o.Customer != nil {
		customer = o.Customer.Name
	}

	return []string{
		o.ID,
		o.Status,
		o.Priority,
		customer,
		e.lib.CustomerStatus(o.Customer),
		strings.Join(filters.ExtractServices(o.Description), "; "),
		formatTimestamp(o.Created, loc),
		e.lib.OrderLastUpdate(o).In(loc).Format(time.RFC3339),
		strconv.Itoa(e.lib.ElapsedMinutes(o)),
		strconv.Itoa(e.lib.ActualTimeMinutes(o)),
		o.Components.Total().StringFixed(2),
	}
}

// WriteCSV writes the header and one row per order to w
func (e *OrderExporter) WriteCSV(w io.Writer, list []*orders.Order) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(ExportHeaders); err != nil {
		return ErrorWritingCSV("header", err)
	}

	for _, o := range list {
		if o == nil {
			continue
		}
		if err := writer.Write(e.ToCSVRow(o)); err != nil {
			return ErrorWritingCSV(o.ID, err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return ErrorWritingCSV("flush", err)
	}
	return nil
}

// Upload writes the orders to CSV and stores the result at obj
func (e *OrderExporter) Upload(ctx context.Context, client files.PutObjectAPI, obj files.S3Object, list []*orders.Order) error {
	var buf bytes.Buffer
	if err := e.WriteCSV(&buf, list); err != nil {
		return err
	}

	if err := files.UploadObject(ctx, client, obj, &buf, "text/csv"); err != nil {
		return err
	}

	logger := logging.GetLogger("exports")
	logger.Info().
		Str("uri", obj.URI()).
		Int("orders", len(list)).
		Msg("Order export uploaded")
	return nil
}

// ExportKey returns the object key for a stack's order export on t's date
func ExportKey(stack string, t time.Time) string {
	return path.Join("exports", "orders", t.Format(time.DateOnly), "CSV", stack+".csv")
}

func formatTimestamp(ts clock.Timestamp, loc *time.Location) string {
	if ts.IsZero() {
		return ""
	}
	return ts.Resolve(loc).In(loc).Format(time.RFC3339)
}
