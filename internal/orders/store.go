package orders

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"tracker/internal/logging"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/rs/zerolog"
)

// DynamoClientInterface defines the DynamoDB operations required to read orders
type DynamoClientInterface interface {
	dynamodb.ScanAPIClient
	GetItem(ctx context.Context, input *dynamodb.GetItemInput, opts ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
}

// Store reads orders from a DynamoDB table keyed by OrderId
type Store struct {
	client DynamoClientInterface
	table  string
	log    zerolog.Logger
}

// NewStore creates a new order store
func NewStore(client DynamoClientInterface, table string) *Store {
	return &Store{
		client: client,
		table:  table,
		log:    logging.GetLogger("orders"),
	}
}

// ListOrders scans the table, optionally keeping only the given statuses.
// Records that cannot be converted are logged and skipped. Orders come back
// sorted by id.
func (s *Store) ListOrders(ctx context.Context, statuses ...string) ([]*Order, error) {
	input := &dynamodb.ScanInput{
		TableName: aws.String(s.table),
	}
	if len(statuses) > 0 {
		names, values := statusFilter(statuses)
		input.FilterExpression = aws.String(fmt.Sprintf("#status IN (%s)", strings.Join(names, ", ")))
		input.ExpressionAttributeNames = map[string]string{"#status": string(OrderTableStatus)}
		input.ExpressionAttributeValues = values
	}

	var orders []*Order
	paginator := dynamodb.NewScanPaginator(s.client, input)
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, ErrorScanningOrders(s.table, err)
		}

		var records []Record
		if err := attributevalue.UnmarshalListOfMaps(page.Items, &records); err != nil {
			return nil, ErrorUnmarshallingOrder(err)
		}

		for _, record := range records {
			order, err := record.Order()
			if err != nil {
				s.log.Warn().Err(err).Str("order", record.ID).Msg("Skipping unreadable order")
				continue
			}
			orders = append(orders, order)
		}
	}

	sort.Slice(orders, func(i, j int) bool {
		return orders[i].ID < orders[j].ID
	})

	s.log.Debug().Int("count", len(orders)).Str("table", s.table).Msg("Orders loaded")
	return orders, nil
}

// GetOrder fetches a single order by id
func (s *Store) GetOrder(ctx context.Context, id string) (*Order, error) {
	result, err := s.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(s.table),
		Key: map[string]types.AttributeValue{
			string(OrderTableOrderId): &types.AttributeValueMemberS{Value: id},
		},
	})
	if err != nil {
		return nil, err
	}

	if result.Item == nil {
		return nil, ErrorOrderNotFound(s.table, id)
	}

	var record Record
	if err := attributevalue.UnmarshalMap(result.Item, &record); err != nil {
		return nil, ErrorUnmarshallingOrder(err)
	}

	return record.Order()
}

func statusFilter(statuses []string) ([]string, map[string]types.AttributeValue) {
	names := make([]string, 0, len(statuses))
	values := make(map[string]types.AttributeValue, len(statuses))
	for i, status := range statuses {
		name := fmt.Sprintf(":s%d", i)
		names = append(names, name)
		values[name] = &types.AttributeValueMemberS{Value: status}
	}
	return names, values
}
